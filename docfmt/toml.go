package docfmt

import (
	"fmt"
	"math"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/Neumenon/aon/aon"
)

func init() {
	register(TOML, tomlCodec{})
}

// tomlCodec decodes into generic maps and restores key order from the
// decoder metadata. Keys the metadata does not list, such as those of
// inline tables inside arrays, sort alphabetically after the listed ones.
type tomlCodec struct{}

func (tomlCodec) Load(data []byte) (*aon.Value, error) {
	var raw map[string]any
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, err
	}

	rank := make(map[string]int)
	for i, k := range md.Keys() {
		s := k.String()
		if _, ok := rank[s]; !ok {
			rank[s] = i
		}
	}
	return tomlValue(raw, nil, rank)
}

func tomlValue(x any, path toml.Key, rank map[string]int) (*aon.Value, error) {
	switch t := x.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pos := func(k string) int {
			if r, ok := rank[childKey(path, k).String()]; ok {
				return r
			}
			return math.MaxInt
		}
		sort.SliceStable(keys, func(i, j int) bool {
			return pos(keys[i]) < pos(keys[j])
		})

		obj := aon.Object()
		for _, k := range keys {
			v, err := tomlValue(t[k], childKey(path, k), rank)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", childKey(path, k), err)
			}
			obj.Set(k, v)
		}
		return obj, nil

	case []map[string]any:
		list := aon.List()
		for _, elem := range t {
			v, err := tomlValue(elem, path, rank)
			if err != nil {
				return nil, err
			}
			list.Append(v)
		}
		return list, nil

	case []any:
		list := aon.List()
		for _, elem := range t {
			v, err := tomlValue(elem, path, rank)
			if err != nil {
				return nil, err
			}
			list.Append(v)
		}
		return list, nil

	case fmt.Stringer:
		// Local dates and times.
		if v, err := aon.FromGo(x); err == nil {
			return v, nil
		}
		return aon.Str(t.String()), nil
	}
	return aon.FromGo(x)
}

func childKey(path toml.Key, k string) toml.Key {
	out := make(toml.Key, 0, len(path)+1)
	out = append(out, path...)
	return append(out, k)
}

// Dump is unsupported: TOML has no null and no top-level array.
func (tomlCodec) Dump(*aon.Value, DumpOptions) ([]byte, error) {
	return nil, fmt.Errorf("%w: TOML output", ErrUnsupported)
}
