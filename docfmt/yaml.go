package docfmt

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Neumenon/aon/aon"
)

func init() {
	register(YAML, yamlCodec{})
}

// yamlCodec walks the yaml.Node tree instead of decoding into maps, which
// would lose key order.
type yamlCodec struct{}

// maxYAMLAliasNodes caps the nodes produced by expanding aliases.
const maxYAMLAliasNodes = 1_000_000

func (yamlCodec) Load(data []byte) (*aon.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	l := &yamlLoader{active: make(map[*yaml.Node]bool)}
	return l.node(&doc)
}

// yamlLoader converts a node tree. Aliases are expanded in place; an alias
// re-entered while its anchor is still being expanded is a cycle.
type yamlLoader struct {
	active  map[*yaml.Node]bool
	depth   int // aliases currently being expanded
	aliased int // nodes produced under an alias
}

func (l *yamlLoader) node(n *yaml.Node) (*aon.Value, error) {
	if l.depth > 0 {
		l.aliased++
		if l.aliased > maxYAMLAliasNodes {
			return nil, fmt.Errorf("line %d: document contains excessive aliasing", n.Line)
		}
	}

	switch n.Kind {
	case 0:
		return aon.Null(), nil

	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return aon.Null(), nil
		}
		return l.node(n.Content[0])

	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, fmt.Errorf("line %d: unknown anchor %q", n.Line, n.Value)
		}
		if l.active[n.Alias] {
			return nil, fmt.Errorf("line %d: anchor %q value contains itself", n.Line, n.Value)
		}
		l.active[n.Alias] = true
		l.depth++
		v, err := l.node(n.Alias)
		l.depth--
		delete(l.active, n.Alias)
		return v, err

	case yaml.SequenceNode:
		list := aon.List()
		for _, item := range n.Content {
			v, err := l.node(item)
			if err != nil {
				return nil, err
			}
			list.Append(v)
		}
		return list, nil

	case yaml.MappingNode:
		obj := aon.Object()
		if err := l.mapping(obj, n); err != nil {
			return nil, err
		}
		return obj, nil

	case yaml.ScalarNode:
		return fromYAMLScalar(n)
	}
	return nil, fmt.Errorf("line %d: unexpected YAML node kind %d", n.Line, n.Kind)
}

// mapping sets the pairs of n on obj. Merge keys (<<) contribute only keys
// the mapping does not define itself.
func (l *yamlLoader) mapping(obj *aon.Value, n *yaml.Node) error {
	var merges []*yaml.Node
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if key.Kind == yaml.ScalarNode && key.ShortTag() == "!!merge" {
			merges = append(merges, val)
			continue
		}
		v, err := l.node(val)
		if err != nil {
			return fmt.Errorf("key %q: %w", key.Value, err)
		}
		obj.Set(key.Value, v)
	}

	for _, m := range merges {
		src, err := l.node(m)
		if err != nil {
			return err
		}
		var sources []*aon.Value
		if src.IsList() {
			sources, _ = src.AsList()
		} else {
			sources = []*aon.Value{src}
		}
		for _, s := range sources {
			members, err := s.AsObject()
			if err != nil {
				return fmt.Errorf("line %d: merge value must be a mapping", m.Line)
			}
			for _, mem := range members {
				if _, exists := obj.Lookup(mem.Key); !exists {
					obj.Set(mem.Key, mem.Value)
				}
			}
		}
	}
	return nil
}

func fromYAMLScalar(n *yaml.Node) (*aon.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return aon.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return aon.Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return aon.Int(i), nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return aon.Float(f), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return aon.Float(f), nil
	default:
		// !!str, !!timestamp, !!binary and custom tags keep their text.
		return aon.Str(n.Value), nil
	}
}

func (yamlCodec) Dump(v *aon.Value, _ DumpOptions) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(toYAMLNode(v)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toYAMLNode(v *aon.Value) *yaml.Node {
	switch v.Kind() {
	case aon.KindBool:
		b, _ := v.AsBool()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(b)}
	case aon.KindNumber:
		if !v.IsFloat() {
			i, _ := v.AsInt()
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(i, 10)}
		}
		f, _ := v.AsFloat()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: yamlFloat(f)}
	case aon.KindString:
		s, _ := v.AsStr()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	case aon.KindArray:
		items, _ := v.AsList()
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range items {
			n.Content = append(n.Content, toYAMLNode(item))
		}
		return n
	case aon.KindObject:
		members, _ := v.AsObject()
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range members {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Key},
				toYAMLNode(m.Value))
		}
		return n
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

func yamlFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
