// Package docfmt loads and dumps aon.Value documents in the source formats
// the aon command accepts: JSON, YAML, TOML and MessagePack.
//
// Loaders keep object key order wherever the format carries it, so schemas
// inferred from a YAML or TOML file list fields in file order.
package docfmt

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Neumenon/aon/aon"
)

// Format identifies a document format.
type Format string

const (
	JSON    Format = "json"
	YAML    Format = "yaml"
	TOML    Format = "toml"
	MsgPack Format = "msgpack"
)

// ErrUnsupported is returned for unknown formats and for operations a
// format cannot perform.
var ErrUnsupported = errors.New("docfmt: unsupported format")

// Codec converts between encoded bytes and a Value.
// Implementations must be safe for concurrent use.
type Codec interface {
	Load(data []byte) (*aon.Value, error)
	Dump(v *aon.Value, opts DumpOptions) ([]byte, error)
}

// DumpOptions controls output layout.
type DumpOptions struct {
	// Indent pretty-prints JSON. YAML is always block style.
	Indent bool
}

var codecs = map[Format]Codec{}

func register(f Format, c Codec) {
	codecs[f] = c
}

// Lookup returns the codec registered for f.
func Lookup(f Format) (Codec, error) {
	c, ok := codecs[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, string(f))
	}
	return c, nil
}

// ParseFormat parses a format name. Common aliases are accepted.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "toml":
		return TOML, nil
	case "msgpack", "mpk", "msgp", "mp":
		return MsgPack, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupported, s)
}

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", false
	}
	f, err := ParseFormat(ext)
	if err != nil {
		return "", false
	}
	return f, true
}

// Load decodes data in format f.
func Load(data []byte, f Format) (*aon.Value, error) {
	c, err := Lookup(f)
	if err != nil {
		return nil, err
	}
	v, err := c.Load(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", f, err)
	}
	return v, nil
}

// Dump encodes v in format f.
func Dump(v *aon.Value, f Format, opts DumpOptions) ([]byte, error) {
	c, err := Lookup(f)
	if err != nil {
		return nil, err
	}
	return c.Dump(v, opts)
}
