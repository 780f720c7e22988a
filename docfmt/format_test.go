package docfmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neumenon/aon/aon"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", JSON},
		{"JSON", JSON},
		{"yml", YAML},
		{" yaml ", YAML},
		{"toml", TOML},
		{"mpk", MsgPack},
		{"msgpack", MsgPack},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"users.json", JSON, true},
		{"dir/conf.YML", YAML, true},
		{"Cargo.toml", TOML, true},
		{"blob.msgpack", MsgPack, true},
		{"README", "", false},
		{"data.csv", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := FormatFromPath(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadUnknownFormat(t *testing.T) {
	_, err := Load([]byte("{}"), Format("xml"))
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = Dump(aon.Null(), Format("xml"), DumpOptions{})
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestJSONDump(t *testing.T) {
	v, err := Load([]byte(`{"b":1,"a":[true]}`), JSON)
	require.NoError(t, err)

	compact, err := Dump(v, JSON, DumpOptions{})
	require.NoError(t, err)
	assert.Equal(t, `{"b":1,"a":[true]}`, string(compact))

	indented, err := Dump(v, JSON, DumpOptions{Indent: true})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"b\": 1,\n  \"a\": [\n    true\n  ]\n}", string(indented))
}

func TestLoadWrapsErrors(t *testing.T) {
	_, err := Load([]byte(`{"a":`), JSON)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load json")
	assert.ErrorIs(t, err, aon.ErrInput)
}
