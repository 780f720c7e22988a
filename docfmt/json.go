package docfmt

import (
	"bytes"
	"encoding/json"

	"github.com/Neumenon/aon/aon"
)

func init() {
	register(JSON, jsonCodec{})
}

type jsonCodec struct{}

func (jsonCodec) Load(data []byte) (*aon.Value, error) {
	return aon.FromJSON(data)
}

func (jsonCodec) Dump(v *aon.Value, opts DumpOptions) ([]byte, error) {
	out, err := v.MarshalJSON()
	if err != nil {
		return nil, err
	}
	if !opts.Indent {
		return out, nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, out, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
