package docfmt

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"

	"github.com/Neumenon/aon/aon"
)

func init() {
	register(MsgPack, msgpackCodec{})
}

// msgpackCodec streams maps and arrays element by element so map entries
// keep their wire order in both directions.
type msgpackCodec struct{}

func (msgpackCodec) Load(data []byte) (*aon.Value, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	v, err := readMsgpack(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.PeekCode(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after document")
	}
	return v, nil
}

func readMsgpack(dec *msgpack.Decoder) (*aon.Value, error) {
	c, err := dec.PeekCode()
	if err != nil {
		return nil, err
	}

	switch {
	case msgpcode.IsFixedMap(c) || c == msgpcode.Map16 || c == msgpcode.Map32:
		n, err := dec.DecodeMapLen()
		if err != nil {
			return nil, err
		}
		obj := aon.Object()
		for i := 0; i < n; i++ {
			k, err := dec.DecodeInterface()
			if err != nil {
				return nil, err
			}
			key := msgpackKey(k)
			v, err := readMsgpack(dec)
			if err != nil {
				return nil, fmt.Errorf("map[%q]: %w", key, err)
			}
			obj.Set(key, v)
		}
		return obj, nil

	case msgpcode.IsFixedArray(c) || c == msgpcode.Array16 || c == msgpcode.Array32:
		n, err := dec.DecodeArrayLen()
		if err != nil {
			return nil, err
		}
		list := aon.List()
		for i := 0; i < n; i++ {
			v, err := readMsgpack(dec)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			list.Append(v)
		}
		return list, nil
	}

	x, err := dec.DecodeInterface()
	if err != nil {
		return nil, err
	}
	return aon.FromGo(x)
}

func msgpackKey(k any) string {
	switch t := k.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	}
	return fmt.Sprint(k)
}

func (msgpackCodec) Dump(v *aon.Value, _ DumpOptions) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := writeMsgpack(enc, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeMsgpack(enc *msgpack.Encoder, v *aon.Value) error {
	switch v.Kind() {
	case aon.KindBool:
		b, _ := v.AsBool()
		return enc.EncodeBool(b)
	case aon.KindNumber:
		if v.IsFloat() {
			f, _ := v.AsFloat()
			return enc.EncodeFloat64(f)
		}
		i, _ := v.AsInt()
		return enc.EncodeInt(i)
	case aon.KindString:
		s, _ := v.AsStr()
		return enc.EncodeString(s)
	case aon.KindArray:
		items, _ := v.AsList()
		if err := enc.EncodeArrayLen(len(items)); err != nil {
			return err
		}
		for _, item := range items {
			if err := writeMsgpack(enc, item); err != nil {
				return err
			}
		}
		return nil
	case aon.KindObject:
		members, _ := v.AsObject()
		if err := enc.EncodeMapLen(len(members)); err != nil {
			return err
		}
		for _, m := range members {
			if err := enc.EncodeString(m.Key); err != nil {
				return err
			}
			if err := writeMsgpack(enc, m.Value); err != nil {
				return err
			}
		}
		return nil
	}
	return enc.EncodeNil()
}
