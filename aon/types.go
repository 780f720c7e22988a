package aon

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the classifier tag of a value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the kind name as it appears in schema text.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Classify returns the kind of v. A nil value is null.
func Classify(v *Value) Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// Value is a JSON-like document node.
type Value struct {
	kind Kind

	boolVal  bool
	intVal   int64
	floatVal float64
	isFloat  bool
	strVal   string

	listVal []*Value
	objVal  []Member
}

// Member is one key/value pair of an object.
type Member struct {
	Key   string
	Value *Value
}

// ============================================================
// Constructors
// ============================================================

// Null creates a null value.
func Null() *Value {
	return &Value{kind: KindNull}
}

// Bool creates a boolean value.
func Bool(v bool) *Value {
	return &Value{kind: KindBool, boolVal: v}
}

// Int creates an integer number.
func Int(v int64) *Value {
	return &Value{kind: KindNumber, intVal: v}
}

// Float creates a floating point number.
func Float(v float64) *Value {
	return &Value{kind: KindNumber, floatVal: v, isFloat: true}
}

// Str creates a string value.
func Str(v string) *Value {
	return &Value{kind: KindString, strVal: v}
}

// List creates a list value.
func List(values ...*Value) *Value {
	if values == nil {
		values = []*Value{}
	}
	return &Value{kind: KindArray, listVal: values}
}

// Object creates an object from members. Later duplicates replace earlier
// ones in place.
func Object(members ...Member) *Value {
	v := &Value{kind: KindObject, objVal: make([]Member, 0, len(members))}
	for _, m := range members {
		v.Set(m.Key, m.Value)
	}
	return v
}

// M creates a Member for use in Object construction.
func M(key string, value *Value) Member {
	return Member{Key: key, Value: value}
}

// ============================================================
// Accessors
// ============================================================

// Kind returns the value kind.
func (v *Value) Kind() Kind {
	return Classify(v)
}

// IsNull returns true for nil and null values.
func (v *Value) IsNull() bool {
	return v == nil || v.kind == KindNull
}

// IsObject returns true for objects.
func (v *Value) IsObject() bool {
	return v != nil && v.kind == KindObject
}

// IsList returns true for lists.
func (v *Value) IsList() bool {
	return v != nil && v.kind == KindArray
}

// IsFloat reports whether a number was built from a float.
func (v *Value) IsFloat() bool {
	return v != nil && v.kind == KindNumber && v.isFloat
}

// AsBool returns the boolean value.
func (v *Value) AsBool() (bool, error) {
	if err := v.expect(KindBool); err != nil {
		return false, err
	}
	return v.boolVal, nil
}

// AsInt returns an integer number. Floats with no fractional part convert.
func (v *Value) AsInt() (int64, error) {
	if err := v.expect(KindNumber); err != nil {
		return 0, err
	}
	if !v.isFloat {
		return v.intVal, nil
	}
	if v.floatVal != math.Trunc(v.floatVal) {
		return 0, fmt.Errorf("aon: %v is not an integer", v.floatVal)
	}
	return int64(v.floatVal), nil
}

// AsFloat returns any number as float64.
func (v *Value) AsFloat() (float64, error) {
	if err := v.expect(KindNumber); err != nil {
		return 0, err
	}
	if v.isFloat {
		return v.floatVal, nil
	}
	return float64(v.intVal), nil
}

// AsStr returns the string value.
func (v *Value) AsStr() (string, error) {
	if err := v.expect(KindString); err != nil {
		return "", err
	}
	return v.strVal, nil
}

// AsList returns the list elements.
func (v *Value) AsList() ([]*Value, error) {
	if err := v.expect(KindArray); err != nil {
		return nil, err
	}
	return v.listVal, nil
}

// AsObject returns the object members in insertion order.
func (v *Value) AsObject() ([]Member, error) {
	if err := v.expect(KindObject); err != nil {
		return nil, err
	}
	return v.objVal, nil
}

func (v *Value) expect(k Kind) error {
	if v == nil {
		return fmt.Errorf("aon: nil value")
	}
	if v.kind != k {
		return fmt.Errorf("aon: expected %s, got %s", k, v.kind)
	}
	return nil
}

// Len returns the length of a list or object.
func (v *Value) Len() int {
	switch Classify(v) {
	case KindArray:
		return len(v.listVal)
	case KindObject:
		return len(v.objVal)
	default:
		return 0
	}
}

// Get returns an object member by key, or nil.
func (v *Value) Get(key string) *Value {
	if !v.IsObject() {
		return nil
	}
	for _, m := range v.objVal {
		if m.Key == key {
			return m.Value
		}
	}
	return nil
}

// Lookup is Get with a presence flag.
func (v *Value) Lookup(key string) (*Value, bool) {
	if !v.IsObject() {
		return nil, false
	}
	for _, m := range v.objVal {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Index returns the i-th list element.
func (v *Value) Index(i int) (*Value, error) {
	if !v.IsList() {
		return nil, fmt.Errorf("aon: not a list")
	}
	if i < 0 || i >= len(v.listVal) {
		return nil, fmt.Errorf("aon: index %d out of bounds (len=%d)", i, len(v.listVal))
	}
	return v.listVal[i], nil
}

// ============================================================
// Mutators
// ============================================================

// Set sets an object member, replacing an existing key in place.
func (v *Value) Set(key string, val *Value) {
	if v.kind != KindObject {
		panic("aon: cannot set on non-object")
	}
	for i := range v.objVal {
		if v.objVal[i].Key == key {
			v.objVal[i].Value = val
			return
		}
	}
	v.objVal = append(v.objVal, Member{Key: key, Value: val})
}

// Append adds a value to a list.
func (v *Value) Append(val *Value) {
	if v.kind != KindArray {
		panic("aon: cannot append to non-list")
	}
	v.listVal = append(v.listVal, val)
}

// ============================================================
// Equality
// ============================================================

// Equal reports structural equality. Object member order is ignored and
// numbers compare by numeric value, so Int(1) equals Float(1).
func Equal(a, b *Value) bool {
	ka, kb := Classify(a), Classify(b)
	if ka != kb {
		return false
	}
	switch ka {
	case KindNull:
		return true
	case KindBool:
		return a.boolVal == b.boolVal
	case KindNumber:
		if !a.isFloat && !b.isFloat {
			return a.intVal == b.intVal
		}
		fa, _ := a.AsFloat()
		fb, _ := b.AsFloat()
		return fa == fb
	case KindString:
		return a.strVal == b.strVal
	case KindArray:
		if len(a.listVal) != len(b.listVal) {
			return false
		}
		for i := range a.listVal {
			if !Equal(a.listVal[i], b.listVal[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.objVal) != len(b.objVal) {
			return false
		}
		for _, m := range a.objVal {
			other, ok := b.Lookup(m.Key)
			if !ok || !Equal(m.Value, other) {
				return false
			}
		}
		return true
	}
	return false
}

// String returns compact JSON text, for debugging and test output.
func (v *Value) String() string {
	b, err := v.MarshalJSON()
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return string(b)
}

// numberText returns the canonical decimal text of a number.
// Integral floats keep a ".0" suffix so they decode back as floats.
func (v *Value) numberText() string {
	if !v.isFloat {
		return strconv.FormatInt(v.intVal, 10)
	}
	f := v.floatVal
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "_"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if s == "-0" {
		s = "0"
	}
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
