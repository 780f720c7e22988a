package aon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		v    *Value
		want Kind
	}{
		{"nil", nil, KindNull},
		{"null", Null(), KindNull},
		{"bool", Bool(true), KindBool},
		{"int", Int(3), KindNumber},
		{"float", Float(3.5), KindNumber},
		{"string", Str("x"), KindString},
		{"list", List(Int(1)), KindArray},
		{"object", Object(M("a", Int(1))), KindObject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.v))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "null", KindNull.String())
	assert.Equal(t, "boolean", KindBool.String())
	assert.Equal(t, "number", KindNumber.String())
	assert.Equal(t, "string", KindString.String())
	assert.Equal(t, "array", KindArray.String())
	assert.Equal(t, "object", KindObject.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestObjectSetKeepsOrder(t *testing.T) {
	obj := Object(M("b", Int(1)), M("a", Int(2)))
	obj.Set("b", Int(3))
	obj.Set("c", Int(4))

	members, err := obj.AsObject()
	require.NoError(t, err)
	require.Len(t, members, 3)
	assert.Equal(t, "b", members[0].Key)
	assert.Equal(t, "a", members[1].Key)
	assert.Equal(t, "c", members[2].Key)

	n, err := obj.Get("b").AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestObjectDuplicateKeysCollapse(t *testing.T) {
	obj := Object(M("a", Int(1)), M("a", Int(2)))
	assert.Equal(t, 1, obj.Len())
	assert.True(t, Equal(Int(2), obj.Get("a")))
}

func TestAccessorsRejectWrongKind(t *testing.T) {
	_, err := Str("x").AsInt()
	assert.Error(t, err)

	_, err = Int(1).AsStr()
	assert.Error(t, err)

	var nilVal *Value
	_, err = nilVal.AsBool()
	assert.Error(t, err)

	_, err = Float(1.5).AsInt()
	assert.Error(t, err)

	n, err := Float(2).AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestIndex(t *testing.T) {
	list := List(Str("a"), Str("b"))

	v, err := list.Index(1)
	require.NoError(t, err)
	assert.True(t, Equal(Str("b"), v))

	_, err = list.Index(2)
	assert.Error(t, err)

	_, err = Str("x").Index(0)
	assert.Error(t, err)
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b *Value
		want bool
	}{
		{"nil equals null", nil, Null(), true},
		{"int equals float", Int(1), Float(1), true},
		{"different numbers", Int(1), Int(2), false},
		{"string vs number", Str("1"), Int(1), false},
		{"object order ignored",
			Object(M("a", Int(1)), M("b", Str("x"))),
			Object(M("b", Str("x")), M("a", Int(1))),
			true},
		{"object missing key",
			Object(M("a", Int(1))),
			Object(M("a", Int(1)), M("b", Null())),
			false},
		{"list order matters",
			List(Int(1), Int(2)),
			List(Int(2), Int(1)),
			false},
		{"nested",
			Object(M("l", List(Object(M("x", Bool(true)))))),
			Object(M("l", List(Object(M("x", Bool(true)))))),
			true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
		})
	}
}

func TestNumberText(t *testing.T) {
	tests := []struct {
		v    *Value
		want string
	}{
		{Int(0), "0"},
		{Int(-42), "-42"},
		{Float(2.5), "2.5"},
		{Float(3), "3.0"},
		{Float(-0.0), "0.0"},
		{Float(1e21), "1e+21"},
		{Float(0.1), "0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.numberText())
		})
	}
}
