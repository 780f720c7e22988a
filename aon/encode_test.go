package aon

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal_FlatObject(t *testing.T) {
	got, err := Marshal(mustJSON(t, `{"a":1,"b":"7000"}`), "r")
	require.NoError(t, err)

	want := `!aon
count:1
schemas:{
  r:(a:number,b:string)
}
data:
1,7000
end
`
	assert.Equal(t, want, got)
}

func TestMarshal_ListOfScalars(t *testing.T) {
	got, err := Marshal(mustJSON(t, `[{"name":"x","tags":["a","b"]}]`), "item")
	require.NoError(t, err)

	assert.Contains(t, got, "  item:(name:string,tags:list<string>)\n")
	assert.Contains(t, got, "data:\n\"x\",[\"a\" ; \"b\"]\nend\n")
}

func TestMarshal_NestedObject(t *testing.T) {
	got, err := Marshal(mustJSON(t, `{"name":"x","addr":{"city":"y"}}`), "item")
	require.NoError(t, err)

	want := `!aon
count:1
schemas:{
  item:(name:string,addr:addr)
  addr:(city:string)
}
data:
"x",("y")
end
`
	assert.Equal(t, want, got)
}

func TestMarshal_ListOfNested(t *testing.T) {
	doc := mustJSON(t, `[
		{"id":1,"name":"Alice","profile":{"age":30,"addresses":[
			{"zip":"06114020","street":"Rua das Dores"},
			{"zip":"06114021","street":"Rua Azul"}
		]}},
		{"id":2,"name":"Bob","profile":{"age":41,"addresses":[]}}
	]`)
	got, err := Marshal(doc, "users")
	require.NoError(t, err)

	want := `!aon
count:2
schemas:{
  users:(id:number,name:string,profile:profile)
  profile:(age:number,addresses:list<addresses>)
  addresses:(zip:string,street:string)
}
data:
1,"Alice",(30,[(06114020,"Rua das Dores") ; (06114021,"Rua Azul")])
2,"Bob",(41,[])
end
`
	assert.Equal(t, want, got)
}

func TestMarshal_RootSchemaFirst(t *testing.T) {
	// Header order puts the root first even when it was registered later.
	table := NewTable("r")
	table.Put(&Schema{Name: "child", Fields: []Field{{Name: "x", Type: Primitive(KindNumber)}}})
	table.Put(&Schema{Name: "r", Fields: []Field{{Name: "c", Type: Ref("child")}}})

	got, err := Encode([]*Value{mustJSON(t, `{"c":{"x":1}}`)}, table, "r")
	require.NoError(t, err)

	lines := strings.Split(got, "\n")
	assert.Equal(t, "  r:(c:child)", lines[3])
	assert.Equal(t, "  child:(x:number)", lines[4])
}

func TestMarshal_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  *Value
		want error
	}{
		{"empty list", List(), ErrEmptyInput},
		{"scalar root", Str("x"), ErrInput},
		{"null root", Null(), ErrInput},
		{"list of scalars", List(Int(1)), ErrInput},
		{"scalar before object", List(Int(1), Object(M("a", Int(1)), M("b", Int(2)))), ErrInput},
		{"null element", List(Object(M("a", Int(1))), Null()), ErrInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Marshal(tt.doc, "r")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestMarshal_EmptyRootName(t *testing.T) {
	_, err := Marshal(Object(M("a", Int(1))), "")
	assert.ErrorIs(t, err, ErrInput)
}

func TestEncode_Errors(t *testing.T) {
	table := BuildSchemas(mustJSON(t, `{"a":1}`), "r")

	_, err := Encode(nil, table, "r")
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = Encode([]*Value{mustJSON(t, `{"a":1}`)}, table, "missing")
	assert.ErrorIs(t, err, ErrRootSchema)
}

func TestEncodeRow_Scalars(t *testing.T) {
	s := &Schema{Name: "r", Fields: []Field{
		{Name: "n", Type: Primitive(KindNull)},
		{Name: "t", Type: Primitive(KindBool)},
		{Name: "f", Type: Primitive(KindBool)},
		{Name: "i", Type: Primitive(KindNumber)},
		{Name: "x", Type: Primitive(KindNumber)},
		{Name: "zip", Type: Primitive(KindString)},
		{Name: "s", Type: Primitive(KindString)},
		{Name: "empty", Type: Primitive(KindString)},
		{Name: "missing", Type: Primitive(KindString)},
	}}
	row := Object(
		M("n", Null()),
		M("t", Bool(true)),
		M("f", Bool(false)),
		M("i", Int(-7)),
		M("x", Float(2.5)),
		M("zip", Str("00123")),
		M("s", Str("a \"b\"\n")),
		M("empty", Str("")),
	)

	got := EncodeRow(row, s, NewTable("r"))
	assert.Equal(t, `_,true,false,-7,2.5,00123,"a \"b\"\n","",_`, got)
}

func TestEncodeRow_ShapeMismatches(t *testing.T) {
	table := NewTable("r")
	table.Put(&Schema{Name: "sub", Fields: []Field{{Name: "k", Type: Primitive(KindNumber)}}})
	s := &Schema{Name: "r", Fields: []Field{
		{Name: "ref", Type: Ref("sub")},
		{Name: "objs", Type: ListOf(Ref("sub"))},
		{Name: "strs", Type: ListOf(Primitive(KindString))},
		{Name: "prim", Type: Primitive(KindString)},
	}}
	row := Object(
		M("ref", Str("not an object")),
		M("objs", List(Object(M("k", Int(1))), Int(5))),
		M("strs", Str("not a list")),
		M("prim", List(Int(1))),
	)

	got := EncodeRow(row, s, table)
	assert.Equal(t, `_,[(1) ; _],[],_`, got)
}

func TestEncodeRow_ScalarListMixed(t *testing.T) {
	s := &Schema{Name: "r", Fields: []Field{{Name: "l", Type: ListOf(Primitive(KindString))}}}
	row := Object(M("l", List(Int(1), Bool(true), Null(), Str("x"), Str("42"))))

	assert.Equal(t, `[1 ; true ; _ ; "x" ; 42]`, EncodeRow(row, s, NewTable("r")))
}

func TestQuoteString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", `"plain"`},
		{`back\slash`, `"back\\slash"`},
		{"tab\there", `"tab\there"`},
		{"cr\r", `"cr\r"`},
		{"bell\x07", `"bell\u0007"`},
		{"unicodé ✓", `"unicodé ✓"`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, quoteString(tt.in))
		})
	}
}
