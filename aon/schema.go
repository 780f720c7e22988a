package aon

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// TypeKind indicates the kind of a field type.
type TypeKind uint8

const (
	TypePrimitive TypeKind = iota // null, boolean, number, string
	TypeRef                       // reference to a named schema
	TypeList                      // list<T>
)

// FieldType is the declared type of a schema field.
type FieldType struct {
	Kind TypeKind
	Prim Kind       // For Kind == TypePrimitive
	Name string     // For Kind == TypeRef
	Elem *FieldType // For Kind == TypeList
}

// Primitive returns a primitive field type.
func Primitive(k Kind) FieldType {
	return FieldType{Kind: TypePrimitive, Prim: k}
}

// Ref returns a schema reference type.
func Ref(name string) FieldType {
	return FieldType{Kind: TypeRef, Name: name}
}

// ListOf returns list<elem>.
func ListOf(elem FieldType) FieldType {
	return FieldType{Kind: TypeList, Elem: &elem}
}

// String returns the type as written in a schema header.
func (t FieldType) String() string {
	switch t.Kind {
	case TypePrimitive:
		return t.Prim.String()
	case TypeRef:
		return t.Name
	case TypeList:
		if t.Elem == nil {
			return "list<string>"
		}
		return "list<" + t.Elem.String() + ">"
	default:
		return "unknown"
	}
}

// ParseFieldType parses type text. Primitive names map to primitives,
// list<...> nests, and anything else is a schema reference. Whether the
// referenced schema exists is only known at decode time.
func ParseFieldType(s string) FieldType {
	s = strings.TrimSpace(s)
	switch s {
	case "null":
		return Primitive(KindNull)
	case "boolean":
		return Primitive(KindBool)
	case "number":
		return Primitive(KindNumber)
	case "string":
		return Primitive(KindString)
	}
	if strings.HasPrefix(s, "list<") && strings.HasSuffix(s, ">") {
		return ListOf(ParseFieldType(s[5 : len(s)-1]))
	}
	return Ref(s)
}

// Field is one positional field of a schema.
type Field struct {
	Name string
	Type FieldType
}

// Schema is a named, ordered record shape.
type Schema struct {
	Name   string
	Fields []Field
}

// Field returns the field with the given name, or nil.
func (s *Schema) Field(name string) *Field {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}

// Canonical returns the schema as a header line body: name:(f:t,...).
func (s *Schema) Canonical() string {
	var sb strings.Builder
	sb.WriteString(s.Name)
	sb.WriteString(":(")
	for i, f := range s.Fields {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(f.Name)
		sb.WriteByte(':')
		sb.WriteString(f.Type.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// Table maps schema names to schemas and remembers the order in which
// names were first registered.
type Table struct {
	Root    string
	schemas map[string]*Schema
	order   []string
}

// NewTable creates an empty table with the given root name.
func NewTable(root string) *Table {
	return &Table{Root: root, schemas: make(map[string]*Schema)}
}

// Put registers s under s.Name. An existing entry with the same name is
// overwritten but keeps its position.
func (t *Table) Put(s *Schema) {
	if _, ok := t.schemas[s.Name]; !ok {
		t.order = append(t.order, s.Name)
	}
	t.schemas[s.Name] = s
}

// Get returns a schema by name, or nil.
func (t *Table) Get(name string) *Schema {
	if t == nil {
		return nil
	}
	return t.schemas[name]
}

// Has reports whether name is registered.
func (t *Table) Has(name string) bool {
	return t.Get(name) != nil
}

// Len returns the number of schemas.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.schemas)
}

// Names returns schema names in header order: the root first, then the
// rest in registration order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.order))
	if _, ok := t.schemas[t.Root]; ok {
		names = append(names, t.Root)
	}
	for _, n := range t.order {
		if n != t.Root {
			names = append(names, n)
		}
	}
	return names
}

// Schemas returns schemas in header order.
func (t *Table) Schemas() []*Schema {
	names := t.Names()
	out := make([]*Schema, len(names))
	for i, n := range names {
		out[i] = t.schemas[n]
	}
	return out
}

// Canonical returns the schemas:{...} header block.
func (t *Table) Canonical() string {
	var sb strings.Builder
	writeSchemaBlock(&sb, t)
	return sb.String()
}

// Fingerprint returns the hex SHA-256 of the canonical schema block.
// Tables with the same root, schemas and order share a fingerprint.
func (t *Table) Fingerprint() string {
	sum := sha256.Sum256([]byte(t.Canonical()))
	return hex.EncodeToString(sum[:])
}

func writeSchemaBlock(sb *strings.Builder, t *Table) {
	sb.WriteString("schemas:{\n")
	for _, s := range t.Schemas() {
		sb.WriteString("  ")
		sb.WriteString(s.Canonical())
		sb.WriteByte('\n')
	}
	sb.WriteString("}\n")
}
