package aon

import (
	"fmt"
	"strconv"
	"strings"
)

// Header and footer markers.
const (
	Marker       = "!aon"
	schemasOpen  = "schemas:{"
	schemasClose = "}"
	dataMarker   = "data:"
	endMarker    = "end"
	countPrefix  = "count:"
)

// Marshal encodes a document: an object (one row) or a list of objects.
// The schema table is inferred from the document itself.
func Marshal(doc *Value, rootName string, opts ...Option) (string, error) {
	if rootName == "" {
		return "", fmt.Errorf("%w: root schema name required", ErrInput)
	}
	rows, err := Rows(doc)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", ErrEmptyInput
	}
	table := BuildSchemas(doc, rootName, opts...)
	return Encode(rows, table, rootName)
}

// Rows returns the rows of a document root: the elements of a list, or
// the object itself. Every element of a root list must be an object.
func Rows(doc *Value) ([]*Value, error) {
	switch Classify(doc) {
	case KindArray:
		for i, row := range doc.listVal {
			if k := Classify(row); k != KindObject {
				return nil, fmt.Errorf("%w: root list element %d is %s, want object", ErrInput, i, k)
			}
		}
		return doc.listVal, nil
	case KindObject:
		return []*Value{doc}, nil
	default:
		return nil, fmt.Errorf("%w: document root must be an object or a list of objects, got %s",
			ErrInput, Classify(doc))
	}
}

// Encode renders rows against the root schema of table.
func Encode(rows []*Value, table *Table, rootName string) (string, error) {
	if len(rows) == 0 {
		return "", ErrEmptyInput
	}
	root := table.Get(rootName)
	if root == nil {
		return "", fmt.Errorf("%w: %q", ErrRootSchema, rootName)
	}
	if table.Root != rootName {
		// Header order puts the requested root first.
		view := *table
		view.Root = rootName
		table = &view
	}

	e := &encoder{table: table}
	e.sb.WriteString(Marker)
	e.sb.WriteByte('\n')
	e.sb.WriteString(countPrefix)
	e.sb.WriteString(strconv.Itoa(len(rows)))
	e.sb.WriteByte('\n')
	writeSchemaBlock(&e.sb, table)
	e.sb.WriteString(dataMarker)
	e.sb.WriteByte('\n')
	for _, row := range rows {
		e.encodeRow(row, root)
		e.sb.WriteByte('\n')
	}
	e.sb.WriteString(endMarker)
	e.sb.WriteByte('\n')
	return e.sb.String(), nil
}

// EncodeRow renders a single row without header, for debugging and tests.
func EncodeRow(row *Value, s *Schema, table *Table) string {
	e := &encoder{table: table}
	e.encodeRow(row, s)
	return e.sb.String()
}

type encoder struct {
	sb    strings.Builder
	table *Table
}

// encodeRow writes the fields of obj in schema order. A non-object is "_".
func (e *encoder) encodeRow(obj *Value, s *Schema) {
	if !obj.IsObject() {
		e.sb.WriteString("_")
		return
	}
	for i, f := range s.Fields {
		if i > 0 {
			e.sb.WriteByte(',')
		}
		e.encodeField(obj.Get(f.Name), f.Type)
	}
}

func (e *encoder) encodeField(v *Value, t FieldType) {
	switch t.Kind {
	case TypeRef:
		sub := e.table.Get(t.Name)
		if sub == nil || !v.IsObject() {
			e.sb.WriteString("_")
			return
		}
		e.encodeNested(v, sub)

	case TypeList:
		if !v.IsList() {
			e.sb.WriteString("[]")
			return
		}
		var sub *Schema
		if t.Elem != nil && t.Elem.Kind == TypeRef {
			sub = e.table.Get(t.Elem.Name)
		}
		e.sb.WriteByte('[')
		for i, elem := range v.listVal {
			if i > 0 {
				e.sb.WriteString(" ; ")
			}
			switch {
			case sub != nil && elem.IsObject():
				e.encodeNested(elem, sub)
			case sub != nil:
				e.sb.WriteString("_")
			default:
				e.encodeScalar(elem)
			}
		}
		e.sb.WriteByte(']')

	default:
		e.encodeScalar(v)
	}
}

func (e *encoder) encodeNested(obj *Value, s *Schema) {
	e.sb.WriteByte('(')
	e.encodeRow(obj, s)
	e.sb.WriteByte(')')
}

// encodeScalar writes a primitive. Composites have no scalar form and
// encode as null.
func (e *encoder) encodeScalar(v *Value) {
	switch Classify(v) {
	case KindBool:
		if v.boolVal {
			e.sb.WriteString("true")
		} else {
			e.sb.WriteString("false")
		}
	case KindNumber:
		e.sb.WriteString(v.numberText())
	case KindString:
		e.sb.WriteString(canonString(v.strVal))
	default:
		e.sb.WriteString("_")
	}
}

// canonString writes digit-only strings bare and quotes everything else.
func canonString(s string) string {
	if isDigits(s) {
		return s
	}
	return quoteString(s)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// quoteString returns a quoted string with minimal escapes.
func quoteString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				b.WriteString(fmt.Sprintf(`\u%04X`, r))
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
