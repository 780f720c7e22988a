package aon

import (
	"fmt"
	"strconv"
	"strings"
)

// Unmarshal decodes AON text. A single data row decodes to an object;
// any other row count decodes to a list of objects.
func Unmarshal(input string) (*Value, error) {
	doc, err := ParseHeader(input)
	if err != nil {
		return nil, err
	}
	return Decode(doc)
}

// Decode decodes the buffered rows of a scanned document.
func Decode(doc *Document) (*Value, error) {
	root := doc.Table.Get(doc.Table.Root)
	if root == nil {
		return nil, fmt.Errorf("%w: %q", ErrRootSchema, doc.Table.Root)
	}
	d := &decoder{table: doc.Table}

	rows := doc.Rows
	results := make([]*Value, 0, len(rows))
	if len(rows) == 0 && len(root.Fields) == 0 && doc.Count > 0 {
		// Rows of a field-less schema are blank lines.
		for i := 0; i < doc.Count; i++ {
			results = append(results, Object())
		}
	}

	for i, row := range rows {
		parts := splitCommas(row)
		if len(parts) != len(root.Fields) {
			return nil, &MismatchError{Row: i + 1, Want: len(root.Fields), Got: len(parts)}
		}
		obj := Object()
		for j, f := range root.Fields {
			obj.Set(f.Name, d.decodeValue(f.Type, parts[j]))
		}
		results = append(results, obj)
	}

	if len(results) == 1 {
		return results[0], nil
	}
	return List(results...), nil
}

// DecodeRow decodes one data row against s, for debugging and tests.
// Unlike Decode it does not check the field count.
func DecodeRow(row string, s *Schema, table *Table) *Value {
	d := &decoder{table: table}
	return d.decodeObject(s, splitCommas(row))
}

type decoder struct {
	table *Table
}

// decodeValue decodes text against a declared type. Malformed text never
// fails: numbers that do not parse become null and unknown types become
// strings.
func (d *decoder) decodeValue(t FieldType, s string) *Value {
	s = strings.TrimSpace(s)
	if s == "_" {
		return Null()
	}

	switch t.Kind {
	case TypePrimitive:
		switch t.Prim {
		case KindBool:
			return Bool(s == "true")
		case KindNumber:
			return parseNumber(s)
		case KindString:
			return Str(unquote(s))
		}
		return Str(s)

	case TypeList:
		if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
			return List()
		}
		elem := Primitive(KindString)
		if t.Elem != nil {
			elem = *t.Elem
		}
		items := splitSemicolons(s[1 : len(s)-1])
		out := make([]*Value, 0, len(items))
		for _, item := range items {
			out = append(out, d.decodeValue(elem, item))
		}
		return List(out...)

	case TypeRef:
		sub := d.table.Get(t.Name)
		if sub == nil {
			return Str(unquote(s))
		}
		if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
			return Null()
		}
		return d.decodeObject(sub, splitCommas(s[1:len(s)-1]))
	}
	return Str(s)
}

// decodeObject zips parts with schema fields. Missing parts decode as null
// and extra parts are dropped.
func (d *decoder) decodeObject(s *Schema, parts []string) *Value {
	obj := Object()
	for i, f := range s.Fields {
		if i < len(parts) {
			obj.Set(f.Name, d.decodeValue(f.Type, parts[i]))
		} else {
			obj.Set(f.Name, Null())
		}
	}
	return obj
}

// parseNumber tries an integer, then a float. Anything else is null.
func parseNumber(s string) *Value {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(n)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Float(f)
	}
	return Null()
}

// unquote strips one layer of quotes and resolves escapes. Text that is
// not a quoted string is returned verbatim.
func unquote(s string) string {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}
	inner := s[1 : len(s)-1]
	if strings.IndexByte(inner, '\\') < 0 {
		return inner
	}

	var b strings.Builder
	b.Grow(len(inner))
	for i := 0; i < len(inner); i++ {
		if inner[i] != '\\' || i+1 >= len(inner) {
			b.WriteByte(inner[i])
			continue
		}
		next := inner[i+1]
		switch next {
		case '\\', '"', '/':
			b.WriteByte(next)
			i++
		case 'n':
			b.WriteByte('\n')
			i++
		case 'r':
			b.WriteByte('\r')
			i++
		case 't':
			b.WriteByte('\t')
			i++
		case 'u':
			if i+5 < len(inner) {
				if v, err := strconv.ParseUint(inner[i+2:i+6], 16, 16); err == nil {
					b.WriteRune(rune(v))
					i += 5
					continue
				}
			}
			b.WriteByte('\\')
		default:
			// Unknown escape: keep as is.
			b.WriteByte('\\')
			b.WriteByte(next)
			i++
		}
	}
	return b.String()
}
