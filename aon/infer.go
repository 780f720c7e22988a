package aon

import (
	"strconv"
	"strings"
)

// ============================================================
// Schema Inference
// ============================================================
//
// BuildSchemas discovers every record shape reachable from a root value.
// Each pending item names a schema and the field path that leads to it.
// The objects for a path are always re-collected from the original root,
// so every object at that position contributes fields, not just the first
// sample seen.

type pending struct {
	name   string
	path   []string
	sample *Value
}

type builder struct {
	root  *Value
	opts  *Options
	table *Table
	work  []pending

	// owners maps a schema name to the path that claimed it (qualify mode).
	owners map[string]string
}

// BuildSchemas infers the schema table for root. The root schema is named
// rootName. Paths that yield no objects are skipped silently, so a root
// that is neither an object nor a list containing objects produces a table
// without the root schema.
func BuildSchemas(root *Value, rootName string, opts ...Option) *Table {
	b := &builder{
		root:   root,
		opts:   applyOptions(opts),
		table:  NewTable(rootName),
		owners: make(map[string]string),
	}
	b.owners[rootName] = ""
	// A schema named like a primitive would decode as that primitive.
	for _, name := range []string{"null", "boolean", "number", "string"} {
		b.owners[name] = reservedOwner
	}
	b.work = append(b.work, pending{name: rootName, sample: root})

	for len(b.work) > 0 {
		b.process(b.next())
	}
	return b.table
}

// next takes the next pending item according to the configured order.
func (b *builder) next() pending {
	if b.opts.Order == BreadthFirst {
		item := b.work[0]
		b.work = b.work[1:]
		return item
	}
	last := len(b.work) - 1
	item := b.work[last]
	b.work = b.work[:last]
	return item
}

func (b *builder) process(item pending) {
	var objects []*Value
	if len(item.path) == 0 {
		objects = topLevelObjects(item.sample)
	} else {
		objects = collectObjects(b.root, item.path)
	}
	if len(objects) == 0 {
		b.debug("schema skipped", "name", item.name, "path", joinPath(item.path))
		return
	}

	// Union of fields in first-observed order.
	var names []string
	observed := make(map[string][]*Value)
	for _, obj := range objects {
		for _, m := range obj.objVal {
			if _, seen := observed[m.Key]; !seen {
				names = append(names, m.Key)
			}
			observed[m.Key] = append(observed[m.Key], m.Value)
		}
	}

	s := &Schema{Name: item.name, Fields: make([]Field, 0, len(names))}
	for _, name := range names {
		s.Fields = append(s.Fields, Field{
			Name: name,
			Type: b.inferField(name, observed[name], item.path),
		})
	}

	if b.table.Has(s.Name) {
		b.debug("schema overwritten", "name", s.Name, "path", joinPath(item.path))
	}
	b.table.Put(s)
	b.debug("schema discovered",
		"name", s.Name,
		"path", joinPath(item.path),
		"objects", len(objects),
		"fields", len(s.Fields))
}

// inferField decides a field type from the values observed for it.
// Nested objects and lists of objects queue a child schema.
func (b *builder) inferField(name string, values []*Value, parent []string) FieldType {
	path := make([]string, len(parent)+1)
	copy(path, parent)
	path[len(parent)] = name

	for _, v := range values {
		if v.IsObject() {
			ref := b.claim(name, path)
			b.work = append(b.work, pending{name: ref, path: path, sample: v})
			return Ref(ref)
		}
	}

	hasList := false
	for _, v := range values {
		if !v.IsList() {
			continue
		}
		hasList = true
		for _, elem := range v.listVal {
			if elem.IsObject() {
				ref := b.claim(name, path)
				b.work = append(b.work, pending{name: ref, path: path, sample: v})
				return ListOf(Ref(ref))
			}
		}
	}
	if hasList {
		// Lists of scalars are not refined.
		return ListOf(Primitive(KindString))
	}

	for _, v := range values {
		if !v.IsNull() {
			return Primitive(Classify(v))
		}
	}
	return Primitive(KindNull)
}

// reservedOwner marks names no path may claim. A path that could produce
// a reserved name as a candidate ends in that name, so never equals it.
const reservedOwner = "\x00"

// claim returns the schema name for a nested shape at path. By default the
// name is the field name itself. In qualify mode a name already claimed by
// another path is extended with parent segments until it is unique.
func (b *builder) claim(field string, path []string) string {
	if !b.opts.QualifyCollisions {
		return field
	}
	key := joinPath(path)
	candidates := []string{field}
	for k := 2; k <= len(path); k++ {
		candidates = append(candidates, strings.Join(path[len(path)-k:], "."))
	}
	candidates = append(candidates, b.table.Root+"."+key)

	for _, c := range candidates {
		if strings.HasPrefix(c, "list<") {
			continue
		}
		if owner, taken := b.owners[c]; !taken || owner == key {
			b.owners[c] = key
			return c
		}
	}
	base := candidates[len(candidates)-1]
	for i := 2; ; i++ {
		c := base + "#" + strconv.Itoa(i)
		if _, taken := b.owners[c]; !taken {
			b.owners[c] = key
			return c
		}
	}
}

func (b *builder) debug(msg string, args ...any) {
	if b.opts.Logger != nil {
		b.opts.Logger.Debug(msg, args...)
	}
}

// topLevelObjects returns the rows of a root value.
func topLevelObjects(v *Value) []*Value {
	switch Classify(v) {
	case KindArray:
		return onlyObjects(v.listVal)
	case KindObject:
		return []*Value{v}
	default:
		return nil
	}
}

// collectObjects walks path from v and returns every object found at its
// end. Lists are expanded at every segment.
func collectObjects(v *Value, path []string) []*Value {
	if len(path) == 0 {
		return topLevelObjects(v)
	}
	key, rest := path[0], path[1:]

	switch Classify(v) {
	case KindArray:
		var out []*Value
		for _, item := range v.listVal {
			if child, ok := item.Lookup(key); ok {
				out = append(out, collectObjects(child, rest)...)
			}
		}
		return out
	case KindObject:
		if child, ok := v.Lookup(key); ok {
			return collectObjects(child, rest)
		}
	}
	return nil
}

func onlyObjects(values []*Value) []*Value {
	out := make([]*Value, 0, len(values))
	for _, v := range values {
		if v.IsObject() {
			out = append(out, v)
		}
	}
	return out
}

func joinPath(path []string) string {
	return strings.Join(path, ".")
}
