package twlint

import "fmt"

// Kind discriminates the variants of Value.
type Kind int

const (
	KindInvalid Kind = iota
	KindString
	KindNumber
	KindBool
	KindNull
	KindMapping
	KindList
	// KindExpr holds a source expression the loader could not reduce to data,
	// e.g. require('@tailwindcss/forms') inside plugins.
	KindExpr
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	case KindMapping:
		return "mapping"
	case KindList:
		return "list"
	case KindExpr:
		return "expression"
	default:
		return "invalid"
	}
}

// Pos is a 1-based position in a config source. The zero Pos means unknown.
type Pos struct {
	Line   int
	Column int
}

// IsValid reports whether the position points into a source file.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Value is one node of a config tree.
//
// Scalar text lives in Text (numbers keep their source spelling, bools are
// "true"/"false", expressions hold their rendered source). Mappings keep
// every entry in source order, duplicates included.
type Value struct {
	Kind    Kind
	Text    string
	Entries []Entry
	Items   []Value
	Pos     Pos
}

// Entry is a key/value pair inside a mapping.
type Entry struct {
	Key    string
	KeyPos Pos
	Value  Value
}

// String builds a string value.
func String(s string) Value { return Value{Kind: KindString, Text: s} }

// Number builds a number value from its source spelling.
func Number(text string) Value { return Value{Kind: KindNumber, Text: text} }

// Bool builds a bool value.
func Bool(b bool) Value {
	if b {
		return Value{Kind: KindBool, Text: "true"}
	}
	return Value{Kind: KindBool, Text: "false"}
}

// Null builds a null value.
func Null() Value { return Value{Kind: KindNull} }

// Expr builds an opaque expression value.
func Expr(src string) Value { return Value{Kind: KindExpr, Text: src} }

// Mapping builds a mapping from entries.
func Mapping(entries ...Entry) Value {
	if entries == nil {
		entries = []Entry{}
	}
	return Value{Kind: KindMapping, Entries: entries}
}

// List builds a list from items.
func List(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{Kind: KindList, Items: items}
}

// E is shorthand for an Entry without position.
func E(key string, v Value) Entry {
	return Entry{Key: key, Value: v}
}

// IsZero reports whether v was never set.
func (v Value) IsZero() bool {
	return v.Kind == KindInvalid
}

// Get returns the value stored under key. With duplicate keys the last one
// wins, which is how the source formats resolve them.
func (v Value) Get(key string) (Value, bool) {
	if v.Kind != KindMapping {
		return Value{}, false
	}
	for i := len(v.Entries) - 1; i >= 0; i-- {
		if v.Entries[i].Key == key {
			return v.Entries[i].Value, true
		}
	}
	return Value{}, false
}

// Lookup walks a key path through nested mappings.
func (v Value) Lookup(path ...string) (Value, bool) {
	cur := v
	for _, key := range path {
		next, ok := cur.Get(key)
		if !ok {
			return Value{}, false
		}
		cur = next
	}
	return cur, true
}

// Keys returns mapping keys in source order, duplicates included.
func (v Value) Keys() []string {
	keys := make([]string, 0, len(v.Entries))
	for _, e := range v.Entries {
		keys = append(keys, e.Key)
	}
	return keys
}

// Equal compares two trees structurally. Positions are ignored.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindMapping:
		if len(v.Entries) != len(o.Entries) {
			return false
		}
		for i := range v.Entries {
			if v.Entries[i].Key != o.Entries[i].Key || !v.Entries[i].Value.Equal(o.Entries[i].Value) {
				return false
			}
		}
		return true
	case KindList:
		if len(v.Items) != len(o.Items) {
			return false
		}
		for i := range v.Items {
			if !v.Items[i].Equal(o.Items[i]) {
				return false
			}
		}
		return true
	default:
		return v.Text == o.Text
	}
}
