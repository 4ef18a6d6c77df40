package schema

import (
	"contentsync/core/syncerr"
)

// Kind is the declared type of an internal field. The clear/transform logic
// dispatches on it instead of inspecting values at runtime.
type Kind uint8

const (
	// KindText is a plain string field.
	KindText Kind = iota + 1
	// KindList is a list of strings (tags, subjects).
	KindList
	// KindBool is a boolean flag.
	KindBool
	// KindRichText is an HTML fragment with a mime type.
	KindRichText
	// KindDate is a point in time.
	KindDate
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindList:
		return "list"
	case KindBool:
		return "bool"
	case KindRichText:
		return "richtext"
	case KindDate:
		return "date"
	default:
		return "unknown"
	}
}

// Field declares one internal field. Sticky fields survive the
// clear-before-write pass (the stable ID and source bookkeeping fields).
type Field struct {
	Name   string
	Kind   Kind
	Sticky bool
}

// Schema is the fixed, ordered set of internal fields for one content type.
// It is validated once at startup; lookups of unknown names fail instead of
// silently accepting new keys.
type Schema struct {
	fields []Field
	index  map[string]Field
}

// New builds a schema from the given fields. It fails with a setup error on
// empty or duplicate field names and on unknown kinds.
func New(fields ...Field) (*Schema, error) {
	if len(fields) == 0 {
		return nil, syncerr.New(syncerr.KindSetup, "schema has no fields")
	}

	index := make(map[string]Field, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return nil, syncerr.New(syncerr.KindSetup, "schema field with empty name")
		}
		if f.Kind < KindText || f.Kind > KindDate {
			return nil, syncerr.Newf(syncerr.KindSetup, "schema field %q has unknown kind", f.Name)
		}
		if _, dup := index[f.Name]; dup {
			return nil, syncerr.Newf(syncerr.KindSetup, "schema field %q declared twice", f.Name)
		}
		index[f.Name] = f
	}

	return &Schema{fields: fields, index: index}, nil
}

// MustNew is like New but panics on error. Intended for static feature
// schemas declared at package level.
func MustNew(fields ...Field) *Schema {
	s, err := New(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Lookup returns the field declaration for name.
func (s *Schema) Lookup(name string) (Field, bool) {
	f, ok := s.index[name]
	return f, ok
}

// Fields returns the fields in declaration order.
func (s *Schema) Fields() []Field {
	return s.fields
}
