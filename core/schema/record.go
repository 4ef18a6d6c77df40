package schema

import (
	"contentsync/core/syncerr"
)

// Record is a normalized record: internal field name to typed value,
// constrained by a schema. Unknown names and kind mismatches are rejected
// at write time.
type Record struct {
	schema  *Schema
	values  map[string]Value
	written map[string]bool
}

// NewRecord creates an empty record bound to the schema.
func NewRecord(s *Schema) *Record {
	return &Record{
		schema:  s,
		values:  make(map[string]Value),
		written: make(map[string]bool),
	}
}

// Schema returns the schema the record is bound to.
func (r *Record) Schema() *Schema {
	return r.schema
}

// Set stores a value for the named field. The field must exist in the
// schema and the value kind must match the declared kind.
func (r *Record) Set(name string, v Value) error {
	f, ok := r.schema.Lookup(name)
	if !ok {
		return syncerr.Newf(syncerr.KindFieldTransform, "field %q is not in the schema", name)
	}
	if f.Kind != v.Kind {
		return syncerr.Newf(syncerr.KindFieldTransform,
			"field %q is %s, got %s value", name, f.Kind, v.Kind)
	}
	r.values[name] = v
	r.written[name] = true
	return nil
}

// Written reports whether the field was set since the last ClearAll. Merge
// handlers use it to tell values from this pass apart from stale sticky
// values carried over from the previous run.
func (r *Record) Written(name string) bool {
	return r.written[name]
}

// Get returns the stored value for the named field. Fields that were never
// set report the zero value of their declared kind.
func (r *Record) Get(name string) (Value, bool) {
	f, ok := r.schema.Lookup(name)
	if !ok {
		return Value{}, false
	}
	if v, set := r.values[name]; set {
		return v, true
	}
	return Zero(f.Kind), true
}

// ClearAll resets every non-sticky field to the empty value of its declared
// kind. This is the clear-before-write pass: a field the next external
// record omits must not keep a stale value from a previous sync.
func (r *Record) ClearAll() {
	for _, f := range r.schema.Fields() {
		if f.Sticky {
			continue
		}
		r.values[f.Name] = Zero(f.Kind)
	}
	r.written = make(map[string]bool)
}

// Clone returns a deep enough copy for change detection snapshots.
func (r *Record) Clone() *Record {
	c := NewRecord(r.schema)
	for name, v := range r.values {
		if v.Kind == KindList && v.List != nil {
			v.List = append([]string(nil), v.List...)
		}
		c.values[name] = v
	}
	for name := range r.written {
		c.written[name] = true
	}
	return c
}

// Values returns the underlying value map. Intended for store serialization.
func (r *Record) Values() map[string]Value {
	return r.values
}
