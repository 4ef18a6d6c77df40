package transform

import (
	"context"

	"contentsync/core/schema"
	"contentsync/core/syncerr"
	"contentsync/core/utils"
)

// Target bundles everything a handler needs to populate one field of a
// normalized record.
type Target struct {
	Record   *schema.Record
	RecordID string
	Field    schema.Field
	Raw      any
}

// Handler converts a raw source value and writes the result into the
// record. Errors are scoped to the field; they never abort the record.
type Handler func(ctx context.Context, t Target) error

// Transformer converts raw source values into typed field values. Special
// handlers registered per internal field override the default coercion.
type Transformer struct {
	schema   *schema.Schema
	handlers map[string]Handler
}

// New creates a transformer bound to a schema.
func New(s *schema.Schema) *Transformer {
	return &Transformer{
		schema:   s,
		handlers: make(map[string]Handler),
	}
}

// Register installs a handler for an internal field, replacing any default
// coercion for that field.
func (tr *Transformer) Register(field string, h Handler) *Transformer {
	tr.handlers[field] = h
	return tr
}

// Apply transforms the raw value and stores the result under the named
// field. The default path coerces by declared kind; rich text and date
// fields have no safe default and require a registered handler.
func (tr *Transformer) Apply(ctx context.Context, rec *schema.Record, recordID, field string, raw any) error {
	f, ok := tr.schema.Lookup(field)
	if !ok {
		return syncerr.Newf(syncerr.KindFieldTransform, "field %q is not in the schema", field).
			WithField(field).WithRecord(recordID)
	}

	if h, registered := tr.handlers[field]; registered {
		if err := h(ctx, Target{Record: rec, RecordID: recordID, Field: f, Raw: raw}); err != nil {
			return err
		}
		return nil
	}

	var v schema.Value
	switch f.Kind {
	case schema.KindText:
		v = schema.Text(utils.SafeString(raw))
	case schema.KindBool:
		v = schema.Bool(utils.ToBool(raw))
	case schema.KindList:
		v = schema.List(utils.ToStringList(raw))
	default:
		return syncerr.Newf(syncerr.KindFieldTransform,
			"field kind %s has no default coercion, register a handler", f.Kind).
			WithField(field).WithRecord(recordID)
	}
	return rec.Set(field, v)
}
