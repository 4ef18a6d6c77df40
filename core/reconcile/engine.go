package reconcile

import (
	"context"
	"sort"
	"sync"

	"contentsync/core/mapping"
	"contentsync/core/schema"
	"contentsync/core/source"
	"contentsync/core/store"
	"contentsync/core/syncerr"
	"contentsync/core/transform"
	"contentsync/core/utils"

	"go.uber.org/zap"
)

// Options configures a reconciliation engine.
type Options struct {
	// Schema declares the internal fields.
	Schema *schema.Schema
	// Table maps source field names to internal field names.
	Table *mapping.Table
	// Transformer converts raw values into typed field values.
	Transformer *transform.Transformer
	// Source produces the external record set.
	Source source.Adapter
	// Store persists the internal entities.
	Store store.Store

	// TitleOf extracts the display title from a raw record, used on the
	// create path. Defaults to the "title" field, then "name".
	TitleOf func(rec source.RawRecord) string
	// Normalize runs record-level defaulting after all field transforms,
	// date-range end defaulting for example. Optional.
	Normalize func(rec *schema.Record) error
	// Validate enforces record-level invariants before commit. A failure
	// discards the in-progress changes. Optional.
	Validate func(rec *schema.Record) error
	// PublishPolicy derives the workflow state from the committed entity.
	// Defaults to publishing entities that carry a preview reference.
	PublishPolicy func(e *store.Entity) string
	// PreviewField is the field the default publish policy inspects.
	PreviewField string

	// Availability configures the narrow status sub-flow. Optional.
	Availability *AvailabilityOptions

	Logger *zap.Logger
}

// ErrBusy is returned when a run is triggered while another one holds the
// engine.
var ErrBusy = syncerr.New(syncerr.KindRequest, "a sync run is already in progress")

// Engine drives the create/update/retire reconciliation between a record
// source and the content store. At most one run executes at a time; a
// second trigger is rejected instead of queued.
type Engine struct {
	opts    Options
	running sync.Mutex
}

// New validates the options and returns an engine.
func New(opts Options) (*Engine, error) {
	if opts.Schema == nil {
		return nil, syncerr.New(syncerr.KindSetup, "a schema is required")
	}
	if opts.Table == nil {
		return nil, syncerr.New(syncerr.KindSetup, "a mapping table is required")
	}
	if opts.Transformer == nil {
		return nil, syncerr.New(syncerr.KindSetup, "a transformer is required")
	}
	if opts.Source == nil {
		return nil, syncerr.New(syncerr.KindSetup, "a record source is required")
	}
	if opts.Store == nil {
		return nil, syncerr.New(syncerr.KindSetup, "a content store is required")
	}
	if opts.Availability != nil {
		if opts.Availability.Source == nil {
			return nil, syncerr.New(syncerr.KindSetup, "an availability source is required")
		}
		if opts.Availability.Field == "" {
			opts.Availability.Field = "availability"
		}
		if _, ok := opts.Schema.Lookup(opts.Availability.Field); !ok {
			return nil, syncerr.Newf(syncerr.KindSetup,
				"availability field %q is not in the schema", opts.Availability.Field)
		}
		for key, target := range opts.Availability.Tracked {
			if _, ok := opts.Schema.Lookup(target); !ok {
				return nil, syncerr.Newf(syncerr.KindSetup,
					"tracked availability field %q (from %q) is not in the schema", target, key)
			}
		}
	}
	if opts.TitleOf == nil {
		opts.TitleOf = defaultTitleOf
	}
	if opts.PreviewField == "" {
		opts.PreviewField = "preview"
	}
	if opts.PublishPolicy == nil {
		opts.PublishPolicy = previewPublishPolicy(opts.PreviewField)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Engine{opts: opts}, nil
}

func defaultTitleOf(rec source.RawRecord) string {
	if title := utils.SafeString(rec["title"]); title != "" {
		return title
	}
	return utils.SafeString(rec["name"])
}

// previewPublishPolicy publishes entities whose preview field holds a
// stored object reference and sends the rest private. Existence and
// visibility stay decoupled that way.
func previewPublishPolicy(previewField string) func(e *store.Entity) string {
	return func(e *store.Entity) string {
		if e.Fields != nil {
			if v, ok := e.Fields.Get(previewField); ok && !v.IsZero() {
				return store.StatePublished
			}
		}
		if e.PreviewObject != "" {
			return store.StatePublished
		}
		return store.StatePrivate
	}
}

// SyncAll reconciles the full external set against the full internal set.
// External records update known entities and create unknown ones; internal
// entities absent from the external set go private. Failures are isolated
// per record.
func (e *Engine) SyncAll(ctx context.Context) (*Report, error) {
	if !e.running.TryLock() {
		return nil, ErrBusy
	}
	defer e.running.Unlock()

	external, err := e.opts.Source.GetAllRecords(ctx)
	if err != nil {
		return nil, err
	}

	entities, err := e.opts.Store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	internal := make(map[string]*store.Entity, len(entities))
	for _, entity := range entities {
		internal[entity.ExternalID] = entity
	}

	report := newReport()

	ids := make([]string, 0, len(external))
	for id := range external {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		raw := external[id]
		entity, known := internal[id]
		if known {
			// Consume the entry so the leftovers are exactly the
			// records that dropped out of the external set.
			delete(internal, id)
			if err := e.applyRecord(ctx, entity, raw, report); err != nil {
				e.failRecord(report, id, "update failed", err)
				continue
			}
			report.Updated++
			report.UpdatedIDs = append(report.UpdatedIDs, id)
			continue
		}

		if err := e.createRecord(ctx, id, raw, report); err != nil {
			e.failRecord(report, id, "create failed", err)
			continue
		}
		report.Created++
		report.CreatedIDs = append(report.CreatedIDs, id)
	}

	retireIDs := make([]string, 0, len(internal))
	for id := range internal {
		retireIDs = append(retireIDs, id)
	}
	sort.Strings(retireIDs)

	for _, id := range retireIDs {
		entity := internal[id]
		if err := e.opts.Store.Transition(ctx, entity, store.StatePrivate); err != nil {
			e.failRecord(report, id, "retire failed", err)
			continue
		}
		report.Retired++
		report.RetiredIDs = append(report.RetiredIDs, id)
	}

	e.opts.Logger.Info("Sync run finished",
		zap.Int("created", report.Created),
		zap.Int("updated", report.Updated),
		zap.Int("retired", report.Retired),
		zap.Int("failed", report.Failed),
		zap.Int("unmapped_fields", report.Observations.UnmappedCount()),
		zap.Int("transform_failures", report.Observations.TransformFailedCount()),
	)
	return report, nil
}

// SyncOne refreshes a single record on demand: update when the entity
// exists, create when it does not.
func (e *Engine) SyncOne(ctx context.Context, id string) (*Report, error) {
	if id == "" {
		return nil, syncerr.New(syncerr.KindValidation, "a record id is required")
	}

	raw, err := e.opts.Source.GetRecordByID(ctx, id)
	if err != nil {
		return nil, err
	}

	report := newReport()

	entity, err := e.opts.Store.FindByExternalID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entity != nil {
		if err := e.applyRecord(ctx, entity, raw, report); err != nil {
			return nil, err
		}
		report.Updated++
		report.UpdatedIDs = append(report.UpdatedIDs, id)
		return report, nil
	}

	if err := e.createRecord(ctx, id, raw, report); err != nil {
		return nil, err
	}
	report.Created++
	report.CreatedIDs = append(report.CreatedIDs, id)
	return report, nil
}

// createRecord derives a slug from the record's title, creates the entity
// and runs the update path against it.
func (e *Engine) createRecord(ctx context.Context, id string, raw source.RawRecord, report *Report) error {
	title := e.opts.TitleOf(raw)
	entity, err := e.opts.Store.Create(ctx, "", "", id, title)
	if err != nil {
		return err
	}
	return e.applyRecord(ctx, entity, raw, report)
}

// applyRecord is the update path: clear all mapped fields, run the field
// mapper and value transformer across every raw field, normalize, validate
// and commit. Field-level failures are logged and swallowed; validation
// failures discard the whole record.
func (e *Engine) applyRecord(ctx context.Context, entity *store.Entity, raw source.RawRecord, report *Report) error {
	if entity.Fields == nil {
		entity.Fields = schema.NewRecord(e.opts.Schema)
	}
	entity.Fields.ClearAll()

	fields := make([]string, 0, len(raw))
	for field := range raw {
		if field == source.IDField {
			continue
		}
		fields = append(fields, field)
	}
	sort.Strings(fields)

	id := entity.ExternalID
	for _, field := range fields {
		target, disposition := e.opts.Table.Resolve(field)
		switch disposition {
		case mapping.IgnoredField:
			report.Observations.Ignored(field, id)
			continue
		case mapping.Unmapped:
			report.Observations.Unmapped(field, id)
			e.opts.Logger.Warn("Source field is not in the mapping table",
				zap.String("field", field), zap.String("record", id))
			continue
		}

		if err := e.opts.Transformer.Apply(ctx, entity.Fields, id, target, raw[field]); err != nil {
			// The field stays at its cleared default.
			report.Observations.TransformFailed(target, id, err)
			e.opts.Logger.Warn("Field transform failed",
				zap.String("field", target), zap.String("record", id), zap.Error(err))
		}
	}

	if e.opts.Normalize != nil {
		if err := e.opts.Normalize(entity.Fields); err != nil {
			return err
		}
	}
	if e.opts.Validate != nil {
		if err := e.opts.Validate(entity.Fields); err != nil {
			return err
		}
	}

	if title := e.opts.TitleOf(raw); title != "" {
		entity.Title = title
	}

	// Mirror the preview field onto the entity column so storage cleanup
	// and the publish policy can see it without decoding the field blob.
	if v, ok := entity.Fields.Get(e.opts.PreviewField); ok {
		entity.PreviewObject = v.Text
	}

	if err := e.opts.Store.Save(ctx, entity); err != nil {
		return err
	}
	return e.opts.Store.Transition(ctx, entity, e.opts.PublishPolicy(entity))
}

func (e *Engine) failRecord(report *Report, id, msg string, err error) {
	report.Failed++
	report.FailedIDs = append(report.FailedIDs, id)
	e.opts.Logger.Error(msg, zap.String("record", id), zap.Error(err))
}
