package reconcile

import (
	"context"
	"sort"

	"contentsync/core/schema"
	"contentsync/core/syncerr"
	"contentsync/core/transform"
	"contentsync/core/utils"

	"go.uber.org/zap"
)

// AvailabilitySource delivers the availability snapshot for one external
// ID.
type AvailabilitySource interface {
	OrganizationAvailability(ctx context.Context, id string) (map[string]any, error)
}

// AvailabilityOptions configures the narrow status sub-flow.
type AvailabilityOptions struct {
	// Source delivers availability snapshots.
	Source AvailabilitySource
	// Field is the rich text field holding the rendered status control.
	// Defaults to "availability".
	Field string
	// Tracked maps snapshot keys to schema fields that are refreshed
	// alongside the control, status and onsale flags for example.
	Tracked map[string]string
}

// SyncAvailability refreshes the availability subset of existing
// entities: the tracked status fields plus the rendered control. It runs
// more often than full syncs, so unchanged entities are detected and
// skipped without a write.
func (e *Engine) SyncAvailability(ctx context.Context) (*Report, error) {
	if e.opts.Availability == nil {
		return nil, syncerr.New(syncerr.KindSetup, "the availability sub-flow is not configured")
	}
	if !e.running.TryLock() {
		return nil, ErrBusy
	}
	defer e.running.Unlock()

	entities, err := e.opts.Store.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	report := newReport()
	field := e.opts.Availability.Field

	trackedKeys := make([]string, 0, len(e.opts.Availability.Tracked))
	for key := range e.opts.Availability.Tracked {
		trackedKeys = append(trackedKeys, key)
	}
	sort.Strings(trackedKeys)

	for _, entity := range entities {
		id := entity.ExternalID

		snapshot, err := e.opts.Availability.Source.OrganizationAvailability(ctx, id)
		if err != nil {
			if syncerr.IsKind(err, syncerr.KindNotFound) {
				e.opts.Logger.Debug("No availability for entity", zap.String("record", id))
				report.Skipped++
				continue
			}
			e.failRecord(report, id, "availability fetch failed", err)
			continue
		}

		if entity.Fields == nil {
			entity.Fields = schema.NewRecord(e.opts.Schema)
		}

		// Apply onto a clone so change detection can compare against the
		// stored values before anything is committed.
		next := entity.Fields.Clone()
		for _, key := range trackedKeys {
			target := e.opts.Availability.Tracked[key]
			if err := e.opts.Transformer.Apply(ctx, next, id, target, snapshot[key]); err != nil {
				report.Observations.TransformFailed(target, id, err)
				e.opts.Logger.Warn("Availability field transform failed",
					zap.String("field", target), zap.String("record", id), zap.Error(err))
			}
		}

		control := transform.RenderStatusControl(
			utils.SafeString(snapshot["organizationStatus"]),
			utils.SafeString(snapshot["statusMessage"]),
			utils.ToBool(snapshot["onsale"]),
			utils.SafeString(snapshot["url"]),
		)
		if err := next.Set(field, schema.Rich(schema.HTML(control))); err != nil {
			e.failRecord(report, id, "availability field rejected", err)
			continue
		}

		if availabilityUnchanged(entity.Fields, next, field, trackedKeys, e.opts.Availability.Tracked) {
			report.Skipped++
			continue
		}

		entity.Fields = next
		if err := e.opts.Store.Save(ctx, entity); err != nil {
			e.failRecord(report, id, "availability save failed", err)
			continue
		}
		report.Updated++
		report.UpdatedIDs = append(report.UpdatedIDs, id)
	}

	e.opts.Logger.Info("Availability run finished",
		zap.Int("updated", report.Updated),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

func availabilityUnchanged(current, next *schema.Record, controlField string, keys []string, tracked map[string]string) bool {
	fields := make([]string, 0, len(keys)+1)
	for _, key := range keys {
		fields = append(fields, tracked[key])
	}
	fields = append(fields, controlField)

	for _, f := range fields {
		before, _ := current.Get(f)
		after, _ := next.Get(f)
		if !before.Equal(after) {
			return false
		}
	}
	return true
}
