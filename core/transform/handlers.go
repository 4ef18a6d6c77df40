package transform

import (
	"context"
	"strings"
	"time"

	"contentsync/core/schema"
	"contentsync/core/syncerr"
	"contentsync/core/utils"
)

// DateLayout is the fixed source date format.
const DateLayout = "2006-01-02 15:04"

// Title copies the raw value into a text field, trimmed.
func Title() Handler {
	return func(ctx context.Context, t Target) error {
		return t.Record.Set(t.Field.Name, schema.Text(strings.TrimSpace(utils.SafeString(t.Raw))))
	}
}

// Date parses the raw value using the fixed source layout. A parse failure
// fails the field, not the record. Empty input leaves the field cleared.
func Date() Handler {
	return func(ctx context.Context, t Target) error {
		raw := strings.TrimSpace(utils.SafeString(t.Raw))
		if raw == "" {
			return nil
		}
		parsed, err := time.Parse(DateLayout, raw)
		if err != nil {
			return syncerr.Wrap(syncerr.KindFieldTransform, "invalid date", err).
				WithField(t.Field.Name).WithRecord(t.RecordID)
		}
		return t.Record.Set(t.Field.Name, schema.Date(parsed))
	}
}

// mergeTags merges new tags into a list field. On the first write of a run
// the stale list is pruned down to the pinned tags; later merges into the
// same field keep what this run already collected. Merge order between
// source fields stops mattering that way.
func mergeTags(rec *schema.Record, field string, tags, pinned []string) error {
	pinnedSet := make(map[string]struct{}, len(pinned))
	for _, p := range pinned {
		pinnedSet[p] = struct{}{}
	}
	current, _ := rec.Get(field)

	merged := make([]string, 0, len(current.List)+len(tags))
	seen := make(map[string]struct{})
	for _, tag := range current.List {
		if !rec.Written(field) {
			if _, isPinned := pinnedSet[tag]; !isPinned {
				continue
			}
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		merged = append(merged, tag)
	}
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		merged = append(merged, tag)
	}
	return rec.Set(field, schema.List(merged))
}

// TagMerge replaces the non-pinned portion of a tag list. Pinned tags
// already present on the record survive the merge, so curation done in the
// store (a "frontpage" tag, say) is never lost to a sync run.
func TagMerge(pinned ...string) Handler {
	return func(ctx context.Context, t Target) error {
		return mergeTags(t.Record, t.Field.Name, utils.ToStringList(t.Raw), pinned)
	}
}

// SplitMerge splits a delimited scalar (a comma-separated country cell, for
// example) and merges the parts into a tag list field.
func SplitMerge(separator string, pinned ...string) Handler {
	return func(ctx context.Context, t Target) error {
		return mergeTags(t.Record, t.Field.Name, splitParts(utils.SafeString(t.Raw), separator), pinned)
	}
}

// SplitFirst splits a delimited scalar, stores the first part in the field
// and merges every part into the named list field. Covers cells like a
// country list, where the first entry is the primary value and all entries
// double as tags.
func SplitFirst(separator, listField string, pinned ...string) Handler {
	return func(ctx context.Context, t Target) error {
		parts := splitParts(utils.SafeString(t.Raw), separator)
		if len(parts) == 0 {
			return t.Record.Set(t.Field.Name, schema.Text(""))
		}
		if err := mergeTags(t.Record, listField, parts, pinned); err != nil {
			return err
		}
		return t.Record.Set(t.Field.Name, schema.Text(parts[0]))
	}
}

func splitParts(raw, separator string) []string {
	parts := make([]string, 0, 4)
	for _, p := range strings.Split(raw, separator) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
