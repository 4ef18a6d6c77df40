package mapping

import (
	"contentsync/core/schema"
	"contentsync/core/syncerr"
)

// Ignored is the explicit ignore marker in a mapping table: the source
// field is known and intentionally dropped, distinct from "not found".
const Ignored = ""

// Disposition classifies the outcome of resolving a source field.
type Disposition int

const (
	// Mapped means the source field resolves to an internal field.
	Mapped Disposition = iota + 1
	// IgnoredField means the source field carries the explicit ignore
	// marker and is dropped intentionally.
	IgnoredField
	// Unmapped means the source field is absent from the table entirely,
	// signalling source/schema drift that must be surfaced.
	Unmapped
)

// String returns the lowercase name of the disposition.
func (d Disposition) String() string {
	switch d {
	case Mapped:
		return "mapped"
	case IgnoredField:
		return "ignored"
	case Unmapped:
		return "unmapped"
	default:
		return "unknown"
	}
}

// Table is the static, declarative mapping from source field names to
// internal field names. An empty target is the explicit ignore marker.
type Table struct {
	entries map[string]string
}

// NewTable builds a mapping table and validates it against the schema:
// every non-ignored target must name a declared internal field.
func NewTable(entries map[string]string, s *schema.Schema) (*Table, error) {
	if len(entries) == 0 {
		return nil, syncerr.New(syncerr.KindSetup, "mapping table is empty")
	}
	for src, dst := range entries {
		if src == "" {
			return nil, syncerr.New(syncerr.KindSetup, "mapping table has an empty source field")
		}
		if dst == Ignored {
			continue
		}
		if _, ok := s.Lookup(dst); !ok {
			return nil, syncerr.Newf(syncerr.KindSetup,
				"mapping target %q (source %q) is not in the schema", dst, src)
		}
	}

	copied := make(map[string]string, len(entries))
	for k, v := range entries {
		copied[k] = v
	}
	return &Table{entries: copied}, nil
}

// Resolve translates a source field name. Pure function of the table: the
// caller records the matching observation.
func (t *Table) Resolve(sourceField string) (string, Disposition) {
	dst, ok := t.entries[sourceField]
	if !ok {
		return "", Unmapped
	}
	if dst == Ignored {
		return "", IgnoredField
	}
	return dst, Mapped
}

// Targets returns the set of internal fields the table can populate.
func (t *Table) Targets() []string {
	targets := make([]string, 0, len(t.entries))
	seen := make(map[string]struct{})
	for _, dst := range t.entries {
		if dst == Ignored {
			continue
		}
		if _, dup := seen[dst]; dup {
			continue
		}
		seen[dst] = struct{}{}
		targets = append(targets, dst)
	}
	return targets
}
