package mapping

// Observation records a mapping outcome worth surfacing: an intentionally
// ignored field (warning) or a field missing from the table (error).
type Observation struct {
	SourceField string      `json:"source_field"`
	RecordID    string      `json:"record_id,omitempty"`
	Disposition Disposition `json:"-"`
	Kind        string      `json:"kind"`
	Message     string      `json:"message"`
}

// ObservationLog collects observations for one sync run.
type ObservationLog struct {
	observations []Observation
}

// Ignored records that a source field was dropped intentionally.
func (l *ObservationLog) Ignored(sourceField, recordID string) {
	l.observations = append(l.observations, Observation{
		SourceField: sourceField,
		RecordID:    recordID,
		Disposition: IgnoredField,
		Kind:        "field_ignored",
		Message:     "source field is ignored in the mapping",
	})
}

// Unmapped records that a source field was absent from the mapping table.
func (l *ObservationLog) Unmapped(sourceField, recordID string) {
	l.observations = append(l.observations, Observation{
		SourceField: sourceField,
		RecordID:    recordID,
		Disposition: Unmapped,
		Kind:        "field_unmapped",
		Message:     "source field does not exist in the mapping",
	})
}

// TransformFailed records that a mapped field's value could not be
// converted. The field keeps its cleared default in that case.
func (l *ObservationLog) TransformFailed(field, recordID string, err error) {
	l.observations = append(l.observations, Observation{
		SourceField: field,
		RecordID:    recordID,
		Disposition: Mapped,
		Kind:        "field_transform_failed",
		Message:     err.Error(),
	})
}

// All returns the collected observations in order.
func (l *ObservationLog) All() []Observation {
	return l.observations
}

// UnmappedCount returns how many unmapped-field observations were recorded.
func (l *ObservationLog) UnmappedCount() int {
	return l.countKind("field_unmapped")
}

// TransformFailedCount returns how many transform failures were recorded.
func (l *ObservationLog) TransformFailedCount() int {
	return l.countKind("field_transform_failed")
}

func (l *ObservationLog) countKind(kind string) int {
	n := 0
	for _, o := range l.observations {
		if o.Kind == kind {
			n++
		}
	}
	return n
}
