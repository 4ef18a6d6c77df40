package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentsync/core/schema"
	"contentsync/core/syncerr"
)

func testSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.New(
		schema.Field{Name: "organization_id", Kind: schema.KindText, Sticky: true},
		schema.Field{Name: "organization_title", Kind: schema.KindText},
		schema.Field{Name: "subjects", Kind: schema.KindList},
	)
	require.NoError(t, err)
	return s
}

func TestNewTable_ValidatesTargets(t *testing.T) {
	_, err := NewTable(map[string]string{
		"id":    "organization_id",
		"genre": "no_such_field",
	}, testSchema(t))

	require.Error(t, err)
	assert.True(t, syncerr.IsKind(err, syncerr.KindSetup))
}

func TestNewTable_Empty(t *testing.T) {
	_, err := NewTable(nil, testSchema(t))
	require.Error(t, err)
	assert.True(t, syncerr.IsKind(err, syncerr.KindSetup))
}

func TestResolve(t *testing.T) {
	table, err := NewTable(map[string]string{
		"id":         "organization_id",
		"title":      "organization_title",
		"satellite":  Ignored,
		"facilities": Ignored,
	}, testSchema(t))
	require.NoError(t, err)

	tests := []struct {
		source      string
		wantField   string
		wantOutcome Disposition
	}{
		{"id", "organization_id", Mapped},
		{"title", "organization_title", Mapped},
		{"satellite", "", IgnoredField},
		{"facilities", "", IgnoredField},
		{"never_heard_of", "", Unmapped},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			field, disp := table.Resolve(tt.source)
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantOutcome, disp)
		})
	}
}

func TestTargets_SkipsIgnored(t *testing.T) {
	table, err := NewTable(map[string]string{
		"id":        "organization_id",
		"satellite": Ignored,
	}, testSchema(t))
	require.NoError(t, err)

	targets := table.Targets()
	assert.Equal(t, []string{"organization_id"}, targets)
}

func TestObservationLog(t *testing.T) {
	var log ObservationLog
	log.Ignored("satellite", "42")
	log.Unmapped("brand_new_column", "42")
	log.Unmapped("another_column", "43")
	log.TransformFailed("start", "42", syncerr.New(syncerr.KindFieldTransform, "invalid date"))

	all := log.All()
	require.Len(t, all, 4)
	assert.Equal(t, "field_ignored", all[0].Kind)
	assert.Equal(t, "field_unmapped", all[1].Kind)
	assert.Equal(t, "field_transform_failed", all[3].Kind)
	assert.Equal(t, "invalid date", all[3].Message)
	assert.Equal(t, 2, log.UnmappedCount())
	assert.Equal(t, 1, log.TransformFailedCount())
}
