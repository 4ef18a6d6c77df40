package persons

import (
	"contentsync/core/schema"
)

// ContentType is the stored content type for person entities.
const ContentType = "person"

// Tags that editors pin by hand; a sync run must never remove them.
var pinnedTags = []string{"team"}

// Column indexes of the person worksheet. The sheet carries many more
// columns than the sync consumes; only the bound ones are read.
var worksheetColumns = map[string]int{
	"name":     0,
	"type":     7,
	"fullname": 14,
	"phone":    16,
	"picture":  17,
}

// Schema declares the internal fields of a person entity.
func Schema() *schema.Schema {
	return schema.MustNew([]schema.Field{
		{Name: "title", Kind: schema.KindText},
		{Name: "fullname", Kind: schema.KindText},
		{Name: "phone", Kind: schema.KindText},
		{Name: "subjects", Kind: schema.KindList, Sticky: true},
		{Name: "preview", Kind: schema.KindText},
	}...)
}

// MappingEntries is the static table from worksheet field names to
// internal fields.
func MappingEntries() map[string]string {
	return map[string]string{
		"name":     "title",
		"fullname": "fullname",
		"phone":    "phone",
		"type":     "subjects",
		"picture":  "preview",
	}
}
