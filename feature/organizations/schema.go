package organizations

import (
	"contentsync/core/mapping"
	"contentsync/core/schema"
)

// ContentType is the stored content type for organization entities.
const ContentType = "organization"

// Tags that editors pin by hand; a sync run must never remove them.
var pinnedTags = []string{"frontpage", "main-organization-page"}

// Schema declares the internal fields of an organization entity.
func Schema() *schema.Schema {
	return schema.MustNew([]schema.Field{
		{Name: "title", Kind: schema.KindText},
		{Name: "subtitle", Kind: schema.KindText},
		{Name: "season", Kind: schema.KindText},
		{Name: "organization_type", Kind: schema.KindText},
		{Name: "subjects", Kind: schema.KindList, Sticky: true},
		{Name: "tags", Kind: schema.KindList},
		{Name: "location", Kind: schema.KindText},
		{Name: "organization_status", Kind: schema.KindText},
		{Name: "status_message", Kind: schema.KindText},
		{Name: "onsale", Kind: schema.KindBool},
		{Name: "percentage_taken", Kind: schema.KindText},
		{Name: "start_online_sales", Kind: schema.KindDate},
		{Name: "end_online_sales", Kind: schema.KindDate},
		{Name: "start", Kind: schema.KindDate},
		{Name: "end", Kind: schema.KindDate},
		{Name: "price", Kind: schema.KindRichText},
		{Name: "organization", Kind: schema.KindText},
		{Name: "country", Kind: schema.KindText},
		{Name: "arrangements", Kind: schema.KindRichText},
		{Name: "availability", Kind: schema.KindRichText},
		{Name: "preview", Kind: schema.KindText},
	}...)
}

// MappingEntries is the static table from API field names to internal
// fields. The record ID is carried separately by the store, and a handful
// of presentation-only API fields are dropped on purpose.
func MappingEntries() map[string]string {
	return map[string]string{
		"title":                "title",
		"subtitle":             "subtitle",
		"season":               "season",
		"organizationType":     "organization_type",
		"organizationGenre":    "subjects",
		"tags":                 "tags",
		"facility":             "location",
		"organizationStatus":   "organization_status",
		"statusMessage":        "status_message",
		"onsale":               "onsale",
		"percentageTaken":      "percentage_taken",
		"startOnlineSalesDate": "start_online_sales",
		"endOnlineSalesDate":   "end_online_sales",
		"startDateTime":        "start",
		"endDateTime":          "end",
		"ranks":                "price",
		"organization":         "organization",
		"country":              "country",
		"picture":              "preview",
		"arrangements":         "arrangements",

		"id":                   mapping.Ignored,
		"start":                mapping.Ignored,
		"end":                  mapping.Ignored,
		"date":                 mapping.Ignored,
		"code":                 mapping.Ignored,
		"satellite":            mapping.Ignored,
		"facilityCode":         mapping.Ignored,
		"facilityAddressLines": mapping.Ignored,
		"url":                  mapping.Ignored,
	}
}
