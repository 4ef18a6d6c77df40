package transform

import (
	"context"
	"strings"

	"contentsync/core/schema"
	"contentsync/core/utils"
)

// ArrangementLookup resolves a richer description for an arrangement ID.
// Returning false means no secondary data is available and the rendering
// degrades to just the item title.
type ArrangementLookup func(ctx context.Context, id string) (string, bool)

// Arrangements renders a list of related sub-items as an HTML block in a
// rich text field. Each item may carry an ID used to look up a richer
// description; lookup misses degrade gracefully.
func Arrangements(lookup ArrangementLookup) Handler {
	return func(ctx context.Context, t Target) error {
		items, _ := t.Raw.([]any)

		var b strings.Builder
		count := 0
		for _, item := range items {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			title := utils.SafeString(m["title"])
			if title == "" {
				title = utils.SafeString(m["name"])
			}
			if title == "" {
				continue
			}
			count++
			b.WriteString("<li><strong>" + title + "</strong>")
			if lookup != nil {
				if id := utils.SafeString(m["id"]); id != "" {
					if desc, found := lookup(ctx, id); found && desc != "" {
						b.WriteString("<p>" + desc + "</p>")
					}
				}
			}
			b.WriteString("</li>")
		}

		rendered := ""
		if count > 0 {
			rendered = `<ul class="arrangements">` + b.String() + `</ul>`
		}
		return t.Record.Set(t.Field.Name, schema.Rich(schema.HTML(rendered)))
	}
}
