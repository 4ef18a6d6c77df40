package transform

import (
	"fmt"
	"strings"
)

// Sale status vocabulary as delivered by the availability endpoint.
const (
	StatusOnSale    = "ONSALE"
	StatusSoldOut   = "SOLDOUT"
	StatusCancelled = "CANCELLED"
)

// RenderStatusControl renders the availability control for an entity. On
// sale renders an enabled order link, sold out and cancelled render a
// disabled label with the status message, anything else renders an empty
// fragment.
func RenderStatusControl(status, message string, onSale bool, href string) string {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case StatusOnSale:
		if !onSale {
			return ""
		}
		if href == "" {
			href = "#"
		}
		return fmt.Sprintf(`<a class="availability onsale" href="%s">Order tickets</a>`, href)
	case StatusSoldOut, StatusCancelled:
		if message == "" {
			message = capitalize(strings.ToLower(status))
		}
		return fmt.Sprintf(`<span class="availability disabled">%s</span>`, message)
	default:
		return ""
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
