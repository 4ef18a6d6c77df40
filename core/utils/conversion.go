package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// SafeString coerces a raw source value into a string the way the sync
// core treats values by default: integers are stringified, JSON numbers
// render without a trailing ".0", everything else goes through fmt.
func SafeString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToBool converts various raw representations to bool. It handles bool,
// numeric types (1=true), and strings ("1", "true", "yes").
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case int:
		return v == 1
	case int64:
		return v == 1
	case float64:
		return v == 1
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		return s == "1" || s == "true" || s == "yes"
	case []byte:
		return ToBool(string(v))
	default:
		return false
	}
}

// ToStringList converts a raw value into a list of strings: string slices
// pass through, []any is converted element-wise, a single scalar becomes a
// one-element list. Nil and empty strings yield an empty list.
func ToStringList(val any) []string {
	switch v := val.(type) {
	case nil:
		return nil
	case []string:
		return v
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			if s := SafeString(item); s != "" {
				items = append(items, s)
			}
		}
		return items
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return []string{SafeString(v)}
	}
}

// CleanWhitespace lowercases text and strips all whitespace. Used to derive
// stable IDs from free-form spreadsheet cells such as phone numbers.
func CleanWhitespace(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), "")
}
