package schema

import "time"

// RichText is an HTML fragment plus its mime type.
type RichText struct {
	Raw      string `json:"raw"`
	MimeType string `json:"mime_type"`
}

// HTML wraps an HTML fragment as a rich text value.
func HTML(raw string) RichText {
	return RichText{Raw: raw, MimeType: "text/html"}
}

// Value is the tagged union of all field representations. Exactly one
// payload is meaningful, selected by Kind.
type Value struct {
	Kind Kind      `json:"kind"`
	Text string    `json:"text,omitempty"`
	List []string  `json:"list,omitempty"`
	Bool bool      `json:"bool,omitempty"`
	Rich RichText  `json:"rich,omitempty"`
	Date time.Time `json:"date,omitempty"`
}

// Zero returns the type-appropriate empty value for a kind: empty string,
// empty list, false, empty rich text, zero time.
func Zero(kind Kind) Value {
	v := Value{Kind: kind}
	if kind == KindRichText {
		v.Rich = HTML("")
	}
	return v
}

// Text wraps a plain string value.
func Text(s string) Value {
	return Value{Kind: KindText, Text: s}
}

// List wraps a string list value.
func List(items []string) Value {
	return Value{Kind: KindList, List: items}
}

// Bool wraps a boolean value.
func Bool(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// Rich wraps a rich text value.
func Rich(rt RichText) Value {
	return Value{Kind: KindRichText, Rich: rt}
}

// Date wraps a time value.
func Date(t time.Time) Value {
	return Value{Kind: KindDate, Date: t}
}

// IsZero reports whether the value equals the empty value of its kind.
func (v Value) IsZero() bool {
	switch v.Kind {
	case KindText:
		return v.Text == ""
	case KindList:
		return len(v.List) == 0
	case KindBool:
		return !v.Bool
	case KindRichText:
		return v.Rich.Raw == ""
	case KindDate:
		return v.Date.IsZero()
	default:
		return true
	}
}

// Equal reports whether two values are of the same kind and carry the same
// payload. Used by the availability sub-flow for change detection.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindText:
		return v.Text == other.Text
	case KindList:
		if len(v.List) != len(other.List) {
			return false
		}
		for i := range v.List {
			if v.List[i] != other.List[i] {
				return false
			}
		}
		return true
	case KindBool:
		return v.Bool == other.Bool
	case KindRichText:
		return v.Rich == other.Rich
	case KindDate:
		return v.Date.Equal(other.Date)
	default:
		return false
	}
}
