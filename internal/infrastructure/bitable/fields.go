package bitable

import "strconv"

// Cell unwrapping helpers. The tabular service models scalar fields as
// arrays of rich-text spans and omits empty cells entirely, so every
// helper tolerates nil, absent and malformed values: missing text yields
// "" and missing numbers yield 0. They never panic on a malformed row.

// Text unwraps a cell into its plain text form.
func Text(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]any:
		if t, ok := val["text"].(string); ok {
			return t
		}
	case []any:
		var out string
		for _, span := range val {
			switch s := span.(type) {
			case string:
				out += s
			case map[string]any:
				if t, ok := s["text"].(string); ok {
					out += t
				}
			}
		}
		return out
	}
	return ""
}

// Number unwraps a cell into a float64.
func Number(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case string:
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	case []any:
		if len(val) > 0 {
			return Number(val[0])
		}
	}
	return 0
}

// Integer unwraps a cell into an int64, truncating fractions.
func Integer(v any) int64 {
	return int64(Number(v))
}

// Attachment is the part of a file cell this layer cares about.
type Attachment struct {
	FileToken string
	URL       string
}

// FirstAttachment unwraps the first entry of an attachment cell. An
// absent or empty cell yields a zero Attachment.
func FirstAttachment(v any) Attachment {
	items, ok := v.([]any)
	if !ok || len(items) == 0 {
		return Attachment{}
	}
	entry, ok := items[0].(map[string]any)
	if !ok {
		return Attachment{}
	}
	att := Attachment{}
	if t, ok := entry["file_token"].(string); ok {
		att.FileToken = t
	}
	if u, ok := entry["url"].(string); ok {
		att.URL = u
	}
	return att
}
