package normalization

import "strings"

// Lookup returns the first usable value among the given key spellings.
// Exact spellings are tried in order before falling back to a case-insensitive scan,
// so "guid", "Guid" and "GUID" all resolve the same field.
func Lookup(payload map[string]any, keys ...string) (any, bool) {
	if len(payload) == 0 {
		return nil, false
	}
	for _, key := range keys {
		if value, ok := payload[key]; ok && present(value) {
			return value, true
		}
	}
	for _, key := range keys {
		for candidate, value := range payload {
			if strings.EqualFold(candidate, key) && present(value) {
				return value, true
			}
		}
	}
	return nil, false
}

// LookupString is Lookup followed by AsString; empty strings count as absent.
func LookupString(payload map[string]any, keys ...string) string {
	value, ok := Lookup(payload, keys...)
	if !ok {
		return ""
	}
	return AsString(value)
}

func present(value any) bool {
	if value == nil {
		return false
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return true
}
