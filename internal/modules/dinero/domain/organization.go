package domain

import "strings"

// LookupShape selects how the organization is fetched.
type LookupShape string

const (
	// LookupList lists the organizations visible to the API key and filters by id.
	LookupList LookupShape = "list"
	// LookupPath fetches the organization directly by its id path segment.
	LookupPath LookupShape = "path"
)

// ParseLookupShape accepts "list" or "path" in any case.
func ParseLookupShape(raw string) (LookupShape, bool) {
	switch LookupShape(strings.ToLower(strings.TrimSpace(raw))) {
	case LookupList:
		return LookupList, true
	case LookupPath:
		return LookupPath, true
	default:
		return "", false
	}
}

// Organization is the tenant returned by Dinero. Fields we do not use are dropped at decode time.
type Organization struct {
	ID    string
	Name  string
	IsPro bool
}

// DisplayName returns the name or a placeholder when Dinero omitted it.
func (o Organization) DisplayName() string {
	if name := strings.TrimSpace(o.Name); name != "" {
		return name
	}
	return "<unknown>"
}

// MatchesID compares ids case-insensitively.
func (o Organization) MatchesID(id string) bool {
	want := strings.TrimSpace(id)
	return want != "" && strings.EqualFold(strings.TrimSpace(o.ID), want)
}
