package domain

import "testing"

func TestOrganizationMatchesID(t *testing.T) {
	t.Parallel()

	org := Organization{ID: "AbC-123"}
	if !org.MatchesID("abc-123") {
		t.Fatal("expected case-insensitive match")
	}
	if org.MatchesID("abc-124") || org.MatchesID("") {
		t.Fatal("unexpected match")
	}
}

func TestOrganizationDisplayName(t *testing.T) {
	t.Parallel()

	if got := (Organization{Name: " Acme "}).DisplayName(); got != "Acme" {
		t.Fatalf("unexpected name: %q", got)
	}
	if got := (Organization{}).DisplayName(); got != "<unknown>" {
		t.Fatalf("unexpected fallback: %q", got)
	}
}

func TestParseLookupShape(t *testing.T) {
	cases := map[string]LookupShape{
		"list":   LookupList,
		" PATH ": LookupPath,
	}
	for input, expected := range cases {
		got, ok := ParseLookupShape(input)
		if !ok || got != expected {
			t.Fatalf("ParseLookupShape(%q) = %q, %v", input, got, ok)
		}
	}
	if _, ok := ParseLookupShape("query"); ok {
		t.Fatal("expected unknown shape to be rejected")
	}
}
