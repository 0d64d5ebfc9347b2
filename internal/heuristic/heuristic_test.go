// # internal/heuristic/heuristic_test.go
package heuristic

import (
	"testing"

	"docwatch/internal/model"
)

func TestSimilarity(t *testing.T) {
	if got := Similarity("create user", "create user"); got != 1.0 {
		t.Errorf("Identical strings should score 1.0, got %f", got)
	}
	if got := Similarity("abc", "xyz"); got != 0.0 {
		t.Errorf("Disjoint strings should score 0.0, got %f", got)
	}
	if got := Similarity("", ""); got != 1.0 {
		t.Errorf("Two empty strings should score 1.0, got %f", got)
	}
	high := Similarity("create user", "create users")
	low := Similarity("create user", "delete account")
	if high <= low {
		t.Errorf("Near match (%f) should outscore far match (%f)", high, low)
	}
}

func TestSuggestMatchesIdenticalName(t *testing.T) {
	entities := []model.CodeEntity{
		{Name: "createUser", Location: model.Location{File: "src/users.go", Line: 12}},
	}
	sections := []model.DocSection{
		{ID: "create-user", Title: "Create User", Location: model.Location{File: "docs/api.md", Line: 3}},
	}

	suggestions := Suggest(entities, sections)
	if len(suggestions) != 1 {
		t.Fatalf("Expected 1 suggestion, got %d", len(suggestions))
	}
	s := suggestions[0]
	if s.Section.ID != "create-user" {
		t.Errorf("Expected create-user, got %s", s.Section.ID)
	}
	if s.Score != 1.0 {
		t.Errorf("Normalized names are identical, expected score 1.0, got %f", s.Score)
	}
}

func TestSuggestGateIsStrictlyExclusive(t *testing.T) {
	// "abcde" vs "abcd " style pairs land exactly at the 0.80 boundary:
	// one edit over a five-rune name.
	entities := []model.CodeEntity{{Name: "abcde"}}
	sections := []model.DocSection{{ID: "abcdx"}}

	if got := Similarity("abcde", "abcdx"); got != 0.8 {
		t.Fatalf("Test setup wrong: expected similarity 0.8, got %f", got)
	}
	if suggestions := Suggest(entities, sections); len(suggestions) != 0 {
		t.Errorf("A score of exactly 0.80 must not be proposed, got %d suggestion(s)", len(suggestions))
	}
}

func TestSuggestSkipsLinkedAndTargeted(t *testing.T) {
	entities := []model.CodeEntity{
		{Name: "createUser", DocID: "create-user"},
		{Name: "deleteUser"},
	}
	sections := []model.DocSection{
		{ID: "create-user"},
		{ID: "delete-user"},
	}

	suggestions := Suggest(entities, sections)
	if len(suggestions) != 1 {
		t.Fatalf("Expected 1 suggestion, got %d", len(suggestions))
	}
	if suggestions[0].Entity.Name != "deleteUser" || suggestions[0].Section.ID != "delete-user" {
		t.Errorf("Linked entity or targeted section leaked into suggestions: %+v", suggestions[0])
	}
}

func TestSuggestComparesTitleAndID(t *testing.T) {
	// The id is opaque but the heading matches the function name.
	entities := []model.CodeEntity{{Name: "resetPassword"}}
	sections := []model.DocSection{
		{ID: "sec-017", Title: "Reset Password"},
	}

	suggestions := Suggest(entities, sections)
	if len(suggestions) != 1 {
		t.Fatalf("Expected a title-based suggestion, got %d", len(suggestions))
	}
}

func TestSuggestTieBreaksOnEarlierSection(t *testing.T) {
	entities := []model.CodeEntity{{Name: "createUser"}}
	sections := []model.DocSection{
		{ID: "intro", Title: "Introduction"},
		{ID: "create-user"},
		{ID: "alt", Title: "create user"},
	}

	suggestions := Suggest(entities, sections)
	if len(suggestions) != 1 {
		t.Fatalf("Expected 1 suggestion, got %d", len(suggestions))
	}
	if suggestions[0].Section.ID != "create-user" {
		t.Errorf("Tie should break to the earlier section, got %s", suggestions[0].Section.ID)
	}
}

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"createUser":  "create user",
		"create_user": "create user",
		"create-user": "create user",
		"HTTPServer":  "httpserver",
		"parse.file":  "parse file",
	}
	for in, want := range cases {
		if got := normalizeName(in); got != want {
			t.Errorf("normalizeName(%q) = %q, want %q", in, got, want)
		}
	}
}
