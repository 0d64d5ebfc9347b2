// # internal/docparse/docparse_test.go
package docparse

import (
	"testing"

	"docwatch/internal/errors"
)

func TestParseSourceMarkerAndTitle(t *testing.T) {
	source := []byte(`# API Reference

<!-- @docs-id: auth-login -->
## Login

Authenticates a user.
`)

	sections, err := ParseSource(source, "docs/api.md")
	if err != nil {
		t.Fatalf("ParseSource failed: %v", err)
	}

	if len(sections) != 1 {
		t.Fatalf("Expected 1 section, got %d", len(sections))
	}
	s := sections[0]
	if s.ID != "auth-login" {
		t.Errorf("Expected id auth-login, got %q", s.ID)
	}
	if s.Title != "Login" {
		t.Errorf("Expected title Login, got %q", s.Title)
	}
	if s.Location.File != "docs/api.md" || s.Location.Line != 3 {
		t.Errorf("Expected docs/api.md:3, got %s", s.Location)
	}
	if len(s.Args) != 0 {
		t.Errorf("Section without an argument block should have no args, got %v", s.Args)
	}
}

func TestParseSourceTableArgs(t *testing.T) {
	source := []byte(`<!-- @docs-id: auth-login -->
## Login

| Param    | Type   | Description      |
|----------|--------|------------------|
| username | string | The account name |
| password | string | Plaintext secret |
`)

	sections, err := ParseSource(source, "docs/api.md")
	if err != nil {
		t.Fatalf("ParseSource failed: %v", err)
	}
	args := sections[0].Args
	if len(args) != 2 {
		t.Fatalf("Expected 2 args, got %d: %v", len(args), args)
	}
	if args[0].Name != "username" || args[0].RawType != "string" {
		t.Errorf("Unexpected first arg: %+v", args[0])
	}
	if args[1].Description != "Plaintext secret" {
		t.Errorf("Unexpected description: %q", args[1].Description)
	}
}

func TestParseSourceListArgs(t *testing.T) {
	source := []byte("<!-- @docs-id: user-create -->\n## Create User\n\n" +
		"- name (string): display name\n" +
		"- `age` (`i32`): years\n" +
		"- active: whether the account is enabled\n")

	sections, err := ParseSource(source, "docs/api.md")
	if err != nil {
		t.Fatalf("ParseSource failed: %v", err)
	}
	args := sections[0].Args
	if len(args) != 3 {
		t.Fatalf("Expected 3 args, got %d: %v", len(args), args)
	}
	if args[0].Name != "name" || args[0].RawType != "string" {
		t.Errorf("Unexpected first arg: %+v", args[0])
	}
	if args[1].Name != "age" || args[1].RawType != "i32" {
		t.Errorf("Unexpected second arg: %+v", args[1])
	}
	if args[2].Name != "active" || args[2].RawType != "" {
		t.Errorf("Unexpected third arg: %+v", args[2])
	}
}

func TestParseSourceDefinitionArgs(t *testing.T) {
	source := []byte("<!-- @docs-id: limits -->\n## Limits\n\n" +
		"`limit` (`u32`): maximum items per page\n" +
		"`offset` (`u32`): items to skip\n")

	sections, err := ParseSource(source, "docs/api.md")
	if err != nil {
		t.Fatalf("ParseSource failed: %v", err)
	}
	args := sections[0].Args
	if len(args) != 2 {
		t.Fatalf("Expected 2 args, got %d: %v", len(args), args)
	}
	if args[0].Name != "limit" || args[0].RawType != "u32" {
		t.Errorf("Unexpected first arg: %+v", args[0])
	}
}

func TestParseSourceTableBeatsList(t *testing.T) {
	source := []byte(`<!-- @docs-id: both -->
## Both shapes

| Param | Type |
|-------|------|
| real  | bool |

- fake: never read, the table wins
`)

	sections, err := ParseSource(source, "docs/api.md")
	if err != nil {
		t.Fatalf("ParseSource failed: %v", err)
	}
	args := sections[0].Args
	if len(args) != 1 || args[0].Name != "real" {
		t.Fatalf("Table shape should win over list shape, got %v", args)
	}
}

func TestParseSourceProseIsNotArgs(t *testing.T) {
	source := []byte("<!-- @docs-id: notes -->\n## Notes\n\n" +
		"Warning: this endpoint is rate limited.\n" +
		"See also: the limits section.\n")

	sections, err := ParseSource(source, "docs/api.md")
	if err != nil {
		t.Fatalf("ParseSource failed: %v", err)
	}
	if len(sections[0].Args) != 0 {
		t.Errorf("Prose with colons must not parse as arguments, got %v", sections[0].Args)
	}
}

func TestParseSourceMultipleSections(t *testing.T) {
	source := []byte(`<!-- @docs-id: first -->
## First

| Param | Type |
|-------|------|
| a     | bool |

<!-- @docs-id: second -->
## Second
`)

	sections, err := ParseSource(source, "docs/api.md")
	if err != nil {
		t.Fatalf("ParseSource failed: %v", err)
	}
	if len(sections) != 2 {
		t.Fatalf("Expected 2 sections, got %d", len(sections))
	}
	if len(sections[0].Args) != 1 {
		t.Errorf("First section lost its args: %v", sections[0].Args)
	}
	if sections[1].ID != "second" || len(sections[1].Args) != 0 {
		t.Errorf("Unexpected second section: %+v", sections[1])
	}
}

func TestParseSourceDuplicateID(t *testing.T) {
	source := []byte(`<!-- @docs-id: dup -->
## One

<!-- @docs-id: dup -->
## Two
`)

	_, err := ParseSource(source, "docs/api.md")
	if err == nil {
		t.Fatal("Expected duplicate-id error")
	}
	if !errors.IsCode(err, errors.CodeDuplicateDocID) {
		t.Errorf("Expected CodeDuplicateDocID, got %v", err)
	}
}

func TestParseSourceIgnoresOtherComments(t *testing.T) {
	source := []byte(`<!-- TOC -->
# Guide

<!-- @docs-id: real -->
## Real
`)

	sections, err := ParseSource(source, "docs/api.md")
	if err != nil {
		t.Fatalf("ParseSource failed: %v", err)
	}
	if len(sections) != 1 || sections[0].ID != "real" {
		t.Fatalf("Expected only the @docs-id marker to open a section, got %+v", sections)
	}
}
