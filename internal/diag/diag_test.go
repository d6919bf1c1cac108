package diag

import (
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/cwbudde/go-pastac/internal/errors"
)

func sample() []*errors.Diagnostic {
	return []*errors.Diagnostic{
		errors.New(errors.Semantic, errors.Location{Line: 2, Column: 7}, "type mismatch: cannot assign String to Integer"),
		errors.New(errors.Semantic, errors.Location{Line: 2, Column: 20}, "undeclared identifier: y"),
	}
}

func TestTextOnePerLine(t *testing.T) {
	out := Text(sample())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), out)
	}
	if lines[0] != "type mismatch: cannot assign String to Integer at line 2, column 7" {
		t.Errorf("unexpected first line: %s", lines[0])
	}
	if lines[1] != "undeclared identifier: y at line 2, column 20" {
		t.Errorf("unexpected second line: %s", lines[1])
	}
}

func TestTextHonorsPerKindTemplates(t *testing.T) {
	diags := []*errors.Diagnostic{
		errors.New(errors.Lexical, errors.Location{Line: 1, Column: 8}, "Unexpected character %q", '@'),
		errors.New(errors.Syntax, errors.Location{Line: 4, Column: 9}, "Expected IDENT, found NUM (42)"),
	}
	out := Text(diags)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if lines[0] != "Unexpected character '@' at line 1, column 8" {
		t.Errorf("lexical line = %q", lines[0])
	}
	// A syntax error reports expected-vs-found alone, with no location.
	if lines[1] != "Expected IDENT, found NUM (42)" {
		t.Errorf("syntax line = %q", lines[1])
	}
}

func TestJSONShape(t *testing.T) {
	out, err := JSON(sample())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := string(out)

	if got := gjson.Get(doc, "count").Int(); got != 2 {
		t.Errorf("count = %d, want 2", got)
	}
	if got := gjson.Get(doc, "diagnostics.#").Int(); got != 2 {
		t.Errorf("diagnostics length = %d, want 2", got)
	}
	if got := gjson.Get(doc, "diagnostics.0.kind").String(); got != "semantic error" {
		t.Errorf("kind = %q", got)
	}
	if got := gjson.Get(doc, "diagnostics.0.line").Int(); got != 2 {
		t.Errorf("line = %d, want 2", got)
	}
	if got := gjson.Get(doc, "diagnostics.1.message").String(); got != "undeclared identifier: y" {
		t.Errorf("message = %q", got)
	}
}

func TestJSONEmpty(t *testing.T) {
	out, err := JSON(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := string(out)
	if got := gjson.Get(doc, "count").Int(); got != 0 {
		t.Errorf("count = %d, want 0", got)
	}
	if !gjson.Get(doc, "diagnostics").IsArray() {
		t.Errorf("diagnostics should be an empty array: %s", doc)
	}
}
