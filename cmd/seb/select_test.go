package main

import (
	"strings"
	"testing"

	"github.com/matsen/seb/internal/ast"
)

func lookupResult(t *testing.T) *ast.BiblioResolver {
	t.Helper()
	complete := ast.NewResolverWithCite(ast.Manual, "m1")
	complete.Title("A Manual")
	incomplete := ast.NewResolverWithCite(ast.Article, "a1")
	incomplete.Title("An Article")

	_, unresolved := ast.TryResolve([]*ast.Resolver{complete, incomplete})
	if unresolved == nil {
		t.Fatal("the article should still be missing fields")
	}
	return unresolved
}

func TestSelectResolvable_PicksResolvedRecord(t *testing.T) {
	p := testPrompter("1\n")

	entry, err := p.selectResolvable(lookupResult(t))
	if err != nil {
		t.Fatalf("selectResolvable() should succeed, got: %v", err)
	}
	if entry.Cite() != "m1" {
		t.Errorf("Cite() = %q, want the first listed record", entry.Cite())
	}
}

func TestSelectResolvable_PickedResolverIsCompletedByPrompt(t *testing.T) {
	// Choice 2 is the incomplete article; author, journal and year are
	// prompted back-to-front of the catalog order.
	p := testPrompter("2\n2001\nAnnals of Something\nSomebody\n")

	entry, err := p.selectResolvable(lookupResult(t))
	if err != nil {
		t.Fatalf("selectResolvable() should succeed, got: %v", err)
	}
	if entry.Cite() != "a1" {
		t.Errorf("Cite() = %q, want the picked record", entry.Cite())
	}
	if v, _ := entry.GetField("author"); v.String() != "Somebody" {
		t.Errorf("author = %q, want the prompted value", v.String())
	}
}

func TestSelectResolvable_RepromptsOnInvalidChoice(t *testing.T) {
	p := testPrompter("0\nx\n1\n")

	entry, err := p.selectResolvable(lookupResult(t))
	if err != nil {
		t.Fatalf("selectResolvable() should reprompt until the choice is valid, got: %v", err)
	}
	if entry.Cite() != "m1" {
		t.Errorf("Cite() = %q, want the record chosen on the third try", entry.Cite())
	}
}

func TestSelectEntry_SingleRecordNeedsNoPrompt(t *testing.T) {
	r := ast.NewResolverWithCite(ast.Manual, "m1")
	r.Title("A Manual")
	biblio, unresolved := ast.TryResolve([]*ast.Resolver{r})
	if unresolved != nil {
		t.Fatal("the manual entry should resolve")
	}

	// No input available: a single record must not prompt.
	p := testPrompter("")
	entry, err := p.selectEntry(biblio)
	if err != nil {
		t.Fatalf("selectEntry() should succeed without input, got: %v", err)
	}
	if entry.Cite() != "m1" {
		t.Errorf("Cite() = %q, want the only record", entry.Cite())
	}
}

func TestConfirmEntry(t *testing.T) {
	r := ast.NewResolverWithCite(ast.Manual, "m1")
	r.Title("A Manual")
	entry, err := r.Resolve()
	if err != nil {
		t.Fatalf("Resolve() should succeed, got: %v", err)
	}

	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"yes\n", true},
		{"n\n", false},
		{"\n", false},
	}

	for _, tt := range tests {
		p := testPrompter(tt.input)
		got, err := p.confirmEntry(entry)
		if err != nil {
			t.Fatalf("confirmEntry(%q) should succeed, got: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("confirmEntry(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestConfirmEntry_ShowsTheRenderedRecord(t *testing.T) {
	r := ast.NewResolverWithCite(ast.Manual, "m1")
	r.Title("A Manual")
	entry, err := r.Resolve()
	if err != nil {
		t.Fatalf("Resolve() should succeed, got: %v", err)
	}

	var out strings.Builder
	p := testPrompter("y\n")
	p.out = &out

	if _, err := p.confirmEntry(entry); err != nil {
		t.Fatalf("confirmEntry() should succeed, got: %v", err)
	}
	if !strings.Contains(out.String(), "@manual{m1,") {
		t.Errorf("the record should be shown before the question, got:\n%s", out.String())
	}
}
