package ast

import (
	"errors"
	"testing"
)

func TestResolver_ResolveFailsUntilRequiredFieldsAreSet(t *testing.T) {
	r := NewResolverWithCite(Manual, "man1")

	if _, err := r.Resolve(); err == nil {
		t.Fatal("Resolve() should fail while required fields are missing")
	}

	r.Title("A Manual")

	entry, err := r.Resolve()
	if err != nil {
		t.Fatalf("Resolve() should succeed once every required field is set, got: %v", err)
	}
	if entry.Cite() != "man1" {
		t.Errorf("Cite() = %q, want %q", entry.Cite(), "man1")
	}
	if entry.Title().String() != "A Manual" {
		t.Errorf("Title() = %q, want %q", entry.Title().String(), "A Manual")
	}
}

func TestResolver_SetFieldShrinksRequirementsMonotonically(t *testing.T) {
	r := NewResolver(Article)

	before := len(r.RequiredFields())
	r.SetField("AUTHOR", NewQuotedString("Somebody"))
	after := len(r.RequiredFields())

	if after != before-1 {
		t.Errorf("setting a required field should remove exactly one requirement, had %d, now %d", before, after)
	}

	r.SetField("author", NewQuotedString("Somebody Else"))
	if got := len(r.RequiredFields()); got != after {
		t.Errorf("setting the same field again should not change requirements, got %d", got)
	}
	if v, _ := r.GetField("author"); v.String() != "Somebody Else" {
		t.Errorf("last write should win, got %q", v.String())
	}
}

func TestResolver_FailedResolveLeavesStateIntact(t *testing.T) {
	r := NewResolver(Article)
	r.Author("Somebody")
	r.Title("On Something")

	setBefore := len(r.Fields())
	reqBefore := len(r.RequiredFields())

	_, err := r.Resolve()
	if err == nil {
		t.Fatal("Resolve() should fail with journal and year missing")
	}
	var mfe *MissingFieldsError
	if !errors.As(err, &mfe) {
		t.Fatalf("Resolve() error should be a *MissingFieldsError, got %T", err)
	}
	if mfe.Resolver != r {
		t.Error("the error should carry the failing resolver")
	}

	if got := len(r.Fields()); got != setBefore {
		t.Errorf("set fields changed across a failed resolve: %d -> %d", setBefore, got)
	}
	if got := len(r.RequiredFields()); got != reqBefore {
		t.Errorf("requirements changed across a failed resolve: %d -> %d", reqBefore, got)
	}
}

func TestResolver_NextRequiredInsertSatisfiesRequirement(t *testing.T) {
	r := NewResolverWithCite(Manual, "man1")

	f := r.NextRequired()
	if f == nil {
		t.Fatal("NextRequired() should return a handle while requirements remain")
	}
	if f.Key() != "title" {
		t.Errorf("Key() = %q, want %q", f.Key(), "title")
	}

	f.Insert(NewQuotedString("A Manual"))
	f.Abandon() // no-op after Insert

	if got := len(r.RequiredFields()); got != 0 {
		t.Errorf("RequiredFields() should be empty after Insert, got %d", got)
	}
	if r.NextRequired() != nil {
		t.Error("NextRequired() should return nil once every requirement is satisfied")
	}
	if _, err := r.Resolve(); err != nil {
		t.Errorf("Resolve() should succeed, got: %v", err)
	}
}

func TestResolver_AbandonedRequirementIsRestored(t *testing.T) {
	r := NewResolverWithCite(Manual, "man1")

	f := r.NextRequired()
	if got := len(r.RequiredFields()); got != 0 {
		t.Fatalf("NextRequired() should remove the requirement while the handle is live, got %d", got)
	}

	f.Abandon()

	req := r.RequiredFields()
	if len(req) != 1 || req[0] != "title" {
		t.Errorf("Abandon() should restore the requirement, got %v", req)
	}
	if _, err := r.Resolve(); err == nil {
		t.Error("Resolve() should still fail after an abandoned requirement")
	}
}

func TestResolver_CiteDerivation(t *testing.T) {
	r := NewResolver(Article)

	if got := r.Cite(); got != "Unknownyear" {
		t.Errorf("Cite() with no fields = %q, want %q", got, "Unknownyear")
	}

	r.Author("Rivest, Shamir and Adleman")
	r.Year("1978")

	if got := r.Cite(); got != "Rivest,ShamirandAdleman1978" {
		t.Errorf("Cite() = %q, want %q", got, "Rivest,ShamirandAdleman1978")
	}
}

func TestResolver_ExplicitCiteWinsOverDerivation(t *testing.T) {
	r := NewResolverWithCite(Article, "rsa1978")
	r.Author("Rivest")
	r.Year("1978")

	if got := r.Cite(); got != "rsa1978" {
		t.Errorf("Cite() = %q, want %q", got, "rsa1978")
	}
}

func TestResolver_AddRequiredFieldsSkipsSetAndPending(t *testing.T) {
	r := NewResolver(Book)
	r.Author("Somebody")

	r.AddRequiredFields("chapter", "author", "title", "chapter")

	want := map[string]bool{"title": true, "publisher": true, "year": true, "chapter": true}
	got := r.RequiredFields()
	if len(got) != len(want) {
		t.Fatalf("RequiredFields() = %v, want the keys of %v", got, want)
	}
	for _, name := range got {
		if !want[name] {
			t.Errorf("unexpected requirement %q", name)
		}
	}
}

func TestResolver_SetFieldsFromEntry(t *testing.T) {
	r := NewResolverWithCite(Book, "b1")
	r.Author("Somebody")
	r.Title("A Book")
	r.Publisher("A Press")
	r.Year("2001")
	book, err := r.Resolve()
	if err != nil {
		t.Fatalf("Resolve() should succeed, got: %v", err)
	}

	derived := NewResolverWithCite(BookChapter, "b1ch2")
	derived.SetFieldsFromEntry(book)

	req := derived.RequiredFields()
	if len(req) != 1 || req[0] != "chapter" {
		t.Errorf("only the chapter field should remain required, got %v", req)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want EntryKind
	}{
		{"article", Article},
		{"ARTICLE", Article},
		{"Master Thesis", MasterThesis},
		{"phd-thesis", PhdThesis},
		{"misc", EntryKind("misc")},
	}

	for _, tt := range tests {
		if got := ParseKind(tt.in); got != tt.want {
			t.Errorf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRequiredFields_UnknownKindRequiresTitle(t *testing.T) {
	got := RequiredFields(EntryKind("misc"))
	if len(got) != 1 || got[0] != "title" {
		t.Errorf("RequiredFields(misc) = %v, want [title]", got)
	}
}
