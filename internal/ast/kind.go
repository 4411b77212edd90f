package ast

import "strings"

// EntryKind identifies the type of a bibliographic entry.
//
// The known kinds below form a closed catalog, each with a fixed list of
// required fields. Any other value is a custom kind: it keeps the declared
// name and requires only a title.
type EntryKind string

const (
	// Article is an article published in a journal.
	Article EntryKind = "article"
	// Book is a published book.
	Book EntryKind = "book"
	// Booklet is a bound work without a named publisher.
	Booklet EntryKind = "booklet"
	// BookChapter is a numbered chapter of a book.
	BookChapter EntryKind = "book_chapter"
	// BookPages is a page range of a book.
	BookPages EntryKind = "book_pages"
	// BookSection is a titled section of a book.
	BookSection EntryKind = "book_section"
	// InProceedings is a paper published in a conference proceedings.
	InProceedings EntryKind = "in_proceedings"
	// Manual is technical documentation.
	Manual EntryKind = "manual"
	// MasterThesis is a thesis for a Master's level degree.
	MasterThesis EntryKind = "master_thesis"
	// PhdThesis is a thesis for a PhD level degree.
	PhdThesis EntryKind = "phd_thesis"
	// Proceedings is a conference proceedings.
	Proceedings EntryKind = "proceedings"
	// TechReport is a report published by an institution.
	TechReport EntryKind = "tech_report"
	// Unpublished is a document that has not been formally published.
	Unpublished EntryKind = "unpublished"
)

// requiredFields lists the fields each known kind needs before an Entry can
// be resolved, in declaration order.
var requiredFields = map[EntryKind][]string{
	Article:       {"author", "title", "journal", "year"},
	Book:          {"author", "title", "publisher", "year"},
	Booklet:       {"title"},
	BookChapter:   {"author", "title", "chapter", "publisher", "year"},
	BookPages:     {"author", "title", "pages", "publisher", "year"},
	BookSection:   {"author", "title", "book_title", "publisher", "year"},
	InProceedings: {"author", "title", "book_title", "year"},
	Manual:        {"title"},
	MasterThesis:  {"author", "title", "school", "year"},
	PhdThesis:     {"author", "title", "school", "year"},
	Proceedings:   {"title", "year"},
	TechReport:    {"author", "title", "institution", "year"},
	Unpublished:   {"author", "title"},
}

// RequiredFields returns the required field names of a kind. Custom kinds
// require only a title. The returned slice is a fresh copy.
func RequiredFields(kind EntryKind) []string {
	req, ok := requiredFields[kind]
	if !ok {
		return []string{"title"}
	}
	out := make([]string, len(req))
	copy(out, req)
	return out
}

// IsKnown reports whether the kind is part of the closed catalog.
func (k EntryKind) IsKnown() bool {
	_, ok := requiredFields[k]
	return ok
}

// String returns the kind label, e.g. "book_chapter".
func (k EntryKind) String() string {
	return string(k)
}

// ParseKind maps human or external text to an EntryKind. Spaces and hyphens
// are treated as word separators, so "book chapter", "book-chapter" and
// "Book_Chapter" all map to BookChapter. Unrecognized names become a custom
// kind with the lowercased declared name preserved.
func ParseKind(s string) EntryKind {
	name := strings.ToLower(strings.TrimSpace(s))
	normalized := strings.NewReplacer(" ", "_", "-", "_").Replace(name)
	if kind := EntryKind(normalized); kind.IsKnown() {
		return kind
	}
	return EntryKind(name)
}
