package ast

import (
	"fmt"
	"sort"
	"strings"
)

// Resolver accumulates field values for one entry kind and produces an Entry
// once every required field is present. A failed Resolve leaves the resolver
// untouched, so the caller can keep setting fields and retry without losing
// progress.
type Resolver struct {
	kind    EntryKind
	cite    string
	hasCite bool
	// req holds the remaining required field names. A name in fields is
	// never also in req.
	req    []string
	fields map[string]QuotedString
}

// NewResolver creates a resolver for the kind with no citation key; the key
// will be derived from the author and year fields at read time.
func NewResolver(kind EntryKind) *Resolver {
	return &Resolver{
		kind:   kind,
		req:    RequiredFields(kind),
		fields: make(map[string]QuotedString),
	}
}

// NewResolverWithCite creates a resolver for the kind with a fixed citation
// key.
func NewResolverWithCite(kind EntryKind, cite string) *Resolver {
	r := NewResolver(kind)
	r.cite = cite
	r.hasCite = true
	return r
}

// Kind returns the kind of entry being resolved.
func (r *Resolver) Kind() EntryKind {
	return r.kind
}

// Cite returns the citation key the resolved entry would have: the explicit
// key if one was given, otherwise the author field (whitespace stripped)
// joined with the year field, with "Unknown" and "year" placeholders for
// fields that are not set yet.
func (r *Resolver) Cite() string {
	if r.hasCite {
		return r.cite
	}

	author := "Unknown"
	if v, ok := r.GetField("author"); ok {
		author = strings.Map(func(c rune) rune {
			if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
				return -1
			}
			return c
		}, v.String())
	}

	year := "year"
	if v, ok := r.GetField("year"); ok {
		year = v.String()
	}

	return author + year
}

// GetField looks up an already-set field value by case-insensitive name.
func (r *Resolver) GetField(name string) (QuotedString, bool) {
	v, ok := r.fields[strings.ToLower(name)]
	return v, ok
}

// Fields returns the fields set so far, sorted by name.
func (r *Resolver) Fields() []Field {
	names := make([]string, 0, len(r.fields))
	for name := range r.fields {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]Field, 0, len(names))
	for _, name := range names {
		fields = append(fields, Field{Name: name, Value: r.fields[name]})
	}
	return fields
}

// RequiredFields returns a copy of the field names that still need to be set
// before Resolve can succeed.
func (r *Resolver) RequiredFields() []string {
	out := make([]string, len(r.req))
	copy(out, r.req)
	return out
}

// SetField sets a field value by name. The name is lowercased, the last
// write wins, and a matching remaining requirement is satisfied.
func (r *Resolver) SetField(name string, value QuotedString) {
	r.setNormalized(strings.ToLower(name), value)
}

func (r *Resolver) setNormalized(name string, value QuotedString) {
	r.removeRequired(name)
	r.fields[name] = value
}

func (r *Resolver) removeRequired(name string) {
	kept := r.req[:0]
	for _, req := range r.req {
		if req != name {
			kept = append(kept, req)
		}
	}
	r.req = kept
}

// Author sets the author field as plain text.
func (r *Resolver) Author(value string) { r.setNormalized("author", NewQuotedString(value)) }

// Title sets the title field as plain text.
func (r *Resolver) Title(value string) { r.setNormalized("title", NewQuotedString(value)) }

// Year sets the year field as plain text.
func (r *Resolver) Year(value string) { r.setNormalized("year", NewQuotedString(value)) }

// Journal sets the journal field as plain text.
func (r *Resolver) Journal(value string) { r.setNormalized("journal", NewQuotedString(value)) }

// Publisher sets the publisher field as plain text.
func (r *Resolver) Publisher(value string) { r.setNormalized("publisher", NewQuotedString(value)) }

// School sets the school field as plain text.
func (r *Resolver) School(value string) { r.setNormalized("school", NewQuotedString(value)) }

// Institution sets the institution field as plain text.
func (r *Resolver) Institution(value string) { r.setNormalized("institution", NewQuotedString(value)) }

// Pages sets the pages field as plain text.
func (r *Resolver) Pages(value string) { r.setNormalized("pages", NewQuotedString(value)) }

// Chapter sets the chapter field as plain text.
func (r *Resolver) Chapter(value string) { r.setNormalized("chapter", NewQuotedString(value)) }

// BookTitle sets the book_title field as plain text.
func (r *Resolver) BookTitle(value string) { r.setNormalized("book_title", NewQuotedString(value)) }

// AddRequiredFields extends the remaining requirements with any of the names
// that are neither already set nor already pending. Used when deriving one
// entry kind from another, e.g. requiring "chapter" on top of a book's
// fields.
func (r *Resolver) AddRequiredFields(names ...string) {
	for _, name := range names {
		name = strings.ToLower(name)
		if _, set := r.fields[name]; set {
			continue
		}
		pending := false
		for _, req := range r.req {
			if req == name {
				pending = true
				break
			}
		}
		if !pending {
			r.req = append(r.req, name)
		}
	}
}

// SetFieldsFromEntry copies every field of an existing entry into the
// resolver as-is, satisfying any matching requirements. The values are not
// re-normalized.
func (r *Resolver) SetFieldsFromEntry(e *Entry) {
	for name, value := range e.fields {
		r.removeRequired(name)
		r.fields[name] = value
	}
}

// NextRequired pops one remaining required field and returns a handle for
// it, or nil when every requirement is satisfied and Resolve will succeed.
// The handle must be finished with Insert or Abandon; see RequiredField.
//
// The order in which requirements are returned is not guaranteed.
func (r *Resolver) NextRequired() *RequiredField {
	if len(r.req) == 0 {
		return nil
	}
	key := r.req[len(r.req)-1]
	r.req = r.req[:len(r.req)-1]
	return &RequiredField{key: key, resolver: r}
}

// Resolve builds the entry from the accumulated fields. It fails when
// required fields are still missing; the resolver is left exactly as it was,
// so the caller can set the missing fields and call Resolve again.
func (r *Resolver) Resolve() (*Entry, error) {
	if len(r.req) > 0 {
		return nil, &MissingFieldsError{Resolver: r}
	}

	fields := make(map[string]QuotedString, len(r.fields))
	for name, value := range r.fields {
		fields[name] = value
	}

	return &Entry{cite: r.Cite(), kind: r.kind, fields: fields}, nil
}

// Report describes the fields already set and the fields still missing.
func (r *Resolver) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "missing required fields in %s entry\nfound:\n", r.kind)
	for _, f := range r.Fields() {
		fmt.Fprintf(&b, "    %s: %s\n", f.Name, f.Value.String())
	}
	b.WriteString("missing:\n")
	for _, req := range r.req {
		fmt.Fprintf(&b, "    %s\n", req)
	}
	return b.String()
}

// MissingFieldsError is returned by Resolver.Resolve when required fields
// are still unset. The resolver is unchanged and can be retried.
type MissingFieldsError struct {
	Resolver *Resolver
}

func (e *MissingFieldsError) Error() string {
	return e.Resolver.Report()
}

// RequiredField is a scoped handle on a single required field name popped
// from a Resolver by NextRequired. The caller must finish the handle with
// exactly one of Insert or Abandon: Insert satisfies the requirement with a
// value, Abandon pushes the name back so an abandoned prompt can never
// silently drop a requirement. Abandon is a no-op after Insert, so it is
// safe to defer unconditionally.
type RequiredField struct {
	key      string
	resolver *Resolver
	done     bool
}

// Key returns the field name this handle owns.
func (f *RequiredField) Key() string {
	return f.key
}

// Insert satisfies the requirement with the given value.
func (f *RequiredField) Insert(value QuotedString) {
	if f.done {
		return
	}
	f.done = true
	f.resolver.fields[f.key] = value
}

// Abandon returns the requirement to the resolver unfilled.
func (f *RequiredField) Abandon() {
	if f.done {
		return
	}
	f.done = true
	f.resolver.req = append(f.resolver.req, f.key)
}
