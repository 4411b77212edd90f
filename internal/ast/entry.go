package ast

import (
	"sort"
	"strings"
)

// Field is a single name/value pair of an entry. Names are stored lowercase.
type Field struct {
	Name  string
	Value QuotedString
}

// FieldQuery is the capability shared by resolved entries and in-progress
// resolvers, so a possibly-unresolved bibliography can be inspected without
// resolving it first.
type FieldQuery interface {
	// Kind returns the entry kind.
	Kind() EntryKind
	// Cite returns the citation key, derived if one was never set.
	Cite() string
	// GetField looks up a field value by case-insensitive name.
	GetField(name string) (QuotedString, bool)
	// Fields returns all fields in a deterministic order.
	Fields() []Field
}

// Entry is a resolved bibliographic record. Entries are created only through
// a Resolver, which guarantees that every required field of the kind is
// present. Apart from the citation key an Entry is immutable.
type Entry struct {
	cite   string
	kind   EntryKind
	fields map[string]QuotedString
}

// Kind returns the kind of the entry.
func (e *Entry) Kind() EntryKind {
	return e.kind
}

// Cite returns the citation key of the entry.
func (e *Entry) Cite() string {
	return e.cite
}

// SetCite renames the entry and returns the previous citation key.
func (e *Entry) SetCite(cite string) string {
	old := e.cite
	e.cite = cite
	return old
}

// Title returns the title field. Every kind, including custom ones, requires
// a title, so a resolved entry always has one.
func (e *Entry) Title() QuotedString {
	title, _ := e.GetField("title")
	return title
}

// GetField looks up a field value by name. The lookup is case-insensitive.
func (e *Entry) GetField(name string) (QuotedString, bool) {
	v, ok := e.fields[strings.ToLower(name)]
	return v, ok
}

// Fields returns the fields of the entry: the required fields of the kind in
// catalog order, then the optional fields sorted by name.
func (e *Entry) Fields() []Field {
	required := RequiredFields(e.kind)
	fields := make([]Field, 0, len(e.fields))
	seen := make(map[string]bool, len(required))

	for _, name := range required {
		seen[name] = true
		fields = append(fields, Field{Name: name, Value: e.fields[name]})
	}

	optional := make([]string, 0, len(e.fields)-len(required))
	for name := range e.fields {
		if !seen[name] {
			optional = append(optional, name)
		}
	}
	sort.Strings(optional)

	for _, name := range optional {
		fields = append(fields, Field{Name: name, Value: e.fields[name]})
	}
	return fields
}
