package ast

import (
	"sort"
	"strings"
)

// Biblio is a bibliography of resolved entries keyed by citation key.
//
// A Biblio is not safe for concurrent use; callers sharing one across
// goroutines must synchronize externally.
type Biblio struct {
	dirty   bool
	entries map[string]*Entry
}

// New creates a Biblio from a list of entries. Later entries overwrite
// earlier ones with the same citation key.
func New(entries []*Entry) *Biblio {
	b := &Biblio{entries: make(map[string]*Entry, len(entries))}
	for _, e := range entries {
		b.entries[e.Cite()] = e
	}
	return b
}

// TryResolve resolves every resolver independently. If all of them succeed
// the result is a Biblio; otherwise it is a BiblioResolver carrying both the
// entries that resolved and the resolvers that still have missing fields, so
// the caller can fill them in and retry.
func TryResolve(resolvers []*Resolver) (*Biblio, *BiblioResolver) {
	br := &BiblioResolver{resolvers: resolvers}
	return br.Resolve()
}

// Dirty reports whether the Biblio has been mutated since it was created or
// since the last call, and resets the flag.
func (b *Biblio) Dirty() bool {
	dirty := b.dirty
	b.dirty = false
	return dirty
}

// Len returns the number of entries.
func (b *Biblio) Len() int {
	return len(b.entries)
}

// Insert adds an entry, overwriting any existing entry with the same
// citation key.
func (b *Biblio) Insert(e *Entry) {
	b.dirty = true
	b.entries[e.Cite()] = e
}

// Remove deletes the entry whose citation key matches cite, ignoring case,
// and reports whether anything was removed. The dirty flag is only set when
// an entry was actually removed.
func (b *Biblio) Remove(cite string) bool {
	removed := false
	for key := range b.entries {
		if strings.EqualFold(key, cite) {
			delete(b.entries, key)
			removed = true
		}
	}
	b.dirty = b.dirty || removed
	return removed
}

// Get returns the entry with the exact citation key.
func (b *Biblio) Get(cite string) (*Entry, bool) {
	e, ok := b.entries[cite]
	return e, ok
}

// Entries returns the entries sorted by citation key.
func (b *Biblio) Entries() []*Entry {
	out := make([]*Entry, 0, len(b.entries))
	for _, e := range b.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cite() < out[j].Cite() })
	return out
}

// IntoEntries drains the Biblio into a slice of entries sorted by citation
// key.
func (b *Biblio) IntoEntries() []*Entry {
	out := b.Entries()
	b.entries = make(map[string]*Entry)
	return out
}

// ContainsField reports whether any entry has a field named name whose value
// satisfies the predicate. It short-circuits on the first match and is false
// for an empty Biblio.
func (b *Biblio) ContainsField(name string, predicate func(QuotedString) bool) bool {
	for _, e := range b.entries {
		if v, ok := e.GetField(name); ok && predicate(v) {
			return true
		}
	}
	return false
}
