package ast

import "strings"

// BiblioResolver manages a batch of entry resolvers until all of them
// succeed and a Biblio can be produced. It holds the entries that already
// resolved alongside the resolvers that still have missing fields; retrying
// never re-examines the resolved entries.
//
// A BiblioResolver is only ever observable with at least one outstanding
// resolver: the resolution step that empties the outstanding set returns the
// Biblio instead.
type BiblioResolver struct {
	// failed records that at least one resolution attempt has failed; the
	// eventual Biblio is marked dirty because its resolvers were edited
	// externally between attempts.
	failed    bool
	resolvers []*Resolver
	entries   []*Entry
}

// Resolve attempts to resolve every outstanding resolver. When all of them
// succeed it returns the Biblio and the receiver must not be used again;
// otherwise it returns the receiver holding the resolvers that still fail,
// ready for another attempt.
func (br *BiblioResolver) Resolve() (*Biblio, *BiblioResolver) {
	remaining := br.resolvers[:0]
	for _, r := range br.resolvers {
		if e, err := r.Resolve(); err == nil {
			br.entries = append(br.entries, e)
		} else {
			remaining = append(remaining, r)
		}
	}

	if len(remaining) == 0 {
		b := New(br.entries)
		b.dirty = br.failed
		return b, nil
	}

	br.resolvers = remaining
	br.failed = true
	return nil, br
}

// Unresolved returns the resolvers that still have missing fields, for the
// caller to fill in before calling Resolve again.
func (br *BiblioResolver) Unresolved() []*Resolver {
	return br.resolvers
}

// Iter returns every item regardless of resolution state: resolved entries
// first, then outstanding resolvers. The order matches the combined index
// used by CheckedRemove.
func (br *BiblioResolver) Iter() []FieldQuery {
	out := make([]FieldQuery, 0, len(br.entries)+len(br.resolvers))
	for _, e := range br.entries {
		out = append(out, e)
	}
	for _, r := range br.resolvers {
		out = append(out, r)
	}
	return out
}

// CheckedRemove removes the item at the combined index, where resolved
// entries are numbered before outstanding resolvers. Exactly one of the
// returns is non-nil when ok is true; ok is false when the index is out of
// range.
func (br *BiblioResolver) CheckedRemove(index int) (*Entry, *Resolver, bool) {
	if index < 0 {
		return nil, nil, false
	}
	if index < len(br.entries) {
		e := br.entries[index]
		br.entries = append(br.entries[:index], br.entries[index+1:]...)
		return e, nil, true
	}
	index -= len(br.entries)
	if index < len(br.resolvers) {
		r := br.resolvers[index]
		br.resolvers = append(br.resolvers[:index], br.resolvers[index+1:]...)
		return nil, r, true
	}
	return nil, nil, false
}

// Report lists, per outstanding resolver, the fields already set and the
// fields still missing.
func (br *BiblioResolver) Report() string {
	var b strings.Builder
	for _, r := range br.resolvers {
		b.WriteString(r.Report())
	}
	b.WriteString("hint: consider enabling interactive mode (-i / --interact) to add missing fields.")
	return b.String()
}

func (br *BiblioResolver) Error() string {
	return br.Report()
}
