// Package ast defines the intermediate representation of a bibliography:
// quoted string values, entry kinds, resolved entries, retryable entry
// resolvers and the bibliography collection itself. The representation is not
// tied to any end format; the bibtex package maps it to and from text.
package ast

import "strings"

// EscapePattern reports whether a rune is an escape delimiter when building a
// QuotedString from pre-escaped text with FromQuoted.
type EscapePattern func(r rune) bool

// EscapeChar returns a pattern that matches a single rune.
func EscapeChar(c rune) EscapePattern {
	return func(r rune) bool { return r == c }
}

// EscapeAny returns a pattern that matches any of the given runes.
func EscapeAny(chars ...rune) EscapePattern {
	return func(r rune) bool {
		for _, c := range chars {
			if r == c {
				return true
			}
		}
		return false
	}
}

// Part is one span of a QuotedString: either plain text or a verbatim run.
type Part struct {
	Verbatim bool
	Text     string
}

// QuotedString is a string that remembers which of its substrings are
// verbatim. A verbatim substring is one that a textual format surrounds with
// some escape character and that must be preserved as-is rather than
// style-normalized. Only a single depth of verbatim is supported.
//
// The value can be treated as a normal string for in-memory operations; the
// verbatim information matters when composing the value into a specific
// format. Equality and display are defined over the normalized value only;
// callers that need marker-sensitive comparison should compare RawParts.
type QuotedString struct {
	// markers holds sorted byte offsets into value, in start/end pairs
	// delimiting the verbatim runs. The length is always even.
	markers []int
	value   string
}

// NewQuotedString creates a plain value with no verbatim spans.
func NewQuotedString(value string) QuotedString {
	return QuotedString{value: value}
}

// Quote creates a value that is verbatim in its entirety.
func Quote(value string) QuotedString {
	if value == "" {
		return QuotedString{}
	}
	return QuotedString{markers: []int{0, len(value)}, value: value}
}

// FromQuoted builds a QuotedString from text that still contains its escape
// delimiters. Runes matched by the pattern are recorded as span boundaries
// and excluded from the stored value; contiguous unmatched runs become spans.
//
//	qs := FromQuoted("foo bar $baz$", EscapeChar('$'))
//	qs.String()                         // "foo bar baz"
//	qs.MapQuoted(strings.ToUpper)       // "foo bar BAZ"
func FromQuoted(quoted string, pattern EscapePattern) QuotedString {
	var b strings.Builder
	b.Grow(len(quoted))
	var markers []int

	for _, r := range quoted {
		if pattern(r) {
			markers = append(markers, b.Len())
		} else {
			b.WriteRune(r)
		}
	}

	return QuotedString{markers: markers, value: b.String()}
}

// FromParts concatenates the parts into one value, recording a marker pair
// for every verbatim part. An empty slice yields the empty value.
func FromParts(parts []Part) QuotedString {
	if len(parts) == 0 {
		return QuotedString{}
	}

	var b strings.Builder
	var markers []int

	for _, p := range parts {
		start := b.Len()
		b.WriteString(p.Text)
		if p.Verbatim {
			markers = append(markers, start, b.Len())
		}
	}

	return QuotedString{markers: markers, value: b.String()}
}

// String returns the normalized value without any escape information.
func (q QuotedString) String() string {
	return q.value
}

// IsEmpty reports whether the value is the empty string.
func (q QuotedString) IsEmpty() bool {
	return q.value == ""
}

// Equal reports whether two values have the same normalized content,
// regardless of how they are quoted.
func (q QuotedString) Equal(other QuotedString) bool {
	return q.value == other.value
}

// MapQuoted rebuilds the value as a string, passing every verbatim span
// through f and copying plain spans unchanged.
//
//	Quote("foo").MapQuoted(func(s string) string { return "{" + s + "}" })
//	// "{foo}"
func (q QuotedString) MapQuoted(f func(string) string) string {
	if q.value == "" {
		return ""
	}

	var b strings.Builder
	verbatim := false
	pos := 0

	for _, marker := range q.markers {
		if verbatim {
			b.WriteString(f(q.value[pos:marker]))
		} else {
			b.WriteString(q.value[pos:marker])
		}
		verbatim = !verbatim
		pos = marker
	}

	if pos < len(q.value) {
		if verbatim {
			b.WriteString(f(q.value[pos:]))
		} else {
			b.WriteString(q.value[pos:])
		}
	}

	return b.String()
}

// RawParts returns the alternating plain/verbatim spans of the value. Empty
// spans between adjacent markers are skipped.
func (q QuotedString) RawParts() []Part {
	var parts []Part
	verbatim := false
	pos := 0

	emit := func(end int) {
		if end > pos {
			parts = append(parts, Part{Verbatim: verbatim, Text: q.value[pos:end]})
		}
		pos = end
	}

	for _, marker := range q.markers {
		emit(marker)
		verbatim = !verbatim
	}
	emit(len(q.value))

	return parts
}
