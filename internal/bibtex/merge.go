package bibtex

import (
	"strings"

	"github.com/matsen/seb/internal/ast"
)

// escapeMarker ends a verbatim span that was split mid-token, most often a
// URL or a version number cut at the slash.
const escapeMarker = "/"

// mergeParts repairs part sequences where a verbatim span was split around
// plain text. A verbatim part ending in the escape marker absorbs the
// following alternating plain/verbatim pairs into a single verbatim part, so
// "{(HTTP/" "1" "." "1" ")" becomes "{(HTTP/1.1)}". Sequences without the
// marker pass through unchanged.
func mergeParts(parts []ast.Part) []ast.Part {
	out := make([]ast.Part, 0, len(parts))
	for i := 0; i < len(parts); i++ {
		p := parts[i]
		if p.Verbatim && strings.HasSuffix(p.Text, escapeMarker) {
			text, consumed := mergeEscaped(p.Text, parts[i+1:])
			p.Text = text
			i += consumed
		}
		out = append(out, p)
	}
	return out
}

// mergeEscaped appends plain/verbatim pairs following a split verbatim part,
// at most two per escaped run. Whenever an absorbed verbatim itself ends in
// the escape marker a fresh run starts at that point, so chained splits merge
// in one pass however deep they nest.
func mergeEscaped(text string, rest []ast.Part) (string, int) {
	consumed := 0
	pairs := 0
	for consumed+1 < len(rest) && !rest[consumed].Verbatim && rest[consumed+1].Verbatim {
		text += rest[consumed].Text + rest[consumed+1].Text
		consumed += 2
		if strings.HasSuffix(rest[consumed-1].Text, escapeMarker) {
			pairs = 0
			continue
		}
		pairs++
		if pairs == 2 {
			break
		}
	}
	return text, consumed
}
