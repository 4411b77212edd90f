// Package bibtex maps bibliographies to and from BibTeX text.
//
// Parsing never fails on incomplete records: a record missing required fields
// comes back as part of an ast.BiblioResolver so the caller can supply the
// fields and retry. Only malformed text is an error.
package bibtex

import (
	"sort"
	"strings"

	"github.com/matsen/seb/internal/ast"
	"github.com/matsen/seb/internal/seb"
)

// kindForType maps a declared BibTeX record type to an entry kind. The inbook
// family collapses to a book section because the declared type alone does not
// say whether a chapter or a page range is meant.
func kindForType(name string) ast.EntryKind {
	switch strings.ToLower(name) {
	case "article":
		return ast.Article
	case "book":
		return ast.Book
	case "booklet":
		return ast.Booklet
	case "inbook", "incollection", "suppbook":
		return ast.BookSection
	case "inproceedings", "conference":
		return ast.InProceedings
	case "manual":
		return ast.Manual
	case "mastersthesis", "masterthesis":
		return ast.MasterThesis
	case "phdthesis":
		return ast.PhdThesis
	case "proceedings":
		return ast.Proceedings
	case "techreport", "report":
		return ast.TechReport
	case "unpublished":
		return ast.Unpublished
	default:
		return ast.ParseKind(name)
	}
}

// typeForKind is the inverse of kindForType for composing.
func typeForKind(kind ast.EntryKind) string {
	switch kind {
	case ast.BookChapter, ast.BookPages:
		return "inbook"
	case ast.BookSection:
		return "incollection"
	case ast.InProceedings:
		return "inproceedings"
	case ast.MasterThesis:
		return "masterthesis"
	case ast.PhdThesis:
		return "phdthesis"
	case ast.TechReport:
		return "techreport"
	default:
		return kind.String()
	}
}

// fieldNameIn normalizes a declared field name: lowercased, with booktitle
// renamed to the internal book_title.
func fieldNameIn(name string) string {
	name = strings.ToLower(name)
	if name == "booktitle" {
		return "book_title"
	}
	return name
}

// fieldNameOut renders an internal field name in BibTeX convention, which has
// no underscores.
func fieldNameOut(name string) string {
	return strings.ReplaceAll(name, "_", "")
}

// Parse reads BibTeX text into a bibliography. When every record carries the
// required fields of its kind the result is a Biblio; otherwise it is a
// BiblioResolver holding the incomplete records for the caller to finish.
// Text that cannot be read as BibTeX at all is a Deserialize error.
func Parse(text string) (*ast.Biblio, *ast.BiblioResolver, error) {
	if strings.TrimSpace(text) == "" {
		return ast.New(nil), nil, nil
	}

	doc, err := parser.ParseString("", text)
	if err != nil {
		return nil, nil, seb.WrapWith(seb.KindDeserialize, err, "unable to parse string as BibTeX")
	}
	if len(doc.Records) == 0 {
		return nil, nil, seb.New(seb.KindDeserialize, "unable to parse string as BibTeX")
	}

	resolvers := make([]*ast.Resolver, 0, len(doc.Records))
	for _, rec := range doc.Records {
		kind := kindForType(rec.Kind)

		var r *ast.Resolver
		if rec.Cite == "" {
			r = ast.NewResolver(kind)
		} else {
			r = ast.NewResolverWithCite(kind, rec.Cite)
		}

		for _, f := range rec.Fields {
			r.SetField(fieldNameIn(f.Name), ast.FromParts(f.Value.parts()))
		}
		resolvers = append(resolvers, r)
	}

	biblio, unresolved := ast.TryResolve(resolvers)
	return biblio, unresolved, nil
}

// Compose renders a bibliography as BibTeX text. Entries are grouped by kind
// under a comment header, groups ordered by kind label; an empty bibliography
// is the empty string.
func Compose(b *ast.Biblio) string {
	groups := make(map[ast.EntryKind][]*ast.Entry)
	for _, e := range b.Entries() {
		groups[e.Kind()] = append(groups[e.Kind()], e)
	}

	kinds := make([]ast.EntryKind, 0, len(groups))
	for kind := range groups {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	var out strings.Builder
	for _, kind := range kinds {
		out.WriteString("% ")
		out.WriteString(kind.String())
		out.WriteString("\n")
		for _, e := range groups[kind] {
			out.WriteString(ComposeEntry(e))
			out.WriteString("\n")
		}
	}
	return out.String()
}

// ComposeEntry renders one entry as a BibTeX record. Verbatim spans in the
// field values come out re-braced.
func ComposeEntry(e *ast.Entry) string {
	var out strings.Builder
	out.WriteString("@")
	out.WriteString(typeForKind(e.Kind()))
	out.WriteString("{")
	out.WriteString(e.Cite())
	out.WriteString(",\n")

	for _, f := range e.Fields() {
		out.WriteString("    ")
		out.WriteString(fieldNameOut(f.Name))
		out.WriteString(" = {")
		out.WriteString(f.Value.MapQuoted(func(s string) string { return "{" + s + "}" }))
		out.WriteString("},\n")
	}

	out.WriteString("}\n")
	return out.String()
}
