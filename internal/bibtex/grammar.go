package bibtex

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/matsen/seb/internal/ast"
)

// The lexer is stateful because '{' and '}' mean different things at each
// nesting depth: the first level delimits a record, the second a field value
// and the third a verbatim span inside a value.
var bibLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Comment", Pattern: `%[^\n]*`},
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "At", Pattern: `@`},
		{Name: "Ident", Pattern: `[A-Za-z][A-Za-z0-9_\-]*`},
		{Name: "Open", Pattern: `\{`, Action: lexer.Push("Record")},
	},
	"Record": {
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "Comma", Pattern: `,`},
		{Name: "Eq", Pattern: `=`},
		{Name: "VOpen", Pattern: `\{`, Action: lexer.Push("Value")},
		{Name: "Close", Pattern: `\}`, Action: lexer.Pop()},
		{Name: "Item", Pattern: `[^,={}\s]+`},
	},
	"Value": {
		{Name: "BOpen", Pattern: `\{`, Action: lexer.Push("Verbatim")},
		{Name: "VClose", Pattern: `\}`, Action: lexer.Pop()},
		{Name: "Text", Pattern: `[^{}]+`},
	},
	"Verbatim": {
		{Name: "BClose", Pattern: `\}`, Action: lexer.Pop()},
		{Name: "VText", Pattern: `[^{}]+`},
	},
})

var parser = participle.MustBuild[document](
	participle.Lexer(bibLexer),
	participle.Elide("Whitespace", "Comment"),
)

type document struct {
	Records []*record `parser:"@@*"`
}

type record struct {
	Kind   string   `parser:"At @Ident Open"`
	Cite   string   `parser:"@Item? Comma"`
	Fields []*field `parser:"@@* Close"`
}

type field struct {
	Name  string `parser:"@Item Eq"`
	Value *value `parser:"@@ Comma?"`
}

// A value is either braced, in which case inner braces mark verbatim spans,
// or a bare token such as a year.
type value struct {
	Chunks []*chunk `parser:"VOpen @@* VClose"`
	Bare   *string  `parser:"| @Item"`
}

type chunk struct {
	Verb *verb   `parser:"@@"`
	Text *string `parser:"| @Text"`
}

type verb struct {
	Text string `parser:"BOpen @VText? BClose"`
}

func (v *value) parts() []ast.Part {
	if v.Bare != nil {
		return []ast.Part{{Text: *v.Bare}}
	}

	parts := make([]ast.Part, 0, len(v.Chunks))
	for _, c := range v.Chunks {
		switch {
		case c.Verb != nil:
			parts = append(parts, ast.Part{Verbatim: true, Text: c.Verb.Text})
		case c.Text != nil:
			parts = append(parts, ast.Part{Text: *c.Text})
		}
	}
	return mergeParts(parts)
}
