package api

import (
	"context"
	"fmt"

	"github.com/matsen/seb/internal/ast"
	"github.com/matsen/seb/internal/bibtex"
)

// EntriesByRFC looks up an RFC number on the IETF datatracker, which serves a
// BibTeX record per document.
func EntriesByRFC(ctx context.Context, c Client, number uint) (*ast.Biblio, *ast.BiblioResolver, error) {
	text, err := c.GetText(ctx, fmt.Sprintf("https://datatracker.ietf.org/doc/rfc%d/bibtex/", number))
	if err != nil {
		return nil, nil, err
	}
	return bibtex.Parse(text)
}
