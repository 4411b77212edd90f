package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/matsen/seb/internal/ast"
	"github.com/matsen/seb/internal/bibtex"
	"github.com/matsen/seb/internal/seb"
)

const crossRefBase = "https://api.crossref.org/works"

// EntriesByDOI looks up a DOI on CrossRef. The service answers in BibTeX, so
// the result follows the usual resolution split: a Biblio when the record is
// complete, a BiblioResolver when fields are missing.
func EntriesByDOI(ctx context.Context, c Client, doi string) (*ast.Biblio, *ast.BiblioResolver, error) {
	text, err := c.GetText(ctx, fmt.Sprintf("%s/%s/transform/application/x-bibtex", crossRefBase, doi))
	if err != nil {
		return nil, nil, err
	}
	return bibtex.Parse(text)
}

// EntryStub is a search result from a title query: just enough to show a
// candidate and look up the full entry by DOI afterwards.
type EntryStub struct {
	DOI   string
	Title string
}

// EntryStubsByTitle searches CrossRef for works matching a title and returns
// up to limit candidate stubs. No matches is a NoValue error.
func EntryStubsByTitle(ctx context.Context, c Client, title string, limit int) ([]EntryStub, error) {
	if limit <= 0 {
		limit = 10
	}

	query := fmt.Sprintf("%s?query.title=%s&rows=%d&select=DOI,title",
		crossRefBase, url.QueryEscape(title), limit)

	var result struct {
		Message struct {
			Items []struct {
				DOI   string   `json:"DOI"`
				Title []string `json:"title"`
			} `json:"items"`
		} `json:"message"`
	}
	if err := c.GetJSON(ctx, query, &result); err != nil {
		return nil, err
	}

	stubs := make([]EntryStub, 0, len(result.Message.Items))
	for _, item := range result.Message.Items {
		if item.DOI == "" || len(item.Title) == 0 {
			continue
		}
		stubs = append(stubs, EntryStub{DOI: item.DOI, Title: item.Title[0]})
	}

	if len(stubs) == 0 {
		return nil, seb.New(seb.KindNoValue, fmt.Sprintf("no search results for title %q", title))
	}
	return stubs, nil
}
