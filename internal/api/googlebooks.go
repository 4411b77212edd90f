package api

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/matsen/seb/internal/ast"
	"github.com/matsen/seb/internal/seb"
)

const googleBooksBase = "https://www.googleapis.com/books/v1/volumes"

type volumeInfo struct {
	Authors       []string `json:"authors"`
	Title         string   `json:"title"`
	Publisher     string   `json:"publisher"`
	PublishedDate string   `json:"publishedDate"`
}

// EntriesByISBN looks up an ISBN on Google Books. The volume metadata is
// mapped onto a book resolver, so a volume missing an author or publisher
// comes back through the BiblioResolver for the caller to finish.
func EntriesByISBN(ctx context.Context, c Client, isbn string) (*ast.Biblio, *ast.BiblioResolver, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(isbn), "-", "")

	var result struct {
		Items []struct {
			VolumeInfo volumeInfo `json:"volumeInfo"`
		} `json:"items"`
	}
	if err := c.GetJSON(ctx, fmt.Sprintf("%s?q=isbn:%s", googleBooksBase, clean), &result); err != nil {
		return nil, nil, err
	}
	if len(result.Items) == 0 {
		return nil, nil, seb.New(seb.KindNoValue, fmt.Sprintf("no books found matching ISBN %q", isbn))
	}

	r, err := bookResolver(result.Items[0].VolumeInfo, clean)
	if err != nil {
		return nil, nil, err
	}

	biblio, unresolved := ast.TryResolve([]*ast.Resolver{r})
	return biblio, unresolved, nil
}

// bookResolver maps volume metadata onto a book resolver. The citation key
// stays derived from author and year. Only fields the volume actually carries
// are set.
func bookResolver(info volumeInfo, isbn string) (*ast.Resolver, error) {
	r := ast.NewResolver(ast.Book)

	if len(info.Authors) > 0 {
		r.Author(strings.Join(info.Authors, ","))
	}
	if info.Title != "" {
		r.Title(info.Title)
	}
	if info.Publisher != "" {
		r.Publisher(info.Publisher)
	}

	if info.PublishedDate != "" {
		parts := strings.Split(info.PublishedDate, "-")
		if _, err := strconv.Atoi(parts[0]); err != nil {
			return nil, seb.New(seb.KindDeserialize, "date format was different than expected")
		}
		r.Year(parts[0])
		if len(parts) > 1 {
			r.SetField("month", ast.NewQuotedString(parts[1]))
		}
	}

	if isbn != "" {
		r.SetField("isbn", ast.NewQuotedString(isbn))
	}

	return r, nil
}
