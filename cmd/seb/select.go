package main

import (
	"fmt"
	"strconv"

	"github.com/matsen/seb/internal/ast"
	"github.com/matsen/seb/internal/bibtex"
)

// pickIndex shows a numbered list of candidate records by title and reads a
// selection. A single candidate is chosen without prompting.
func (p *prompter) pickIndex(items []ast.FieldQuery) (int, error) {
	if len(items) == 1 {
		return 0, nil
	}

	fmt.Fprintln(p.out, "the lookup returned several records:")
	for i, item := range items {
		title := "No title"
		if v, ok := item.GetField("title"); ok {
			title = v.String()
		}
		fmt.Fprintf(p.out, "  [%d] %s %s: %s\n", i+1, item.Kind(), item.Cite(), title)
	}

	for {
		answer, err := p.read(fmt.Sprintf("choose an entry [1-%d]: ", len(items)))
		if err != nil {
			return 0, err
		}
		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(items) {
			return n - 1, nil
		}
		fmt.Fprintf(p.out, "enter a number between 1 and %d\n", len(items))
	}
}

// selectResolvable picks one record out of a partially resolved lookup
// result. A picked record that is still missing fields is completed through
// the prompt before it is returned.
func (p *prompter) selectResolvable(br *ast.BiblioResolver) (*ast.Entry, error) {
	index, err := p.pickIndex(br.Iter())
	if err != nil {
		return nil, err
	}

	entry, resolver, ok := br.CheckedRemove(index)
	if !ok {
		return nil, fmt.Errorf("no record at index %d", index+1)
	}
	if resolver == nil {
		return entry, nil
	}

	fmt.Fprintf(p.out, "%s entry %s is missing required fields\n", resolver.Kind(), resolver.Cite())
	if err := p.fillResolver(resolver); err != nil {
		return nil, err
	}
	return resolver.Resolve()
}

// selectEntry picks one entry out of a fully resolved lookup result.
func (p *prompter) selectEntry(biblio *ast.Biblio) (*ast.Entry, error) {
	entries := biblio.IntoEntries()
	items := make([]ast.FieldQuery, len(entries))
	for i, e := range entries {
		items[i] = e
	}

	index, err := p.pickIndex(items)
	if err != nil {
		return nil, err
	}
	return entries[index], nil
}

// confirmEntry shows the rendered record and asks whether to add it. The
// default answer is no.
func (p *prompter) confirmEntry(e *ast.Entry) (bool, error) {
	fmt.Fprint(p.out, bibtex.ComposeEntry(e))
	answer, err := p.read("add this entry? [y/N]: ")
	if err != nil {
		return false, err
	}
	return answer == "y" || answer == "Y" || answer == "yes", nil
}
