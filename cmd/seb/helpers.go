package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/matsen/seb/internal/api"
	"github.com/matsen/seb/internal/ast"
	"github.com/matsen/seb/internal/bibtex"
	"github.com/matsen/seb/internal/cache"
	"github.com/matsen/seb/internal/config"
	"github.com/matsen/seb/internal/file"
)

// cachePath is where the lookup cache lives; overridable via config.
var cachePath string

// bibliographyPath returns the file to operate on: the --file flag (created
// on first use) or the .bib file found in the working directory.
func bibliographyPath() (string, error) {
	if flags.file != "" {
		return flags.file, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return file.Find(cwd)
}

// loadBiblio reads and parses the bibliography at path. Entries with missing
// fields are completed interactively when --interact is set; otherwise they
// fail the load with the resolver report.
func loadBiblio(path string) (*ast.Biblio, error) {
	text, err := file.Read(path)
	if err != nil {
		return nil, err
	}

	biblio, unresolved, err := bibtex.Parse(text)
	if err != nil {
		return nil, err
	}
	return resolveUnresolved(biblio, unresolved)
}

// resolveUnresolved turns a parse or lookup result into a Biblio, prompting
// for missing fields when --interact is set.
func resolveUnresolved(biblio *ast.Biblio, unresolved *ast.BiblioResolver) (*ast.Biblio, error) {
	if unresolved == nil {
		return biblio, nil
	}
	if flags.interact {
		return resolveInteractively(unresolved, newPrompter())
	}
	return nil, unresolved
}

// saveBiblio writes the bibliography back, but only when it changed.
func saveBiblio(path string, biblio *ast.Biblio) error {
	if !biblio.Dirty() {
		verbosef("no changes to %s", path)
		return nil
	}

	if err := file.Write(path, bibtex.Compose(biblio)); err != nil {
		return err
	}
	verbosef("wrote %d entries to %s", biblio.Len(), path)
	return nil
}

// newLookupClient builds the client used for remote lookups, wrapped in the
// sqlite cache unless --no-cache is set. The returned cleanup is always safe
// to call.
func newLookupClient() (api.Client, func()) {
	base := api.NewHTTPClient()
	if flags.noCache {
		return base, func() {}
	}

	path := cachePath
	if path == "" {
		path = config.DefaultCachePath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		verbosef("lookup cache disabled: %v", err)
		return base, func() {}
	}

	store, err := cache.Open(path)
	if err != nil {
		verbosef("lookup cache disabled: %v", err)
		return base, func() {}
	}
	return cache.NewClient(base, store), func() { store.Close() }
}

// checkDuplicateField rejects an add when any existing entry already carries
// the looked-up identifier.
func checkDuplicateField(biblio *ast.Biblio, name, value string) error {
	exists := biblio.ContainsField(name, func(v ast.QuotedString) bool {
		return v.String() == value
	})
	if exists {
		return fmt.Errorf("an entry already exists with the %s %q", name, value)
	}
	return nil
}

// checkDuplicateCite rejects an insert that would overwrite an existing
// entry.
func checkDuplicateCite(biblio *ast.Biblio, cite string) error {
	if _, ok := biblio.Get(cite); ok {
		return fmt.Errorf("an entry already exists with the citation key %q", cite)
	}
	return nil
}

// addFetched moves a lookup result into the bibliography. Interactive runs
// pick one record when the lookup returned several, complete its missing
// fields and confirm the rendered entry before the insert; non-interactive
// runs insert every complete entry and fail on incomplete ones with the
// resolver report.
func addFetched(biblio, fetched *ast.Biblio, unresolved *ast.BiblioResolver) error {
	if !flags.interact {
		resolved, err := resolveUnresolved(fetched, unresolved)
		if err != nil {
			return err
		}
		for _, e := range resolved.IntoEntries() {
			fmt.Printf("adding %s entry %s\n", e.Kind(), e.Cite())
			biblio.Insert(e)
		}
		return nil
	}

	p := newPrompter()
	var entry *ast.Entry
	var err error
	if unresolved != nil {
		entry, err = p.selectResolvable(unresolved)
	} else {
		entry, err = p.selectEntry(fetched)
	}
	if err != nil {
		return err
	}

	return confirmInsert(p, biblio, entry)
}

// confirmInsert inserts the entry, in interactive runs only after the user
// confirmed the rendered record. Declining leaves the bibliography clean, so
// nothing is written back.
func confirmInsert(p *prompter, biblio *ast.Biblio, entry *ast.Entry) error {
	if flags.interact {
		ok, err := p.confirmEntry(entry)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("entry not added")
			return nil
		}
	}

	fmt.Printf("adding %s entry %s\n", entry.Kind(), entry.Cite())
	biblio.Insert(entry)
	return nil
}
