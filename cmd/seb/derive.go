package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/seb/internal/ast"
)

var deriveRequire []string

func init() {
	rootCmd.AddCommand(deriveCmd)
	deriveCmd.Flags().StringArrayVar(&deriveRequire, "require", nil, "extra field to require on the derived entry, repeatable")
}

var deriveCmd = &cobra.Command{
	Use:   "derive <cite> <kind> <new-cite>",
	Short: "Derive a new entry from an existing one",
	Long: `Derive a new entry of a different kind from an existing entry, reusing
its fields. Fields the new kind requires beyond what the source entry
carries are prompted for, e.g. the chapter when deriving a book_chapter
from a book.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDerive(args[0], args[1], args[2])
	},
}

func runDerive(cite, kindName, newCite string) error {
	path, err := bibliographyPath()
	if err != nil {
		return err
	}
	biblio, err := loadBiblio(path)
	if err != nil {
		return err
	}

	source, ok := biblio.Get(cite)
	if !ok {
		return fmt.Errorf("no entry with the citation key %q", cite)
	}
	if err := checkDuplicateCite(biblio, newCite); err != nil {
		return err
	}

	r := ast.NewResolverWithCite(ast.ParseKind(kindName), newCite)
	r.SetFieldsFromEntry(source)
	r.AddRequiredFields(deriveRequire...)

	p := newPrompter()
	if err := p.fillResolver(r); err != nil {
		return err
	}

	entry, err := r.Resolve()
	if err != nil {
		return err
	}

	if err := confirmInsert(p, biblio, entry); err != nil {
		return err
	}
	return saveBiblio(path, biblio)
}
