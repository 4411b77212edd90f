package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/seb/internal/ast"
)

var newOpts struct {
	cite   string
	fields []string
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringVar(&newOpts.cite, "cite", "", "citation key (default: derived from author and year)")
	newCmd.Flags().StringArrayVar(&newOpts.fields, "field", nil, "name=value field to pre-fill, repeatable")
}

var newCmd = &cobra.Command{
	Use:   "new <kind>",
	Short: "Write a new entry by hand",
	Long: `Write a new entry of the given kind, prompting for its required fields.

The kind can be any of the known kinds (article, book, manual, phd_thesis,
...) or a custom name, which requires only a title.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNew(args[0])
	},
}

func runNew(kindName string) error {
	path, err := bibliographyPath()
	if err != nil {
		return err
	}
	biblio, err := loadBiblio(path)
	if err != nil {
		return err
	}

	kind := ast.ParseKind(kindName)
	var r *ast.Resolver
	if newOpts.cite != "" {
		if err := checkDuplicateCite(biblio, newOpts.cite); err != nil {
			return err
		}
		r = ast.NewResolverWithCite(kind, newOpts.cite)
	} else {
		r = ast.NewResolver(kind)
	}

	for _, pair := range newOpts.fields {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return fmt.Errorf("invalid --field %q, want name=value", pair)
		}
		r.SetField(name, ast.NewQuotedString(value))
	}

	p := newPrompter()
	if err := p.fillResolver(r); err != nil {
		return err
	}

	entry, err := r.Resolve()
	if err != nil {
		return err
	}
	if err := checkDuplicateCite(biblio, entry.Cite()); err != nil {
		return err
	}

	if err := confirmInsert(p, biblio, entry); err != nil {
		return err
	}
	return saveBiblio(path, biblio)
}
