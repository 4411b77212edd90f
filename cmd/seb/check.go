package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/seb/internal/bibtex"
	"github.com/matsen/seb/internal/file"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that the bibliography parses and is complete",
	Long: `Parse the bibliography and verify that every entry carries the required
fields of its kind. The file is never modified.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck()
	},
}

func runCheck() error {
	path, err := bibliographyPath()
	if err != nil {
		return err
	}

	text, err := file.Read(path)
	if err != nil {
		return err
	}

	biblio, unresolved, err := bibtex.Parse(text)
	if err != nil {
		return err
	}
	if unresolved != nil {
		return unresolved
	}

	fmt.Printf("ok: %d entries in %s\n", biblio.Len(), path)
	return nil
}
