package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(rmCmd)
}

var rmCmd = &cobra.Command{
	Use:   "rm <cite>",
	Short: "Remove an entry by citation key",
	Long:  `Remove the entry with the given citation key. The match ignores case.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRm(args[0])
	},
}

func runRm(cite string) error {
	path, err := bibliographyPath()
	if err != nil {
		return err
	}
	biblio, err := loadBiblio(path)
	if err != nil {
		return err
	}

	if !biblio.Remove(cite) {
		return fmt.Errorf("no entry with the citation key %q", cite)
	}

	fmt.Printf("removed %s\n", cite)
	return saveBiblio(path, biblio)
}
