package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/seb/internal/api"
	"github.com/matsen/seb/internal/pdf"
)

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.AddCommand(addDOICmd, addISBNCmd, addRFCCmd, addPDFCmd)
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an entry fetched from a remote service",
}

var addDOICmd = &cobra.Command{
	Use:   "doi <doi>",
	Short: "Add an entry by DOI, via CrossRef",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAddDOI(cmd.Context(), args[0])
	},
}

var addISBNCmd = &cobra.Command{
	Use:   "isbn <isbn>",
	Short: "Add a book entry by ISBN, via Google Books",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAddISBN(cmd.Context(), args[0])
	},
}

var addRFCCmd = &cobra.Command{
	Use:   "rfc <number>",
	Short: "Add an RFC entry by number, via the IETF datatracker",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid RFC number %q", args[0])
		}
		return runAddRFC(cmd.Context(), uint(number))
	},
}

var addPDFCmd = &cobra.Command{
	Use:   "pdf <path>",
	Short: "Add an entry for a paper PDF, via the DOI printed in it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAddPDF(cmd.Context(), args[0])
	},
}

func runAddDOI(ctx context.Context, doi string) error {
	path, err := bibliographyPath()
	if err != nil {
		return err
	}
	biblio, err := loadBiblio(path)
	if err != nil {
		return err
	}
	if err := checkDuplicateField(biblio, "doi", doi); err != nil {
		return err
	}

	client, cleanup := newLookupClient()
	defer cleanup()

	verbosef("fetching DOI %s from CrossRef", doi)
	fetched, unresolved, err := api.EntriesByDOI(ctx, client, doi)
	if err != nil {
		return err
	}

	if err := addFetched(biblio, fetched, unresolved); err != nil {
		return err
	}
	return saveBiblio(path, biblio)
}

func runAddISBN(ctx context.Context, isbn string) error {
	clean := strings.ReplaceAll(strings.TrimSpace(isbn), "-", "")

	path, err := bibliographyPath()
	if err != nil {
		return err
	}
	biblio, err := loadBiblio(path)
	if err != nil {
		return err
	}
	if err := checkDuplicateField(biblio, "isbn", clean); err != nil {
		return err
	}

	client, cleanup := newLookupClient()
	defer cleanup()

	verbosef("fetching ISBN %s from Google Books", clean)
	fetched, unresolved, err := api.EntriesByISBN(ctx, client, isbn)
	if err != nil {
		return err
	}

	if err := addFetched(biblio, fetched, unresolved); err != nil {
		return err
	}
	return saveBiblio(path, biblio)
}

func runAddRFC(ctx context.Context, number uint) error {
	path, err := bibliographyPath()
	if err != nil {
		return err
	}
	biblio, err := loadBiblio(path)
	if err != nil {
		return err
	}
	// The datatracker keys its records rfc<number>.
	if err := checkDuplicateCite(biblio, fmt.Sprintf("rfc%d", number)); err != nil {
		return err
	}

	client, cleanup := newLookupClient()
	defer cleanup()

	verbosef("fetching RFC %d from the IETF datatracker", number)
	fetched, unresolved, err := api.EntriesByRFC(ctx, client, number)
	if err != nil {
		return err
	}

	if err := addFetched(biblio, fetched, unresolved); err != nil {
		return err
	}
	return saveBiblio(path, biblio)
}

func runAddPDF(ctx context.Context, pdfPath string) error {
	doi, err := pdf.ExtractDOI(pdfPath)
	if err != nil {
		return err
	}
	verbosef("found DOI %s in %s", doi, pdfPath)
	return runAddDOI(ctx, doi)
}
