// Package main provides the seb CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matsen/seb/internal/config"
)

// Version is set at build time via ldflags
var Version = "dev"

var flags struct {
	file     string
	interact bool
	noCache  bool
	verbose  bool
}

var rootCmd = &cobra.Command{
	Use:   "seb",
	Short: "Search and edit bibliographic entries in a BibTeX file",
	Long: `seb manages the entries of a local BibTeX bibliography.

Entries can be fetched by DOI, ISBN or RFC number, pulled out of a paper
PDF, or written by hand. Fetched entries that are missing required fields
can be completed interactively with --interact.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: applyConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flags.file, "file", "", "bibliography file (default: the .bib file in the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&flags.interact, "interact", "i", false, "prompt for missing entry fields")
	rootCmd.PersistentFlags().BoolVar(&flags.noCache, "no-cache", false, "skip the local lookup cache")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "print progress information")
	rootCmd.Version = Version
}

// applyConfig fills in flags the user did not set from the config file and
// the SEB_* environment.
func applyConfig(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if !cmd.Flags().Changed("file") && cfg.File != "" {
		flags.file = cfg.File
	}
	if !cmd.Flags().Changed("interact") && cfg.Interact {
		flags.interact = true
	}
	if !cmd.Flags().Changed("no-cache") && cfg.NoCache {
		flags.noCache = true
	}
	if cfg.CachePath != "" {
		cachePath = cfg.CachePath
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func verbosef(format string, args ...any) {
	if flags.verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
