// Package handlers defines the cinecap command tree. Each subcommand maps
// to one pipeline stage; the intended run order is extract, reviews,
// subtitles, transform, enrich, validate-reviews, premises, anchors, axes,
// critics, cleanup-critics, capsules, gold, warehouse.
package handlers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cinecap/internal/config"
)

var cfgFile string

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cinecap",
		Short: "cinecap builds a validated movie catalog with generated narrative artifacts",
		Long: `cinecap is a batch pipeline over a movie catalog API. It extracts
well-voted movies into a bronze layer, reconciles them into silver,
validates audience reviews by relevance, and generates validated
narrative artifacts (premise, tension axes, character anchors, critic
summary, emotional capsules) into gold. The silver dataset also loads
into a SQLite warehouse.`,
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.cinecap.yaml)")

	rootCmd.AddCommand(NewExtractCmd())
	rootCmd.AddCommand(NewReviewsCmd())
	rootCmd.AddCommand(NewSubtitlesCmd())
	rootCmd.AddCommand(NewTransformCmd())
	rootCmd.AddCommand(NewEnrichCmd())
	rootCmd.AddCommand(NewValidateReviewsCmd())
	rootCmd.AddCommand(NewPremisesCmd())
	rootCmd.AddCommand(NewAnchorsCmd())
	rootCmd.AddCommand(NewAxesCmd())
	rootCmd.AddCommand(NewCriticsCmd())
	rootCmd.AddCommand(NewCleanupCriticsCmd())
	rootCmd.AddCommand(NewCapsulesCmd())
	rootCmd.AddCommand(NewGoldCmd())
	rootCmd.AddCommand(NewWarehouseCmd())

	return rootCmd
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig() {
	if _, err := config.Load(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
}
