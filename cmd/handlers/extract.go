package handlers

import (
	"github.com/spf13/cobra"
)

// NewExtractCmd creates the catalog extraction command
func NewExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract",
		Short: "Discover movies per category and write the bronze layer",
		Long:  `Query the catalog API for each configured category, rank the results by vote count, attach external identifiers, and write one raw JSON file per category into the bronze layer.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := catalogPipeline()
			if err != nil {
				return err
			}
			return p.Extract(cmd.Context())
		},
	}
}
