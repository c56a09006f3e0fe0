package handlers

import (
	"github.com/spf13/cobra"
)

// NewTransformCmd creates the bronze to silver merge command
func NewTransformCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transform",
		Short: "Merge the bronze category files into the silver movie table",
		Long:  `Read every raw category file in the bronze layer, normalize titles and overviews, drop rows with invalid identifiers, reconcile duplicates across categories, and write the deduplicated silver movie table.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return localPipeline().Transform()
		},
	}
}

// NewGoldCmd creates the gold merge command
func NewGoldCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gold",
		Short: "Merge the per-artifact tables into the unified gold table",
		Long:  `Join the premise, axes, anchor, critic summary, and capsule tables on movie id and write the unified gold movie table. Tables that have not been generated yet are tolerated.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return localPipeline().Gold()
		},
	}
}

// NewWarehouseCmd creates the warehouse load command
func NewWarehouseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "warehouse",
		Short: "Load the silver movie table into the SQLite warehouse",
		Long:  `Replace the warehouse contents with the current silver movie table and report referential soundness: orphan links, movies without genres, and movies without a source category.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return localPipeline().Warehouse()
		},
	}
}
