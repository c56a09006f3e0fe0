package handlers

import (
	"github.com/spf13/cobra"
)

// NewReviewsCmd creates the review fetch command
func NewReviewsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reviews",
		Short: "Fetch audience reviews for every silver movie",
		Long:  `Read the silver movie table and download the reviews for each movie into the bronze layer, one JSON file per movie.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := catalogPipeline()
			if err != nil {
				return err
			}
			return p.FetchReviews(cmd.Context())
		},
	}
}

// NewEnrichCmd creates the silver enrichment command
func NewEnrichCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enrich",
		Short: "Attach fetched reviews to the silver movie table",
		Long:  `Join the bronze review files onto the silver movies and write the enriched silver table. Movies without a review file are kept and marked as missing reviews.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return localPipeline().Enrich()
		},
	}
}

// NewValidateReviewsCmd creates the review validation command
func NewValidateReviewsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-reviews",
		Short: "Score, deduplicate, and rank the attached reviews",
		Long:  `Run the review processor over the enriched silver table: relevance scoring against the movie overview, near-duplicate collapsing, sentiment balancing, and final ranking. Writes the validated silver table.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := embeddingPipeline(cmd.Context())
			if err != nil {
				return err
			}
			return p.ValidateReviews(cmd.Context())
		},
	}
}
