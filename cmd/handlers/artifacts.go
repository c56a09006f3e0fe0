package handlers

import (
	"context"

	"github.com/spf13/cobra"

	"cinecap/internal/pipeline"
)

// NewPremisesCmd creates the premise generation command
func NewPremisesCmd() *cobra.Command {
	return newArtifactCmd(
		"premises",
		"Generate a one-sentence concrete premise for each movie",
		(*pipeline.Pipeline).Premises,
	)
}

// NewAnchorsCmd creates the character anchor generation command
func NewAnchorsCmd() *cobra.Command {
	return newArtifactCmd(
		"anchors",
		"Extract named character anchors for each movie with a premise",
		(*pipeline.Pipeline).Anchors,
	)
}

// NewAxesCmd creates the thematic axes generation command
func NewAxesCmd() *cobra.Command {
	return newArtifactCmd(
		"axes",
		"Select primary and secondary thematic axes for each movie",
		(*pipeline.Pipeline).Axes,
	)
}

// NewCriticsCmd creates the critic summary generation command
func NewCriticsCmd() *cobra.Command {
	return newArtifactCmd(
		"critics",
		"Write an audience-voiced critic summary for each movie",
		(*pipeline.Pipeline).Critics,
	)
}

// NewCapsulesCmd creates the emotional capsule generation command
func NewCapsulesCmd() *cobra.Command {
	return newArtifactCmd(
		"capsules",
		"Generate per-axis emotional capsules for each movie",
		(*pipeline.Pipeline).Capsules,
	)
}

// NewCleanupCriticsCmd creates the critic repair command. It rewrites
// flagged summaries from what is already on disk, without calling the
// generator.
func NewCleanupCriticsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup-critics",
		Short: "Repair flagged critic summaries without regenerating them",
		Long:  `Strip markdown, meta phrases, and trailing parentheticals from flagged critic summaries, then re-validate each repaired text once and promote the ones that now pass.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return localPipeline().CleanupCritics()
		},
	}
}

func newArtifactCmd(use, short string, stage func(*pipeline.Pipeline, context.Context) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := generatorPipeline(cmd.Context())
			if err != nil {
				return err
			}
			return stage(p, cmd.Context())
		},
	}
}
