package handlers

import (
	"github.com/spf13/cobra"
)

// NewSubtitlesCmd creates the subtitle fetch command
func NewSubtitlesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subtitles",
		Short: "Scrape English subtitles for every silver movie",
		Long:  `Look up each silver movie by its IMDb identifier on the subtitle site, download the first English SRT found, and record a per-movie metadata file either way.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return subtitlePipeline().FetchSubtitles(cmd.Context())
		},
	}
}
