// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-search/internal/actions"
	"github.com/pdiddy/scholar-search/internal/session"
)

var paperCmd = &cobra.Command{
	Use:   "paper <id>",
	Short: "Look up one paper by Semantic Scholar ID or external ID",
	Long: `Paper fetches a single paper. The ID may be a Semantic Scholar paper ID or a
prefixed external ID: DOI:, ARXIV:, PMID:, CorpusId:, URL: and others the
provider accepts.`,
	Example: `  scholar-search paper 649def34f8be52c8b66281af98ae884c09aef38b
  scholar-search paper DOI:10.18653/v1/N18-3011`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		return a.apply(cmd, func(ctx context.Context, prev session.Snapshot) actions.Outcome {
			return a.handler.Paper(ctx, prev, args[0])
		})
	}),
}

var recommendCmd = &cobra.Command{
	Use:   "recommend <id>",
	Short: "List papers recommended for a paper",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return a.apply(cmd, func(ctx context.Context, prev session.Snapshot) actions.Outcome {
			return a.handler.Recommend(ctx, prev, args[0], limit)
		})
	}),
}

func init() {
	paperCmd.Flags().Bool("json", false, "output results as JSON")
	recommendCmd.Flags().Int("limit", 0, "number of recommendations, 1-500 (default 100)")
	recommendCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(paperCmd, recommendCmd)
}
