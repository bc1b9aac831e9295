// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-search/internal/actions"
	"github.com/pdiddy/scholar-search/internal/session"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Fetch the next bulk page using the continuation token",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		return a.apply(cmd, a.handler.Next)
	}),
}

var pageCmd = &cobra.Command{
	Use:   "page <n>",
	Short: "Show page n of the last search or bulk query",
	Long: `Page reissues the last keyword or bulk query at the given 1-based page.
The offset sent is (n-1) times the page size. Bulk offsets beyond the first
1000 results may be rejected by the provider; use "next" to go further.`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		page, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("page must be a number: %q", args[0])
		}
		return a.apply(cmd, func(ctx context.Context, prev session.Snapshot) actions.Outcome {
			return a.handler.Page(ctx, prev, page)
		})
	}),
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the results held by the session",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		snap, err := a.store.Load(cmd.Context(), a.cfg.Session.Name)
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")
		return render(cmd.OutOrStdout(), snap, asJSON)
	}),
}

func init() {
	nextCmd.Flags().Bool("json", false, "output results as JSON")
	pageCmd.Flags().Bool("json", false, "output results as JSON")
	showCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(nextCmd, pageCmd, showCmd)
}
