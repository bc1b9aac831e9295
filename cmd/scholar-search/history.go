// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-search/internal/session"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent actions in the session",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		n, _ := cmd.Flags().GetInt("n")
		entries, err := a.store.History(cmd.Context(), a.cfg.Session.Name, n)
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(entries)
		}
		formatHistory(cmd.OutOrStdout(), entries)
		return nil
	}),
}

func init() {
	historyCmd.Flags().IntP("n", "n", 20, "number of entries (0 for all)")
	historyCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(historyCmd)
}

func formatHistory(w io.Writer, entries []session.HistoryEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No history.")
		return
	}

	fmt.Fprintf(w, "%-20s  %-9s  %-4s  %-8s  %-12s  %s\n", "Time", "Mode", "Page", "Total", "Status", "Query")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, e := range entries {
		status := "ok"
		if e.ErrorKind != "" {
			status = e.ErrorKind
		}
		query := e.Query
		if r := []rune(query); len(r) > 40 {
			query = string(r[:37]) + "..."
		}
		fmt.Fprintf(w, "%-20s  %-9s  %-4d  %-8d  %-12s  %s\n",
			e.At.Local().Format("2006-01-02 15:04:05"), e.Mode, e.Page, e.Total, status, query)
	}
}
