// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-search/internal/actions"
	"github.com/pdiddy/scholar-search/internal/present"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the session's current results to a file",
	Long: `Export writes the results held by the session. CSV is the default, with the
columns Title, Year, Journal/Venue, Abstract, Authors and URL; missing values
are left empty. The default file name is search_results.csv or
bulk_search_results.csv depending on the query mode. Use --output - to write
to stdout.

JSON writes the raw records and CSL writes a CSL-YAML bibliography for Pandoc
and reference managers.`,
	Args: cobra.NoArgs,
	RunE: withApp(runExport),
}

func init() {
	exportCmd.Flags().String("format", "csv", "output format: csv, json, csl")
	exportCmd.Flags().StringP("output", "o", "", "output file (default depends on format and mode)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string, a *app) error {
	snap, err := a.store.Load(cmd.Context(), a.cfg.Session.Name)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	var (
		data []byte
		name string
	)
	switch strings.ToLower(format) {
	case "csv":
		data, name, err = actions.Export(snap)
	case "json":
		if !snap.HasResults() || len(snap.Results.Data) == 0 {
			err = present.ErrNothingToExport
			break
		}
		var buf bytes.Buffer
		err = present.WriteJSON(&buf, *snap.Results)
		data, name = buf.Bytes(), strings.TrimSuffix(actions.ExportName(snap.Mode), ".csv")+".json"
	case "csl":
		var buf bytes.Buffer
		err = present.WriteCSL(&buf, snap.Results)
		data, name = buf.Bytes(), strings.TrimSuffix(actions.ExportName(snap.Mode), ".csv")+".yaml"
	default:
		return fmt.Errorf("unknown format %q (want csv, json or csl)", format)
	}
	if errors.Is(err, present.ErrNothingToExport) {
		return errors.New("There are no results to export. Run a search first.")
	}
	if err != nil {
		return err
	}

	if output == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if output == "" {
		output = name
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d results to %s\n", len(snap.Results.Data), output)
	return nil
}
