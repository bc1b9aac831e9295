// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pdiddy/scholar-search/internal/actions"
	"github.com/pdiddy/scholar-search/internal/present"
	"github.com/pdiddy/scholar-search/internal/scholar"
	"github.com/pdiddy/scholar-search/internal/session"
	"github.com/pdiddy/scholar-search/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Relevance-ranked keyword search",
	Long: `Search runs a simple keyword search against Semantic Scholar. Matches of the
query in titles and abstracts are marked with **.

Use --from to rerun a request file saved with --save.`,
	Example: `  scholar-search search "business process compliance" --year 1991-2020
  scholar-search search compliance --fields-of-study Business,"Computer Science" --page 2`,
	RunE: withApp(runSearch),
}

func init() {
	addKeywordFlags(searchCmd.Flags())

	rootCmd.AddCommand(searchCmd)
}

// addKeywordFlags registers the keyword request flags on fs.
func addKeywordFlags(fs *pflag.FlagSet) {
	fs.String("year", "", "publication year or range (e.g. 2019, 1991-2020)")
	fs.StringSlice("fields-of-study", nil, "restrict to fields of study (comma-separated)")
	fs.Int("limit", types.DefaultKeywordLimit, "results per page (1-100)")
	fs.Int("page", 1, "1-based page number")
	fs.String("from", "", "read the request from a saved YAML file")
	fs.String("save", "", "save the request to a YAML file")
	fs.Bool("json", false, "output results as JSON")
}

func runSearch(cmd *cobra.Command, args []string, a *app) error {
	req, err := keywordRequest(cmd, args)
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("save"); path != "" {
		if err := scholar.SaveKeywordRequest(path, req); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved request to %s\n", path)
	}

	return a.apply(cmd, func(ctx context.Context, prev session.Snapshot) actions.Outcome {
		return a.handler.Search(ctx, prev, req)
	})
}

func keywordRequest(cmd *cobra.Command, args []string) (types.KeywordRequest, error) {
	var req types.KeywordRequest
	fromFile := false
	if path, _ := cmd.Flags().GetString("from"); path != "" {
		rf, err := scholar.ReadRequestFile(path)
		if err != nil {
			return req, err
		}
		if rf.Keyword == nil {
			return req, fmt.Errorf("request file %s holds a %s request; use the %s command", path, rf.Mode, rf.Mode)
		}
		req = *rf.Keyword
		fromFile = true
	}

	if len(args) > 0 {
		req.Query = strings.Join(args, " ")
	}

	flags := cmd.Flags()
	use := func(name string) bool { return !fromFile || flags.Changed(name) }
	if use("year") {
		req.Year, _ = flags.GetString("year")
	}
	if use("fields-of-study") {
		req.FieldsOfStudy, _ = flags.GetStringSlice("fields-of-study")
	}
	if use("limit") || req.Limit == 0 {
		req.Limit, _ = flags.GetInt("limit")
	}
	page, _ := flags.GetInt("page")
	req.Offset = present.Offset(page, req.Limit)
	return req, nil
}
