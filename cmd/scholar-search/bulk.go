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

var bulkCmd = &cobra.Command{
	Use:   "bulk [query]",
	Short: "Bulk search with boolean query syntax and filters",
	Long: `Bulk runs a query against the Semantic Scholar bulk search endpoint. The query
is sent verbatim and may use the provider's syntax: + for AND, | for OR,
- to negate, "..." for phrases, * for prefix match and ~N for fuzzy terms.

Bulk search returns up to 1000 papers per call. Use "next" to follow the
continuation token, or "page" to jump to a page by offset. Bulk calls are
never retried automatically.`,
	Example: `  scholar-search bulk '"fish ladder" | "fish passage"' --min-citations 10
  scholar-search bulk 'compliance + (BPMN | "business process")' --sort citationCount:desc --date 2015:`,
	RunE: withApp(runBulk),
}

func init() {
	addBulkFlags(bulkCmd.Flags())

	rootCmd.AddCommand(bulkCmd)
}

// addBulkFlags registers the bulk request flags on fs.
func addBulkFlags(fs *pflag.FlagSet) {
	fs.String("sort", "", "sort order: "+strings.Join(types.SortOrders, ", "))
	fs.StringSlice("type", nil, "publication types (comma-separated), e.g. JournalArticle,Conference")
	fs.Bool("open-access", false, "only papers with a public PDF")
	fs.Int("min-citations", 0, "minimum citation count (0 for no filter)")
	fs.String("date", "", "publication date or year range (e.g. 2019, 2010:, 2019-03-05:2020-06-06)")
	fs.String("venue", "", "comma-separated venues")
	fs.StringSlice("fields-of-study", nil, "restrict to fields of study (comma-separated)")
	fs.Int("limit", types.DefaultBulkLimit, "results per page (1-1000)")
	fs.Int("page", 1, "1-based page number")
	fs.String("from", "", "read the request from a saved YAML file")
	fs.String("save", "", "save the request to a YAML file")
	fs.Bool("json", false, "output results as JSON")
}

func runBulk(cmd *cobra.Command, args []string, a *app) error {
	req, err := bulkRequest(cmd, args)
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("save"); path != "" {
		if err := scholar.SaveBulkRequest(path, req); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved request to %s\n", path)
	}

	return a.apply(cmd, func(ctx context.Context, prev session.Snapshot) actions.Outcome {
		return a.handler.Bulk(ctx, prev, req)
	})
}

// bulkRequest builds the request from an optional request file, then the
// query arguments, then any flags the user set explicitly.
func bulkRequest(cmd *cobra.Command, args []string) (types.SearchRequest, error) {
	var req types.SearchRequest
	fromFile := false
	if path, _ := cmd.Flags().GetString("from"); path != "" {
		rf, err := scholar.ReadRequestFile(path)
		if err != nil {
			return req, err
		}
		if rf.Bulk == nil {
			return req, fmt.Errorf("request file %s holds a %s request; use the %s command", path, rf.Mode, rf.Mode)
		}
		req = *rf.Bulk
		fromFile = true
	}

	if len(args) > 0 {
		req.Query = strings.Join(args, " ")
	}

	flags := cmd.Flags()
	use := func(name string) bool { return !fromFile || flags.Changed(name) }
	if use("sort") {
		req.Sort, _ = flags.GetString("sort")
	}
	if use("type") {
		req.PublicationTypes, _ = flags.GetStringSlice("type")
	}
	if use("open-access") {
		req.OpenAccessPDF, _ = flags.GetBool("open-access")
	}
	if use("min-citations") {
		req.MinCitationCount, _ = flags.GetInt("min-citations")
	}
	if use("date") {
		req.PublicationDateOrYear, _ = flags.GetString("date")
	}
	if use("venue") {
		req.Venue, _ = flags.GetString("venue")
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
