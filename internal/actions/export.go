// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package actions

import (
	"github.com/pdiddy/scholar-search/internal/present"
	"github.com/pdiddy/scholar-search/internal/session"
)

// Export file names, by the mode that produced the results.
const (
	SearchExportName = "search_results.csv"
	BulkExportName   = "bulk_search_results.csv"
)

// Export renders the snapshot's current results as CSV and returns the
// file name to offer. It fails with present.ErrNothingToExport when the
// session holds no records.
func Export(s session.Snapshot) ([]byte, string, error) {
	data, err := present.ExportCSV(s.Results)
	if err != nil {
		return nil, "", err
	}
	return data, ExportName(s.Mode), nil
}

// ExportName returns the download name for results produced in mode.
func ExportName(mode session.Mode) string {
	if mode == session.ModeBulk {
		return BulkExportName
	}
	return SearchExportName
}
