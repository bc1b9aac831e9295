// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package present

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdiddy/scholar-search/pkg/types"
)

// ErrNothingToExport is returned when there are no records to write.
var ErrNothingToExport = errors.New("no results to export")

// CSVHeader is the column order of exported files.
var CSVHeader = []string{"Title", "Year", "Journal/Venue", "Abstract", "Authors", "URL"}

// ExportCSV renders the records of env as UTF-8 CSV with a header row.
// Absent fields are written as empty cells. A nil envelope or one with no
// records yields ErrNothingToExport.
func ExportCSV(env *types.ResultEnvelope) ([]byte, error) {
	if env == nil || len(env.Data) == 0 {
		return nil, ErrNothingToExport
	}

	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(CSVHeader); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}
	for _, p := range env.Data {
		year := ""
		if p.Year != nil {
			year = strconv.Itoa(*p.Year)
		}
		row := []string{
			deref(p.Title),
			year,
			deref(p.Venue),
			deref(p.Abstract),
			strings.Join(p.AuthorNames(), ", "),
			deref(p.URL),
		}
		if err := cw.Write(row); err != nil {
			return nil, fmt.Errorf("writing CSV row for %s: %w", p.PaperID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("writing CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteJSON writes the records of env as indented JSON.
func WriteJSON(w io.Writer, env types.ResultEnvelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env.Data)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
