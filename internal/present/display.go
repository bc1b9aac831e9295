// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package present turns result envelopes into what a person reads or
// downloads: display records with N/A fallbacks, plain text listings, CSV,
// JSON and CSL-YAML exports, and the page arithmetic behind them.
package present

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/scholar-search/pkg/types"
)

// NotAvailable is shown in place of an absent field.
const NotAvailable = "N/A"

// DisplayRecord is one paper rendered for reading. Every field is a
// display string; absent values are NotAvailable.
type DisplayRecord struct {
	Number   int    `json:"number"`
	PaperID  string `json:"paper_id,omitempty"`
	Title    string `json:"title"`
	Year     string `json:"year"`
	Venue    string `json:"venue"`
	Abstract string `json:"abstract"`
	Authors  string `json:"authors"`
	URL      string `json:"url"`
}

// Display renders each record of env, numbering from firstNumber. When
// highlightQuery is non-empty, occurrences in title and abstract are
// wrapped in "**".
func Display(env types.ResultEnvelope, firstNumber int, highlightQuery string) []DisplayRecord {
	out := make([]DisplayRecord, len(env.Data))
	for i, p := range env.Data {
		out[i] = DisplayRecord{
			Number:   firstNumber + i,
			PaperID:  p.PaperID,
			Title:    displayText(p.Title, highlightQuery),
			Year:     orNA(yearString(p.Year)),
			Venue:    displayText(p.Venue, ""),
			Abstract: displayText(p.Abstract, highlightQuery),
			Authors:  strings.Join(p.AuthorNames(), ", "),
			URL:      displayText(p.URL, ""),
		}
	}
	return out
}

// Highlight wraps every case-insensitive occurrence of query in text with
// "**", keeping the matched text's own casing. An empty query returns text
// unchanged. Invalid UTF-8 in query is replaced before matching.
func Highlight(text, query string) string {
	if query == "" {
		return text
	}
	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(strings.ToValidUTF8(query, "\uFFFD")))
	if err != nil {
		return text
	}
	return re.ReplaceAllStringFunc(text, func(m string) string {
		return "**" + m + "**"
	})
}

func displayText(s *string, highlightQuery string) string {
	if s == nil {
		return NotAvailable
	}
	return Highlight(*s, highlightQuery)
}

func yearString(y *int) *string {
	if y == nil {
		return nil
	}
	s := strconv.Itoa(*y)
	return &s
}

func orNA(s *string) string {
	if s == nil {
		return NotAvailable
	}
	return *s
}
