// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scholar-search/internal/scholar"
	"github.com/pdiddy/scholar-search/internal/session"
	"github.com/pdiddy/scholar-search/pkg/types"
)

func bulkTestCmd(t *testing.T, flags ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "bulk"}
	addBulkFlags(cmd.Flags())
	require.NoError(t, cmd.ParseFlags(flags))
	return cmd
}

func keywordTestCmd(t *testing.T, flags ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "search"}
	addKeywordFlags(cmd.Flags())
	require.NoError(t, cmd.ParseFlags(flags))
	return cmd
}

func TestBulkRequestFromFlags(t *testing.T) {
	cmd := bulkTestCmd(t,
		"--sort", "citationCount:desc",
		"--type", "JournalArticle,Conference",
		"--open-access",
		"--min-citations", "5",
		"--date", "2010:",
		"--venue", "Nature",
		"--fields-of-study", "Biology",
		"--page", "3",
	)
	req, err := bulkRequest(cmd, []string{`"fish ladder"`, "|", "salmon"})
	require.NoError(t, err)

	assert.Equal(t, types.SearchRequest{
		Query:                 `"fish ladder" | salmon`,
		Sort:                  "citationCount:desc",
		PublicationTypes:      []string{"JournalArticle", "Conference"},
		OpenAccessPDF:         true,
		MinCitationCount:      5,
		PublicationDateOrYear: "2010:",
		Venue:                 "Nature",
		FieldsOfStudy:         []string{"Biology"},
		Limit:                 1000,
		Offset:                2000,
	}, req)
}

func TestBulkRequestFromFileWithOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, scholar.SaveBulkRequest(path, types.SearchRequest{
		Query: "fish ladder", Sort: "publicationDate:desc", MinCitationCount: 10, Limit: 500,
	}))

	cmd := bulkTestCmd(t, "--from", path, "--min-citations", "2")
	req, err := bulkRequest(cmd, nil)
	require.NoError(t, err)
	assert.Equal(t, "fish ladder", req.Query)
	assert.Equal(t, "publicationDate:desc", req.Sort)
	assert.Equal(t, 2, req.MinCitationCount)
	assert.Equal(t, 500, req.Limit)
	assert.Equal(t, 0, req.Offset)
}

func TestBulkRequestRejectsKeywordFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kw.yaml")
	require.NoError(t, scholar.SaveKeywordRequest(path, types.KeywordRequest{Query: "x", Limit: 10}))

	_, err := bulkRequest(bulkTestCmd(t, "--from", path), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "use the search command")
}

func TestKeywordRequest(t *testing.T) {
	cmd := keywordTestCmd(t, "--year", "1991-2020", "--limit", "20", "--page", "2")
	req, err := keywordRequest(cmd, []string{"business", "process", "compliance"})
	require.NoError(t, err)
	assert.Equal(t, types.KeywordRequest{
		Query:         "business process compliance",
		Year:          "1991-2020",
		FieldsOfStudy: []string{},
		Limit:         20,
		Offset:        20,
	}, req)
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render(&buf, session.Empty("default"), false))
	assert.Contains(t, buf.String(), "No results yet")

	title := "Fish ladders"
	snap := session.Snapshot{
		Mode:      session.ModeSearch,
		Limit:     10,
		Page:      1,
		Results:   &types.ResultEnvelope{Total: 1, Data: []types.PaperRecord{{Title: &title}}},
		Highlight: "fish",
	}
	buf.Reset()
	require.NoError(t, render(&buf, snap, false))
	assert.Contains(t, buf.String(), "1. **Fish** ladders")

	buf.Reset()
	require.NoError(t, render(&buf, snap, true))
	assert.Contains(t, buf.String(), `"title": "Fish ladders"`)
}

func TestFormatHistory(t *testing.T) {
	var buf bytes.Buffer
	formatHistory(&buf, nil)
	assert.Equal(t, "No history.\n", buf.String())

	buf.Reset()
	formatHistory(&buf, []session.HistoryEntry{
		{Mode: session.ModeBulk, Query: "fish ladder", Page: 1, Total: 2500, At: time.Now()},
		{Mode: session.ModeBulk, Query: "salmon", ErrorKind: "http_status", At: time.Now()},
	})
	out := buf.String()
	assert.Contains(t, out, "fish ladder")
	assert.Contains(t, out, "http_status")
	assert.Contains(t, out, "ok")
}

func TestFormatHistoryTruncatesOnRunes(t *testing.T) {
	var buf bytes.Buffer
	formatHistory(&buf, []session.HistoryEntry{
		{Mode: session.ModeSearch, Query: strings.Repeat("é", 45), At: time.Now()},
	})
	out := buf.String()
	assert.True(t, utf8.ValidString(out))
	assert.Contains(t, out, strings.Repeat("é", 37)+"...")
	assert.NotContains(t, out, strings.Repeat("é", 38))
}
