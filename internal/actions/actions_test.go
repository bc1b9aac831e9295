// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package actions

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scholar-search/internal/present"
	"github.com/pdiddy/scholar-search/internal/scholar"
	"github.com/pdiddy/scholar-search/internal/session"
	"github.com/pdiddy/scholar-search/pkg/types"
)

// fakeSearcher records the requests it receives and replies with env and err.
type fakeSearcher struct {
	env types.ResultEnvelope
	err error

	bulk    []types.SearchRequest
	keyword []types.KeywordRequest
	papers  []string
	recs    []int
}

func (f *fakeSearcher) BulkSearch(_ context.Context, req types.SearchRequest) (types.ResultEnvelope, error) {
	f.bulk = append(f.bulk, req)
	return f.env, f.err
}

func (f *fakeSearcher) Search(_ context.Context, req types.KeywordRequest) (types.ResultEnvelope, error) {
	f.keyword = append(f.keyword, req)
	return f.env, f.err
}

func (f *fakeSearcher) Paper(_ context.Context, id string) (types.ResultEnvelope, error) {
	f.papers = append(f.papers, id)
	return f.env, f.err
}

func (f *fakeSearcher) Recommendations(_ context.Context, id string, limit int) (types.ResultEnvelope, error) {
	f.papers = append(f.papers, id)
	f.recs = append(f.recs, limit)
	return f.env, f.err
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newHandler(f *fakeSearcher) *Handler {
	return &Handler{Client: f, Logger: zerolog.Nop(), Now: func() time.Time { return fixedNow }}
}

func strPtr(s string) *string { return &s }

func records(n int) []types.PaperRecord {
	out := make([]types.PaperRecord, n)
	for i := range out {
		out[i] = types.PaperRecord{PaperID: "p", Title: strPtr("Fish ladder study")}
	}
	return out
}

// heldBulk is a session holding the first bulk page of a 2500-result query.
func heldBulk() session.Snapshot {
	req := types.SearchRequest{Query: "fish ladder"}.WithDefaults()
	return session.Snapshot{
		ID:      "default",
		Mode:    session.ModeBulk,
		Bulk:    &req,
		Limit:   1000,
		Page:    1,
		Results: &types.ResultEnvelope{Total: 2500, Data: records(1000), Token: "TOKEN-2"},
	}
}

func TestSearchSuccess(t *testing.T) {
	f := &fakeSearcher{env: types.ResultEnvelope{Total: 57, Data: records(10)}}
	out := newHandler(f).Search(context.Background(), session.Empty("default"),
		types.KeywordRequest{Query: "fish ladder", Offset: 20})

	require.False(t, out.Failed())
	assert.Equal(t, scholar.KindNone, out.Kind)
	s := out.Snapshot
	assert.Equal(t, "default", s.ID)
	assert.Equal(t, session.ModeSearch, s.Mode)
	assert.Equal(t, 3, s.Page)
	assert.Equal(t, 20, s.Offset)
	assert.Equal(t, 10, s.Limit)
	assert.Equal(t, "fish ladder", s.Highlight)
	assert.Equal(t, fixedNow, s.UpdatedAt)

	require.Len(t, f.keyword, 1)
	assert.Equal(t, 10, f.keyword[0].Limit)

	assert.Equal(t, session.HistoryEntry{
		SessionID: "default", Mode: session.ModeSearch, Query: "fish ladder",
		Page: 3, Total: 57, Returned: 10, At: fixedNow,
	}, out.Entry)
}

func TestBulkSuccessHasNoHighlight(t *testing.T) {
	f := &fakeSearcher{env: types.ResultEnvelope{Total: 2500, Data: records(1000), Token: "T"}}
	out := newHandler(f).Bulk(context.Background(), session.Empty("default"), types.SearchRequest{Query: "fish ladder"})

	require.False(t, out.Failed())
	assert.Equal(t, session.ModeBulk, out.Snapshot.Mode)
	assert.Empty(t, out.Snapshot.Highlight)
	assert.Equal(t, 1, out.Snapshot.Page)
	assert.Equal(t, 1000, out.Snapshot.Limit)
	assert.Equal(t, 1000, f.bulk[0].Limit)

	page := View(out.Snapshot)
	assert.Equal(t, "Fish ladder study", page.Records[0].Title)
	assert.True(t, page.HasMore)
}

func TestFailureKeepsPreviousSnapshot(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind scholar.ErrorKind
	}{
		{"transport", &scholar.TransportError{Err: errors.New("connection refused")}, scholar.KindTransport},
		{"status", &scholar.HTTPStatusError{StatusCode: 500}, scholar.KindHTTPStatus},
		{"api", &scholar.APIError{Message: "rate limit exceeded"}, scholar.KindAPI},
		{"validation", &scholar.ValidationError{Field: "query", Message: "must not be empty"}, scholar.KindValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := heldBulk()
			f := &fakeSearcher{err: tt.err}
			h := newHandler(f)
			ctx := context.Background()

			for _, out := range []Outcome{
				h.Bulk(ctx, prev, types.SearchRequest{Query: "salmon"}),
				h.Search(ctx, prev, types.KeywordRequest{Query: "salmon"}),
				h.Next(ctx, prev),
				h.Page(ctx, prev, 2),
				h.Paper(ctx, prev, "abc"),
				h.Recommend(ctx, prev, "abc", 0),
			} {
				require.True(t, out.Failed())
				assert.Equal(t, tt.kind, out.Kind)
				assert.Equal(t, prev, out.Snapshot)
				assert.Equal(t, string(tt.kind), out.Entry.ErrorKind)
				assert.Equal(t, scholar.UserMessage(tt.err), out.Message())
			}

			// Earlier results are still exportable after the failures.
			data, name, err := Export(prev)
			require.NoError(t, err)
			assert.Equal(t, BulkExportName, name)
			assert.NotEmpty(t, data)
		})
	}
}

func TestNextUsesToken(t *testing.T) {
	f := &fakeSearcher{env: types.ResultEnvelope{Total: 2500, Data: records(1000), Token: "TOKEN-3"}}
	out := newHandler(f).Next(context.Background(), heldBulk())

	require.False(t, out.Failed())
	require.Len(t, f.bulk, 1)
	assert.Equal(t, "TOKEN-2", f.bulk[0].Token)
	assert.Equal(t, "fish ladder", f.bulk[0].Query)

	s := out.Snapshot
	assert.Equal(t, 2, s.Page)
	assert.Equal(t, 1000, s.Offset)
	assert.Equal(t, "TOKEN-3", s.Results.Token)
	assert.Equal(t, 1001, View(s).Records[0].Number)
}

func TestNextWithoutToken(t *testing.T) {
	prev := heldBulk()
	prev.Results.Token = ""
	f := &fakeSearcher{}

	out := newHandler(f).Next(context.Background(), prev)
	require.True(t, out.Failed())
	assert.Equal(t, scholar.KindValidation, out.Kind)
	assert.Empty(t, f.bulk)

	out = newHandler(f).Next(context.Background(), session.Empty("default"))
	assert.Equal(t, scholar.KindValidation, out.Kind)
}

func TestPageComputesOffset(t *testing.T) {
	f := &fakeSearcher{env: types.ResultEnvelope{Total: 2500, Data: records(500)}}
	prev := heldBulk()
	prev.Bulk.Token = "stale"

	out := newHandler(f).Page(context.Background(), prev, 3)
	require.False(t, out.Failed())
	require.Len(t, f.bulk, 1)
	assert.Equal(t, 2000, f.bulk[0].Offset)
	assert.Empty(t, f.bulk[0].Token)
	assert.Equal(t, 3, out.Snapshot.Page)
	assert.Equal(t, 2001, View(out.Snapshot).Records[0].Number)
}

func TestPageKeyword(t *testing.T) {
	f := &fakeSearcher{env: types.ResultEnvelope{Total: 57, Data: records(10)}}
	h := newHandler(f)
	first := h.Search(context.Background(), session.Empty("default"), types.KeywordRequest{Query: "fish"})
	require.False(t, first.Failed())

	out := h.Page(context.Background(), first.Snapshot, 6)
	require.False(t, out.Failed())
	assert.Equal(t, 50, f.keyword[1].Offset)
	assert.Equal(t, 6, out.Snapshot.Page)
}

func TestPageOutOfRange(t *testing.T) {
	f := &fakeSearcher{}
	h := newHandler(f)
	for _, page := range []int{0, 4, -1} {
		out := h.Page(context.Background(), heldBulk(), page)
		require.True(t, out.Failed(), "page %d", page)
		assert.Equal(t, scholar.KindValidation, out.Kind)
		assert.True(t, strings.Contains(out.Err.Error(), "between 1 and 3"))
	}
	assert.Empty(t, f.bulk)

	out := h.Page(context.Background(), session.Empty("default"), 1)
	assert.Equal(t, scholar.KindValidation, out.Kind)
}

func TestPaperAndRecommend(t *testing.T) {
	f := &fakeSearcher{env: types.ResultEnvelope{Total: 1, Data: records(1)}}
	h := newHandler(f)

	out := h.Paper(context.Background(), session.Empty("default"), "DOI:10.1/x")
	require.False(t, out.Failed())
	assert.Equal(t, session.ModePaper, out.Snapshot.Mode)
	assert.Equal(t, "DOI:10.1/x", out.Snapshot.Query())

	f.env = types.ResultEnvelope{Total: 3, Data: records(3)}
	out = h.Recommend(context.Background(), out.Snapshot, "DOI:10.1/x", 25)
	require.False(t, out.Failed())
	assert.Equal(t, session.ModeRecommend, out.Snapshot.Mode)
	assert.Equal(t, []int{25}, f.recs)
	assert.Equal(t, 3, out.Snapshot.Limit)
}

func TestExport(t *testing.T) {
	_, _, err := Export(session.Empty("default"))
	assert.ErrorIs(t, err, present.ErrNothingToExport)

	f := &fakeSearcher{env: types.ResultEnvelope{Total: 1, Data: records(1)}}
	out := newHandler(f).Search(context.Background(), session.Empty("default"), types.KeywordRequest{Query: "fish"})
	data, name, err := Export(out.Snapshot)
	require.NoError(t, err)
	assert.Equal(t, SearchExportName, name)
	assert.True(t, strings.HasPrefix(string(data), "Title,Year,Journal/Venue,Abstract,Authors,URL\n"))

	assert.Equal(t, SearchExportName, ExportName(session.ModeRecommend))
}
