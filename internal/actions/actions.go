// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package actions implements the user actions of scholar-search. Each
// action takes the session's current snapshot and returns an Outcome. On
// success the Outcome carries a new snapshot; on any failure it carries
// the previous snapshot unchanged, so earlier results stay viewable and
// exportable.
package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/scholar-search/internal/present"
	"github.com/pdiddy/scholar-search/internal/scholar"
	"github.com/pdiddy/scholar-search/internal/session"
	"github.com/pdiddy/scholar-search/pkg/types"
)

// Searcher is the subset of the Semantic Scholar client the actions use.
type Searcher interface {
	BulkSearch(ctx context.Context, req types.SearchRequest) (types.ResultEnvelope, error)
	Search(ctx context.Context, req types.KeywordRequest) (types.ResultEnvelope, error)
	Paper(ctx context.Context, id string) (types.ResultEnvelope, error)
	Recommendations(ctx context.Context, id string, limit int) (types.ResultEnvelope, error)
}

// Outcome is the result of one action.
type Outcome struct {
	// Snapshot is the session state after the action.
	Snapshot session.Snapshot

	// Kind is KindNone on success.
	Kind scholar.ErrorKind
	Err  error

	// Entry describes the action for the session history.
	Entry session.HistoryEntry
}

// Failed reports whether the action failed.
func (o Outcome) Failed() bool { return o.Err != nil }

// Message is the text to show the user for a failed action.
func (o Outcome) Message() string { return scholar.UserMessage(o.Err) }

// Handler runs actions against a Searcher.
type Handler struct {
	Client Searcher
	Logger zerolog.Logger

	// Now is the clock used to stamp snapshots. Nil means time.Now.
	Now func() time.Time
}

// Search runs a keyword search. Results are highlighted with the query.
func (h *Handler) Search(ctx context.Context, prev session.Snapshot, req types.KeywordRequest) Outcome {
	req = req.WithDefaults()
	entry := h.entry(prev, session.ModeSearch, req.Query)

	env, err := h.Client.Search(ctx, req)
	if err != nil {
		return h.fail(prev, entry, err)
	}
	return h.succeed(session.Snapshot{
		ID:        prev.ID,
		Mode:      session.ModeSearch,
		Keyword:   &req,
		Limit:     req.Limit,
		Page:      req.Offset/req.Limit + 1,
		Offset:    req.Offset,
		Results:   &env,
		Highlight: req.Query,
	}, entry)
}

// Bulk runs a bulk search.
func (h *Handler) Bulk(ctx context.Context, prev session.Snapshot, req types.SearchRequest) Outcome {
	req = req.WithDefaults()
	entry := h.entry(prev, session.ModeBulk, req.Query)

	env, err := h.Client.BulkSearch(ctx, req)
	if err != nil {
		h.Logger.Debug().
			Str("params", scholar.BuildBulkParams(req).Encode()).
			Str("error_kind", string(scholar.Kind(err))).
			Msg("bulk search failed")
		return h.fail(prev, entry, err)
	}
	return h.succeed(session.Snapshot{
		ID:      prev.ID,
		Mode:    session.ModeBulk,
		Bulk:    &req,
		Limit:   req.Limit,
		Page:    req.Offset/req.Limit + 1,
		Offset:  req.Offset,
		Results: &env,
	}, entry)
}

// Next continues the previous bulk search with its continuation token.
func (h *Handler) Next(ctx context.Context, prev session.Snapshot) Outcome {
	entry := h.entry(prev, session.ModeBulk, prev.Query())
	if prev.Mode != session.ModeBulk || prev.Bulk == nil || !prev.HasResults() {
		return h.fail(prev, entry, &scholar.ValidationError{Field: "token", Message: "no bulk search to continue; run a bulk search first"})
	}
	if !prev.Results.HasMore() {
		return h.fail(prev, entry, &scholar.ValidationError{Field: "token", Message: "no more results; the last bulk page had no continuation token"})
	}

	req := *prev.Bulk
	req.Token = prev.Results.Token

	env, err := h.Client.BulkSearch(ctx, req)
	if err != nil {
		h.Logger.Debug().
			Str("params", scholar.BuildBulkParams(req.WithDefaults()).Encode()).
			Str("error_kind", string(scholar.Kind(err))).
			Msg("bulk continuation failed")
		return h.fail(prev, entry, err)
	}
	return h.succeed(session.Snapshot{
		ID:      prev.ID,
		Mode:    session.ModeBulk,
		Bulk:    &req,
		Limit:   prev.Limit,
		Page:    prev.Page + 1,
		Offset:  prev.Offset + len(prev.Results.Data),
		Results: &env,
	}, entry)
}

// Page re-issues the last search or bulk query at the given 1-based page.
func (h *Handler) Page(ctx context.Context, prev session.Snapshot, page int) Outcome {
	entry := h.entry(prev, prev.Mode, prev.Query())
	entry.Page = page

	if !prev.HasResults() || (prev.Mode != session.ModeSearch && prev.Mode != session.ModeBulk) {
		return h.fail(prev, entry, &scholar.ValidationError{Field: "page", Message: "no search or bulk results to page through"})
	}
	pages := present.Pages(prev.Results.Total, prev.Limit)
	if page < 1 || page > pages {
		return h.fail(prev, entry, &scholar.ValidationError{Field: "page", Message: fmt.Sprintf("must be between 1 and %d", pages)})
	}

	switch prev.Mode {
	case session.ModeSearch:
		req := *prev.Keyword
		req.Offset = present.Offset(page, req.Limit)
		return h.Search(ctx, prev, req)
	default:
		req := *prev.Bulk
		req.Token = ""
		req.Offset = present.Offset(page, req.Limit)
		return h.Bulk(ctx, prev, req)
	}
}

// Paper looks up a single paper by ID.
func (h *Handler) Paper(ctx context.Context, prev session.Snapshot, id string) Outcome {
	entry := h.entry(prev, session.ModePaper, id)

	env, err := h.Client.Paper(ctx, id)
	if err != nil {
		return h.fail(prev, entry, err)
	}
	return h.succeed(session.Snapshot{
		ID:      prev.ID,
		Mode:    session.ModePaper,
		PaperID: id,
		Limit:   1,
		Page:    1,
		Results: &env,
	}, entry)
}

// Recommend fetches papers recommended for the given paper.
func (h *Handler) Recommend(ctx context.Context, prev session.Snapshot, id string, limit int) Outcome {
	entry := h.entry(prev, session.ModeRecommend, id)

	env, err := h.Client.Recommendations(ctx, id, limit)
	if err != nil {
		return h.fail(prev, entry, err)
	}
	return h.succeed(session.Snapshot{
		ID:      prev.ID,
		Mode:    session.ModeRecommend,
		PaperID: id,
		Limit:   max(len(env.Data), 1),
		Page:    1,
		Results: &env,
	}, entry)
}

// View renders the snapshot's results as a display page.
func View(s session.Snapshot) present.Page {
	if !s.HasResults() {
		return present.Page{}
	}
	return present.Page{
		Total:   s.Results.Total,
		Offset:  s.Offset,
		Limit:   s.Limit,
		Records: present.Display(*s.Results, s.Offset+1, s.Highlight),
		HasMore: s.Results.HasMore(),
	}
}

func (h *Handler) entry(prev session.Snapshot, mode session.Mode, query string) session.HistoryEntry {
	return session.HistoryEntry{SessionID: prev.ID, Mode: mode, Query: query}
}

func (h *Handler) succeed(next session.Snapshot, entry session.HistoryEntry) Outcome {
	next.UpdatedAt = h.now()
	entry.Page = next.Page
	entry.Total = next.Results.Total
	entry.Returned = len(next.Results.Data)
	entry.At = next.UpdatedAt

	h.Logger.Info().
		Str("session", next.ID).
		Str("mode", string(next.Mode)).
		Int("page", next.Page).
		Int("total", entry.Total).
		Int("returned", entry.Returned).
		Msg("action complete")
	return Outcome{Snapshot: next, Entry: entry}
}

func (h *Handler) fail(prev session.Snapshot, entry session.HistoryEntry, err error) Outcome {
	kind := scholar.Kind(err)
	entry.ErrorKind = string(kind)
	entry.At = h.now()

	h.Logger.Warn().
		Err(err).
		Str("session", prev.ID).
		Str("mode", string(entry.Mode)).
		Str("error_kind", string(kind)).
		Msg("action failed")
	return Outcome{Snapshot: prev, Kind: kind, Err: err, Entry: entry}
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now().UTC()
	}
	return time.Now().UTC()
}
