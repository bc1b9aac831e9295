// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pdiddy/scholar-search/internal/actions"
	"github.com/pdiddy/scholar-search/internal/present"
	"github.com/pdiddy/scholar-search/internal/scholar"
	"github.com/pdiddy/scholar-search/internal/session"
	"github.com/pdiddy/scholar-search/pkg/types"
)

// response is the body of every JSON reply.
type response struct {
	Data      any      `json:"data"`
	Errors    []string `json:"errors,omitempty"`
	ErrorKind string   `json:"error_kind,omitempty"`
}

// sessionView is the session's current results as shown to the client.
type sessionView struct {
	Mode    session.Mode            `json:"mode"`
	Query   string                  `json:"query,omitempty"`
	Page    int                     `json:"page"`
	Pages   int                     `json:"pages"`
	Total   int                     `json:"total"`
	First   int                     `json:"first"`
	Last    int                     `json:"last"`
	HasMore bool                    `json:"has_more"`
	Records []present.DisplayRecord `json:"records"`
}

func newSessionView(s session.Snapshot) sessionView {
	v := sessionView{Mode: s.Mode, Query: s.Query(), Page: s.Page, Pages: 1, Records: []present.DisplayRecord{}}
	if !s.HasResults() {
		return v
	}
	page := actions.View(s)
	v.Total = page.Total
	v.Pages = present.Pages(page.Total, page.Limit)
	v.First, v.Last = present.Window(page.Offset, page.Limit, page.Total)
	v.HasMore = page.HasMore
	v.Records = page.Records
	return v
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, kind scholar.ErrorKind, message string) {
	writeJSON(w, status, response{Errors: []string{message}, ErrorKind: string(kind)})
}

// statusFor maps an action failure to an HTTP status.
func statusFor(kind scholar.ErrorKind) int {
	switch kind {
	case scholar.KindValidation:
		return http.StatusUnprocessableEntity
	case scholar.KindTransport, scholar.KindHTTPStatus, scholar.KindAPI, scholar.KindDecode:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20)
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// run applies act to the caller's session and writes the resulting view.
func (s *Server) run(w http.ResponseWriter, r *http.Request, act actions.Action) {
	id := sessionID(r.Context())
	mu := s.lock(id)
	mu.Lock()
	defer mu.Unlock()

	out, err := actions.Apply(r.Context(), s.Store, id, act)
	if err != nil {
		s.Logger.Error().Err(err).Str("session", id).Msg("session store failure")
		writeError(w, http.StatusInternalServerError, scholar.KindUnknown, "session state could not be saved")
		return
	}
	if out.Failed() {
		writeError(w, statusFor(out.Kind), out.Kind, out.Message())
		return
	}
	writeJSON(w, http.StatusOK, response{Data: newSessionView(out.Snapshot)})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, response{Data: map[string]string{"status": "ok"}})
}

func (s *Server) current(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Store.Load(r.Context(), sessionID(r.Context()))
	if err != nil {
		s.Logger.Error().Err(err).Msg("loading session")
		writeError(w, http.StatusInternalServerError, scholar.KindUnknown, "session state could not be loaded")
		return
	}
	writeJSON(w, http.StatusOK, response{Data: newSessionView(snap)})
}

func (s *Server) history(w http.ResponseWriter, r *http.Request) {
	n, _ := strconv.Atoi(r.URL.Query().Get("n"))
	entries, err := s.Store.History(r.Context(), sessionID(r.Context()), n)
	if err != nil {
		s.Logger.Error().Err(err).Msg("loading history")
		writeError(w, http.StatusInternalServerError, scholar.KindUnknown, "history could not be loaded")
		return
	}
	if entries == nil {
		entries = []session.HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, response{Data: entries})
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	var req types.KeywordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, scholar.KindValidation, "invalid request body: "+err.Error())
		return
	}
	s.run(w, r, func(ctx context.Context, prev session.Snapshot) actions.Outcome {
		return s.Handler.Search(ctx, prev, req)
	})
}

func (s *Server) bulk(w http.ResponseWriter, r *http.Request) {
	var req types.SearchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, scholar.KindValidation, "invalid request body: "+err.Error())
		return
	}
	s.run(w, r, func(ctx context.Context, prev session.Snapshot) actions.Outcome {
		return s.Handler.Bulk(ctx, prev, req)
	})
}

func (s *Server) next(w http.ResponseWriter, r *http.Request) {
	s.run(w, r, s.Handler.Next)
}

func (s *Server) page(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, scholar.KindValidation, "invalid page: must be a number")
		return
	}
	s.run(w, r, func(ctx context.Context, prev session.Snapshot) actions.Outcome {
		return s.Handler.Page(ctx, prev, page)
	})
}

func (s *Server) paper(w http.ResponseWriter, r *http.Request) {
	id, ok := paperID(w, r)
	if !ok {
		return
	}
	s.run(w, r, func(ctx context.Context, prev session.Snapshot) actions.Outcome {
		return s.Handler.Paper(ctx, prev, id)
	})
}

func (s *Server) recommend(w http.ResponseWriter, r *http.Request) {
	id, ok := paperID(w, r)
	if !ok {
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, scholar.KindValidation, "invalid limit: must be a number")
			return
		}
		limit = n
	}
	s.run(w, r, func(ctx context.Context, prev session.Snapshot) actions.Outcome {
		return s.Handler.Recommend(ctx, prev, id, limit)
	})
}

// paperID reads the {id} route parameter. IDs such as DOIs arrive with
// their slashes escaped.
func paperID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := url.PathUnescape(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, scholar.KindValidation, "invalid paper id")
		return "", false
	}
	return id, true
}

func (s *Server) export(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Store.Load(r.Context(), sessionID(r.Context()))
	if err != nil {
		s.Logger.Error().Err(err).Msg("loading session")
		writeError(w, http.StatusInternalServerError, scholar.KindUnknown, "session state could not be loaded")
		return
	}

	data, name, err := actions.Export(snap)
	if errors.Is(err, present.ErrNothingToExport) {
		writeError(w, http.StatusNotFound, scholar.KindNone, "There are no results to export.")
		return
	}
	if err != nil {
		s.Logger.Error().Err(err).Msg("exporting results")
		writeError(w, http.StatusInternalServerError, scholar.KindUnknown, "export failed")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
