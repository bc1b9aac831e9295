// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/scholar-search/pkg/types"
)

// flexInt accepts a JSON number or a numeric string. The bulk endpoint has
// been seen to send "total" either way.
type flexInt int

func (n *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*n = 0
		return nil
	}
	s = strings.TrimSpace(strings.Trim(s, `"`))
	if s == "" {
		*n = 0
		return nil
	}
	if v, err := strconv.Atoi(s); err == nil {
		*n = flexInt(v)
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("%s is not an integer", b)
	}
	*n = flexInt(int(f))
	return nil
}

// Semantic Scholar API JSON structures.
type wirePaper struct {
	PaperID  string       `json:"paperId"`
	Title    *string      `json:"title"`
	Year     *int         `json:"year"`
	Venue    *string      `json:"venue"`
	Abstract *string      `json:"abstract"`
	URL      *string      `json:"url"`
	Authors  []wireAuthor `json:"authors"`
}

type wireAuthor struct {
	AuthorID *string `json:"authorId"`
	Name     *string `json:"name"`
}

func (p wirePaper) record() types.PaperRecord {
	r := types.PaperRecord{
		PaperID:  p.PaperID,
		Title:    p.Title,
		Year:     p.Year,
		Venue:    p.Venue,
		Abstract: p.Abstract,
		URL:      p.URL,
	}
	if len(p.Authors) > 0 {
		r.Authors = make([]types.Author, len(p.Authors))
		for i, a := range p.Authors {
			if a.AuthorID != nil {
				r.Authors[i].AuthorID = *a.AuthorID
			}
			if a.Name != nil {
				r.Authors[i].Name = *a.Name
			}
		}
	}
	return r
}

// decodeObject parses body as a JSON object and fails with *APIError when it
// carries an "error" key, whatever the HTTP status said.
func decodeObject(body []byte) (map[string]json.RawMessage, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if raw, ok := top["error"]; ok {
		return nil, &APIError{Message: rawMessage(raw)}
	}
	return top, nil
}

// rawMessage renders a JSON value as text: non-empty strings unquoted,
// anything else verbatim.
func rawMessage(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		return s
	}
	return string(bytes.TrimSpace(raw))
}

// parseEnvelope converts a search-style body into a ResultEnvelope. dataKey
// names the array of papers ("data" for searches, "recommendedPapers" for
// recommendations). When the body has no total, the number of returned
// papers is used.
func parseEnvelope(body []byte, dataKey string) (types.ResultEnvelope, error) {
	top, err := decodeObject(body)
	if err != nil {
		return types.ResultEnvelope{}, err
	}

	var papers []wirePaper
	if raw, ok := top[dataKey]; ok {
		if err := json.Unmarshal(raw, &papers); err != nil {
			return types.ResultEnvelope{}, &DecodeError{Err: fmt.Errorf("%s: %w", dataKey, err)}
		}
	}

	env := types.ResultEnvelope{Data: make([]types.PaperRecord, 0, len(papers))}
	for _, p := range papers {
		env.Data = append(env.Data, p.record())
	}

	if raw, ok := top["total"]; ok {
		var total flexInt
		if err := json.Unmarshal(raw, &total); err != nil {
			return types.ResultEnvelope{}, &DecodeError{Err: fmt.Errorf("total: %w", err)}
		}
		env.Total = int(total)
	} else {
		env.Total = len(env.Data)
	}

	if raw, ok := top["token"]; ok {
		var token *string
		if err := json.Unmarshal(raw, &token); err != nil {
			return types.ResultEnvelope{}, &DecodeError{Err: fmt.Errorf("token: %w", err)}
		}
		if token != nil {
			env.Token = *token
		}
	}

	return env, nil
}

// parsePaper converts a single-paper body into a one-record envelope.
func parsePaper(body []byte) (types.ResultEnvelope, error) {
	if _, err := decodeObject(body); err != nil {
		return types.ResultEnvelope{}, err
	}
	var p wirePaper
	if err := json.Unmarshal(body, &p); err != nil {
		return types.ResultEnvelope{}, &DecodeError{Err: err}
	}
	return types.ResultEnvelope{
		Total: 1,
		Data:  []types.PaperRecord{p.record()},
	}, nil
}
