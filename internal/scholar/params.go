// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/scholar-search/pkg/types"
)

// BuildBulkParams assembles the query parameters the bulk search endpoint
// expects. Optional filters are omitted entirely when unset so the server
// default applies; limit and offset are always sent. req is expected to
// have passed through WithDefaults.
func BuildBulkParams(req types.SearchRequest) url.Values {
	fields := req.Fields
	if len(fields) == 0 {
		fields = types.DefaultFields
	}

	params := url.Values{
		"query":  {req.Query},
		"fields": {strings.Join(fields, ",")},
		"limit":  {strconv.Itoa(req.Limit)},
		"offset": {strconv.Itoa(req.Offset)},
	}

	if req.Sort != "" {
		params.Set("sort", req.Sort)
	}
	if len(req.PublicationTypes) > 0 {
		params.Set("publicationTypes", strings.Join(req.PublicationTypes, ","))
	}
	if req.OpenAccessPDF {
		params.Set("openAccessPdf", "true")
	}
	// Zero is the UI's "no filter" value.
	if req.MinCitationCount > 0 {
		params.Set("minCitationCount", strconv.Itoa(req.MinCitationCount))
	}
	if req.PublicationDateOrYear != "" {
		params.Set("publicationDateOrYear", req.PublicationDateOrYear)
	}
	if req.Venue != "" {
		params.Set("venue", req.Venue)
	}
	if len(req.FieldsOfStudy) > 0 {
		params.Set("fieldsOfStudy", strings.Join(req.FieldsOfStudy, ","))
	}
	if req.Token != "" {
		params.Set("token", req.Token)
	}
	return params
}

// buildKeywordParams assembles parameters for the relevance search endpoint.
func buildKeywordParams(req types.KeywordRequest) url.Values {
	params := url.Values{
		"query":  {req.Query},
		"fields": {strings.Join(types.DefaultFields, ",")},
		"limit":  {strconv.Itoa(req.Limit)},
		"offset": {strconv.Itoa(req.Offset)},
	}
	if req.Year != "" {
		params.Set("year", req.Year)
	}
	if len(req.FieldsOfStudy) > 0 {
		params.Set("fieldsOfStudy", strings.Join(req.FieldsOfStudy, ","))
	}
	return params
}
