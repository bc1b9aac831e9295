// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for scholar-search: the
// requests sent to Semantic Scholar, the normalized result envelope, and
// configuration.
package types

// DefaultFields is the field set requested for every paper unless the
// caller overrides it.
var DefaultFields = []string{"title", "abstract", "year", "authors", "url", "venue"}

const (
	// DefaultBulkLimit is the bulk page size when none is given.
	DefaultBulkLimit = 1000

	// MaxBulkLimit is the largest page the bulk endpoint accepts.
	MaxBulkLimit = 1000

	// DefaultKeywordLimit is the keyword search page size when none is given.
	DefaultKeywordLimit = 10

	// MaxKeywordLimit is the largest page the keyword endpoint accepts.
	MaxKeywordLimit = 100
)

// SortOrders lists the sort keys accepted by the bulk endpoint. An empty
// sort leaves ordering to the server.
var SortOrders = []string{
	"paperId:asc",
	"paperId:desc",
	"publicationDate:asc",
	"publicationDate:desc",
	"citationCount:asc",
	"citationCount:desc",
}

// PublicationTypes lists the publication type filters Semantic Scholar knows.
var PublicationTypes = []string{
	"Review", "JournalArticle", "CaseReport", "ClinicalTrial", "Conference",
	"Dataset", "Editorial", "LettersAndComments", "MetaAnalysis", "News",
	"Study", "Book", "BookSection",
}

// FieldsOfStudy lists the field-of-study filters Semantic Scholar knows.
var FieldsOfStudy = []string{
	"Computer Science", "Medicine", "Chemistry", "Biology", "Materials Science",
	"Physics", "Geology", "Psychology", "Art", "History", "Geography",
	"Sociology", "Business", "Political Science", "Economics", "Philosophy",
	"Mathematics", "Engineering", "Environmental Science",
	"Agricultural and Food Sciences", "Education", "Law", "Linguistics",
}

// SearchRequest holds the parameters of one bulk query. It is built fresh
// for each user action and not mutated after it is issued.
type SearchRequest struct {
	// Query is passed verbatim and may use the provider's boolean, phrase
	// and fuzzy syntax.
	Query string `json:"query" yaml:"query" validate:"notblank"`

	// Fields overrides DefaultFields when non-empty.
	Fields []string `json:"fields,omitempty" yaml:"fields,omitempty"`

	// Sort is one of SortOrders, or empty for the server default.
	Sort string `json:"sort,omitempty" yaml:"sort,omitempty" validate:"omitempty,sortorder"`

	PublicationTypes []string `json:"publication_types,omitempty" yaml:"publication_types,omitempty"`

	// OpenAccessPDF restricts results to papers with a public PDF.
	OpenAccessPDF bool `json:"open_access_pdf,omitempty" yaml:"open_access_pdf,omitempty"`

	// MinCitationCount filters by citation count. Zero means no filter.
	MinCitationCount int `json:"min_citation_count,omitempty" yaml:"min_citation_count,omitempty" validate:"min=0"`

	// PublicationDateOrYear is a range such as "2010:" or "2019-03-05:2020-06-06".
	PublicationDateOrYear string `json:"publication_date_or_year,omitempty" yaml:"publication_date_or_year,omitempty"`

	// Venue is a comma-separated list of venues.
	Venue string `json:"venue,omitempty" yaml:"venue,omitempty"`

	FieldsOfStudy []string `json:"fields_of_study,omitempty" yaml:"fields_of_study,omitempty"`

	// Limit is the page size, 1-1000. Zero selects DefaultBulkLimit.
	Limit int `json:"limit" yaml:"limit" validate:"min=1,max=1000"`

	// Offset is the number of results to skip for page-based paging.
	Offset int `json:"offset" yaml:"offset" validate:"min=0"`

	// Token is the continuation cursor from a previous envelope. When set
	// it supersedes Offset on the server.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`
}

// WithDefaults returns a copy of r with zero-valued Limit and Fields filled in.
func (r SearchRequest) WithDefaults() SearchRequest {
	if r.Limit == 0 {
		r.Limit = DefaultBulkLimit
	}
	if len(r.Fields) == 0 {
		r.Fields = DefaultFields
	}
	return r
}

// KeywordRequest holds the parameters of a simple relevance search.
type KeywordRequest struct {
	Query string `json:"query" yaml:"query" validate:"notblank"`

	// Year is a year or range such as "2000" or "1991-2020".
	Year string `json:"year,omitempty" yaml:"year,omitempty"`

	FieldsOfStudy []string `json:"fields_of_study,omitempty" yaml:"fields_of_study,omitempty"`

	// Limit is the page size, 1-100. Zero selects DefaultKeywordLimit.
	Limit int `json:"limit" yaml:"limit" validate:"min=1,max=100"`

	Offset int `json:"offset" yaml:"offset" validate:"min=0"`
}

// WithDefaults returns a copy of r with a zero Limit replaced by the default.
func (r KeywordRequest) WithDefaults() KeywordRequest {
	if r.Limit == 0 {
		r.Limit = DefaultKeywordLimit
	}
	return r
}
