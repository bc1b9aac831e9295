// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Author is one paper author. Name may be empty when the provider omits it.
type Author struct {
	AuthorID string `json:"authorId,omitempty" yaml:"author_id,omitempty"`
	Name     string `json:"name" yaml:"name"`
}

// PaperRecord is one paper as returned by the provider. Every field except
// PaperID is independently optional; nil means the provider did not send it.
type PaperRecord struct {
	PaperID string `json:"paperId,omitempty" yaml:"paper_id,omitempty"`

	Title *string `json:"title,omitempty" yaml:"title,omitempty"`

	Year *int `json:"year,omitempty" yaml:"year,omitempty"`

	// Venue is the journal or conference name.
	Venue *string `json:"venue,omitempty" yaml:"venue,omitempty"`

	Abstract *string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Authors lists the paper authors in provider order.
	Authors []Author `json:"authors,omitempty" yaml:"authors,omitempty"`

	// URL is the canonical Semantic Scholar page.
	URL *string `json:"url,omitempty" yaml:"url,omitempty"`
}

// AuthorNames returns the author names in order. Missing names are kept as
// empty strings so positions are preserved.
func (p PaperRecord) AuthorNames() []string {
	names := make([]string, len(p.Authors))
	for i, a := range p.Authors {
		names[i] = a.Name
	}
	return names
}

// ResultEnvelope is the normalized response of one query: a page of records
// in server order, the server-side total, and an optional continuation token.
type ResultEnvelope struct {
	Total int           `json:"total" yaml:"total"`
	Data  []PaperRecord `json:"data" yaml:"data"`
	Token string        `json:"token,omitempty" yaml:"token,omitempty"`
}

// HasMore reports whether the provider returned a continuation token.
func (e ResultEnvelope) HasMore() bool {
	return e.Token != ""
}
