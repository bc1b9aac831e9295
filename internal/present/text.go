// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package present

import (
	"fmt"
	"io"
	"strings"
)

// Page is one screenful of results together with where it sits in the
// whole result set.
type Page struct {
	Total   int
	Offset  int
	Limit   int
	Records []DisplayRecord

	// HasMore reports that a continuation token is available.
	HasMore bool
}

// WriteText writes a page as plain text blocks.
func WriteText(w io.Writer, p Page) {
	fmt.Fprintf(w, "Total results: %d\n", p.Total)
	if len(p.Records) == 0 {
		fmt.Fprintln(w, "No results found on this page.")
		return
	}

	limit := p.Limit
	if limit <= 0 {
		limit = len(p.Records)
	}
	if first, last := Window(p.Offset, limit, p.Total); first > 0 {
		fmt.Fprintf(w, "Displaying results %d to %d\n", first, last)
	}
	fmt.Fprintln(w, strings.Repeat("-", 80))

	for _, r := range p.Records {
		fmt.Fprintf(w, "%d. %s\n", r.Number, r.Title)
		fmt.Fprintf(w, "   Authors:       %s\n", r.Authors)
		fmt.Fprintf(w, "   Year:          %s\n", r.Year)
		fmt.Fprintf(w, "   Journal/Venue: %s\n", r.Venue)
		fmt.Fprintf(w, "   URL:           %s\n", r.URL)
		if r.PaperID != "" {
			fmt.Fprintf(w, "   Paper ID:      %s\n", r.PaperID)
		}
		fmt.Fprintf(w, "   Abstract:      %s\n\n", r.Abstract)
	}

	fmt.Fprintf(w, "Page %d of %d", p.Offset/limit+1, Pages(p.Total, limit))
	if p.HasMore {
		fmt.Fprint(w, " (more available with next)")
	}
	fmt.Fprintln(w)
}
