// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-search/pkg/types"
)

// RequestFile is the on-disk form of a saved query. A researcher can save
// a carefully built bulk query and rerun it later without retyping filters.
type RequestFile struct {
	// Mode is "bulk" or "search" and selects which request is set.
	Mode    string                `yaml:"mode"`
	Bulk    *types.SearchRequest  `yaml:"bulk,omitempty"`
	Keyword *types.KeywordRequest `yaml:"search,omitempty"`
	SavedAt time.Time             `yaml:"saved_at"`
}

// SaveBulkRequest writes a bulk request to path as YAML. Pagination state
// (offset, token) is dropped so the file always reruns from the first page.
func SaveBulkRequest(path string, req types.SearchRequest) error {
	req.Offset = 0
	req.Token = ""
	return writeRequestFile(path, RequestFile{Mode: "bulk", Bulk: &req, SavedAt: time.Now().UTC()})
}

// SaveKeywordRequest writes a keyword request to path as YAML.
func SaveKeywordRequest(path string, req types.KeywordRequest) error {
	req.Offset = 0
	return writeRequestFile(path, RequestFile{Mode: "search", Keyword: &req, SavedAt: time.Now().UTC()})
}

func writeRequestFile(path string, rf RequestFile) error {
	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling request file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadRequestFile loads a saved request and checks that the section named
// by Mode is present.
func ReadRequestFile(path string) (*RequestFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading request file: %w", err)
	}
	var rf RequestFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing request file: %w", err)
	}
	switch rf.Mode {
	case "bulk":
		if rf.Bulk == nil {
			return nil, fmt.Errorf("request file %s: mode bulk but no bulk section", path)
		}
	case "search":
		if rf.Keyword == nil {
			return nil, fmt.Errorf("request file %s: mode search but no search section", path)
		}
	default:
		return nil, fmt.Errorf("request file %s: unknown mode %q", path, rf.Mode)
	}
	return &rf, nil
}
