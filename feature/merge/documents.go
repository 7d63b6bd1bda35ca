package merge

import (
	"bytes"
	"errors"
	"fmt"

	"asset-diff/core/tree"

	"github.com/goccy/go-json"
)

var (
	// ErrDocumentTooLarge is returned when an input document exceeds the configured size.
	ErrDocumentTooLarge = errors.New("document too large")

	// ErrInvalidDocument is returned when an input document cannot be parsed.
	ErrInvalidDocument = errors.New("invalid document")
)

// Documents is the body of an inline merge request. Each side is either a JSON
// value or a string holding a YAML document. A missing side is absent from the
// comparison; an explicit null is a present null value.
type Documents struct {
	Base  json.RawMessage `json:"base" swaggertype:"object"`
	Side1 json.RawMessage `json:"side1" swaggertype:"object"`
	Side2 json.RawMessage `json:"side2" swaggertype:"object"`
}

// ObjectKeys is the body of a storage merge request. An empty key leaves that
// side absent. When Output is set the result is written back under that key.
type ObjectKeys struct {
	Base   string `json:"base"`
	Side1  string `json:"side1"`
	Side2  string `json:"side2"`
	Output string `json:"output,omitempty"`
}

// Refs identifies the three inputs of a merge run.
type Refs struct {
	Base  string
	Side1 string
	Side2 string
}

// ParseDocument builds a tree from a document of at most limit bytes. A
// non-positive limit disables the check.
func ParseDocument(data []byte, limit int64) (*tree.Node, error) {
	if limit > 0 && int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrDocumentTooLarge, len(data), limit)
	}
	n, err := tree.FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return n, nil
}

// parseRaw builds a tree from one side of an inline request.
func parseRaw(name string, raw json.RawMessage, limit int64) (*tree.Node, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var data []byte
	if raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, fmt.Errorf("%s: %w: %v", name, ErrInvalidDocument, err)
		}
		data = []byte(text)
	} else {
		// Compact JSON is a valid YAML flow document.
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return nil, fmt.Errorf("%s: %w: %v", name, ErrInvalidDocument, err)
		}
		data = buf.Bytes()
	}

	n, err := ParseDocument(data, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}
