// Package schema holds the request schemas echoed back to clients on
// validation failure, and the validator that enforces them.
package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
)

// Definition names
const (
	MovieReview                 = "MovieReview"
	MovieReviewUpdateAttributes = "MovieReviewUpdateAttributes"
	MovieReviewQueryParams      = "MovieReviewQueryParams"
	TranslationQueryParams      = "TranslationQueryParams"
)

//go:embed types.schema.json
var document []byte

var (
	definitions     map[string]json.RawMessage
	definitionsErr  error
	definitionsOnce sync.Once
)

func load() (map[string]json.RawMessage, error) {
	definitionsOnce.Do(func() {
		var doc struct {
			Definitions map[string]json.RawMessage `json:"definitions"`
		}
		if err := json.Unmarshal(document, &doc); err != nil {
			definitionsErr = fmt.Errorf("failed to decode schema document: %w", err)
			return
		}
		definitions = doc.Definitions
	})
	return definitions, definitionsErr
}

// Definition returns the raw JSON schema for name
func Definition(name string) (json.RawMessage, error) {
	defs, err := load()
	if err != nil {
		return nil, err
	}
	def, ok := defs[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema definition %q", name)
	}
	return def, nil
}

// Names lists the embedded definitions
func Names() []string {
	return []string{MovieReview, MovieReviewUpdateAttributes, MovieReviewQueryParams, TranslationQueryParams}
}
