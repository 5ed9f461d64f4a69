// Package plan decodes the JSON operations document, an alternative input
// format that carries the same add/delete/update operations as the textual
// patch envelope. Payloads are validated against a JSON schema before being
// hydrated into typed operations.
package plan

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/asynkron/applypatch/pkg/patch"
)

var (
	documentSchemaLoader     gojsonschema.JSONLoader
	documentSchemaLoaderOnce sync.Once
)

type validationError struct {
	issues []string
}

func (e validationError) Error() string {
	if len(e.issues) == 0 {
		return "operations document failed schema validation"
	}
	return strings.Join(e.issues, "; ")
}

type document struct {
	Operations []operation `json:"operations"`
}

type operation struct {
	Type     string   `json:"type"`
	Path     string   `json:"path"`
	MovePath string   `json:"movePath,omitempty"`
	Content  []string `json:"content,omitempty"`
	Hunks    []hunk   `json:"hunks,omitempty"`
}

type hunk struct {
	Header string   `json:"header,omitempty"`
	Lines  []string `json:"lines"`
}

// Decode validates raw against the operations document schema and converts
// it into the same operation values the textual parser produces.
func Decode(raw string) ([]patch.Operation, error) {
	if err := validateAgainstSchema(raw); err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("plan: decode operations document: %w", err)
	}

	operations := make([]patch.Operation, 0, len(doc.Operations))
	for i, op := range doc.Operations {
		converted, err := convertOperation(op)
		if err != nil {
			return nil, fmt.Errorf("plan: operation %d: %w", i, err)
		}
		operations = append(operations, converted)
	}
	return operations, nil
}

func convertOperation(op operation) (patch.Operation, error) {
	switch op.Type {
	case "add":
		return patch.Add{Path: op.Path, Lines: op.Content}, nil
	case "delete":
		return patch.Delete{Path: op.Path}, nil
	case "update":
		if len(op.Hunks) == 0 {
			return nil, fmt.Errorf("update for %q carries no hunks", op.Path)
		}
		hunks := make([]patch.Hunk, 0, len(op.Hunks))
		for _, h := range op.Hunks {
			header := h.Header
			if strings.TrimSpace(header) == "" {
				header = "@@"
			}
			hunks = append(hunks, patch.Hunk{Header: header, Lines: h.Lines})
		}
		return patch.Update{Path: op.Path, MovePath: op.MovePath, Hunks: hunks}, nil
	default:
		return nil, fmt.Errorf("unsupported operation type %q", op.Type)
	}
}

func validateAgainstSchema(raw string) error {
	loader := loadDocumentSchema()

	result, err := gojsonschema.Validate(loader, gojsonschema.NewStringLoader(raw))
	if err != nil {
		return fmt.Errorf("plan: schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	issues := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		issues = append(issues, desc.String())
	}
	return validationError{issues: issues}
}

func loadDocumentSchema() gojsonschema.JSONLoader {
	documentSchemaLoaderOnce.Do(func() {
		documentSchemaLoader = gojsonschema.NewGoLoader(DocumentSchema())
	})
	return documentSchemaLoader
}
