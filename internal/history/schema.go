package history

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// stateSchema is the strict shape an imported file must match. Load never
// consults it (load is lenient and fail-safe); import fails loudly.
var stateSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"sessions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":   map[string]any{"type": "string", "minLength": 1},
					"date": map[string]any{"type": "string"},
					"tests": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"kind": map[string]any{
									"enum": []any{"arithmetic", "memory", "reaction", "oddOneOut"},
								},
								"score": map[string]any{"type": "number"},
								"meta":  map[string]any{"type": "object"},
							},
							"required": []any{"kind", "score"},
						},
					},
					"totalScore": map[string]any{"type": "number"},
					"brainAge":   map[string]any{"type": "number"},
				},
				"required": []any{"id", "date", "totalScore", "brainAge"},
			},
		},
		"streak": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"current": map[string]any{"type": "number", "minimum": 0},
				"best":    map[string]any{"type": "number", "minimum": 0},
				"lastDay": map[string]any{"type": "string"},
			},
			"required": []any{"current", "best"},
		},
		"settings": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"lang":       map[string]any{"enum": []any{"en", "nl"}},
				"dark":       map[string]any{"type": "boolean"},
				"sound":      map[string]any{"type": "boolean"},
				"vibration":  map[string]any{"type": "boolean"},
				"difficulty": map[string]any{"enum": []any{"easy", "normal", "hard"}},
				"fontScale":  map[string]any{"enum": []any{"small", "medium", "large"}},
				"theme":      map[string]any{"enum": []any{"system", "light", "dark"}},
			},
		},
		"badges": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"version": map[string]any{"const": float64(SchemaVersion)},
	},
	"required": []any{"streak", "version"},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// compiledStateSchema compiles the import schema once per process.
func compiledStateSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		defBytes, err := json.Marshal(stateSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://brainsparks-state.json"
		if err := c.AddResource(url, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(url)
	})
	return compiledSchema, compileErr
}

// validateImport checks raw bytes against the strict state schema.
func validateImport(data []byte) error {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return &ValidationError{Field: "$", Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}

	schema, err := compiledStateSchema()
	if err != nil {
		return fmt.Errorf("compile state schema: %w", err)
	}

	if err := schema.Validate(parsed); err != nil {
		return &ValidationError{Field: "$", Reason: err.Error()}
	}
	return nil
}
