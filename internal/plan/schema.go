package plan

// DocumentSchema returns the JSON schema describing a patch operations
// document. The schema is handed to gojsonschema before any payload is
// hydrated into typed operations.
func DocumentSchema() map[string]any {
	hunkSchema := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"header": map[string]any{"type": "string"},
			"lines": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []string{"lines"},
	}

	operationSchema := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"type": map[string]any{
				"type": "string",
				"enum": []string{"add", "delete", "update"},
			},
			"path": map[string]any{
				"type":      "string",
				"minLength": 1,
			},
			"movePath": map[string]any{"type": "string"},
			"content": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"hunks": map[string]any{
				"type":  "array",
				"items": hunkSchema,
			},
		},
		"required": []string{"type", "path"},
	}

	return map[string]any{
		"$schema":              "http://json-schema.org/draft-07/schema#",
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"operations": map[string]any{
				"type":  "array",
				"items": operationSchema,
			},
		},
		"required": []string{"operations"},
	}
}
