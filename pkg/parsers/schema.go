package parsers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"DocumentExtractionSystem/pkg/models"
)

// ReplyJSONSchema returns the JSON Schema a decoded model reply must satisfy.
// The reply has to be an object; the known fields may hold any JSON value since
// each one is coerced to text afterwards, and unknown keys are allowed and ignored.
func ReplyJSONSchema() map[string]any {
	props := make(map[string]any, len(models.FieldNames))
	for _, name := range models.FieldNames {
		props[name] = map[string]any{
			"type": []string{"string", "number", "boolean", "object", "array", "null"},
		}
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": true,
		"properties":           props,
	}
}

var replySchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	b, err := json.Marshal(ReplyJSONSchema())
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("reply.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}

	schema, err := compiler.Compile("reply.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
})

// ValidateReply checks a decoded reply against ReplyJSONSchema.
// A reply that is not a JSON object fails with ErrNotObject.
func ValidateReply(value any) error {
	schema, err := replySchema()
	if err != nil {
		return err
	}

	if err := schema.Validate(value); err != nil {
		return fmt.Errorf("%w (got %s): %v", ErrNotObject, kindOf(value), err)
	}
	return nil
}
