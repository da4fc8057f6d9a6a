package parsers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"DocumentExtractionSystem/pkg/models"
)

// ErrNotObject is returned when the model reply decodes to something other than a JSON object
var ErrNotObject = errors.New("model reply is not a JSON object")

// decodeJSON parses a single JSON value, keeping number literals as written.
// Anything after the value other than whitespace is an error.
func decodeJSON(s string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty response")
		}
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, errors.New("unexpected data after JSON value")
	}

	return v, nil
}

// Normalize validates a decoded JSON value against ReplyJSONSchema and turns it into
// a complete ExtractedFields record. Only the known field names are read; every other key is ignored.
func Normalize(value any) (models.ExtractedFields, error) {
	if err := ValidateReply(value); err != nil {
		return models.ExtractedFields{}, err
	}
	obj := value.(map[string]any)

	var fields models.ExtractedFields
	for _, name := range models.FieldNames {
		*fields.Field(name) = coerceValue(obj[name])
	}
	return fields, nil
}

// coerceValue renders any decoded JSON value as a field string:
// null is empty, strings pass through, objects and arrays become compact JSON,
// other scalars use their plain text form.
func coerceValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case map[string]any, []any:
		return compactJSON(t)
	default:
		return fmt.Sprint(t)
	}
}

func compactJSON(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case json.Number, float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
