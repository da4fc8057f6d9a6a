package parsers

import (
	"fmt"
	"strings"

	"DocumentExtractionSystem/pkg/models"
)

// MaxDocumentChars caps how much of the document is sent to the model.
// Anything past it is dropped, not summarized.
const MaxDocumentChars = 15000

// SystemPrompt is the system-role instruction sent with every extraction request
const SystemPrompt = "You are a helpful assistant that extracts information from documents and returns it in a structured JSON format."

// extractionPrompt returns the fixed instruction block listing every field the model should fill
func extractionPrompt() string {
	var b strings.Builder
	b.WriteString("Extract the following information from the provided document and return it in a structured JSON format:\n")
	for _, name := range models.FieldNames {
		b.WriteString("- ")
		b.WriteString(name)
		b.WriteString("\n")
	}
	b.WriteString("\nIf any field is not present in the document, leave it as an empty string.\n\nDocument content:")
	return b.String()
}

// BuildPrompt returns the user message for the given document text.
// The text is cut to the first MaxDocumentChars characters.
func BuildPrompt(documentText string) string {
	return extractionPrompt() + "\n\n" + truncateChars(documentText, MaxDocumentChars)
}

// truncateChars keeps the first n code points of s
func truncateChars(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// cleanJSONResponse removes markdown code block markers from a model reply.
// The markers are cut by fixed offsets: 7 leading and 3 trailing characters for "```json",
// 3 and 3 for a bare "```". The trailing fence is not checked, so a reply that opens a fence
// without closing it loses its last 3 characters, and a reply shorter than both markers
// collapses to an empty string.
func cleanJSONResponse(jsonStr string) string {
	jsonStr = strings.TrimSpace(jsonStr)

	switch {
	case strings.HasPrefix(jsonStr, "```json"):
		jsonStr = stripChars(jsonStr, 7, 3)
	case strings.HasPrefix(jsonStr, "```"):
		jsonStr = stripChars(jsonStr, 3, 3)
	}

	return strings.TrimSpace(jsonStr)
}

// stripChars drops head leading and tail trailing code points from s
func stripChars(s string, head, tail int) string {
	r := []rune(s)
	if len(r) < head+tail {
		return ""
	}
	return string(r[head : len(r)-tail])
}

// ParseReply unwraps, decodes and normalizes a raw model reply into the fixed field set
func ParseReply(raw string) (models.ExtractedFields, error) {
	jsonStr := cleanJSONResponse(raw)

	value, err := decodeJSON(jsonStr)
	if err != nil {
		return models.ExtractedFields{}, fmt.Errorf("error parsing model response: %w", err)
	}

	return Normalize(value)
}
