package extraction

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"DocumentExtractionSystem/pkg/models"
	"DocumentExtractionSystem/pkg/parsers"
)

type fakeCompleter struct {
	reply string
	err   error
	panic bool

	mu      sync.Mutex
	systems []string
	prompts []string
}

func (f *fakeCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	f.mu.Lock()
	f.systems = append(f.systems, system)
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	if f.panic {
		panic("provider exploded")
	}
	return f.reply, f.err
}

func newTestPipeline(t *testing.T, c *fakeCompleter) *Pipeline {
	t.Helper()

	p, err := NewPipeline(c, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	return p
}

func requireFailure(t *testing.T, result models.ResultEnvelope) {
	t.Helper()

	require.Equal(t, models.StatusFailure, result.Status)
	require.Equal(t, models.MessageFailure, result.Data.Message)
	require.Equal(t, models.ExtractedFields{}, result.Data.Content)
	require.Equal(t, 1, result.Data.Error.Code)
	require.NotEmpty(t, result.Data.Error.Msg)
	require.Empty(t, result.Data.RequestID)
}

func TestNewPipelineRequiresCompleter(t *testing.T) {
	_, err := NewPipeline(nil)
	require.Error(t, err)
}

func TestExtractSuccess(t *testing.T) {
	c := &fakeCompleter{reply: `{"document_number": "INV-2024-001"}`}
	p := newTestPipeline(t, c)

	text := "| Document No. | INV-2024-001 |\n|---|---|"
	result := p.Extract(context.Background(), text)

	require.Equal(t, models.StatusSuccess, result.Status)
	require.Equal(t, models.MessageSuccess, result.Data.Message)
	require.Equal(t, models.ErrorDetail{Code: 0, Msg: "No Error"}, result.Data.Error)
	require.Empty(t, result.Data.RequestID)
	require.Equal(t, models.ExtractedFields{DocumentNumber: "INV-2024-001"}, result.Data.Content)

	require.Equal(t, []string{parsers.SystemPrompt}, c.systems)
	require.Equal(t, []string{parsers.BuildPrompt(text)}, c.prompts)
}

func TestExtractFencedReplyMatchesUnfenced(t *testing.T) {
	body := `{"document_number": "D-7", "nature": {"kind": "refund"}, "date_of_issue": 2024}`

	plain := newTestPipeline(t, &fakeCompleter{reply: body}).Extract(context.Background(), "doc")
	fenced := newTestPipeline(t, &fakeCompleter{reply: "```json\n" + body + "\n```"}).Extract(context.Background(), "doc")

	require.Equal(t, models.StatusSuccess, fenced.Status)
	require.Equal(t, plain, fenced)
}

func TestExtractFailures(t *testing.T) {
	tests := []struct {
		name      string
		completer *fakeCompleter
		contains  string
	}{
		{
			name:      "provider error",
			completer: &fakeCompleter{err: errors.New("error calling OpenAI API: 429 Too Many Requests")},
			contains:  "429",
		},
		{
			name:      "unparseable reply",
			completer: &fakeCompleter{reply: "I'm sorry, I can't find those fields."},
			contains:  "error parsing model response",
		},
		{
			name:      "empty reply",
			completer: &fakeCompleter{reply: ""},
			contains:  "error parsing model response",
		},
		{
			name:      "array reply",
			completer: &fakeCompleter{reply: `[{"document_number": "X"}]`},
			contains:  parsers.ErrNotObject.Error(),
		},
		{
			name:      "panic",
			completer: &fakeCompleter{panic: true},
			contains:  "provider exploded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := newTestPipeline(t, tt.completer).Extract(context.Background(), "doc")

			requireFailure(t, result)
			require.True(t, strings.Contains(result.Data.Error.Msg, tt.contains), "error msg %q", result.Data.Error.Msg)
		})
	}
}

func TestExtractConcurrent(t *testing.T) {
	p := newTestPipeline(t, &fakeCompleter{reply: `{"forum": "Tribunal"}`})

	var wg sync.WaitGroup
	results := make([]models.ResultEnvelope, 16)

	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = p.Extract(context.Background(), "doc")
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		require.Equal(t, models.StatusSuccess, r.Status)
		require.Equal(t, "Tribunal", r.Data.Content.Forum)
	}
}

func TestExtractLogsNoDocumentContent(t *testing.T) {
	var logs bytes.Buffer
	c := &fakeCompleter{reply: `{"document_number": "INV-2024-001", "party_details": "ACME Corp"}`}

	p, err := NewPipeline(c, WithLogger(slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))))
	require.NoError(t, err)

	result := p.Extract(context.Background(), "Invoice INV-2024-001 for ACME Corp")
	require.Equal(t, models.StatusSuccess, result.Status)

	require.Contains(t, logs.String(), "extract.ok")
	require.NotContains(t, logs.String(), "INV-2024-001")
	require.NotContains(t, logs.String(), "ACME Corp")
}
