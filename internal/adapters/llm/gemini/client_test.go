package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/SscSPs/spend_tracker_app/internal/adapters/llm"
)

type fakeGenerator struct {
	reply string
	err   error

	gotModel    string
	gotContents []*genai.Content
	gotConfig   *genai.GenerateContentConfig
	gotDeadline bool
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.gotModel = model
	f.gotContents = contents
	f.gotConfig = config
	_, f.gotDeadline = ctx.Deadline()
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Role: "model", Parts: []*genai.Part{{Text: f.reply}}},
		}},
	}, nil
}

func TestClientParse(t *testing.T) {
	fake := &fakeGenerator{reply: "```json\n{\"transactions\": []}\n```"}
	client := newClient(fake, Config{Model: "gemini-test", Temperature: 0.2, Timeout: time.Second})

	out, err := client.Parse(context.Background(), "coffee 120", "2026-05-01T09:00:00Z")

	require.NoError(t, err)
	assert.JSONEq(t, `{"transactions": []}`, string(out))
	assert.Equal(t, "gemini-test", fake.gotModel)
	assert.True(t, fake.gotDeadline)

	require.Len(t, fake.gotContents, 1)
	prompt := fake.gotContents[0].Parts[0].Text
	assert.Contains(t, prompt, "reference_datetime: 2026-05-01T09:00:00Z")
	assert.Contains(t, prompt, "text: coffee 120")

	require.NotNil(t, fake.gotConfig)
	assert.Equal(t, "application/json", fake.gotConfig.ResponseMIMEType)
	require.NotNil(t, fake.gotConfig.Temperature)
	assert.InDelta(t, 0.2, *fake.gotConfig.Temperature, 1e-6)
	system := fake.gotConfig.SystemInstruction.Parts[0].Text
	assert.Contains(t, system, "Food & Drinks")
	assert.Contains(t, system, "repayment_received")
	assert.Contains(t, system, "inflow or outflow")
}

func TestClientParse_Failures(t *testing.T) {
	tests := []struct {
		name    string
		fake    *fakeGenerator
		wantErr error
	}{
		{name: "transport error", fake: &fakeGenerator{err: errors.New("503")}},
		{name: "empty text", fake: &fakeGenerator{reply: ""}, wantErr: ErrEmptyResponse},
		{name: "not json", fake: &fakeGenerator{reply: "no idea"}, wantErr: llm.ErrNoJSONObject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newClient(tt.fake, Config{Model: "gemini-test"})
			_, err := client.Parse(context.Background(), "x", "2026-05-01T09:00:00Z")
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.False(t, tt.fake.gotDeadline, "no timeout configured")
		})
	}
}

func TestSystemInstructionListsEveryCategory(t *testing.T) {
	system := systemInstruction()
	assert.True(t, strings.HasPrefix(system, "You are an expense parsing engine."))
	assert.Contains(t, system, `"entry_summary": null`)
	assert.Contains(t, system, "Bills & Utilities")
	assert.Contains(t, system, "Default currency is INR")
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), Config{Model: "gemini-test"})
	assert.Error(t, err)
}
