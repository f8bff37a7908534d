package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/spend_tracker_app/internal/apperrors"
	"github.com/SscSPs/spend_tracker_app/internal/core/domain"
	"github.com/SscSPs/spend_tracker_app/internal/core/ports"
	portssvc "github.com/SscSPs/spend_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/spend_tracker_app/internal/core/postprocess"
)

// ParserError reports that the LLM could not produce a usable parse. It always
// matches apperrors.ErrUpstream.
type ParserError struct {
	Msg string
	Err error
}

func (e *ParserError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *ParserError) Unwrap() []error {
	if e.Err == nil {
		return []error{apperrors.ErrUpstream}
	}
	return []error{apperrors.ErrUpstream, e.Err}
}

// DefaultParserVersion is recorded on entries when no version is configured.
const DefaultParserVersion = "gemini-v1"

type parserService struct {
	BaseService
	client  ports.LLMClient
	version string
}

// ParserServiceOption is a functional option for configuring the parser service
type ParserServiceOption func(*parserService)

// WithParserVersion sets the version string stored alongside parsed entries.
func WithParserVersion(version string) ParserServiceOption {
	return func(s *parserService) {
		if version != "" {
			s.version = version
		}
	}
}

// NewParserService creates a parser backed by the given LLM client.
func NewParserService(client ports.LLMClient, options ...ParserServiceOption) portssvc.ParserSvc {
	svc := &parserService{
		client:  client,
		version: DefaultParserVersion,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ParserSvc = (*parserService)(nil)

// Parse implements portssvc.ParserSvc.
func (s *parserService) Parse(ctx context.Context, rawText string, referenceTime time.Time) (*domain.ParsedResult, error) {
	if s.client == nil {
		return nil, &ParserError{Msg: "LLM client is not configured"}
	}

	raw, err := s.client.Parse(ctx, rawText, referenceTime.Format(time.RFC3339))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		s.LogError(ctx, err, "LLM request failed")
		return nil, &ParserError{Msg: "LLM request failed", Err: err}
	}

	parsed, err := decodeParseOutput(raw)
	if err != nil {
		s.LogError(ctx, err, "LLM output validation failed", slog.Int("payload_bytes", len(raw)))
		return nil, &ParserError{Msg: "LLM output validation failed", Err: err}
	}

	preview := postprocess.Normalize(parsed, rawText)
	s.LogDebug(ctx, "Parsed entry text",
		slog.Int("transaction_count", len(preview.Transactions)),
		slog.Bool("needs_confirmation", preview.NeedsConfirmation),
		slog.String("parser_version", s.version))

	return &domain.ParsedResult{
		Preview:       preview,
		RawOutput:     json.RawMessage(raw),
		ParserVersion: s.version,
	}, nil
}

// parserOutputDocument is what gets persisted on the entry for auditing.
type parserOutputDocument struct {
	Raw           json.RawMessage              `json:"raw"`
	PostProcessed domain.NormalizedEntryResult `json:"post_processed"`
}

func marshalParserOutput(result *domain.ParsedResult) (json.RawMessage, error) {
	doc, err := json.Marshal(parserOutputDocument{Raw: result.RawOutput, PostProcessed: result.Preview})
	if err != nil {
		return nil, fmt.Errorf("failed to encode parser output: %w", err)
	}
	return doc, nil
}
