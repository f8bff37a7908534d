package services

import (
	"context"
	"time"

	"github.com/SscSPs/spend_tracker_app/internal/core/domain"
)

// ParserSvc turns free text into a normalized, unsaved preview.
type ParserSvc interface {
	// Parse asks the LLM to extract transactions from rawText, validates its output and
	// runs the post-processing rules. referenceTime anchors relative dates ("yesterday").
	Parse(ctx context.Context, rawText string, referenceTime time.Time) (*domain.ParsedResult, error)
}
