// Package postprocess turns untrusted, schema-valid LLM output into a normalized
// preview. It performs no I/O, holds no state and never fails: doubtful values are
// repaired and reported as assumptions plus a confirmation flag.
package postprocess

import (
	"slices"

	"github.com/SscSPs/spend_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Normalize runs every transaction guess through the rule pipeline and folds the
// results into one entry-level preview. rawText is only used for split detection.
func Normalize(parsed domain.ParseOutput, rawText string) domain.NormalizedEntryResult {
	count, split := DetectSplitCount(rawText)

	transactions := make([]domain.NormalizedTransaction, 0, len(parsed.Transactions))
	for _, guess := range parsed.Transactions {
		transactions = append(transactions, normalizeTransaction(guess, count, split))
	}

	result := domain.NormalizedEntryResult{
		EntrySummary: parsed.EntrySummary,
		OccurredAt:   parsed.OccurredAt,
		Transactions: transactions,
	}

	if len(transactions) == 0 {
		// Nothing extracted: keep whatever the extractor said and always ask the user.
		result.Assumptions = slices.Clone(parsed.Assumptions)
		if result.Assumptions == nil {
			result.Assumptions = []string{}
		}
		result.NeedsConfirmation = true
		return result
	}

	result.NeedsConfirmation = parsed.NeedsConfirmation
	result.Assumptions = []string{}
	seen := make(map[string]struct{})
	for _, tx := range transactions {
		if tx.NeedsConfirmation {
			result.NeedsConfirmation = true
		}
		for _, a := range tx.Assumptions {
			if _, dup := seen[a]; dup {
				continue
			}
			seen[a] = struct{}{}
			result.Assumptions = append(result.Assumptions, a)
		}
	}
	return result
}

// NormalizeTransaction normalizes a single guess as if it were the only one in an
// entry with the given raw text.
func NormalizeTransaction(guess domain.RawTransactionGuess, rawText string) domain.NormalizedTransaction {
	count, split := DetectSplitCount(rawText)
	return normalizeTransaction(guess, count, split)
}

func normalizeTransaction(guess domain.RawTransactionGuess, count decimal.Decimal, split bool) domain.NormalizedTransaction {
	rules := []rule{
		applyAmountRules,
		resolveType,
		resolveDirection,
		resolveCategory,
		applySplit(count, split),
	}
	s := newState(guess)
	for _, r := range rules {
		s = r(s, guess)
	}
	return s.result()
}
