package postprocess

import (
	"strings"

	"github.com/SscSPs/spend_tracker_app/internal/core/domain"
)

// resolveType maps the claimed type onto the allow-list, falling back to "other".
func resolveType(s txState, guess domain.RawTransactionGuess) txState {
	t, ok := domain.ParseTransactionType(guess.Type)
	if !ok {
		s.txType = domain.OtherType
		return s.flag(AssumptionUnknownType)
	}
	s.txType = t
	return s
}

// resolveDirection validates the claimed direction and then lets the resolved
// type override it. Must run after resolveType.
func resolveDirection(s txState, guess domain.RawTransactionGuess) txState {
	expected, hasExpected := typeDirection[s.txType]
	direction, ok := domain.ParseDirection(guess.Direction)
	switch {
	case !ok:
		s.direction = domain.Outflow
		if hasExpected {
			s.direction = expected
		}
		return s.flag(AssumptionInvalidDirection)
	case hasExpected && direction != expected:
		s.direction = expected
		return s.flag(AssumptionDirectionAdjusted)
	}
	s.direction = direction
	return s
}

// resolveCategory replaces unknown categories with Other, then lets the type
// override whatever category is left. Must run after resolveType.
func resolveCategory(s txState, guess domain.RawTransactionGuess) txState {
	s.category = strings.TrimSpace(guess.Category)
	if !domain.IsAllowedCategory(s.category) {
		s.category = domain.CategoryOther
		s = s.flag(AssumptionCategoryOther)
	}
	if mapped, ok := typeCategory[s.txType]; ok && s.category != mapped {
		s.category = mapped
		s = s.flag(AssumptionCategoryAdjusted)
	}
	return s
}
