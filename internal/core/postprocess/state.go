package postprocess

import (
	"slices"

	"github.com/SscSPs/spend_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// txState is the per-transaction value threaded through the rules. Rules receive
// a copy and return a new one; nothing is mutated in place.
type txState struct {
	amount            decimal.Decimal
	currency          string
	direction         domain.Direction
	txType            domain.TransactionType
	category          string
	assumptions       []string
	needsConfirmation bool
}

// rule is one normalization step. The raw guess is passed alongside so steps can
// look at what the LLM originally claimed.
type rule func(s txState, guess domain.RawTransactionGuess) txState

// flag appends an assumption and raises needsConfirmation. It never lowers the flag.
func (s txState) flag(assumption string) txState {
	s.assumptions = append(slices.Clip(s.assumptions), assumption)
	s.needsConfirmation = true
	return s
}

func newState(guess domain.RawTransactionGuess) txState {
	currency := guess.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	return txState{
		amount:            CoerceAmount(guess.Amount),
		currency:          currency,
		assumptions:       slices.Clone(guess.Assumptions),
		needsConfirmation: guess.NeedsConfirmation,
	}
}

func (s txState) result() domain.NormalizedTransaction {
	assumptions := s.assumptions
	if assumptions == nil {
		assumptions = []string{}
	}
	return domain.NormalizedTransaction{
		Amount:            s.amount,
		Currency:          s.currency,
		Direction:         s.direction,
		Type:              s.txType,
		Category:          s.category,
		NeedsConfirmation: s.needsConfirmation,
		Assumptions:       assumptions,
	}
}
