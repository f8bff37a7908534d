package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/spend_tracker_app/internal/core/domain"
	"github.com/go-playground/validator/v10"
)

// llmTransaction is the wire shape of one transaction in the model's JSON.
// Pointers let the validator tell a missing field from a zero value.
type llmTransaction struct {
	Amount            *llmAmount `json:"amount" validate:"required"`
	Currency          *string    `json:"currency"`
	Direction         *string    `json:"direction" validate:"required"`
	Type              *string    `json:"type" validate:"required"`
	Category          *string    `json:"category" validate:"required"`
	NeedsConfirmation *bool      `json:"needs_confirmation"`
	Assumptions       []string   `json:"assumptions"`
}

// llmParseOutput is the wire shape of the whole model response.
type llmParseOutput struct {
	EntrySummary      *string          `json:"entry_summary"`
	OccurredAt        *llmTime         `json:"occurred_at"`
	Transactions      []llmTransaction `json:"transactions" validate:"dive"`
	NeedsConfirmation *bool            `json:"needs_confirmation"`
	Assumptions       []string         `json:"assumptions"`
}

// llmAmount accepts a JSON number or a string holding one ("100", " 12.5 ").
type llmAmount float64

func (a *llmAmount) UnmarshalJSON(data []byte) error {
	var value float64
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return fmt.Errorf("amount %q is not a number", raw)
		}
		value = parsed
	} else if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("amount must be a number: %w", err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("amount must be finite")
	}
	*a = llmAmount(value)
	return nil
}

// llmTime accepts the ISO-8601 variants models tend to emit. Values without an
// offset are taken as UTC.
type llmTime struct {
	time.Time
}

var llmTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

func (t *llmTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("occurred_at must be a string: %w", err)
	}
	raw = strings.TrimSpace(raw)
	for _, layout := range llmTimeLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("occurred_at %q is not an ISO-8601 datetime", raw)
}

var llmValidator = validator.New(validator.WithRequiredStructEnabled())

// decodeParseOutput strictly decodes and validates the model's JSON. Anything but a
// single object is rejected, as are unknown keys, wrong types, nulls in fields that
// only have defaults and missing required transaction fields.
func decodeParseOutput(raw []byte) (domain.ParseOutput, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var wire *llmParseOutput
	if err := dec.Decode(&wire); err != nil {
		return domain.ParseOutput{}, fmt.Errorf("decode: %w", err)
	}
	if wire == nil {
		return domain.ParseOutput{}, fmt.Errorf("decode: expected a JSON object, got null")
	}
	if dec.More() {
		return domain.ParseOutput{}, fmt.Errorf("decode: trailing data after JSON object")
	}
	if err := rejectNulls(raw); err != nil {
		return domain.ParseOutput{}, fmt.Errorf("validate: %w", err)
	}
	if err := llmValidator.Struct(wire); err != nil {
		return domain.ParseOutput{}, fmt.Errorf("validate: %w", err)
	}
	return wire.toDomain(), nil
}

// Keys that may be omitted but must not be sent as null. entry_summary and
// occurred_at are the only nullable ones.
var (
	nonNullableEntryKeys       = []string{"transactions", "needs_confirmation", "assumptions"}
	nonNullableTransactionKeys = []string{"amount", "currency", "direction", "type", "category", "needs_confirmation", "assumptions"}
)

// rejectNulls walks an already type-checked payload looking for explicit nulls,
// which the struct decoder cannot tell apart from missing keys.
func rejectNulls(raw []byte) error {
	var entry map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entry); err != nil {
		return err
	}
	if err := checkNulls(entry, nonNullableEntryKeys, ""); err != nil {
		return err
	}
	if rawTxns, ok := entry["transactions"]; ok {
		var txns []map[string]json.RawMessage
		if err := json.Unmarshal(rawTxns, &txns); err != nil {
			return err
		}
		for i, txn := range txns {
			if txn == nil {
				return fmt.Errorf("transactions[%d] must not be null", i)
			}
			if err := checkNulls(txn, nonNullableTransactionKeys, fmt.Sprintf("transactions[%d].", i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkNulls(obj map[string]json.RawMessage, keys []string, prefix string) error {
	for _, key := range keys {
		value, ok := obj[key]
		if !ok {
			continue
		}
		if isJSONNull(value) {
			return fmt.Errorf("%s%s must not be null", prefix, key)
		}
		if key != "assumptions" {
			continue
		}
		var items []json.RawMessage
		if err := json.Unmarshal(value, &items); err != nil {
			return err
		}
		for i, item := range items {
			if isJSONNull(item) {
				return fmt.Errorf("%s%s[%d] must not be null", prefix, key, i)
			}
		}
	}
	return nil
}

func isJSONNull(value json.RawMessage) bool {
	return string(bytes.TrimSpace(value)) == "null"
}

func (w llmParseOutput) toDomain() domain.ParseOutput {
	out := domain.ParseOutput{
		EntrySummary:      w.EntrySummary,
		NeedsConfirmation: w.NeedsConfirmation != nil && *w.NeedsConfirmation,
		Assumptions:       w.Assumptions,
		Transactions:      make([]domain.RawTransactionGuess, 0, len(w.Transactions)),
	}
	if w.OccurredAt != nil && !w.OccurredAt.IsZero() {
		occurred := w.OccurredAt.Time
		out.OccurredAt = &occurred
	}
	for _, t := range w.Transactions {
		guess := domain.RawTransactionGuess{
			Amount:      float64(*t.Amount),
			Currency:    domain.DefaultCurrency,
			Direction:   *t.Direction,
			Type:        *t.Type,
			Category:    *t.Category,
			Assumptions: t.Assumptions,
		}
		if t.Currency != nil {
			guess.Currency = *t.Currency
		}
		if t.NeedsConfirmation != nil {
			guess.NeedsConfirmation = *t.NeedsConfirmation
		}
		out.Transactions = append(out.Transactions, guess)
	}
	return out
}
