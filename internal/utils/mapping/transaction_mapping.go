package mapping

import (
	"github.com/SscSPs/spend_tracker_app/internal/core/domain"
	"github.com/SscSPs/spend_tracker_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	assumptions := d.Assumptions
	if assumptions == nil {
		assumptions = []string{}
	}
	return models.Transaction{
		TransactionID:     d.TransactionID,
		EntryID:           d.EntryID,
		UserID:            d.UserID,
		OccurredAt:        d.OccurredAt,
		Amount:            d.Amount,
		CurrencyCode:      d.CurrencyCode,
		Direction:         string(d.Direction),
		Type:              string(d.Type),
		Category:          d.Category,
		Assumptions:       assumptions,
		NeedsConfirmation: d.NeedsConfirmation,
		IsDeleted:         d.IsDeleted,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:     m.TransactionID,
		EntryID:           m.EntryID,
		UserID:            m.UserID,
		OccurredAt:        m.OccurredAt,
		Amount:            m.Amount,
		CurrencyCode:      m.CurrencyCode,
		Direction:         domain.Direction(m.Direction),
		Type:              domain.TransactionType(m.Type),
		Category:          m.Category,
		Assumptions:       m.Assumptions,
		NeedsConfirmation: m.NeedsConfirmation,
		IsDeleted:         m.IsDeleted,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactions converts a slice of model Transaction to a slice of domain Transaction
func ToDomainTransactions(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
