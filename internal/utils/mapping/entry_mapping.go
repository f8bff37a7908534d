package mapping

import (
	"github.com/SscSPs/spend_tracker_app/internal/core/domain"
	"github.com/SscSPs/spend_tracker_app/internal/models"
)

// ToModelEntry converts a domain Entry to a model Entry
func ToModelEntry(d domain.Entry) models.Entry {
	var parserOutput []byte
	if len(d.ParserOutput) > 0 {
		parserOutput = []byte(d.ParserOutput)
	}
	return models.Entry{
		EntryID:        d.EntryID,
		UserID:         d.UserID,
		RawText:        d.RawText,
		Source:         string(d.Source),
		Status:         models.EntryStatus(d.Status),
		OccurredAtHint: d.OccurredHint,
		ParserOutput:   parserOutput,
		ParserVersion:  d.ParserVersion,
		Notes:          d.Notes,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEntry converts a model Entry to a domain Entry
func ToDomainEntry(m models.Entry) domain.Entry {
	return domain.Entry{
		EntryID:       m.EntryID,
		UserID:        m.UserID,
		RawText:       m.RawText,
		Source:        domain.EntrySource(m.Source),
		Status:        domain.EntryStatus(m.Status),
		OccurredHint:  m.OccurredAtHint,
		ParserOutput:  m.ParserOutput,
		ParserVersion: m.ParserVersion,
		Notes:         m.Notes,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainEntries converts a slice of model Entry to a slice of domain Entry
func ToDomainEntries(ms []models.Entry) []domain.Entry {
	ds := make([]domain.Entry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntry(m)
	}
	return ds
}
