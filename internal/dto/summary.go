package dto

import "github.com/SscSPs/spend_tracker_app/internal/core/domain"

// CategorySummaryResponse is the total for one direction/category pair.
type CategorySummaryResponse struct {
	Direction domain.Direction `json:"direction"`
	Category  string           `json:"category"`
	Total     string           `json:"total"`
	Count     int              `json:"count"`
}

// MonthlySummaryResponse represents the monthly summary report response
type MonthlySummaryResponse struct {
	Month            string                    `json:"month"`
	TotalInflow      string                    `json:"total_inflow"`
	TotalOutflow     string                    `json:"total_outflow"`
	Net              string                    `json:"net"`
	ByCategory       []CategorySummaryResponse `json:"by_category"`
	TransactionCount int                       `json:"transaction_count"`
}

// ToMonthlySummaryResponse converts a domain.MonthlySummary to its DTO.
func ToMonthlySummaryResponse(s *domain.MonthlySummary) MonthlySummaryResponse {
	byCategory := make([]CategorySummaryResponse, len(s.ByCategory))
	for i, c := range s.ByCategory {
		byCategory[i] = CategorySummaryResponse{
			Direction: c.Direction,
			Category:  c.Category,
			Total:     FormatAmount(c.Total),
			Count:     c.Count,
		}
	}
	return MonthlySummaryResponse{
		Month:            s.Month,
		TotalInflow:      FormatAmount(s.TotalInflow),
		TotalOutflow:     FormatAmount(s.TotalOutflow),
		Net:              FormatAmount(s.Net),
		ByCategory:       byCategory,
		TransactionCount: s.TransactionCount,
	}
}
