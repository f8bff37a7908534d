package gemini

import (
	"strings"

	"github.com/SscSPs/spend_tracker_app/internal/core/domain"
)

const schemaSkeleton = `{"entry_summary": null, "occurred_at": null, "transactions": [{"amount": 0, "currency": "INR", "direction": "outflow", "type": "expense", "category": "Other", "needs_confirmation": false, "assumptions": []}], "needs_confirmation": false, "assumptions": []}`

// systemInstruction tells the model which shape and vocabulary to use. Anything it
// gets wrong anyway is repaired by post-processing.
func systemInstruction() string {
	types := make([]string, len(domain.TransactionTypes))
	for i, t := range domain.TransactionTypes {
		types[i] = string(t)
	}

	rules := []string{
		"Output must be a single JSON object. Keys must match the schema skeleton exactly.",
		"Include all top-level keys, even if values are null or empty.",
		"Each transaction must include all transaction keys. No additional keys anywhere.",
		"Return JSON only. No markdown or commentary.",
		"Allowed categories: " + strings.Join(domain.Categories, ", "),
		"Allowed types: " + strings.Join(types, ", "),
		"Allowed direction: inflow or outflow only.",
		"Default currency is " + domain.DefaultCurrency + " unless explicitly another currency.",
		"Amount must be positive. Do not use negative numbers.",
		"If multiple distinct spends/incomes with different amounts, output multiple transactions.",
		"Parse amounts like '1,300', '₹1300', '1300 rs', '1.2k'.",
		"Use reference_datetime to resolve relative dates like 'yesterday' or 'today'.",
		"If no date/time is specified, occurred_at must be null.",
		"Assumptions only when you had to assume. Keep each one to a single short sentence.",
		"If there are no transactions, use top-level assumptions for missing info.",
	}

	var b strings.Builder
	b.WriteString("You are an expense parsing engine.\n\nSchema skeleton:\n")
	b.WriteString(schemaSkeleton)
	b.WriteString("\n\nRules:\n")
	for _, r := range rules {
		b.WriteString("- ")
		b.WriteString(r)
		b.WriteString("\n")
	}
	return b.String()
}

func userMessage(rawText, referenceDatetime string) string {
	return "reference_datetime: " + referenceDatetime + "\ntext: " + rawText
}
