package postprocess

import "github.com/SscSPs/spend_tracker_app/internal/core/domain"

// typeDirection is the direction each type must carry. Types missing here
// (only "other") may go either way.
var typeDirection = map[domain.TransactionType]domain.Direction{
	domain.Expense:           domain.Outflow,
	domain.Income:            domain.Inflow,
	domain.RepaymentReceived: domain.Inflow,
	domain.RepaymentSent:     domain.Outflow,
	domain.InvestmentIncome:  domain.Inflow,
	domain.Refund:            domain.Inflow,
	domain.Transfer:          domain.Outflow,
}

// typeCategory pins the category for types that only make sense in one.
var typeCategory = map[domain.TransactionType]string{
	domain.Income:            "Income",
	domain.InvestmentIncome:  "Investments",
	domain.RepaymentReceived: "Loans",
	domain.RepaymentSent:     "Loans",
	domain.Transfer:          "Transfer",
}

// Assumption texts shown to the user. Clients and fixtures match on them verbatim.
const (
	AssumptionNonPositiveAmount = "Amount was non-positive; please confirm."
	AssumptionLargeAmount       = "Amount is unusually large; please confirm."
	AssumptionUnknownType       = "Type not recognized; set to other."
	AssumptionInvalidDirection  = "Direction was invalid; defaulted."
	AssumptionDirectionAdjusted = "Direction adjusted to match type."
	AssumptionCategoryOther     = "Category set to Other."
	AssumptionCategoryAdjusted  = "Category adjusted to match type."
	assumptionSplitFormat       = "Split assumed %s people."
)

// CanonicalDirection returns the direction a type is bound to, if any.
func CanonicalDirection(t domain.TransactionType) (domain.Direction, bool) {
	d, ok := typeDirection[t]
	return d, ok
}

// CanonicalCategory returns the category a type is bound to, if any.
func CanonicalCategory(t domain.TransactionType) (string, bool) {
	c, ok := typeCategory[t]
	return c, ok
}
