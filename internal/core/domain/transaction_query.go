package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionSortField names a column transactions can be ordered by.
type TransactionSortField string

const (
	SortByOccurredTime TransactionSortField = "occurred_time"
	SortByAmount       TransactionSortField = "amount"
	SortByCategory     TransactionSortField = "category"
)

// SortableTransactionFields lists the accepted sort fields, alphabetically.
var SortableTransactionFields = []TransactionSortField{SortByAmount, SortByCategory, SortByOccurredTime}

// SortOrder is asc or desc.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// TransactionQuery narrows and orders a transaction listing. Zero values mean "no filter".
type TransactionQuery struct {
	From       *time.Time // inclusive
	To         *time.Time // inclusive
	Direction  *Direction
	Types      []TransactionType
	Categories []string
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
	SortField  TransactionSortField
	SortOrder  SortOrder
}
