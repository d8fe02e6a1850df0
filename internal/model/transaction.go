package model

import "time"

// Kind is the category of a transaction.
type Kind string

const (
	KindDeposit  Kind = "deposit"
	KindWithdraw Kind = "withdraw"

	// KindAll is only meaningful as a filter value.
	KindAll Kind = "all"
)

// Kinds lists the filter choices in display order.
var Kinds = []Kind{KindAll, KindDeposit, KindWithdraw}

func (k Kind) Valid() bool {
	return k == KindDeposit || k == KindWithdraw
}

func (k Kind) Label() string {
	switch k {
	case KindDeposit:
		return "Deposit"
	case KindWithdraw:
		return "Withdraw"
	case KindAll:
		return "All"
	default:
		return string(k)
	}
}

// Transaction is a single ledger entry as returned by the API.
type Transaction struct {
	ID        ID        `json:"id"`
	Kind      Kind      `json:"type"`
	Amount    float64   `json:"amount"`
	Balance   float64   `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}
