package service

import (
	"cmp"
	"strings"

	"github.com/hance08/bankdash/internal/constants"
	"github.com/hance08/bankdash/internal/export"
	"github.com/hance08/bankdash/internal/listview"
	"github.com/hance08/bankdash/internal/model"
	"github.com/hance08/bankdash/internal/utils"
)

// TransactionSorts lists the sort keys of transaction lists in menu order.
var TransactionSorts = []listview.SortKey{
	constants.SortNewest,
	constants.SortOldest,
	constants.SortAmountHigh,
	constants.SortAmountLow,
}

// CustomerSorts lists the sort keys of the customer list in menu order.
var CustomerSorts = []listview.SortKey{
	constants.SortNewest,
	constants.SortOldest,
	constants.SortName,
}

func newestTransaction(a, b model.Transaction) int { return b.CreatedAt.Compare(a.CreatedAt) }

func newestCustomer(a, b model.Customer) int { return b.CreatedAt.Compare(a.CreatedAt) }

// TransactionOptions matches a query against the kind label, the amount
// and the displayed timestamp.
func TransactionOptions(timeFormat string) listview.Options[model.Transaction] {
	return listview.Options[model.Transaction]{
		Category: func(t model.Transaction) string { return string(t.Kind) },
		Fields: func(t model.Transaction) []string {
			return []string{
				string(t.Kind),
				utils.FormatAmount(t.Amount),
				utils.FormatTime(t.CreatedAt, timeFormat),
			}
		},
		Sorts: map[listview.SortKey]listview.Compare[model.Transaction]{
			constants.SortNewest: newestTransaction,
			constants.SortOldest: func(a, b model.Transaction) int { return a.CreatedAt.Compare(b.CreatedAt) },
			constants.SortAmountHigh: func(a, b model.Transaction) int {
				return cmp.Compare(b.Amount, a.Amount)
			},
			constants.SortAmountLow: func(a, b model.Transaction) int {
				return cmp.Compare(a.Amount, b.Amount)
			},
		},
	}
}

// CustomerOptions matches a query against name, email and join date.
func CustomerOptions(timeFormat string) listview.Options[model.Customer] {
	return listview.Options[model.Customer]{
		Fields: func(c model.Customer) []string {
			return []string{c.Name, c.Email, utils.FormatTime(c.CreatedAt, timeFormat)}
		},
		Sorts: map[listview.SortKey]listview.Compare[model.Customer]{
			constants.SortNewest: newestCustomer,
			constants.SortOldest: func(a, b model.Customer) int { return a.CreatedAt.Compare(b.CreatedAt) },
			constants.SortName: func(a, b model.Customer) int {
				return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
			},
		},
	}
}

func TransactionRow(timeFormat string) export.RowMapper[model.Transaction] {
	return func(t model.Transaction) export.Row {
		return export.Row{
			{Key: "id", Value: t.ID.String()},
			{Key: "type", Value: string(t.Kind)},
			{Key: "amount", Value: utils.FormatAmount(t.Amount)},
			{Key: "balance", Value: utils.FormatAmount(t.Balance)},
			{Key: "date", Value: utils.FormatTime(t.CreatedAt, timeFormat)},
		}
	}
}

func CustomerRow(timeFormat string) export.RowMapper[model.Customer] {
	return func(c model.Customer) export.Row {
		return export.Row{
			{Key: "id", Value: c.ID.String()},
			{Key: "name", Value: c.Name},
			{Key: "email", Value: c.Email},
			{Key: "joined", Value: utils.FormatTime(c.CreatedAt, timeFormat)},
		}
	}
}

// ValidSort reports whether key is one of keys.
func ValidSort(key listview.SortKey, keys []listview.SortKey) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
