package prompts

import (
	"github.com/hance08/bankdash/internal/listview"
	"github.com/hance08/bankdash/internal/model"
)

// Action is a dashboard menu entry.
type Action string

const (
	ActionSearch   Action = "search"
	ActionFilter   Action = "filter"
	ActionSort     Action = "sort"
	ActionFirst    Action = "first"
	ActionPrev     Action = "prev"
	ActionNext     Action = "next"
	ActionLast     Action = "last"
	ActionMore     Action = "more"
	ActionDeposit  Action = "deposit"
	ActionWithdraw Action = "withdraw"
	ActionOpen     Action = "open"
	ActionRefresh  Action = "refresh"
	ActionExport   Action = "export"
	ActionBack     Action = "back"
	ActionQuit     Action = "quit"
)

var actionLabels = map[Action]string{
	ActionSearch:   "Search",
	ActionFilter:   "Filter by type",
	ActionSort:     "Sort",
	ActionFirst:    "« First page",
	ActionPrev:     "‹ Previous page",
	ActionNext:     "Next page ›",
	ActionLast:     "Last page »",
	ActionMore:     "Load more",
	ActionDeposit:  "Deposit",
	ActionWithdraw: "Withdraw",
	ActionOpen:     "Open customer",
	ActionRefresh:  "Refresh",
	ActionExport:   "Export",
	ActionBack:     "Back",
	ActionQuit:     "Quit",
}

// PromptAction shows the dashboard menu. Only enabled actions are offered,
// so a boundary move can never be chosen.
func PromptAction(actions []Action) (Action, error) {
	opts := make([]Option[Action], 0, len(actions))
	for _, a := range actions {
		opts = append(opts, Option[Action]{Label: actionLabels[a], Value: a})
	}
	return PromptSelect("What next?", opts, actions[0])
}

func PromptSearch(current string) (string, error) {
	return PromptInput("Search:", "Matches type, amount or date. Leave empty to clear.", current, nil)
}

func PromptCategory(current string) (string, error) {
	opts := make([]Option[string], 0, len(model.Kinds))
	for _, k := range model.Kinds {
		opts = append(opts, Option[string]{Label: k.Label(), Value: string(k)})
	}
	return PromptSelect("Show:", opts, current)
}

func PromptSort(keys []listview.SortKey, current listview.SortKey) (listview.SortKey, error) {
	labels := map[listview.SortKey]string{
		"newest":      "Newest first",
		"oldest":      "Oldest first",
		"amount-high": "Amount: high to low",
		"amount-low":  "Amount: low to high",
		"name":        "Name (A-Z)",
	}

	opts := make([]Option[listview.SortKey], 0, len(keys))
	for _, k := range keys {
		label, ok := labels[k]
		if !ok {
			label = string(k)
		}
		opts = append(opts, Option[listview.SortKey]{Label: label, Value: k})
	}
	return PromptSelect("Sort by:", opts, current)
}

// PromptAmount asks for a deposit or withdrawal amount. prefill carries
// the amount of a failed attempt so it does not need retyping.
func PromptAmount(kind model.Kind, prefill string) (string, error) {
	return PromptInput(
		kind.Label()+" amount:",
		"Enter the amount, no currency symbol needed (e.g. 150 or 150.50)",
		prefill,
		nil,
	)
}

func PromptExportFormat(current string) (string, error) {
	opts := []Option[string]{
		{Label: "CSV", Value: "csv"},
		{Label: "PDF statement", Value: "pdf"},
	}
	return PromptSelect("Export as:", opts, current)
}

func PromptCustomer(customers []model.Customer) (model.ID, error) {
	opts := make([]Option[model.ID], 0, len(customers))
	for _, c := range customers {
		opts = append(opts, Option[model.ID]{Label: c.Name + " <" + c.Email + ">", Value: c.ID})
	}
	var first model.ID
	if len(customers) > 0 {
		first = customers[0].ID
	}
	return PromptSelect("Customer:", opts, first)
}
