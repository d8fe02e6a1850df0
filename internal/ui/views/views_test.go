package views

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/hance08/bankdash/internal/listview"
	"github.com/hance08/bankdash/internal/model"
	"github.com/pterm/pterm"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	pterm.DisableStyling()
	pterm.SetDefaultOutput(&buf)
	t.Cleanup(func() {
		pterm.SetDefaultOutput(os.Stdout)
		pterm.EnableStyling()
	})
	return &buf
}

func TestTransactionListNumbersRowsFromWindowStart(t *testing.T) {
	buf := capture(t)
	at := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	items := []model.Transaction{
		{ID: "9", Kind: model.KindDeposit, Amount: 20, Balance: 120, CreatedAt: at},
		{ID: "10", Kind: model.KindWithdraw, Amount: 5, Balance: 115, CreatedAt: at},
	}
	info := listview.PageInfo{Start: 8, End: 10, Total: 10, Page: 2, Pages: 2, CanPrev: true}

	if err := NewTransactionListView("2006-01-02").Render(items, info, listview.Query{}); err != nil {
		t.Fatalf("Render: %v", err)
	}

	var numbers []string
	for _, line := range strings.Split(buf.String(), "\n") {
		fields := strings.Fields(line)
		if len(fields) > 1 && fields[1] == "|" {
			numbers = append(numbers, fields[0])
		}
	}
	if strings.Join(numbers, ",") != "#,9,10" {
		t.Fatalf("unexpected row numbers %v in %q", numbers, buf.String())
	}
	if !strings.Contains(buf.String(), "Page 2 of 2") {
		t.Fatalf("pager footer missing: %q", buf.String())
	}
}

func TestTransactionListEmptyState(t *testing.T) {
	buf := capture(t)

	q := listview.Query{Text: "rent", Category: listview.CategoryAll}
	if err := NewTransactionListView("").Render(nil, listview.PageInfo{Pages: 1}, q); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "No transactions match your search") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
