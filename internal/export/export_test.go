package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
)

func sampleRows() []Row {
	return []Row{
		{{Key: "id", Value: "1"}, {Key: "type", Value: "deposit"}, {Key: "note", Value: `He said "hi"`}},
		{{Key: "id", Value: "2"}, {Key: "type", Value: "withdraw"}, {Key: "note", Value: "plain"}},
		{{Key: "type", Value: "deposit"}, {Key: "id", Value: "3"}},
	}
}

func TestCSVLayout(t *testing.T) {
	out, err := CSV(sampleRows())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(string(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines: %q", len(lines), out)
	}
	if lines[0] != "id,type,note" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != `"1","deposit","He said ""hi"""` {
		t.Fatalf("unexpected first row %q", lines[1])
	}
	if lines[3] != `"3","deposit",""` {
		t.Fatalf("rows must follow header order, got %q", lines[3])
	}
}

func TestQuote(t *testing.T) {
	if got := Quote(`He said "hi"`); got != `"He said ""hi"""` {
		t.Fatalf("unexpected quoting %q", got)
	}
	if got := Quote(""); got != `""` {
		t.Fatalf("unexpected quoting of empty value %q", got)
	}
}

func TestCSVKeepsOneLinePerRow(t *testing.T) {
	rows := []Row{
		{{Key: "id", Value: "1"}, {Key: "note", Value: "first\nsecond"}},
		{{Key: "id", Value: "2"}, {Key: "note", Value: "a\r\nb\rc"}},
	}

	out, err := CSV(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(string(out), "\n")
	if len(lines) != len(rows)+1 {
		t.Fatalf("expected %d lines, got %d: %q", len(rows)+1, len(lines), out)
	}
	if lines[1] != `"1","first second"` || lines[2] != `"2","a b c"` {
		t.Fatalf("unexpected rows %q", lines[1:])
	}
}

func TestCSVEmpty(t *testing.T) {
	if _, err := CSV(nil); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestPDF(t *testing.T) {
	out, err := PDF("Statement", sampleRows())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("output is not a pdf document")
	}
	if _, err := PDF("Statement", nil); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	if _, err := Render("xlsx", "x", sampleRows()); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func newTestSaver(fs afero.Fs) *Saver {
	s := NewSaver(fs, "/exports")
	s.now = func() time.Time { return time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC) }
	return s
}

func TestSaverExport(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := newTestSaver(fs)

	path, err := s.Export(FormatCSV, "transactions", "Transactions", sampleRows())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "/exports/transactions_2024-05-01.csv" {
		t.Fatalf("unexpected path %q", path)
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	if !strings.HasPrefix(string(data), "id,type,note\n") {
		t.Fatalf("unexpected file content %q", data)
	}
}

func TestSaverKeepsFilesInsideDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := newTestSaver(fs)

	path, err := s.Export(FormatCSV, "transactions_customer_../../etc/x", "Transactions", sampleRows())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "/exports/transactions_customer_______etc_x_2024-05-01.csv" {
		t.Fatalf("unexpected path %q", path)
	}

	for _, name := range []string{"../x.csv", "sub/x.csv", "..", ""} {
		if _, err := s.Save(name, []byte("x")); err == nil {
			t.Fatalf("expected Save(%q) to be rejected", name)
		}
	}
}

func TestSaverExportEmptyWritesNothing(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := newTestSaver(fs)

	if _, err := s.Export(FormatCSV, "transactions", "Transactions", nil); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}

	exists, err := afero.DirExists(fs, "/exports")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Fatal("empty export must not touch the filesystem")
	}
}
