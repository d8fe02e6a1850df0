package utils

import (
	"testing"
	"time"
)

func TestFormatAmount(t *testing.T) {
	cases := map[float64]string{
		20:      "20",
		12.5:    "12.5",
		0.01:    "0.01",
		1000000: "1000000",
	}
	for in, want := range cases {
		if got := FormatAmount(in); got != want {
			t.Fatalf("FormatAmount(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	if got := FormatMoney(1234.5); got != "1,234.50" {
		t.Fatalf("expected 1,234.50, got %q", got)
	}
}

func TestFormatTimeZero(t *testing.T) {
	if got := FormatTime(time.Time{}, ""); got != "-" {
		t.Fatalf("expected dash for zero time, got %q", got)
	}
	ts := time.Date(2024, time.March, 5, 9, 30, 0, 0, time.Local)
	if got := FormatTime(ts, "2006-01-02"); got != "2024-03-05" {
		t.Fatalf("unexpected format %q", got)
	}
}
