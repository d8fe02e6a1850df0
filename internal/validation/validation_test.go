package validation

import (
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		input   string
		want    float64
		wantErr error
	}{
		{input: "150", want: 150},
		{input: " 12.50 ", want: 12.5},
		{input: "$1,000", want: 1000},
		{input: "", wantErr: ErrAmountRequired},
		{input: "abc", wantErr: ErrAmountInvalid},
		{input: "NaN", wantErr: ErrAmountInvalid},
		{input: "Inf", wantErr: ErrAmountInvalid},
		{input: "0", wantErr: ErrAmountPositive},
		{input: "-5", wantErr: ErrAmountPositive},
		{input: "12,345.67", want: 12345.67},
		{input: ".5", want: 0.5},
		{input: "12,50", wantErr: ErrAmountInvalid},
		{input: "1,5", wantErr: ErrAmountInvalid},
		{input: "1,2,3", wantErr: ErrAmountInvalid},
		{input: ",100", wantErr: ErrAmountInvalid},
		{input: "0x1p4", wantErr: ErrAmountInvalid},
		{input: "1e3", wantErr: ErrAmountInvalid},
		{input: "1.5.0", wantErr: ErrAmountInvalid},
		{input: ".", wantErr: ErrAmountInvalid},
		{input: "-", wantErr: ErrAmountInvalid},
	}

	for _, tc := range cases {
		got, err := ParseAmount(tc.input)
		if tc.wantErr != nil {
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("ParseAmount(%q): expected %v, got %v", tc.input, tc.wantErr, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseAmount(%q): unexpected error %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("ParseAmount(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestValidateWithdraw(t *testing.T) {
	balance := 100.0

	var insufficient *InsufficientFundsError
	if err := ValidateWithdraw(150, &balance); !errors.As(err, &insufficient) {
		t.Fatalf("expected insufficient funds error, got %v", err)
	}
	if err := ValidateWithdraw(50, &balance); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateWithdraw(100, &balance); err != nil {
		t.Fatalf("withdrawing the full balance must be allowed: %v", err)
	}
	if err := ValidateWithdraw(1e9, nil); err != nil {
		t.Fatalf("unknown balance must not block: %v", err)
	}
}

func TestSignUp(t *testing.T) {
	cases := []struct {
		name                            string
		user, email, password, confirm string
		wantErr                         error
	}{
		{name: "ok", user: "Ada", email: "ada@example.com", password: "pw", confirm: "pw"},
		{name: "missing name", user: " ", email: "ada@example.com", password: "pw", confirm: "pw", wantErr: ErrNameRequired},
		{name: "bad email", user: "Ada", email: "ada", password: "pw", confirm: "pw", wantErr: ErrEmailInvalid},
		{name: "display name email", user: "Ada", email: "Ada <ada@example.com>", password: "pw", confirm: "pw", wantErr: ErrEmailInvalid},
		{name: "missing password", user: "Ada", email: "ada@example.com", wantErr: ErrPasswordRequired},
		{name: "mismatch", user: "Ada", email: "ada@example.com", password: "pw", confirm: "px", wantErr: ErrPasswordMismatch},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := SignUp(tc.user, tc.email, tc.password, tc.confirm)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}
