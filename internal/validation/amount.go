package validation

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/hance08/bankdash/internal/utils"
)

var (
	ErrAmountRequired = errors.New("amount is required")
	ErrAmountInvalid  = errors.New("amount must be a number")
	ErrAmountPositive = errors.New("amount must be greater than zero")
)

// amountPattern accepts plain decimals with an optional fraction. Commas
// are only allowed as groups of three digits.
var amountPattern = regexp.MustCompile(`^-?(?:\d{1,3}(?:,\d{3})+|\d+)?(?:\.\d+)?$`)

// ParseAmount parses user input into a finite amount greater than zero.
// A leading currency symbol and thousands separators are tolerated.
func ParseAmount(input string) (float64, error) {
	s := strings.TrimSpace(input)
	s = strings.TrimPrefix(s, "$")
	if s == "" {
		return 0, ErrAmountRequired
	}
	if !amountPattern.MatchString(s) || strings.Trim(s, "-.") == "" {
		return 0, ErrAmountInvalid
	}
	s = strings.ReplaceAll(s, ",", "")

	amount, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, ErrAmountInvalid
	}
	if amount <= 0 {
		return 0, ErrAmountPositive
	}

	return amount, nil
}

// InsufficientFundsError reports a withdrawal larger than the known balance.
type InsufficientFundsError struct {
	Amount  float64
	Balance float64
}

func (e *InsufficientFundsError) Error() string {
	return "insufficient funds: balance is " + utils.FormatMoney(e.Balance)
}

// ValidateWithdraw checks a withdrawal against a known balance.
// A nil balance means the balance is unknown and the server decides.
func ValidateWithdraw(amount float64, balance *float64) error {
	if balance == nil {
		return nil
	}
	if amount > *balance {
		return &InsufficientFundsError{Amount: amount, Balance: *balance}
	}
	return nil
}
