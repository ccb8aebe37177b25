package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Fixed account pair for the smoke-test posting: debit leg and balancing (credit) leg.
const (
	DefaultAccountNumber          = 55000
	DefaultBalancingAccountNumber = 60140
)

var (
	ErrInvalidAmount      = errors.New("--amount must be a decimal number")
	ErrMissingDescription = errors.New("--description must not be empty")
	ErrMissingVoucherDate = errors.New("voucher date is required")
)

// ManualVoucherLine is one posting of a manual voucher. Nil VAT codes are sent as null.
type ManualVoucherLine struct {
	Description             string
	AccountNumber           int
	BalancingAccountNumber  int
	Amount                  decimal.Decimal
	AccountVatCode          *string
	BalancingAccountVatCode *string
}

// ManualVoucher is the payload for creating a manual journal entry.
type ManualVoucher struct {
	VoucherDate VoucherDate
	Lines       []ManualVoucherLine
}

// NewManualVoucher builds the single-line voucher posted by the smoke test.
func NewManualVoucher(date VoucherDate, description string, amount decimal.Decimal) (ManualVoucher, error) {
	if date.IsZero() {
		return ManualVoucher{}, ErrMissingVoucherDate
	}
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return ManualVoucher{}, ErrMissingDescription
	}
	return ManualVoucher{
		VoucherDate: date,
		Lines: []ManualVoucherLine{{
			Description:            trimmed,
			AccountNumber:          DefaultAccountNumber,
			BalancingAccountNumber: DefaultBalancingAccountNumber,
			Amount:                 amount,
		}},
	}, nil
}

// ParseAmount reads a decimal amount such as "125.50".
func ParseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	return amount, nil
}

// Voucher is what Dinero returns after creating a manual voucher.
type Voucher struct {
	GUID      string
	Number    *int64
	Timestamp string
}

var (
	ErrVoucherMissingGUID      = errors.New("response did not include a voucher GUID to book")
	ErrVoucherMissingTimestamp = errors.New("response did not include a timestamp required to book the voucher")
)

// ReadyToBook checks that both booking inputs are present.
func (v Voucher) ReadyToBook() error {
	if strings.TrimSpace(v.GUID) == "" {
		return ErrVoucherMissingGUID
	}
	if strings.TrimSpace(v.Timestamp) == "" {
		return ErrVoucherMissingTimestamp
	}
	return nil
}
