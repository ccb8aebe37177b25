package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const voucherDateLayout = "2006-01-02"

var ErrInvalidVoucherDate = errors.New("--voucher-date must be a valid ISO formatted date (YYYY-MM-DD)")

// VoucherDate is a calendar date without time of day.
type VoucherDate struct {
	t time.Time
}

// ParseVoucherDate parses a YYYY-MM-DD date, rejecting impossible days such as 2023-02-30.
func ParseVoucherDate(raw string) (VoucherDate, error) {
	parsed, err := time.Parse(voucherDateLayout, strings.TrimSpace(raw))
	if err != nil {
		return VoucherDate{}, fmt.Errorf("%w: %q", ErrInvalidVoucherDate, raw)
	}
	return VoucherDate{t: parsed}, nil
}

func (d VoucherDate) IsZero() bool {
	return d.t.IsZero()
}

func (d VoucherDate) String() string {
	if d.t.IsZero() {
		return ""
	}
	return d.t.Format(voucherDateLayout)
}
