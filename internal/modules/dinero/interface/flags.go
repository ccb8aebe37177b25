package transport

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"

	"dineroCheck/internal/modules/dinero/domain"
)

const (
	flagVoucherDate = "voucher-date"
	flagDescription = "description"
	flagAmount      = "amount"
	flagOrgLookup   = "org-lookup"
)

// voucherDateValue validates --voucher-date while flags are parsed, before anything touches the network.
type voucherDateValue struct {
	date *domain.VoucherDate
}

func (v voucherDateValue) String() string {
	if v.date == nil {
		return ""
	}
	return v.date.String()
}

func (v voucherDateValue) Set(raw string) error {
	parsed, err := domain.ParseVoucherDate(raw)
	if err != nil {
		return domain.ErrInvalidVoucherDate
	}
	*v.date = parsed
	return nil
}

func (voucherDateValue) Type() string { return "date" }

type amountValue struct {
	amount *decimal.Decimal
	set    *bool
}

func (v amountValue) String() string {
	if v.amount == nil || v.set == nil || !*v.set {
		return ""
	}
	return v.amount.String()
}

func (v amountValue) Set(raw string) error {
	parsed, err := domain.ParseAmount(raw)
	if err != nil {
		return err
	}
	*v.amount = parsed
	*v.set = true
	return nil
}

func (amountValue) Type() string { return "decimal" }

type lookupValue struct {
	shape *domain.LookupShape
}

func (v lookupValue) String() string {
	if v.shape == nil {
		return ""
	}
	return string(*v.shape)
}

func (v lookupValue) Set(raw string) error {
	shape, ok := domain.ParseLookupShape(raw)
	if !ok {
		return errInvalidLookup
	}
	*v.shape = shape
	return nil
}

func (lookupValue) Type() string { return "list|path" }

var (
	_ pflag.Value = voucherDateValue{}
	_ pflag.Value = amountValue{}
	_ pflag.Value = lookupValue{}
)
