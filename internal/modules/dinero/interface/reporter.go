package transport

import (
	"fmt"
	"io"
	"strings"

	"dineroCheck/internal/modules/dinero/domain"
)

func writeSummary(w io.Writer, report *domain.Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Successfully connected to Dinero organization '%s' (ID: %s).\n", report.Organization.DisplayName(), report.OrganizationID)

	if report.Mode == domain.ModePost && report.Voucher != nil {
		if report.Voucher.Number != nil {
			fmt.Fprintf(&b, "Created manual voucher number %d.\n", *report.Voucher.Number)
		} else {
			b.WriteString("Created manual voucher.\n")
		}
		if report.Booked {
			fmt.Fprintf(&b, "Booked manual voucher with GUID %s.\n", report.Voucher.GUID)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
