package infrastructure

import (
	"dineroCheck/internal/modules/dinero/domain"
	"dineroCheck/internal/shared/normalization"
)

// Dinero is inconsistent about key casing between endpoints and API versions.
var (
	organizationIDKeys   = []string{"id", "Id"}
	organizationNameKeys = []string{"name", "Name"}
	organizationProKeys  = []string{"isPro", "IsPro"}

	voucherGUIDKeys      = []string{"guid", "Guid", "voucherGuid", "VoucherGuid"}
	voucherTimestampKeys = []string{"timestamp", "Timestamp", "timeStamp", "TimeStamp"}
	voucherNumberKeys    = []string{"voucherNumber", "VoucherNumber"}

	accessTokenKeys  = []string{"access_token"}
	tokenTypeKeys    = []string{"token_type"}
	refreshTokenKeys = []string{"refresh_token"}
	expiresInKeys    = []string{"expires_in"}
)

func decodeOrganization(payload map[string]any) domain.Organization {
	org := domain.Organization{
		ID:   normalization.LookupString(payload, organizationIDKeys...),
		Name: normalization.LookupString(payload, organizationNameKeys...),
	}
	if value, ok := normalization.Lookup(payload, organizationProKeys...); ok {
		org.IsPro = normalization.AsBool(value)
	}
	return org
}

func decodeVoucher(payload map[string]any) domain.Voucher {
	voucher := domain.Voucher{
		GUID:      normalization.LookupString(payload, voucherGUIDKeys...),
		Timestamp: normalization.LookupString(payload, voucherTimestampKeys...),
	}
	if value, ok := normalization.Lookup(payload, voucherNumberKeys...); ok {
		if number, ok := normalization.AsInt64(value); ok {
			voucher.Number = &number
		}
	}
	return voucher
}
