package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"dineroCheck/internal/modules/dinero/application/port"
	"dineroCheck/internal/modules/dinero/domain"
)

// ErrBookingUnavailable is returned by VerifyAndPost when no voucher adapters were configured.
var ErrBookingUnavailable = errors.New("voucher creation is not configured")

// ConnectivityCheck runs the verification sequence. Every step consumes the previous step's
// output; the first failure stops the run and nothing already created is rolled back.
type ConnectivityCheck struct {
	tokens        port.TokenExchanger
	organizations port.OrganizationVerifier
	creator       port.VoucherCreator
	booker        port.VoucherBooker
}

// NewConnectivityCheck wires the check. creator and booker may be nil for verify-only runs.
func NewConnectivityCheck(tokens port.TokenExchanger, organizations port.OrganizationVerifier, creator port.VoucherCreator, booker port.VoucherBooker) *ConnectivityCheck {
	return &ConnectivityCheck{tokens: tokens, organizations: organizations, creator: creator, booker: booker}
}

// Verify exchanges the credentials for a token and confirms the organization is reachable.
// On failure the returned report holds whatever completed before the error.
func (uc *ConnectivityCheck) Verify(ctx context.Context, creds domain.Credentials) (*domain.Report, error) {
	report := &domain.Report{Mode: domain.ModeVerify, OrganizationID: creds.OrganizationID}
	if _, err := uc.connect(ctx, creds, report); err != nil {
		return report, err
	}
	return report, nil
}

// VerifyAndPost verifies, then creates the manual voucher and books it with the timestamp Dinero
// returned at creation. A voucher without guid or timestamp is never booked.
func (uc *ConnectivityCheck) VerifyAndPost(ctx context.Context, creds domain.Credentials, voucher domain.ManualVoucher) (*domain.Report, error) {
	report := &domain.Report{Mode: domain.ModePost, OrganizationID: creds.OrganizationID}
	if uc.creator == nil || uc.booker == nil {
		return report, ErrBookingUnavailable
	}

	token, err := uc.connect(ctx, creds, report)
	if err != nil {
		return report, err
	}

	created, err := uc.creator.Create(ctx, creds, token, voucher)
	if err != nil {
		slog.Warn("voucher create failed", slog.Any("error", err))
		return report, err
	}
	report.Voucher = created

	if err := created.ReadyToBook(); err != nil {
		slog.Warn("voucher not bookable", slog.String("guid", created.GUID), slog.Any("error", err))
		return report, fmt.Errorf("%w: %w", port.ErrProtocolViolation, err)
	}

	if _, err := uc.booker.Book(ctx, creds, token, created.GUID, created.Timestamp); err != nil {
		slog.Warn("voucher book failed", slog.String("guid", created.GUID), slog.Any("error", err))
		return report, err
	}
	report.Booked = true
	return report, nil
}
