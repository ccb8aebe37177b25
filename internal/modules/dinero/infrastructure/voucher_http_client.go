package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"dineroCheck/internal/modules/dinero/application/port"
	"dineroCheck/internal/modules/dinero/domain"
	"dineroCheck/internal/shared/normalization"
)

const (
	createVoucherOperation = "failed to create a manual voucher in Dinero"
	bookVoucherOperation   = "failed to book the manual voucher in Dinero"
)

type manualVoucherPayload struct {
	VoucherDate string                     `json:"voucherDate"`
	Lines       []manualVoucherLinePayload `json:"lines"`
}

type manualVoucherLinePayload struct {
	Description             string      `json:"description"`
	AccountNumber           int         `json:"accountNumber"`
	BalancingAccountNumber  int         `json:"balancingAccountNumber"`
	Amount                  json.Number `json:"amount"`
	AccountVatCode          *string     `json:"accountVatCode"`
	BalancingAccountVatCode *string     `json:"balancingAccountVatCode"`
}

type bookVoucherPayload struct {
	Timestamp string `json:"timestamp"`
}

func newManualVoucherPayload(voucher domain.ManualVoucher) manualVoucherPayload {
	lines := make([]manualVoucherLinePayload, 0, len(voucher.Lines))
	for _, line := range voucher.Lines {
		lines = append(lines, manualVoucherLinePayload{
			Description:             line.Description,
			AccountNumber:           line.AccountNumber,
			BalancingAccountNumber:  line.BalancingAccountNumber,
			Amount:                  json.Number(line.Amount.String()),
			AccountVatCode:          line.AccountVatCode,
			BalancingAccountVatCode: line.BalancingAccountVatCode,
		})
	}
	return manualVoucherPayload{VoucherDate: voucher.VoucherDate.String(), Lines: lines}
}

// VoucherHTTPClient creates and books manual vouchers.
type VoucherHTTPClient struct {
	rest *RESTClient
}

func NewVoucherHTTPClient(baseURL string, timeout time.Duration, client *http.Client) *VoucherHTTPClient {
	return &VoucherHTTPClient{rest: NewRESTClient(baseURL, timeout, client)}
}

// Create posts a manual voucher and returns the identifier and timestamp needed to book it.
func (c *VoucherHTTPClient) Create(ctx context.Context, creds domain.Credentials, token *oauth2.Token, voucher domain.ManualVoucher) (*domain.Voucher, error) {
	if voucher.VoucherDate.IsZero() || len(voucher.Lines) == 0 {
		return nil, fmt.Errorf("%s: voucher date and at least one line are required", createVoucherOperation)
	}

	endpoint := url.PathEscape(creds.OrganizationID) + "/vouchers/manuel"
	req, err := c.rest.NewAPIRequest(ctx, http.MethodPost, endpoint, creds, token, newManualVoucherPayload(voucher))
	if err != nil {
		slog.Error("voucher create request build failed", slog.Any("error", err))
		return nil, err
	}

	slog.Info("voucher create start", slog.String("organizationId", creds.OrganizationID), slog.String("voucherDate", voucher.VoucherDate.String()))
	body, err := c.rest.Execute(req, createVoucherOperation)
	if err != nil {
		return nil, err
	}
	payload, err := decodeJSON(body, createVoucherOperation)
	if err != nil {
		return nil, err
	}
	fields := normalization.MapFromPayload(payload)
	if fields == nil {
		return nil, protocolViolation(createVoucherOperation, "voucher response is not a JSON object")
	}

	created := decodeVoucher(fields)
	if created.GUID == "" {
		return nil, fmt.Errorf("%s: %w: %w", createVoucherOperation, port.ErrProtocolViolation, domain.ErrVoucherMissingGUID)
	}
	slog.Info("voucher created", slog.String("guid", created.GUID), slog.String("timestamp", created.Timestamp))
	return &created, nil
}

// Book finalizes a voucher. An empty success body yields a nil result.
func (c *VoucherHTTPClient) Book(ctx context.Context, creds domain.Credentials, token *oauth2.Token, guid, timestamp string) (map[string]any, error) {
	guid = strings.TrimSpace(guid)
	if guid == "" {
		return nil, fmt.Errorf("%s: %w: %w", bookVoucherOperation, port.ErrProtocolViolation, domain.ErrVoucherMissingGUID)
	}
	if strings.TrimSpace(timestamp) == "" {
		return nil, fmt.Errorf("%s: %w: %w", bookVoucherOperation, port.ErrProtocolViolation, domain.ErrVoucherMissingTimestamp)
	}

	endpoint := url.PathEscape(creds.OrganizationID) + "/vouchers/manuel/" + url.PathEscape(guid) + "/book"
	req, err := c.rest.NewAPIRequest(ctx, http.MethodPost, endpoint, creds, token, bookVoucherPayload{Timestamp: timestamp})
	if err != nil {
		slog.Error("voucher book request build failed", slog.Any("error", err))
		return nil, err
	}

	slog.Info("voucher book start", slog.String("guid", guid))
	body, err := c.rest.Execute(req, bookVoucherOperation)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		slog.Info("voucher booked", slog.String("guid", guid))
		return nil, nil
	}

	payload, err := decodeJSON(body, bookVoucherOperation)
	if err != nil {
		return nil, err
	}
	slog.Info("voucher booked", slog.String("guid", guid))
	if fields := normalization.MapFromPayload(payload); fields != nil {
		return fields, nil
	}
	return map[string]any{"value": payload}, nil
}

var (
	_ port.VoucherCreator = (*VoucherHTTPClient)(nil)
	_ port.VoucherBooker  = (*VoucherHTTPClient)(nil)
)
