package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"dineroCheck/internal/modules/dinero/application/port"
	"dineroCheck/internal/modules/dinero/domain"
	"dineroCheck/internal/modules/dinero/infrastructure/dinerotest"
)

func testManualVoucher(t *testing.T) domain.ManualVoucher {
	t.Helper()
	date, err := domain.ParseVoucherDate("2024-05-01")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	voucher, err := domain.NewManualVoucher(date, "Smoke test", decimal.RequireFromString("125.50"))
	if err != nil {
		t.Fatalf("build voucher: %v", err)
	}
	return voucher
}

func TestVoucherHTTPClient_CreateSendsPayload(t *testing.T) {
	t.Parallel()

	srv := dinerotest.NewServer(t)
	client := NewVoucherHTTPClient(srv.APIBaseURL(), testTimeout, nil)

	created, err := client.Create(context.Background(), testCredentials(), testToken(), testManualVoucher(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.GUID != "g1" || created.Timestamp != "t1" || created.Number != nil {
		t.Fatalf("unexpected voucher: %#v", created)
	}

	requests := srv.RequestsFor(dinerotest.RouteCreateVoucher)
	if len(requests) != 1 {
		t.Fatalf("expected one create request, got %d", len(requests))
	}
	if requests[0].Path != "/v1/12345/vouchers/manuel" {
		t.Fatalf("unexpected path: %s", requests[0].Path)
	}

	var body map[string]any
	decoder := json.NewDecoder(strings.NewReader(requests[0].Body))
	decoder.UseNumber()
	if err := decoder.Decode(&body); err != nil {
		t.Fatalf("create body is not json: %v", err)
	}
	if body["voucherDate"] != "2024-05-01" {
		t.Fatalf("unexpected voucherDate: %v", body["voucherDate"])
	}
	lines, ok := body["lines"].([]any)
	if !ok || len(lines) != 1 {
		t.Fatalf("unexpected lines: %v", body["lines"])
	}
	line := lines[0].(map[string]any)
	if line["accountNumber"] != json.Number("55000") || line["balancingAccountNumber"] != json.Number("60140") {
		t.Fatalf("unexpected accounts: %v", line)
	}
	if line["amount"] != json.Number("125.5") {
		t.Fatalf("amount must be a JSON number, got %#v", line["amount"])
	}
	if line["description"] != "Smoke test" {
		t.Fatalf("unexpected description: %v", line["description"])
	}
	for _, key := range []string{"accountVatCode", "balancingAccountVatCode"} {
		value, present := line[key]
		if !present || value != nil {
			t.Fatalf("%s must be sent as null, got %v (present=%v)", key, value, present)
		}
	}
}

func TestVoucherHTTPClient_CreateToleratesKeyCasing(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"pascal":       `{"Guid":"g1","Timestamp":"t1","VoucherNumber":42}`,
		"voucher guid": `{"voucherGuid":"g1","timeStamp":"t1","voucherNumber":"42"}`,
		"upper alias":  `{"VoucherGuid":"g1","TimeStamp":"t1","voucherNumber":42}`,
	}
	for name, body := range cases {
		srv := dinerotest.NewServer(t)
		srv.SetReply(dinerotest.RouteCreateVoucher, http.StatusCreated, body)

		created, err := NewVoucherHTTPClient(srv.APIBaseURL(), testTimeout, nil).Create(context.Background(), testCredentials(), testToken(), testManualVoucher(t))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if created.GUID != "g1" || created.Timestamp != "t1" {
			t.Fatalf("%s: unexpected voucher: %#v", name, created)
		}
		if created.Number == nil || *created.Number != 42 {
			t.Fatalf("%s: expected voucher number 42, got %v", name, created.Number)
		}
	}
}

func TestVoucherHTTPClient_CreateMissingGUID(t *testing.T) {
	t.Parallel()

	srv := dinerotest.NewServer(t)
	srv.SetReply(dinerotest.RouteCreateVoucher, http.StatusOK, `{"timestamp":"t1"}`)

	_, err := NewVoucherHTTPClient(srv.APIBaseURL(), testTimeout, nil).Create(context.Background(), testCredentials(), testToken(), testManualVoucher(t))
	if !errors.Is(err, port.ErrProtocolViolation) || !errors.Is(err, domain.ErrVoucherMissingGUID) {
		t.Fatalf("expected protocol violation for missing guid, got %v", err)
	}
}

func TestVoucherHTTPClient_CreateUpstreamFailure(t *testing.T) {
	t.Parallel()

	srv := dinerotest.NewServer(t)
	srv.SetReply(dinerotest.RouteCreateVoucher, http.StatusBadRequest, `{"validationErrors":{"lines":"invalid"}}`)

	_, err := NewVoucherHTTPClient(srv.APIBaseURL(), testTimeout, nil).Create(context.Background(), testCredentials(), testToken(), testManualVoucher(t))
	if !errors.Is(err, port.ErrUpstreamRequestFailed) {
		t.Fatalf("expected upstream failure, got %v", err)
	}
}

func TestVoucherHTTPClient_BookEmptyBody(t *testing.T) {
	t.Parallel()

	srv := dinerotest.NewServer(t)
	result, err := NewVoucherHTTPClient(srv.APIBaseURL(), testTimeout, nil).Book(context.Background(), testCredentials(), testToken(), "g1", "t1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Fatalf("expected nil result for empty body, got %v", result)
	}

	requests := srv.RequestsFor(dinerotest.RouteBookVoucher)
	if len(requests) != 1 || requests[0].Path != "/v1/12345/vouchers/manuel/g1/book" {
		t.Fatalf("unexpected book requests: %#v", requests)
	}
	if requests[0].Body != `{"timestamp":"t1"}` {
		t.Fatalf("unexpected book body: %s", requests[0].Body)
	}
}

func TestVoucherHTTPClient_BookWithBody(t *testing.T) {
	t.Parallel()

	srv := dinerotest.NewServer(t)
	srv.SetReply(dinerotest.RouteBookVoucher, http.StatusOK, `{"Guid":"g1","Timestamp":"t2"}`)

	result, err := NewVoucherHTTPClient(srv.APIBaseURL(), testTimeout, nil).Book(context.Background(), testCredentials(), testToken(), "g1", "t1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result["Timestamp"] != "t2" {
		t.Fatalf("unexpected result: %v", result)
	}
}

func TestVoucherHTTPClient_BookStaleTimestamp(t *testing.T) {
	t.Parallel()

	srv := dinerotest.NewServer(t)
	srv.SetReply(dinerotest.RouteBookVoucher, http.StatusConflict, `{"message":"timestamp is outdated"}`)

	_, err := NewVoucherHTTPClient(srv.APIBaseURL(), testTimeout, nil).Book(context.Background(), testCredentials(), testToken(), "g1", "stale")
	if !errors.Is(err, port.ErrUpstreamRequestFailed) {
		t.Fatalf("expected upstream failure, got %v", err)
	}
	if got := len(srv.RequestsFor(dinerotest.RouteBookVoucher)); got != 1 {
		t.Fatalf("stale booking must not be retried, saw %d requests", got)
	}
}

func TestVoucherHTTPClient_BookRequiresInputs(t *testing.T) {
	t.Parallel()

	srv := dinerotest.NewServer(t)
	client := NewVoucherHTTPClient(srv.APIBaseURL(), testTimeout, nil)

	if _, err := client.Book(context.Background(), testCredentials(), testToken(), "", "t1"); !errors.Is(err, domain.ErrVoucherMissingGUID) {
		t.Fatalf("expected missing guid error, got %v", err)
	}
	if _, err := client.Book(context.Background(), testCredentials(), testToken(), "g1", " "); !errors.Is(err, domain.ErrVoucherMissingTimestamp) {
		t.Fatalf("expected missing timestamp error, got %v", err)
	}
	if got := len(srv.Requests()); got != 0 {
		t.Fatalf("expected no requests, got %d", got)
	}
}
