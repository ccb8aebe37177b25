package infrastructure

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"dineroCheck/internal/modules/dinero/application/port"
	"dineroCheck/internal/modules/dinero/domain"
	"dineroCheck/internal/modules/dinero/infrastructure/dinerotest"
)

func TestOrganizationHTTPClient_ListFindsMatch(t *testing.T) {
	t.Parallel()

	srv := dinerotest.NewServer(t)
	client := NewOrganizationHTTPClient(srv.APIBaseURL(), testTimeout, nil, domain.LookupList)

	org, err := client.Verify(context.Background(), testCredentials(), testToken())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if org.ID != "12345" || org.Name != "Acme" || !org.IsPro {
		t.Fatalf("unexpected organization: %#v", org)
	}

	requests := srv.RequestsFor(dinerotest.RouteOrganizations)
	if len(requests) != 1 {
		t.Fatalf("expected one list request, got %d", len(requests))
	}
	req := requests[0]
	if req.RawQuery != "fields=id%2Cname%2CisPro" {
		t.Fatalf("unexpected query: %s", req.RawQuery)
	}
	if got := req.Header.Get("Authorization"); got != "Bearer abc" {
		t.Fatalf("unexpected authorization: %s", got)
	}
	if got := req.Header.Get("x-api-key"); got != "api-key" {
		t.Fatalf("unexpected api key header: %s", got)
	}
}

func TestOrganizationHTTPClient_ListMatchesCaseInsensitively(t *testing.T) {
	t.Parallel()

	srv := dinerotest.NewServer(t)
	srv.SetReply(dinerotest.RouteOrganizations, http.StatusOK, `[{"Id":"ORG-ABC","Name":"Acme"}]`)
	creds := testCredentials()
	creds.OrganizationID = "org-abc"

	org, err := NewOrganizationHTTPClient(srv.APIBaseURL(), testTimeout, nil, domain.LookupList).Verify(context.Background(), creds, testToken())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if org.DisplayName() != "Acme" {
		t.Fatalf("unexpected organization: %#v", org)
	}
}

func TestOrganizationHTTPClient_ListWithoutMatch(t *testing.T) {
	t.Parallel()

	srv := dinerotest.NewServer(t)
	srv.SetReply(dinerotest.RouteOrganizations, http.StatusOK, `[{"id":1,"name":"Other"}]`)

	_, err := NewOrganizationHTTPClient(srv.APIBaseURL(), testTimeout, nil, domain.LookupList).Verify(context.Background(), testCredentials(), testToken())
	if !errors.Is(err, port.ErrOrganizationNotFound) {
		t.Fatalf("expected ErrOrganizationNotFound, got %v", err)
	}
}

func TestOrganizationHTTPClient_ListRequiresArray(t *testing.T) {
	t.Parallel()

	srv := dinerotest.NewServer(t)
	srv.SetReply(dinerotest.RouteOrganizations, http.StatusOK, `{"id":12345}`)

	_, err := NewOrganizationHTTPClient(srv.APIBaseURL(), testTimeout, nil, domain.LookupList).Verify(context.Background(), testCredentials(), testToken())
	if !errors.Is(err, port.ErrProtocolViolation) {
		t.Fatalf("expected protocol violation, got %v", err)
	}
}

func TestOrganizationHTTPClient_PathShape(t *testing.T) {
	t.Parallel()

	srv := dinerotest.NewServer(t)
	client := NewOrganizationHTTPClient(srv.APIBaseURL(), testTimeout, nil, domain.LookupPath)
	if client.Shape() != domain.LookupPath {
		t.Fatalf("unexpected shape: %s", client.Shape())
	}

	org, err := client.Verify(context.Background(), testCredentials(), testToken())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if org.Name != "Acme" {
		t.Fatalf("unexpected organization: %#v", org)
	}
	requests := srv.RequestsFor(dinerotest.RouteOrganization)
	if len(requests) != 1 || requests[0].Path != "/v1/12345/organization" {
		t.Fatalf("unexpected requests: %#v", requests)
	}
	if len(srv.RequestsFor(dinerotest.RouteOrganizations)) != 0 {
		t.Fatal("path shape must not list organizations")
	}
}

func TestOrganizationHTTPClient_PathShapeErrors(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		status int
		body   string
		want   error
	}{
		"not found":    {http.StatusNotFound, `{"message":"not found"}`, port.ErrUpstreamRequestFailed},
		"server error": {http.StatusInternalServerError, "", port.ErrUpstreamRequestFailed},
		"other id":     {http.StatusOK, `{"id":1,"name":"Other"}`, port.ErrOrganizationNotFound},
		"array":        {http.StatusOK, `[]`, port.ErrProtocolViolation},
	}
	for name, tc := range cases {
		srv := dinerotest.NewServer(t)
		srv.SetReply(dinerotest.RouteOrganization, tc.status, tc.body)

		_, err := NewOrganizationHTTPClient(srv.APIBaseURL(), testTimeout, nil, domain.LookupPath).Verify(context.Background(), testCredentials(), testToken())
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", name, tc.want, err)
		}
	}
}

func TestOrganizationHTTPClient_RejectedToken(t *testing.T) {
	t.Parallel()

	srv := dinerotest.NewServer(t)
	srv.SetAccessToken("something-else")

	_, err := NewOrganizationHTTPClient(srv.APIBaseURL(), testTimeout, nil, domain.LookupList).Verify(context.Background(), testCredentials(), testToken())
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401 StatusError, got %v", err)
	}
}
