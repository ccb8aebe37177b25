package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"dineroCheck/internal/modules/dinero/application/port"
	"dineroCheck/internal/modules/dinero/domain"
	"dineroCheck/internal/shared/normalization"
)

const (
	organizationOperation = "failed to fetch organization details from Dinero"
	organizationFields    = "id,name,isPro"
)

// OrganizationHTTPClient implements OrganizationVerifier with one of the two lookup shapes.
type OrganizationHTTPClient struct {
	rest  *RESTClient
	shape domain.LookupShape
}

// NewOrganizationHTTPClient creates a client against the API base URL. Unknown shapes fall back to listing.
func NewOrganizationHTTPClient(baseURL string, timeout time.Duration, client *http.Client, shape domain.LookupShape) *OrganizationHTTPClient {
	if shape != domain.LookupPath {
		shape = domain.LookupList
	}
	return &OrganizationHTTPClient{rest: NewRESTClient(baseURL, timeout, client), shape: shape}
}

// Shape reports the lookup shape in use.
func (c *OrganizationHTTPClient) Shape() domain.LookupShape {
	return c.shape
}

func (c *OrganizationHTTPClient) Verify(ctx context.Context, creds domain.Credentials, token *oauth2.Token) (*domain.Organization, error) {
	slog.Info("organization lookup start", slog.String("organizationId", creds.OrganizationID), slog.String("shape", string(c.shape)))
	if c.shape == domain.LookupPath {
		return c.fetchByPath(ctx, creds, token)
	}
	return c.findInList(ctx, creds, token)
}

func (c *OrganizationHTTPClient) findInList(ctx context.Context, creds domain.Credentials, token *oauth2.Token) (*domain.Organization, error) {
	req, err := c.rest.NewAPIRequest(ctx, http.MethodGet, "organizations", creds, token, nil)
	if err != nil {
		slog.Error("organization list request build failed", slog.Any("error", err))
		return nil, err
	}
	values := url.Values{}
	values.Set("fields", organizationFields)
	req.URL.RawQuery = values.Encode()

	body, err := c.rest.Execute(req, organizationOperation)
	if err != nil {
		return nil, err
	}
	payload, err := decodeJSON(body, organizationOperation)
	if err != nil {
		return nil, err
	}
	items, ok := normalization.AsInterfaceSlice(payload)
	if !ok {
		return nil, protocolViolation(organizationOperation, "unexpected response while listing Dinero organizations")
	}

	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		org := decodeOrganization(entry)
		if org.MatchesID(creds.OrganizationID) {
			slog.Info("organization found", slog.String("organizationId", org.ID), slog.String("name", org.Name))
			return &org, nil
		}
	}

	slog.Warn("organization not listed", slog.String("organizationId", creds.OrganizationID), slog.Int("listed", len(items)))
	return nil, organizationNotFound(creds.OrganizationID)
}

func (c *OrganizationHTTPClient) fetchByPath(ctx context.Context, creds domain.Credentials, token *oauth2.Token) (*domain.Organization, error) {
	endpoint := url.PathEscape(creds.OrganizationID) + "/organization"
	req, err := c.rest.NewAPIRequest(ctx, http.MethodGet, endpoint, creds, token, nil)
	if err != nil {
		slog.Error("organization request build failed", slog.Any("error", err))
		return nil, err
	}

	body, err := c.rest.Execute(req, organizationOperation)
	if err != nil {
		return nil, err
	}
	payload, err := decodeJSON(body, organizationOperation)
	if err != nil {
		return nil, err
	}
	fields := normalization.MapFromPayload(payload)
	if fields == nil {
		return nil, protocolViolation(organizationOperation, "organization response is not a JSON object")
	}

	org := decodeOrganization(fields)
	if org.ID == "" {
		org.ID = creds.OrganizationID
	} else if !org.MatchesID(creds.OrganizationID) {
		return nil, organizationNotFound(creds.OrganizationID)
	}
	slog.Info("organization found", slog.String("organizationId", org.ID), slog.String("name", org.Name))
	return &org, nil
}

func organizationNotFound(id string) error {
	return fmt.Errorf("%w: organization %s was not returned by Dinero; ensure the API key belongs to the specified organization", port.ErrOrganizationNotFound, id)
}

var _ port.OrganizationVerifier = (*OrganizationHTTPClient)(nil)
