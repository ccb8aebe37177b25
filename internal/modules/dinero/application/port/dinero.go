package port

import (
	"context"

	"golang.org/x/oauth2"

	"dineroCheck/internal/modules/dinero/domain"
)

// TokenExchanger trades client credentials and the API key for an access token.
type TokenExchanger interface {
	Exchange(ctx context.Context, creds domain.Credentials) (*oauth2.Token, error)
}

// OrganizationVerifier confirms the configured organization is reachable with the token.
type OrganizationVerifier interface {
	Verify(ctx context.Context, creds domain.Credentials, token *oauth2.Token) (*domain.Organization, error)
}

// VoucherCreator creates a manual voucher in the organization.
type VoucherCreator interface {
	Create(ctx context.Context, creds domain.Credentials, token *oauth2.Token, voucher domain.ManualVoucher) (*domain.Voucher, error)
}

// VoucherBooker books a previously created manual voucher. The timestamp is Dinero's
// concurrency token; a stale one is rejected upstream and must not be retried around.
type VoucherBooker interface {
	Book(ctx context.Context, creds domain.Credentials, token *oauth2.Token, guid, timestamp string) (map[string]any, error)
}

// RunPublisher emits the audit record of a finished run.
type RunPublisher interface {
	Publish(ctx context.Context, result domain.RunResult) error
}
