package usecase

import (
	"context"
	"log/slog"

	"golang.org/x/oauth2"

	"dineroCheck/internal/modules/dinero/domain"
)

func (uc *ConnectivityCheck) connect(ctx context.Context, creds domain.Credentials, report *domain.Report) (*oauth2.Token, error) {
	token, err := uc.tokens.Exchange(ctx, creds)
	if err != nil {
		slog.Warn("token exchange failed", slog.Any("error", err))
		return nil, err
	}

	org, err := uc.organizations.Verify(ctx, creds, token)
	if err != nil {
		slog.Warn("organization verification failed", slog.String("organizationId", creds.OrganizationID), slog.Any("error", err))
		return nil, err
	}
	report.Organization = *org
	return token, nil
}
