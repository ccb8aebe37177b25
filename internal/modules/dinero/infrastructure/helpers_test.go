package infrastructure

import (
	"time"

	"golang.org/x/oauth2"

	"dineroCheck/internal/modules/dinero/domain"
	"dineroCheck/internal/modules/dinero/infrastructure/dinerotest"
)

const testTimeout = 5 * time.Second

func testCredentials() domain.Credentials {
	return domain.Credentials{
		ClientID:       "client",
		ClientSecret:   "secret",
		APIKey:         "api-key",
		OrganizationID: dinerotest.OrganizationID,
	}
}

func testToken() *oauth2.Token {
	return &oauth2.Token{AccessToken: dinerotest.AccessToken, TokenType: "bearer"}
}
