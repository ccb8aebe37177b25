package infrastructure

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"dineroCheck/internal/modules/dinero/application/port"
	"dineroCheck/internal/modules/dinero/domain"
	"dineroCheck/internal/shared/auth"
	"dineroCheck/internal/shared/normalization"
)

const (
	tokenOperation  = "failed to obtain an access token from Dinero"
	tokenScope      = "read write"
	bearerTokenType = "Bearer"
)

// TokenHTTPClient implements TokenExchanger against the Dinero authorization server.
type TokenHTTPClient struct {
	rest *RESTClient
	now  func() time.Time
}

// NewTokenHTTPClient creates a token client posting to the full token URL.
func NewTokenHTTPClient(tokenURL string, timeout time.Duration, client *http.Client) *TokenHTTPClient {
	return &TokenHTTPClient{rest: NewRESTClient(tokenURL, timeout, client), now: time.Now}
}

// Exchange performs the password grant Dinero uses for API keys: the key is sent as both
// username and password, the client id and secret as HTTP Basic credentials.
func (c *TokenHTTPClient) Exchange(ctx context.Context, creds domain.Credentials) (*oauth2.Token, error) {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("scope", tokenScope)
	form.Set("username", creds.APIKey)
	form.Set("password", creds.APIKey)

	req, err := c.rest.NewRequest(ctx, http.MethodPost, "", strings.NewReader(form.Encode()))
	if err != nil {
		slog.Error("token request build failed", slog.Any("error", err))
		return nil, err
	}
	req.Header.Set("Authorization", auth.BasicAuthorization(creds.ClientID, creds.ClientSecret))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	slog.Info("token exchange start", slog.String("url", req.URL.String()))
	body, err := c.rest.Execute(req, tokenOperation)
	if err != nil {
		return nil, err
	}

	payload, err := decodeJSON(body, tokenOperation)
	if err != nil {
		return nil, err
	}
	fields, ok := payload.(map[string]any)
	if !ok {
		return nil, protocolViolation(tokenOperation, "token response is not a JSON object")
	}

	accessToken := normalization.LookupString(fields, accessTokenKeys...)
	if accessToken == "" {
		return nil, protocolViolation(tokenOperation, "token response did not include an access token")
	}

	// API calls always use bearer auth, whatever token_type the server reports.
	token := &oauth2.Token{
		AccessToken:  accessToken,
		TokenType:    bearerTokenType,
		RefreshToken: normalization.LookupString(fields, refreshTokenKeys...),
	}
	if value, ok := normalization.Lookup(fields, expiresInKeys...); ok {
		if seconds, ok := normalization.AsInt64(value); ok && seconds > 0 {
			token.Expiry = c.now().Add(time.Duration(seconds) * time.Second)
		}
	}

	if info, ok := auth.InspectAccessToken(accessToken); ok {
		slog.Debug("access token claims", slog.String("subject", info.Subject), slog.String("issuer", info.Issuer), slog.Time("expiresAt", info.ExpiresAt))
	}
	slog.Info("token exchange succeeded", slog.String("reportedTokenType", normalization.LookupString(fields, tokenTypeKeys...)), slog.Time("expiry", token.Expiry))

	return token, nil
}

var _ port.TokenExchanger = (*TokenHTTPClient)(nil)
