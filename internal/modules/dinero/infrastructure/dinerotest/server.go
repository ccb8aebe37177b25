// Package dinerotest provides an in-process fake of the Dinero authorization server and API.
package dinerotest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"

	"dineroCheck/internal/shared/auth"
)

// Route patterns served by the fake, as reported in RecordedRequest.Route.
const (
	RouteToken         = "/oauth/token"
	RouteOrganizations = "/v1/organizations"
	RouteOrganization  = "/v1/:org/organization"
	RouteCreateVoucher = "/v1/:org/vouchers/manuel"
	RouteBookVoucher   = "/v1/:org/vouchers/manuel/:guid/book"
)

// Default happy-path values.
const (
	AccessToken      = "abc"
	OrganizationID   = "12345"
	OrganizationName = "Acme"
	VoucherGUID      = "g1"
	VoucherTimestamp = "t1"
)

// Reply is a canned response. An empty Body is sent as no content.
type Reply struct {
	Status int
	Body   string
}

// RecordedRequest is a request as seen by the fake.
type RecordedRequest struct {
	Route    string
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     string
}

// Server is a fake Dinero. API routes require the bearer token in AccessToken unless it is empty.
type Server struct {
	*httptest.Server

	mu          sync.Mutex
	accessToken string
	replies     map[string]Reply
	requests    []RecordedRequest
}

// NewServer starts a fake that answers every route successfully; tb's cleanup closes it.
func NewServer(tb testing.TB) *Server {
	tb.Helper()

	s := &Server{
		accessToken: AccessToken,
		replies: map[string]Reply{
			RouteToken:         {Status: http.StatusOK, Body: `{"access_token":"abc","token_type":"bearer","expires_in":3600}`},
			RouteOrganizations: {Status: http.StatusOK, Body: `[{"id":99,"name":"Other"},{"Id":12345,"Name":"Acme","IsPro":true}]`},
			RouteOrganization:  {Status: http.StatusOK, Body: `{"id":12345,"name":"Acme","isPro":true}`},
			RouteCreateVoucher: {Status: http.StatusOK, Body: `{"guid":"g1","timestamp":"t1"}`},
			RouteBookVoucher:   {Status: http.StatusOK},
		},
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(s.record)

	e.POST(RouteToken, s.respond)
	api := e.Group("/v1", s.requireBearer)
	api.GET("/organizations", s.respond)
	api.GET("/:org/organization", s.respond)
	api.POST("/:org/vouchers/manuel", s.respond)
	api.POST("/:org/vouchers/manuel/:guid/book", s.respond)

	s.Server = httptest.NewServer(e)
	tb.Cleanup(s.Close)
	return s
}

// TokenURL is the full token endpoint of the fake.
func (s *Server) TokenURL() string {
	return s.URL + RouteToken
}

// APIBaseURL is the API base the clients should be pointed at.
func (s *Server) APIBaseURL() string {
	return s.URL + "/v1"
}

// SetReply overrides the canned response of a route.
func (s *Server) SetReply(route string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[route] = Reply{Status: status, Body: body}
}

// SetAccessToken changes the bearer token API routes accept. Empty disables the check.
func (s *Server) SetAccessToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = token
}

// Requests returns a copy of everything received so far.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// RequestsFor returns the requests that hit route.
func (s *Server) RequestsFor(route string) []RecordedRequest {
	var out []RecordedRequest
	for _, req := range s.Requests() {
		if req.Route == route {
			out = append(out, req)
		}
	}
	return out
}

func (s *Server) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		body, _ := io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Route:    c.Path(),
			Method:   req.Method,
			Path:     req.URL.Path,
			RawQuery: req.URL.RawQuery,
			Header:   req.Header.Clone(),
			Body:     string(body),
		})
		s.mu.Unlock()
		return next(c)
	}
}

func (s *Server) requireBearer(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.mu.Lock()
		expected := s.accessToken
		s.mu.Unlock()
		if expected != "" && auth.ExtractBearerToken(c.Request()) != expected {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid_token"})
		}
		return next(c)
	}
}

func (s *Server) respond(c echo.Context) error {
	s.mu.Lock()
	reply, ok := s.replies[c.Path()]
	s.mu.Unlock()
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	if reply.Body == "" {
		return c.NoContent(reply.Status)
	}
	return c.Blob(reply.Status, echo.MIMEApplicationJSON, []byte(reply.Body))
}
