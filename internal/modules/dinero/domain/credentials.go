package domain

// Credentials identify the API client and the organization every call runs under.
type Credentials struct {
	ClientID       string
	ClientSecret   string
	APIKey         string
	OrganizationID string
}
