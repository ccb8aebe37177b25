package port

import "errors"

var (
	// ErrUpstreamRequestFailed covers transport failures and non-success HTTP statuses.
	ErrUpstreamRequestFailed = errors.New("upstream request failed")
	// ErrProtocolViolation means Dinero answered with success but the payload is unusable.
	ErrProtocolViolation = errors.New("protocol violation")
	// ErrOrganizationNotFound means the configured organization is not visible to the API key.
	ErrOrganizationNotFound = errors.New("organization not found")
)
