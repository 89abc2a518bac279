package apiclient

import (
	"net/http"
)

// TokenSource supplies the bearer token for outgoing requests. An empty
// token means the request goes out without credentials.
type TokenSource interface {
	Token() string
}

// bearerTransport attaches the current token to every request. The token is
// read at send time, so a login or logout between calls is picked up.
type bearerTransport struct {
	base   http.RoundTripper
	tokens TokenSource
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.tokens == nil {
		return t.base.RoundTrip(req)
	}
	token := t.tokens.Token()
	if token == "" {
		return t.base.RoundTrip(req)
	}
	// RoundTrippers must not modify the caller's request.
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+token)
	return t.base.RoundTrip(clone)
}
