// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import "net/http"

// bearerTransport adds an Authorization header to every request.
type bearerTransport struct {
	token string
	base  http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("Authorization", "Bearer "+t.token)
	return t.base.RoundTrip(r)
}

// WithBearer returns a copy of client that authenticates with token. An
// empty token returns client unchanged.
func WithBearer(client *http.Client, token string) *http.Client {
	if token == "" {
		return client
	}
	if client == nil {
		client = http.DefaultClient
	}
	base := client.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c := *client
	c.Transport = &bearerTransport{token: token, base: base}
	return &c
}
