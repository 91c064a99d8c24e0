package client

import (
	"net/http"

	"github.com/dmitrijs2005/noteapp/internal/common"
	"github.com/google/uuid"
)

// authTransport is the request/response step of every call: it attaches the
// bearer token and a request id, and turns a 401 into a session teardown.
type authTransport struct {
	base   http.RoundTripper
	client *HTTPClient
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	req = req.Clone(ctx)
	if token := t.client.bearer(ctx); token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		t.client.unauthorized(ctx, req)
	}
	return resp, nil
}
