package apiclient

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/jrsteele09/nuur-client/sessions"
	"golang.org/x/oauth2"
)

// marker is the per-request "already retried" flag. A logical request and its
// single replay share one marker and one request ID.
type marker struct {
	id      string
	retried bool
}

type markerKey struct{}

// withMarker returns the marker carried by ctx, attaching a new one if absent.
func withMarker(ctx context.Context) (context.Context, *marker) {
	if m, ok := ctx.Value(markerKey{}).(*marker); ok {
		return ctx, m
	}
	m := &marker{id: uuid.NewString()}
	return context.WithValue(ctx, markerKey{}, m), m
}

// authorize is the outbound stage: attach the session's access token when
// there is one. It never fails.
func authorize(req *http.Request, st sessions.State) {
	if st.AccessToken == "" {
		return
	}
	setBearer(req, st.AccessToken)
}

func setBearer(req *http.Request, accessToken string) {
	(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}).SetAuthHeader(req)
}

// inbound actions
type action int

const (
	passThrough action = iota
	recoverSession
	recoveryFailed
)

// classify is the inbound stage decision for one response.
func classify(resp *http.Response, m *marker, public bool) action {
	if resp.StatusCode != http.StatusUnauthorized || public {
		return passThrough
	}
	if m.retried {
		return recoveryFailed
	}
	return recoverSession
}
