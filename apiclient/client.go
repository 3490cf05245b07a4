// Package apiclient is the REST client for the NuuR backend. Every request
// carries the session's access token; a 401 triggers a single refresh
// exchange and replay before the session is forced back to anonymous.
package apiclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jrsteele09/nuur-client/internal/config"
	"github.com/jrsteele09/nuur-client/internal/errors"
	"github.com/jrsteele09/nuur-client/sessions"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// Navigator performs the "go to the login screen" side effect after the
// session has been forcibly cleared.
type Navigator interface {
	RedirectToLogin(path string)
}

type NavigatorFunc func(path string)

func (f NavigatorFunc) RedirectToLogin(path string) {
	f(path)
}

type Client struct {
	baseURL    string
	loginPath  string
	httpClient *http.Client
	session    *sessions.Store
	navigator  Navigator
	log        zerolog.Logger

	coalesce       bool
	refreshes      singleflight.Group
	refreshTimeout time.Duration
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

func WithNavigator(n Navigator) Option {
	return func(c *Client) {
		c.navigator = n
	}
}

// WithRefreshCoalescing makes concurrent 401s share one in-flight refresh
// exchange instead of each performing their own.
func WithRefreshCoalescing() Option {
	return func(c *Client) {
		c.coalesce = true
	}
}

func New(cfg config.ClientConfig, session *sessions.Store, opts ...Option) *Client {
	c := &Client{
		baseURL:        cfg.GetAPIBaseURL(),
		loginPath:      cfg.GetLoginPath(),
		session:        session,
		log:            log.Logger,
		refreshTimeout: cfg.GetHTTPTimeout(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: cfg.GetHTTPTimeout()}
	}
	if c.navigator == nil {
		c.navigator = NavigatorFunc(func(path string) {
			c.log.Warn().Str("path", path).Msg("session ended, sign in again")
		})
	}
	return c
}

// Session returns the store the client reads credentials from.
func (c *Client) Session() *sessions.Store {
	return c.session
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// do runs cl through the full pipeline and returns the final response.
func (c *Client) do(ctx context.Context, cl call) (*http.Response, error) {
	ctx, m := withMarker(ctx)
	return c.dispatch(ctx, cl, m)
}

func (c *Client) dispatch(ctx context.Context, cl call, m *marker) (*http.Response, error) {
	req, err := cl.build(ctx, c.baseURL)
	if err != nil {
		return nil, err
	}
	authorize(req, c.session.Current())
	if cl.bearer != "" {
		setBearer(req, cl.bearer)
	}
	req.Header.Set(requestIDHeader, m.id)

	l := c.log.With().Str("request_id", m.id).Str("method", cl.method).Str("path", cl.path).Logger()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		l.Debug().Err(err).Msg("transport error")
		return nil, fmt.Errorf("%w: %s %s: %w", errors.ErrTransport, cl.method, cl.path, err)
	}
	l.Debug().Int("status", resp.StatusCode).Bool("replay", m.retried).Msg("response")

	switch classify(resp, m, cl.public) {
	case passThrough:
		return resp, nil
	case recoveryFailed:
		l.Warn().Msg("request denied again after refresh")
		c.forceLogout()
		return resp, nil
	}

	m.retried = true
	if c.session.Current().RefreshToken == "" {
		l.Debug().Msg("401 without a refresh token")
		c.forceLogout()
		return resp, nil
	}
	drain(resp)

	accessToken, err := c.refresh(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			l.Debug().Err(ctxErr).Msg("gave up waiting for token refresh")
			return nil, fmt.Errorf("%s %s: %w", cl.method, cl.path, ctxErr)
		}
		return nil, err
	}

	cl.bearer = accessToken
	return c.dispatch(ctx, cl, m)
}

// forceLogout clears the session and sends the user to the login entry point.
func (c *Client) forceLogout() {
	if err := c.session.ClearAuth(); err != nil {
		c.log.Error().Err(err).Msg("failed to clear session")
	}
	c.navigator.RedirectToLogin(c.loginPath)
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

// send dispatches cl and decodes the response into an envelope.
func send[T any](ctx context.Context, c *Client, cl call) (*Envelope[T], error) {
	resp, err := c.do(ctx, cl)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s %s: %w", errors.ErrTransport, cl.method, cl.path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newHTTPError(resp, body)
	}
	return decodeEnvelope[T](body)
}

// NoContent is the data type of operations that return nothing useful.
type NoContent struct{}

// Message is the payload of endpoints that answer with {"message": "..."}.
type Message struct {
	Message string `json:"message"`
}
