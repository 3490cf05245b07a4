package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jrsteele09/nuur-client/internal/errors"
	"golang.org/x/sync/singleflight"
)

const refreshPath = "/auth/refresh"

type tokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type,omitempty"`
}

// refreshResponse accepts the bare token pair as well as one wrapped in an
// envelope.
type refreshResponse struct {
	tokenPair
	Data *tokenPair `json:"data,omitempty"`
}

func (r refreshResponse) pair() tokenPair {
	if r.AccessToken == "" && r.Data != nil {
		return *r.Data
	}
	return r.tokenPair
}

// refresh exchanges the stored refresh token for a new access token and
// stores the result. It returns the new access token.
//
// The exchange runs detached from ctx so a caller giving up cannot fail it
// for others; the caller only stops waiting. A failed exchange ends the
// session once, however many requests were waiting on it.
func (c *Client) refresh(ctx context.Context) (string, error) {
	run := func() (any, error) {
		rctx, cancel := c.refreshContext(ctx)
		defer cancel()
		token, err := c.exchange(rctx)
		if err != nil {
			c.log.Warn().Err(err).Msg("token refresh failed")
			c.forceLogout()
			return "", err
		}
		return token, nil
	}

	var results <-chan singleflight.Result
	if c.coalesce {
		results = c.refreshes.DoChan("refresh", run)
	} else {
		ch := make(chan singleflight.Result, 1)
		go func() {
			v, err := run()
			ch <- singleflight.Result{Val: v, Err: err}
		}()
		results = ch
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-results:
		if res.Shared {
			c.log.Debug().Msg("joined in-flight token refresh")
		}
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (c *Client) refreshContext(ctx context.Context) (context.Context, context.CancelFunc) {
	detached := context.WithoutCancel(ctx)
	if c.refreshTimeout > 0 {
		return context.WithTimeout(detached, c.refreshTimeout)
	}
	return context.WithCancel(detached)
}

// exchange performs POST /auth/refresh. It bypasses the outbound stage: the
// expired access token is never sent.
func (c *Client) exchange(ctx context.Context) (string, error) {
	st := c.session.Current()
	if st.RefreshToken == "" {
		return "", fmt.Errorf("%w: %w", errors.ErrRefreshFailed, errors.ErrNoRefreshToken)
	}

	body, err := json.Marshal(map[string]string{"refresh_token": st.RefreshToken})
	if err != nil {
		return "", fmt.Errorf("%w: %w", errors.ErrRefreshFailed, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+refreshPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %w", errors.ErrRefreshFailed, err)
	}
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set("Accept", contentTypeJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errors.ErrRefreshFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errors.ErrRefreshFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %w", errors.ErrRefreshFailed, newHTTPError(resp, raw))
	}

	var rr refreshResponse
	if err := json.Unmarshal(raw, &rr); err != nil {
		return "", fmt.Errorf("%w: decode: %w", errors.ErrRefreshFailed, err)
	}
	pair := rr.pair()
	if pair.AccessToken == "" {
		return "", fmt.Errorf("%w: %w: response has no access token", errors.ErrRefreshFailed, errors.ErrInvalidToken)
	}
	if pair.RefreshToken == "" {
		pair.RefreshToken = st.RefreshToken
	}

	// Refresh responses carry no identity; keep the one we already have.
	cur := c.session.Current()
	if cur.User == nil {
		c.log.Warn().Msg("token refreshed with no signed-in user, session left unchanged")
		return pair.AccessToken, nil
	}
	if err := c.session.SetAuth(cur.User, pair.AccessToken, pair.RefreshToken); err != nil {
		return "", fmt.Errorf("%w: %w", errors.ErrRefreshFailed, err)
	}
	c.log.Info().Msg("access token refreshed")
	return pair.AccessToken, nil
}
