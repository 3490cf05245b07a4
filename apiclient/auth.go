package apiclient

import (
	"context"
	"net/http"

	"github.com/jrsteele09/nuur-client/internal/errors"
	"github.com/jrsteele09/nuur-client/users"
)

func (c *Client) Register(ctx context.Context, r users.Registration) (*Envelope[users.User], error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	cl, err := jsonCall(http.MethodPost, "/auth/register", r)
	if err != nil {
		return nil, err
	}
	cl.public = true
	return send[users.User](ctx, c, cl)
}

func (c *Client) Login(ctx context.Context, creds users.Credentials) (*Envelope[users.LoginResult], error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	cl, err := jsonCall(http.MethodPost, "/auth/login", creds)
	if err != nil {
		return nil, err
	}
	cl.public = true
	return send[users.LoginResult](ctx, c, cl)
}

func (c *Client) Logout(ctx context.Context) (*Envelope[Message], error) {
	return send[Message](ctx, c, newCall(http.MethodPost, "/auth/logout"))
}

// SignIn logs in and stores the resulting session. When the login response
// does not embed the user, the profile is fetched with the new access token.
func (c *Client) SignIn(ctx context.Context, creds users.Credentials) (*users.User, error) {
	env, err := c.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}
	if env.Data == nil || env.Data.AccessToken == "" || env.Data.RefreshToken == "" {
		return nil, errors.Wrapf(errors.ErrInvalidToken, "login response without tokens")
	}
	res := env.Data

	user := res.User
	if user == nil {
		cl := newCall(http.MethodGet, "/users/me")
		cl.bearer = res.AccessToken
		cl.public = true
		profile, err := send[users.User](ctx, c, cl)
		if err != nil {
			return nil, errors.Wrapf(err, "SignIn fetch profile")
		}
		if err := profile.Err(); err != nil {
			return nil, err
		}
		if profile.Data == nil {
			return nil, errors.Wrapf(errors.ErrNotFound, "SignIn empty profile")
		}
		user = profile.Data
	}

	if err := c.session.SetAuth(user, res.AccessToken, res.RefreshToken); err != nil {
		return nil, err
	}
	c.log.Info().Str("user_id", user.ID).Msg("signed in")
	return user.Clone(), nil
}

// SignOut tells the backend to log out and then clears the session, even when
// the backend call fails. The backend error, if any, is returned.
func (c *Client) SignOut(ctx context.Context) error {
	_, callErr := c.Logout(ctx)
	if err := c.session.ClearAuth(); err != nil {
		return errors.Join(callErr, err)
	}
	return callErr
}
