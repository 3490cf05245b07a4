package apiclient

import (
	"context"
	"net/http"

	"github.com/jrsteele09/nuur-client/users"
)

func (c *Client) GetProfile(ctx context.Context) (*Envelope[users.User], error) {
	return send[users.User](ctx, c, newCall(http.MethodGet, "/users/me"))
}

// UpdateProfile updates the profile and, on success, patches the session user
// with the account the backend returned, or with u when it returned none.
func (c *Client) UpdateProfile(ctx context.Context, u users.ProfileUpdate) (*Envelope[users.User], error) {
	cl, err := jsonCall(http.MethodPut, "/users/me", u)
	if err != nil {
		return nil, err
	}
	env, err := send[users.User](ctx, c, cl)
	if err != nil || !env.Success {
		return env, err
	}
	patch := u.AsPatch()
	if env.Data != nil {
		patch = env.Data.AsPatch()
	}
	if err := c.session.UpdateUser(patch); err != nil {
		return env, err
	}
	return env, nil
}

func (c *Client) GetContacts(ctx context.Context) (*Envelope[[]users.Contact], error) {
	return send[[]users.Contact](ctx, c, newCall(http.MethodGet, "/users/contacts"))
}

func (c *Client) AddContact(ctx context.Context, nc users.NewContact) (*Envelope[users.Contact], error) {
	if err := nc.Validate(); err != nil {
		return nil, err
	}
	cl, err := jsonCall(http.MethodPost, "/users/contacts", nc)
	if err != nil {
		return nil, err
	}
	return send[users.Contact](ctx, c, cl)
}

func (c *Client) UpdateContact(ctx context.Context, id string, u users.ContactUpdate) (*Envelope[users.Contact], error) {
	cl, err := jsonCall(http.MethodPut, "/users/contacts/"+escape(id), u)
	if err != nil {
		return nil, err
	}
	return send[users.Contact](ctx, c, cl)
}

func (c *Client) DeleteContact(ctx context.Context, id string) (*Envelope[NoContent], error) {
	return send[NoContent](ctx, c, newCall(http.MethodDelete, "/users/contacts/"+escape(id)))
}
