package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jrsteele09/nuur-client/antitheft"
)

func (c *Client) SetupAntiTheft(ctx context.Context, s antitheft.Setup) (*Envelope[antitheft.Config], error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	cl, err := jsonCall(http.MethodPost, "/anti-theft/setup", s)
	if err != nil {
		return nil, err
	}
	return send[antitheft.Config](ctx, c, cl)
}

func (c *Client) GetAntiTheftConfig(ctx context.Context) (*Envelope[antitheft.Config], error) {
	return send[antitheft.Config](ctx, c, newCall(http.MethodGet, "/anti-theft/config"))
}

func (c *Client) TriggerAntiTheft(ctx context.Context, t antitheft.Trigger) (*Envelope[antitheft.Event], error) {
	cl, err := jsonCall(http.MethodPost, "/anti-theft/trigger", t)
	if err != nil {
		return nil, err
	}
	return send[antitheft.Event](ctx, c, cl)
}

func (c *Client) GetAntiTheftStatus(ctx context.Context) (*Envelope[antitheft.Status], error) {
	return send[antitheft.Status](ctx, c, newCall(http.MethodGet, "/anti-theft/status"))
}

func (c *Client) AddEventLocation(ctx context.Context, eventID string, p antitheft.LocationPoint) (*Envelope[Message], error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	cl, err := jsonCall(http.MethodPost, "/anti-theft/events/"+escape(eventID)+"/location", p)
	if err != nil {
		return nil, err
	}
	return send[Message](ctx, c, cl)
}

func (c *Client) DeactivateEvent(ctx context.Context, eventID string) (*Envelope[Message], error) {
	return send[Message](ctx, c, newCall(http.MethodPost, "/anti-theft/events/"+escape(eventID)+"/deactivate"))
}

// GetAntiTheftEvents lists past events; limit 0 uses the backend default.
func (c *Client) GetAntiTheftEvents(ctx context.Context, limit int) (*Envelope[[]antitheft.Event], error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return send[[]antitheft.Event](ctx, c, newCall(http.MethodGet, "/anti-theft/events").withQuery(q))
}
