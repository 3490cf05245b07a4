package apiclient

import (
	"context"
	"net/http"

	"github.com/jrsteele09/nuur-client/paths"
)

func (c *Client) StartPath(ctx context.Context, s paths.Start) (*Envelope[paths.Path], error) {
	cl, err := jsonCall(http.MethodPost, "/paths/start", s)
	if err != nil {
		return nil, err
	}
	return send[paths.Path](ctx, c, cl)
}

func (c *Client) StopPath(ctx context.Context, pathID string) (*Envelope[paths.Path], error) {
	return send[paths.Path](ctx, c, newCall(http.MethodPost, "/paths/"+escape(pathID)+"/stop"))
}

func (c *Client) AddPathPoints(ctx context.Context, pathID string, points []paths.Point) (*Envelope[Message], error) {
	if err := paths.ValidatePoints(points); err != nil {
		return nil, err
	}
	cl, err := jsonCall(http.MethodPost, "/paths/"+escape(pathID)+"/points", points)
	if err != nil {
		return nil, err
	}
	return send[Message](ctx, c, cl)
}

func (c *Client) ListPaths(ctx context.Context, limit, skip int) (*Envelope[[]paths.Path], error) {
	return send[[]paths.Path](ctx, c, newCall(http.MethodGet, "/paths").withQuery(pageQuery(limit, skip)))
}

func (c *Client) GetPath(ctx context.Context, pathID string) (*Envelope[paths.Detail], error) {
	return send[paths.Detail](ctx, c, newCall(http.MethodGet, "/paths/"+escape(pathID)))
}

func (c *Client) UpdatePath(ctx context.Context, pathID string, u paths.Update) (*Envelope[paths.Path], error) {
	cl, err := jsonCall(http.MethodPut, "/paths/"+escape(pathID), u)
	if err != nil {
		return nil, err
	}
	return send[paths.Path](ctx, c, cl)
}

func (c *Client) DeletePath(ctx context.Context, pathID string) (*Envelope[NoContent], error) {
	return send[NoContent](ctx, c, newCall(http.MethodDelete, "/paths/"+escape(pathID)))
}

func (c *Client) SharePath(ctx context.Context, pathID string, s paths.Share) (*Envelope[paths.ShareLink], error) {
	if s.ExpiresInHours == 0 {
		s.ExpiresInHours = paths.DefaultShareExpiryHours
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	cl, err := jsonCall(http.MethodPost, "/paths/"+escape(pathID)+"/share", s)
	if err != nil {
		return nil, err
	}
	return send[paths.ShareLink](ctx, c, cl)
}

// GetSharedPath fetches a path through its share token; no sign-in is needed.
func (c *Client) GetSharedPath(ctx context.Context, shareToken string) (*Envelope[paths.Detail], error) {
	return send[paths.Detail](ctx, c, newCall(http.MethodGet, "/paths/shared/"+escape(shareToken)))
}
