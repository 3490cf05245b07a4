package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jrsteele09/nuur-client/internal/errors"
)

const (
	contentTypeJSON = "application/json"
	requestIDHeader = "X-Request-ID"
)

// call describes one logical request. It is rebuilt into a fresh
// *http.Request on every dispatch so the body can be replayed.
type call struct {
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
	bearer      string // overrides the session token when set
	public      bool   // a 401 means bad credentials, not an expired token
}

func newCall(method, path string) call {
	return call{method: method, path: path}
}

func jsonCall(method, path string, payload any) (call, error) {
	c := newCall(method, path)
	if payload == nil {
		return c, nil
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return call{}, errors.Wrapf(err, "encode %s %s", method, path)
	}
	c.body = body
	c.contentType = contentTypeJSON
	return c, nil
}

func (c call) withQuery(q url.Values) call {
	if len(q) > 0 {
		c.query = q
	}
	return c
}

func (c call) build(ctx context.Context, baseURL string) (*http.Request, error) {
	u := baseURL + c.path
	if len(c.query) > 0 {
		u += "?" + c.query.Encode()
	}

	var body io.Reader
	if c.body != nil {
		body = bytes.NewReader(c.body)
	}

	req, err := http.NewRequestWithContext(ctx, c.method, u, body)
	if err != nil {
		return nil, errors.Wrapf(err, "build %s %s", c.method, c.path)
	}

	req.Header.Set("Accept", contentTypeJSON)
	if c.contentType != "" {
		req.Header.Set("Content-Type", c.contentType)
	}
	return req, nil
}

func escape(id string) string {
	return url.PathEscape(id)
}

// pageQuery omits zero values, as the backend then applies its own defaults.
func pageQuery(limit, skip int) url.Values {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if skip > 0 {
		q.Set("skip", strconv.Itoa(skip))
	}
	return q
}
