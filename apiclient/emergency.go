package apiclient

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jrsteele09/nuur-client/emergency"
	"github.com/jrsteele09/nuur-client/internal/errors"
)

func (c *Client) ReportEmergency(ctx context.Context, r emergency.NewReport) (*Envelope[emergency.Report], error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	cl, err := jsonCall(http.MethodPost, "/emergency/report", r)
	if err != nil {
		return nil, err
	}
	return send[emergency.Report](ctx, c, cl)
}

func (c *Client) ListEmergencyReports(ctx context.Context, limit, skip int) (*Envelope[[]emergency.Report], error) {
	return send[[]emergency.Report](ctx, c, newCall(http.MethodGet, "/emergency/reports").withQuery(pageQuery(limit, skip)))
}

func (c *Client) GetEmergencyReport(ctx context.Context, reportID string) (*Envelope[emergency.Detail], error) {
	return send[emergency.Detail](ctx, c, newCall(http.MethodGet, "/emergency/reports/"+escape(reportID)))
}

func (c *Client) UpdateEmergencyStatus(ctx context.Context, reportID string, u emergency.StatusUpdate) (*Envelope[emergency.Report], error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}
	cl, err := jsonCall(http.MethodPut, "/emergency/reports/"+escape(reportID)+"/status", u)
	if err != nil {
		return nil, err
	}
	return send[emergency.Report](ctx, c, cl)
}

// UploadEmergencyMedia attaches a file to a report. The file is buffered so
// the upload can be replayed after a token refresh.
func (c *Client) UploadEmergencyMedia(ctx context.Context, reportID, filename string, file io.Reader, mediaType emergency.MediaType) (*Envelope[emergency.MediaUpload], error) {
	if err := emergency.ValidateMediaType(mediaType); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, errors.Wrapf(err, "UploadEmergencyMedia form file")
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, errors.Wrapf(err, "UploadEmergencyMedia read %s", filename)
	}
	if err := mw.WriteField("media_type", string(mediaType)); err != nil {
		return nil, errors.Wrapf(err, "UploadEmergencyMedia media_type")
	}
	if err := mw.Close(); err != nil {
		return nil, errors.Wrapf(err, "UploadEmergencyMedia close")
	}

	cl := newCall(http.MethodPost, "/emergency/reports/"+escape(reportID)+"/media")
	cl.body = buf.Bytes()
	cl.contentType = mw.FormDataContentType()
	return send[emergency.MediaUpload](ctx, c, cl)
}

// GetNearbyEmergencies lists open reports around a point. radiusKm 0 uses the
// backend default.
func (c *Client) GetNearbyEmergencies(ctx context.Context, latitude, longitude, radiusKm float64) (*Envelope[[]emergency.Report], error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	if radiusKm > 0 {
		q.Set("radius_km", strconv.FormatFloat(radiusKm, 'f', -1, 64))
	}
	return send[[]emergency.Report](ctx, c, newCall(http.MethodGet, "/emergency/nearby").withQuery(q))
}
