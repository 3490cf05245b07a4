package emergency

import (
	"slices"
	"time"

	"github.com/jrsteele09/nuur-client/internal/errors"
)

type ReportType string

const (
	ReportFire     ReportType = "fire"
	ReportMedical  ReportType = "medical"
	ReportAccident ReportType = "accident"
	ReportSecurity ReportType = "security"
	ReportOther    ReportType = "other"
)

var ReportTypes = []ReportType{ReportFire, ReportMedical, ReportAccident, ReportSecurity, ReportOther}

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

type Status string

const (
	StatusPending      Status = "pending"
	StatusAcknowledged Status = "acknowledged"
	StatusResponding   Status = "responding"
	StatusResolved     Status = "resolved"
	StatusCancelled    Status = "cancelled"
)

var Statuses = []Status{StatusPending, StatusAcknowledged, StatusResponding, StatusResolved, StatusCancelled}

type MediaType string

const (
	MediaPhoto MediaType = "photo"
	MediaVideo MediaType = "video"
	MediaAudio MediaType = "audio"
)

var MediaTypes = []MediaType{MediaPhoto, MediaVideo, MediaAudio}

// DefaultNearbyRadiusKm is what the backend uses when radius_km is omitted.
const DefaultNearbyRadiusKm = 5.0

// NewReport is the body of POST /emergency/report.
type NewReport struct {
	ReportType  ReportType `json:"report_type"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	AddressText *string    `json:"address_text,omitempty"`
	Description *string    `json:"description,omitempty"`
	IsAnonymous bool       `json:"is_anonymous"`
	Severity    Severity   `json:"severity,omitempty"`
}

func (r NewReport) Validate() error {
	if !slices.Contains(ReportTypes, r.ReportType) {
		return errors.Invalidf("report type %q must be one of %v", r.ReportType, ReportTypes)
	}
	if r.Severity != "" && !slices.Contains(Severities, r.Severity) {
		return errors.Invalidf("severity %q must be one of %v", r.Severity, Severities)
	}
	if r.Latitude < -90 || r.Latitude > 90 || r.Longitude < -180 || r.Longitude > 180 {
		return errors.Invalidf("coordinates (%f, %f) out of range", r.Latitude, r.Longitude)
	}
	return nil
}

// StatusUpdate is the body of PUT /emergency/reports/{id}/status.
type StatusUpdate struct {
	Status      *Status `json:"status,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (u StatusUpdate) Validate() error {
	if u.Status != nil && !slices.Contains(Statuses, *u.Status) {
		return errors.Invalidf("status %q must be one of %v", *u.Status, Statuses)
	}
	return nil
}

func ValidateMediaType(t MediaType) error {
	if !slices.Contains(MediaTypes, t) {
		return errors.Invalidf("media type %q must be one of %v", t, MediaTypes)
	}
	return nil
}

type Report struct {
	ID          string     `json:"id"`
	UserID      *string    `json:"user_id,omitempty"`
	ReportType  ReportType `json:"report_type"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	AddressText *string    `json:"address_text,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      Status     `json:"status"`
	IsAnonymous bool       `json:"is_anonymous"`
	Severity    *Severity  `json:"severity,omitempty"`
	ReportedAt  time.Time  `json:"reported_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Media struct {
	ID            string    `json:"id"`
	ReportID      string    `json:"report_id"`
	MediaType     MediaType `json:"media_type"`
	FileURL       string    `json:"file_url"`
	FileSizeBytes *int64    `json:"file_size_bytes,omitempty"`
	UploadedAt    time.Time `json:"uploaded_at"`
}

// Detail is a Report with its attached media.
type Detail struct {
	Report
	Media []Media `json:"media"`
}

// MediaUpload is the payload returned after uploading report media.
type MediaUpload struct {
	Message string `json:"message"`
	FileURL string `json:"file_url"`
}
