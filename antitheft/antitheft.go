package antitheft

import (
	"time"

	"github.com/jrsteele09/nuur-client/internal/errors"
)

const (
	MinKeywordLength   = 4
	MinRecordingMinute = 1
	MaxRecordingMinute = 30
)

// EventStatus is the lifecycle state of an anti-theft event.
type EventStatus string

const (
	EventActive      EventStatus = "active"
	EventDeactivated EventStatus = "deactivated"
)

// Setup is the body of POST /anti-theft/setup.
type Setup struct {
	TriggerKeyword           string `json:"trigger_keyword"`
	IsEnabled                bool   `json:"is_enabled"`
	EnableGPSTracking        bool   `json:"enable_gps_tracking"`
	EnableAudioRecording     bool   `json:"enable_audio_recording"`
	EnableVideoRecording     bool   `json:"enable_video_recording"`
	TrackingIntervalSeconds  int    `json:"tracking_interval_seconds"`
	RecordingDurationMinutes int    `json:"recording_duration_minutes"`
}

// DefaultSetup mirrors the defaults the backend applies to omitted fields.
func DefaultSetup(keyword string) Setup {
	return Setup{
		TriggerKeyword:           keyword,
		IsEnabled:                true,
		EnableGPSTracking:        true,
		EnableAudioRecording:     true,
		TrackingIntervalSeconds:  30,
		RecordingDurationMinutes: 5,
	}
}

func (s Setup) Validate() error {
	if len(s.TriggerKeyword) < MinKeywordLength {
		return errors.Invalidf("trigger keyword must be at least %d characters", MinKeywordLength)
	}
	if s.RecordingDurationMinutes < MinRecordingMinute || s.RecordingDurationMinutes > MaxRecordingMinute {
		return errors.Invalidf("recording duration must be between %d and %d minutes", MinRecordingMinute, MaxRecordingMinute)
	}
	if s.TrackingIntervalSeconds <= 0 {
		return errors.Invalidf("tracking interval must be positive")
	}
	return nil
}

// Config is the stored anti-theft configuration.
type Config struct {
	ID                       string    `json:"id"`
	UserID                   string    `json:"user_id"`
	IsEnabled                bool      `json:"is_enabled"`
	EnableGPSTracking        bool      `json:"enable_gps_tracking"`
	EnableAudioRecording     bool      `json:"enable_audio_recording"`
	EnableVideoRecording     bool      `json:"enable_video_recording"`
	TrackingIntervalSeconds  int       `json:"tracking_interval_seconds"`
	RecordingDurationMinutes int       `json:"recording_duration_minutes"`
	CreatedAt                time.Time `json:"created_at"`
	UpdatedAt                time.Time `json:"updated_at"`
}

// Trigger is the body of POST /anti-theft/trigger.
type Trigger struct {
	TriggeredBy string `json:"triggered_by"`
	IsTest      bool   `json:"is_test"`
}

type Event struct {
	ID            string      `json:"id"`
	UserID        string      `json:"user_id"`
	TriggeredBy   string      `json:"triggered_by"`
	TriggerTime   time.Time   `json:"trigger_time"`
	Status        EventStatus `json:"status"`
	IsTest        bool        `json:"is_test"`
	DeactivatedAt *time.Time  `json:"deactivated_at,omitempty"`
}

// LocationPoint is a GPS fix reported while an event is active.
type LocationPoint struct {
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Accuracy     *float64  `json:"accuracy,omitempty"`
	Altitude     *float64  `json:"altitude,omitempty"`
	Speed        *float64  `json:"speed,omitempty"`
	Heading      *float64  `json:"heading,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	BatteryLevel *int      `json:"battery_level,omitempty"`
}

func (p LocationPoint) Validate() error {
	if p.Latitude < -90 || p.Latitude > 90 || p.Longitude < -180 || p.Longitude > 180 {
		return errors.Invalidf("coordinates (%f, %f) out of range", p.Latitude, p.Longitude)
	}
	if p.BatteryLevel != nil && (*p.BatteryLevel < 0 || *p.BatteryLevel > 100) {
		return errors.Invalidf("battery level must be between 0 and 100")
	}
	return nil
}

type MediaRecording struct {
	ID              string    `json:"id"`
	EventID         string    `json:"event_id"`
	MediaType       string    `json:"media_type"`
	FileURL         string    `json:"file_url"`
	FileSizeBytes   *int64    `json:"file_size_bytes,omitempty"`
	DurationSeconds *int      `json:"duration_seconds,omitempty"`
	UploadedAt      time.Time `json:"uploaded_at"`
}

// Status is the payload of GET /anti-theft/status.
type Status struct {
	IsEnabled       bool             `json:"is_enabled"`
	ActiveEvent     *Event           `json:"active_event,omitempty"`
	LocationHistory []LocationPoint  `json:"location_history"`
	MediaRecordings []MediaRecording `json:"media_recordings"`
}
