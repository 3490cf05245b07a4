package paths

import (
	"time"

	"github.com/jrsteele09/nuur-client/internal/errors"
)

const DefaultShareExpiryHours = 24

// Type classifies a tracked path.
type Type string

const (
	TypeWalk    Type = "walk"
	TypeCommute Type = "commute"
	TypeTaxi    Type = "taxi"
	TypeOther   Type = "other"
)

// Start is the body of POST /paths/start.
type Start struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	PathType    Type    `json:"path_type,omitempty"`
}

// Update is the body of PUT /paths/{id}.
type Update struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type Point struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Accuracy  *float64  `json:"accuracy,omitempty"`
	Altitude  *float64  `json:"altitude,omitempty"`
	Speed     *float64  `json:"speed,omitempty"`
	Heading   *float64  `json:"heading,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// RecordedPoint is a Point as stored by the backend.
type RecordedPoint struct {
	ID int64 `json:"id"`
	Point
}

type Path struct {
	ID                  string     `json:"id"`
	UserID              string     `json:"user_id"`
	Name                *string    `json:"name,omitempty"`
	Description         *string    `json:"description,omitempty"`
	PathType            *Type      `json:"path_type,omitempty"`
	StartTime           time.Time  `json:"start_time"`
	EndTime             *time.Time `json:"end_time,omitempty"`
	IsActive            bool       `json:"is_active"`
	TotalDistanceMeters *float64   `json:"total_distance_meters,omitempty"`
	AverageSpeedMPS     *float64   `json:"average_speed_mps,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

// Detail is a Path with its recorded points.
type Detail struct {
	Path
	Points []RecordedPoint `json:"points"`
}

// Share is the body of POST /paths/{id}/share.
type Share struct {
	SharedWithEmail *string `json:"shared_with_email,omitempty"`
	SharedWithPhone *string `json:"shared_with_phone,omitempty"`
	ExpiresInHours  int     `json:"expires_in_hours"`
}

func (s Share) Validate() error {
	if s.ExpiresInHours <= 0 {
		return errors.Invalidf("share expiry must be a positive number of hours")
	}
	return nil
}

type ShareLink struct {
	ID         string     `json:"id"`
	PathID     string     `json:"path_id"`
	ShareToken string     `json:"share_token"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func ValidatePoints(points []Point) error {
	if len(points) == 0 {
		return errors.Invalidf("at least one point is required")
	}
	for i, p := range points {
		if p.Latitude < -90 || p.Latitude > 90 || p.Longitude < -180 || p.Longitude > 180 {
			return errors.Invalidf("point %d has coordinates out of range", i)
		}
	}
	return nil
}
