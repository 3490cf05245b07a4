package antitheft_test

import (
	"testing"

	"github.com/jrsteele09/nuur-client/antitheft"
	"github.com/jrsteele09/nuur-client/internal/errors"
	"github.com/jrsteele09/nuur-client/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestSetup_Validate(t *testing.T) {
	require.NoError(t, antitheft.DefaultSetup("help me").Validate())

	tests := []struct {
		name  string
		setup antitheft.Setup
		msg   string
	}{
		{"short keyword", antitheft.DefaultSetup("abc"), "at least 4"},
		{"zero duration", func() antitheft.Setup {
			s := antitheft.DefaultSetup("help me")
			s.RecordingDurationMinutes = 0
			return s
		}(), "between 1 and 30"},
		{"long duration", func() antitheft.Setup {
			s := antitheft.DefaultSetup("help me")
			s.RecordingDurationMinutes = 31
			return s
		}(), "between 1 and 30"},
		{"no interval", func() antitheft.Setup {
			s := antitheft.DefaultSetup("help me")
			s.TrackingIntervalSeconds = 0
			return s
		}(), "interval"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.setup.Validate()
			require.Error(t, err)
			require.True(t, errors.Is(err, errors.ErrInvalidRequest))
			require.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLocationPoint_Validate(t *testing.T) {
	require.NoError(t, antitheft.LocationPoint{Latitude: 9.03, Longitude: 38.74}.Validate())
	require.Error(t, antitheft.LocationPoint{Latitude: 91}.Validate())
	require.Error(t, antitheft.LocationPoint{Longitude: -181}.Validate())
	require.Error(t, antitheft.LocationPoint{BatteryLevel: utils.Ptr(101)}.Validate())
}
