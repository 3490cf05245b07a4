package emergency_test

import (
	"testing"

	"github.com/jrsteele09/nuur-client/emergency"
	"github.com/jrsteele09/nuur-client/internal/errors"
	"github.com/jrsteele09/nuur-client/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestNewReport_Validate(t *testing.T) {
	base := emergency.NewReport{ReportType: emergency.ReportMedical, Latitude: 9.01, Longitude: 38.76}

	t.Run("valid without severity", func(t *testing.T) {
		require.NoError(t, base.Validate())
	})

	t.Run("valid with severity", func(t *testing.T) {
		r := base
		r.Severity = emergency.SeverityCritical
		require.NoError(t, r.Validate())
	})

	t.Run("unknown type", func(t *testing.T) {
		r := base
		r.ReportType = "flood"
		err := r.Validate()
		require.True(t, errors.Is(err, errors.ErrInvalidRequest))
		require.Contains(t, err.Error(), "flood")
	})

	t.Run("unknown severity", func(t *testing.T) {
		r := base
		r.Severity = "extreme"
		require.Error(t, r.Validate())
	})

	t.Run("bad coordinates", func(t *testing.T) {
		r := base
		r.Latitude = -95
		require.Error(t, r.Validate())
	})
}

func TestStatusUpdate_Validate(t *testing.T) {
	require.NoError(t, emergency.StatusUpdate{}.Validate())
	require.NoError(t, emergency.StatusUpdate{Status: utils.Ptr(emergency.StatusResolved)}.Validate())
	require.Error(t, emergency.StatusUpdate{Status: utils.Ptr(emergency.Status("closed"))}.Validate())
}

func TestValidateMediaType(t *testing.T) {
	require.NoError(t, emergency.ValidateMediaType(emergency.MediaAudio))
	require.Error(t, emergency.ValidateMediaType("document"))
}
