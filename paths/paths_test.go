package paths_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/nuur-client/paths"
	"github.com/stretchr/testify/require"
)

func TestValidatePoints(t *testing.T) {
	now := time.Now()
	require.Error(t, paths.ValidatePoints(nil))
	require.NoError(t, paths.ValidatePoints([]paths.Point{{Latitude: 9, Longitude: 38, Timestamp: now}}))
	require.Error(t, paths.ValidatePoints([]paths.Point{{Latitude: 9, Longitude: 38}, {Latitude: 100}}))
}

func TestShare_Validate(t *testing.T) {
	require.NoError(t, paths.Share{ExpiresInHours: paths.DefaultShareExpiryHours}.Validate())
	require.Error(t, paths.Share{}.Validate())
}

func TestTotalDistance(t *testing.T) {
	require.Zero(t, paths.TotalDistance(nil))

	// One degree of latitude is roughly 111.2 km.
	d := paths.TotalDistance([]paths.Point{
		{Latitude: 0, Longitude: 0},
		{Latitude: 1, Longitude: 0},
	})
	require.InDelta(t, 111195, d, 100)

	d = paths.TotalDistance([]paths.Point{
		{Latitude: 0, Longitude: 0},
		{Latitude: 1, Longitude: 0},
		{Latitude: 0, Longitude: 0},
	})
	require.InDelta(t, 2*111195, d, 200)
}
