package fakebackend_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/nuur-client/apiclient"
	"github.com/jrsteele09/nuur-client/internal/errors"
	"github.com/jrsteele09/nuur-client/internal/fakebackend"
	"github.com/jrsteele09/nuur-client/internal/utils"
	"github.com/jrsteele09/nuur-client/paths"
	"github.com/jrsteele09/nuur-client/sessions"
	"github.com/jrsteele09/nuur-client/sessions/repofake"
	"github.com/jrsteele09/nuur-client/users"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	url string
}

func (testConfig) GetAppName() string { return "NuuR test" }
func (testConfig) GetEnv() string { return "TEST" }
func (testConfig) GetLogLevel() string { return "disabled" }
func (testConfig) GetPort() string { return ":0" }
func (testConfig) GetJWTSecret() string { return "test-secret" }
func (testConfig) GetAccessTokenExpiry() time.Duration { return 15 * time.Minute }
func (testConfig) GetRefreshTokenExpiry() time.Duration { return 7 * 24 * time.Hour }
func (c testConfig) GetAPIBaseURL() string { return c.url }
func (testConfig) GetHTTPTimeout() time.Duration { return 5 * time.Second }
func (testConfig) GetLoginPath() string { return "/login" }

// clock replaces fakebackend.NowTimeFunc for the duration of a test.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func useClock(t *testing.T) *clock {
	c := &clock{now: time.Now()}
	prev := fakebackend.NowTimeFunc
	fakebackend.NowTimeFunc = c.Now
	t.Cleanup(func() { fakebackend.NowTimeFunc = prev })
	return c
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type harness struct {
	client    *apiclient.Client
	session   *sessions.Store
	redirects []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	srv := httptest.NewServer(fakebackend.New(testConfig{}))
	t.Cleanup(srv.Close)

	store, err := sessions.Open(repofake.NewFakePersister())
	require.NoError(t, err)

	h := &harness{session: store}
	h.client = apiclient.New(testConfig{url: srv.URL + fakebackend.APIPrefix}, store,
		apiclient.WithNavigator(apiclient.NavigatorFunc(func(path string) {
			h.redirects = append(h.redirects, path)
		})),
	)
	return h
}

var registration = users.Registration{
	Email:       "hana@example.com",
	PhoneNumber: "+251911000000",
	Password:    "s3cret-pass",
	FirstName:   utils.Ptr("Hana"),
}

func (h *harness) signIn(t *testing.T) *users.User {
	t.Helper()
	ctx := t.Context()
	_, err := h.client.Register(ctx, registration)
	require.NoError(t, err)
	u, err := h.client.SignIn(ctx, users.Credentials{Email: registration.Email, Password: registration.Password})
	require.NoError(t, err)
	return u
}

func TestEndToEnd_RefreshOnExpiry(t *testing.T) {
	clk := useClock(t)
	h := newHarness(t)
	u := h.signIn(t)
	require.Equal(t, "Hana", *u.FirstName)

	first := h.session.Current()
	require.True(t, first.IsAuthenticated)

	t.Run("valid token", func(t *testing.T) {
		env, err := h.client.GetProfile(t.Context())
		require.NoError(t, err)
		require.Equal(t, u.ID, env.Data.ID)
		require.Equal(t, first.AccessToken, h.session.Current().AccessToken)
	})

	t.Run("expired access token is refreshed", func(t *testing.T) {
		clk.Advance(20 * time.Minute)

		env, err := h.client.GetProfile(t.Context())
		require.NoError(t, err)
		require.Equal(t, u.ID, env.Data.ID)

		st := h.session.Current()
		require.True(t, st.IsAuthenticated)
		require.NotEqual(t, first.AccessToken, st.AccessToken)
		require.NotEqual(t, first.RefreshToken, st.RefreshToken)
		require.Empty(t, h.redirects)
	})

	t.Run("expired refresh token ends the session", func(t *testing.T) {
		clk.Advance(8 * 24 * time.Hour)

		_, err := h.client.GetProfile(t.Context())
		require.True(t, errors.Is(err, errors.ErrRefreshFailed))
		require.Equal(t, sessions.State{}, h.session.Current())
		require.Equal(t, []string{"/login"}, h.redirects)
	})
}

func TestEndToEnd_SignOutRevokesToken(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	revoked := h.session.Current().AccessToken

	require.NoError(t, h.client.SignOut(t.Context()))
	require.Equal(t, sessions.State{}, h.session.Current())

	req, err := http.NewRequest(http.MethodGet, h.client.BaseURL()+fakebackend.RouteUsersMe, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+revoked)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestEndToEnd_Resources(t *testing.T) {
	useClock(t)
	h := newHarness(t)
	h.signIn(t)
	ctx := t.Context()

	t.Run("duplicate registration", func(t *testing.T) {
		_, err := h.client.Register(ctx, registration)
		require.True(t, errors.Is(err, errors.ErrInvalidRequest))
	})

	t.Run("profile", func(t *testing.T) {
		env, err := h.client.UpdateProfile(ctx, users.ProfileUpdate{LastName: utils.Ptr("Bekele")})
		require.NoError(t, err)
		require.Equal(t, "Bekele", *env.Data.LastName)
		require.Equal(t, "Hana Bekele", h.session.Current().User.DisplayName())
	})

	t.Run("contacts", func(t *testing.T) {
		added, err := h.client.AddContact(ctx, users.NewContact{ContactName: "Abebe", PhoneNumber: "+251911111111", Priority: 2})
		require.NoError(t, err)
		id := added.Data.ID

		_, err = h.client.UpdateContact(ctx, id, users.ContactUpdate{ContactName: utils.Ptr("Abebe K")})
		require.NoError(t, err)

		list, err := h.client.GetContacts(ctx)
		require.NoError(t, err)
		require.Len(t, *list.Data, 1)
		require.Equal(t, "Abebe K", (*list.Data)[0].ContactName)

		_, err = h.client.DeleteContact(ctx, id)
		require.NoError(t, err)
		_, err = h.client.DeleteContact(ctx, id)
		require.True(t, errors.Is(err, errors.ErrNotFound))
	})

	t.Run("paths", func(t *testing.T) {
		started, err := h.client.StartPath(ctx, paths.Start{Name: utils.Ptr("Bole to Piassa"), PathType: paths.TypeTaxi})
		require.NoError(t, err)
		id := started.Data.ID
		require.True(t, started.Data.IsActive)

		_, err = h.client.AddPathPoints(ctx, id, []paths.Point{
			{Latitude: 8.9806, Longitude: 38.7578},
			{Latitude: 9.0350, Longitude: 38.7520},
		})
		require.NoError(t, err)

		stopped, err := h.client.StopPath(ctx, id)
		require.NoError(t, err)
		require.False(t, stopped.Data.IsActive)
		require.InDelta(t, 6000, *stopped.Data.TotalDistanceMeters, 500)

		link, err := h.client.SharePath(ctx, id, paths.Share{})
		require.NoError(t, err)

		shared, err := h.client.GetSharedPath(ctx, link.Data.ShareToken)
		require.NoError(t, err)
		require.Len(t, shared.Data.Points, 2)

		list, err := h.client.ListPaths(ctx, 10, 0)
		require.NoError(t, err)
		require.Len(t, *list.Data, 1)

		_, err = h.client.DeletePath(ctx, id)
		require.NoError(t, err)
		_, err = h.client.GetPath(ctx, id)
		require.True(t, errors.Is(err, errors.ErrNotFound))
	})
}
