package apiclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jrsteele09/nuur-client/apiclient"
	"github.com/jrsteele09/nuur-client/internal/errors"
	"github.com/jrsteele09/nuur-client/internal/utils"
	"github.com/jrsteele09/nuur-client/sessions"
	"github.com/jrsteele09/nuur-client/sessions/repofake"
	"github.com/jrsteele09/nuur-client/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	oldAccess  = "access-old"
	oldRefresh = "refresh-old"
	newAccess  = "access-new"
	newRefresh = "refresh-new"
)

type testConfig struct {
	url string
}

func (c testConfig) GetAPIBaseURL() string         { return c.url }
func (c testConfig) GetHTTPTimeout() time.Duration { return 5 * time.Second }
func (c testConfig) GetLoginPath() string          { return "/login" }

type redirects struct {
	mu    sync.Mutex
	paths []string
}

func (r *redirects) RedirectToLogin(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *redirects) get() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

type fixture struct {
	client    *apiclient.Client
	session   *sessions.Store
	persister *repofake.FakePersister
	redirects *redirects
	server    *httptest.Server
}

func testUser() *users.User {
	return &users.User{
		ID:                "user-1",
		Email:             "hana@example.com",
		PhoneNumber:       "+251911000000",
		FirstName:         utils.Ptr("Hana"),
		PreferredLanguage: "en",
		IsActive:          true,
	}
}

func newFixture(t *testing.T, mux *http.ServeMux, signedIn bool, opts ...apiclient.Option) *fixture {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	p := repofake.NewFakePersister()
	store, err := sessions.Open(p)
	require.NoError(t, err)
	if signedIn {
		require.NoError(t, store.SetAuth(testUser(), oldAccess, oldRefresh))
	}

	r := &redirects{}
	opts = append([]apiclient.Option{apiclient.WithNavigator(r)}, opts...)
	return &fixture{
		client:    apiclient.New(testConfig{url: srv.URL}, store, opts...),
		session:   store,
		persister: p,
		redirects: r,
		server:    srv,
	}
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}

func ok(data any) map[string]any {
	return map[string]any{"success": true, "data": data}
}

// refreshHandler issues newAccess/newRefresh and counts exchanges.
func refreshHandler(t *testing.T, count *atomic.Int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count.Add(1)
		assert.Empty(t, r.Header.Get("Authorization"))
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body.RefreshToken != oldRefresh {
			writeJSON(t, w, http.StatusUnauthorized, map[string]any{"detail": "Invalid refresh token"})
			return
		}
		writeJSON(t, w, http.StatusOK, map[string]any{
			"access_token":  newAccess,
			"refresh_token": newRefresh,
			"token_type":    "bearer",
		})
	}
}

// meHandler accepts only the given access token.
func meHandler(t *testing.T, accept string, calls *atomic.Int32, ids *[]string) http.HandlerFunc {
	var mu sync.Mutex
	return func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if ids != nil {
			mu.Lock()
			*ids = append(*ids, r.Header.Get("X-Request-ID"))
			mu.Unlock()
		}
		if r.Header.Get("Authorization") != "Bearer "+accept {
			writeJSON(t, w, http.StatusUnauthorized, map[string]any{"detail": "Could not validate credentials"})
			return
		}
		writeJSON(t, w, http.StatusOK, ok(testUser()))
	}
}

func TestAuthorize(t *testing.T) {
	t.Run("signed in sends the access token", func(t *testing.T) {
		var got string
		mux := http.NewServeMux()
		mux.HandleFunc("GET /users/me", func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("Authorization")
			writeJSON(t, w, http.StatusOK, ok(testUser()))
		})
		f := newFixture(t, mux, true)

		env, err := f.client.GetProfile(t.Context())
		require.NoError(t, err)
		require.True(t, env.Success)
		require.Equal(t, testUser(), env.Data)
		require.Equal(t, "Bearer "+oldAccess, got)
	})

	t.Run("anonymous sends no header", func(t *testing.T) {
		var got []string
		mux := http.NewServeMux()
		mux.HandleFunc("GET /paths/shared/{token}", func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Values("Authorization")
			writeJSON(t, w, http.StatusOK, ok(map[string]any{"id": "p1", "points": []any{}}))
		})
		f := newFixture(t, mux, false)

		_, err := f.client.GetSharedPath(t.Context(), "share-1")
		require.NoError(t, err)
		require.Empty(t, got)
	})
}

func TestRecover_RefreshAndReplay(t *testing.T) {
	var refreshes, meCalls atomic.Int32
	var ids []string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/refresh", refreshHandler(t, &refreshes))
	mux.HandleFunc("GET /users/me", meHandler(t, newAccess, &meCalls, &ids))
	f := newFixture(t, mux, true)

	env, err := f.client.GetProfile(t.Context())
	require.NoError(t, err)
	require.True(t, env.Success)

	require.Equal(t, int32(1), refreshes.Load())
	require.Equal(t, int32(2), meCalls.Load())
	require.Len(t, ids, 2)
	require.NotEmpty(t, ids[0])
	require.Equal(t, ids[0], ids[1])

	st := f.session.Current()
	require.True(t, st.IsAuthenticated)
	require.Equal(t, newAccess, st.AccessToken)
	require.Equal(t, newRefresh, st.RefreshToken)
	require.Equal(t, testUser(), st.User)
	require.Empty(t, f.redirects.get())
}

func TestRecover_RefreshFails(t *testing.T) {
	var refreshes, meCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshes.Add(1)
		writeJSON(t, w, http.StatusUnauthorized, map[string]any{"detail": "Invalid refresh token"})
	})
	mux.HandleFunc("GET /users/me", meHandler(t, newAccess, &meCalls, nil))
	f := newFixture(t, mux, true)

	_, err := f.client.GetProfile(t.Context())
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrRefreshFailed))

	var httpErr *apiclient.HTTPError
	require.True(t, errors.As(err, &httpErr))
	require.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)

	require.Equal(t, int32(1), refreshes.Load())
	require.Equal(t, int32(1), meCalls.Load())
	require.Equal(t, sessions.State{}, f.session.Current())
	require.Equal(t, []string{"/login"}, f.redirects.get())
}

func TestRecover_ReplayDenied(t *testing.T) {
	var refreshes, meCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/refresh", refreshHandler(t, &refreshes))
	mux.HandleFunc("GET /users/me", meHandler(t, "never-valid", &meCalls, nil))
	f := newFixture(t, mux, true)

	_, err := f.client.GetProfile(t.Context())
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrUnauthorized))

	require.Equal(t, int32(1), refreshes.Load())
	require.Equal(t, int32(2), meCalls.Load())
	require.Equal(t, sessions.State{}, f.session.Current())
	require.Equal(t, []string{"/login"}, f.redirects.get())
}

func TestRecover_NoRefreshToken(t *testing.T) {
	var refreshes, meCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/refresh", refreshHandler(t, &refreshes))
	mux.HandleFunc("GET /users/me", meHandler(t, newAccess, &meCalls, nil))
	f := newFixture(t, mux, false)

	_, err := f.client.GetProfile(t.Context())
	require.True(t, errors.Is(err, errors.ErrUnauthorized))
	require.Zero(t, refreshes.Load())
	require.Equal(t, int32(1), meCalls.Load())
	require.Equal(t, []string{"/login"}, f.redirects.get())
}

func TestRecover_PublicCallSkipsRefresh(t *testing.T) {
	var refreshes atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/refresh", refreshHandler(t, &refreshes))
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]any{"detail": "Incorrect email or password"})
	})
	f := newFixture(t, mux, true)

	_, err := f.client.Login(t.Context(), users.Credentials{Email: "hana@example.com", Password: "wrong-password"})
	require.True(t, errors.Is(err, errors.ErrUnauthorized))

	var httpErr *apiclient.HTTPError
	require.True(t, errors.As(err, &httpErr))
	require.Equal(t, "Incorrect email or password", httpErr.API.Message)

	require.Zero(t, refreshes.Load())
	require.Empty(t, f.redirects.get())
	require.True(t, f.session.Current().IsAuthenticated)
}

func TestRecover_IndependentRequests(t *testing.T) {
	var refreshes atomic.Int32
	var accepted atomic.Value
	accepted.Store(newAccess)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshes.Add(1)
		writeJSON(t, w, http.StatusOK, map[string]any{"access_token": accepted.Load().(string)})
	})
	mux.HandleFunc("GET /users/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+accepted.Load().(string) {
			writeJSON(t, w, http.StatusUnauthorized, map[string]any{"detail": "expired"})
			return
		}
		writeJSON(t, w, http.StatusOK, ok(testUser()))
	})
	f := newFixture(t, mux, true)

	_, err := f.client.GetProfile(t.Context())
	require.NoError(t, err)

	// expire the refreshed token; the next request recovers on its own
	accepted.Store("access-third")
	_, err = f.client.GetProfile(t.Context())
	require.NoError(t, err)

	require.Equal(t, int32(2), refreshes.Load())
	st := f.session.Current()
	require.Equal(t, "access-third", st.AccessToken)
	require.Equal(t, oldRefresh, st.RefreshToken, "refresh token is kept when none is returned")
	require.Empty(t, f.redirects.get())
}

func TestRecover_CoalescedRefresh(t *testing.T) {
	const n = 5
	var refreshes, denied atomic.Int32
	allDenied := make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+newAccess {
			if denied.Add(1) == n {
				close(allDenied)
			}
			writeJSON(t, w, http.StatusUnauthorized, map[string]any{"detail": "expired"})
			return
		}
		writeJSON(t, w, http.StatusOK, ok(testUser()))
	})
	refresh := refreshHandler(t, &refreshes)
	mux.HandleFunc("POST /auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-allDenied:
		case <-time.After(2 * time.Second):
		}
		time.Sleep(100 * time.Millisecond)
		refresh(w, r)
	})
	f := newFixture(t, mux, true, apiclient.WithRefreshCoalescing())

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.client.GetProfile(t.Context())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), refreshes.Load())
	require.Equal(t, newAccess, f.session.Current().AccessToken)
}

func TestRecover_CoalescedRefreshFails(t *testing.T) {
	const n = 3
	var refreshes, denied atomic.Int32
	allDenied := make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/me", func(w http.ResponseWriter, r *http.Request) {
		if denied.Add(1) == n {
			close(allDenied)
		}
		writeJSON(t, w, http.StatusUnauthorized, map[string]any{"detail": "expired"})
	})
	mux.HandleFunc("POST /auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-allDenied:
		case <-time.After(2 * time.Second):
		}
		time.Sleep(100 * time.Millisecond)
		refreshes.Add(1)
		writeJSON(t, w, http.StatusUnauthorized, map[string]any{"detail": "Invalid refresh token"})
	})
	f := newFixture(t, mux, true, apiclient.WithRefreshCoalescing())

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.client.GetProfile(t.Context())
			assert.True(t, errors.Is(err, errors.ErrRefreshFailed), "%v", err)
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), refreshes.Load())
	require.Equal(t, sessions.State{}, f.session.Current())
	require.Equal(t, []string{"/login"}, f.redirects.get())
}

func TestRecover_CallerCancelsDuringCoalescedRefresh(t *testing.T) {
	var refreshes, denied atomic.Int32
	bothDenied := make(chan struct{})
	started := make(chan struct{})
	release := make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+newAccess {
			if denied.Add(1) == 2 {
				close(bothDenied)
			}
			writeJSON(t, w, http.StatusUnauthorized, map[string]any{"detail": "expired"})
			return
		}
		writeJSON(t, w, http.StatusOK, ok(testUser()))
	})
	refresh := refreshHandler(t, &refreshes)
	mux.HandleFunc("POST /auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		refresh(w, r)
	})
	f := newFixture(t, mux, true, apiclient.WithRefreshCoalescing())

	ctxA, cancelA := context.WithCancel(t.Context())
	defer cancelA()
	errA := make(chan error, 1)
	errB := make(chan error, 1)
	go func() {
		_, err := f.client.GetProfile(ctxA)
		errA <- err
	}()
	go func() {
		_, err := f.client.GetProfile(t.Context())
		errB <- err
	}()

	<-bothDenied
	<-started
	cancelA()
	err := <-errA
	require.True(t, errors.Is(err, context.Canceled), "%v", err)
	require.False(t, errors.Is(err, errors.ErrRefreshFailed))
	require.True(t, f.session.Current().IsAuthenticated)

	time.Sleep(100 * time.Millisecond)
	close(release)
	require.NoError(t, <-errB)

	require.Equal(t, int32(1), refreshes.Load())
	st := f.session.Current()
	require.True(t, st.IsAuthenticated)
	require.Equal(t, newAccess, st.AccessToken)
	require.Equal(t, newRefresh, st.RefreshToken)
	require.Empty(t, f.redirects.get())
}

func TestRecover_DeadlineDuringRefreshKeepsSession(t *testing.T) {
	var refreshes, meCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/me", meHandler(t, newAccess, &meCalls, nil))
	refresh := refreshHandler(t, &refreshes)
	mux.HandleFunc("POST /auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		refresh(w, r)
	})
	f := newFixture(t, mux, true)

	ctx, cancel := context.WithTimeout(t.Context(), 100*time.Millisecond)
	defer cancel()
	_, err := f.client.GetProfile(ctx)
	require.True(t, errors.Is(err, context.DeadlineExceeded), "%v", err)
	require.True(t, f.session.Current().IsAuthenticated)

	// the exchange finishes in the background and its tokens are kept
	require.Eventually(t, func() bool {
		return f.session.Current().AccessToken == newAccess
	}, 2*time.Second, 20*time.Millisecond)
	require.Equal(t, int32(1), refreshes.Load())
	require.Equal(t, int32(1), meCalls.Load())
	require.Empty(t, f.redirects.get())
}

func TestTransportError(t *testing.T) {
	f := newFixture(t, http.NewServeMux(), true)
	f.server.Close()

	_, err := f.client.GetProfile(t.Context())
	require.True(t, errors.Is(err, errors.ErrTransport))
	require.True(t, f.session.Current().IsAuthenticated)
	require.Empty(t, f.redirects.get())
}

func TestRequestShape(t *testing.T) {
	type seen struct {
		method, path, query, contentType string
	}
	var got seen
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		got = seen{r.Method, r.URL.Path, r.URL.RawQuery, r.Header.Get("Content-Type")}
		writeJSON(t, w, http.StatusOK, ok([]any{}))
	})
	f := newFixture(t, mux, true)

	_, err := f.client.ListPaths(t.Context(), 10, 20)
	require.NoError(t, err)
	require.Equal(t, seen{http.MethodGet, "/paths", "limit=10&skip=20", ""}, got)

	_, err = f.client.GetNearbyEmergencies(t.Context(), 9.03, 38.74, 0)
	require.NoError(t, err)
	require.Equal(t, "/emergency/nearby", got.path)
	require.Equal(t, "latitude=9.03&longitude=38.74", got.query)

	_, err = f.client.GetAntiTheftEvents(t.Context(), 3)
	require.NoError(t, err)
	require.Equal(t, "limit=3", got.query)

	_, err = f.client.DeleteContact(t.Context(), "a/b")
	require.NoError(t, err)
	require.Equal(t, http.MethodDelete, got.method)
	require.True(t, strings.HasPrefix(got.path, "/users/contacts/"))
}
