package filestore_test

import (
	"os"
	"testing"

	"github.com/jrsteele09/nuur-client/internal/errors"
	"github.com/jrsteele09/nuur-client/internal/utils"
	"github.com/jrsteele09/nuur-client/sessions"
	"github.com/jrsteele09/nuur-client/sessions/filestore"
	"github.com/jrsteele09/nuur-client/users"
	"github.com/stretchr/testify/require"
)

func signedIn() sessions.State {
	return sessions.State{
		User: &users.User{
			ID:                "u-1",
			Email:             "hana@example.com",
			PhoneNumber:       "+251911000000",
			FirstName:         utils.Ptr("Hana"),
			PreferredLanguage: "am",
			IsActive:          true,
		},
		AccessToken:     "access-1",
		RefreshToken:    "refresh-1",
		IsAuthenticated: true,
	}
}

func TestStore_LoadMissing(t *testing.T) {
	fs := filestore.New(t.TempDir())
	_, err := fs.Load()
	require.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	fs := filestore.New(dir + "/nested")
	require.NoError(t, fs.Save(signedIn()))

	info, err := os.Stat(fs.Path())
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	raw, err := os.ReadFile(fs.Path())
	require.NoError(t, err)
	require.Contains(t, string(raw), `"accessToken":"access-1"`)
	require.Contains(t, string(raw), `"version":0`)

	got, err := filestore.New(dir + "/nested").Load()
	require.NoError(t, err)
	require.Equal(t, signedIn(), got)
}

func TestStore_Sealed(t *testing.T) {
	dir := t.TempDir()
	fs := filestore.New(dir, filestore.WithPassphrase("correct horse"))
	require.NoError(t, fs.Save(signedIn()))

	raw, err := os.ReadFile(fs.Path())
	require.NoError(t, err)
	require.NotContains(t, string(raw), "access-1")

	t.Run("same passphrase", func(t *testing.T) {
		got, err := filestore.New(dir, filestore.WithPassphrase("correct horse")).Load()
		require.NoError(t, err)
		require.Equal(t, signedIn(), got)
	})

	t.Run("wrong passphrase", func(t *testing.T) {
		_, err := filestore.New(dir, filestore.WithPassphrase("battery staple")).Load()
		require.True(t, errors.Is(err, errors.ErrSessionCorrupt))
	})

	t.Run("no passphrase", func(t *testing.T) {
		_, err := filestore.New(dir).Load()
		require.True(t, errors.Is(err, errors.ErrSessionCorrupt))
	})
}

func TestStore_CorruptJSON(t *testing.T) {
	fs := filestore.New(t.TempDir())
	require.NoError(t, os.WriteFile(fs.Path(), []byte("{not json"), 0o600))

	_, err := fs.Load()
	require.True(t, errors.Is(err, errors.ErrSessionCorrupt))
}

func TestStore_SurvivesRestart(t *testing.T) {
	dir := t.TempDir()

	s1, err := sessions.Open(filestore.New(dir))
	require.NoError(t, err)
	st := signedIn()
	require.NoError(t, s1.SetAuth(st.User, st.AccessToken, st.RefreshToken))

	s2, err := sessions.Open(filestore.New(dir))
	require.NoError(t, err)
	require.Equal(t, s1.Current(), s2.Current())

	require.NoError(t, s2.ClearAuth())
	s3, err := sessions.Open(filestore.New(dir))
	require.NoError(t, err)
	require.Equal(t, sessions.State{}, s3.Current())
}
