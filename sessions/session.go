package sessions

import (
	"github.com/jrsteele09/nuur-client/users"
)

// StorageName is the fixed key under which the session record is persisted.
const StorageName = "nuur-auth-storage"

// RecordVersion is written alongside every persisted snapshot.
const RecordVersion = 0

// State is a snapshot of who is signed in and with which credentials.
// IsAuthenticated is true iff User is set and both tokens are non-empty.
type State struct {
	User            *users.User `json:"user"`
	AccessToken     string      `json:"accessToken"`
	RefreshToken    string      `json:"refreshToken"`
	IsAuthenticated bool        `json:"isAuthenticated"`
}

// Record is the persisted envelope around a State.
type Record struct {
	State   State `json:"state"`
	Version int   `json:"version"`
}

// Persister stores and retrieves the single session record. Load returns
// errors.ErrNotFound when nothing has been saved yet.
type Persister interface {
	Load() (State, error)
	Save(state State) error
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	s.User = s.User.Clone()
	return s
}

func (s State) valid() bool {
	return s.User != nil && s.AccessToken != "" && s.RefreshToken != ""
}

// normalize enforces the authenticated invariant on a snapshot from storage.
func normalize(s State) State {
	if !s.valid() || !s.IsAuthenticated {
		return State{}
	}
	return s
}
