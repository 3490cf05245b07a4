package sessions

import (
	"sync"

	"github.com/jrsteele09/nuur-client/internal/errors"
	"github.com/jrsteele09/nuur-client/users"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

var _ oauth2.TokenSource = (*Store)(nil)

// Store is the single source of truth for the signed-in identity and its
// credentials. Every mutation is persisted before it becomes visible in memory.
type Store struct {
	mu        sync.Mutex
	state     State
	persister Persister
	log       zerolog.Logger

	subsMu  sync.Mutex
	subs    map[int]func(State)
	nextSub int
}

type StoreOption func(*Store)

func WithLogger(l zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.log = l
	}
}

// Open creates the store and hydrates it from p. A missing record yields an
// anonymous session.
func Open(p Persister, opts ...StoreOption) (*Store, error) {
	s := &Store{
		persister: p,
		log:       zerolog.Nop(),
		subs:      make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}

	st, err := p.Load()
	switch {
	case errors.Is(err, errors.ErrNotFound):
		s.log.Debug().Msg("no persisted session, starting anonymous")
	case err != nil:
		return nil, errors.Wrapf(err, "sessions.Open load")
	default:
		s.state = normalize(st)
		if st.IsAuthenticated && !s.state.IsAuthenticated {
			s.log.Warn().Msg("persisted session was inconsistent, starting anonymous")
		}
	}
	return s, nil
}

// Current returns a copy of the current snapshot. Safe to call from any goroutine.
func (s *Store) Current() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// SetAuth replaces the user and both tokens and marks the session authenticated.
func (s *Store) SetAuth(user *users.User, accessToken, refreshToken string) error {
	next := State{
		User:            user.Clone(),
		AccessToken:     accessToken,
		RefreshToken:    refreshToken,
		IsAuthenticated: true,
	}
	if !next.valid() {
		return errors.Invalidf("SetAuth requires a user and both tokens")
	}
	return s.mutate(func(State) (State, bool) {
		return next, true
	})
}

// ClearAuth drops the user and both tokens. Calling it on an anonymous session
// persists the same empty snapshot again.
func (s *Store) ClearAuth() error {
	return s.mutate(func(State) (State, bool) {
		return State{}, true
	})
}

// UpdateUser merges p into the current user. It is a no-op when nobody is signed in.
func (s *Store) UpdateUser(p users.Patch) error {
	return s.mutate(func(cur State) (State, bool) {
		if cur.User == nil {
			return cur, false
		}
		u := cur.User.Apply(p)
		cur.User = &u
		return cur, true
	})
}

// Token exposes the access credential as an oauth2.TokenSource.
func (s *Store) Token() (*oauth2.Token, error) {
	st := s.Current()
	if !st.IsAuthenticated {
		return nil, errors.ErrNotAuthenticated
	}
	return &oauth2.Token{
		AccessToken:  st.AccessToken,
		RefreshToken: st.RefreshToken,
		TokenType:    "Bearer",
	}, nil
}

// Subscribe registers fn to be called with each new snapshot after a
// successful mutation. The returned func removes the subscription.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) mutate(fn func(State) (State, bool)) error {
	s.mu.Lock()
	next, changed := fn(s.state.Clone())
	if !changed {
		s.mu.Unlock()
		return nil
	}
	if err := s.persister.Save(next); err != nil {
		s.mu.Unlock()
		return errors.Wrapf(err, "sessions.Store persist")
	}
	s.state = next
	snapshot := next.Clone()
	s.mu.Unlock()

	s.log.Debug().Bool("authenticated", snapshot.IsAuthenticated).Msg("session updated")
	s.notify(snapshot)
	return nil
}

func (s *Store) notify(st State) {
	s.subsMu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(st.Clone())
	}
}
