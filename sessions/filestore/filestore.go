// Package filestore persists the session record as a single file under the
// data folder. Writes go to a temp file that is renamed into place, so a crash
// mid-write leaves the previous record intact.
package filestore

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jrsteele09/nuur-client/internal/errors"
	"github.com/jrsteele09/nuur-client/sessions"
)

const fileMode = 0o600

var _ sessions.Persister = (*Store)(nil)

type Store struct {
	path       string
	passphrase string
}

type Option func(*Store)

// WithPassphrase seals the record at rest. An empty passphrase stores plain JSON.
func WithPassphrase(passphrase string) Option {
	return func(s *Store) {
		s.passphrase = passphrase
	}
}

// New returns a Store writing to <folder>/nuur-auth-storage.json.
func New(folder string, opts ...Option) *Store {
	s := &Store{path: filepath.Join(folder, sessions.StorageName+".json")}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Load() (sessions.State, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return sessions.State{}, errors.ErrNotFound
	}
	if err != nil {
		return sessions.State{}, errors.Wrapf(err, "filestore.Load read %s", s.path)
	}

	if isSealed(data) {
		if s.passphrase == "" {
			return sessions.State{}, errors.Wrapf(errors.ErrSessionCorrupt, "filestore.Load %s is sealed and no passphrase is set", s.path)
		}
		if data, err = open(data, s.passphrase); err != nil {
			return sessions.State{}, err
		}
	}

	var rec sessions.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return sessions.State{}, errors.Wrapf(errors.ErrSessionCorrupt, "filestore.Load decode %s (%v)", s.path, err)
	}
	return rec.State, nil
}

func (s *Store) Save(state sessions.State) error {
	data, err := json.Marshal(sessions.Record{State: state, Version: sessions.RecordVersion})
	if err != nil {
		return errors.Wrapf(err, "filestore.Save encode")
	}
	if s.passphrase != "" {
		if data, err = seal(data, s.passphrase); err != nil {
			return err
		}
	}
	return s.writeAtomic(data)
}

func (s *Store) writeAtomic(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrapf(err, "filestore.Save mkdir %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+sessions.StorageName+"-*.tmp")
	if err != nil {
		return errors.Wrapf(err, "filestore.Save create temp")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "filestore.Save write")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "filestore.Save sync")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "filestore.Save close")
	}
	if err := os.Chmod(tmpName, fileMode); err != nil {
		return errors.Wrapf(err, "filestore.Save chmod")
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return errors.Wrapf(err, "filestore.Save rename")
	}
	return nil
}
