package repofake

import (
	"encoding/json"
	"sync"

	"github.com/jrsteele09/nuur-client/internal/errors"
	"github.com/jrsteele09/nuur-client/sessions"
)

var _ sessions.Persister = (*FakePersister)(nil)

// FakePersister keeps the session record in memory, serialized the same way
// the file store does so round trips behave identically.
type FakePersister struct {
	data    []byte
	saves   int
	failErr error
	lock    sync.RWMutex
}

func NewFakePersister() *FakePersister {
	return &FakePersister{}
}

func (fp *FakePersister) Load() (sessions.State, error) {
	fp.lock.RLock()
	defer fp.lock.RUnlock()

	if fp.data == nil {
		return sessions.State{}, errors.ErrNotFound
	}
	var rec sessions.Record
	if err := json.Unmarshal(fp.data, &rec); err != nil {
		return sessions.State{}, errors.Wrapf(errors.ErrSessionCorrupt, "FakePersister.Load %v", err)
	}
	return rec.State, nil
}

func (fp *FakePersister) Save(state sessions.State) error {
	fp.lock.Lock()
	defer fp.lock.Unlock()

	if fp.failErr != nil {
		return fp.failErr
	}
	data, err := json.Marshal(sessions.Record{State: state, Version: sessions.RecordVersion})
	if err != nil {
		return err
	}
	fp.data = data
	fp.saves++
	return nil
}

// FailSaves makes every subsequent Save return err. Pass nil to recover.
func (fp *FakePersister) FailSaves(err error) {
	fp.lock.Lock()
	defer fp.lock.Unlock()
	fp.failErr = err
}

// Saves returns how many saves succeeded.
func (fp *FakePersister) Saves() int {
	fp.lock.RLock()
	defer fp.lock.RUnlock()
	return fp.saves
}

// Raw returns the last persisted bytes.
func (fp *FakePersister) Raw() []byte {
	fp.lock.RLock()
	defer fp.lock.RUnlock()
	return append([]byte(nil), fp.data...)
}

// SetRaw replaces the persisted bytes, e.g. to simulate a corrupt record.
func (fp *FakePersister) SetRaw(data []byte) {
	fp.lock.Lock()
	defer fp.lock.Unlock()
	fp.data = data
}
