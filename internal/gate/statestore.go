// Package gate implements the per-day, per-band notification dedup state
// machine. The persisted state is a single JSON document guarded by a file
// lock so overlapping scheduled runs cannot double-dispatch.
package gate

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/tphakala/fishcast-go/internal/errors"
	"github.com/tphakala/fishcast-go/internal/logging"
)

// DayRecord tracks which bands have been notified on one calendar day.
type DayRecord struct {
	Green bool `json:"green"`
	Amber bool `json:"amber"`
}

// State maps ISO calendar dates to their notification records. Day records
// are created lazily; an absent band is implicitly not sent.
type State map[string]DayRecord

// lockRetryDelay is how often a blocked lock acquisition retries.
const lockRetryDelay = 100 * time.Millisecond

// Store persists the dedup state as one JSON document behind a file lock.
type Store struct {
	path        string
	fileLock    *flock.Flock
	lockTimeout time.Duration
}

// NewStore creates a store for the state document at path. The lock file
// lives next to the document.
func NewStore(path string, lockTimeout time.Duration) *Store {
	return &Store{
		path:        path,
		fileLock:    flock.New(path + ".lock"),
		lockTimeout: lockTimeout,
	}
}

// Lock acquires the cross-process file lock, bounded by the store's lock
// timeout so a crashed holder cannot block forever. The returned function
// releases the lock.
func (s *Store) Lock(ctx context.Context) (func(), error) {
	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	locked, err := s.fileLock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil {
		return nil, errors.New(err).
			Component("gate").
			Category(errors.CategoryTimeout).
			Context("lock_path", s.fileLock.Path()).
			Build()
	}
	if !locked {
		return nil, errors.Newf("could not acquire state lock within %s", s.lockTimeout).
			Component("gate").
			Category(errors.CategoryTimeout).
			Build()
	}

	return func() {
		if err := s.fileLock.Unlock(); err != nil {
			logging.Warn("failed to release state lock", "error", err)
		}
	}, nil
}

// Load reads the state document. A missing file or an unparseable document is
// treated as empty state, never an error.
func (s *Store) Load() State {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Warn("failed to read state document, treating as empty", "path", s.path, "error", err)
		}
		return State{}
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		logging.Warn("failed to parse state document, treating as empty", "path", s.path, "error", err)
		return State{}
	}
	if state == nil {
		state = State{}
	}
	return state
}

// Save writes the whole state document atomically via a temp file rename.
func (s *Store) Save(state State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return errors.New(err).
			Component("gate").
			Category(errors.CategoryState).
			Build()
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return errors.New(err).
			Component("gate").
			Category(errors.CategoryFileIO).
			Build()
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.New(err).
			Component("gate").
			Category(errors.CategoryFileIO).
			Build()
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.New(err).
			Component("gate").
			Category(errors.CategoryFileIO).
			Build()
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return errors.New(err).
			Component("gate").
			Category(errors.CategoryFileIO).
			Build()
	}
	return nil
}
