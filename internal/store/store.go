// Package store persists the last successful sync and a short history of
// refresh attempts in a bbolt database.
package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/plantingplanner/planner-tui/internal/toast"
)

// MaxAttempts is how many attempt records are retained.
const MaxAttempts = 50

// DBFileName is the database file created inside the state directory.
const DBFileName = "planner-tui.db"

// Bucket names
var (
	bucketSync     = []byte("sync")
	bucketAttempts = []byte("attempts")

	keyLastSync = []byte("last")
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store is closed")

// LastSync describes the most recent successful refresh.
type LastSync struct {
	FinishedAt     *string   `json:"finished_at"`
	UpdatedRecords int       `json:"updated_records"`
	RecordedAt     time.Time `json:"recorded_at"`
}

// AttemptRecord is the outcome of one refresh attempt.
type AttemptRecord struct {
	Seq        uint64        `json:"seq"`
	Variant    toast.Variant `json:"variant"`
	Message    string        `json:"message"`
	Detail     *string       `json:"detail,omitempty"`
	FinishedAt time.Time     `json:"finished_at"`
}

// SyncStore implements the refresh controller's recorder on top of BoltDB.
// With an empty directory it keeps everything in memory.
type SyncStore struct {
	db *bolt.DB

	mu       sync.RWMutex
	closed   bool
	memLast  *LastSync
	memTrail []AttemptRecord
	memSeq   uint64
}

// Open opens (or creates) the database under dir. An empty dir selects
// memory-only mode.
func Open(dir string) (*SyncStore, error) {
	if dir == "" {
		return &SyncStore{}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	dbPath := filepath.Join(dir, DBFileName)
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketSync, bucketAttempts} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create buckets: %w", err)
	}

	return &SyncStore{db: db}, nil
}

// Close releases the database.
func (s *SyncStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordSync replaces the stored last sync.
func (s *SyncStore) RecordSync(ls LastSync) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.db == nil {
		s.memLast = &ls
		return nil
	}

	data, err := json.Marshal(ls)
	if err != nil {
		return fmt.Errorf("failed to encode last sync: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSync).Put(keyLastSync, data)
	})
}

// LastSync returns the stored last sync. ok is false when none was recorded.
func (s *SyncStore) LastSync() (ls LastSync, ok bool, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return LastSync{}, false, ErrClosed
	}
	if s.db == nil {
		if s.memLast == nil {
			return LastSync{}, false, nil
		}
		return *s.memLast, true, nil
	}

	var data []byte
	err = s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketSync).Get(keyLastSync); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return LastSync{}, false, err
	}
	if data == nil {
		return LastSync{}, false, nil
	}
	if err := json.Unmarshal(data, &ls); err != nil {
		return LastSync{}, false, fmt.Errorf("failed to decode last sync: %w", err)
	}
	return ls, true, nil
}

// RecordAttempt appends rec, assigning its sequence number, and trims the
// history to MaxAttempts entries.
func (s *SyncStore) RecordAttempt(rec AttemptRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.db == nil {
		s.memSeq++
		rec.Seq = s.memSeq
		s.memTrail = append(s.memTrail, rec)
		if over := len(s.memTrail) - MaxAttempts; over > 0 {
			s.memTrail = append([]AttemptRecord(nil), s.memTrail[over:]...)
		}
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketAttempts)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		rec.Seq = seq

		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to encode attempt: %w", err)
		}
		if err := b.Put(seqKey(seq), data); err != nil {
			return err
		}

		// Keys are big-endian so the cursor walks oldest first.
		var keys [][]byte
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			keys = append(keys, append([]byte(nil), k...))
		}
		for i := 0; i < len(keys)-MaxAttempts; i++ {
			if err := b.Delete(keys[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// Attempts returns up to limit records, newest first. limit <= 0 returns all.
func (s *SyncStore) Attempts(limit int) ([]AttemptRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}

	var out []AttemptRecord
	if s.db == nil {
		for i := len(s.memTrail) - 1; i >= 0; i-- {
			if limit > 0 && len(out) >= limit {
				break
			}
			out = append(out, s.memTrail[i])
		}
		return out, nil
	}

	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketAttempts).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(out) >= limit {
				break
			}
			var rec AttemptRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("failed to decode attempt %d: %w", binary.BigEndian.Uint64(k), err)
			}
			out = append(out, rec)
		}
		return nil
	})
	return out, err
}

func seqKey(seq uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, seq)
	return k
}
