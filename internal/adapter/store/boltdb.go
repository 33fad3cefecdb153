package store

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
	"invidx/internal/domain"
)

var (
	bucketSession = []byte("session")
	bucketWords   = []byte("words")
	bucketDocs    = []byte("docs")
	keyMeta       = []byte("meta")
)

// BoltStore is the session journal. It holds the live word table, registry
// and flags between CLI invocations; it is not the database file.
type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketSession, bucketWords, bucketDocs} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

type sessionMeta struct {
	SessionID string              `json:"session_id"`
	StartedAt int64               `json:"started_at"`
	Flags     domain.SessionFlags `json:"flags"`
}

// SaveSnapshot replaces the journal contents with snap.
func (s *BoltStore) SaveSnapshot(snap domain.Snapshot) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		words, err := resetBucket(tx, bucketWords)
		if err != nil {
			return err
		}
		docs, err := resetBucket(tx, bucketDocs)
		if err != nil {
			return err
		}

		for i, entry := range snap.Entries {
			data, err := json.Marshal(entry)
			if err != nil {
				return err
			}
			if err := words.Put(seqKey(i), data); err != nil {
				return err
			}
		}
		for i, id := range snap.Documents {
			if err := docs.Put(seqKey(i), []byte(id)); err != nil {
				return err
			}
		}

		meta := sessionMeta{
			SessionID: snap.SessionID,
			StartedAt: snap.StartedAt.Unix(),
			Flags:     snap.Flags,
		}
		data, err := json.Marshal(meta)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketSession).Put(keyMeta, data)
	})
}

// LoadSnapshot returns the journalled session. ok is false when no session
// has been journalled since the last Clear.
func (s *BoltStore) LoadSnapshot() (domain.Snapshot, bool, error) {
	var snap domain.Snapshot
	found := false
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketSession).Get(keyMeta)
		if data == nil {
			return nil
		}
		var meta sessionMeta
		if err := json.Unmarshal(data, &meta); err != nil {
			return fmt.Errorf("corrupt session meta: %w", err)
		}
		snap.SessionID = meta.SessionID
		snap.StartedAt = time.Unix(meta.StartedAt, 0)
		snap.Flags = meta.Flags

		// Keys are big-endian sequence numbers, so cursor order is write order.
		err := tx.Bucket(bucketWords).ForEach(func(k, v []byte) error {
			var entry domain.SnapshotEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				return fmt.Errorf("corrupt word entry %d: %w", binary.BigEndian.Uint64(k), err)
			}
			snap.Entries = append(snap.Entries, entry)
			return nil
		})
		if err != nil {
			return err
		}

		err = tx.Bucket(bucketDocs).ForEach(func(k, v []byte) error {
			snap.Documents = append(snap.Documents, string(v))
			return nil
		})
		if err != nil {
			return err
		}

		found = true
		return nil
	})
	return snap, found, err
}

// Clear ends the journalled session. Schema info is kept.
func (s *BoltStore) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := resetBucket(tx, bucketWords); err != nil {
			return err
		}
		if _, err := resetBucket(tx, bucketDocs); err != nil {
			return err
		}
		return tx.Bucket(bucketSession).Delete(keyMeta)
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func resetBucket(tx *bbolt.Tx, name []byte) (*bbolt.Bucket, error) {
	if tx.Bucket(name) != nil {
		if err := tx.DeleteBucket(name); err != nil {
			return nil, err
		}
	}
	return tx.CreateBucket(name)
}

func seqKey(i int) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, uint64(i))
	return k
}
