package port

import (
	"iter"

	"invidx/internal/domain"
)

// PostingsIndex is the bucketed word table.
type PostingsIndex interface {
	InsertOrMerge(word, documentID string, increment int)

	Lookup(word string) ([]domain.Occurrence, bool)

	Enumerate() iter.Seq2[int, domain.WordEntry]

	Len() int
}

// DocumentRegistry records which documents are merged into the index.
type DocumentRegistry interface {
	Add(id string) bool

	Contains(id string) bool

	IDs() []string

	Len() int
}

// SessionJournal persists a session between process runs.
type SessionJournal interface {
	LoadSnapshot() (domain.Snapshot, bool, error)

	SaveSnapshot(snap domain.Snapshot) error

	Clear() error
}
