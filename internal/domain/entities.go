package domain

import (
	"time"
	"unicode/utf8"
)

const (
	// BucketCount is the number of buckets in the word table and the value
	// written in the database header.
	BucketCount = 28

	// MaxWordLen is the longest word kept; longer tokens are truncated.
	MaxWordLen = 49

	// MaxDocumentIDLen is the longest document id kept; longer ids are truncated.
	MaxDocumentIDLen = 19

	digitBucket = 26
	otherBucket = 27
)

// Occurrence records how many times a word appears in one document.
type Occurrence struct {
	DocumentID string `json:"document_id"`
	Count      int    `json:"count"`
}

// WordEntry is one distinct word and the documents it occurs in, in the
// order they were first seen.
type WordEntry struct {
	Word        string       `json:"word"`
	Occurrences []Occurrence `json:"occurrences"`
}

// DocumentCount is the number of distinct documents containing the word.
func (e WordEntry) DocumentCount() int {
	return len(e.Occurrences)
}

// SearchResult is the outcome of an exact-match lookup.
type SearchResult struct {
	Word        string
	Bucket      int
	Occurrences []Occurrence
}

// SessionFlags tracks which guarded operations have run since the last save.
type SessionFlags struct {
	Created bool `json:"created"`
	Updated bool `json:"updated"`
	Loaded  bool `json:"loaded"`
}

// SnapshotEntry is a word entry together with the bucket it was stored in.
type SnapshotEntry struct {
	Bucket int `json:"bucket"`
	WordEntry
}

// Snapshot is the full state of a session, used to carry a session across
// process boundaries.
type Snapshot struct {
	SessionID string          `json:"session_id"`
	StartedAt time.Time       `json:"started_at"`
	Flags     SessionFlags    `json:"flags"`
	Documents []string        `json:"documents"`
	Entries   []SnapshotEntry `json:"entries"`
}

// BucketOf maps a word to its bucket using the first byte: letters map to
// their alphabet position regardless of case, digits to 26, anything else
// (including the empty word) to 27.
func BucketOf(word string) int {
	if word == "" {
		return otherBucket
	}
	c := word[0]
	switch {
	case c >= 'A' && c <= 'Z':
		return int(c - 'A')
	case c >= 'a' && c <= 'z':
		return int(c - 'a')
	case c >= '0' && c <= '9':
		return digitBucket
	default:
		return otherBucket
	}
}

// Truncate shortens s to at most max bytes without splitting a UTF-8
// sequence. Words and document ids are fixed-width in the database format,
// so the loss is intentional. When no rune starts within the first max
// bytes the cut falls at max, so a non-empty s never truncates to "".
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	if cut == 0 {
		cut = max
	}
	return s[:cut]
}
