package memstore

import (
	"iter"
	"slices"

	"invidx/internal/domain"
)

type bucket struct {
	entries []*domain.WordEntry
	byWord  map[string]int
}

// PostingsStore is the in-memory word table. Words are placed by
// domain.BucketOf and kept in insertion order within a bucket.
// It is not safe for concurrent use.
type PostingsStore struct {
	buckets [domain.BucketCount]bucket
	words   int
}

func NewPostingsStore() *PostingsStore {
	s := &PostingsStore{}
	for i := range s.buckets {
		s.buckets[i].byWord = make(map[string]int)
	}
	return s
}

// InsertOrMerge adds increment to the count of word in documentID,
// creating the word entry or the occurrence as needed.
func (s *PostingsStore) InsertOrMerge(word, documentID string, increment int) {
	entry := s.entry(word)
	if i := indexOf(entry.Occurrences, documentID); i >= 0 {
		entry.Occurrences[i].Count += increment
		return
	}
	entry.Occurrences = append(entry.Occurrences, domain.Occurrence{
		DocumentID: documentID,
		Count:      increment,
	})
}

// SetOccurrence records count for word in documentID, replacing any count
// already held for that pair.
func (s *PostingsStore) SetOccurrence(word, documentID string, count int) {
	entry := s.entry(word)
	if i := indexOf(entry.Occurrences, documentID); i >= 0 {
		entry.Occurrences[i].Count = count
		return
	}
	entry.Occurrences = append(entry.Occurrences, domain.Occurrence{
		DocumentID: documentID,
		Count:      count,
	})
}

// Lookup returns the occurrences of word. Matching is exact and
// case-sensitive.
func (s *PostingsStore) Lookup(word string) ([]domain.Occurrence, bool) {
	b := &s.buckets[domain.BucketOf(word)]
	i, ok := b.byWord[word]
	if !ok {
		return nil, false
	}
	return slices.Clone(b.entries[i].Occurrences), true
}

// Enumerate yields every entry with its bucket, buckets in ascending order
// and entries in insertion order. Yielded entries are copies.
func (s *PostingsStore) Enumerate() iter.Seq2[int, domain.WordEntry] {
	return func(yield func(int, domain.WordEntry) bool) {
		for i := range s.buckets {
			for _, e := range s.buckets[i].entries {
				cp := domain.WordEntry{Word: e.Word, Occurrences: slices.Clone(e.Occurrences)}
				if !yield(i, cp) {
					return
				}
			}
		}
	}
}

// Len returns the number of distinct words.
func (s *PostingsStore) Len() int {
	return s.words
}

// BucketLen returns the number of words held in bucket i.
func (s *PostingsStore) BucketLen(i int) int {
	if i < 0 || i >= domain.BucketCount {
		return 0
	}
	return len(s.buckets[i].entries)
}

func (s *PostingsStore) entry(word string) *domain.WordEntry {
	b := &s.buckets[domain.BucketOf(word)]
	if i, ok := b.byWord[word]; ok {
		return b.entries[i]
	}
	e := &domain.WordEntry{Word: word}
	b.byWord[word] = len(b.entries)
	b.entries = append(b.entries, e)
	s.words++
	return e
}

func indexOf(occs []domain.Occurrence, documentID string) int {
	return slices.IndexFunc(occs, func(o domain.Occurrence) bool {
		return o.DocumentID == documentID
	})
}

// Registry is the ordered set of documents merged into the index.
type Registry struct {
	ids  []string
	seen map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{seen: make(map[string]struct{})}
}

// Add registers id and reports whether it was new.
func (r *Registry) Add(id string) bool {
	if _, ok := r.seen[id]; ok {
		return false
	}
	r.seen[id] = struct{}{}
	r.ids = append(r.ids, id)
	return true
}

func (r *Registry) Contains(id string) bool {
	_, ok := r.seen[id]
	return ok
}

// IDs returns the registered ids in registration order.
func (r *Registry) IDs() []string {
	return slices.Clone(r.ids)
}

func (r *Registry) Len() int {
	return len(r.ids)
}
