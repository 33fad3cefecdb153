package memstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"invidx/internal/domain"
)

func TestPostingsStore_InsertOrMerge(t *testing.T) {
	s := NewPostingsStore()

	s.InsertOrMerge("cat", "doc1.txt", 1)
	s.InsertOrMerge("dog", "doc1.txt", 1)
	s.InsertOrMerge("cat", "doc1.txt", 1)
	s.InsertOrMerge("cat", "doc2.txt", 1)

	occs, ok := s.Lookup("cat")
	require.True(t, ok)
	assert.Equal(t, []domain.Occurrence{occ("doc1.txt", 2), occ("doc2.txt", 1)}, occs)

	occs, ok = s.Lookup("dog")
	require.True(t, ok)
	assert.Equal(t, []domain.Occurrence{occ("doc1.txt", 1)}, occs)

	_, ok = s.Lookup("bird")
	assert.False(t, ok)
	assert.Equal(t, 2, s.Len())
}

func TestPostingsStore_CaseSensitiveSameBucket(t *testing.T) {
	s := NewPostingsStore()
	s.InsertOrMerge("Apple", "a.txt", 1)
	s.InsertOrMerge("apple", "a.txt", 1)

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 2, s.BucketLen(0))

	_, ok := s.Lookup("APPLE")
	assert.False(t, ok)
}

func TestPostingsStore_SetOccurrence(t *testing.T) {
	s := NewPostingsStore()
	s.SetOccurrence("cat", "doc1.txt", 4)
	s.SetOccurrence("cat", "doc1.txt", 2)
	s.SetOccurrence("cat", "doc2.txt", 1)

	occs, ok := s.Lookup("cat")
	require.True(t, ok)
	assert.Equal(t, []domain.Occurrence{occ("doc1.txt", 2), occ("doc2.txt", 1)}, occs)
}

func TestPostingsStore_LookupReturnsCopy(t *testing.T) {
	s := NewPostingsStore()
	s.InsertOrMerge("cat", "doc1.txt", 1)

	occs, _ := s.Lookup("cat")
	occs[0].Count = 100

	again, _ := s.Lookup("cat")
	assert.Equal(t, 1, again[0].Count)
}

func TestPostingsStore_Enumerate(t *testing.T) {
	s := NewPostingsStore()
	s.InsertOrMerge("zoo", "a.txt", 1)
	s.InsertOrMerge("_x", "a.txt", 1)
	s.InsertOrMerge("bat", "a.txt", 1)
	s.InsertOrMerge("7up", "a.txt", 1)
	s.InsertOrMerge("Ant", "a.txt", 1)
	s.InsertOrMerge("ant", "a.txt", 1)

	var buckets []int
	var words []string
	for b, e := range s.Enumerate() {
		buckets = append(buckets, b)
		words = append(words, e.Word)
		assert.Equal(t, len(e.Occurrences), e.DocumentCount())
	}
	assert.Equal(t, []int{0, 0, 1, 25, 26, 27}, buckets)
	assert.Equal(t, []string{"Ant", "ant", "bat", "zoo", "7up", "_x"}, words)

	// Restartable.
	n := 0
	for range s.Enumerate() {
		n++
	}
	assert.Equal(t, 6, n)

	// Early stop.
	n = 0
	for range s.Enumerate() {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestPostingsStore_Empty(t *testing.T) {
	s := NewPostingsStore()
	assert.Equal(t, 0, s.Len())
	for range s.Enumerate() {
		t.Fatal("expected no entries")
	}
	assert.Equal(t, 0, s.BucketLen(-1))
	assert.Equal(t, 0, s.BucketLen(domain.BucketCount))
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.True(t, r.Add("doc1.txt"))
	assert.True(t, r.Add("doc2.txt"))
	assert.False(t, r.Add("doc1.txt"))

	assert.True(t, r.Contains("doc2.txt"))
	assert.False(t, r.Contains("doc3.txt"))
	assert.Equal(t, []string{"doc1.txt", "doc2.txt"}, r.IDs())
	assert.Equal(t, 2, r.Len())
}

func occ(id string, count int) domain.Occurrence {
	return domain.Occurrence{DocumentID: id, Count: count}
}
