package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"invidx/config"
	"invidx/internal/domain"
)

func openStore(t *testing.T) *BoltStore {
	t.Helper()
	st, err := NewBoltStore(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func sampleSnapshot() domain.Snapshot {
	return domain.Snapshot{
		SessionID: "3f1c8a52-0000-4000-8000-000000000001",
		StartedAt: time.Unix(1760400000, 0),
		Flags:     domain.SessionFlags{Created: true},
		Documents: []string{"doc1.txt", "doc2.txt"},
		Entries: []domain.SnapshotEntry{
			{Bucket: 2, WordEntry: domain.WordEntry{Word: "cat", Occurrences: []domain.Occurrence{
				{DocumentID: "doc1.txt", Count: 1},
				{DocumentID: "doc2.txt", Count: 1},
			}}},
			{Bucket: 2, WordEntry: domain.WordEntry{Word: "Cat", Occurrences: []domain.Occurrence{
				{DocumentID: "doc2.txt", Count: 3},
			}}},
			{Bucket: 3, WordEntry: domain.WordEntry{Word: "dog", Occurrences: []domain.Occurrence{
				{DocumentID: "doc1.txt", Count: 1},
			}}},
		},
	}
}

func TestBoltStore_EmptyJournal(t *testing.T) {
	st := openStore(t)

	_, ok, err := st.LoadSnapshot()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBoltStore_SnapshotRoundTrip(t *testing.T) {
	st := openStore(t)
	snap := sampleSnapshot()

	require.NoError(t, st.SaveSnapshot(snap))

	got, ok, err := st.LoadSnapshot()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, snap.SessionID, got.SessionID)
	assert.Equal(t, snap.StartedAt.Unix(), got.StartedAt.Unix())
	assert.Equal(t, snap.Flags, got.Flags)
	assert.Equal(t, snap.Documents, got.Documents)
	assert.Equal(t, snap.Entries, got.Entries)
}

func TestBoltStore_SaveReplaces(t *testing.T) {
	st := openStore(t)
	require.NoError(t, st.SaveSnapshot(sampleSnapshot()))

	smaller := sampleSnapshot()
	smaller.Entries = smaller.Entries[:1]
	smaller.Documents = smaller.Documents[:1]
	require.NoError(t, st.SaveSnapshot(smaller))

	got, ok, err := st.LoadSnapshot()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, got.Entries, 1)
	assert.Equal(t, []string{"doc1.txt"}, got.Documents)
}

func TestBoltStore_PreservesOrderPastByteBoundary(t *testing.T) {
	st := openStore(t)
	snap := domain.Snapshot{SessionID: "s"}
	for i := 0; i < 300; i++ {
		snap.Documents = append(snap.Documents, string(rune('a'+i%26))+".txt")
	}
	require.NoError(t, st.SaveSnapshot(snap))

	got, _, err := st.LoadSnapshot()
	require.NoError(t, err)
	assert.Equal(t, snap.Documents, got.Documents)
}

func TestBoltStore_Clear(t *testing.T) {
	st := openStore(t)
	cfg := config.DefaultConfig()
	require.NoError(t, st.Migrate(cfg))
	require.NoError(t, st.SaveSnapshot(sampleSnapshot()))

	require.NoError(t, st.Clear())

	_, ok, err := st.LoadSnapshot()
	require.NoError(t, err)
	assert.False(t, ok)

	info, err := st.GetSchemaInfo()
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, info.Version, "schema info survives Clear")
}

func TestBoltStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	st, err := NewBoltStore(path)
	require.NoError(t, err)
	require.NoError(t, st.SaveSnapshot(sampleSnapshot()))
	require.NoError(t, st.Close())

	st, err = NewBoltStore(path)
	require.NoError(t, err)
	defer st.Close()

	got, ok, err := st.LoadSnapshot()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, got.Entries, 3)
}
