package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"invidx/internal/adapter/memstore"
	"invidx/internal/domain"
)

func TestTableWriter_WriteIndex(t *testing.T) {
	s := memstore.NewPostingsStore()
	s.InsertOrMerge("cat", "doc1.txt", 2)
	s.InsertOrMerge("cat", "doc2.txt", 1)
	s.InsertOrMerge("dog", "doc1.txt", 1)

	var buf bytes.Buffer
	require.NoError(t, NewTableWriter(&buf).WriteIndex(s.Enumerate()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, strings.Repeat("-", 60), lines[0])
	assert.Equal(t, []string{"Index", "Word", "Document", "Count"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"2", "cat", "doc1.txt", "2"}, strings.Fields(lines[3]))
	assert.Equal(t, []string{"cat", "doc2.txt", "1"}, strings.Fields(lines[4]), "bucket shown once per word")
	assert.True(t, strings.HasPrefix(lines[4], "       cat"))
	assert.Equal(t, []string{"3", "dog", "doc1.txt", "1"}, strings.Fields(lines[5]))
	assert.Equal(t, strings.Repeat("-", 60), lines[6])
}

func TestTableWriter_WriteIndexEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableWriter(&buf).WriteIndex(memstore.NewPostingsStore().Enumerate()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 4)
}

func TestTableWriter_WriteSearch(t *testing.T) {
	var buf bytes.Buffer
	res := domain.SearchResult{
		Word:   "cat",
		Bucket: 2,
		Occurrences: []domain.Occurrence{
			{DocumentID: "doc1.txt", Count: 1},
			{DocumentID: "doc2.txt", Count: 1},
		},
	}
	require.NoError(t, NewTableWriter(&buf).WriteSearch(res))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, []string{"2", "cat", "doc1.txt", "1"}, strings.Fields(lines[3]))
	assert.Equal(t, []string{"2", "cat", "doc2.txt", "1"}, strings.Fields(lines[4]))
}

func TestTableWriter_WriteNotFound(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableWriter(&buf).WriteNotFound("bird"))
	assert.Equal(t, "Word 'bird' not found in the database.\n", buf.String())
}
