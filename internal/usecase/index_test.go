package usecase

import (
	"errors"
	"io"
	iofs "io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"invidx/internal/adapter/analyzer"
	"invidx/internal/adapter/fs"
	"invidx/internal/adapter/memstore"
	"invidx/internal/domain"
	"invidx/internal/logging"
	"invidx/internal/port"
)

type failingTokenizer struct{}

func (failingTokenizer) Tokenize(io.Reader) ([]string, error) {
	return nil, errors.New("read failed")
}

// statFailFiles opens every path but cannot stat it.
type statFailFiles struct{}

type statFailFile struct{ *strings.Reader }

func (statFailFile) Close() error                 { return nil }
func (statFailFile) Stat() (iofs.FileInfo, error) { return nil, errors.New("stat failed") }

func (statFailFiles) Open(string) (port.File, error) {
	return statFailFile{strings.NewReader("cat")}, nil
}

func newIngest(tok port.Tokenizer) (*IngestUseCase, *memstore.PostingsStore, *memstore.Registry) {
	index := memstore.NewPostingsStore()
	registry := memstore.NewRegistry()
	uc := NewIngestUseCase(fs.OSFiles{}, tok, index, registry, ".txt", domain.MaxDocumentIDLen, logging.Discard())
	return uc, index, registry
}

func TestValidate(t *testing.T) {
	chdirTemp(t)
	writeFile(t, "doc1.txt", "cat dog")
	writeFile(t, "doc2.txt", "bird")
	writeFile(t, "empty.txt", "")
	writeFile(t, "notes.md", "cat")

	uc, index, registry := newIngest(analyzer.NewTokenizer(0))
	candidates, rejected := uc.Validate([]string{
		"doc1.txt", "notes.md", "missing.txt", "empty.txt", "doc1.txt", "doc2.txt",
	})

	assert.Equal(t, []string{"doc1.txt", "doc2.txt"}, candidates)
	require.Len(t, rejected, 4)

	reasons := make([]string, 0, len(rejected))
	for _, err := range rejected {
		assert.True(t, errors.Is(err, domain.ErrValidation))
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		reasons = append(reasons, verr.Path+" "+verr.Reason)
	}
	assert.Equal(t, []string{
		"notes.md must have .txt extension",
		"missing.txt file not found",
		"empty.txt file is empty",
		"doc1.txt duplicate file",
	}, reasons)

	assert.Equal(t, 0, index.Len())
	assert.Equal(t, 0, registry.Len())
}

func TestDocumentID(t *testing.T) {
	uc, _, _ := newIngest(analyzer.NewTokenizer(0))
	assert.Equal(t, "doc1.txt", uc.DocumentID("doc1.txt"))
	assert.Equal(t, "a-very-long-documen", uc.DocumentID("a-very-long-document-name.txt"))
}

func TestIngest(t *testing.T) {
	chdirTemp(t)
	writeFile(t, "doc1.txt", "cat dog\ncat")

	uc, index, registry := newIngest(analyzer.NewTokenizer(0))
	n, err := uc.Ingest("doc1.txt")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	occs, ok := index.Lookup("cat")
	require.True(t, ok)
	assert.Equal(t, []domain.Occurrence{{DocumentID: "doc1.txt", Count: 2}}, occs)
	assert.Equal(t, []string{"doc1.txt"}, registry.IDs())
}

func TestIngest_ReadFailureLeavesIndexUntouched(t *testing.T) {
	chdirTemp(t)
	writeFile(t, "doc1.txt", "cat")

	uc, index, registry := newIngest(failingTokenizer{})
	_, err := uc.Ingest("doc1.txt")
	require.Error(t, err)
	assert.Equal(t, 0, index.Len())
	assert.Equal(t, 0, registry.Len())
}

func TestValidate_StatFailureIsNotNotFound(t *testing.T) {
	uc := NewIngestUseCase(statFailFiles{}, analyzer.NewTokenizer(0), memstore.NewPostingsStore(),
		memstore.NewRegistry(), ".txt", domain.MaxDocumentIDLen, logging.Discard())

	candidates, rejected := uc.Validate([]string{"doc1.txt"})
	assert.Empty(t, candidates)
	require.Len(t, rejected, 1)

	var verr *domain.ValidationError
	require.ErrorAs(t, rejected[0], &verr)
	assert.Equal(t, domain.ReasonUnreadable, verr.Reason)
	assert.EqualError(t, verr.Err, "stat failed")
}
