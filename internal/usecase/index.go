package usecase

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"invidx/internal/adapter/fs"
	"invidx/internal/domain"
	"invidx/internal/port"
)

// IngestUseCase validates candidate documents and merges their words into
// the index.
type IngestUseCase struct {
	files       port.FileAccess
	tokenizer   port.Tokenizer
	index       port.PostingsIndex
	registry    port.DocumentRegistry
	extension   string
	maxDocIDLen int
	log         *slog.Logger
}

// NewIngestUseCase creates a new ingest use case.
func NewIngestUseCase(
	files port.FileAccess,
	tokenizer port.Tokenizer,
	index port.PostingsIndex,
	registry port.DocumentRegistry,
	extension string,
	maxDocIDLen int,
	log *slog.Logger,
) *IngestUseCase {
	return &IngestUseCase{
		files:       files,
		tokenizer:   tokenizer,
		index:       index,
		registry:    registry,
		extension:   extension,
		maxDocIDLen: maxDocIDLen,
		log:         log,
	}
}

// Validate filters paths down to the candidates worth ingesting, in input
// order. Each rejected path yields a *domain.ValidationError; a rejection
// never stops the rest of the batch. Neither the index nor the registry is
// consulted.
func (u *IngestUseCase) Validate(paths []string) ([]string, []error) {
	var candidates []string
	var rejected []error
	seen := make(map[string]struct{}, len(paths))

	for _, path := range paths {
		if err := u.validateOne(path, seen); err != nil {
			u.log.Warn("file rejected", "path", path, "error", err)
			rejected = append(rejected, err)
			continue
		}
		seen[path] = struct{}{}
		candidates = append(candidates, path)
		u.log.Debug("file validated", "path", path)
	}
	return candidates, rejected
}

func (u *IngestUseCase) validateOne(path string, seen map[string]struct{}) error {
	if filepath.Ext(path) != u.extension {
		return domain.NewValidationError(path, fmt.Sprintf(domain.ReasonExtension, u.extension))
	}

	f, err := u.files.Open(path)
	if err != nil {
		return &domain.ValidationError{Path: path, Reason: domain.ReasonNotFound, Err: err}
	}
	defer f.Close()

	empty, err := fs.IsEmpty(f)
	if err != nil {
		return &domain.ValidationError{Path: path, Reason: domain.ReasonUnreadable, Err: err}
	}
	if empty {
		return domain.NewValidationError(path, domain.ReasonEmpty)
	}

	if _, dup := seen[path]; dup {
		return domain.NewValidationError(path, domain.ReasonDuplicate)
	}
	return nil
}

// DocumentID returns the id a path is indexed under.
func (u *IngestUseCase) DocumentID(path string) string {
	return domain.Truncate(path, u.maxDocIDLen)
}

// Ingest adds every token of the document at path to the index and
// registers the document. The whole document is tokenized before the index
// is touched, so a read failure contributes nothing. It returns the number
// of tokens merged.
func (u *IngestUseCase) Ingest(path string) (int, error) {
	f, err := u.files.Open(path)
	if err != nil {
		return 0, fmt.Errorf("could not open file %s: %w", path, err)
	}
	tokens, err := u.tokenizer.Tokenize(f)
	f.Close()
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}

	id := u.DocumentID(path)
	for _, token := range tokens {
		u.index.InsertOrMerge(token, id, 1)
	}
	u.registry.Add(id)

	u.log.Info("document ingested", "path", path, "document_id", id, "tokens", len(tokens))
	return len(tokens), nil
}
