package usecase

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"invidx/internal/adapter/analyzer"
	"invidx/internal/adapter/codec"
	"invidx/internal/adapter/fs"
	"invidx/internal/adapter/memstore"
	"invidx/internal/domain"
	"invidx/internal/port"
)

// ProgressFunc is called after each candidate document is handled.
type ProgressFunc func(processed, total int, current string)

// SessionOptions configures a Session. Zero values select defaults.
type SessionOptions struct {
	Files            port.FileAccess
	Tokenizer        port.Tokenizer
	Extension        string
	MaxWordLen       int
	MaxDocumentIDLen int
	MaxLineLen       int
	Logger           *slog.Logger
}

// Session owns the word table, the document registry and the flags that
// gate create, update and save. One Session exists per run; save ends it.
type Session struct {
	id        string
	startedAt time.Time
	flags     domain.SessionFlags

	index    *memstore.PostingsStore
	registry *memstore.Registry
	ingest   *IngestUseCase

	files      port.FileAccess
	extension  string
	maxWordLen int
	codecOpts  codec.Options
	log        *slog.Logger
}

// NewSession starts an empty session with a fresh id.
func NewSession(opts SessionOptions) *Session {
	return newSession(uuid.NewString(), time.Now(), opts)
}

// RestoreSession rebuilds a session from a journal snapshot. Words are
// placed by their own bucket, not the one recorded in the snapshot.
func RestoreSession(snap domain.Snapshot, opts SessionOptions) *Session {
	s := newSession(snap.SessionID, snap.StartedAt, opts)
	for _, entry := range snap.Entries {
		for _, occ := range entry.Occurrences {
			s.index.SetOccurrence(entry.Word, occ.DocumentID, occ.Count)
		}
	}
	for _, id := range snap.Documents {
		s.registry.Add(id)
	}
	s.flags = snap.Flags
	return s
}

func newSession(id string, startedAt time.Time, opts SessionOptions) *Session {
	if opts.Files == nil {
		opts.Files = fs.OSFiles{}
	}
	if opts.Extension == "" {
		opts.Extension = ".txt"
	}
	if opts.MaxWordLen <= 0 {
		opts.MaxWordLen = domain.MaxWordLen
	}
	if opts.MaxDocumentIDLen <= 0 {
		opts.MaxDocumentIDLen = domain.MaxDocumentIDLen
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Tokenizer == nil {
		opts.Tokenizer = analyzer.NewTokenizer(opts.MaxWordLen)
	}

	log := opts.Logger.With("session_id", id)
	index := memstore.NewPostingsStore()
	registry := memstore.NewRegistry()

	return &Session{
		id:         id,
		startedAt:  startedAt,
		index:      index,
		registry:   registry,
		ingest:     NewIngestUseCase(opts.Files, opts.Tokenizer, index, registry, opts.Extension, opts.MaxDocumentIDLen, log),
		files:      opts.Files,
		extension:  opts.Extension,
		maxWordLen: opts.MaxWordLen,
		codecOpts: codec.Options{
			MaxLineLen:       opts.MaxLineLen,
			MaxWordLen:       opts.MaxWordLen,
			MaxDocumentIDLen: opts.MaxDocumentIDLen,
		},
		log: log,
	}
}

// CreateResult contains the results of a create operation.
type CreateResult struct {
	Ingested []string
	Skipped  []string
	Rejected []error
	Failed   []error
	Tokens   int
}

// Create validates paths and ingests every candidate not already in the
// registry. It sets the created flag whenever at least one candidate
// survived validation, even if some of them could not be ingested.
func (s *Session) Create(paths []string, progress ProgressFunc) (*CreateResult, error) {
	if len(paths) == 0 {
		return nil, domain.ErrNoInput
	}
	if err := Allowed(OpCreate, s.flags); err != nil {
		s.log.Warn("create refused", "error", err)
		return nil, err
	}

	candidates, rejected := s.ingest.Validate(paths)
	result := &CreateResult{Rejected: rejected}
	if len(candidates) == 0 {
		return result, domain.ErrNoValidInput
	}

	for i, path := range candidates {
		if id := s.ingest.DocumentID(path); s.registry.Contains(id) {
			s.log.Info("file already present in database, skipping", "path", path, "document_id", id)
			result.Skipped = append(result.Skipped, path)
		} else if n, err := s.ingest.Ingest(path); err != nil {
			s.log.Error("ingest failed", "path", path, "error", err)
			result.Failed = append(result.Failed, err)
		} else {
			result.Ingested = append(result.Ingested, path)
			result.Tokens += n
		}
		if progress != nil {
			progress(i+1, len(candidates), path)
		}
	}

	s.flags = transition(OpCreate, s.flags)
	return result, nil
}

// LoadResult describes a database file merged into the session.
type LoadResult struct {
	Path  string
	Stats codec.DecodeStats
}

// Update merges the database file at path into the session. The file must
// carry the configured extension and begin and end with '#'. On any error
// the flags are left as they were; lines merged before a malformed line
// stay merged.
func (s *Session) Update(path string) (*LoadResult, error) {
	if err := Allowed(OpUpdate, s.flags); err != nil {
		s.log.Warn("update refused", "error", err)
		return nil, err
	}
	if filepath.Ext(path) != s.extension {
		return nil, domain.NewValidationError(path, fmt.Sprintf(domain.ReasonExtension, s.extension))
	}

	f, err := s.files.Open(path)
	if err != nil {
		return nil, &domain.ValidationError{Path: path, Reason: domain.ReasonNotFound, Err: err}
	}
	defer f.Close()

	size, err := fs.Size(f)
	if err != nil {
		return nil, err
	}
	if err := codec.CheckSentinel(f, size); err != nil {
		return nil, withPath(err, path)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	res, err := s.decode(path, f)
	if err != nil {
		return res, err
	}
	s.flags = transition(OpUpdate, s.flags)
	return res, nil
}

// Load merges the database file at path into the session without any
// state check, as done when a previous session is resumed. It sets the
// loaded flag on success.
func (s *Session) Load(path string) (*LoadResult, error) {
	f, err := s.files.Open(path)
	if err != nil {
		return nil, fmt.Errorf("no saved database found: %w", err)
	}
	defer f.Close()

	res, err := s.decode(path, f)
	if err != nil {
		return res, err
	}
	s.flags.Loaded = true
	return res, nil
}

func (s *Session) decode(path string, r io.Reader) (*LoadResult, error) {
	stats, err := codec.Decode(r, s.index, s.registry, s.codecOpts)
	res := &LoadResult{Path: path, Stats: stats}
	if err != nil {
		s.log.Error("database load stopped", "path", path, "lines_merged", stats.Lines, "error", err)
		return res, withPath(err, path)
	}
	if stats.Short > 0 {
		s.log.Warn("lines with fewer documents than declared", "path", path, "count", stats.Short)
	}
	if stats.Relocated > 0 {
		s.log.Warn("stored bucket disagreed with word, placed by word", "path", path, "count", stats.Relocated)
	}
	s.log.Info("database loaded", "path", path, "entries", stats.Entries, "documents", stats.Documents)
	return res, nil
}

// Save writes the index to path and resets the flags, ending the session.
// The file is replaced atomically; on error the flags are unchanged. A
// replaced file keeps its permissions; a new one gets 0666 less the umask.
func (s *Session) Save(path string) error {
	tmpPath := filepath.Join(filepath.Dir(path), ".database-"+uuid.NewString()+".tmp")
	tmp, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0666)
	if err != nil {
		return fmt.Errorf("could not open %s for writing: %w", path, err)
	}
	defer os.Remove(tmpPath)

	if err := codec.Encode(tmp, s.index); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write database: %w", err)
	}
	if info, err := os.Stat(path); err == nil {
		if err := tmp.Chmod(info.Mode().Perm()); err != nil {
			tmp.Close()
			return err
		}
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write database: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	s.flags = transition(OpSave, s.flags)
	s.log.Info("database saved", "path", path, "words", s.index.Len(), "documents", s.registry.Len())
	return nil
}

// Search looks word up exactly. The query is cut to the word length limit
// the same way ingested tokens are.
func (s *Session) Search(word string) (domain.SearchResult, bool) {
	word = domain.Truncate(word, s.maxWordLen)
	occs, ok := s.index.Lookup(word)
	if !ok {
		return domain.SearchResult{}, false
	}
	return domain.SearchResult{
		Word:        word,
		Bucket:      domain.BucketOf(word),
		Occurrences: occs,
	}, true
}

// Entries yields the whole index in bucket order.
func (s *Session) Entries() iter.Seq2[int, domain.WordEntry] {
	return s.index.Enumerate()
}

// Snapshot captures the session for the journal.
func (s *Session) Snapshot() domain.Snapshot {
	snap := domain.Snapshot{
		SessionID: s.id,
		StartedAt: s.startedAt,
		Flags:     s.flags,
		Documents: s.registry.IDs(),
	}
	for bucket, entry := range s.index.Enumerate() {
		snap.Entries = append(snap.Entries, domain.SnapshotEntry{Bucket: bucket, WordEntry: entry})
	}
	return snap
}

func (s *Session) ID() string                 { return s.id }
func (s *Session) StartedAt() time.Time       { return s.startedAt }
func (s *Session) Flags() domain.SessionFlags { return s.flags }
func (s *Session) Documents() []string        { return s.registry.IDs() }
func (s *Session) WordCount() int             { return s.index.Len() }

func withPath(err error, path string) error {
	var ferr *domain.FormatError
	if errors.As(err, &ferr) && ferr.Path == "" {
		ferr.Path = path
	}
	return err
}
