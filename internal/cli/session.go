package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"invidx/config"
	"invidx/internal/adapter/analyzer"
	"invidx/internal/adapter/fs"
	"invidx/internal/adapter/store"
	"invidx/internal/logging"
	"invidx/internal/port"
	"invidx/internal/usecase"
)

// sessionHandle pairs the live session with the journal it is restored
// from and committed to.
type sessionHandle struct {
	cfg      *config.Config
	dir      string
	journal  sessionJournal
	expander port.PathExpander
	session  *usecase.Session
	log      *slog.Logger
}

type sessionJournal interface {
	port.SessionJournal
	Close() error
}

// openSession restores the journalled session under dir, or begins a new
// one. A new session loads the saved database first when resumeDB is set.
func openSession(cfg *config.Config, dir string, resumeDB bool) (*sessionHandle, error) {
	log := logging.WithComponent("session")

	if err := cfg.EnsureSessionDir(dir); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	journal, err := openJournal(cfg, dir, log)
	if err != nil {
		return nil, err
	}

	opts := sessionOptions(cfg)
	h := &sessionHandle{
		cfg:      cfg,
		dir:      dir,
		journal:  journal,
		expander: fs.NewWalker(cfg.Index.Includes, cfg.Index.Excludes),
		log:      log,
	}

	snap, found, err := journal.LoadSnapshot()
	if err != nil {
		journal.Close()
		return nil, fmt.Errorf("failed to read session journal: %w", err)
	}
	if found {
		h.session = usecase.RestoreSession(snap, opts)
		log.Debug("session restored", "session_id", snap.SessionID, "words", h.session.WordCount())
		return h, nil
	}

	h.session = usecase.NewSession(opts)
	log.Debug("session started", "session_id", h.session.ID())

	dbPath := cfg.DatabasePath(dir)
	if resumeDB || cfg.Database.ResumeOnStart {
		if _, err := os.Stat(dbPath); err == nil {
			if _, err := h.session.Load(dbPath); err != nil {
				log.Warn("could not resume saved database", "path", dbPath, "error", err)
			}
		}
	}
	return h, nil
}

// openJournal opens the bbolt journal and brings its schema up to date. A
// journal written by a newer build or under different index limits is
// discarded.
func openJournal(cfg *config.Config, dir string, log *slog.Logger) (*store.BoltStore, error) {
	journal, err := store.NewBoltStore(cfg.SessionDBPath(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to open session journal: %w", err)
	}

	migration, err := journal.CheckMigration(cfg)
	if err != nil {
		journal.Close()
		return nil, fmt.Errorf("failed to check migration: %w", err)
	}
	if migration.NeedsRebuild {
		log.Warn("discarding session journal", "reason", migration.Reason)
		if err := journal.Clear(); err != nil {
			journal.Close()
			return nil, fmt.Errorf("failed to clear journal: %w", err)
		}
	}
	if migration.NeedsRebuild || migration.NeedsMigration {
		if err := journal.Migrate(cfg); err != nil {
			journal.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
	}
	return journal, nil
}

func sessionOptions(cfg *config.Config) usecase.SessionOptions {
	return usecase.SessionOptions{
		Tokenizer:        analyzer.NewTokenizer(cfg.Index.MaxWordLen),
		Extension:        cfg.Index.Extension,
		MaxWordLen:       cfg.Index.MaxWordLen,
		MaxDocumentIDLen: cfg.Index.MaxDocumentIDLen,
		MaxLineLen:       cfg.Database.MaxLineLen,
		Logger:           logging.WithComponent("usecase"),
	}
}

// commit writes the session back to the journal.
func (h *sessionHandle) commit() error {
	if err := h.journal.SaveSnapshot(h.session.Snapshot()); err != nil {
		return fmt.Errorf("failed to write session journal: %w", err)
	}
	return nil
}

// save writes the database file and ends the session.
func (h *sessionHandle) save() (string, error) {
	path := h.cfg.DatabasePath(h.dir)
	if err := h.session.Save(path); err != nil {
		return "", err
	}
	if err := h.journal.Clear(); err != nil {
		return path, fmt.Errorf("database saved but journal not cleared: %w", err)
	}
	return path, nil
}

func (h *sessionHandle) Close() error {
	return h.journal.Close()
}

// withSession opens the session under the configured root, runs fn, and
// commits the journal if fn reports a change, even when fn also failed.
func withSession(fn func(h *sessionHandle) (changed bool, err error)) error {
	h, err := openSession(GetConfig(), GetRootDir(), resume)
	if err != nil {
		return err
	}
	defer h.Close()

	changed, runErr := fn(h)
	if changed {
		if err := h.commit(); err != nil {
			return errors.Join(runErr, err)
		}
	}
	return runErr
}
