package builder

import (
	"context"
	"errors"
	"sync"
	"time"

	"clinicsite-backend/internal/sections"
	"clinicsite-backend/pkg/logger"
)

// Gateway is the persistence contract the editing session consumes. The
// in-memory document is the source of truth during the session; a save is a
// one-way flush of its current value, not a merge.
type Gateway interface {
	// Load hydrates the site and its acknowledged revision.
	Load(ctx context.Context) (*Site, int64, error)
	// Save writes the document against the given revision. Implementations
	// return ErrSaveConflict when the server holds a newer revision.
	Save(ctx context.Context, site *Site, revision int64) (int64, error)
	// Publish marks the current saved state live. Idempotent.
	Publish(ctx context.Context) error
}

// SessionConfig tunes a session's history bound and save retry behaviour.
type SessionConfig struct {
	HistoryLimit int
	SaveRetries  int
	RetryBackoff time.Duration
}

// Session owns one editing session: the clinic identity, the opaque auth
// token the gateway forwards, the revision counters and the editor state. It
// is passed explicitly; there is no ambient session.
type Session struct {
	mu sync.Mutex

	clinicID uint
	gateway  Gateway
	cfg      SessionConfig

	editor *Editor

	// ackedRevision is the last revision the gateway acknowledged.
	ackedRevision int64
	// generation is bumped whenever the session replaces its document
	// wholesale (a reload). In-flight save responses from an older
	// generation are discarded instead of mutating the new document.
	generation uint64

	saving      bool
	pendingSave bool
}

// NewSession prepares a session for one clinic. Load must be called before
// editing.
func NewSession(clinicID uint, gw Gateway, cfg SessionConfig) *Session {
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = DefaultHistoryLimit
	}
	if cfg.SaveRetries <= 0 {
		cfg.SaveRetries = 3
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 250 * time.Millisecond
	}
	return &Session{
		clinicID: clinicID,
		gateway:  gw,
		cfg:      cfg,
	}
}

// Load hydrates the site from the gateway and seeds the history baseline.
// Reloading replaces the document and invalidates any in-flight save
// response.
func (s *Session) Load(ctx context.Context) error {
	site, revision, err := s.gateway.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.editor = NewEditor(sections.Builtin(), site, s.cfg.HistoryLimit)
	s.ackedRevision = revision
	s.generation++
	s.pendingSave = false
	return nil
}

// Editor returns the editing surface. Nil before Load.
func (s *Session) Editor() *Editor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor
}

// Revision returns the last acknowledged server revision.
func (s *Session) Revision() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ackedRevision
}

// Save flushes the current document to the gateway. Saves are serialized: a
// save requested while another is in flight is coalesced into one trailing
// save of the latest document, so a stale intermediate state can never
// overwrite a newer one. A revision conflict is surfaced as ErrSaveConflict.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	if s.editor == nil {
		s.mu.Unlock()
		return errors.New("session not loaded")
	}
	if s.saving {
		s.pendingSave = true
		s.mu.Unlock()
		return nil
	}
	s.saving = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.saving = false
		s.mu.Unlock()
	}()

	for {
		s.mu.Lock()
		if err := s.editor.Flush(); err != nil {
			s.mu.Unlock()
			return err
		}
		snapshot := s.editor.Site().Clone()
		revision := s.ackedRevision
		generation := s.generation
		s.pendingSave = false
		s.mu.Unlock()

		newRevision, err := s.saveWithRetry(ctx, snapshot, revision)
		if err != nil {
			return err
		}

		s.mu.Lock()
		if s.generation == generation {
			s.ackedRevision = newRevision
		} else {
			// The session reloaded while this save was in flight; its
			// acknowledgement belongs to a document we no longer hold.
			logger.Debug("Discarding stale save acknowledgement", map[string]interface{}{
				"clinic_id": s.clinicID,
				"revision":  newRevision,
			})
		}
		again := s.pendingSave
		s.mu.Unlock()

		if !again {
			return nil
		}
	}
}

// Publish flushes pending edits, validates the whole site, saves and then
// asks the gateway to mark the saved state live.
func (s *Session) Publish(ctx context.Context) error {
	s.mu.Lock()
	if s.editor == nil {
		s.mu.Unlock()
		return errors.New("session not loaded")
	}
	if err := s.editor.Flush(); err != nil {
		s.mu.Unlock()
		return err
	}
	if verr := s.editor.ValidateForPublish(); verr != nil {
		s.mu.Unlock()
		return verr
	}
	s.mu.Unlock()

	if err := s.Save(ctx); err != nil {
		return err
	}
	return s.gateway.Publish(ctx)
}

// saveWithRetry retries transient failures with backoff. Conflicts and
// context cancellation are terminal; the in-memory document is never
// discarded on failure.
func (s *Session) saveWithRetry(ctx context.Context, site *Site, revision int64) (int64, error) {
	var lastErr error
	backoff := s.cfg.RetryBackoff

	for attempt := 0; attempt <= s.cfg.SaveRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return 0, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		newRevision, err := s.gateway.Save(ctx, site, revision)
		if err == nil {
			return newRevision, nil
		}
		if errors.Is(err, ErrSaveConflict) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return 0, err
		}

		lastErr = err
		logger.Warn("Save attempt failed", map[string]interface{}{
			"clinic_id": s.clinicID,
			"attempt":   attempt + 1,
			"error":     err.Error(),
		})
	}

	return 0, lastErr
}
