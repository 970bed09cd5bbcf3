// Package autosave flushes a locally edited word draft to the server after
// the editor has been quiet for a debounce interval.
package autosave

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/lexicon-backend/internal/domain"
)

const (
	DefaultDebounce = 2000 * time.Millisecond
	DefaultHold     = 2000 * time.Millisecond
)

// Status is the visible state of a session.
type Status int

const (
	StatusIdle Status = iota
	StatusSaving
	StatusSaved
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSaving:
		return "saving"
	case StatusSaved:
		return "saved"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// Saver persists a full word under its previous lemma.
type Saver interface {
	UpdateWord(ctx context.Context, prevLemma string, w domain.Word) (*domain.Word, error)
}

// Config tunes a session. Zero durations take the defaults.
type Config struct {
	Debounce time.Duration
	Hold     time.Duration
	// OnChange, if set, is called after every status transition with the
	// new status and, for StatusError, the save error. Calls are made
	// outside the session lock, in order per session.
	OnChange func(Status, error)
}

// Session owns one draft and its autosave cycle:
//
//	idle --edit--> (debounce) --flush--> saving --ok--> saved --hold--> idle
//	                                            --err--> error --hold--> idle
//
// Every edit re-arms the debounce timer. A flush sends the whole draft.
// Failed saves are not retried; the next edit starts a new cycle.
type Session struct {
	log   *slog.Logger
	saver Saver
	clock clockwork.Clock
	cfg   Config

	// saveMu serializes flushes so a rename lands before the next save
	// reads prevLemma.
	saveMu sync.Mutex
	// notifyMu keeps OnChange calls ordered.
	notifyMu sync.Mutex

	mu        sync.Mutex
	draft     *Draft
	prevLemma string
	dirty     bool
	status    Status
	lastErr   error
	debounce  clockwork.Timer
	hold      clockwork.Timer
	editGen   uint64
	holdGen   uint64
	closed    bool
}

// NewSession starts a session for a stored word.
func NewSession(logger *slog.Logger, saver Saver, clock clockwork.Clock, w domain.Word, cfg Config) *Session {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Hold <= 0 {
		cfg.Hold = DefaultHold
	}
	return &Session{
		log:       logger.With("component", "autosave", "lemma", w.Lemma),
		saver:     saver,
		clock:     clock,
		cfg:       cfg,
		draft:     NewDraft(w),
		prevLemma: w.Lemma,
	}
}

// Edit applies fn to the draft and re-arms the debounce timer. If fn
// returns an error the draft is left as fn left it and no save is
// scheduled for this edit.
func (s *Session) Edit(fn func(d *Draft) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if err := fn(s.draft); err != nil {
		return err
	}

	s.dirty = true
	s.editGen++
	gen := s.editGen
	if s.debounce != nil {
		s.debounce.Stop()
	}
	s.debounce = s.clock.AfterFunc(s.cfg.Debounce, func() { s.flush(gen) })
	return nil
}

// Flush saves pending edits immediately, cancelling the debounce timer.
// It blocks until the save finishes and returns its error.
func (s *Session) Flush() error {
	s.mu.Lock()
	if s.debounce != nil {
		s.debounce.Stop()
	}
	s.editGen++
	gen := s.editGen
	s.mu.Unlock()

	return s.flush(gen)
}

// Status reports the current status and the error of the last failed save.
func (s *Session) Status() (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.lastErr
}

// Draft returns a copy of the current draft.
func (s *Session) Draft() domain.Word {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Word()
}

// PrevLemma is the lemma the server knows the word by.
func (s *Session) PrevLemma() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prevLemma
}

// Close stops pending timers. Edits after Close fail with ErrClosed; a
// save already in flight runs to completion.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.debounce != nil {
		s.debounce.Stop()
	}
	if s.hold != nil {
		s.hold.Stop()
	}
}

// flush saves the draft if gen is still the latest edit. The save runs
// with a background context: once started it is not cancelled.
func (s *Session) flush(gen uint64) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	if gen != s.editGen || !s.dirty || s.closed {
		s.mu.Unlock()
		return nil
	}
	snapshot := s.draft.Word()
	prev := s.prevLemma
	s.dirty = false
	s.holdGen++
	if s.hold != nil {
		s.hold.Stop()
	}
	s.status, s.lastErr = StatusSaving, nil
	s.mu.Unlock()
	s.notify(StatusSaving, nil)

	start := s.clock.Now()
	_, err := s.saver.UpdateWord(context.Background(), prev, snapshot)

	s.mu.Lock()
	next := StatusSaved
	if err != nil {
		next = StatusError
		s.lastErr = err
		s.log.Warn("autosave failed", slog.String("error", err.Error()))
	} else {
		s.prevLemma = snapshot.Lemma
		s.log.Debug("autosave done", slog.Duration("took", s.clock.Since(start)))
	}
	s.status = next
	s.holdGen++
	holdGen := s.holdGen
	if !s.closed {
		s.hold = s.clock.AfterFunc(s.cfg.Hold, func() { s.settle(holdGen) })
	}
	s.mu.Unlock()
	s.notify(next, err)

	return err
}

// settle returns a saved or errored session to idle unless another save
// started meanwhile.
func (s *Session) settle(holdGen uint64) {
	s.mu.Lock()
	if holdGen != s.holdGen || (s.status != StatusSaved && s.status != StatusError) {
		s.mu.Unlock()
		return
	}
	s.status = StatusIdle
	s.mu.Unlock()
	s.notify(StatusIdle, nil)
}

func (s *Session) notify(st Status, err error) {
	if s.cfg.OnChange == nil {
		return
	}
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	s.cfg.OnChange(st, err)
}
