// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package lock

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jeranaias/applock/internal/pattern"
)

// =============================================================================
// ENGINE
// =============================================================================

// Engine evaluates submitted credentials for one lock session.
//
// Engine is owned by a single presentation layer and is not safe for
// concurrent use. It performs no I/O beyond its logger.
type Engine struct {
	store      *CredentialStore
	limiter    *AttemptLimiter
	recognizer *pattern.Recognizer
	logger     *zap.Logger

	sessionID string
	modality  Modality
	state     State
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLimiter replaces the attempt limiter.
func WithLimiter(l *AttemptLimiter) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.limiter = l
		}
	}
}

// WithAttemptLimit builds the limiter with the given maximum.
func WithAttemptLimit(max int) EngineOption {
	return func(e *Engine) {
		e.limiter = NewAttemptLimiter(WithMaxAttempts(max))
	}
}

// WithRecognizer replaces the pattern recognizer.
func WithRecognizer(r *pattern.Recognizer) EngineOption {
	return func(e *Engine) {
		if r != nil {
			e.recognizer = r
		}
	}
}

// WithGrid builds the recognizer over grid.
func WithGrid(g *pattern.Grid) EngineOption {
	return func(e *Engine) {
		e.recognizer = pattern.NewRecognizer(g)
	}
}

// WithLogger sets the logger for session events.
func WithLogger(logger *zap.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithInitialModality sets the modality selected at start. PIN by default.
func WithInitialModality(m Modality) EngineOption {
	return func(e *Engine) {
		if m.Valid() {
			e.modality = m
		}
	}
}

// WithSessionID overrides the generated session identifier.
func WithSessionID(id string) EngineOption {
	return func(e *Engine) {
		if id != "" {
			e.sessionID = id
		}
	}
}

// NewEngine creates an engine in StateActive around store.
func NewEngine(store *CredentialStore, opts ...EngineOption) *Engine {
	e := &Engine{
		store:     store,
		limiter:   NewAttemptLimiter(),
		logger:    zap.NewNop(),
		sessionID: uuid.NewString(),
		modality:  ModalityPIN,
		state:     StateActive,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.recognizer == nil {
		e.recognizer = pattern.NewRecognizer(nil)
	}

	e.logger = e.logger.With(zap.String("session_id", e.sessionID))
	e.logger.Info("lock session started",
		zap.Int("max_attempts", e.limiter.MaxAttempts()),
		zap.Stringer("modality", e.modality),
	)
	return e
}

// =============================================================================
// ACCESSORS
// =============================================================================

// SessionID returns the identifier attached to this session's log entries.
func (e *Engine) SessionID() string { return e.sessionID }

// State returns the current lifecycle state.
func (e *Engine) State() State { return e.state }

// Modality returns the selected modality.
func (e *Engine) Modality() Modality { return e.modality }

// Remaining returns the attempts left before lockout.
func (e *Engine) Remaining() int { return e.limiter.Remaining() }

// MaxAttempts returns the configured attempt limit.
func (e *Engine) MaxAttempts() int { return e.limiter.MaxAttempts() }

// IsPasswordProvisioned reports whether a session password exists.
func (e *Engine) IsPasswordProvisioned() bool { return e.store.IsPasswordProvisioned() }

// Recognizer exposes the pattern capture for renderers.
func (e *Engine) Recognizer() *pattern.Recognizer { return e.recognizer }

// =============================================================================
// MODALITY AND PROVISIONING
// =============================================================================

// SelectModality changes which credential the next submission is checked
// against. Attempt state is untouched.
func (e *Engine) SelectModality(m Modality) error {
	if e.state.Terminal() {
		return ErrInvalidState
	}
	if !m.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownModality, int(m))
	}
	if m != e.modality {
		e.logger.Debug("modality selected",
			zap.Stringer("from", e.modality),
			zap.Stringer("to", m),
		)
	}
	e.modality = m
	return nil
}

// NeedsProvisioning reports whether selecting m requires the password
// prompt first.
func (e *Engine) NeedsProvisioning(m Modality) bool {
	return m == ModalityPassword && !e.store.IsPasswordProvisioned()
}

// ProvisionPassword sets the session password.
func (e *Engine) ProvisionPassword(value string) error {
	if err := e.store.ProvisionPassword(value); err != nil {
		e.logger.Warn("password provisioning rejected", zap.Error(err))
		return err
	}
	e.logger.Info("password provisioned")
	return nil
}

// CancelPasswordProvisioning reverts the selection to fallback after the
// user abandons the password prompt, so the engine is never left with
// Password selected and nothing to compare against.
func (e *Engine) CancelPasswordProvisioning(fallback Modality) error {
	if fallback == ModalityPassword || !fallback.Valid() {
		fallback = ModalityPIN
	}
	e.logger.Info("password provisioning cancelled", zap.Stringer("fallback", fallback))
	if e.modality == ModalityPassword && !e.store.IsPasswordProvisioned() {
		return e.SelectModality(fallback)
	}
	return nil
}

// =============================================================================
// PATTERN CAPTURE
// =============================================================================

// BeginGesture starts a pattern capture at pointer-down.
func (e *Engine) BeginGesture() { e.recognizer.BeginGesture() }

// FeedPoint records a pointer position during a gesture.
func (e *Engine) FeedPoint(x, y float64) (int, bool) { return e.recognizer.FeedPoint(x, y) }

// EndGesture finishes the capture at pointer-up.
func (e *Engine) EndGesture() { e.recognizer.EndGesture() }

// ClearPattern discards the capture.
func (e *Engine) ClearPattern() { e.recognizer.Clear() }

// CurrentPattern returns the captured node ids.
func (e *Engine) CurrentPattern() []int { return e.recognizer.CurrentSequence() }

// =============================================================================
// VERIFICATION
// =============================================================================

// Verify checks submitted against the stored credential for m.
//
// After a terminal outcome every call fails with ErrInvalidState. A
// password check before provisioning returns OutcomeConfigurationError
// without using an attempt. A match moves the engine to StateGranted;
// a mismatch uses one attempt and moves it to StateLockedOut when none
// remain.
func (e *Engine) Verify(m Modality, submitted Credential) (Outcome, error) {
	if e.state.Terminal() {
		e.logger.Error("verify called after terminal outcome", zap.Stringer("state", e.state))
		return Outcome{}, ErrInvalidState
	}
	if !m.Valid() {
		return Outcome{}, fmt.Errorf("%w: %d", ErrUnknownModality, int(m))
	}

	if m == ModalityPassword && !e.store.IsPasswordProvisioned() {
		out := Outcome{Kind: OutcomeConfigurationError, Remaining: e.limiter.Remaining()}
		e.logOutcome(m, out)
		return out, nil
	}

	matched, err := e.store.Matches(m, submitted)
	if err != nil {
		return Outcome{}, fmt.Errorf("verify %s: %w", m, err)
	}

	var out Outcome
	if matched {
		e.state = StateGranted
		out = Outcome{Kind: OutcomeGranted, Remaining: e.limiter.Remaining(), Terminal: true}
	} else {
		remaining, lockedOut := e.limiter.RecordFailure()
		if lockedOut {
			e.state = StateLockedOut
			out = Outcome{Kind: OutcomeDenied, Remaining: 0, Terminal: true}
		} else {
			out = Outcome{Kind: OutcomeDenied, Remaining: remaining}
		}
	}

	e.logOutcome(m, out)
	return out, nil
}

// Submit verifies text against the selected modality. With Pattern
// selected it verifies the current capture and ignores text.
func (e *Engine) Submit(text string) (Outcome, error) {
	if e.modality == ModalityPattern {
		return e.SubmitPattern()
	}
	return e.Verify(e.modality, TextCredential(text))
}

// SubmitPattern verifies the capture as it stands now. A denied pattern
// is cleared so the next attempt starts from an empty grid.
func (e *Engine) SubmitPattern() (Outcome, error) {
	out, err := e.Verify(ModalityPattern, PatternCredential(e.recognizer.CurrentSequence()))
	if err != nil {
		return out, err
	}
	if out.Kind == OutcomeDenied {
		e.recognizer.Clear()
	}
	return out, nil
}

func (e *Engine) logOutcome(m Modality, out Outcome) {
	fields := []zap.Field{
		zap.Stringer("modality", m),
		zap.Stringer("outcome", out.Kind),
		zap.Int("remaining", out.Remaining),
		zap.Int("failed", e.limiter.Failed()),
	}

	switch {
	case out.Kind == OutcomeGranted:
		e.logger.Info("access granted", fields...)
	case out.LockedOut():
		e.logger.Warn("lockout reached", fields...)
	case out.Kind == OutcomeDenied:
		e.logger.Warn("access denied", fields...)
	default:
		e.logger.Warn("verification not possible", fields...)
	}
}
