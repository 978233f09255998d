// Package chat orchestrates send-message round trips between the session
// store and a Provider. It owns the application state: the session
// collection, the selected persona and the single in-flight send guard.
// All state mutation goes through its methods, which are meant to run on
// one event loop; Turn.Next is the only call safe to make elsewhere.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"lawbot"
)

// BriefingPrompt is the canned latest-briefing query, sent through the
// normal pipeline with the persona forced to general.
const BriefingPrompt = "대한민국의 최근 1개월 이내 주요 법령 개정 사항과 대법원 중요 판례를 검색하여 핵심 내용을 요약해줘."

// documentNotice is the system message appended when a reference document
// is registered.
const documentNotice = "[시스템] 검토 자료가 등록되었습니다: %q. \n해당 자료를 바탕으로 정밀 분석을 시작합니다."

// CredentialFunc resolves the current API credential. ok is false when no
// credential is available and the user must be prompted.
type CredentialFunc func() (value string, ok bool)

// Orchestrator coordinates one reply round trip at a time: it appends the
// user message, builds the bounded history, opens the provider stream and
// folds each fragment into the originating session's placeholder message.
type Orchestrator struct {
	store      lawbot.Store
	provider   lawbot.Provider
	credential CredentialFunc
	persona    lawbot.Persona
	model      string

	sending       bool
	pendingDelete string

	now    func() time.Time
	logger *zap.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithClock sets the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// WithLogger sets the logger. Default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithModel sets a model ID override passed through to the provider.
func WithModel(model string) Option {
	return func(o *Orchestrator) { o.model = model }
}

// WithPersona sets the initial persona. Default is the general persona.
func WithPersona(p lawbot.Persona) Option {
	return func(o *Orchestrator) { o.persona = p }
}

// New creates an Orchestrator seeded with one welcome session.
func New(provider lawbot.Provider, credential CredentialFunc, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		provider:   provider,
		credential: credential,
		persona:    lawbot.PersonaGeneral,
		now:        time.Now,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.store = lawbot.NewStore(o.now())
	return o
}

// Store returns the current store snapshot.
func (o *Orchestrator) Store() lawbot.Store { return o.store }

// Sessions returns the sessions in display order.
func (o *Orchestrator) Sessions() []lawbot.Session { return o.store.Sorted() }

// Active returns the active session.
func (o *Orchestrator) Active() lawbot.Session {
	s, _ := o.store.Active()
	return s
}

// Sending reports whether a reply stream is in flight.
func (o *Orchestrator) Sending() bool { return o.sending }

// Persona returns the selected persona.
func (o *Orchestrator) Persona() lawbot.Persona { return o.persona }

// SetPersona selects the expert mode for subsequent sends.
func (o *Orchestrator) SetPersona(p lawbot.Persona) { o.persona = p }

// NewSession creates a fresh session and makes it active.
func (o *Orchestrator) NewSession() {
	o.store = o.store.Create(o.now())
}

// Select makes id the active session.
func (o *Orchestrator) Select(id string) {
	o.store = o.store.Select(id)
}

// TogglePin flips the pinned flag of the session with id.
func (o *Orchestrator) TogglePin(id string) {
	o.store = o.store.TogglePin(id)
}

// RequestDelete starts the two-phase deletion of the session with id.
// The session is not removed until ConfirmDelete.
func (o *Orchestrator) RequestDelete(id string) {
	if _, ok := o.store.Get(id); ok {
		o.pendingDelete = id
	}
}

// PendingDelete returns the session awaiting deletion confirmation.
func (o *Orchestrator) PendingDelete() (lawbot.Session, bool) {
	if o.pendingDelete == "" {
		return lawbot.Session{}, false
	}
	return o.store.Get(o.pendingDelete)
}

// ConfirmDelete removes the session requested via RequestDelete.
func (o *Orchestrator) ConfirmDelete() {
	if o.pendingDelete == "" {
		return
	}
	o.store = o.store.Delete(o.pendingDelete, o.now())
	o.pendingDelete = ""
}

// CancelDelete abandons a pending deletion.
func (o *Orchestrator) CancelDelete() { o.pendingDelete = "" }

// AddDocument attaches a reference document to the active session and
// appends a system notice to its transcript.
func (o *Orchestrator) AddDocument(title, content string) {
	active, ok := o.store.Active()
	if !ok {
		return
	}
	now := o.now()
	doc := lawbot.Document{
		ID:      uuid.NewString(),
		Title:   title,
		Content: content,
		AddedAt: now,
	}
	notice := lawbot.Message{
		ID:        uuid.NewString(),
		Role:      lawbot.RoleSystem,
		Text:      fmt.Sprintf(documentNotice, title),
		Timestamp: now,
	}
	o.store = o.store.Update(active.ID, func(s lawbot.Session) lawbot.Session {
		s.Documents = append(s.Documents, doc)
		s.Messages = append(s.Messages, notice)
		s.LastModified = now
		return s
	})
}

// RemoveDocument detaches the document with id from the active session.
func (o *Orchestrator) RemoveDocument(id string) {
	active, ok := o.store.Active()
	if !ok {
		return
	}
	o.store = o.store.Update(active.ID, func(s lawbot.Session) lawbot.Session {
		docs := s.Documents[:0:0]
		for _, d := range s.Documents {
			if d.ID != id {
				docs = append(docs, d)
			}
		}
		s.Documents = docs
		return s
	})
}

// ResetSession clears the active session in place: reset title, reset
// bot message, empty document set.
func (o *Orchestrator) ResetSession() {
	active, ok := o.store.Active()
	if !ok {
		return
	}
	now := o.now()
	o.store = o.store.Update(active.ID, func(s lawbot.Session) lawbot.Session {
		s.Title = lawbot.ResetTitle
		s.Documents = nil
		s.Messages = []lawbot.Message{{
			ID:        uuid.NewString(),
			Role:      lawbot.RoleBot,
			Text:      lawbot.ResetText,
			Timestamp: now,
		}}
		s.LastModified = now
		return s
	})
}

// Turn tracks one in-flight reply stream. The target session and
// placeholder message ids are captured at send time, so late fragments
// fold into the originating session even after the user switches away.
type Turn struct {
	SessionID string
	MessageID string

	stream    lawbot.Stream
	text      strings.Builder
	citations []lawbot.Citation
}

// Next pulls the next fragment from the reply stream. It does not touch
// the store, so it is safe to call off the event loop; io.EOF signals
// normal completion. Pass the result to Orchestrator.Fold.
func (t *Turn) Next() (lawbot.Fragment, error) {
	return t.stream.Next()
}

// Send starts one reply round trip for the active session. It rejects
// empty or whitespace-only text (ErrEmptyMessage), concurrent sends
// (ErrBusy) and a missing credential (ErrCredentialRequired) without
// touching the transcript. Otherwise it appends the user message,
// derives the session title on the first user message, appends the bot
// placeholder and opens the stream.
//
// When opening the stream fails the placeholder is converted to an error
// message and the classified error is returned with a nil Turn.
func (o *Orchestrator) Send(ctx context.Context, text string) (*Turn, error) {
	if strings.TrimSpace(text) == "" {
		return nil, lawbot.ErrEmptyMessage
	}
	if o.sending {
		return nil, lawbot.ErrBusy
	}
	cred, ok := o.credential()
	if !ok {
		return nil, lawbot.ErrCredentialRequired
	}
	active, ok := o.store.Active()
	if !ok {
		o.store = o.store.Create(o.now())
		active, _ = o.store.Active()
	}

	now := o.now()
	sessionID := active.ID
	userMsg := lawbot.Message{
		ID:        uuid.NewString(),
		Role:      lawbot.RoleUser,
		Text:      text,
		Timestamp: now,
	}
	o.store = o.store.Update(sessionID, func(s lawbot.Session) lawbot.Session {
		if !s.HasUserMessages() {
			s.Title = lawbot.DeriveTitle(text)
		}
		s.Messages = append(s.Messages, userMsg)
		s.LastModified = now
		return s
	})

	// History and documents are snapshot after the user message but
	// before the placeholder, so the empty placeholder never enters the
	// prompt.
	target, _ := o.store.Get(sessionID)
	history := BuildHistory(target.Messages)

	placeholder := lawbot.Message{
		ID:        uuid.NewString(),
		Role:      lawbot.RoleBot,
		Timestamp: now,
	}
	o.store = o.store.Update(sessionID, func(s lawbot.Session) lawbot.Session {
		s.Messages = append(s.Messages, placeholder)
		s.LastModified = now
		return s
	})

	o.sending = true
	turn := &Turn{SessionID: sessionID, MessageID: placeholder.ID}

	req := lawbot.Request{
		Credential: cred,
		UserText:   text,
		History:    history,
		Documents:  target.Documents,
		Persona:    o.persona,
		Model:      o.model,
	}
	stream, err := o.provider.Stream(ctx, req)
	if err != nil {
		o.logger.Error("open reply stream", zap.String("session", sessionID), zap.Error(err))
		return nil, o.Finish(turn, err)
	}
	turn.stream = stream

	o.logger.Info("send",
		zap.String("session", sessionID),
		zap.String("persona", string(o.persona)),
		zap.Int("history", len(history)),
		zap.Int("documents", len(target.Documents)))
	return turn, nil
}

// Fold folds one fragment into the turn's placeholder message: text
// deltas accumulate by concatenation, and a non-empty citation list
// replaces the running one. Only the placeholder is touched, addressed
// by the ids captured at send time.
func (o *Orchestrator) Fold(t *Turn, f lawbot.Fragment) {
	t.text.WriteString(f.Text)
	if len(f.Citations) > 0 {
		t.citations = f.Citations
	}
	text := t.text.String()
	citations := t.citations
	o.store = o.store.Update(t.SessionID, func(s lawbot.Session) lawbot.Session {
		for i := range s.Messages {
			if s.Messages[i].ID == t.MessageID {
				s.Messages[i].Text = text
				s.Messages[i].Citations = citations
			}
		}
		return s
	})
}

// Finish settles the turn and clears the in-flight guard. With a nil
// error (or io.EOF already consumed by the caller) the accumulated reply
// stays as the settled answer and Finish returns nil. Otherwise the
// placeholder becomes a localized in-transcript error message and Finish
// returns the classified error; use CredentialRequired to decide whether
// to re-open the credential setup prompt.
func (o *Orchestrator) Finish(t *Turn, err error) error {
	o.sending = false
	if t.stream != nil {
		_ = t.stream.Close()
	}
	if err == nil {
		o.logger.Info("reply settled", zap.String("session", t.SessionID))
		return nil
	}

	notice := lawbot.NoticeLookupFailed
	if isAuthFailure(err) {
		notice = lawbot.NoticeInvalidCredential
	}
	o.store = o.store.Update(t.SessionID, func(s lawbot.Session) lawbot.Session {
		for i := range s.Messages {
			if s.Messages[i].ID == t.MessageID {
				s.Messages[i].Text = lawbot.ErrorPrefix + notice
				s.Messages[i].IsError = true
			}
		}
		return s
	})
	o.logger.Error("reply failed", zap.String("session", t.SessionID), zap.Error(err))
	return err
}

// LatestBriefing forces the general persona and sends the canned
// briefing query through the normal pipeline.
func (o *Orchestrator) LatestBriefing(ctx context.Context) (*Turn, error) {
	o.persona = lawbot.PersonaGeneral
	return o.Send(ctx, BriefingPrompt)
}

// CredentialRequired reports whether err calls for the credential setup
// prompt: no credential was available, or the endpoint rejected the one
// in use.
func CredentialRequired(err error) bool {
	return errors.Is(err, lawbot.ErrCredentialRequired) || isAuthFailure(err)
}

// isAuthFailure classifies err as a credential rejection, either by
// sentinel or by the auth-failure signature in its message.
func isAuthFailure(err error) bool {
	if errors.Is(err, lawbot.ErrInvalidCredential) {
		return true
	}
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "API 키") || strings.Contains(msg, "API key")
}
