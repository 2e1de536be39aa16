package session

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/legalease/lexctl/internal/domain"
	"github.com/legalease/lexctl/internal/domain/entity"
)

// FallbackReply replaces the assistant turn when a send fails. The user turn
// that triggered it stays in the transcript.
const FallbackReply = "Sorry, I couldn't process that. Please try again."

// ChatPhase is the lifecycle of a chat session controller.
type ChatPhase int

const (
	ChatClosed ChatPhase = iota
	ChatLoading
	ChatReady
)

func (p ChatPhase) String() string {
	switch p {
	case ChatClosed:
		return "closed"
	case ChatLoading:
		return "loading"
	case ChatReady:
		return "ready"
	default:
		return "unknown"
	}
}

// ChatState is a copy of the controller state for display.
type ChatState struct {
	Phase      ChatPhase
	Descriptor *entity.SessionDescriptor
	Transcript []entity.ChatMessage
	Pending    bool
	HistoryErr error // set when the history fetch failed; the transcript is then empty
}

// ChatSession manages the transcript of one document's chat. It keeps no
// cache across opens.
type ChatSession struct {
	backend domain.ChatBackend
	logger  *slog.Logger

	mu    sync.Mutex
	state ChatState
	epoch uint64 // bumped by Open and Close; replies from older epochs are dropped
}

// NewChatSession creates a closed controller.
func NewChatSession(backend domain.ChatBackend, logger *slog.Logger) *ChatSession {
	return &ChatSession{
		backend: backend,
		logger:  logger,
	}
}

// Follow closes the session whenever the gate loses its identity.
func (s *ChatSession) Follow(gate *IdentityGate) {
	gate.Subscribe(func(st IdentityState) {
		if st.Phase != IdentityPresent {
			s.Close()
		}
	})
}

// Open binds the controller to d, clears the transcript and loads the
// server's history. It blocks until the history arrives.
func (s *ChatSession) Open(ctx context.Context, d entity.SessionDescriptor) error {
	if d.SessionID == "" {
		return domain.NewPreconditionError("no document selected")
	}

	s.mu.Lock()
	s.epoch++
	epoch := s.epoch
	desc := d
	s.state = ChatState{
		Phase:      ChatLoading,
		Descriptor: &desc,
		Transcript: []entity.ChatMessage{},
	}
	s.mu.Unlock()

	logger := s.logger.With("session_id", d.SessionID)
	history, err := s.backend.ChatHistory(ctx, d.SessionID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch {
		logger.Debug("dropping stale chat history")
		return ErrSuperseded
	}

	s.state.Phase = ChatReady
	if err != nil {
		logger.Warn("chat history fetch failed", "error", err)
		s.state.HistoryErr = err
		return err
	}

	s.state.Transcript = append([]entity.ChatMessage{}, history...)
	logger.Debug("chat history loaded", "messages", len(history))
	return nil
}

// Exchange is one in-flight send, created by Post.
type Exchange struct {
	session   *ChatSession
	epoch     uint64
	sessionID string
	text      string
}

// Text is the trimmed user message carried by the exchange.
func (e *Exchange) Text() string {
	return e.text
}

// Post appends the user message to the transcript immediately and marks the
// session pending. It returns false, changing nothing, when text is blank,
// a send is already pending, or the session is not ready.
func (s *ChatSession) Post(text string) (*Exchange, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Phase != ChatReady || s.state.Pending {
		return nil, false
	}

	s.state.Transcript = append(s.state.Transcript, entity.ChatMessage{Role: entity.RoleUser, Content: text})
	s.state.Pending = true

	return &Exchange{
		session:   s,
		epoch:     s.epoch,
		sessionID: s.state.Descriptor.SessionID,
		text:      text,
	}, true
}

// Wait sends the message and appends the assistant reply, or FallbackReply
// when the send fails. The appended message and the send error are returned.
func (e *Exchange) Wait(ctx context.Context) (entity.ChatMessage, error) {
	s := e.session
	logger := s.logger.With("session_id", e.sessionID)

	reply, err := s.backend.SendMessage(ctx, e.sessionID, e.text)
	msg := entity.ChatMessage{Role: entity.RoleAssistant, Content: reply}
	if err != nil {
		logger.Warn("chat send failed", "error", err)
		msg.Content = FallbackReply
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e.epoch != s.epoch {
		logger.Debug("dropping reply for closed session")
		return msg, ErrSuperseded
	}
	s.state.Transcript = append(s.state.Transcript, msg)
	s.state.Pending = false
	return msg, err
}

// Send posts text and waits for the reply. It reports whether anything was sent.
func (s *ChatSession) Send(ctx context.Context, text string) bool {
	ex, ok := s.Post(text)
	if !ok {
		return false
	}
	_, _ = ex.Wait(ctx)
	return true
}

// Close discards the transcript. Replies still in flight are dropped.
func (s *ChatSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.epoch++
	s.state = ChatState{Phase: ChatClosed}
}

// State returns a copy of the controller state.
func (s *ChatSession) State() ChatState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	if s.state.Transcript != nil {
		st.Transcript = make([]entity.ChatMessage, len(s.state.Transcript))
		copy(st.Transcript, s.state.Transcript)
	}
	if st.Descriptor != nil {
		d := *st.Descriptor
		st.Descriptor = &d
	}
	return st
}

// Transcript returns a copy of the messages in display order.
func (s *ChatSession) Transcript() []entity.ChatMessage {
	return s.State().Transcript
}

// Pending reports whether a send is outstanding.
func (s *ChatSession) Pending() bool {
	return s.State().Pending
}
