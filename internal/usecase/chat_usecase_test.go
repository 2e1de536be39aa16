package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legalease/lexctl/internal/domain"
	"github.com/legalease/lexctl/internal/domain/entity"
	"github.com/legalease/lexctl/internal/domain/mocks"
)

type chatFixture struct {
	uc    domain.ChatUsecase
	docs  *testDocumentRepository
	chats *testChatRepository
	model *mocks.MockLanguageModel
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()
	f := &chatFixture{
		docs:  newTestDocumentRepository(),
		chats: newTestChatRepository(),
		model: &mocks.MockLanguageModel{},
	}
	f.uc = NewChatUsecase(f.model, f.docs, f.chats, testLogger)

	ctx := context.Background()
	require.NoError(t, f.docs.Create(ctx, &entity.Document{
		SessionID: "s1",
		UserID:    "u1",
		Title:     "lease.pdf",
		FullText:  "The tenant shall pay rent.",
		CreatedAt: time.Now(),
	}))
	require.NoError(t, f.chats.Create(ctx, &entity.ChatThread{SessionID: "s1", UserID: "u1", DocumentTitle: "lease.pdf"}))
	return f
}

func TestChatUsecase_History(t *testing.T) {
	f := newChatFixture(t)

	thread, err := f.uc.History(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "lease.pdf", thread.DocumentTitle)
	assert.Empty(t, thread.History)

	_, err = f.uc.History(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
	assert.Equal(t, "Chat session not found", domain.UserMessage(err, ""))
}

func TestChatUsecase_Chat(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	var gotDoc, gotQuestion string
	var gotHistory []entity.ChatMessage
	f.model.AnswerStreamingFunc = func(ctx context.Context, document string, history []entity.ChatMessage, question string) (<-chan entity.StreamChunk, error) {
		gotDoc, gotHistory, gotQuestion = document, history, question
		return mocks.Stream("The tenant ", "pays."), nil
	}

	reply, err := f.uc.Chat(ctx, "s1", "Who pays rent?")
	require.NoError(t, err)
	assert.Equal(t, "The tenant pays.", reply)
	assert.Equal(t, "The tenant shall pay rent.", gotDoc)
	assert.Empty(t, gotHistory)
	assert.Equal(t, "Who pays rent?", gotQuestion)

	thread, err := f.chats.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []entity.ChatMessage{
		{Role: entity.RoleUser, Content: "Who pays rent?"},
		{Role: entity.RoleAssistant, Content: "The tenant pays."},
	}, thread.History)

	doc, err := f.docs.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, doc.HasChat)

	// the second turn sees the first one
	_, err = f.uc.Chat(ctx, "s1", "When?")
	require.NoError(t, err)
	assert.Len(t, gotHistory, 2)
}

func TestChatUsecase_ChatErrors(t *testing.T) {
	tests := []struct {
		name      string
		sessionID string
		message   string
		setup     func(f *chatFixture)
		check     func(error) bool
		want      string
	}{
		{name: "missing session", message: "hi", check: domain.IsInvalidInput, want: "Missing session_id or message"},
		{name: "missing message", sessionID: "s1", check: domain.IsInvalidInput, want: "Missing session_id or message"},
		{name: "blank message", sessionID: "s1", message: "  ", check: domain.IsInvalidInput, want: "Missing session_id or message"},
		{
			name:      "message too long",
			sessionID: "s1",
			message:   strings.Repeat("a", maxMessageChars+1),
			check:     domain.IsInvalidInput,
			want:      "message too long (max 10000 characters)",
		},
		{name: "unknown session", sessionID: "nope", message: "hi", check: domain.IsNotFound, want: "Invalid or expired chat session"},
		{
			name:      "document gone",
			sessionID: "s1",
			message:   "hi",
			setup: func(f *chatFixture) {
				delete(f.docs.docs, "s1")
			},
			check: domain.IsNotFound,
			want:  "Document context not found",
		},
		{
			name:      "model unavailable",
			sessionID: "s1",
			message:   "hi",
			setup: func(f *chatFixture) {
				f.model.AnswerStreamingFunc = func(context.Context, string, []entity.ChatMessage, string) (<-chan entity.StreamChunk, error) {
					return nil, errors.New("connection refused")
				}
			},
			check: domain.IsInternalError,
			want:  "Failed to get a response from the AI: connection refused",
		},
		{
			name:      "stream fails midway",
			sessionID: "s1",
			message:   "hi",
			setup: func(f *chatFixture) {
				f.model.AnswerStreamingFunc = func(context.Context, string, []entity.ChatMessage, string) (<-chan entity.StreamChunk, error) {
					ch := make(chan entity.StreamChunk, 2)
					ch <- entity.StreamChunk{Text: "The"}
					ch <- entity.StreamChunk{IsEnd: true, Error: "context canceled"}
					close(ch)
					return ch, nil
				}
			},
			check: domain.IsInternalError,
			want:  "Failed to get a response from the AI: context canceled",
		},
		{
			name:      "append fails",
			sessionID: "s1",
			message:   "hi",
			setup: func(f *chatFixture) {
				f.chats.appendErr = errStore
			},
			check: domain.IsInternalError,
			want:  "disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newChatFixture(t)
			if tt.setup != nil {
				tt.setup(f)
			}

			reply, err := f.uc.Chat(context.Background(), tt.sessionID, tt.message)
			require.Error(t, err)
			assert.Empty(t, reply)
			assert.True(t, tt.check(err), "unexpected error kind: %v", err)
			assert.Equal(t, tt.want, domain.UserMessage(err, ""))

			// failed turns leave the transcript untouched
			if thread, gerr := f.chats.Get(context.Background(), "s1"); gerr == nil {
				assert.Empty(t, thread.History)
			}
		})
	}
}
