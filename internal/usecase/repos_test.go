package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/legalease/lexctl/internal/domain"
	"github.com/legalease/lexctl/internal/domain/entity"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// testDocumentRepository keeps documents in a map
type testDocumentRepository struct {
	mu        sync.Mutex
	docs      map[string]*entity.Document
	createErr error
}

func newTestDocumentRepository() *testDocumentRepository {
	return &testDocumentRepository{docs: make(map[string]*entity.Document)}
}

func (r *testDocumentRepository) Create(ctx context.Context, doc *entity.Document) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	d := *doc
	r.docs[doc.SessionID] = &d
	return nil
}

func (r *testDocumentRepository) Get(ctx context.Context, sessionID string) (*entity.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[sessionID]
	if !ok {
		return nil, domain.NewNotFoundError("document not found")
	}
	out := *d
	return &out, nil
}

func (r *testDocumentRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Document{}
	for _, d := range r.docs {
		if d.UserID == userID {
			c := *d
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *testDocumentRepository) MarkChatted(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[sessionID]
	if !ok {
		return domain.NewNotFoundError("document not found")
	}
	d.HasChat = true
	return nil
}

// testChatRepository keeps threads in a map
type testChatRepository struct {
	mu        sync.Mutex
	threads   map[string]*entity.ChatThread
	appendErr error
}

func newTestChatRepository() *testChatRepository {
	return &testChatRepository{threads: make(map[string]*entity.ChatThread)}
}

func (r *testChatRepository) Create(ctx context.Context, thread *entity.ChatThread) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := *thread
	t.History = append([]entity.ChatMessage{}, thread.History...)
	r.threads[thread.SessionID] = &t
	return nil
}

func (r *testChatRepository) Get(ctx context.Context, sessionID string) (*entity.ChatThread, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.threads[sessionID]
	if !ok {
		return nil, domain.NewNotFoundError("chat not found")
	}
	out := *t
	out.History = append([]entity.ChatMessage{}, t.History...)
	return &out, nil
}

func (r *testChatRepository) Append(ctx context.Context, sessionID string, msgs ...entity.ChatMessage) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.threads[sessionID]
	if !ok {
		return domain.NewNotFoundError("chat not found")
	}
	t.History = append(t.History, msgs...)
	return nil
}

var errStore = errors.New("disk full")
