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

type documentFixture struct {
	uc    *documentUsecase
	docs  *testDocumentRepository
	chats *testChatRepository
	model *mocks.MockLanguageModel
	ext   *mocks.MockTextExtractor
}

func newDocumentFixture() *documentFixture {
	f := &documentFixture{
		docs:  newTestDocumentRepository(),
		chats: newTestChatRepository(),
		model: &mocks.MockLanguageModel{},
		ext:   &mocks.MockTextExtractor{},
	}
	f.uc = NewDocumentUsecase(f.ext, f.model, f.docs, f.chats, testLogger).(*documentUsecase)
	f.uc.newID = func() string { return "sess-1" }
	f.uc.now = func() time.Time { return time.Date(2025, 3, 14, 21, 5, 9, 0, time.UTC) }
	return f
}

func upload(content string) *domain.UploadedDocument {
	return &domain.UploadedDocument{
		UserID:  "u1",
		Title:   "lease.pdf",
		Time:    "3/14/2025, 09:05:09 PM",
		Content: []byte(content),
	}
}

func TestDocumentUsecase_Summarize(t *testing.T) {
	f := newDocumentFixture()
	f.model.SummarizeFunc = func(ctx context.Context, chunk string) (string, error) {
		return "  Rent is due monthly.  ", nil
	}

	res, err := f.uc.Summarize(context.Background(), upload("The tenant   shall pay rent ."))
	require.NoError(t, err)
	assert.Equal(t, &domain.SummarizeResult{SessionID: "sess-1", Summary: "Rent is due monthly."}, res)

	doc, err := f.docs.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "The tenant shall pay rent.", doc.FullText)
	assert.Equal(t, "lease.pdf", doc.Title)
	assert.Equal(t, "3/14/2025, 09:05:09 PM", doc.Time)
	assert.False(t, doc.HasChat)

	thread, err := f.chats.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "lease.pdf", thread.DocumentTitle)
	assert.Equal(t, "u1", thread.UserID)
	assert.Empty(t, thread.History)
}

func TestDocumentUsecase_SummarizeJoinsChunks(t *testing.T) {
	f := newDocumentFixture()
	calls := 0
	f.model.SummarizeFunc = func(ctx context.Context, chunk string) (string, error) {
		calls++
		switch calls {
		case 1:
			return "First part.", nil
		case 2:
			return "", errors.New("model unavailable")
		default:
			return "Last part.", nil
		}
	}

	text := strings.Repeat("word ", 2000) // 800 words per chunk
	res, err := f.uc.Summarize(context.Background(), upload(text))
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, "First part. Last part.", res.Summary)
}

func TestDocumentUsecase_EmptySummaryIsStored(t *testing.T) {
	f := newDocumentFixture()
	f.model.SummarizeFunc = func(ctx context.Context, chunk string) (string, error) {
		return "", nil
	}

	res, err := f.uc.Summarize(context.Background(), upload("Short."))
	require.NoError(t, err)
	assert.Equal(t, "", res.Summary)
	assert.Equal(t, "sess-1", res.SessionID)
}

func TestDocumentUsecase_SummarizeErrors(t *testing.T) {
	tests := []struct {
		name    string
		req     *domain.UploadedDocument
		setup   func(f *documentFixture)
		check   func(error) bool
		message string
	}{
		{
			name:    "missing user",
			req:     &domain.UploadedDocument{Title: "lease.pdf"},
			check:   domain.IsInvalidInput,
			message: "User ID is required",
		},
		{
			name:    "nil request",
			check:   domain.IsInvalidInput,
			message: "User ID is required",
		},
		{
			name:    "missing file name",
			req:     &domain.UploadedDocument{UserID: "u1"},
			check:   domain.IsInvalidInput,
			message: "No selected file",
		},
		{
			name: "extraction fails",
			req:  upload("x"),
			setup: func(f *documentFixture) {
				f.ext.ExtractFunc = func(string, []byte) (string, error) {
					return "", errors.New("Unsupported file format. Please upload PDF or DOCX.")
				}
			},
			check:   domain.IsInternalError,
			message: "Unsupported file format. Please upload PDF or DOCX.",
		},
		{
			name: "store fails",
			req:  upload("Some text."),
			setup: func(f *documentFixture) {
				f.docs.createErr = errStore
			},
			check:   domain.IsInternalError,
			message: "disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDocumentFixture()
			if tt.setup != nil {
				tt.setup(f)
			}

			res, err := f.uc.Summarize(context.Background(), tt.req)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, tt.check(err), "unexpected error kind: %v", err)
			assert.Equal(t, tt.message, domain.UserMessage(err, ""))
		})
	}
}

func TestDocumentUsecase_List(t *testing.T) {
	f := newDocumentFixture()
	ctx := context.Background()
	base := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, f.docs.Create(ctx, &entity.Document{
			SessionID: id,
			UserID:    "u1",
			Title:     id + ".pdf",
			Time:      "t" + id,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, f.docs.MarkChatted(ctx, "a"))

	records, err := f.uc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []entity.DocumentRecord{
		{SessionID: "c", Title: "c.pdf", Time: "tc"},
		{SessionID: "b", Title: "b.pdf", Time: "tb"},
		{SessionID: "a", Title: "a.pdf", Time: "ta", HasChat: true},
	}, records)

	empty, err := f.uc.List(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, []entity.DocumentRecord{}, empty)

	_, err = f.uc.List(ctx, "")
	assert.True(t, domain.IsInvalidInput(err))
}
