package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legalease/lexctl/internal/domain"
	"github.com/legalease/lexctl/internal/domain/entity"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *APIClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewAPIClient(srv.URL, 5*time.Second)
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestNormalizeServerURL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "host and port", in: "localhost:5000", want: "http://localhost:5000"},
		{name: "keeps scheme", in: "https://api.example.com", want: "https://api.example.com"},
		{name: "drops path and slash", in: "http://api.example.com/v1/", want: "http://api.example.com"},
		{name: "empty", in: "  ", wantErr: true},
		{name: "no host", in: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeServerURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAPIClient_ListDocuments(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/documents/u-1", r.URL.Path)
		writeJSON(w, http.StatusOK, `[
			{"session_id":"s2","title":"nda.docx","time":"3/15/2025, 10:00:00 AM","has_chat":false},
			{"session_id":"s1","title":"lease.pdf","time":"3/14/2025, 09:05:09 PM","has_chat":true}
		]`)
	})

	docs, err := c.ListDocuments(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, []entity.DocumentRecord{
		{SessionID: "s2", Title: "nda.docx", Time: "3/15/2025, 10:00:00 AM"},
		{SessionID: "s1", Title: "lease.pdf", Time: "3/14/2025, 09:05:09 PM", HasChat: true},
	}, docs)
}

func TestAPIClient_ListDocumentsRequiresUser(t *testing.T) {
	c, err := NewAPIClient("localhost:1", time.Second)
	require.NoError(t, err)

	_, err = c.ListDocuments(context.Background(), "")
	assert.True(t, domain.IsPrecondition(err))
}

func TestAPIClient_ErrorClassification(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantServer  bool
		wantMessage string
	}{
		{
			name:        "error field is verbatim",
			status:      http.StatusBadRequest,
			body:        `{"error":"Unsupported file format. Please upload PDF or DOCX."}`,
			wantServer:  true,
			wantMessage: "Unsupported file format. Please upload PDF or DOCX.",
		},
		{
			name:        "html body falls back",
			status:      http.StatusBadGateway,
			body:        `<html>bad gateway</html>`,
			wantMessage: FallbackListDocuments,
		},
		{
			name:        "empty error field falls back",
			status:      http.StatusInternalServerError,
			body:        `{"error":""}`,
			wantMessage: FallbackListDocuments,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})

			_, err := c.ListDocuments(context.Background(), "u-1")
			require.Error(t, err)
			assert.Equal(t, tt.wantServer, domain.IsServerReported(err))
			assert.Equal(t, !tt.wantServer, domain.IsTransport(err))
			assert.Equal(t, tt.wantMessage, domain.UserMessage(err, ""))
		})
	}
}

func TestAPIClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	c, err := NewAPIClient(addr, time.Second)
	require.NoError(t, err)

	_, err = c.ChatHistory(context.Background(), "abc")
	require.Error(t, err)
	assert.True(t, domain.IsTransport(err))
	assert.Equal(t, FallbackChatHistory, domain.UserMessage(err, ""))
}

func TestAPIClient_Summarize(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/summarize", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "u-1", r.FormValue("user_id"))
		assert.Equal(t, "3/14/2025, 09:05:09 PM", r.FormValue("time"))

		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		content, _ := io.ReadAll(f)
		assert.Equal(t, "lease.pdf", hdr.Filename)
		assert.Equal(t, "%PDF-1.7 body", string(content))

		writeJSON(w, http.StatusOK, `{"session_id":"abc","summary":"S"}`)
	})

	res, err := c.Summarize(context.Background(), &domain.SummarizeRequest{
		UserID: "u-1",
		Time:   "3/14/2025, 09:05:09 PM",
		File: entity.UploadFile{
			Name:        "lease.pdf",
			ContentType: "application/pdf",
			Open: func() (io.ReadCloser, error) {
				return io.NopCloser(strings.NewReader("%PDF-1.7 body")), nil
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, &domain.SummarizeResult{SessionID: "abc", Summary: "S"}, res)
}

func TestAPIClient_ChatHistory(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []entity.ChatMessage
	}{
		{
			name: "ordered history",
			body: `{"history":[{"role":"user","content":"hi"},{"role":"assistant","content":"hello"}]}`,
			want: []entity.ChatMessage{
				{Role: entity.RoleUser, Content: "hi"},
				{Role: entity.RoleAssistant, Content: "hello"},
			},
		},
		{name: "absent history", body: `{}`, want: []entity.ChatMessage{}},
		{name: "empty history", body: `{"history":[]}`, want: []entity.ChatMessage{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/chat/history/abc", r.URL.Path)
				writeJSON(w, http.StatusOK, tt.body)
			})

			got, err := c.ChatHistory(context.Background(), "abc")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAPIClient_SendMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"session_id": "abc", "message": "What is the term?"}, body)

		writeJSON(w, http.StatusOK, `{"response":"Twelve months."}`)
	})

	reply, err := c.SendMessage(context.Background(), "abc", "What is the term?")
	require.NoError(t, err)
	assert.Equal(t, "Twelve months.", reply)
}
