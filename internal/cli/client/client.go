package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/network/standard"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/legalease/lexctl/internal/cli/types"
	"github.com/legalease/lexctl/internal/domain"
	"github.com/legalease/lexctl/internal/domain/entity"
)

// DefaultTimeout bounds a whole request when the config sets none.
// Summarization runs model inference, so it is generous.
const DefaultTimeout = 2 * time.Minute

// APIClient wraps Hertz Client for HTTP communication with the summarization backend
type APIClient struct {
	client *client.Client
	server string
}

var _ domain.Backend = (*APIClient)(nil)

// NewAPIClient creates a new API client. timeout <= 0 selects DefaultTimeout.
func NewAPIClient(server string, timeout time.Duration) (*APIClient, error) {
	// Normalize server URL
	normalizedServer, err := normalizeServerURL(server)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c, err := client.NewClient(
		client.WithDialTimeout(10*time.Second),
		client.WithClientReadTimeout(timeout),
		client.WithWriteTimeout(timeout),
		client.WithMaxIdleConnDuration(60*time.Second),
		client.WithDialer(standard.NewDialer()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	return &APIClient{
		client: c,
		server: normalizedServer,
	}, nil
}

// Server returns the normalized base URL
func (c *APIClient) Server() string {
	return c.server
}

// normalizeServerURL normalizes server URL to ensure it has a scheme and no trailing slash
func normalizeServerURL(server string) (string, error) {
	server = strings.TrimSpace(server)
	if server == "" {
		return "", fmt.Errorf("empty server URL")
	}

	// Add scheme if missing
	if !strings.Contains(server, "://") {
		server = "http://" + server
	}

	// Parse and validate
	u, err := url.Parse(server)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid server URL")
	}

	// Return scheme://host (no path, no trailing slash)
	return fmt.Sprintf("%s://%s", u.Scheme, u.Host), nil
}

// ListDocuments lists a user's documents in server order (newest first)
func (c *APIClient) ListDocuments(ctx context.Context, userID string) ([]entity.DocumentRecord, error) {
	if userID == "" {
		return nil, domain.NewPreconditionError("user id is required")
	}

	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
	}()

	req.SetMethod(consts.MethodGet)
	req.SetRequestURI(c.server + fmt.Sprintf(endpointDocuments, url.PathEscape(userID)))

	if err := c.do(ctx, req, resp, FallbackListDocuments); err != nil {
		return nil, err
	}

	var items []types.DocumentItem
	if err := sonic.Unmarshal(resp.Body(), &items); err != nil {
		return nil, domain.NewTransportError(FallbackListDocuments, fmt.Errorf("failed to unmarshal response: %w", err))
	}

	docs := make([]entity.DocumentRecord, 0, len(items))
	for _, it := range items {
		docs = append(docs, entity.DocumentRecord{
			SessionID: it.SessionID,
			Title:     it.Title,
			Time:      it.Time,
			HasChat:   it.HasChat,
		})
	}
	return docs, nil
}

// Summarize uploads a document as multipart form data and returns the new
// session id with its summary
func (c *APIClient) Summarize(ctx context.Context, in *domain.SummarizeRequest) (*domain.SummarizeResult, error) {
	body, err := in.File.Open()
	if err != nil {
		return nil, domain.NewPreconditionError(fmt.Sprintf("cannot read %s: %v", in.File.Name, err))
	}
	defer body.Close()

	contentType := in.File.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
	}()

	req.SetMethod(consts.MethodPost)
	req.SetRequestURI(c.server + endpointSummarize)
	req.SetMultipartFormData(map[string]string{
		"user_id": in.UserID,
		"time":    in.Time,
	})
	req.SetMultipartField("file", in.File.Name, contentType, body)

	if err := c.do(ctx, req, resp, FallbackSummarize); err != nil {
		return nil, err
	}

	var out types.SummarizeResponse
	if err := sonic.Unmarshal(resp.Body(), &out); err != nil {
		return nil, domain.NewTransportError(FallbackSummarize, fmt.Errorf("failed to unmarshal response: %w", err))
	}

	return &domain.SummarizeResult{SessionID: out.SessionID, Summary: out.Summary}, nil
}

// ChatHistory fetches the ordered transcript of a session. A missing
// history field is an empty transcript.
func (c *APIClient) ChatHistory(ctx context.Context, sessionID string) ([]entity.ChatMessage, error) {
	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
	}()

	req.SetMethod(consts.MethodGet)
	req.SetRequestURI(c.server + fmt.Sprintf(endpointChatHistory, url.PathEscape(sessionID)))

	if err := c.do(ctx, req, resp, FallbackChatHistory); err != nil {
		return nil, err
	}

	var out types.ChatHistoryResponse
	if err := sonic.Unmarshal(resp.Body(), &out); err != nil {
		return nil, domain.NewTransportError(FallbackChatHistory, fmt.Errorf("failed to unmarshal response: %w", err))
	}

	history := make([]entity.ChatMessage, 0, len(out.History))
	for _, m := range out.History {
		history = append(history, entity.ChatMessage{Role: entity.Role(m.Role), Content: m.Content})
	}
	return history, nil
}

// SendMessage posts one user message and returns the assistant's reply
func (c *APIClient) SendMessage(ctx context.Context, sessionID, message string) (string, error) {
	bodyBytes, err := sonic.Marshal(types.ChatRequest{SessionID: sessionID, Message: message})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
	}()

	req.SetMethod(consts.MethodPost)
	req.SetRequestURI(c.server + endpointChat)
	req.Header.SetContentTypeBytes([]byte("application/json"))
	req.SetBody(bodyBytes)

	if err := c.do(ctx, req, resp, FallbackChat); err != nil {
		return "", err
	}

	var out types.ChatResponse
	if err := sonic.Unmarshal(resp.Body(), &out); err != nil {
		return "", domain.NewTransportError(FallbackChat, fmt.Errorf("failed to unmarshal response: %w", err))
	}
	return out.Response, nil
}

// do sends the request and classifies failures. Any non-2xx is an error: a
// JSON body with an "error" string is reported verbatim, anything else gets
// the fallback message.
func (c *APIClient) do(ctx context.Context, req *protocol.Request, resp *protocol.Response, fallback string) error {
	if err := c.client.Do(ctx, req, resp); err != nil {
		return domain.NewTransportError(fallback, fmt.Errorf("request failed: %w", err))
	}

	status := resp.StatusCode()
	if status >= 200 && status < 300 {
		return nil
	}

	var errResp types.ErrorResponse
	if err := sonic.Unmarshal(resp.Body(), &errResp); err == nil && errResp.Error != "" {
		return domain.NewServerReportedError(status, errResp.Error)
	}
	return domain.NewTransportError(fallback, fmt.Errorf("HTTP status %d", status))
}
