// Package client posts finished submissions to the submission endpoint.
// Payloads without uploads go as plain JSON; payloads with uploads go as
// multipart/form-data with the JSON in a "submission" field, matching the
// two encodings the endpoint accepts.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"time"

	"github.com/alper-collab/tasarim-anketi/internal/survey"
)

// DefaultTimeout bounds one submission attempt end to end.
const DefaultTimeout = 20 * time.Second

const maxErrorBody = 64 << 10

// ErrTimeout marks a submission aborted by the client-side deadline. It is
// kept distinct from plain transport failures so the UI can word the retry
// message accordingly.
var ErrTimeout = errors.New("istek zaman aşımına uğradı")

type payload struct {
	Subject string                `json:"subject"`
	ReplyTo string                `json:"replyTo"`
	Answers survey.OrderedAnswers `json:"answers"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Client submits surveys to one endpoint URL.
type Client struct {
	endpoint   string
	httpClient *http.Client
	timeout    time.Duration
}

// Option customizes a Client.
type Option func(*Client)

// WithTimeout overrides the per-submission deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// New returns a client for the given endpoint URL.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit posts one submission. A nil return means the endpoint accepted
// it; any error is already worded for the respondent.
func (c *Client) Submit(ctx context.Context, sub survey.Submission) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.buildRequest(ctx, sub)
	if err != nil {
		return fmt.Errorf("istek oluşturulamadı: %w", err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return fmt.Errorf("%w (%s)", ErrTimeout, c.timeout)
		}
		return fmt.Errorf("sunucuya ulaşılamadı: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != "" {
		return errors.New(parsed.Error)
	}
	statusText := http.StatusText(res.StatusCode)
	if statusText == "" {
		statusText = "Bilinmeyen bir sunucu hatası."
	}
	return fmt.Errorf("HTTP Hata Kodu: %d - %s", res.StatusCode, statusText)
}

func (c *Client) buildRequest(ctx context.Context, sub survey.Submission) (*http.Request, error) {
	body, err := json.Marshal(payload{
		Subject: sub.Subject,
		ReplyTo: sub.ReplyTo,
		Answers: sub.Answers,
	})
	if err != nil {
		return nil, err
	}

	if len(sub.Files) == 0 {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("submission", string(body)); err != nil {
		return nil, err
	}
	for _, f := range sub.Files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.Field, f.Name))
		if f.ContentType != "" {
			header.Set("Content-Type", f.ContentType)
		}
		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
