// Package filestore is the HTTP client for the external resume storage
// collaborator. Uploads are bounded by a per-call timeout and retried on
// transient failures; URL resolution collapses concurrent lookups for the
// same reference through singleflight.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/hirewire/hirewire/internal/domain"
	"github.com/hirewire/hirewire/internal/metrics"
	"github.com/hirewire/hirewire/internal/platform/retry"
)

// ErrUnavailable wraps transport-level failures after retries are exhausted.
var ErrUnavailable = errors.New("file store unavailable")

var retryPolicy = retry.Policy{
	MaxAttempts:      3,
	InitialBackoff:   200 * time.Millisecond,
	RateLimitBackoff: 2 * time.Second,
	OnRetry: func(attempt int, err error, backoff time.Duration) {
		slog.Warn("retrying file store request", "attempt", attempt, "backoff", backoff, "error", err)
	},
}

// Client implements domain.FileStore against the storage collaborator's
// HTTP API.
type Client struct {
	baseURL string
	httpc   *http.Client
	timeout time.Duration
	group   singleflight.Group
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

type storeResponse struct {
	Ref string `json:"ref"`
}

type resolveResponse struct {
	URL string `json:"url"`
}

// Store uploads the resume as multipart form data and returns the reference
// the collaborator assigned. The upload either completes within the
// configured timeout or fails; it never blocks the apply flow indefinitely.
// Rejections (unsupported type, oversize) are the collaborator's verdict and
// are not retried.
func (c *Client) Store(ctx context.Context, upload domain.ResumeUpload) (domain.ResumeRef, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// The upload body is a one-shot reader, so retrying the POST would
	// replay an empty body. A single attempt keeps the failure visible to
	// the caller instead of quietly storing a truncated file.
	ref, err := c.store(ctx, upload)
	if err != nil {
		metrics.FileStoreRequestsTotal.WithLabelValues("store", "error").Inc()
		return "", err
	}
	metrics.FileStoreRequestsTotal.WithLabelValues("store", "success").Inc()
	return ref, nil
}

func (c *Client) store(ctx context.Context, upload domain.ResumeUpload) (domain.ResumeRef, error) {
	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)

	go func() {
		part, err := form.CreateFormFile("file", upload.FileName)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, upload.Content); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(form.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/files", pr)
	if err != nil {
		return "", fmt.Errorf("failed to build store request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	if upload.ContentType != "" {
		req.Header.Set("X-Upload-Content-Type", upload.ContentType)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusCreated || resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return "", fmt.Errorf("%w: status %d", domain.ErrUploadRejected, resp.StatusCode)
	default:
		return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var body storeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode store response: %w", err)
	}
	if body.Ref == "" {
		return "", fmt.Errorf("store response missing ref")
	}
	return domain.ResumeRef(body.Ref), nil
}

// Resolve exchanges a reference for a fetchable URL. Lookups are idempotent,
// so concurrent calls for the same reference share one request and transient
// failures are retried with backoff.
func (c *Client) Resolve(ctx context.Context, ref domain.ResumeRef) (string, error) {
	result, err, _ := c.group.Do(string(ref), func() (any, error) {
		return retry.Do(ctx, retryPolicy, classifyResolveErr, func() (string, error) {
			return c.resolve(ctx, ref)
		})
	})
	if err != nil {
		metrics.FileStoreRequestsTotal.WithLabelValues("resolve", "error").Inc()
		return "", err
	}
	metrics.FileStoreRequestsTotal.WithLabelValues("resolve", "success").Inc()
	return result.(string), nil
}

func (c *Client) resolve(ctx context.Context, ref domain.ResumeRef) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/files/"+string(ref), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build resolve request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return "", fmt.Errorf("resume reference %q not found", ref)
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", &rateLimitedError{status: resp.StatusCode}
	default:
		return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var body resolveResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode resolve response: %w", err)
	}
	return body.URL, nil
}

type rateLimitedError struct {
	status int
}

func (e *rateLimitedError) Error() string {
	return fmt.Sprintf("file store rate limited: status %d", e.status)
}

func classifyResolveErr(err error) retry.Action {
	var rl *rateLimitedError
	switch {
	case errors.As(err, &rl):
		return retry.After
	case errors.Is(err, ErrUnavailable):
		return retry.Retry
	default:
		return retry.Stop
	}
}
