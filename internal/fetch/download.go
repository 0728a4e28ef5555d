// Package fetch provides HTTP download of remote datasets with retry on
// transient network failures.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"syscall"
	"time"
)

// DefaultTimeout bounds a single download attempt. The raw dataset is large,
// so this is deliberately generous.
const DefaultTimeout = 200 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; RecallPipeline/1.0)"

// DefaultMaxRetries is the retry ceiling for transient failures.
const DefaultMaxRetries = 5

// DefaultChunkSize is the copy buffer size for streaming the body to disk.
const DefaultChunkSize = 8192

// DefaultRetryDelay is the base backoff; attempt n waits n times this long.
const DefaultRetryDelay = 5 * time.Second

// Error represents a failure while downloading a remote resource. Transient
// marks failure classes worth retrying (timeouts, connection resets,
// truncated transfers); non-2xx HTTP statuses are never transient.
type Error struct {
	URL       string
	Message   string
	Transient bool
	Cause     error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the download behavior.
type Options struct {
	Timeout    time.Duration
	UserAgent  string
	MaxRetries int
	ChunkSize  int
	RetryDelay time.Duration
}

// DefaultOptions returns sensible defaults for downloading.
func DefaultOptions() *Options {
	return &Options{
		Timeout:    DefaultTimeout,
		UserAgent:  DefaultUserAgent,
		MaxRetries: DefaultMaxRetries,
		ChunkSize:  DefaultChunkSize,
		RetryDelay: DefaultRetryDelay,
	}
}

func (o *Options) withDefaults() *Options {
	opts := *o
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.ChunkSize == 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.RetryDelay == 0 {
		opts.RetryDelay = DefaultRetryDelay
	}
	return &opts
}

// Download streams a remote resource to destPath, retrying transient
// failures up to the configured ceiling with increasing backoff between
// attempts. Any non-success HTTP status is fatal and not retried. On
// failure no partial file is left behind.
func Download(ctx context.Context, urlStr, destPath string, opts *Options) error {
	if opts == nil {
		opts = DefaultOptions()
	} else {
		opts = opts.withDefaults()
	}

	var lastErr error
	for attempt := 1; attempt <= opts.MaxRetries; attempt++ {
		lastErr = downloadOnce(ctx, urlStr, destPath, opts)
		if lastErr == nil {
			return nil
		}

		var fetchErr *Error
		if !errors.As(lastErr, &fetchErr) || !fetchErr.Transient || attempt == opts.MaxRetries {
			return lastErr
		}

		select {
		case <-ctx.Done():
			return &Error{URL: urlStr, Message: "download canceled", Cause: ctx.Err()}
		case <-time.After(opts.RetryDelay * time.Duration(attempt)):
		}
	}
	return lastErr
}

// downloadOnce performs a single download attempt.
func downloadOnce(ctx context.Context, urlStr, destPath string, opts *Options) error {
	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	client := &http.Client{Timeout: opts.Timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", opts.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return &Error{
			URL:       urlStr,
			Message:   "HTTP request failed",
			Transient: isTransient(err),
			Cause:     err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return &Error{URL: urlStr, Message: "failed to create destination directory", Cause: err}
	}

	f, err := os.Create(destPath)
	if err != nil {
		return &Error{URL: urlStr, Message: "failed to create destination file", Cause: err}
	}

	_, copyErr := io.CopyBuffer(f, resp.Body, make([]byte, opts.ChunkSize))
	closeErr := f.Close()
	if copyErr != nil {
		_ = os.Remove(destPath)
		return &Error{
			URL:       urlStr,
			Message:   "transfer interrupted",
			Transient: isTransient(copyErr),
			Cause:     copyErr,
		}
	}
	if closeErr != nil {
		_ = os.Remove(destPath)
		return &Error{URL: urlStr, Message: "failed to write destination file", Cause: closeErr}
	}
	return nil
}

// isTransient reports whether an I/O failure belongs to a retryable class:
// timeouts, connection resets, and truncated or chunked-transfer failures.
// Context cancellation is not retryable.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}

	// Client timeouts surface as net.Error timeouts (sometimes wrapping
	// context.DeadlineExceeded); caller deadlines stop the retry loop via
	// ctx.Done instead.
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return true
	}
	return false
}
