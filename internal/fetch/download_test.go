package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testOptions returns options with a short backoff so retry tests run fast.
func testOptions() *Options {
	return &Options{
		Timeout:    5 * time.Second,
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
	}
}

func TestDownload_Success(t *testing.T) {
	body := "NID,Title,Issue\n100,Brand X recalled,Salmonella\n"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "sub", "raw.csv")
	require.NoError(t, Download(context.Background(), server.URL, dest, testOptions()))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, body, string(data))
}

func TestDownload_InvalidURL(t *testing.T) {
	err := Download(context.Background(), "not-a-valid-url", t.TempDir()+"/out.csv", testOptions())
	require.Error(t, err)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "invalid URL")
}

func TestDownload_HTTPErrorNotRetried(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	err := Download(context.Background(), server.URL, filepath.Join(t.TempDir(), "out.csv"), testOptions())
	require.Error(t, err)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.False(t, fetchErr.Transient)
	assert.Contains(t, err.Error(), "404")

	// Non-success statuses are fatal; exactly one attempt.
	assert.Equal(t, int32(1), attempts.Load())
}

func TestDownload_RetriesTruncatedTransfer(t *testing.T) {
	var attempts atomic.Int32
	body := "NID,Title,Issue\n100,Brand X recalled,Salmonella\n"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if attempts.Add(1) < 3 {
			// Advertise more bytes than we send, then cut the connection so
			// the client sees a truncated transfer.
			w.Header().Set("Content-Length", fmt.Sprint(len(body)+512))
			_, _ = w.Write([]byte(body[:10]))
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}
			panic(http.ErrAbortHandler)
		}
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "raw.csv")
	require.NoError(t, Download(context.Background(), server.URL, dest, testOptions()))

	assert.Equal(t, int32(3), attempts.Load())
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, body, string(data))
}

func TestDownload_RetryCeilingEscalates(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts.Add(1)
		w.Header().Set("Content-Length", "1024")
		_, _ = w.Write([]byte("partial"))
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		panic(http.ErrAbortHandler)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "raw.csv")
	err := Download(context.Background(), server.URL, dest, testOptions())
	require.Error(t, err)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.True(t, fetchErr.Transient)
	assert.Equal(t, int32(3), attempts.Load())

	// No partial file is left behind.
	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}

func TestDownload_CanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Download(ctx, server.URL, filepath.Join(t.TempDir(), "out.csv"), testOptions())
	require.Error(t, err)
}

func TestIsTransient(t *testing.T) {
	assert.False(t, isTransient(nil))
	assert.False(t, isTransient(context.Canceled))
	assert.True(t, isTransient(&timeoutError{}))
}

// timeoutError implements net.Error for classification tests.
type timeoutError struct{}

func (e *timeoutError) Error() string   { return "timeout" }
func (e *timeoutError) Timeout() bool   { return true }
func (e *timeoutError) Temporary() bool { return true }
