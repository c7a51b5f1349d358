package apiclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhive/notifykit/pkg/alerts"
	"github.com/deskhive/notifykit/pkg/apiclient"
	"github.com/deskhive/notifykit/pkg/auditlog"
)

// captureSink records alerts for assertions.
type captureSink struct {
	mu     sync.Mutex
	errors []string
	toasts []alerts.Toast
}

func (s *captureSink) ShowToast(ctx context.Context, toast alerts.Toast) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toasts = append(s.toasts, toast)
}

func (s *captureSink) ShowError(ctx context.Context, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = append(s.errors, message)
}

func (s *captureSink) errorMessages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.errors...)
}

func newRequest(t *testing.T, url string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	return req
}

func TestExecute_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	audit := auditlog.New(10)
	client := apiclient.New(srv.Client(), apiclient.WithAuditLog(audit))

	resp, err := client.Execute(context.Background(), newRequest(t, srv.URL))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Zero(t, audit.Len(), "successes are not audited")
}

func TestExecute_ServerErrorIsRetryable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	sink := &captureSink{}
	audit := auditlog.New(10)
	client := apiclient.New(srv.Client(),
		apiclient.WithAuditLog(audit),
		apiclient.WithAlertSink(sink),
	)

	_, err := client.Execute(context.Background(), newRequest(t, srv.URL))
	require.Error(t, err)

	assert.True(t, apiclient.IsRetryable(err))
	assert.Equal(t, http.StatusServiceUnavailable, apiclient.StatusOf(err))
	assert.Equal(t, []string{"service unavailable"}, sink.errorMessages())

	entries := audit.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, http.StatusServiceUnavailable, entries[0].StatusCode)
	assert.Equal(t, srv.URL, entries[0].URL)
}

func TestExecute_ClientErrorIsTerminal(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	sink := &captureSink{}
	client := apiclient.New(srv.Client(), apiclient.WithAlertSink(sink))

	_, err := client.Execute(context.Background(), newRequest(t, srv.URL))
	require.Error(t, err)

	assert.False(t, apiclient.IsRetryable(err))
	assert.Equal(t, http.StatusNotFound, apiclient.StatusOf(err))
	assert.Equal(t, []string{"not found"}, sink.errorMessages())
}

func TestExecute_UnauthorizedNeverSurfaced(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "expired", http.StatusUnauthorized)
	}))
	defer srv.Close()

	sink := &captureSink{}
	audit := auditlog.New(10)
	client := apiclient.New(srv.Client(),
		apiclient.WithAuditLog(audit),
		apiclient.WithAlertSink(sink),
	)

	_, err := client.Execute(context.Background(), newRequest(t, srv.URL))
	require.Error(t, err)

	assert.Empty(t, sink.errorMessages(), "401 is handled upstream, no toast")
	assert.Equal(t, 1, audit.Len(), "still audited")
}

func TestExecute_CustomUserMessage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	sink := &captureSink{}
	client := apiclient.New(srv.Client(), apiclient.WithAlertSink(sink))

	_, err := client.Execute(context.Background(), newRequest(t, srv.URL),
		apiclient.WithUserMessage("Could not load notifications."))
	require.Error(t, err)

	assert.Equal(t, []string{"Could not load notifications."}, sink.errorMessages())
}

func TestExecute_SilentSuppressesAlert(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	sink := &captureSink{}
	audit := auditlog.New(10)
	client := apiclient.New(srv.Client(),
		apiclient.WithAuditLog(audit),
		apiclient.WithAlertSink(sink),
	)

	_, err := client.Execute(context.Background(), newRequest(t, srv.URL), apiclient.WithSilent())
	require.Error(t, err)

	assert.Empty(t, sink.errorMessages())
	assert.Equal(t, 1, audit.Len(), "silent calls are still audited")
}

func TestExecute_NetworkFailure(t *testing.T) {
	t.Parallel()

	// A server that is already closed yields a connection error.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	sink := &captureSink{}
	audit := auditlog.New(10)
	client := apiclient.New(http.DefaultClient,
		apiclient.WithAuditLog(audit),
		apiclient.WithAlertSink(sink),
	)

	_, err := client.Execute(context.Background(), newRequest(t, url))
	require.Error(t, err)

	assert.True(t, apiclient.IsRetryable(err), "network failures are always retry-eligible")
	assert.Zero(t, apiclient.StatusOf(err))
	assert.ErrorIs(t, err, apiclient.ErrNoConnection)

	require.Len(t, sink.errorMessages(), 1)
	assert.Contains(t, sink.errorMessages()[0], "No connection")

	entries := audit.Entries()
	require.Len(t, entries, 1)
	assert.Zero(t, entries[0].StatusCode)
}

func TestExecute_NilRequest(t *testing.T) {
	t.Parallel()

	client := apiclient.New(http.DefaultClient)
	_, err := client.Execute(context.Background(), nil)
	assert.ErrorIs(t, err, apiclient.ErrNilRequest)
}
