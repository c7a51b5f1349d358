package notifications_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhive/notifykit/pkg/apiclient"
	"github.com/deskhive/notifykit/pkg/notifications"
)

func newTestClient(t *testing.T, handler http.Handler) *notifications.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := notifications.NewClient(apiclient.New(srv.Client()), srv.URL)
	require.NoError(t, err)
	return client
}

func TestNewClient_Validation(t *testing.T) {
	t.Parallel()

	_, err := notifications.NewClient(nil, "https://api.example.com")
	assert.ErrorIs(t, err, notifications.ErrNilAPIClient)

	_, err = notifications.NewClient(apiclient.New(nil), "")
	assert.ErrorIs(t, err, notifications.ErrEmptyBaseURL)
}

func TestClient_List(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/notifications", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("page_size"))

		_ = json.NewEncoder(w).Encode(notifications.ListResult{
			Items: []notifications.Notification{
				{
					ID:        "n-1",
					Title:     "Reservation confirmed",
					Message:   "Desk 12 tomorrow 09:00",
					Category:  notifications.CategoryReservation,
					Priority:  notifications.PriorityNormal,
					CreatedAt: created,
				},
			},
			Page:       2,
			PageSize:   10,
			TotalCount: 37,
		})
	}))

	result, err := client.List(context.Background(), 2, 10)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 37, result.TotalCount)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "n-1", result.Items[0].ID)
	assert.True(t, created.Equal(result.Items[0].CreatedAt))
}

func TestClient_List_MalformedBody(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))

	_, err := client.List(context.Background(), 1, 20)
	assert.ErrorIs(t, err, notifications.ErrMalformedResponse)
}

func TestClient_MarkRead(t *testing.T) {
	t.Parallel()

	var gotPath, gotMethod string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.MarkRead(context.Background(), "n-42"))
	assert.Equal(t, "/notifications/n-42/read", gotPath)
	assert.Equal(t, http.MethodPost, gotMethod)

	assert.ErrorIs(t, client.MarkRead(context.Background(), ""), notifications.ErrEmptyNotificationID)
}

func TestClient_MarkAllRead(t *testing.T) {
	t.Parallel()

	var gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.MarkAllRead(context.Background()))
	assert.Equal(t, "/notifications/read-all", gotPath)
}

func TestClient_Delete(t *testing.T) {
	t.Parallel()

	var gotPath, gotMethod string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.Delete(context.Background(), "n-7"))
	assert.Equal(t, "/notifications/n-7", gotPath)
	assert.Equal(t, http.MethodDelete, gotMethod)

	assert.ErrorIs(t, client.Delete(context.Background(), ""), notifications.ErrEmptyNotificationID)
}

func TestClient_DeleteAll(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/notifications", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]int{"deleted_count": 5})
	}))

	deleted, err := client.DeleteAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, deleted)
}

func TestClient_UnreadCount(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/notifications/unread-count", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]int{"count": 9})
	}))

	count, err := client.UnreadCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 9, count)
}

func TestClient_PropagatesClassifiedError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))

	_, err := client.List(context.Background(), 1, 20)
	require.Error(t, err)
	assert.True(t, apiclient.IsRetryable(err))
	assert.Equal(t, http.StatusBadGateway, apiclient.StatusOf(err))
}
