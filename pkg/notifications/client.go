package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/deskhive/notifykit/pkg/apiclient"
)

// ListResult is one page of the server-side notification history.
type ListResult struct {
	Items      []Notification `json:"items"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalCount int            `json:"total_count"`
}

type countResponse struct {
	Count int `json:"count"`
}

type deleteAllResponse struct {
	DeletedCount int `json:"deleted_count"`
}

// Repository is the typed surface the state manager consumes. *Client is
// the production implementation; tests substitute a mock.
type Repository interface {
	List(ctx context.Context, page, pageSize int) (*ListResult, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int, error)
	UnreadCount(ctx context.Context) (int, error)
}

// Client is a thin typed façade over the resilient client. Each operation
// supplies its own user-facing failure message. None retry automatically;
// retry is a caller-level policy applied only where idempotence is safe.
type Client struct {
	api     *apiclient.Client
	baseURL string
}

// NewClient creates a repository client rooted at baseURL
// (e.g. "https://api.example.com/api/v1").
func NewClient(api *apiclient.Client, baseURL string) (*Client, error) {
	if api == nil {
		return nil, ErrNilAPIClient
	}
	if baseURL == "" {
		return nil, ErrEmptyBaseURL
	}

	return &Client{
		api:     api,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (c *Client) endpoint(path string) string {
	return c.baseURL + path
}

func (c *Client) List(ctx context.Context, page, pageSize int) (*ListResult, error) {
	query := url.Values{
		"page":      {strconv.Itoa(page)},
		"page_size": {strconv.Itoa(pageSize)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/notifications?"+query.Encode()), nil)
	if err != nil {
		return nil, fmt.Errorf("build list request: %w", err)
	}

	resp, err := c.api.Execute(ctx, req, apiclient.WithUserMessage("Could not load notifications."))
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var result ListResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.Join(ErrMalformedResponse, err)
	}
	return &result, nil
}

func (c *Client) MarkRead(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyNotificationID
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/notifications/"+url.PathEscape(id)+"/read"), nil)
	if err != nil {
		return fmt.Errorf("build mark-read request: %w", err)
	}

	resp, err := c.api.Execute(ctx, req, apiclient.WithUserMessage("Could not mark the notification as read."))
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

func (c *Client) MarkAllRead(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/notifications/read-all"), nil)
	if err != nil {
		return fmt.Errorf("build mark-all-read request: %w", err)
	}

	resp, err := c.api.Execute(ctx, req, apiclient.WithUserMessage("Could not mark notifications as read."))
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

func (c *Client) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyNotificationID
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.endpoint("/notifications/"+url.PathEscape(id)), nil)
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}

	resp, err := c.api.Execute(ctx, req, apiclient.WithUserMessage("Could not delete the notification."))
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

func (c *Client) DeleteAll(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.endpoint("/notifications"), nil)
	if err != nil {
		return 0, fmt.Errorf("build delete-all request: %w", err)
	}

	resp, err := c.api.Execute(ctx, req, apiclient.WithUserMessage("Could not clear notifications."))
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	var result deleteAllResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, errors.Join(ErrMalformedResponse, err)
	}
	return result.DeletedCount, nil
}

// UnreadCount fetches the server-authoritative unread counter. The call is
// silent: a stale badge is not worth a toast.
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/notifications/unread-count"), nil)
	if err != nil {
		return 0, fmt.Errorf("build unread-count request: %w", err)
	}

	resp, err := c.api.Execute(ctx, req, apiclient.WithSilent())
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	var result countResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, errors.Join(ErrMalformedResponse, err)
	}
	return result.Count, nil
}

var _ Repository = (*Client)(nil)
