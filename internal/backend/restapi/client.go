// Package restapi implements the service.Service interface over the REST
// task collection API (GET/POST /todos, PUT/DELETE /todos/{id}).
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/googleapi"

	"todo/internal/config"
	"todo/internal/service"
)

// CollectionPath is the task collection endpoint relative to the base URL.
const CollectionPath = "/todos"

// Client implements service.Service against the task collection API.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

// New creates a client for the configured base URL.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	c, err := NewWithHTTPClient(cfg.APIURL, http.DefaultClient)
	if err != nil {
		return nil, err
	}
	c.timeout = cfg.RequestTimeout
	return c, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL: %q", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}, nil
}

// ListTasks returns the full collection in server order.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	var items []todoItem
	if err := c.do(ctx, http.MethodGet, CollectionPath, nil, &items); err != nil {
		return nil, err
	}

	result := make([]service.Task, 0, len(items))
	for _, item := range items {
		result = append(result, item.task())
	}
	return result, nil
}

// CreateTask creates a task and returns the server's record.
func (c *Client) CreateTask(ctx context.Context, text string) (service.Task, error) {
	var item todoItem
	body := createRequest{Text: text}
	if err := c.do(ctx, http.MethodPost, CollectionPath, body, &item); err != nil {
		return service.Task{}, err
	}
	return item.task(), nil
}

// SetCompleted updates the completed flag and returns the server's record.
func (c *Client) SetCompleted(ctx context.Context, id string, completed bool) (service.Task, error) {
	var item todoItem
	body := updateRequest{Completed: completed}
	if err := c.do(ctx, http.MethodPut, taskPath(id), body, &item); err != nil {
		return service.Task{}, err
	}
	return item.task(), nil
}

// DeleteTask deletes a task. Any response body is ignored.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, nil)
}

func taskPath(id string) string {
	return CollectionPath + "/" + url.PathEscape(id)
}

// do sends one JSON request. in is encoded as the body when non-nil; the
// response body is decoded into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return wrapError(err)
	}
	defer googleapi.CloseBody(resp)

	if err := googleapi.CheckResponse(resp); err != nil {
		return wrapError(err)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}

// wrapError wraps API errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	// Check for timeout
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusNotFound {
			return service.ErrNotFound
		}
		msg := apiErr.Message
		if msg == "" {
			msg = strings.TrimSpace(apiErr.Body)
		}
		if msg == "" {
			msg = http.StatusText(apiErr.Code)
		}
		return fmt.Errorf("server returned %d: %s", apiErr.Code, msg)
	}

	return err
}

type createRequest struct {
	Text string `json:"text"`
}

type updateRequest struct {
	Completed bool `json:"completed"`
}

// todoItem is the wire form of a task. Document-store backends name the
// identifier "_id"; others use "id". "_id" wins when both are present.
type todoItem struct {
	MongoID   wireID `json:"_id"`
	ID        wireID `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

func (t todoItem) task() service.Task {
	id := string(t.MongoID)
	if id == "" {
		id = string(t.ID)
	}
	return service.Task{ID: id, Text: t.Text, Completed: t.Completed}
}

// wireID accepts a JSON string or number and keeps it as an opaque string.
type wireID string

func (w *wireID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*w = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*w = wireID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("task id must be a string or number: %s", data)
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return fmt.Errorf("task id must be a string or number: %s", data)
	}
	*w = wireID(n.String())
	return nil
}
