package restapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"todo/internal/config"
	"todo/internal/service"
)

// recordedRequest captures what the fake API server received.
type recordedRequest struct {
	Method      string
	Path        string
	ContentType string
	Body        string
}

// newTestServer starts an API server that records each request and replies
// with the given status and body.
func newTestServer(t *testing.T, status int, body string) (*Client, func() []recordedRequest) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []recordedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recordedRequest{
			Method:      r.Method,
			Path:        r.URL.EscapedPath(),
			ContentType: r.Header.Get("Content-Type"),
			Body:        string(data),
		})
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	c, err := NewWithHTTPClient(srv.URL+"/api/", srv.Client())
	if err != nil {
		t.Fatalf("NewWithHTTPClient failed: %v", err)
	}
	return c, func() []recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedRequest(nil), reqs...)
	}
}

func TestListTasks(t *testing.T) {
	c, reqs := newTestServer(t, http.StatusOK,
		`[{"_id":"64f1","text":"buy milk","completed":false},{"id":2,"text":"walk dog","completed":true}]`)

	tasks, err := c.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}

	want := []service.Task{
		{ID: "64f1", Text: "buy milk", Completed: false},
		{ID: "2", Text: "walk dog", Completed: true},
	}
	if len(tasks) != len(want) {
		t.Fatalf("got %d tasks, want %d", len(tasks), len(want))
	}
	for i := range want {
		if tasks[i] != want[i] {
			t.Errorf("task[%d] = %+v, want %+v", i, tasks[i], want[i])
		}
	}

	got := reqs()[0]
	if got.Method != http.MethodGet || got.Path != "/api/todos" {
		t.Errorf("request = %s %s, want GET /api/todos", got.Method, got.Path)
	}
}

func TestListTasks_Empty(t *testing.T) {
	c, _ := newTestServer(t, http.StatusOK, `[]`)

	tasks, err := c.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected no tasks, got %v", tasks)
	}
}

func TestCreateTask(t *testing.T) {
	c, reqs := newTestServer(t, http.StatusCreated, `{"_id":"a1","text":"call mom","completed":false}`)

	task, err := c.CreateTask(context.Background(), "call mom")
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if task != (service.Task{ID: "a1", Text: "call mom"}) {
		t.Errorf("task = %+v", task)
	}

	got := reqs()[0]
	if got.Method != http.MethodPost || got.Path != "/api/todos" {
		t.Errorf("request = %s %s, want POST /api/todos", got.Method, got.Path)
	}
	if got.ContentType != "application/json" {
		t.Errorf("Content-Type = %q", got.ContentType)
	}
	var body map[string]any
	if err := json.Unmarshal([]byte(got.Body), &body); err != nil {
		t.Fatalf("request body not JSON: %v", err)
	}
	if body["text"] != "call mom" || len(body) != 1 {
		t.Errorf("request body = %v, want {text: call mom}", body)
	}
}

func TestSetCompleted(t *testing.T) {
	c, reqs := newTestServer(t, http.StatusOK, `{"id":1,"text":"buy milk","completed":true}`)

	task, err := c.SetCompleted(context.Background(), "1", true)
	if err != nil {
		t.Fatalf("SetCompleted failed: %v", err)
	}
	if task != (service.Task{ID: "1", Text: "buy milk", Completed: true}) {
		t.Errorf("task = %+v", task)
	}

	got := reqs()[0]
	if got.Method != http.MethodPut || got.Path != "/api/todos/1" {
		t.Errorf("request = %s %s, want PUT /api/todos/1", got.Method, got.Path)
	}
	if strings.TrimSpace(got.Body) != `{"completed":true}` {
		t.Errorf("request body = %s", got.Body)
	}
}

func TestDeleteTask(t *testing.T) {
	c, reqs := newTestServer(t, http.StatusOK, `{"message":"Todo deleted"}`)

	if err := c.DeleteTask(context.Background(), "a/b"); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}

	got := reqs()[0]
	if got.Method != http.MethodDelete || got.Path != "/api/todos/a%2Fb" {
		t.Errorf("request = %s %s, want escaped id", got.Method, got.Path)
	}
	if got.Body != "" {
		t.Errorf("expected no request body, got %q", got.Body)
	}
}

func TestDeleteTask_NoContent(t *testing.T) {
	c, _ := newTestServer(t, http.StatusNoContent, "")

	if err := c.DeleteTask(context.Background(), "1"); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantIs  error
		wantMsg string
	}{
		{"not found", http.StatusNotFound, `{"message":"Todo not found"}`, service.ErrNotFound, "not found"},
		{"validation", http.StatusBadRequest, `{"message":"Text is required"}`, nil, "server returned 400"},
		{"server error", http.StatusInternalServerError, `oops`, nil, "oops"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestServer(t, tt.status, tt.body)

			_, err := c.SetCompleted(context.Background(), "1", true)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("expected %v, got %v", tt.wantIs, err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestMalformedResponse(t *testing.T) {
	c, _ := newTestServer(t, http.StatusOK, `{"not":"a list"}`)

	if _, err := c.ListTasks(context.Background()); err == nil {
		t.Fatal("expected decode error, got nil")
	}
}

func TestBadIDType(t *testing.T) {
	c, _ := newTestServer(t, http.StatusOK, `[{"id":true,"text":"x","completed":false}]`)

	if _, err := c.ListTasks(context.Background()); err == nil {
		t.Fatal("expected error for boolean id, got nil")
	}
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewWithHTTPClient(url, nil)
	if err != nil {
		t.Fatalf("NewWithHTTPClient failed: %v", err)
	}
	if _, err := c.ListTasks(context.Background()); err == nil {
		t.Fatal("expected transport error, got nil")
	}
}

func TestRequestTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	cfg := config.New(t.TempDir())
	if err := cfg.SetAPIURL(srv.URL); err != nil {
		t.Fatalf("SetAPIURL failed: %v", err)
	}
	cfg.RequestTimeout = 20 * time.Millisecond

	c, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = c.ListTasks(context.Background())
	if err == nil || err.Error() != "request timed out" {
		t.Errorf("expected request timed out, got %v", err)
	}
}

func TestNewWithHTTPClient_InvalidURL(t *testing.T) {
	if _, err := NewWithHTTPClient("not a url", nil); err == nil {
		t.Error("expected error for URL without host")
	}
}
