package todoist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// DefaultBaseURL is the production REST endpoint.
const DefaultBaseURL = "https://api.todoist.com/rest/v1"

// Client talks to the Todoist REST service. Methods never mutate their
// arguments; created records come back as new values carrying the
// server-assigned fields.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option adjusts a Client during construction.
type Option func(*Client)

// WithBaseURL points the client at a different endpoint, typically a test
// server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient substitutes the underlying HTTP client. The caller then
// owns authentication.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient builds a client that authenticates every request with the
// given API token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		c.http = oauth2.NewClient(context.Background(), src)
	}
	return c
}

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("todoist: service returned %d", e.StatusCode)
	}
	return fmt.Sprintf("todoist: service returned %d: %s", e.StatusCode, e.Body)
}

func newAPIError(resp *http.Response) *APIError {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
}

// do sends one request. Mutating requests carry a fresh X-Request-Id so
// the service can deduplicate retries. out is decoded from the body when
// non-nil; pass nil for endpoints that answer 204.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set("X-Request-Id", uuid.NewString())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("todoist: decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}

// Tasks fetches all active tasks.
func (c *Client) Tasks(ctx context.Context) ([]Task, error) {
	var tasks []Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Task fetches a single active task by ID.
func (c *Client) Task(ctx context.Context, id int64) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tasks/%d", id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask submits a new task and returns the stored record.
func (c *Client) CreateTask(ctx context.Context, task *Task) (*Task, error) {
	var created Task
	if err := c.do(ctx, http.MethodPost, "/tasks", task, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTask overwrites the writable fields of an existing task.
func (c *Client) UpdateTask(ctx context.Context, id int64, task *Task) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/tasks/%d", id), task, nil)
}

// CloseTask marks a task complete.
func (c *Client) CloseTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/tasks/%d/close", id), nil, nil)
}

// ReopenTask restores a completed task.
func (c *Client) ReopenTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/tasks/%d/reopen", id), nil, nil)
}

// DeleteTask removes a task permanently.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil)
}

// Projects fetches all projects.
func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.do(ctx, http.MethodGet, "/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// CreateProject makes a new project. color 0 leaves the choice to the
// service.
func (c *Client) CreateProject(ctx context.Context, name string, color int) (*Project, error) {
	var created Project
	body := projectCreate{Name: name, Color: color}
	if err := c.do(ctx, http.MethodPost, "/projects", body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Labels fetches all labels.
func (c *Client) Labels(ctx context.Context) ([]Label, error) {
	var labels []Label
	if err := c.do(ctx, http.MethodGet, "/labels", nil, &labels); err != nil {
		return nil, err
	}
	return labels, nil
}

// CreateLabel makes a new label.
func (c *Client) CreateLabel(ctx context.Context, name string, color int) (*Label, error) {
	var created Label
	body := labelCreate{Name: name, Color: color}
	if err := c.do(ctx, http.MethodPost, "/labels", body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Comments fetches the comments on a task.
func (c *Client) Comments(ctx context.Context, taskID int64) ([]Comment, error) {
	var comments []Comment
	path := fmt.Sprintf("/comments?task_id=%d", taskID)
	if err := c.do(ctx, http.MethodGet, path, nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// AddComment attaches a comment to a task.
func (c *Client) AddComment(ctx context.Context, taskID int64, content string) (*Comment, error) {
	var created Comment
	body := commentCreate{TaskID: taskID, Content: content}
	if err := c.do(ctx, http.MethodPost, "/comments", body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
