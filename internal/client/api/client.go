// Package api is the HTTP client of the task API.
package api

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

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/BuzzLyutic/todo/internal/model"
)

// Error is a failed envelope, or a non-2xx response without one.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

type envelope struct {
	Success    bool                 `json:"success"`
	Data       model.TaskListResult `json:"data"`
	Message    string               `json:"message"`
	StatusCode int                  `json:"statusCode"`
}

type createTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for an API rooted at baseURL, e.g. http://localhost:8080/api.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("api: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.New("api: base url must be absolute")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}, nil
}

func (c *Client) CreateTask(ctx context.Context, in model.CreateTaskInput) (model.TaskListResult, error) {
	return c.do(ctx, http.MethodPost, "/tasks", createTaskRequest{Title: in.Title, Description: in.Description})
}

func (c *Client) MarkCompleted(ctx context.Context, id int64) (model.TaskListResult, error) {
	return c.do(ctx, http.MethodPatch, "/tasks/"+strconv.FormatInt(id, 10), nil)
}

func (c *Client) DeleteTask(ctx context.Context, id int64) (model.TaskListResult, error) {
	return c.do(ctx, http.MethodDelete, "/tasks/"+strconv.FormatInt(id, 10), nil)
}

func (c *Client) ListTasks(ctx context.Context, page int, completed bool) (model.TaskListResult, error) {
	path := "/tasks/not-completed"
	if completed {
		path = "/tasks/completed"
	}
	return c.do(ctx, http.MethodGet, path+"?page="+strconv.Itoa(page), nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (model.TaskListResult, error) {
	var rdr io.Reader
	if body != nil {
		p, err := json.Marshal(body)
		if err != nil {
			return model.TaskListResult{}, fmt.Errorf("api: marshal body: %w", err)
		}
		rdr = bytes.NewReader(p)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return model.TaskListResult{}, fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(middleware.RequestIDHeader, uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return model.TaskListResult{}, fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return model.TaskListResult{}, &Error{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return model.TaskListResult{}, fmt.Errorf("api: decode response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		code := env.StatusCode
		if code == 0 {
			code = resp.StatusCode
		}
		return model.TaskListResult{}, &Error{StatusCode: code, Message: env.Message}
	}

	if env.Data.Tasks == nil {
		env.Data.Tasks = []model.Task{}
	}
	return env.Data, nil
}
