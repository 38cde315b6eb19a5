// Package client is a small HTTP client for the secrets API, used by the
// CLI to wait for a server and to export its contents.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/doodlesbykumbi/secrets-api/pkg/model"
)

// Status mirrors the body of GET /status
type Status struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Secrets  int    `json:"secrets"`
	Projects int    `json:"projects"`
}

// Export is a point-in-time copy of every stored record
type Export struct {
	Version  string          `json:"version" yaml:"version"`
	Secrets  []model.Secret  `json:"secrets" yaml:"secrets"`
	Projects []model.Project `json:"projects" yaml:"projects"`
}

// APIError is returned for non-2xx responses
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the server at baseURL, e.g. http://localhost:8000
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *Client) get(ctx context.Context, path string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		message := strings.TrimSpace(string(body))
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			message = apiErr.Error.Message
		}
		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

// Status fetches the server's health report
func (c *Client) Status(ctx context.Context) (Status, error) {
	var status Status
	err := c.get(ctx, "/status", &status)
	return status, err
}

// Wait polls /status until the server reports ok, ctx is done, or retries
// run out. tick is called after every failed attempt.
func (c *Client) Wait(ctx context.Context, retries int, interval time.Duration, tick func()) error {
	var lastErr error
	for i := 0; i < retries; i++ {
		status, err := c.Status(ctx)
		if err == nil && status.Status == "ok" {
			return nil
		}
		lastErr = err
		if tick != nil {
			tick()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
	if lastErr != nil {
		return fmt.Errorf("not ready after %d attempts: %w", retries, lastErr)
	}
	return fmt.Errorf("not ready after %d attempts", retries)
}

func (c *Client) ListSecrets(ctx context.Context) ([]model.Secret, error) {
	var secrets []model.Secret
	err := c.get(ctx, "/secrets", &secrets)
	return secrets, err
}

func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	err := c.get(ctx, "/projects", &projects)
	return projects, err
}

// Export fetches every secret and project
func (c *Client) Export(ctx context.Context) (Export, error) {
	status, err := c.Status(ctx)
	if err != nil {
		return Export{}, err
	}
	secrets, err := c.ListSecrets(ctx)
	if err != nil {
		return Export{}, fmt.Errorf("listing secrets: %w", err)
	}
	projects, err := c.ListProjects(ctx)
	if err != nil {
		return Export{}, fmt.Errorf("listing projects: %w", err)
	}
	return Export{Version: status.Version, Secrets: secrets, Projects: projects}, nil
}
