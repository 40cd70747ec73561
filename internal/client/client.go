// Package client provides a REST client for the wellkeep server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/raphaelgruber/wellkeep/internal/metrics"
	"github.com/raphaelgruber/wellkeep/internal/models"
)

// Client talks to the wellkeep HTTP API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a client. Empty arguments fall back to the WELLKEEP_SERVER_URL
// and WELLKEEP_AUTH_TOKEN env vars; the URL defaults to localhost:8484.
func New(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = os.Getenv("WELLKEEP_SERVER_URL")
	}
	if baseURL == "" {
		baseURL = "http://localhost:8484/api/v1"
	}
	if token == "" {
		token = os.Getenv("WELLKEEP_AUTH_TOKEN")
	}

	timeout := 30 * time.Second
	if t := os.Getenv("WELLKEEP_CLIENT_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			timeout = d
		}
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// envelope is the response wrapper every endpoint uses.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// do sends a request and decodes the enveloped response. Payload fields are
// decoded into out when it is non-nil.
func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("server error: %s - %s", resp.Status, string(body))
	}
	if !env.Success {
		if env.Error != "" {
			return fmt.Errorf("server error: %s", env.Error)
		}
		return fmt.Errorf("server error: %s", resp.Status)
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

// Health checks server reachability.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

// CreateMood logs a mood entry and returns its id.
func (c *Client) CreateMood(ctx context.Context, mood models.Mood) (string, error) {
	var result struct {
		MoodID string `json:"moodId"`
	}
	if err := c.do(ctx, http.MethodPost, "/moods", mood, &result); err != nil {
		return "", err
	}
	return result.MoodID, nil
}

// ListMoods returns all mood entries.
func (c *Client) ListMoods(ctx context.Context) ([]models.MoodView, error) {
	var result struct {
		Moods []models.MoodView `json:"moods"`
	}
	if err := c.do(ctx, http.MethodGet, "/moods", nil, &result); err != nil {
		return nil, err
	}
	return result.Moods, nil
}

// CreateReminder creates a reminder and returns its id.
func (c *Client) CreateReminder(ctx context.Context, input models.ReminderInput) (string, error) {
	var result struct {
		ReminderID string `json:"reminderId"`
	}
	if err := c.do(ctx, http.MethodPost, "/reminders", input, &result); err != nil {
		return "", err
	}
	return result.ReminderID, nil
}

// ListReminders returns all reminders.
func (c *Client) ListReminders(ctx context.Context) ([]models.ReminderView, error) {
	var result struct {
		Reminders []models.ReminderView `json:"reminders"`
	}
	if err := c.do(ctx, http.MethodGet, "/reminders", nil, &result); err != nil {
		return nil, err
	}
	return result.Reminders, nil
}

// UpdateReminder applies a merge patch to the reminder with the given id.
func (c *Client) UpdateReminder(ctx context.Context, id string, patch map[string]any) error {
	return c.do(ctx, http.MethodPut, "/reminders/"+url.PathEscape(id), patch, nil)
}

// DeleteReminder deletes the reminder with the given id.
func (c *Client) DeleteReminder(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/reminders/"+url.PathEscape(id), nil, nil)
}

// CreateMemory creates a memory and returns its id.
func (c *Client) CreateMemory(ctx context.Context, input models.MemoryInput) (string, error) {
	var result struct {
		MemoryID string `json:"memoryId"`
	}
	if err := c.do(ctx, http.MethodPost, "/memories", input, &result); err != nil {
		return "", err
	}
	return result.MemoryID, nil
}

// ListMemories returns all memories with freshly signed photo URLs.
func (c *Client) ListMemories(ctx context.Context) ([]models.MemoryView, error) {
	var result struct {
		Memories []models.MemoryView `json:"memories"`
	}
	if err := c.do(ctx, http.MethodGet, "/memories", nil, &result); err != nil {
		return nil, err
	}
	return result.Memories, nil
}

// DeleteMemory deletes the memory with the given id.
func (c *Client) DeleteMemory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/memories/"+url.PathEscape(id), nil, nil)
}

// Stats returns in-memory server statistics (reset on server restart).
func (c *Client) Stats(ctx context.Context) (*metrics.Snapshot, error) {
	var result struct {
		Stats metrics.Snapshot `json:"stats"`
	}
	if err := c.do(ctx, http.MethodGet, "/stats", nil, &result); err != nil {
		return nil, err
	}
	return &result.Stats, nil
}
