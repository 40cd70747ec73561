package server_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/wellkeep/internal/blob"
	"github.com/raphaelgruber/wellkeep/internal/kv"
	"github.com/raphaelgruber/wellkeep/internal/metrics"
	"github.com/raphaelgruber/wellkeep/internal/server"
	"github.com/raphaelgruber/wellkeep/internal/service"
)

const testToken = "test-token"

type fixture struct {
	ts    *httptest.Server
	store *kv.Memory
	blobs *blob.Memory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	store := kv.NewMemory()
	blobs := blob.NewMemory()

	srv := server.New(
		server.Config{BasePath: "/api/v1", AuthToken: testToken},
		service.NewMoods(store, logger),
		service.NewReminders(store, logger),
		service.NewMemories(store, blobs, logger, time.Hour),
		metrics.NewCollector(),
		logger,
	)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &fixture{ts: ts, store: store, blobs: blobs}
}

func (f *fixture) request(t *testing.T, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, f.ts.URL+"/api/v1"+path, reader)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+testToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestHealthRequiresNoAuth(t *testing.T) {
	f := newFixture(t)

	resp, err := http.Get(f.ts.URL + "/api/v1/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "ok", body["status"])
}

func TestMissingTokenRejected(t *testing.T) {
	f := newFixture(t)

	resp, err := http.Get(f.ts.URL + "/api/v1/moods")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])
}

func TestWrongTokenRejected(t *testing.T) {
	f := newFixture(t)

	req, err := http.NewRequest(http.MethodGet, f.ts.URL+"/api/v1/moods", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer wrong")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMoodRoundtrip(t *testing.T) {
	f := newFixture(t)

	resp, body := f.request(t, http.MethodPost, "/moods", map[string]any{
		"emoji":     "🙂",
		"note":      "sunny",
		"timestamp": 1700000000000,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "mood:1700000000000", body["moodId"])

	resp, body = f.request(t, http.MethodGet, "/moods", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	moods := body["moods"].([]any)
	require.Len(t, moods, 1)
	mood := moods[0].(map[string]any)
	assert.Equal(t, "mood:1700000000000", mood["id"])
	assert.Equal(t, "🙂", mood["emoji"])
}

func TestMoodValidationStatus(t *testing.T) {
	f := newFixture(t)

	resp, body := f.request(t, http.MethodPost, "/moods", map[string]any{"note": "no emoji"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])
}

func TestReminderLifecycle(t *testing.T) {
	f := newFixture(t)

	// Create with defaults
	resp, body := f.request(t, http.MethodPost, "/reminders", map[string]any{
		"title": "Vitamin D",
		"time":  "08:00",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	key := body["reminderId"].(string)
	assert.Contains(t, key, "reminder:")

	// List shows defaults applied
	_, body = f.request(t, http.MethodGet, "/reminders", nil)
	reminders := body["reminders"].([]any)
	require.Len(t, reminders, 1)
	reminder := reminders[0].(map[string]any)
	assert.Equal(t, key, reminder["id"])
	assert.Equal(t, "Vitamin D", reminder["title"])
	assert.Equal(t, "08:00", reminder["time"])
	assert.Equal(t, "task", reminder["type"])
	assert.Equal(t, true, reminder["enabled"])

	// Disable via merge patch
	resp, body = f.request(t, http.MethodPut, "/reminders/"+key, map[string]any{"enabled": false})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	_, body = f.request(t, http.MethodGet, "/reminders", nil)
	reminder = body["reminders"].([]any)[0].(map[string]any)
	assert.Equal(t, false, reminder["enabled"])
	assert.Equal(t, "Vitamin D", reminder["title"])

	// Update of a missing reminder is 404
	resp, _ = f.request(t, http.MethodPut, "/reminders/reminder:999", map[string]any{"enabled": true})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Delete twice, both succeed
	resp, _ = f.request(t, http.MethodDelete, "/reminders/"+key, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = f.request(t, http.MethodDelete, "/reminders/"+key, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, body = f.request(t, http.MethodGet, "/reminders", nil)
	assert.Empty(t, body["reminders"])
}

func TestMemoryLifecycle(t *testing.T) {
	f := newFixture(t)
	photo := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("jpeg bytes"))

	resp, body := f.request(t, http.MethodPost, "/memories", map[string]any{
		"caption":     "Picnic",
		"photoBase64": photo,
		"timestamp":   1700000000000,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	key := body["memoryId"].(string)
	assert.Equal(t, "memory:1700000000000", key)

	// List returns a signed URL but no persisted photoUrl
	_, body = f.request(t, http.MethodGet, "/memories", nil)
	memories := body["memories"].([]any)
	require.Len(t, memories, 1)
	memory := memories[0].(map[string]any)
	assert.Equal(t, key, memory["id"])
	assert.Equal(t, "Picnic", memory["caption"])
	assert.NotEmpty(t, memory["photoPath"])
	assert.NotEmpty(t, memory["photoUrl"])

	stored, err := f.store.Get(t.Context(), key)
	require.NoError(t, err)
	assert.NotContains(t, string(stored), "photoUrl")

	// Delete removes record and photo
	photoPath := memory["photoPath"].(string)
	require.True(t, f.blobs.Exists(photoPath))

	resp, _ = f.request(t, http.MethodDelete, "/memories/"+key, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, f.blobs.Exists(photoPath))

	_, body = f.request(t, http.MethodGet, "/memories", nil)
	assert.Empty(t, body["memories"])
}

func TestMemoryRequiresCaptionOrPhoto(t *testing.T) {
	f := newFixture(t)

	resp, body := f.request(t, http.MethodPost, "/memories", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

type downStore struct{}

func (downStore) Get(context.Context, string) (json.RawMessage, error) {
	return nil, errors.New("connection refused")
}

func (downStore) Set(context.Context, string, json.RawMessage) error {
	return errors.New("connection refused")
}

func (downStore) Delete(context.Context, string) error {
	return errors.New("connection refused")
}

func (downStore) ScanPrefix(context.Context, string) ([]kv.Entry, error) {
	return nil, errors.New("connection refused")
}

func TestStorageFailureSurfacesCause(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	srv := server.New(
		server.Config{BasePath: "/api/v1", AuthToken: testToken},
		service.NewMoods(downStore{}, logger),
		service.NewReminders(downStore{}, logger),
		service.NewMemories(downStore{}, blob.NewMemory(), logger, time.Hour),
		nil,
		logger,
	)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/moods", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+testToken)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "scan moods")
	assert.Contains(t, body["error"], "connection refused")
}

func TestMalformedJSONBody(t *testing.T) {
	f := newFixture(t)

	req, err := http.NewRequest(http.MethodPost, f.ts.URL+"/api/v1/moods", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+testToken)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStats(t *testing.T) {
	f := newFixture(t)

	// Generate some traffic first
	_, _ = f.request(t, http.MethodGet, "/moods", nil)

	resp, body := f.request(t, http.MethodGet, "/stats", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	stats := body["stats"].(map[string]any)
	assert.Contains(t, stats, "uptimeSeconds")
}
