package client_test

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/wellkeep/internal/blob"
	"github.com/raphaelgruber/wellkeep/internal/client"
	"github.com/raphaelgruber/wellkeep/internal/kv"
	"github.com/raphaelgruber/wellkeep/internal/metrics"
	"github.com/raphaelgruber/wellkeep/internal/models"
	"github.com/raphaelgruber/wellkeep/internal/server"
	"github.com/raphaelgruber/wellkeep/internal/service"
)

func newTestClient(t *testing.T) *client.Client {
	c, _ := newTestClientURL(t)
	return c
}

func newTestClientURL(t *testing.T) (*client.Client, string) {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	store := kv.NewMemory()
	blobs := blob.NewMemory()

	srv := server.New(
		server.Config{BasePath: "/api/v1", AuthToken: "roundtrip-token"},
		service.NewMoods(store, logger),
		service.NewReminders(store, logger),
		service.NewMemories(store, blobs, logger, time.Hour),
		metrics.NewCollector(),
		logger,
	)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return client.New(ts.URL+"/api/v1", "roundtrip-token"), ts.URL + "/api/v1"
}

func TestClientHealth(t *testing.T) {
	c := newTestClient(t)
	assert.NoError(t, c.Health(context.Background()))
}

func TestClientMoodRoundtrip(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	key, err := c.CreateMood(ctx, models.Mood{Emoji: "🙂", Timestamp: 1700000000000})
	require.NoError(t, err)
	assert.Equal(t, "mood:1700000000000", key)

	moods, err := c.ListMoods(ctx)
	require.NoError(t, err)
	require.Len(t, moods, 1)
	assert.Equal(t, key, moods[0].ID)
	assert.Equal(t, "🙂", moods[0].Emoji)
}

func TestClientReminderRoundtrip(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	key, err := c.CreateReminder(ctx, models.ReminderInput{Title: "Vitamin D", Time: "08:00"})
	require.NoError(t, err)

	require.NoError(t, c.UpdateReminder(ctx, key, map[string]any{"enabled": false}))

	reminders, err := c.ListReminders(ctx)
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.False(t, reminders[0].Enabled)
	assert.Equal(t, "Vitamin D", reminders[0].Title)

	require.NoError(t, c.DeleteReminder(ctx, key))

	reminders, err = c.ListReminders(ctx)
	require.NoError(t, err)
	assert.Empty(t, reminders)
}

func TestClientMemoryRoundtrip(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	photo := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("jpeg bytes"))
	key, err := c.CreateMemory(ctx, models.MemoryInput{Caption: "Picnic", PhotoBase64: photo})
	require.NoError(t, err)

	memories, err := c.ListMemories(ctx)
	require.NoError(t, err)
	require.Len(t, memories, 1)
	assert.Equal(t, key, memories[0].ID)
	assert.NotEmpty(t, memories[0].PhotoURL)

	require.NoError(t, c.DeleteMemory(ctx, key))
}

func TestClientServerError(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	_, err := c.CreateMood(ctx, models.Mood{Note: "no emoji"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "emoji")
}

func TestClientWrongToken(t *testing.T) {
	ctx := context.Background()
	_, url := newTestClientURL(t)

	bad := client.New(url, "wrong")
	_, err := bad.ListMoods(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized")
}

func TestClientStats(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	// Generate traffic so the HTTP counter is non-nil
	_, err := c.ListMoods(ctx)
	require.NoError(t, err)

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Greater(t, stats.UptimeSeconds, 0.0)
	require.NotNil(t, stats.HTTPRequest)
	assert.GreaterOrEqual(t, stats.HTTPRequest.Count, int64(1))
}
