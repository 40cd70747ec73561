package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/raphaelgruber/wellkeep/internal/kv"
	"github.com/raphaelgruber/wellkeep/internal/models"
)

// Moods implements mood log operations. Moods are append-only: there is no
// update or delete.
type Moods struct {
	store  kv.Store
	logger *slog.Logger
}

// NewMoods creates the mood service.
func NewMoods(store kv.Store, logger *slog.Logger) *Moods {
	return &Moods{store: store, logger: logger}
}

// Create validates and persists a mood entry, returning its key.
func (s *Moods) Create(ctx context.Context, input models.Mood) (string, error) {
	if input.Emoji == "" {
		return "", validationf("emoji", "emoji is required")
	}
	if input.Timestamp == 0 {
		return "", validationf("timestamp", "timestamp is required")
	}

	key := models.MoodKey(input.Timestamp)
	value, err := json.Marshal(input)
	if err != nil {
		return "", &StorageError{Op: "encode mood", Err: err}
	}
	if err := s.store.Set(ctx, key, value); err != nil {
		return "", &StorageError{Op: "set mood", Err: err}
	}

	s.logger.Info("mood logged", "key", key, "emoji", input.Emoji)
	return key, nil
}

// List returns all mood entries in key order.
func (s *Moods) List(ctx context.Context) ([]models.MoodView, error) {
	entries, err := s.store.ScanPrefix(ctx, models.PrefixMood)
	if err != nil {
		return nil, &StorageError{Op: "scan moods", Err: err}
	}

	moods := make([]models.MoodView, 0, len(entries))
	for _, entry := range entries {
		var mood models.Mood
		if err := json.Unmarshal(entry.Value, &mood); err != nil {
			s.logger.Warn("skipping undecodable mood record", "key", entry.Key, "error", err)
			continue
		}
		moods = append(moods, models.MoodView{ID: entry.Key, Mood: mood})
	}
	return moods, nil
}
