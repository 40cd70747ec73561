package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/raphaelgruber/wellkeep/internal/kv"
	"github.com/raphaelgruber/wellkeep/internal/models"
)

// Reminders implements reminder CRUD. Updates are shallow merge patches:
// fields present in the patch replace the stored ones, all others survive.
type Reminders struct {
	store  kv.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewReminders creates the reminder service.
func NewReminders(store kv.Store, logger *slog.Logger) *Reminders {
	return &Reminders{store: store, logger: logger, now: time.Now}
}

// Create validates and persists a reminder, returning its key. Type defaults
// to task and enabled defaults to true; the creation timestamp doubles as
// the key suffix.
func (s *Reminders) Create(ctx context.Context, input models.ReminderInput) (string, error) {
	if input.Title == "" {
		return "", validationf("title", "title is required")
	}
	if input.Time == "" {
		return "", validationf("time", "time is required")
	}
	if !models.ValidClockTime(input.Time) {
		return "", validationf("time", "time must be in HH:MM format")
	}

	reminderType := input.Type
	if reminderType == "" {
		reminderType = models.ReminderTypeTask
	} else if !models.ValidReminderType(reminderType) {
		return "", validationf("type", "type must be medicine or task")
	}

	enabled := true
	if input.Enabled != nil {
		enabled = *input.Enabled
	}

	createdAt := s.now().UnixMilli()
	key := models.ReminderKey(createdAt)
	reminder := models.Reminder{
		Title:     input.Title,
		Time:      input.Time,
		Type:      reminderType,
		Enabled:   enabled,
		CreatedAt: createdAt,
	}

	value, err := json.Marshal(reminder)
	if err != nil {
		return "", &StorageError{Op: "encode reminder", Err: err}
	}
	if err := s.store.Set(ctx, key, value); err != nil {
		return "", &StorageError{Op: "set reminder", Err: err}
	}

	s.logger.Info("reminder created", "key", key, "time", reminder.Time, "type", reminder.Type)
	return key, nil
}

// Update applies a shallow merge patch to the reminder stored under id.
// Supplied fields are validated; absent fields keep their stored values.
func (s *Reminders) Update(ctx context.Context, id string, patch map[string]any) error {
	if err := validateReminderPatch(patch); err != nil {
		return err
	}

	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return &StorageError{Op: "get reminder", Err: err}
	}
	if existing == nil {
		return ErrNotFound
	}

	var merged map[string]any
	if err := json.Unmarshal(existing, &merged); err != nil {
		return &StorageError{Op: "decode reminder", Err: err}
	}
	for field, value := range patch {
		// id lives in the key, never in the record
		if field == "id" {
			continue
		}
		merged[field] = value
	}

	value, err := json.Marshal(merged)
	if err != nil {
		return &StorageError{Op: "encode reminder", Err: err}
	}
	if err := s.store.Set(ctx, id, value); err != nil {
		return &StorageError{Op: "set reminder", Err: err}
	}

	s.logger.Info("reminder updated", "key", id)
	return nil
}

func validateReminderPatch(patch map[string]any) error {
	if raw, ok := patch["time"]; ok {
		str, isString := raw.(string)
		if !isString || !models.ValidClockTime(str) {
			return validationf("time", "time must be in HH:MM format")
		}
	}
	if raw, ok := patch["type"]; ok {
		str, isString := raw.(string)
		if !isString || !models.ValidReminderType(str) {
			return validationf("type", "type must be medicine or task")
		}
	}
	if raw, ok := patch["title"]; ok {
		str, isString := raw.(string)
		if !isString || str == "" {
			return validationf("title", "title must be a non-empty string")
		}
	}
	if raw, ok := patch["enabled"]; ok {
		if _, isBool := raw.(bool); !isBool {
			return validationf("enabled", "enabled must be a boolean")
		}
	}
	return nil
}

// Delete removes the reminder stored under id. Deleting an absent id
// succeeds.
func (s *Reminders) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return &StorageError{Op: "delete reminder", Err: err}
	}
	s.logger.Info("reminder deleted", "key", id)
	return nil
}

// List returns all reminders in key order.
func (s *Reminders) List(ctx context.Context) ([]models.ReminderView, error) {
	entries, err := s.store.ScanPrefix(ctx, models.PrefixReminder)
	if err != nil {
		return nil, &StorageError{Op: "scan reminders", Err: err}
	}

	reminders := make([]models.ReminderView, 0, len(entries))
	for _, entry := range entries {
		var reminder models.Reminder
		if err := json.Unmarshal(entry.Value, &reminder); err != nil {
			s.logger.Warn("skipping undecodable reminder record", "key", entry.Key, "error", err)
			continue
		}
		reminders = append(reminders, models.ReminderView{ID: entry.Key, Reminder: reminder})
	}
	return reminders, nil
}
