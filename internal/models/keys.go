// Package models defines the persisted record types and their key conventions.
package models

import "strconv"

// Key prefixes partition the flat KV namespace by record type.
const (
	PrefixMood     = "mood:"
	PrefixReminder = "reminder:"
	PrefixMemory   = "memory:"
)

// MoodKey returns the KV key for a mood logged at the given epoch-ms timestamp.
// Two moods logged in the same millisecond share a key and overwrite each other.
func MoodKey(timestamp int64) string {
	return PrefixMood + strconv.FormatInt(timestamp, 10)
}

// ReminderKey returns the KV key for a reminder created at the given epoch-ms timestamp.
func ReminderKey(createdAt int64) string {
	return PrefixReminder + strconv.FormatInt(createdAt, 10)
}

// MemoryKey returns the KV key for a memory with the given epoch-ms timestamp.
func MemoryKey(timestamp int64) string {
	return PrefixMemory + strconv.FormatInt(timestamp, 10)
}
