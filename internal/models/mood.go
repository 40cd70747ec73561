package models

// Mood is a single mood log entry. Moods are immutable once written:
// there is no update or delete surface for them.
type Mood struct {
	Emoji     string `json:"emoji"`
	Note      string `json:"note,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// MoodView is a Mood as returned by list operations, carrying its KV key as ID.
type MoodView struct {
	ID string `json:"id"`
	Mood
}
