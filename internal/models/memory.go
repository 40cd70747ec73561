package models

// Memory is a persisted photo-journal entry. PhotoPath is the internal blob
// object name (nil when the memory is caption-only); the record never stores
// an access URL.
type Memory struct {
	Caption   string  `json:"caption,omitempty"`
	PhotoPath *string `json:"photoPath"`
	Timestamp int64   `json:"timestamp"`
}

// MemoryView wraps a Memory for read responses. PhotoURL is derived at read
// time (a signed URL with limited validity) and must never be persisted or
// treated as stable: each read may return a different URL for the same
// PhotoPath, and the field is omitted when URL signing fails.
type MemoryView struct {
	ID string `json:"id"`
	Memory
	PhotoURL string `json:"photoUrl,omitempty"`
}

// MemoryInput is the create payload. PhotoBase64 is a data-URL string
// ("data:image/...;base64,<payload>"). Timestamp defaults to the server
// clock when zero.
type MemoryInput struct {
	Caption     string `json:"caption,omitempty"`
	PhotoBase64 string `json:"photoBase64,omitempty"`
	Timestamp   int64  `json:"timestamp,omitempty"`
}
