package models

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePhotoDataURL(t *testing.T) {
	payload := []byte("fake jpeg bytes")
	encoded := base64.StdEncoding.EncodeToString(payload)

	t.Run("jpeg data URL", func(t *testing.T) {
		data, contentType, err := DecodePhotoDataURL("data:image/jpeg;base64," + encoded)
		require.NoError(t, err)
		assert.Equal(t, payload, data)
		assert.Equal(t, "image/jpeg", contentType)
	})

	t.Run("png content type is preserved", func(t *testing.T) {
		_, contentType, err := DecodePhotoDataURL("data:image/png;base64," + encoded)
		require.NoError(t, err)
		assert.Equal(t, "image/png", contentType)
	})

	t.Run("non-image content type falls back to jpeg", func(t *testing.T) {
		_, contentType, err := DecodePhotoDataURL("data:application/octet-stream;base64," + encoded)
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", contentType)
	})

	t.Run("raw base64 without data prefix", func(t *testing.T) {
		_, _, err := DecodePhotoDataURL(encoded)
		assert.ErrorIs(t, err, ErrNotDataURL)
	})

	t.Run("missing base64 marker", func(t *testing.T) {
		_, _, err := DecodePhotoDataURL("data:image/jpeg," + encoded)
		assert.ErrorIs(t, err, ErrNotDataURL)
	})

	t.Run("invalid base64 payload", func(t *testing.T) {
		_, _, err := DecodePhotoDataURL("data:image/jpeg;base64,not base64!!")
		assert.ErrorIs(t, err, ErrNotDataURL)
	})
}

func TestValidClockTime(t *testing.T) {
	valid := []string{"00:00", "08:00", "13:37", "23:59"}
	for _, s := range valid {
		assert.True(t, ValidClockTime(s), s)
	}

	invalid := []string{"", "8:00", "24:00", "12:60", "12:5", "noon", "12:00:00"}
	for _, s := range invalid {
		assert.False(t, ValidClockTime(s), s)
	}
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "mood:1699999999999", MoodKey(1699999999999))
	assert.Equal(t, "reminder:1699999999999", ReminderKey(1699999999999))
	assert.Equal(t, "memory:1699999999999", MemoryKey(1699999999999))
}
