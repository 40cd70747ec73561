package service

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/wellkeep/internal/blob"
	"github.com/raphaelgruber/wellkeep/internal/kv"
	"github.com/raphaelgruber/wellkeep/internal/models"
)

func photoDataURL(payload string) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte(payload))
}

func newTestMemories(store kv.Store, blobs blob.Store) *Memories {
	memories := NewMemories(store, blobs, testLogger(), time.Hour)
	memories.now = fixedClock(time.UnixMilli(1700000000000))
	memories.suffix = func() string { return "abcd1234" }
	return memories
}

func TestMemoryCreateWithPhoto(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	blobs := blob.NewMemory()
	memories := newTestMemories(store, blobs)

	key, err := memories.Create(ctx, models.MemoryInput{
		Caption:     "Picnic",
		PhotoBase64: photoDataURL("jpeg bytes"),
		Timestamp:   1700000000000,
	})
	require.NoError(t, err)
	assert.Equal(t, "memory:1700000000000", key)

	assert.True(t, blobs.Exists("1700000000000-abcd1234.jpg"))
	data, contentType, ok := blobs.Object("1700000000000-abcd1234.jpg")
	require.True(t, ok)
	assert.Equal(t, []byte("jpeg bytes"), data)
	assert.Equal(t, "image/jpeg", contentType)

	list, err := memories.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, key, list[0].ID)
	assert.Equal(t, "Picnic", list[0].Caption)
	require.NotNil(t, list[0].PhotoPath)
	assert.Equal(t, "1700000000000-abcd1234.jpg", *list[0].PhotoPath)
	assert.NotEmpty(t, list[0].PhotoURL)
}

func TestMemoryCreateCaptionOnly(t *testing.T) {
	ctx := context.Background()
	memories := newTestMemories(kv.NewMemory(), blob.NewMemory())

	key, err := memories.Create(ctx, models.MemoryInput{Caption: "No photo today"})
	require.NoError(t, err)

	list, err := memories.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, key, list[0].ID)
	assert.Nil(t, list[0].PhotoPath)
	assert.Empty(t, list[0].PhotoURL)
	// Timestamp defaulted to the service clock
	assert.Equal(t, int64(1700000000000), list[0].Timestamp)
}

func TestMemoryCreateValidation(t *testing.T) {
	ctx := context.Background()
	memories := newTestMemories(kv.NewMemory(), blob.NewMemory())

	var vErr *ValidationError

	_, err := memories.Create(ctx, models.MemoryInput{})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "caption", vErr.Field)

	_, err = memories.Create(ctx, models.MemoryInput{PhotoBase64: "not a data url"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "photoBase64", vErr.Field)

	oversized := photoDataURL(strings.Repeat("x", MaxPhotoBytes+1))
	_, err = memories.Create(ctx, models.MemoryInput{PhotoBase64: oversized})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "photoBase64", vErr.Field)
}

func TestMemoryCreateUploadFailureWritesNoRecord(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	memories := newTestMemories(store, failingBlobs{})

	_, err := memories.Create(ctx, models.MemoryInput{
		Caption:     "Picnic",
		PhotoBase64: photoDataURL("jpeg bytes"),
	})

	var uErr *UploadError
	require.ErrorAs(t, err, &uErr)
	assert.Equal(t, 0, store.Len())
}

func TestMemoryListSigningFailureOmitsURL(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	blobs := blob.NewMemory()
	memories := newTestMemories(store, blobs)

	_, err := memories.Create(ctx, models.MemoryInput{
		Caption:     "Picnic",
		PhotoBase64: photoDataURL("jpeg bytes"),
	})
	require.NoError(t, err)

	// Same records, but the blob backend can no longer sign
	broken := newTestMemories(store, failingBlobs{})
	list, err := broken.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.NotNil(t, list[0].PhotoPath)
	assert.Empty(t, list[0].PhotoURL)
}

func TestMemoryDeleteRemovesPhoto(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	blobs := blob.NewMemory()
	memories := newTestMemories(store, blobs)

	key, err := memories.Create(ctx, models.MemoryInput{
		Caption:     "Picnic",
		PhotoBase64: photoDataURL("jpeg bytes"),
	})
	require.NoError(t, err)
	require.True(t, blobs.Exists("1700000000000-abcd1234.jpg"))

	require.NoError(t, memories.Delete(ctx, key))
	assert.False(t, blobs.Exists("1700000000000-abcd1234.jpg"))
	assert.Equal(t, 0, store.Len())

	// Deleting again succeeds
	require.NoError(t, memories.Delete(ctx, key))
}

func TestMemoryOrphanedPhotos(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	blobs := blob.NewMemory()
	memories := newTestMemories(store, blobs)

	_, err := memories.Create(ctx, models.MemoryInput{
		Caption:     "Picnic",
		PhotoBase64: photoDataURL("jpeg bytes"),
	})
	require.NoError(t, err)

	// An upload nothing references
	require.NoError(t, blobs.Upload(ctx, "1699999999999-dead0000.jpg", []byte("x"), "image/jpeg"))

	orphaned, err := memories.OrphanedPhotos(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1699999999999-dead0000.jpg"}, orphaned)
}

func TestMemoryStorageFailure(t *testing.T) {
	ctx := context.Background()
	memories := newTestMemories(failingKV{}, blob.NewMemory())

	var sErr *StorageError

	_, err := memories.Create(ctx, models.MemoryInput{Caption: "x"})
	assert.ErrorAs(t, err, &sErr)

	_, err = memories.List(ctx)
	assert.ErrorAs(t, err, &sErr)

	err = memories.Delete(ctx, "memory:1")
	assert.ErrorAs(t, err, &sErr)
}
