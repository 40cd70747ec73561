package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/raphaelgruber/wellkeep/internal/blob"
	"github.com/raphaelgruber/wellkeep/internal/kv"
	"github.com/raphaelgruber/wellkeep/internal/models"
)

// MaxPhotoBytes caps the decoded photo size accepted on memory creation.
const MaxPhotoBytes = 5 << 20

// DefaultSignTTL is the validity window for signed photo URLs.
const DefaultSignTTL = time.Hour

// Memories implements the photo journal: records in the kv store, photos in
// the blob store, linked by an internal blob path.
type Memories struct {
	store   kv.Store
	blobs   blob.Store
	logger  *slog.Logger
	signTTL time.Duration
	now     func() time.Time
	suffix  func() string
}

// NewMemories creates the memory service. A zero signTTL falls back to
// DefaultSignTTL.
func NewMemories(store kv.Store, blobs blob.Store, logger *slog.Logger, signTTL time.Duration) *Memories {
	if signTTL <= 0 {
		signTTL = DefaultSignTTL
	}
	return &Memories{
		store:   store,
		blobs:   blobs,
		logger:  logger,
		signTTL: signTTL,
		now:     time.Now,
		suffix:  func() string { return uuid.NewString()[:8] },
	}
}

// Create persists a memory, uploading the photo first when one is supplied.
// At least one of caption and photo is required. On upload failure no record
// is written.
func (s *Memories) Create(ctx context.Context, input models.MemoryInput) (string, error) {
	if input.Caption == "" && input.PhotoBase64 == "" {
		return "", validationf("caption", "caption or photo is required")
	}

	timestamp := input.Timestamp
	if timestamp == 0 {
		timestamp = s.now().UnixMilli()
	}

	var photoPath *string
	if input.PhotoBase64 != "" {
		data, contentType, err := models.DecodePhotoDataURL(input.PhotoBase64)
		if err != nil {
			return "", validationf("photoBase64", "%v", err)
		}
		if len(data) > MaxPhotoBytes {
			return "", validationf("photoBase64", "photo exceeds %d bytes", MaxPhotoBytes)
		}

		path := fmt.Sprintf("%d-%s.jpg", s.now().UnixMilli(), s.suffix())
		if err := s.blobs.Upload(ctx, path, data, contentType); err != nil {
			return "", &UploadError{Err: err}
		}
		photoPath = &path
	}

	key := models.MemoryKey(timestamp)
	record := models.Memory{
		Caption:   input.Caption,
		PhotoPath: photoPath,
		Timestamp: timestamp,
	}
	value, err := json.Marshal(record)
	if err != nil {
		return "", &StorageError{Op: "encode memory", Err: err}
	}
	if err := s.store.Set(ctx, key, value); err != nil {
		// The uploaded photo is now orphaned; the sweep job reports it.
		if photoPath != nil {
			s.logger.Warn("memory record write failed after upload", "path", *photoPath, "error", err)
		}
		return "", &StorageError{Op: "set memory", Err: err}
	}

	s.logger.Info("memory created", "key", key, "hasPhoto", photoPath != nil)
	return key, nil
}

// List returns all memories in key order, each photo-bearing record carrying
// a freshly signed URL. Records whose URL cannot be signed are returned
// without one.
func (s *Memories) List(ctx context.Context) ([]models.MemoryView, error) {
	entries, err := s.store.ScanPrefix(ctx, models.PrefixMemory)
	if err != nil {
		return nil, &StorageError{Op: "scan memories", Err: err}
	}

	memories := make([]models.MemoryView, 0, len(entries))
	for _, entry := range entries {
		var memory models.Memory
		if err := json.Unmarshal(entry.Value, &memory); err != nil {
			s.logger.Warn("skipping undecodable memory record", "key", entry.Key, "error", err)
			continue
		}

		view := models.MemoryView{ID: entry.Key, Memory: memory}
		if memory.PhotoPath != nil {
			url, err := s.blobs.SignedURL(ctx, *memory.PhotoPath, s.signTTL)
			if err != nil {
				s.logger.Warn("signing photo URL failed", "key", entry.Key, "path", *memory.PhotoPath, "error", err)
			} else {
				view.PhotoURL = url
			}
		}
		memories = append(memories, view)
	}
	return memories, nil
}

// Delete removes the memory stored under id and best-effort removes its
// photo. Deleting an absent id succeeds.
func (s *Memories) Delete(ctx context.Context, id string) error {
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return &StorageError{Op: "get memory", Err: err}
	}

	if existing != nil {
		var memory models.Memory
		if err := json.Unmarshal(existing, &memory); err == nil && memory.PhotoPath != nil {
			if err := s.blobs.Remove(ctx, *memory.PhotoPath); err != nil {
				s.logger.Warn("removing photo failed", "path", *memory.PhotoPath, "error", err)
			}
		}
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return &StorageError{Op: "delete memory", Err: err}
	}
	s.logger.Info("memory deleted", "key", id)
	return nil
}

// OrphanedPhotos returns blob paths no memory record references. Failed
// record writes after a successful upload leave these behind.
func (s *Memories) OrphanedPhotos(ctx context.Context) ([]string, error) {
	paths, err := s.blobs.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}

	entries, err := s.store.ScanPrefix(ctx, models.PrefixMemory)
	if err != nil {
		return nil, &StorageError{Op: "scan memories", Err: err}
	}

	referenced := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		var memory models.Memory
		if err := json.Unmarshal(entry.Value, &memory); err != nil {
			continue
		}
		if memory.PhotoPath != nil {
			referenced[*memory.PhotoPath] = struct{}{}
		}
	}

	var orphaned []string
	for _, path := range paths {
		if _, ok := referenced[path]; !ok {
			orphaned = append(orphaned, path)
		}
	}
	return orphaned, nil
}

// LogOrphanedPhotos runs the orphan check and logs the result. It never
// deletes anything; it exists to surface leaks for manual cleanup.
func (s *Memories) LogOrphanedPhotos(ctx context.Context) {
	orphaned, err := s.OrphanedPhotos(ctx)
	if err != nil {
		s.logger.Error("orphan photo sweep failed", "error", err)
		return
	}
	if len(orphaned) == 0 {
		s.logger.Info("orphan photo sweep complete", "orphaned", 0)
		return
	}
	s.logger.Warn("orphaned photos found", "count", len(orphaned), "paths", orphaned)
}
