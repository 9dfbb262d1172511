package store

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/Parth-bot-crypto26/ChemicalVisualizer/internal/analysis/entity"
	"github.com/Parth-bot-crypto26/ChemicalVisualizer/internal/pkg/pkgerror"
	"github.com/Parth-bot-crypto26/ChemicalVisualizer/internal/pkg/pkguid"
)

// Records is an in-memory record store backed by a BlobStore for the
// original file bytes.
//
// Create is atomic from the caller's point of view: either the blob and the
// record row both persist, or neither does.
type Records struct {
	mu      sync.RWMutex
	records map[int64]entity.Record

	blobs BlobStore
	ids   pkguid.NumberID
	keys  pkguid.StringID
	now   func() time.Time
}

// NewRecords builds a record store on top of the given blob store and ID
// generators.
func NewRecords(blobs BlobStore, ids pkguid.NumberID, keys pkguid.StringID) *Records {
	return &Records{
		records: make(map[int64]entity.Record),
		blobs:   blobs,
		ids:     ids,
		keys:    keys,
		now:     time.Now,
	}
}

// Create persists the file bytes and a new record row, owned by owner.
func (s *Records) Create(ctx context.Context, owner, fileName string, file []byte, stats entity.Stats) (entity.Record, error) {
	key := s.keys.Generate() + filepath.Ext(fileName)

	if err := s.blobs.Put(ctx, key, file); err != nil {
		return entity.Record{}, pkgerror.NewServer(err)
	}

	rec := entity.Record{
		ID:        s.ids.Generate(),
		Owner:     owner,
		FileRef:   key,
		FileName:  fileName,
		CreatedAt: s.now(),
		Stats:     stats,
	}

	s.mu.Lock()
	_, exists := s.records[rec.ID]
	if !exists {
		s.records[rec.ID] = rec
	}
	s.mu.Unlock()

	if exists {
		// Roll the blob back so no partial state is left behind.
		if derr := s.blobs.Delete(ctx, key); derr != nil {
			slog.ErrorContext(ctx, "failed to roll back blob after record insert failure", "key", key, "error", derr)
		}
		return entity.Record{}, pkgerror.NewServer(errors.New("duplicate record id"))
	}

	return rec, nil
}

// ListRecent returns up to limit records owned by owner, newest first.
// Creation-time ties are broken by descending record ID.
func (s *Records) ListRecent(_ context.Context, owner string, limit int) ([]entity.Record, error) {
	s.mu.RLock()
	owned := make([]entity.Record, 0, len(s.records))
	for _, rec := range s.records {
		if rec.Owner == owner {
			owned = append(owned, rec)
		}
	}
	s.mu.RUnlock()

	sort.Slice(owned, func(i, j int) bool {
		if !owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].CreatedAt.After(owned[j].CreatedAt)
		}
		return owned[i].ID > owned[j].ID
	})

	if limit > 0 && len(owned) > limit {
		owned = owned[:limit]
	}
	return owned, nil
}

// GetByID returns the record only when it belongs to owner. A record owned
// by someone else is indistinguishable from a missing one.
func (s *Records) GetByID(_ context.Context, owner string, id int64) (entity.Record, error) {
	s.mu.RLock()
	rec, ok := s.records[id]
	s.mu.RUnlock()

	if !ok || rec.Owner != owner {
		return entity.Record{}, pkgerror.ErrNotFound
	}
	return rec, nil
}

// ReadFile re-reads the original file bytes of a record from blob storage.
func (s *Records) ReadFile(ctx context.Context, rec entity.Record) ([]byte, error) {
	data, err := s.blobs.Get(ctx, rec.FileRef)
	if err != nil {
		return nil, pkgerror.NewServer(err)
	}
	return data, nil
}

// Count reports the number of stored records (test helper).
func (s *Records) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
