package results

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu      sync.RWMutex
	storage []Result
	now     func() time.Time
}

// NewMemoryRepository constructs an in-memory repository for tests and
// database-less development.
func NewMemoryRepository() Repository {
	return &memoryRepository{now: time.Now}
}

func (r *memoryRepository) Save(_ context.Context, result Result) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	r.storage = append(r.storage, result)
	return result.ID, nil
}

func (r *memoryRepository) ListByUser(_ context.Context, uid string) ([]Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Result{}
	for _, res := range r.storage {
		if res.UserID == uid {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *memoryRepository) PurgeOlderThan(_ context.Context, age time.Duration) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-age)
	kept := r.storage[:0]
	var removed int64
	for _, res := range r.storage {
		if res.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, res)
	}
	r.storage = kept
	return removed, nil
}
