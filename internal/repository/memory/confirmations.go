package memory

import (
	"context"
	"sync"

	"github.com/ibeloyar/oilcheckout/internal/model"
)

// Repository - хранилище подтверждений в памяти процесса, когда DATABASE_URI не задан.
type Repository struct {
	mu    sync.RWMutex
	items map[string][]byte
}

func New() *Repository {
	return &Repository{items: make(map[string][]byte)}
}

func (r *Repository) SaveConfirmation(_ context.Context, sessionID string, blob []byte) error {
	stored := make([]byte, len(blob))
	copy(stored, blob)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[sessionID] = stored
	return nil
}

func (r *Repository) GetConfirmation(_ context.Context, sessionID string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	blob, ok := r.items[sessionID]
	if !ok {
		return nil, model.ErrConfirmationNotFound
	}

	result := make([]byte, len(blob))
	copy(result, blob)
	return result, nil
}

func (r *Repository) DeleteConfirmation(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, sessionID)
	return nil
}

func (r *Repository) Ping() error {
	return nil
}

func (r *Repository) Shutdown() error {
	return nil
}
