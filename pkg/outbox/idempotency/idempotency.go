package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/exportracker/quotation-backend/pkg/redis"
)

// Manager remembers which event IDs a handler has already delivered, using
// Redis SETNX with a TTL. Keys look like
// `qt:idempotency:evt:processed:<handler>:<event_id>`.
type Manager struct {
	store redis.IdempotencyStore
	ttl   time.Duration
}

func NewManager(store redis.IdempotencyStore, ttl time.Duration) (*Manager, error) {
	if store == nil {
		return nil, errors.New("idempotency store is required")
	}
	if ttl < 0 {
		return nil, errors.New("ttl must be non-negative")
	}
	return &Manager{
		store: store,
		ttl:   ttl,
	}, nil
}

// CheckAndMarkProcessed reports true when the event was already marked and
// otherwise marks it for the configured TTL.
func (m *Manager) CheckAndMarkProcessed(ctx context.Context, handler string, eventID uuid.UUID) (bool, error) {
	key, err := m.processedKey(handler, eventID)
	if err != nil {
		return false, err
	}
	set, err := m.store.SetNX(ctx, key, "1", m.ttl)
	if err != nil {
		return false, err
	}
	return !set, nil
}

// Delete clears the mark so a failed delivery can be retried.
func (m *Manager) Delete(ctx context.Context, handler string, eventID uuid.UUID) error {
	key, err := m.processedKey(handler, eventID)
	if err != nil {
		return err
	}
	return m.store.Del(ctx, key)
}

func (m *Manager) processedKey(handler string, eventID uuid.UUID) (string, error) {
	if handler == "" {
		return "", errors.New("handler name is required")
	}
	if eventID == uuid.Nil {
		return "", errors.New("event id is required")
	}
	scope := fmt.Sprintf("evt:processed:%s", handler)
	return m.store.IdempotencyKey(scope, eventID.String()), nil
}
