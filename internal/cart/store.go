package cart

import (
	"context"
	"encoding/json"
	"sync"

	"hampernest-be/internal/logger"

	"go.uber.org/zap"
)

// Store persists the full cart as one JSON document per session. Load must
// degrade to an empty cart when the stored payload is corrupt or from an
// incompatible schema; a broken blob never crashes the session.
type Store interface {
	Load(ctx context.Context, sessionID string) (Cart, error)
	Save(ctx context.Context, sessionID string, c Cart) error
	Delete(ctx context.Context, sessionID string) error
}

// decodeCart turns a stored payload into a Cart, falling back to an empty
// cart on unparseable data.
func decodeCart(ctx context.Context, sessionID string, raw []byte) Cart {
	if len(raw) == 0 {
		return Cart{}
	}
	var c Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		logger.FromCtx(ctx).Warn("discarding corrupt cart payload",
			zap.String("cart_session", sessionID), zap.Error(err))
		return Cart{}
	}
	return c
}

// MemoryStore keeps serialized carts in process memory. Used in tests and as
// a fallback when no redis address is configured.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]byte)}
}

func (s *MemoryStore) Load(ctx context.Context, sessionID string) (Cart, error) {
	s.mu.RLock()
	raw := s.carts[sessionID]
	s.mu.RUnlock()
	return decodeCart(ctx, sessionID, raw), nil
}

func (s *MemoryStore) Save(_ context.Context, sessionID string, c Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.carts[sessionID] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.carts, sessionID)
	s.mu.Unlock()
	return nil
}

// SeedRaw writes a raw payload for a session, bypassing marshaling. Test
// hook for corrupt-data handling.
func (s *MemoryStore) SeedRaw(sessionID string, raw []byte) {
	s.mu.Lock()
	s.carts[sessionID] = raw
	s.mu.Unlock()
}
