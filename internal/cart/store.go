package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/foodfetch/storefront-backend/internal/notify"
	"github.com/foodfetch/storefront-backend/pkg/kv"
	"github.com/foodfetch/storefront-backend/pkg/logger"
	"github.com/foodfetch/storefront-backend/pkg/metrics"
)

// Store serializes cart mutations, persists every new state to a durable
// slot and emits user-facing notifications. Persistence and notifications
// are best effort: a failed write or publish never blocks the mutation.
type Store struct {
	mu    sync.Mutex
	state State

	slot     kv.Slot
	key      string
	notifier notify.Notifier
	logg     *logger.Logger
	metrics  *metrics.CartMetrics
}

// NewStore loads the persisted snapshot from the slot, falling back to the
// empty cart when the slot is absent or unreadable.
func NewStore(ctx context.Context, slot kv.Slot, key string, notifier notify.Notifier, logg *logger.Logger, met *metrics.CartMetrics) (*Store, error) {
	if slot == nil {
		return nil, fmt.Errorf("cart store: slot is required")
	}
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("cart store: storage key is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("cart store: logger is required")
	}

	s := &Store{
		slot:     slot,
		key:      key,
		notifier: notifier,
		logg:     logg,
		metrics:  met,
		state:    Empty(),
	}
	s.load(ctx)
	return s, nil
}

// load adopts the persisted snapshot as-is. Absence and malformed payloads
// both resolve to the empty cart, malformed payloads with a warning.
func (s *Store) load(ctx context.Context) {
	raw, ok, err := s.slot.Get(ctx, s.key)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "cart snapshot unreadable, starting empty")
		return
	}
	if !ok {
		return
	}

	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "cart snapshot malformed, starting empty")
		return
	}
	if state.CartItems == nil {
		state.CartItems = []Item{}
	}
	s.state = state
}

// AddItem merges the item into the cart and announces the addition. Items
// without an id are rejected as a no-op.
func (s *Store) AddItem(ctx context.Context, item Item) State {
	if strings.TrimSpace(item.ID) == "" {
		s.logg.Warn(ctx, "add to cart ignored: item has no id")
		return s.Snapshot()
	}

	s.metrics.IncOperation("add")
	next := s.apply(ctx, func(state State) State {
		return state.Add(item)
	})

	if s.notifier != nil {
		s.notifier.Success(ctx, fmt.Sprintf("%s added to cart!", item.Name))
	}
	return next
}

// RemoveItem drops the line with the given id. Unknown ids still notify,
// matching the storefront behavior of announcing the action, not the result.
func (s *Store) RemoveItem(ctx context.Context, id string) State {
	s.metrics.IncOperation("remove")
	next := s.apply(ctx, func(state State) State {
		return state.Remove(id)
	})

	if s.notifier != nil {
		s.notifier.Info(ctx, "Item removed from cart")
	}
	return next
}

// SetQuantity adjusts a line's quantity without emitting a notification.
// A non-positive quantity removes the line.
func (s *Store) SetQuantity(ctx context.Context, id string, quantity int) State {
	s.metrics.IncOperation("set_quantity")
	return s.apply(ctx, func(state State) State {
		return state.SetQuantity(id, quantity)
	})
}

// Clear resets the cart to empty. Clearing an empty cart is a no-op that
// still notifies.
func (s *Store) Clear(ctx context.Context) State {
	s.metrics.IncOperation("clear")
	next := s.apply(ctx, func(State) State {
		return Empty()
	})

	if s.notifier != nil {
		s.notifier.Info(ctx, "Cart cleared")
	}
	return next
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// apply runs the transition under the lock and persists the result before
// releasing it, so the slot always reflects the latest committed state.
func (s *Store) apply(ctx context.Context, transition func(State) State) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = transition(s.state)
	s.persist(ctx)
	return s.state.clone()
}

func (s *Store) persist(ctx context.Context) {
	data, err := json.Marshal(s.state)
	if err != nil {
		s.persistFailed(ctx, err)
		return
	}
	if err := s.slot.Set(ctx, s.key, string(data)); err != nil {
		s.persistFailed(ctx, err)
	}
}

func (s *Store) persistFailed(ctx context.Context, err error) {
	s.metrics.IncPersistFailure()
	s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "cart snapshot not persisted")
}
