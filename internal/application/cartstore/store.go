package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zenvory/storefront-service/internal/application/ports"
	"github.com/zenvory/storefront-service/internal/domain/cart"
	"github.com/zenvory/storefront-service/internal/infrastructure/monitoring"
	"github.com/zenvory/storefront-service/internal/pkg/logger"
	"github.com/zenvory/storefront-service/internal/pkg/notifier"
)

// DefaultKey is the storage key the original storefront used for the cart.
const DefaultKey = "local_cart"

const failureMessage = "Failed to update cart"

// Store is the sole owner of the persisted cart blob. All reads and writes
// to the storage key go through it; mutations notify the event bus and the
// storage-change bus so mounted badge and toast surfaces stay consistent.
type Store struct {
	kv      ports.KeyValueStore
	key     string
	events  *notifier.Bus[notifier.Event]
	changes *notifier.Bus[notifier.KeyChange]
	log     *logger.Logger
}

func New(
	kv ports.KeyValueStore,
	key string,
	events *notifier.Bus[notifier.Event],
	changes *notifier.Bus[notifier.KeyChange],
	log *logger.Logger,
) *Store {
	if key == "" {
		key = DefaultKey
	}

	return &Store{
		kv:      kv,
		key:     key,
		events:  events,
		changes: changes,
		log:     log,
	}
}

// Load reads the persisted cart. An absent key, a read fault or a malformed
// payload all yield an empty cart; a corrupted cart resets silently rather
// than blocking the caller.
func (s *Store) Load(ctx context.Context) cart.Cart {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ports.ErrKeyNotFound) {
			s.log.Warn("Cart read failed, treating as empty", "key", s.key, "error", err.Error())
		}
		return cart.Cart{}
	}

	var lines []cart.Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		s.log.Warn("Discarding malformed cart payload", "key", s.key, "error", err.Error())
		return cart.Cart{}
	}

	return cart.Cart{Lines: lines}
}

// AddOrMerge merges line into the cart by SKU and persists the result. The
// emitted toast distinguishes a merge from a fresh insert.
func (s *Store) AddOrMerge(ctx context.Context, line cart.Line) cart.Cart {
	current := s.Load(ctx)
	updated := current
	updated.Lines = cloneLines(current.Lines)

	merged := updated.AddOrMerge(line)

	if err := s.persist(ctx, updated); err != nil {
		return s.fail(current, "add", err)
	}

	if merged {
		s.publish(notifier.Event{Message: fmt.Sprintf("%s quantity updated in cart", line.Name), Kind: notifier.KindSuccess})
	} else {
		s.publish(notifier.Event{Message: fmt.Sprintf("%s added to cart", line.Name), Kind: notifier.KindSuccess})
	}
	s.notifyChanged()

	return updated
}

// SetQuantity replaces the stored quantity for sku. Quantities below 1 are
// rejected and a missing sku is tolerated; both leave the cart untouched.
func (s *Store) SetQuantity(ctx context.Context, sku string, quantity int) cart.Cart {
	current := s.Load(ctx)
	if quantity < 1 {
		return current
	}

	updated := current
	updated.Lines = cloneLines(current.Lines)
	if !updated.SetQuantity(sku, quantity) {
		return current
	}

	if err := s.persist(ctx, updated); err != nil {
		return s.fail(current, "set_quantity", err)
	}

	line, _ := updated.Find(sku)
	s.publish(notifier.Event{Message: fmt.Sprintf("Updated quantity of %s", line.Name), Kind: notifier.KindSuccess})
	s.notifyChanged()

	return updated
}

// Remove deletes the line for sku. Removing a line that is already gone is a
// no-op, which tolerates races with other surfaces.
func (s *Store) Remove(ctx context.Context, sku string) cart.Cart {
	current := s.Load(ctx)
	updated := current
	updated.Lines = cloneLines(current.Lines)

	removed, found := updated.Remove(sku)
	if !found {
		return current
	}

	if err := s.persist(ctx, updated); err != nil {
		return s.fail(current, "remove", err)
	}

	s.publish(notifier.Event{Message: fmt.Sprintf("Removed %s from cart", removed.Name), Kind: notifier.KindSuccess})
	s.notifyChanged()

	return updated
}

// Clear empties the cart and persists the empty sequence.
func (s *Store) Clear(ctx context.Context) cart.Cart {
	current := s.Load(ctx)
	updated := cart.Cart{}

	if err := s.persist(ctx, updated); err != nil {
		return s.fail(current, "clear", err)
	}

	s.notifyChanged()
	return updated
}

func (s *Store) persist(ctx context.Context, c cart.Cart) error {
	lines := c.Lines
	if lines == nil {
		lines = []cart.Line{}
	}

	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("write cart: %w", err)
	}

	return nil
}

// fail converts a storage fault into an error toast and hands back the
// pre-mutation cart. Nothing propagates to the caller.
func (s *Store) fail(prior cart.Cart, op string, err error) cart.Cart {
	s.log.Error("Cart mutation failed", "op", op, "key", s.key, "error", err.Error())
	monitoring.RecordCartFailure(op)
	s.publish(notifier.Event{Message: failureMessage, Kind: notifier.KindError})
	return prior
}

func (s *Store) publish(event notifier.Event) {
	if s.events != nil {
		s.events.Publish(event)
	}
}

func (s *Store) notifyChanged() {
	if s.changes != nil {
		s.changes.Publish(notifier.KeyChange{Key: s.key})
	}
}

func cloneLines(lines []cart.Line) []cart.Line {
	if lines == nil {
		return nil
	}
	out := make([]cart.Line, len(lines))
	copy(out, lines)
	return out
}
