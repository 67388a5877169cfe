// Package cart keeps the shopping cart in local storage: one JSON array of
// product snapshots under the "cart" key.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/internal/models"
	"storefront/internal/storage"
)

// Key is the local storage slot holding the cart.
const Key = "cart"

// Policy decides what Add does with a product that is already in the cart.
type Policy int

const (
	// AppendDuplicates adds another line item for the same product.
	AppendDuplicates Policy = iota
	// DedupeByProduct keeps at most one line item per product id.
	DedupeByProduct
)

func (p Policy) String() string {
	if p == DedupeByProduct {
		return "dedupe"
	}
	return "append"
}

// CorruptError reports a cart slot that does not hold a JSON array of line
// items. Load treats it as an empty cart.
type CorruptError struct {
	Key string
	Err error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("cart: slot %q is corrupt: %v", e.Key, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

type Options struct {
	Policy Policy
	Logger *zap.Logger
}

// Store is the cart on top of a storage.Store. available is the result of
// the startup capability check.
type Store struct {
	store     storage.Store
	available bool
	policy    Policy
	logger    *zap.Logger

	now     func() time.Time
	newLine func() string
}

func New(s storage.Store, available bool, opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		store:     s,
		available: available,
		policy:    opts.Policy,
		logger:    logger.Named("cart"),
		now:       func() time.Time { return time.Now().UTC() },
		newLine:   uuid.NewString,
	}
}

// Load returns the persisted cart. The returned slice is never nil: a
// missing slot, unavailable storage or a corrupt slot all yield an empty
// cart, the latter two alongside an error saying why.
func (c *Store) Load(ctx context.Context) ([]models.LineItem, error) {
	if !c.available {
		return []models.LineItem{}, storage.ErrUnavailable
	}
	items, err := c.read(ctx)
	if err != nil {
		return []models.LineItem{}, err
	}
	return items, nil
}

// Add appends a copy of product and returns the committed cart.
func (c *Store) Add(ctx context.Context, product models.Product) ([]models.LineItem, error) {
	items, err := c.readForWrite(ctx)
	if err != nil {
		return nil, err
	}

	if c.policy == DedupeByProduct && indexOf(items, product.ID) >= 0 {
		c.logger.Debug("product already in cart", zap.String("product_id", product.ID.String()))
		return items, nil
	}

	addedAt := c.now()
	items = append(items, models.LineItem{
		Product: product,
		LineID:  c.newLine(),
		AddedAt: &addedAt,
	})

	if err := c.write(ctx, items); err != nil {
		return nil, err
	}
	c.logger.Debug("added to cart", zap.String("product_id", product.ID.String()), zap.Int("items", len(items)))
	return items, nil
}

// Remove drops every line item for productID and returns the committed cart.
func (c *Store) Remove(ctx context.Context, productID models.ID) ([]models.LineItem, error) {
	items, err := c.readForWrite(ctx)
	if err != nil {
		return nil, err
	}

	kept := make([]models.LineItem, 0, len(items))
	for _, item := range items {
		if item.ID != productID {
			kept = append(kept, item)
		}
	}

	if err := c.write(ctx, kept); err != nil {
		return nil, err
	}
	c.logger.Debug("removed from cart",
		zap.String("product_id", productID.String()),
		zap.Int("removed", len(items)-len(kept)))
	return kept, nil
}

// Clear empties the cart.
func (c *Store) Clear(ctx context.Context) error {
	if !c.available {
		return storage.ErrUnavailable
	}
	if err := c.store.Remove(ctx, Key); err != nil {
		return fmt.Errorf("cart: clear: %w", err)
	}
	return c.write(ctx, []models.LineItem{})
}

func (c *Store) read(ctx context.Context) ([]models.LineItem, error) {
	raw, err := c.store.Get(ctx, Key)
	if errors.Is(err, storage.ErrNotFound) {
		return []models.LineItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cart: load: %w", err)
	}

	var items []models.LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, &CorruptError{Key: Key, Err: err}
	}
	if items == nil {
		items = []models.LineItem{}
	}
	return items, nil
}

// readForWrite is read for the mutating operations: a corrupt slot is
// overwritten rather than blocking the user.
func (c *Store) readForWrite(ctx context.Context) ([]models.LineItem, error) {
	if !c.available {
		return nil, storage.ErrUnavailable
	}
	items, err := c.read(ctx)
	var corrupt *CorruptError
	if errors.As(err, &corrupt) {
		c.logger.Warn("⚠️ discarding corrupt cart", zap.Error(err))
		return []models.LineItem{}, nil
	}
	return items, err
}

func (c *Store) write(ctx context.Context, items []models.LineItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("cart: encode: %w", err)
	}
	if err := c.store.Set(ctx, Key, string(data)); err != nil {
		return fmt.Errorf("cart: save: %w", err)
	}
	return nil
}

func indexOf(items []models.LineItem, id models.ID) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Total is the amount to charge for items.
func Total(items []models.LineItem) models.Price {
	var total float64
	for _, item := range items {
		total += float64(item.Price)
	}
	return models.Price(total)
}

// ProductNames lists the item names, each followed by a comma. The order
// endpoint counts products by splitting on commas and dropping the last
// element.
func ProductNames(items []models.LineItem) string {
	var b strings.Builder
	for _, item := range items {
		b.WriteString(item.Name)
		b.WriteString(",")
	}
	return b.String()
}
