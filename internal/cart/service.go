package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/mateorivas/brewcart/internal/kv"
	"github.com/mateorivas/brewcart/pkg/enums"
	pkgerrors "github.com/mateorivas/brewcart/pkg/errors"
)

// Service is the cart aggregator. Every operation is a read-modify-write of
// the full persisted list; there is no version check, so concurrent writers
// on the same profile race and the last one wins.
type Service struct {
	store kv.Store
	now   func() time.Time
}

// Option configures optional service behavior.
type Option func(*Service)

// WithClock overrides the time source used for generated cart item ids.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService builds the aggregator on top of a storage port.
func NewService(store kv.Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart: store is required")
	}
	svc := &Service{store: store, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc, nil
}

// Add records one unit of a product with the chosen options. If the user
// already has a line item with the same product, size, sugar and
// customization, its quantity is incremented in place; otherwise a new row
// is appended with defaults filled in. Returns the full updated list,
// unfiltered across users; callers filter further as needed.
func (s *Service) Add(ctx context.Context, userID, productID string, opts AddOptions) ([]LineItem, error) {
	if productID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	items, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	incoming := LineItem{
		UserID:        userID,
		ProductID:     productID,
		Quantity:      1,
		Size:          enums.NormalizeSize(opts.Size),
		Sugar:         enums.NormalizeSugar(opts.Sugar),
		Customization: opts.Customization,
		Price:         opts.Price,
		DiscountPrice: opts.DiscountPrice,
		Name:          opts.Name,
		Image:         opts.Image,
		Type:          opts.Type,
		Description:   opts.Description,
	}

	merged := false
	for i := range items {
		if items[i].UserID == userID && items[i].identity() == incoming.identity() {
			items[i].Quantity = items[i].effectiveQuantity() + 1
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, incoming)
	}

	if err := s.saveAll(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

// View returns the user's cart as aggregated entries, grouped by identity
// key in first-seen order. Pure local read: calling it twice with no
// intervening mutation yields identical output.
func (s *Service) View(ctx context.Context, userID string) ([]AggregatedEntry, error) {
	items, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.aggregate(items, userID), nil
}

func (s *Service) aggregate(items []LineItem, userID string) []AggregatedEntry {
	entries := []AggregatedEntry{}
	index := map[identityKey]int{}

	for _, item := range items {
		if item.UserID != userID {
			continue
		}
		key := item.identity()
		if at, seen := index[key]; seen {
			entries[at].Quantity += item.effectiveQuantity()
			continue
		}

		cartItemID := item.CartItemID
		if cartItemID == "" {
			cartItemID = strconv.FormatInt(s.now().UnixMilli(), 10)
		}
		index[key] = len(entries)
		entries = append(entries, AggregatedEntry{
			ProductID:     item.ProductID,
			Name:          item.Name,
			Price:         item.Price,
			Image:         item.Image,
			Type:          item.Type,
			Description:   item.Description,
			Size:          item.Size,
			Sugar:         item.Sugar,
			Customization: item.Customization,
			Quantity:      item.effectiveQuantity(),
			CartItemID:    cartItemID,
			DiscountPrice: item.DiscountPrice,
		})
	}

	for i := range entries {
		entries[i].Total = lineTotal(entries[i].Price, entries[i].Quantity)
	}
	return entries
}

// UpdateQuantity adjusts every aggregated entry for the product by delta,
// floored at one; this path can never empty an entry. The aggregated view is
// persisted back in place of the user's raw rows, which collapses duplicate
// rows that Add would have kept separate. Other users' rows are untouched.
func (s *Service) UpdateQuantity(ctx context.Context, userID, productID string, delta int) ([]AggregatedEntry, error) {
	items, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	entries := s.aggregate(items, userID)
	for i := range entries {
		if entries[i].ProductID != productID {
			continue
		}
		entries[i].Quantity = max(1, entries[i].Quantity+delta)
		entries[i].Total = lineTotal(entries[i].Price, entries[i].Quantity)
	}

	if err := s.replaceUserRows(ctx, items, userID, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Remove drops every aggregated entry for the product from the user's cart
// and persists the result. Other users' rows are untouched.
func (s *Service) Remove(ctx context.Context, userID, productID string) ([]AggregatedEntry, error) {
	items, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	entries := s.aggregate(items, userID)
	kept := entries[:0]
	for _, entry := range entries {
		if entry.ProductID != productID {
			kept = append(kept, entry)
		}
	}
	entries = kept

	if err := s.replaceUserRows(ctx, items, userID, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Clear removes all of the user's line items. Callers invoke it only after
// checkout succeeds; the aggregator never clears the cart on its own.
func (s *Service) Clear(ctx context.Context, userID string) error {
	items, err := s.loadAll(ctx)
	if err != nil {
		return err
	}
	return s.replaceUserRows(ctx, items, userID, nil)
}

// CheckoutItems maps the user's line items into the checkout payload lines.
// An empty cart yields an empty, non-nil slice: checkout submits
// {user_id, items: []} rather than short-circuiting.
func (s *Service) CheckoutItems(ctx context.Context, userID string) ([]CheckoutItem, error) {
	items, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	lines := []CheckoutItem{}
	for _, item := range items {
		if item.UserID != userID {
			continue
		}
		price := 0.0
		if item.DiscountPrice != nil {
			price = *item.DiscountPrice
		}
		lines = append(lines, CheckoutItem{
			ProductID:   item.ProductID,
			Quantity:    item.effectiveQuantity(),
			Name:        item.Name,
			Price:       price,
			Image:       item.Image,
			Type:        item.Type,
			Description: item.Description,
		})
	}
	return lines, nil
}

// replaceUserRows rewrites the persisted list keeping every other user's
// rows and materializing the given aggregated entries as this user's rows.
func (s *Service) replaceUserRows(ctx context.Context, items []LineItem, userID string, entries []AggregatedEntry) error {
	next := make([]LineItem, 0, len(items))
	for _, item := range items {
		if item.UserID != userID {
			next = append(next, item)
		}
	}
	for _, entry := range entries {
		next = append(next, LineItem{
			UserID:        userID,
			ProductID:     entry.ProductID,
			Quantity:      entry.Quantity,
			Size:          entry.Size,
			Sugar:         entry.Sugar,
			Customization: entry.Customization,
			Price:         entry.Price,
			DiscountPrice: entry.DiscountPrice,
			Name:          entry.Name,
			Image:         entry.Image,
			Type:          entry.Type,
			Description:   entry.Description,
			CartItemID:    entry.CartItemID,
		})
	}
	return s.saveAll(ctx, next)
}

func (s *Service) loadAll(ctx context.Context) ([]LineItem, error) {
	raw, err := s.store.Get(ctx, kv.KeyCart)
	if errors.Is(err, kv.ErrNotFound) {
		return []LineItem{}, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "reading cart")
	}
	if raw == "" || raw == "null" {
		return []LineItem{}, nil
	}

	var items []LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "decoding cart")
	}
	return items, nil
}

func (s *Service) saveAll(ctx context.Context, items []LineItem) error {
	if items == nil {
		items = []LineItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "encoding cart")
	}
	if err := s.store.Set(ctx, kv.KeyCart, string(raw)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "writing cart")
	}
	return nil
}
