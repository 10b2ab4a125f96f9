package repository

import (
	"context"
	"sync"

	"github.com/AmaanBilwar/BER-StockChecker/internal/domain"
	"github.com/AmaanBilwar/BER-StockChecker/pkg/errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InMemoryItemRepository implements ItemRepository without a running store.
// It mirrors the Mongo implementation's semantics, including ObjectID
// parsing of client identifiers and insertion-order listing, so tests and
// local runs observe the same behavior.
type InMemoryItemRepository struct {
	mu    sync.RWMutex
	items map[string]*domain.Item
	order []string
}

func NewInMemoryItemRepository() *InMemoryItemRepository {
	return &InMemoryItemRepository{
		items: make(map[string]*domain.Item),
	}
}

func (r *InMemoryItemRepository) List(ctx context.Context) ([]domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]domain.Item, 0, len(r.order))
	for _, id := range r.order {
		items = append(items, *r.items[id])
	}
	return items, nil
}

func (r *InMemoryItemRepository) FindByID(ctx context.Context, id string) (*domain.Item, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, errors.NewInvalidIdentifier(id)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[id]
	if !exists {
		return nil, errors.NewNotFound(id)
	}
	copied := *item
	return &copied, nil
}

func (r *InMemoryItemRepository) Create(ctx context.Context, item domain.NewItem) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	createdAt := item.CreatedAt
	stored := &domain.Item{
		ID:        primitive.NewObjectID().Hex(),
		Name:      item.Name,
		Category:  item.Category,
		Quantity:  item.Quantity,
		Location:  item.Location,
		ImageURL:  item.ImageURL,
		CreatedAt: &createdAt,
	}
	r.items[stored.ID] = stored
	r.order = append(r.order, stored.ID)

	copied := *stored
	return &copied, nil
}

func (r *InMemoryItemRepository) Update(ctx context.Context, id string, upd domain.ItemUpdate) (*domain.Item, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, errors.NewInvalidIdentifier(id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item, exists := r.items[id]
	if !exists {
		return nil, errors.NewNotFound(id)
	}

	item.Quantity = upd.Quantity
	if upd.Location != nil {
		item.Location = *upd.Location
	}

	copied := *item
	return &copied, nil
}

func (r *InMemoryItemRepository) Health(ctx context.Context) HealthReport {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return HealthReport{
		Connected:   true,
		Collections: []string{"items"},
		Items:       int64(len(r.items)),
	}
}
