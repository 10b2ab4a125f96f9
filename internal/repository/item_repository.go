package repository

import (
	"context"

	"github.com/AmaanBilwar/BER-StockChecker/internal/domain"
)

// HealthReport describes the store's liveness as seen by the repository.
// It is always produced, never an error: an unreachable store yields a
// report with Connected false and the failure in Error.
type HealthReport struct {
	Connected   bool     `json:"mongodb_connected"`
	Collections []string `json:"collections"`
	Items       int64    `json:"items"`
	Error       string   `json:"error,omitempty"`
}

// ItemRepository defines the interface for item persistence
type ItemRepository interface {
	// List returns all items in store-native order.
	List(ctx context.Context) ([]domain.Item, error)
	// FindByID resolves a client-supplied hex identifier to an item.
	FindByID(ctx context.Context, id string) (*domain.Item, error)
	// Create inserts a normalized record and returns the canonical stored
	// shape, re-fetched by the assigned identifier.
	Create(ctx context.Context, item domain.NewItem) (*domain.Item, error)
	// Update applies a partial update set and returns the canonical stored
	// shape. Fields not in the set are left untouched.
	Update(ctx context.Context, id string, upd domain.ItemUpdate) (*domain.Item, error)
	// Health probes the store.
	Health(ctx context.Context) HealthReport
}
