package handlers

import (
	"time"

	"github.com/AmaanBilwar/BER-StockChecker/internal/domain"
)

// CreateItemRequest is the create payload. Validation happens in the
// domain package, not via binding tags, so the truthiness rules stay in
// one place.
type CreateItemRequest struct {
	Name     string  `json:"name" example:"Motor Controller"`
	Category string  `json:"category" example:"electronics"`
	Quantity int     `json:"quantity" example:"3"`
	Location string  `json:"location" example:"ev_shelf"`
	ImageURL *string `json:"image_url"`
}

// UpdateItemRequest is the partial update payload. Pointers distinguish an
// absent key from a supplied zero value.
type UpdateItemRequest struct {
	Quantity *int    `json:"quantity" example:"5"`
	Location *string `json:"location" example:"electronics_drawer"`
}

// ScanRequest carries a data-URL embedded image.
type ScanRequest struct {
	Image string `json:"image" example:"data:image/png;base64,iVBORw0KG..."`
}

// ItemResponse is the client-facing item shape. Location carries the
// display label; CreatedAt is RFC3339 or null for legacy records.
type ItemResponse struct {
	ID        string  `json:"_id" example:"507f1f77bcf86cd799439011"`
	Name      string  `json:"name" example:"Motor Controller"`
	Category  string  `json:"category" example:"electronics"`
	Quantity  int     `json:"quantity" example:"3"`
	Location  string  `json:"location" example:"Ev Shelf"`
	ImageURL  *string `json:"image_url"`
	CreatedAt *string `json:"created_at" example:"2024-01-15T10:30:00Z"`
}

func newItemResponse(item domain.Item) ItemResponse {
	var createdAt *string
	if item.CreatedAt != nil {
		formatted := item.CreatedAt.UTC().Format(time.RFC3339)
		createdAt = &formatted
	}
	return ItemResponse{
		ID:        item.ID,
		Name:      item.Name,
		Category:  item.Category,
		Quantity:  item.Quantity,
		Location:  domain.FormatLocation(item.Location),
		ImageURL:  item.ImageURL,
		CreatedAt: createdAt,
	}
}

// HealthResponse reports store connectivity. Status mirrors the transport
// status code so clients can rely on either.
type HealthResponse struct {
	Status      string   `json:"status" example:"healthy"`
	Connected   bool     `json:"mongodb_connected" example:"true"`
	Collections []string `json:"collections"`
	Items       int64    `json:"items" example:"42"`
	Error       string   `json:"error,omitempty"`
}

// ErrorResponse documents the error body shape for swagger.
type ErrorResponse struct {
	Error   string `json:"error" example:"MissingField"`
	Message string `json:"message" example:"quantity is required"`
	Details string `json:"details" example:"Field: quantity"`
}
