package domain

import "time"

// Item is the stored inventory record. ID is the store's identifier in hex
// form; Location holds the internal token, not the display label.
type Item struct {
	ID        string
	Name      string
	Category  string
	Quantity  int
	Location  string
	ImageURL  *string
	CreatedAt *time.Time
}

// NewItem is a validated, normalized record ready to be inserted.
type NewItem struct {
	Name      string
	Category  string
	Quantity  int
	Location  string
	ImageURL  *string
	CreatedAt time.Time
}

// ItemUpdate is a partial update set produced by ValidateUpdate. Quantity is
// always present; Location is applied only when non-nil. Name, category and
// creation time are never part of an update.
type ItemUpdate struct {
	Quantity int
	Location *string
}

// ScanResult is the suggestion returned by the image-to-text flow. The
// extracted text fills both Name and RawText; quantity and location are
// defaults for the client to adjust before submitting a create request.
type ScanResult struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Location string `json:"location"`
	RawText  string `json:"raw_text"`
}

// NewScanResult builds a ScanResult from extracted text.
func NewScanResult(text string) ScanResult {
	return ScanResult{
		Name:     text,
		Quantity: 1,
		Location: "",
		RawText:  text,
	}
}
