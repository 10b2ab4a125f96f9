package domain

import (
	"time"

	"github.com/AmaanBilwar/BER-StockChecker/pkg/errors"
)

// CreateInput is the raw create payload after JSON binding, before
// validation. ImageURL passes through unvalidated.
type CreateInput struct {
	Name     string
	Category string
	Quantity int
	Location string
	ImageURL *string
}

// UpdateInput is the raw update payload. Pointer fields distinguish an
// absent key from a supplied zero value.
type UpdateInput struct {
	Quantity *int
	Location *string
}

// ValidateCreate checks a create payload and produces a normalized record.
//
// name, category and quantity are required. The required check is a
// truthiness check: an empty string and a zero quantity both count as
// missing, so a create with quantity 0 is rejected with MissingField. A
// location, when supplied and non-empty, must be a member of the location
// set; an absent or empty location means "unassigned".
func ValidateCreate(in CreateInput, now time.Time) (NewItem, *errors.StandardError) {
	if in.Name == "" {
		return NewItem{}, errors.NewMissingField("name")
	}
	if in.Category == "" {
		return NewItem{}, errors.NewMissingField("category")
	}
	if in.Quantity == 0 {
		return NewItem{}, errors.NewMissingField("quantity")
	}
	if in.Location != "" && !ValidLocation(in.Location) {
		return NewItem{}, errors.NewInvalidLocation(in.Location)
	}

	return NewItem{
		Name:      in.Name,
		Category:  in.Category,
		Quantity:  in.Quantity,
		Location:  in.Location,
		ImageURL:  in.ImageURL,
		CreatedAt: now,
	}, nil
}

// ValidateUpdate checks an update payload and produces a partial update set.
//
// quantity must be present but any integer value is accepted, zero included
// (asymmetric with create on purpose). A location key, when present, must be
// a member of the location set regardless of emptiness: unlike create, the
// empty string is rejected here. Only supplied fields end up in the set;
// name, category, image_url and created_at are never touched by an update.
func ValidateUpdate(in UpdateInput) (ItemUpdate, *errors.StandardError) {
	if in.Quantity == nil {
		return ItemUpdate{}, errors.NewMissingField("quantity")
	}

	upd := ItemUpdate{Quantity: *in.Quantity}

	if in.Location != nil {
		if !ValidLocation(*in.Location) {
			return ItemUpdate{}, errors.NewInvalidLocation(*in.Location)
		}
		upd.Location = in.Location
	}

	return upd, nil
}
