package menuitem

import (
	"io"

	"github.com/corray333/tutti-amici/internal/service/validation"
)

// MenuItem represents a dish available for ordering.
type MenuItem struct {
	Name        string  `json:"name"         bson:"name"`
	Description *string `json:"description"  bson:"description"`
	Price       float64 `json:"price"        bson:"price"`
	Category    string  `json:"category"     bson:"category"`
	Image       *string `json:"image"        bson:"image"`
	IsAvailable bool    `json:"is_available" bson:"is_available"`
}

// createMenuItemRequest mirrors MenuItem with pointers so that missing
// fields can be told apart from zero values.
type createMenuItemRequest struct {
	Name        *string  `json:"name"         validate:"required"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"        validate:"required,gte=0"`
	Category    *string  `json:"category"     validate:"required"`
	Image       *string  `json:"image"`
	IsAvailable *bool    `json:"is_available"`
}

func (r *createMenuItemRequest) toModel() MenuItem {
	item := MenuItem{
		Name:        *r.Name,
		Description: r.Description,
		Price:       *r.Price,
		Category:    *r.Category,
		Image:       r.Image,
		IsAvailable: true,
	}
	if r.IsAvailable != nil {
		item.IsAvailable = *r.IsAvailable
	}

	return item
}

// Decode reads a menu item payload and validates it.
// Validation failures are reported as *validation.Error.
func Decode(r io.Reader) (MenuItem, error) {
	var req createMenuItemRequest
	if err := validation.Decode(r, &req); err != nil {
		return MenuItem{}, err
	}

	return req.toModel(), nil
}
