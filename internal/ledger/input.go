package ledger

import (
	"strings"

	"github.com/mmynk/shoplist/internal/models"
)

const (
	maxDescriptionLen = 100
	maxQuantityLen    = 30
)

// RequestItemInput holds the parameters for requesting an item.
type RequestItemInput struct {
	GroupID     string
	Description string
	Quantity    string // defaults to "1"
	MerchantID  string // optional
}

// Validate checks all fields and collects all errors.
func (i RequestItemInput) Validate() error {
	var errs []models.FieldError

	if i.GroupID == "" {
		errs = append(errs, models.FieldError{Field: "group_id", Message: "required"})
	}
	errs = append(errs, validateDescription(i.Description)...)
	if len(i.Quantity) > maxQuantityLen {
		errs = append(errs, models.FieldError{Field: "quantity", Message: "max 30 characters"})
	}

	if len(errs) > 0 {
		return &models.ValidationError{Errors: errs}
	}
	return nil
}

func (i RequestItemInput) quantity() string {
	return normalizeQuantity(i.Quantity)
}

// ItemUpdate holds the fields to change. Nil fields are left untouched;
// an empty MerchantID clears the preferred merchant.
type ItemUpdate struct {
	Description *string
	Quantity    *string
	MerchantID  *string
}

// Validate checks the fields that are set.
func (u ItemUpdate) Validate() error {
	var errs []models.FieldError

	if u.Description != nil {
		errs = append(errs, validateDescription(*u.Description)...)
	}
	if u.Quantity != nil && len(*u.Quantity) > maxQuantityLen {
		errs = append(errs, models.FieldError{Field: "quantity", Message: "max 30 characters"})
	}

	if len(errs) > 0 {
		return &models.ValidationError{Errors: errs}
	}
	return nil
}

func validateDescription(raw string) []models.FieldError {
	description := models.NormalizeName(raw)
	if description == "" {
		return []models.FieldError{{Field: "description", Message: "required"}}
	}
	if len(description) > maxDescriptionLen {
		return []models.FieldError{{Field: "description", Message: "max 100 characters"}}
	}
	return nil
}

func normalizeQuantity(q string) string {
	q = strings.TrimSpace(q)
	if q == "" {
		return models.DefaultQuantity
	}
	return q
}
