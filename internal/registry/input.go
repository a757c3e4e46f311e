package registry

import (
	"strings"

	"github.com/mmynk/shoplist/internal/models"
)

const (
	maxNameLen    = 100
	maxPurposeLen = 200
)

// CreateGroupInput holds the parameters for creating a group.
type CreateGroupInput struct {
	Name    string
	Purpose string
}

// Validate checks all fields and collects all errors.
func (i CreateGroupInput) Validate() error {
	var errs []models.FieldError

	name := i.normalizedName()
	if name == "" {
		errs = append(errs, models.FieldError{Field: "name", Message: "required"})
	}
	if len(name) > maxNameLen {
		errs = append(errs, models.FieldError{Field: "name", Message: "max 100 characters"})
	}

	purpose := i.normalizedPurpose()
	if purpose == "" {
		errs = append(errs, models.FieldError{Field: "purpose", Message: "required"})
	}
	if len(purpose) > maxPurposeLen {
		errs = append(errs, models.FieldError{Field: "purpose", Message: "max 200 characters"})
	}

	if len(errs) > 0 {
		return &models.ValidationError{Errors: errs}
	}
	return nil
}

func (i CreateGroupInput) normalizedName() string {
	return strings.Join(strings.Fields(i.Name), " ")
}

func (i CreateGroupInput) normalizedPurpose() string {
	return strings.TrimSpace(i.Purpose)
}
