package announcement

import (
	"github.com/complyhr/complyhr-backend-go/internal/pkg/validator"
)

type CreateAnnouncementRequest struct {
	Title   string  `json:"title"`
	Message string  `json:"message"`
	Expires *string `json:"expires,omitempty"`
}

func (r *CreateAnnouncementRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}

	if validator.IsEmpty(r.Message) {
		errs = append(errs, validator.ValidationError{
			Field:   "message",
			Message: "message is required",
		})
	}

	if r.Expires != nil {
		if _, ok := validator.IsValidDateTime(*r.Expires); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "expires",
				Message: "expires must be an ISO8601 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
