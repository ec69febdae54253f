package utils

import (
	"log/slog"
	"net/http"

	appErrors "github.com/aaravmahajanofficial/hotel-booking-platform/internal/errors"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {

	if err := DecodeJSONBody(r, dest); err != nil {
		slog.Warn("Invalid request", slog.String("error", err.Error()))
		response.Error(w, appErrors.BadRequestError("Invalid request body").WithError(err))
		return false
	}

	if err := ValidateStruct(validate, dest); err != nil {

		var validationErrs validator.ValidationErrors

		if ok := AsValidationErrors(err, &validationErrs); ok {
			response.ValidationError(w, validationErrs)
		} else {
			response.Error(w, appErrors.ValidationError("Invalid input data").WithError(err))
		}

		return false
	}

	return true
}

// ParseID reads a UUID path parameter.
func ParseID(r *http.Request, param string) (uuid.UUID, error) {

	raw := r.PathValue(param)

	if raw == "" {
		return uuid.Nil, appErrors.BadRequestError("Missing " + param + " parameter")
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, appErrors.BadRequestError("Invalid " + param + " format").WithError(err)
	}

	return id, nil
}
