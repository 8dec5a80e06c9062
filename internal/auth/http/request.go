package http

import (
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/lanternsec/keygate/pkg/authapi"
	"github.com/lanternsec/keygate/pkg/httpx"
)

// decodeAndValidate parses the JSON request body into dst and runs the
// struct validation rules. On failure it writes the error response and
// returns false; the handler should simply return.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, validate *validator.Validate, dst any) bool {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || mediaType != "application/json" {
			authapi.ErrInvalidContentType.WriteError(w)
			return false
		}
	}

	if err := httpx.DecodeJSON(r, dst); err != nil {
		authapi.ErrInvalidJSONBody.WriteError(w)
		return false
	}

	if err := validate.Struct(dst); err != nil {
		authapi.NewValidationError(validationDetails(err)).WriteError(w)
		return false
	}

	return true
}

// validationDetails flattens validator errors into field -> reason pairs.
func validationDetails(err error) map[string]string {
	details := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		details["request"] = "invalid"
		return details
	}

	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			details[field] = "is required"
		case "email":
			details[field] = "must be a valid email address"
		case "min":
			details[field] = "must be at least " + fe.Param() + " characters"
		case "max":
			details[field] = "must be at most " + fe.Param() + " characters"
		default:
			details[field] = "is invalid"
		}
	}
	return details
}
