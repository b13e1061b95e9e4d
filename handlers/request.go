package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/upb/casting-agency/services"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 20

// decodeBody decodes a JSON request body into dst. Syntax errors are bad
// requests; well-formed JSON of the wrong shape is a validation error.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return services.NewDomainError(services.ErrorTypeValidation, "field "+typeErr.Field+" has the wrong type", err)
		}
		return services.NewDomainError(services.ErrMalformedBody.Type, services.ErrMalformedBody.Message, err)
	}
	return nil
}

// pathID reads the numeric {id} route parameter. Routes only match digits,
// so a failure here means the value overflowed and no such row can exist.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, services.NewDomainError(services.ErrorTypeNotFound, "invalid id", err)
	}
	return id, nil
}
