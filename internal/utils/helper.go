package utils

import (
	"net/http"
	"strconv"

	appErrors "github.com/aaravmahajanofficial/inventory-service/internal/errors"
)

// ParseIDParam reads a positive int64 path value.
func ParseIDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.BadRequestError("Invalid ID format")
	}

	return id, nil
}
