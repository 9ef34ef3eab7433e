package service

import (
	"errors"

	"shareit/internal/apperr"
	"shareit/internal/database"
)

// DefaultPageSize applies when a listing is requested without a size.
const DefaultPageSize = 20

// limitOffset converts from/size query parameters to SQL LIMIT/OFFSET.
// A nil size falls back to the default page size.
func limitOffset(from int, size *int) (limit, offset int, err error) {
	if from < 0 || (size != nil && *size < 0) {
		return 0, 0, apperr.Validation("Parameters 'from' and 'size' must be positive!")
	}
	if size == nil {
		return DefaultPageSize, from, nil
	}
	return *size, from, nil
}

// mapNotFound turns the database not-found sentinel into the API-facing
// not-found error; other errors pass through unchanged.
func mapNotFound(err error, format string, args ...any) error {
	if errors.Is(err, database.ErrNotFound) {
		return apperr.NotFound(format, args...)
	}
	return err
}
