// Package repository provides data access layer implementations for the application.
package repository

import (
	"errors"
	"strings"

	"agora/internal/models"

	"gorm.io/gorm"
)

// isUniqueViolation reports whether err came from a UNIQUE index rejecting
// the write. The sqlite driver exposes this only through the message text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// translateNotFound maps gorm's sentinel onto the API's not-found error so
// callers never leak storage errors to the transport layer.
func translateNotFound(err error, resource string, id interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	return err
}
