package service

import (
	"errors"

	"agora/internal/models"

	"gorm.io/gorm"
)

// translateNotFound maps gorm's sentinel onto the API's not-found error for
// lookups done directly on a transaction handle.
func translateNotFound(err error, resource string, id interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	return err
}
