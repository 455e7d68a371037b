package service

import (
	"github.com/google/uuid"

	apperrors "github.com/gamerhub/marketplace/pkg/util"
)

// requireUUID rejects ids that cannot exist in the database so lookups
// report not found instead of a driver encoding error.
func requireUUID(resource, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewNotFound(resource, map[string]any{"id": id})
	}
	return nil
}

func lookupError(resource, id string, err error) error {
	if apperrors.IsNotFound(err) {
		return apperrors.NewNotFound(resource, map[string]any{"id": id})
	}
	return apperrors.NewInternalError(err)
}
