package validation

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cafecritique/review-api/internal/core/domain"
)

// ID rejects identifiers that are not in the store's ObjectID hex format.
// It never touches the store.
func ID(raw string) error {
	if !primitive.IsValidObjectID(raw) {
		return domain.ErrInvalidID
	}
	return nil
}

// IDs checks every identifier in order and stops at the first malformed one.
func IDs(raw ...string) error {
	for _, id := range raw {
		if err := ID(id); err != nil {
			return err
		}
	}
	return nil
}
