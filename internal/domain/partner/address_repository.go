package partner

import (
	"context"

	"github.com/google/uuid"
)

// AddressRepository defines the interface for address persistence.
// Lookups are always scoped to the owning user so that no information
// about another user's addresses can leak.
type AddressRepository interface {
	// FindByIDForUser finds an address by ID owned by the given user
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Address, error)

	// FindAllForUser finds all addresses owned by the given user
	FindAllForUser(ctx context.Context, userID uuid.UUID) ([]Address, error)

	// Save persists an address (insert or update)
	Save(ctx context.Context, address *Address) error

	// DeleteForUser deletes an address owned by the given user
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) error
}
