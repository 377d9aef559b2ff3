package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/partner"
)

// AddressService manages a user's shipping addresses
type AddressService struct {
	addresses partner.AddressRepository
}

// NewAddressService creates a new AddressService
func NewAddressService(addresses partner.AddressRepository) *AddressService {
	return &AddressService{addresses: addresses}
}

// List returns all addresses of a user, newest first
func (s *AddressService) List(ctx context.Context, userID uuid.UUID) ([]partner.Address, error) {
	return s.addresses.FindAllForUser(ctx, userID)
}

// Get returns one address owned by the user
func (s *AddressService) Get(ctx context.Context, userID, id uuid.UUID) (*partner.Address, error) {
	return s.addresses.FindByIDForUser(ctx, userID, id)
}

// Create validates and stores a new address for the user
func (s *AddressService) Create(ctx context.Context, userID uuid.UUID, recipientName, phone, address string, isDefault bool) (*partner.Address, error) {
	a, err := partner.NewAddress(userID, recipientName, phone, address)
	if err != nil {
		return nil, err
	}
	if isDefault {
		a.SetDefault(true)
	}
	if err := s.addresses.Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Update edits an address owned by the user. Historical orders carry a
// denormalized copy of the fields, so this never rewrites them.
func (s *AddressService) Update(ctx context.Context, userID, id uuid.UUID, recipientName, phone, address string, isDefault bool) (*partner.Address, error) {
	a, err := s.addresses.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := a.Update(recipientName, phone, address); err != nil {
		return nil, err
	}
	if a.IsDefault != isDefault {
		a.SetDefault(isDefault)
	}
	if err := s.addresses.Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete removes an address owned by the user
func (s *AddressService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.addresses.DeleteForUser(ctx, userID, id)
}
