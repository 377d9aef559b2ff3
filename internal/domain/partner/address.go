package partner

import (
	"strings"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

const (
	maxRecipientNameLength = 100
	maxPhoneLength         = 30
	maxAddressLength       = 500
)

// Address is a shipping address owned by one user. Orders denormalize the
// recipient fields at write time, so editing an address never rewrites
// history.
type Address struct {
	shared.BaseEntity
	UserID        uuid.UUID
	RecipientName string
	Phone         string
	Address       string
	IsDefault     bool
}

// NewAddress creates a new address for a user
func NewAddress(userID uuid.UUID, recipientName, phone, address string) (*Address, error) {
	a := &Address{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
	}
	if err := a.update(recipientName, phone, address); err != nil {
		return nil, err
	}
	return a, nil
}

// SetDefault marks or unmarks the address as the user's default. At
// most one address per user stays default; the repository clears the
// previous one on save.
func (a *Address) SetDefault(isDefault bool) {
	a.IsDefault = isDefault
	a.Touch()
}

// Update replaces the address fields after validation
func (a *Address) Update(recipientName, phone, address string) error {
	if err := a.update(recipientName, phone, address); err != nil {
		return err
	}
	a.Touch()
	return nil
}

func (a *Address) update(recipientName, phone, address string) error {
	recipientName = strings.TrimSpace(recipientName)
	phone = strings.TrimSpace(phone)
	address = strings.TrimSpace(address)

	if recipientName == "" || len(recipientName) > maxRecipientNameLength {
		return shared.NewDomainError("INVALID_RECIPIENT", "Recipient name is required and must not exceed 100 characters")
	}
	if phone == "" || len(phone) > maxPhoneLength {
		return shared.NewDomainError("INVALID_PHONE", "Phone is required and must not exceed 30 characters")
	}
	if address == "" || len(address) > maxAddressLength {
		return shared.NewDomainError("INVALID_ADDRESS", "Address is required and must not exceed 500 characters")
	}

	a.RecipientName = recipientName
	a.Phone = phone
	a.Address = address
	return nil
}
