package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/partner"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
)

// GormAddressRepository implements AddressRepository using GORM
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GormAddressRepository
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// FindByIDForUser finds an address by ID owned by the given user.
// A matching id owned by another user is reported as not found.
func (r *GormAddressRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*partner.Address, error) {
	var model models.AddressModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForUser finds all addresses owned by the given user
func (r *GormAddressRepository) FindAllForUser(ctx context.Context, userID uuid.UUID) ([]partner.Address, error) {
	var rows []models.AddressModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	addresses := make([]partner.Address, 0, len(rows))
	for i := range rows {
		addresses = append(addresses, *rows[i].ToDomain())
	}
	return addresses, nil
}

// Save persists an address (insert or update). A default address
// displaces the user's previous default so at most one remains.
func (r *GormAddressRepository) Save(ctx context.Context, address *partner.Address) error {
	var model models.AddressModel
	model.FromDomain(address)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			if err := tx.Model(&models.AddressModel{}).
				Where("user_id = ? AND id <> ? AND is_default = ?", address.UserID, address.ID, true).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(&model).Error
	})
}

// DeleteForUser deletes an address owned by the given user
func (r *GormAddressRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&models.AddressModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormAddressRepository implements AddressRepository
var _ partner.AddressRepository = (*GormAddressRepository)(nil)
