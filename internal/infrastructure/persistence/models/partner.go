package models

import (
	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/partner"
)

// AddressModel is the persistence model for the Address domain entity.
type AddressModel struct {
	BaseModel
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	RecipientName string    `gorm:"type:varchar(100);not null"`
	Phone         string    `gorm:"type:varchar(30);not null"`
	Address       string    `gorm:"type:text;not null"`
	IsDefault     bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (AddressModel) TableName() string {
	return "addresses"
}

// ToDomain converts the persistence model to a domain Address entity.
func (m *AddressModel) ToDomain() *partner.Address {
	return &partner.Address{
		BaseEntity:    m.ToDomainBase(),
		UserID:        m.UserID,
		RecipientName: m.RecipientName,
		Phone:         m.Phone,
		Address:       m.Address,
		IsDefault:     m.IsDefault,
	}
}

// FromDomain populates the persistence model from a domain Address entity.
func (m *AddressModel) FromDomain(a *partner.Address) {
	m.FromDomainBase(a.BaseEntity)
	m.UserID = a.UserID
	m.RecipientName = a.RecipientName
	m.Phone = a.Phone
	m.Address = a.Address
	m.IsDefault = a.IsDefault
}
