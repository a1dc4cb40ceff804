// Package locationrepo serves the location directory and inventory snapshots
// from postgres. Both tables are read-only to the service apart from seeding.
package locationrepo

import (
	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/core/domain/model/location"

	"github.com/google/uuid"
)

type LocationDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Type         string    `gorm:"type:varchar(16);not null"`
	Code         string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Address      string    `gorm:"type:varchar(255)"`
	ContactName  string    `gorm:"type:varchar(255)"`
	ContactPhone string    `gorm:"type:varchar(64)"`
	Active       bool      `gorm:"not null;default:true"`
}

func (LocationDTO) TableName() string {
	return "locations"
}

// InventoryDTO is one product's stock at one location.
type InventoryDTO struct {
	LocationID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID   string    `gorm:"type:varchar(64);primaryKey"`
	SKU         string    `gorm:"type:varchar(64)"`
	ProductName string    `gorm:"type:varchar(255)"`
	Unit        string    `gorm:"type:varchar(32)"`
	Quantity    int       `gorm:"not null"`
	Reserved    int       `gorm:"not null"`
}

func (InventoryDTO) TableName() string {
	return "inventory"
}

func locationFromDomain(l *location.Location) LocationDTO {
	return LocationDTO{
		ID:           l.ID().Bytes(),
		Type:         l.Type().String(),
		Code:         l.Code(),
		Name:         l.Name(),
		Address:      l.Address(),
		ContactName:  l.Contact().Name,
		ContactPhone: l.Contact().Phone,
		Active:       l.IsActive(),
	}
}

func locationToDomain(dto LocationDTO) (*location.Location, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	locationType, err := kernel.ParseLocationType(dto.Type)
	if err != nil {
		return nil, err
	}
	return location.NewLocation(id, locationType, dto.Code, dto.Name, dto.Address,
		kernel.Contact{Name: dto.ContactName, Phone: dto.ContactPhone}, dto.Active)
}

func inventoryFromDomain(s location.InventorySnapshot) InventoryDTO {
	return InventoryDTO{
		LocationID:  s.LocationID.Bytes(),
		ProductID:   s.ProductID,
		SKU:         s.SKU,
		ProductName: s.ProductName,
		Unit:        s.Unit,
		Quantity:    s.Quantity,
		Reserved:    s.Reserved,
	}
}

func inventoryToDomain(dto InventoryDTO) (location.InventorySnapshot, error) {
	id, err := kernel.UUIDFromBytes(dto.LocationID[:])
	if err != nil {
		return location.InventorySnapshot{}, err
	}
	return location.InventorySnapshot{
		LocationID:  id,
		ProductID:   dto.ProductID,
		SKU:         dto.SKU,
		ProductName: dto.ProductName,
		Unit:        dto.Unit,
		Quantity:    dto.Quantity,
		Reserved:    dto.Reserved,
	}, nil
}
