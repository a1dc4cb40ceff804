package locationrepo

import (
	"context"
	"errors"

	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/core/domain/model/location"
	"transferflow/internal/core/ports"
	"transferflow/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLocationRepository implements ports.LocationDirectory and ports.InventoryReader.
type GormLocationRepository struct {
	db *gorm.DB
}

var (
	_ ports.LocationDirectory = (*GormLocationRepository)(nil)
	_ ports.InventoryReader   = (*GormLocationRepository)(nil)
)

func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// GetAll lists locations ordered by code.
func (r *GormLocationRepository) GetAll(ctx context.Context) ([]*location.Location, error) {
	var dtos []LocationDTO
	if err := r.db.WithContext(ctx).Order("code").Find(&dtos).Error; err != nil {
		return nil, errs.NewTransportError("list locations", err)
	}

	locations := make([]*location.Location, 0, len(dtos))
	for _, dto := range dtos {
		l, err := locationToDomain(dto)
		if err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, nil
}

func (r *GormLocationRepository) Get(ctx context.Context, id kernel.UUID) (*location.Location, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto LocationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("location", id.String())
		}
		return nil, errs.NewTransportError("get location", err)
	}
	return locationToDomain(dto)
}

// ByLocation lists stock at a location ordered by product.
func (r *GormLocationRepository) ByLocation(
	ctx context.Context,
	locationID kernel.UUID,
	productID string,
) ([]location.InventorySnapshot, error) {
	query := r.db.WithContext(ctx).Where("location_id = ?", locationID.Bytes()).Order("product_id")
	if productID != "" {
		query = query.Where("product_id = ?", productID)
	}

	var dtos []InventoryDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, errs.NewTransportError("query inventory", err)
	}

	result := make([]location.InventorySnapshot, 0, len(dtos))
	for _, dto := range dtos {
		s, err := inventoryToDomain(dto)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, nil
}

// Save upserts locations and inventory rows. It is used to seed a fresh database.
func (r *GormLocationRepository) Save(
	ctx context.Context,
	locations []*location.Location,
	inventory []location.InventorySnapshot,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, l := range locations {
			dto := locationFromDomain(l)
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&dto).Error; err != nil {
				return errs.NewTransportError("save location", err)
			}
		}
		for _, s := range inventory {
			dto := inventoryFromDomain(s)
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&dto).Error; err != nil {
				return errs.NewTransportError("save inventory", err)
			}
		}
		return nil
	})
}
