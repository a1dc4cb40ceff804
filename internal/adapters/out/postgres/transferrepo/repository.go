package transferrepo

import (
	"context"
	"errors"
	"time"

	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/core/domain/model/transfer"
	"transferflow/internal/core/ports"
	"transferflow/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTransferRepository implements ports.TransferRepository using GORM.
type GormTransferRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

var _ ports.TransferRepository = (*GormTransferRepository)(nil)

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormTransferRepository(db *gorm.DB, tracker aggregateTracker) *GormTransferRepository {
	return &GormTransferRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its items.
func (r *GormTransferRepository) Add(ctx context.Context, aggregate *transfer.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewTransportError("add transfer", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update overwrites the order row and replaces its items.
func (r *GormTransferRepository) Update(ctx context.Context, aggregate *transfer.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	if err := r.ensureExists(db, aggregate.ID()); err != nil {
		return err
	}
	if err := db.Where("order_id = ?", dto.ID).Delete(&LineItemDTO{}).Error; err != nil {
		return errs.NewTransportError("replace transfer items", err)
	}
	if err := db.Session(&gorm.Session{FullSaveAssociations: true}).Save(&dto).Error; err != nil {
		return errs.NewTransportError("update transfer", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Delete removes the order; items go with it through the cascade.
func (r *GormTransferRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Where("id = ?", id.Bytes()).Delete(&TransferDTO{})
	if result.Error != nil {
		return errs.NewTransportError("delete transfer", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("transfer", id.String())
	}
	return nil
}

// Get retrieves an order with its items.
func (r *GormTransferRepository) Get(ctx context.Context, id kernel.UUID) (*transfer.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TransferDTO
	err := r.db.WithContext(ctx).Preload("Items", orderedItems).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("transfer", id.String())
		}
		return nil, errs.NewTransportError("get transfer", err)
	}

	return toDomain(dto)
}

// List returns orders oldest first. Status and type criteria are pushed down
// to SQL as array parameters.
func (r *GormTransferRepository) List(ctx context.Context, criteria ports.ListCriteria) ([]*transfer.Order, error) {
	query := r.db.WithContext(ctx).Preload("Items", orderedItems).Order("created_at, number")

	if len(criteria.Statuses) > 0 {
		names := make([]string, 0, len(criteria.Statuses))
		for _, s := range criteria.Statuses {
			names = append(names, s.String())
		}
		query = query.Where("status = ANY(?)", pq.Array(names))
	}
	if len(criteria.Types) > 0 {
		names := make([]string, 0, len(criteria.Types))
		for _, t := range criteria.Types {
			names = append(names, t.String())
		}
		query = query.Where("type = ANY(?)", pq.Array(names))
	}

	var dtos []TransferDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, errs.NewTransportError("list transfers", err)
	}

	orders := make([]*transfer.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// NextOrderNumber bumps the day's sequence row inside the current transaction.
func (r *GormTransferRepository) NextOrderNumber(ctx context.Context, at time.Time) (string, error) {
	seq := NumberSequenceDTO{Day: transfer.NumberDay(at), Last: 1}

	err := r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "day"}},
				DoUpdates: clause.Assignments(map[string]any{"last": gorm.Expr("transfer_number_sequences.last + 1")}),
			},
			clause.Returning{Columns: []clause.Column{{Name: "last"}}},
		).
		Create(&seq).Error
	if err != nil {
		return "", errs.NewTransportError("next order number", err)
	}

	return transfer.FormatNumber(at, seq.Last), nil
}

func (r *GormTransferRepository) ensureExists(db *gorm.DB, id kernel.UUID) error {
	var count int64
	if err := db.Model(&TransferDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return errs.NewTransportError("get transfer", err)
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("transfer", id.String())
	}
	return nil
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}
