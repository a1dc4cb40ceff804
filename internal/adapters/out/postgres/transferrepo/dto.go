// Package transferrepo persists transfer order aggregates with GORM. Orders
// live in transfer_orders, their line items in transfer_line_items, and the
// per-day number sequences in transfer_number_sequences.
package transferrepo

import (
	"fmt"
	"time"

	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/core/domain/model/transfer"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferDTO is the row form of a transfer order. Status, type and priority
// are stored by name so filters stay readable in SQL.
type TransferDTO struct {
	ID                uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Number            string              `gorm:"type:varchar(32);not null;uniqueIndex"`
	Type              string              `gorm:"type:varchar(32);not null;index"`
	Status            string              `gorm:"type:varchar(32);not null;index"`
	Priority          string              `gorm:"type:varchar(16);not null"`
	Title             string              `gorm:"type:varchar(255);not null"`
	Description       string              `gorm:"type:text"`
	From              LocationDTO         `gorm:"embedded;embeddedPrefix:from_"`
	To                LocationDTO         `gorm:"embedded;embeddedPrefix:to_"`
	PlannedDate       time.Time           `gorm:"not null"`
	ActualShipDate    *time.Time
	ActualReceiveDate *time.Time
	Carrier           string              `gorm:"type:varchar(128)"`
	TrackingNumber    string              `gorm:"type:varchar(128)"`
	EstimatedArrival  *time.Time
	TotalAmount       decimal.Decimal     `gorm:"type:numeric(14,2);not null"`
	ShippingCost      decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	InsuranceCost     decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	Applicant         ActorDTO            `gorm:"embedded;embeddedPrefix:applicant_"`
	Approver          ActorDTO            `gorm:"embedded;embeddedPrefix:approver_"`
	Operator          ActorDTO            `gorm:"embedded;embeddedPrefix:operator_"`
	Remarks           string              `gorm:"type:text"`
	CreatedByID       string              `gorm:"type:varchar(64);not null"`
	CreatedByName     string              `gorm:"type:varchar(255)"`
	CreatedAt         time.Time           `gorm:"not null;index;autoCreateTime:false"`
	UpdatedByID       string              `gorm:"type:varchar(64);not null"`
	UpdatedByName     string              `gorm:"type:varchar(255)"`
	UpdatedAt         time.Time           `gorm:"not null;autoUpdateTime:false"`
	Items             []LineItemDTO       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (TransferDTO) TableName() string {
	return "transfer_orders"
}

// LocationDTO is the embedded location snapshot.
type LocationDTO struct {
	Type         string    `gorm:"type:varchar(16)"`
	ID           uuid.UUID `gorm:"type:uuid"`
	Code         string    `gorm:"type:varchar(32)"`
	Name         string    `gorm:"type:varchar(255)"`
	Address      string    `gorm:"type:varchar(255)"`
	ContactName  string    `gorm:"type:varchar(255)"`
	ContactPhone string    `gorm:"type:varchar(64)"`
}

// ActorDTO is an embedded actor snapshot; an empty ID means not set.
type ActorDTO struct {
	ID      string `gorm:"type:varchar(64)"`
	Name    string `gorm:"type:varchar(255)"`
	At      *time.Time
	Remarks string `gorm:"type:text"`
}

// LineItemDTO is one line of an order. Position keeps the item order.
type LineItemDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position         int             `gorm:"not null"`
	ProductID        string          `gorm:"type:varchar(64);not null"`
	SKU              string          `gorm:"type:varchar(64)"`
	ProductName      string          `gorm:"type:varchar(255);not null"`
	Specification    string          `gorm:"type:varchar(255)"`
	Unit             string          `gorm:"type:varchar(32)"`
	PlannedQuantity  int             `gorm:"not null"`
	ActualQuantity   *int
	ReceivedQuantity *int
	UnitPrice        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalPrice       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	BatchNumber      string          `gorm:"type:varchar(64)"`
	ExpiryDate       *time.Time
	Remarks          string          `gorm:"type:text"`
}

func (LineItemDTO) TableName() string {
	return "transfer_line_items"
}

// NumberSequenceDTO holds the last issued order number sequence for one day.
type NumberSequenceDTO struct {
	Day  string `gorm:"type:varchar(8);primaryKey"`
	Last int    `gorm:"not null"`
}

func (NumberSequenceDTO) TableName() string {
	return "transfer_number_sequences"
}

func fromDomain(o *transfer.Order) TransferDTO {
	st := o.State()
	dto := TransferDTO{
		ID:                st.ID.Bytes(),
		Number:            st.Number,
		Type:              st.Type.String(),
		Status:            st.Status.String(),
		Priority:          st.Priority.String(),
		Title:             st.Title,
		Description:       st.Description,
		From:              locationFromDomain(st.From),
		To:                locationFromDomain(st.To),
		PlannedDate:       st.PlannedDate,
		ActualShipDate:    st.ActualShipDate,
		ActualReceiveDate: st.ActualReceiveDate,
		Carrier:           st.Carrier,
		TrackingNumber:    st.TrackingNumber,
		EstimatedArrival:  st.EstimatedArrival,
		TotalAmount:       o.TotalAmount(),
		ShippingCost:      nullDecimal(st.ShippingCost),
		InsuranceCost:     nullDecimal(st.InsuranceCost),
		Applicant:         actorFromDomain(st.Applicant),
		Approver:          actorFromDomain(st.Approver),
		Operator:          actorFromDomain(st.Operator),
		Remarks:           st.Remarks,
		CreatedByID:       st.CreatedByID,
		CreatedByName:     st.CreatedByName,
		CreatedAt:         st.CreatedAt,
		UpdatedByID:       st.UpdatedByID,
		UpdatedByName:     st.UpdatedByName,
		UpdatedAt:         st.UpdatedAt,
		Items:             make([]LineItemDTO, 0, len(st.Items)),
	}

	for i, item := range o.Items() {
		d := item.Data()
		dto.Items = append(dto.Items, LineItemDTO{
			ID:               item.ID().Bytes(),
			OrderID:          dto.ID,
			Position:         i,
			ProductID:        d.ProductID,
			SKU:              d.SKU,
			ProductName:      d.ProductName,
			Specification:    d.Specification,
			Unit:             d.Unit,
			PlannedQuantity:  d.PlannedQuantity,
			ActualQuantity:   item.ActualQuantity(),
			ReceivedQuantity: item.ReceivedQuantity(),
			UnitPrice:        d.UnitPrice,
			TotalPrice:       item.TotalPrice(),
			BatchNumber:      d.BatchNumber,
			ExpiryDate:       d.ExpiryDate,
			Remarks:          d.Remarks,
		})
	}
	return dto
}

func toDomain(dto TransferDTO) (*transfer.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderType, err := transfer.ParseType(dto.Type)
	if err != nil {
		return nil, err
	}
	status, err := transfer.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	priority, err := transfer.ParsePriority(dto.Priority)
	if err != nil {
		return nil, err
	}
	from, err := locationToDomain(dto.From)
	if err != nil {
		return nil, fmt.Errorf("from location: %w", err)
	}
	to, err := locationToDomain(dto.To)
	if err != nil {
		return nil, fmt.Errorf("to location: %w", err)
	}

	st := transfer.State{
		ID:                id,
		Number:            dto.Number,
		Type:              orderType,
		Status:            status,
		Priority:          priority,
		Title:             dto.Title,
		Description:       dto.Description,
		From:              from,
		To:                to,
		PlannedDate:       dto.PlannedDate,
		ActualShipDate:    dto.ActualShipDate,
		ActualReceiveDate: dto.ActualReceiveDate,
		Carrier:           dto.Carrier,
		TrackingNumber:    dto.TrackingNumber,
		EstimatedArrival:  dto.EstimatedArrival,
		ShippingCost:      decimalPtr(dto.ShippingCost),
		InsuranceCost:     decimalPtr(dto.InsuranceCost),
		Applicant:         actorToDomain(dto.Applicant),
		Approver:          actorToDomain(dto.Approver),
		Operator:          actorToDomain(dto.Operator),
		Items:             make([]transfer.LineItemState, 0, len(dto.Items)),
		Remarks:           dto.Remarks,
		CreatedByID:       dto.CreatedByID,
		CreatedByName:     dto.CreatedByName,
		CreatedAt:         dto.CreatedAt,
		UpdatedByID:       dto.UpdatedByID,
		UpdatedByName:     dto.UpdatedByName,
		UpdatedAt:         dto.UpdatedAt,
	}

	for _, item := range dto.Items {
		itemID, itemErr := kernel.UUIDFromBytes(item.ID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		st.Items = append(st.Items, transfer.LineItemState{
			ID: itemID,
			Data: transfer.LineItemData{
				ProductID:       item.ProductID,
				SKU:             item.SKU,
				ProductName:     item.ProductName,
				Specification:   item.Specification,
				Unit:            item.Unit,
				PlannedQuantity: item.PlannedQuantity,
				UnitPrice:       item.UnitPrice,
				BatchNumber:     item.BatchNumber,
				ExpiryDate:      item.ExpiryDate,
				Remarks:         item.Remarks,
			},
			ActualQuantity:   item.ActualQuantity,
			ReceivedQuantity: item.ReceivedQuantity,
		})
	}

	return transfer.Restore(st)
}

func locationFromDomain(l kernel.LocationSnapshot) LocationDTO {
	return LocationDTO{
		Type:         l.Type().String(),
		ID:           l.ID().Bytes(),
		Code:         l.Code(),
		Name:         l.Name(),
		Address:      l.Address(),
		ContactName:  l.Contact().Name,
		ContactPhone: l.Contact().Phone,
	}
}

func locationToDomain(dto LocationDTO) (kernel.LocationSnapshot, error) {
	locationType, err := kernel.ParseLocationType(dto.Type)
	if err != nil {
		return kernel.LocationSnapshot{}, err
	}
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return kernel.LocationSnapshot{}, err
	}
	return kernel.NewLocationSnapshot(locationType, id, dto.Code, dto.Name, dto.Address,
		kernel.Contact{Name: dto.ContactName, Phone: dto.ContactPhone})
}

func actorFromDomain(st *transfer.ActorState) ActorDTO {
	if st == nil {
		return ActorDTO{}
	}
	at := st.At
	return ActorDTO{ID: st.ID, Name: st.Name, At: &at, Remarks: st.Remarks}
}

func actorToDomain(dto ActorDTO) *transfer.ActorState {
	if dto.ID == "" || dto.At == nil {
		return nil
	}
	return &transfer.ActorState{ID: dto.ID, Name: dto.Name, At: *dto.At, Remarks: dto.Remarks}
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func decimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}
