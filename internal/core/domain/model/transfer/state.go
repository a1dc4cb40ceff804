package transfer

import (
	"errors"
	"fmt"
	"time"

	"transferflow/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// ActorState is the flat form of an actor snapshot.
type ActorState struct {
	ID      string
	Name    string
	At      time.Time
	Remarks string
}

// LineItemState is the flat form of a line item used by stores.
type LineItemState struct {
	ID               kernel.UUID
	Data             LineItemData
	ActualQuantity   *int
	ReceivedQuantity *int
}

// State is the flat form of an order used by stores. TotalAmount and item
// totals are derived and recomputed by Restore.
type State struct {
	ID                kernel.UUID
	Number            string
	Type              Type
	Status            Status
	Priority          Priority
	Title             string
	Description       string
	From              kernel.LocationSnapshot
	To                kernel.LocationSnapshot
	PlannedDate       time.Time
	ActualShipDate    *time.Time
	ActualReceiveDate *time.Time
	Carrier           string
	TrackingNumber    string
	EstimatedArrival  *time.Time
	ShippingCost      *decimal.Decimal
	InsuranceCost     *decimal.Decimal
	Applicant         *ActorState
	Approver          *ActorState
	Operator          *ActorState
	Items             []LineItemState
	Remarks           string
	CreatedByID       string
	CreatedByName     string
	CreatedAt         time.Time
	UpdatedByID       string
	UpdatedByName     string
	UpdatedAt         time.Time
}

// State flattens the order for persistence.
func (o *Order) State() State {
	st := State{
		ID:                o.id,
		Number:            o.number,
		Type:              o.orderType,
		Status:            o.status,
		Priority:          o.priority,
		Title:             o.title,
		Description:       o.description,
		From:              o.from,
		To:                o.to,
		PlannedDate:       o.plannedDate,
		ActualShipDate:    copyTime(o.actualShipDate),
		ActualReceiveDate: copyTime(o.actualReceiveDate),
		Carrier:           o.carrier,
		TrackingNumber:    o.trackingNumber,
		EstimatedArrival:  copyTime(o.estimatedArrival),
		ShippingCost:      copyDecimal(o.shippingCost),
		InsuranceCost:     copyDecimal(o.insuranceCost),
		Applicant:         actorState(o.applicant),
		Approver:          actorState(o.approver),
		Operator:          actorState(o.operator),
		Items:             make([]LineItemState, 0, len(o.items)),
		Remarks:           o.remarks,
		CreatedByID:       o.createdBy.ID(),
		CreatedByName:     o.createdBy.Name(),
		CreatedAt:         o.createdAt,
		UpdatedByID:       o.updatedBy.ID(),
		UpdatedByName:     o.updatedBy.Name(),
		UpdatedAt:         o.updatedAt,
	}

	for _, item := range o.items {
		st.Items = append(st.Items, LineItemState{
			ID:               item.id,
			Data:             item.Data(),
			ActualQuantity:   copyInt(item.actualQuantity),
			ReceivedQuantity: copyInt(item.receivedQuantity),
		})
	}
	return st
}

// Restore rebuilds an order read back from a store. Stored values are
// re-validated; totals are recomputed rather than trusted.
func Restore(st State) (*Order, error) {
	o := &Order{
		status:            st.Status,
		description:       st.Description,
		actualShipDate:    copyTime(st.ActualShipDate),
		actualReceiveDate: copyTime(st.ActualReceiveDate),
		carrier:           st.Carrier,
		trackingNumber:    st.TrackingNumber,
		estimatedArrival:  copyTime(st.EstimatedArrival),
		remarks:           st.Remarks,
		createdAt:         st.CreatedAt,
		updatedAt:         st.UpdatedAt,
		isConstructed:     true,
	}

	createdBy, createdErr := kernel.NewActor(st.CreatedByID, st.CreatedByName)
	updatedBy, updatedErr := kernel.NewActor(st.UpdatedByID, st.UpdatedByName)
	applicant, applicantErr := restoreActor(st.Applicant)
	approver, approverErr := restoreActor(st.Approver)
	operator, operatorErr := restoreActor(st.Operator)

	if err := errors.Join(
		o.setID(st.ID),
		o.setNumber(st.Number),
		st.Status.Validate(),
		o.setType(st.Type),
		o.setPriority(st.Priority),
		o.setTitle(st.Title),
		o.setPlannedDate(st.PlannedDate),
		o.setShippingCost(st.ShippingCost),
		o.setInsuranceCost(st.InsuranceCost),
		o.restoreEndpoints(st.From, st.To),
		o.restoreItems(st.Items),
		createdErr, updatedErr, applicantErr, approverErr, operatorErr,
	); err != nil {
		return nil, fmt.Errorf("restore transfer %s: %w", st.Number, err)
	}

	o.createdBy = createdBy
	o.updatedBy = updatedBy
	o.applicant = applicant
	o.approver = approver
	o.operator = operator
	o.recalculate()
	return o, nil
}

// restoreEndpoints skips the type check so historical orders survive rule changes.
func (o *Order) restoreEndpoints(from, to kernel.LocationSnapshot) error {
	if err := errors.Join(from.Validate(), to.Validate()); err != nil {
		return err
	}
	o.from = from
	o.to = to
	return nil
}

func (o *Order) restoreItems(states []LineItemState) error {
	items := make([]*LineItem, 0, len(states))
	var errList []error
	for _, st := range states {
		item, err := NewLineItem(st.ID, o.id, st.Data)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		item.actualQuantity = copyInt(st.ActualQuantity)
		item.receivedQuantity = copyInt(st.ReceivedQuantity)
		items = append(items, item)
	}
	o.items = items
	return errors.Join(errList...)
}

func actorState(s *kernel.ActorSnapshot) *ActorState {
	if s == nil {
		return nil
	}
	return &ActorState{ID: s.ActorID(), Name: s.ActorName(), At: s.At(), Remarks: s.Remarks()}
}

func restoreActor(st *ActorState) (*kernel.ActorSnapshot, error) {
	if st == nil {
		return nil, nil
	}
	snapshot, err := kernel.RestoreActorSnapshot(st.ID, st.Name, st.At, st.Remarks)
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}
