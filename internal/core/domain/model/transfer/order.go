package transfer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// OrderData carries the fields supplied when an order is created.
type OrderData struct {
	Type             Type
	Priority         Priority
	Title            string
	Description      string
	From             kernel.LocationSnapshot
	To               kernel.LocationSnapshot
	PlannedDate      time.Time
	Carrier          string
	TrackingNumber   string
	EstimatedArrival *time.Time
	ShippingCost     *decimal.Decimal
	InsuranceCost    *decimal.Decimal
	Remarks          string
	Items            []LineItemData
}

// OrderPatch carries a partial update. Nil fields are left untouched; a non-nil
// Items replaces every line item of the order.
type OrderPatch struct {
	Type             *Type
	Priority         *Priority
	Title            *string
	Description      *string
	From             *kernel.LocationSnapshot
	To               *kernel.LocationSnapshot
	PlannedDate      *time.Time
	Carrier          *string
	TrackingNumber   *string
	EstimatedArrival *time.Time
	ShippingCost     *decimal.Decimal
	InsuranceCost    *decimal.Decimal
	Remarks          *string
	Items            *[]LineItemData
}

// Order is the transfer order aggregate root.
//
// Invariants:
//   - totalAmount equals the sum of the line item totals
//   - from and to are distinct locations whose kinds match the order type
//   - approver is set only after approve or reject, operator only after start
//   - header and items change only in Draft; later changes go through transitions
type Order struct {
	id                kernel.UUID
	number            string
	orderType         Type
	status            Status
	priority          Priority
	title             string
	description       string
	from              kernel.LocationSnapshot
	to                kernel.LocationSnapshot
	plannedDate       time.Time
	actualShipDate    *time.Time
	actualReceiveDate *time.Time
	carrier           string
	trackingNumber    string
	estimatedArrival  *time.Time
	totalAmount       decimal.Decimal
	shippingCost      *decimal.Decimal
	insuranceCost     *decimal.Decimal
	applicant         *kernel.ActorSnapshot
	approver          *kernel.ActorSnapshot
	operator          *kernel.ActorSnapshot
	items             []*LineItem
	remarks           string
	createdBy         kernel.Actor
	createdAt         time.Time
	updatedBy         kernel.Actor
	updatedAt         time.Time

	isConstructed bool
}

// NewOrder creates a Draft order numbered by the store.
func NewOrder(id kernel.UUID, number string, data OrderData, creator kernel.Actor, at time.Time) (*Order, error) {
	o := &Order{
		status:           Draft,
		description:      data.Description,
		carrier:          data.Carrier,
		trackingNumber:   data.TrackingNumber,
		estimatedArrival: copyTime(data.EstimatedArrival),
		remarks:          data.Remarks,
		isConstructed:    true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setType(data.Type),
		o.setPriority(data.Priority),
		o.setTitle(data.Title),
		o.setPlannedDate(data.PlannedDate),
		o.setShippingCost(data.ShippingCost),
		o.setInsuranceCost(data.InsuranceCost),
		o.setEndpoints(data.From, data.To),
		o.setItems(data.Items),
		o.stamp(creator, at),
	); err != nil {
		return nil, err
	}

	o.createdBy = creator
	o.createdAt = at
	o.recalculate()
	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Number() string {
	return o.number
}

func (o *Order) Type() Type {
	return o.orderType
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) Priority() Priority {
	return o.priority
}

func (o *Order) Title() string {
	return o.title
}

func (o *Order) Description() string {
	return o.description
}

func (o *Order) From() kernel.LocationSnapshot {
	return o.from
}

func (o *Order) To() kernel.LocationSnapshot {
	return o.to
}

func (o *Order) PlannedDate() time.Time {
	return o.plannedDate
}

func (o *Order) ActualShipDate() *time.Time {
	return copyTime(o.actualShipDate)
}

func (o *Order) ActualReceiveDate() *time.Time {
	return copyTime(o.actualReceiveDate)
}

func (o *Order) Carrier() string {
	return o.carrier
}

func (o *Order) TrackingNumber() string {
	return o.trackingNumber
}

func (o *Order) EstimatedArrival() *time.Time {
	return copyTime(o.estimatedArrival)
}

func (o *Order) TotalAmount() decimal.Decimal {
	return o.totalAmount
}

func (o *Order) ShippingCost() *decimal.Decimal {
	return copyDecimal(o.shippingCost)
}

func (o *Order) InsuranceCost() *decimal.Decimal {
	return copyDecimal(o.insuranceCost)
}

func (o *Order) Applicant() *kernel.ActorSnapshot {
	return copySnapshot(o.applicant)
}

func (o *Order) Approver() *kernel.ActorSnapshot {
	return copySnapshot(o.approver)
}

func (o *Order) Operator() *kernel.ActorSnapshot {
	return copySnapshot(o.operator)
}

// Items returns clones of the line items in their stored order.
func (o *Order) Items() []*LineItem {
	items := make([]*LineItem, 0, len(o.items))
	for _, item := range o.items {
		items = append(items, item.clone())
	}
	return items
}

func (o *Order) Remarks() string {
	return o.remarks
}

func (o *Order) CreatedBy() kernel.Actor {
	return o.createdBy
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedBy() kernel.Actor {
	return o.updatedBy
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// AllowedActions lists the transitions that would change the order.
func (o *Order) AllowedActions() []Action {
	return o.status.AllowedActions()
}

// Update applies a partial edit. Only Draft orders can be edited; the patch
// is validated as a whole and nothing changes when any field is rejected.
func (o *Order) Update(patch OrderPatch, actor kernel.Actor, at time.Time) error {
	if !o.status.IsEditable() {
		return errs.NewStateConflictError("transfer", o.id.String(), o.status.String(), "update")
	}

	next := o.Clone()
	var errList []error

	if patch.Type != nil {
		errList = append(errList, next.setType(*patch.Type))
	}
	if patch.Priority != nil {
		errList = append(errList, next.setPriority(*patch.Priority))
	}
	if patch.Title != nil {
		errList = append(errList, next.setTitle(*patch.Title))
	}
	if patch.Description != nil {
		next.description = *patch.Description
	}
	if patch.PlannedDate != nil {
		errList = append(errList, next.setPlannedDate(*patch.PlannedDate))
	}
	if patch.Carrier != nil {
		next.carrier = *patch.Carrier
	}
	if patch.TrackingNumber != nil {
		next.trackingNumber = *patch.TrackingNumber
	}
	if patch.EstimatedArrival != nil {
		next.estimatedArrival = copyTime(patch.EstimatedArrival)
	}
	if patch.ShippingCost != nil {
		errList = append(errList, next.setShippingCost(patch.ShippingCost))
	}
	if patch.InsuranceCost != nil {
		errList = append(errList, next.setInsuranceCost(patch.InsuranceCost))
	}
	if patch.Remarks != nil {
		next.remarks = *patch.Remarks
	}

	from, to := next.from, next.to
	if patch.From != nil {
		from = *patch.From
	}
	if patch.To != nil {
		to = *patch.To
	}
	errList = append(errList, next.setEndpoints(from, to))

	if patch.Items != nil {
		errList = append(errList, next.setItems(*patch.Items))
	}
	errList = append(errList, next.stamp(actor, at))

	if err := errors.Join(errList...); err != nil {
		return err
	}

	next.recalculate()
	*o = *next
	return nil
}

// Submit sends a Draft order for approval and records the applicant.
func (o *Order) Submit(actor kernel.Actor, at time.Time) (bool, error) {
	return o.transition(Submit, actor, at, func() error {
		snapshot, err := actor.Snapshot(at, "")
		if err != nil {
			return err
		}
		o.applicant = &snapshot
		return nil
	})
}

// Approve records the approver with optional remarks.
func (o *Order) Approve(actor kernel.Actor, remarks string, at time.Time) (bool, error) {
	return o.transition(Approve, actor, at, func() error {
		snapshot, err := actor.Snapshot(at, remarks)
		if err != nil {
			return err
		}
		o.approver = &snapshot
		return nil
	})
}

// Reject records the approver with the mandatory reason as remarks.
func (o *Order) Reject(actor kernel.Actor, reason string, at time.Time) (bool, error) {
	return o.transition(Reject, actor, at, func() error {
		if strings.TrimSpace(reason) == "" {
			return errs.NewValueIsRequiredError("reject reason")
		}
		snapshot, err := actor.Snapshot(at, reason)
		if err != nil {
			return err
		}
		o.approver = &snapshot
		return nil
	})
}

// Start ships an approved order: the ship date and operator are recorded and
// the tracking number is replaced when one is given.
func (o *Order) Start(actor kernel.Actor, trackingNumber string, at time.Time) (bool, error) {
	return o.transition(Start, actor, at, func() error {
		snapshot, err := actor.Snapshot(at, "")
		if err != nil {
			return err
		}
		o.operator = &snapshot
		shipped := at
		o.actualShipDate = &shipped
		if trackingNumber = strings.TrimSpace(trackingNumber); trackingNumber != "" {
			o.trackingNumber = trackingNumber
		}
		return nil
	})
}

// Receive records a partial arrival. The order stays open for more receipts.
func (o *Order) Receive(actor kernel.Actor, receipts []ItemReceipt, at time.Time) (bool, error) {
	return o.transition(Receive, actor, at, func() error {
		if err := validateReceipts(receipts); err != nil {
			return err
		}
		o.applyReceipts(receipts)
		return nil
	})
}

// Complete records the final arrival and the receive date.
func (o *Order) Complete(actor kernel.Actor, receipts []ItemReceipt, at time.Time) (bool, error) {
	return o.transition(Complete, actor, at, func() error {
		if err := validateReceipts(receipts); err != nil {
			return err
		}
		o.applyReceipts(receipts)
		received := at
		o.actualReceiveDate = &received
		return nil
	})
}

// Cancel stops a non-terminal order and stores the reason as remarks.
func (o *Order) Cancel(actor kernel.Actor, reason string, at time.Time) (bool, error) {
	return o.transition(Cancel, actor, at, func() error {
		o.remarks = reason
		return nil
	})
}

// transition resolves action against the workflow table and runs effect on
// success. It reports true when the order already was in the terminal target.
// effect must validate its input before it mutates anything.
func (o *Order) transition(action Action, actor kernel.Actor, at time.Time, effect func() error) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}

	target, noop, err := o.status.Apply(action)
	if err != nil {
		if errors.Is(err, errs.ErrStateConflict) {
			return false, errs.NewStateConflictError("transfer", o.id.String(), o.status.String(), action.String())
		}
		return false, err
	}
	if noop {
		return true, nil
	}

	if err := errors.Join(actor.Validate(), validateTime(at)); err != nil {
		return false, err
	}
	if err := effect(); err != nil {
		return false, err
	}

	o.status = target
	o.updatedBy = actor
	o.updatedAt = at
	return false, nil
}

func validateReceipts(receipts []ItemReceipt) error {
	var errList []error
	for _, r := range receipts {
		errList = append(errList, r.Validate())
	}
	return errors.Join(errList...)
}

// applyReceipts matches receipts to items by id. Unmatched receipts are ignored.
func (o *Order) applyReceipts(receipts []ItemReceipt) {
	for _, r := range receipts {
		for _, item := range o.items {
			if item.id.IsEqual(r.ItemID()) {
				item.receive(r.ActualQuantity())
			}
		}
	}
}

func (o *Order) recalculate() {
	total := decimal.Zero
	for _, item := range o.items {
		total = total.Add(item.totalPrice)
	}
	o.totalAmount = total
}

// Clone returns a deep copy that shares no mutable state with o.
func (o *Order) Clone() *Order {
	c := *o
	c.actualShipDate = copyTime(o.actualShipDate)
	c.actualReceiveDate = copyTime(o.actualReceiveDate)
	c.estimatedArrival = copyTime(o.estimatedArrival)
	c.shippingCost = copyDecimal(o.shippingCost)
	c.insuranceCost = copyDecimal(o.insuranceCost)
	c.applicant = copySnapshot(o.applicant)
	c.approver = copySnapshot(o.approver)
	c.operator = copySnapshot(o.operator)
	c.items = make([]*LineItem, 0, len(o.items))
	for _, item := range o.items {
		c.items = append(c.items, item.clone())
	}
	return &c
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.number = number
	return nil
}

func (o *Order) setType(t Type) error {
	if err := t.Validate(); err != nil {
		return err
	}
	o.orderType = t
	return nil
}

func (o *Order) setPriority(p Priority) error {
	if err := p.Validate(); err != nil {
		return err
	}
	o.priority = p
	return nil
}

func (o *Order) setTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return errs.NewValueIsRequiredError("title")
	}
	o.title = title
	return nil
}

func (o *Order) setPlannedDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("planned date")
	}
	o.plannedDate = date
	return nil
}

func (o *Order) setShippingCost(cost *decimal.Decimal) error {
	if cost != nil && cost.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("shipping cost", fmt.Errorf("%s is negative", cost.String()))
	}
	o.shippingCost = copyDecimal(cost)
	return nil
}

func (o *Order) setInsuranceCost(cost *decimal.Decimal) error {
	if cost != nil && cost.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("insurance cost", fmt.Errorf("%s is negative", cost.String()))
	}
	o.insuranceCost = copyDecimal(cost)
	return nil
}

// setEndpoints runs after setType so the kinds are checked against the final type.
func (o *Order) setEndpoints(from, to kernel.LocationSnapshot) error {
	if err := errors.Join(from.Validate(), to.Validate()); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("from and to locations", err)
	}
	if from.IsSameLocation(to) {
		return errs.NewValueIsInvalidErrorWithCause("locations are invalid",
			fmt.Errorf("from and to are both %s", from.String()))
	}
	if o.orderType != UnknownType {
		if err := o.orderType.ValidateEndpoints(from.Type(), to.Type()); err != nil {
			return err
		}
	}
	o.from = from
	o.to = to
	return nil
}

func (o *Order) setItems(data []LineItemData) error {
	if len(data) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	items := make([]*LineItem, 0, len(data))
	var errList []error
	for i, d := range data {
		item, err := NewLineItem(kernel.NewUUID(), o.id, d)
		if err != nil {
			errList = append(errList, fmt.Errorf("item %d: %w", i+1, err))
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	o.items = items
	return nil
}

func (o *Order) stamp(actor kernel.Actor, at time.Time) error {
	if err := errors.Join(actor.Validate(), validateTime(at)); err != nil {
		return err
	}
	o.updatedBy = actor
	o.updatedAt = at
	return nil
}

func validateTime(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("time")
	}
	return nil
}

func copySnapshot(s *kernel.ActorSnapshot) *kernel.ActorSnapshot {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
