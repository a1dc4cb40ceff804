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

var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItemData carries the caller-supplied fields of a line item.
type LineItemData struct {
	ProductID       string
	SKU             string
	ProductName     string
	Specification   string
	Unit            string
	PlannedQuantity int
	UnitPrice       decimal.Decimal
	BatchNumber     string
	ExpiryDate      *time.Time
	Remarks         string
}

// LineItem is a single product, quantity and price entry owned by one Order.
//
// Invariants:
//   - plannedQuantity > 0 and unitPrice >= 0
//   - totalPrice == plannedQuantity * unitPrice at all times
//   - actualQuantity and receivedQuantity stay nil until a receipt is applied
type LineItem struct {
	id               kernel.UUID
	orderID          kernel.UUID
	productID        string
	sku              string
	productName      string
	specification    string
	unit             string
	plannedQuantity  int
	actualQuantity   *int
	receivedQuantity *int
	unitPrice        decimal.Decimal
	totalPrice       decimal.Decimal
	batchNumber      string
	expiryDate       *time.Time
	remarks          string

	isConstructed bool
}

// NewLineItem validates data and creates an item with its total computed.
func NewLineItem(id, orderID kernel.UUID, data LineItemData) (*LineItem, error) {
	item := &LineItem{
		sku:           strings.TrimSpace(data.SKU),
		specification: data.Specification,
		unit:          data.Unit,
		batchNumber:   data.BatchNumber,
		expiryDate:    copyTime(data.ExpiryDate),
		remarks:       data.Remarks,
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setOrderID(orderID),
		item.setProductID(data.ProductID),
		item.setProductName(data.ProductName),
		item.setPlannedQuantity(data.PlannedQuantity),
		item.setUnitPrice(data.UnitPrice),
	); err != nil {
		return nil, err
	}

	item.recalculate()
	return item, nil
}

func (i *LineItem) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrLineItemIsNotConstructed
	}
	return nil
}

func (i *LineItem) ID() kernel.UUID {
	return i.id
}

func (i *LineItem) OrderID() kernel.UUID {
	return i.orderID
}

func (i *LineItem) ProductID() string {
	return i.productID
}

func (i *LineItem) SKU() string {
	return i.sku
}

func (i *LineItem) ProductName() string {
	return i.productName
}

func (i *LineItem) Specification() string {
	return i.specification
}

func (i *LineItem) Unit() string {
	return i.unit
}

func (i *LineItem) PlannedQuantity() int {
	return i.plannedQuantity
}

// ActualQuantity returns a copy of the counted quantity, or nil before receipt.
func (i *LineItem) ActualQuantity() *int {
	return copyInt(i.actualQuantity)
}

// ReceivedQuantity returns a copy of the received quantity, or nil before receipt.
func (i *LineItem) ReceivedQuantity() *int {
	return copyInt(i.receivedQuantity)
}

func (i *LineItem) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

func (i *LineItem) TotalPrice() decimal.Decimal {
	return i.totalPrice
}

func (i *LineItem) BatchNumber() string {
	return i.batchNumber
}

func (i *LineItem) ExpiryDate() *time.Time {
	return copyTime(i.expiryDate)
}

func (i *LineItem) Remarks() string {
	return i.remarks
}

// IsReceived reports whether a receipt has been applied to the item.
func (i *LineItem) IsReceived() bool {
	return i.receivedQuantity != nil
}

// Data returns the caller-editable fields of the item.
func (i *LineItem) Data() LineItemData {
	return LineItemData{
		ProductID:       i.productID,
		SKU:             i.sku,
		ProductName:     i.productName,
		Specification:   i.specification,
		Unit:            i.unit,
		PlannedQuantity: i.plannedQuantity,
		UnitPrice:       i.unitPrice,
		BatchNumber:     i.batchNumber,
		ExpiryDate:      copyTime(i.expiryDate),
		Remarks:         i.remarks,
	}
}

// ChangePlannedQuantity sets a new planned quantity and recomputes the total.
func (i *LineItem) ChangePlannedQuantity(quantity int) error {
	if err := i.setPlannedQuantity(quantity); err != nil {
		return err
	}
	i.recalculate()
	return nil
}

// ChangeUnitPrice sets a new unit price and recomputes the total.
func (i *LineItem) ChangeUnitPrice(price decimal.Decimal) error {
	if err := i.setUnitPrice(price); err != nil {
		return err
	}
	i.recalculate()
	return nil
}

func (i *LineItem) receive(quantity int) {
	actual, received := quantity, quantity
	i.actualQuantity = &actual
	i.receivedQuantity = &received
}

func (i *LineItem) recalculate() {
	i.totalPrice = i.unitPrice.Mul(decimal.NewFromInt(int64(i.plannedQuantity)))
}

func (i *LineItem) clone() *LineItem {
	c := *i
	c.actualQuantity = copyInt(i.actualQuantity)
	c.receivedQuantity = copyInt(i.receivedQuantity)
	c.expiryDate = copyTime(i.expiryDate)
	return &c
}

func (i *LineItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *LineItem) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.orderID = id
	return nil
}

func (i *LineItem) setProductID(productID string) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return errs.NewValueIsRequiredError("item product id")
	}
	i.productID = productID
	return nil
}

func (i *LineItem) setProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("item product name")
	}
	i.productName = name
	return nil
}

func (i *LineItem) setPlannedQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("item planned quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.plannedQuantity = quantity
	return nil
}

func (i *LineItem) setUnitPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("item unit price",
			fmt.Errorf("%s is negative", price.String()))
	}
	i.unitPrice = price
	return nil
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyDecimal(v *decimal.Decimal) *decimal.Decimal {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
