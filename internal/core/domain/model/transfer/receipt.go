package transfer

import (
	"errors"
	"fmt"

	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/pkg/errs"
	"transferflow/internal/pkg/guard"
)

var ErrItemReceiptIsNotConstructed = errors.New("ItemReceipt must be created via NewItemReceipt constructor")

// ItemReceipt reports the quantity actually counted for one line item on arrival.
type ItemReceipt struct { //nolint:recvcheck //using for validation
	itemID         kernel.UUID
	actualQuantity int
	guard          guard.ConstructorGuard
}

func NewItemReceipt(itemID kernel.UUID, actualQuantity int) (ItemReceipt, error) {
	receipt := ItemReceipt{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		receipt.setItemID(itemID),
		receipt.setActualQuantity(actualQuantity),
	); err != nil {
		return ItemReceipt{}, err
	}

	return receipt, nil
}

func (r ItemReceipt) Validate() error {
	return r.guard.Validate(ErrItemReceiptIsNotConstructed)
}

func (r ItemReceipt) ItemID() kernel.UUID {
	return r.itemID
}

func (r ItemReceipt) ActualQuantity() int {
	return r.actualQuantity
}

func (r *ItemReceipt) setItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.itemID = id
	return nil
}

func (r *ItemReceipt) setActualQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("receipt actual quantity",
			fmt.Errorf("%d is negative", quantity))
	}
	r.actualQuantity = quantity
	return nil
}
