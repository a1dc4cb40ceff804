package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/core/domain/model/transfer"
	"transferflow/internal/core/ports"
	"transferflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// TransferInput is the caller-supplied content of a new transfer order.
// Locations are given by id and resolved against the directory by the handler.
type TransferInput struct {
	Type             transfer.Type
	Priority         transfer.Priority
	Title            string
	Description      string
	FromLocationID   kernel.UUID
	ToLocationID     kernel.UUID
	PlannedDate      time.Time
	Carrier          string
	TrackingNumber   string
	EstimatedArrival *time.Time
	ShippingCost     *decimal.Decimal
	InsuranceCost    *decimal.Decimal
	Remarks          string
	Items            []transfer.LineItemData
}

// TransferPatchInput is a partial edit; nil fields stay unchanged.
type TransferPatchInput struct {
	Type             *transfer.Type
	Priority         *transfer.Priority
	Title            *string
	Description      *string
	FromLocationID   *kernel.UUID
	ToLocationID     *kernel.UUID
	PlannedDate      *time.Time
	Carrier          *string
	TrackingNumber   *string
	EstimatedArrival *time.Time
	ShippingCost     *decimal.Decimal
	InsuranceCost    *decimal.Decimal
	Remarks          *string
	Items            *[]transfer.LineItemData
}

// resolveLocation turns a directory id into an order snapshot. Unknown and
// inactive locations are validation failures of the request, not lookups.
func resolveLocation(
	ctx context.Context,
	directory ports.LocationDirectory,
	id kernel.UUID,
	role string,
) (kernel.LocationSnapshot, error) {
	if err := id.Validate(); err != nil {
		return kernel.LocationSnapshot{}, errs.NewValueIsRequiredErrorWithCause(role+" location", err)
	}

	loc, err := directory.Get(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return kernel.LocationSnapshot{}, errs.NewValueIsInvalidErrorWithCause(role+" location",
				fmt.Errorf("%s does not exist", id))
		}
		return kernel.LocationSnapshot{}, err
	}

	if !loc.IsActive() {
		return kernel.LocationSnapshot{}, errs.NewValueIsInvalidErrorWithCause(role+" location",
			fmt.Errorf("%s %s is inactive", loc.Code(), id))
	}

	return loc.Snapshot()
}

func (in TransferInput) orderData(from, to kernel.LocationSnapshot) transfer.OrderData {
	return transfer.OrderData{
		Type:             in.Type,
		Priority:         in.Priority,
		Title:            in.Title,
		Description:      in.Description,
		From:             from,
		To:               to,
		PlannedDate:      in.PlannedDate,
		Carrier:          in.Carrier,
		TrackingNumber:   in.TrackingNumber,
		EstimatedArrival: in.EstimatedArrival,
		ShippingCost:     in.ShippingCost,
		InsuranceCost:    in.InsuranceCost,
		Remarks:          in.Remarks,
		Items:            in.Items,
	}
}

func (in TransferPatchInput) orderPatch(from, to *kernel.LocationSnapshot) transfer.OrderPatch {
	return transfer.OrderPatch{
		Type:             in.Type,
		Priority:         in.Priority,
		Title:            in.Title,
		Description:      in.Description,
		From:             from,
		To:               to,
		PlannedDate:      in.PlannedDate,
		Carrier:          in.Carrier,
		TrackingNumber:   in.TrackingNumber,
		EstimatedArrival: in.EstimatedArrival,
		ShippingCost:     in.ShippingCost,
		InsuranceCost:    in.InsuranceCost,
		Remarks:          in.Remarks,
		Items:            in.Items,
	}
}
