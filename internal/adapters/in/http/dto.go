package http

import (
	"errors"
	"fmt"
	"time"

	"transferflow/internal/core/application/usecases/commands"
	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/core/domain/model/location"
	"transferflow/internal/core/domain/model/transfer"
	"transferflow/internal/core/domain/services"
	"transferflow/internal/pkg/errs"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

type LineItemInput struct {
	ProductID       string          `json:"productId"`
	SKU             string          `json:"sku,omitempty"`
	ProductName     string          `json:"productName"`
	Specification   string          `json:"specification,omitempty"`
	Unit            string          `json:"unit,omitempty"`
	PlannedQuantity int             `json:"plannedQuantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	BatchNumber     string          `json:"batchNumber,omitempty"`
	ExpiryDate      *time.Time      `json:"expiryDate,omitempty"`
	Remarks         string          `json:"remarks,omitempty"`
}

type TransferRequest struct {
	Type             string             `json:"type"`
	Priority         string             `json:"priority"`
	Title            string             `json:"title"`
	Description      string             `json:"description,omitempty"`
	FromLocationID   openapi_types.UUID `json:"fromLocationId"`
	ToLocationID     openapi_types.UUID `json:"toLocationId"`
	PlannedDate      time.Time          `json:"plannedDate"`
	Carrier          string             `json:"carrier,omitempty"`
	TrackingNumber   string             `json:"trackingNumber,omitempty"`
	EstimatedArrival *time.Time         `json:"estimatedArrival,omitempty"`
	ShippingCost     *decimal.Decimal   `json:"shippingCost,omitempty"`
	InsuranceCost    *decimal.Decimal   `json:"insuranceCost,omitempty"`
	Remarks          string             `json:"remarks,omitempty"`
	Items            []LineItemInput    `json:"items"`
}

type TransferPatch struct {
	Type             *string             `json:"type,omitempty"`
	Priority         *string             `json:"priority,omitempty"`
	Title            *string             `json:"title,omitempty"`
	Description      *string             `json:"description,omitempty"`
	FromLocationID   *openapi_types.UUID `json:"fromLocationId,omitempty"`
	ToLocationID     *openapi_types.UUID `json:"toLocationId,omitempty"`
	PlannedDate      *time.Time          `json:"plannedDate,omitempty"`
	Carrier          *string             `json:"carrier,omitempty"`
	TrackingNumber   *string             `json:"trackingNumber,omitempty"`
	EstimatedArrival *time.Time          `json:"estimatedArrival,omitempty"`
	ShippingCost     *decimal.Decimal    `json:"shippingCost,omitempty"`
	InsuranceCost    *decimal.Decimal    `json:"insuranceCost,omitempty"`
	Remarks          *string             `json:"remarks,omitempty"`
	Items            *[]LineItemInput    `json:"items,omitempty"`
}

type ReceiptInput struct {
	ItemID         openapi_types.UUID `json:"itemId"`
	ActualQuantity int                `json:"actualQuantity"`
}

// TransitionRequest carries the optional arguments of a workflow action.
// Reason is accepted as an alias of Remarks for reject and cancel.
type TransitionRequest struct {
	Remarks        string         `json:"remarks,omitempty"`
	Reason         string         `json:"reason,omitempty"`
	TrackingNumber string         `json:"trackingNumber,omitempty"`
	Receipts       []ReceiptInput `json:"receipts,omitempty"`
}

type BatchRequest struct {
	Operation string               `json:"operation"`
	IDs       []openapi_types.UUID `json:"ids"`
	Remarks   string               `json:"remarks,omitempty"`
}

type LocationSnapshotResponse struct {
	ID           openapi_types.UUID `json:"id"`
	Type         string             `json:"type"`
	Code         string             `json:"code"`
	Name         string             `json:"name"`
	Address      string             `json:"address,omitempty"`
	ContactName  string             `json:"contactName,omitempty"`
	ContactPhone string             `json:"contactPhone,omitempty"`
}

type ActorSnapshotResponse struct {
	ActorID   string    `json:"actorId"`
	ActorName string    `json:"actorName"`
	At        time.Time `json:"at"`
	Remarks   string    `json:"remarks,omitempty"`
}

type LineItemResponse struct {
	ID openapi_types.UUID `json:"id"`
	LineItemInput
	ActualQuantity   *int            `json:"actualQuantity"`
	ReceivedQuantity *int            `json:"receivedQuantity"`
	TotalPrice       decimal.Decimal `json:"totalPrice"`
}

type TransferResponse struct {
	ID                openapi_types.UUID       `json:"id"`
	OrderNumber       string                   `json:"orderNumber"`
	Type              string                   `json:"type"`
	Status            string                   `json:"status"`
	Priority          string                   `json:"priority"`
	Title             string                   `json:"title"`
	Description       string                   `json:"description,omitempty"`
	FromLocation      LocationSnapshotResponse `json:"fromLocation"`
	ToLocation        LocationSnapshotResponse `json:"toLocation"`
	PlannedDate       time.Time                `json:"plannedDate"`
	ActualShipDate    *time.Time               `json:"actualShipDate"`
	ActualReceiveDate *time.Time               `json:"actualReceiveDate"`
	Carrier           string                   `json:"carrier,omitempty"`
	TrackingNumber    string                   `json:"trackingNumber,omitempty"`
	EstimatedArrival  *time.Time               `json:"estimatedArrival"`
	TotalAmount       decimal.Decimal          `json:"totalAmount"`
	ShippingCost      *decimal.Decimal         `json:"shippingCost,omitempty"`
	InsuranceCost     *decimal.Decimal         `json:"insuranceCost,omitempty"`
	Applicant         *ActorSnapshotResponse   `json:"applicant,omitempty"`
	Approver          *ActorSnapshotResponse   `json:"approver,omitempty"`
	Operator          *ActorSnapshotResponse   `json:"operator,omitempty"`
	Items             []LineItemResponse       `json:"items"`
	Remarks           string                   `json:"remarks,omitempty"`
	AllowedActions    []string                 `json:"allowedActions"`
	CreatedBy         string                   `json:"createdBy"`
	CreatedAt         time.Time                `json:"createdAt"`
	UpdatedBy         string                   `json:"updatedBy"`
	UpdatedAt         time.Time                `json:"updatedAt"`
}

type TransferPageResponse struct {
	Items    []TransferResponse `json:"items"`
	Total    int                `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"pageSize"`
}

type EventResponse struct {
	Action string    `json:"action"`
	From   string    `json:"from"`
	To     string    `json:"to"`
	NoOp   bool      `json:"noOp"`
	At     time.Time `json:"at"`
}

type TransitionResponse struct {
	Transfer TransferResponse `json:"transfer"`
	Event    EventResponse    `json:"event"`
}

type BatchItemResponse struct {
	ID        openapi_types.UUID `json:"id"`
	Success   bool               `json:"success"`
	ErrorKind errs.Kind          `json:"errorKind,omitempty"`
	Error     string             `json:"error,omitempty"`
}

type BatchOutcomeResponse struct {
	Operation string              `json:"operation"`
	Attempted int                 `json:"attempted"`
	Applied   int                 `json:"applied"`
	Failed    int                 `json:"failed"`
	Results   []BatchItemResponse `json:"results"`
}

type StatisticsResponse struct {
	TotalTransfers     int             `json:"totalTransfers"`
	ByStatus           map[string]int  `json:"byStatus"`
	ByType             map[string]int  `json:"byType"`
	PendingApproval    int             `json:"pendingApproval"`
	InTransit          int             `json:"inTransit"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	CurrentMonthAmount decimal.Decimal `json:"currentMonthAmount"`
	AverageAmount      decimal.Decimal `json:"averageAmount"`
}

type LocationResponse struct {
	LocationSnapshotResponse
	Active bool `json:"active"`
}

type InventoryResponse struct {
	LocationID  openapi_types.UUID `json:"locationId"`
	ProductID   string             `json:"productId"`
	SKU         string             `json:"sku"`
	ProductName string             `json:"productName"`
	Unit        string             `json:"unit"`
	Quantity    int                `json:"quantity"`
	Reserved    int                `json:"reserved"`
	Available   int                `json:"available"`
}

func uuidFromAPI(name string, id openapi_types.UUID) (kernel.UUID, error) {
	u, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("%s: %w", name, err)
	}
	return u, nil
}

func itemsFromAPI(in []LineItemInput) []transfer.LineItemData {
	out := make([]transfer.LineItemData, 0, len(in))
	for _, i := range in {
		out = append(out, transfer.LineItemData{
			ProductID:       i.ProductID,
			SKU:             i.SKU,
			ProductName:     i.ProductName,
			Specification:   i.Specification,
			Unit:            i.Unit,
			PlannedQuantity: i.PlannedQuantity,
			UnitPrice:       i.UnitPrice,
			BatchNumber:     i.BatchNumber,
			ExpiryDate:      i.ExpiryDate,
			Remarks:         i.Remarks,
		})
	}
	return out
}

func (r TransferRequest) toInput() (commands.TransferInput, error) {
	orderType, typeErr := transfer.ParseType(r.Type)
	priority, priorityErr := transfer.ParsePriority(r.Priority)
	from, fromErr := uuidFromAPI("fromLocationId", r.FromLocationID)
	to, toErr := uuidFromAPI("toLocationId", r.ToLocationID)
	if err := errors.Join(typeErr, priorityErr, fromErr, toErr); err != nil {
		return commands.TransferInput{}, err
	}

	return commands.TransferInput{
		Type:             orderType,
		Priority:         priority,
		Title:            r.Title,
		Description:      r.Description,
		FromLocationID:   from,
		ToLocationID:     to,
		PlannedDate:      r.PlannedDate,
		Carrier:          r.Carrier,
		TrackingNumber:   r.TrackingNumber,
		EstimatedArrival: r.EstimatedArrival,
		ShippingCost:     r.ShippingCost,
		InsuranceCost:    r.InsuranceCost,
		Remarks:          r.Remarks,
		Items:            itemsFromAPI(r.Items),
	}, nil
}

func (p TransferPatch) toInput() (commands.TransferPatchInput, error) {
	in := commands.TransferPatchInput{
		Title:            p.Title,
		Description:      p.Description,
		PlannedDate:      p.PlannedDate,
		Carrier:          p.Carrier,
		TrackingNumber:   p.TrackingNumber,
		EstimatedArrival: p.EstimatedArrival,
		ShippingCost:     p.ShippingCost,
		InsuranceCost:    p.InsuranceCost,
		Remarks:          p.Remarks,
	}

	var errList []error
	if p.Type != nil {
		t, err := transfer.ParseType(*p.Type)
		errList = append(errList, err)
		in.Type = &t
	}
	if p.Priority != nil {
		pr, err := transfer.ParsePriority(*p.Priority)
		errList = append(errList, err)
		in.Priority = &pr
	}
	if p.FromLocationID != nil {
		id, err := uuidFromAPI("fromLocationId", *p.FromLocationID)
		errList = append(errList, err)
		in.FromLocationID = &id
	}
	if p.ToLocationID != nil {
		id, err := uuidFromAPI("toLocationId", *p.ToLocationID)
		errList = append(errList, err)
		in.ToLocationID = &id
	}
	if p.Items != nil {
		items := itemsFromAPI(*p.Items)
		in.Items = &items
	}
	return in, errors.Join(errList...)
}

func (r TransitionRequest) toArgs() (commands.TransitionArgs, error) {
	args := commands.TransitionArgs{Remarks: r.Remarks, TrackingNumber: r.TrackingNumber}
	if args.Remarks == "" {
		args.Remarks = r.Reason
	}

	var errList []error
	for i, in := range r.Receipts {
		id, err := uuidFromAPI("receipt item id", in.ItemID)
		if err != nil {
			errList = append(errList, fmt.Errorf("receipt %d: %w", i+1, err))
			continue
		}
		receipt, err := transfer.NewItemReceipt(id, in.ActualQuantity)
		if err != nil {
			errList = append(errList, fmt.Errorf("receipt %d: %w", i+1, err))
			continue
		}
		args.Receipts = append(args.Receipts, receipt)
	}
	return args, errors.Join(errList...)
}

func snapshotToAPI(s kernel.LocationSnapshot) LocationSnapshotResponse {
	return LocationSnapshotResponse{
		ID:           s.ID().Bytes(),
		Type:         s.Type().String(),
		Code:         s.Code(),
		Name:         s.Name(),
		Address:      s.Address(),
		ContactName:  s.Contact().Name,
		ContactPhone: s.Contact().Phone,
	}
}

func actorToAPI(s *kernel.ActorSnapshot) *ActorSnapshotResponse {
	if s == nil {
		return nil
	}
	return &ActorSnapshotResponse{ActorID: s.ActorID(), ActorName: s.ActorName(), At: s.At(), Remarks: s.Remarks()}
}

func transferToAPI(o *transfer.Order) TransferResponse {
	resp := TransferResponse{
		ID:                o.ID().Bytes(),
		OrderNumber:       o.Number(),
		Type:              o.Type().String(),
		Status:            o.Status().String(),
		Priority:          o.Priority().String(),
		Title:             o.Title(),
		Description:       o.Description(),
		FromLocation:      snapshotToAPI(o.From()),
		ToLocation:        snapshotToAPI(o.To()),
		PlannedDate:       o.PlannedDate(),
		ActualShipDate:    o.ActualShipDate(),
		ActualReceiveDate: o.ActualReceiveDate(),
		Carrier:           o.Carrier(),
		TrackingNumber:    o.TrackingNumber(),
		EstimatedArrival:  o.EstimatedArrival(),
		TotalAmount:       o.TotalAmount(),
		ShippingCost:      o.ShippingCost(),
		InsuranceCost:     o.InsuranceCost(),
		Applicant:         actorToAPI(o.Applicant()),
		Approver:          actorToAPI(o.Approver()),
		Operator:          actorToAPI(o.Operator()),
		Remarks:           o.Remarks(),
		AllowedActions:    make([]string, 0),
		CreatedBy:         o.CreatedBy().ID(),
		CreatedAt:         o.CreatedAt(),
		UpdatedBy:         o.UpdatedBy().ID(),
		UpdatedAt:         o.UpdatedAt(),
	}

	for _, a := range o.AllowedActions() {
		resp.AllowedActions = append(resp.AllowedActions, a.String())
	}
	for _, item := range o.Items() {
		d := item.Data()
		resp.Items = append(resp.Items, LineItemResponse{
			ID: item.ID().Bytes(),
			LineItemInput: LineItemInput{
				ProductID:       d.ProductID,
				SKU:             d.SKU,
				ProductName:     d.ProductName,
				Specification:   d.Specification,
				Unit:            d.Unit,
				PlannedQuantity: d.PlannedQuantity,
				UnitPrice:       d.UnitPrice,
				BatchNumber:     d.BatchNumber,
				ExpiryDate:      d.ExpiryDate,
				Remarks:         d.Remarks,
			},
			ActualQuantity:   item.ActualQuantity(),
			ReceivedQuantity: item.ReceivedQuantity(),
			TotalPrice:       item.TotalPrice(),
		})
	}
	return resp
}

func pageToAPI(p services.PagedResult) TransferPageResponse {
	resp := TransferPageResponse{
		Items:    make([]TransferResponse, 0, len(p.Items)),
		Total:    p.Total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}
	for _, o := range p.Items {
		resp.Items = append(resp.Items, transferToAPI(o))
	}
	return resp
}

func statisticsToAPI(s services.Statistics) StatisticsResponse {
	resp := StatisticsResponse{
		TotalTransfers:     s.TotalTransfers,
		ByStatus:           make(map[string]int, len(s.ByStatus)),
		ByType:             make(map[string]int, len(s.ByType)),
		PendingApproval:    s.PendingApproval,
		InTransit:          s.InTransit,
		TotalAmount:        s.TotalAmount,
		CurrentMonthAmount: s.CurrentMonthAmount,
		AverageAmount:      s.AverageAmount,
	}
	for status, n := range s.ByStatus {
		resp.ByStatus[status.String()] = n
	}
	for t, n := range s.ByType {
		resp.ByType[t.String()] = n
	}
	return resp
}

func outcomeToAPI(o commands.BatchOutcome) BatchOutcomeResponse {
	resp := BatchOutcomeResponse{
		Operation: o.Operation.String(),
		Attempted: o.Attempted,
		Applied:   o.Applied,
		Failed:    len(o.Failed()),
		Results:   make([]BatchItemResponse, 0, len(o.Results)),
	}
	for _, r := range o.Results {
		resp.Results = append(resp.Results, BatchItemResponse{
			ID:        r.ID.Bytes(),
			Success:   r.Success,
			ErrorKind: r.ErrorKind,
			Error:     r.Error,
		})
	}
	return resp
}

func locationToAPI(l *location.Location) LocationResponse {
	return LocationResponse{
		LocationSnapshotResponse: LocationSnapshotResponse{
			ID:           l.ID().Bytes(),
			Type:         l.Type().String(),
			Code:         l.Code(),
			Name:         l.Name(),
			Address:      l.Address(),
			ContactName:  l.Contact().Name,
			ContactPhone: l.Contact().Phone,
		},
		Active: l.IsActive(),
	}
}

func inventoryToAPI(s location.InventorySnapshot) InventoryResponse {
	return InventoryResponse{
		LocationID:  s.LocationID.Bytes(),
		ProductID:   s.ProductID,
		SKU:         s.SKU,
		ProductName: s.ProductName,
		Unit:        s.Unit,
		Quantity:    s.Quantity,
		Reserved:    s.Reserved,
		Available:   s.Available(),
	}
}
