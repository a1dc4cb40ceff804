package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"transferflow/internal/core/application/usecases/commands"
	"transferflow/internal/core/application/usecases/queries"
	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/core/domain/model/transfer"
	"transferflow/internal/core/domain/services"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	ActorIDHeader   = "X-Actor-Id"
	ActorNameHeader = "X-Actor-Name"
)

var _ ServerInterface = (*Server)(nil)

// Server implements ServerInterface on top of the transfer use cases.
type Server struct {
	// Command handlers
	createHandler     commands.CreateTransferCommandHandler
	updateHandler     commands.UpdateTransferCommandHandler
	deleteHandler     commands.DeleteTransferCommandHandler
	transitionHandler commands.TransitionTransferCommandHandler
	batchHandler      commands.BatchApplyCommandHandler

	// Query handlers
	getTransferHandler   queries.GetTransferQueryHandler
	getTransfersHandler  queries.GetTransfersQueryHandler
	getStatisticsHandler queries.GetStatisticsQueryHandler
	getLocationsHandler  queries.GetLocationsQueryHandler
	getInventoryHandler  queries.GetInventoryQueryHandler

	now func() time.Time
}

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	Create        commands.CreateTransferCommandHandler
	Update        commands.UpdateTransferCommandHandler
	Delete        commands.DeleteTransferCommandHandler
	Transition    commands.TransitionTransferCommandHandler
	Batch         commands.BatchApplyCommandHandler
	GetTransfer   queries.GetTransferQueryHandler
	GetTransfers  queries.GetTransfersQueryHandler
	GetStatistics queries.GetStatisticsQueryHandler
	GetLocations  queries.GetLocationsQueryHandler
	GetInventory  queries.GetInventoryQueryHandler
}

func NewServer(h Handlers) *Server {
	return &Server{
		createHandler:        h.Create,
		updateHandler:        h.Update,
		deleteHandler:        h.Delete,
		transitionHandler:    h.Transition,
		batchHandler:         h.Batch,
		getTransferHandler:   h.GetTransfer,
		getTransfersHandler:  h.GetTransfers,
		getStatisticsHandler: h.GetStatistics,
		getLocationsHandler:  h.GetLocations,
		getInventoryHandler:  h.GetInventory,
		now:                  time.Now,
	}
}

// actorFrom reads the caller from the actor headers; requests without them act as the system actor.
func actorFrom(ctx echo.Context) (kernel.Actor, error) {
	id := strings.TrimSpace(ctx.Request().Header.Get(ActorIDHeader))
	if id == "" {
		return kernel.SystemActor(), nil
	}
	name := strings.TrimSpace(ctx.Request().Header.Get(ActorNameHeader))
	if name == "" {
		name = id
	}
	return kernel.NewActor(id, name)
}

// ListTransfers handles GET /api/v1/transfers.
func (s *Server) ListTransfers(ctx echo.Context, params ListTransfersParams) error {
	filter, err := filterFromParams(params)
	if err != nil {
		return badRequest(ctx, "Invalid filter", err)
	}

	sort := services.Sort{Direction: services.Asc}
	if params.Sort != nil {
		sort.Field = *params.Sort
	}
	if params.Order != nil {
		switch services.SortDirection(strings.ToLower(*params.Order)) {
		case services.Asc:
		case services.Desc:
			sort.Direction = services.Desc
		default:
			return badRequest(ctx, "Invalid order: "+*params.Order, nil)
		}
	}

	var page services.Pagination
	if params.Page != nil {
		page.Page = *params.Page
	}
	if params.PageSize != nil {
		page.PageSize = *params.PageSize
	}

	result, err := s.getTransfersHandler.Handle(ctx.Request().Context(),
		queries.NewGetTransfersQuery(filter, sort, page))
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, pageToAPI(result))
}

func filterFromParams(params ListTransfersParams) (services.Filter, error) {
	var (
		filter  services.Filter
		errList []error
	)
	if params.Search != nil {
		filter.Search = *params.Search
	}
	if params.Status != nil {
		for _, raw := range *params.Status {
			st, err := transfer.ParseStatus(raw)
			errList = append(errList, err)
			filter.Statuses = append(filter.Statuses, st)
		}
	}
	if params.Type != nil {
		for _, raw := range *params.Type {
			t, err := transfer.ParseType(raw)
			errList = append(errList, err)
			filter.Types = append(filter.Types, t)
		}
	}
	if params.Priority != nil {
		for _, raw := range *params.Priority {
			p, err := transfer.ParsePriority(raw)
			errList = append(errList, err)
			filter.Priorities = append(filter.Priorities, p)
		}
	}
	if params.PlannedFrom != nil {
		from := params.PlannedFrom.Time
		filter.PlannedFrom = &from
	}
	if params.PlannedTo != nil {
		to := params.PlannedTo.Time
		filter.PlannedTo = &to
	}
	return filter, errors.Join(errList...)
}

// CreateTransfer handles POST /api/v1/transfers.
func (s *Server) CreateTransfer(ctx echo.Context) error {
	var body TransferRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body", nil)
	}

	actor, err := actorFrom(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid actor", err)
	}
	input, err := body.toInput()
	if err != nil {
		return badRequest(ctx, "Invalid transfer data", err)
	}

	cmd, err := commands.NewCreateTransferCommand(kernel.NewUUID(), actor, input)
	if err != nil {
		return badRequest(ctx, "Invalid transfer data", err)
	}

	order, err := s.createHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, transferToAPI(order))
}

// GetStatistics handles GET /api/v1/transfers/statistics.
func (s *Server) GetStatistics(ctx echo.Context) error {
	stats, err := s.getStatisticsHandler.Handle(ctx.Request().Context(), queries.NewGetStatisticsQuery(s.now()))
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, statisticsToAPI(stats))
}

// BatchApply handles POST /api/v1/transfers/batch.
func (s *Server) BatchApply(ctx echo.Context) error {
	var body BatchRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body", nil)
	}

	actor, err := actorFrom(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid actor", err)
	}
	op, err := commands.ParseBatchOperation(body.Operation)
	if err != nil {
		return badRequest(ctx, "Invalid operation", err)
	}

	ids := make([]kernel.UUID, 0, len(body.IDs))
	for _, raw := range body.IDs {
		id, idErr := uuidFromAPI("id", raw)
		if idErr != nil {
			return badRequest(ctx, "Invalid id", idErr)
		}
		ids = append(ids, id)
	}

	cmd, err := commands.NewBatchApplyCommand(op, ids, actor, body.Remarks)
	if err != nil {
		return badRequest(ctx, "Invalid batch request", err)
	}

	outcome, err := s.batchHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, outcomeToAPI(outcome))
}

// GetTransfer handles GET /api/v1/transfers/{id}.
func (s *Server) GetTransfer(ctx echo.Context, id openapi_types.UUID) error {
	orderID, err := uuidFromAPI("id", id)
	if err != nil {
		return badRequest(ctx, "Invalid id", err)
	}
	query, err := queries.NewGetTransferQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid id", err)
	}

	order, err := s.getTransferHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, transferToAPI(order))
}

// UpdateTransfer handles PUT /api/v1/transfers/{id}.
func (s *Server) UpdateTransfer(ctx echo.Context, id openapi_types.UUID) error {
	var body TransferPatch
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body", nil)
	}

	orderID, err := uuidFromAPI("id", id)
	if err != nil {
		return badRequest(ctx, "Invalid id", err)
	}
	actor, err := actorFrom(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid actor", err)
	}
	patch, err := body.toInput()
	if err != nil {
		return badRequest(ctx, "Invalid transfer data", err)
	}

	cmd, err := commands.NewUpdateTransferCommand(orderID, actor, patch)
	if err != nil {
		return badRequest(ctx, "Invalid transfer data", err)
	}

	order, err := s.updateHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, transferToAPI(order))
}

// DeleteTransfer handles DELETE /api/v1/transfers/{id}.
func (s *Server) DeleteTransfer(ctx echo.Context, id openapi_types.UUID) error {
	orderID, err := uuidFromAPI("id", id)
	if err != nil {
		return badRequest(ctx, "Invalid id", err)
	}
	cmd, err := commands.NewDeleteTransferCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid id", err)
	}

	if err = s.deleteHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// TransitionTransfer handles POST /api/v1/transfers/{id}/{action}.
func (s *Server) TransitionTransfer(ctx echo.Context, id openapi_types.UUID, action string) error {
	var body TransitionRequest
	if ctx.Request().ContentLength != 0 {
		if err := ctx.Bind(&body); err != nil {
			return badRequest(ctx, "Invalid request body", nil)
		}
	}

	orderID, err := uuidFromAPI("id", id)
	if err != nil {
		return badRequest(ctx, "Invalid id", err)
	}
	act, err := transfer.ParseAction(action)
	if err != nil {
		return badRequest(ctx, "Invalid action", err)
	}
	actor, err := actorFrom(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid actor", err)
	}
	args, err := body.toArgs()
	if err != nil {
		return badRequest(ctx, "Invalid receipts", err)
	}

	cmd, err := commands.NewTransitionTransferCommand(orderID, act, actor, args)
	if err != nil {
		return badRequest(ctx, "Invalid transition", err)
	}

	result, err := s.transitionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, TransitionResponse{
		Transfer: transferToAPI(result.Order),
		Event: EventResponse{
			Action: result.Event.Action.String(),
			From:   result.Event.From.String(),
			To:     result.Event.To.String(),
			NoOp:   result.Event.NoOp,
			At:     result.Event.At,
		},
	})
}

// ListLocations handles GET /api/v1/locations.
func (s *Server) ListLocations(ctx echo.Context, params ListLocationsParams) error {
	activeOnly := params.ActiveOnly != nil && *params.ActiveOnly
	locationType := kernel.UnknownLocationType
	if params.Type != nil {
		t, err := kernel.ParseLocationType(*params.Type)
		if err != nil {
			return badRequest(ctx, "Invalid location type", err)
		}
		locationType = t
	}

	locations, err := s.getLocationsHandler.Handle(ctx.Request().Context(),
		queries.NewGetLocationsQuery(activeOnly, locationType))
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]LocationResponse, len(locations))
	for i, l := range locations {
		response[i] = locationToAPI(l)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetInventory handles GET /api/v1/locations/{id}/inventory.
func (s *Server) GetInventory(ctx echo.Context, id openapi_types.UUID, params GetInventoryParams) error {
	locationID, err := uuidFromAPI("id", id)
	if err != nil {
		return badRequest(ctx, "Invalid id", err)
	}
	productID := ""
	if params.ProductId != nil {
		productID = *params.ProductId
	}

	query, err := queries.NewGetInventoryQuery(locationID, productID)
	if err != nil {
		return badRequest(ctx, "Invalid inventory query", err)
	}

	records, err := s.getInventoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]InventoryResponse, len(records))
	for i, r := range records {
		response[i] = inventoryToAPI(r)
	}
	return ctx.JSON(http.StatusOK, response)
}
