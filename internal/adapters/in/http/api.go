package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ListTransfersParams are the query parameters of GET /transfers.
type ListTransfersParams struct {
	Search      *string             `form:"search,omitempty" json:"search,omitempty"`
	Status      *[]string           `form:"status,omitempty" json:"status,omitempty"`
	Type        *[]string           `form:"type,omitempty" json:"type,omitempty"`
	Priority    *[]string           `form:"priority,omitempty" json:"priority,omitempty"`
	PlannedFrom *openapi_types.Date `form:"plannedFrom,omitempty" json:"plannedFrom,omitempty"`
	PlannedTo   *openapi_types.Date `form:"plannedTo,omitempty" json:"plannedTo,omitempty"`
	Sort        *string             `form:"sort,omitempty" json:"sort,omitempty"`
	Order       *string             `form:"order,omitempty" json:"order,omitempty"`
	Page        *int                `form:"page,omitempty" json:"page,omitempty"`
	PageSize    *int                `form:"pageSize,omitempty" json:"pageSize,omitempty"`
}

// ListLocationsParams are the query parameters of GET /locations.
type ListLocationsParams struct {
	ActiveOnly *bool   `form:"activeOnly,omitempty" json:"activeOnly,omitempty"`
	Type       *string `form:"type,omitempty" json:"type,omitempty"`
}

// GetInventoryParams are the query parameters of GET /locations/{id}/inventory.
type GetInventoryParams struct {
	ProductId *string `form:"productId,omitempty" json:"productId,omitempty"` //nolint:revive // matches the document
}

// ServerInterface lists one method per operation in openapi.yaml.
type ServerInterface interface {
	ListTransfers(ctx echo.Context, params ListTransfersParams) error
	CreateTransfer(ctx echo.Context) error
	GetStatistics(ctx echo.Context) error
	BatchApply(ctx echo.Context) error
	GetTransfer(ctx echo.Context, id openapi_types.UUID) error
	UpdateTransfer(ctx echo.Context, id openapi_types.UUID) error
	DeleteTransfer(ctx echo.Context, id openapi_types.UUID) error
	TransitionTransfer(ctx echo.Context, id openapi_types.UUID, action string) error
	ListLocations(ctx echo.Context, params ListLocationsParams) error
	GetInventory(ctx echo.Context, id openapi_types.UUID, params GetInventoryParams) error
}

// ServerInterfaceWrapper binds path and query parameters before calling the server.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) ListTransfers(ctx echo.Context) error {
	var params ListTransfersParams
	query := ctx.QueryParams()

	bindings := []struct {
		name string
		dest any
	}{
		{"search", &params.Search},
		{"status", &params.Status},
		{"type", &params.Type},
		{"priority", &params.Priority},
		{"plannedFrom", &params.PlannedFrom},
		{"plannedTo", &params.PlannedTo},
		{"sort", &params.Sort},
		{"order", &params.Order},
		{"page", &params.Page},
		{"pageSize", &params.PageSize},
	}
	for _, b := range bindings {
		if err := runtime.BindQueryParameter("form", true, false, b.name, query, b.dest); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter "+b.name+": "+err.Error())
		}
	}

	return w.Handler.ListTransfers(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateTransfer(ctx echo.Context) error {
	return w.Handler.CreateTransfer(ctx)
}

func (w *ServerInterfaceWrapper) GetStatistics(ctx echo.Context) error {
	return w.Handler.GetStatistics(ctx)
}

func (w *ServerInterfaceWrapper) BatchApply(ctx echo.Context) error {
	return w.Handler.BatchApply(ctx)
}

func (w *ServerInterfaceWrapper) GetTransfer(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetTransfer(ctx, id)
}

func (w *ServerInterfaceWrapper) UpdateTransfer(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UpdateTransfer(ctx, id)
}

func (w *ServerInterfaceWrapper) DeleteTransfer(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.DeleteTransfer(ctx, id)
}

func (w *ServerInterfaceWrapper) TransitionTransfer(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}

	var action string
	err = runtime.BindStyledParameterWithOptions("simple", "action", ctx.Param("action"), &action,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter action: "+err.Error())
	}
	return w.Handler.TransitionTransfer(ctx, id, action)
}

func (w *ServerInterfaceWrapper) ListLocations(ctx echo.Context) error {
	var params ListLocationsParams
	query := ctx.QueryParams()

	if err := runtime.BindQueryParameter("form", true, false, "activeOnly", query, &params.ActiveOnly); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter activeOnly: "+err.Error())
	}
	if err := runtime.BindQueryParameter("form", true, false, "type", query, &params.Type); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter type: "+err.Error())
	}
	return w.Handler.ListLocations(ctx, params)
}

func (w *ServerInterfaceWrapper) GetInventory(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}

	var params GetInventoryParams
	if err = runtime.BindQueryParameter("form", true, false, "productId", ctx.QueryParams(), &params.ProductId); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter productId: "+err.Error())
	}
	return w.Handler.GetInventory(ctx, id, params)
}

func bindID(ctx echo.Context) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter id: "+err.Error())
	}
	return id, nil
}

// EchoRouter is the subset of echo used to register routes.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlersWithBaseURL mounts every operation under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	w := ServerInterfaceWrapper{Handler: si}

	router.GET(baseURL+"/transfers", w.ListTransfers)
	router.POST(baseURL+"/transfers", w.CreateTransfer)
	router.GET(baseURL+"/transfers/statistics", w.GetStatistics)
	router.POST(baseURL+"/transfers/batch", w.BatchApply)
	router.GET(baseURL+"/transfers/:id", w.GetTransfer)
	router.PUT(baseURL+"/transfers/:id", w.UpdateTransfer)
	router.DELETE(baseURL+"/transfers/:id", w.DeleteTransfer)
	router.POST(baseURL+"/transfers/:id/:action", w.TransitionTransfer)
	router.GET(baseURL+"/locations", w.ListLocations)
	router.GET(baseURL+"/locations/:id/inventory", w.GetInventory)
}
