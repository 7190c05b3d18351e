package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/generated/servers"
)

// Use case ports the server drives. The command and query handlers satisfy them directly.
type (
	CreateShipmentHandler interface {
		Handle(ctx context.Context, cmd commands.CreateShipmentCommand) (*shipment.Shipment, error)
	}
	AppendStatusUpdateHandler interface {
		Handle(ctx context.Context, cmd commands.AppendStatusUpdateCommand) (shipment.StatusEntry, error)
	}
	DeleteShipmentHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteShipmentCommand) error
	}
	GetShipmentByIDHandler interface {
		Handle(ctx context.Context, query queries.GetShipmentByIDQuery) (queries.ShipmentResponse, error)
	}
	GetShipmentByTrackingCodeHandler interface {
		Handle(ctx context.Context, query queries.GetShipmentByTrackingCodeQuery) (queries.ShipmentResponse, error)
	}
	ListShipmentsByCustomerEmailHandler interface {
		Handle(ctx context.Context, query queries.ListShipmentsByCustomerEmailQuery) ([]queries.ShipmentResponse, error)
	}
	ListAllShipmentsHandler interface {
		Handle(ctx context.Context, query queries.ListAllShipmentsQuery) ([]queries.ShipmentResponse, error)
	}
)

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	CreateShipment    CreateShipmentHandler
	AppendStatus      AppendStatusUpdateHandler
	DeleteShipment    DeleteShipmentHandler
	GetByID           GetShipmentByIDHandler
	GetByTrackingCode GetShipmentByTrackingCodeHandler
	ListByCustomer    ListShipmentsByCustomerEmailHandler
	ListAll           ListAllShipmentsHandler
}

// Server implements servers.ServerInterface on top of the shipment use cases.
// It only translates between the wire model and commands or queries; authorisation is
// decided by the use cases from the caller placed in the request by Authenticate.
type Server struct {
	h Handlers
}

var _ servers.ServerInterface = (*Server)(nil)

func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

// CreateShipment handles POST /api/v1/shipments.
func (s *Server) CreateShipment(ctx echo.Context) error {
	var body servers.NewShipment
	if err := ctx.Bind(&body); err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewCreateShipmentCommand(
		CallerFromContext(ctx.Request().Context()),
		body.SourcePostalCode,
		body.DestinationPostalCode,
		decimal.NewFromFloat(body.WeightKg),
		string(body.CustomerEmail),
		body.CustomerName,
	)
	if err != nil {
		return writeUseCaseError(ctx, err)
	}

	created, err := s.h.CreateShipment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeUseCaseError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toShipment(queries.NewShipmentResponse(created)))
}

// ListShipments handles GET /api/v1/shipments, optionally narrowed to one customer.
func (s *Server) ListShipments(ctx echo.Context, params servers.ListShipmentsParams) error {
	caller := CallerFromContext(ctx.Request().Context())

	if params.CustomerEmail != nil {
		query, err := queries.NewListShipmentsByCustomerEmailQuery(caller, string(*params.CustomerEmail))
		if err != nil {
			return writeUseCaseError(ctx, err)
		}
		list, err := s.h.ListByCustomer.Handle(ctx.Request().Context(), query)
		if err != nil {
			return writeUseCaseError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, toShipments(list))
	}

	list, err := s.h.ListAll.Handle(ctx.Request().Context(), queries.NewListAllShipmentsQuery(caller))
	if err != nil {
		return writeUseCaseError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toShipments(list))
}

// GetShipment handles GET /api/v1/shipments/{shipmentId}.
func (s *Server) GetShipment(ctx echo.Context, shipmentID servers.ShipmentId) error {
	query, err := queries.NewGetShipmentByIDQuery(CallerFromContext(ctx.Request().Context()), shipmentID)
	if err != nil {
		return writeUseCaseError(ctx, err)
	}

	found, err := s.h.GetByID.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeUseCaseError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toShipment(found))
}

// DeleteShipment handles DELETE /api/v1/shipments/{shipmentId}.
func (s *Server) DeleteShipment(ctx echo.Context, shipmentID servers.ShipmentId) error {
	cmd, err := commands.NewDeleteShipmentCommand(CallerFromContext(ctx.Request().Context()), shipmentID)
	if err != nil {
		return writeUseCaseError(ctx, err)
	}

	if err = s.h.DeleteShipment.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeUseCaseError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AppendShipmentStatus handles POST /api/v1/shipments/{shipmentId}/status.
func (s *Server) AppendShipmentStatus(ctx echo.Context, shipmentID servers.ShipmentId) error {
	var body servers.NewStatusEntry
	if err := ctx.Bind(&body); err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewAppendStatusUpdateCommand(
		CallerFromContext(ctx.Request().Context()),
		shipmentID,
		body.Status,
		deref(body.Source),
		deref(body.Destination),
	)
	if err != nil {
		return writeUseCaseError(ctx, err)
	}

	entry, err := s.h.AppendStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeUseCaseError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toStatusEntry(queries.NewStatusEntryResponse(entry)))
}

// ListMyShipments handles GET /api/v1/customers/me/shipments.
func (s *Server) ListMyShipments(ctx echo.Context) error {
	query, err := queries.NewMyShipmentsQuery(CallerFromContext(ctx.Request().Context()))
	if err != nil {
		return writeUseCaseError(ctx, err)
	}

	list, err := s.h.ListByCustomer.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeUseCaseError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toShipments(list))
}

// TrackShipment handles GET /api/v1/tracking/{trackingCode}. No token is needed.
func (s *Server) TrackShipment(ctx echo.Context, trackingCode servers.TrackingCode) error {
	query, err := queries.NewGetShipmentByTrackingCodeQuery(trackingCode)
	if err != nil {
		return writeUseCaseError(ctx, err)
	}

	found, err := s.h.GetByTrackingCode.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeUseCaseError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toShipment(found))
}

func toShipments(list []queries.ShipmentResponse) []servers.Shipment {
	out := make([]servers.Shipment, 0, len(list))
	for _, item := range list {
		out = append(out, toShipment(item))
	}
	return out
}

func toShipment(r queries.ShipmentResponse) servers.Shipment {
	history := make([]servers.StatusEntry, 0, len(r.StatusHistory))
	for _, entry := range r.StatusHistory {
		history = append(history, toStatusEntry(entry))
	}

	return servers.Shipment{
		Id:            r.ID,
		TrackingCode:  r.TrackingCode,
		Source:        r.Source,
		Destination:   r.Destination,
		DistanceKm:    r.DistanceKm.String(),
		WeightKg:      r.WeightKg.String(),
		Price:         r.Price.StringFixed(2),
		CustomerEmail: openapi_types.Email(r.CustomerEmail),
		CustomerName:  r.CustomerName,
		CreatedAt:     r.CreatedAt,
		StatusHistory: history,
	}
}

func toStatusEntry(r queries.StatusEntryResponse) servers.StatusEntry {
	return servers.StatusEntry{
		Id:          r.ID,
		Status:      r.Status,
		Source:      optional(r.Source),
		Destination: optional(r.Destination),
		OccurredAt:  r.OccurredAt,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
