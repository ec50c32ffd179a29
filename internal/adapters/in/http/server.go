// Package http exposes the tracking use cases over a thin echo server.
// Handlers bind, delegate to command/query handlers and translate errors to
// status codes; no business rules live here.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/tracking"
	"parceltrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createTrackingItemHandler        commands.CreateTrackingItemCommandHandler
	updateTrackingStatusHandler      commands.UpdateTrackingStatusCommandHandler
	splitPieceHandler                commands.SplitPieceCommandHandler
	deletePieceHandler               commands.DeletePieceCommandHandler
	requestReturnHandler             commands.RequestReturnCommandHandler
	cancelReturnHandler              commands.CancelReturnCommandHandler
	createBoxHandler                 commands.CreateBoxCommandHandler
	addPieceToBoxHandler             commands.AddPieceToBoxCommandHandler
	removePieceFromBoxHandler        commands.RemovePieceFromBoxCommandHandler
	createShipmentHandler            commands.CreateShipmentCommandHandler
	addBoxToShipmentHandler          commands.AddBoxToShipmentCommandHandler
	removeBoxFromShipmentHandler     commands.RemoveBoxFromShipmentCommandHandler
	commitShipmentHandler            commands.CommitShipmentCommandHandler
	deleteShipmentHandler            commands.DeleteShipmentCommandHandler
	createLotHandler                 commands.CreateLotCommandHandler
	assignBoxToLotHandler            commands.AssignBoxToLotCommandHandler
	createPackBoxHandler             commands.CreatePackBoxCommandHandler
	addItemToPackBoxHandler          commands.AddItemToPackBoxCommandHandler
	createDeliveryHandler            commands.CreateDeliveryCommandHandler
	addPackBoxToDeliveryHandler      commands.AddPackBoxToDeliveryCommandHandler
	commitDeliveryHandler            commands.CommitDeliveryCommandHandler
	removePackBoxFromDeliveryHandler commands.RemovePackBoxFromDeliveryCommandHandler
	deleteDeliveryHandler            commands.DeleteDeliveryCommandHandler

	// Query handlers
	getTrackingItemHandler   queries.GetTrackingItemByNumberQueryHandler
	listTrackingItemsHandler queries.GetTrackingItemsByStatusQueryHandler
	shipmentManifestHandler  queries.GetShipmentManifestQueryHandler
	lotWeightRollupHandler   queries.GetLotWeightRollupQueryHandler
	failedJobsHandler        queries.GetFailedJobsQueryHandler
}

// ServerHandlers bundles the use case handlers the server exposes.
type ServerHandlers struct {
	CreateTrackingItem        commands.CreateTrackingItemCommandHandler
	UpdateTrackingStatus      commands.UpdateTrackingStatusCommandHandler
	SplitPiece                commands.SplitPieceCommandHandler
	DeletePiece               commands.DeletePieceCommandHandler
	RequestReturn             commands.RequestReturnCommandHandler
	CancelReturn              commands.CancelReturnCommandHandler
	CreateBox                 commands.CreateBoxCommandHandler
	AddPieceToBox             commands.AddPieceToBoxCommandHandler
	RemovePieceFromBox        commands.RemovePieceFromBoxCommandHandler
	CreateShipment            commands.CreateShipmentCommandHandler
	AddBoxToShipment          commands.AddBoxToShipmentCommandHandler
	RemoveBoxFromShipment     commands.RemoveBoxFromShipmentCommandHandler
	CommitShipment            commands.CommitShipmentCommandHandler
	DeleteShipment            commands.DeleteShipmentCommandHandler
	CreateLot                 commands.CreateLotCommandHandler
	AssignBoxToLot            commands.AssignBoxToLotCommandHandler
	CreatePackBox             commands.CreatePackBoxCommandHandler
	AddItemToPackBox          commands.AddItemToPackBoxCommandHandler
	CreateDelivery            commands.CreateDeliveryCommandHandler
	AddPackBoxToDelivery      commands.AddPackBoxToDeliveryCommandHandler
	CommitDelivery            commands.CommitDeliveryCommandHandler
	RemovePackBoxFromDelivery commands.RemovePackBoxFromDeliveryCommandHandler
	DeleteDelivery            commands.DeleteDeliveryCommandHandler

	GetTrackingItem   queries.GetTrackingItemByNumberQueryHandler
	ListTrackingItems queries.GetTrackingItemsByStatusQueryHandler
	ShipmentManifest  queries.GetShipmentManifestQueryHandler
	LotWeightRollup   queries.GetLotWeightRollupQueryHandler
	FailedJobs        queries.GetFailedJobsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers ServerHandlers) *Server {
	return &Server{
		createTrackingItemHandler:        handlers.CreateTrackingItem,
		updateTrackingStatusHandler:      handlers.UpdateTrackingStatus,
		splitPieceHandler:                handlers.SplitPiece,
		deletePieceHandler:               handlers.DeletePiece,
		requestReturnHandler:             handlers.RequestReturn,
		cancelReturnHandler:              handlers.CancelReturn,
		createBoxHandler:                 handlers.CreateBox,
		addPieceToBoxHandler:             handlers.AddPieceToBox,
		removePieceFromBoxHandler:        handlers.RemovePieceFromBox,
		createShipmentHandler:            handlers.CreateShipment,
		addBoxToShipmentHandler:          handlers.AddBoxToShipment,
		removeBoxFromShipmentHandler:     handlers.RemoveBoxFromShipment,
		commitShipmentHandler:            handlers.CommitShipment,
		deleteShipmentHandler:            handlers.DeleteShipment,
		createLotHandler:                 handlers.CreateLot,
		assignBoxToLotHandler:            handlers.AssignBoxToLot,
		createPackBoxHandler:             handlers.CreatePackBox,
		addItemToPackBoxHandler:          handlers.AddItemToPackBox,
		createDeliveryHandler:            handlers.CreateDelivery,
		addPackBoxToDeliveryHandler:      handlers.AddPackBoxToDelivery,
		commitDeliveryHandler:            handlers.CommitDelivery,
		removePackBoxFromDeliveryHandler: handlers.RemovePackBoxFromDelivery,
		deleteDeliveryHandler:            handlers.DeleteDelivery,
		getTrackingItemHandler:           handlers.GetTrackingItem,
		listTrackingItemsHandler:         handlers.ListTrackingItems,
		shipmentManifestHandler:          handlers.ShipmentManifest,
		lotWeightRollupHandler:           handlers.LotWeightRollup,
		failedJobsHandler:                handlers.FailedJobs,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/tracking-items", s.CreateTrackingItem)
	api.GET("/tracking-items", s.ListTrackingItems)
	api.GET("/tracking-items/:number", s.GetTrackingItem)
	api.POST("/tracking-items/:number/status", s.UpdateTrackingStatus)
	api.POST("/tracking-items/:number/pieces", s.SplitPiece)
	api.DELETE("/tracking-items/:number/pieces/:pieceId", s.DeletePiece)
	api.POST("/tracking-items/:number/return", s.RequestReturn)
	api.DELETE("/tracking-items/:number/return", s.CancelReturn)

	api.POST("/boxes", s.CreateBox)
	api.POST("/boxes/:code/pieces", s.AddPieceToBox)
	api.DELETE("/boxes/pieces", s.RemovePieceFromBox)
	api.POST("/boxes/:code/lot", s.AssignBoxToLot)

	api.POST("/shipments", s.CreateShipment)
	api.GET("/shipments/:code/manifest", s.GetShipmentManifest)
	api.POST("/shipments/:code/boxes", s.AddBoxToShipment)
	api.DELETE("/shipments/boxes/:boxCode", s.RemoveBoxFromShipment)
	api.POST("/shipments/:code/commit", s.CommitShipment)
	api.DELETE("/shipments/:code", s.DeleteShipment)

	api.POST("/lots", s.CreateLot)
	api.GET("/lots/:label/weights", s.GetLotWeightRollup)

	api.POST("/pack-boxes", s.CreatePackBox)
	api.POST("/pack-boxes/:code/items", s.AddItemToPackBox)

	api.POST("/deliveries", s.CreateDelivery)
	api.POST("/deliveries/:code/pack-boxes", s.AddPackBoxToDelivery)
	api.DELETE("/deliveries/:code/pack-boxes/:packBoxCode", s.RemovePackBoxFromDelivery)
	api.POST("/deliveries/:code/commit", s.CommitDelivery)
	api.DELETE("/deliveries/:code", s.DeleteDelivery)

	api.GET("/failed-jobs", s.GetFailedJobs)
}

// apiError is the uniform error body.
type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, apiError{Code: http.StatusBadRequest, Message: message})
}

// respondError maps application errors to status codes: validation problems
// are 400, missing objects 404, natural-key collisions 409 and rejected
// domain transitions 422.
func respondError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrObjectAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid):
		status = http.StatusUnprocessableEntity
	}

	return ctx.JSON(status, apiError{Code: status, Message: err.Error()})
}

type newTrackingItemRequest struct {
	TrackingNumber string `json:"trackingNumber"`
	AlternateRef   string `json:"alternateRef"`
	ChainKey       string `json:"chainKey"`
	AgentCode      string `json:"agentCode"`
}

// CreateTrackingItem handles POST /api/v1/tracking-items.
func (s *Server) CreateTrackingItem(ctx echo.Context) error {
	var req newTrackingItemRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateTrackingItemCommand(
		kernel.NewUUID(), req.TrackingNumber, req.AlternateRef, req.ChainKey, req.AgentCode)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.createTrackingItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

type updateStatusRequest struct {
	Status    string   `json:"status"`
	PieceKeys []string `json:"pieceKeys,omitempty"`
}

// UpdateTrackingStatus handles POST /api/v1/tracking-items/:number/status.
func (s *Server) UpdateTrackingStatus(ctx echo.Context) error {
	var req updateStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := tracking.StageFromString(req.Status)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewUpdateTrackingStatusCommand(ctx.Param("number"), target, req.PieceKeys)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.updateTrackingStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type splitPieceRequest struct {
	Information string `json:"information"`
}

// SplitPiece handles POST /api/v1/tracking-items/:number/pieces.
func (s *Server) SplitPiece(ctx echo.Context) error {
	var req splitPieceRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSplitPieceCommand(ctx.Param("number"), req.Information)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.splitPieceHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// DeletePiece handles DELETE /api/v1/tracking-items/:number/pieces/:pieceId.
func (s *Server) DeletePiece(ctx echo.Context) error {
	pieceID, err := kernel.UUIDFromString(ctx.Param("pieceId"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewDeletePieceCommand(ctx.Param("number"), pieceID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.deletePieceHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RequestReturn handles POST /api/v1/tracking-items/:number/return.
func (s *Server) RequestReturn(ctx echo.Context) error {
	cmd, err := commands.NewRequestReturnCommand(ctx.Param("number"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.requestReturnHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelReturn handles DELETE /api/v1/tracking-items/:number/return.
func (s *Server) CancelReturn(ctx echo.Context) error {
	cmd, err := commands.NewCancelReturnCommand(ctx.Param("number"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.cancelReturnHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetTrackingItem handles GET /api/v1/tracking-items/:number.
func (s *Server) GetTrackingItem(ctx echo.Context) error {
	query, err := queries.NewGetTrackingItemByNumberQuery(ctx.Param("number"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	item, err := s.getTrackingItemHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toTrackingItemJSON(item))
}

// ListTrackingItems handles GET /api/v1/tracking-items.
func (s *Server) ListTrackingItems(ctx echo.Context) error {
	status, err := tracking.StageFromString(ctx.QueryParam("status"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	from, err := parseDateParam(ctx.QueryParam("from"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	to, err := parseDateParam(ctx.QueryParam("to"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetTrackingItemsByStatusQuery(
		status, ctx.QueryParam("chainKey"), ctx.QueryParam("agentCode"), from, to)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	entries, err := s.listTrackingItemsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]trackingItemListJSON, len(entries))
	for i, entry := range entries {
		response[i] = trackingItemListJSON{
			TrackingNumber: entry.TrackingNumber,
			AlternateRef:   entry.AlternateRef,
			ChainKey:       entry.ChainKey,
			AgentCode:      entry.AgentCode,
			Status:         entry.Status.String(),
			ReturnHeld:     entry.ReturnHeld,
			RegisteredAt:   entry.RegisteredAt,
			PieceCount:     entry.PieceCount,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

type newBoxRequest struct {
	Code     string  `json:"code"`
	WeightKg float64 `json:"weightKg"`
}

// CreateBox handles POST /api/v1/boxes.
func (s *Server) CreateBox(ctx echo.Context) error {
	var req newBoxRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateBoxCommand(kernel.NewUUID(), req.Code, req.WeightKg)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.createBoxHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

type packPiecesRequest struct {
	TrackingNumber string   `json:"trackingNumber"`
	PieceKeys      []string `json:"pieceKeys"`
}

// AddPieceToBox handles POST /api/v1/boxes/:code/pieces.
func (s *Server) AddPieceToBox(ctx echo.Context) error {
	var req packPiecesRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAddPieceToBoxCommand(req.TrackingNumber, ctx.Param("code"), req.PieceKeys)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.addPieceToBoxHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemovePieceFromBox handles DELETE /api/v1/boxes/pieces.
func (s *Server) RemovePieceFromBox(ctx echo.Context) error {
	var req packPiecesRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRemovePieceFromBoxCommand(req.TrackingNumber, req.PieceKeys)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.removePieceFromBoxHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type assignLotRequest struct {
	LotID string `json:"lotId"`
}

// AssignBoxToLot handles POST /api/v1/boxes/:code/lot.
func (s *Server) AssignBoxToLot(ctx echo.Context) error {
	var req assignLotRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	lotID, err := kernel.UUIDFromString(req.LotID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewAssignBoxToLotCommand(ctx.Param("code"), lotID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.assignBoxToLotHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type newCodeRequest struct {
	Code string `json:"code"`
}

// CreateShipment handles POST /api/v1/shipments.
func (s *Server) CreateShipment(ctx echo.Context) error {
	var req newCodeRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), req.Code)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.createShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

type boxCodeRequest struct {
	BoxCode string `json:"boxCode"`
}

// AddBoxToShipment handles POST /api/v1/shipments/:code/boxes.
func (s *Server) AddBoxToShipment(ctx echo.Context) error {
	var req boxCodeRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAddBoxToShipmentCommand(req.BoxCode, ctx.Param("code"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.addBoxToShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveBoxFromShipment handles DELETE /api/v1/shipments/boxes/:boxCode.
func (s *Server) RemoveBoxFromShipment(ctx echo.Context) error {
	cmd, err := commands.NewRemoveBoxFromShipmentCommand(ctx.Param("boxCode"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.removeBoxFromShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CommitShipment handles POST /api/v1/shipments/:code/commit.
func (s *Server) CommitShipment(ctx echo.Context) error {
	cmd, err := commands.NewCommitShipmentCommand(ctx.Param("code"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.commitShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteShipment handles DELETE /api/v1/shipments/:code.
func (s *Server) DeleteShipment(ctx echo.Context) error {
	cmd, err := commands.NewDeleteShipmentCommand(ctx.Param("code"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.deleteShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetShipmentManifest handles GET /api/v1/shipments/:code/manifest.
func (s *Server) GetShipmentManifest(ctx echo.Context) error {
	query, err := queries.NewGetShipmentManifestQuery(ctx.Param("code"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	manifest, err := s.shipmentManifestHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, manifest)
}

type newLotRequest struct {
	Label string `json:"label"`
	Index int    `json:"index"`
}

// CreateLot handles POST /api/v1/lots.
func (s *Server) CreateLot(ctx echo.Context) error {
	var req newLotRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateLotCommand(kernel.NewUUID(), req.Label, req.Index)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.createLotHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// GetLotWeightRollup handles GET /api/v1/lots/:label/weights.
func (s *Server) GetLotWeightRollup(ctx echo.Context) error {
	query, err := queries.NewGetLotWeightRollupQuery(ctx.Param("label"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	entries, err := s.lotWeightRollupHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, entries)
}

// CreatePackBox handles POST /api/v1/pack-boxes.
func (s *Server) CreatePackBox(ctx echo.Context) error {
	var req newCodeRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreatePackBoxCommand(kernel.NewUUID(), req.Code)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.createPackBoxHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

type packItemRequest struct {
	TrackingNumber string `json:"trackingNumber"`
}

// AddItemToPackBox handles POST /api/v1/pack-boxes/:code/items.
func (s *Server) AddItemToPackBox(ctx echo.Context) error {
	var req packItemRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAddItemToPackBoxCommand(req.TrackingNumber, ctx.Param("code"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.addItemToPackBoxHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateDelivery handles POST /api/v1/deliveries.
func (s *Server) CreateDelivery(ctx echo.Context) error {
	var req newCodeRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateDeliveryCommand(kernel.NewUUID(), req.Code)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.createDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

type packBoxCodeRequest struct {
	PackBoxCode string `json:"packBoxCode"`
}

// AddPackBoxToDelivery handles POST /api/v1/deliveries/:code/pack-boxes.
func (s *Server) AddPackBoxToDelivery(ctx echo.Context) error {
	var req packBoxCodeRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAddPackBoxToDeliveryCommand(req.PackBoxCode, ctx.Param("code"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.addPackBoxToDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemovePackBoxFromDelivery handles DELETE /api/v1/deliveries/:code/pack-boxes/:packBoxCode.
func (s *Server) RemovePackBoxFromDelivery(ctx echo.Context) error {
	cmd, err := commands.NewRemovePackBoxFromDeliveryCommand(ctx.Param("packBoxCode"), ctx.Param("code"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.removePackBoxFromDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CommitDelivery handles POST /api/v1/deliveries/:code/commit.
func (s *Server) CommitDelivery(ctx echo.Context) error {
	cmd, err := commands.NewCommitDeliveryCommand(ctx.Param("code"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.commitDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteDelivery handles DELETE /api/v1/deliveries/:code.
func (s *Server) DeleteDelivery(ctx echo.Context) error {
	cmd, err := commands.NewDeleteDeliveryCommand(ctx.Param("code"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.deleteDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetFailedJobs handles GET /api/v1/failed-jobs.
func (s *Server) GetFailedJobs(ctx echo.Context) error {
	limit, _ := strconv.Atoi(ctx.QueryParam("limit"))
	query := queries.NewGetFailedJobsQuery(limit)

	jobs, err := s.failedJobsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, jobs)
}

type trackingItemJSON struct {
	TrackingNumber  string      `json:"trackingNumber"`
	AlternateRef    string      `json:"alternateRef,omitempty"`
	ChainKey        string      `json:"chainKey,omitempty"`
	AgentCode       string      `json:"agentCode,omitempty"`
	Status          string      `json:"status"`
	ReturnHeld      bool        `json:"returnHeld"`
	RegisteredAt    *time.Time  `json:"registeredAt,omitempty"`
	DeliveredAt     *time.Time  `json:"deliveredAt,omitempty"`
	ReturnRequestAt *time.Time  `json:"returnRequestAt,omitempty"`
	Pieces          []pieceJSON `json:"pieces"`
}

type pieceJSON struct {
	Information    string     `json:"information"`
	Boxed          bool       `json:"boxed"`
	BoxedAt        *time.Time `json:"boxedAt,omitempty"`
	FlyingBackAt   *time.Time `json:"flyingBackAt,omitempty"`
	ReceivedAtVNAt *time.Time `json:"receivedAtVNAt,omitempty"`
}

type trackingItemListJSON struct {
	TrackingNumber string     `json:"trackingNumber"`
	AlternateRef   string     `json:"alternateRef,omitempty"`
	ChainKey       string     `json:"chainKey,omitempty"`
	AgentCode      string     `json:"agentCode,omitempty"`
	Status         string     `json:"status"`
	ReturnHeld     bool       `json:"returnHeld"`
	RegisteredAt   *time.Time `json:"registeredAt,omitempty"`
	PieceCount     int        `json:"pieceCount"`
}

func toTrackingItemJSON(item queries.TrackingItemResponse) trackingItemJSON {
	pieces := make([]pieceJSON, len(item.Pieces))
	for i, piece := range item.Pieces {
		pieces[i] = pieceJSON{
			Information:    piece.Information,
			Boxed:          piece.Boxed,
			BoxedAt:        piece.BoxedAt,
			FlyingBackAt:   piece.FlyingBackAt,
			ReceivedAtVNAt: piece.ReceivedAtVNAt,
		}
	}

	return trackingItemJSON{
		TrackingNumber:  item.TrackingNumber,
		AlternateRef:    item.AlternateRef,
		ChainKey:        item.ChainKey,
		AgentCode:       item.AgentCode,
		Status:          item.Status.String(),
		ReturnHeld:      item.ReturnHeld,
		RegisteredAt:    item.RegisteredAt,
		DeliveredAt:     item.DeliveredAt,
		ReturnRequestAt: item.ReturnRequestAt,
		Pieces:          pieces,
	}
}

// parseDateParam parses an optional RFC 3339 timestamp or plain date query
// param.
func parseDateParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t, err = time.Parse("2006-01-02", value)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("date", err)
		}
	}

	return &t, nil
}
