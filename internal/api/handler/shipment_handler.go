package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/freightline/shipment-tracker/internal/api/metrics"
	"github.com/freightline/shipment-tracker/internal/core/domain"
	"github.com/freightline/shipment-tracker/internal/core/ports"
)

// ShipmentHandler handles HTTP requests for shipment operations.
type ShipmentHandler struct {
	service ports.ShipmentService
}

func NewShipmentHandler(service ports.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{service: service}
}

// Create handles POST /api/shipments.
//
// @Summary      Create a new shipment
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                 false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createShipmentRequest  true   "Shipment details"
// @Success      201              {object}  successResponse
// @Failure      400              {object}  map[string]any
// @Failure      401              {object}  map[string]any
// @Failure      409              {object}  map[string]any
// @Router       /api/shipments [post]
func (h *ShipmentHandler) Create(c echo.Context) error {
	var req createShipmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	result, err := h.service.Create(c.Request().Context(), ports.CreateShipmentInput{
		TrackingNumber:  req.TrackingNumber,
		SenderAddress:   req.SenderAddress,
		ReceiverAddress: req.ReceiverAddress,
		Weight:          req.Weight,
		Description:     req.Description,
		CreatedByID:     userID,
		IdempotencyKey:  c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	if result.AlreadyExisted {
		return respond(c, http.StatusOK, "Shipment already created", result.Shipment)
	}

	metrics.ShipmentsCreatedTotal.Inc()
	return respond(c, http.StatusCreated, "Shipment created successfully", result.Shipment)
}

// UpdateStatus handles PUT /api/shipments/:shipmentId/status.
//
// @Summary      Update shipment status
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        shipmentId  path      string               true  "External shipment id (e.g. SHP-...)"
// @Param        body        body      updateStatusRequest  true  "Target status"
// @Success      200         {object}  successResponse
// @Failure      403         {object}  map[string]any
// @Failure      404         {object}  map[string]any
// @Router       /api/shipments/{shipmentId}/status [put]
func (h *ShipmentHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	shipment, err := h.service.UpdateStatus(c.Request().Context(), ports.UpdateStatusInput{
		ShipmentID:   c.Param("shipmentId"),
		Status:       domain.ShipmentStatus(req.Status),
		ActingUserID: userID,
	})
	if err != nil {
		return err
	}

	metrics.StatusTransitionsTotal.WithLabelValues(req.Status).Inc()
	return respond(c, http.StatusOK, "Shipment status updated successfully", shipment)
}

// AddEvent handles POST /api/shipments/:shipmentId/event.
//
// @Summary      Add shipment tracking event
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        shipmentId  path      string           true  "External shipment id"
// @Param        body        body      addEventRequest  true  "Tracking event"
// @Success      201         {object}  successResponse
// @Failure      404         {object}  map[string]any
// @Router       /api/shipments/{shipmentId}/event [post]
func (h *ShipmentHandler) AddEvent(c echo.Context) error {
	var req addEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	event, err := h.service.AddEvent(c.Request().Context(), ports.AddEventInput{
		ShipmentID:  c.Param("shipmentId"),
		Event:       domain.ShipmentEventType(req.Event),
		Location:    req.Location,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	metrics.EventsAppendedTotal.WithLabelValues(req.Event).Inc()
	return respond(c, http.StatusCreated, "Event added", event)
}

// Get handles GET /api/shipments/:shipmentId.
//
// @Summary      Get detailed shipment information with tracking history
// @Tags         shipments
// @Produce      json
// @Security     BearerAuth
// @Param        shipmentId  path      string  true  "External shipment id"
// @Success      200         {object}  successResponse
// @Failure      404         {object}  map[string]any
// @Router       /api/shipments/{shipmentId} [get]
func (h *ShipmentHandler) Get(c echo.Context) error {
	shipment, err := h.service.GetDetails(c.Request().Context(), c.Param("shipmentId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Shipment details fetched successfully", shipment)
}

// List handles GET /api/shipments.
//
// @Summary      Get all shipments with pagination
// @Tags         shipments
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (1-based)"
// @Param        limit  query     int  false  "Shipments per page"
// @Success      200    {object}  successResponse
// @Router       /api/shipments [get]
func (h *ShipmentHandler) List(c echo.Context) error {
	page, limit := pageParams(c)

	result, err := h.service.List(c.Request().Context(), ports.ListShipmentsInput{Page: page, Limit: limit})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Shipments fetched successfully", listShipmentsResponse{
		Shipments: result.Items,
		Pagination: paginationMeta{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	})
}

// pageParams parses 1-based pagination query parameters, defaulting to
// page 1 with 10 items per page.
func pageParams(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = 10
	}
	return page, limit
}
