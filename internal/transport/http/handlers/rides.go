package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rodriguesaradhan-web/kozhigo/internal/core/domain"
	"github.com/rodriguesaradhan-web/kozhigo/internal/core/port"
	"github.com/rodriguesaradhan-web/kozhigo/internal/transport/http/middleware"
	"github.com/rodriguesaradhan-web/kozhigo/internal/usecase"
)

// RideHandler exposes ride publication and lifecycle endpoints.
type RideHandler struct {
	rides *usecase.RideService
}

// NewRideHandler constructs RideHandler.
func NewRideHandler(rides *usecase.RideService) *RideHandler {
	return &RideHandler{rides: rides}
}

// RegisterRoutes binds ride endpoints. Callers must chain RequireAuth ahead.
func (h *RideHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", h.publish)
	r.GET("", h.list)
	r.POST("/:id/complete", h.complete)
	r.POST("/:id/cancel", h.cancel)
}

func (h *RideHandler) publish(c *gin.Context) {
	driverID, ok := middleware.GetAuthenticatedAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	var req RideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid ride payload"))
		return
	}

	ride, err := h.rides.Publish(c.Request.Context(), driverID, usecase.RideListing{
		Origin:      req.Origin,
		Destination: req.Destination,
		DepartureAt: req.DepartureAt,
		Seats:       req.Seats,
		Price:       req.Price,
	})
	if err != nil {
		RespondWithMappedError(c, err, moderationErrorCases(), http.StatusInternalServerError, "failed to publish ride")
		return
	}

	c.JSON(http.StatusCreated, newRideView(*ride))
}

func (h *RideHandler) list(c *gin.Context) {
	filter := port.RideFilter{
		DriverID: c.Query("driver_id"),
		Limit:    parsePositiveInt(c.Query("limit"), 50),
		Offset:   parsePositiveInt(c.Query("offset"), 0),
	}
	if status := c.Query("status"); status != "" {
		filter.Status = domain.RideStatus(status)
	}

	rides, err := h.rides.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to list rides"))
		return
	}

	views := make([]RideView, 0, len(rides))
	for _, ride := range rides {
		views = append(views, newRideView(ride))
	}

	c.JSON(http.StatusOK, gin.H{"rides": views})
}

func (h *RideHandler) complete(c *gin.Context) {
	driverID, ok := middleware.GetAuthenticatedAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	if err := h.rides.Complete(c.Request.Context(), c.Param("id"), driverID); err != nil {
		RespondWithMappedError(c, err, moderationErrorCases(), http.StatusInternalServerError, "failed to complete ride")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "ride completed"})
}

func (h *RideHandler) cancel(c *gin.Context) {
	driverID, ok := middleware.GetAuthenticatedAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	if err := h.rides.Cancel(c.Request.Context(), c.Param("id"), driverID); err != nil {
		RespondWithMappedError(c, err, moderationErrorCases(), http.StatusInternalServerError, "failed to cancel ride")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "ride cancelled"})
}

func parsePositiveInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
