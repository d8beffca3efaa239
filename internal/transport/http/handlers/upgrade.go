package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rodriguesaradhan-web/kozhigo/internal/transport/http/middleware"
	"github.com/rodriguesaradhan-web/kozhigo/internal/usecase"
)

// UpgradeHandler exposes the passenger-to-driver application endpoint.
type UpgradeHandler struct {
	upgrades *usecase.UpgradeService
}

// NewUpgradeHandler constructs UpgradeHandler.
func NewUpgradeHandler(upgrades *usecase.UpgradeService) *UpgradeHandler {
	return &UpgradeHandler{upgrades: upgrades}
}

// RegisterRoutes binds upgrade endpoints. Callers must chain RequireAuth ahead.
func (h *UpgradeHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/apply-driver", h.applyDriver)
}

// applyDriver accepts a multipart application with the driver's license
// attached under the "evidence" field.
func (h *UpgradeHandler) applyDriver(c *gin.Context) {
	accountID, ok := middleware.GetAuthenticatedAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid multipart payload"))
		return
	}

	evidence, err := readEvidenceFile(form, "evidence")
	if err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, err.Error()))
		return
	}

	app, err := h.upgrades.Submit(c.Request.Context(), accountID, evidence)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrConflict):
			c.JSON(http.StatusConflict, NewErrorResponse(c, "upgrade not possible in the account's current state"))
		case errors.Is(err, usecase.ErrValidation):
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid upgrade submission"))
		case errors.Is(err, usecase.ErrNotFound):
			c.JSON(http.StatusNotFound, NewErrorResponse(c, "account not found"))
		default:
			c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to submit application"))
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "application submitted, awaiting review",
		"application": newUpgradeView(*app),
	})
}
