package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rodriguesaradhan-web/kozhigo/internal/core/domain"
	"github.com/rodriguesaradhan-web/kozhigo/internal/transport/http/middleware"
	"github.com/rodriguesaradhan-web/kozhigo/internal/usecase"
)

// ReportHandler exposes the report filing endpoint.
type ReportHandler struct {
	reports *usecase.ReportService
}

// NewReportHandler constructs ReportHandler.
func NewReportHandler(reports *usecase.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// RegisterRoutes binds report endpoints. Callers must chain RequireAuth ahead.
func (h *ReportHandler) RegisterRoutes(r *gin.RouterGroup, fileMiddlewares ...gin.HandlerFunc) {
	if len(fileMiddlewares) > 0 {
		chain := append([]gin.HandlerFunc{}, fileMiddlewares...)
		chain = append(chain, h.file)
		r.POST("", chain...)
	} else {
		r.POST("", h.file)
	}
}

func (h *ReportHandler) file(c *gin.Context) {
	reporterID, ok := middleware.GetAuthenticatedAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid report payload"))
		return
	}

	report, err := h.reports.File(c.Request.Context(), reporterID, usecase.ReportSubmission{
		DriverID:    req.DriverID,
		RideID:      req.RideID,
		Reason:      domain.ReportReason(req.Reason),
		Description: req.Description,
	})
	if err != nil {
		RespondWithMappedError(c, err, moderationErrorCases(), http.StatusInternalServerError, "failed to file report")
		return
	}

	c.JSON(http.StatusCreated, newReportView(*report))
}
