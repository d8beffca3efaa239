package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rodriguesaradhan-web/kozhigo/internal/core/domain"
	"github.com/rodriguesaradhan-web/kozhigo/internal/transport/http/middleware"
	"github.com/rodriguesaradhan-web/kozhigo/internal/usecase"
)

// AdminHandler exposes the moderation dashboard endpoints.
type AdminHandler struct {
	admin        *usecase.AdminService
	adjudication *usecase.AdjudicationService
	reports      *usecase.ReportService
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(admin *usecase.AdminService, adjudication *usecase.AdjudicationService, reports *usecase.ReportService) *AdminHandler {
	return &AdminHandler{admin: admin, adjudication: adjudication, reports: reports}
}

// RegisterRoutes binds admin endpoints. Callers must chain RequireAuth and
// RequireRole("admin") ahead.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats", h.stats)

	r.GET("/registrations", h.listVerifications)
	r.POST("/registrations/:id/approve", h.approveVerification)
	r.POST("/registrations/:id/reject", h.rejectVerification)

	r.GET("/driver-applications", h.listUpgrades)
	r.POST("/driver-applications/:id/approve", h.approveUpgrade)
	r.POST("/driver-applications/:id/reject", h.rejectUpgrade)

	r.GET("/reports", h.listReports)
	r.POST("/reports/:id/warn", h.warn)
	r.POST("/reports/:id/suspend", h.suspend)
	r.POST("/reports/:id/dismiss", h.dismiss)
}

func (h *AdminHandler) stats(c *gin.Context) {
	stats, err := h.admin.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to gather statistics"))
		return
	}
	c.JSON(http.StatusOK, newStatsResponse(stats))
}

func (h *AdminHandler) listVerifications(c *gin.Context) {
	apps, err := h.admin.PendingVerifications(c.Request.Context(),
		parsePositiveInt(c.Query("limit"), 50),
		parsePositiveInt(c.Query("offset"), 0))
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to list applications"))
		return
	}

	views := make([]VerificationView, 0, len(apps))
	for _, app := range apps {
		views = append(views, newVerificationView(app))
	}
	c.JSON(http.StatusOK, gin.H{"applications": views})
}

func (h *AdminHandler) approveVerification(c *gin.Context) {
	reviewerID, _ := middleware.GetAuthenticatedAccountID(c)

	account, err := h.adjudication.ApproveVerification(c.Request.Context(), c.Param("id"), reviewerID)
	if err != nil {
		RespondWithMappedError(c, err, moderationErrorCases(), http.StatusInternalServerError, "failed to approve application")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "application approved",
		"account": newAccountSummary(account),
	})
}

func (h *AdminHandler) rejectVerification(c *gin.Context) {
	reviewerID, _ := middleware.GetAuthenticatedAccountID(c)

	var req RejectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "rejection reason is required"))
		return
	}

	if err := h.adjudication.RejectVerification(c.Request.Context(), c.Param("id"), reviewerID, req.Reason); err != nil {
		RespondWithMappedError(c, err, moderationErrorCases(), http.StatusInternalServerError, "failed to reject application")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "application rejected"})
}

func (h *AdminHandler) listUpgrades(c *gin.Context) {
	apps, err := h.admin.PendingUpgrades(c.Request.Context(),
		parsePositiveInt(c.Query("limit"), 50),
		parsePositiveInt(c.Query("offset"), 0))
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to list applications"))
		return
	}

	views := make([]UpgradeView, 0, len(apps))
	for _, app := range apps {
		views = append(views, newUpgradeViewWithApplicant(app))
	}
	c.JSON(http.StatusOK, gin.H{"applications": views})
}

func (h *AdminHandler) approveUpgrade(c *gin.Context) {
	reviewerID, _ := middleware.GetAuthenticatedAccountID(c)

	if err := h.adjudication.ApproveUpgrade(c.Request.Context(), c.Param("id"), reviewerID); err != nil {
		RespondWithMappedError(c, err, moderationErrorCases(), http.StatusInternalServerError, "failed to approve application")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "driver upgrade approved"})
}

func (h *AdminHandler) rejectUpgrade(c *gin.Context) {
	reviewerID, _ := middleware.GetAuthenticatedAccountID(c)

	var req RejectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "rejection reason is required"))
		return
	}

	if err := h.adjudication.RejectUpgrade(c.Request.Context(), c.Param("id"), reviewerID, req.Reason); err != nil {
		RespondWithMappedError(c, err, moderationErrorCases(), http.StatusInternalServerError, "failed to reject application")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "application rejected"})
}

func (h *AdminHandler) listReports(c *gin.Context) {
	var status domain.ReportStatus
	if raw := c.Query("status"); raw != "" {
		status = domain.ReportStatus(raw)
	}

	reports, err := h.admin.Reports(c.Request.Context(), status,
		parsePositiveInt(c.Query("limit"), 50),
		parsePositiveInt(c.Query("offset"), 0))
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to list reports"))
		return
	}

	views := make([]ReportView, 0, len(reports))
	for _, report := range reports {
		views = append(views, newReportViewWithContext(report))
	}
	c.JSON(http.StatusOK, gin.H{"reports": views})
}

func (h *AdminHandler) warn(c *gin.Context) {
	adminID, _ := middleware.GetAuthenticatedAccountID(c)

	var req ResolutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.Note = ""
	}

	if err := h.reports.Warn(c.Request.Context(), c.Param("id"), adminID, req.Note); err != nil {
		RespondWithMappedError(c, err, moderationErrorCases(), http.StatusInternalServerError, "failed to resolve report")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "warning issued"})
}

func (h *AdminHandler) suspend(c *gin.Context) {
	adminID, _ := middleware.GetAuthenticatedAccountID(c)

	var req ResolutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.Note = ""
	}

	cancelled, err := h.reports.Suspend(c.Request.Context(), c.Param("id"), adminID, req.Note)
	if err != nil {
		if errors.Is(err, usecase.ErrCascadeFailed) {
			// The suspension itself committed; report partial completion.
			c.JSON(http.StatusOK, SuspensionResponse{
				Message:        "driver suspended, some rides could not be cancelled",
				RidesCancelled: cancelled,
			})
			return
		}
		RespondWithMappedError(c, err, moderationErrorCases(), http.StatusInternalServerError, "failed to resolve report")
		return
	}

	c.JSON(http.StatusOK, SuspensionResponse{
		Message:        "driver suspended",
		RidesCancelled: cancelled,
	})
}

func (h *AdminHandler) dismiss(c *gin.Context) {
	adminID, _ := middleware.GetAuthenticatedAccountID(c)

	var req ResolutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.Note = ""
	}

	if err := h.reports.Dismiss(c.Request.Context(), c.Param("id"), adminID, req.Note); err != nil {
		RespondWithMappedError(c, err, moderationErrorCases(), http.StatusInternalServerError, "failed to resolve report")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "report dismissed"})
}
