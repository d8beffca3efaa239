package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rodriguesaradhan-web/kozhigo/internal/usecase"
)

// RegistrationHandler exposes endpoints for signup and student verification.
type RegistrationHandler struct {
	registration *usecase.RegistrationService
}

// NewRegistrationHandler constructs RegistrationHandler.
func NewRegistrationHandler(registration *usecase.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registration: registration}
}

// RegisterRoutes binds registration endpoints.
func (h *RegistrationHandler) RegisterRoutes(r *gin.RouterGroup, submitMiddlewares ...gin.HandlerFunc) {
	r.POST("/register", h.register)

	if len(submitMiddlewares) > 0 {
		chain := append([]gin.HandlerFunc{}, submitMiddlewares...)
		chain = append(chain, h.registerStudent)
		r.POST("/register-student", chain...)
	} else {
		r.POST("/register-student", h.registerStudent)
	}
}

// register creates a passenger account directly from a JSON payload.
func (h *RegistrationHandler) register(c *gin.Context) {
	var req RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid registration payload"))
		return
	}

	account, err := h.registration.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDuplicateIdentity):
			c.JSON(http.StatusConflict, NewErrorResponse(c, "email already registered"))
		case errors.Is(err, usecase.ErrPasswordPolicyViolation):
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, "password does not meet requirements"))
		case errors.Is(err, usecase.ErrValidation):
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid registration payload"))
		default:
			c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to register"))
		}
		return
	}

	c.JSON(http.StatusCreated, RegistrationResponse{Account: newAccountSummary(account)})
}

// registerStudent accepts a multipart student verification submission with
// an identity document attached under the "evidence" field.
func (h *RegistrationHandler) registerStudent(c *gin.Context) {
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

	sub := usecase.VerificationSubmission{
		Name:      formValue(form, "name"),
		StudentID: formValue(form, "student_id"),
		Email:     formValue(form, "email"),
		Password:  formValue(form, "password"),
		Evidence:  evidence,
	}

	app, err := h.registration.SubmitVerification(c.Request.Context(), sub)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDuplicateIdentity):
			c.JSON(http.StatusConflict, NewErrorResponse(c, "email or student id already registered"))
		case errors.Is(err, usecase.ErrPasswordPolicyViolation):
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, "password does not meet requirements"))
		case errors.Is(err, usecase.ErrValidation):
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid verification submission"))
		default:
			c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to submit verification"))
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "verification submitted, awaiting review",
		"application": newVerificationView(*app),
	})
}
