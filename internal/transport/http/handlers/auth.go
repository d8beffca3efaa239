package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rodriguesaradhan-web/kozhigo/internal/transport/http/middleware"
	"github.com/rodriguesaradhan-web/kozhigo/internal/usecase"
)

// AuthHandler exposes authentication and account self-service endpoints.
type AuthHandler struct {
	auth *usecase.AuthService
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(auth *usecase.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// RegisterRoutes binds authentication routes, applying optional middleware ahead of the login handler.
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup, loginMiddlewares ...gin.HandlerFunc) {
	if len(loginMiddlewares) > 0 {
		chain := append([]gin.HandlerFunc{}, loginMiddlewares...)
		chain = append(chain, h.login)
		r.POST("/login", chain...)
	} else {
		r.POST("/login", h.login)
	}

	authed := middleware.RequireAuth(h.auth)
	r.GET("/me", authed, h.me)
	r.GET("/me/warnings", authed, h.myWarnings)
}

func (h *AuthHandler) login(c *gin.Context) {
	var req AuthLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid login payload"))
		return
	}

	account, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "invalid email or password"))
		case errors.Is(err, usecase.ErrAccountSuspended):
			c.JSON(http.StatusForbidden, NewErrorResponse(c, "account suspended due to policy violations"))
		case errors.Is(err, usecase.ErrValidation):
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, "email and password are required"))
		default:
			c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to sign in"))
		}
		return
	}

	c.JSON(http.StatusOK, AuthLoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		Account:     newAccountSummary(account),
	})
}

func (h *AuthHandler) me(c *gin.Context) {
	accountID, ok := middleware.GetAuthenticatedAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	account, err := h.auth.GetAccount(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, NewErrorResponse(c, "account not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to load account"))
		return
	}

	c.JSON(http.StatusOK, newAccountSummary(account))
}

func (h *AuthHandler) myWarnings(c *gin.Context) {
	accountID, ok := middleware.GetAuthenticatedAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	warnings, err := h.auth.MyWarnings(c.Request.Context(), accountID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to load warnings"))
		return
	}

	views := make([]WarningView, 0, len(warnings))
	for _, warning := range warnings {
		views = append(views, newWarningView(warning))
	}

	c.JSON(http.StatusOK, gin.H{"warnings": views})
}
