package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rodriguesaradhan-web/kozhigo/internal/usecase"
)

// ErrorCase maps a sentinel error to an HTTP status code and response message.
type ErrorCase struct {
	Err     error
	Status  int
	Message string
}

// moderationErrorCases covers the sentinels shared by the adjudication endpoints.
func moderationErrorCases() []ErrorCase {
	return []ErrorCase{
		{Err: usecase.ErrValidation, Status: http.StatusBadRequest, Message: "invalid request"},
		{Err: usecase.ErrNotFound, Status: http.StatusNotFound, Message: "not found"},
		{Err: usecase.ErrAlreadyResolved, Status: http.StatusConflict, Message: "already resolved"},
		{Err: usecase.ErrDuplicateIdentity, Status: http.StatusConflict, Message: "identity already exists"},
		{Err: usecase.ErrConflict, Status: http.StatusConflict, Message: "operation conflicts with current state"},
		{Err: usecase.ErrForbidden, Status: http.StatusForbidden, Message: "insufficient permissions"},
	}
}

// RespondWithMappedError resolves the provided error against known cases or falls back to a generic response.
func RespondWithMappedError(c *gin.Context, err error, cases []ErrorCase, fallbackStatus int, fallbackMessage string) {
	if err == nil {
		c.Status(http.StatusOK)
		return
	}

	for _, cs := range cases {
		if cs.Err == nil {
			continue
		}
		if errors.Is(err, cs.Err) {
			c.JSON(cs.Status, NewErrorResponse(c, cs.Message))
			return
		}
	}

	c.JSON(fallbackStatus, NewErrorResponse(c, fallbackMessage))
}
