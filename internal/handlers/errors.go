package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/spend_tracker_app/internal/apperrors"
	"github.com/SscSPs/spend_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondWithError maps a service error onto a status code and a JSON body.
// Server-side failures never expose their cause; fallback is shown instead.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := statusFromError(err)

	message := fallback
	var appErr *apperrors.AppError
	if status < http.StatusInternalServerError && errors.As(err, &appErr) && appErr.Message != "" {
		message = appErr.Message
	}

	switch {
	case status == http.StatusBadGateway:
		logger.Error("Upstream failure", slog.String("error", err.Error()))
		message = "Parser is unavailable. Please try again."
	case status >= http.StatusInternalServerError:
		logger.Error(fallback, slog.String("error", err.Error()))
	default:
		logger.Warn(fallback, slog.Int("status", status), slog.String("error", err.Error()))
	}

	c.JSON(status, gin.H{"error": message})
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrUpstream):
		return http.StatusBadGateway
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code >= 400 && appErr.Code < 500 {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// requireUserID reads the authenticated user or aborts with 401.
func requireUserID(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}
