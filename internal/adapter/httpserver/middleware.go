package httpserver

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/hirewire/hirewire/internal/adapter/filestore"
	"github.com/hirewire/hirewire/internal/domain"
	"github.com/hirewire/hirewire/internal/platform/correlation"
	apperrors "github.com/hirewire/hirewire/internal/platform/errors"
)

func correlationMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := correlation.WithID(c.Request().Context(), correlation.NewID())
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

func ErrorHandlingMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				return err
			}

			structuredErr := apperrors.AsStructuredError(mapServiceError(err))
			logError(c, structuredErr)

			if err := c.JSON(structuredErr.HTTPStatus(), structuredErr.ToResponse()); err != nil {
				return fmt.Errorf("failed to write error response: %w", err)
			}
			return nil
		}
	}
}

// mapServiceError translates domain sentinels into structured errors.
// Already-structured errors pass through untouched. Not-found mappings are
// shared by "does not exist" and "belongs to someone else"; the response
// must not distinguish them.
func mapServiceError(err error) error {
	var structuredErr *apperrors.Error
	if errors.As(err, &structuredErr) {
		return err
	}

	switch {
	case errors.Is(err, domain.ErrRoleNotAllowed):
		return apperrors.ForbiddenError("action not allowed for this role")
	case errors.Is(err, domain.ErrCompanyNotFound):
		return apperrors.NotFoundError("company not found")
	case errors.Is(err, domain.ErrJobNotFound):
		return apperrors.NotFoundError("job not found")
	case errors.Is(err, domain.ErrApplicationNotFound):
		return apperrors.NotFoundError("application not found")
	case errors.Is(err, domain.ErrCompanyExists):
		return apperrors.ConflictError("company already exists for this account")
	case errors.Is(err, domain.ErrDuplicateApplication):
		return apperrors.ConflictError("an application for this job already exists")
	case errors.Is(err, domain.ErrVersionConflict):
		return apperrors.ConflictError("application was modified concurrently, re-fetch and retry")
	case errors.Is(err, domain.ErrInvalidTransition):
		return apperrors.InvalidTransitionError("status transition not allowed")
	case errors.Is(err, domain.ErrJobNotOpen):
		return apperrors.InvalidTransitionError("job is not accepting applications")
	case errors.Is(err, domain.ErrMissingResume):
		return apperrors.ValidationError("no resume provided and none on file")
	case errors.Is(err, domain.ErrUploadRejected):
		return apperrors.ValidationError("resume upload rejected by file storage")
	case errors.Is(err, filestore.ErrUnavailable):
		return apperrors.ExternalError("file storage unavailable", err)
	default:
		return err
	}
}

func logError(c echo.Context, err *apperrors.Error) {
	attrs := []any{
		"error_type", err.Type,
		"message", err.Message,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"status", err.HTTPStatus(),
	}

	for k, v := range err.Context {
		attrs = append(attrs, k, v)
	}

	if userID := c.Get(ctxKeyUserID); userID != nil {
		attrs = append(attrs, "user_id", userID)
	}

	switch err.Type {
	case apperrors.TypeUnauthenticated, apperrors.TypeForbidden:
		slog.Info("Access denied", attrs...)
	case apperrors.TypeValidation:
		slog.Info("Validation error", attrs...)
	case apperrors.TypeNotFound:
		slog.Info("Not found", attrs...)
	case apperrors.TypeConflict:
		slog.Warn("Conflict", attrs...)
	case apperrors.TypeInvalidTransition:
		slog.Info("Invalid transition", attrs...)
	case apperrors.TypeInternal:
		if err.Cause != nil {
			attrs = append(attrs, "cause", err.Cause)
		}
		slog.Error("Internal error", attrs...)
	case apperrors.TypeExternal:
		if err.Cause != nil {
			attrs = append(attrs, "cause", err.Cause)
		}
		slog.Error("External service error", attrs...)
	default:
		slog.Error("Unknown error type", attrs...)
	}
}
