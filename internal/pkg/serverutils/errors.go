package serverutils

import (
	"errors"
	"fmt"

	"cooking-assistant-be/internal/pkg/logger"
	"cooking-assistant-be/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// MethodNotAllowed rejects everything but POST on JSON endpoints.
func MethodNotAllowed(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusMethodNotAllowed).JSON(ErrorResponse{Error: "Only POST requests allowed"})
}

// ErrorHandler maps the apperr taxonomy to status codes and JSON bodies.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		status, body := classify(err)

		details := map[string]interface{}{
			"path":   ctx.Path(),
			"method": ctx.Method(),
			"status": status,
			"error":  err.Error(),
		}
		if status >= fiber.StatusInternalServerError {
			details["stack"] = fmt.Sprintf("%+v", err)
			log.Error("HTTP", "Request failed", details)
		} else {
			log.Warn("HTTP", "Request rejected", details)
		}

		return ctx.Status(status).JSON(body)
	}
}

func classify(err error) (int, ErrorResponse) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		body := ErrorResponse{Error: appErr.Message}
		if appErr.Err != nil {
			body.Details = appErr.Err.Error()
		}
		switch appErr.Kind {
		case apperr.KindValidation, apperr.KindLookup:
			return fiber.StatusBadRequest, body
		case apperr.KindExternalService:
			return fiber.StatusBadGateway, body
		default:
			return fiber.StatusInternalServerError, body
		}
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, ErrorResponse{Error: fiberErr.Message}
	}

	return fiber.StatusInternalServerError, ErrorResponse{Error: "Internal server error", Details: err.Error()}
}
