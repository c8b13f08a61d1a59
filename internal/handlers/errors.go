package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/applicant-portal/internal/apperror"
)

// NewErrorHandler renders every failure as {"error", "code"} and logs it once.
func NewErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		code := apperror.CodeInternal
		message := "internal server error"

		var appErr *apperror.Error
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &appErr):
			status = appErr.HTTPStatus()
			code = appErr.Code
			message = appErr.Message
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
			message = fiberErr.Message
			code = codeForStatus(status)
		}

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.String("code", string(code)),
			zap.Error(err),
		}
		if status >= fiber.StatusInternalServerError {
			logger.Error("request failed", fields...)
		} else {
			logger.Info("request rejected", fields...)
		}

		return c.Status(status).JSON(fiber.Map{
			"error": message,
			"code":  code,
		})
	}
}

func codeForStatus(status int) apperror.Code {
	switch {
	case status == fiber.StatusNotFound:
		return apperror.CodeNotFound
	case status == fiber.StatusConflict:
		return apperror.CodeInvalidState
	case status >= 400 && status < 500:
		return apperror.CodeInvalidRequest
	default:
		return apperror.CodeInternal
	}
}
