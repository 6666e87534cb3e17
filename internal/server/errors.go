package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"taskflow/internal/api"
	"taskflow/internal/service"
)

// fail writes the envelope for a store error. Unknown errors go to the
// error handler as 500s.
func (s *Server) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(api.Fail(api.MsgNotFound))
	case errors.Is(err, service.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(api.Fail(api.MsgTextRequired))
	default:
		return err
	}
}

// errorHandler turns any error escaping a handler, including fiber's own
// routing errors and recovered panics, into a failure envelope.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := api.MsgInternalError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	if code >= fiber.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", c.Method(),
			"path", c.Path(),
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
			"error", err,
		)
	}

	return c.Status(code).JSON(api.Fail(message))
}
