package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seu-repo/aloy-nlp/internal/ports"
)

type InterpretHandler struct {
	interpreter ports.Interpreter
	log         *zap.Logger
}

func NewInterpretHandler(interpreter ports.Interpreter, log *zap.Logger) *InterpretHandler {
	return &InterpretHandler{
		interpreter: interpreter,
		log:         log,
	}
}

type InterpretRequest struct {
	Message string `json:"message"`
}

// Interpret handles POST /interpret. Internal failures surface as a
// generic error response; no partial envelope is ever returned.
func (h *InterpretHandler) Interpret(c *fiber.Ctx) error {
	var req InterpretRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	requestID := uuid.NewString()
	log := h.log.With(zap.String("request_id", requestID))
	log.Info("Interpreting message", zap.String("message", req.Message))

	envelope, err := h.interpreter.Interpret(c.Context(), req.Message)
	if err != nil {
		log.Error("Interpretation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	log.Info("Interpretation completed", zap.String("type", envelope.Type))
	return c.JSON(envelope)
}
