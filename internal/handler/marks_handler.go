package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/collegium/collegium-api/internal/dto"
	"github.com/collegium/collegium-api/internal/service"
	"github.com/collegium/collegium-api/internal/utils"
)

// MarksHandler manages mark sheet ingestion endpoints.
type MarksHandler struct {
	service service.MarksService
	logger  zerolog.Logger
}

// NewMarksHandler builds a marks handler instance.
func NewMarksHandler(service service.MarksService, logger zerolog.Logger) *MarksHandler {
	return &MarksHandler{
		service: service,
		logger:  logger.With().Str("component", "marks_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *MarksHandler) Register(router fiber.Router) {
	router.Post("/sheet", h.submitSheet)
}

func (h *MarksHandler) submitSheet(c *fiber.Ctx) error {
	var payload dto.MarkSheetRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.SubmitSheet(c.Context(), payload, actorFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "mark sheet processed", response)
}

func (h *MarksHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrForbidden):
		return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
	case errors.Is(err, service.ErrSubjectNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "subject not found")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
