package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/collegium/collegium-api/internal/dto"
	"github.com/collegium/collegium-api/internal/service"
	"github.com/collegium/collegium-api/internal/utils"
)

// ResultHandler manages semester result endpoints.
type ResultHandler struct {
	service service.ResultService
	logger  zerolog.Logger
}

// NewResultHandler builds a result handler instance.
func NewResultHandler(service service.ResultService, logger zerolog.Logger) *ResultHandler {
	return &ResultHandler{
		service: service,
		logger:  logger.With().Str("component", "result_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *ResultHandler) Register(router fiber.Router) {
	router.Post("/compute", h.compute)
	router.Get("", h.get)
}

func (h *ResultHandler) compute(c *fiber.Ctx) error {
	var payload dto.ResultComputeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Compute(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "semester result computed", result)
}

func (h *ResultHandler) get(c *fiber.Ctx) error {
	studentID, err := parseQueryUint(c, "student_id")
	if err != nil || studentID == 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student_id")
	}

	semester, err := parseQueryInt(c, "semester")
	if err != nil || semester < 1 || semester > 8 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid semester")
	}

	session := strings.TrimSpace(c.Query("session"))
	if session == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "session is required")
	}

	result, err := h.service.Get(c.Context(), studentID, semester, session)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "semester result retrieved", result)
}

func (h *ResultHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "student not found")
	case errors.Is(err, service.ErrCurriculumNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "curriculum not found")
	case errors.Is(err, service.ErrResultNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "semester result not found")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
