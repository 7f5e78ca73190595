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

// AttendanceHandler manages attendance endpoints.
type AttendanceHandler struct {
	service service.AttendanceService
	logger  zerolog.Logger
}

// NewAttendanceHandler builds an attendance handler instance.
func NewAttendanceHandler(service service.AttendanceService, logger zerolog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		service: service,
		logger:  logger.With().Str("component", "attendance_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *AttendanceHandler) Register(router fiber.Router) {
	router.Post("", h.mark)
	router.Get("", h.listByDay)
	router.Get("/roster", h.roster)
}

func (h *AttendanceHandler) mark(c *fiber.Ctx) error {
	var payload dto.AttendanceMarkRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	record, err := h.service.Mark(c.Context(), payload, actorFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	// Created and updated intentionally share one success shape.
	return utils.SendSuccess(c, "attendance recorded", record)
}

func (h *AttendanceHandler) listByDay(c *fiber.Ctx) error {
	semester, err := parseQueryInt(c, "semester")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid semester")
	}

	date, err := parseDateQuery(c, "date")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid date")
	}

	payload := dto.AttendanceDayRequest{
		BatchCode: c.Query("batch_code"),
		Semester:  semester,
		Date:      date,
	}

	records, err := h.service.ListByDay(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "attendance retrieved", records)
}

func (h *AttendanceHandler) roster(c *fiber.Ctx) error {
	semester, err := parseQueryInt(c, "semester")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid semester")
	}

	payload := dto.RosterRequest{
		BatchCode:   c.Query("batch_code"),
		Semester:    semester,
		SubjectName: c.Query("subject"),
	}

	roster, err := h.service.Roster(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "roster retrieved", roster)
}

func (h *AttendanceHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrForbidden):
		return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
	case errors.Is(err, service.ErrInvalidBatchCode):
		return utils.SendError(c, fiber.StatusBadRequest, "invalid batch code")
	case errors.Is(err, service.ErrSubjectNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "subject not found")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
