package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"smartattend/internal/service"
)

// FocusHandler handles focus mode endpoints.
type FocusHandler struct {
	focusService service.FocusService
}

// NewFocusHandler creates a new focus handler.
func NewFocusHandler(focusService service.FocusService) *FocusHandler {
	return &FocusHandler{focusService: focusService}
}

type StartFocusResponse struct {
	Message string `json:"message"`
	FocusID uint   `json:"focus_id"`
}

// FocusStatusResponse omits start_time while no session is open.
type FocusStatusResponse struct {
	Active    bool       `json:"active"`
	StartTime *time.Time `json:"start_time,omitempty"`
}

// StartFocus godoc
// @Summary Start a focus session
// @Tags focus
// @Produce json
// @Security BearerAuth
// @Success 201 {object} StartFocusResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /focus/start [post]
func (h *FocusHandler) StartFocus(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return Unauthorized()
	}

	session, err := h.focusService.StartFocus(c.Request().Context(), user.ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, StartFocusResponse{
		Message: "Focus Mode started",
		FocusID: session.ID,
	})
}

// StopFocus godoc
// @Summary Stop the open focus session
// @Tags focus
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /focus/stop [post]
func (h *FocusHandler) StopFocus(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return Unauthorized()
	}

	if _, err := h.focusService.StopFocus(c.Request().Context(), user.ID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Focus Mode stopped"})
}

// FocusStatus godoc
// @Summary Report whether a focus session is open
// @Tags focus
// @Produce json
// @Security BearerAuth
// @Success 200 {object} FocusStatusResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /focus/status [get]
func (h *FocusHandler) FocusStatus(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return Unauthorized()
	}

	status, err := h.focusService.FocusStatus(c.Request().Context(), user.ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, FocusStatusResponse{
		Active:    status.Active,
		StartTime: status.StartTime,
	})
}
