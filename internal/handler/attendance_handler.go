package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"smartattend/internal/service"
)

// AttendanceHandler handles check-in endpoints.
type AttendanceHandler struct {
	attendanceService service.AttendanceService
}

// NewAttendanceHandler creates a new attendance handler.
func NewAttendanceHandler(attendanceService service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// MarkAttendanceRequest represents a check-in. The verification flags are
// reported by the client and default to false.
type MarkAttendanceRequest struct {
	ClassroomID      uint `json:"classroom_id" validate:"required,gt=0"`
	VerifiedLocation bool `json:"verified_location"`
	VerifiedFace     bool `json:"verified_face"`
}

// MarkAttendanceResponse is returned after a check-in is recorded.
type MarkAttendanceResponse struct {
	Message      string `json:"message"`
	AttendanceID uint   `json:"attendance_id"`
}

// MarkAttendance godoc
// @Summary Mark attendance in a classroom
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body MarkAttendanceRequest true "Check-in data"
// @Success 201 {object} MarkAttendanceResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /attendance [post]
func (h *AttendanceHandler) MarkAttendance(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return Unauthorized()
	}

	var req MarkAttendanceRequest
	if err := c.Bind(&req); err != nil {
		return invalidRequest()
	}

	if err := c.Validate(&req); err != nil {
		return validationFailed(err)
	}

	record, err := h.attendanceService.MarkAttendance(c.Request().Context(), service.MarkAttendanceInput{
		StudentID:        user.ID,
		ClassroomID:      req.ClassroomID,
		VerifiedLocation: req.VerifiedLocation,
		VerifiedFace:     req.VerifiedFace,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, MarkAttendanceResponse{
		Message:      "Attendance marked successfully",
		AttendanceID: record.ID,
	})
}

// AttendanceHistory godoc
// @Summary List the caller's attendance records
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Attendance
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /attendance/history [get]
func (h *AttendanceHandler) AttendanceHistory(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return Unauthorized()
	}

	records, err := h.attendanceService.AttendanceHistory(c.Request().Context(), user.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, records)
}
