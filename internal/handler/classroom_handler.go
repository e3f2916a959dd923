package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"smartattend/internal/errors"
	"smartattend/internal/service"
)

// ClassroomHandler serves the read-only classroom catalogue.
type ClassroomHandler struct {
	classroomService service.ClassroomService
}

func NewClassroomHandler(classroomService service.ClassroomService) *ClassroomHandler {
	return &ClassroomHandler{classroomService: classroomService}
}

// ListClassrooms godoc
// @Summary List classrooms
// @Tags classrooms
// @Produce json
// @Success 200 {array} model.Classroom
// @Failure 500 {object} errors.ErrorResponse
// @Router /classrooms [get]
func (h *ClassroomHandler) ListClassrooms(c echo.Context) error {
	classrooms, err := h.classroomService.ListClassrooms(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, classrooms)
}

// GetClassroom godoc
// @Summary Get classroom by id
// @Tags classrooms
// @Produce json
// @Param id path int true "Classroom ID"
// @Success 200 {object} model.Classroom
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /classrooms/{id} [get]
func (h *ClassroomHandler) GetClassroom(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid classroom id",
			Code:  "INVALID_ID",
		})
	}

	classroom, err := h.classroomService.GetClassroom(c.Request().Context(), uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, classroom)
}
