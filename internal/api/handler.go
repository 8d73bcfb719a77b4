package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"groupassign/internal/api/dto"
	"groupassign/internal/driver"
	"groupassign/internal/shared"
)

// Handler binds Service to gin routes.
type Handler struct {
	service *Service
}

// NewHandler returns a Handler wrapping service.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the assignment endpoint under router.
func (h *Handler) Register(router gin.IRouter) {
	router.POST("/api/v1/assignments", h.createAssignment)
}

// createAssignment solves one assignment request.
// @Summary Solve a group assignment
// @Description Compiles the goal sets in priority order into an ILP, solves the first feasible one, and returns the resulting groups
// @Tags assignments
// @Accept json
// @Produce json
// @Param request body dto.AssignmentRequest true "Students, groups and prioritized goal sets"
// @Success 200 {object} shared.SuccessResponse[dto.AssignmentResponse]
// @Failure 400 {object} shared.ErrorResponse
// @Failure 500 {object} shared.ErrorResponse
// @Router /api/v1/assignments [post]
func (h *Handler) createAssignment(c *gin.Context) {
	var req dto.AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondWithError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	in, err := req.ToInput()
	if err != nil {
		shared.RespondWithError(c, http.StatusBadRequest, "invalid goal configuration: "+err.Error())
		return
	}

	result, err := h.service.Solve(c.Request.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, driver.ErrNoStudents), errors.Is(err, driver.ErrNoGroups), errors.Is(err, driver.ErrPopulationTooBig):
			shared.RespondWithAppError(c, shared.ErrBadRequest.WithError(err))
		default:
			shared.RespondWithError(c, http.StatusInternalServerError, "solve failed: "+err.Error())
		}
		return
	}

	shared.RespondWithSuccess(c, http.StatusOK, "", dto.FromResult(result))
}
