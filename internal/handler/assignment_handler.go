package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mentormind-api/internal/dto"
	"github.com/noah-isme/mentormind-api/internal/models"
	"github.com/noah-isme/mentormind-api/pkg/response"
	"github.com/noah-isme/mentormind-api/pkg/validation"
)

type assignmentService interface {
	Create(ctx context.Context, teacherID string, req models.CreateAssignmentRequest, meta dto.AuditMeta) (*models.Assignment, error)
}

// AssignmentHandler handles assignment endpoints.
type AssignmentHandler struct {
	service   assignmentService
	validator *validation.Validator
}

// NewAssignmentHandler constructs an assignment handler.
func NewAssignmentHandler(svc assignmentService, v *validation.Validator) *AssignmentHandler {
	if v == nil {
		v = validation.New()
	}
	return &AssignmentHandler{service: svc, validator: v}
}

// Create godoc
// @Summary Create assignment
// @Description Create an assignment for a class owned by the caller
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateAssignmentRequest true "Assignment payload"
// @Success 201 {object} models.Assignment
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /assignments [post]
func (h *AssignmentHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		return
	}
	var req models.CreateAssignmentRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	assignment, err := h.service.Create(c.Request.Context(), claims.UserID, req, auditMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assignment)
}
