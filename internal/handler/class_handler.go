package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mentormind-api/internal/dto"
	"github.com/noah-isme/mentormind-api/internal/middleware"
	"github.com/noah-isme/mentormind-api/internal/models"
	"github.com/noah-isme/mentormind-api/internal/service"
	"github.com/noah-isme/mentormind-api/pkg/response"
)

type classService interface {
	List(ctx context.Context, teacherID string) ([]models.ClassWithCounts, error)
	Roster(ctx context.Context, classID, teacherID string) ([]dto.RosterEntry, error)
	Assignments(ctx context.Context, classID, teacherID string) ([]dto.AssignmentListItem, error)
}

type classMetricsService interface {
	Get(ctx context.Context, classID, teacherID string) (*dto.ClassMetrics, bool, error)
}

type metricsExporter interface {
	ExportClassMetrics(ctx context.Context, classID, teacherID, format string) (*service.ExportResult, error)
}

// ClassHandler serves the class-scoped endpoints of the teacher portal.
type ClassHandler struct {
	classes  classService
	metrics  classMetricsService
	exporter metricsExporter
}

// NewClassHandler constructs a class handler.
func NewClassHandler(classes classService, metrics classMetricsService, exporter metricsExporter) *ClassHandler {
	return &ClassHandler{classes: classes, metrics: metrics, exporter: exporter}
}

// List godoc
// @Summary List classes
// @Description List the classes owned by the caller with student and assignment counts
// @Tags Classes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ClassWithCounts
// @Failure 401 {object} response.ErrorBody
// @Router /classes [get]
func (h *ClassHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		return
	}
	classes, err := h.classes.List(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes)
}

// Roster godoc
// @Summary Class roster
// @Tags Classes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Success 200 {array} dto.RosterEntry
// @Failure 404 {object} response.ErrorBody
// @Router /classes/{id}/roster [get]
func (h *ClassHandler) Roster(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		return
	}
	roster, err := h.classes.Roster(c.Request.Context(), c.Param("id"), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, roster)
}

// Assignments godoc
// @Summary Class assignments
// @Description Assignments of the class ordered by due date
// @Tags Classes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Success 200 {array} dto.AssignmentListItem
// @Failure 404 {object} response.ErrorBody
// @Router /classes/{id}/assignments [get]
func (h *ClassHandler) Assignments(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		return
	}
	items, err := h.classes.Assignments(c.Request.Context(), c.Param("id"), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// Metrics godoc
// @Summary Class metrics
// @Description Per-student engagement metrics and class summary over the trailing week
// @Tags Classes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Success 200 {object} dto.ClassMetrics
// @Failure 404 {object} response.ErrorBody
// @Router /classes/{id}/metrics [get]
func (h *ClassHandler) Metrics(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		return
	}
	result, cached, err := h.metrics.Get(c.Request.Context(), c.Param("id"), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheStatus(c, cached)
	response.JSON(c, http.StatusOK, result)
}

// ExportMetrics godoc
// @Summary Export class metrics
// @Tags Classes
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /classes/{id}/metrics/export [get]
func (h *ClassHandler) ExportMetrics(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		return
	}
	result, err := h.exporter.ExportClassMetrics(c.Request.Context(), c.Param("id"), claims.UserID, c.DefaultQuery("format", service.ExportFormatCSV))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, result.Filename, result.ContentType, result.Data)
}
