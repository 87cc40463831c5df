package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/noah-isme/mentormind-api/internal/dto"
	"github.com/noah-isme/mentormind-api/internal/models"
	appErrors "github.com/noah-isme/mentormind-api/pkg/errors"
	"github.com/noah-isme/mentormind-api/pkg/validation"
)

type assignmentRepository interface {
	classOwnershipFinder
	CreateAssignment(ctx context.Context, assignment *models.Assignment) error
}

type auditWriter interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// AssignmentService creates assignments for classes owned by the caller.
type AssignmentService struct {
	repo      assignmentRepository
	audit     auditWriter
	cache     *CacheService
	metrics   *MetricsService
	validator *validation.Validator
	logger    *zap.Logger
}

// NewAssignmentService constructs an AssignmentService.
func NewAssignmentService(repo assignmentRepository, audit auditWriter, cache *CacheService, metrics *MetricsService, validate *validation.Validator, logger *zap.Logger) *AssignmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validation.New()
	}
	return &AssignmentService{repo: repo, audit: audit, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// Create validates the payload, checks class ownership and persists the assignment.
// Nothing is written when validation or the ownership check fails.
func (s *AssignmentService) Create(ctx context.Context, teacherID string, req models.CreateAssignmentRequest, meta dto.AuditMeta) (*models.Assignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, s.validator.Invalid(err)
	}
	dueAt, err := validation.ParseDateTime(req.DueAt)
	if err != nil {
		return nil, s.validator.Invalid(err)
	}

	if _, err := ensureOwnedClass(ctx, s.repo, req.ClassID, teacherID); err != nil {
		return nil, err
	}

	assignment := &models.Assignment{
		ClassID:         req.ClassID,
		Title:           req.Title,
		Topic:           req.Topic,
		DueAt:           dueAt.UTC().Truncate(models.TimestampPrecision),
		TimeEstimateMin: req.TimeEstimateMin,
	}
	if err := s.repo.CreateAssignment(ctx, assignment); err != nil {
		return nil, appErrors.Internal(err, "failed to create assignment")
	}
	s.metrics.IncAssignmentsCreated()

	if err := s.cache.Invalidate(ctx, classMetricsPattern(assignment.ClassID)); err != nil {
		s.logger.Warn("failed to invalidate class metrics cache", zap.String("class_id", assignment.ClassID), zap.Error(err))
	}

	if s.audit != nil {
		values, _ := json.Marshal(assignment)
		if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
			UserID:     &teacherID,
			Action:     models.AuditActionAssignmentCreate,
			Resource:   "assignment",
			ResourceID: &assignment.ID,
			NewValues:  values,
			IPAddress:  meta.IP,
			UserAgent:  meta.UserAgent,
		}); err != nil {
			s.logger.Warn("failed to record assignment audit log", zap.Error(err))
		}
	}

	return assignment, nil
}
