package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/mentormind-api/internal/dto"
	"github.com/noah-isme/mentormind-api/internal/models"
	appErrors "github.com/noah-isme/mentormind-api/pkg/errors"
)

type classOwnershipFinder interface {
	FindOwned(ctx context.Context, id, teacherID string) (*models.Class, error)
}

type classRepository interface {
	classOwnershipFinder
	ListByTeacher(ctx context.Context, teacherID string) ([]models.ClassWithCounts, error)
	ListAssignments(ctx context.Context, classID string) ([]models.AssignmentSummary, error)
}

type classStudentRepository interface {
	ListByClass(ctx context.Context, classID string) ([]models.Student, error)
}

// ClassService serves the class views of the owning teacher.
type ClassService struct {
	classes  classRepository
	students classStudentRepository
	logger   *zap.Logger
}

// NewClassService constructs a ClassService.
func NewClassService(classes classRepository, students classStudentRepository, logger *zap.Logger) *ClassService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassService{classes: classes, students: students, logger: logger}
}

// List returns the classes owned by teacherID.
func (s *ClassService) List(ctx context.Context, teacherID string) ([]models.ClassWithCounts, error) {
	classes, err := s.classes.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list classes")
	}
	if classes == nil {
		classes = []models.ClassWithCounts{}
	}
	return classes, nil
}

// Roster returns the students of an owned class.
func (s *ClassService) Roster(ctx context.Context, classID, teacherID string) ([]dto.RosterEntry, error) {
	if _, err := ensureOwnedClass(ctx, s.classes, classID, teacherID); err != nil {
		return nil, err
	}
	students, err := s.students.ListByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list roster")
	}
	roster := make([]dto.RosterEntry, 0, len(students))
	for _, student := range students {
		roster = append(roster, dto.RosterEntry{ID: student.ID, Name: student.Name, Email: student.Email})
	}
	return roster, nil
}

// Assignments returns the assignments of an owned class ordered by due date.
func (s *ClassService) Assignments(ctx context.Context, classID, teacherID string) ([]dto.AssignmentListItem, error) {
	if _, err := ensureOwnedClass(ctx, s.classes, classID, teacherID); err != nil {
		return nil, err
	}
	rows, err := s.classes.ListAssignments(ctx, classID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list assignments")
	}
	items := make([]dto.AssignmentListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.AssignmentListItem{
			ID:              row.ID,
			Title:           row.Title,
			Topic:           row.Topic,
			DueAt:           row.DueAt.UTC(),
			TimeEstimateMin: row.TimeEstimateMin,
		})
	}
	return items, nil
}

// ensureOwnedClass resolves a class visible to teacherID. Absent and foreign
// classes both map to ErrClassNotFound.
func ensureOwnedClass(ctx context.Context, finder classOwnershipFinder, classID, teacherID string) (*models.Class, error) {
	if classID == "" || teacherID == "" {
		return nil, appErrors.ErrClassNotFound
	}
	class, err := finder.FindOwned(ctx, classID, teacherID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrClassNotFound
		}
		return nil, appErrors.Internal(err, "failed to load class")
	}
	return class, nil
}
