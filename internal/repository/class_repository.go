package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/mentormind-api/internal/models"
)

// ClassRepository manages persistence for classes and their assignments.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository constructs a new class repository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// ListByTeacher returns the classes owned by a teacher with student and assignment counts.
func (r *ClassRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.ClassWithCounts, error) {
	const query = `SELECT c.id, c.name, c.school_id, c.teacher_id,
	(SELECT COUNT(*) FROM students s WHERE s.class_id = c.id) AS student_count,
	(SELECT COUNT(*) FROM assignments a WHERE a.class_id = c.id) AS assignment_count
FROM classes c WHERE c.teacher_id = $1 ORDER BY c.created_at, c.id`
	classes := []models.ClassWithCounts{}
	if err := r.db.SelectContext(ctx, &classes, query, teacherID); err != nil {
		return nil, fmt.Errorf("list classes by teacher: %w", err)
	}
	return classes, nil
}

// FindOwned fetches a class only when it belongs to the given teacher.
func (r *ClassRepository) FindOwned(ctx context.Context, id, teacherID string) (*models.Class, error) {
	const query = `SELECT id, name, school_id, teacher_id, created_at FROM classes WHERE id = $1 AND teacher_id = $2 LIMIT 1`
	var class models.Class
	if err := r.db.GetContext(ctx, &class, query, id, teacherID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find owned class: %w", err)
	}
	return &class, nil
}

// ListAssignments returns the assignments of a class ordered by due date.
func (r *ClassRepository) ListAssignments(ctx context.Context, classID string) ([]models.AssignmentSummary, error) {
	const query = `SELECT id, title, topic, due_at, time_estimate_min FROM assignments WHERE class_id = $1 ORDER BY due_at ASC, id ASC`
	items := []models.AssignmentSummary{}
	if err := r.db.SelectContext(ctx, &items, query, classID); err != nil {
		return nil, fmt.Errorf("list class assignments: %w", err)
	}
	return items, nil
}

// CreateAssignment inserts a new assignment, filling id and timestamps when empty.
func (r *ClassRepository) CreateAssignment(ctx context.Context, assignment *models.Assignment) error {
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = now
	}
	if assignment.UpdatedAt.IsZero() {
		assignment.UpdatedAt = assignment.CreatedAt
	}
	const query = `INSERT INTO assignments (id, class_id, title, topic, due_at, time_estimate_min, created_at, updated_at)
VALUES (:id, :class_id, :title, :topic, :due_at, :time_estimate_min, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, assignment); err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	return nil
}

// CountDueAssignments counts class assignments due inside [from, to].
func (r *ClassRepository) CountDueAssignments(ctx context.Context, classID string, from, to time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM assignments WHERE class_id = $1 AND due_at >= $2 AND due_at <= $3`
	var count int
	if err := r.db.GetContext(ctx, &count, query, classID, from, to); err != nil {
		return 0, fmt.Errorf("count due assignments: %w", err)
	}
	return count, nil
}
