package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/mentormind-api/internal/models"
)

// StudentRepository reads students and the activity rows hanging off them.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// ListByClass returns the students of a class in enrolment order.
func (r *StudentRepository) ListByClass(ctx context.Context, classID string) ([]models.Student, error) {
	const query = `SELECT id, name, email, class_id, created_at FROM students WHERE class_id = $1 ORDER BY created_at, id`
	students := []models.Student{}
	if err := r.db.SelectContext(ctx, &students, query, classID); err != nil {
		return nil, fmt.Errorf("list students by class: %w", err)
	}
	return students, nil
}

type scoreRow struct {
	StudentID string  `db:"student_id"`
	Value     float64 `db:"value"`
}

type moodRow struct {
	StudentID string `db:"student_id"`
	MoodScore int    `db:"mood_score"`
}

// ListActivity loads every student of a class together with their submission
// scores, the accuracies of practice sessions started inside [since, until] and
// their latest mood check.
func (r *StudentRepository) ListActivity(ctx context.Context, classID string, since, until time.Time) ([]models.StudentActivity, error) {
	students, err := r.ListByClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return []models.StudentActivity{}, nil
	}

	const submissionsQuery = `SELECT sub.student_id, sub.score_pct AS value FROM submissions sub
JOIN students s ON s.id = sub.student_id WHERE s.class_id = $1 ORDER BY sub.completed_at, sub.id`
	var scores []scoreRow
	if err := r.db.SelectContext(ctx, &scores, submissionsQuery, classID); err != nil {
		return nil, fmt.Errorf("list class submissions: %w", err)
	}

	const sessionsQuery = `SELECT ps.student_id, ps.accuracy_pct AS value FROM practice_sessions ps
JOIN students s ON s.id = ps.student_id WHERE s.class_id = $1 AND ps.started_at >= $2 AND ps.started_at <= $3
ORDER BY ps.started_at, ps.id`
	var sessions []scoreRow
	if err := r.db.SelectContext(ctx, &sessions, sessionsQuery, classID, since, until); err != nil {
		return nil, fmt.Errorf("list class practice sessions: %w", err)
	}

	const moodQuery = `SELECT DISTINCT ON (mc.student_id) mc.student_id, mc.mood_score FROM mood_checks mc
JOIN students s ON s.id = mc.student_id WHERE s.class_id = $1 ORDER BY mc.student_id, mc.date DESC, mc.id DESC`
	var moods []moodRow
	if err := r.db.SelectContext(ctx, &moods, moodQuery, classID); err != nil {
		return nil, fmt.Errorf("list latest mood checks: %w", err)
	}

	activity := make([]models.StudentActivity, len(students))
	index := make(map[string]int, len(students))
	for i, student := range students {
		activity[i] = models.StudentActivity{Student: student}
		index[student.ID] = i
	}
	for _, row := range scores {
		if i, ok := index[row.StudentID]; ok {
			activity[i].SubmissionScores = append(activity[i].SubmissionScores, row.Value)
		}
	}
	for _, row := range sessions {
		if i, ok := index[row.StudentID]; ok {
			activity[i].SessionAccuracies = append(activity[i].SessionAccuracies, row.Value)
		}
	}
	for _, row := range moods {
		if i, ok := index[row.StudentID]; ok {
			mood := row.MoodScore
			activity[i].RecentMood = &mood
		}
	}
	return activity, nil
}
