// Package seed loads the demo dataset used for local development.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/mentormind-api/internal/models"
)

// DemoPassword is the password of every seeded account.
const DemoPassword = "password"

const day = 24 * time.Hour

type statement struct {
	query string
	arg   interface{}
}

// dataset builds the demo rows relative to now. Seeding twice is harmless
// because every insert ignores conflicts.
func dataset(now time.Time, passwordHash string) []statement {
	now = now.UTC()
	var out []statement
	add := func(query string, args ...interface{}) {
		for _, a := range args {
			out = append(out, statement{query: query, arg: a})
		}
	}

	add(`INSERT INTO schools (id, name, timezone) VALUES (:id, :name, :timezone) ON CONFLICT (id) DO NOTHING`,
		models.School{ID: "school-1", Name: "Springfield Elementary", Timezone: "America/New_York"},
		models.School{ID: "school-2", Name: "Shelbyville High", Timezone: "America/Chicago"},
	)

	user := func(id, email, name string, role models.UserRole) models.User {
		return models.User{ID: id, Email: email, Name: name, Role: role, SchoolID: "school-1", PasswordHash: passwordHash, CreatedAt: now}
	}
	add(`INSERT INTO users (id, email, name, role, school_id, password_hash, created_at) VALUES (:id, :email, :name, :role, :school_id, :password_hash, :created_at) ON CONFLICT (email) DO NOTHING`,
		user("teacher-1", "teacher1@school.com", "John Smith", models.RoleTeacher),
		user("teacher-2", "teacher2@school.com", "Jane Doe", models.RoleTeacher),
		user("admin-1", "admin@school.com", "Principal Skinner", models.RoleAdmin),
	)

	class := func(id, name, teacherID string, offset time.Duration) models.Class {
		return models.Class{ID: id, Name: name, SchoolID: "school-1", TeacherID: teacherID, CreatedAt: now.Add(offset)}
	}
	add(`INSERT INTO classes (id, name, school_id, teacher_id, created_at) VALUES (:id, :name, :school_id, :teacher_id, :created_at) ON CONFLICT (id) DO NOTHING`,
		class("class-1", "Mathematics 101", "teacher-1", 0),
		class("class-2", "Science 201", "teacher-1", time.Second),
		class("class-3", "English Literature", "teacher-2", 2*time.Second),
	)

	student := func(n int, name, email, classID string) models.Student {
		return models.Student{ID: fmt.Sprintf("student-%d", n), Name: name, Email: email, ClassID: classID, CreatedAt: now.Add(time.Duration(n) * time.Second)}
	}
	add(`INSERT INTO students (id, name, email, class_id, created_at) VALUES (:id, :name, :email, :class_id, :created_at) ON CONFLICT (id) DO NOTHING`,
		student(1, "Alice Johnson", "alice@student.com", "class-1"),
		student(2, "Bob Williams", "bob@student.com", "class-1"),
		student(3, "Charlie Brown", "charlie@student.com", "class-2"),
		student(4, "Diana Miller", "diana@student.com", "class-2"),
		student(5, "Edward Davis", "edward@student.com", "class-3"),
	)

	assignment := func(id, classID, title, topic string, dueIn time.Duration, minutes int) models.Assignment {
		return models.Assignment{ID: id, ClassID: classID, Title: title, Topic: topic, DueAt: now.Add(dueIn), TimeEstimateMin: minutes, CreatedAt: now, UpdatedAt: now}
	}
	add(`INSERT INTO assignments (id, class_id, title, topic, due_at, time_estimate_min, created_at, updated_at) VALUES (:id, :class_id, :title, :topic, :due_at, :time_estimate_min, :created_at, :updated_at) ON CONFLICT (id) DO NOTHING`,
		assignment("assignment-1", "class-1", "Algebra Basics", "Linear Equations", 2*day, 60),
		assignment("assignment-2", "class-2", "Chemistry Lab", "Chemical Reactions", 5*day, 90),
		assignment("assignment-3", "class-3", "Shakespeare Analysis", "Hamlet", 7*day, 120),
	)

	add(`INSERT INTO submissions (id, assignment_id, student_id, score_pct, completed_at) VALUES (:id, :assignment_id, :student_id, :score_pct, :completed_at) ON CONFLICT (id) DO NOTHING`,
		models.Submission{ID: "submission-1", AssignmentID: "assignment-1", StudentID: "student-1", ScorePct: 85.5, CompletedAt: now.Add(-day)},
		models.Submission{ID: "submission-2", AssignmentID: "assignment-1", StudentID: "student-2", ScorePct: 92.0, CompletedAt: now.Add(-2 * day)},
		models.Submission{ID: "submission-3", AssignmentID: "assignment-2", StudentID: "student-3", ScorePct: 78.0, CompletedAt: now.Add(-day)},
	)

	add(`INSERT INTO practice_sessions (id, student_id, started_at, duration_min, accuracy_pct) VALUES (:id, :student_id, :started_at, :duration_min, :accuracy_pct) ON CONFLICT (id) DO NOTHING`,
		models.PracticeSession{ID: "session-1", StudentID: "student-1", StartedAt: now.Add(-day), DurationMin: 45, AccuracyPct: 78.2},
		models.PracticeSession{ID: "session-2", StudentID: "student-1", StartedAt: now.Add(-3 * day), DurationMin: 30, AccuracyPct: 88.5},
		models.PracticeSession{ID: "session-3", StudentID: "student-2", StartedAt: now.Add(-2 * day), DurationMin: 60, AccuracyPct: 65.0},
		models.PracticeSession{ID: "session-4", StudentID: "student-3", StartedAt: now.Add(-4 * day), DurationMin: 25, AccuracyPct: 92.0},
	)

	mood := func(n, score int) models.MoodCheck {
		return models.MoodCheck{ID: fmt.Sprintf("mood-%d", n), StudentID: fmt.Sprintf("student-%d", n), Date: now, MoodScore: score}
	}
	add(`INSERT INTO mood_checks (id, student_id, date, mood_score) VALUES (:id, :student_id, :date, :mood_score) ON CONFLICT (id) DO NOTHING`,
		mood(1, 4), mood(2, 2), mood(3, 5), mood(4, 3), mood(5, 1),
	)

	return out
}

// Run inserts the demo dataset in a single transaction.
func Run(ctx context.Context, db *sqlx.DB, now time.Time, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	statements := dataset(now, string(hash))
	for _, st := range statements {
		if _, err := tx.NamedExecContext(ctx, st.query, st.arg); err != nil {
			return fmt.Errorf("seed insert: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed transaction: %w", err)
	}

	logger.Info("seed data created", zap.Int("rows", len(statements)))
	return nil
}
