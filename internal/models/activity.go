package models

import "time"

// Submission is a student's scored attempt at an assignment.
type Submission struct {
	ID           string    `db:"id"`
	AssignmentID string    `db:"assignment_id"`
	StudentID    string    `db:"student_id"`
	ScorePct     float64   `db:"score_pct"`
	CompletedAt  time.Time `db:"completed_at"`
}

// PracticeSession is a self-directed practice block.
type PracticeSession struct {
	ID          string    `db:"id"`
	StudentID   string    `db:"student_id"`
	StartedAt   time.Time `db:"started_at"`
	DurationMin int       `db:"duration_min"`
	AccuracyPct float64   `db:"accuracy_pct"`
}

// MoodCheck is a daily 1-5 wellbeing score.
type MoodCheck struct {
	ID        string    `db:"id"`
	StudentID string    `db:"student_id"`
	Date      time.Time `db:"date"`
	MoodScore int       `db:"mood_score"`
}

// StudentActivity bundles the rows the class metrics are computed from.
// SessionAccuracies only holds sessions inside the trailing window.
type StudentActivity struct {
	Student           Student
	SubmissionScores  []float64
	SessionAccuracies []float64
	RecentMood        *int
}
