package models

import "time"

// Class is a teaching group owned by exactly one teacher.
type Class struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	SchoolID  string    `db:"school_id" json:"schoolId"`
	TeacherID string    `db:"teacher_id" json:"teacherId"`
	CreatedAt time.Time `db:"created_at" json:"-"`
}

// ClassWithCounts is a class row annotated with collection sizes.
type ClassWithCounts struct {
	ID              string `db:"id" json:"id"`
	Name            string `db:"name" json:"name"`
	SchoolID        string `db:"school_id" json:"schoolId"`
	TeacherID       string `db:"teacher_id" json:"teacherId"`
	StudentCount    int    `db:"student_count" json:"studentCount"`
	AssignmentCount int    `db:"assignment_count" json:"assignmentCount"`
}

// Student belongs to exactly one class.
type Student struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	ClassID   string    `db:"class_id" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"-"`
}
