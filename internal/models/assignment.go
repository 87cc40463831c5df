package models

import (
	"encoding/json"
	"time"
)

// Assignment is a piece of work set for a class.
type Assignment struct {
	ID              string    `db:"id" json:"id"`
	ClassID         string    `db:"class_id" json:"classId"`
	Title           string    `db:"title" json:"title"`
	Topic           string    `db:"topic" json:"topic"`
	DueAt           time.Time `db:"due_at" json:"dueAt"`
	TimeEstimateMin int       `db:"time_estimate_min" json:"timeEstimateMin"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}

// MarshalJSON writes the timestamps as fixed-width millisecond ISO-8601.
func (a Assignment) MarshalJSON() ([]byte, error) {
	type wire Assignment
	return json.Marshal(struct {
		wire
		DueAt     string `json:"dueAt"`
		CreatedAt string `json:"createdAt"`
		UpdatedAt string `json:"updatedAt"`
	}{wire(a), FormatTimestamp(a.DueAt), FormatTimestamp(a.CreatedAt), FormatTimestamp(a.UpdatedAt)})
}

// AssignmentSummary is the projection used by class assignment listings.
type AssignmentSummary struct {
	ID              string    `db:"id" json:"id"`
	Title           string    `db:"title" json:"title"`
	Topic           string    `db:"topic" json:"topic"`
	DueAt           time.Time `db:"due_at" json:"dueAt"`
	TimeEstimateMin int       `db:"time_estimate_min" json:"timeEstimateMin"`
}

// CreateAssignmentRequest is the payload of POST /assignments.
type CreateAssignmentRequest struct {
	ClassID         string `json:"classId" validate:"required"`
	Title           string `json:"title" validate:"required"`
	Topic           string `json:"topic" validate:"required"`
	DueAt           string `json:"dueAt" validate:"required,isodatetime"`
	TimeEstimateMin int    `json:"timeEstimateMin" validate:"required,gt=0"`
}
