package dto

import (
	"encoding/json"
	"time"

	"github.com/noah-isme/mentormind-api/internal/models"
)

// RosterEntry is a student as listed in a class roster.
type RosterEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AssignmentListItem is an assignment as listed for a class.
type AssignmentListItem struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Topic           string    `json:"topic"`
	DueAt           time.Time `json:"dueAt"`
	TimeEstimateMin int       `json:"timeEstimateMin"`
}

// MarshalJSON writes dueAt as fixed-width millisecond ISO-8601.
func (a AssignmentListItem) MarshalJSON() ([]byte, error) {
	type wire AssignmentListItem
	return json.Marshal(struct {
		wire
		DueAt string `json:"dueAt"`
	}{wire(a), models.FormatTimestamp(a.DueAt)})
}

// AuditMeta carries request metadata recorded with audit entries.
type AuditMeta struct {
	IP        string
	UserAgent string
}
