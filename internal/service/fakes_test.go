package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/noah-isme/mentormind-api/internal/models"
	appErrors "github.com/noah-isme/mentormind-api/pkg/errors"
)

type fakeClassRepo struct {
	classes       map[string]*models.Class
	withCounts    []models.ClassWithCounts
	assignments   []models.AssignmentSummary
	dueCount      int
	findErr       error
	listErr       error
	createErr     error
	dueErr        error
	created       []*models.Assignment
	dueFrom       time.Time
	dueTo         time.Time
	findOwnedCall int
}

func (f *fakeClassRepo) FindOwned(ctx context.Context, id, teacherID string) (*models.Class, error) {
	f.findOwnedCall++
	if f.findErr != nil {
		return nil, f.findErr
	}
	class, ok := f.classes[id]
	if !ok || class.TeacherID != teacherID {
		return nil, sql.ErrNoRows
	}
	return class, nil
}

func (f *fakeClassRepo) ListByTeacher(ctx context.Context, teacherID string) ([]models.ClassWithCounts, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.ClassWithCounts
	for _, c := range f.withCounts {
		if c.TeacherID == teacherID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeClassRepo) ListAssignments(ctx context.Context, classID string) ([]models.AssignmentSummary, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.assignments, nil
}

func (f *fakeClassRepo) CreateAssignment(ctx context.Context, assignment *models.Assignment) error {
	if f.createErr != nil {
		return f.createErr
	}
	assignment.ID = "assignment-new"
	assignment.CreatedAt = time.Date(2024, 9, 15, 12, 0, 0, 0, time.UTC)
	assignment.UpdatedAt = assignment.CreatedAt
	f.created = append(f.created, assignment)
	return nil
}

func (f *fakeClassRepo) CountDueAssignments(ctx context.Context, classID string, from, to time.Time) (int, error) {
	f.dueFrom, f.dueTo = from, to
	if f.dueErr != nil {
		return 0, f.dueErr
	}
	return f.dueCount, nil
}

type fakeStudentRepo struct {
	students   []models.Student
	activity   []models.StudentActivity
	err        error
	calls      int
	sinceUntil [2]time.Time
}

func (f *fakeStudentRepo) ListByClass(ctx context.Context, classID string) ([]models.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.students, nil
}

func (f *fakeStudentRepo) ListActivity(ctx context.Context, classID string, since, until time.Time) ([]models.StudentActivity, error) {
	f.calls++
	f.sinceUntil = [2]time.Time{since, until}
	if f.err != nil {
		return nil, f.err
	}
	return f.activity, nil
}

type fakeAuditWriter struct {
	logs []*models.AuditLog
}

func (f *fakeAuditWriter) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	f.logs = append(f.logs, log)
	return nil
}

// memoryCache is an in-memory CacheRepository supporting trailing-* patterns.
type memoryCache struct {
	values  map[string][]byte
	deleted []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string][]byte{}}
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[key] = raw
	return nil
}

func (m *memoryCache) DeleteByPattern(ctx context.Context, pattern string) error {
	m.deleted = append(m.deleted, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range m.values {
		if strings.HasPrefix(key, prefix) {
			delete(m.values, key)
		}
	}
	return nil
}

func intPtr(v int) *int { return &v }
