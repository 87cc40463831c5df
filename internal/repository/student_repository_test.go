package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentRepositoryListByClass(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "email", "class_id", "created_at"}).
		AddRow("student-1", "Emma Wilson", "emma.wilson@student.lincoln.edu", "class-1", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email, class_id, created_at FROM students WHERE class_id = $1 ORDER BY created_at, id")).
		WithArgs("class-1").
		WillReturnRows(rows)

	students, err := repo.ListByClass(context.Background(), "class-1")
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "Emma Wilson", students[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryListActivity(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	until := time.Date(2024, 9, 15, 12, 0, 0, 0, time.UTC)
	since := until.Add(-7 * 24 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("FROM students WHERE class_id = $1")).
		WithArgs("class-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "class_id", "created_at"}).
			AddRow("s1", "Emma Wilson", "emma@x", "class-1", until).
			AddRow("s2", "Liam Brown", "liam@x", "class-1", until))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT sub.student_id, sub.score_pct AS value FROM submissions sub")).
		WithArgs("class-1").
		WillReturnRows(sqlmock.NewRows([]string{"student_id", "value"}).
			AddRow("s1", 80.0).
			AddRow("s1", 90.0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT ps.student_id, ps.accuracy_pct AS value FROM practice_sessions ps")).
		WithArgs("class-1", since, until).
		WillReturnRows(sqlmock.NewRows([]string{"student_id", "value"}).
			AddRow("s1", 70.0).
			AddRow("s1", 80.0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT ON (mc.student_id) mc.student_id, mc.mood_score FROM mood_checks mc")).
		WithArgs("class-1").
		WillReturnRows(sqlmock.NewRows([]string{"student_id", "mood_score"}).AddRow("s1", 2))

	activity, err := repo.ListActivity(context.Background(), "class-1", since, until)
	require.NoError(t, err)
	require.Len(t, activity, 2)

	assert.Equal(t, "s1", activity[0].Student.ID)
	assert.Equal(t, []float64{80, 90}, activity[0].SubmissionScores)
	assert.Equal(t, []float64{70, 80}, activity[0].SessionAccuracies)
	require.NotNil(t, activity[0].RecentMood)
	assert.Equal(t, 2, *activity[0].RecentMood)

	assert.Equal(t, "s2", activity[1].Student.ID)
	assert.Empty(t, activity[1].SubmissionScores)
	assert.Nil(t, activity[1].RecentMood)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryListActivityEmptyClass(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery("FROM students WHERE class_id").
		WithArgs("class-empty").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "class_id", "created_at"}))

	activity, err := repo.ListActivity(context.Background(), "class-empty", time.Now().Add(-time.Hour), time.Now())
	require.NoError(t, err)
	assert.Empty(t, activity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryListActivityPropagatesErrors(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	boom := errors.New("connection reset")
	mock.ExpectQuery("FROM students WHERE class_id").
		WithArgs("class-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "class_id", "created_at"}).
			AddRow("s1", "Emma Wilson", "emma@x", "class-1", time.Now()))
	mock.ExpectQuery("FROM submissions sub").WillReturnError(boom)

	_, err := repo.ListActivity(context.Background(), "class-1", time.Now().Add(-time.Hour), time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
}
