package seed

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mentormind-api/internal/models"
)

func TestDatasetMatchesDemoData(t *testing.T) {
	now := time.Date(2024, 9, 15, 12, 0, 0, 0, time.UTC)
	statements := dataset(now, "hash")
	require.Len(t, statements, 28)

	var users []models.User
	var sessions []models.PracticeSession
	for _, st := range statements {
		switch v := st.arg.(type) {
		case models.User:
			users = append(users, v)
		case models.PracticeSession:
			sessions = append(sessions, v)
		}
	}
	require.Len(t, users, 3)
	for _, u := range users {
		assert.Equal(t, "hash", u.PasswordHash)
	}
	for _, s := range sessions {
		assert.True(t, s.StartedAt.After(now.Add(-7*day)), "session %s outside the trailing week", s.ID)
	}
}

func TestRunInsertsInOneTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	for i := 0; i < 28; i++ {
		mock.ExpectExec("INSERT INTO").WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	err = Run(context.Background(), sqlx.NewDb(db, "sqlmock"), time.Now(), nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO schools").WillReturnError(errors.New("relation does not exist"))
	mock.ExpectRollback()

	err = Run(context.Background(), sqlx.NewDb(db, "sqlmock"), time.Now(), nil)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
