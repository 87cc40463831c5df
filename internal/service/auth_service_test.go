package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/mentormind-api/internal/models"
	appErrors "github.com/noah-isme/mentormind-api/pkg/errors"
	"github.com/noah-isme/mentormind-api/pkg/validation"
)

type mockAuthRepo struct {
	userByEmail    *models.User
	findByEmailErr error
	auditLogs      []*models.AuditLog
	auditErr       error
}

func (m *mockAuthRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findByEmailErr != nil {
		return nil, m.findByEmailErr
	}
	if m.userByEmail == nil || m.userByEmail.Email != email {
		return nil, sql.ErrNoRows
	}
	return m.userByEmail, nil
}

func (m *mockAuthRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if m.findByEmailErr != nil {
		return nil, m.findByEmailErr
	}
	if m.userByEmail == nil || m.userByEmail.ID != id {
		return nil, sql.ErrNoRows
	}
	return m.userByEmail, nil
}

func (m *mockAuthRepo) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	m.auditLogs = append(m.auditLogs, log)
	return m.auditErr
}

const testSecret = "test-secret"

func newAuthServiceForTest(t *testing.T) (*AuthService, *mockAuthRepo) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &mockAuthRepo{userByEmail: &models.User{
		ID:           "teacher-1",
		Email:        "sarah.johnson@lincoln.edu",
		Name:         "Sarah Johnson",
		Role:         models.RoleTeacher,
		SchoolID:     "school-1",
		PasswordHash: string(hash),
	}}
	svc := NewAuthService(repo, validation.New(), zap.NewNop(), NewMetricsService(), AuthConfig{
		Secret: testSecret,
		Expiry: 24 * time.Hour,
		Issuer: "mentormind-api",
	})
	return svc, repo
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	svc, repo := newAuthServiceForTest(t)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "sarah.johnson@lincoln.edu", Password: "password", IP: "127.0.0.1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.UserInfo{
		ID:       "teacher-1",
		Email:    "sarah.johnson@lincoln.edu",
		Name:     "Sarah Johnson",
		Role:     models.RoleTeacher,
		SchoolID: "school-1",
	}, resp.User)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "teacher-1", claims.UserID)
	assert.Equal(t, models.RoleTeacher, claims.Role)
	assert.Equal(t, "school-1", claims.SchoolID)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)

	require.Len(t, repo.auditLogs, 1)
	assert.Equal(t, models.AuditActionLogin, repo.auditLogs[0].Action)
	assert.Equal(t, "127.0.0.1", repo.auditLogs[0].IPAddress)
}

func TestAuthServiceLoginAuditFailureIsNotFatal(t *testing.T) {
	svc, repo := newAuthServiceForTest(t)
	repo.auditErr = errors.New("audit table missing")

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "sarah.johnson@lincoln.edu", Password: "password"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestAuthServiceLoginNoUserEnumeration(t *testing.T) {
	svc, repo := newAuthServiceForTest(t)

	_, wrongPassword := svc.Login(context.Background(), models.LoginRequest{Email: "sarah.johnson@lincoln.edu", Password: "nope"})
	_, unknownEmail := svc.Login(context.Background(), models.LoginRequest{Email: "ghost@lincoln.edu", Password: "password"})

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	wp, ue := appErrors.FromError(wrongPassword), appErrors.FromError(unknownEmail)
	assert.Equal(t, 401, wp.Status)
	assert.Equal(t, "Invalid credentials", wp.Message)
	assert.Equal(t, wp.Status, ue.Status)
	assert.Equal(t, wp.Message, ue.Message)
	assert.Equal(t, wp.Details, ue.Details)
	assert.Empty(t, repo.auditLogs)
}

func TestAuthServiceLoginInvalidPayload(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "not-an-email"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "Invalid input", appErr.Message)

	details, ok := appErr.Details.([]validation.FieldError)
	require.True(t, ok)
	fields := map[string]bool{}
	for _, d := range details {
		fields[d.Field] = true
	}
	assert.True(t, fields["email"])
	assert.True(t, fields["password"])
}

func TestAuthServiceLoginRepositoryFailure(t *testing.T) {
	svc, repo := newAuthServiceForTest(t)
	repo.findByEmailErr = errors.New("connection refused")

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "sarah.johnson@lincoln.edu", Password: "password"})
	require.Error(t, err)
	assert.Equal(t, 500, appErrors.FromError(err).Status)
}

func TestAuthServiceValidateTokenRejectsExpired(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)
	svc.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "sarah.johnson@lincoln.edu", Password: "password"})
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(resp.Token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrInvalidToken))
	assert.Equal(t, 403, appErrors.FromError(err).Status)
}

func TestAuthServiceValidateTokenRejectsForeignSignatures(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	claims := &models.JWTClaims{UserID: "teacher-1", RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = svc.ValidateToken(forged)
	assert.True(t, errors.Is(err, appErrors.ErrInvalidToken))

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.ValidateToken(unsigned)
	assert.True(t, errors.Is(err, appErrors.ErrInvalidToken))

	_, err = svc.ValidateToken("garbage")
	assert.True(t, errors.Is(err, appErrors.ErrInvalidToken))
}

func TestAuthServiceProfile(t *testing.T) {
	svc, repo := newAuthServiceForTest(t)

	profile, err := svc.Profile(context.Background(), "teacher-1")
	require.NoError(t, err)
	assert.Equal(t, models.UserInfo{
		ID:       "teacher-1",
		Email:    "sarah.johnson@lincoln.edu",
		Name:     "Sarah Johnson",
		Role:     models.RoleTeacher,
		SchoolID: "school-1",
	}, *profile)

	_, err = svc.Profile(context.Background(), "teacher-9")
	assert.True(t, errors.Is(err, appErrors.ErrInvalidToken))

	repo.findByEmailErr = errors.New("connection reset")
	_, err = svc.Profile(context.Background(), "teacher-1")
	assert.Equal(t, 500, appErrors.FromError(err).Status)
}
