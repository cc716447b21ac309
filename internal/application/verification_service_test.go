package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dashboard-rbac/internal/domain"
	"dashboard-rbac/internal/ports"
)

type verificationRepoMock struct{ mock.Mock }

func (m *verificationRepoMock) Replace(ctx context.Context, rec domain.VerificationRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *verificationRepoMock) GetByEmail(ctx context.Context, email string) (domain.VerificationRecord, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.VerificationRecord), args.Error(1)
}

func (m *verificationRepoMock) MarkVerified(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

type mailerMock struct{ mock.Mock }

func (m *mailerMock) Send(ctx context.Context, msg ports.EmailMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type tokenIssuerMock struct{ mock.Mock }

func (m *tokenIssuerMock) Issue(email string) (string, error) {
	args := m.Called(email)
	return args.String(0), args.Error(1)
}

func (m *tokenIssuerMock) Verify(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

func newVerificationService() (*VerificationService, *verificationRepoMock, *mailerMock, *tokenIssuerMock) {
	repo := new(verificationRepoMock)
	mailer := new(mailerMock)
	tokens := new(tokenIssuerMock)
	svc := NewVerificationService(repo, mailer, tokens, 10*time.Minute)
	return svc, repo, mailer, tokens
}

func TestVerificationService_RequestCode(t *testing.T) {
	svc, repo, mailer, _ := newVerificationService()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.nowFunc = func() time.Time { return now }

	var sentCode string
	repo.On("Replace", mock.Anything, mock.MatchedBy(func(rec domain.VerificationRecord) bool {
		sentCode = rec.Code
		return rec.Email == "a@x.com" &&
			len(rec.Code) == 6 &&
			!rec.Verified &&
			rec.ExpiresAt.Equal(now.Add(10*time.Minute))
	})).Return(nil)
	mailer.On("Send", mock.Anything, mock.MatchedBy(func(msg ports.EmailMessage) bool {
		return msg.To == "a@x.com"
	})).Return(nil)

	require.NoError(t, svc.RequestCode(context.Background(), "a@x.com"))
	assert.Len(t, sentCode, 6)
	repo.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

// A second request replaces the first record wholesale; Replace is the
// only write path, so exactly one active record per email can exist.
func TestVerificationService_RequestCodeTwiceReplaces(t *testing.T) {
	svc, repo, mailer, _ := newVerificationService()

	var records []domain.VerificationRecord
	repo.On("Replace", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		records = append(records, args.Get(1).(domain.VerificationRecord))
	}).Return(nil).Twice()
	mailer.On("Send", mock.Anything, mock.Anything).Return(nil).Twice()

	require.NoError(t, svc.RequestCode(context.Background(), "a@x.com"))
	require.NoError(t, svc.RequestCode(context.Background(), "a@x.com"))

	require.Len(t, records, 2)
	assert.Equal(t, records[0].Email, records[1].Email)
	repo.AssertNumberOfCalls(t, "Replace", 2)
}

func TestVerificationService_RequestCodeInvalidEmail(t *testing.T) {
	svc, _, _, _ := newVerificationService()
	err := svc.RequestCode(context.Background(), "not-an-email")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestVerificationService_VerifyCode(t *testing.T) {
	svc, repo, _, tokens := newVerificationService()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.nowFunc = func() time.Time { return now }

	repo.On("GetByEmail", mock.Anything, "a@x.com").Return(domain.VerificationRecord{
		Email:     "a@x.com",
		Code:      "123456",
		ExpiresAt: now.Add(5 * time.Minute),
	}, nil)
	repo.On("MarkVerified", mock.Anything, "a@x.com").Return(nil)
	tokens.On("Issue", "a@x.com").Return("jwt-token", nil)

	token, err := svc.VerifyCode(context.Background(), "a@x.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", token)
	repo.AssertExpectations(t)
}

// Expiry wins even when the submitted code matches exactly.
func TestVerificationService_VerifyCodeExpired(t *testing.T) {
	svc, repo, _, _ := newVerificationService()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.nowFunc = func() time.Time { return now }

	repo.On("GetByEmail", mock.Anything, "a@x.com").Return(domain.VerificationRecord{
		Email:     "a@x.com",
		Code:      "123456",
		ExpiresAt: now.Add(-time.Minute),
	}, nil)

	_, err := svc.VerifyCode(context.Background(), "a@x.com", "123456")
	assert.ErrorIs(t, err, domain.ErrCodeExpired)
	repo.AssertNotCalled(t, "MarkVerified", mock.Anything, mock.Anything)
}

func TestVerificationService_VerifyCodeMismatch(t *testing.T) {
	svc, repo, _, _ := newVerificationService()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.nowFunc = func() time.Time { return now }

	repo.On("GetByEmail", mock.Anything, "a@x.com").Return(domain.VerificationRecord{
		Email:     "a@x.com",
		Code:      "123456",
		ExpiresAt: now.Add(5 * time.Minute),
	}, nil)

	_, err := svc.VerifyCode(context.Background(), "a@x.com", "654321")
	assert.ErrorIs(t, err, domain.ErrCodeMismatch)
}

// Re-verifying an already verified record succeeds without re-checking
// the code, even after the record's expiry.
func TestVerificationService_VerifyCodeIdempotentWhenVerified(t *testing.T) {
	svc, repo, _, tokens := newVerificationService()

	repo.On("GetByEmail", mock.Anything, "a@x.com").Return(domain.VerificationRecord{
		Email:     "a@x.com",
		Code:      "123456",
		Verified:  true,
		ExpiresAt: time.Now().Add(-time.Hour),
	}, nil)
	tokens.On("Issue", "a@x.com").Return("fresh-token", nil)

	token, err := svc.VerifyCode(context.Background(), "a@x.com", "anything")
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", token)
	repo.AssertNotCalled(t, "MarkVerified", mock.Anything, mock.Anything)
}

func TestVerificationService_VerifyCodeNotFound(t *testing.T) {
	svc, repo, _, _ := newVerificationService()
	repo.On("GetByEmail", mock.Anything, "a@x.com").Return(domain.VerificationRecord{}, domain.ErrNotFound)

	_, err := svc.VerifyCode(context.Background(), "a@x.com", "123456")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVerificationService_PropagatesMailerError(t *testing.T) {
	svc, repo, mailer, _ := newVerificationService()
	expectedErr := errors.New("smtp down")
	repo.On("Replace", mock.Anything, mock.Anything).Return(nil)
	mailer.On("Send", mock.Anything, mock.Anything).Return(expectedErr)

	err := svc.RequestCode(context.Background(), "a@x.com")
	assert.ErrorIs(t, err, expectedErr)
}
