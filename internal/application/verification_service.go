package application

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"time"

	"dashboard-rbac/internal/domain"
	"dashboard-rbac/internal/ports"
)

type VerificationService struct {
	repo    ports.VerificationRepository
	mailer  ports.EmailSender
	tokens  ports.TokenIssuer
	codeTTL time.Duration

	nowFunc func() time.Time // mockable
}

func NewVerificationService(repo ports.VerificationRepository, mailer ports.EmailSender, tokens ports.TokenIssuer, codeTTL time.Duration) *VerificationService {
	return &VerificationService{
		repo:    repo,
		mailer:  mailer,
		tokens:  tokens,
		codeTTL: codeTTL,
		nowFunc: time.Now,
	}
}

// RequestCode issues a fresh 6-digit code for the email and delivers it
// out-of-band. The write is an atomic replace keyed on the email, so a
// second request discards the first record without a race window.
func (s *VerificationService) RequestCode(ctx context.Context, email string) error {
	if err := validateVar(email, "required,email"); err != nil {
		return err
	}
	code, err := generateCode()
	if err != nil {
		return err
	}
	now := s.nowFunc().UTC()
	rec := domain.VerificationRecord{
		Email:     email,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(s.codeTTL),
	}
	if err := s.repo.Replace(ctx, rec); err != nil {
		return err
	}
	return s.mailer.Send(ctx, ports.EmailMessage{
		To:      email,
		Subject: "Your verification code",
		Body:    fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, int(s.codeTTL.Minutes())),
	})
}

// VerifyCode checks the submitted code against the active record and,
// on success, hands back a short-lived session token. Re-verifying an
// already verified record is an idempotent success; the code is not
// re-checked and a fresh token is issued.
func (s *VerificationService) VerifyCode(ctx context.Context, email, code string) (string, error) {
	if err := validateVar(email, "required,email"); err != nil {
		return "", err
	}
	rec, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if rec.Verified {
		return s.tokens.Issue(email)
	}
	if rec.Expired(s.nowFunc().UTC()) {
		return "", domain.ErrCodeExpired
	}
	if subtle.ConstantTimeCompare([]byte(rec.Code), []byte(code)) == 0 {
		return "", domain.ErrCodeMismatch
	}
	if err := s.repo.MarkVerified(ctx, email); err != nil {
		return "", err
	}
	return s.tokens.Issue(email)
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
