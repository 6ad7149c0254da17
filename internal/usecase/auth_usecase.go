package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-freelance-backend/internal/domain"
	"go-freelance-backend/pkg/apperror"
	"go-freelance-backend/pkg/auth"
	"go-freelance-backend/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Mailer is the slice of the email service the auth flows need.
type Mailer interface {
	SendWelcomeEmail(to, firstName, confirmationLink string) error
	SendPasswordResetEmail(to, firstName, resetLink string) error
}

type authUsecase struct {
	repo            domain.FreelancerRepository
	mailer          Mailer
	appURL          string
	confirmTokenTTL time.Duration
	resetTokenTTL   time.Duration
}

func NewAuthUsecase(repo domain.FreelancerRepository, mailer Mailer, appURL string, confirmTTL, resetTTL time.Duration) domain.AuthUsecase {
	return &authUsecase{
		repo:            repo,
		mailer:          mailer,
		appURL:          appURL,
		confirmTokenTTL: confirmTTL,
		resetTokenTTL:   resetTTL,
	}
}

func (u *authUsecase) Register(ctx context.Context, email, firstName, lastName, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperror.Internal("Cannot create account", err)
	}

	plain, digest, err := auth.GenerateToken()
	if err != nil {
		return apperror.Internal("Cannot create account", err)
	}

	f := &domain.Freelancer{
		ID:           uuid.NewString(),
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: string(hash),
		Tokens: []domain.Token{{
			Digest: digest,
			Type:   domain.TokenRegisterConfirm,
			Expire: time.Now().Add(u.confirmTokenTTL),
		}},
	}

	if err := u.repo.Create(ctx, f); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return apperror.BadRequest("Email already in use")
		}
		return apperror.Internal("Cannot create account", err)
	}

	confirmationLink := fmt.Sprintf("%s/auth/register/confirm/%s", u.appURL, plain)
	if err := u.mailer.SendWelcomeEmail(f.Email, f.FirstName, confirmationLink); err != nil {
		// The account is unusable without its confirmation email; roll it
		// back so the address is not locked out.
		if delErr := u.repo.Delete(ctx, f.ID); delErr != nil {
			logger.Log.Error("failed to roll back unconfirmed account", "freelancer_id", f.ID, "error", delErr)
		}
		return apperror.Internal("Account creation failed", err)
	}

	return nil
}

func (u *authUsecase) ConfirmRegistration(ctx context.Context, token string) (*domain.Freelancer, error) {
	digest := auth.DigestToken(token)
	f, err := u.repo.GetByTokenDigest(ctx, digest)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.BadRequest("Invalid token")
		}
		return nil, err
	}
	if !tokenMatches(f, digest, domain.TokenRegisterConfirm) {
		return nil, apperror.BadRequest("Invalid token")
	}

	if err := u.repo.ClearTokens(ctx, f.ID); err != nil {
		return nil, err
	}
	f.Tokens = nil

	return f, nil
}

func (u *authUsecase) Login(ctx context.Context, email, password string) (*domain.Freelancer, error) {
	f, err := u.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Unauthorized("Data entered invalid")
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(f.PasswordHash), []byte(password)) != nil {
		return nil, apperror.Unauthorized("Data entered invalid")
	}

	if f.Unconfirmed() {
		return nil, apperror.Unauthorized("Account unconfirmed")
	}

	return f, nil
}

func (u *authUsecase) ForgotPassword(ctx context.Context, email string) error {
	f, err := u.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Account not found")
		}
		return err
	}

	if f.Unconfirmed() {
		return apperror.Unauthorized("Account unconfirmed")
	}

	// At most one live reset token per account. Expired leftovers do not
	// block a new request; the sweeper removes them eventually anyway.
	if t := f.FindToken(domain.TokenPasswordReset); t != nil && !t.Expired(time.Now()) {
		return apperror.Conflict("A password recovery procedure is already in progress")
	}

	plain, digest, err := auth.GenerateToken()
	if err != nil {
		return apperror.Internal("Cannot send email", err)
	}

	resetLink := fmt.Sprintf("%s/auth/password/reset/%s", u.appURL, plain)
	if err := u.mailer.SendPasswordResetEmail(f.Email, f.FirstName, resetLink); err != nil {
		return apperror.Internal("Cannot send email", err)
	}

	return u.repo.AddToken(ctx, f.ID, domain.Token{
		Digest: digest,
		Type:   domain.TokenPasswordReset,
		Expire: time.Now().Add(u.resetTokenTTL),
	})
}

func (u *authUsecase) ResetPassword(ctx context.Context, token, newPassword string) (*domain.Freelancer, error) {
	digest := auth.DigestToken(token)
	f, err := u.repo.GetByTokenDigest(ctx, digest)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.BadRequest("Invalid token")
		}
		return nil, err
	}
	if !tokenMatches(f, digest, domain.TokenPasswordReset) {
		return nil, apperror.BadRequest("Invalid token")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal("Cannot reset password", err)
	}

	if err := u.repo.UpdatePassword(ctx, f.ID, string(hash)); err != nil {
		return nil, err
	}
	if err := u.repo.RemoveToken(ctx, f.ID, digest); err != nil {
		return nil, err
	}

	return f, nil
}

// tokenMatches guards against a digest of one token type being replayed
// through the other flow.
func tokenMatches(f *domain.Freelancer, digest string, tt domain.TokenType) bool {
	for _, t := range f.Tokens {
		if t.Digest == digest && t.Type == tt {
			return true
		}
	}
	return false
}
