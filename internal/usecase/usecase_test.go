package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"go-freelance-backend/internal/domain"
	"go-freelance-backend/internal/usecase"
	"go-freelance-backend/pkg/apperror"
	"go-freelance-backend/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// Mock Repositories

type MockFreelancerRepo struct {
	mock.Mock
}

func (m *MockFreelancerRepo) Create(ctx context.Context, f *domain.Freelancer) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockFreelancerRepo) GetByID(ctx context.Context, id string) (*domain.Freelancer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Freelancer), args.Error(1)
}

func (m *MockFreelancerRepo) GetByEmail(ctx context.Context, email string) (*domain.Freelancer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Freelancer), args.Error(1)
}

func (m *MockFreelancerRepo) GetByTokenDigest(ctx context.Context, digest string) (*domain.Freelancer, error) {
	args := m.Called(ctx, digest)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Freelancer), args.Error(1)
}

func (m *MockFreelancerRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockFreelancerRepo) UpdateIdentity(ctx context.Context, id, email, firstName, lastName string) error {
	return m.Called(ctx, id, email, firstName, lastName).Error(0)
}

func (m *MockFreelancerRepo) UpdateGeneral(ctx context.Context, id string, loc domain.Location, hourlyRate float64, title, presentation string) error {
	return m.Called(ctx, id, loc, hourlyRate, title, presentation).Error(0)
}

func (m *MockFreelancerRepo) UpdateSkills(ctx context.Context, id string, skills []string) error {
	return m.Called(ctx, id, skills).Error(0)
}

func (m *MockFreelancerRepo) UpdateContact(ctx context.Context, id string, c domain.Contact) error {
	return m.Called(ctx, id, c).Error(0)
}

func (m *MockFreelancerRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *MockFreelancerRepo) UpdateImage(ctx context.Context, id, imageURL string) error {
	return m.Called(ctx, id, imageURL).Error(0)
}

func (m *MockFreelancerRepo) AddExperience(ctx context.Context, freelancerID string, e *domain.Experience) error {
	return m.Called(ctx, freelancerID, e).Error(0)
}

func (m *MockFreelancerRepo) UpdateExperience(ctx context.Context, freelancerID string, e *domain.Experience) error {
	return m.Called(ctx, freelancerID, e).Error(0)
}

func (m *MockFreelancerRepo) DeleteExperience(ctx context.Context, freelancerID, experienceID string) error {
	return m.Called(ctx, freelancerID, experienceID).Error(0)
}

func (m *MockFreelancerRepo) AddEducation(ctx context.Context, freelancerID string, e *domain.Education) error {
	return m.Called(ctx, freelancerID, e).Error(0)
}

func (m *MockFreelancerRepo) UpdateEducation(ctx context.Context, freelancerID string, e *domain.Education) error {
	return m.Called(ctx, freelancerID, e).Error(0)
}

func (m *MockFreelancerRepo) DeleteEducation(ctx context.Context, freelancerID, educationID string) error {
	return m.Called(ctx, freelancerID, educationID).Error(0)
}

func (m *MockFreelancerRepo) ReplaceExperiences(ctx context.Context, freelancerID string, exps []domain.Experience) error {
	return m.Called(ctx, freelancerID, exps).Error(0)
}

func (m *MockFreelancerRepo) ReplaceEducations(ctx context.Context, freelancerID string, edus []domain.Education) error {
	return m.Called(ctx, freelancerID, edus).Error(0)
}

func (m *MockFreelancerRepo) ReplaceLanguages(ctx context.Context, freelancerID string, langs []domain.Language) error {
	return m.Called(ctx, freelancerID, langs).Error(0)
}

func (m *MockFreelancerRepo) AddToken(ctx context.Context, freelancerID string, t domain.Token) error {
	return m.Called(ctx, freelancerID, t).Error(0)
}

func (m *MockFreelancerRepo) RemoveToken(ctx context.Context, freelancerID, digest string) error {
	return m.Called(ctx, freelancerID, digest).Error(0)
}

func (m *MockFreelancerRepo) ClearTokens(ctx context.Context, freelancerID string) error {
	return m.Called(ctx, freelancerID).Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendWelcomeEmail(to, firstName, confirmationLink string) error {
	return m.Called(to, firstName, confirmationLink).Error(0)
}

func (m *MockMailer) SendPasswordResetEmail(to, firstName, resetLink string) error {
	return m.Called(to, firstName, resetLink).Error(0)
}

type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type MockSearchRepo struct {
	mock.Mock
}

func (m *MockSearchRepo) Search(ctx context.Context, c domain.SearchCriteria) ([]domain.FreelancerCard, int64, error) {
	args := m.Called(ctx, c)
	cards, _ := args.Get(0).([]domain.FreelancerCard)
	return cards, args.Get(1).(int64), args.Error(2)
}

func (m *MockSearchRepo) GetPublicByID(ctx context.Context, id string) (*domain.Freelancer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Freelancer), args.Error(1)
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func completeFreelancer(t *testing.T) *domain.Freelancer {
	t.Helper()
	return &domain.Freelancer{
		ID:               "f1",
		Email:            "dev@example.com",
		FirstName:        "Ada",
		LastName:         "Lovelace",
		PasswordHash:     hashPassword(t, "Sup3r$ecret"),
		Location:         domain.Location{Town: "Lyon", CountryCode: "FR"},
		HourlyRate:       45,
		Title:            "Backend developer",
		PresentationText: "I build APIs.",
		Contact:          domain.Contact{Email: "pro@example.com"},
	}
}

func assertAppError(t *testing.T, err error, code int, message string) {
	t.Helper()
	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
	assert.Equal(t, message, appErr.Message)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Should create account with a hashed register-confirm token and send the welcome email", func(t *testing.T) {
		mockRepo := new(MockFreelancerRepo)
		mockMailer := new(MockMailer)
		uc := usecase.NewAuthUsecase(mockRepo, mockMailer, "https://app.test", 24*time.Hour, time.Hour)

		var created *domain.Freelancer
		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Freelancer")).
			Run(func(args mock.Arguments) { created = args.Get(1).(*domain.Freelancer) }).
			Return(nil)
		mockMailer.On("SendWelcomeEmail", "dev@example.com", "Ada", mock.AnythingOfType("string")).Return(nil)

		err := uc.Register(ctx, "dev@example.com", "Ada", "Lovelace", "Sup3r$ecret")
		assert.NoError(t, err)

		assert.NotEmpty(t, created.ID)
		assert.NotEqual(t, "Sup3r$ecret", created.PasswordHash)
		assert.Len(t, created.Tokens, 1)
		assert.Equal(t, domain.TokenRegisterConfirm, created.Tokens[0].Type)
		assert.Len(t, created.Tokens[0].Digest, 64) // sha256 hex, never the mailed value

		// the mailed link carries the plain token, not the stored digest
		link := mockMailer.Calls[0].Arguments.String(2)
		assert.Contains(t, link, "https://app.test/auth/register/confirm/")
		assert.NotContains(t, link, created.Tokens[0].Digest)
	})

	t.Run("Should reject an email already in use", func(t *testing.T) {
		mockRepo := new(MockFreelancerRepo)
		mockMailer := new(MockMailer)
		uc := usecase.NewAuthUsecase(mockRepo, mockMailer, "https://app.test", 24*time.Hour, time.Hour)

		mockRepo.On("Create", ctx, mock.Anything).Return(domain.ErrDuplicateEmail)

		err := uc.Register(ctx, "dev@example.com", "Ada", "Lovelace", "Sup3r$ecret")
		assertAppError(t, err, http.StatusBadRequest, "Email already in use")
		mockMailer.AssertNotCalled(t, "SendWelcomeEmail", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should roll the account back when the welcome email fails", func(t *testing.T) {
		mockRepo := new(MockFreelancerRepo)
		mockMailer := new(MockMailer)
		uc := usecase.NewAuthUsecase(mockRepo, mockMailer, "https://app.test", 24*time.Hour, time.Hour)

		mockRepo.On("Create", ctx, mock.Anything).Return(nil)
		mockMailer.On("SendWelcomeEmail", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))
		mockRepo.On("Delete", ctx, mock.AnythingOfType("string")).Return(nil)

		err := uc.Register(ctx, "dev@example.com", "Ada", "Lovelace", "Sup3r$ecret")
		assertAppError(t, err, http.StatusInternalServerError, "Account creation failed")
		mockRepo.AssertCalled(t, "Delete", ctx, mock.AnythingOfType("string"))
	})
}

func TestConfirmRegistration(t *testing.T) {
	ctx := context.Background()

	t.Run("Should clear tokens and return the profile", func(t *testing.T) {
		mockRepo := new(MockFreelancerRepo)
		uc := usecase.NewAuthUsecase(mockRepo, new(MockMailer), "https://app.test", 24*time.Hour, time.Hour)

		plain, digest, err := auth.GenerateToken()
		assert.NoError(t, err)

		f := completeFreelancer(t)
		f.Tokens = []domain.Token{{Digest: digest, Type: domain.TokenRegisterConfirm, Expire: time.Now().Add(time.Hour)}}
		mockRepo.On("GetByTokenDigest", ctx, digest).Return(f, nil)
		mockRepo.On("ClearTokens", ctx, f.ID).Return(nil)

		got, err := uc.ConfirmRegistration(ctx, plain)
		assert.NoError(t, err)
		assert.Empty(t, got.Tokens)
	})

	t.Run("Should reject a password-reset token replayed through the confirm flow", func(t *testing.T) {
		mockRepo := new(MockFreelancerRepo)
		uc := usecase.NewAuthUsecase(mockRepo, new(MockMailer), "https://app.test", 24*time.Hour, time.Hour)

		plain, digest, err := auth.GenerateToken()
		assert.NoError(t, err)

		f := completeFreelancer(t)
		f.Tokens = []domain.Token{{Digest: digest, Type: domain.TokenPasswordReset, Expire: time.Now().Add(time.Hour)}}
		mockRepo.On("GetByTokenDigest", ctx, digest).Return(f, nil)

		_, err = uc.ConfirmRegistration(ctx, plain)
		assertAppError(t, err, http.StatusBadRequest, "Invalid token")
		mockRepo.AssertNotCalled(t, "ClearTokens", mock.Anything, mock.Anything)
	})

	t.Run("Should reject an unknown token", func(t *testing.T) {
		mockRepo := new(MockFreelancerRepo)
		uc := usecase.NewAuthUsecase(mockRepo, new(MockMailer), "https://app.test", 24*time.Hour, time.Hour)

		mockRepo.On("GetByTokenDigest", ctx, mock.Anything).Return(nil, domain.ErrNotFound)

		_, err := uc.ConfirmRegistration(ctx, "deadbeef")
		assertAppError(t, err, http.StatusBadRequest, "Invalid token")
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Should not reveal whether the email exists", func(t *testing.T) {
		mockRepo := new(MockFreelancerRepo)
		uc := usecase.NewAuthUsecase(mockRepo, new(MockMailer), "https://app.test", 24*time.Hour, time.Hour)

		mockRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, domain.ErrNotFound)

		_, err := uc.Login(ctx, "nobody@example.com", "whatever")
		assertAppError(t, err, http.StatusUnauthorized, "Data entered invalid")
	})

	t.Run("Should reject a wrong password with the same message", func(t *testing.T) {
		mockRepo := new(MockFreelancerRepo)
		uc := usecase.NewAuthUsecase(mockRepo, new(MockMailer), "https://app.test", 24*time.Hour, time.Hour)

		mockRepo.On("GetByEmail", ctx, "dev@example.com").Return(completeFreelancer(t), nil)

		_, err := uc.Login(ctx, "dev@example.com", "wrong-password")
		assertAppError(t, err, http.StatusUnauthorized, "Data entered invalid")
	})

	t.Run("Should reject an unconfirmed account even with the right password", func(t *testing.T) {
		mockRepo := new(MockFreelancerRepo)
		uc := usecase.NewAuthUsecase(mockRepo, new(MockMailer), "https://app.test", 24*time.Hour, time.Hour)

		f := completeFreelancer(t)
		f.Tokens = []domain.Token{{Digest: "d", Type: domain.TokenRegisterConfirm, Expire: time.Now().Add(time.Hour)}}
		mockRepo.On("GetByEmail", ctx, "dev@example.com").Return(f, nil)

		_, err := uc.Login(ctx, "dev@example.com", "Sup3r$ecret")
		assertAppError(t, err, http.StatusUnauthorized, "Account unconfirmed")
	})

	t.Run("Should return the profile on valid credentials", func(t *testing.T) {
		mockRepo := new(MockFreelancerRepo)
		uc := usecase.NewAuthUsecase(mockRepo, new(MockMailer), "https://app.test", 24*time.Hour, time.Hour)

		mockRepo.On("GetByEmail", ctx, "dev@example.com").Return(completeFreelancer(t), nil)

		f, err := uc.Login(ctx, "dev@example.com", "Sup3r$ecret")
		assert.NoError(t, err)
		assert.Equal(t, "f1", f.ID)
	})
}

func TestForgotPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("Should refuse while a live reset token exists", func(t *testing.T) {
		mockRepo := new(MockFreelancerRepo)
		mockMailer := new(MockMailer)
		uc := usecase.NewAuthUsecase(mockRepo, mockMailer, "https://app.test", 24*time.Hour, time.Hour)

		f := completeFreelancer(t)
		f.Tokens = []domain.Token{{Digest: "d", Type: domain.TokenPasswordReset, Expire: time.Now().Add(30 * time.Minute)}}
		mockRepo.On("GetByEmail", ctx, "dev@example.com").Return(f, nil)

		err := uc.ForgotPassword(ctx, "dev@example.com")
		assertAppError(t, err, http.StatusConflict, "A password recovery procedure is already in progress")
		mockMailer.AssertNotCalled(t, "SendPasswordResetEmail", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should ignore an expired leftover token and issue a new one", func(t *testing.T) {
		mockRepo := new(MockFreelancerRepo)
		mockMailer := new(MockMailer)
		uc := usecase.NewAuthUsecase(mockRepo, mockMailer, "https://app.test", 24*time.Hour, time.Hour)

		f := completeFreelancer(t)
		f.Tokens = []domain.Token{{Digest: "old", Type: domain.TokenPasswordReset, Expire: time.Now().Add(-time.Minute)}}
		mockRepo.On("GetByEmail", ctx, "dev@example.com").Return(f, nil)
		mockMailer.On("SendPasswordResetEmail", "dev@example.com", "Ada", mock.Anything).Return(nil)
		mockRepo.On("AddToken", ctx, "f1", mock.MatchedBy(func(tok domain.Token) bool {
			return tok.Type == domain.TokenPasswordReset && tok.Digest != "old"
		})).Return(nil)

		err := uc.ForgotPassword(ctx, "dev@example.com")
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Should not store a token when the email cannot be sent", func(t *testing.T) {
		mockRepo := new(MockFreelancerRepo)
		mockMailer := new(MockMailer)
		uc := usecase.NewAuthUsecase(mockRepo, mockMailer, "https://app.test", 24*time.Hour, time.Hour)

		mockRepo.On("GetByEmail", ctx, "dev@example.com").Return(completeFreelancer(t), nil)
		mockMailer.On("SendPasswordResetEmail", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

		err := uc.ForgotPassword(ctx, "dev@example.com")
		assertAppError(t, err, http.StatusInternalServerError, "Cannot send email")
		mockRepo.AssertNotCalled(t, "AddToken", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should report an unknown account", func(t *testing.T) {
		mockRepo := new(MockFreelancerRepo)
		uc := usecase.NewAuthUsecase(mockRepo, new(MockMailer), "https://app.test", 24*time.Hour, time.Hour)

		mockRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, domain.ErrNotFound)

		err := uc.ForgotPassword(ctx, "nobody@example.com")
		assertAppError(t, err, http.StatusNotFound, "Account not found")
	})
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("Should update the password and burn the token", func(t *testing.T) {
		mockRepo := new(MockFreelancerRepo)
		uc := usecase.NewAuthUsecase(mockRepo, new(MockMailer), "https://app.test", 24*time.Hour, time.Hour)

		plain, digest, err := auth.GenerateToken()
		assert.NoError(t, err)

		f := completeFreelancer(t)
		f.Tokens = []domain.Token{{Digest: digest, Type: domain.TokenPasswordReset, Expire: time.Now().Add(time.Hour)}}
		mockRepo.On("GetByTokenDigest", ctx, digest).Return(f, nil)
		mockRepo.On("UpdatePassword", ctx, "f1", mock.MatchedBy(func(hash string) bool {
			return bcrypt.CompareHashAndPassword([]byte(hash), []byte("N3w$ecret!")) == nil
		})).Return(nil)
		mockRepo.On("RemoveToken", ctx, "f1", digest).Return(nil)

		_, err = uc.ResetPassword(ctx, plain, "N3w$ecret!")
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Should reject a register-confirm token replayed through the reset flow", func(t *testing.T) {
		mockRepo := new(MockFreelancerRepo)
		uc := usecase.NewAuthUsecase(mockRepo, new(MockMailer), "https://app.test", 24*time.Hour, time.Hour)

		plain, digest, err := auth.GenerateToken()
		assert.NoError(t, err)

		f := completeFreelancer(t)
		f.Tokens = []domain.Token{{Digest: digest, Type: domain.TokenRegisterConfirm, Expire: time.Now().Add(time.Hour)}}
		mockRepo.On("GetByTokenDigest", ctx, digest).Return(f, nil)

		_, err = uc.ResetPassword(ctx, plain, "N3w$ecret!")
		assertAppError(t, err, http.StatusBadRequest, "Invalid token")
	})
}

func TestUpdateGeneral(t *testing.T) {
	ctx := context.Background()
	loc := domain.Location{Town: "Lyon", CountryCode: "FR"}

	t.Run("Should reject a rate outside the market range", func(t *testing.T) {
		uc := usecase.NewFreelancerUsecase(new(MockFreelancerRepo), new(MockObjectStore))

		err := uc.UpdateGeneral(ctx, "f1", loc, 3, "Dev", "")
		assertAppError(t, err, http.StatusBadRequest, "Hourly rate must be between 5 and 100")

		err = uc.UpdateGeneral(ctx, "f1", loc, 250, "Dev", "")
		assert.Error(t, err)
	})

	t.Run("Should allow zero to clear the rate", func(t *testing.T) {
		mockRepo := new(MockFreelancerRepo)
		uc := usecase.NewFreelancerUsecase(mockRepo, new(MockObjectStore))

		mockRepo.On("UpdateGeneral", ctx, "f1", loc, 0.0, "Dev", "").Return(nil)
		assert.NoError(t, uc.UpdateGeneral(ctx, "f1", loc, 0, "Dev", ""))
	})
}

func TestUpdateSkills(t *testing.T) {
	ctx := context.Background()

	t.Run("Should lowercase, trim and deduplicate", func(t *testing.T) {
		mockRepo := new(MockFreelancerRepo)
		uc := usecase.NewFreelancerUsecase(mockRepo, new(MockObjectStore))

		mockRepo.On("UpdateSkills", ctx, "f1", []string{"go", "postgresql"}).Return(nil)

		err := uc.UpdateSkills(ctx, "f1", []string{" Go ", "PostgreSQL", "go", "  "})
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject a wrong current password", func(t *testing.T) {
		mockRepo := new(MockFreelancerRepo)
		uc := usecase.NewFreelancerUsecase(mockRepo, new(MockObjectStore))

		mockRepo.On("GetByID", ctx, "f1").Return(completeFreelancer(t), nil)

		err := uc.ChangePassword(ctx, "f1", "wrong", "N3w$ecret!")
		assertAppError(t, err, http.StatusUnauthorized, "Current password is incorrect")
		mockRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestReplaceExperiences(t *testing.T) {
	ctx := context.Background()

	t.Run("Should swap the whole list and assign fresh ids", func(t *testing.T) {
		mockRepo := new(MockFreelancerRepo)
		uc := usecase.NewFreelancerUsecase(mockRepo, new(MockObjectStore))

		mockRepo.On("ReplaceExperiences", ctx, "f1", mock.MatchedBy(func(exps []domain.Experience) bool {
			return len(exps) == 2 && exps[0].ID != "" && exps[1].ID != "" && exps[0].ID != exps[1].ID
		})).Return(nil)

		exps := []domain.Experience{
			{Title: "Dev", Organization: "Acme", StartDate: time.Now().AddDate(-2, 0, 0)},
			{Title: "Lead", Organization: "Initech", StartDate: time.Now().AddDate(-1, 0, 0)},
		}
		assert.NoError(t, uc.ReplaceExperiences(ctx, "f1", exps))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Should accept an empty list to clear everything", func(t *testing.T) {
		mockRepo := new(MockFreelancerRepo)
		uc := usecase.NewFreelancerUsecase(mockRepo, new(MockObjectStore))

		mockRepo.On("ReplaceExperiences", ctx, "f1", mock.MatchedBy(func(exps []domain.Experience) bool {
			return len(exps) == 0
		})).Return(nil)

		assert.NoError(t, uc.ReplaceExperiences(ctx, "f1", []domain.Experience{}))
	})
}

func TestReplaceEducations(t *testing.T) {
	ctx := context.Background()

	t.Run("Should swap the whole list and assign fresh ids", func(t *testing.T) {
		mockRepo := new(MockFreelancerRepo)
		uc := usecase.NewFreelancerUsecase(mockRepo, new(MockObjectStore))

		mockRepo.On("ReplaceEducations", ctx, "f1", mock.MatchedBy(func(edus []domain.Education) bool {
			return len(edus) == 1 && edus[0].ID != ""
		})).Return(nil)

		edus := []domain.Education{{School: "ENS", StartDate: time.Now().AddDate(-5, 0, 0)}}
		assert.NoError(t, uc.ReplaceEducations(ctx, "f1", edus))
		mockRepo.AssertExpectations(t)
	})
}

func TestReplaceLanguages(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject an unknown level", func(t *testing.T) {
		uc := usecase.NewFreelancerUsecase(new(MockFreelancerRepo), new(MockObjectStore))

		err := uc.ReplaceLanguages(ctx, "f1", []domain.Language{{Code: "fr", Level: "expert"}})
		assertAppError(t, err, http.StatusBadRequest, "Invalid language level: expert")
	})

	t.Run("Should reject a duplicated code", func(t *testing.T) {
		uc := usecase.NewFreelancerUsecase(new(MockFreelancerRepo), new(MockObjectStore))

		err := uc.ReplaceLanguages(ctx, "f1", []domain.Language{
			{Code: "fr", Level: domain.LevelFluent},
			{Code: "fr", Level: domain.LevelBasic},
		})
		assertAppError(t, err, http.StatusBadRequest, "Duplicate language code: fr")
	})
}

func TestVisibilityUsecase(t *testing.T) {
	ctx := context.Background()

	t.Run("Should mark a complete confirmed profile visible with an empty report", func(t *testing.T) {
		mockRepo := new(MockFreelancerRepo)
		uc := usecase.NewFreelancerUsecase(mockRepo, new(MockObjectStore))

		mockRepo.On("GetByID", ctx, "f1").Return(completeFreelancer(t), nil)

		report, err := uc.Visibility(ctx, "f1")
		assert.NoError(t, err)
		assert.True(t, report.Visible)
		assert.True(t, report.Missing.Empty())
	})

	t.Run("Should mark a complete but unconfirmed profile hidden", func(t *testing.T) {
		mockRepo := new(MockFreelancerRepo)
		uc := usecase.NewFreelancerUsecase(mockRepo, new(MockObjectStore))

		f := completeFreelancer(t)
		f.Tokens = []domain.Token{{Digest: "d", Type: domain.TokenRegisterConfirm, Expire: time.Now().Add(time.Hour)}}
		mockRepo.On("GetByID", ctx, "f1").Return(f, nil)

		report, err := uc.Visibility(ctx, "f1")
		assert.NoError(t, err)
		assert.False(t, report.Visible)
		assert.True(t, report.Missing.Empty()) // unconfirmed, not incomplete
	})
}

func TestSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("Should normalize page and compute the page count", func(t *testing.T) {
		mockRepo := new(MockSearchRepo)
		uc := usecase.NewSearchUsecase(mockRepo)

		cards := []domain.FreelancerCard{{ID: "f1"}}
		mockRepo.On("Search", ctx, mock.MatchedBy(func(c domain.SearchCriteria) bool {
			return c.Page == 1
		})).Return(cards, int64(41), nil)

		result, err := uc.Search(ctx, domain.SearchCriteria{Query: "go", Page: 0})
		assert.NoError(t, err)
		assert.Equal(t, int64(41), result.TotalFreelancers)
		assert.Equal(t, 3, result.NbPages) // ceil(41/20)
	})

	t.Run("Should return an empty slice, not null, when nothing matches", func(t *testing.T) {
		mockRepo := new(MockSearchRepo)
		uc := usecase.NewSearchUsecase(mockRepo)

		mockRepo.On("Search", ctx, mock.Anything).Return(nil, int64(0), nil)

		result, err := uc.Search(ctx, domain.SearchCriteria{Query: "cobol", Page: 1})
		assert.NoError(t, err)
		assert.NotNil(t, result.Freelancers)
		assert.Empty(t, result.Freelancers)
		assert.Equal(t, 0, result.NbPages)
	})
}

func TestGetPublicProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Should answer not-found for a missing profile", func(t *testing.T) {
		mockRepo := new(MockSearchRepo)
		uc := usecase.NewSearchUsecase(mockRepo)

		mockRepo.On("GetPublicByID", ctx, "ghost").Return(nil, domain.ErrNotFound)

		_, err := uc.GetPublicProfile(ctx, "ghost")
		assertAppError(t, err, http.StatusNotFound, "Freelancer not found")
	})

	t.Run("Should answer the same not-found for a row turned incomplete after filtering", func(t *testing.T) {
		mockRepo := new(MockSearchRepo)
		uc := usecase.NewSearchUsecase(mockRepo)

		f := completeFreelancer(t)
		f.Title = "" // mutated between filter and fetch
		mockRepo.On("GetPublicByID", ctx, "f1").Return(f, nil)

		_, err := uc.GetPublicProfile(ctx, "f1")
		assertAppError(t, err, http.StatusNotFound, "Freelancer not found")
	})

	t.Run("Should answer the same not-found for an unconfirmed row carrying its tokens", func(t *testing.T) {
		mockRepo := new(MockSearchRepo)
		uc := usecase.NewSearchUsecase(mockRepo)

		f := completeFreelancer(t)
		f.Tokens = []domain.Token{{Digest: "d", Type: domain.TokenRegisterConfirm, Expire: time.Now().Add(time.Hour)}}
		mockRepo.On("GetPublicByID", ctx, "f1").Return(f, nil)

		_, err := uc.GetPublicProfile(ctx, "f1")
		assertAppError(t, err, http.StatusNotFound, "Freelancer not found")
	})

	t.Run("Should return a public profile", func(t *testing.T) {
		mockRepo := new(MockSearchRepo)
		uc := usecase.NewSearchUsecase(mockRepo)

		mockRepo.On("GetPublicByID", ctx, "f1").Return(completeFreelancer(t), nil)

		f, err := uc.GetPublicProfile(ctx, "f1")
		assert.NoError(t, err)
		assert.Equal(t, "f1", f.ID)
	})
}
