package domain

import (
	"context"
	"time"
)

// TokenType tags the ephemeral tokens a freelancer can hold. The set is
// closed so the lifecycle sweeper can treat its two passes as exhaustive.
type TokenType string

const (
	TokenRegisterConfirm TokenType = "register-confirm"
	TokenPasswordReset   TokenType = "password-reset"
)

// Token is stored as a SHA-256 digest of the value mailed to the user.
// The plain value never touches the database.
type Token struct {
	Digest string    `json:"-"`
	Type   TokenType `json:"-"`
	Expire time.Time `json:"-"`
}

func (t Token) Expired(now time.Time) bool {
	return t.Expire.Before(now)
}

type LanguageLevel string

const (
	LevelBasic           LanguageLevel = "basic"
	LevelConversational  LanguageLevel = "conversational"
	LevelFluent          LanguageLevel = "fluent"
	LevelNativeBilingual LanguageLevel = "native-bilingual"
)

var ValidLanguageLevels = []LanguageLevel{
	LevelBasic, LevelConversational, LevelFluent, LevelNativeBilingual,
}

type Location struct {
	Town        string `json:"town,omitempty"`
	CountryCode string `json:"countryCode,omitempty" validate:"omitempty,iso3166_1_alpha2"`
}

type Contact struct {
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Phone string `json:"phone,omitempty"`
}

// Experience is an owned child record of a freelancer profile. It has its
// own identity so it can be added, updated or removed without touching
// its siblings.
type Experience struct {
	ID           string     `json:"id"`
	Title        string     `json:"title" validate:"required"`
	Organization string     `json:"organization" validate:"required"`
	Town         string     `json:"town,omitempty"`
	CountryCode  string     `json:"countryCode,omitempty" validate:"omitempty,iso3166_1_alpha2"`
	StartDate    time.Time  `json:"startDate" validate:"required"`
	EndDate      *time.Time `json:"endDate"` // nil means ongoing
	Description  string     `json:"description,omitempty"`
}

type Education struct {
	ID          string     `json:"id"`
	School      string     `json:"school" validate:"required"`
	Town        string     `json:"town,omitempty"`
	CountryCode string     `json:"countryCode,omitempty" validate:"omitempty,iso3166_1_alpha2"`
	StartDate   time.Time  `json:"startDate" validate:"required"`
	EndDate     *time.Time `json:"endDate"`
	Description string     `json:"description,omitempty"`
}

type Language struct {
	Code  string        `json:"code" validate:"required"`
	Level LanguageLevel `json:"level" validate:"required"`
}

// Freelancer is the aggregate root of the marketplace. PasswordHash and
// Tokens are never serialized outward.
type Freelancer struct {
	ID               string       `json:"id"`
	Email            string       `json:"email"`
	FirstName        string       `json:"firstName"`
	LastName         string       `json:"lastName"`
	PasswordHash     string       `json:"-"`
	Image            string       `json:"image,omitempty"`
	Location         Location     `json:"location"`
	HourlyRate       float64      `json:"hourlyRate,omitempty"`
	Title            string       `json:"title,omitempty"`
	PresentationText string       `json:"presentationText,omitempty"`
	Skills           []string     `json:"skills"`
	Experiences      []Experience `json:"experiences"`
	Educations       []Education  `json:"educations"`
	Languages        []Language   `json:"languages"`
	Contact          Contact      `json:"contact"`
	Tokens           []Token      `json:"-"`
	CreatedAt        time.Time    `json:"createdAt"`
}

// FindToken returns the first token of the given type, or nil.
func (f *Freelancer) FindToken(t TokenType) *Token {
	for i := range f.Tokens {
		if f.Tokens[i].Type == t {
			return &f.Tokens[i]
		}
	}
	return nil
}

// Unconfirmed reports whether the account still awaits email confirmation.
// Unconfirmed profiles never surface in public search or lookup.
func (f *Freelancer) Unconfirmed() bool {
	return f.FindToken(TokenRegisterConfirm) != nil
}

type FreelancerRepository interface {
	Create(ctx context.Context, f *Freelancer) error
	GetByID(ctx context.Context, id string) (*Freelancer, error)
	GetByEmail(ctx context.Context, email string) (*Freelancer, error)
	GetByTokenDigest(ctx context.Context, digest string) (*Freelancer, error)
	Delete(ctx context.Context, id string) error

	UpdateIdentity(ctx context.Context, id, email, firstName, lastName string) error
	UpdateGeneral(ctx context.Context, id string, loc Location, hourlyRate float64, title, presentation string) error
	UpdateSkills(ctx context.Context, id string, skills []string) error
	UpdateContact(ctx context.Context, id string, c Contact) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateImage(ctx context.Context, id, imageURL string) error

	AddExperience(ctx context.Context, freelancerID string, e *Experience) error
	UpdateExperience(ctx context.Context, freelancerID string, e *Experience) error
	DeleteExperience(ctx context.Context, freelancerID, experienceID string) error
	AddEducation(ctx context.Context, freelancerID string, e *Education) error
	UpdateEducation(ctx context.Context, freelancerID string, e *Education) error
	DeleteEducation(ctx context.Context, freelancerID, educationID string) error
	ReplaceExperiences(ctx context.Context, freelancerID string, exps []Experience) error
	ReplaceEducations(ctx context.Context, freelancerID string, edus []Education) error
	ReplaceLanguages(ctx context.Context, freelancerID string, langs []Language) error

	AddToken(ctx context.Context, freelancerID string, t Token) error
	RemoveToken(ctx context.Context, freelancerID, digest string) error
	ClearTokens(ctx context.Context, freelancerID string) error
}

// LifecycleRepository is the sweeper's view of the store. Both operations
// are idempotent: sweeping twice with no new expirations is a no-op.
type LifecycleRepository interface {
	// DeleteExpiredUnconfirmed removes every profile holding a
	// register-confirm token that expired before now.
	DeleteExpiredUnconfirmed(ctx context.Context, now time.Time) (int64, error)
	// PullExpiredResetTokens removes expired password-reset tokens
	// without deleting their profiles.
	PullExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}

type FreelancerUsecase interface {
	GetProfile(ctx context.Context, id string) (*Freelancer, error)
	UpdateIdentity(ctx context.Context, id, email, firstName, lastName string) error
	UpdateGeneral(ctx context.Context, id string, loc Location, hourlyRate float64, title, presentation string) error
	UpdateSkills(ctx context.Context, id string, skills []string) error
	UpdateContact(ctx context.Context, id string, c Contact) error
	ChangePassword(ctx context.Context, id, currentPassword, newPassword string) error
	AddExperience(ctx context.Context, id string, e *Experience) error
	UpdateExperience(ctx context.Context, id string, e *Experience) error
	DeleteExperience(ctx context.Context, id, experienceID string) error
	AddEducation(ctx context.Context, id string, e *Education) error
	UpdateEducation(ctx context.Context, id string, e *Education) error
	DeleteEducation(ctx context.Context, id, educationID string) error
	ReplaceExperiences(ctx context.Context, id string, exps []Experience) error
	ReplaceEducations(ctx context.Context, id string, edus []Education) error
	ReplaceLanguages(ctx context.Context, id string, langs []Language) error
	UploadImage(ctx context.Context, id string, data []byte) (string, error)
	DeleteImage(ctx context.Context, id string) error
	DeleteAccount(ctx context.Context, id string) error
	Visibility(ctx context.Context, id string) (*VisibilityReport, error)
}

type AuthUsecase interface {
	Register(ctx context.Context, email, firstName, lastName, password string) error
	ConfirmRegistration(ctx context.Context, token string) (*Freelancer, error)
	Login(ctx context.Context, email, password string) (*Freelancer, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) (*Freelancer, error)
}
