package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // register PNG decoder for avatar uploads
	"slices"
	"strings"

	"go-freelance-backend/internal/domain"
	"go-freelance-backend/pkg/apperror"
	"go-freelance-backend/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/image/draw"
)

const (
	minHourlyRate = 5
	maxHourlyRate = 100

	avatarMaxDimension = 512
	avatarJPEGQuality  = 85
)

// ObjectStore is the slice of the storage client the profile flows need.
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

type freelancerUsecase struct {
	repo    domain.FreelancerRepository
	storage ObjectStore
}

func NewFreelancerUsecase(repo domain.FreelancerRepository, storage ObjectStore) domain.FreelancerUsecase {
	return &freelancerUsecase{repo: repo, storage: storage}
}

func (u *freelancerUsecase) GetProfile(ctx context.Context, id string) (*domain.Freelancer, error) {
	f, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Freelancer not found")
		}
		return nil, err
	}
	return f, nil
}

func (u *freelancerUsecase) UpdateIdentity(ctx context.Context, id, email, firstName, lastName string) error {
	err := u.repo.UpdateIdentity(ctx, id, email, firstName, lastName)
	if errors.Is(err, domain.ErrDuplicateEmail) {
		return apperror.BadRequest("Email already in use")
	}
	return err
}

func (u *freelancerUsecase) UpdateGeneral(ctx context.Context, id string, loc domain.Location, hourlyRate float64, title, presentation string) error {
	// Zero clears the rate; when set it must stay inside the market range.
	if hourlyRate != 0 && (hourlyRate < minHourlyRate || hourlyRate > maxHourlyRate) {
		return apperror.BadRequest(fmt.Sprintf("Hourly rate must be between %d and %d", minHourlyRate, maxHourlyRate))
	}
	return u.repo.UpdateGeneral(ctx, id, loc, hourlyRate, title, presentation)
}

func (u *freelancerUsecase) UpdateSkills(ctx context.Context, id string, skills []string) error {
	normalized := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || slices.Contains(normalized, s) {
			continue
		}
		normalized = append(normalized, s)
	}
	return u.repo.UpdateSkills(ctx, id, normalized)
}

func (u *freelancerUsecase) UpdateContact(ctx context.Context, id string, c domain.Contact) error {
	return u.repo.UpdateContact(ctx, id, c)
}

func (u *freelancerUsecase) ChangePassword(ctx context.Context, id, currentPassword, newPassword string) error {
	f, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Freelancer not found")
		}
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(f.PasswordHash), []byte(currentPassword)) != nil {
		return apperror.Unauthorized("Current password is incorrect")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperror.Internal("Cannot change password", err)
	}
	return u.repo.UpdatePassword(ctx, id, string(hash))
}

func (u *freelancerUsecase) AddExperience(ctx context.Context, id string, e *domain.Experience) error {
	e.ID = uuid.NewString()
	return u.repo.AddExperience(ctx, id, e)
}

func (u *freelancerUsecase) UpdateExperience(ctx context.Context, id string, e *domain.Experience) error {
	err := u.repo.UpdateExperience(ctx, id, e)
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound("Experience not found")
	}
	return err
}

func (u *freelancerUsecase) DeleteExperience(ctx context.Context, id, experienceID string) error {
	err := u.repo.DeleteExperience(ctx, id, experienceID)
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound("Experience not found")
	}
	return err
}

func (u *freelancerUsecase) AddEducation(ctx context.Context, id string, e *domain.Education) error {
	e.ID = uuid.NewString()
	return u.repo.AddEducation(ctx, id, e)
}

func (u *freelancerUsecase) UpdateEducation(ctx context.Context, id string, e *domain.Education) error {
	err := u.repo.UpdateEducation(ctx, id, e)
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound("Education not found")
	}
	return err
}

func (u *freelancerUsecase) DeleteEducation(ctx context.Context, id, educationID string) error {
	err := u.repo.DeleteEducation(ctx, id, educationID)
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound("Education not found")
	}
	return err
}

// ReplaceExperiences is the bulk-edit path: the whole list is swapped at
// once and every entry gets a fresh id, as with AddExperience.
func (u *freelancerUsecase) ReplaceExperiences(ctx context.Context, id string, exps []domain.Experience) error {
	for i := range exps {
		exps[i].ID = uuid.NewString()
	}
	return u.repo.ReplaceExperiences(ctx, id, exps)
}

func (u *freelancerUsecase) ReplaceEducations(ctx context.Context, id string, edus []domain.Education) error {
	for i := range edus {
		edus[i].ID = uuid.NewString()
	}
	return u.repo.ReplaceEducations(ctx, id, edus)
}

func (u *freelancerUsecase) ReplaceLanguages(ctx context.Context, id string, langs []domain.Language) error {
	seen := make(map[string]bool, len(langs))
	for _, l := range langs {
		if !slices.Contains(domain.ValidLanguageLevels, l.Level) {
			return apperror.BadRequest("Invalid language level: " + string(l.Level))
		}
		if seen[l.Code] {
			return apperror.BadRequest("Duplicate language code: " + l.Code)
		}
		seen[l.Code] = true
	}
	return u.repo.ReplaceLanguages(ctx, id, langs)
}

func (u *freelancerUsecase) UploadImage(ctx context.Context, id string, data []byte) (string, error) {
	resized, err := compressImage(data, avatarMaxDimension, avatarJPEGQuality)
	if err != nil {
		return "", apperror.BadRequest("Invalid image file")
	}

	url, err := u.storage.Upload(ctx, avatarKey(id), resized, "image/jpeg")
	if err != nil {
		return "", apperror.Internal("Cannot store image", err)
	}

	if err := u.repo.UpdateImage(ctx, id, url); err != nil {
		return "", err
	}
	return url, nil
}

func (u *freelancerUsecase) DeleteImage(ctx context.Context, id string) error {
	if err := u.storage.Delete(ctx, avatarKey(id)); err != nil {
		return apperror.Internal("Cannot delete image", err)
	}
	return u.repo.UpdateImage(ctx, id, "")
}

func (u *freelancerUsecase) DeleteAccount(ctx context.Context, id string) error {
	f, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Freelancer not found")
		}
		return err
	}

	if f.Image != "" {
		// Best effort: the account removal must not fail on a stale object.
		if err := u.storage.Delete(ctx, avatarKey(id)); err != nil {
			logger.Log.Warn("failed to delete avatar on account removal", "freelancer_id", id, "error", err)
		}
	}

	return u.repo.Delete(ctx, id)
}

func (u *freelancerUsecase) Visibility(ctx context.Context, id string) (*domain.VisibilityReport, error) {
	f, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Freelancer not found")
		}
		return nil, err
	}

	return &domain.VisibilityReport{
		Visible: domain.IsPublic(f) && !f.Unconfirmed(),
		Missing: domain.MissingFields(f),
	}, nil
}

func avatarKey(freelancerID string) string {
	return "avatars/" + freelancerID + ".jpg"
}

// compressImage downscales to maxDimension on the long edge, keeping the
// aspect ratio, and re-encodes as JPEG.
func compressImage(data []byte, maxDimension, quality int) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	newWidth, newHeight := width, height
	if width > height {
		if width > maxDimension {
			newWidth = maxDimension
			newHeight = int(float64(height) * float64(maxDimension) / float64(width))
		}
	} else {
		if height > maxDimension {
			newHeight = maxDimension
			newWidth = int(float64(width) * float64(maxDimension) / float64(height))
		}
	}

	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
