package postgres

import (
	"context"
	"errors"

	"go-freelance-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type freelancerRepo struct {
	db *pgxpool.Pool
}

func NewFreelancerRepository(db *pgxpool.Pool) domain.FreelancerRepository {
	return &freelancerRepo{db: db}
}

const uniqueViolation = "23505"

func isDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (r *freelancerRepo) Create(ctx context.Context, f *domain.Freelancer) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO freelancers (id, email, first_name, last_name, password_hash, created_at)
              VALUES ($1, $2, $3, $4, $5, NOW()) RETURNING created_at`
	err = tx.QueryRow(ctx, query, f.ID, f.Email, f.FirstName, f.LastName, f.PasswordHash).Scan(&f.CreatedAt)
	if err != nil {
		if isDuplicateKey(err) {
			return domain.ErrDuplicateEmail
		}
		return err
	}

	for _, t := range f.Tokens {
		_, err = tx.Exec(ctx,
			`INSERT INTO freelancer_tokens (freelancer_id, digest, type, expire) VALUES ($1, $2, $3, $4)`,
			f.ID, t.Digest, t.Type, t.Expire,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *freelancerRepo) GetByID(ctx context.Context, id string) (*domain.Freelancer, error) {
	query := `
		SELECT id, email, first_name, last_name, password_hash, image,
		       town, country_code, hourly_rate, title, presentation_text,
		       skills, contact_email, contact_phone, created_at
		FROM freelancers WHERE id = $1`

	var f domain.Freelancer
	var skills []string
	err := r.db.QueryRow(ctx, query, id).Scan(
		&f.ID, &f.Email, &f.FirstName, &f.LastName, &f.PasswordHash, &f.Image,
		&f.Location.Town, &f.Location.CountryCode, &f.HourlyRate, &f.Title, &f.PresentationText,
		pq.Array(&skills), &f.Contact.Email, &f.Contact.Phone, &f.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	f.Skills = skills

	if err := r.loadChildren(ctx, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *freelancerRepo) GetByEmail(ctx context.Context, email string) (*domain.Freelancer, error) {
	return r.getByFilter(ctx, "email = $1", email)
}

func (r *freelancerRepo) GetByTokenDigest(ctx context.Context, digest string) (*domain.Freelancer, error) {
	return r.getByFilter(ctx,
		"id IN (SELECT freelancer_id FROM freelancer_tokens WHERE digest = $1 AND expire > NOW())", digest)
}

func (r *freelancerRepo) getByFilter(ctx context.Context, cond string, arg interface{}) (*domain.Freelancer, error) {
	var id string
	err := r.db.QueryRow(ctx, "SELECT id FROM freelancers WHERE "+cond, arg).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *freelancerRepo) loadChildren(ctx context.Context, f *domain.Freelancer) error {
	if err := loadExperiences(ctx, r.db, f); err != nil {
		return err
	}
	if err := loadEducations(ctx, r.db, f); err != nil {
		return err
	}
	if err := loadLanguages(ctx, r.db, f); err != nil {
		return err
	}
	return loadTokens(ctx, r.db, f)
}

func (r *freelancerRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM freelancers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *freelancerRepo) UpdateIdentity(ctx context.Context, id, email, firstName, lastName string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE freelancers SET email = $2, first_name = $3, last_name = $4 WHERE id = $1`,
		id, email, firstName, lastName)
	if err != nil {
		if isDuplicateKey(err) {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *freelancerRepo) UpdateGeneral(ctx context.Context, id string, loc domain.Location, hourlyRate float64, title, presentation string) error {
	result, err := r.db.Exec(ctx, `
		UPDATE freelancers SET town = $2, country_code = $3, hourly_rate = $4,
		       title = $5, presentation_text = $6
		WHERE id = $1`,
		id, loc.Town, loc.CountryCode, hourlyRate, title, presentation)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *freelancerRepo) UpdateSkills(ctx context.Context, id string, skills []string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE freelancers SET skills = $2 WHERE id = $1`, id, skills)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *freelancerRepo) UpdateContact(ctx context.Context, id string, c domain.Contact) error {
	result, err := r.db.Exec(ctx,
		`UPDATE freelancers SET contact_email = $2, contact_phone = $3 WHERE id = $1`,
		id, c.Email, c.Phone)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *freelancerRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE freelancers SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *freelancerRepo) UpdateImage(ctx context.Context, id, imageURL string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE freelancers SET image = $2 WHERE id = $1`, id, imageURL)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *freelancerRepo) AddExperience(ctx context.Context, freelancerID string, e *domain.Experience) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO freelancer_experiences (id, freelancer_id, title, organization, town, country_code, start_date, end_date, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, freelancerID, e.Title, e.Organization, e.Town, e.CountryCode, e.StartDate, e.EndDate, e.Description)
	return err
}

func (r *freelancerRepo) UpdateExperience(ctx context.Context, freelancerID string, e *domain.Experience) error {
	result, err := r.db.Exec(ctx, `
		UPDATE freelancer_experiences
		SET title = $3, organization = $4, town = $5, country_code = $6,
		    start_date = $7, end_date = $8, description = $9
		WHERE id = $1 AND freelancer_id = $2`,
		e.ID, freelancerID, e.Title, e.Organization, e.Town, e.CountryCode, e.StartDate, e.EndDate, e.Description)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *freelancerRepo) DeleteExperience(ctx context.Context, freelancerID, experienceID string) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM freelancer_experiences WHERE id = $1 AND freelancer_id = $2`,
		experienceID, freelancerID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *freelancerRepo) AddEducation(ctx context.Context, freelancerID string, e *domain.Education) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO freelancer_educations (id, freelancer_id, school, town, country_code, start_date, end_date, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, freelancerID, e.School, e.Town, e.CountryCode, e.StartDate, e.EndDate, e.Description)
	return err
}

func (r *freelancerRepo) UpdateEducation(ctx context.Context, freelancerID string, e *domain.Education) error {
	result, err := r.db.Exec(ctx, `
		UPDATE freelancer_educations
		SET school = $3, town = $4, country_code = $5,
		    start_date = $6, end_date = $7, description = $8
		WHERE id = $1 AND freelancer_id = $2`,
		e.ID, freelancerID, e.School, e.Town, e.CountryCode, e.StartDate, e.EndDate, e.Description)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *freelancerRepo) DeleteEducation(ctx context.Context, freelancerID, educationID string) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM freelancer_educations WHERE id = $1 AND freelancer_id = $2`,
		educationID, freelancerID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReplaceExperiences swaps the full experience list in one transaction,
// the coarse bulk-edit counterpart of the per-child operations.
func (r *freelancerRepo) ReplaceExperiences(ctx context.Context, freelancerID string, exps []domain.Experience) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM freelancer_experiences WHERE freelancer_id = $1`, freelancerID); err != nil {
		return err
	}
	for _, e := range exps {
		if _, err := tx.Exec(ctx, `
			INSERT INTO freelancer_experiences (id, freelancer_id, title, organization, town, country_code, start_date, end_date, description)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			e.ID, freelancerID, e.Title, e.Organization, e.Town, e.CountryCode, e.StartDate, e.EndDate, e.Description); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// ReplaceEducations swaps the full education list in one transaction.
func (r *freelancerRepo) ReplaceEducations(ctx context.Context, freelancerID string, edus []domain.Education) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM freelancer_educations WHERE freelancer_id = $1`, freelancerID); err != nil {
		return err
	}
	for _, e := range edus {
		if _, err := tx.Exec(ctx, `
			INSERT INTO freelancer_educations (id, freelancer_id, school, town, country_code, start_date, end_date, description)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			e.ID, freelancerID, e.School, e.Town, e.CountryCode, e.StartDate, e.EndDate, e.Description); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// ReplaceLanguages swaps the full language set in one transaction, the
// coarse whole-set counterpart of the per-child experience operations.
func (r *freelancerRepo) ReplaceLanguages(ctx context.Context, freelancerID string, langs []domain.Language) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM freelancer_languages WHERE freelancer_id = $1`, freelancerID); err != nil {
		return err
	}
	for _, l := range langs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO freelancer_languages (freelancer_id, code, level) VALUES ($1, $2, $3)`,
			freelancerID, l.Code, l.Level); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *freelancerRepo) AddToken(ctx context.Context, freelancerID string, t domain.Token) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO freelancer_tokens (freelancer_id, digest, type, expire) VALUES ($1, $2, $3, $4)`,
		freelancerID, t.Digest, t.Type, t.Expire)
	return err
}

func (r *freelancerRepo) RemoveToken(ctx context.Context, freelancerID, digest string) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM freelancer_tokens WHERE freelancer_id = $1 AND digest = $2`,
		freelancerID, digest)
	return err
}

func (r *freelancerRepo) ClearTokens(ctx context.Context, freelancerID string) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM freelancer_tokens WHERE freelancer_id = $1`, freelancerID)
	return err
}
