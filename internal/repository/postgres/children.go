package postgres

import (
	"context"

	"go-freelance-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Owned sub-record loaders shared by the profile and public-lookup repos.
// Experiences and educations come back end-date descending with ongoing
// (NULL end date) entries first, the order public lookups expose.

func loadExperiences(ctx context.Context, db *pgxpool.Pool, f *domain.Freelancer) error {
	rows, err := db.Query(ctx, `
		SELECT id, title, organization, town, country_code, start_date, end_date, description
		FROM freelancer_experiences WHERE freelancer_id = $1
		ORDER BY end_date DESC NULLS FIRST, start_date DESC`, f.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var e domain.Experience
		if err := rows.Scan(&e.ID, &e.Title, &e.Organization, &e.Town, &e.CountryCode,
			&e.StartDate, &e.EndDate, &e.Description); err != nil {
			return err
		}
		f.Experiences = append(f.Experiences, e)
	}
	return rows.Err()
}

func loadEducations(ctx context.Context, db *pgxpool.Pool, f *domain.Freelancer) error {
	rows, err := db.Query(ctx, `
		SELECT id, school, town, country_code, start_date, end_date, description
		FROM freelancer_educations WHERE freelancer_id = $1
		ORDER BY end_date DESC NULLS FIRST, start_date DESC`, f.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var e domain.Education
		if err := rows.Scan(&e.ID, &e.School, &e.Town, &e.CountryCode,
			&e.StartDate, &e.EndDate, &e.Description); err != nil {
			return err
		}
		f.Educations = append(f.Educations, e)
	}
	return rows.Err()
}

func loadLanguages(ctx context.Context, db *pgxpool.Pool, f *domain.Freelancer) error {
	rows, err := db.Query(ctx,
		`SELECT code, level FROM freelancer_languages WHERE freelancer_id = $1 ORDER BY code`, f.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var l domain.Language
		if err := rows.Scan(&l.Code, &l.Level); err != nil {
			return err
		}
		f.Languages = append(f.Languages, l)
	}
	return rows.Err()
}

func loadTokens(ctx context.Context, db *pgxpool.Pool, f *domain.Freelancer) error {
	rows, err := db.Query(ctx,
		`SELECT digest, type, expire FROM freelancer_tokens WHERE freelancer_id = $1`, f.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var t domain.Token
		if err := rows.Scan(&t.Digest, &t.Type, &t.Expire); err != nil {
			return err
		}
		f.Tokens = append(f.Tokens, t)
	}
	return rows.Err()
}
