package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-freelance-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type searchRepo struct {
	db *pgxpool.Pool
}

func NewSearchRepository(db *pgxpool.Pool) domain.SearchRepository {
	return &searchRepo{db: db}
}

// publicConditions is the store-level form of the completeness predicate
// plus the confirmed-account requirement. Every public query starts from
// these; client bypass is impossible because they are hardcoded here.
var publicConditions = []string{
	"f.town <> ''",
	"f.country_code <> ''",
	"f.hourly_rate > 0",
	"f.title <> ''",
	"f.presentation_text <> ''",
	"(f.contact_email <> '' OR f.contact_phone <> '')",
	"NOT EXISTS (SELECT 1 FROM freelancer_tokens t WHERE t.freelancer_id = f.id AND t.type = 'register-confirm')",
}

func (r *searchRepo) Search(ctx context.Context, c domain.SearchCriteria) ([]domain.FreelancerCard, int64, error) {
	// Mandatory predicate first, facets conjoined only when supplied.
	conditions := make([]string, len(publicConditions), len(publicConditions)+4)
	copy(conditions, publicConditions)
	args := []interface{}{c.Query}
	argIndex := 2

	conditions = append(conditions, "f.search_tsv @@ plainto_tsquery('simple', $1)")

	if len(c.Locations) > 0 {
		conditions = append(conditions, fmt.Sprintf("LOWER(f.country_code) = ANY($%d)", argIndex))
		args = append(args, c.Locations)
		argIndex++
	}
	if c.MinHourlyRate != nil {
		conditions = append(conditions, fmt.Sprintf("f.hourly_rate >= $%d", argIndex))
		args = append(args, *c.MinHourlyRate)
		argIndex++
	}
	if c.MaxHourlyRate != nil {
		conditions = append(conditions, fmt.Sprintf("f.hourly_rate <= $%d", argIndex))
		args = append(args, *c.MaxHourlyRate)
		argIndex++
	}
	if len(c.Languages) > 0 {
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM freelancer_languages l WHERE l.freelancer_id = f.id AND LOWER(l.code) = ANY($%d))", argIndex))
		args = append(args, c.Languages)
		argIndex++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM freelancers f WHERE %s`, whereClause)
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count query failed: %w", err)
	}

	// Relevance first, then newest profile, then id: the order must stay
	// deterministic across pages for identical criteria.
	query := fmt.Sprintf(`
		SELECT f.id, f.image, f.first_name, f.last_name, f.title, f.presentation_text,
		       f.hourly_rate, f.country_code, f.skills
		FROM freelancers f
		WHERE %s
		ORDER BY ts_rank(f.search_tsv, plainto_tsquery('simple', $1)) DESC, f.created_at DESC, f.id ASC
		LIMIT %d OFFSET %d`,
		whereClause, domain.SearchPageSize, c.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search query failed: %w", err)
	}
	defer rows.Close()

	var cards []domain.FreelancerCard
	for rows.Next() {
		var card domain.FreelancerCard
		var skills []string
		if err := rows.Scan(&card.ID, &card.Image, &card.FirstName, &card.LastName,
			&card.Title, &card.PresentationText, &card.HourlyRate, &card.CountryCode,
			pq.Array(&skills)); err != nil {
			return nil, 0, err
		}
		card.Skills = skills
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return cards, total, nil
}

// GetPublicByID fetches one profile under the same public predicate.
// A profile that exists but is not public is indistinguishable from one
// that does not exist.
func (r *searchRepo) GetPublicByID(ctx context.Context, id string) (*domain.Freelancer, error) {
	query := fmt.Sprintf(`
		SELECT f.id, f.email, f.first_name, f.last_name, f.image,
		       f.town, f.country_code, f.hourly_rate, f.title, f.presentation_text,
		       f.skills, f.contact_email, f.contact_phone, f.created_at
		FROM freelancers f
		WHERE f.id = $1 AND %s`,
		strings.Join(publicConditions, " AND "))

	var f domain.Freelancer
	var skills []string
	err := r.db.QueryRow(ctx, query, id).Scan(
		&f.ID, &f.Email, &f.FirstName, &f.LastName, &f.Image,
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

	// Tokens are loaded too (they never serialize) so the usecase can
	// re-check the confirmed requirement on the row it got back.
	if err := loadExperiences(ctx, r.db, &f); err != nil {
		return nil, err
	}
	if err := loadEducations(ctx, r.db, &f); err != nil {
		return nil, err
	}
	if err := loadLanguages(ctx, r.db, &f); err != nil {
		return nil, err
	}
	if err := loadTokens(ctx, r.db, &f); err != nil {
		return nil, err
	}
	return &f, nil
}
