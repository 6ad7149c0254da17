package usecase

import (
	"context"
	"errors"

	"go-freelance-backend/internal/domain"
	"go-freelance-backend/pkg/apperror"
)

type searchUsecase struct {
	repo domain.SearchRepository
}

func NewSearchUsecase(repo domain.SearchRepository) domain.SearchUsecase {
	return &searchUsecase{repo: repo}
}

func (u *searchUsecase) Search(ctx context.Context, c domain.SearchCriteria) (*domain.SearchResult, error) {
	if c.Page < 1 {
		c.Page = 1
	}

	cards, total, err := u.repo.Search(ctx, c)
	if err != nil {
		return nil, err
	}
	if cards == nil {
		cards = []domain.FreelancerCard{}
	}

	return &domain.SearchResult{
		Freelancers:      cards,
		TotalFreelancers: total,
		NbPages:          domain.PageCount(total),
	}, nil
}

// GetPublicProfile re-validates the store-filtered row with the
// visibility evaluator: a profile mutated to incomplete between filter
// and fetch must not leak. Both the missing and the private case read as
// the same NOT_FOUND.
func (u *searchUsecase) GetPublicProfile(ctx context.Context, id string) (*domain.Freelancer, error) {
	f, err := u.repo.GetPublicByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Freelancer not found")
		}
		return nil, err
	}

	if !domain.IsPublic(f) || f.Unconfirmed() {
		return nil, apperror.NotFound("Freelancer not found")
	}

	return f, nil
}
