package domain

import (
	"context"
	"math"
)

// SearchPageSize is the fixed page size of freelancer search results.
const SearchPageSize = 20

// SearchCriteria carries the free-text query plus the optional facets.
// Query is mandatory and validated before the engine runs; every other
// field narrows the result set only when supplied.
type SearchCriteria struct {
	Query         string
	Page          int // 1-indexed, defaults to 1
	Locations     []string
	MinHourlyRate *float64
	MaxHourlyRate *float64
	Languages     []string
}

// Offset translates the 1-indexed page into a row offset.
func (c SearchCriteria) Offset() int {
	page := c.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * SearchPageSize
}

// FreelancerCard is the reduced projection returned by search listings.
// It never carries credentials, tokens or full contact detail.
type FreelancerCard struct {
	ID               string   `json:"id"`
	Image            string   `json:"image,omitempty"`
	FirstName        string   `json:"firstName"`
	LastName         string   `json:"lastName"`
	Title            string   `json:"title"`
	PresentationText string   `json:"presentationText"`
	HourlyRate       float64  `json:"hourlyRate"`
	CountryCode      string   `json:"countryCode"`
	Skills           []string `json:"skills"`
}

type SearchResult struct {
	Freelancers      []FreelancerCard `json:"freelancers"`
	TotalFreelancers int64            `json:"totalFreelancers"`
	NbPages          int              `json:"nbPages"`
}

// PageCount computes how many pages a total spans at the fixed page size.
func PageCount(total int64) int {
	return int(math.Ceil(float64(total) / float64(SearchPageSize)))
}

// SearchRepository is the store-side half of the listing engine. Every
// query it runs conjoins the public-completeness predicate and the
// confirmed-account condition before any caller facet applies.
type SearchRepository interface {
	Search(ctx context.Context, c SearchCriteria) ([]FreelancerCard, int64, error)
	// GetPublicByID fetches one profile restricted by the same
	// completeness predicate; missing and non-public are both ErrNotFound.
	GetPublicByID(ctx context.Context, id string) (*Freelancer, error)
}

type SearchUsecase interface {
	Search(ctx context.Context, c SearchCriteria) (*SearchResult, error)
	GetPublicProfile(ctx context.Context, id string) (*Freelancer, error)
}
