package v1

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go-freelance-backend/internal/delivery/http/response"
	"go-freelance-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

var (
	errQueryRequired = errors.New("A search query is required")
	errPageInvalid   = errors.New("Page must be a positive integer")
	errRateInvalid   = errors.New("Hourly rate bounds must be non-negative numbers")
)

type SearchHandler struct {
	searchUC domain.SearchUsecase
}

func NewSearchHandler(public *gin.RouterGroup, searchUC domain.SearchUsecase) {
	handler := &SearchHandler{searchUC: searchUC}
	public.GET("/search/freelancer", handler.SearchFreelancers)
}

// SearchFreelancers godoc
// @Summary      Full-text search over public freelancer profiles
// @Description  Matches the query against title, presentation text and skills.
// @Description  Results are paginated in fixed pages of 20.
// @Tags         search
// @Produce      json
// @Param        query          query     string  true   "Search terms"
// @Param        page           query     int     false  "Page number, 1-based"
// @Param        locations      query     string  false  "Comma-separated ISO country codes"
// @Param        minHourlyRate  query     number  false  "Minimum hourly rate"
// @Param        maxHourlyRate  query     number  false  "Maximum hourly rate"
// @Param        languages      query     string  false  "Comma-separated ISO language codes"
// @Success      200  {object}  domain.SearchResult
// @Failure      400  {object}  response.Response
// @Router       /search/freelancer [get]
func (h *SearchHandler) SearchFreelancers(c *gin.Context) {
	criteria, err := parseSearchCriteria(c)
	if err != nil {
		response.Message(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.searchUC.Search(c.Request.Context(), criteria)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func parseSearchCriteria(c *gin.Context) (domain.SearchCriteria, error) {
	var criteria domain.SearchCriteria

	criteria.Query = strings.TrimSpace(c.Query("query"))
	if criteria.Query == "" {
		return criteria, errQueryRequired
	}

	criteria.Page = 1
	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return criteria, errPageInvalid
		}
		criteria.Page = page
	}

	criteria.Locations = splitCSV(c.Query("locations"))
	criteria.Languages = splitCSV(c.Query("languages"))

	if raw := c.Query("minHourlyRate"); raw != "" {
		rate, err := strconv.ParseFloat(raw, 64)
		if err != nil || rate < 0 {
			return criteria, errRateInvalid
		}
		criteria.MinHourlyRate = &rate
	}
	if raw := c.Query("maxHourlyRate"); raw != "" {
		rate, err := strconv.ParseFloat(raw, 64)
		if err != nil || rate < 0 {
			return criteria, errRateInvalid
		}
		criteria.MaxHourlyRate = &rate
	}

	return criteria, nil
}

// splitCSV turns "FR, de,," into ["fr", "de"]. Facet values are matched
// lowercase in the store.
func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
