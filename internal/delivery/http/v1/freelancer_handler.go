package v1

import (
	"io"
	"net/http"
	"time"

	"go-freelance-backend/internal/delivery/http/response"
	"go-freelance-backend/internal/domain"
	"go-freelance-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// maxImageSize caps avatar uploads at 5 MiB before decoding.
const maxImageSize = 5 << 20

type FreelancerHandler struct {
	freelancerUC domain.FreelancerUsecase
	searchUC     domain.SearchUsecase
}

func NewFreelancerHandler(public, protected *gin.RouterGroup, freelancerUC domain.FreelancerUsecase, searchUC domain.SearchUsecase) {
	handler := &FreelancerHandler{freelancerUC: freelancerUC, searchUC: searchUC}

	public.GET("/freelancer/:id", handler.GetPublicProfile)
	public.GET("/freelancer/:id/visibility", handler.GetVisibility)

	me := protected.Group("/freelancer")
	{
		me.GET("", handler.GetProfile)
		me.DELETE("", handler.DeleteAccount)
		me.PUT("/identity", handler.UpdateIdentity)
		me.PUT("/general", handler.UpdateGeneral)
		me.PUT("/skills", handler.UpdateSkills)
		me.PUT("/contact", handler.UpdateContact)
		me.PUT("/security", handler.ChangePassword)
		me.PUT("/languages", handler.ReplaceLanguages)
		me.POST("/experience", handler.AddExperience)
		me.PUT("/experience/:experienceId", handler.UpdateExperience)
		me.DELETE("/experience/:experienceId", handler.DeleteExperience)
		me.PUT("/experiences", handler.ReplaceExperiences)
		me.POST("/education", handler.AddEducation)
		me.PUT("/education/:educationId", handler.UpdateEducation)
		me.DELETE("/education/:educationId", handler.DeleteEducation)
		me.PUT("/educations", handler.ReplaceEducations)
		me.POST("/image", handler.UploadImage)
		me.DELETE("/image", handler.DeleteImage)
	}
}

func freelancerID(c *gin.Context) string {
	return c.GetString(string(domain.KeyFreelancerID))
}

// GetProfile godoc
// @Summary      Get the authenticated freelancer profile
// @Tags         freelancer
// @Produce      json
// @Success      200  {object}  domain.Freelancer
// @Router       /freelancer [get]
// @Security     BearerAuth
func (h *FreelancerHandler) GetProfile(c *gin.Context) {
	f, err := h.freelancerUC.GetProfile(c.Request.Context(), freelancerID(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// GetPublicProfile godoc
// @Summary      Get a public freelancer profile
// @Description  Only complete, confirmed profiles are served. Anything else
// @Description  answers 404 so hidden profiles are indistinguishable from
// @Description  missing ones.
// @Tags         freelancer
// @Produce      json
// @Param        id   path      string  true  "Freelancer id"
// @Success      200  {object}  domain.Freelancer
// @Failure      404  {object}  response.Response
// @Router       /freelancer/{id} [get]
func (h *FreelancerHandler) GetPublicProfile(c *gin.Context) {
	f, err := h.searchUC.GetPublicProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// GetVisibility godoc
// @Summary      Report which fields keep a profile out of public search
// @Tags         freelancer
// @Produce      json
// @Param        id   path      string  true  "Freelancer id"
// @Success      200  {object}  domain.VisibilityReport
// @Failure      404  {object}  response.Response
// @Router       /freelancer/{id}/visibility [get]
func (h *FreelancerHandler) GetVisibility(c *gin.Context) {
	report, err := h.freelancerUC.Visibility(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, report)
}

type updateIdentityRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}

// UpdateIdentity godoc
// @Summary      Update name and email
// @Tags         freelancer
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /freelancer/identity [put]
// @Security     BearerAuth
func (h *FreelancerHandler) UpdateIdentity(c *gin.Context) {
	var req updateIdentityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "One or more parameters are invalid", validation.FormatValidationErrors(err))
		return
	}

	if err := h.freelancerUC.UpdateIdentity(c.Request.Context(), freelancerID(c), req.Email, req.FirstName, req.LastName); err != nil {
		c.Error(err)
		return
	}
	response.Message(c, http.StatusOK, "Identity updated")
}

type updateGeneralRequest struct {
	Town             string  `json:"town"`
	CountryCode      string  `json:"countryCode" binding:"omitempty,iso3166_1_alpha2"`
	HourlyRate       float64 `json:"hourlyRate"`
	Title            string  `json:"title"`
	PresentationText string  `json:"presentationText"`
}

// UpdateGeneral godoc
// @Summary      Update the general profile section
// @Tags         freelancer
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /freelancer/general [put]
// @Security     BearerAuth
func (h *FreelancerHandler) UpdateGeneral(c *gin.Context) {
	var req updateGeneralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "One or more parameters are invalid", validation.FormatValidationErrors(err))
		return
	}

	loc := domain.Location{Town: req.Town, CountryCode: req.CountryCode}
	if err := h.freelancerUC.UpdateGeneral(c.Request.Context(), freelancerID(c), loc, req.HourlyRate, req.Title, req.PresentationText); err != nil {
		c.Error(err)
		return
	}
	response.Message(c, http.StatusOK, "General information updated")
}

type updateSkillsRequest struct {
	Skills []string `json:"skills" binding:"required,max=20,dive,min=1,max=50"`
}

// UpdateSkills godoc
// @Summary      Replace the skill list
// @Tags         freelancer
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /freelancer/skills [put]
// @Security     BearerAuth
func (h *FreelancerHandler) UpdateSkills(c *gin.Context) {
	var req updateSkillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "One or more parameters are invalid", validation.FormatValidationErrors(err))
		return
	}

	if err := h.freelancerUC.UpdateSkills(c.Request.Context(), freelancerID(c), req.Skills); err != nil {
		c.Error(err)
		return
	}
	response.Message(c, http.StatusOK, "Skills updated")
}

type updateContactRequest struct {
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone" binding:"omitempty,valid_phone"`
}

// UpdateContact godoc
// @Summary      Update public contact details
// @Tags         freelancer
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /freelancer/contact [put]
// @Security     BearerAuth
func (h *FreelancerHandler) UpdateContact(c *gin.Context) {
	var req updateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "One or more parameters are invalid", validation.FormatValidationErrors(err))
		return
	}

	if err := h.freelancerUC.UpdateContact(c.Request.Context(), freelancerID(c), domain.Contact{Email: req.Email, Phone: req.Phone}); err != nil {
		c.Error(err)
		return
	}
	response.Message(c, http.StatusOK, "Contact updated")
}

type changePasswordRequest struct {
	CurrentPassword         string `json:"currentPassword" binding:"required"`
	NewPassword             string `json:"newPassword" binding:"required,min=8,strong_password"`
	NewPasswordConfirmation string `json:"newPasswordConfirmation" binding:"required,eqfield=NewPassword"`
}

// ChangePassword godoc
// @Summary      Change the account password
// @Tags         freelancer
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /freelancer/security [put]
// @Security     BearerAuth
func (h *FreelancerHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "One or more parameters are invalid", validation.FormatValidationErrors(err))
		return
	}

	if err := h.freelancerUC.ChangePassword(c.Request.Context(), freelancerID(c), req.CurrentPassword, req.NewPassword); err != nil {
		c.Error(err)
		return
	}
	response.Message(c, http.StatusOK, "Password updated")
}

type experienceRequest struct {
	Title        string     `json:"title" binding:"required"`
	Organization string     `json:"organization" binding:"required"`
	Town         string     `json:"town"`
	CountryCode  string     `json:"countryCode" binding:"omitempty,iso3166_1_alpha2"`
	StartDate    time.Time  `json:"startDate" binding:"required"`
	EndDate      *time.Time `json:"endDate"`
	Description  string     `json:"description"`
}

func (r *experienceRequest) toDomain() *domain.Experience {
	return &domain.Experience{
		Title:        r.Title,
		Organization: r.Organization,
		Town:         r.Town,
		CountryCode:  r.CountryCode,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		Description:  r.Description,
	}
}

// AddExperience godoc
// @Summary      Add a work experience entry
// @Tags         freelancer
// @Accept       json
// @Produce      json
// @Success      201  {object}  domain.Experience
// @Router       /freelancer/experience [post]
// @Security     BearerAuth
func (h *FreelancerHandler) AddExperience(c *gin.Context) {
	var req experienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "One or more parameters are invalid", validation.FormatValidationErrors(err))
		return
	}

	exp := req.toDomain()
	if err := h.freelancerUC.AddExperience(c.Request.Context(), freelancerID(c), exp); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, exp)
}

// UpdateExperience godoc
// @Summary      Update a work experience entry
// @Tags         freelancer
// @Accept       json
// @Produce      json
// @Success      200  {object}  domain.Experience
// @Failure      404  {object}  response.Response
// @Router       /freelancer/experience/{experienceId} [put]
// @Security     BearerAuth
func (h *FreelancerHandler) UpdateExperience(c *gin.Context) {
	var req experienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "One or more parameters are invalid", validation.FormatValidationErrors(err))
		return
	}

	exp := req.toDomain()
	exp.ID = c.Param("experienceId")
	if err := h.freelancerUC.UpdateExperience(c.Request.Context(), freelancerID(c), exp); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, exp)
}

// DeleteExperience godoc
// @Summary      Delete a work experience entry
// @Tags         freelancer
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /freelancer/experience/{experienceId} [delete]
// @Security     BearerAuth
func (h *FreelancerHandler) DeleteExperience(c *gin.Context) {
	if err := h.freelancerUC.DeleteExperience(c.Request.Context(), freelancerID(c), c.Param("experienceId")); err != nil {
		c.Error(err)
		return
	}
	response.Message(c, http.StatusOK, "Experience deleted")
}

type replaceExperiencesRequest struct {
	Experiences []experienceRequest `json:"experiences" binding:"required,dive"`
}

// ReplaceExperiences godoc
// @Summary      Replace the whole work experience list
// @Description  Bulk-edit path: swaps every entry at once instead of
// @Description  editing children one by one.
// @Tags         freelancer
// @Accept       json
// @Produce      json
// @Success      200  {array}  domain.Experience
// @Router       /freelancer/experiences [put]
// @Security     BearerAuth
func (h *FreelancerHandler) ReplaceExperiences(c *gin.Context) {
	var req replaceExperiencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "One or more parameters are invalid", validation.FormatValidationErrors(err))
		return
	}

	exps := make([]domain.Experience, 0, len(req.Experiences))
	for _, e := range req.Experiences {
		exps = append(exps, *e.toDomain())
	}
	if err := h.freelancerUC.ReplaceExperiences(c.Request.Context(), freelancerID(c), exps); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, exps)
}

type educationRequest struct {
	School      string     `json:"school" binding:"required"`
	Town        string     `json:"town"`
	CountryCode string     `json:"countryCode" binding:"omitempty,iso3166_1_alpha2"`
	StartDate   time.Time  `json:"startDate" binding:"required"`
	EndDate     *time.Time `json:"endDate"`
	Description string     `json:"description"`
}

func (r *educationRequest) toDomain() *domain.Education {
	return &domain.Education{
		School:      r.School,
		Town:        r.Town,
		CountryCode: r.CountryCode,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Description: r.Description,
	}
}

// AddEducation godoc
// @Summary      Add an education entry
// @Tags         freelancer
// @Accept       json
// @Produce      json
// @Success      201  {object}  domain.Education
// @Router       /freelancer/education [post]
// @Security     BearerAuth
func (h *FreelancerHandler) AddEducation(c *gin.Context) {
	var req educationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "One or more parameters are invalid", validation.FormatValidationErrors(err))
		return
	}

	edu := req.toDomain()
	if err := h.freelancerUC.AddEducation(c.Request.Context(), freelancerID(c), edu); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, edu)
}

// UpdateEducation godoc
// @Summary      Update an education entry
// @Tags         freelancer
// @Accept       json
// @Produce      json
// @Success      200  {object}  domain.Education
// @Failure      404  {object}  response.Response
// @Router       /freelancer/education/{educationId} [put]
// @Security     BearerAuth
func (h *FreelancerHandler) UpdateEducation(c *gin.Context) {
	var req educationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "One or more parameters are invalid", validation.FormatValidationErrors(err))
		return
	}

	edu := req.toDomain()
	edu.ID = c.Param("educationId")
	if err := h.freelancerUC.UpdateEducation(c.Request.Context(), freelancerID(c), edu); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, edu)
}

// DeleteEducation godoc
// @Summary      Delete an education entry
// @Tags         freelancer
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /freelancer/education/{educationId} [delete]
// @Security     BearerAuth
func (h *FreelancerHandler) DeleteEducation(c *gin.Context) {
	if err := h.freelancerUC.DeleteEducation(c.Request.Context(), freelancerID(c), c.Param("educationId")); err != nil {
		c.Error(err)
		return
	}
	response.Message(c, http.StatusOK, "Education deleted")
}

type replaceEducationsRequest struct {
	Educations []educationRequest `json:"educations" binding:"required,dive"`
}

// ReplaceEducations godoc
// @Summary      Replace the whole education list
// @Tags         freelancer
// @Accept       json
// @Produce      json
// @Success      200  {array}  domain.Education
// @Router       /freelancer/educations [put]
// @Security     BearerAuth
func (h *FreelancerHandler) ReplaceEducations(c *gin.Context) {
	var req replaceEducationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "One or more parameters are invalid", validation.FormatValidationErrors(err))
		return
	}

	edus := make([]domain.Education, 0, len(req.Educations))
	for _, e := range req.Educations {
		edus = append(edus, *e.toDomain())
	}
	if err := h.freelancerUC.ReplaceEducations(c.Request.Context(), freelancerID(c), edus); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, edus)
}

type replaceLanguagesRequest struct {
	Languages []struct {
		Code  string `json:"code" binding:"required,len=2"`
		Level string `json:"level" binding:"required,language_level"`
	} `json:"languages" binding:"required,dive"`
}

// ReplaceLanguages godoc
// @Summary      Replace the spoken language list
// @Tags         freelancer
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /freelancer/languages [put]
// @Security     BearerAuth
func (h *FreelancerHandler) ReplaceLanguages(c *gin.Context) {
	var req replaceLanguagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "One or more parameters are invalid", validation.FormatValidationErrors(err))
		return
	}

	langs := make([]domain.Language, 0, len(req.Languages))
	for _, l := range req.Languages {
		langs = append(langs, domain.Language{Code: l.Code, Level: domain.LanguageLevel(l.Level)})
	}
	if err := h.freelancerUC.ReplaceLanguages(c.Request.Context(), freelancerID(c), langs); err != nil {
		c.Error(err)
		return
	}
	response.Message(c, http.StatusOK, "Languages updated")
}

// UploadImage godoc
// @Summary      Upload a profile picture
// @Description  Accepts a multipart file under the "image" field, recompresses
// @Description  it to JPEG and stores it in object storage.
// @Tags         freelancer
// @Accept       multipart/form-data
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  response.Response
// @Router       /freelancer/image [post]
// @Security     BearerAuth
func (h *FreelancerHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.Message(c, http.StatusBadRequest, "An image file is required")
		return
	}
	if fileHeader.Size > maxImageSize {
		response.Message(c, http.StatusBadRequest, "Image must be smaller than 5MB")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Message(c, http.StatusBadRequest, "Cannot read image file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize+1))
	if err != nil || len(data) > maxImageSize {
		response.Message(c, http.StatusBadRequest, "Cannot read image file")
		return
	}

	url, err := h.freelancerUC.UploadImage(c.Request.Context(), freelancerID(c), data)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"image": url})
}

// DeleteImage godoc
// @Summary      Remove the profile picture
// @Tags         freelancer
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /freelancer/image [delete]
// @Security     BearerAuth
func (h *FreelancerHandler) DeleteImage(c *gin.Context) {
	if err := h.freelancerUC.DeleteImage(c.Request.Context(), freelancerID(c)); err != nil {
		c.Error(err)
		return
	}
	response.Message(c, http.StatusOK, "Image deleted")
}

// DeleteAccount godoc
// @Summary      Delete the account and all owned data
// @Tags         freelancer
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /freelancer [delete]
// @Security     BearerAuth
func (h *FreelancerHandler) DeleteAccount(c *gin.Context) {
	if err := h.freelancerUC.DeleteAccount(c.Request.Context(), freelancerID(c)); err != nil {
		c.Error(err)
		return
	}
	response.Message(c, http.StatusOK, "Account deleted")
}
