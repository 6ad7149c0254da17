package v1

import (
	"net/http"

	"go-freelance-backend/config"
	"go-freelance-backend/internal/delivery/http/response"
	"go-freelance-backend/internal/domain"
	"go-freelance-backend/pkg/apperror"
	"go-freelance-backend/pkg/auth"
	"go-freelance-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC     domain.AuthUsecase
	jwtManager *auth.JWTManager
	cfg        *config.Config
}

func NewAuthHandler(public, protected *gin.RouterGroup, authUC domain.AuthUsecase, jwtManager *auth.JWTManager, cfg *config.Config) {
	handler := &AuthHandler{authUC: authUC, jwtManager: jwtManager, cfg: cfg}

	authGroup := public.Group("/auth")
	{
		authGroup.POST("/register", handler.Register)
		authGroup.POST("/register/confirm/:confirmationToken", handler.RegisterConfirm)
		authGroup.POST("/login", handler.Login)
		authGroup.GET("/logout", handler.Logout)
		authGroup.POST("/password/forgot", handler.ForgotPassword)
		authGroup.POST("/password/reset/:resetPasswordToken", handler.ResetPassword)
	}

	protected.GET("/auth/authorized", handler.Authorized)
}

type registerRequest struct {
	Email                string `json:"email" binding:"required,email"`
	FirstName            string `json:"firstName" binding:"required"`
	LastName             string `json:"lastName" binding:"required"`
	Password             string `json:"password" binding:"required,min=8,strong_password"`
	PasswordConfirmation string `json:"passwordConfirmation" binding:"required,eqfield=Password"`
}

// Register godoc
// @Summary      Register a freelancer account
// @Description  Creates an unconfirmed account and emails a confirmation link
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "One or more parameters are invalid", validation.FormatValidationErrors(err))
		return
	}

	if err := h.authUC.Register(c.Request.Context(), req.Email, req.FirstName, req.LastName, req.Password); err != nil {
		c.Error(err)
		return
	}

	response.Message(c, http.StatusCreated, "Account created")
}

// RegisterConfirm godoc
// @Summary      Confirm a registration
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  response.Response
// @Router       /auth/register/confirm/{confirmationToken} [post]
func (h *AuthHandler) RegisterConfirm(c *gin.Context) {
	f, err := h.authUC.ConfirmRegistration(c.Request.Context(), c.Param("confirmationToken"))
	if err != nil {
		c.Error(err)
		return
	}
	h.sendTokenResponse(c, http.StatusOK, f)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "One or more parameters are invalid", validation.FormatValidationErrors(err))
		return
	}

	f, err := h.authUC.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}
	h.sendTokenResponse(c, http.StatusOK, f)
}

// Logout godoc
// @Summary      Logout by clearing the token cookie
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /auth/logout [get]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie("token", "none", 10, "/", "", h.cfg.CookieSecure, true)
	response.Message(c, http.StatusOK, "Logged out")
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword godoc
// @Summary      Request a password reset email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /auth/password/forgot [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "One or more parameters are invalid", validation.FormatValidationErrors(err))
		return
	}

	if err := h.authUC.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		c.Error(err)
		return
	}
	response.Message(c, http.StatusOK, "Recovery email sent")
}

type resetPasswordRequest struct {
	Password             string `json:"password" binding:"required,min=8,strong_password"`
	PasswordConfirmation string `json:"passwordConfirmation" binding:"required,eqfield=Password"`
}

// ResetPassword godoc
// @Summary      Reset the password with a recovery token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  response.Response
// @Router       /auth/password/reset/{resetPasswordToken} [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "One or more parameters are invalid", validation.FormatValidationErrors(err))
		return
	}

	f, err := h.authUC.ResetPassword(c.Request.Context(), c.Param("resetPasswordToken"), req.Password)
	if err != nil {
		c.Error(err)
		return
	}
	h.sendTokenResponse(c, http.StatusOK, f)
}

// Authorized godoc
// @Summary      Verify the session token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /auth/authorized [get]
// @Security     BearerAuth
func (h *AuthHandler) Authorized(c *gin.Context) {
	response.Message(c, http.StatusOK, "Authorized")
}

// sendTokenResponse signs a session JWT, sets it as a cookie and returns
// it in the body.
func (h *AuthHandler) sendTokenResponse(c *gin.Context, statusCode int, f *domain.Freelancer) {
	token, err := h.jwtManager.Sign(f.ID)
	if err != nil {
		c.Error(apperror.Internal("Cannot issue token", err))
		return
	}

	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie("token", token, int(h.jwtManager.Expire().Seconds()), "/", "", h.cfg.CookieSecure, true)
	c.JSON(statusCode, gin.H{"token": token})
}
