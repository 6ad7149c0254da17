package middleware

import (
	"context"
	"net/http"
	"strings"

	"go-freelance-backend/internal/delivery/http/response"
	"go-freelance-backend/internal/domain"
	"go-freelance-backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware admits requests carrying a valid session JWT, from the
// Authorization header or the token cookie, and stores the freelancer id
// on the context.
func AuthMiddleware(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else if cookie, err := c.Cookie("token"); err == nil && cookie != "" {
			tokenString = cookie
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or token cookie required", nil)
			c.Abort()
			return
		}

		freelancerID, err := jwtManager.Verify(tokenString)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyFreelancerID), freelancerID)

		// Mirror onto the request context so usecases can read it through
		// plain context.Context.
		ctx := context.WithValue(c.Request.Context(), domain.KeyFreelancerID, freelancerID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
