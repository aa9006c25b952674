package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nomadly/itinerary-api/internal/service"
	appErrors "github.com/nomadly/itinerary-api/pkg/errors"
	"github.com/nomadly/itinerary-api/pkg/response"
)

// ContextUserKey is where validated JWT claims live in the gin context.
const ContextUserKey = "currentUser"

// JWT rejects requests without a valid Bearer access token and stores the
// token's claims for downstream handlers.
func JWT(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "missing or malformed authorization header"))
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}
