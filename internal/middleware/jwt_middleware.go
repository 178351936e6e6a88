package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/paydii_api/internal/models"
	"github.com/GTDGit/paydii_api/internal/utils"
)

const accountIDKey = "account_id"

// JWTMiddleware resolves the caller identity from a bearer token. Repeated
// invalid tokens from one IP are throttled.
type JWTMiddleware struct {
	secret  string
	limiter *InvalidAuthRateLimiter
}

// NewJWTMiddleware creates a JWTMiddleware verifying tokens signed with secret.
func NewJWTMiddleware(secret string, limiter *InvalidAuthRateLimiter) *JWTMiddleware {
	return &JWTMiddleware{secret: secret, limiter: limiter}
}

// Handle rejects requests without a valid bearer token and stores the token
// subject as the caller identity.
func (m *JWTMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if m.limiter != nil && m.limiter.Blocked(ip) {
			utils.Error(c, 429, "TOO_MANY_ATTEMPTS", "Too many invalid authentication attempts")
			c.Abort()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(c, 401, "UNAUTHORIZED", "Missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.Error(c, 401, "UNAUTHORIZED", "Invalid authorization header")
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(m.secret, parts[1])
		if err != nil {
			if m.limiter != nil {
				m.limiter.Allow(ip)
			}
			log.Warn().Str("ip", ip).Msg("Invalid bearer token")
			utils.Error(c, 401, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(accountIDKey, claims.Subject)
		c.Next()
	}
}

// GetAccountID returns the caller identity set by JWTMiddleware, or "".
func GetAccountID(c *gin.Context) models.AccountID {
	return models.AccountID(c.GetString(accountIDKey))
}
