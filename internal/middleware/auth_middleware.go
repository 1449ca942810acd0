package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ArowuTest/bingo-caller/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// TokenParser validates host tokens
type TokenParser interface {
	Parse(tokenString string) (jwt.MapClaims, error)
}

// JWTAuthMiddleware creates a gin middleware for host token authentication.
func JWTAuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		const BearerSchema = "Bearer "
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Log.Warn().Msg("JWTAuthMiddleware: Authorization header is missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		if !strings.HasPrefix(authHeader, BearerSchema) {
			logger.Log.Warn().Msg("JWTAuthMiddleware: Authorization header format is invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must start with Bearer "})
			return
		}

		claims, err := tokens.Parse(authHeader[len(BearerSchema):])
		if err != nil {
			logger.Log.Warn().Err(err).Msg("JWTAuthMiddleware: Token parsing/validation failed")
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			} else {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			return
		}

		c.Set("userID", claims["sub"])
		c.Set("userRole", claims["role"])
		c.Next()
	}
}
