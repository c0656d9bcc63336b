package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"hotelbooking/internal/pkg/apperr"
	"hotelbooking/internal/pkg/jwt"
	"hotelbooking/internal/pkg/response"
)

const AccessTokenCookie = "access_token"

// Auth requires a valid access token and puts user_id into the context.
// The token is read from the access_token cookie, then from "Authorization: Bearer".
func Auth(tokens *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := AccessToken(c)
		if raw == "" {
			response.Abort(c, apperr.ErrNoAccessToken)
			return
		}

		claims, err := tokens.ValidateToken(raw)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				response.Abort(c, apperr.ErrTokenExpired)
				return
			}
			response.Abort(c, apperr.ErrIncorrectToken)
			return
		}

		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

// AccessToken returns the raw token from the cookie or bearer header, or "".
func AccessToken(c *gin.Context) string {
	if v, err := c.Cookie(AccessTokenCookie); err == nil && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}
