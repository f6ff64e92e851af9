package jwtmw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"user_backend/internal/api"
)

// ContextClaims is the gin context key under which AuthRequired stores the
// verified token claims.
const ContextClaims = "authClaims"

// Claims is the caller identity decoded from a verified bearer token.
type Claims struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// AuthRequired returns a Gin middleware that validates the bearer token on
// the Authorization header and attaches the decoded claims to the context.
// A missing token is rejected with 401, an invalid or expired one with 403.
// The middleware never touches persistence.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.Response{
				Message: "Access denied. No token provided.",
				Status:  http.StatusUnauthorized,
			})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		if secret == "" {
			// Server misconfiguration, not a caller problem
			c.AbortWithStatusJSON(http.StatusInternalServerError, api.Response{
				Message: "Server misconfigured.",
				Status:  http.StatusInternalServerError,
			})
			return
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			// Only HMAC is acceptable; anything else is a forgery attempt
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusForbidden, api.Response{
				Message: "Invalid or expired token.",
				Status:  http.StatusForbidden,
			})
			return
		}

		if mc, ok := token.Claims.(jwt.MapClaims); ok {
			var claims Claims
			if id, ok := mc["id"].(float64); ok { // JWT numbers decode as float64
				claims.ID = uint(id)
			}
			if name, ok := mc["name"].(string); ok {
				claims.Name = name
			}
			c.Set(ContextClaims, claims)
		}
		c.Next()
	}
}

// ClaimsFromContext retrieves the claims AuthRequired stored, if any.
func ClaimsFromContext(c *gin.Context) (Claims, bool) {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return Claims{}, false
	}
	claims, ok := v.(Claims)
	return claims, ok
}
