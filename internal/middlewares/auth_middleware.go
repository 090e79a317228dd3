package middlewares

import (
	"net/http"
	"strconv"
	"strings"

	"school-cms-api/config"
	"school-cms-api/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

// AuthMiddleware accepts a bearer token and falls back to the access_token cookie.
// With no JWT_SECRET every request is refused.
func AuthMiddleware() gin.HandlerFunc {
	cfg := config.LoadConfig()
	secret := []byte(cfg.JWTSecret)

	return func(c *gin.Context) {
		if len(secret) == 0 {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Authentication is not configured"})
			return
		}

		accessToken := bearerToken(c.GetHeader("Authorization"))
		if accessToken == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				accessToken = cookie
			}
		}
		if accessToken == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing access token"})
			return
		}

		token, err := jwt.Parse(accessToken, func(token *jwt.Token) (interface{}, error) {
			return secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		var userID float64
		switch v := claims["user_id"].(type) {
		case float64:
			userID = v
		case string:
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid user ID"})
				return
			}
			userID = f
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid user ID"})
			return
		}

		role, _ := claims["role"].(string)

		c.Set(ContextUserID, userID)
		c.Set(ContextRole, role)
		c.Next()
	}
}

// RoleLookup returns the role currently stored for a user.
type RoleLookup func(userID uint) (string, error)

// CurrentRole replaces the role carried by the token with the stored one, so a
// demoted or deleted account loses access before its token expires.
func CurrentRole(lookup RoleLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := CurrentUserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		role, err := lookup(id)
		if err != nil {
			if apperr.Status(err) == http.StatusNotFound {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Account no longer exists"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load account"})
			return
		}
		c.Set(ContextRole, role)
		c.Next()
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You are not allowed to perform this action"})
	}
}

// CurrentUserID reads the id AuthMiddleware stored on the context.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	switch id := v.(type) {
	case float64:
		if id <= 0 {
			return 0, false
		}
		return uint(id), true
	case uint:
		return id, id > 0
	case int:
		return uint(id), id > 0
	}
	return 0, false
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
