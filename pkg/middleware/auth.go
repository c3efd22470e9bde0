package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"qa-forum/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextClaims   = "token_claims"
)

// AuthMiddleware authenticates API calls carrying "Authorization: Bearer <token>".
func AuthMiddleware(jwtService *jwt.Service, denylist jwt.Denylist) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		claims, ok := authenticate(c, jwtService, denylist, parts[1])
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// SessionMiddleware resolves the session cookie into the request identity.
// It never aborts; RequireLogin decides what anonymous callers may see.
func SessionMiddleware(jwtService *jwt.Service, denylist jwt.Denylist, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err == nil && token != "" {
			if claims, ok := authenticate(c, jwtService, denylist, token); ok {
				setIdentity(c, claims)
			}
		}
		c.Next()
	}
}

// RequireLogin redirects anonymous callers to loginPath, remembering where they were going.
func RequireLogin(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUserID(c) != 0 {
			c.Next()
			return
		}

		target := loginPath + "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
		c.Redirect(http.StatusFound, target)
		c.Abort()
	}
}

func CurrentUserID(c *gin.Context) uint {
	return c.GetUint(ContextUserID)
}

func CurrentUsername(c *gin.Context) string {
	return c.GetString(ContextUsername)
}

func CurrentClaims(c *gin.Context) *jwt.Claims {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*jwt.Claims)
	return claims
}

func authenticate(c *gin.Context, jwtService *jwt.Service, denylist jwt.Denylist, token string) (*jwt.Claims, bool) {
	claims, err := jwtService.ValidateToken(token)
	if err != nil || claims.UserID == 0 {
		return nil, false
	}

	if denylist != nil {
		revoked, err := denylist.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			_ = c.Error(err)
		} else if revoked {
			return nil, false
		}
	}

	return claims, true
}

func setIdentity(c *gin.Context, claims *jwt.Claims) {
	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextUsername, claims.Username)
	c.Set(ContextClaims, claims)
}
