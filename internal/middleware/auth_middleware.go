package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yatube/yatube/internal/pkg/auth"
)

// AccessTokenCookie is the cookie browser clients carry the access token in.
// API clients may send the same token in the Authorization header instead.
const AccessTokenCookie = "access_token"

// AuthMiddleware resolves the requesting user from the access token
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// CurrentUser resolves the visitor's identity and stores it in the request
// context. The access_token cookie is checked first, then the Authorization
// header. Requests without a valid token pass through anonymously; handlers
// that need a signed-in user enforce it with LoginRequired.
func (m *AuthMiddleware) CurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		// Browser flow: token travels in a cookie
		if cookieToken, err := c.Cookie(AccessTokenCookie); err == nil && cookieToken != "" {
			tokenString = cookieToken
		}

		// API flow: token travels in the Authorization header
		if tokenString == "" {
			if authHeader := c.GetHeader("Authorization"); authHeader != "" {
				if extracted, err := auth.ExtractBearerToken(authHeader); err == nil {
					tokenString = extracted
				}
			}
		}

		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			// Expired or malformed tokens leave the visitor anonymous
			c.Next()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)

		c.Next()
	}
}

// LoginRequired redirects guests to the login page with the originally
// requested URL in the next parameter. Must run after CurrentUser.
func (m *AuthMiddleware) LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("userID"); !exists {
			c.Redirect(http.StatusFound, loginRedirectURL(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}

		c.Next()
	}
}

// loginRedirectURL builds the login URL carrying nextPath as the next query
// parameter. Slashes in the path are kept literal.
func loginRedirectURL(nextPath string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(nextPath), "%2F", "/")
	return "/auth/login/?next=" + escaped
}
