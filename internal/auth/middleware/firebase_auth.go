package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/portfolio/internal/auth"
	"github.com/GoSim-25-26J-441/portfolio/internal/logutils"
	"github.com/GoSim-25-26J-441/portfolio/internal/session"
)

// FirebaseAuthMiddleware validates Firebase ID tokens and extracts user info
func FirebaseAuthMiddleware(verifier auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing authorization token"})
			return
		}

		decodedToken, err := verifier.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			logutils.Log.WithField("error", err).Debug("rejected id token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			return
		}

		c.Set(auth.CtxFirebaseUID, decodedToken.UID)

		// Extract email from claims if available
		if email, ok := decodedToken.Claims["email"].(string); ok {
			c.Set(auth.CtxEmail, email)
		}

		c.Next()
	}
}

// RequireAdmin lets the request through only when the token's e-mail is on
// the allow-list. It must run after FirebaseAuthMiddleware.
func RequireAdmin(guard *session.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !guard.IsAdmin(auth.UserEmail(c)) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"ok": false, "error": "admin access required"})
			return
		}
		c.Next()
	}
}

// AdminState rebuilds the session state for a request that passed
// FirebaseAuthMiddleware.
func AdminState(c *gin.Context, guard *session.Guard) session.State {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		return session.State{}
	}
	return guard.Derive(&session.Identity{UID: uid, Email: auth.UserEmail(c), Provider: "firebase"})
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return strings.TrimSpace(bearerToken[7:])
	}
	return ""
}
