package middleware

import (
	"strings"

	"backoffice/internal/domain"
	"backoffice/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	sessionKey = "session"
	// SessionCookie carries the browser token when the front-end does not
	// send an Authorization header.
	SessionCookie = "bo_session"
)

// ErrorWriter renders an error response; handlers.RespondDomainError in
// production.
type ErrorWriter func(c *gin.Context, err error)

// RequireSession resolves the browser token into a live session and stores
// it on the context. Requests without one stop here with 401.
func RequireSession(m *session.Manager, fail ErrorWriter) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token, _ = c.Cookie(SessionCookie)
		}
		if token == "" {
			fail(c, domain.UnauthorizedError{Msg: "login required"})
			c.Abort()
			return
		}
		sess, err := m.Resolve(c.Request.Context(), token)
		if err != nil {
			fail(c, err)
			c.Abort()
			return
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

// CurrentSession returns the session set by RequireSession, or nil.
func CurrentSession(c *gin.Context) *session.Session {
	if c == nil {
		return nil
	}
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	s, _ := v.(*session.Session)
	return s
}

func bearerToken(h string) string {
	h = strings.TrimSpace(h)
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
