package middleware

import (
	"backoffice/internal/domain"

	"github.com/gin-gonic/gin"
)

// RequireRoles lets a request through only when the session role is one of
// allowed. It must run after RequireSession.
//
//	staff.POST("", RequireRoles(fail, domain.RoleAdmin), h.CreateStaff)
func RequireRoles(fail ErrorWriter, allowed ...domain.Role) gin.HandlerFunc {
	set := make(map[domain.Role]struct{}, len(allowed))
	for _, r := range allowed {
		set[r] = struct{}{}
	}

	return func(c *gin.Context) {
		sess := CurrentSession(c)
		if sess == nil {
			fail(c, domain.UnauthorizedError{Msg: "login required"})
			c.Abort()
			return
		}
		if _, ok := set[sess.Role]; !ok {
			fail(c, domain.ForbiddenError{Msg: "this action requires the " + allowedNames(allowed) + " role"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func allowedNames(roles []domain.Role) string {
	out := ""
	for i, r := range roles {
		if i > 0 {
			out += " or "
		}
		out += r.String()
	}
	return out
}
