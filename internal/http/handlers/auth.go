package handlers

import (
	"net/http"

	"backoffice/internal/forms"
	"backoffice/internal/http/middleware"
	"backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *API) auth(c *gin.Context) services.AuthService {
	return services.AuthService{
		Client:    h.Client,
		Sessions:  h.Sessions,
		Registry:  h.Registry,
		RequestID: middleware.GetRequestID(c),
	}
}

// POST /api/auth/login
func (h *API) Login(c *gin.Context) {
	in, ok := bindForm[forms.Login](c)
	if !ok {
		return
	}
	sess, token, staff, err := h.auth(c).Login(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	maxAge := int(h.Sessions.TTL.Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", h.SecureCookie, true)
	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"expiresAt": sess.ExpiresAt,
		"user":      staff,
		"role":      staff.Role.String(),
	})
}

// POST /api/auth/logout
func (h *API) Logout(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if err := h.auth(c).Logout(c.Request.Context(), sess); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.SecureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// GET /api/auth/me
func (h *API) Me(c *gin.Context) {
	s := h.scope(c)
	staff, err := h.auth(c).Me(c.Request.Context(), s.ws)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": staff, "role": s.sess.Role.String()})
}
