package handlers

import (
	"net/http"

	"backoffice/internal/forms"
	"backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *API) profile(c *gin.Context) services.ProfileService {
	s := h.scope(c)
	return services.ProfileService{WS: s.ws, RequestID: s.rid}
}

func (h *API) GetProfile(c *gin.Context) {
	p, err := h.profile(c).Me(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": p})
}

func (h *API) UpdateProfile(c *gin.Context) {
	in, ok := bindForm[forms.Profile](c)
	if !ok {
		return
	}
	p, msg, err := h.profile(c).Update(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, writeResult{Data: p, Message: msg})
}

// PUT /api/profile/password
func (h *API) ChangePassword(c *gin.Context) {
	in, ok := bindForm[forms.ChangePassword](c)
	if !ok {
		return
	}
	ack, err := h.profile(c).ChangePassword(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": ack.Message})
}
