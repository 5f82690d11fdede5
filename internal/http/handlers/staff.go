package handlers

import (
	"net/http"

	"backoffice/internal/forms"
	"backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *API) staff(c *gin.Context) services.StaffService {
	s := h.scope(c)
	return services.StaffService{WS: s.ws, RequestID: s.rid}
}

func (h *API) ListStaff(c *gin.Context) {
	res, err := h.staff(c).List(c.Request.Context(), listInput(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *API) GetStaff(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	st, err := h.staff(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": st})
}

func (h *API) CreateStaff(c *gin.Context) {
	in, ok := bindForm[forms.Staff](c)
	if !ok {
		return
	}
	st, msg, err := h.staff(c).Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, writeResult{Data: st, Message: msg})
}

func (h *API) UpdateStaff(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	in, ok := bindForm[forms.StaffUpdate](c)
	if !ok {
		return
	}
	st, msg, err := h.staff(c).Update(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, writeResult{Data: st, Message: msg})
}
