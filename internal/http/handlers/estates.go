package handlers

import (
	"net/http"

	"backoffice/internal/forms"
	"backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *API) estates(c *gin.Context) services.EstateService {
	s := h.scope(c)
	return services.EstateService{WS: s.ws, RequestID: s.rid}
}

func (h *API) ListPropertyTypes(c *gin.Context) {
	types, err := h.estates(c).Types(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": types})
}

func (h *API) ListProperties(c *gin.Context) {
	res, err := h.estates(c).List(c.Request.Context(), listInput(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *API) GetProperty(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := h.estates(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": p})
}

func (h *API) CreateProperty(c *gin.Context) {
	in, ok := bindForm[forms.Estate](c)
	if !ok {
		return
	}
	p, msg, err := h.estates(c).Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, writeResult{Data: p, Message: msg})
}

func (h *API) UpdateProperty(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	in, ok := bindForm[forms.Estate](c)
	if !ok {
		return
	}
	p, msg, err := h.estates(c).Update(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, writeResult{Data: p, Message: msg})
}

func (h *API) DeleteProperty(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ack, err := h.estates(c).Delete(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": ack.Message})
}
