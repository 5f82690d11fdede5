package handlers

import (
	"net/http"

	"backoffice/internal/forms"
	"backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *API) customers(c *gin.Context) services.CustomerService {
	s := h.scope(c)
	return services.CustomerService{WS: s.ws, RequestID: s.rid}
}

// GET /api/customers?page=&search=&toggle=
func (h *API) ListCustomers(c *gin.Context) {
	res, err := h.customers(c).List(c.Request.Context(), listInput(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *API) GetCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	cu, err := h.customers(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": cu})
}

func (h *API) CreateCustomer(c *gin.Context) {
	in, ok := bindForm[forms.Customer](c)
	if !ok {
		return
	}
	cu, msg, err := h.customers(c).Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, writeResult{Data: cu, Message: msg})
}

func (h *API) UpdateCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	in, ok := bindForm[forms.Customer](c)
	if !ok {
		return
	}
	cu, msg, err := h.customers(c).Update(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, writeResult{Data: cu, Message: msg})
}

// POST /api/customers/requests
func (h *API) CreateCustomerRequest(c *gin.Context) {
	in, ok := bindForm[forms.CustomerRequest](c)
	if !ok {
		return
	}
	ack, err := h.customers(c).CreateRequest(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": ack.Message})
}
