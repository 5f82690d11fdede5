package handlers

import (
	"net/http"

	"backoffice/internal/forms"
	"backoffice/internal/resources"
	"backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *API) consignments(c *gin.Context) services.ConsignmentService {
	s := h.scope(c)
	return services.ConsignmentService{WS: s.ws, RequestID: s.rid}
}

func (h *API) deposits(c *gin.Context) services.DepositService {
	s := h.scope(c)
	return services.DepositService{WS: s.ws, RequestID: s.rid}
}

func (h *API) transfers(c *gin.Context) services.TransferService {
	s := h.scope(c)
	return services.TransferService{WS: s.ws, RequestID: s.rid}
}

// ackByID runs an id-addressed write that answers with a message only.
func ackByID(c *gin.Context, fn func(id int64) (resources.Ack, error)) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ack, err := fn(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": ack.Message})
}

func (h *API) ListConsignments(c *gin.Context) {
	res, err := h.consignments(c).List(c.Request.Context(), listInput(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *API) GetConsignment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	k, err := h.consignments(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": k})
}

func (h *API) CreateConsignment(c *gin.Context) {
	in, ok := bindForm[forms.Consignment](c)
	if !ok {
		return
	}
	k, msg, err := h.consignments(c).Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, writeResult{Data: k, Message: msg})
}

// PUT /api/consignments/:id/cancel
func (h *API) CancelConsignment(c *gin.Context) {
	svc := h.consignments(c)
	ackByID(c, func(id int64) (resources.Ack, error) { return svc.Cancel(c.Request.Context(), id) })
}

func (h *API) DeleteConsignment(c *gin.Context) {
	svc := h.consignments(c)
	ackByID(c, func(id int64) (resources.Ack, error) { return svc.Delete(c.Request.Context(), id) })
}

func (h *API) ListDeposits(c *gin.Context) {
	res, err := h.deposits(c).List(c.Request.Context(), listInput(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *API) GetDeposit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	d, err := h.deposits(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": d})
}

func (h *API) CreateDeposit(c *gin.Context) {
	in, ok := bindForm[forms.Deposit](c)
	if !ok {
		return
	}
	d, msg, err := h.deposits(c).Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, writeResult{Data: d, Message: msg})
}

func (h *API) CancelDeposit(c *gin.Context) {
	svc := h.deposits(c)
	ackByID(c, func(id int64) (resources.Ack, error) { return svc.Cancel(c.Request.Context(), id) })
}

func (h *API) DeleteDeposit(c *gin.Context) {
	svc := h.deposits(c)
	ackByID(c, func(id int64) (resources.Ack, error) { return svc.Delete(c.Request.Context(), id) })
}

func (h *API) ListTransfers(c *gin.Context) {
	res, err := h.transfers(c).List(c.Request.Context(), listInput(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *API) GetTransfer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	t, err := h.transfers(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": t})
}

func (h *API) CreateTransfer(c *gin.Context) {
	in, ok := bindForm[forms.Transfer](c)
	if !ok {
		return
	}
	t, msg, err := h.transfers(c).Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, writeResult{Data: t, Message: msg})
}

func (h *API) DeleteTransfer(c *gin.Context) {
	svc := h.transfers(c)
	ackByID(c, func(id int64) (resources.Ack, error) { return svc.Delete(c.Request.Context(), id) })
}
