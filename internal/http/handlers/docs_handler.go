package handlers

import (
	"context"
	"net/http"

	"backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

type pdfFunc func(svc services.DocsService, ctx context.Context, id int64) ([]byte, string, error)

// servePDF streams a generated contract inline.
func (h *API) servePDF(c *gin.Context, gen pdfFunc) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	s := h.scope(c)
	pdfBytes, filename, err := gen(services.DocsService{WS: s.ws, RequestID: s.rid}, c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// GET /api/consignments/:id/pdf
func (h *API) ConsignmentPDF(c *gin.Context) {
	h.servePDF(c, services.DocsService.ConsignmentPDF)
}

// GET /api/deposits/:id/pdf
func (h *API) DepositPDF(c *gin.Context) {
	h.servePDF(c, services.DocsService.DepositPDF)
}

// GET /api/transfers/:id/pdf
func (h *API) TransferPDF(c *gin.Context) {
	h.servePDF(c, services.DocsService.TransferPDF)
}
