package handlers

import (
	"net/http"

	"github.com/SscSPs/opahours_backend/internal/core/domain"
	portssvc "github.com/SscSPs/opahours_backend/internal/core/ports/services"
	"github.com/SscSPs/opahours_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// invoiceHandler handles HTTP requests for invoices.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

// registerInvoiceRoutes registers all invoice routes.
func registerInvoiceRoutes(rg *gin.RouterGroup, is portssvc.InvoiceSvcFacade) {
	h := &invoiceHandler{invoiceService: is}

	invoices := rg.Group("/invoices")
	{
		invoices.GET("", h.listInvoices)
		invoices.POST("/drafts", h.createDraft)
		invoices.GET("/:invoiceID", h.getInvoice)
		invoices.POST("/:invoiceID/issue", h.issue)
		invoices.POST("/:invoiceID/send", h.markSent)
		invoices.POST("/:invoiceID/pay", h.markPaid)
	}
}

// createDraft godoc
// @Summary Draft an invoice
// @Description Bills the selected draft work logs of one person and client. Lines are grouped by location.
// @Tags invoices
// @Accept json
// @Produce json
// @Param draft body dto.CreateInvoiceDraftRequest true "Work logs to bill"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "WORK_LOG_NOT_FOUND"
// @Failure 409 {object} dto.ErrorResponse "Mixed, duplicate or ineligible selection"
// @Security BearerAuth
// @Router /invoices/drafts [post]
func (h *invoiceHandler) createDraft(c *gin.Context) {
	var req dto.CreateInvoiceDraftRequest
	if !bindJSON(c, &req) {
		return
	}
	inv, err := h.invoiceService.CreateInvoiceDraft(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(inv))
}

// listInvoices godoc
// @Summary List invoices
// @Tags invoices
// @Produce json
// @Param personId query string false "Person ID"
// @Param clientId query string false "Client ID"
// @Param status query string false "Invoice status"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} dto.InvoiceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	var query dto.ListInvoicesQuery
	if !bindQuery(c, &query) {
		return
	}
	invoices, err := h.invoiceService.ListInvoices(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListInvoiceResponse(invoices))
}

// getInvoice godoc
// @Summary Get an invoice
// @Tags invoices
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /invoices/{invoiceID} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	h.respondInvoice(c)(h.invoiceService.GetInvoiceByID(c.Request.Context(), c.Param("invoiceID")))
}

// issue godoc
// @Summary Issue an invoice
// @Description Finalises a draft and locks its work logs.
// @Tags invoices
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "INVOICE_INVALID_STATUS_TRANSITION"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/issue [post]
func (h *invoiceHandler) issue(c *gin.Context) {
	h.respondInvoice(c)(h.invoiceService.IssueInvoice(c.Request.Context(), c.Param("invoiceID")))
}

// markSent godoc
// @Summary Mark an invoice as sent
// @Tags invoices
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /invoices/{invoiceID}/send [post]
func (h *invoiceHandler) markSent(c *gin.Context) {
	h.respondInvoice(c)(h.invoiceService.MarkInvoiceSent(c.Request.Context(), c.Param("invoiceID")))
}

// markPaid godoc
// @Summary Mark an invoice as paid
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Param payment body dto.MarkInvoicePaidRequest false "Payment time, defaults to now"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /invoices/{invoiceID}/pay [post]
func (h *invoiceHandler) markPaid(c *gin.Context) {
	var req dto.MarkInvoicePaidRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	h.respondInvoice(c)(h.invoiceService.MarkInvoicePaid(c.Request.Context(), c.Param("invoiceID"), req))
}

func (h *invoiceHandler) respondInvoice(c *gin.Context) func(*domain.Invoice, error) {
	return func(inv *domain.Invoice, err error) {
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.ToInvoiceResponse(inv))
	}
}
