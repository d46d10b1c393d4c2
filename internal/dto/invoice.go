package dto

import (
	"time"

	"github.com/SscSPs/opahours_backend/internal/core/domain"
	"github.com/SscSPs/opahours_backend/internal/utils"
)

// CreateInvoiceDraftRequest selects the work logs to bill. GstPercentage
// overrides the person's configured rate when present.
type CreateInvoiceDraftRequest struct {
	WorkLogIDs    []string `json:"workLogIds" binding:"required,min=1,dive,uuid"`
	GstPercentage *int64   `json:"gstPercentage" binding:"omitempty,min=0,max=100" example:"10"`
}

// MarkInvoicePaidRequest optionally backdates the payment.
type MarkInvoicePaidRequest struct {
	PaidAt *time.Time `json:"paidAt"`
}

// ListInvoicesQuery holds the filters of GET /invoices.
type ListInvoicesQuery struct {
	PersonID string `form:"personId" binding:"omitempty,uuid"`
	ClientID string `form:"clientId" binding:"omitempty,uuid"`
	Status   string `form:"status" binding:"omitempty,oneof=draft issued sent paid superseded"`
	Limit    int    `form:"limit,default=50" binding:"min=1,max=200"`
	Offset   int    `form:"offset,default=0" binding:"min=0"`
}

type InvoiceItemResponse struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Location    *string `json:"location"`
	AmountCents int64   `json:"amountCents"`
	Amount      string  `json:"amount" example:"405.00"`
	SortOrder   int     `json:"sortOrder"`
}

type InvoiceResponse struct {
	ID                string                `json:"id"`
	Number            int64                 `json:"number"`
	Version           int64                 `json:"version"`
	PersonID          string                `json:"personId"`
	ClientID          string                `json:"clientId"`
	PeriodStart       string                `json:"periodStart"`
	PeriodEnd         string                `json:"periodEnd"`
	Status            string                `json:"status"`
	SubtotalCents     int64                 `json:"subtotalCents"`
	GstTotalCents     int64                 `json:"gstTotalCents"`
	TotalCents        int64                 `json:"totalCents"`
	Subtotal          string                `json:"subtotal" example:"405.00"`
	GstTotal          string                `json:"gstTotal" example:"40.50"`
	Total             string                `json:"total" example:"445.50"`
	PreviousInvoiceID *string               `json:"previousInvoiceId"`
	IssuedAt          *string               `json:"issuedAt"`
	PaidAt            *string               `json:"paidAt"`
	Items             []InvoiceItemResponse `json:"items"`
	WorkLogIDs        []string              `json:"workLogIds"`
}

// ToInvoiceResponse converts an invoice into its API view, adding display amounts.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	items := inv.Items()
	resp := InvoiceResponse{
		ID:                inv.ID(),
		Number:            inv.Number(),
		Version:           inv.Version(),
		PersonID:          inv.PersonID(),
		ClientID:          inv.ClientID(),
		PeriodStart:       inv.PeriodStart(),
		PeriodEnd:         inv.PeriodEnd(),
		Status:            string(inv.Status()),
		SubtotalCents:     inv.SubtotalCents(),
		GstTotalCents:     inv.GstTotalCents(),
		TotalCents:        inv.TotalCents(),
		Subtotal:          utils.FormatCents(inv.SubtotalCents()),
		GstTotal:          utils.FormatCents(inv.GstTotalCents()),
		Total:             utils.FormatCents(inv.TotalCents()),
		PreviousInvoiceID: inv.PreviousInvoiceID(),
		IssuedAt:          formatTimestamp(inv.IssuedAt()),
		PaidAt:            formatTimestamp(inv.PaidAt()),
		Items:             make([]InvoiceItemResponse, 0, len(items)),
		WorkLogIDs:        inv.WorkLogIDs(),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, InvoiceItemResponse{
			ID:          item.ID(),
			Description: item.Description(),
			Location:    item.Location(),
			AmountCents: item.AmountCents(),
			Amount:      utils.FormatCents(item.AmountCents()),
			SortOrder:   item.SortOrder(),
		})
	}
	return resp
}

func ToListInvoiceResponse(invoices []*domain.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		out[i] = ToInvoiceResponse(inv)
	}
	return out
}
