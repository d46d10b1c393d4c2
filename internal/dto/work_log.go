package dto

import (
	"time"

	"github.com/SscSPs/opahours_backend/internal/core/domain"
)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// WorkLogItemRequest is one item of a create or update request.
type WorkLogItemRequest struct {
	ID              *string `json:"id" binding:"omitempty,uuid"`
	Location        string  `json:"location" binding:"required,min=2,max=255" example:"Client HQ"`
	StartAt         string  `json:"startAt" binding:"required,datetime=2006-01-02T15:04:05Z07:00" example:"2026-02-22T09:00:00.000Z"`
	EndAt           string  `json:"endAt" binding:"required,datetime=2006-01-02T15:04:05Z07:00" example:"2026-02-22T12:00:00.000Z"`
	BreakMinutes    int64   `json:"breakMinutes" binding:"min=0" example:"30"`
	HourlyRateCents int64   `json:"hourlyRateCents" binding:"required,gt=0" example:"12000"`
	AdditionalCents int64   `json:"additionalCents" example:"2500"`
	Notes           *string `json:"notes" binding:"omitempty,max=1000"`
}

// CreateWorkLogRequest is the body of POST /work-logs.
type CreateWorkLogRequest struct {
	PersonID             string               `json:"personId" binding:"required,uuid"`
	ClientID             string               `json:"clientId" binding:"required,uuid"`
	WorkDate             string               `json:"workDate" binding:"required,iso_date" example:"2026-02-22"`
	Notes                *string              `json:"notes" binding:"omitempty,max=1000"`
	DailyAdditionalCents int64                `json:"dailyAdditionalCents"`
	Items                []WorkLogItemRequest `json:"items" binding:"omitempty,dive"`
}

// UpdateWorkLogRequest is the body of PUT /work-logs/:workLogID. Omitted
// fields keep their stored value; a present items array replaces all items.
type UpdateWorkLogRequest struct {
	PersonID             *string               `json:"personId" binding:"omitempty,uuid"`
	ClientID             *string               `json:"clientId" binding:"omitempty,uuid"`
	WorkDate             *string               `json:"workDate" binding:"omitempty,iso_date"`
	Notes                NullableString        `json:"notes" swaggertype:"string"`
	DailyAdditionalCents *int64                `json:"dailyAdditionalCents"`
	Items                *[]WorkLogItemRequest `json:"items" binding:"omitempty,dive"`
}

// IsEmpty reports whether no field was supplied.
func (r UpdateWorkLogRequest) IsEmpty() bool {
	return r.PersonID == nil && r.ClientID == nil && r.WorkDate == nil && !r.Notes.Set &&
		r.DailyAdditionalCents == nil && r.Items == nil
}

// ListWorkLogsQuery holds the query parameters of GET /work-logs.
type ListWorkLogsQuery struct {
	PersonID  string `form:"personId" binding:"required,uuid"`
	ClientID  string `form:"clientId" binding:"omitempty,uuid"`
	From      string `form:"from" binding:"omitempty,iso_date"`
	To        string `form:"to" binding:"omitempty,iso_date"`
	Status    string `form:"status" binding:"omitempty,oneof=draft linked invoiced"`
	Limit     int    `form:"limit,default=50" binding:"min=1,max=200"`
	NextToken string `form:"nextToken"`
}

type WorkLogItemResponse struct {
	ID              string  `json:"id"`
	Location        string  `json:"location"`
	StartAt         string  `json:"startAt"`
	EndAt           string  `json:"endAt"`
	BreakMinutes    int64   `json:"breakMinutes"`
	PayableMinutes  int64   `json:"payableMinutes"`
	HourlyRateCents int64   `json:"hourlyRateCents"`
	AdditionalCents int64   `json:"additionalCents"`
	TotalCents      int64   `json:"totalCents"`
	Notes           *string `json:"notes"`
}

type WorkLogResponse struct {
	ID                   string                `json:"id"`
	PersonID             string                `json:"personId"`
	ClientID             string                `json:"clientId"`
	WorkDate             string                `json:"workDate"`
	Notes                *string               `json:"notes"`
	DailyAdditionalCents int64                 `json:"dailyAdditionalCents"`
	Status               string                `json:"status"`
	StartAt              *string               `json:"startAt"`
	EndAt                *string               `json:"endAt"`
	TotalBreakMinutes    int64                 `json:"totalBreakMinutes"`
	TotalWorkedMinutes   int64                 `json:"totalWorkedMinutes"`
	TotalPayableMinutes  int64                 `json:"totalPayableMinutes"`
	TotalCents           int64                 `json:"totalCents"`
	Items                []WorkLogItemResponse `json:"items"`
}

type ListWorkLogsResponse struct {
	WorkLogs  []WorkLogResponse `json:"workLogs"`
	NextToken *string           `json:"nextToken"`
}

func formatTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(timestampLayout)
	return &s
}

// ToWorkLogResponse flattens a work log and its derived totals.
func ToWorkLogResponse(wl *domain.WorkLog) WorkLogResponse {
	items := wl.Items()
	resp := WorkLogResponse{
		ID:                   wl.ID(),
		PersonID:             wl.PersonID(),
		ClientID:             wl.ClientID(),
		WorkDate:             wl.WorkDate(),
		Notes:                wl.Notes(),
		DailyAdditionalCents: wl.DailyAdditionalCents(),
		Status:               string(wl.Status()),
		StartAt:              formatTimestamp(wl.StartAt()),
		EndAt:                formatTimestamp(wl.EndAt()),
		TotalBreakMinutes:    wl.TotalBreakMinutes(),
		TotalWorkedMinutes:   wl.TotalWorkedMinutes(),
		TotalPayableMinutes:  wl.TotalPayableMinutes(),
		TotalCents:           wl.TotalCents(),
		Items:                make([]WorkLogItemResponse, 0, len(items)),
	}
	for _, item := range items {
		start, end := item.StartAt(), item.EndAt()
		resp.Items = append(resp.Items, WorkLogItemResponse{
			ID:              item.ID(),
			Location:        item.Location(),
			StartAt:         *formatTimestamp(&start),
			EndAt:           *formatTimestamp(&end),
			BreakMinutes:    item.BreakDuration().Minutes(),
			PayableMinutes:  item.PayableDuration().Minutes(),
			HourlyRateCents: item.HourlyRate().Cents(),
			AdditionalCents: item.AdditionalCents(),
			TotalCents:      item.TotalCents(),
			Notes:           item.Notes(),
		})
	}
	return resp
}

// ToListWorkLogsResponse wraps a page of work logs.
func ToListWorkLogsResponse(logs []*domain.WorkLog, nextToken *string) ListWorkLogsResponse {
	out := make([]WorkLogResponse, len(logs))
	for i, wl := range logs {
		out[i] = ToWorkLogResponse(wl)
	}
	return ListWorkLogsResponse{WorkLogs: out, NextToken: nextToken}
}
