package mapping

import (
	"fmt"
	"time"

	"github.com/SscSPs/opahours_backend/internal/core/domain"
	"github.com/SscSPs/opahours_backend/internal/models"
)

// ToModelWorkLog flattens a work log into its header row and item rows,
// filling in the derived columns.
func ToModelWorkLog(wl *domain.WorkLog, now time.Time) (models.WorkLog, []models.WorkLogItem) {
	items := wl.Items()
	header := models.WorkLog{
		ID:                   wl.ID(),
		PersonID:             wl.PersonID(),
		ClientID:             wl.ClientID(),
		WorkDate:             wl.WorkDate(),
		Notes:                wl.Notes(),
		DailyAdditionalCents: wl.DailyAdditionalCents(),
		Status:               string(wl.Status()),
		StartAt:              wl.StartAt(),
		EndAt:                wl.EndAt(),
		BreakMinutes:         wl.TotalBreakMinutes(),
		PayableMinutes:       wl.TotalPayableMinutes(),
		TotalCents:           wl.TotalCents(),
		AuditFields:          models.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	rows := make([]models.WorkLogItem, len(items))
	for i, item := range items {
		rows[i] = models.WorkLogItem{
			ID:              item.ID(),
			WorkLogID:       wl.ID(),
			Location:        item.Location(),
			StartAt:         item.StartAt(),
			EndAt:           item.EndAt(),
			BreakMinutes:    item.BreakDuration().Minutes(),
			PayableMinutes:  item.PayableDuration().Minutes(),
			HourlyRateCents: item.HourlyRate().Cents(),
			AdditionalCents: item.AdditionalCents(),
			TotalCents:      item.TotalCents(),
			Notes:           item.Notes(),
			SortOrder:       i,
		}
	}
	return header, rows
}

// ToDomainWorkLog rebuilds the aggregate from stored rows. The stored totals
// are ignored; every amount is recomputed by the domain.
func ToDomainWorkLog(m models.WorkLog, rows []models.WorkLogItem) (*domain.WorkLog, error) {
	items := make([]*domain.WorkLogItem, 0, len(rows))
	for _, row := range rows {
		item, err := domain.NewWorkLogItem(domain.WorkLogItemInput{
			ID:              row.ID,
			Location:        row.Location,
			StartAt:         row.StartAt.UTC().Format(time.RFC3339Nano),
			EndAt:           row.EndAt.UTC().Format(time.RFC3339Nano),
			BreakMinutes:    row.BreakMinutes,
			HourlyRateCents: row.HourlyRateCents,
			AdditionalCents: row.AdditionalCents,
			Notes:           row.Notes,
		})
		if err != nil {
			return nil, fmt.Errorf("stored work log item %s is invalid: %w", row.ID, err)
		}
		items = append(items, item)
	}

	wl, err := domain.NewWorkLog(domain.WorkLogInput{
		ID:                   m.ID,
		PersonID:             m.PersonID,
		ClientID:             m.ClientID,
		WorkDate:             m.WorkDate,
		Notes:                m.Notes,
		DailyAdditionalCents: m.DailyAdditionalCents,
		Status:               domain.WorkLogStatus(m.Status),
		Items:                items,
	})
	if err != nil {
		return nil, fmt.Errorf("stored work log %s is invalid: %w", m.ID, err)
	}
	return wl, nil
}
