package mapping_test

import (
	"testing"
	"time"

	"github.com/SscSPs/opahours_backend/internal/core/domain"
	"github.com/SscSPs/opahours_backend/internal/models"
	"github.com/SscSPs/opahours_backend/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkLogRows_DerivedColumnsAndRehydration(t *testing.T) {
	item, err := domain.NewWorkLogItem(domain.WorkLogItemInput{
		ID:              uuid.NewString(),
		Location:        "Sydney",
		StartAt:         "2026-02-22T09:00:00Z",
		EndAt:           "2026-02-22T12:00:00Z",
		BreakMinutes:    30,
		HourlyRateCents: 4000,
		AdditionalCents: 500,
	})
	require.NoError(t, err)
	wl, err := domain.NewWorkLog(domain.WorkLogInput{
		ID:                   uuid.NewString(),
		PersonID:             uuid.NewString(),
		ClientID:             uuid.NewString(),
		WorkDate:             "2026-02-22",
		DailyAdditionalCents: 1000,
		Status:               domain.WorkLogStatusInvoiced,
		Items:                []*domain.WorkLogItem{item},
	})
	require.NoError(t, err)

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	header, rows := mapping.ToModelWorkLog(wl, now)

	assert.Equal(t, "invoiced", header.Status)
	assert.Equal(t, int64(150), header.PayableMinutes)
	assert.Equal(t, int64(30), header.BreakMinutes)
	assert.Equal(t, wl.TotalCents(), header.TotalCents)
	require.NotNil(t, header.StartAt)
	assert.Equal(t, "2026-02-22T09:00:00Z", header.StartAt.Format(time.RFC3339))
	require.Len(t, rows, 1)
	assert.Equal(t, wl.ID(), rows[0].WorkLogID)

	// stored totals are never trusted
	header.TotalCents = 1
	rows[0].TotalCents = 1
	back, err := mapping.ToDomainWorkLog(header, rows)
	require.NoError(t, err)
	assert.Equal(t, wl.TotalCents(), back.TotalCents())
	assert.True(t, back.IsLocked())
}

func TestToDomainWorkLog_RejectsCorruptRows(t *testing.T) {
	_, err := mapping.ToDomainWorkLog(models.WorkLog{
		ID:       uuid.NewString(),
		PersonID: uuid.NewString(),
		ClientID: uuid.NewString(),
		WorkDate: "2026-02-22",
		Status:   "archived",
	}, nil)
	require.Error(t, err)
	code, ok := domain.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeWorkLogInvalidStatus, code)
}

func TestInvoiceRows(t *testing.T) {
	location := "Sydney"
	header := models.Invoice{
		ID:            uuid.NewString(),
		Number:        12,
		Version:       1,
		PersonID:      uuid.NewString(),
		ClientID:      uuid.NewString(),
		PeriodStart:   "2026-02-01",
		PeriodEnd:     "2026-02-28",
		Status:        "draft",
		SubtotalCents: 10000,
		GstTotalCents: 1000,
		TotalCents:    11000,
	}
	rows := []models.InvoiceItem{{ID: uuid.NewString(), Description: "Work performed at Sydney", Location: &location, AmountCents: 10000}}
	workLogIDs := []string{uuid.NewString()}

	inv, err := mapping.ToDomainInvoice(header, rows, workLogIDs)
	require.NoError(t, err)
	assert.Equal(t, workLogIDs, inv.WorkLogIDs())

	gotHeader, gotRows := mapping.ToModelInvoice(inv, time.Now())
	assert.Equal(t, header.TotalCents, gotHeader.TotalCents)
	assert.Equal(t, header.ID, gotRows[0].InvoiceID)
	assert.Equal(t, "Sydney", *gotRows[0].Location)

	header.TotalCents = 12000
	_, err = mapping.ToDomainInvoice(header, rows, workLogIDs)
	assert.ErrorIs(t, err, domain.ErrTotalMismatch)
}
