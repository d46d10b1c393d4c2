package models

import "time"

// WorkLog is a row of work_logs. The span and total columns are derived from
// the items on every save and exist for reporting queries only.
type WorkLog struct {
	ID                   string     `db:"id"`
	PersonID             string     `db:"person_id"`
	ClientID             string     `db:"client_id"`
	WorkDate             string     `db:"work_date"`
	Notes                *string    `db:"notes"`
	DailyAdditionalCents int64      `db:"daily_additional_cents"`
	Status               string     `db:"status"`
	StartAt              *time.Time `db:"start_at"`
	EndAt                *time.Time `db:"end_at"`
	BreakMinutes         int64      `db:"break_minutes"`
	PayableMinutes       int64      `db:"payable_minutes"`
	TotalCents           int64      `db:"total_cents"`
	AuditFields
}

// WorkLogItem is a row of work_log_items.
type WorkLogItem struct {
	ID              string    `db:"id"`
	WorkLogID       string    `db:"work_log_id"`
	Location        string    `db:"location"`
	StartAt         time.Time `db:"start_at"`
	EndAt           time.Time `db:"end_at"`
	BreakMinutes    int64     `db:"break_minutes"`
	PayableMinutes  int64     `db:"payable_minutes"`
	HourlyRateCents int64     `db:"hourly_rate_cents"`
	AdditionalCents int64     `db:"additional_cents"`
	TotalCents      int64     `db:"total_cents"`
	Notes           *string   `db:"notes"`
	SortOrder       int       `db:"sort_order"`
}
