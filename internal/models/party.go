package models

// Client is a row of clients.
type Client struct {
	ClientID string  `db:"id"`
	Name     string  `db:"name"`
	ABN      *string `db:"abn"`
	Address  *string `db:"address"`
	AuditFields
}

// Person is a row of persons.
type Person struct {
	PersonID               string  `db:"id"`
	Name                   string  `db:"name"`
	Email                  string  `db:"email"`
	Address                *string `db:"address"`
	DefaultHourlyRateCents *int64  `db:"default_hourly_rate_cents"`
	AppliesGst             bool    `db:"applies_gst"`
	GstPercentage          *int64  `db:"gst_percentage"`
	AuditFields
}
