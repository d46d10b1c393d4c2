package domain

// Client is a business billed for work.
type Client struct {
	ClientID string  `json:"id"`
	Name     string  `json:"name"`
	ABN      *string `json:"abn,omitempty"`
	Address  *string `json:"address,omitempty"`
	AuditFields
}

// Person is someone whose hours are logged and invoiced.
type Person struct {
	PersonID               string  `json:"id"`
	Name                   string  `json:"name"`
	Email                  string  `json:"email"`
	Address                *string `json:"address,omitempty"`
	DefaultHourlyRateCents *int64  `json:"defaultHourlyRateCents,omitempty"`
	AppliesGst             bool    `json:"appliesGst"`
	GstPercentage          *int64  `json:"gstPercentage,omitempty"`
	AuditFields
}

// EffectiveGstPercentage is the GST rate to charge on this person's invoices.
func (p Person) EffectiveGstPercentage() int64 {
	if !p.AppliesGst || p.GstPercentage == nil {
		return 0
	}
	return *p.GstPercentage
}
