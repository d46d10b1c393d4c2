package mapping

import (
	"github.com/SscSPs/opahours_backend/internal/core/domain"
	"github.com/SscSPs/opahours_backend/internal/models"
)

// ToDomainClient converts a model Client to a domain Client
func ToDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID:    m.ClientID,
		Name:        m.Name,
		ABN:         m.ABN,
		Address:     m.Address,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPerson converts a model Person to a domain Person
func ToDomainPerson(m models.Person) domain.Person {
	return domain.Person{
		PersonID:               m.PersonID,
		Name:                   m.Name,
		Email:                  m.Email,
		Address:                m.Address,
		DefaultHourlyRateCents: m.DefaultHourlyRateCents,
		AppliesGst:             m.AppliesGst,
		GstPercentage:          m.GstPercentage,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
	}
}
