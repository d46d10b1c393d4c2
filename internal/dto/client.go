package dto

import "github.com/SscSPs/opahours_backend/internal/core/domain"

type ClientResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	ABN     *string `json:"abn"`
	Address *string `json:"address"`
}

func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{ID: c.ClientID, Name: c.Name, ABN: c.ABN, Address: c.Address}
}

func ToListClientResponse(clients []domain.Client) []ClientResponse {
	out := make([]ClientResponse, len(clients))
	for i := range clients {
		out[i] = ToClientResponse(&clients[i])
	}
	return out
}

type PersonResponse struct {
	ID                     string  `json:"id"`
	Name                   string  `json:"name"`
	Email                  string  `json:"email"`
	Address                *string `json:"address"`
	DefaultHourlyRateCents *int64  `json:"defaultHourlyRateCents"`
	AppliesGst             bool    `json:"appliesGst"`
	GstPercentage          int64   `json:"gstPercentage"`
}

func ToPersonResponse(p *domain.Person) PersonResponse {
	return PersonResponse{
		ID:                     p.PersonID,
		Name:                   p.Name,
		Email:                  p.Email,
		Address:                p.Address,
		DefaultHourlyRateCents: p.DefaultHourlyRateCents,
		AppliesGst:             p.AppliesGst,
		GstPercentage:          p.EffectiveGstPercentage(),
	}
}

func ToListPersonResponse(persons []domain.Person) []PersonResponse {
	out := make([]PersonResponse, len(persons))
	for i := range persons {
		out[i] = ToPersonResponse(&persons[i])
	}
	return out
}
