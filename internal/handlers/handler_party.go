package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/opahours_backend/internal/core/ports/services"
	"github.com/SscSPs/opahours_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

type partyHandler struct {
	clientService portssvc.ClientSvcFacade
	personService portssvc.PersonSvcFacade
}

// registerPartyRoutes exposes the read-only client and person catalogues.
func registerPartyRoutes(rg *gin.RouterGroup, cs portssvc.ClientSvcFacade, ps portssvc.PersonSvcFacade) {
	h := &partyHandler{clientService: cs, personService: ps}

	rg.GET("/clients", h.listClients)
	rg.GET("/clients/:clientID", h.getClient)
	rg.GET("/persons", h.listPersons)
	rg.GET("/persons/:personID", h.getPerson)
}

// listClients godoc
// @Summary List clients
// @Tags clients
// @Produce json
// @Success 200 {array} dto.ClientResponse
// @Security BearerAuth
// @Router /clients [get]
func (h *partyHandler) listClients(c *gin.Context) {
	clients, err := h.clientService.ListClients(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListClientResponse(clients))
}

// getClient godoc
// @Summary Get a client
// @Tags clients
// @Produce json
// @Param clientID path string true "Client ID"
// @Success 200 {object} dto.ClientResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /clients/{clientID} [get]
func (h *partyHandler) getClient(c *gin.Context) {
	client, err := h.clientService.GetClientByID(c.Request.Context(), c.Param("clientID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// listPersons godoc
// @Summary List persons
// @Tags persons
// @Produce json
// @Success 200 {array} dto.PersonResponse
// @Security BearerAuth
// @Router /persons [get]
func (h *partyHandler) listPersons(c *gin.Context) {
	persons, err := h.personService.ListPersons(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListPersonResponse(persons))
}

// getPerson godoc
// @Summary Get a person
// @Tags persons
// @Produce json
// @Param personID path string true "Person ID"
// @Success 200 {object} dto.PersonResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /persons/{personID} [get]
func (h *partyHandler) getPerson(c *gin.Context) {
	person, err := h.personService.GetPersonByID(c.Request.Context(), c.Param("personID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPersonResponse(person))
}
