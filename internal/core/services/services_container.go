package services

import (
	portsrepo "github.com/SscSPs/opahours_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/opahours_backend/internal/core/ports/services"
	"github.com/SscSPs/opahours_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, opts ...ServiceOption) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Auth:    NewAuthService(cfg, repos.UserRepo, repos.RefreshTokenRepo, opts...),
		User:    NewUserService(repos.TxManager, repos.UserRepo, repos.RefreshTokenRepo, opts...),
		Client:  NewClientService(repos.ClientRepo, opts...),
		Person:  NewPersonService(repos.PersonRepo, opts...),
		WorkLog: NewWorkLogService(repos.TxManager, repos.WorkLogRepo, repos.PersonRepo, repos.ClientRepo, opts...),
		Invoice: NewInvoiceService(repos.TxManager, repos.InvoiceRepo, repos.WorkLogRepo, repos.PersonRepo, opts...),
	}
}
