package handlers_test

import (
	"context"

	"github.com/SscSPs/opahours_backend/internal/core/domain"
	portssvc "github.com/SscSPs/opahours_backend/internal/core/ports/services"
	"github.com/SscSPs/opahours_backend/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*portssvc.AuthResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.AuthResult), args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*portssvc.AuthResult, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.AuthResult), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, refreshToken string) error {
	return m.Called(ctx, refreshToken).Error(0)
}

func (m *MockAuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string, requestingUserID string) (*domain.User, error) {
	args := m.Called(ctx, userID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, requestingUserID string) ([]domain.User, error) {
	args := m.Called(ctx, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	args := m.Called(ctx, userID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	return m.Called(ctx, userID, requestingUserID).Error(0)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock ClientService / PersonService ---
type MockClientService struct {
	mock.Mock
}

func (m *MockClientService) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

type MockPersonService struct {
	mock.Mock
}

func (m *MockPersonService) GetPersonByID(ctx context.Context, personID string) (*domain.Person, error) {
	args := m.Called(ctx, personID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Person), args.Error(1)
}

func (m *MockPersonService) ListPersons(ctx context.Context) ([]domain.Person, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Person), args.Error(1)
}

var (
	_ portssvc.ClientSvcFacade = (*MockClientService)(nil)
	_ portssvc.PersonSvcFacade = (*MockPersonService)(nil)
)

// --- Mock WorkLogService ---
type MockWorkLogService struct {
	mock.Mock
}

func (m *MockWorkLogService) GetWorkLogByID(ctx context.Context, workLogID string) (*domain.WorkLog, error) {
	args := m.Called(ctx, workLogID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkLog), args.Error(1)
}

func (m *MockWorkLogService) ListWorkLogs(ctx context.Context, query dto.ListWorkLogsQuery) ([]*domain.WorkLog, *string, error) {
	args := m.Called(ctx, query)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]*domain.WorkLog), next, args.Error(2)
}

func (m *MockWorkLogService) CreateWorkLog(ctx context.Context, req dto.CreateWorkLogRequest) (*domain.WorkLog, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkLog), args.Error(1)
}

func (m *MockWorkLogService) UpdateWorkLog(ctx context.Context, workLogID string, req dto.UpdateWorkLogRequest) (*domain.WorkLog, error) {
	args := m.Called(ctx, workLogID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkLog), args.Error(1)
}

func (m *MockWorkLogService) DeleteWorkLog(ctx context.Context, workLogID string) error {
	return m.Called(ctx, workLogID).Error(0)
}

var _ portssvc.WorkLogSvcFacade = (*MockWorkLogService)(nil)

// --- Mock InvoiceService ---
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) invoice(args mock.Arguments) (*domain.Invoice, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, invoiceID))
}

func (m *MockInvoiceService) ListInvoices(ctx context.Context, query dto.ListInvoicesQuery) ([]*domain.Invoice, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) CreateInvoiceDraft(ctx context.Context, req dto.CreateInvoiceDraftRequest) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, req))
}

func (m *MockInvoiceService) IssueInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, invoiceID))
}

func (m *MockInvoiceService) MarkInvoiceSent(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, invoiceID))
}

func (m *MockInvoiceService) MarkInvoicePaid(ctx context.Context, invoiceID string, req dto.MarkInvoicePaidRequest) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, invoiceID, req))
}

var _ portssvc.InvoiceSvcFacade = (*MockInvoiceService)(nil)
