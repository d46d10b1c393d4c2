package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/opahours_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/opahours_backend/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock TransactionManager ---
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Called(ctx)
	return fn(ctx)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func userOrNil(v any) *domain.User {
	if v == nil {
		return nil
	}
	return v.(*domain.User)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) CountUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

// --- Mock RefreshTokenRepository ---
type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) SaveRefreshToken(ctx context.Context, token domain.RefreshToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockRefreshTokenRepository) FindActiveRefreshTokenByID(ctx context.Context, tokenID string) (*domain.RefreshToken, error) {
	args := m.Called(ctx, tokenID)
	var token *domain.RefreshToken
	if args.Get(0) != nil {
		token = args.Get(0).(*domain.RefreshToken)
	}
	return token, args.Error(1)
}

func (m *MockRefreshTokenRepository) RevokeRefreshToken(ctx context.Context, tokenID string, revokedAt time.Time) error {
	return m.Called(ctx, tokenID, revokedAt).Error(0)
}

func (m *MockRefreshTokenRepository) RevokeAllRefreshTokensForUser(ctx context.Context, userID string, revokedAt time.Time) error {
	return m.Called(ctx, userID, revokedAt).Error(0)
}

// --- Mock ClientRepository / PersonRepository ---
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	var client *domain.Client
	if args.Get(0) != nil {
		client = args.Get(0).(*domain.Client)
	}
	return client, args.Error(1)
}

func (m *MockClientRepository) ListClients(ctx context.Context) ([]domain.Client, error) {
	args := m.Called(ctx)
	var clients []domain.Client
	if args.Get(0) != nil {
		clients = args.Get(0).([]domain.Client)
	}
	return clients, args.Error(1)
}

type MockPersonRepository struct {
	mock.Mock
}

func (m *MockPersonRepository) FindPersonByID(ctx context.Context, personID string) (*domain.Person, error) {
	args := m.Called(ctx, personID)
	var person *domain.Person
	if args.Get(0) != nil {
		person = args.Get(0).(*domain.Person)
	}
	return person, args.Error(1)
}

func (m *MockPersonRepository) ListPersons(ctx context.Context) ([]domain.Person, error) {
	args := m.Called(ctx)
	var persons []domain.Person
	if args.Get(0) != nil {
		persons = args.Get(0).([]domain.Person)
	}
	return persons, args.Error(1)
}

// --- Mock WorkLogRepository ---
type MockWorkLogRepository struct {
	mock.Mock
}

func workLogOrNil(v any) *domain.WorkLog {
	if v == nil {
		return nil
	}
	return v.(*domain.WorkLog)
}

func (m *MockWorkLogRepository) FindWorkLogByID(ctx context.Context, workLogID string) (*domain.WorkLog, error) {
	args := m.Called(ctx, workLogID)
	return workLogOrNil(args.Get(0)), args.Error(1)
}

func (m *MockWorkLogRepository) FindWorkLogByIDForUpdate(ctx context.Context, workLogID string) (*domain.WorkLog, error) {
	args := m.Called(ctx, workLogID)
	return workLogOrNil(args.Get(0)), args.Error(1)
}

func (m *MockWorkLogRepository) FindWorkLogsByIDs(ctx context.Context, workLogIDs []string) ([]*domain.WorkLog, error) {
	args := m.Called(ctx, workLogIDs)
	var logs []*domain.WorkLog
	if args.Get(0) != nil {
		logs = args.Get(0).([]*domain.WorkLog)
	}
	return logs, args.Error(1)
}

func (m *MockWorkLogRepository) FindWorkLogByPersonClientDate(ctx context.Context, personID, clientID, workDate string) (*domain.WorkLog, error) {
	args := m.Called(ctx, personID, clientID, workDate)
	return workLogOrNil(args.Get(0)), args.Error(1)
}

func (m *MockWorkLogRepository) ListWorkLogs(ctx context.Context, filter portsrepo.WorkLogFilter) ([]*domain.WorkLog, error) {
	args := m.Called(ctx, filter)
	var logs []*domain.WorkLog
	if args.Get(0) != nil {
		logs = args.Get(0).([]*domain.WorkLog)
	}
	return logs, args.Error(1)
}

func (m *MockWorkLogRepository) SaveWorkLog(ctx context.Context, workLog *domain.WorkLog) error {
	return m.Called(ctx, workLog).Error(0)
}

func (m *MockWorkLogRepository) DeleteWorkLog(ctx context.Context, workLogID string) error {
	return m.Called(ctx, workLogID).Error(0)
}

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	return invoiceOrNil(args.Get(0)), args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoiceByIDForUpdate(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	return invoiceOrNil(args.Get(0)), args.Error(1)
}

func invoiceOrNil(v any) *domain.Invoice {
	if v == nil {
		return nil
	}
	return v.(*domain.Invoice)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, filter portsrepo.InvoiceFilter) ([]*domain.Invoice, error) {
	args := m.Called(ctx, filter)
	var invoices []*domain.Invoice
	if args.Get(0) != nil {
		invoices = args.Get(0).([]*domain.Invoice)
	}
	return invoices, args.Error(1)
}

func (m *MockInvoiceRepository) NextInvoiceNumber(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice *domain.Invoice) error {
	return m.Called(ctx, invoice).Error(0)
}

var (
	_ portsrepo.TransactionManager           = (*MockTxManager)(nil)
	_ portsrepo.UserRepositoryFacade         = (*MockUserRepository)(nil)
	_ portsrepo.RefreshTokenRepositoryFacade = (*MockRefreshTokenRepository)(nil)
	_ portsrepo.ClientRepositoryFacade       = (*MockClientRepository)(nil)
	_ portsrepo.PersonRepositoryFacade       = (*MockPersonRepository)(nil)
	_ portsrepo.WorkLogRepositoryFacade      = (*MockWorkLogRepository)(nil)
	_ portsrepo.InvoiceRepositoryFacade      = (*MockInvoiceRepository)(nil)
)
