package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/opahours_backend/internal/apperrors"
	"github.com/SscSPs/opahours_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/opahours_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/opahours_backend/internal/core/ports/services"
	"github.com/SscSPs/opahours_backend/internal/core/services"
	"github.com/SscSPs/opahours_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type InvoiceServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	now         time.Time
	txManager   *MockTxManager
	invoiceRepo *MockInvoiceRepository
	workLogRepo *MockWorkLogRepository
	personRepo  *MockPersonRepository
	service     portssvc.InvoiceSvcFacade
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.now = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	suite.txManager = new(MockTxManager)
	suite.txManager.On("RunInTx", mock.Anything).Return()
	suite.invoiceRepo = new(MockInvoiceRepository)
	suite.workLogRepo = new(MockWorkLogRepository)
	suite.personRepo = new(MockPersonRepository)
	suite.service = services.NewInvoiceService(
		suite.txManager, suite.invoiceRepo, suite.workLogRepo, suite.personRepo,
		services.WithClock(func() time.Time { return suite.now }),
	)
}

func (suite *InvoiceServiceTestSuite) draftInvoice() (*domain.Invoice, []*domain.WorkLog) {
	logs := []*domain.WorkLog{
		newStoredLog(suite.T(), "2026-02-20", domain.WorkLogStatusDraft),
		newStoredLog(suite.T(), "2026-02-21", domain.WorkLogStatusDraft),
	}
	inv, err := domain.BuildInvoiceDraft(domain.BuildInvoiceDraftInput{
		InvoiceID:     uuid.NewString(),
		InvoiceNumber: 7,
		PersonID:      testPersonID,
		ClientID:      testClientID,
		WorkLogs:      logs,
		GstPercentage: 10,
	})
	suite.Require().NoError(err)
	for _, wl := range logs {
		suite.Require().NoError(wl.MarkLinked())
	}
	return inv, logs
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoiceDraft_Success() {
	a := newStoredLog(suite.T(), "2026-02-20", domain.WorkLogStatusDraft)
	b := newStoredLog(suite.T(), "2026-02-21", domain.WorkLogStatusDraft)
	ids := []string{b.ID(), a.ID()}
	gst := int64(10)

	suite.workLogRepo.On("FindWorkLogsByIDs", mock.Anything, ids).Return([]*domain.WorkLog{a, b}, nil).Once()
	suite.personRepo.On("FindPersonByID", mock.Anything, testPersonID).Return(&domain.Person{PersonID: testPersonID, AppliesGst: true, GstPercentage: &gst}, nil).Once()
	suite.invoiceRepo.On("NextInvoiceNumber", mock.Anything).Return(int64(42), nil).Once()
	suite.invoiceRepo.On("SaveInvoice", mock.Anything, mock.AnythingOfType("*domain.Invoice")).Return(nil).Once()
	suite.workLogRepo.On("SaveWorkLog", mock.Anything, mock.AnythingOfType("*domain.WorkLog")).Return(nil).Twice()

	inv, err := suite.service.CreateInvoiceDraft(suite.ctx, dto.CreateInvoiceDraftRequest{WorkLogIDs: ids})

	suite.Require().NoError(err)
	suite.Equal(int64(42), inv.Number())
	suite.Equal(domain.InvoiceStatusDraft, inv.Status())
	suite.Equal("2026-02-20", inv.PeriodStart())
	suite.Equal("2026-02-21", inv.PeriodEnd())
	suite.Equal(int64(40000), inv.SubtotalCents())
	suite.Equal(int64(4000), inv.GstTotalCents())
	suite.Equal(ids, inv.WorkLogIDs())
	suite.Equal(domain.WorkLogStatusLinked, a.Status())
	suite.Equal(domain.WorkLogStatusLinked, b.Status())
	suite.invoiceRepo.AssertExpectations(suite.T())
	suite.workLogRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoiceDraft_GstOverride() {
	a := newStoredLog(suite.T(), "2026-02-20", domain.WorkLogStatusDraft)
	zero := int64(0)

	suite.workLogRepo.On("FindWorkLogsByIDs", mock.Anything, []string{a.ID()}).Return([]*domain.WorkLog{a}, nil).Once()
	suite.personRepo.On("FindPersonByID", mock.Anything, testPersonID).Return(&domain.Person{PersonID: testPersonID, AppliesGst: true}, nil).Once()
	suite.invoiceRepo.On("NextInvoiceNumber", mock.Anything).Return(int64(1), nil).Once()
	suite.invoiceRepo.On("SaveInvoice", mock.Anything, mock.Anything).Return(nil).Once()
	suite.workLogRepo.On("SaveWorkLog", mock.Anything, a).Return(nil).Once()

	inv, err := suite.service.CreateInvoiceDraft(suite.ctx, dto.CreateInvoiceDraftRequest{
		WorkLogIDs:    []string{a.ID()},
		GstPercentage: &zero,
	})

	suite.Require().NoError(err)
	suite.Equal(int64(0), inv.GstTotalCents())
	suite.Equal(inv.SubtotalCents(), inv.TotalCents())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoiceDraft_SelectionErrors() {
	draft := newStoredLog(suite.T(), "2026-02-20", domain.WorkLogStatusDraft)
	linked := newStoredLog(suite.T(), "2026-02-21", domain.WorkLogStatusLinked)
	missing := uuid.NewString()

	suite.workLogRepo.On("FindWorkLogsByIDs", mock.Anything, []string{draft.ID(), missing}).Return([]*domain.WorkLog{draft}, nil).Once()
	suite.workLogRepo.On("FindWorkLogsByIDs", mock.Anything, []string{draft.ID(), draft.ID()}).Return([]*domain.WorkLog{draft}, nil).Once()
	suite.workLogRepo.On("FindWorkLogsByIDs", mock.Anything, []string{linked.ID()}).Return([]*domain.WorkLog{linked}, nil).Once()
	suite.personRepo.On("FindPersonByID", mock.Anything, testPersonID).Return(&domain.Person{PersonID: testPersonID}, nil)

	tests := []struct {
		name string
		ids  []string
		want error
	}{
		{"empty", nil, domain.ErrEmptySelection},
		{"missing log", []string{draft.ID(), missing}, apperrors.New(apperrors.CodeWorkLogNotFound)},
		{"duplicate id", []string{draft.ID(), draft.ID()}, domain.ErrDuplicateWorkLog},
		{"already linked", []string{linked.ID()}, domain.ErrIneligibleStatus},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			inv, err := suite.service.CreateInvoiceDraft(suite.ctx, dto.CreateInvoiceDraftRequest{WorkLogIDs: tt.ids})
			suite.Nil(inv)
			suite.ErrorIs(err, tt.want)
		})
	}
	suite.invoiceRepo.AssertNotCalled(suite.T(), "NextInvoiceNumber", mock.Anything)
	suite.invoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything)
	suite.workLogRepo.AssertNotCalled(suite.T(), "SaveWorkLog", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoiceDraft_MixedClientsSpendsNoNumber() {
	a := newStoredLog(suite.T(), "2026-02-20", domain.WorkLogStatusDraft)
	b, err := domain.NewWorkLog(domain.WorkLogInput{
		ID:       uuid.NewString(),
		PersonID: testPersonID,
		ClientID: uuid.NewString(),
		WorkDate: "2026-02-20",
		Items:    a.Items(),
	})
	suite.Require().NoError(err)
	ids := []string{a.ID(), b.ID()}

	suite.workLogRepo.On("FindWorkLogsByIDs", mock.Anything, ids).Return([]*domain.WorkLog{a, b}, nil).Once()
	suite.personRepo.On("FindPersonByID", mock.Anything, testPersonID).Return(&domain.Person{PersonID: testPersonID}, nil).Once()

	inv, err := suite.service.CreateInvoiceDraft(suite.ctx, dto.CreateInvoiceDraftRequest{WorkLogIDs: ids})

	suite.Nil(inv)
	suite.ErrorIs(err, domain.ErrMixedClients)
	suite.invoiceRepo.AssertNotCalled(suite.T(), "NextInvoiceNumber", mock.Anything)
	suite.Equal(domain.WorkLogStatusDraft, a.Status())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoiceDraft_EmptyLogRejected() {
	withItems := newStoredLog(suite.T(), "2026-02-20", domain.WorkLogStatusDraft)
	empty, err := domain.NewWorkLog(domain.WorkLogInput{
		ID:       uuid.NewString(),
		PersonID: testPersonID,
		ClientID: testClientID,
		WorkDate: "2026-02-21",
	})
	suite.Require().NoError(err)
	ids := []string{withItems.ID(), empty.ID()}

	suite.workLogRepo.On("FindWorkLogsByIDs", mock.Anything, ids).Return([]*domain.WorkLog{withItems, empty}, nil).Once()
	suite.personRepo.On("FindPersonByID", mock.Anything, testPersonID).Return(&domain.Person{PersonID: testPersonID}, nil).Once()

	inv, err := suite.service.CreateInvoiceDraft(suite.ctx, dto.CreateInvoiceDraftRequest{WorkLogIDs: ids})

	suite.Nil(inv)
	suite.ErrorIs(err, domain.ErrWorkLogEmpty)
	code, ok := domain.CodeOf(err)
	suite.True(ok)
	suite.Equal(domain.CodeWorkLogEmpty, code)
	suite.invoiceRepo.AssertNotCalled(suite.T(), "NextInvoiceNumber", mock.Anything)
	suite.invoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything)
	suite.workLogRepo.AssertNotCalled(suite.T(), "SaveWorkLog", mock.Anything, mock.Anything)
	suite.Equal(domain.WorkLogStatusDraft, withItems.Status())
}

func (suite *InvoiceServiceTestSuite) TestIssueInvoice_LocksWorkLogs() {
	inv, logs := suite.draftInvoice()

	suite.invoiceRepo.On("FindInvoiceByIDForUpdate", mock.Anything, inv.ID()).Return(inv, nil).Once()
	suite.workLogRepo.On("FindWorkLogsByIDs", mock.Anything, inv.WorkLogIDs()).Return(logs, nil).Once()
	suite.workLogRepo.On("SaveWorkLog", mock.Anything, mock.Anything).Return(nil).Twice()
	suite.invoiceRepo.On("SaveInvoice", mock.Anything, mock.MatchedBy(func(i *domain.Invoice) bool {
		return i.Status() == domain.InvoiceStatusIssued
	})).Return(nil).Once()

	issued, err := suite.service.IssueInvoice(suite.ctx, inv.ID())

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceStatusIssued, issued.Status())
	suite.Require().NotNil(issued.IssuedAt())
	suite.Equal(suite.now, *issued.IssuedAt())
	for _, wl := range logs {
		suite.True(wl.IsLocked())
	}
	suite.Equal(domain.InvoiceStatusDraft, inv.Status())
	suite.invoiceRepo.AssertNotCalled(suite.T(), "FindInvoiceByID", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestIssueInvoice_NotFound() {
	suite.invoiceRepo.On("FindInvoiceByIDForUpdate", mock.Anything, "nope").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.IssueInvoice(suite.ctx, "nope")

	suite.ErrorIs(err, apperrors.New(apperrors.CodeInvoiceNotFound))
}

func (suite *InvoiceServiceTestSuite) TestLifecycleAfterIssue() {
	inv, _ := suite.draftInvoice()
	issued, err := inv.Issue(suite.now)
	suite.Require().NoError(err)

	suite.invoiceRepo.On("FindInvoiceByIDForUpdate", mock.Anything, inv.ID()).Return(issued, nil).Once()
	suite.invoiceRepo.On("SaveInvoice", mock.Anything, mock.Anything).Return(nil)

	sent, err := suite.service.MarkInvoiceSent(suite.ctx, inv.ID())
	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceStatusSent, sent.Status())

	paidAt := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	suite.invoiceRepo.On("FindInvoiceByIDForUpdate", mock.Anything, inv.ID()).Return(sent, nil).Once()

	paid, err := suite.service.MarkInvoicePaid(suite.ctx, inv.ID(), dto.MarkInvoicePaidRequest{PaidAt: &paidAt})
	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceStatusPaid, paid.Status())
	suite.Equal(paidAt, *paid.PaidAt())
	suite.txManager.AssertNumberOfCalls(suite.T(), "RunInTx", 2)
	suite.invoiceRepo.AssertNotCalled(suite.T(), "FindInvoiceByID", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestMarkInvoicePaid_DraftRejected() {
	inv, _ := suite.draftInvoice()
	suite.invoiceRepo.On("FindInvoiceByIDForUpdate", mock.Anything, inv.ID()).Return(inv, nil).Once()

	_, err := suite.service.MarkInvoicePaid(suite.ctx, inv.ID(), dto.MarkInvoicePaidRequest{})

	code, ok := domain.CodeOf(err)
	suite.True(ok)
	suite.Equal(domain.CodeInvoiceInvalidStatusTransition, code)
	suite.invoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestListInvoices_DefaultsLimit() {
	suite.invoiceRepo.On("ListInvoices", mock.Anything, portsrepo.InvoiceFilter{
		Status: domain.InvoiceStatusPaid,
		Limit:  50,
	}).Return(nil, nil).Once()

	invoices, err := suite.service.ListInvoices(suite.ctx, dto.ListInvoicesQuery{Status: "paid"})

	suite.Require().NoError(err)
	suite.NotNil(invoices)
	suite.Empty(invoices)
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
