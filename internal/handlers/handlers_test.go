package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/opahours_backend/internal/apperrors"
	"github.com/SscSPs/opahours_backend/internal/core/domain"
	portssvc "github.com/SscSPs/opahours_backend/internal/core/ports/services"
	"github.com/SscSPs/opahours_backend/internal/dto"
	"github.com/SscSPs/opahours_backend/internal/handlers"
	"github.com/SscSPs/opahours_backend/internal/middleware"
	"github.com/SscSPs/opahours_backend/internal/platform/config"
	"github.com/SscSPs/opahours_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	testPersonID = "6f1d3c1e-5d7b-4a8e-9b8e-2f4f2b0c1a11"
	testClientID = "0b7e3f5a-2c4d-4e6f-8a9b-1c2d3e4f5a6b"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:              "test-secret-key-that-is-long-enough",
		JWTExpiryDuration:      time.Minute,
		JWTIssuer:              "opahours-test",
		RefreshTokenCookieName: "refreshToken",
		RefreshTokenCookiePath: "/",
		CORSOrigins:            []string{"*"},
		LoginRateLimit:         "100-M",
		IsProduction:           true,
	}
}

func newWorkLog(t *testing.T) *domain.WorkLog {
	t.Helper()
	wl, err := domain.NewWorkLog(domain.WorkLogInput{
		ID:       uuid.NewString(),
		PersonID: testPersonID,
		ClientID: testClientID,
		WorkDate: "2026-02-22",
	})
	require.NoError(t, err)
	return wl
}

func newInvoice(t *testing.T, status domain.InvoiceStatus) *domain.Invoice {
	t.Helper()
	item, err := domain.NewInvoiceItem(domain.InvoiceItemInput{
		ID:          uuid.NewString(),
		Description: "Work performed at Sydney",
		AmountCents: 40500,
	})
	require.NoError(t, err)
	inv, err := domain.NewInvoice(domain.InvoiceInput{
		ID:            uuid.NewString(),
		Number:        7,
		Version:       1,
		PersonID:      testPersonID,
		ClientID:      testClientID,
		PeriodStart:   "2026-02-22",
		PeriodEnd:     "2026-02-22",
		Status:        status,
		SubtotalCents: 40500,
		GstTotalCents: 4050,
		TotalCents:    44550,
		Items:         []domain.InvoiceItem{item},
		WorkLogIDs:    []string{uuid.NewString()},
	})
	require.NoError(t, err)
	return inv
}

type HandlersTestSuite struct {
	suite.Suite
	cfg      *config.Config
	router   *gin.Engine
	auth     *MockAuthService
	users    *MockUserService
	clients  *MockClientService
	persons  *MockPersonService
	workLogs *MockWorkLogService
	invoices *MockInvoiceService
	userID   string
}

func (suite *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.cfg = testConfig()
	suite.auth = new(MockAuthService)
	suite.users = new(MockUserService)
	suite.clients = new(MockClientService)
	suite.persons = new(MockPersonService)
	suite.workLogs = new(MockWorkLogService)
	suite.invoices = new(MockInvoiceService)
	suite.userID = uuid.NewString()
	suite.router = suite.newRouter(suite.cfg)
}

func (suite *HandlersTestSuite) newRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))))
	err := handlers.RegisterRoutes(r, cfg, &portssvc.ServiceContainer{
		Auth:    suite.auth,
		User:    suite.users,
		Client:  suite.clients,
		Person:  suite.persons,
		WorkLog: suite.workLogs,
		Invoice: suite.invoices,
	})
	suite.Require().NoError(err)
	return r
}

func (suite *HandlersTestSuite) TearDownTest() {
	suite.auth.AssertExpectations(suite.T())
	suite.users.AssertExpectations(suite.T())
	suite.workLogs.AssertExpectations(suite.T())
	suite.invoices.AssertExpectations(suite.T())
}

// generateTestToken creates a valid access token for userID.
func (suite *HandlersTestSuite) generateTestToken(userID string) string {
	token, err := utils.GenerateJWT(userID, suite.cfg.JWTSecret, time.Minute, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)
	return token
}

func (suite *HandlersTestSuite) do(method, path string, body any, authed bool) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) decodeError(w *httptest.ResponseRecorder) dto.ErrorResponse {
	var body dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (suite *HandlersTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", nil, false)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"status":"ok"}`, w.Body.String())
}

func (suite *HandlersTestSuite) TestProtectedRoutesRequireToken() {
	for _, path := range []string{"/api/v1/work-logs", "/api/v1/invoices", "/api/v1/users", "/api/v1/clients", "/api/v1/auth/me"} {
		w := suite.do(http.MethodGet, path, nil, false)
		suite.Equal(http.StatusUnauthorized, w.Code, path)
		suite.Equal(string(apperrors.CodeMissingAccessToken), suite.decodeError(w).Code, path)
	}
}

func (suite *HandlersTestSuite) TestCreateWorkLog_Success() {
	wl := newWorkLog(suite.T())
	req := dto.CreateWorkLogRequest{PersonID: testPersonID, ClientID: testClientID, WorkDate: "2026-02-22"}
	suite.workLogs.On("CreateWorkLog", mock.Anything, req).Return(wl, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/work-logs", req, true)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.WorkLogResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(wl.ID(), resp.ID)
	suite.Equal("draft", resp.Status)
	suite.NotNil(resp.Items)
}

func (suite *HandlersTestSuite) TestCreateWorkLog_ValidationErrors() {
	testCases := []struct {
		name  string
		body  any
		field string
	}{
		{"malformed json", `{"personId":`, ""},
		{"missing person", map[string]any{"clientId": testClientID, "workDate": "2026-02-22"}, "PersonID"},
		{"impossible date", map[string]any{"personId": testPersonID, "clientId": testClientID, "workDate": "2026-02-30"}, "WorkDate"},
		{"bad item rate", map[string]any{
			"personId": testPersonID, "clientId": testClientID, "workDate": "2026-02-22",
			"items": []map[string]any{{"location": "Sydney", "startAt": "2026-02-22T09:00:00Z", "endAt": "2026-02-22T10:00:00Z"}},
		}, "HourlyRateCents"},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			w := suite.do(http.MethodPost, "/api/v1/work-logs", tc.body, true)
			suite.Equal(http.StatusBadRequest, w.Code)
			body := suite.decodeError(w)
			suite.Equal(string(apperrors.CodeValidation), body.Code)
			suite.NotEmpty(body.RequestID)
			if tc.field != "" {
				suite.Contains(body.Details["fields"], tc.field)
			}
		})
	}
	suite.workLogs.AssertNotCalled(suite.T(), "CreateWorkLog", mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestListWorkLogs() {
	next := "token-2"
	wl := newWorkLog(suite.T())
	query := dto.ListWorkLogsQuery{PersonID: testPersonID, Limit: 1}
	suite.workLogs.On("ListWorkLogs", mock.Anything, query).Return([]*domain.WorkLog{wl}, &next, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/work-logs?personId="+testPersonID+"&limit=1", nil, true)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListWorkLogsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.WorkLogs, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(next, *resp.NextToken)

	w = suite.do(http.MethodGet, "/api/v1/work-logs?status=draft", nil, true)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestUpdateWorkLog_LockedIsConflict() {
	id := uuid.NewString()
	suite.workLogs.On("UpdateWorkLog", mock.Anything, id, mock.AnythingOfType("dto.UpdateWorkLogRequest")).
		Return(nil, domain.ErrWorkLogLocked).Once()

	w := suite.do(http.MethodPut, "/api/v1/work-logs/"+id, `{"notes":null}`, true)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal(string(domain.CodeWorkLogLocked), suite.decodeError(w).Code)
}

func (suite *HandlersTestSuite) TestDeleteWorkLog() {
	id := uuid.NewString()
	suite.workLogs.On("DeleteWorkLog", mock.Anything, id).Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/work-logs/"+id, nil, true)

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"ok":true}`, w.Body.String())
}

func (suite *HandlersTestSuite) TestGetWorkLog_NotFound() {
	id := uuid.NewString()
	suite.workLogs.On("GetWorkLogByID", mock.Anything, id).
		Return(nil, apperrors.New(apperrors.CodeWorkLogNotFound).WithDetails(map[string]any{"workLogId": id})).Once()

	w := suite.do(http.MethodGet, "/api/v1/work-logs/"+id, nil, true)

	suite.Equal(http.StatusNotFound, w.Code)
	body := suite.decodeError(w)
	suite.Equal(string(apperrors.CodeWorkLogNotFound), body.Code)
	suite.Equal(id, body.Details["workLogId"])
}

func (suite *HandlersTestSuite) TestUnexpectedErrorIsOpaque() {
	suite.invoices.On("GetInvoiceByID", mock.Anything, "inv-1").Return(nil, errors.New("connection reset by peer")).Once()

	w := suite.do(http.MethodGet, "/api/v1/invoices/inv-1", nil, true)

	suite.Equal(http.StatusInternalServerError, w.Code)
	body := suite.decodeError(w)
	suite.Equal(string(apperrors.CodeInternal), body.Code)
	suite.NotContains(w.Body.String(), "connection reset")
}

func (suite *HandlersTestSuite) TestCreateInvoiceDraft() {
	inv := newInvoice(suite.T(), domain.InvoiceStatusDraft)
	req := dto.CreateInvoiceDraftRequest{WorkLogIDs: []string{uuid.NewString()}}
	suite.invoices.On("CreateInvoiceDraft", mock.Anything, req).Return(inv, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/invoices/drafts", req, true)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.InvoiceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(inv.ID(), resp.ID)
	suite.Equal("405.00", resp.Subtotal)
	suite.Equal("445.50", resp.Total)

	w = suite.do(http.MethodPost, "/api/v1/invoices/drafts", dto.CreateInvoiceDraftRequest{WorkLogIDs: []string{}}, true)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestCreateInvoiceDraft_MixedSelectionIsConflict() {
	suite.invoices.On("CreateInvoiceDraft", mock.Anything, mock.Anything).Return(nil, domain.ErrMixedClients).Once()

	w := suite.do(http.MethodPost, "/api/v1/invoices/drafts",
		dto.CreateInvoiceDraftRequest{WorkLogIDs: []string{uuid.NewString(), uuid.NewString()}}, true)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal(string(domain.CodeInvoiceDraftMixedClients), suite.decodeError(w).Code)
}

func (suite *HandlersTestSuite) TestInvoiceLifecycleRoutes() {
	id := uuid.NewString()
	issued := newInvoice(suite.T(), domain.InvoiceStatusIssued)
	suite.invoices.On("IssueInvoice", mock.Anything, id).Return(issued, nil).Once()
	suite.invoices.On("MarkInvoiceSent", mock.Anything, id).Return(issued, nil).Once()
	suite.invoices.On("MarkInvoicePaid", mock.Anything, id, dto.MarkInvoicePaidRequest{}).Return(issued, nil).Once()

	suite.Equal(http.StatusOK, suite.do(http.MethodPost, "/api/v1/invoices/"+id+"/issue", nil, true).Code)
	suite.Equal(http.StatusOK, suite.do(http.MethodPost, "/api/v1/invoices/"+id+"/send", nil, true).Code)
	// pay accepts an empty body
	suite.Equal(http.StatusOK, suite.do(http.MethodPost, "/api/v1/invoices/"+id+"/pay", nil, true).Code)
}

func (suite *HandlersTestSuite) TestListInvoices_Defaults() {
	suite.invoices.On("ListInvoices", mock.Anything, dto.ListInvoicesQuery{Status: "paid", Limit: 50}).
		Return([]*domain.Invoice{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/invoices?status=paid", nil, true)

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[]`, w.Body.String())
}

func (suite *HandlersTestSuite) TestLogin_SetsRefreshCookie() {
	user := &domain.User{UserID: suite.userID, Name: "Opa Owner", Email: "owner@example.com", IsActive: true}
	req := dto.LoginRequest{Email: "owner@example.com", Password: "changeme"}
	suite.auth.On("Login", mock.Anything, req).Return(&portssvc.AuthResult{
		User:             user,
		AccessToken:      "access",
		RefreshToken:     "refresh",
		RefreshExpiresAt: time.Now().Add(time.Hour),
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/login", req, false)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AuthResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("access", resp.AccessToken)
	suite.Equal(suite.userID, resp.User.ID)
	cookie := w.Header().Get("Set-Cookie")
	suite.Contains(cookie, "refreshToken=refresh")
	suite.Contains(cookie, "HttpOnly")
	suite.Contains(cookie, "SameSite=Strict")
}

func (suite *HandlersTestSuite) TestRefresh() {
	suite.Run("missing token", func() {
		w := suite.do(http.MethodPost, "/api/v1/auth/refresh", nil, false)
		suite.Equal(http.StatusUnauthorized, w.Code)
		suite.Equal(string(apperrors.CodeMissingRefreshToken), suite.decodeError(w).Code)
	})

	suite.Run("cookie token rotated", func() {
		user := &domain.User{UserID: suite.userID, Email: "owner@example.com", IsActive: true}
		suite.auth.On("Refresh", mock.Anything, "old").Return(&portssvc.AuthResult{
			User: user, AccessToken: "a2", RefreshToken: "new", RefreshExpiresAt: time.Now().Add(time.Hour),
		}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
		req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "old"})
		w := httptest.NewRecorder()
		suite.router.ServeHTTP(w, req)

		suite.Equal(http.StatusOK, w.Code)
		suite.Contains(w.Header().Get("Set-Cookie"), "refreshToken=new")
	})

	suite.Run("expired clears cookie", func() {
		suite.auth.On("Refresh", mock.Anything, "stale").Return(nil, apperrors.New(apperrors.CodeRefreshTokenExpired)).Once()

		w := suite.do(http.MethodPost, "/api/v1/auth/refresh", dto.RefreshRequest{RefreshToken: "stale"}, false)

		suite.Equal(http.StatusUnauthorized, w.Code)
		suite.Equal(string(apperrors.CodeRefreshTokenExpired), suite.decodeError(w).Code)
		suite.Contains(w.Header().Get("Set-Cookie"), "Max-Age=0")
	})
}

func (suite *HandlersTestSuite) TestLogout_AlwaysOk() {
	suite.auth.On("Logout", mock.Anything, "").Return(errors.New("db down")).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/logout", nil, false)

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"ok":true}`, w.Body.String())
}

func (suite *HandlersTestSuite) TestBootstrap_SingleUserMode() {
	req := dto.CreateUserRequest{Name: "Opa Owner", Email: "owner@example.com", Password: "changeme"}
	suite.users.On("CreateUser", mock.Anything, req).Return(nil, apperrors.New(apperrors.CodeSingleUserMode)).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/bootstrap", req, false)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal(string(apperrors.CodeSingleUserMode), suite.decodeError(w).Code)
}

func (suite *HandlersTestSuite) TestUserRoutesPassCaller() {
	user := domain.User{UserID: suite.userID, Name: "Opa Owner", Email: "owner@example.com"}
	suite.users.On("ListUsers", mock.Anything, suite.userID).Return([]domain.User{user}, nil).Once()
	other := uuid.NewString()
	suite.users.On("DeleteUser", mock.Anything, other, suite.userID).Return(apperrors.New(apperrors.CodeForbidden)).Once()

	w := suite.do(http.MethodGet, "/api/v1/users", nil, true)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodDelete, "/api/v1/users/"+other, nil, true)
	suite.Equal(http.StatusForbidden, w.Code)
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func TestLoginRateLimit(t *testing.T) {
	s := &HandlersTestSuite{}
	s.SetT(t)
	s.SetupTest()
	cfg := testConfig()
	cfg.LoginRateLimit = "1-M"
	router := s.newRouter(cfg)
	s.auth.On("Login", mock.Anything, mock.Anything).Return(nil, apperrors.New(apperrors.CodeInvalidCredentials)).Once()

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"a@b.co","password":"secret1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusUnauthorized, send().Code)
	w := send()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	s.auth.AssertExpectations(t)
}

func TestRegisterRoutes_RejectsBadRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	cfg.LoginRateLimit = "lots"
	err := handlers.RegisterRoutes(gin.New(), cfg, &portssvc.ServiceContainer{})
	require.Error(t, err)
}
