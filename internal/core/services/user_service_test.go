package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/opahours_backend/internal/apperrors"
	"github.com/SscSPs/opahours_backend/internal/core/domain"
	portssvc "github.com/SscSPs/opahours_backend/internal/core/ports/services"
	"github.com/SscSPs/opahours_backend/internal/core/services"
	"github.com/SscSPs/opahours_backend/internal/dto"
	"github.com/SscSPs/opahours_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	ctx              context.Context
	now              time.Time
	mockUserRepo     *MockUserRepository
	mockRefreshRepo  *MockRefreshTokenRepository
	mockTxManager    *MockTxManager
	service          portssvc.UserSvcFacade
	existingUserID   string
	existingUserMail string
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.now = time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockRefreshRepo = new(MockRefreshTokenRepository)
	suite.mockTxManager = new(MockTxManager)
	suite.mockTxManager.On("RunInTx", mock.Anything).Return()
	suite.service = services.NewUserService(suite.mockTxManager, suite.mockUserRepo, suite.mockRefreshRepo,
		services.WithClock(func() time.Time { return suite.now }))
	suite.existingUserID = uuid.NewString()
	suite.existingUserMail = "owner@example.com"
}

func (suite *UserServiceTestSuite) existingUser() *domain.User {
	return &domain.User{
		UserID:   suite.existingUserID,
		Name:     "Opa Owner",
		Email:    suite.existingUserMail,
		IsActive: true,
	}
}

// --- CreateUser Tests ---
func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	req := dto.CreateUserRequest{
		Name:     "  Test User ",
		Email:    " Test@Example.COM ",
		Password: "password123",
	}

	suite.mockUserRepo.On("CountUsers", suite.ctx).Return(int64(0), nil).Once()
	suite.mockUserRepo.On("FindUserByEmail", suite.ctx, "test@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", suite.ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Email == "test@example.com" && user.Name == "Test User" &&
			user.PasswordHash != "" && user.PasswordHash != req.Password
	})).Return(nil).Once()

	createdUser, err := suite.service.CreateUser(suite.ctx, req)

	suite.Require().NoError(err)
	suite.NotEmpty(createdUser.UserID)
	suite.True(createdUser.IsActive)
	suite.True(utils.CheckPasswordHash(req.Password, createdUser.PasswordHash))
	suite.Equal(suite.now, createdUser.CreatedAt)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_SingleUserMode() {
	suite.mockUserRepo.On("CountUsers", suite.ctx).Return(int64(1), nil).Once()

	createdUser, err := suite.service.CreateUser(suite.ctx, dto.CreateUserRequest{Name: "Second", Email: "b@example.com", Password: "password123"})

	suite.Nil(createdUser)
	suite.ErrorIs(err, apperrors.New(apperrors.CodeSingleUserMode))
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_InvalidName() {
	suite.mockUserRepo.On("CountUsers", suite.ctx).Return(int64(0), nil).Once()

	_, err := suite.service.CreateUser(suite.ctx, dto.CreateUserRequest{Name: " a ", Email: "a@example.com", Password: "password123"})

	suite.ErrorIs(err, apperrors.New(apperrors.CodeInvalidName))
}

func (suite *UserServiceTestSuite) TestCreateUser_SaveRace() {
	suite.mockUserRepo.On("CountUsers", suite.ctx).Return(int64(0), nil).Once()
	suite.mockUserRepo.On("FindUserByEmail", suite.ctx, "a@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", suite.ctx, mock.AnythingOfType("domain.User")).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateUser(suite.ctx, dto.CreateUserRequest{Name: "Alice", Email: "a@example.com", Password: "password123"})

	suite.ErrorIs(err, apperrors.New(apperrors.CodeSingleUserMode))
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *UserServiceTestSuite) TestCreateUser_SaveError() {
	suite.mockUserRepo.On("CountUsers", suite.ctx).Return(int64(0), nil).Once()
	suite.mockUserRepo.On("FindUserByEmail", suite.ctx, "a@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", suite.ctx, mock.AnythingOfType("domain.User")).Return(assert.AnError).Once()

	createdUser, err := suite.service.CreateUser(suite.ctx, dto.CreateUserRequest{Name: "Alice", Email: "a@example.com", Password: "password123"})

	suite.Nil(createdUser)
	suite.ErrorIs(err, assert.AnError)
}

// --- GetUserByID / ListUsers Tests ---
func (suite *UserServiceTestSuite) TestGetUserByID() {
	suite.mockUserRepo.On("FindUserByID", suite.ctx, suite.existingUserID).Return(suite.existingUser(), nil).Once()

	user, err := suite.service.GetUserByID(suite.ctx, suite.existingUserID, suite.existingUserID)
	suite.Require().NoError(err)
	suite.Equal(suite.existingUserMail, user.Email)

	_, err = suite.service.GetUserByID(suite.ctx, uuid.NewString(), suite.existingUserID)
	suite.ErrorIs(err, apperrors.New(apperrors.CodeForbidden))
}

func (suite *UserServiceTestSuite) TestGetUserByID_NotFound() {
	suite.mockUserRepo.On("FindUserByID", suite.ctx, suite.existingUserID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetUserByID(suite.ctx, suite.existingUserID, suite.existingUserID)

	suite.ErrorIs(err, apperrors.New(apperrors.CodeUserNotFound))
}

func (suite *UserServiceTestSuite) TestListUsers_OnlySelf() {
	suite.mockUserRepo.On("FindUserByID", suite.ctx, suite.existingUserID).Return(suite.existingUser(), nil).Once()

	users, err := suite.service.ListUsers(suite.ctx, suite.existingUserID)

	suite.Require().NoError(err)
	suite.Require().Len(users, 1)
	suite.Equal(suite.existingUserID, users[0].UserID)
}

// --- UpdateUser Tests ---
func (suite *UserServiceTestSuite) TestUpdateUser_Success() {
	newName := "Renamed Owner"
	newEmail := "NEW@example.com"
	newPassword := "another-secret"

	suite.mockUserRepo.On("FindUserByID", suite.ctx, suite.existingUserID).Return(suite.existingUser(), nil).Once()
	suite.mockUserRepo.On("FindUserByEmail", suite.ctx, "new@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("UpdateUser", suite.ctx, mock.AnythingOfType("domain.User")).Return(nil).Once().Run(func(args mock.Arguments) {
		userArg := args.Get(1).(domain.User)
		suite.Equal(newName, userArg.Name)
		suite.Equal("new@example.com", userArg.Email)
		suite.True(utils.CheckPasswordHash(newPassword, userArg.PasswordHash))
		suite.Equal(suite.now, userArg.UpdatedAt)
	})

	user, err := suite.service.UpdateUser(suite.ctx, suite.existingUserID, dto.UpdateUserRequest{
		Name:     &newName,
		Email:    &newEmail,
		Password: &newPassword,
	}, suite.existingUserID)

	suite.Require().NoError(err)
	suite.Equal(newName, user.Name)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateUser_EmailTaken() {
	taken := "other@example.com"
	suite.mockUserRepo.On("FindUserByID", suite.ctx, suite.existingUserID).Return(suite.existingUser(), nil).Once()
	suite.mockUserRepo.On("FindUserByEmail", suite.ctx, taken).Return(&domain.User{UserID: uuid.NewString()}, nil).Once()

	_, err := suite.service.UpdateUser(suite.ctx, suite.existingUserID, dto.UpdateUserRequest{Email: &taken}, suite.existingUserID)

	suite.ErrorIs(err, apperrors.New(apperrors.CodeEmailAlreadyExists))
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdateUser_Rejections() {
	name := "Someone"
	_, err := suite.service.UpdateUser(suite.ctx, uuid.NewString(), dto.UpdateUserRequest{Name: &name}, suite.existingUserID)
	suite.ErrorIs(err, apperrors.New(apperrors.CodeForbidden))

	_, err = suite.service.UpdateUser(suite.ctx, suite.existingUserID, dto.UpdateUserRequest{}, suite.existingUserID)
	suite.ErrorIs(err, apperrors.New(apperrors.CodeValidation))

	suite.mockUserRepo.On("FindUserByID", suite.ctx, suite.existingUserID).Return(nil, apperrors.ErrNotFound).Once()
	_, err = suite.service.UpdateUser(suite.ctx, suite.existingUserID, dto.UpdateUserRequest{Name: &name}, suite.existingUserID)
	suite.ErrorIs(err, apperrors.New(apperrors.CodeUserNotFound))
}

// --- DeleteUser Tests ---
func (suite *UserServiceTestSuite) TestDeleteUser_RevokesSessions() {
	suite.mockUserRepo.On("FindUserByID", suite.ctx, suite.existingUserID).Return(suite.existingUser(), nil).Once()
	suite.mockRefreshRepo.On("RevokeAllRefreshTokensForUser", suite.ctx, suite.existingUserID, suite.now).Return(nil).Once()
	suite.mockUserRepo.On("DeleteUser", suite.ctx, suite.existingUserID).Return(nil).Once()

	err := suite.service.DeleteUser(suite.ctx, suite.existingUserID, suite.existingUserID)

	suite.Require().NoError(err)
	suite.mockRefreshRepo.AssertExpectations(suite.T())
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestDeleteUser_OtherUser() {
	err := suite.service.DeleteUser(suite.ctx, uuid.NewString(), suite.existingUserID)

	suite.ErrorIs(err, apperrors.New(apperrors.CodeForbidden))
	suite.mockUserRepo.AssertNotCalled(suite.T(), "DeleteUser", mock.Anything, mock.Anything)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
