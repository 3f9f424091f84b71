package service

import (
	"testing"
	"time"

	"commenthub/internal/config"
	"commenthub/internal/microservices/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockRefreshTokenRepository mocks the RefreshTokenRepository interface
type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(token *models.RefreshToken) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByToken(token string) (*models.RefreshToken, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) Revoke(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func newTestAuthService() (AuthService, *MockUserRepository, *MockRefreshTokenRepository) {
	mockUserRepo := new(MockUserRepository)
	mockRefreshTokenRepo := new(MockRefreshTokenRepository)
	cfg := &config.Config{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
	return NewAuthService(mockUserRepo, mockRefreshTokenRepo, cfg), mockUserRepo, mockRefreshTokenRepo
}

func TestRegister_Success(t *testing.T) {
	authService, mockUserRepo, _ := newTestAuthService()

	mockUserRepo.On("FindByUsername", "testuser").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("FindByEmail", "test@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil)

	user, err := authService.Register("testuser", "password123", "test@example.com")

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, "testuser", user.Username)
	assert.Equal(t, "test@example.com", user.Email)
	assert.NotEqual(t, "password123", user.Password)
	mockUserRepo.AssertExpectations(t)
}

func TestRegister_UsernameExists(t *testing.T) {
	authService, mockUserRepo, _ := newTestAuthService()

	existingUser := &models.User{Username: "testuser"}
	mockUserRepo.On("FindByUsername", "testuser").Return(existingUser, nil)

	user, err := authService.Register("testuser", "password123", "test@example.com")

	assert.Error(t, err)
	assert.Equal(t, ErrNameInUse, err)
	assert.Nil(t, user)
	mockUserRepo.AssertExpectations(t)
}

func TestRegister_EmailExists(t *testing.T) {
	authService, mockUserRepo, _ := newTestAuthService()

	existingUser := &models.User{Email: "test@example.com"}
	mockUserRepo.On("FindByUsername", "testuser").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("FindByEmail", "test@example.com").Return(existingUser, nil)

	user, err := authService.Register("testuser", "password123", "test@example.com")

	assert.Error(t, err)
	assert.Equal(t, ErrEmailInUse, err)
	assert.Nil(t, user)
	mockUserRepo.AssertExpectations(t)
}

func TestLogin_Success(t *testing.T) {
	authService, mockUserRepo, mockRefreshTokenRepo := newTestAuthService()

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Username: "testuser",
		Password: string(hashedPassword),
	}

	mockUserRepo.On("FindByUsername", "testuser").Return(user, nil)
	mockRefreshTokenRepo.On("Create", mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	accessToken, refreshToken, loggedIn, err := authService.Login("testuser", "password123")

	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.Equal(t, "user-123", loggedIn.ID)

	// The access token must validate against the same secret
	claims, err := authService.ValidateToken(accessToken)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "testuser", claims.Username)
}

func TestLogin_WrongPassword(t *testing.T) {
	authService, mockUserRepo, _ := newTestAuthService()

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{ID: "user-123", Username: "testuser", Password: string(hashedPassword)}

	mockUserRepo.On("FindByUsername", "testuser").Return(user, nil)

	_, _, _, err := authService.Login("testuser", "wrongpass")
	assert.Equal(t, ErrInvalidCredentials, err)
}

func TestLogin_UnknownUser(t *testing.T) {
	authService, mockUserRepo, _ := newTestAuthService()

	mockUserRepo.On("FindByUsername", "nobody").Return(nil, gorm.ErrRecordNotFound)

	_, _, _, err := authService.Login("nobody", "password123")
	assert.Equal(t, ErrInvalidCredentials, err)
}

func TestRefreshAccessToken_Success(t *testing.T) {
	authService, mockUserRepo, mockRefreshTokenRepo := newTestAuthService()

	refreshToken := &models.RefreshToken{
		ID:        "token-1",
		UserID:    "user-123",
		Token:     "refresh-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	user := &models.User{ID: "user-123", Username: "testuser"}

	mockRefreshTokenRepo.On("FindByToken", "refresh-token").Return(refreshToken, nil)
	mockUserRepo.On("FindByID", "user-123").Return(user, nil)

	accessToken, err := authService.RefreshAccessToken("refresh-token")

	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
}

func TestRefreshAccessToken_Revoked(t *testing.T) {
	authService, _, mockRefreshTokenRepo := newTestAuthService()

	refreshToken := &models.RefreshToken{
		ID:        "token-1",
		UserID:    "user-123",
		Token:     "refresh-token",
		ExpiresAt: time.Now().Add(time.Hour),
		Revoked:   true,
	}

	mockRefreshTokenRepo.On("FindByToken", "refresh-token").Return(refreshToken, nil)

	_, err := authService.RefreshAccessToken("refresh-token")
	assert.Equal(t, ErrInvalidToken, err)
}

func TestRefreshAccessToken_Expired(t *testing.T) {
	authService, _, mockRefreshTokenRepo := newTestAuthService()

	refreshToken := &models.RefreshToken{
		ID:        "token-1",
		UserID:    "user-123",
		Token:     "refresh-token",
		ExpiresAt: time.Now().Add(-time.Hour),
	}

	mockRefreshTokenRepo.On("FindByToken", "refresh-token").Return(refreshToken, nil)
	mockRefreshTokenRepo.On("Delete", "token-1").Return(nil)

	_, err := authService.RefreshAccessToken("refresh-token")

	assert.Equal(t, ErrInvalidToken, err)
	mockRefreshTokenRepo.AssertCalled(t, "Delete", "token-1")
}

func TestRevokeToken(t *testing.T) {
	authService, _, mockRefreshTokenRepo := newTestAuthService()

	refreshToken := &models.RefreshToken{ID: "token-1", Token: "refresh-token"}
	mockRefreshTokenRepo.On("FindByToken", "refresh-token").Return(refreshToken, nil)
	mockRefreshTokenRepo.On("Revoke", "token-1").Return(nil)

	err := authService.RevokeToken("refresh-token")
	assert.NoError(t, err)
	mockRefreshTokenRepo.AssertExpectations(t)
}

func TestValidateToken_Garbage(t *testing.T) {
	authService, _, _ := newTestAuthService()

	_, err := authService.ValidateToken("not-a-jwt")
	assert.Equal(t, ErrInvalidToken, err)
}
