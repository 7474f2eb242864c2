package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"eduground/internal/httpapi/dto"
	"eduground/internal/httpapi/models"
	"eduground/internal/httpapi/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(email, password string) (string, string, error) {
	args := m.Called(email, password)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockAuthService) Login(email, password string) (string, string, *models.User, error) {
	args := m.Called(email, password)
	if args.Get(2) == nil {
		return args.String(0), args.String(1), nil, args.Error(3)
	}
	return args.String(0), args.String(1), args.Get(2).(*models.User), args.Error(3)
}

func (m *MockAuthService) RefreshTokens(refreshToken string) (string, string, error) {
	args := m.Called(refreshToken)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockAuthService) ValidateAccessToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *MockAuthService) VerifyCredentials(email, password string) (*models.User, error) {
	args := m.Called(email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) GetUser(userID string) (*models.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// authAs injects a caller identity the way the auth middleware would.
func authAs(userID string, isStaff bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("email", userID+"@example.com")
		c.Set("isStaff", isStaff)
		c.Next()
	}
}

func jsonRequest(method, path string, payload any) *http.Request {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest(method, path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegister_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	authHandler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/register", authHandler.Register)

	mockAuthService.On("Register", "new@example.com", "password123").
		Return("access-token", "refresh-token", nil)

	req := jsonRequest("POST", "/register", dto.RegisterRequest{
		Email:    "new@example.com",
		Password: "password123",
	})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response dto.TokenPairResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "access-token", response.Access)
	assert.Equal(t, "refresh-token", response.Refresh)
	mockAuthService.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	mockAuthService := new(MockAuthService)
	authHandler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/register", authHandler.Register)

	mockAuthService.On("Register", "taken@example.com", "password123").
		Return("", "", service.ErrEmailInUse)

	req := jsonRequest("POST", "/register", dto.RegisterRequest{
		Email:    "taken@example.com",
		Password: "password123",
	})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAuthService.AssertExpectations(t)
}

func TestRegister_InvalidPayload(t *testing.T) {
	mockAuthService := new(MockAuthService)
	authHandler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/register", authHandler.Register)

	// Password below the minimum length never reaches the service.
	req := jsonRequest("POST", "/register", dto.RegisterRequest{
		Email:    "new@example.com",
		Password: "short",
	})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAuthService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	authHandler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/login", authHandler.Login)

	user := &models.User{ID: "user-1", Email: "test@example.com", FirstName: "Ada"}
	mockAuthService.On("Login", "test@example.com", "password123").
		Return("access-token", "refresh-token", user, nil)

	req := jsonRequest("POST", "/login", dto.LoginRequest{
		Email:    "test@example.com",
		Password: "password123",
	})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.LoginResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "access-token", response.Access)
	assert.Equal(t, "user-1", response.User.ID)
	mockAuthService.AssertExpectations(t)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	mockAuthService := new(MockAuthService)
	authHandler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/login", authHandler.Login)

	mockAuthService.On("Login", "test@example.com", "wrong-password").
		Return("", "", nil, service.ErrInvalidCredentials)

	req := jsonRequest("POST", "/login", dto.LoginRequest{
		Email:    "test@example.com",
		Password: "wrong-password",
	})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockAuthService.AssertExpectations(t)
}

func TestRefresh_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	authHandler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/refresh", authHandler.Refresh)

	mockAuthService.On("RefreshTokens", "old-refresh").
		Return("new-access", "new-refresh", nil)

	req := jsonRequest("POST", "/refresh", dto.RefreshTokenRequest{Refresh: "old-refresh"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.TokenPairResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "new-access", response.Access)
	assert.Equal(t, "new-refresh", response.Refresh)
	mockAuthService.AssertExpectations(t)
}

func TestRefresh_ExpiredToken(t *testing.T) {
	mockAuthService := new(MockAuthService)
	authHandler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/refresh", authHandler.Refresh)

	mockAuthService.On("RefreshTokens", "stale-refresh").
		Return("", "", service.ErrExpiredToken)

	req := jsonRequest("POST", "/refresh", dto.RefreshTokenRequest{Refresh: "stale-refresh"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockAuthService.AssertExpectations(t)
}

func TestWhoami_ReturnsCaller(t *testing.T) {
	mockAuthService := new(MockAuthService)
	authHandler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.GET("/whoami", authAs("user-1", false), authHandler.Whoami)

	user := &models.User{ID: "user-1", Email: "user-1@example.com", FirstName: "Ada"}
	mockAuthService.On("GetUser", "user-1").Return(user, nil)

	req, _ := http.NewRequest("GET", "/whoami", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.UserSummary
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "user-1", response.ID)
	assert.Equal(t, "Ada", response.FirstName)
	mockAuthService.AssertExpectations(t)
}
