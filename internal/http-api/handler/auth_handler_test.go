package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/service"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignUp(ctx context.Context, username, email string) (*models.User, error) {
	args := m.Called(username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) IssueToken(ctx context.Context, username, code string) (string, error) {
	args := m.Called(username, code)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func postJSON(router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSignUp_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	handler.RegisterRoutes(router.Group("/api"))

	user := &models.User{ID: "user-123", Username: "testuser", Email: "test@example.com"}
	mockAuthService.On("SignUp", "testuser", "test@example.com").Return(user, nil)

	w := postJSON(router, "/api/auth/signup", dto.SignUpRequest{
		Username: "testuser",
		Email:    "test@example.com",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "testuser", response["username"])
	assert.Equal(t, "test@example.com", response["email"])
	mockAuthService.AssertExpectations(t)
}

func TestSignUp_ValidationError(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	handler.RegisterRoutes(router.Group("/api"))

	mockAuthService.On("SignUp", "me", "me@example.com").Return(nil, service.ErrValidation)

	w := postJSON(router, "/api/auth/signup", dto.SignUpRequest{
		Username: "me",
		Email:    "me@example.com",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAuthService.AssertExpectations(t)
}

func TestSignUp_MissingEmail(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	handler.RegisterRoutes(router.Group("/api"))

	w := postJSON(router, "/api/auth/signup", map[string]string{"username": "testuser"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAuthService.AssertNotCalled(t, "SignUp", mock.Anything, mock.Anything)
}

func TestToken_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	handler.RegisterRoutes(router.Group("/api"))

	mockAuthService.On("IssueToken", "testuser", "the-code").Return("signed-token", nil)

	w := postJSON(router, "/api/auth/token", dto.TokenRequest{
		Username:         "testuser",
		ConfirmationCode: "the-code",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "signed-token", response["token"])
	mockAuthService.AssertExpectations(t)
}

func TestToken_UnknownUser(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	handler.RegisterRoutes(router.Group("/api"))

	mockAuthService.On("IssueToken", "nonexistent", "any-code").Return("", service.ErrNotFound)

	w := postJSON(router, "/api/auth/token", dto.TokenRequest{
		Username:         "nonexistent",
		ConfirmationCode: "any-code",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockAuthService.AssertExpectations(t)
}

func TestToken_WrongCode(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	handler.RegisterRoutes(router.Group("/api"))

	mockAuthService.On("IssueToken", "testuser", "wrong-code").Return("", service.ErrInvalidCode)

	w := postJSON(router, "/api/auth/token", dto.TokenRequest{
		Username:         "testuser",
		ConfirmationCode: "wrong-code",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAuthService.AssertExpectations(t)
}
