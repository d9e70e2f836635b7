package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/storefront/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserHandler_Register(t *testing.T) {

	t.Run("Success - User Registration", func(t *testing.T) {
		// Arrange
		mockUserService := mocks.NewUserService(t)
		userHandler := handlers.NewUserHandler(mockUserService)

		registerReq := &models.RegisterRequest{
			Name:     "Test User",
			Email:    "test@example.com",
			Password: "P@ssword123!",
		}

		reqBody, err := json.Marshal(registerReq)
		require.NoError(t, err)
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/users/register", bytes.NewBuffer(reqBody), nil)
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()

		createdUser := &models.User{
			ID:    uuid.New(),
			Email: registerReq.Email,
			Name:  registerReq.Name,
			Role:  models.RoleCustomer,
		}

		// did the handler pass the right data to the service?
		mockUserService.On("Register", mock.Anything, mock.MatchedBy(func(r *models.RegisterRequest) bool {
			return r.Email == registerReq.Email && r.Name == registerReq.Name
		})).Return(createdUser, nil).Once()

		// Act
		userHandler.Register()(w, req)

		// Assert
		assert.Equal(t, http.StatusCreated, w.Code)

		var user models.User
		decodeData(t, w, &user)
		assert.Equal(t, createdUser.ID, user.ID)
		assert.Equal(t, models.RoleCustomer, user.Role)
		assert.Empty(t, user.Password)
	})

	t.Run("Failure - Invalid email", func(t *testing.T) {
		mockUserService := mocks.NewUserService(t)
		userHandler := handlers.NewUserHandler(mockUserService)

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/users/register",
			strings.NewReader(`{"name":"Test User","email":"not-an-email","password":"P@ssword123!"}`), nil)
		w := httptest.NewRecorder()

		userHandler.Register()(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, errors.ErrCodeValidation, decodeError(t, w).Code)
		mockUserService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Duplicate email", func(t *testing.T) {
		mockUserService := mocks.NewUserService(t)
		userHandler := handlers.NewUserHandler(mockUserService)

		mockUserService.On("Register", mock.Anything, mock.AnythingOfType("*models.RegisterRequest")).
			Return(nil, errors.DuplicateEntryError("Email already registered")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/users/register",
			strings.NewReader(`{"name":"Test User","email":"test@example.com","password":"P@ssword123!"}`), nil)
		w := httptest.NewRecorder()

		userHandler.Register()(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, errors.ErrCodeDuplicateEntry, decodeError(t, w).Code)
	})
}

func TestUserHandler_Login(t *testing.T) {
	body := `{"email":"test@example.com","password":"P@ssword123!"}`

	t.Run("Success - Token issued", func(t *testing.T) {
		mockUserService := mocks.NewUserService(t)
		userHandler := handlers.NewUserHandler(mockUserService)

		mockUserService.On("Login", mock.Anything, &models.LoginRequest{Email: "test@example.com", Password: "P@ssword123!"}).
			Return(&models.LoginResponse{Success: true, Token: "jwt", ExpiresIn: 86400}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/users/login", strings.NewReader(body), nil)
		w := httptest.NewRecorder()

		userHandler.Login()(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp models.LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "jwt", resp.Token)
	})

	t.Run("Failure - Invalid credentials", func(t *testing.T) {
		mockUserService := mocks.NewUserService(t)
		userHandler := handlers.NewUserHandler(mockUserService)

		mockUserService.On("Login", mock.Anything, mock.AnythingOfType("*models.LoginRequest")).
			Return(&models.LoginResponse{Success: false, Message: "Invalid email or password", RemainingTries: 3}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/users/login", strings.NewReader(body), nil)
		w := httptest.NewRecorder()

		userHandler.Login()(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var resp models.LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 3, resp.RemainingTries)
	})

	t.Run("Failure - Rate limited", func(t *testing.T) {
		mockUserService := mocks.NewUserService(t)
		userHandler := handlers.NewUserHandler(mockUserService)

		mockUserService.On("Login", mock.Anything, mock.AnythingOfType("*models.LoginRequest")).
			Return(&models.LoginResponse{Success: false, RetryAfter: 60}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/users/login", strings.NewReader(body), nil)
		w := httptest.NewRecorder()

		userHandler.Login()(w, req)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})

	t.Run("Failure - Rate limiter down", func(t *testing.T) {
		mockUserService := mocks.NewUserService(t)
		userHandler := handlers.NewUserHandler(mockUserService)

		mockUserService.On("Login", mock.Anything, mock.AnythingOfType("*models.LoginRequest")).
			Return(nil, errors.ThirdPartyError("Rate limit check failed")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/users/login", strings.NewReader(body), nil)
		w := httptest.NewRecorder()

		userHandler.Login()(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestUserHandler_Profile(t *testing.T) {
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockUserService := mocks.NewUserService(t)
		userHandler := handlers.NewUserHandler(mockUserService)

		mockUserService.On("GetUserByID", mock.Anything, userID).Return(&models.User{ID: userID, Email: testutils.TestEmail}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/users/profile", nil, userID, nil)
		w := httptest.NewRecorder()

		userHandler.Profile()(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var user models.User
		decodeData(t, w, &user)
		assert.Equal(t, userID, user.ID)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		mockUserService := mocks.NewUserService(t)
		userHandler := handlers.NewUserHandler(mockUserService)

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/users/profile", nil, nil)
		w := httptest.NewRecorder()

		userHandler.Profile()(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Failure - User deleted", func(t *testing.T) {
		mockUserService := mocks.NewUserService(t)
		userHandler := handlers.NewUserHandler(mockUserService)

		mockUserService.On("GetUserByID", mock.Anything, userID).Return(nil, errors.NotFoundError("User not found")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/users/profile", nil, userID, nil)
		w := httptest.NewRecorder()

		userHandler.Profile()(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
