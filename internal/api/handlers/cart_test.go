package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/storefront/internal/testutils"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) *response.ErrorResponse {
	t.Helper()

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)

	return resp.Error
}

// decodeData unwraps the success envelope into dest.
func decodeData(t *testing.T, rr *httptest.ResponseRecorder, dest any) {
	t.Helper()

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, dest))
}

func TestGetCart(t *testing.T) {
	userID := uuid.New()

	t.Run("Success - Bearer wins over sessionId", func(t *testing.T) {
		// Arrange
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		expected := &models.CartItemsResponse{
			Items:  []models.CartLine{{ID: uuid.New(), ProductID: "gown-1", ProductName: "Gown", Price: 10000, Quantity: 2}},
			Totals: &models.CartTotals{Subtotal: 20000, Tax: 3000, Total: 23000},
		}
		mockCartService.On("ListItems", mock.Anything, models.UserIdentity(userID)).Return(expected, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/cart?sessionId=guest-1", nil, userID, nil)
		rr := httptest.NewRecorder()

		// Act
		cartHandler.GetCart().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var got models.CartItemsResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		require.Len(t, got.Items, 1)
		assert.Equal(t, "gown-1", got.Items[0].ProductID)
		assert.Equal(t, int64(23000), got.Totals.Total)
	})

	t.Run("Success - Guest by sessionId", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		mockCartService.On("ListItems", mock.Anything, models.GuestIdentity("guest-1")).
			Return(&models.CartItemsResponse{Items: []models.CartLine{}}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/cart?sessionId=guest-1", nil, nil)
		rr := httptest.NewRecorder()

		cartHandler.GetCart().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"items":[]}`, rr.Body.String())
	})

	t.Run("Failure - No identity", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		mockCartService.On("ListItems", mock.Anything, models.Identity{}).
			Return(nil, appErrors.BadRequestError("A session id or bearer token is required")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/cart", nil, nil)
		rr := httptest.NewRecorder()

		cartHandler.GetCart().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, appErrors.ErrCodeBadRequest, decodeError(t, rr).Code)
	})
}

func TestAddCartItem(t *testing.T) {

	t.Run("Success - Guest session from body", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		body := models.AddItemRequest{ProductID: "gown-1", ProductName: "Gown", Price: 29999, SessionID: "guest-1"}
		line := &models.CartLine{ID: uuid.New(), ProductID: "gown-1", ProductName: "Gown", Price: 29999, Quantity: 1}

		mockCartService.On("AddItem", mock.Anything, models.GuestIdentity("guest-1"), &body).Return(line, nil).Once()

		bodyBytes, _ := json.Marshal(body)
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/cart", bytes.NewReader(bodyBytes), nil)
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		cartHandler.AddItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var got models.CartItemResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, line.ID, got.Item.ID)
		assert.Equal(t, 1, got.Item.Quantity)
	})

	t.Run("Failure - Missing product name", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/cart",
			strings.NewReader(`{"productId":"gown-1","price":100,"sessionId":"guest-1"}`), nil)
		rr := httptest.NewRecorder()

		cartHandler.AddItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, appErrors.ErrCodeValidation, decodeError(t, rr).Code)
		mockCartService.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Price and quantity bounds", func(t *testing.T) {
		bodies := map[string]string{
			"price over limit":    `{"productId":"gown-1","productName":"Gown","price":100000001,"sessionId":"guest-1"}`,
			"quantity over limit": `{"productId":"gown-1","productName":"Gown","price":100,"quantity":1001,"sessionId":"guest-1"}`,
			"overflowing price":   `{"productId":"gown-1","productName":"Gown","price":7000000000000000,"sessionId":"guest-1"}`,
		}

		for name, body := range bodies {
			t.Run(name, func(t *testing.T) {
				mockCartService := mocks.NewCartService(t)
				cartHandler := handlers.NewCartHandler(mockCartService)

				req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/cart", strings.NewReader(body), nil)
				rr := httptest.NewRecorder()

				cartHandler.AddItem().ServeHTTP(rr, req)

				assert.Equal(t, http.StatusBadRequest, rr.Code)
				assert.Equal(t, appErrors.ErrCodeValidation, decodeError(t, rr).Code)
			})
		}
	})

	t.Run("Failure - Store unavailable", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		mockCartService.On("AddItem", mock.Anything, models.GuestIdentity("guest-1"), mock.AnythingOfType("*models.AddItemRequest")).
			Return(nil, appErrors.StoreUnavailableError("Cart store is unavailable")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/cart",
			strings.NewReader(`{"productId":"gown-1","productName":"Gown","price":100,"sessionId":"guest-1"}`), nil)
		rr := httptest.NewRecorder()

		cartHandler.AddItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, appErrors.ErrCodeStoreUnavailable, decodeError(t, rr).Code)
	})
}

func TestUpdateCartItem(t *testing.T) {
	userID := uuid.New()
	lineID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		line := &models.CartLine{ID: lineID, ProductID: "gown-1", Quantity: 3}
		mockCartService.On("UpdateQuantity", mock.Anything, models.UserIdentity(userID), lineID, 3).Return(line, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/cart/"+lineID.String(),
			strings.NewReader(`{"quantity":3}`), userID, map[string]string{"id": lineID.String()})
		rr := httptest.NewRecorder()

		cartHandler.UpdateItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var got models.CartItemResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, 3, got.Item.Quantity)
	})

	t.Run("Failure - Quantity below one", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/cart/"+lineID.String(),
			strings.NewReader(`{"quantity":0}`), userID, map[string]string{"id": lineID.String()})
		rr := httptest.NewRecorder()

		cartHandler.UpdateItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockCartService.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Quantity above limit", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/cart/"+lineID.String(),
			strings.NewReader(`{"quantity":1001}`), userID, map[string]string{"id": lineID.String()})
		rr := httptest.NewRecorder()

		cartHandler.UpdateItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Failure - Invalid line id", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/cart/abc",
			strings.NewReader(`{"quantity":2}`), userID, map[string]string{"id": "abc"})
		rr := httptest.NewRecorder()

		cartHandler.UpdateItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Failure - Line of another owner", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		mockCartService.On("UpdateQuantity", mock.Anything, models.UserIdentity(userID), lineID, 2).
			Return(nil, appErrors.NotFoundError("Cart item not found")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/cart/"+lineID.String(),
			strings.NewReader(`{"quantity":2}`), userID, map[string]string{"id": lineID.String()})
		rr := httptest.NewRecorder()

		cartHandler.UpdateItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestRemoveCartItemAndClear(t *testing.T) {
	lineID := uuid.New()
	guest := models.GuestIdentity("guest-1")

	t.Run("Remove - Success", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		mockCartService.On("RemoveItem", mock.Anything, guest, lineID).Return(nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodDelete, "/cart/"+lineID.String()+"?sessionId=guest-1", nil,
			map[string]string{"id": lineID.String()})
		rr := httptest.NewRecorder()

		cartHandler.RemoveItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"success":true}`, rr.Body.String())
	})

	t.Run("Clear - Success", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		mockCartService.On("Clear", mock.Anything, guest).Return(nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodDelete, "/cart?sessionId=guest-1", nil, nil)
		rr := httptest.NewRecorder()

		cartHandler.ClearCart().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"success":true}`, rr.Body.String())
	})

	t.Run("Clear - Database error", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		mockCartService.On("Clear", mock.Anything, guest).Return(appErrors.DatabaseError("Failed to clear cart")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodDelete, "/cart?sessionId=guest-1", nil, nil)
		rr := httptest.NewRecorder()

		cartHandler.ClearCart().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, appErrors.ErrCodeDatabaseError, decodeError(t, rr).Code)
	})
}

func TestMergeCart(t *testing.T) {
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		merged := &models.CartItemsResponse{Items: []models.CartLine{{ProductID: "gown-1", Quantity: 3}}}
		mockCartService.On("MergeGuestCart", mock.Anything, userID, "guest-1").Return(merged, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/cart/merge", strings.NewReader(`{"sessionId":"guest-1"}`), userID, nil)
		rr := httptest.NewRecorder()

		cartHandler.MergeCart().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var got models.CartItemsResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, 3, got.Items[0].Quantity)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/cart/merge", strings.NewReader(`{"sessionId":"guest-1"}`), nil)
		rr := httptest.NewRecorder()

		cartHandler.MergeCart().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		mockCartService.AssertNotCalled(t, "MergeGuestCart", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Missing sessionId", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/cart/merge", strings.NewReader(`{}`), userID, nil)
		rr := httptest.NewRecorder()

		cartHandler.MergeCart().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, appErrors.ErrCodeValidation, decodeError(t, rr).Code)
	})
}
