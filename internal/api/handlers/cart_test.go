package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/api/handlers"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/errors"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/models"
	service "github.com/aaravmahajanofficial/hotel-booking-platform/internal/services"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/store"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartHandler() *handlers.CartHandler {
	return handlers.NewCartHandler(service.NewCartService(store.NewMemoryCartStore()))
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) *models.Cart {
	t.Helper()

	var resp struct {
		Success bool         `json:"success"`
		Data    *models.Cart `json:"data"`
	}

	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.True(t, resp.Success)
	require.NotNil(t, resp.Data)

	return resp.Data
}

func addLineBody() []byte {
	data, _ := json.Marshal(map[string]any{
		"hotelId":    1,
		"roomTypeId": 3,
		"hotel":      "Grand Palace",
		"roomType":   "Deluxe",
		"checkIn":    "2026-03-01",
		"checkOut":   "2026-03-03",
		"guests":     2,
		"rooms":      1,
		"price":      4000,
	})

	return data
}

func TestGetCartHandler(t *testing.T) {

	t.Run("Success - Empty Cart", func(t *testing.T) {
		// Arrange
		handler := newCartHandler()
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/carts", nil, uuid.New(), nil)
		rec := httptest.NewRecorder()

		// Act
		handler.GetCart().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		cart := decodeCart(t, rec)
		assert.Empty(t, cart.Lines)
		assert.Zero(t, cart.Total)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		// Arrange
		handler := newCartHandler()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/carts", nil, nil)
		rec := httptest.NewRecorder()

		// Act
		handler.GetCart().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAddLineHandler(t *testing.T) {

	t.Run("Success", func(t *testing.T) {
		// Arrange
		handler := newCartHandler()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/carts/items",
			bytes.NewReader(addLineBody()), uuid.New(), nil)
		rec := httptest.NewRecorder()

		// Act
		handler.AddLine().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rec.Code)
		cart := decodeCart(t, rec)
		require.Len(t, cart.Lines, 1)
		assert.InDelta(t, 4720.0, cart.Total, 0.001)
	})

	t.Run("Failure - Validation", func(t *testing.T) {
		// Arrange
		handler := newCartHandler()
		body, _ := json.Marshal(map[string]any{"hotel": "Grand Palace"})

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/carts/items",
			bytes.NewReader(body), uuid.New(), nil)
		rec := httptest.NewRecorder()

		// Act
		handler.AddLine().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		errResp := decodeError(t, rec)
		assert.Equal(t, errors.ErrCodeValidation, errResp.Code)
	})
}

func TestRemoveLineHandler(t *testing.T) {

	t.Run("Success", func(t *testing.T) {
		// Arrange
		handler := newCartHandler()
		customerID := uuid.New()

		addReq := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/carts/items",
			bytes.NewReader(addLineBody()), customerID, nil)
		addRec := httptest.NewRecorder()
		handler.AddLine().ServeHTTP(addRec, addReq)
		require.Equal(t, http.StatusCreated, addRec.Code)

		req := testutils.CreateTestRequestWithContext(http.MethodDelete, "/api/v1/carts/items/0",
			nil, customerID, map[string]string{"index": "0"})
		rec := httptest.NewRecorder()

		// Act
		handler.RemoveLine().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		cart := decodeCart(t, rec)
		assert.Empty(t, cart.Lines)
	})

	t.Run("Failure - Non Numeric Index", func(t *testing.T) {
		// Arrange
		handler := newCartHandler()
		req := testutils.CreateTestRequestWithContext(http.MethodDelete, "/api/v1/carts/items/abc",
			nil, uuid.New(), map[string]string{"index": "abc"})
		rec := httptest.NewRecorder()

		// Act
		handler.RemoveLine().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Failure - Index Out Of Range", func(t *testing.T) {
		// Arrange
		handler := newCartHandler()
		req := testutils.CreateTestRequestWithContext(http.MethodDelete, "/api/v1/carts/items/4",
			nil, uuid.New(), map[string]string{"index": "4"})
		rec := httptest.NewRecorder()

		// Act
		handler.RemoveLine().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestClearCartHandler(t *testing.T) {

	t.Run("Success", func(t *testing.T) {
		// Arrange
		handler := newCartHandler()
		req := testutils.CreateTestRequestWithContext(http.MethodDelete, "/api/v1/carts", nil, uuid.New(), nil)
		rec := httptest.NewRecorder()

		// Act
		handler.ClearCart().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
