package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/api/middleware"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/errors"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/models"
	service "github.com/aaravmahajanofficial/hotel-booking-platform/internal/services"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/utils"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cartService *service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to load cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) AddLine() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.AddCartLineRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.AddLine(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Failed to add cart line", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Cart line added", slog.Int64("hotelId", req.HotelID))
		response.Success(w, http.StatusCreated, cart)
	}
}

func (h *CartHandler) RemoveLine() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		index, err := strconv.Atoi(r.PathValue("index"))
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid cart line index"))
			return
		}

		cart, err := h.cartService.RemoveLine(r.Context(), claims.UserID, index)
		if err != nil {
			logger.Warn("Failed to remove cart line", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		if err := h.cartService.ClearCart(r.Context(), claims.UserID); err != nil {
			logger.Error("Failed to clear cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusNoContent, nil)
	}
}
