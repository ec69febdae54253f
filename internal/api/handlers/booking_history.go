package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/api/middleware"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/errors"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/models"
	service "github.com/aaravmahajanofficial/hotel-booking-platform/internal/services"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/utils/response"
)

type BookingHistoryHandler struct {
	historyService *service.BookingHistoryService
}

func NewBookingHistoryHandler(historyService *service.BookingHistoryService) *BookingHistoryHandler {
	return &BookingHistoryHandler{historyService: historyService}
}

func (h *BookingHistoryHandler) ListBookings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		size, _ := strconv.Atoi(r.URL.Query().Get("size"))

		history, err := h.historyService.ListBookings(r.Context(), claims.UserID, page, size)
		if err != nil {
			logger.Error("Failed to list bookings", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, history)
	}
}
