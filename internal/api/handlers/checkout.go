package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/api/middleware"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/errors"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/models"
	service "github.com/aaravmahajanofficial/hotel-booking-platform/internal/services"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/utils"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

type CheckoutHandler struct {
	checkoutService *service.CheckoutService
	validator       *validator.Validate
	sanitizer       *bluemonday.Policy
}

func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		validator:       validator.New(),
		sanitizer:       bluemonday.StrictPolicy(),
	}
}

// StartSession opens a checkout for the customer's current cart. Guest
// details are prefilled from the token's profile fields the way the original
// form was.
func (h *CheckoutHandler) StartSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		session, err := h.checkoutService.StartSession(r.Context(), claims.UserID, guestDefaults(claims))
		if err != nil {
			logger.Warn("Failed to start checkout session", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Checkout session started", slog.String("sessionId", session.ID.String()))
		response.Success(w, http.StatusCreated, models.CheckoutResponse{Session: session})
	}
}

func (h *CheckoutHandler) GetSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		session, err := h.checkoutService.GetSession(r.Context(), claims.UserID, id)
		if err != nil {
			logger.Warn("Failed to get checkout session", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.CheckoutResponse{Session: session})
	}
}

func (h *CheckoutHandler) SubmitGuestDetails() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.GuestDetails
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		// Free text is the only field that can carry markup.
		req.SpecialRequests = h.sanitizer.Sanitize(req.SpecialRequests)

		session, err := h.checkoutService.SubmitGuestDetails(r.Context(), claims.UserID, id, req)
		if err != nil {
			logger.Warn("Failed to submit guest details", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Guest details accepted", slog.String("sessionId", id.String()))
		response.Success(w, http.StatusOK, models.CheckoutResponse{Session: session})
	}
}

func (h *CheckoutHandler) SubmitPayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.PaymentDetails
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		session, err := h.checkoutService.SubmitPayment(r.Context(), claims.UserID, id, &req)
		if err != nil {
			logger.Error("Checkout submission failed", slog.Any("error", err))
			response.Error(w, submissionError(err))
			return
		}

		logger.Info("Checkout confirmed",
			slog.String("sessionId", id.String()),
			slog.String("bookingRef", session.BookingRef),
		)
		response.Success(w, http.StatusOK, models.CheckoutResponse{Session: session})
	}
}

func (h *CheckoutHandler) AbandonSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.checkoutService.AbandonSession(r.Context(), claims.UserID, id); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusNoContent, nil)
	}
}

// submissionError keeps the triggering error's message when there is one and
// falls back to the generic toast text otherwise.
func submissionError(err error) error {

	if _, ok := errors.IsAppError(err); ok {
		return err
	}

	message := strings.TrimSpace(err.Error())
	if message == "" {
		return errors.UpstreamError("Failed to process booking")
	}

	return errors.UpstreamError(message).WithError(err)
}

// guestDefaults splits the profile name into first/last the way the original
// form prefill did.
func guestDefaults(claims *models.Claims) models.GuestDetails {

	details := models.GuestDetails{Email: claims.Email}

	parts := strings.Fields(claims.Name)

	if len(parts) > 0 {
		details.FirstName = parts[0]
	}

	if len(parts) > 1 {
		details.LastName = parts[1]
	}

	return details
}
