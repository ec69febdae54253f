package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/errors"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/gateway"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/metrics"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/models"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/store"
	"github.com/google/uuid"
)

// BookingHistoryWriter is the slice of the history repository checkout needs.
type BookingHistoryWriter interface {
	CreateRecord(ctx context.Context, record *models.BookingRecord) error
}

// CheckoutService owns the checkout state machine:
//
//	guest_details -> payment -> confirmed
//
// There is no failed terminal state. A failed submission leaves the session
// in payment with the loading flag cleared so the user can resubmit.
type CheckoutService struct {
	carts    store.CartStore
	backend  gateway.Client
	invoices InvoiceDispatcher
	history  BookingHistoryWriter

	mu       sync.Mutex
	sessions map[uuid.UUID]*models.CheckoutSession
}

func NewCheckoutService(carts store.CartStore, backend gateway.Client, invoices InvoiceDispatcher, history BookingHistoryWriter) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		backend:  backend,
		invoices: invoices,
		history:  history,
		sessions: make(map[uuid.UUID]*models.CheckoutSession),
	}
}

// StartSession opens a checkout attempt for the customer's current cart.
// Entry precondition: an empty cart never starts a session.
func (s *CheckoutService) StartSession(ctx context.Context, customerID uuid.UUID, defaults models.GuestDetails) (*models.CheckoutSession, error) {

	lines, err := s.carts.Load(ctx, customerID)
	if err != nil {
		return nil, errors.ThirdPartyError("Failed to load cart").WithError(err)
	}

	if len(lines) == 0 {
		return nil, errors.CartEmptyError()
	}

	cart := models.NewCart(lines)

	session := &models.CheckoutSession{
		ID:         uuid.New(),
		CustomerID: customerID,
		Step:       models.StepGuestDetails,
		Lines:      lines,
		Guest:      defaults,
		Subtotal:   cart.Subtotal,
		Taxes:      cart.Taxes,
		Total:      cart.Total,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return snapshot(session), nil
}

func (s *CheckoutService) GetSession(_ context.Context, customerID, sessionID uuid.UUID) (*models.CheckoutSession, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lookup(customerID, sessionID)
	if err != nil {
		return nil, err
	}

	return snapshot(session), nil
}

// SubmitGuestDetails advances guest_details -> payment. No side effects
// beyond the state change.
func (s *CheckoutService) SubmitGuestDetails(_ context.Context, customerID, sessionID uuid.UUID, guest models.GuestDetails) (*models.CheckoutSession, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lookup(customerID, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Step != models.StepGuestDetails {
		return nil, errors.ConflictError("Guest details can only be submitted from the guest details step")
	}

	session.Guest = guest
	session.Step = models.StepPayment
	session.UpdatedAt = time.Now()

	return snapshot(session), nil
}

// SubmitPayment runs the order submission algorithm. Payment details are
// checked for presence and then discarded; no charge is ever issued from
// this service.
func (s *CheckoutService) SubmitPayment(ctx context.Context, customerID, sessionID uuid.UUID, _ *models.PaymentDetails) (*models.CheckoutSession, error) {

	s.mu.Lock()

	session, err := s.lookup(customerID, sessionID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	if session.Step != models.StepPayment {
		s.mu.Unlock()
		return nil, errors.ConflictError("Payment can only be submitted from the payment step")
	}

	if session.Loading {
		s.mu.Unlock()
		return nil, errors.ConflictError("A submission is already in progress")
	}

	session.Loading = true
	session.UpdatedAt = time.Now()
	lines := session.Lines
	guest := session.Guest
	s.mu.Unlock()

	metrics.CheckoutSubmissions.Inc()

	submitErr := s.submitAll(ctx, lines, guest)

	s.mu.Lock()
	defer s.mu.Unlock()

	session.Loading = false
	session.UpdatedAt = time.Now()

	if submitErr != nil {
		// Stay in payment, cart untouched, user can retry.
		metrics.CheckoutFailures.Inc()
		return nil, submitErr
	}

	if err := s.carts.Clear(ctx, customerID); err != nil {
		// Bookings exist upstream at this point; a stale cart is the lesser
		// problem, so confirm anyway.
		slog.Error("Failed to clear cart after confirmed checkout",
			slog.String("customerId", customerID.String()),
			slog.String("error", err.Error()),
		)
	}

	session.BookingRef = newBookingReference()
	session.Step = models.StepConfirmed
	session.Complete = true

	metrics.CheckoutConfirmations.Inc()

	s.recordHistory(ctx, session)
	s.dispatchInvoice(session)

	// The session is ephemeral: once confirmed it is destroyed and the final
	// state travels back in the response.
	delete(s.sessions, session.ID)

	return snapshot(session), nil
}

// AbandonSession drops an unfinished session, the navigation-away case.
func (s *CheckoutService) AbandonSession(_ context.Context, customerID, sessionID uuid.UUID) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookup(customerID, sessionID); err != nil {
		return err
	}

	delete(s.sessions, sessionID)

	return nil
}

// submitAll fans one booking request per cart line out to the backend and
// joins on all of them. All-or-nothing: any error fails the whole operation.
// Lines that did succeed next to a failure are compensated with a best-effort
// cancellation rather than left dangling upstream.
func (s *CheckoutService) submitAll(ctx context.Context, lines []models.CartLine, guest models.GuestDetails) error {

	confirmations := make([]*models.BookingConfirmation, len(lines))
	errs := make([]error, len(lines))

	var wg sync.WaitGroup

	for i, line := range lines {

		wg.Add(1)

		go func(i int, line models.CartLine) {
			defer wg.Done()

			// Local precondition, checked before this line touches the
			// network.
			if line.HotelID == 0 || line.RoomTypeID == 0 {
				errs[i] = errors.ValidationError(invalidLineMessage(i, line))
				return
			}

			req := buildBookingRequest(line, guest)

			var confirmation models.BookingConfirmation

			if err := s.backend.Post(ctx, "/bookings", req, &confirmation); err != nil {
				errs[i] = err
				return
			}

			confirmations[i] = &confirmation
		}(i, line)
	}

	wg.Wait()

	var firstErr error

	for _, err := range errs {
		if err != nil {
			firstErr = err
			break
		}
	}

	if firstErr == nil {
		return nil
	}

	s.compensate(ctx, confirmations)

	return firstErr
}

// compensate cancels the bookings that were accepted before a sibling line
// failed. Best effort only: a failed cancellation is logged and the backend
// keeps the booking.
func (s *CheckoutService) compensate(ctx context.Context, confirmations []*models.BookingConfirmation) {

	for _, confirmation := range confirmations {

		if confirmation == nil {
			continue
		}

		path := fmt.Sprintf("/bookings/%d", confirmation.ID)

		if err := s.backend.Delete(ctx, path, nil); err != nil {
			slog.Error("Failed to cancel booking during compensation",
				slog.Int64("bookingId", confirmation.ID),
				slog.String("error", err.Error()),
			)
		} else {
			slog.Info("Cancelled booking after partial checkout failure", slog.Int64("bookingId", confirmation.ID))
		}
	}
}

func (s *CheckoutService) recordHistory(ctx context.Context, session *models.CheckoutSession) {

	if s.history == nil {
		return
	}

	first := session.Lines[0]

	record := &models.BookingRecord{
		ID:         uuid.New(),
		CustomerID: session.CustomerID,
		Reference:  session.BookingRef,
		Hotel:      first.Hotel,
		CheckIn:    first.CheckIn,
		CheckOut:   first.CheckOut,
		LineCount:  len(session.Lines),
		Total:      session.Total,
		GuestEmail: session.Guest.Email,
	}

	if err := s.history.CreateRecord(ctx, record); err != nil {
		// History is a convenience view; the backend still has the bookings.
		slog.Error("Failed to record booking history",
			slog.String("reference", session.BookingRef),
			slog.String("error", err.Error()),
		)
	}
}

func (s *CheckoutService) dispatchInvoice(session *models.CheckoutSession) {

	if s.invoices == nil {
		return
	}

	first := session.Lines[0]

	s.invoices.Dispatch(InvoiceJob{
		Invoice: models.InvoiceRequest{
			GuestName:        session.Guest.FirstName + " " + session.Guest.LastName,
			HotelName:        first.Hotel,
			RoomType:         first.RoomType,
			CheckInDate:      first.CheckIn,
			CheckOutDate:     first.CheckOut,
			TotalPrice:       session.Total,
			BookingReference: "HB-" + session.BookingRef,
			GuestEmail:       session.Guest.Email,
		},
	})
}

// lookup must be called with s.mu held.
func (s *CheckoutService) lookup(customerID, sessionID uuid.UUID) (*models.CheckoutSession, error) {

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, errors.NotFoundError("Checkout session not found")
	}

	if session.CustomerID != customerID {
		return nil, errors.ForbiddenError("Checkout session belongs to another customer")
	}

	return session, nil
}

func buildBookingRequest(line models.CartLine, guest models.GuestDetails) *models.BookingRequest {

	adults := line.Guests
	if adults == 0 {
		adults = 2
	}

	rooms := line.Rooms
	if rooms == 0 {
		rooms = 1
	}

	return &models.BookingRequest{
		HotelID:        line.HotelID,
		RoomTypeID:     line.RoomTypeID,
		CheckInDate:    line.CheckIn,
		CheckOutDate:   line.CheckOut,
		Adults:         adults,
		Children:       0,
		Rooms:          rooms,
		GuestFirstName: guest.FirstName,
		GuestLastName:  guest.LastName,
		GuestEmail:     guest.Email,
		GuestPhone:     guest.Phone,
	}
}

func invalidLineMessage(index int, line models.CartLine) string {

	name := line.Hotel
	if name == "" {
		name = fmt.Sprintf("line %d", index+1)
	}

	return fmt.Sprintf("Invalid booking: missing hotel or room type for %s. Please re-add this item to your cart.", name)
}

// newBookingReference derives the display reference from the current time:
// the last 8 digits of the Unix millisecond clock.
func newBookingReference() string {

	ms := strconv.FormatInt(time.Now().UnixMilli(), 10)

	return ms[len(ms)-8:]
}

func snapshot(session *models.CheckoutSession) *models.CheckoutSession {

	copied := *session
	copied.Lines = make([]models.CartLine, len(session.Lines))
	copy(copied.Lines, session.Lines)

	return &copied
}
