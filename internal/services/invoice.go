package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/gateway"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/models"
	"github.com/aaravmahajanofficial/hotel-booking-platform/pkg/sendgrid"
)

type InvoiceJob struct {
	Invoice models.InvoiceRequest
}

// InvoiceDispatcher is the fire-and-forget side effect of a confirmed
// checkout. Dispatch never blocks the checkout flow and failures never reach
// the user.
type InvoiceDispatcher interface {
	Dispatch(job InvoiceJob)
}

// InvoiceWorker runs a single background worker over a buffered queue.
// Errors go to a separate channel so tests can observe them without coupling
// them to the checkout result.
type InvoiceWorker struct {
	invoiceAPI gateway.Client
	email      sendgrid.EmailService
	jobs       chan InvoiceJob
	errs       chan error
	done       chan struct{}
}

const invoiceQueueSize = 64

func NewInvoiceDispatcher(invoiceAPI gateway.Client, email sendgrid.EmailService) *InvoiceWorker {

	d := &InvoiceWorker{
		invoiceAPI: invoiceAPI,
		email:      email,
		jobs:       make(chan InvoiceJob, invoiceQueueSize),
		errs:       make(chan error, invoiceQueueSize),
		done:       make(chan struct{}),
	}

	go d.run()

	return d
}

// Dispatch enqueues a job without blocking. A full queue drops the job: the
// invoice is a courtesy, the booking already exists.
func (d *InvoiceWorker) Dispatch(job InvoiceJob) {

	select {
	case d.jobs <- job:
	default:
		slog.Warn("Invoice queue full, dropping job",
			slog.String("reference", job.Invoice.BookingReference))
	}
}

// Errors exposes the worker's failures for observation. Reads are optional;
// the channel is buffered and overflow is discarded.
func (d *InvoiceWorker) Errors() <-chan error {
	return d.errs
}

// Close stops accepting jobs and waits for the worker to drain the queue.
func (d *InvoiceWorker) Close() {
	close(d.jobs)
	<-d.done
}

func (d *InvoiceWorker) run() {

	defer close(d.done)

	for job := range d.jobs {
		if err := d.process(job); err != nil {

			slog.Error("Invoice dispatch failed",
				slog.String("reference", job.Invoice.BookingReference),
				slog.String("error", err.Error()),
			)

			select {
			case d.errs <- err:
			default:
			}
		}
	}
}

func (d *InvoiceWorker) process(job InvoiceJob) error {

	// Detached from any request: the checkout that queued this job may be
	// long gone.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if d.invoiceAPI != nil {
		if err := d.invoiceAPI.Post(ctx, "/api/invoice/generate", &job.Invoice, nil); err != nil {
			return fmt.Errorf("invoice generation failed: %w", err)
		}
	}

	if d.email != nil && job.Invoice.GuestEmail != "" {

		req := &sendgrid.EmailRequest{
			To:      job.Invoice.GuestEmail,
			Subject: "Booking Confirmed - " + job.Invoice.BookingReference,
			Content: confirmationBody(&job.Invoice),
		}

		if err := d.email.Send(ctx, req); err != nil {
			return fmt.Errorf("confirmation email failed: %w", err)
		}
	}

	return nil
}

func confirmationBody(invoice *models.InvoiceRequest) string {
	return fmt.Sprintf(
		"Dear %s,\n\nYour booking %s at %s (%s) from %s to %s is confirmed.\nTotal: %.2f\n\nThank you for booking with us.",
		invoice.GuestName, invoice.BookingReference, invoice.HotelName, invoice.RoomType,
		invoice.CheckInDate, invoice.CheckOutDate, invoice.TotalPrice,
	)
}
