// Package booking is the application service between the reservation views
// and the repository: stay validation, payload assembly, status transitions.
package booking

import (
	"context"
	"time"

	"stayadmin/models"
	bookingRepo "stayadmin/repository/booking"
	"stayadmin/services/search"
)

const dateLayout = "2006-01-02"

// Service is the reservation surface used by the views.
type Service interface {
	List(ctx context.Context) ([]models.Reservation, error)
	Create(ctx context.Context, p bookingRepo.Payload) error
	Update(ctx context.Context, id string, p bookingRepo.Payload) error
	Confirm(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo bookingRepo.Repository
}

func (s *DefaultBookingService) List(ctx context.Context) ([]models.Reservation, error) {
	return s.Repo.List(ctx)
}

// Create validates the stay locally before anything is sent: the check-out
// must fall strictly after the check-in. The server re-validates; this check
// just keeps obviously broken submissions off the wire.
func (s *DefaultBookingService) Create(ctx context.Context, p bookingRepo.Payload) error {
	if err := validateStay(p.CheckIn, p.CheckOut); err != nil {
		return err
	}
	return s.Repo.Create(ctx, p)
}

func (s *DefaultBookingService) Update(ctx context.Context, id string, p bookingRepo.Payload) error {
	if err := validateStay(p.CheckIn, p.CheckOut); err != nil {
		return err
	}
	return s.Repo.Update(ctx, id, p)
}

func (s *DefaultBookingService) Confirm(ctx context.Context, id string) error {
	return s.Repo.SetStatus(ctx, id, models.StatusConfirmed)
}

// Cancel is one-way: the console offers no path back from cancelled, even
// though the underlying endpoint would accept one.
func (s *DefaultBookingService) Cancel(ctx context.Context, id string) error {
	return s.Repo.SetStatus(ctx, id, models.StatusCancelled)
}

func validateStay(checkIn, checkOut string) error {
	in, err := time.Parse(dateLayout, checkIn)
	if err != nil {
		return &search.FieldError{Field: "checkIn", Message: "invalid check-in date"}
	}
	out, err := time.Parse(dateLayout, checkOut)
	if err != nil {
		return &search.FieldError{Field: "checkOut", Message: "invalid check-out date"}
	}
	if !out.After(in) {
		return &search.FieldError{Field: "checkOut", Message: "check-out must be after check-in"}
	}
	return nil
}
