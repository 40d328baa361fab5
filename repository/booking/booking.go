// Package booking fetches and persists reservation records through the remote
// lodging API, normalizing its inconsistent field names into the canonical
// Reservation shape.
package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"stayadmin/api"
	"stayadmin/models"
)

// Payload carries the fields the console submits when creating or updating a
// reservation. The repository translates it into the server's wire shape.
type Payload struct {
	CheckIn         string
	CheckOut        string
	TotalAmount     float64
	Status          string
	AccommodationID string
	Guests          int
	UserID          int
}

// Repository is the reservation data access surface.
type Repository interface {
	List(ctx context.Context) ([]models.Reservation, error)
	Create(ctx context.Context, p Payload) error
	Update(ctx context.Context, id string, p Payload) error
	SetStatus(ctx context.Context, id, status string) error
	ListByCalendar(ctx context.Context, accommodationID, startDate, endDate string) ([]models.Reservation, error)
}

// RESTBookingRepo implements Repository against the remote API.
type RESTBookingRepo struct {
	Client *api.Client
}

func NewRESTBookingRepo(client *api.Client) *RESTBookingRepo {
	return &RESTBookingRepo{Client: client}
}

// wireBooking is the request body shape the server expects. Field names keep
// the server's historical spelling.
type wireBooking struct {
	Booking        string  `json:"booking"`
	CheckInDate    string  `json:"check_in_date"`
	CheckOutDate   string  `json:"check_out_date"`
	TotalAmount    float64 `json:"total_amount"`
	Status         string  `json:"status"`
	AccomodationID int     `json:"accomodation_id,omitempty"`
	UserID         int     `json:"user_id"`
}

// bookingRef generates the short reference the server requires on writes,
// "BK" followed by a millisecond timestamp, capped at 10 characters.
func bookingRef() string {
	ref := fmt.Sprintf("BK%d", time.Now().UnixMilli())
	if len(ref) > 10 {
		ref = ref[:10]
	}
	return ref
}

func toWire(p Payload) wireBooking {
	accID, _ := strconv.Atoi(p.AccommodationID)
	userID := p.UserID
	if userID == 0 {
		userID = 1
	}
	status := p.Status
	if status == "" {
		status = models.StatusConfirmed
	}
	return wireBooking{
		Booking:        bookingRef(),
		CheckInDate:    p.CheckIn,
		CheckOutDate:   p.CheckOut,
		TotalAmount:    p.TotalAmount,
		Status:         strings.ToUpper(status),
		AccomodationID: accID,
		UserID:         userID,
	}
}

func (r *RESTBookingRepo) List(ctx context.Context) ([]models.Reservation, error) {
	var raw []map[string]any
	if err := r.Client.Get(ctx, "/api/V1/bookings", &raw); err != nil {
		return nil, err
	}
	out := make([]models.Reservation, 0, len(raw))
	for _, item := range raw {
		out = append(out, Normalize(item))
	}
	return out, nil
}

func (r *RESTBookingRepo) Create(ctx context.Context, p Payload) error {
	return r.Client.Post(ctx, "/api/V1/booking", toWire(p), nil)
}

func (r *RESTBookingRepo) Update(ctx context.Context, id string, p Payload) error {
	return r.Client.Put(ctx, "/api/V1/booking/"+url.PathEscape(id), toWire(p), nil)
}

// SetStatus flips the reservation lifecycle state. The server accepts only
// CONFIRMED and CANCELLED here; cancellation is one-way in the console UI.
func (r *RESTBookingRepo) SetStatus(ctx context.Context, id, status string) error {
	body := map[string]string{"status": strings.ToUpper(status)}
	return r.Client.Patch(ctx, "/api/V1/status_booking/"+url.PathEscape(id), body, nil)
}

// ListByCalendar queries reservations for one accommodation within a date
// range. The endpoint answers with either an array of bookings or an
// error-shaped object; an object carrying a `message` field means "no
// results", not data. Transport failures propagate to the caller, which
// decides how to interpret them.
func (r *RESTBookingRepo) ListByCalendar(ctx context.Context, accommodationID, startDate, endDate string) ([]models.Reservation, error) {
	path := fmt.Sprintf("/api/V1/bookings/calendar/%s?start_date=%s&end_date=%s",
		url.PathEscape(accommodationID), url.QueryEscape(startDate), url.QueryEscape(endDate))

	var body json.RawMessage
	if err := r.Client.Get(ctx, path, &body); err != nil {
		return nil, err
	}

	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err == nil {
		if _, ok := obj["message"]; ok {
			return []models.Reservation{}, nil
		}
	}

	var raw []map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("booking: unexpected calendar response shape: %w", err)
	}
	out := make([]models.Reservation, 0, len(raw))
	for _, item := range raw {
		out = append(out, Normalize(item))
	}
	return out, nil
}
