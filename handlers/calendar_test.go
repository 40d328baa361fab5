package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"stayadmin/models"
	bookingRepo "stayadmin/repository/booking"
)

// fixedBookingService serves a canned reservation set.
type fixedBookingService struct {
	reservations []models.Reservation
}

func (s *fixedBookingService) List(ctx context.Context) ([]models.Reservation, error) {
	return s.reservations, nil
}
func (s *fixedBookingService) Create(ctx context.Context, p bookingRepo.Payload) error { return nil }
func (s *fixedBookingService) Update(ctx context.Context, id string, p bookingRepo.Payload) error {
	return nil
}
func (s *fixedBookingService) Confirm(ctx context.Context, id string) error { return nil }
func (s *fixedBookingService) Cancel(ctx context.Context, id string) error  { return nil }

type monthResponse struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Cells []struct {
		Day          int                  `json:"day"`
		Reservations []models.Reservation `json:"reservations"`
		More         int                  `json:"more"`
	} `json:"cells"`
}

func getMonth(t *testing.T, svc *fixedBookingService, query string) monthResponse {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/calendar", NewCalendarHandler(svc).Month)

	req := httptest.NewRequest(http.MethodGet, "/api/calendar?"+query, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("status %d: %s", resp.Code, resp.Body.String())
	}
	var out monthResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	return out
}

func TestMonthViewGridShape(t *testing.T) {
	out := getMonth(t, &fixedBookingService{}, "year=2024&month=3")
	// March 2024: 5 leading blanks (the 1st is a Friday) + 31 days.
	if len(out.Cells) != 36 {
		t.Fatalf("got %d cells, want 36", len(out.Cells))
	}
	for i := 0; i < 5; i++ {
		if out.Cells[i].Day != 0 {
			t.Errorf("cell %d should be padding", i)
		}
	}
	if out.Cells[5].Day != 1 || out.Cells[35].Day != 31 {
		t.Errorf("dated cells misaligned: first=%d last=%d", out.Cells[5].Day, out.Cells[35].Day)
	}
}

func TestMonthViewTruncatesWithOverflow(t *testing.T) {
	svc := &fixedBookingService{reservations: []models.Reservation{
		{ID: "1", GuestName: "a", CheckIn: "2024-03-10", CheckOut: "2024-03-12"},
		{ID: "2", GuestName: "b", CheckIn: "2024-03-10", CheckOut: "2024-03-12"},
		{ID: "3", GuestName: "c", CheckIn: "2024-03-10", CheckOut: "2024-03-12"},
	}}
	out := getMonth(t, svc, "year=2024&month=3")

	cell := out.Cells[5+9] // March 10
	if cell.Day != 10 {
		t.Fatalf("wrong cell: day %d", cell.Day)
	}
	if len(cell.Reservations) != 2 || cell.More != 1 {
		t.Errorf("want 2 shown + 1 overflow, got %d shown + %d", len(cell.Reservations), cell.More)
	}
	// Source order preserved: first two win the visible slots.
	if cell.Reservations[0].ID != "1" || cell.Reservations[1].ID != "2" {
		t.Errorf("order not preserved: %s, %s", cell.Reservations[0].ID, cell.Reservations[1].ID)
	}
}

func TestMonthViewAppliesFilters(t *testing.T) {
	svc := &fixedBookingService{reservations: []models.Reservation{
		{ID: "1", AccommodationID: "5", Status: models.StatusConfirmed, GuestName: "Ana", CheckIn: "2024-03-10", CheckOut: "2024-03-12"},
		{ID: "2", AccommodationID: "7", Status: models.StatusConfirmed, GuestName: "Bob", CheckIn: "2024-03-10", CheckOut: "2024-03-12"},
	}}
	out := getMonth(t, svc, "year=2024&month=3&accommodation=5")

	cell := out.Cells[5+9]
	if len(cell.Reservations) != 1 || cell.Reservations[0].ID != "1" {
		t.Errorf("filter not applied: %+v", cell.Reservations)
	}
}

func TestMonthViewRejectsBadMonth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/calendar", NewCalendarHandler(&fixedBookingService{}).Month)

	req := httptest.NewRequest(http.MethodGet, "/api/calendar?year=2024&month=13", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("month 13 should be rejected, got %d", resp.Code)
	}
}
