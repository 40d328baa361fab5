package search

import (
	"context"
	"errors"
	"testing"

	"stayadmin/api"
	"stayadmin/models"
	accommodationRepo "stayadmin/repository/accommodation"
	bookingRepo "stayadmin/repository/booking"
)

// stubBookingRepo counts calendar calls and returns canned results.
type stubBookingRepo struct {
	calendarCalls int
	results       []models.Reservation
	err           error
}

func (s *stubBookingRepo) List(ctx context.Context) ([]models.Reservation, error) { return nil, nil }
func (s *stubBookingRepo) Create(ctx context.Context, p bookingRepo.Payload) error { return nil }
func (s *stubBookingRepo) Update(ctx context.Context, id string, p bookingRepo.Payload) error {
	return nil
}
func (s *stubBookingRepo) SetStatus(ctx context.Context, id, status string) error { return nil }
func (s *stubBookingRepo) ListByCalendar(ctx context.Context, accommodationID, startDate, endDate string) ([]models.Reservation, error) {
	s.calendarCalls++
	return s.results, s.err
}

// stubAccommodationRepo serves a fixed catalog and counts remote lookups.
type stubAccommodationRepo struct {
	catalog     map[int]models.Accommodation
	cached      map[int]models.Accommodation
	remoteCalls int
}

func newStubAccommodationRepo(catalog map[int]models.Accommodation) *stubAccommodationRepo {
	return &stubAccommodationRepo{catalog: catalog, cached: make(map[int]models.Accommodation)}
}

func (s *stubAccommodationRepo) List(ctx context.Context) ([]models.Accommodation, error) {
	return nil, nil
}
func (s *stubAccommodationRepo) GetByID(ctx context.Context, id int) (*models.Accommodation, error) {
	s.remoteCalls++
	acc, ok := s.catalog[id]
	if !ok {
		return nil, errors.New("not found")
	}
	s.cached[id] = acc
	return &acc, nil
}
func (s *stubAccommodationRepo) Cached(id int) (*models.Accommodation, bool) {
	acc, ok := s.cached[id]
	if !ok {
		return nil, false
	}
	return &acc, true
}
func (s *stubAccommodationRepo) Create(ctx context.Context, in accommodationRepo.Input) error {
	return nil
}
func (s *stubAccommodationRepo) Update(ctx context.Context, id int, in accommodationRepo.Input) error {
	return nil
}

type stubUserRepo struct {
	users []models.User
	calls int
}

func (s *stubUserRepo) List(ctx context.Context) ([]models.User, error) {
	s.calls++
	return s.users, nil
}

func TestValidateRange(t *testing.T) {
	if err := ValidateRange("2024-01-01", "2024-01-01"); err != nil {
		t.Errorf("equal dates should be valid: %v", err)
	}
	if err := ValidateRange("2024-01-01", "2024-02-15"); err != nil {
		t.Errorf("ordered dates should be valid: %v", err)
	}

	err := ValidateRange("2024-02-15", "2024-01-01")
	if err == nil {
		t.Fatal("end before start should fail")
	}
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) || fieldErr.Field != "endDate" {
		t.Errorf("want field error on endDate, got %v", err)
	}

	if err := ValidateRange("garbage", "2024-01-01"); err == nil {
		t.Error("unparseable start should fail")
	}
}

func TestByRangeInvalidRangeNeverCallsRemote(t *testing.T) {
	bookings := &stubBookingRepo{}
	svc := &DefaultSearchService{
		Bookings:       bookings,
		Accommodations: newStubAccommodationRepo(nil),
		Users:          &stubUserRepo{},
	}
	_, err := svc.ByRange(context.Background(), "5", "2024-04-15", "2024-01-01", "all")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if bookings.calendarCalls != 0 {
		t.Errorf("remote query issued despite invalid range (%d calls)", bookings.calendarCalls)
	}
}

func TestByRangeTranslatesSpanRejection(t *testing.T) {
	bookings := &stubBookingRepo{
		err: &api.Error{Status: 422, Message: "The date range cannot be longer than 3 months"},
	}
	svc := &DefaultSearchService{
		Bookings:       bookings,
		Accommodations: newStubAccommodationRepo(nil),
		Users:          &stubUserRepo{},
	}
	_, err := svc.ByRange(context.Background(), "5", "2024-01-01", "2024-04-15", "all")
	if !errors.Is(err, ErrRangeTooWide) {
		t.Fatalf("want ErrRangeTooWide, got %v", err)
	}
	if err.Error() != "date range cannot exceed three months" {
		t.Errorf("caller must see the fixed message, got %q", err.Error())
	}
}

func TestByRangeFailSoftOnOtherErrors(t *testing.T) {
	bookings := &stubBookingRepo{err: &api.Error{Status: 500, Message: "boom"}}
	svc := &DefaultSearchService{
		Bookings:       bookings,
		Accommodations: newStubAccommodationRepo(nil),
		Users:          &stubUserRepo{},
	}
	results, err := svc.ByRange(context.Background(), "5", "2024-01-01", "2024-02-01", "all")
	if err != nil {
		t.Fatalf("unrecognized failures should degrade to empty results, got %v", err)
	}
	if len(results) != 0 {
		t.Errorf("want empty result set, got %d", len(results))
	}
}

func TestByRangeStatusPostFilter(t *testing.T) {
	bookings := &stubBookingRepo{results: []models.Reservation{
		{ID: "1", Status: models.StatusConfirmed},
		{ID: "2", Status: models.StatusCancelled},
		{ID: "3", Status: models.StatusCancelled},
	}}
	svc := &DefaultSearchService{
		Bookings:       bookings,
		Accommodations: newStubAccommodationRepo(nil),
		Users:          &stubUserRepo{},
	}
	results, err := svc.ByRange(context.Background(), "5", "2024-01-01", "2024-02-01", models.StatusCancelled)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("want 2 cancelled, got %d", len(results))
	}
	for _, r := range results {
		if r.Status != models.StatusCancelled {
			t.Errorf("post-filter leaked status %q", r.Status)
		}
	}
}

func TestByRangeResolvesNamesAndSkipsCachedIDs(t *testing.T) {
	bookings := &stubBookingRepo{results: []models.Reservation{
		{ID: "1", AccommodationID: "5", UserID: "9"},
		{ID: "2", AccommodationID: "5", UserID: "9"},
		{ID: "3", AccommodationID: "7"},
	}}
	accommodations := newStubAccommodationRepo(map[int]models.Accommodation{
		5: {ID: 5, Name: "Casa Azul"},
		7: {ID: 7, Name: "Villa Roja"},
	})
	// Accommodation 7 is already cached; only 5 needs a remote lookup.
	accommodations.cached[7] = accommodations.catalog[7]
	users := &stubUserRepo{users: []models.User{{ID: "9", Email: "ana@example.com", Name: "Ana"}}}

	svc := &DefaultSearchService{Bookings: bookings, Accommodations: accommodations, Users: users}
	results, err := svc.ByRange(context.Background(), "5", "2024-01-01", "2024-02-01", "all")
	if err != nil {
		t.Fatal(err)
	}
	if accommodations.remoteCalls != 1 {
		t.Errorf("want exactly 1 remote lookup (id 5), got %d", accommodations.remoteCalls)
	}
	if results[0].AccommodationName != "Casa Azul" || results[2].AccommodationName != "Villa Roja" {
		t.Errorf("names not resolved: %q / %q", results[0].AccommodationName, results[2].AccommodationName)
	}
	if results[0].GuestName != "Ana" {
		t.Errorf("owner name not resolved, got %q", results[0].GuestName)
	}

	// A second search must not reload the user listing.
	if _, err := svc.ByRange(context.Background(), "5", "2024-01-01", "2024-02-01", "all"); err != nil {
		t.Fatal(err)
	}
	if users.calls != 1 {
		t.Errorf("user listing fetched %d times, want once per service lifetime", users.calls)
	}
}
