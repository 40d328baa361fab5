// Package search gates the remote "reservations in range" query behind local
// validation and interprets the server's rejections for the console.
package search

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"stayadmin/api"
	"stayadmin/models"
	accommodationRepo "stayadmin/repository/accommodation"
	bookingRepo "stayadmin/repository/booking"
	userRepo "stayadmin/repository/user"
	"stayadmin/services/calendar"
)

// ErrRangeTooWide is the fixed user-facing translation of the server's
// maximum-span rejection; the raw server text is never shown.
var ErrRangeTooWide = errors.New("date range cannot exceed three months")

// Service runs date-range reservation queries for one accommodation.
type Service interface {
	ByRange(ctx context.Context, accommodationID, startDate, endDate, status string) ([]models.Reservation, error)
}

// DefaultSearchService is the production implementation.
type DefaultSearchService struct {
	Bookings       bookingRepo.Repository
	Accommodations accommodationRepo.Repository
	Users          userRepo.Repository
	Logger         *zap.Logger

	usersOnce sync.Once
	userMu    sync.Mutex
	userByID  map[string]models.User
}

// ByRange validates the range locally, issues the remote query exactly once,
// applies the optional status criterion client-side, and resolves display
// names for every accommodation and user referenced by the results.
//
// Failure policy: a 422 rejection whose message references the maximum-span
// rule becomes ErrRangeTooWide; any other remote failure degrades to an empty
// result set. That fail-soft choice mirrors how the console always behaved,
// but the failure is logged at warn level so operators can tell it apart from
// a genuinely empty result.
func (s *DefaultSearchService) ByRange(ctx context.Context, accommodationID, startDate, endDate, status string) ([]models.Reservation, error) {
	if err := ValidateRange(startDate, endDate); err != nil {
		return nil, err
	}

	results, err := s.Bookings.ListByCalendar(ctx, accommodationID, startDate, endDate)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Status == 422 && mentionsSpanLimit(apiErr.Message) {
			return nil, ErrRangeTooWide
		}
		s.logger().Warn("range query failed; returning empty result set",
			zap.String("accommodationId", accommodationID),
			zap.String("startDate", startDate),
			zap.String("endDate", endDate),
			zap.Error(err))
		return []models.Reservation{}, nil
	}

	if status != "" && status != calendar.FilterAll {
		filtered := results[:0]
		for _, r := range results {
			if r.Status == status {
				filtered = append(filtered, r)
			}
		}
		results = filtered
	}

	// Name resolution is deliberately sequenced after the fetch; ids only
	// exist once the reservation list is in hand.
	s.resolveAccommodations(ctx, results)
	s.resolveUsers(ctx, results)
	return results, nil
}

// resolveAccommodations fetches every distinct referenced accommodation that
// is not already cached, then backfills display names. Cached ids never
// trigger a remote call.
func (s *DefaultSearchService) resolveAccommodations(ctx context.Context, results []models.Reservation) {
	seen := make(map[int]bool)
	for _, r := range results {
		id, err := strconv.Atoi(r.AccommodationID)
		if err != nil || seen[id] {
			continue
		}
		seen[id] = true
		if _, ok := s.Accommodations.Cached(id); ok {
			continue
		}
		if _, err := s.Accommodations.GetByID(ctx, id); err != nil {
			s.logger().Warn("failed to resolve accommodation", zap.Int("id", id), zap.Error(err))
		}
	}
	for i := range results {
		id, err := strconv.Atoi(results[i].AccommodationID)
		if err != nil {
			continue
		}
		if acc, ok := s.Accommodations.Cached(id); ok && acc.Name != "" {
			results[i].AccommodationName = acc.Name
		}
	}
}

// resolveUsers loads the staff listing once per service lifetime and uses it
// to fill in guest display names keyed by the owning user id.
func (s *DefaultSearchService) resolveUsers(ctx context.Context, results []models.Reservation) {
	s.usersOnce.Do(func() {
		users, err := s.Users.List(ctx)
		if err != nil {
			s.logger().Warn("failed to load user listing", zap.Error(err))
			return
		}
		byID := make(map[string]models.User, len(users))
		for _, u := range users {
			byID[u.ID] = u
		}
		s.userMu.Lock()
		s.userByID = byID
		s.userMu.Unlock()
	})

	s.userMu.Lock()
	defer s.userMu.Unlock()
	for i := range results {
		if u, ok := s.userByID[results[i].UserID]; ok && u.Name != "" {
			results[i].GuestName = u.Name
		}
	}
}

// mentionsSpanLimit recognizes the server's maximum-span rejection by its
// message content; the wording has varied across server versions.
func mentionsSpanLimit(message string) bool {
	m := strings.ToLower(message)
	return strings.Contains(m, "3 months") || strings.Contains(m, "3 meses") || strings.Contains(m, "date range")
}

func (s *DefaultSearchService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}
