// Package calendar is the occupancy engine behind the monthly reservation
// view. Given a reservation set and a reference month it computes the day
// grid and decides which reservations occupy which days under the active
// filters. Everything here is a pure function of its inputs: no I/O, no
// mutation, no errors. A reservation whose dates cannot be parsed is simply
// left out of any comparison it cannot enter.
package calendar

import (
	"strings"
	"time"

	"stayadmin/models"
)

const dateLayout = "2006-01-02"

// FilterAll is the selector value that disables a filter criterion.
const FilterAll = "all"

// Filters are the conjunctive criteria applied to the reservation set.
// A zero GuestName matches every guest.
type Filters struct {
	AccommodationID string
	Status          string
	GuestName       string
}

// DaySlot is one cell of the month grid. Leading slots before the 1st are
// empty padding that aligns the first day with its weekday column.
type DaySlot struct {
	Date  time.Time
	Empty bool
}

// BuildMonthGrid returns the ordered day slots for the month containing ref:
// one empty slot per weekday preceding the 1st (Sunday-start week, so the
// count equals time.Weekday of the 1st), then one dated slot per day of the
// month. Leap years fall out of standard calendar arithmetic.
func BuildMonthGrid(ref time.Time) []DaySlot {
	year, month := ref.Year(), ref.Month()
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	slots := make([]DaySlot, 0, int(first.Weekday())+daysInMonth)
	for i := 0; i < int(first.Weekday()); i++ {
		slots = append(slots, DaySlot{Empty: true})
	}
	for day := 1; day <= daysInMonth; day++ {
		slots = append(slots, DaySlot{Date: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)})
	}
	return slots
}

// MatchesFilters reports whether the reservation satisfies every active
// criterion: accommodation id, status, and case-insensitive guest-name
// substring.
func MatchesFilters(r models.Reservation, f Filters) bool {
	if f.AccommodationID != "" && f.AccommodationID != FilterAll && r.AccommodationID != f.AccommodationID {
		return false
	}
	if f.Status != "" && f.Status != FilterAll && r.Status != f.Status {
		return false
	}
	if f.GuestName != "" && !strings.Contains(strings.ToLower(r.GuestName), strings.ToLower(f.GuestName)) {
		return false
	}
	return true
}

// OverlapsMonth reports whether the stay [checkIn, checkOut) touches the
// month containing ref: the check-in falls inside it, the check-out falls
// inside it, or the stay spans the whole month. Boundary-spanning stays are
// intentionally included; a reservation need not start or end in the visible
// month to appear in it.
func OverlapsMonth(r models.Reservation, ref time.Time) bool {
	checkIn, ok := parseDay(r.CheckIn)
	if !ok {
		return false
	}
	checkOut, ok := parseDay(r.CheckOut)
	if !ok {
		return false
	}

	year, month := ref.Year(), ref.Month()
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC) // last day, midnight

	if checkIn.Year() == year && checkIn.Month() == month {
		return true
	}
	if checkOut.Year() == year && checkOut.Month() == month {
		return true
	}
	return checkIn.Before(monthStart) && checkOut.After(monthEnd)
}

// SelectVisibleReservations filters the reservation set down to what the
// month view shows: every active filter must match and the stay must overlap
// the reference month. Source order is preserved.
func SelectVisibleReservations(all []models.Reservation, f Filters, ref time.Time) []models.Reservation {
	out := make([]models.Reservation, 0, len(all))
	for _, r := range all {
		if MatchesFilters(r, f) && OverlapsMonth(r, ref) {
			out = append(out, r)
		}
	}
	return out
}

// ReservationsOnDay returns the reservations occupying the given day, using
// half-open containment: checkIn <= day < checkOut. A stay ending on a day
// does not occupy it; the guest checks out that morning.
func ReservationsOnDay(day time.Time, visible []models.Reservation) []models.Reservation {
	day = truncateDay(day)
	out := make([]models.Reservation, 0)
	for _, r := range visible {
		checkIn, ok := parseDay(r.CheckIn)
		if !ok {
			continue
		}
		checkOut, ok := parseDay(r.CheckOut)
		if !ok {
			continue
		}
		if !day.Before(checkIn) && day.Before(checkOut) {
			out = append(out, r)
		}
	}
	return out
}

func parseDay(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
