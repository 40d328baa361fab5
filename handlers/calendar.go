package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"stayadmin/models"
	bookingSvc "stayadmin/services/booking"
	"stayadmin/services/calendar"
)

// maxPerCell is the display cap: each day shows at most this many
// reservations, with the remainder reported as an overflow count.
const maxPerCell = 2

// CalendarHandler renders the monthly occupancy view.
type CalendarHandler struct {
	Bookings bookingSvc.Service
}

func NewCalendarHandler(bookings bookingSvc.Service) *CalendarHandler {
	return &CalendarHandler{Bookings: bookings}
}

// calendarCell is one rendered day. Padding cells carry Day 0.
type calendarCell struct {
	Day          int                  `json:"day"`
	Date         string               `json:"date,omitempty"`
	Reservations []models.Reservation `json:"reservations"`
	More         int                  `json:"more"`
}

// Month returns the occupancy grid for the requested month (default: the
// current one), with the accommodation, status, and guest filters applied.
func (h *CalendarHandler) Month(c *gin.Context) {
	now := time.Now()
	year := queryInt(c, "year", now.Year())
	month := queryInt(c, "month", int(now.Month()))
	if month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be between 1 and 12"})
		return
	}
	ref := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)

	reservations, err := h.Bookings.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch reservations", "details": err.Error()})
		return
	}

	filters := calendar.Filters{
		AccommodationID: c.Query("accommodation"),
		Status:          c.Query("status"),
		GuestName:       c.Query("guest"),
	}
	visible := calendar.SelectVisibleReservations(reservations, filters, ref)
	grid := calendar.BuildMonthGrid(ref)

	cells := make([]calendarCell, 0, len(grid))
	for _, slot := range grid {
		if slot.Empty {
			cells = append(cells, calendarCell{Reservations: []models.Reservation{}})
			continue
		}
		onDay := calendar.ReservationsOnDay(slot.Date, visible)
		cell := calendarCell{
			Day:          slot.Date.Day(),
			Date:         slot.Date.Format("2006-01-02"),
			Reservations: onDay,
		}
		if len(onDay) > maxPerCell {
			cell.Reservations = onDay[:maxPerCell]
			cell.More = len(onDay) - maxPerCell
		}
		cells = append(cells, cell)
	}

	c.JSON(http.StatusOK, gin.H{
		"year":  year,
		"month": month,
		"cells": cells,
	})
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
