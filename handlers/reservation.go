package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stayadmin/models"
	bookingRepo "stayadmin/repository/booking"
	bookingSvc "stayadmin/services/booking"
	"stayadmin/services/calendar"
	"stayadmin/services/search"
)

// ReservationHandler exposes the reservation list and mutation views.
type ReservationHandler struct {
	Service bookingSvc.Service
}

func NewReservationHandler(service bookingSvc.Service) *ReservationHandler {
	return &ReservationHandler{Service: service}
}

// reservationInput is the JSON shape the console frontend submits.
type reservationInput struct {
	CheckIn         string  `json:"checkIn" binding:"required"`
	CheckOut        string  `json:"checkOut" binding:"required"`
	TotalAmount     float64 `json:"totalAmount"`
	Status          string  `json:"status"`
	AccommodationID string  `json:"accommodationId" binding:"required"`
	Guests          int     `json:"guests"`
	UserID          int     `json:"user_id"`
}

func (in reservationInput) payload() bookingRepo.Payload {
	return bookingRepo.Payload{
		CheckIn:         in.CheckIn,
		CheckOut:        in.CheckOut,
		TotalAmount:     in.TotalAmount,
		Status:          in.Status,
		AccommodationID: in.AccommodationID,
		Guests:          in.Guests,
		UserID:          in.UserID,
	}
}

// List returns the reservation set, optionally narrowed by the same
// conjunctive criteria the calendar uses (minus the month overlap).
func (h *ReservationHandler) List(c *gin.Context) {
	reservations, err := h.Service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch reservations", "details": err.Error()})
		return
	}

	filters := calendar.Filters{
		AccommodationID: c.Query("accommodation"),
		Status:          c.Query("status"),
		GuestName:       c.Query("guest"),
	}
	filtered := make([]models.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if calendar.MatchesFilters(r, filters) {
			filtered = append(filtered, r)
		}
	}
	c.JSON(http.StatusOK, filtered)
}

func (h *ReservationHandler) Create(c *gin.Context) {
	var input reservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Service.Create(c.Request.Context(), input.payload()); err != nil {
		respondReservationError(c, err, "failed to create reservation")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "reservation created"})
}

func (h *ReservationHandler) Update(c *gin.Context) {
	var input reservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Service.Update(c.Request.Context(), c.Param("id"), input.payload()); err != nil {
		respondReservationError(c, err, "failed to update reservation")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reservation updated"})
}

// SetStatus confirms or cancels a reservation. The frontend asks the staff
// member to confirm before sending a cancellation; once sent, there is no
// path back from cancelled in the console.
func (h *ReservationHandler) SetStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	var err error
	switch input.Status {
	case models.StatusConfirmed:
		err = h.Service.Confirm(c.Request.Context(), c.Param("id"))
	case models.StatusCancelled:
		err = h.Service.Cancel(c.Request.Context(), c.Param("id"))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be confirmed or cancelled"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to update status", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "status updated"})
}

// respondReservationError maps local field validation to 422 and everything
// else to an upstream failure.
func respondReservationError(c *gin.Context, err error, fallback string) {
	var fieldErr *search.FieldError
	if errors.As(err, &fieldErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"field": fieldErr.Field, "message": fieldErr.Message})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": fallback, "details": err.Error()})
}
