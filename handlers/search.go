package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stayadmin/services/search"
)

// SearchHandler exposes the "reservations by date range" view.
type SearchHandler struct {
	Service search.Service
}

func NewSearchHandler(service search.Service) *SearchHandler {
	return &SearchHandler{Service: service}
}

// ByRange runs a validated range query for one accommodation. Local
// validation failures and the server's maximum-span rejection both come back
// as 422; other upstream failures degrade to an empty result inside the
// service.
func (h *SearchHandler) ByRange(c *gin.Context) {
	accommodationID := c.Query("accommodation")
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if accommodationID == "" || startDate == "" || endDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "accommodation, start_date and end_date are required"})
		return
	}

	results, err := h.Service.ByRange(c.Request.Context(), accommodationID, startDate, endDate, c.Query("status"))
	if err != nil {
		var fieldErr *search.FieldError
		if errors.As(err, &fieldErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"field": fieldErr.Field, "message": fieldErr.Message})
			return
		}
		if errors.Is(err, search.ErrRangeTooWide) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "search failed", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}
