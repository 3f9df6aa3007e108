package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tablebook/internal/domain/reservation"
	reqdto "tablebook/internal/handler/dto/request"
	resdto "tablebook/internal/handler/dto/response"
	"tablebook/internal/handler/middleware"
	"tablebook/internal/usecase/queries"
)

type AvailabilityHandler struct {
	queries queries.AvailabilityQueries
}

func NewAvailabilityHandler(qrys queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{queries: qrys}
}

// @Summary Get availability
// @Description Slot-by-slot availability for a date and party size
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param party_size query int true "Party size"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /availability [get]
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var q reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date and party_size are required"})
		return
	}
	date, err := reservation.ParseDate(q.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
		return
	}

	view, err := h.queries.Get(c.Request.Context(), tenantID, date, q.PartySize)
	if err != nil {
		switch {
		case errors.Is(err, reservation.ErrPartyTooSmall):
			c.JSON(http.StatusBadRequest, gin.H{"error": "party_size must be at least one"})
		case errors.Is(err, reservation.ErrBookingDisabled):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Reservations are disabled"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}
