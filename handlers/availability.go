package handlers

import (
	"net/http"

	"masarra/services/availability"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler exposes normalized day availability.
type AvailabilityHandler struct {
	Service availability.AvailabilityService
}

func NewAvailabilityHandler(svc availability.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

// DayAvailabilityHandler returns the slots for one (service, vendor, date).
// Upstream failures surface as an empty slot list, matching the service's
// fail-open contract.
func (h *AvailabilityHandler) DayAvailabilityHandler(c *gin.Context) {
	serviceID := c.Query("serviceId")
	vendorID := c.Query("vendorId")
	date := c.Query("date")
	if serviceID == "" || date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "serviceId and date are required"})
		return
	}

	slots := h.Service.DayAvailability(c.Request.Context(), serviceID, vendorID, date)
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}
