package handlers

import (
	"errors"
	"net/http"

	"masarra/models"
	"masarra/services/checkout"
	"masarra/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CheckoutHandler exposes reconciliation and checkout.
type CheckoutHandler struct {
	Service checkout.CheckoutService
}

func NewCheckoutHandler(svc checkout.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{Service: svc}
}

// ReconcileHandler dry-runs availability reconciliation of the current cart.
func (h *CheckoutHandler) ReconcileHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	result, err := h.Service.Reconcile(c.Request.Context(), userID)
	if err != nil {
		utils.GetLogger().Error("Reconciliation failed", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check cart availability", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// CheckoutHandler runs one checkout attempt for the current cart.
func (h *CheckoutHandler) CheckoutHandler(c *gin.Context) {
	logger := utils.GetLogger()

	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid checkout request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	result, err := h.Service.Checkout(c.Request.Context(), userID, currentToken(c), req)
	if err != nil {
		var attemptErr *checkout.AttemptError
		if errors.As(err, &attemptErr) {
			status := http.StatusBadRequest
			if attemptErr.Code == "duplicateAttempt" {
				status = http.StatusConflict
			}
			c.JSON(status, gin.H{"error": attemptErr.Message, "code": attemptErr.Code})
			return
		}
		logger.Error("Checkout failed", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout failed", "message": err.Error()})
		return
	}

	// Partial or full submission failure is a valid outcome: report the
	// line-level errors with a 200 so the client can let the user retry or
	// edit the offending lines.
	c.JSON(http.StatusOK, result)
}
