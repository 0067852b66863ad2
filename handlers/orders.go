package handlers

import (
	"net/http"

	orderRepo "masarra/database/repository/order"
	"masarra/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OrderHandler exposes the local order-receipt journal.
type OrderHandler struct {
	Repo orderRepo.OrderReceiptRepository
}

func NewOrderHandler(repo orderRepo.OrderReceiptRepository) *OrderHandler {
	return &OrderHandler{Repo: repo}
}

// ListOrdersHandler returns the user's order receipts, newest first.
func (h *OrderHandler) ListOrdersHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	receipts, err := h.Repo.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		utils.GetLogger().Error("Failed to list orders", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": receipts})
}
