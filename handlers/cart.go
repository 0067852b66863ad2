package handlers

import (
	"errors"
	"net/http"

	"masarra/models"
	"masarra/services/cart"
	"masarra/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CartHandler exposes the per-user cart over HTTP.
type CartHandler struct {
	Service cart.CartService
}

func NewCartHandler(svc cart.CartService) *CartHandler {
	return &CartHandler{Service: svc}
}

// GetCartHandler returns the authenticated user's cart lines.
func (h *CartHandler) GetCartHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	lines, err := h.Service.Get(c.Request.Context(), userID)
	if err != nil {
		utils.GetLogger().Error("Failed to load cart", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": lines})
}

// AddToCartHandler validates and stores a new cart line.
func (h *CartHandler) AddToCartHandler(c *gin.Context) {
	logger := utils.GetLogger()

	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var line models.CartLine
	if err := c.ShouldBindJSON(&line); err != nil {
		logger.Error("Invalid add-to-cart request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	stored, err := h.Service.Add(c.Request.Context(), userID, line)
	if err != nil {
		var precond *cart.PreconditionError
		if errors.As(err, &precond) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart line", "message": precond.Message})
			return
		}
		if errors.Is(err, cart.ErrNotAuthenticated) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to add cart line", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to cart", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": stored})
}

// UpdateCartQuantityHandler sets a line's quantity; zero removes the line.
func (h *CartHandler) UpdateCartQuantityHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	lineID := c.Param("id")

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	err := h.Service.UpdateQuantity(c.Request.Context(), userID, lineID, body.Quantity)
	if err != nil {
		if errors.Is(err, cart.ErrLineNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart line not found"})
			return
		}
		utils.GetLogger().Error("Failed to update cart quantity",
			zap.String("userID", userID), zap.String("lineID", lineID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update quantity", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quantity updated"})
}

// RemoveFromCartHandler deletes a line; removing an absent line succeeds.
func (h *CartHandler) RemoveFromCartHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	lineID := c.Param("id")

	if err := h.Service.Remove(c.Request.Context(), userID, lineID); err != nil {
		utils.GetLogger().Error("Failed to remove cart line",
			zap.String("userID", userID), zap.String("lineID", lineID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove from cart", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Line removed"})
}

// ClearCartHandler erases the user's cart.
func (h *CartHandler) ClearCartHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.Service.Clear(c.Request.Context(), userID); err != nil {
		utils.GetLogger().Error("Failed to clear cart", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
