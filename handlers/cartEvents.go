package handlers

import (
	"context"
	"net/http"
	"time"

	"masarra/services/cart"
	"masarra/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser websocket clients cannot set an Origin we control; CORS policy
	// is already wide open for the REST surface.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const writeTimeout = 10 * time.Second

// CartEventsHandler pushes the refreshed cart to connected clients whenever
// the cart mutates, so UI components re-render without polling.
type CartEventsHandler struct {
	Service cart.CartService
}

func NewCartEventsHandler(svc cart.CartService) *CartEventsHandler {
	return &CartEventsHandler{Service: svc}
}

// CartEventsWSHandler upgrades the connection and streams cart snapshots.
// Authentication uses a query parameter since websocket clients cannot set
// headers: GET /api/cart/events?token=JWT.
func (h *CartEventsHandler) CartEventsWSHandler(c *gin.Context) {
	logger := utils.GetLogger()

	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is required"})
		return
	}
	userID, err := utils.ExtractUserIDFromToken(token)
	if err != nil || userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("Failed to upgrade cart events connection", zap.Error(err))
		return
	}
	defer conn.Close()

	// Coalescing signal channel: the bus listener must never block a cart
	// mutation, so a pending signal is enough to trigger one refresh.
	events := make(chan struct{}, 1)
	unsubscribe := h.Service.Subscribe(func(changedUserID string) {
		if changedUserID != userID {
			return
		}
		select {
		case events <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// Initial snapshot so a freshly connected client starts in sync.
	if err := h.pushSnapshot(c.Request.Context(), conn, userID); err != nil {
		return
	}

	for {
		select {
		case <-done:
			return
		case <-events:
			if err := h.pushSnapshot(c.Request.Context(), conn, userID); err != nil {
				logger.Debug("Cart events connection closed",
					zap.String("userID", userID), zap.Error(err))
				return
			}
		}
	}
}

func (h *CartEventsHandler) pushSnapshot(ctx context.Context, conn *websocket.Conn, userID string) error {
	lines, err := h.Service.Get(ctx, userID)
	if err != nil {
		utils.GetLogger().Warn("Failed to load cart for events push",
			zap.String("userID", userID), zap.Error(err))
		return nil
	}
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(gin.H{"type": "cart", "items": lines})
}
