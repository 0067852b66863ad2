package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"masarra/middleware"
	"masarra/models"
	"masarra/services/cart"
	"masarra/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCartService struct {
	lines   map[string][]models.CartLine
	addErr  error
	cleared []string
}

func newFakeCartService() *fakeCartService {
	return &fakeCartService{lines: make(map[string][]models.CartLine)}
}

func (f *fakeCartService) Get(ctx context.Context, userID string) ([]models.CartLine, error) {
	return f.lines[userID], nil
}

func (f *fakeCartService) Add(ctx context.Context, userID string, line models.CartLine) (models.CartLine, error) {
	if f.addErr != nil {
		return models.CartLine{}, f.addErr
	}
	line.ID = "line-1"
	f.lines[userID] = append(f.lines[userID], line)
	return line, nil
}

func (f *fakeCartService) Remove(ctx context.Context, userID, lineID string) error { return nil }

func (f *fakeCartService) UpdateQuantity(ctx context.Context, userID, lineID string, quantity int) error {
	return nil
}

func (f *fakeCartService) Clear(ctx context.Context, userID string) error {
	f.cleared = append(f.cleared, userID)
	return nil
}

func (f *fakeCartService) Subscribe(fn func(userID string)) func() { return func() {} }

func (f *fakeCartService) SweepPast(ctx context.Context, now time.Time) error { return nil }

func newCartRouter(svc cart.CartService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/cart")
	api.Use(middleware.JWTAuthUserMiddleware())
	handler := NewCartHandler(svc)
	api.GET("", handler.GetCartHandler)
	api.POST("", handler.AddToCartHandler)
	return r
}

func bearerFor(t *testing.T, userID string) string {
	t.Helper()
	token, err := utils.GenerateToken(userID, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestGetCart_RequiresAuthorization(t *testing.T) {
	router := newCartRouter(newFakeCartService())

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetCart_ReturnsUserLines(t *testing.T) {
	svc := newFakeCartService()
	svc.lines["user-a"] = []models.CartLine{{ID: "line-1", ServiceID: "svc-1", Quantity: 2}}
	router := newCartRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", bearerFor(t, "user-a"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Items []models.CartLine `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "svc-1", body.Items[0].ServiceID)
}

func TestAddToCart_PreconditionFailureIsBadRequest(t *testing.T) {
	svc := newFakeCartService()
	svc.addErr = &cart.PreconditionError{Field: "timeSlot", Message: "both slot boundaries are required"}
	router := newCartRouter(svc)

	payload, _ := json.Marshal(models.CartLine{ServiceID: "svc-1"})
	req := httptest.NewRequest(http.MethodPost, "/api/cart", bytes.NewReader(payload))
	req.Header.Set("Authorization", bearerFor(t, "user-a"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddToCart_StoresLine(t *testing.T) {
	svc := newFakeCartService()
	router := newCartRouter(svc)

	line := models.CartLine{
		ServiceID:    "svc-1",
		SelectedDate: "2030-06-15",
		SelectedTime: "11:00 - 13:00",
		Quantity:     1,
	}
	payload, _ := json.Marshal(line)
	req := httptest.NewRequest(http.MethodPost, "/api/cart", bytes.NewReader(payload))
	req.Header.Set("Authorization", bearerFor(t, "user-a"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, svc.lines["user-a"], 1)
}
