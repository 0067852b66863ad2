package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"masarra/config"
	"masarra/models"
	"masarra/utils"

	"go.uber.org/zap"
)

// DefaultClient implements Client over HTTP.
type DefaultClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient builds a client from AppConfig.
func NewClient() *DefaultClient {
	return &DefaultClient{
		BaseURL: config.AppConfig.UpstreamBaseURL,
		HTTPClient: &http.Client{
			Timeout: time.Duration(config.AppConfig.UpstreamTimeoutSec) * time.Second,
		},
	}
}

// AvailableTimeslots calls GET /bookings/available-timeslots.
func (c *DefaultClient) AvailableTimeslots(ctx context.Context, serviceID, vendorID, date string) (models.AvailableTimeslotsResponse, error) {
	var out models.AvailableTimeslotsResponse

	q := url.Values{}
	q.Set("serviceId", serviceID)
	if vendorID != "" {
		q.Set("vendorId", vendorID)
	}
	q.Set("date", date)
	endpoint := fmt.Sprintf("%s/bookings/available-timeslots?%s", c.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return out, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, fmt.Errorf("available-timeslots returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("failed to decode available-timeslots response: %w", err)
	}
	return out, nil
}

// CreateBooking calls POST /bookings with the Idempotency-Key header set.
func (c *DefaultClient) CreateBooking(ctx context.Context, token string, booking models.BookingRequest, idempotencyKey string) (*models.UpstreamBooking, error) {
	logger := utils.GetLogger()

	payload, err := json.Marshal(booking)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal booking request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/bookings", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errPayload struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if err := json.Unmarshal(body, &errPayload); err == nil {
			if errPayload.Message != "" {
				return nil, fmt.Errorf("booking rejected: %s", errPayload.Message)
			}
			if errPayload.Error != "" {
				return nil, fmt.Errorf("booking rejected: %s", errPayload.Error)
			}
		}
		logger.Warn("Booking creation failed upstream",
			zap.Int("status", resp.StatusCode),
			zap.String("idempotencyKey", idempotencyKey))
		return nil, fmt.Errorf("booking creation returned status %d", resp.StatusCode)
	}

	var created models.UpstreamBooking
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("failed to decode booking response: %w", err)
	}
	return &created, nil
}
