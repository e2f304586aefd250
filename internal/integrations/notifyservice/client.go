package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/CWS-ReservationService/internal/domain"
)

// Logger is the logging interface used by the client
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client is the HTTP client for the notification collaborator
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     Logger
}

// NewClient creates a notification service client
func NewClient(baseURL string, timeout time.Duration, logger Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// ReservationEvent publishes a (reservation, event-type, message) tuple.
// Each event carries a fresh UUID so the collaborator can deduplicate.
func (c *Client) ReservationEvent(ctx context.Context, res *domain.Reservation, eventType, message string) error {
	req := EventRequest{
		EventID:   uuid.NewString(),
		EventType: eventType,
		Message:   message,
		Reservation: ReservationPayload{
			ID:            res.ID,
			UserID:        res.UserID,
			WorkstationID: res.WorkstationID,
			StartTime:     res.StartTime,
			EndTime:       res.EndTime,
			Status:        string(res.Status),
		},
		OccurredAt: time.Now(),
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", ErrRequestFailed, err)
	}

	url := c.baseURL + "/api/v1/events"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrRequestFailed, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	c.logger.Info("ReservationEvent: sent %s for reservation id=%d (event=%s)",
		eventType, res.ID, req.EventID)
	return nil
}
