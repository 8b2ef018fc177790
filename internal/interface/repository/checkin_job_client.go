package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"checkin-service/internal/domain/entity"
	"checkin-service/internal/domain/repository"
	"checkin-service/pkg/logger"
)

// HTTPCheckinJobClient hands deferred check-in jobs to the check-in
// worker service. The worker computes the exact fire time from the
// departure time and the lead-time policy it is given.
type HTTPCheckinJobClient struct {
	logger      logger.Logger
	baseURL     string
	bearerToken string
	leadTime    time.Duration
	httpClient  *http.Client
}

// NewHTTPCheckinJobClient creates a new check-in job client
func NewHTTPCheckinJobClient(baseURL, bearerToken string, leadTime time.Duration, logger logger.Logger) repository.CheckinJobClient {
	return &HTTPCheckinJobClient{
		logger:      logger,
		baseURL:     baseURL,
		bearerToken: bearerToken,
		leadTime:    leadTime,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

type scheduleCheckinRequest struct {
	FlightID           string `json:"flightId"`
	ConfirmationNumber string `json:"confirmationNumber"`
	FirstName          string `json:"firstName"`
	LastName           string `json:"lastName"`
	FlightNumber       string `json:"flightNumber"`
	DepartureTime      string `json:"departureTime"`
	LeadTimeSeconds    int64  `json:"leadTimeSeconds"`
}

// ScheduleCheckin requests deferred execution of the check-in for a
// flight and returns the worker's task ID.
func (c *HTTPCheckinJobClient) ScheduleCheckin(ctx context.Context, flight *entity.Flight, confirmationNumber, firstName, lastName string) (string, error) {
	body := scheduleCheckinRequest{
		FlightID:           flight.ID,
		ConfirmationNumber: confirmationNumber,
		FirstName:          firstName,
		LastName:           lastName,
		FlightNumber:       flight.FlightNumber,
		DepartureTime:      flight.DepartureTime.UTC().Format(time.RFC3339),
		LeadTimeSeconds:    int64(c.leadTime.Seconds()),
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal schedule request: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/checkins/schedule", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create schedule request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send schedule request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return "", fmt.Errorf("check-in worker returned status %d: %v", resp.StatusCode, errorBody)
	}

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			TaskID     string `json:"taskId"`
			Status     string `json:"status"`
			ScheduleAt string `json:"scheduleAt"`
		} `json:"data"`
		Error struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if !response.Success {
		return "", fmt.Errorf("check-in worker rejected the job: %s (code: %s)", response.Error.Message, response.Error.Code)
	}

	c.logger.Info("Check-in task created",
		"taskId", response.Data.TaskID,
		"flightId", flight.ID,
		"departureTime", body.DepartureTime)

	return response.Data.TaskID, nil
}

// CancelByFlight cancels every pending check-in job tied to a flight.
func (c *HTTPCheckinJobClient) CancelByFlight(ctx context.Context, flightID string) error {
	url := fmt.Sprintf("%s/api/v1/checkins/flights/%s", c.baseURL, flightID)
	req, err := http.NewRequestWithContext(ctx, "DELETE", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create cancel request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.bearerToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send cancel request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("check-in worker returned status %d on cancel", resp.StatusCode)
	}

	c.logger.Info("Check-in tasks cancelled", "flightId", flightID)
	return nil
}
