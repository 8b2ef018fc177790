package southwest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"checkin-service/internal/domain/entity"
	"checkin-service/internal/domain/repository"
	"checkin-service/pkg/logger"
)

// Client retrieves reservations from the airline's mobile middleware.
type Client struct {
	logger     logger.Logger
	baseURL    string
	appVersion string
	httpClient *http.Client
}

// NewClient creates a new airline retrieval client
func NewClient(baseURL, appVersion string, timeout time.Duration, logger logger.Logger) repository.RetrievalClient {
	return &Client{
		logger:     logger,
		baseURL:    baseURL,
		appVersion: appVersion,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Retrieve looks up a reservation by traveler name and confirmation
// number. The error return covers the call itself; airline-side
// rejections come back inside the response document.
func (c *Client) Retrieve(ctx context.Context, lastName, firstName, confirmationNumber string) (*entity.RetrievedReservation, error) {
	form := url.Values{
		"serviceID":     {"viewReservation"},
		"recordLocator": {confirmationNumber},
		"firstName":     {firstName},
		"lastName":      {lastName},
		"appVersion":    {c.appVersion},
		"channel":       {"rc"},
		"platform":      {"thirdparty"},
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create retrieve request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	c.logger.Info("Retrieving reservation from airline",
		"confirmationNumber", confirmationNumber,
		"lastName", lastName)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("airline retrieval call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("airline returned status %d", resp.StatusCode)
	}

	var retrieved entity.RetrievedReservation
	if err := json.NewDecoder(resp.Body).Decode(&retrieved); err != nil {
		return nil, fmt.Errorf("failed to decode airline response: %w", err)
	}

	c.logger.Info("Reservation retrieved",
		"confirmationNumber", confirmationNumber,
		"isError", retrieved.IsError())

	return &retrieved, nil
}
