package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"checkin-service/internal/domain/entity"
	"checkin-service/pkg/logger"
)

func testFlight() *entity.Flight {
	return &entity.Flight{
		ID:            "f1",
		Direction:     entity.DirectionDeparture,
		Position:      1,
		FlightNumber:  "100",
		DepartureTime: time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestScheduleCheckin(t *testing.T) {
	t.Parallel()

	var gotAuth string
	var gotBody scheduleCheckinRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/v1/checkins/schedule" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"success": true, "data": {"taskId": "task-42", "status": "scheduled", "scheduleAt": "2025-03-31T08:00:00Z"}}`))
	}))
	defer server.Close()

	client := NewHTTPCheckinJobClient(server.URL, "secret-token", 24*time.Hour, logger.NewNop())
	taskID, err := client.ScheduleCheckin(context.Background(), testFlight(), "AB12CD", "John", "Smith")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if taskID != "task-42" {
		t.Fatalf("unexpected task id %q", taskID)
	}
	if gotAuth != "Bearer secret-token" {
		t.Fatalf("unexpected authorization header %q", gotAuth)
	}
	if gotBody.FlightID != "f1" || gotBody.ConfirmationNumber != "AB12CD" {
		t.Fatalf("unexpected job body %+v", gotBody)
	}
	if gotBody.DepartureTime != "2025-04-01T08:00:00Z" {
		t.Fatalf("unexpected departure time %q", gotBody.DepartureTime)
	}
	if gotBody.LeadTimeSeconds != 86400 {
		t.Fatalf("unexpected lead time %d", gotBody.LeadTimeSeconds)
	}
}

func TestScheduleCheckin_WorkerRejection(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": false, "error": {"message": "departure already passed", "code": "PAST_DEPARTURE"}}`))
	}))
	defer server.Close()

	client := NewHTTPCheckinJobClient(server.URL, "secret-token", 24*time.Hour, logger.NewNop())
	if _, err := client.ScheduleCheckin(context.Background(), testFlight(), "AB12CD", "John", "Smith"); err == nil {
		t.Fatalf("expected an error for a rejected job")
	}
}

func TestScheduleCheckin_BadStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewHTTPCheckinJobClient(server.URL, "secret-token", 24*time.Hour, logger.NewNop())
	if _, err := client.ScheduleCheckin(context.Background(), testFlight(), "AB12CD", "John", "Smith"); err == nil {
		t.Fatalf("expected an error for a non-2xx status")
	}
}

func TestCancelByFlight(t *testing.T) {
	t.Parallel()

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "DELETE" {
			t.Errorf("unexpected method %s", r.Method)
		}
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewHTTPCheckinJobClient(server.URL, "secret-token", 24*time.Hour, logger.NewNop())
	if err := client.CancelByFlight(context.Background(), "f1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotPath != "/api/v1/checkins/flights/f1" {
		t.Fatalf("unexpected path %q", gotPath)
	}
}

func TestCancelByFlight_BadStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewHTTPCheckinJobClient(server.URL, "secret-token", 24*time.Hour, logger.NewNop())
	if err := client.CancelByFlight(context.Background(), "f1"); err == nil {
		t.Fatalf("expected an error for a failed cancel")
	}
}
