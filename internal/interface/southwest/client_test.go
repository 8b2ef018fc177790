package southwest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"checkin-service/pkg/logger"
)

func TestRetrieve(t *testing.T) {
	t.Parallel()

	var gotForm map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("failed to parse form: %v", err)
		}
		gotForm = map[string]string{
			"serviceID":     r.PostFormValue("serviceID"),
			"recordLocator": r.PostFormValue("recordLocator"),
			"firstName":     r.PostFormValue("firstName"),
			"lastName":      r.PostFormValue("lastName"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"httpStatusCode": 200,
			"opstatus": 0,
			"errmsg": "",
			"body": {"isInternationalPNR": "false", "arrivalCityName": "Houston"}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "2.0", 5*time.Second, logger.NewNop())
	retrieved, err := client.Retrieve(context.Background(), "Smith", "John", "AB12CD")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if gotForm["serviceID"] != "viewReservation" {
		t.Fatalf("unexpected serviceID %q", gotForm["serviceID"])
	}
	if gotForm["recordLocator"] != "AB12CD" || gotForm["firstName"] != "John" || gotForm["lastName"] != "Smith" {
		t.Fatalf("unexpected lookup fields %v", gotForm)
	}

	if retrieved.IsError() {
		t.Fatalf("expected an accepted response")
	}
	if retrieved.ArrivalCityName() != "Houston" {
		t.Fatalf("unexpected arrival city %q", retrieved.ArrivalCityName())
	}
}

func TestRetrieve_AirlineRejection(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"httpStatusCode": 200, "opstatus": 1, "errmsg": "We are unable to locate a reservation with this information."}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "2.0", 5*time.Second, logger.NewNop())
	retrieved, err := client.Retrieve(context.Background(), "Smith", "John", "AB12CD")
	if err != nil {
		t.Fatalf("airline-side rejections should not be transport errors, got %v", err)
	}
	if !retrieved.IsEnteredIncorrectly() {
		t.Fatalf("expected an entered-incorrectly response")
	}
}

func TestRetrieve_BadStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "2.0", 5*time.Second, logger.NewNop())
	if _, err := client.Retrieve(context.Background(), "Smith", "John", "AB12CD"); err == nil {
		t.Fatalf("expected an error for a non-200 status")
	}
}

func TestRetrieve_TransportFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "2.0", time.Second, logger.NewNop())
	if _, err := client.Retrieve(context.Background(), "Smith", "John", "AB12CD"); err == nil {
		t.Fatalf("expected an error when the airline is unreachable")
	}
}

func TestRetrieve_MalformedBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>maintenance</html>"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "2.0", 5*time.Second, logger.NewNop())
	if _, err := client.Retrieve(context.Background(), "Smith", "John", "AB12CD"); err == nil {
		t.Fatalf("expected an error for a non-JSON body")
	}
}
