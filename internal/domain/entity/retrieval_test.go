package entity

import "testing"

func TestRetrievedReservation_Classification(t *testing.T) {
	t.Parallel()

	t.Run("accepted", func(t *testing.T) {
		resp := &RetrievedReservation{
			HTTPStatusCode: 200,
			Body:           map[string]interface{}{"arrivalCityName": "Houston"},
		}
		if resp.IsError() {
			t.Fatalf("expected an empty errmsg to be accepted")
		}
		if resp.ArrivalCityName() != "Houston" {
			t.Fatalf("unexpected arrival city %q", resp.ArrivalCityName())
		}
	})

	t.Run("entered incorrectly", func(t *testing.T) {
		resp := &RetrievedReservation{
			Errmsg: "We are unable to locate a reservation with the information provided.",
		}
		if !resp.IsError() || !resp.IsEnteredIncorrectly() {
			t.Fatalf("expected an entered-incorrectly classification")
		}
		if resp.IsCancelled() {
			t.Fatalf("did not expect a cancelled classification")
		}
	})

	t.Run("cancelled, case insensitive", func(t *testing.T) {
		resp := &RetrievedReservation{
			Errmsg: "This Reservation Has Been Cancelled.",
		}
		if !resp.IsCancelled() {
			t.Fatalf("expected a cancelled classification")
		}
	})

	t.Run("other error", func(t *testing.T) {
		resp := &RetrievedReservation{Errmsg: "Service temporarily unavailable."}
		if !resp.IsError() || resp.IsCancelled() || resp.IsEnteredIncorrectly() {
			t.Fatalf("expected a plain error classification")
		}
		if resp.ErrorMessage() != "Service temporarily unavailable." {
			t.Fatalf("unexpected message %q", resp.ErrorMessage())
		}
	})
}

func TestRetrievedReservation_International(t *testing.T) {
	t.Parallel()

	intl := &RetrievedReservation{Body: map[string]interface{}{"isInternationalPNR": "true"}}
	if !intl.IsInternational() {
		t.Fatalf("expected an international itinerary")
	}

	domestic := &RetrievedReservation{Body: map[string]interface{}{"isInternationalPNR": "false"}}
	if domestic.IsInternational() {
		t.Fatalf("expected a domestic itinerary")
	}

	missing := &RetrievedReservation{}
	if missing.IsInternational() {
		t.Fatalf("expected a missing flag to mean domestic")
	}
}

func TestRetrievedReservation_Document(t *testing.T) {
	t.Parallel()

	resp := &RetrievedReservation{
		HTTPStatusCode: 200,
		Opstatus:       0,
		Body:           map[string]interface{}{"isInternationalPNR": "false"},
	}

	doc := resp.Document()
	if doc["httpStatusCode"] != 200 {
		t.Fatalf("expected the status code to carry over, got %v", doc["httpStatusCode"])
	}
	body, ok := doc["body"].(map[string]interface{})
	if !ok || body["isInternationalPNR"] != "false" {
		t.Fatalf("expected the body to carry over, got %v", doc["body"])
	}

	if _, ok := (&RetrievedReservation{}).Document()["body"]; ok {
		t.Fatalf("expected no body key when the response had none")
	}
}
