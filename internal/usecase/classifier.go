package usecase

import "checkin-service/internal/domain/entity"

// classifyRetrieval maps an airline retrieval response to the rejection
// it represents. A nil result means the response is accepted; acceptance
// does not imply the reservation is usable, international itineraries are
// gated separately downstream.
func classifyRetrieval(retrieved *entity.RetrievedReservation) *entity.IngestError {
	if !retrieved.IsError() {
		return nil
	}
	if retrieved.IsEnteredIncorrectly() {
		return entity.NewInvalidCredentials()
	}
	if retrieved.IsCancelled() {
		return entity.NewCancelled()
	}
	return entity.NewRejectedOther(retrieved.ErrorMessage())
}

// retrievalOutcome names the archive outcome for a response.
func retrievalOutcome(retrieved *entity.RetrievedReservation) string {
	switch {
	case !retrieved.IsError():
		return entity.RetrievalOutcomeAccepted
	case retrieved.IsEnteredIncorrectly():
		return entity.RetrievalOutcomeBadCredential
	case retrieved.IsCancelled():
		return entity.RetrievalOutcomeCancelled
	default:
		return entity.RetrievalOutcomeError
	}
}
