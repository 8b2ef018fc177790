package repository

import (
	"context"

	"checkin-service/internal/domain/entity"
)

// RetrievalClient defines the interface to the airline's reservation
// retrieval endpoint. A non-nil error means the call itself failed
// (network, timeout); airline-side rejections come back as a response.
type RetrievalClient interface {
	Retrieve(ctx context.Context, lastName, firstName, confirmationNumber string) (*entity.RetrievedReservation, error)
}

// RetrievalArchive defines the interface for the raw retrieval attempt
// archive.
type RetrievalArchive interface {
	Save(ctx context.Context, record *entity.RetrievalRecord) error
	FindByConfirmationNumber(ctx context.Context, confirmationNumber string, limit int) ([]*entity.RetrievalRecord, error)
}
