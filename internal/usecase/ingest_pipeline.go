package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"checkin-service/internal/domain/entity"
	"checkin-service/internal/domain/repository"
	"checkin-service/pkg/clock"
	"checkin-service/pkg/logger"
	"checkin-service/pkg/metrics"
	"checkin-service/pkg/parser"
)

// IngestInput identifies the reservation to ingest.
type IngestInput struct {
	LastName           string
	FirstName          string
	ConfirmationNumber string
}

// IngestPipeline orchestrates reservation ingestion: retrieve from the
// airline, classify the response, parse the payload into entities,
// persist the aggregate atomically, then schedule check-ins and notify.
type IngestPipeline struct {
	retrievalClient repository.RetrievalClient
	archive         repository.RetrievalArchive
	reservationRepo repository.ReservationRepository
	scheduler       *CheckinScheduler
	notifier        repository.NotificationRepository
	validator       *AggregateValidator
	parser          *parser.PayloadParser
	clock           clock.Clock
	logger          logger.Logger
	metrics         *metrics.Metrics
}

// NewIngestPipeline creates a new ingestion pipeline
func NewIngestPipeline(
	retrievalClient repository.RetrievalClient,
	archive repository.RetrievalArchive,
	reservationRepo repository.ReservationRepository,
	scheduler *CheckinScheduler,
	notifier repository.NotificationRepository,
	validator *AggregateValidator,
	parser *parser.PayloadParser,
	clk clock.Clock,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *IngestPipeline {
	return &IngestPipeline{
		retrievalClient: retrievalClient,
		archive:         archive,
		reservationRepo: reservationRepo,
		scheduler:       scheduler,
		notifier:        notifier,
		validator:       validator,
		parser:          parser,
		clock:           clk,
		logger:          logger,
		metrics:         metrics,
	}
}

// Ingest runs the full pipeline for one reservation. On any rejection it
// returns an *entity.IngestError and leaves no persisted entities behind.
func (p *IngestPipeline) Ingest(ctx context.Context, in IngestInput) (*entity.Reservation, error) {
	started := time.Now()

	confirmationNumber := strings.ToUpper(strings.TrimSpace(in.ConfirmationNumber))
	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)

	log := p.logger.With("confirmationNumber", confirmationNumber)
	log.Info("Starting reservation ingestion")

	// The retrieval call happens exactly once per attempt; its result is
	// passed explicitly through classification and parsing.
	retrieved, err := p.retrievalClient.Retrieve(ctx, lastName, firstName, confirmationNumber)
	if err != nil {
		log.Error("Airline retrieval unavailable", "error", err)
		return nil, p.reject(entity.NewTransportFailure(err))
	}

	p.archiveAttempt(ctx, confirmationNumber, firstName, lastName, retrieved)

	if ingestErr := classifyRetrieval(retrieved); ingestErr != nil {
		log.Info("Retrieval rejected by airline", "kind", ingestErr.Kind, "message", retrieved.ErrorMessage())
		return nil, p.reject(ingestErr)
	}

	// Accepted by retrieval, but the check-in executor cannot handle
	// international itineraries.
	if retrieved.IsInternational() {
		log.Info("Rejecting international itinerary")
		return nil, p.reject(entity.NewUnsupportedItinerary())
	}

	passengers, err := p.parser.Passengers(retrieved.Body)
	if err != nil {
		log.Error("Accepted payload could not be parsed", "section", "passengers", "error", err)
		return nil, p.reject(entity.NewMalformedPayload(err))
	}

	flights, err := p.parser.Flights(retrieved.Body)
	if err != nil {
		log.Error("Accepted payload could not be parsed", "section", "flights", "error", err)
		return nil, p.reject(entity.NewMalformedPayload(err))
	}

	reservation := &entity.Reservation{
		ConfirmationNumber: confirmationNumber,
		FirstName:          firstName,
		LastName:           lastName,
		Payload:            retrieved.Document(),
		ArrivalCityName:    retrieved.ArrivalCityName(),
		Passengers:         passengers,
		Flights:            flights,
	}

	if ingestErr := p.validator.Validate(reservation); ingestErr != nil {
		log.Error("Assembled aggregate failed validation", "error", ingestErr)
		return nil, p.reject(ingestErr)
	}

	// The whole aggregate commits or none of it does.
	if err := p.reservationRepo.Create(ctx, reservation); err != nil {
		if errors.Is(err, repository.ErrDuplicateReservation) {
			log.Info("Reservation already ingested")
			return nil, p.reject(entity.NewValidationFailure(
				[]entity.FieldError{{Field: "confirmation_number", Message: "is already being watched"}},
				err,
			))
		}
		log.Error("Failed to persist reservation aggregate", "error", err)
		return nil, err
	}

	log.Info("Reservation ingested",
		"passengers", len(reservation.Passengers),
		"flights", len(reservation.Flights))

	// Post-commit side effects, each exactly once, only after the
	// aggregate is durably stored.
	p.scheduler.Schedule(ctx, reservation)

	if err := p.notifier.ReservationCreated(ctx, reservation); err != nil {
		// Best-effort only.
		log.Warn("Failed to send reservation email", "error", err)
	}

	if p.metrics != nil {
		p.metrics.ReservationsIngested.Inc()
		p.metrics.IngestDuration.Observe(time.Since(started).Seconds())
	}

	return reservation, nil
}

func (p *IngestPipeline) reject(ingestErr *entity.IngestError) *entity.IngestError {
	if p.metrics != nil {
		p.metrics.IngestRejections.WithLabelValues(string(ingestErr.Kind)).Inc()
	}
	return ingestErr
}

func (p *IngestPipeline) archiveAttempt(ctx context.Context, confirmationNumber, firstName, lastName string, retrieved *entity.RetrievedReservation) {
	record := &entity.RetrievalRecord{
		ConfirmationNumber: confirmationNumber,
		FirstName:          firstName,
		LastName:           lastName,
		Outcome:            retrievalOutcome(retrieved),
		ErrorMessage:       retrieved.ErrorMessage(),
		Document:           retrieved.Document(),
		RetrievedAt:        p.clock.Now(),
	}

	if err := p.archive.Save(ctx, record); err != nil {
		// The archive is observability, not state; never fail ingestion
		// over it.
		p.logger.Warn("Failed to archive retrieval attempt",
			"confirmationNumber", confirmationNumber,
			"error", err)
	}
}
