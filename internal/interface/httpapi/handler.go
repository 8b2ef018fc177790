package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"checkin-service/internal/domain/entity"
	"checkin-service/internal/domain/repository"
	"checkin-service/internal/usecase"
	"checkin-service/pkg/logger"
)

// Handler exposes the ingestion pipeline and reservation queries over
// HTTP.
type Handler struct {
	pipeline     *usecase.IngestPipeline
	reservations *usecase.ReservationService
	logger       logger.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(pipeline *usecase.IngestPipeline, reservations *usecase.ReservationService, logger logger.Logger) *Handler {
	return &Handler{
		pipeline:     pipeline,
		reservations: reservations,
		logger:       logger,
	}
}

// Register mounts the API routes on the mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/reservations", h.ingest)
	mux.HandleFunc("GET /api/v1/reservations", h.list)
	mux.HandleFunc("GET /api/v1/reservations/{confirmationNumber}", h.get)
	mux.HandleFunc("DELETE /api/v1/reservations/{confirmationNumber}", h.delete)
}

type ingestRequest struct {
	LastName           string `json:"lastName"`
	FirstName          string `json:"firstName"`
	ConfirmationNumber string `json:"confirmationNumber"`
}

type errorResponse struct {
	Base   []string            `json:"base,omitempty"`
	Fields []entity.FieldError `json:"fields,omitempty"`
}

func (h *Handler) ingest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Base: []string{"invalid request body"}})
		return
	}

	reservation, err := h.pipeline.Ingest(r.Context(), usecase.IngestInput{
		LastName:           req.LastName,
		FirstName:          req.FirstName,
		ConfirmationNumber: req.ConfirmationNumber,
	})
	if err != nil {
		h.writeIngestError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toReservationResponse(reservation))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.reservations.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list reservations", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Base: []string{"internal error"}})
		return
	}

	out := make([]reservationResponse, 0, len(reservations))
	for _, reservation := range reservations {
		out = append(out, toReservationResponse(reservation))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	reservation, err := h.reservations.Get(r.Context(), r.PathValue("confirmationNumber"))
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Base: []string{"reservation not found"}})
			return
		}
		h.logger.Error("Failed to load reservation", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Base: []string{"internal error"}})
		return
	}

	writeJSON(w, http.StatusOK, toReservationResponse(reservation))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	err := h.reservations.Delete(r.Context(), r.PathValue("confirmationNumber"))
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Base: []string{"reservation not found"}})
			return
		}
		h.logger.Error("Failed to delete reservation", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Base: []string{"internal error"}})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeIngestError(w http.ResponseWriter, err error) {
	ingestErr, ok := entity.AsIngestError(err)
	if !ok {
		h.logger.Error("Ingestion failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Base: []string{"internal error"}})
		return
	}

	status := http.StatusUnprocessableEntity
	switch ingestErr.Kind {
	case entity.KindTransportFailure:
		status = http.StatusServiceUnavailable
	case entity.KindMalformedPayload:
		status = http.StatusBadGateway
	}

	writeJSON(w, status, errorResponse{Base: ingestErr.Base, Fields: ingestErr.Fields})
}

type reservationResponse struct {
	ID                 string           `json:"id"`
	ConfirmationNumber string           `json:"confirmationNumber"`
	FirstName          string           `json:"firstName"`
	LastName           string           `json:"lastName"`
	ArrivalCityName    string           `json:"arrivalCityName"`
	Passengers         int              `json:"passengers"`
	Flights            []flightResponse `json:"flights"`
}

type flightResponse struct {
	ID            string `json:"id"`
	Direction     string `json:"direction"`
	Position      int    `json:"position"`
	FlightNumber  string `json:"flightNumber"`
	DepartureTime string `json:"departureTime"`
	Scheduled     bool   `json:"scheduled"`
}

func toReservationResponse(reservation *entity.Reservation) reservationResponse {
	out := reservationResponse{
		ID:                 reservation.ID,
		ConfirmationNumber: reservation.ConfirmationNumber,
		FirstName:          reservation.FirstName,
		LastName:           reservation.LastName,
		ArrivalCityName:    reservation.ArrivalCityName,
		Passengers:         len(reservation.Passengers),
		Flights:            make([]flightResponse, 0, len(reservation.Flights)),
	}
	for i := range reservation.Flights {
		flight := &reservation.Flights[i]
		out.Flights = append(out.Flights, flightResponse{
			ID:            flight.ID,
			Direction:     string(flight.Direction),
			Position:      flight.Position,
			FlightNumber:  flight.FlightNumber,
			DepartureTime: flight.DepartureTime.UTC().Format(time.RFC3339),
			Scheduled:     flight.Scheduled(),
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
