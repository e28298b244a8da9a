package registration

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hassannetsec/doctors-friend/pkg/logging"
)

// Handler handles HTTP requests for the registration collections
type Handler struct {
	gateway *Gateway
	logger  *logging.Logger
}

// NewHandler creates a new registration handler
func NewHandler(gateway *Gateway, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{gateway: gateway, logger: logger}
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

type submitResponse struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// List handles GET /registrations/{collection} requests
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")

	recs, err := h.gateway.List(r.Context(), collection)
	if err != nil {
		if errors.Is(err, ErrUnknownCollection) {
			writeJSON(w, http.StatusNotFound, errorResponse{Message: "Unknown collection", Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "Error fetching data", Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// Submit handles POST /registrations/{collection} requests
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil || !json.Valid(body) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Error saving data", Error: "request body must be a JSON object"})
		return
	}

	updated, err := h.gateway.Submit(r.Context(), collection, body)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownCollection):
			writeJSON(w, http.StatusNotFound, errorResponse{Message: "Unknown collection", Error: err.Error()})
		case errors.Is(err, ErrPersistenceFailed):
			writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "Error saving data", Error: err.Error()})
		default:
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Error saving data", Error: err.Error()})
		}
		return
	}

	h.logger.Info("registration accepted", "collection", collection, "total", len(updated))
	writeJSON(w, http.StatusOK, submitResponse{Message: "Data saved successfully", Data: body})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
