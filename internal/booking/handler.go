package booking

import (
	"encoding/json"
	"net/http"

	"github.com/hassannetsec/doctors-friend/pkg/logging"
)

// Handler handles the appointment notification endpoint
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a new booking handler
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

type confirmResponse struct {
	Success     bool    `json:"success"`
	Message     string  `json:"message"`
	RecordSaved bool    `json:"recordSaved"`
	Receipt     Receipt `json:"receipt"`
}

// Confirm handles POST /appointment-notifications requests
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result := h.service.Confirm(r.Context(), req)

	w.Header().Set("Content-Type", "application/json")
	if result.EmailErr != nil {
		// The record may well have been saved; the caller learns both
		// outcomes, but a failed notification is still a failed request.
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(confirmResponse{
			Success:     false,
			Message:     "Failed to send email or save info.",
			RecordSaved: result.RecordSaved,
			Receipt:     result.Receipt,
		})
		return
	}

	message := "Email sent and patient/doctor info saved successfully."
	if !result.RecordSaved {
		message = "Email sent, but saving patient/doctor info failed."
	}
	json.NewEncoder(w).Encode(confirmResponse{
		Success:     true,
		Message:     message,
		RecordSaved: result.RecordSaved,
		Receipt:     result.Receipt,
	})
}
