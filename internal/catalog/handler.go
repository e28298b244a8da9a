package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hassannetsec/doctors-friend/pkg/logging"
)

// Handler serves the doctor search endpoints
type Handler struct {
	catalog *Catalog
	logger  *logging.Logger
}

// NewHandler creates a new catalog handler
func NewHandler(c *Catalog, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{catalog: c, logger: logger}
}

// SearchResponse is the response for doctor searches
type SearchResponse struct {
	Doctors []Doctor `json:"doctors"`
	Count   int      `json:"count"`
}

// Search handles GET /doctors?q=&specialty=&sort= requests
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	f := Filter{
		Query:     r.URL.Query().Get("q"),
		Specialty: r.URL.Query().Get("specialty"),
		SortBy:    r.URL.Query().Get("sort"),
	}
	switch f.SortBy {
	case "", SortByRating, SortByFee, SortByExperience:
	default:
		http.Error(w, "sort must be rating, fee or experience", http.StatusBadRequest)
		return
	}

	doctors := h.catalog.Search(f)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SearchResponse{Doctors: doctors, Count: len(doctors)})
}

// Get handles GET /doctors/{id} requests
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid doctor id", http.StatusBadRequest)
		return
	}
	doctor, ok := h.catalog.ByID(id)
	if !ok {
		http.Error(w, "doctor not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(doctor)
}
