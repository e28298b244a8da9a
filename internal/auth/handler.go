package auth

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/hassannetsec/doctors-friend/internal/registration"
	"github.com/hassannetsec/doctors-friend/pkg/logging"
)

// Handler serves sign-up and sign-in. Successful sign-ins are captured
// as records in the signins collection, which keeps the prototype's
// append-only audit log behavior.
type Handler struct {
	store   *CredentialStore
	gateway *registration.Gateway
	logger  *logging.Logger

	secret        string
	ttl           time.Duration
	adminEmail    string
	adminPassword string
}

// HandlerConfig wires the auth handler.
type HandlerConfig struct {
	Store         *CredentialStore
	Gateway       *registration.Gateway
	Secret        string
	TTL           time.Duration
	AdminEmail    string
	AdminPassword string
	Logger        *logging.Logger
}

// NewHandler creates a new auth handler
func NewHandler(cfg HandlerConfig) *Handler {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	return &Handler{
		store:         cfg.Store,
		gateway:       cfg.Gateway,
		logger:        cfg.Logger,
		secret:        cfg.Secret,
		ttl:           cfg.TTL,
		adminEmail:    cfg.AdminEmail,
		adminPassword: cfg.AdminPassword,
	}
}

type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	Admin   bool   `json:"admin,omitempty"`
}

// SignUp handles POST /auth/signup requests
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}

	account, err := h.store.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrAccountExists):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			h.logger.Error("sign-up failed", "error", err)
			http.Error(w, "could not create account", http.StatusInternalServerError)
		}
		return
	}

	h.logger.Info("account created", "email", account.Email)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"message": "Account created successfully"})
}

// SignIn handles POST /auth/signin requests
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}

	if h.isAdmin(req.Email, req.Password) {
		token, err := MakeToken(req.Email, true, h.secret, h.ttl)
		if err != nil {
			h.logger.Error("admin token issue failed", "error", err)
			http.Error(w, "could not issue session", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sessionResponse{Message: "Signed in successfully", Token: token, Admin: true})
		return
	}

	account, err := h.store.Verify(r.Context(), req.Email, req.Password)
	if err != nil {
		http.Error(w, ErrInvalidCredentials.Error(), http.StatusUnauthorized)
		return
	}

	// Capture the sign-in event. A lost audit record is a failed
	// sign-in here, matching the prototype's behavior.
	record := registration.SignInRecord{
		Email:          account.Email,
		PasswordDigest: account.PasswordDigest,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	}
	raw, err := json.Marshal(record)
	if err == nil {
		_, err = h.gateway.Submit(r.Context(), registration.CollectionSignIns, raw)
	}
	if err != nil {
		h.logger.Error("sign-in capture failed", "email", account.Email, "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{
			"message": "Error saving data",
			"error":   err.Error(),
		})
		return
	}

	token, err := MakeToken(account.Email, false, h.secret, h.ttl)
	if err != nil {
		h.logger.Error("token issue failed", "error", err)
		http.Error(w, "could not issue session", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sessionResponse{Message: "Signed in successfully", Token: token})
}

func (h *Handler) isAdmin(email, password string) bool {
	if h.adminEmail == "" || h.adminPassword == "" {
		return false
	}
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(h.adminEmail)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(h.adminPassword)) == 1
	return emailOK && passOK
}
