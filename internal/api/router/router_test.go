package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hassannetsec/doctors-friend/internal/auth"
	"github.com/hassannetsec/doctors-friend/internal/booking"
	"github.com/hassannetsec/doctors-friend/internal/catalog"
	"github.com/hassannetsec/doctors-friend/internal/notify"
	"github.com/hassannetsec/doctors-friend/internal/records"
	"github.com/hassannetsec/doctors-friend/internal/registration"
	"github.com/hassannetsec/doctors-friend/pkg/logging"
)

type memStore struct {
	docs map[string][]records.Record
}

func (m *memStore) Read(ctx context.Context, collection string) ([]records.Record, string, error) {
	return m.docs[collection], "", nil
}

func (m *memStore) Write(ctx context.Context, collection string, recs []records.Record, version, description string) error {
	if m.docs == nil {
		m.docs = make(map[string][]records.Record)
	}
	m.docs[collection] = recs
	return nil
}

func newTestRouter(t *testing.T) (http.Handler, *memStore) {
	t.Helper()
	logger := logging.Default()
	store := &memStore{}
	gateway := registration.NewGateway(store, nil, logger)

	doctors := []catalog.Doctor{
		{ID: 1, Name: "Dr. Sana Malik", Specialty: "Cardiologist", Hospital: "City Hospital", Location: "Lahore", Rating: 4.7},
	}

	creds := auth.NewCredentialStore(bcrypt.MinCost)
	authHandler := auth.NewHandler(auth.HandlerConfig{
		Store:         creds,
		Gateway:       gateway,
		Secret:        "router-secret",
		TTL:           time.Hour,
		AdminEmail:    "admin@example.com",
		AdminPassword: "admin-pw",
		Logger:        logger,
	})

	service := booking.NewService(gateway, notify.NewStubEmailSender(logger), nil, logger)

	handler := New(&Config{
		Logger:              logger,
		RegistrationHandler: registration.NewHandler(gateway, logger),
		CatalogHandler:      catalog.NewHandler(catalog.New(doctors, logger), logger),
		BookingHandler:      booking.NewHandler(service, logger),
		AuthHandler:         authHandler,
		SessionSecret:       "router-secret",
		CORSAllowedOrigins:  []string{"*"},
	})
	return handler, store
}

func TestRouterHealth(t *testing.T) {
	handler, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"ok"`)
}

func TestRouterRegistrationRoundTrip(t *testing.T) {
	handler, _ := newTestRouter(t)

	body := `{"email":"a@b.com","passwordDigest":"x","timestamp":"2026-08-30T10:00:00Z"}`
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/registrations/signins", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/registrations/signins", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
}

func TestRouterUnknownCollection(t *testing.T) {
	handler, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/registrations/secrets", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterDoctorSearch(t *testing.T) {
	handler, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/doctors?q=sana", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Dr. Sana Malik")

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/doctors/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/doctors/99", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterAdminRequiresToken(t *testing.T) {
	handler, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/registrations/signins", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Sign in as admin, then use the issued token.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/signin",
		strings.NewReader(`{"email":"admin@example.com","password":"admin-pw"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var session struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	require.NotEmpty(t, session.Token)

	req := httptest.NewRequest(http.MethodGet, "/admin/registrations/signins", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterAdminRejectsUserToken(t *testing.T) {
	handler, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/signup",
		strings.NewReader(`{"name":"Ali","email":"ali@example.com","password":"pw"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/signin",
		strings.NewReader(`{"email":"ali@example.com","password":"pw"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var session struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))

	req := httptest.NewRequest(http.MethodGet, "/admin/registrations/signins", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouterBookingConfirm(t *testing.T) {
	handler, store := newTestRouter(t)

	body := `{
		"doctor": {"id":1,"name":"Dr. Sana Malik","email":"sana@example.com"},
		"formData": {"patientName":"Ali","email":"ali@example.com","date":"2026-09-01","time":"10:00"}
	}`
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/appointment-notifications", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"success":true`)
	require.Len(t, store.docs[registration.CollectionAppointments], 1)
}
