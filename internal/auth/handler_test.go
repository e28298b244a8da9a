package auth

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

	"github.com/hassannetsec/doctors-friend/internal/records"
	"github.com/hassannetsec/doctors-friend/internal/registration"
	"github.com/hassannetsec/doctors-friend/pkg/logging"
)

type memStore struct {
	docs map[string][]records.Record
	fail bool
}

func (m *memStore) Read(ctx context.Context, collection string) ([]records.Record, string, error) {
	if m.fail {
		return nil, "", records.ErrStoreUnavailable
	}
	return m.docs[collection], "", nil
}

func (m *memStore) Write(ctx context.Context, collection string, recs []records.Record, version, description string) error {
	if m.fail {
		return records.ErrStoreUnavailable
	}
	if m.docs == nil {
		m.docs = make(map[string][]records.Record)
	}
	m.docs[collection] = recs
	return nil
}

func newTestHandler(t *testing.T, store *memStore) *Handler {
	t.Helper()
	gateway := registration.NewGateway(store, nil, logging.Default())
	creds := NewCredentialStore(bcrypt.MinCost)
	return NewHandler(HandlerConfig{
		Store:         creds,
		Gateway:       gateway,
		Secret:        "test-secret",
		TTL:           time.Hour,
		AdminEmail:    "admin@example.com",
		AdminPassword: "admin-pw",
		Logger:        logging.Default(),
	})
}

func TestSignUpThenSignIn(t *testing.T) {
	store := &memStore{}
	h := newTestHandler(t, store)

	body := `{"name":"Ali","email":"ali@example.com","password":"s3cret"}`
	rec := httptest.NewRecorder()
	h.SignUp(rec, httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	h.SignIn(rec, httptest.NewRequest(http.MethodPost, "/auth/signin",
		strings.NewReader(`{"email":"ali@example.com","password":"s3cret"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp sessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	require.False(t, resp.Admin)

	claims, err := ParseToken(resp.Token, "test-secret")
	require.NoError(t, err)
	require.Equal(t, "ali@example.com", claims.Email)
	require.False(t, claims.Admin)

	// The sign-in event landed in the audit collection.
	saved := store.docs[registration.CollectionSignIns]
	require.Len(t, saved, 1)
	var sr registration.SignInRecord
	require.NoError(t, json.Unmarshal(saved[0], &sr))
	require.Equal(t, "ali@example.com", sr.Email)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(sr.PasswordDigest), []byte("s3cret")))
	_, err = time.Parse(time.RFC3339, sr.Timestamp)
	require.NoError(t, err)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	h := newTestHandler(t, &memStore{})

	body := `{"name":"Ali","email":"ali@example.com","password":"s3cret"}`
	rec := httptest.NewRecorder()
	h.SignUp(rec, httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	h.SignUp(rec, httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body)))
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestSignInRejectsWrongPassword(t *testing.T) {
	h := newTestHandler(t, &memStore{})

	rec := httptest.NewRecorder()
	h.SignUp(rec, httptest.NewRequest(http.MethodPost, "/auth/signup",
		strings.NewReader(`{"name":"Ali","email":"ali@example.com","password":"s3cret"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	h.SignIn(rec, httptest.NewRequest(http.MethodPost, "/auth/signin",
		strings.NewReader(`{"email":"ali@example.com","password":"wrong"}`)))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSignInAdminCredentials(t *testing.T) {
	store := &memStore{}
	h := newTestHandler(t, store)

	rec := httptest.NewRecorder()
	h.SignIn(rec, httptest.NewRequest(http.MethodPost, "/auth/signin",
		strings.NewReader(`{"email":"admin@example.com","password":"admin-pw"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp sessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Admin)

	claims, err := ParseToken(resp.Token, "test-secret")
	require.NoError(t, err)
	require.True(t, claims.Admin)

	// Admin sign-ins are not written to the audit log.
	require.Empty(t, store.docs[registration.CollectionSignIns])
}

func TestSignInCaptureFailure(t *testing.T) {
	store := &memStore{}
	h := newTestHandler(t, store)

	rec := httptest.NewRecorder()
	h.SignUp(rec, httptest.NewRequest(http.MethodPost, "/auth/signup",
		strings.NewReader(`{"name":"Ali","email":"ali@example.com","password":"s3cret"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)

	store.fail = true
	rec = httptest.NewRecorder()
	h.SignIn(rec, httptest.NewRequest(http.MethodPost, "/auth/signin",
		strings.NewReader(`{"email":"ali@example.com","password":"s3cret"}`)))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Error saving data", resp["message"])
}

func TestSignInBadJSON(t *testing.T) {
	h := newTestHandler(t, &memStore{})

	rec := httptest.NewRecorder()
	h.SignIn(rec, httptest.NewRequest(http.MethodPost, "/auth/signin", strings.NewReader("{")))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
