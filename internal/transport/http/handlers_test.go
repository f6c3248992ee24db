package httptransport

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caresure/internal/audit"
	directoryservice "caresure/internal/directory/service"
	directorystore "caresure/internal/directory/store"
	endorsementservice "caresure/internal/endorsement/service"
	endorsementstore "caresure/internal/endorsement/store"
	episodeservice "caresure/internal/episode/service"
	episodestore "caresure/internal/episode/store"
	"caresure/internal/platform/middleware"
	"caresure/internal/platform/txn"
	policyservice "caresure/internal/policy/service"
	policystore "caresure/internal/policy/store"
	stakeholderservice "caresure/internal/stakeholder/service"
	stakeholderstore "caresure/internal/stakeholder/store"
	subscriptionservice "caresure/internal/subscription/service"
	subscriptionstore "caresure/internal/subscription/store"
	"caresure/internal/treasury"
	dErrors "caresure/pkg/domain-errors"
)

const testSigningKey = "test-signing-key"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	tx := txn.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	auditor := audit.NewPublisher(audit.NewInMemoryStore())

	stakeholders := stakeholderservice.NewService(stakeholderstore.New(), tx, auditor)
	patients := directorystore.NewPatients()
	hospitals := directorystore.NewHospitals()
	insurers := directorystore.NewInsurers()
	catalog := directorystore.NewTreatmentCatalog()
	documents := directorystore.NewDocuments()
	funds := treasury.NewLedger()
	policyStore := policystore.New()

	handler := NewHandler(Services{
		Stakeholders:  stakeholders,
		Directory:     directoryservice.NewService(patients, hospitals, insurers, catalog, documents, stakeholders, tx, logger),
		Endorsements:  endorsementservice.NewService(hospitals, insurers, endorsementstore.New(), tx, auditor),
		Policies:      policyservice.NewService(policyStore, insurers, stakeholders, tx, auditor),
		Subscriptions: subscriptionservice.NewService(subscriptionstore.New(), policyStore, patients, stakeholders, tx, auditor),
		Episodes: episodeservice.NewService(
			episodeservice.Stores{
				Appointments:  episodestore.NewAppointments(),
				Bills:         episodestore.NewBills(),
				Treatments:    episodestore.NewTreatments(),
				Claims:        episodestore.NewClaims(),
				Disbursements: episodestore.NewDisbursements(),
				Transactions:  episodestore.NewTransactions(),
			},
			episodeservice.Collaborators{
				Patients:     patients,
				Hospitals:    hospitals,
				Policies:     policyStore,
				Catalog:      catalog,
				Stakeholders: stakeholders,
				Payouts:      funds,
			},
			tx,
			auditor,
		),
		Treasury: funds,
		Audit:    auditor,
	}, logger)

	return NewRouter(handler, AuthConfig{JWTSigningKey: testSigningKey}, logger)
}

func serviceToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.ServiceClaims{
		Service: "test-suite",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(testSigningKey))
	require.NoError(t, err)
	return signed
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestMutationsRequireServiceToken(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/stakeholders", "", map[string]string{"role": "patient"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/stakeholders", serviceToken(t), map[string]string{"role": "patient"})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRegisterAndVerifyStakeholder(t *testing.T) {
	router := newTestRouter(t)
	token := serviceToken(t)

	rec := doJSON(t, router, http.MethodPost, "/stakeholders", token, map[string]string{"role": "insurer"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID       uint64 `json:"id"`
		Verified bool   `json:"verified"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, uint64(1), created.ID)
	assert.False(t, created.Verified)

	rec = doJSON(t, router, http.MethodPost, "/stakeholders/1/verify", token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/stakeholders/1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.True(t, created.Verified)
}

func TestRegisterStakeholder_InvalidRole(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/stakeholders", serviceToken(t), map[string]string{"role": "plumber"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, string(dErrors.CodeValidation), resp.Error)
}

func TestCreatePolicy_UnverifiedInsurerMapsTo403(t *testing.T) {
	router := newTestRouter(t)
	token := serviceToken(t)

	rec := doJSON(t, router, http.MethodPost, "/stakeholders", token, map[string]string{"role": "insurer"})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doJSON(t, router, http.MethodPost, "/insurers", token, map[string]any{"stakeholder_id": 1, "name": "Acme"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/policies", token, map[string]any{
		"insurer_id": 1, "name": "basic", "premium": 100, "cover_limit": 5000, "term_days": 365,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, string(dErrors.CodeNotVerified), resp.Error)
}

func TestGetPatient_NotFound(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/patients/42", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTreasuryAdminDisabledWithoutHash(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/treasury/1/balance", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStatusFromCodeMapping(t *testing.T) {
	router := newTestRouter(t)
	token := serviceToken(t)

	// Endorsing an unknown hospital is a 404; a duplicate pair is a 409.
	rec := doJSON(t, router, http.MethodPost, "/hospitals/99/endorsements", token, map[string]any{"insurer_id": 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
