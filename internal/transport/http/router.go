// Package httptransport is the thin HTTP layer. Handlers delegate to domain
// services without embedding business logic so transport concerns remain
// isolated.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"caresure/internal/platform/middleware"
	"caresure/internal/transport/http/shared"
)

// Services groups the domain services the API fronts.
type Services struct {
	Stakeholders  StakeholderService
	Directory     DirectoryService
	Endorsements  EndorsementService
	Policies      PolicyService
	Subscriptions SubscriptionService
	Episodes      EpisodeService
	Treasury      TreasuryService
	Audit         AuditReader
}

// Handler holds the wired services behind the route tree.
type Handler struct {
	services Services
	logger   *slog.Logger
}

func NewHandler(services Services, logger *slog.Logger) *Handler {
	return &Handler{services: services, logger: logger}
}

// AuthConfig carries the credentials guarding mutating and admin routes.
type AuthConfig struct {
	JWTSigningKey string
	AdminKeyHash  string
}

// NewRouter wires all endpoints with middleware. Reads are public; mutations
// require a service token; treasury administration requires the admin key.
func NewRouter(h *Handler, auth AuthConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", handleHealth)

	// Public read surface.
	r.Group(func(r chi.Router) {
		r.Get("/stakeholders", h.handleListStakeholders)
		r.Get("/stakeholders/{stakeholderID}", h.handleGetStakeholder)
		r.Get("/patients", h.handleListPatients)
		r.Get("/patients/{patientID}", h.handleGetPatient)
		r.Get("/patients/{patientID}/documents", h.handleListDocuments)
		r.Get("/patients/{patientID}/subscriptions", h.handleListSubscriptions)
		r.Get("/patients/{patientID}/appointments", h.handleListAppointments)
		r.Get("/patients/{patientID}/claims", h.handleListClaims)
		r.Get("/patients/{patientID}/transactions", h.handleListTransactions)
		r.Get("/hospitals", h.handleListHospitals)
		r.Get("/hospitals/{hospitalID}", h.handleGetHospital)
		r.Get("/hospitals/{hospitalID}/endorsements", h.handleListEndorsers)
		r.Get("/hospitals/{hospitalID}/endorsements/events", h.handleListEndorsementEvents)
		r.Get("/insurers", h.handleListInsurers)
		r.Get("/insurers/{insurerID}", h.handleGetInsurer)
		r.Get("/treatment-types", h.handleListTreatmentTypes)
		r.Get("/treatment-types/{code}", h.handleGetTreatmentType)
		r.Get("/policies", h.handleListPolicies)
		r.Get("/policies/{policyID}", h.handleGetPolicy)
		r.Get("/subscriptions/{subscriptionID}", h.handleGetSubscription)
		r.Get("/appointments/{appointmentID}", h.handleGetAppointment)
		r.Get("/appointments/{appointmentID}/bills", h.handleListBills)
		r.Get("/appointments/{appointmentID}/treatments", h.handleListTreatments)
		r.Get("/claims/{claimID}", h.handleGetClaim)
		r.Get("/claims/{claimID}/disbursements", h.handleListDisbursements)
		r.Get("/audit/{entity}/{entityID}", h.handleListAuditEvents)
	})

	// Mutating surface, service-token gated.
	r.Group(func(r chi.Router) {
		r.Use(middleware.ServiceAuth(auth.JWTSigningKey, logger))

		r.Post("/stakeholders", h.handleRegisterStakeholder)
		r.Post("/stakeholders/{stakeholderID}/verify", h.handleVerifyStakeholder)
		r.Post("/patients", h.handleRegisterPatient)
		r.Post("/patients/{patientID}/documents", h.handleAddDocument)
		r.Post("/hospitals", h.handleRegisterHospital)
		r.Post("/hospitals/{hospitalID}/endorsements", h.handleEndorse)
		r.Post("/insurers", h.handleRegisterInsurer)
		r.Post("/treatment-types", h.handleAddTreatmentType)
		r.Post("/policies", h.handleCreatePolicy)
		r.Put("/policies/{policyID}/active", h.handleSetPolicyActive)
		r.Post("/subscriptions", h.handleSubscribe)
		r.Post("/subscriptions/{subscriptionID}/deactivate", h.handleDeactivateSubscription)
		r.Post("/appointments", h.handleCreateAppointment)
		r.Post("/appointments/{appointmentID}/visit", h.handleMarkVisited)
		r.Post("/appointments/{appointmentID}/bills", h.handleRecordBill)
		r.Post("/appointments/{appointmentID}/treatments", h.handleRecordTreatment)
		r.Post("/claims", h.handleSubmitClaim)
		r.Post("/claims/{claimID}/approve", h.handleApproveClaim)
		r.Post("/claims/{claimID}/disburse", h.handleDisburse)
	})

	// Treasury administration, admin-key gated.
	r.Group(func(r chi.Router) {
		r.Use(middleware.AdminKey(auth.AdminKeyHash))

		r.Get("/treasury/{patientID}/balance", h.handleTreasuryBalance)
		r.Post("/treasury/{patientID}/withdraw", h.handleTreasuryWithdraw)
	})

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	shared.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
