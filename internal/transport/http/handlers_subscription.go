package httptransport

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	subscriptionmodels "caresure/internal/subscription/models"
	"caresure/internal/transport/http/shared"
	id "caresure/pkg/domain"
	"caresure/pkg/validation"
)

type SubscriptionService interface {
	Subscribe(ctx context.Context, policyID id.PolicyID, patientID id.PatientID) (*subscriptionmodels.Subscription, error)
	Deactivate(ctx context.Context, subscriptionID id.SubscriptionID) error
	Get(ctx context.Context, subscriptionID id.SubscriptionID) (*subscriptionmodels.Subscription, error)
	ListByPatient(ctx context.Context, patientID id.PatientID) ([]*subscriptionmodels.Subscription, error)
}

type subscribeRequest struct {
	PolicyID  uint64 `json:"policy_id" validate:"required"`
	PatientID uint64 `json:"patient_id" validate:"required"`
}

type subscriptionResponse struct {
	ID        uint64    `json:"id"`
	PolicyID  uint64    `json:"policy_id"`
	PatientID uint64    `json:"patient_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Active    bool      `json:"active"`
}

func toSubscriptionResponse(s *subscriptionmodels.Subscription) subscriptionResponse {
	return subscriptionResponse{
		ID:        uint64(s.ID),
		PolicyID:  uint64(s.PolicyID),
		PatientID: uint64(s.PatientID),
		Start:     s.Start,
		End:       s.End,
		Active:    s.Active,
	}
}

func (h *Handler) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, err)
		return
	}
	if err := validation.Validate(req); err != nil {
		shared.RespondError(w, err)
		return
	}
	subscription, err := h.services.Subscriptions.Subscribe(r.Context(), id.PolicyID(req.PolicyID), id.PatientID(req.PatientID))
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusCreated, toSubscriptionResponse(subscription))
}

func (h *Handler) handleDeactivateSubscription(w http.ResponseWriter, r *http.Request) {
	subscriptionID, err := id.ParseSubscriptionID(chi.URLParam(r, "subscriptionID"))
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	if err := h.services.Subscriptions.Deactivate(r.Context(), subscriptionID); err != nil {
		shared.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGetSubscription(w http.ResponseWriter, r *http.Request) {
	subscriptionID, err := id.ParseSubscriptionID(chi.URLParam(r, "subscriptionID"))
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	subscription, err := h.services.Subscriptions.Get(r.Context(), subscriptionID)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, toSubscriptionResponse(subscription))
}

func (h *Handler) handleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	patientID, err := id.ParsePatientID(chi.URLParam(r, "patientID"))
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	subscriptions, err := h.services.Subscriptions.ListByPatient(r.Context(), patientID)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	out := make([]subscriptionResponse, 0, len(subscriptions))
	for _, s := range subscriptions {
		out = append(out, toSubscriptionResponse(s))
	}
	shared.RespondJSON(w, http.StatusOK, out)
}
