package httptransport

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	policymodels "caresure/internal/policy/models"
	policyservice "caresure/internal/policy/service"
	"caresure/internal/transport/http/shared"
	id "caresure/pkg/domain"
	"caresure/pkg/validation"
)

type PolicyService interface {
	Create(ctx context.Context, insurerID id.InsurerID, terms policyservice.Terms) (*policymodels.Policy, error)
	Get(ctx context.Context, policyID id.PolicyID) (*policymodels.Policy, error)
	SetActive(ctx context.Context, policyID id.PolicyID, active bool) error
	List(ctx context.Context) ([]*policymodels.Policy, error)
}

type createPolicyRequest struct {
	InsurerID  uint64 `json:"insurer_id" validate:"required"`
	Name       string `json:"name" validate:"required,notblank"`
	Coverage   string `json:"coverage"`
	Premium    int64  `json:"premium" validate:"required,gt=0"`
	CoverLimit int64  `json:"cover_limit" validate:"required,gt=0"`
	TermDays   int    `json:"term_days" validate:"required,gt=0"`
}

type setPolicyActiveRequest struct {
	Active bool `json:"active"`
}

type policyResponse struct {
	ID         uint64    `json:"id"`
	InsurerID  uint64    `json:"insurer_id"`
	Name       string    `json:"name"`
	Coverage   string    `json:"coverage,omitempty"`
	Premium    int64     `json:"premium"`
	CoverLimit int64     `json:"cover_limit"`
	TermDays   int       `json:"term_days"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}

func toPolicyResponse(p *policymodels.Policy) policyResponse {
	return policyResponse{
		ID:         uint64(p.ID),
		InsurerID:  uint64(p.InsurerID),
		Name:       p.Name,
		Coverage:   p.Coverage,
		Premium:    p.Premium,
		CoverLimit: p.CoverLimit,
		TermDays:   p.TermDays,
		Active:     p.Active,
		CreatedAt:  p.CreatedAt,
	}
}

func (h *Handler) handleCreatePolicy(w http.ResponseWriter, r *http.Request) {
	var req createPolicyRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, err)
		return
	}
	if err := validation.Validate(req); err != nil {
		shared.RespondError(w, err)
		return
	}
	policy, err := h.services.Policies.Create(r.Context(), id.InsurerID(req.InsurerID), policyservice.Terms{
		Name:       req.Name,
		Coverage:   req.Coverage,
		Premium:    req.Premium,
		CoverLimit: req.CoverLimit,
		TermDays:   req.TermDays,
	})
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusCreated, toPolicyResponse(policy))
}

func (h *Handler) handleSetPolicyActive(w http.ResponseWriter, r *http.Request) {
	policyID, err := id.ParsePolicyID(chi.URLParam(r, "policyID"))
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	var req setPolicyActiveRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, err)
		return
	}
	if err := h.services.Policies.SetActive(r.Context(), policyID, req.Active); err != nil {
		shared.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGetPolicy(w http.ResponseWriter, r *http.Request) {
	policyID, err := id.ParsePolicyID(chi.URLParam(r, "policyID"))
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	policy, err := h.services.Policies.Get(r.Context(), policyID)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, toPolicyResponse(policy))
}

func (h *Handler) handleListPolicies(w http.ResponseWriter, r *http.Request) {
	policies, err := h.services.Policies.List(r.Context())
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	out := make([]policyResponse, 0, len(policies))
	for _, p := range policies {
		out = append(out, toPolicyResponse(p))
	}
	shared.RespondJSON(w, http.StatusOK, out)
}
