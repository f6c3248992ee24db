package httptransport

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	stakeholdermodels "caresure/internal/stakeholder/models"
	"caresure/internal/transport/http/shared"
	id "caresure/pkg/domain"
	"caresure/pkg/validation"
)

type StakeholderService interface {
	Register(ctx context.Context, role stakeholdermodels.Role) (*stakeholdermodels.Stakeholder, error)
	Verify(ctx context.Context, stakeholderID id.StakeholderID) error
	Get(ctx context.Context, stakeholderID id.StakeholderID) (*stakeholdermodels.Stakeholder, error)
	List(ctx context.Context) ([]*stakeholdermodels.Stakeholder, error)
}

type registerStakeholderRequest struct {
	Role string `json:"role" validate:"required,oneof=patient hospital insurer"`
}

type stakeholderResponse struct {
	ID        uint64    `json:"id"`
	Role      string    `json:"role"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toStakeholderResponse(s *stakeholdermodels.Stakeholder) stakeholderResponse {
	return stakeholderResponse{
		ID:        uint64(s.ID),
		Role:      string(s.Role),
		Verified:  s.Verified,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (h *Handler) handleRegisterStakeholder(w http.ResponseWriter, r *http.Request) {
	var req registerStakeholderRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, err)
		return
	}
	if err := validation.Validate(req); err != nil {
		shared.RespondError(w, err)
		return
	}

	record, err := h.services.Stakeholders.Register(r.Context(), stakeholdermodels.Role(req.Role))
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusCreated, toStakeholderResponse(record))
}

func (h *Handler) handleVerifyStakeholder(w http.ResponseWriter, r *http.Request) {
	stakeholderID, err := id.ParseStakeholderID(chi.URLParam(r, "stakeholderID"))
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	if err := h.services.Stakeholders.Verify(r.Context(), stakeholderID); err != nil {
		shared.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGetStakeholder(w http.ResponseWriter, r *http.Request) {
	stakeholderID, err := id.ParseStakeholderID(chi.URLParam(r, "stakeholderID"))
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	record, err := h.services.Stakeholders.Get(r.Context(), stakeholderID)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, toStakeholderResponse(record))
}

func (h *Handler) handleListStakeholders(w http.ResponseWriter, r *http.Request) {
	records, err := h.services.Stakeholders.List(r.Context())
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	out := make([]stakeholderResponse, 0, len(records))
	for _, record := range records {
		out = append(out, toStakeholderResponse(record))
	}
	shared.RespondJSON(w, http.StatusOK, out)
}
