package httptransport

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	endorsementmodels "caresure/internal/endorsement/models"
	"caresure/internal/transport/http/shared"
	id "caresure/pkg/domain"
	"caresure/pkg/validation"
)

type EndorsementService interface {
	Endorse(ctx context.Context, hospitalID id.HospitalID, insurerID id.InsurerID) error
	ListEndorsers(ctx context.Context, hospitalID id.HospitalID) ([]id.InsurerID, error)
	ListEvents(ctx context.Context, hospitalID id.HospitalID) ([]endorsementmodels.Endorsement, error)
}

type endorseRequest struct {
	InsurerID uint64 `json:"insurer_id" validate:"required"`
}

type endorsementEventResponse struct {
	HospitalID uint64    `json:"hospital_id"`
	InsurerID  uint64    `json:"insurer_id"`
	Timestamp  time.Time `json:"timestamp"`
}

func (h *Handler) handleEndorse(w http.ResponseWriter, r *http.Request) {
	hospitalID, err := id.ParseHospitalID(chi.URLParam(r, "hospitalID"))
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	var req endorseRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, err)
		return
	}
	if err := validation.Validate(req); err != nil {
		shared.RespondError(w, err)
		return
	}
	if err := h.services.Endorsements.Endorse(r.Context(), hospitalID, id.InsurerID(req.InsurerID)); err != nil {
		shared.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListEndorsers(w http.ResponseWriter, r *http.Request) {
	hospitalID, err := id.ParseHospitalID(chi.URLParam(r, "hospitalID"))
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	endorsers, err := h.services.Endorsements.ListEndorsers(r.Context(), hospitalID)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	out := make([]uint64, 0, len(endorsers))
	for _, e := range endorsers {
		out = append(out, uint64(e))
	}
	shared.RespondJSON(w, http.StatusOK, map[string][]uint64{"endorsers": out})
}

func (h *Handler) handleListEndorsementEvents(w http.ResponseWriter, r *http.Request) {
	hospitalID, err := id.ParseHospitalID(chi.URLParam(r, "hospitalID"))
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	events, err := h.services.Endorsements.ListEvents(r.Context(), hospitalID)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	out := make([]endorsementEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, endorsementEventResponse{
			HospitalID: uint64(e.HospitalID),
			InsurerID:  uint64(e.InsurerID),
			Timestamp:  e.Timestamp,
		})
	}
	shared.RespondJSON(w, http.StatusOK, out)
}
