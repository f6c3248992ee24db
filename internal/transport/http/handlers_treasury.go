package httptransport

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"caresure/internal/audit"
	"caresure/internal/transport/http/shared"
	id "caresure/pkg/domain"
	dErrors "caresure/pkg/domain-errors"
	"caresure/pkg/validation"
)

type TreasuryService interface {
	Balance(ctx context.Context, patientID id.PatientID) int64
	Withdraw(ctx context.Context, patientID id.PatientID, amount int64) error
}

// AuditReader exposes the audit trail per entity.
type AuditReader interface {
	List(ctx context.Context, entity string, entityID uint64) ([]audit.Event, error)
}

type withdrawRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

type auditEventResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	EntityID  uint64    `json:"entity_id"`
	RelatedID uint64    `json:"related_id,omitempty"`
	Amount    int64     `json:"amount,omitempty"`
}

func (h *Handler) handleTreasuryBalance(w http.ResponseWriter, r *http.Request) {
	patientID, err := id.ParsePatientID(chi.URLParam(r, "patientID"))
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	balance := h.services.Treasury.Balance(r.Context(), patientID)
	shared.RespondJSON(w, http.StatusOK, map[string]int64{"balance": balance})
}

func (h *Handler) handleTreasuryWithdraw(w http.ResponseWriter, r *http.Request) {
	patientID, err := id.ParsePatientID(chi.URLParam(r, "patientID"))
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	var req withdrawRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, err)
		return
	}
	if err := validation.Validate(req); err != nil {
		shared.RespondError(w, err)
		return
	}
	if err := h.services.Treasury.Withdraw(r.Context(), patientID, req.Amount); err != nil {
		shared.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListAuditEvents(w http.ResponseWriter, r *http.Request) {
	entityID, err := strconv.ParseUint(chi.URLParam(r, "entityID"), 10, 64)
	if err != nil {
		shared.RespondError(w, dErrors.New(dErrors.CodeInvalidInput, "entity ID must be a positive integer"))
		return
	}
	events, err := h.services.Audit.List(r.Context(), chi.URLParam(r, "entity"), entityID)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	out := make([]auditEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, auditEventResponse{
			Timestamp: e.Timestamp,
			Action:    e.Action,
			Entity:    e.Entity,
			EntityID:  e.EntityID,
			RelatedID: e.RelatedID,
			Amount:    e.Amount,
		})
	}
	shared.RespondJSON(w, http.StatusOK, out)
}
