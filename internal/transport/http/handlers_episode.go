package httptransport

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	episodemodels "caresure/internal/episode/models"
	episodeservice "caresure/internal/episode/service"
	"caresure/internal/transport/http/shared"
	id "caresure/pkg/domain"
	"caresure/pkg/validation"
)

type EpisodeService interface {
	CreateAppointment(ctx context.Context, patientID id.PatientID, hospitalID id.HospitalID, when time.Time, reason string) (*episodemodels.Appointment, error)
	MarkVisited(ctx context.Context, appointmentID id.AppointmentID) error
	RecordBill(ctx context.Context, appointmentID id.AppointmentID, amount int64) (*episodemodels.Bill, error)
	RecordTreatment(ctx context.Context, appointmentID id.AppointmentID, code string, quantity int) (*episodemodels.TreatmentRecord, error)
	SubmitClaim(ctx context.Context, req episodeservice.ClaimRequest) (*episodemodels.Claim, error)
	ApproveClaim(ctx context.Context, claimID id.ClaimID) error
	Disburse(ctx context.Context, claimID id.ClaimID, funds int64) (*episodemodels.Disbursement, *episodemodels.Transaction, error)
	GetAppointment(ctx context.Context, appointmentID id.AppointmentID) (*episodemodels.Appointment, error)
	GetClaim(ctx context.Context, claimID id.ClaimID) (*episodemodels.Claim, error)
	ListAppointments(ctx context.Context, patientID id.PatientID) ([]*episodemodels.Appointment, error)
	ListBills(ctx context.Context, appointmentID id.AppointmentID) ([]*episodemodels.Bill, error)
	ListTreatments(ctx context.Context, appointmentID id.AppointmentID) ([]*episodemodels.TreatmentRecord, error)
	ListClaims(ctx context.Context, patientID id.PatientID) ([]*episodemodels.Claim, error)
	ListDisbursements(ctx context.Context, claimID id.ClaimID) ([]*episodemodels.Disbursement, error)
	ListTransactions(ctx context.Context, patientID id.PatientID) ([]*episodemodels.Transaction, error)
}

type createAppointmentRequest struct {
	PatientID   uint64    `json:"patient_id" validate:"required"`
	HospitalID  uint64    `json:"hospital_id" validate:"required"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Reason      string    `json:"reason" validate:"required,notblank"`
}

type recordBillRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

type recordTreatmentRequest struct {
	Code     string `json:"code" validate:"required,notblank"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

type submitClaimRequest struct {
	PolicyID      uint64 `json:"policy_id" validate:"required"`
	PatientID     uint64 `json:"patient_id" validate:"required"`
	HospitalID    uint64 `json:"hospital_id" validate:"required"`
	AppointmentID uint64 `json:"appointment_id" validate:"required"`
	Amount        int64  `json:"amount" validate:"required,gt=0"`
}

type disburseRequest struct {
	Funds int64 `json:"funds" validate:"required,gt=0"`
}

type appointmentResponse struct {
	ID          uint64    `json:"id"`
	PatientID   uint64    `json:"patient_id"`
	HospitalID  uint64    `json:"hospital_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Reason      string    `json:"reason"`
	Visited     bool      `json:"visited"`
	CreatedAt   time.Time `json:"created_at"`
}

type billResponse struct {
	ID            uint64    `json:"id"`
	AppointmentID uint64    `json:"appointment_id"`
	Amount        int64     `json:"amount"`
	Paid          bool      `json:"paid"`
	CreatedAt     time.Time `json:"created_at"`
}

type treatmentResponse struct {
	ID            uint64    `json:"id"`
	AppointmentID uint64    `json:"appointment_id"`
	Code          string    `json:"code"`
	Quantity      int       `json:"quantity"`
	Cost          int64     `json:"cost"`
	CreatedAt     time.Time `json:"created_at"`
}

type claimResponse struct {
	ID            uint64    `json:"id"`
	PolicyID      uint64    `json:"policy_id"`
	PatientID     uint64    `json:"patient_id"`
	HospitalID    uint64    `json:"hospital_id"`
	AppointmentID uint64    `json:"appointment_id"`
	Amount        int64     `json:"amount"`
	Approved      bool      `json:"approved"`
	CreatedAt     time.Time `json:"created_at"`
}

type disbursementResponse struct {
	ID        uint64    `json:"id"`
	ClaimID   uint64    `json:"claim_id"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

type transactionResponse struct {
	ID        uint64    `json:"id"`
	PolicyID  uint64    `json:"policy_id"`
	PatientID uint64    `json:"patient_id"`
	Amount    int64     `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type disburseResponse struct {
	Disbursement disbursementResponse `json:"disbursement"`
	Transaction  transactionResponse  `json:"transaction"`
}

func toAppointmentResponse(a *episodemodels.Appointment) appointmentResponse {
	return appointmentResponse{
		ID:          uint64(a.ID),
		PatientID:   uint64(a.PatientID),
		HospitalID:  uint64(a.HospitalID),
		ScheduledAt: a.ScheduledAt,
		Reason:      a.Reason,
		Visited:     a.Visited,
		CreatedAt:   a.CreatedAt,
	}
}

func toBillResponse(b *episodemodels.Bill) billResponse {
	return billResponse{
		ID:            uint64(b.ID),
		AppointmentID: uint64(b.AppointmentID),
		Amount:        b.Amount,
		Paid:          b.Paid,
		CreatedAt:     b.CreatedAt,
	}
}

func toTreatmentResponse(t *episodemodels.TreatmentRecord) treatmentResponse {
	return treatmentResponse{
		ID:            uint64(t.ID),
		AppointmentID: uint64(t.AppointmentID),
		Code:          t.Code,
		Quantity:      t.Quantity,
		Cost:          t.Cost,
		CreatedAt:     t.CreatedAt,
	}
}

func toClaimResponse(c *episodemodels.Claim) claimResponse {
	return claimResponse{
		ID:            uint64(c.ID),
		PolicyID:      uint64(c.PolicyID),
		PatientID:     uint64(c.PatientID),
		HospitalID:    uint64(c.HospitalID),
		AppointmentID: uint64(c.AppointmentID),
		Amount:        c.Amount,
		Approved:      c.Approved,
		CreatedAt:     c.CreatedAt,
	}
}

func toDisbursementResponse(d *episodemodels.Disbursement) disbursementResponse {
	return disbursementResponse{
		ID:        uint64(d.ID),
		ClaimID:   uint64(d.ClaimID),
		Amount:    d.Amount,
		CreatedAt: d.CreatedAt,
	}
}

func toTransactionResponse(t *episodemodels.Transaction) transactionResponse {
	return transactionResponse{
		ID:        uint64(t.ID),
		PolicyID:  uint64(t.PolicyID),
		PatientID: uint64(t.PatientID),
		Amount:    t.Amount,
		Status:    t.Status,
		CreatedAt: t.CreatedAt,
	}
}

func (h *Handler) handleCreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req createAppointmentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, err)
		return
	}
	if err := validation.Validate(req); err != nil {
		shared.RespondError(w, err)
		return
	}
	appointment, err := h.services.Episodes.CreateAppointment(r.Context(), id.PatientID(req.PatientID), id.HospitalID(req.HospitalID), req.ScheduledAt, req.Reason)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusCreated, toAppointmentResponse(appointment))
}

func (h *Handler) handleMarkVisited(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := id.ParseAppointmentID(chi.URLParam(r, "appointmentID"))
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	if err := h.services.Episodes.MarkVisited(r.Context(), appointmentID); err != nil {
		shared.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRecordBill(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := id.ParseAppointmentID(chi.URLParam(r, "appointmentID"))
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	var req recordBillRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, err)
		return
	}
	if err := validation.Validate(req); err != nil {
		shared.RespondError(w, err)
		return
	}
	bill, err := h.services.Episodes.RecordBill(r.Context(), appointmentID, req.Amount)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusCreated, toBillResponse(bill))
}

func (h *Handler) handleRecordTreatment(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := id.ParseAppointmentID(chi.URLParam(r, "appointmentID"))
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	var req recordTreatmentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, err)
		return
	}
	if err := validation.Validate(req); err != nil {
		shared.RespondError(w, err)
		return
	}
	treatment, err := h.services.Episodes.RecordTreatment(r.Context(), appointmentID, req.Code, req.Quantity)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusCreated, toTreatmentResponse(treatment))
}

func (h *Handler) handleSubmitClaim(w http.ResponseWriter, r *http.Request) {
	var req submitClaimRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, err)
		return
	}
	if err := validation.Validate(req); err != nil {
		shared.RespondError(w, err)
		return
	}
	claim, err := h.services.Episodes.SubmitClaim(r.Context(), episodeservice.ClaimRequest{
		PolicyID:      id.PolicyID(req.PolicyID),
		PatientID:     id.PatientID(req.PatientID),
		HospitalID:    id.HospitalID(req.HospitalID),
		AppointmentID: id.AppointmentID(req.AppointmentID),
		Amount:        req.Amount,
	})
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusCreated, toClaimResponse(claim))
}

func (h *Handler) handleApproveClaim(w http.ResponseWriter, r *http.Request) {
	claimID, err := id.ParseClaimID(chi.URLParam(r, "claimID"))
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	if err := h.services.Episodes.ApproveClaim(r.Context(), claimID); err != nil {
		shared.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDisburse(w http.ResponseWriter, r *http.Request) {
	claimID, err := id.ParseClaimID(chi.URLParam(r, "claimID"))
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	var req disburseRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, err)
		return
	}
	if err := validation.Validate(req); err != nil {
		shared.RespondError(w, err)
		return
	}
	disbursement, transaction, err := h.services.Episodes.Disburse(r.Context(), claimID, req.Funds)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusCreated, disburseResponse{
		Disbursement: toDisbursementResponse(disbursement),
		Transaction:  toTransactionResponse(transaction),
	})
}

func (h *Handler) handleGetAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := id.ParseAppointmentID(chi.URLParam(r, "appointmentID"))
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	appointment, err := h.services.Episodes.GetAppointment(r.Context(), appointmentID)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, toAppointmentResponse(appointment))
}

func (h *Handler) handleGetClaim(w http.ResponseWriter, r *http.Request) {
	claimID, err := id.ParseClaimID(chi.URLParam(r, "claimID"))
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	claim, err := h.services.Episodes.GetClaim(r.Context(), claimID)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, toClaimResponse(claim))
}

func (h *Handler) handleListAppointments(w http.ResponseWriter, r *http.Request) {
	patientID, err := id.ParsePatientID(chi.URLParam(r, "patientID"))
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	appointments, err := h.services.Episodes.ListAppointments(r.Context(), patientID)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	out := make([]appointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		out = append(out, toAppointmentResponse(a))
	}
	shared.RespondJSON(w, http.StatusOK, out)
}

func (h *Handler) handleListBills(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := id.ParseAppointmentID(chi.URLParam(r, "appointmentID"))
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	bills, err := h.services.Episodes.ListBills(r.Context(), appointmentID)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	out := make([]billResponse, 0, len(bills))
	for _, b := range bills {
		out = append(out, toBillResponse(b))
	}
	shared.RespondJSON(w, http.StatusOK, out)
}

func (h *Handler) handleListTreatments(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := id.ParseAppointmentID(chi.URLParam(r, "appointmentID"))
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	treatments, err := h.services.Episodes.ListTreatments(r.Context(), appointmentID)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	out := make([]treatmentResponse, 0, len(treatments))
	for _, t := range treatments {
		out = append(out, toTreatmentResponse(t))
	}
	shared.RespondJSON(w, http.StatusOK, out)
}

func (h *Handler) handleListClaims(w http.ResponseWriter, r *http.Request) {
	patientID, err := id.ParsePatientID(chi.URLParam(r, "patientID"))
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	claims, err := h.services.Episodes.ListClaims(r.Context(), patientID)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	out := make([]claimResponse, 0, len(claims))
	for _, c := range claims {
		out = append(out, toClaimResponse(c))
	}
	shared.RespondJSON(w, http.StatusOK, out)
}

func (h *Handler) handleListDisbursements(w http.ResponseWriter, r *http.Request) {
	claimID, err := id.ParseClaimID(chi.URLParam(r, "claimID"))
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	disbursements, err := h.services.Episodes.ListDisbursements(r.Context(), claimID)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	out := make([]disbursementResponse, 0, len(disbursements))
	for _, d := range disbursements {
		out = append(out, toDisbursementResponse(d))
	}
	shared.RespondJSON(w, http.StatusOK, out)
}

func (h *Handler) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	patientID, err := id.ParsePatientID(chi.URLParam(r, "patientID"))
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	transactions, err := h.services.Episodes.ListTransactions(r.Context(), patientID)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	out := make([]transactionResponse, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, toTransactionResponse(t))
	}
	shared.RespondJSON(w, http.StatusOK, out)
}
