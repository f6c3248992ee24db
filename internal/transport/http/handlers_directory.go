package httptransport

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	directorymodels "caresure/internal/directory/models"
	"caresure/internal/transport/http/shared"
	id "caresure/pkg/domain"
	"caresure/pkg/validation"
)

type DirectoryService interface {
	RegisterPatient(ctx context.Context, stakeholderID id.StakeholderID, firstName, lastName, address string) (*directorymodels.Patient, error)
	RegisterHospital(ctx context.Context, stakeholderID id.StakeholderID, name, city string) (*directorymodels.Hospital, error)
	RegisterInsurer(ctx context.Context, stakeholderID id.StakeholderID, name string) (*directorymodels.Insurer, error)
	AddTreatmentType(ctx context.Context, code, description string, unitCost int64) (*directorymodels.TreatmentType, error)
	AddDocument(ctx context.Context, patientID id.PatientID, name, uri string) (*directorymodels.Document, error)
	GetPatient(ctx context.Context, patientID id.PatientID) (*directorymodels.Patient, error)
	GetHospital(ctx context.Context, hospitalID id.HospitalID) (*directorymodels.Hospital, error)
	GetInsurer(ctx context.Context, insurerID id.InsurerID) (*directorymodels.Insurer, error)
	GetTreatmentType(ctx context.Context, code string) (*directorymodels.TreatmentType, error)
	ListPatients(ctx context.Context) ([]*directorymodels.Patient, error)
	ListHospitals(ctx context.Context) ([]*directorymodels.Hospital, error)
	ListInsurers(ctx context.Context) ([]*directorymodels.Insurer, error)
	ListTreatmentTypes(ctx context.Context) ([]*directorymodels.TreatmentType, error)
	ListDocuments(ctx context.Context, patientID id.PatientID) ([]*directorymodels.Document, error)
}

type registerPatientRequest struct {
	StakeholderID uint64 `json:"stakeholder_id" validate:"required"`
	FirstName     string `json:"first_name" validate:"required,notblank"`
	LastName      string `json:"last_name" validate:"required,notblank"`
	Address       string `json:"address"`
}

type registerHospitalRequest struct {
	StakeholderID uint64 `json:"stakeholder_id" validate:"required"`
	Name          string `json:"name" validate:"required,notblank"`
	City          string `json:"city"`
}

type registerInsurerRequest struct {
	StakeholderID uint64 `json:"stakeholder_id" validate:"required"`
	Name          string `json:"name" validate:"required,notblank"`
}

type addTreatmentTypeRequest struct {
	Code        string `json:"code" validate:"required,notblank"`
	Description string `json:"description"`
	UnitCost    int64  `json:"unit_cost" validate:"required,gt=0"`
}

type addDocumentRequest struct {
	Name string `json:"name" validate:"required,notblank"`
	URI  string `json:"uri"`
}

type patientResponse struct {
	ID            uint64    `json:"id"`
	StakeholderID uint64    `json:"stakeholder_id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Address       string    `json:"address,omitempty"`
	CurrentPolicy uint64    `json:"current_policy,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type hospitalResponse struct {
	ID            uint64    `json:"id"`
	StakeholderID uint64    `json:"stakeholder_id"`
	Name          string    `json:"name"`
	City          string    `json:"city,omitempty"`
	Endorsers     []uint64  `json:"endorsers"`
	Endorsed      bool      `json:"endorsed"`
	CreatedAt     time.Time `json:"created_at"`
}

type insurerResponse struct {
	ID            uint64    `json:"id"`
	StakeholderID uint64    `json:"stakeholder_id"`
	Name          string    `json:"name"`
	CreatedAt     time.Time `json:"created_at"`
}

type treatmentTypeResponse struct {
	Code        string    `json:"code"`
	Description string    `json:"description,omitempty"`
	UnitCost    int64     `json:"unit_cost"`
	CreatedAt   time.Time `json:"created_at"`
}

type documentResponse struct {
	ID        uint64    `json:"id"`
	PatientID uint64    `json:"patient_id"`
	Name      string    `json:"name"`
	URI       string    `json:"uri,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toPatientResponse(p *directorymodels.Patient) patientResponse {
	return patientResponse{
		ID:            uint64(p.ID),
		StakeholderID: uint64(p.StakeholderID),
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		Address:       p.Address,
		CurrentPolicy: uint64(p.CurrentPolicy),
		CreatedAt:     p.CreatedAt,
	}
}

func toHospitalResponse(h *directorymodels.Hospital) hospitalResponse {
	endorsers := make([]uint64, 0, len(h.Endorsers))
	for _, e := range h.Endorsers {
		endorsers = append(endorsers, uint64(e))
	}
	return hospitalResponse{
		ID:            uint64(h.ID),
		StakeholderID: uint64(h.StakeholderID),
		Name:          h.Name,
		City:          h.City,
		Endorsers:     endorsers,
		Endorsed:      h.Endorsed,
		CreatedAt:     h.CreatedAt,
	}
}

func toInsurerResponse(i *directorymodels.Insurer) insurerResponse {
	return insurerResponse{
		ID:            uint64(i.ID),
		StakeholderID: uint64(i.StakeholderID),
		Name:          i.Name,
		CreatedAt:     i.CreatedAt,
	}
}

func toTreatmentTypeResponse(t *directorymodels.TreatmentType) treatmentTypeResponse {
	return treatmentTypeResponse{
		Code:        t.Code,
		Description: t.Description,
		UnitCost:    t.UnitCost,
		CreatedAt:   t.CreatedAt,
	}
}

func toDocumentResponse(d *directorymodels.Document) documentResponse {
	return documentResponse{
		ID:        uint64(d.ID),
		PatientID: uint64(d.PatientID),
		Name:      d.Name,
		URI:       d.URI,
		CreatedAt: d.CreatedAt,
	}
}

func (h *Handler) handleRegisterPatient(w http.ResponseWriter, r *http.Request) {
	var req registerPatientRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, err)
		return
	}
	if err := validation.Validate(req); err != nil {
		shared.RespondError(w, err)
		return
	}
	patient, err := h.services.Directory.RegisterPatient(r.Context(), id.StakeholderID(req.StakeholderID), req.FirstName, req.LastName, req.Address)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusCreated, toPatientResponse(patient))
}

func (h *Handler) handleRegisterHospital(w http.ResponseWriter, r *http.Request) {
	var req registerHospitalRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, err)
		return
	}
	if err := validation.Validate(req); err != nil {
		shared.RespondError(w, err)
		return
	}
	hospital, err := h.services.Directory.RegisterHospital(r.Context(), id.StakeholderID(req.StakeholderID), req.Name, req.City)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusCreated, toHospitalResponse(hospital))
}

func (h *Handler) handleRegisterInsurer(w http.ResponseWriter, r *http.Request) {
	var req registerInsurerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, err)
		return
	}
	if err := validation.Validate(req); err != nil {
		shared.RespondError(w, err)
		return
	}
	insurer, err := h.services.Directory.RegisterInsurer(r.Context(), id.StakeholderID(req.StakeholderID), req.Name)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusCreated, toInsurerResponse(insurer))
}

func (h *Handler) handleAddTreatmentType(w http.ResponseWriter, r *http.Request) {
	var req addTreatmentTypeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, err)
		return
	}
	if err := validation.Validate(req); err != nil {
		shared.RespondError(w, err)
		return
	}
	treatmentType, err := h.services.Directory.AddTreatmentType(r.Context(), req.Code, req.Description, req.UnitCost)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusCreated, toTreatmentTypeResponse(treatmentType))
}

func (h *Handler) handleAddDocument(w http.ResponseWriter, r *http.Request) {
	patientID, err := id.ParsePatientID(chi.URLParam(r, "patientID"))
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	var req addDocumentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, err)
		return
	}
	if err := validation.Validate(req); err != nil {
		shared.RespondError(w, err)
		return
	}
	doc, err := h.services.Directory.AddDocument(r.Context(), patientID, req.Name, req.URI)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusCreated, toDocumentResponse(doc))
}

func (h *Handler) handleGetPatient(w http.ResponseWriter, r *http.Request) {
	patientID, err := id.ParsePatientID(chi.URLParam(r, "patientID"))
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	patient, err := h.services.Directory.GetPatient(r.Context(), patientID)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, toPatientResponse(patient))
}

func (h *Handler) handleGetHospital(w http.ResponseWriter, r *http.Request) {
	hospitalID, err := id.ParseHospitalID(chi.URLParam(r, "hospitalID"))
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	hospital, err := h.services.Directory.GetHospital(r.Context(), hospitalID)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, toHospitalResponse(hospital))
}

func (h *Handler) handleGetInsurer(w http.ResponseWriter, r *http.Request) {
	insurerID, err := id.ParseInsurerID(chi.URLParam(r, "insurerID"))
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	insurer, err := h.services.Directory.GetInsurer(r.Context(), insurerID)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, toInsurerResponse(insurer))
}

func (h *Handler) handleGetTreatmentType(w http.ResponseWriter, r *http.Request) {
	treatmentType, err := h.services.Directory.GetTreatmentType(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, toTreatmentTypeResponse(treatmentType))
}

func (h *Handler) handleListPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.services.Directory.ListPatients(r.Context())
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	out := make([]patientResponse, 0, len(patients))
	for _, p := range patients {
		out = append(out, toPatientResponse(p))
	}
	shared.RespondJSON(w, http.StatusOK, out)
}

func (h *Handler) handleListHospitals(w http.ResponseWriter, r *http.Request) {
	hospitals, err := h.services.Directory.ListHospitals(r.Context())
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	out := make([]hospitalResponse, 0, len(hospitals))
	for _, record := range hospitals {
		out = append(out, toHospitalResponse(record))
	}
	shared.RespondJSON(w, http.StatusOK, out)
}

func (h *Handler) handleListInsurers(w http.ResponseWriter, r *http.Request) {
	insurers, err := h.services.Directory.ListInsurers(r.Context())
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	out := make([]insurerResponse, 0, len(insurers))
	for _, i := range insurers {
		out = append(out, toInsurerResponse(i))
	}
	shared.RespondJSON(w, http.StatusOK, out)
}

func (h *Handler) handleListTreatmentTypes(w http.ResponseWriter, r *http.Request) {
	treatmentTypes, err := h.services.Directory.ListTreatmentTypes(r.Context())
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	out := make([]treatmentTypeResponse, 0, len(treatmentTypes))
	for _, t := range treatmentTypes {
		out = append(out, toTreatmentTypeResponse(t))
	}
	shared.RespondJSON(w, http.StatusOK, out)
}

func (h *Handler) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	patientID, err := id.ParsePatientID(chi.URLParam(r, "patientID"))
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	docs, err := h.services.Directory.ListDocuments(r.Context(), patientID)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	out := make([]documentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, toDocumentResponse(d))
	}
	shared.RespondJSON(w, http.StatusOK, out)
}
