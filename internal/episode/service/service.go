package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"caresure/internal/audit"
	directorymodels "caresure/internal/directory/models"
	directorystore "caresure/internal/directory/store"
	"caresure/internal/episode/metrics"
	"caresure/internal/episode/models"
	"caresure/internal/episode/store"
	"caresure/internal/platform/txn"
	policymodels "caresure/internal/policy/models"
	policystore "caresure/internal/policy/store"
	id "caresure/pkg/domain"
	dErrors "caresure/pkg/domain-errors"
)

//go:generate mockgen -destination=mock/mock_payouts.go -package=mock caresure/internal/episode/service Payouts

// Appointments is the persistence surface for appointments.
type Appointments interface {
	Create(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error)
	Get(ctx context.Context, appointmentID id.AppointmentID) (*models.Appointment, error)
	SetVisited(ctx context.Context, appointmentID id.AppointmentID) (*models.Appointment, error)
	ListByPatient(ctx context.Context, patientID id.PatientID) ([]*models.Appointment, error)
}

// Bills is the persistence surface for bills.
type Bills interface {
	Create(ctx context.Context, bill *models.Bill) (*models.Bill, error)
	ListByAppointment(ctx context.Context, appointmentID id.AppointmentID) ([]*models.Bill, error)
}

// Treatments is the persistence surface for treatment records.
type Treatments interface {
	Create(ctx context.Context, treatment *models.TreatmentRecord) (*models.TreatmentRecord, error)
	ListByAppointment(ctx context.Context, appointmentID id.AppointmentID) ([]*models.TreatmentRecord, error)
}

// Claims is the persistence surface for claims.
type Claims interface {
	Create(ctx context.Context, claim *models.Claim) (*models.Claim, error)
	Get(ctx context.Context, claimID id.ClaimID) (*models.Claim, error)
	SetApproved(ctx context.Context, claimID id.ClaimID) error
	ListByPatient(ctx context.Context, patientID id.PatientID) ([]*models.Claim, error)
}

// Disbursements is the persistence surface for payout records.
type Disbursements interface {
	Create(ctx context.Context, disbursement *models.Disbursement) (*models.Disbursement, error)
	ListByClaim(ctx context.Context, claimID id.ClaimID) ([]*models.Disbursement, error)
}

// Transactions is the persistence surface for ledger entries.
type Transactions interface {
	Create(ctx context.Context, transaction *models.Transaction) (*models.Transaction, error)
	ListByPatient(ctx context.Context, patientID id.PatientID) ([]*models.Transaction, error)
}

// Stores groups the pipeline's persistence surfaces.
type Stores struct {
	Appointments  Appointments
	Bills         Bills
	Treatments    Treatments
	Claims        Claims
	Disbursements Disbursements
	Transactions  Transactions
}

// Patients is the directory read surface; the pipeline inspects existence and
// the current-policy pointer only.
type Patients interface {
	Get(ctx context.Context, patientID id.PatientID) (*directorymodels.Patient, error)
}

// Hospitals provides existence checks for the treating side.
type Hospitals interface {
	Get(ctx context.Context, hospitalID id.HospitalID) (*directorymodels.Hospital, error)
}

// Policies provides catalog reads for claim validation.
type Policies interface {
	Get(ctx context.Context, policyID id.PolicyID) (*policymodels.Policy, error)
}

// Catalog resolves treatment codes to their catalog entries.
type Catalog interface {
	Get(ctx context.Context, code string) (*directorymodels.TreatmentType, error)
}

// Stakeholders exposes the verification gate.
type Stakeholders interface {
	RequireVerified(ctx context.Context, stakeholderID id.StakeholderID) error
}

// Payouts moves disbursement value to a patient's payable identity.
type Payouts interface {
	Transfer(ctx context.Context, patientID id.PatientID, amount, funds int64) error
}

// Collaborators groups the external surfaces the pipeline validates against.
type Collaborators struct {
	Patients     Patients
	Hospitals    Hospitals
	Policies     Policies
	Catalog      Catalog
	Stakeholders Stakeholders
	Payouts      Payouts
}

// ClaimRequest carries the parameters of a claim submission. AppointmentID is
// the verification reference; the appointment must be visited and must match
// the claiming patient and hospital.
type ClaimRequest struct {
	PolicyID      id.PolicyID
	PatientID     id.PatientID
	HospitalID    id.HospitalID
	AppointmentID id.AppointmentID
	Amount        int64
}

type Option func(*Service)

// WithMetrics sets the metrics instance for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLogger sets the logger instance for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer overrides the tracer, mainly for tests.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// Service runs the care episode pipeline: appointment, treatment and bill
// recording, claim submission and approval, then disbursement with its paired
// ledger transaction. Every operation either fully commits its record or
// commits nothing.
type Service struct {
	stores  Stores
	collab  Collaborators
	tx      *txn.Serializer
	auditor *audit.Publisher
	metrics *metrics.Metrics
	logger  *slog.Logger
	tracer  trace.Tracer
}

func NewService(stores Stores, collab Collaborators, tx *txn.Serializer, auditor *audit.Publisher, opts ...Option) *Service {
	svc := &Service{
		stores:  stores,
		collab:  collab,
		tx:      tx,
		auditor: auditor,
		tracer:  otel.Tracer("caresure/internal/episode"),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// CreateAppointment opens a care episode. The schedule must be strictly in
// the future and the patient's stakeholder must be verified.
func (s *Service) CreateAppointment(ctx context.Context, patientID id.PatientID, hospitalID id.HospitalID, when time.Time, reason string) (*models.Appointment, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, s.reject("create_appointment", dErrors.New(dErrors.CodeInvalidReason, "appointment reason is required"))
	}
	if !when.After(time.Now()) {
		return nil, s.reject("create_appointment", dErrors.New(dErrors.CodeInvalidSchedule, "appointment must be scheduled in the future"))
	}

	var created *models.Appointment
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		patient, err := s.getPatient(ctx, patientID)
		if err != nil {
			return err
		}
		if err := s.collab.Stakeholders.RequireVerified(ctx, patient.StakeholderID); err != nil {
			return err
		}
		if _, err := s.getHospital(ctx, hospitalID); err != nil {
			return err
		}

		created, err = s.stores.Appointments.Create(ctx, &models.Appointment{
			PatientID:   patientID,
			HospitalID:  hospitalID,
			ScheduledAt: when,
			Reason:      reason,
		})
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store appointment")
		}
		return nil
	})
	if err != nil {
		return nil, s.reject("create_appointment", err)
	}

	s.emitAudit(ctx, audit.Event{
		Action:    audit.ActionAppointmentCreated,
		Entity:    audit.EntityAppointment,
		EntityID:  uint64(created.ID),
		RelatedID: uint64(patientID),
	})
	if s.metrics != nil {
		s.metrics.IncrementAppointmentsCreated()
	}
	s.log(ctx, "appointment created", "appointment_id", created.ID, "patient_id", patientID, "hospital_id", hospitalID)
	return created, nil
}

// MarkVisited records that the visit occurred. The transition is one-way;
// re-marking a visited appointment is a no-op success.
func (s *Service) MarkVisited(ctx context.Context, appointmentID id.AppointmentID) error {
	var transitioned bool
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		appointment, err := s.getAppointment(ctx, appointmentID)
		if err != nil {
			return err
		}
		if appointment.Visited {
			return nil
		}
		if _, err := s.stores.Appointments.SetVisited(ctx, appointmentID); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to mark appointment visited")
		}
		transitioned = true
		return nil
	})
	if err != nil {
		return s.reject("mark_visited", err)
	}

	if transitioned {
		s.emitAudit(ctx, audit.Event{
			Action:   audit.ActionAppointmentVisited,
			Entity:   audit.EntityAppointment,
			EntityID: uint64(appointmentID),
		})
		s.log(ctx, "appointment visited", "appointment_id", appointmentID)
	}
	return nil
}

// RecordBill records a bill against a visited appointment.
func (s *Service) RecordBill(ctx context.Context, appointmentID id.AppointmentID, amount int64) (*models.Bill, error) {
	if amount <= 0 {
		return nil, s.reject("record_bill", dErrors.New(dErrors.CodeInvalidInput, "bill amount must be positive"))
	}

	var created *models.Bill
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.requireVisited(ctx, appointmentID); err != nil {
			return err
		}
		var err error
		created, err = s.stores.Bills.Create(ctx, &models.Bill{
			AppointmentID: appointmentID,
			Amount:        amount,
		})
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store bill")
		}
		return nil
	})
	if err != nil {
		return nil, s.reject("record_bill", err)
	}

	s.emitAudit(ctx, audit.Event{
		Action:    audit.ActionBillRecorded,
		Entity:    audit.EntityBill,
		EntityID:  uint64(created.ID),
		RelatedID: uint64(appointmentID),
		Amount:    amount,
	})
	s.log(ctx, "bill recorded", "bill_id", created.ID, "appointment_id", appointmentID, "amount", amount)
	return created, nil
}

// RecordTreatment records a catalog treatment against a visited appointment.
// Cost is the catalog unit cost at recording time times the quantity.
func (s *Service) RecordTreatment(ctx context.Context, appointmentID id.AppointmentID, code string, quantity int) (*models.TreatmentRecord, error) {
	if quantity <= 0 {
		return nil, s.reject("record_treatment", dErrors.New(dErrors.CodeInvalidInput, "treatment quantity must be positive"))
	}

	var created *models.TreatmentRecord
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.requireVisited(ctx, appointmentID); err != nil {
			return err
		}
		treatmentType, err := s.collab.Catalog.Get(ctx, code)
		if err != nil {
			if errors.Is(err, directorystore.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "treatment type not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load treatment type")
		}

		created, err = s.stores.Treatments.Create(ctx, &models.TreatmentRecord{
			AppointmentID: appointmentID,
			Code:          code,
			Quantity:      quantity,
			Cost:          treatmentType.UnitCost * int64(quantity),
		})
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store treatment record")
		}
		return nil
	})
	if err != nil {
		return nil, s.reject("record_treatment", err)
	}

	s.emitAudit(ctx, audit.Event{
		Action:    audit.ActionTreatmentRecorded,
		Entity:    audit.EntityTreatment,
		EntityID:  uint64(created.ID),
		RelatedID: uint64(appointmentID),
		Amount:    created.Cost,
	})
	s.log(ctx, "treatment recorded", "treatment_id", created.ID, "appointment_id", appointmentID, "code", code)
	return created, nil
}

// SubmitClaim validates the claim against its visited appointment and the
// patient's policy binding, then stores it unapproved.
func (s *Service) SubmitClaim(ctx context.Context, req ClaimRequest) (*models.Claim, error) {
	ctx, span := s.tracer.Start(ctx, "episode.submit_claim", trace.WithAttributes(
		attribute.Int64("policy.id", int64(req.PolicyID)),
		attribute.Int64("patient.id", int64(req.PatientID)),
		attribute.Int64("claim.amount", req.Amount),
	))
	defer span.End()

	if req.Amount <= 0 {
		err := dErrors.New(dErrors.CodeInvalidInput, "claim amount must be positive")
		span.RecordError(err)
		return nil, s.reject("submit_claim", err)
	}

	var created *models.Claim
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		appointment, err := s.getAppointment(ctx, req.AppointmentID)
		if err != nil {
			return err
		}
		if !appointment.Visited {
			return dErrors.New(dErrors.CodeAppointmentNotVisited, "appointment has not been visited")
		}
		if appointment.PatientID != req.PatientID || appointment.HospitalID != req.HospitalID {
			return dErrors.New(dErrors.CodeInvalidInput, "appointment does not match claim parties")
		}
		if _, err := s.getHospital(ctx, req.HospitalID); err != nil {
			return err
		}
		if err := s.requireBoundPolicy(ctx, req.PolicyID, req.PatientID); err != nil {
			return err
		}

		created, err = s.stores.Claims.Create(ctx, &models.Claim{
			PolicyID:      req.PolicyID,
			PatientID:     req.PatientID,
			HospitalID:    req.HospitalID,
			AppointmentID: req.AppointmentID,
			Amount:        req.Amount,
		})
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store claim")
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, s.reject("submit_claim", err)
	}

	span.SetAttributes(attribute.Int64("claim.id", int64(created.ID)))
	s.emitAudit(ctx, audit.Event{
		Action:    audit.ActionClaimSubmitted,
		Entity:    audit.EntityClaim,
		EntityID:  uint64(created.ID),
		RelatedID: uint64(req.PolicyID),
		Amount:    req.Amount,
	})
	if s.metrics != nil {
		s.metrics.IncrementClaimsSubmitted()
		s.metrics.ObserveClaimAmount(float64(req.Amount))
	}
	s.log(ctx, "claim submitted", "claim_id", created.ID, "policy_id", req.PolicyID, "amount", req.Amount)
	return created, nil
}

// ApproveClaim flips the approval flag exactly once. A second attempt fails
// and leaves the claim unchanged. There is no reject operation; rejection is
// simply never approving.
func (s *Service) ApproveClaim(ctx context.Context, claimID id.ClaimID) error {
	ctx, span := s.tracer.Start(ctx, "episode.approve_claim", trace.WithAttributes(
		attribute.Int64("claim.id", int64(claimID)),
	))
	defer span.End()

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		claim, err := s.getClaim(ctx, claimID)
		if err != nil {
			return err
		}
		if claim.Approved {
			return dErrors.New(dErrors.CodeAlreadyApproved, "claim is already approved")
		}
		if err := s.requireBoundPolicy(ctx, claim.PolicyID, claim.PatientID); err != nil {
			return err
		}
		if _, err := s.getHospital(ctx, claim.HospitalID); err != nil {
			return err
		}
		if err := s.stores.Claims.SetApproved(ctx, claimID); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to approve claim")
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return s.reject("approve_claim", err)
	}

	s.emitAudit(ctx, audit.Event{
		Action:   audit.ActionClaimApproved,
		Entity:   audit.EntityClaim,
		EntityID: uint64(claimID),
	})
	if s.metrics != nil {
		s.metrics.IncrementClaimsApproved()
	}
	s.log(ctx, "claim approved", "claim_id", claimID)
	return nil
}

// Disburse pays an approved claim out of the supplied funds and atomically
// records the Disbursement with its paired ledger Transaction. Unapproved
// claims are rejected, and a claim can be disbursed at most once.
func (s *Service) Disburse(ctx context.Context, claimID id.ClaimID, funds int64) (*models.Disbursement, *models.Transaction, error) {
	ctx, span := s.tracer.Start(ctx, "episode.disburse", trace.WithAttributes(
		attribute.Int64("claim.id", int64(claimID)),
		attribute.Int64("funds", funds),
	))
	defer span.End()

	var (
		disbursement *models.Disbursement
		transaction  *models.Transaction
	)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		claim, err := s.getClaim(ctx, claimID)
		if err != nil {
			return err
		}
		if !claim.Approved {
			return dErrors.New(dErrors.CodeClaimNotApproved, "claim has not been approved")
		}
		existing, err := s.stores.Disbursements.ListByClaim(ctx, claimID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read disbursements")
		}
		if len(existing) > 0 {
			return dErrors.New(dErrors.CodeAlreadyDisbursed, "claim has already been disbursed")
		}
		if err := s.collab.Payouts.Transfer(ctx, claim.PatientID, claim.Amount, funds); err != nil {
			return err
		}

		disbursement, err = s.stores.Disbursements.Create(ctx, &models.Disbursement{
			ClaimID: claimID,
			Amount:  claim.Amount,
		})
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store disbursement")
		}
		transaction, err = s.stores.Transactions.Create(ctx, &models.Transaction{
			PolicyID:  claim.PolicyID,
			PatientID: claim.PatientID,
			Amount:    claim.Amount,
			Status:    models.TransactionStatusCompleted,
		})
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store transaction")
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, nil, s.reject("disburse", err)
	}

	s.emitAudit(ctx, audit.Event{
		Action:    audit.ActionDisbursementRecorded,
		Entity:    audit.EntityDisbursement,
		EntityID:  uint64(disbursement.ID),
		RelatedID: uint64(claimID),
		Amount:    disbursement.Amount,
	})
	s.emitAudit(ctx, audit.Event{
		Action:    audit.ActionTransactionRecorded,
		Entity:    audit.EntityTransaction,
		EntityID:  uint64(transaction.ID),
		RelatedID: uint64(transaction.PolicyID),
		Amount:    transaction.Amount,
	})
	if s.metrics != nil {
		s.metrics.IncrementDisbursementsRecorded()
	}
	s.log(ctx, "claim disbursed", "claim_id", claimID, "disbursement_id", disbursement.ID, "amount", disbursement.Amount)
	return disbursement, transaction, nil
}

func (s *Service) GetAppointment(ctx context.Context, appointmentID id.AppointmentID) (*models.Appointment, error) {
	return s.getAppointment(ctx, appointmentID)
}

func (s *Service) GetClaim(ctx context.Context, claimID id.ClaimID) (*models.Claim, error) {
	return s.getClaim(ctx, claimID)
}

func (s *Service) ListAppointments(ctx context.Context, patientID id.PatientID) ([]*models.Appointment, error) {
	appointments, err := s.stores.Appointments.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list appointments")
	}
	return appointments, nil
}

func (s *Service) ListBills(ctx context.Context, appointmentID id.AppointmentID) ([]*models.Bill, error) {
	bills, err := s.stores.Bills.ListByAppointment(ctx, appointmentID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list bills")
	}
	return bills, nil
}

func (s *Service) ListTreatments(ctx context.Context, appointmentID id.AppointmentID) ([]*models.TreatmentRecord, error) {
	treatments, err := s.stores.Treatments.ListByAppointment(ctx, appointmentID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list treatments")
	}
	return treatments, nil
}

func (s *Service) ListClaims(ctx context.Context, patientID id.PatientID) ([]*models.Claim, error) {
	claims, err := s.stores.Claims.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list claims")
	}
	return claims, nil
}

func (s *Service) ListDisbursements(ctx context.Context, claimID id.ClaimID) ([]*models.Disbursement, error) {
	disbursements, err := s.stores.Disbursements.ListByClaim(ctx, claimID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list disbursements")
	}
	return disbursements, nil
}

func (s *Service) ListTransactions(ctx context.Context, patientID id.PatientID) ([]*models.Transaction, error) {
	transactions, err := s.stores.Transactions.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list transactions")
	}
	return transactions, nil
}

// requireBoundPolicy checks that the policy is active and currently bound to
// the patient. Shared by claim submission and approval.
func (s *Service) requireBoundPolicy(ctx context.Context, policyID id.PolicyID, patientID id.PatientID) error {
	policy, err := s.collab.Policies.Get(ctx, policyID)
	if err != nil {
		if errors.Is(err, policystore.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "policy not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load policy")
	}
	if !policy.Active {
		return dErrors.New(dErrors.CodePolicyInactive, "policy is not active")
	}
	patient, err := s.getPatient(ctx, patientID)
	if err != nil {
		return err
	}
	if patient.CurrentPolicy != policyID {
		return dErrors.New(dErrors.CodePolicyMismatch, "policy is not bound to this patient")
	}
	return nil
}

func (s *Service) requireVisited(ctx context.Context, appointmentID id.AppointmentID) error {
	appointment, err := s.getAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}
	if !appointment.Visited {
		return dErrors.New(dErrors.CodeAppointmentNotVisited, "appointment has not been visited")
	}
	return nil
}

func (s *Service) getAppointment(ctx context.Context, appointmentID id.AppointmentID) (*models.Appointment, error) {
	appointment, err := s.stores.Appointments.Get(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "appointment not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load appointment")
	}
	return appointment, nil
}

func (s *Service) getClaim(ctx context.Context, claimID id.ClaimID) (*models.Claim, error) {
	claim, err := s.stores.Claims.Get(ctx, claimID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "claim not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load claim")
	}
	return claim, nil
}

func (s *Service) getPatient(ctx context.Context, patientID id.PatientID) (*directorymodels.Patient, error) {
	patient, err := s.collab.Patients.Get(ctx, patientID)
	if err != nil {
		if errors.Is(err, directorystore.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "patient not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load patient")
	}
	return patient, nil
}

func (s *Service) getHospital(ctx context.Context, hospitalID id.HospitalID) (*directorymodels.Hospital, error) {
	hospital, err := s.collab.Hospitals.Get(ctx, hospitalID)
	if err != nil {
		if errors.Is(err, directorystore.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "hospital not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load hospital")
	}
	return hospital, nil
}

// reject counts a failed operation by its domain code before returning it.
func (s *Service) reject(operation string, err error) error {
	if s.metrics != nil {
		var de *dErrors.Error
		if errors.As(err, &de) {
			s.metrics.IncrementRejected(operation, string(de.Code))
		}
	}
	return err
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	_ = s.auditor.Emit(ctx, event)
}

func (s *Service) log(ctx context.Context, msg string, args ...any) {
	if s.logger == nil {
		return
	}
	s.logger.InfoContext(ctx, msg, args...)
}
