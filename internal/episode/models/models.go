package models

import (
	"time"

	id "caresure/pkg/domain"
)

// Appointment is the entry point of a care episode. Visited flips true exactly
// once when the visit occurs; bills, treatments and claims require it.
type Appointment struct {
	ID          id.AppointmentID
	PatientID   id.PatientID
	HospitalID  id.HospitalID
	ScheduledAt time.Time
	Reason      string
	Visited     bool
	CreatedAt   time.Time
}

// Bill is recorded against a visited appointment. Paid is mutated by external
// settlement.
type Bill struct {
	ID            id.BillID
	AppointmentID id.AppointmentID
	Amount        int64
	Paid          bool
	CreatedAt     time.Time
}

// TreatmentRecord ties a catalog treatment to a visited appointment. Cost is
// the catalog unit cost at recording time multiplied by the quantity.
type TreatmentRecord struct {
	ID            id.TreatmentID
	AppointmentID id.AppointmentID
	Code          string
	Quantity      int
	Cost          int64
	CreatedAt     time.Time
}

// Claim is submitted against the patient's bound policy. AppointmentID is the
// verification reference back to the visited appointment. Approved flips true
// exactly once; a second approval attempt fails.
type Claim struct {
	ID            id.ClaimID
	PolicyID      id.PolicyID
	PatientID     id.PatientID
	HospitalID    id.HospitalID
	AppointmentID id.AppointmentID
	Amount        int64
	Approved      bool
	CreatedAt     time.Time
}

// Disbursement records the payout for an approved claim. Immutable.
type Disbursement struct {
	ID        id.DisbursementID
	ClaimID   id.ClaimID
	Amount    int64
	CreatedAt time.Time
}

// Transaction is the ledger entry paired with a disbursement. Immutable.
type Transaction struct {
	ID        id.TransactionID
	PolicyID  id.PolicyID
	PatientID id.PatientID
	Amount    int64
	Status    string
	CreatedAt time.Time
}

// Transaction statuses.
const (
	TransactionStatusCompleted = "completed"
)
