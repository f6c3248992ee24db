package models

import (
	"time"

	id "caresure/pkg/domain"
)

// Patient is a base record owned by the directory. The workflow core never
// inspects the payload fields; it reads existence and the current-policy
// pointer, and the subscription machine writes the pointer.
type Patient struct {
	ID            id.PatientID
	StakeholderID id.StakeholderID
	FirstName     string
	LastName      string
	Address       string
	CurrentPolicy id.PolicyID
	CreatedAt     time.Time
}

// Hospital carries the endorsement state mutated by the endorsement ledger.
// Endorsers preserves insertion order; Endorsed flips true exactly once when
// the endorser set reaches quorum and never reverts.
type Hospital struct {
	ID            id.HospitalID
	StakeholderID id.StakeholderID
	Name          string
	City          string
	Endorsers     []id.InsurerID
	Endorsed      bool
	CreatedAt     time.Time
}

// HasEndorser scans the endorser set for the given insurer. Linear scan is
// fine at expected cardinality and stays correct for arbitrary size.
func (h Hospital) HasEndorser(insurerID id.InsurerID) bool {
	for _, e := range h.Endorsers {
		if e == insurerID {
			return true
		}
	}
	return false
}

// Insurer is immutable after creation.
type Insurer struct {
	ID            id.InsurerID
	StakeholderID id.StakeholderID
	Name          string
	CreatedAt     time.Time
}

// TreatmentType is a catalog entry keyed by its code, the natural uniqueness
// key for treatments.
type TreatmentType struct {
	Code        string
	Description string
	UnitCost    int64
	CreatedAt   time.Time
}

// Document is an opaque attachment owned by a patient.
type Document struct {
	ID        id.DocumentID
	PatientID id.PatientID
	Name      string
	URI       string
	CreatedAt time.Time
}
