// Package domain provides type-safe numeric identifiers so entity IDs cannot
// be mixed up at compile time. Identifiers are allocated by the owning store
// as monotonically increasing counters starting at 1; zero means absent.
package domain

import (
	"strconv"

	dErrors "caresure/pkg/domain-errors"
)

// Distinct ID types - the compiler prevents passing a PatientID where a
// PolicyID is expected.
type (
	StakeholderID  uint64
	PatientID      uint64
	HospitalID     uint64
	InsurerID      uint64
	PolicyID       uint64
	SubscriptionID uint64
	AppointmentID  uint64
	TreatmentID    uint64
	BillID         uint64
	ClaimID        uint64
	DisbursementID uint64
	TransactionID  uint64
	DocumentID     uint64
)

// Parse functions - use at trust boundaries (handlers, API inputs).

func ParseStakeholderID(s string) (StakeholderID, error) {
	v, err := parseID(s, "stakeholder ID")
	return StakeholderID(v), err
}

func ParsePatientID(s string) (PatientID, error) {
	v, err := parseID(s, "patient ID")
	return PatientID(v), err
}

func ParseHospitalID(s string) (HospitalID, error) {
	v, err := parseID(s, "hospital ID")
	return HospitalID(v), err
}

func ParseInsurerID(s string) (InsurerID, error) {
	v, err := parseID(s, "insurer ID")
	return InsurerID(v), err
}

func ParsePolicyID(s string) (PolicyID, error) {
	v, err := parseID(s, "policy ID")
	return PolicyID(v), err
}

func ParseSubscriptionID(s string) (SubscriptionID, error) {
	v, err := parseID(s, "subscription ID")
	return SubscriptionID(v), err
}

func ParseAppointmentID(s string) (AppointmentID, error) {
	v, err := parseID(s, "appointment ID")
	return AppointmentID(v), err
}

func ParseClaimID(s string) (ClaimID, error) {
	v, err := parseID(s, "claim ID")
	return ClaimID(v), err
}

// String methods - for logging and audit refs.

func (id StakeholderID) String() string  { return formatID(uint64(id)) }
func (id PatientID) String() string      { return formatID(uint64(id)) }
func (id HospitalID) String() string     { return formatID(uint64(id)) }
func (id InsurerID) String() string      { return formatID(uint64(id)) }
func (id PolicyID) String() string       { return formatID(uint64(id)) }
func (id SubscriptionID) String() string { return formatID(uint64(id)) }
func (id AppointmentID) String() string  { return formatID(uint64(id)) }
func (id TreatmentID) String() string    { return formatID(uint64(id)) }
func (id BillID) String() string         { return formatID(uint64(id)) }
func (id ClaimID) String() string        { return formatID(uint64(id)) }
func (id DisbursementID) String() string { return formatID(uint64(id)) }
func (id TransactionID) String() string  { return formatID(uint64(id)) }
func (id DocumentID) String() string     { return formatID(uint64(id)) }

// IsNil checks - a zero identifier is the reserved "absent/unset" value.

func (id StakeholderID) IsNil() bool  { return id == 0 }
func (id PatientID) IsNil() bool      { return id == 0 }
func (id HospitalID) IsNil() bool     { return id == 0 }
func (id InsurerID) IsNil() bool      { return id == 0 }
func (id PolicyID) IsNil() bool       { return id == 0 }
func (id SubscriptionID) IsNil() bool { return id == 0 }
func (id AppointmentID) IsNil() bool  { return id == 0 }
func (id TreatmentID) IsNil() bool    { return id == 0 }
func (id BillID) IsNil() bool         { return id == 0 }
func (id ClaimID) IsNil() bool        { return id == 0 }
func (id DisbursementID) IsNil() bool { return id == 0 }
func (id TransactionID) IsNil() bool  { return id == 0 }
func (id DocumentID) IsNil() bool     { return id == 0 }

// parseID is the shared validation logic. Zero is accepted here so store
// lookups can return a proper "not found" error; use IsNil() at the service
// layer for business validation.
func parseID(s, label string) (uint64, error) {
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, label+" must be a positive integer")
	}
	return v, nil
}

func formatID(v uint64) string {
	return strconv.FormatUint(v, 10)
}
