package models

import (
	"time"

	id "caresure/pkg/domain"
)

// Role identifies what kind of participant a stakeholder is. The role is
// fixed at registration and drives which privileged operations apply.
type Role string

const (
	RolePatient  Role = "patient"
	RoleHospital Role = "hospital"
	RoleInsurer  Role = "insurer"
)

// IsValid reports whether the role is one of the known participant kinds.
func (r Role) IsValid() bool {
	switch r {
	case RolePatient, RoleHospital, RoleInsurer:
		return true
	}
	return false
}

// Stakeholder is any registered participant. The verified flag gates every
// privileged action in the other components; it flips true at most once and
// never reverts.
type Stakeholder struct {
	ID        id.StakeholderID
	Role      Role
	Verified  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
