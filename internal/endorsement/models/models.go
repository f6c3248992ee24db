package models

import (
	"time"

	id "caresure/pkg/domain"
)

// Quorum is the number of distinct insurer endorsements that promotes a
// hospital to endorsed status. The promotion is irreversible; removing an
// endorser is not supported.
const Quorum = 3

// Endorsement is the event recorded for each insurer->hospital endorsement.
// At most one exists per (hospital, insurer) pair.
type Endorsement struct {
	HospitalID id.HospitalID
	InsurerID  id.InsurerID
	Timestamp  time.Time
}
