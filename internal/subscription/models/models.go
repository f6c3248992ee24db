package models

import (
	"time"

	id "caresure/pkg/domain"
)

// Subscription binds a patient to a policy for a bounded term. Deactivation
// sets Active=false and clears the patient's current-policy pointer.
type Subscription struct {
	ID        id.SubscriptionID
	PolicyID  id.PolicyID
	PatientID id.PatientID
	Start     time.Time
	End       time.Time
	Active    bool
	CreatedAt time.Time
}
