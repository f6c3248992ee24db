package audit

import "time"

// Event is emitted from domain logic to capture lifecycle transitions. Keep it
// transport-agnostic so stores and sinks can fan out. EntityID identifies the
// record the action is about; RelatedID carries the other side of a binding
// (the endorsing insurer, the claim behind a disbursement, and so on).
type Event struct {
	Timestamp time.Time
	Action    string
	Entity    string
	EntityID  uint64
	RelatedID uint64
	Amount    int64
}

// Lifecycle actions observable by external auditors.
const (
	ActionStakeholderRegistered   = "stakeholder_registered"
	ActionStakeholderVerified     = "stakeholder_verified"
	ActionEndorsementRecorded     = "endorsement_recorded"
	ActionHospitalEndorsed        = "hospital_endorsed"
	ActionPolicyCreated           = "policy_created"
	ActionSubscriptionCreated     = "subscription_created"
	ActionSubscriptionDeactivated = "subscription_deactivated"
	ActionAppointmentCreated      = "appointment_created"
	ActionAppointmentVisited      = "appointment_visited"
	ActionBillRecorded            = "bill_recorded"
	ActionTreatmentRecorded       = "treatment_recorded"
	ActionClaimSubmitted          = "claim_submitted"
	ActionClaimApproved           = "claim_approved"
	ActionDisbursementRecorded    = "disbursement_recorded"
	ActionTransactionRecorded     = "transaction_recorded"
)

// Entity kinds referenced by events.
const (
	EntityStakeholder  = "stakeholder"
	EntityHospital     = "hospital"
	EntityPolicy       = "policy"
	EntitySubscription = "subscription"
	EntityAppointment  = "appointment"
	EntityBill         = "bill"
	EntityTreatment    = "treatment"
	EntityClaim        = "claim"
	EntityDisbursement = "disbursement"
	EntityTransaction  = "transaction"
)
