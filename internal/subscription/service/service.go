package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"caresure/internal/audit"
	directorymodels "caresure/internal/directory/models"
	directorystore "caresure/internal/directory/store"
	"caresure/internal/platform/txn"
	policymodels "caresure/internal/policy/models"
	policystore "caresure/internal/policy/store"
	"caresure/internal/subscription/models"
	"caresure/internal/subscription/store"
	id "caresure/pkg/domain"
	dErrors "caresure/pkg/domain-errors"
)

// Store is the persistence surface for subscriptions.
type Store interface {
	Create(ctx context.Context, subscription *models.Subscription) (*models.Subscription, error)
	Get(ctx context.Context, subscriptionID id.SubscriptionID) (*models.Subscription, error)
	SetActive(ctx context.Context, subscriptionID id.SubscriptionID, active bool) error
	ListByPatient(ctx context.Context, patientID id.PatientID) ([]*models.Subscription, error)
}

// Policies provides catalog reads for the subscribe gate.
type Policies interface {
	Get(ctx context.Context, policyID id.PolicyID) (*policymodels.Policy, error)
}

// Patients is the directory surface holding the current-policy pointer.
type Patients interface {
	Get(ctx context.Context, patientID id.PatientID) (*directorymodels.Patient, error)
	SetCurrentPolicy(ctx context.Context, patientID id.PatientID, policyID id.PolicyID) error
}

// Stakeholders exposes the verification gate.
type Stakeholders interface {
	RequireVerified(ctx context.Context, stakeholderID id.StakeholderID) error
}

type Option func(*Service)

// WithLogger sets the logger instance for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// Service runs the subscription state machine. Subscribing overwrites the
// patient's current-policy pointer last-write-wins; deactivating clears it.
type Service struct {
	store        Store
	policies     Policies
	patients     Patients
	stakeholders Stakeholders
	tx           *txn.Serializer
	auditor      *audit.Publisher
	logger       *slog.Logger
}

func NewService(store Store, policies Policies, patients Patients, stakeholders Stakeholders, tx *txn.Serializer, auditor *audit.Publisher, opts ...Option) *Service {
	svc := &Service{
		store:        store,
		policies:     policies,
		patients:     patients,
		stakeholders: stakeholders,
		tx:           tx,
		auditor:      auditor,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Subscribe binds a verified patient to an active policy for the policy's
// term. Any prior policy binding is overwritten.
func (s *Service) Subscribe(ctx context.Context, policyID id.PolicyID, patientID id.PatientID) (*models.Subscription, error) {
	var created *models.Subscription
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		policy, err := s.policies.Get(ctx, policyID)
		if err != nil {
			if errors.Is(err, policystore.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "policy not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load policy")
		}
		if !policy.Active {
			return dErrors.New(dErrors.CodePolicyInactive, "policy is not active")
		}

		patient, err := s.patients.Get(ctx, patientID)
		if err != nil {
			if errors.Is(err, directorystore.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "patient not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load patient")
		}
		if err := s.stakeholders.RequireVerified(ctx, patient.StakeholderID); err != nil {
			return err
		}

		start := time.Now()
		created, err = s.store.Create(ctx, &models.Subscription{
			PolicyID:  policyID,
			PatientID: patientID,
			Start:     start,
			End:       start.AddDate(0, 0, policy.TermDays),
			Active:    true,
		})
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store subscription")
		}
		if err := s.patients.SetCurrentPolicy(ctx, patientID, policyID); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to bind policy to patient")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.auditor != nil {
		_ = s.auditor.Emit(ctx, audit.Event{
			Action:    audit.ActionSubscriptionCreated,
			Entity:    audit.EntitySubscription,
			EntityID:  uint64(created.ID),
			RelatedID: uint64(policyID),
		})
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "subscription created",
			"subscription_id", created.ID,
			"policy_id", policyID,
			"patient_id", patientID,
		)
	}
	return created, nil
}

// Deactivate sets the subscription inactive and clears the owning patient's
// current-policy pointer. The pointer is cleared unconditionally, even if the
// patient has since subscribed to a different policy; callers relying on the
// binding must re-subscribe.
func (s *Service) Deactivate(ctx context.Context, subscriptionID id.SubscriptionID) error {
	var patientID id.PatientID
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		subscription, err := s.store.Get(ctx, subscriptionID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "subscription not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load subscription")
		}
		if err := s.store.SetActive(ctx, subscriptionID, false); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to deactivate subscription")
		}
		if err := s.patients.SetCurrentPolicy(ctx, subscription.PatientID, 0); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear policy binding")
		}
		patientID = subscription.PatientID
		return nil
	})
	if err != nil {
		return err
	}

	if s.auditor != nil {
		_ = s.auditor.Emit(ctx, audit.Event{
			Action:    audit.ActionSubscriptionDeactivated,
			Entity:    audit.EntitySubscription,
			EntityID:  uint64(subscriptionID),
			RelatedID: uint64(patientID),
		})
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "subscription deactivated", "subscription_id", subscriptionID, "patient_id", patientID)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, subscriptionID id.SubscriptionID) (*models.Subscription, error) {
	subscription, err := s.store.Get(ctx, subscriptionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "subscription not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load subscription")
	}
	return subscription, nil
}

// ListByPatient returns a patient's subscriptions in creation order.
func (s *Service) ListByPatient(ctx context.Context, patientID id.PatientID) ([]*models.Subscription, error) {
	subscriptions, err := s.store.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list subscriptions")
	}
	return subscriptions, nil
}
