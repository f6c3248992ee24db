package service

import (
	"context"
	"errors"
	"log/slog"

	"caresure/internal/audit"
	directorymodels "caresure/internal/directory/models"
	directorystore "caresure/internal/directory/store"
	"caresure/internal/platform/txn"
	"caresure/internal/policy/models"
	"caresure/internal/policy/store"
	id "caresure/pkg/domain"
	dErrors "caresure/pkg/domain-errors"
)

// Store is the persistence surface for the policy catalog.
type Store interface {
	Create(ctx context.Context, policy *models.Policy) (*models.Policy, error)
	Get(ctx context.Context, policyID id.PolicyID) (*models.Policy, error)
	SetActive(ctx context.Context, policyID id.PolicyID, active bool) error
	List(ctx context.Context) ([]*models.Policy, error)
}

// Insurers provides existence checks for the issuing side.
type Insurers interface {
	Get(ctx context.Context, insurerID id.InsurerID) (*directorymodels.Insurer, error)
}

// Stakeholders exposes the verification gate.
type Stakeholders interface {
	RequireVerified(ctx context.Context, stakeholderID id.StakeholderID) error
}

// Terms carries the coverage terms supplied at policy creation.
type Terms struct {
	Name       string
	Coverage   string
	Premium    int64
	CoverLimit int64
	TermDays   int
}

type Option func(*Service)

// WithLogger sets the logger instance for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// Service manages the insurer-issued policy catalog. Creation is gated on the
// issuing insurer's stakeholder verification.
type Service struct {
	store        Store
	insurers     Insurers
	stakeholders Stakeholders
	tx           *txn.Serializer
	auditor      *audit.Publisher
	logger       *slog.Logger
}

func NewService(store Store, insurers Insurers, stakeholders Stakeholders, tx *txn.Serializer, auditor *audit.Publisher, opts ...Option) *Service {
	svc := &Service{
		store:        store,
		insurers:     insurers,
		stakeholders: stakeholders,
		tx:           tx,
		auditor:      auditor,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Create validates terms and stores a new active policy for a verified insurer.
func (s *Service) Create(ctx context.Context, insurerID id.InsurerID, terms Terms) (*models.Policy, error) {
	if err := validateTerms(terms); err != nil {
		return nil, err
	}

	var created *models.Policy
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		insurer, err := s.insurers.Get(ctx, insurerID)
		if err != nil {
			if errors.Is(err, directorystore.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "insurer not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load insurer")
		}
		if err := s.stakeholders.RequireVerified(ctx, insurer.StakeholderID); err != nil {
			return err
		}

		created, err = s.store.Create(ctx, &models.Policy{
			InsurerID:  insurerID,
			Name:       terms.Name,
			Coverage:   terms.Coverage,
			Premium:    terms.Premium,
			CoverLimit: terms.CoverLimit,
			TermDays:   terms.TermDays,
			Active:     true,
		})
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store policy")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.auditor != nil {
		_ = s.auditor.Emit(ctx, audit.Event{
			Action:    audit.ActionPolicyCreated,
			Entity:    audit.EntityPolicy,
			EntityID:  uint64(created.ID),
			RelatedID: uint64(insurerID),
			Amount:    created.Premium,
		})
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "policy created", "policy_id", created.ID, "insurer_id", insurerID)
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, policyID id.PolicyID) (*models.Policy, error) {
	policy, err := s.store.Get(ctx, policyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "policy not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load policy")
	}
	return policy, nil
}

// SetActive toggles a policy's availability for new subscriptions and claims.
func (s *Service) SetActive(ctx context.Context, policyID id.PolicyID, active bool) error {
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.SetActive(ctx, policyID, active); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "policy not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update policy")
		}
		return nil
	})
	if err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "policy active flag updated", "policy_id", policyID, "active", active)
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]*models.Policy, error) {
	policies, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list policies")
	}
	return policies, nil
}

func validateTerms(terms Terms) error {
	switch {
	case terms.Name == "":
		return dErrors.New(dErrors.CodeInvalidInput, "policy name is required")
	case terms.Premium <= 0:
		return dErrors.New(dErrors.CodeInvalidInput, "premium must be positive")
	case terms.CoverLimit <= 0:
		return dErrors.New(dErrors.CodeInvalidInput, "cover limit must be positive")
	case terms.TermDays <= 0:
		return dErrors.New(dErrors.CodeInvalidInput, "term must be positive")
	}
	return nil
}
