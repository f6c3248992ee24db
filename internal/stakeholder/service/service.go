package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"caresure/internal/audit"
	"caresure/internal/platform/txn"
	"caresure/internal/stakeholder/models"
	"caresure/internal/stakeholder/store"
	id "caresure/pkg/domain"
	dErrors "caresure/pkg/domain-errors"
)

// Store defines the persistence interface for stakeholder records.
// Error Contract:
// - Get and SetVerified return store.ErrNotFound when no record exists
// - Other methods return nil on success or wrapped errors on failure
type Store interface {
	Create(ctx context.Context, role models.Role, now time.Time) (*models.Stakeholder, error)
	Get(ctx context.Context, stakeholderID id.StakeholderID) (*models.Stakeholder, error)
	SetVerified(ctx context.Context, stakeholderID id.StakeholderID, now time.Time) (*models.Stakeholder, error)
	List(ctx context.Context) ([]*models.Stakeholder, error)
}

type Option func(*Service)

// WithLogger sets the logger instance for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// Service owns the identity/verification ledger. Every privileged operation
// elsewhere calls RequireVerified before mutating anything.
type Service struct {
	store   Store
	tx      *txn.Serializer
	auditor *audit.Publisher
	logger  *slog.Logger
}

func NewService(store Store, tx *txn.Serializer, auditor *audit.Publisher, opts ...Option) *Service {
	svc := &Service{store: store, tx: tx, auditor: auditor}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Register allocates the next stakeholder id for the given role. Records
// start unverified; there are no other failure conditions beyond an unknown
// role.
func (s *Service) Register(ctx context.Context, role models.Role) (*models.Stakeholder, error) {
	if !role.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("invalid role: %s", role))
	}

	var record *models.Stakeholder
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		record, err = s.store.Create(ctx, role, time.Now())
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create stakeholder")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitAudit(ctx, audit.Event{
		Action:   audit.ActionStakeholderRegistered,
		Entity:   audit.EntityStakeholder,
		EntityID: uint64(record.ID),
	})
	s.log(ctx, "stakeholder registered", "stakeholder_id", record.ID, "role", role)
	return record, nil
}

// Verify marks a stakeholder as verified. Re-verifying an already verified
// stakeholder is a no-op success; the audit event fires on the first
// transition only.
func (s *Service) Verify(ctx context.Context, stakeholderID id.StakeholderID) error {
	if stakeholderID.IsNil() {
		return dErrors.New(dErrors.CodeNotFound, "stakeholder not found")
	}

	var transitioned bool
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		existing, err := s.store.Get(ctx, stakeholderID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "stakeholder not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read stakeholder")
		}
		if existing.Verified {
			return nil
		}
		if _, err := s.store.SetVerified(ctx, stakeholderID, time.Now()); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify stakeholder")
		}
		transitioned = true
		return nil
	})
	if err != nil {
		return err
	}

	if transitioned {
		s.emitAudit(ctx, audit.Event{
			Action:   audit.ActionStakeholderVerified,
			Entity:   audit.EntityStakeholder,
			EntityID: uint64(stakeholderID),
		})
		s.log(ctx, "stakeholder verified", "stakeholder_id", stakeholderID)
	}
	return nil
}

// RequireVerified is the gate predicate used by every privileged operation.
// An absent stakeholder fails the gate the same way an unverified one does.
func (s *Service) RequireVerified(ctx context.Context, stakeholderID id.StakeholderID) error {
	if stakeholderID.IsNil() {
		return dErrors.New(dErrors.CodeNotVerified, "stakeholder is not verified")
	}
	record, err := s.store.Get(ctx, stakeholderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotVerified, "stakeholder is not verified")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read stakeholder")
	}
	if !record.Verified {
		return dErrors.New(dErrors.CodeNotVerified, "stakeholder is not verified")
	}
	return nil
}

func (s *Service) Get(ctx context.Context, stakeholderID id.StakeholderID) (*models.Stakeholder, error) {
	record, err := s.store.Get(ctx, stakeholderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "stakeholder not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read stakeholder")
	}
	return record, nil
}

func (s *Service) List(ctx context.Context) ([]*models.Stakeholder, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list stakeholders")
	}
	return records, nil
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
