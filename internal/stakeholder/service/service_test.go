package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"caresure/internal/audit"
	"caresure/internal/platform/txn"
	"caresure/internal/stakeholder/models"
	"caresure/internal/stakeholder/store"
	dErrors "caresure/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	service    *Service
	auditStore *audit.InMemoryStore
}

func (s *ServiceSuite) SetupTest() {
	s.auditStore = audit.NewInMemoryStore()
	s.service = NewService(store.New(), txn.New(), audit.NewPublisher(s.auditStore))
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) TestRegister_AllocatesSequentialIDs() {
	ctx := context.Background()

	first, err := s.service.Register(ctx, models.RolePatient)
	s.Require().NoError(err)
	second, err := s.service.Register(ctx, models.RoleInsurer)
	s.Require().NoError(err)

	s.Equal(uint64(1), uint64(first.ID))
	s.Equal(uint64(2), uint64(second.ID))
	s.False(first.Verified)
	s.False(first.CreatedAt.IsZero())
	s.Equal(first.CreatedAt, first.UpdatedAt)
}

func (s *ServiceSuite) TestRegister_InvalidRole() {
	_, err := s.service.Register(context.Background(), "auditor")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *ServiceSuite) TestVerify_SetsFlagAndTimestamp() {
	ctx := context.Background()
	record, err := s.service.Register(ctx, models.RoleHospital)
	s.Require().NoError(err)

	s.Require().NoError(s.service.Verify(ctx, record.ID))

	got, err := s.service.Get(ctx, record.ID)
	s.Require().NoError(err)
	s.True(got.Verified)
	s.False(got.UpdatedAt.Before(got.CreatedAt))
}

func (s *ServiceSuite) TestVerify_UnallocatedID() {
	err := s.service.Verify(context.Background(), 99)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestVerify_Idempotent() {
	ctx := context.Background()
	record, err := s.service.Register(ctx, models.RolePatient)
	s.Require().NoError(err)

	s.Require().NoError(s.service.Verify(ctx, record.ID))
	s.Require().NoError(s.service.Verify(ctx, record.ID))

	// The verified event fires on the first transition only.
	events, err := s.auditStore.ListByEntity(ctx, audit.EntityStakeholder, uint64(record.ID))
	s.Require().NoError(err)
	verified := 0
	for _, e := range events {
		if e.Action == audit.ActionStakeholderVerified {
			verified++
		}
	}
	s.Equal(1, verified)
}

func (s *ServiceSuite) TestRequireVerified_Gate() {
	ctx := context.Background()
	record, err := s.service.Register(ctx, models.RolePatient)
	s.Require().NoError(err)

	err = s.service.RequireVerified(ctx, record.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotVerified), "unverified stakeholder must fail the gate")

	err = s.service.RequireVerified(ctx, 42)
	s.True(dErrors.HasCode(err, dErrors.CodeNotVerified), "absent stakeholder must fail the gate")

	s.Require().NoError(s.service.Verify(ctx, record.ID))
	s.NoError(s.service.RequireVerified(ctx, record.ID))
}

func TestRegister_EmitsAuditEvent(t *testing.T) {
	auditStore := audit.NewInMemoryStore()
	svc := NewService(store.New(), txn.New(), audit.NewPublisher(auditStore))

	record, err := svc.Register(context.Background(), models.RoleInsurer)
	require.NoError(t, err)

	events, err := auditStore.ListByEntity(context.Background(), audit.EntityStakeholder, uint64(record.ID))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, audit.ActionStakeholderRegistered, events[0].Action)
}
