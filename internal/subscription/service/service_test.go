package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"caresure/internal/audit"
	directorymodels "caresure/internal/directory/models"
	directorystore "caresure/internal/directory/store"
	"caresure/internal/platform/txn"
	policymodels "caresure/internal/policy/models"
	policystore "caresure/internal/policy/store"
	"caresure/internal/subscription/store"
	stakeholdermodels "caresure/internal/stakeholder/models"
	stakeholderservice "caresure/internal/stakeholder/service"
	stakeholderstore "caresure/internal/stakeholder/store"
	id "caresure/pkg/domain"
	dErrors "caresure/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	service      *Service
	stakeholders *stakeholderservice.Service
	policies     *policystore.InMemoryStore
	patients     *directorystore.PatientStore
}

func (s *ServiceSuite) SetupTest() {
	tx := txn.New()
	auditor := audit.NewPublisher(audit.NewInMemoryStore())
	s.stakeholders = stakeholderservice.NewService(stakeholderstore.New(), tx, auditor)
	s.policies = policystore.New()
	s.patients = directorystore.NewPatients()
	s.service = NewService(store.New(), s.policies, s.patients, s.stakeholders, tx, auditor)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) newPolicy(active bool) id.PolicyID {
	policy, err := s.policies.Create(context.Background(), &policymodels.Policy{
		InsurerID:  1,
		Name:       "basic-cover",
		Premium:    100,
		CoverLimit: 5000,
		TermDays:   365,
		Active:     active,
	})
	s.Require().NoError(err)
	return policy.ID
}

func (s *ServiceSuite) newPatient(verified bool) id.PatientID {
	ctx := context.Background()
	sh, err := s.stakeholders.Register(ctx, stakeholdermodels.RolePatient)
	s.Require().NoError(err)
	if verified {
		s.Require().NoError(s.stakeholders.Verify(ctx, sh.ID))
	}
	patient, err := s.patients.Create(ctx, &directorymodels.Patient{
		StakeholderID: sh.ID,
		FirstName:     "Ada",
	})
	s.Require().NoError(err)
	return patient.ID
}

func (s *ServiceSuite) TestSubscribe() {
	ctx := context.Background()
	policyID := s.newPolicy(true)
	patientID := s.newPatient(true)

	subscription, err := s.service.Subscribe(ctx, policyID, patientID)
	s.Require().NoError(err)
	s.True(subscription.Active)
	s.Equal(policyID, subscription.PolicyID)
	s.WithinDuration(subscription.Start.AddDate(0, 0, 365), subscription.End, time.Second)

	patient, err := s.patients.Get(ctx, patientID)
	s.Require().NoError(err)
	s.Equal(policyID, patient.CurrentPolicy)
}

func (s *ServiceSuite) TestSubscribe_Gates() {
	ctx := context.Background()
	activePolicy := s.newPolicy(true)
	inactivePolicy := s.newPolicy(false)
	verified := s.newPatient(true)
	unverified := s.newPatient(false)

	_, err := s.service.Subscribe(ctx, 404, verified)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	_, err = s.service.Subscribe(ctx, inactivePolicy, verified)
	s.True(dErrors.HasCode(err, dErrors.CodePolicyInactive))

	_, err = s.service.Subscribe(ctx, activePolicy, 404)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	_, err = s.service.Subscribe(ctx, activePolicy, unverified)
	s.True(dErrors.HasCode(err, dErrors.CodeNotVerified))
}

func (s *ServiceSuite) TestSubscribe_PointerLastWriteWins() {
	ctx := context.Background()
	policyA := s.newPolicy(true)
	policyB := s.newPolicy(true)
	patientID := s.newPatient(true)

	_, err := s.service.Subscribe(ctx, policyA, patientID)
	s.Require().NoError(err)
	_, err = s.service.Subscribe(ctx, policyB, patientID)
	s.Require().NoError(err)

	patient, err := s.patients.Get(ctx, patientID)
	s.Require().NoError(err)
	s.Equal(policyB, patient.CurrentPolicy)
}

func (s *ServiceSuite) TestDeactivate() {
	ctx := context.Background()
	policyID := s.newPolicy(true)
	patientID := s.newPatient(true)
	subscription, err := s.service.Subscribe(ctx, policyID, patientID)
	s.Require().NoError(err)

	s.Require().NoError(s.service.Deactivate(ctx, subscription.ID))

	got, err := s.service.Get(ctx, subscription.ID)
	s.Require().NoError(err)
	s.False(got.Active)

	patient, err := s.patients.Get(ctx, patientID)
	s.Require().NoError(err)
	s.True(patient.CurrentPolicy.IsNil())

	err = s.service.Deactivate(ctx, 404)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

// Deactivating an older subscription clears the pointer even though the
// patient has since bound a newer policy. Callers must re-subscribe to
// restore the binding.
func (s *ServiceSuite) TestDeactivate_ClearsPointerEvenAfterNewerSubscription() {
	ctx := context.Background()
	policyA := s.newPolicy(true)
	policyB := s.newPolicy(true)
	patientID := s.newPatient(true)

	first, err := s.service.Subscribe(ctx, policyA, patientID)
	s.Require().NoError(err)
	_, err = s.service.Subscribe(ctx, policyB, patientID)
	s.Require().NoError(err)

	s.Require().NoError(s.service.Deactivate(ctx, first.ID))

	patient, err := s.patients.Get(ctx, patientID)
	s.Require().NoError(err)
	s.True(patient.CurrentPolicy.IsNil(), "pointer cleared regardless of the newer binding")
}

func (s *ServiceSuite) TestListByPatient() {
	ctx := context.Background()
	policyID := s.newPolicy(true)
	patientID := s.newPatient(true)
	other := s.newPatient(true)

	_, err := s.service.Subscribe(ctx, policyID, patientID)
	s.Require().NoError(err)
	_, err = s.service.Subscribe(ctx, policyID, other)
	s.Require().NoError(err)

	subscriptions, err := s.service.ListByPatient(ctx, patientID)
	s.Require().NoError(err)
	s.Len(subscriptions, 1)
}
