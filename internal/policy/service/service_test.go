package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"caresure/internal/audit"
	directorymodels "caresure/internal/directory/models"
	directorystore "caresure/internal/directory/store"
	"caresure/internal/platform/txn"
	"caresure/internal/policy/store"
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
	insurers     *directorystore.InsurerStore
}

func (s *ServiceSuite) SetupTest() {
	tx := txn.New()
	auditor := audit.NewPublisher(audit.NewInMemoryStore())
	s.stakeholders = stakeholderservice.NewService(stakeholderstore.New(), tx, auditor)
	s.insurers = directorystore.NewInsurers()
	s.service = NewService(store.New(), s.insurers, s.stakeholders, tx, auditor)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func validTerms() Terms {
	return Terms{
		Name:       "basic-cover",
		Coverage:   "inpatient and outpatient care",
		Premium:    100,
		CoverLimit: 5000,
		TermDays:   365,
	}
}

// newInsurer registers an insurer stakeholder, optionally verifies it, and
// creates the directory record pointing at the stakeholder.
func (s *ServiceSuite) newInsurer(verified bool) id.InsurerID {
	ctx := context.Background()
	sh, err := s.stakeholders.Register(ctx, stakeholdermodels.RoleInsurer)
	s.Require().NoError(err)
	if verified {
		s.Require().NoError(s.stakeholders.Verify(ctx, sh.ID))
	}
	insurer, err := s.insurers.Create(ctx, &directorymodels.Insurer{
		StakeholderID: sh.ID,
		Name:          "Acme Mutual",
	})
	s.Require().NoError(err)
	return insurer.ID
}

func (s *ServiceSuite) TestCreate() {
	ctx := context.Background()
	insurerID := s.newInsurer(true)

	policy, err := s.service.Create(ctx, insurerID, validTerms())
	s.Require().NoError(err)
	s.Equal(uint64(1), uint64(policy.ID))
	s.True(policy.Active, "new policies start active")
	s.Equal(insurerID, policy.InsurerID)

	got, err := s.service.Get(ctx, policy.ID)
	s.Require().NoError(err)
	s.Equal(int64(100), got.Premium)
}

func (s *ServiceSuite) TestCreate_UnknownInsurer() {
	_, err := s.service.Create(context.Background(), 404, validTerms())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestCreate_UnverifiedInsurer() {
	insurerID := s.newInsurer(false)

	_, err := s.service.Create(context.Background(), insurerID, validTerms())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotVerified))
}

func (s *ServiceSuite) TestCreate_InvalidTerms() {
	ctx := context.Background()
	insurerID := s.newInsurer(true)

	cases := []Terms{
		{Coverage: "c", Premium: 100, CoverLimit: 5000, TermDays: 365},
		{Name: "n", Premium: 0, CoverLimit: 5000, TermDays: 365},
		{Name: "n", Premium: 100, CoverLimit: -1, TermDays: 365},
		{Name: "n", Premium: 100, CoverLimit: 5000, TermDays: 0},
	}
	for _, terms := range cases {
		_, err := s.service.Create(ctx, insurerID, terms)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	}
}

func (s *ServiceSuite) TestSetActive() {
	ctx := context.Background()
	insurerID := s.newInsurer(true)
	policy, err := s.service.Create(ctx, insurerID, validTerms())
	s.Require().NoError(err)

	s.Require().NoError(s.service.SetActive(ctx, policy.ID, false))
	got, err := s.service.Get(ctx, policy.ID)
	s.Require().NoError(err)
	s.False(got.Active)

	err = s.service.SetActive(ctx, 404, false)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestGet_NotFound() {
	_, err := s.service.Get(context.Background(), 404)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}
