package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"caresure/internal/audit"
	directorymodels "caresure/internal/directory/models"
	directorystore "caresure/internal/directory/store"
	"caresure/internal/endorsement/store"
	"caresure/internal/platform/txn"
	id "caresure/pkg/domain"
	dErrors "caresure/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	service   *Service
	hospitals *directorystore.HospitalStore
	insurers  *directorystore.InsurerStore
	auditor   *audit.Publisher
}

func (s *ServiceSuite) SetupTest() {
	s.hospitals = directorystore.NewHospitals()
	s.insurers = directorystore.NewInsurers()
	s.auditor = audit.NewPublisher(audit.NewInMemoryStore())
	s.service = NewService(s.hospitals, s.insurers, store.New(), txn.New(), s.auditor)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) newHospital() id.HospitalID {
	hospital, err := s.hospitals.Create(context.Background(), &directorymodels.Hospital{Name: "St. Mary"})
	s.Require().NoError(err)
	return hospital.ID
}

func (s *ServiceSuite) newInsurer() id.InsurerID {
	insurer, err := s.insurers.Create(context.Background(), &directorymodels.Insurer{Name: "Acme Mutual"})
	s.Require().NoError(err)
	return insurer.ID
}

func (s *ServiceSuite) TestEndorse_PromotesAtQuorum() {
	ctx := context.Background()
	hospitalID := s.newHospital()

	for i := 0; i < 2; i++ {
		s.Require().NoError(s.service.Endorse(ctx, hospitalID, s.newInsurer()))
		hospital, err := s.hospitals.Get(ctx, hospitalID)
		s.Require().NoError(err)
		s.False(hospital.Endorsed, "must not promote before quorum")
	}

	s.Require().NoError(s.service.Endorse(ctx, hospitalID, s.newInsurer()))
	hospital, err := s.hospitals.Get(ctx, hospitalID)
	s.Require().NoError(err)
	s.True(hospital.Endorsed)
	s.Len(hospital.Endorsers, 3)
}

func (s *ServiceSuite) TestEndorse_DuplicateRejected() {
	ctx := context.Background()
	hospitalID := s.newHospital()
	insurerID := s.newInsurer()

	s.Require().NoError(s.service.Endorse(ctx, hospitalID, insurerID))

	err := s.service.Endorse(ctx, hospitalID, insurerID)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeDuplicateEndorsement))

	endorsers, err := s.service.ListEndorsers(ctx, hospitalID)
	s.Require().NoError(err)
	s.Len(endorsers, 1, "duplicate must not grow the endorser set")
}

func (s *ServiceSuite) TestEndorse_PromotionIsOneWay() {
	ctx := context.Background()
	hospitalID := s.newHospital()

	for i := 0; i < 4; i++ {
		s.Require().NoError(s.service.Endorse(ctx, hospitalID, s.newInsurer()))
	}

	hospital, err := s.hospitals.Get(ctx, hospitalID)
	s.Require().NoError(err)
	s.True(hospital.Endorsed, "endorsements past quorum keep the flag set")
	s.Len(hospital.Endorsers, 4)
}

func (s *ServiceSuite) TestEndorse_UnknownParticipants() {
	ctx := context.Background()
	insurerID := s.newInsurer()

	err := s.service.Endorse(ctx, 404, insurerID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	hospitalID := s.newHospital()
	err = s.service.Endorse(ctx, hospitalID, 404)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	err = s.service.Endorse(ctx, 0, insurerID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestListEndorsers_InsertionOrder() {
	ctx := context.Background()
	hospitalID := s.newHospital()
	first := s.newInsurer()
	second := s.newInsurer()
	third := s.newInsurer()

	s.Require().NoError(s.service.Endorse(ctx, hospitalID, second))
	s.Require().NoError(s.service.Endorse(ctx, hospitalID, first))
	s.Require().NoError(s.service.Endorse(ctx, hospitalID, third))

	endorsers, err := s.service.ListEndorsers(ctx, hospitalID)
	s.Require().NoError(err)
	s.Equal([]id.InsurerID{second, first, third}, endorsers)

	events, err := s.service.ListEvents(ctx, hospitalID)
	s.Require().NoError(err)
	s.Len(events, 3)
	s.Equal(second, events[0].InsurerID)
}

func (s *ServiceSuite) TestEndorse_AuditTrail() {
	ctx := context.Background()
	hospitalID := s.newHospital()

	for i := 0; i < 3; i++ {
		s.Require().NoError(s.service.Endorse(ctx, hospitalID, s.newInsurer()))
	}

	events, err := s.auditor.List(ctx, audit.EntityHospital, uint64(hospitalID))
	s.Require().NoError(err)
	recorded, promoted := 0, 0
	for _, e := range events {
		switch e.Action {
		case audit.ActionEndorsementRecorded:
			recorded++
		case audit.ActionHospitalEndorsed:
			promoted++
		}
	}
	s.Equal(3, recorded)
	s.Equal(1, promoted, "promotion event fires exactly once")
}
