package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"advisor/internal/casefile"
	"advisor/internal/intake"
	"advisor/internal/recommend"
	dErrors "advisor/pkg/domain-errors"
	"advisor/pkg/platform/sentinel"
)

type SessionSuite struct {
	suite.Suite
	ctrl  *gomock.Controller
	rec   *MockRecommender
	store *casefile.InMemory
	sess  *Session
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

func (s *SessionSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.rec = NewMockRecommender(s.ctrl)
	s.store = casefile.NewInMemory()
	s.sess = New(s.rec, s.store)
}

func validProfile() intake.ClientProfile {
	return intake.ClientProfile{
		Age:             "45",
		State:           "TX",
		Gender:          "M",
		CoverageType:    "Term",
		DesiredCoverage: "250000",
	}
}

func sampleItems() []recommend.Item {
	return []recommend.Item{
		{Carrier: "Foresters", Product: "Strong Foundation", Confidence: 0.92, PremiumTier: recommend.TierLow},
		{Carrier: "AIG", Product: "Select-a-Term", Confidence: 0.85, PremiumTier: recommend.TierMedium},
	}
}

func (s *SessionSuite) TestSubmitInstallsResults() {
	s.sess.SetProfile(validProfile())
	s.rec.EXPECT().
		Recommend(gomock.Any(), gomock.Any()).
		Return(sampleItems(), nil)

	rs, err := s.sess.Submit(context.Background())

	s.Require().NoError(err)
	s.Require().NotNil(rs)
	s.Equal(2, rs.Len())
	s.Same(rs, s.sess.Results())
}

func (s *SessionSuite) TestSubmitInvalidProfileNeverCallsService() {
	s.sess.SetProfile(intake.ClientProfile{Age: "45", State: "ZZ", Gender: "M", CoverageType: "Term", DesiredCoverage: "250000"})

	rs, err := s.sess.Submit(context.Background())

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	s.Nil(rs)
	s.Nil(s.sess.Results())
}

func (s *SessionSuite) TestSubmitFailureClearsPriorResults() {
	s.sess.SetProfile(validProfile())
	s.rec.EXPECT().
		Recommend(gomock.Any(), gomock.Any()).
		Return(sampleItems(), nil)
	s.rec.EXPECT().
		Recommend(gomock.Any(), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeServiceUnavailable, "Error getting recommendations. Please try again."))

	first, err := s.sess.Submit(context.Background())
	s.Require().NoError(err)
	s.Require().NoError(s.sess.Selector().Toggle(first.Items()[0]))

	_, err = s.sess.Submit(context.Background())

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeServiceUnavailable))
	s.Nil(s.sess.Results())
	s.Zero(s.sess.Selector().Len())
}

func (s *SessionSuite) TestNewSubmissionSupersedesPendingOne() {
	s.sess.SetProfile(validProfile())

	started := make(chan struct{})
	s.rec.EXPECT().
		Recommend(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ intake.Request) ([]recommend.Item, error) {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		})
	s.rec.EXPECT().
		Recommend(gomock.Any(), gomock.Any()).
		Return(sampleItems(), nil)

	firstErr := make(chan error, 1)
	go func() {
		_, err := s.sess.Submit(context.Background())
		firstErr <- err
	}()
	<-started

	rs, err := s.sess.Submit(context.Background())

	s.Require().NoError(err)
	s.Equal(2, rs.Len())
	s.Require().ErrorIs(<-firstErr, context.Canceled)
	s.Same(rs, s.sess.Results())
}

func (s *SessionSuite) TestSupersededResponseNeverOverwritesNewerOne() {
	s.sess.SetProfile(validProfile())

	started := make(chan struct{})
	release := make(chan struct{})
	s.rec.EXPECT().
		Recommend(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ intake.Request) ([]recommend.Item, error) {
			close(started)
			<-release
			// Completes despite the cancel, as a slow network call might.
			return []recommend.Item{{Carrier: "Stale", Product: "Stale", Confidence: 0.5}}, nil
		})
	s.rec.EXPECT().
		Recommend(gomock.Any(), gomock.Any()).
		Return(sampleItems(), nil)

	firstErr := make(chan error, 1)
	go func() {
		_, err := s.sess.Submit(context.Background())
		firstErr <- err
	}()
	<-started

	rs, err := s.sess.Submit(context.Background())
	s.Require().NoError(err)
	close(release)

	s.Require().ErrorIs(<-firstErr, context.Canceled)
	s.Same(rs, s.sess.Results())
	s.Equal("Foresters", s.sess.Results().Items()[0].Carrier)
}

func (s *SessionSuite) TestSetProfileDerivesAgeFromDateOfBirth() {
	now := time.Date(2024, time.September, 1, 12, 0, 0, 0, time.UTC)
	sess := New(s.rec, s.store, WithClock(func() time.Time { return now }))

	p := validProfile()
	p.Age = "30"
	p.DateOfBirth = "1979-06-15"
	sess.SetProfile(p)

	s.Equal("45", sess.Profile().Age)
}

func (s *SessionSuite) TestSaveCaseSnapshotsActiveState() {
	s.sess.SetProfile(validProfile())
	s.rec.EXPECT().
		Recommend(gomock.Any(), gomock.Any()).
		Return(sampleItems(), nil)

	_, err := s.sess.Submit(context.Background())
	s.Require().NoError(err)

	saved, err := s.sess.SaveCase(context.Background())

	s.Require().NoError(err)
	s.NotEmpty(saved.ID)
	s.Len(saved.Recommendations, 2)

	cases, err := s.sess.Cases(context.Background())
	s.Require().NoError(err)
	s.Require().Len(cases, 1)
	s.Equal(saved.ID, cases[0].ID)
}

func (s *SessionSuite) TestLoadCaseReplacesActiveStateWithoutMutatingStore() {
	profile := validProfile()
	stored, err := s.store.Save(context.Background(), profile, sampleItems())
	s.Require().NoError(err)

	loaded, err := s.sess.LoadCase(context.Background(), stored.ID)

	s.Require().NoError(err)
	s.Equal(stored.ID, loaded.ID)
	s.Equal("TX", s.sess.Profile().State)
	s.Require().NotNil(s.sess.Results())
	s.Equal(2, s.sess.Results().Len())

	// Editing the active session must not reach back into the store.
	edited := s.sess.Profile()
	edited.State = "CA"
	s.sess.SetProfile(edited)

	fromStore, err := s.store.Load(context.Background(), stored.ID)
	s.Require().NoError(err)
	s.Equal("TX", fromStore.FormData.State)
}

func (s *SessionSuite) TestLoadCaseUnknownID() {
	_, err := s.sess.LoadCase(context.Background(), "no-such-case")
	s.Require().Error(err)
}

func (s *SessionSuite) TestDeleteCase() {
	stored, err := s.store.Save(context.Background(), validProfile(), nil)
	s.Require().NoError(err)

	s.Require().NoError(s.sess.DeleteCase(context.Background(), stored.ID))

	cases, err := s.sess.Cases(context.Background())
	s.Require().NoError(err)
	s.Empty(cases)

	err = s.sess.DeleteCase(context.Background(), stored.ID)
	s.Require().Error(err)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
