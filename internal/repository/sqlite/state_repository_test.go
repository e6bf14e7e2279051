package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/theoryflash/internal/repository"
	"github.com/vytor/theoryflash/internal/repository/sqlite"
	"github.com/vytor/theoryflash/internal/testutil"
)

type StateRepositorySuite struct {
	suite.Suite
	db        *sql.DB
	repo      repository.StateRepository
	profileID int64
}

func (s *StateRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewStateRepository(s.db)
	s.profileID = testutil.MustCreateProfile(s.T(), s.db, "learner")
}

func (s *StateRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *StateRepositorySuite) TestLoad_Empty() {
	stored, err := s.repo.Load(context.Background(), s.profileID)
	s.Require().NoError(err)
	s.Assert().Empty(stored.Blobs)
	s.Assert().Zero(stored.Revision)
}

func (s *StateRepositorySuite) TestSaveAllAndLoad() {
	ctx := context.Background()
	blobs := map[string][]byte{
		"achievements": []byte(`{"version":2,"data":{"totalXP":5}}`),
		"learning":     []byte(`{"version":2,"data":{}}`),
	}

	s.Require().NoError(s.repo.SaveAll(ctx, s.profileID, 3, blobs))

	stored, err := s.repo.Load(ctx, s.profileID)
	s.Require().NoError(err)
	s.Assert().Equal(blobs, stored.Blobs)
	s.Assert().Equal(int64(3), stored.Revision)
}

func (s *StateRepositorySuite) TestSaveAll_IgnoresStaleRevision() {
	ctx := context.Background()

	s.Require().NoError(s.repo.SaveAll(ctx, s.profileID, 5, map[string][]byte{"learning": []byte("new")}))
	s.Require().NoError(s.repo.SaveAll(ctx, s.profileID, 4, map[string][]byte{"learning": []byte("old")}))
	s.Require().NoError(s.repo.SaveAll(ctx, s.profileID, 5, map[string][]byte{"learning": []byte("same")}))

	stored, err := s.repo.Load(ctx, s.profileID)
	s.Require().NoError(err)
	s.Assert().Equal("new", string(stored.Blobs["learning"]))
	s.Assert().Equal(int64(5), stored.Revision)

	s.Require().NoError(s.repo.SaveAll(ctx, s.profileID, 6, map[string][]byte{"learning": []byte("newer")}))
	stored, err = s.repo.Load(ctx, s.profileID)
	s.Require().NoError(err)
	s.Assert().Equal("newer", string(stored.Blobs["learning"]))
}

func (s *StateRepositorySuite) TestSaveAll_UnknownProfile() {
	err := s.repo.SaveAll(context.Background(), 424242, 1, map[string][]byte{"learning": []byte("{}")})
	s.Assert().Error(err, "foreign key should reject blobs for missing profiles")
}

func (s *StateRepositorySuite) TestDelete() {
	ctx := context.Background()
	s.Require().NoError(s.repo.SaveAll(ctx, s.profileID, 1, map[string][]byte{"flashcards": []byte("{}")}))

	s.Require().NoError(s.repo.Delete(ctx, s.profileID))

	stored, err := s.repo.Load(ctx, s.profileID)
	s.Require().NoError(err)
	s.Assert().Empty(stored.Blobs)
}

func TestStateRepositorySuite(t *testing.T) {
	suite.Run(t, new(StateRepositorySuite))
}
