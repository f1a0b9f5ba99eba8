package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/dsamastery/internal/repository"
	"github.com/vytor/dsamastery/internal/repository/sqlite"
	"github.com/vytor/dsamastery/internal/testutil"
)

type KVRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.KVRepository
}

func (s *KVRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewKVRepository(s.db)
}

func (s *KVRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *KVRepositorySuite) TestGetMissing() {
	value, found, err := s.repo.Get(context.Background(), "nope")
	s.Require().NoError(err)
	s.Assert().False(found)
	s.Assert().Nil(value)
}

func (s *KVRepositorySuite) TestPutAndGet() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Put(ctx, "dsa-mastery-theme", []byte(`"light"`)))

	value, found, err := s.repo.Get(ctx, "dsa-mastery-theme")
	s.Require().NoError(err)
	s.Assert().True(found)
	s.Assert().Equal(`"light"`, string(value))
}

func (s *KVRepositorySuite) TestPutOverwrites() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Put(ctx, "k", []byte("one")))
	s.Require().NoError(s.repo.Put(ctx, "k", []byte("two")))

	value, _, err := s.repo.Get(ctx, "k")
	s.Require().NoError(err)
	s.Assert().Equal("two", string(value))

	var count int
	s.Require().NoError(s.db.QueryRow(`SELECT COUNT(*) FROM kv_store`).Scan(&count))
	s.Assert().Equal(1, count)
}

func (s *KVRepositorySuite) TestDelete() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Put(ctx, "k", []byte("v")))
	s.Require().NoError(s.repo.Delete(ctx, "k"))
	s.Require().NoError(s.repo.Delete(ctx, "k"))

	_, found, err := s.repo.Get(ctx, "k")
	s.Require().NoError(err)
	s.Assert().False(found)
}

func (s *KVRepositorySuite) TestKeysIsLiteralPrefix() {
	ctx := context.Background()

	for _, k := range []string{"dsa-mastery-progress", "dsa-mastery-theme", "dsa_masteryX", "dsa-reading-progress"} {
		s.Require().NoError(s.repo.Put(ctx, k, []byte("{}")))
	}

	keys, err := s.repo.Keys(ctx, "dsa-mastery")
	s.Require().NoError(err)
	s.Assert().Equal([]string{"dsa-mastery-progress", "dsa-mastery-theme"}, keys)

	keys, err = s.repo.Keys(ctx, "dsa_")
	s.Require().NoError(err)
	s.Assert().Equal([]string{"dsa_masteryX"}, keys)
}

func (s *KVRepositorySuite) TestDeletePrefix() {
	ctx := context.Background()

	for _, k := range []string{"dsa-mastery-progress", "dsa-mastery-theme", "dsa-sidebar-collapsed"} {
		s.Require().NoError(s.repo.Put(ctx, k, []byte("{}")))
	}

	n, err := s.repo.DeletePrefix(ctx, "dsa-mastery")
	s.Require().NoError(err)
	s.Assert().Equal(2, n)

	keys, err := s.repo.Keys(ctx, "")
	s.Require().NoError(err)
	s.Assert().Equal([]string{"dsa-sidebar-collapsed"}, keys)
}

func TestKVRepositorySuite(t *testing.T) {
	suite.Run(t, new(KVRepositorySuite))
}
