package redis

import (
	"context"
	"testing"
	"time"

	"greenloop-feed-service/internal/logger"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type SocialGraphSuite struct {
	suite.Suite
	mr    *miniredis.Miniredis
	rdb   *goredis.Client
	graph *SocialGraph
	ctx   context.Context
}

func (s *SocialGraphSuite) SetupSuite() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr
	s.rdb = goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	s.ctx = context.Background()
}

func (s *SocialGraphSuite) TearDownSuite() {
	_ = s.rdb.Close()
	s.mr.Close()
}

func (s *SocialGraphSuite) SetupTest() {
	s.mr.FlushAll()
	log := logger.New("test")
	s.graph = NewSocialGraph(NewClientFromRedis(s.rdb, log), 24*time.Hour, log)
}

func (s *SocialGraphSuite) TestAddEdgeBothDirections() {
	s.Require().NoError(s.graph.AddEdge(s.ctx, "u2", "u1"))
	s.Require().NoError(s.graph.AddEdge(s.ctx, "u3", "u1"))

	followees, err := s.graph.Followees(s.ctx, "u2")
	s.Require().NoError(err)
	s.ElementsMatch([]string{"u1"}, followees)

	followers, err := s.graph.Followers(s.ctx, "u1")
	s.Require().NoError(err)
	s.ElementsMatch([]string{"u2", "u3"}, followers)
}

func (s *SocialGraphSuite) TestAddEdgeIdempotent() {
	s.Require().NoError(s.graph.AddEdge(s.ctx, "u2", "u1"))
	s.Require().NoError(s.graph.AddEdge(s.ctx, "u2", "u1"))

	followees, err := s.graph.Followees(s.ctx, "u2")
	s.Require().NoError(err)
	s.ElementsMatch([]string{"u1"}, followees)
}

func (s *SocialGraphSuite) TestRemoveEdge() {
	s.Require().NoError(s.graph.AddEdge(s.ctx, "u2", "u1"))
	s.Require().NoError(s.graph.RemoveEdge(s.ctx, "u2", "u1"))
	s.Require().NoError(s.graph.RemoveEdge(s.ctx, "u2", "u1"))

	followees, err := s.graph.Followees(s.ctx, "u2")
	s.Require().NoError(err)
	s.Empty(followees)

	followers, err := s.graph.Followers(s.ctx, "u1")
	s.Require().NoError(err)
	s.Empty(followers)
}

func (s *SocialGraphSuite) TestFolloweesExpire() {
	s.Require().NoError(s.graph.AddEdge(s.ctx, "u2", "u1"))

	s.mr.FastForward(25 * time.Hour)

	followees, err := s.graph.Followees(s.ctx, "u2")
	s.Require().NoError(err)
	s.Empty(followees)
}

func (s *SocialGraphSuite) TestSeedFollowees() {
	s.Require().NoError(s.graph.SeedFollowees(s.ctx, "u2", []string{"u1", "u3"}))

	followees, err := s.graph.Followees(s.ctx, "u2")
	s.Require().NoError(err)
	s.ElementsMatch([]string{"u1", "u3"}, followees)

	// Seeding again replaces the previous set.
	s.Require().NoError(s.graph.SeedFollowees(s.ctx, "u2", []string{"u4"}))
	followees, err = s.graph.Followees(s.ctx, "u2")
	s.Require().NoError(err)
	s.ElementsMatch([]string{"u4"}, followees)
}

func TestSocialGraphSuite(t *testing.T) {
	suite.Run(t, new(SocialGraphSuite))
}
