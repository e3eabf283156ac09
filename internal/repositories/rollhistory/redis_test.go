package rollhistory_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/rollforge/roll-api/internal/errors"
	redisclient "github.com/rollforge/roll-api/internal/redis"
	"github.com/rollforge/roll-api/internal/repositories/rollhistory"
	"github.com/rollforge/roll-api/internal/testutils"
)

// fixedClock pins Now for TTL arithmetic.
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type RedisRepositoryTestSuite struct {
	suite.Suite
	repo    rollhistory.Repository
	clock   *fixedClock
	cleanup func()
	ctx     context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	s.clock = &fixedClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}

	repo, err := rollhistory.NewRedisRepository(&rollhistory.Config{
		Client: client,
		Clock:  s.clock,
	})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) testEntry(id string) rollhistory.Entry {
	return rollhistory.Entry{
		RollID:     id,
		Expression: "2d6+3",
		Total:      10,
		Details:    "(2d6 [4, 3] = 7) + 3 = **10**",
	}
}

func (s *RedisRepositoryTestSuite) TestCreateAndGet() {
	createOutput, err := s.repo.Create(s.ctx, rollhistory.CreateInput{
		EntityID: "char_123",
		Context:  "combat_round_1",
		Entries:  []rollhistory.Entry{s.testEntry("roll_1")},
		TTL:      10 * time.Minute,
	})
	s.Require().NoError(err)
	s.Require().NotNil(createOutput.Session)
	s.Assert().Equal(s.clock.now, createOutput.Session.CreatedAt)
	s.Assert().Equal(s.clock.now.Add(10*time.Minute), createOutput.Session.ExpiresAt)

	getOutput, err := s.repo.Get(s.ctx, rollhistory.GetInput{
		EntityID: "char_123",
		Context:  "combat_round_1",
	})
	s.Require().NoError(err)
	s.Require().Len(getOutput.Session.Entries, 1)
	s.Assert().Equal("roll_1", getOutput.Session.Entries[0].RollID)
	s.Assert().Equal("2d6+3", getOutput.Session.Entries[0].Expression)
	s.Assert().Equal(10, getOutput.Session.Entries[0].Total)
}

func (s *RedisRepositoryTestSuite) TestCreateValidatesInput() {
	_, err := s.repo.Create(s.ctx, rollhistory.CreateInput{Context: "combat"})
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.repo.Create(s.ctx, rollhistory.CreateInput{EntityID: "char_123"})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, rollhistory.GetInput{
		EntityID: "char_999",
		Context:  "combat",
	})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestGetExpired() {
	_, err := s.repo.Create(s.ctx, rollhistory.CreateInput{
		EntityID: "char_123",
		Context:  "combat",
		Entries:  []rollhistory.Entry{s.testEntry("roll_1")},
		TTL:      5 * time.Minute,
	})
	s.Require().NoError(err)

	// Move past the session's expiry; the stale-read check should reject it
	// even though miniredis has not evicted the key.
	s.clock.now = s.clock.now.Add(6 * time.Minute)

	_, err = s.repo.Get(s.ctx, rollhistory.GetInput{
		EntityID: "char_123",
		Context:  "combat",
	})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestUpdateAppendsEntries() {
	createOutput, err := s.repo.Create(s.ctx, rollhistory.CreateInput{
		EntityID: "char_123",
		Context:  "combat",
		Entries:  []rollhistory.Entry{s.testEntry("roll_1")},
		TTL:      10 * time.Minute,
	})
	s.Require().NoError(err)

	session := createOutput.Session
	session.Entries = append(session.Entries, s.testEntry("roll_2"))

	s.Require().NoError(s.repo.Update(s.ctx, session))

	getOutput, err := s.repo.Get(s.ctx, rollhistory.GetInput{
		EntityID: "char_123",
		Context:  "combat",
	})
	s.Require().NoError(err)
	s.Require().Len(getOutput.Session.Entries, 2)
	s.Assert().Equal("roll_2", getOutput.Session.Entries[1].RollID)
}

func (s *RedisRepositoryTestSuite) TestUpdateExpiredSession() {
	createOutput, err := s.repo.Create(s.ctx, rollhistory.CreateInput{
		EntityID: "char_123",
		Context:  "combat",
		Entries:  []rollhistory.Entry{s.testEntry("roll_1")},
		TTL:      5 * time.Minute,
	})
	s.Require().NoError(err)

	s.clock.now = s.clock.now.Add(6 * time.Minute)

	err = s.repo.Update(s.ctx, createOutput.Session)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	_, err := s.repo.Create(s.ctx, rollhistory.CreateInput{
		EntityID: "char_123",
		Context:  "combat",
		Entries:  []rollhistory.Entry{s.testEntry("roll_1"), s.testEntry("roll_2")},
		TTL:      10 * time.Minute,
	})
	s.Require().NoError(err)

	deleteOutput, err := s.repo.Delete(s.ctx, rollhistory.DeleteInput{
		EntityID: "char_123",
		Context:  "combat",
	})
	s.Require().NoError(err)
	s.Assert().Equal(2, deleteOutput.EntriesDeleted)

	_, err = s.repo.Get(s.ctx, rollhistory.GetInput{
		EntityID: "char_123",
		Context:  "combat",
	})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestDeleteMissingIsNotAnError() {
	deleteOutput, err := s.repo.Delete(s.ctx, rollhistory.DeleteInput{
		EntityID: "char_999",
		Context:  "combat",
	})
	s.Require().NoError(err)
	s.Assert().Equal(0, deleteOutput.EntriesDeleted)
}

func TestRedisUnavailable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client, err := redisclient.NewClient(mr.Addr(), nil)
	require.NoError(t, err)

	repo, err := rollhistory.NewRedisRepository(&rollhistory.Config{
		Client: client,
		Clock:  &fixedClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, err)

	// With the backend gone, every command surfaces as UNAVAILABLE
	// rather than NOT_FOUND or a bare connection error.
	mr.Close()
	ctx := context.Background()

	_, err = repo.Get(ctx, rollhistory.GetInput{EntityID: "char_123", Context: "combat"})
	require.Error(t, err)
	assert.True(t, errors.IsUnavailable(err))
	assert.False(t, errors.IsNotFound(err))

	_, err = repo.Create(ctx, rollhistory.CreateInput{EntityID: "char_123", Context: "combat"})
	require.Error(t, err)
	assert.True(t, errors.IsUnavailable(err))

	_, err = repo.Delete(ctx, rollhistory.DeleteInput{EntityID: "char_123", Context: "combat"})
	require.Error(t, err)
	assert.True(t, errors.IsUnavailable(err))
}
