package admin

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/nurd-os/team-sorter/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	repo   Repository
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	// Create a Redis client connected to the miniredis server
	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	// Create the repository
	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestIsAdmin() {
	// An unknown identity is not an admin
	output, err := s.repo.IsAdmin(context.Background(), &IsAdminInput{
		ExternalID: 111,
	})
	s.Require().NoError(err)
	s.False(output.IsAdmin)

	// Grant access
	err = s.repo.AddAdmin(context.Background(), &AddAdminInput{
		ExternalID: 111,
	})
	s.Require().NoError(err)

	output, err = s.repo.IsAdmin(context.Background(), &IsAdminInput{
		ExternalID: 111,
	})
	s.Require().NoError(err)
	s.True(output.IsAdmin)
}

func (s *RedisRepositoryTestSuite) TestCreateAdminRequestIdempotent() {
	request := &models.AdminRequest{
		ExternalID:  111,
		Username:    "wannabe",
		RequestedAt: time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC),
	}

	// First request succeeds
	err := s.repo.CreateAdminRequest(context.Background(), &CreateAdminRequestInput{
		Request: request,
	})
	s.Require().NoError(err)

	// Second request while pending is rejected
	err = s.repo.CreateAdminRequest(context.Background(), &CreateAdminRequestInput{
		Request: request,
	})
	s.Require().Error(err)
	s.Equal(ErrRequestExists, err)
}

func (s *RedisRepositoryTestSuite) TestAddAdminConsumesRequest() {
	request := &models.AdminRequest{
		ExternalID: 111,
	}

	err := s.repo.CreateAdminRequest(context.Background(), &CreateAdminRequestInput{
		Request: request,
	})
	s.Require().NoError(err)

	// Granting access clears the pending request
	err = s.repo.AddAdmin(context.Background(), &AddAdminInput{
		ExternalID: 111,
	})
	s.Require().NoError(err)

	// A fresh request can be made again (e.g. after access is revoked)
	err = s.repo.CreateAdminRequest(context.Background(), &CreateAdminRequestInput{
		Request: request,
	})
	s.Require().NoError(err)
}
