package venue

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
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testNow time.Time
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

	// Set up test time
	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetVenue() {
	// Create a test venue
	v := &models.Venue{
		ID:        "test-venue-id",
		Location:  "Court A",
		Date:      time.Date(2025, 4, 23, 0, 0, 0, 0, time.UTC),
		Time:      "19.00",
		ChatID:    12345,
		ChatTitle: "Sunday Football",
		OwnerID:   777,
		CreatedAt: s.testNow,
		UpdatedAt: s.testNow,
	}

	// Save the venue
	err := s.repo.SaveVenue(context.Background(), &SaveVenueInput{
		Venue: v,
	})
	s.Require().NoError(err)

	// Get the venue
	retrieved, err := s.repo.GetVenue(context.Background(), &GetVenueInput{
		VenueID: "test-venue-id",
	})
	s.Require().NoError(err)
	s.Require().NotNil(retrieved)

	// Verify the venue properties
	s.Equal("test-venue-id", retrieved.ID)
	s.Equal("Court A", retrieved.Location)
	s.Equal("19.00", retrieved.Time)
	s.Equal(int64(12345), retrieved.ChatID)
	s.Equal("Sunday Football", retrieved.ChatTitle)
	s.Equal(int64(777), retrieved.OwnerID)
	s.Equal(23, retrieved.Date.Day())
	s.Equal(time.April, retrieved.Date.Month())
}

func (s *RedisRepositoryTestSuite) TestGetVenueByChat() {
	// Create a test venue
	v := &models.Venue{
		ID:       "test-venue-id",
		Location: "Court A",
		ChatID:   12345,
	}

	// Save the venue
	err := s.repo.SaveVenue(context.Background(), &SaveVenueInput{
		Venue: v,
	})
	s.Require().NoError(err)

	// Get the venue by chat
	retrieved, err := s.repo.GetVenueByChat(context.Background(), &GetVenueByChatInput{
		ChatID: 12345,
	})
	s.Require().NoError(err)
	s.Equal("test-venue-id", retrieved.ID)

	// A chat with no venue returns not found
	_, err = s.repo.GetVenueByChat(context.Background(), &GetVenueByChatInput{
		ChatID: 99999,
	})
	s.Require().Error(err)
	s.Equal(ErrVenueNotFound, err)
}

func (s *RedisRepositoryTestSuite) TestDeleteVenue() {
	// Create a test venue
	v := &models.Venue{
		ID:     "test-venue-id",
		ChatID: 12345,
	}

	// Save the venue
	err := s.repo.SaveVenue(context.Background(), &SaveVenueInput{
		Venue: v,
	})
	s.Require().NoError(err)

	// Delete the venue
	err = s.repo.DeleteVenue(context.Background(), &DeleteVenueInput{
		VenueID: "test-venue-id",
	})
	s.Require().NoError(err)

	// Verify the venue is gone
	_, err = s.repo.GetVenue(context.Background(), &GetVenueInput{
		VenueID: "test-venue-id",
	})
	s.Equal(ErrVenueNotFound, err)

	// Verify the chat mapping is gone too
	_, err = s.repo.GetVenueByChat(context.Background(), &GetVenueByChatInput{
		ChatID: 12345,
	})
	s.Equal(ErrVenueNotFound, err)
}

func (s *RedisRepositoryTestSuite) TestGetNonExistentVenue() {
	// Try to get a non-existent venue
	_, err := s.repo.GetVenue(context.Background(), &GetVenueInput{
		VenueID: "non-existent-venue",
	})
	s.Require().Error(err)
	s.Equal(ErrVenueNotFound, err)
}
