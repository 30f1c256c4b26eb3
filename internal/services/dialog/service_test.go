package dialog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	badger "github.com/dgraph-io/badger/v4"
	clockMocks "github.com/nurd-os/team-sorter/internal/common/clock/mocks"
	uuidMocks "github.com/nurd-os/team-sorter/internal/common/uuid/mocks"
	"github.com/nurd-os/team-sorter/internal/models"
	adminRepo "github.com/nurd-os/team-sorter/internal/repositories/admin"
	membershipRepo "github.com/nurd-os/team-sorter/internal/repositories/membership"
	playerRepo "github.com/nurd-os/team-sorter/internal/repositories/player"
	sessionRepo "github.com/nurd-os/team-sorter/internal/repositories/session"
	venueRepo "github.com/nurd-os/team-sorter/internal/repositories/venue"
	"github.com/nurd-os/team-sorter/internal/services/roster"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const (
	testChatID    = int64(12345)
	testChatTitle = "Sunday Football"
	testAdminID   = int64(777)
	testMemberID  = int64(888)
)

type DialogServiceTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockClock *clockMocks.MockClock
	mockUUID  *uuidMocks.MockUUID

	mr       *miniredis.Miniredis
	client   *redis.Client
	db       *badger.DB
	venues   venueRepo.Repository
	players  playerRepo.Repository
	members  membershipRepo.Repository
	admins   adminRepo.Repository
	sessions sessionRepo.Repository

	rosterService roster.Service
	service       Service
	ctx           context.Context

	testTime time.Time
}

func (s *DialogServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)

	s.ctx = context.Background()
	s.testTime = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	nextID := 0
	s.mockUUID.EXPECT().NewUUID().DoAndReturn(func() string {
		nextID++
		return fmt.Sprintf("uuid-%d", nextID)
	}).AnyTimes()

	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{Addr: s.mr.Addr()})

	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	s.Require().NoError(err)
	s.db = db

	venues, err := venueRepo.NewRedis(&venueRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.venues = venues

	players, err := playerRepo.NewRedis(&playerRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.players = players

	members, err := membershipRepo.NewRedis(&membershipRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.members = members

	admins, err := adminRepo.NewRedis(&adminRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.admins = admins

	sessions, err := sessionRepo.NewBadger(&sessionRepo.Config{DB: db})
	s.Require().NoError(err)
	s.sessions = sessions

	rosterService, err := roster.New(&roster.Config{
		VenueRepo:      s.venues,
		PlayerRepo:     s.players,
		MembershipRepo: s.members,
		Clock:          s.mockClock,
		UUIDGenerator:  s.mockUUID,
	})
	s.Require().NoError(err)
	s.rosterService = rosterService

	svc, err := New(&Config{
		AuthURL:       "https://example.com/login",
		SessionRepo:   s.sessions,
		VenueRepo:     s.venues,
		AdminRepo:     s.admins,
		RosterService: s.rosterService,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)
	s.service = svc

	// The organizer has elevated access
	err = s.admins.AddAdmin(s.ctx, &adminRepo.AddAdminInput{
		ExternalID: testAdminID,
	})
	s.Require().NoError(err)
}

func (s *DialogServiceTestSuite) TearDownTest() {
	s.db.Close()
	s.client.Close()
	s.mr.Close()
	s.mockCtrl.Finish()
}

func TestDialogServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DialogServiceTestSuite))
}

// send pushes one free-text message through the state machine
func (s *DialogServiceTestSuite) send(text string) *HandleMessageOutput {
	output, err := s.service.HandleMessage(s.ctx, &HandleMessageInput{
		ChatID:     testChatID,
		ChatTitle:  testChatTitle,
		ExternalID: testAdminID,
		Text:       text,
	})
	s.Require().NoError(err)
	return output
}

// createVenue runs the whole venue-creation flow
func (s *DialogServiceTestSuite) createVenue() *models.Venue {
	start, err := s.service.StartVenueCreation(s.ctx, &StartVenueCreationInput{
		ChatID:     testChatID,
		ExternalID: testAdminID,
	})
	s.Require().NoError(err)
	s.Require().True(start.Authorized)

	s.send("Court A")
	s.send("23.04")
	output := s.send("19.00")
	s.Require().Equal(ResultVenueCreated, output.Result)
	return output.Venue
}

func (s *DialogServiceTestSuite) TestVenueCreationEndToEnd() {
	start, err := s.service.StartVenueCreation(s.ctx, &StartVenueCreationInput{
		ChatID:     testChatID,
		ExternalID: testAdminID,
	})
	s.Require().NoError(err)
	s.True(start.Authorized)

	output := s.send("Court A")
	s.Equal(ResultLocationSaved, output.Result)

	output = s.send("23.04")
	s.Equal(ResultDateSaved, output.Result)

	output = s.send("19.00")
	s.Require().Equal(ResultVenueCreated, output.Result)
	s.Require().NotNil(output.Venue)
	s.Equal("Court A", output.Venue.Location)
	s.Equal(23, output.Venue.Date.Day())
	s.Equal(time.April, output.Venue.Date.Month())
	s.Equal("19.00", output.Venue.Time)
	s.Equal(testChatID, output.Venue.ChatID)
	s.Equal(testChatTitle, output.Venue.ChatTitle)
	s.Equal(testAdminID, output.Venue.OwnerID)

	// Exactly one venue persisted and reachable through the chat key
	v, err := s.venues.GetVenueByChat(s.ctx, &venueRepo.GetVenueByChatInput{
		ChatID: testChatID,
	})
	s.Require().NoError(err)
	s.Equal(output.Venue.ID, v.ID)

	// Flow-specific fields are cleared afterwards
	sess, err := s.sessions.GetSession(s.ctx, &sessionRepo.GetSessionInput{
		ChatID: testChatID,
	})
	s.Require().NoError(err)
	s.Equal(models.StepNone, sess.Step)
	s.Empty(sess.Location)
	s.Empty(sess.Time)
	s.True(sess.Date.IsZero())
	s.Equal(v.ID, sess.VenueID)
}

func (s *DialogServiceTestSuite) TestInvalidDateKeepsState() {
	_, err := s.service.StartVenueCreation(s.ctx, &StartVenueCreationInput{
		ChatID:     testChatID,
		ExternalID: testAdminID,
	})
	s.Require().NoError(err)

	s.send("Court A")

	output := s.send("32.13")
	s.Equal(ResultInvalidArgument, output.Result)

	// The location survives and the step still awaits a date
	sess, err := s.sessions.GetSession(s.ctx, &sessionRepo.GetSessionInput{
		ChatID: testChatID,
	})
	s.Require().NoError(err)
	s.Equal(models.StepAwaitDate, sess.Step)
	s.Equal("Court A", sess.Location)

	// A corrected retry still works
	output = s.send("23.04")
	s.Equal(ResultDateSaved, output.Result)
}

func (s *DialogServiceTestSuite) TestStartNotAuthorized() {
	output, err := s.service.StartVenueCreation(s.ctx, &StartVenueCreationInput{
		ChatID:     testChatID,
		ExternalID: testMemberID,
	})
	s.Require().NoError(err)
	s.False(output.Authorized)

	// No flow was entered
	_, err = s.sessions.GetSession(s.ctx, &sessionRepo.GetSessionInput{
		ChatID: testChatID,
	})
	s.Equal(sessionRepo.ErrSessionNotFound, err)
}

func (s *DialogServiceTestSuite) TestStoreFailureKeepsState() {
	_, err := s.service.StartVenueCreation(s.ctx, &StartVenueCreationInput{
		ChatID:     testChatID,
		ExternalID: testAdminID,
	})
	s.Require().NoError(err)

	s.send("Court A")
	s.send("23.04")

	// Take the venue store down; the reply must still be a tagged
	// result, never a bare error
	s.mr.Close()

	output, err := s.service.HandleMessage(s.ctx, &HandleMessageInput{
		ChatID:     testChatID,
		ChatTitle:  testChatTitle,
		ExternalID: testAdminID,
		Text:       "19.00",
	})
	s.Require().NoError(err)
	s.Require().NotNil(output)
	s.Equal(ResultPersistenceError, output.Result)

	// The session was not touched, so the time can be retried
	sess, err := s.sessions.GetSession(s.ctx, &sessionRepo.GetSessionInput{
		ChatID: testChatID,
	})
	s.Require().NoError(err)
	s.Equal(models.StepAwaitTime, sess.Step)
	s.Equal("Court A", sess.Location)
}

func (s *DialogServiceTestSuite) TestMessageWithoutFlow() {
	output := s.send("hello there")
	s.Equal(ResultNoFlow, output.Result)
}

func (s *DialogServiceTestSuite) TestFlowRestartAbandonsPriorFlow() {
	v := s.createVenue()
	s.Require().NotNil(v)

	// Enter the team-sort flow
	sortStart, err := s.service.StartTeamSort(s.ctx, &StartTeamSortInput{
		ChatID:     testChatID,
		ExternalID: testAdminID,
	})
	s.Require().NoError(err)
	s.True(sortStart.VenueFound)

	// Starting venue creation mid-flow silently replaces it;
	// intentional per the restart-cancels-prior-flow policy
	_, err = s.service.StartVenueCreation(s.ctx, &StartVenueCreationInput{
		ChatID:     testChatID,
		ExternalID: testAdminID,
	})
	s.Require().NoError(err)

	sess, err := s.sessions.GetSession(s.ctx, &sessionRepo.GetSessionInput{
		ChatID: testChatID,
	})
	s.Require().NoError(err)
	s.Equal(models.StepAwaitLocation, sess.Step)

	// "2 6" is now a location, not team parameters
	output := s.send("2 6")
	s.Equal(ResultLocationSaved, output.Result)
}

func (s *DialogServiceTestSuite) TestTeamSortFlow() {
	v := s.createVenue()

	for i := 1; i <= 12; i++ {
		_, err := s.rosterService.AddPlayer(s.ctx, &roster.AddPlayerInput{
			VenueID:    v.ID,
			ExternalID: int64(1000 + i),
			FirstName:  fmt.Sprintf("Player%d", i),
		})
		s.Require().NoError(err)
	}

	start, err := s.service.StartTeamSort(s.ctx, &StartTeamSortInput{
		ChatID:     testChatID,
		ExternalID: testAdminID,
	})
	s.Require().NoError(err)
	s.True(start.Authorized)
	s.True(start.VenueFound)

	// Nonsense first
	output := s.send("lots of players")
	s.Equal(ResultInvalidArgument, output.Result)

	// Oversized request is a wrong argument too
	output = s.send("3 6")
	s.Equal(ResultInvalidArgument, output.Result)

	// A satisfiable request divides the roster
	output = s.send("2 6")
	s.Require().Equal(ResultTeamsSorted, output.Result)
	s.Require().Len(output.Teams, 2)
	s.Len(output.Teams[0].Players, 6)
	s.Len(output.Teams[1].Players, 6)
	s.Empty(output.Benched)
}

func (s *DialogServiceTestSuite) TestTeamSortWithoutVenue() {
	output, err := s.service.StartTeamSort(s.ctx, &StartTeamSortInput{
		ChatID:     testChatID,
		ExternalID: testAdminID,
	})
	s.Require().NoError(err)
	s.True(output.Authorized)
	s.False(output.VenueFound)
}

func (s *DialogServiceTestSuite) TestFriendEntryFlow() {
	v := s.createVenue()

	// The owner signs up first
	_, err := s.rosterService.AddPlayer(s.ctx, &roster.AddPlayerInput{
		VenueID:    v.ID,
		ExternalID: testMemberID,
		FirstName:  "Member",
	})
	s.Require().NoError(err)

	_, err = s.service.BeginFriendEntry(s.ctx, &BeginFriendEntryInput{
		ChatID:            testChatID,
		OwnerExternalID:   testMemberID,
		VenueID:           v.ID,
		CallbackChatID:    testChatID,
		CallbackMessageID: 42,
	})
	s.Require().NoError(err)

	// Wrong shape reads as a failed save, not a wrong argument
	output := s.send("JustAName")
	s.Equal(ResultFriendError, output.Result)

	output = s.send("Sanya 7.5")
	s.Require().Equal(ResultFriendSaved, output.Result)
	s.Require().NotNil(output.Guest)
	s.Equal("Sanya", output.Guest.FirstName)
	s.Equal(testChatID, output.RerenderChatID)
	s.Equal(42, output.RerenderMessageID)
	s.Equal(v.ID, output.RerenderVenueID)

	// The pending refs are cleared
	sess, err := s.sessions.GetSession(s.ctx, &sessionRepo.GetSessionInput{
		ChatID: testChatID,
	})
	s.Require().NoError(err)
	s.Equal(models.StepNone, sess.Step)
	s.Zero(sess.PendingFriendOwnerID)
	s.Zero(sess.PendingCallbackMessageID)
}

func (s *DialogServiceTestSuite) TestFriendEntryUnknownOwner() {
	v := s.createVenue()

	_, err := s.service.BeginFriendEntry(s.ctx, &BeginFriendEntryInput{
		ChatID:          testChatID,
		OwnerExternalID: 999, // never seen
		VenueID:         v.ID,
	})
	s.Require().NoError(err)

	output := s.send("Sanya 7.5")
	s.Equal(ResultFriendError, output.Result)
}

func (s *DialogServiceTestSuite) TestRatingUpdateFlow() {
	v := s.createVenue()

	for i := 1; i <= 3; i++ {
		_, err := s.rosterService.AddPlayer(s.ctx, &roster.AddPlayerInput{
			VenueID:    v.ID,
			ExternalID: int64(1000 + i),
			FirstName:  fmt.Sprintf("Player%d", i),
		})
		s.Require().NoError(err)
	}

	start, err := s.service.StartRatingUpdate(s.ctx, &StartRatingUpdateInput{
		ChatID:     testChatID,
		ExternalID: testAdminID,
	})
	s.Require().NoError(err)
	s.True(start.Authorized)
	s.True(start.VenueFound)

	// Out-of-bounds positions are wrong arguments and mutate nothing
	output := s.send("0 8.5")
	s.Equal(ResultInvalidArgument, output.Result)

	output = s.send("4 8.5")
	s.Equal(ResultInvalidArgument, output.Result)

	output = s.send("2 8.5")
	s.Require().Equal(ResultRatingSaved, output.Result)
	s.Require().NotNil(output.Player)
	s.Equal("Player2", output.Player.FirstName)
	s.Require().NotNil(output.Player.Rating)
	s.Equal(8.5, *output.Player.Rating)
}

func (s *DialogServiceTestSuite) TestRequestAdminIdempotent() {
	output, err := s.service.RequestAdmin(s.ctx, &RequestAdminInput{
		ExternalID: testMemberID,
		Username:   "member",
	})
	s.Require().NoError(err)
	s.False(output.AlreadyRequested)

	output, err = s.service.RequestAdmin(s.ctx, &RequestAdminInput{
		ExternalID: testMemberID,
		Username:   "member",
	})
	s.Require().NoError(err)
	s.True(output.AlreadyRequested)
}

func (s *DialogServiceTestSuite) TestLogin() {
	output, err := s.service.Login(s.ctx, &LoginInput{ExternalID: testMemberID})
	s.Require().NoError(err)
	s.Equal("https://example.com/login", output.URL)

	_, err = s.service.Login(s.ctx, &LoginInput{})
	s.Error(err)
}
