package dialog

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/nurd-os/team-sorter/internal/common/clock"
	"github.com/nurd-os/team-sorter/internal/common/uuid"
	"github.com/nurd-os/team-sorter/internal/models"
	adminRepo "github.com/nurd-os/team-sorter/internal/repositories/admin"
	sessionRepo "github.com/nurd-os/team-sorter/internal/repositories/session"
	venueRepo "github.com/nurd-os/team-sorter/internal/repositories/venue"
	"github.com/nurd-os/team-sorter/internal/services/roster"
	"github.com/nurd-os/team-sorter/internal/validator"
)

// service implements the Service interface
type service struct {
	authURL       string
	sessionRepo   sessionRepo.Repository
	venueRepo     venueRepo.Repository
	adminRepo     adminRepo.Repository
	rosterService roster.Service
	clock         clock.Clock
	uuidGenerator uuid.UUID
}

// New creates a new dialog service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.SessionRepo == nil {
		return nil, errors.New("session repository cannot be nil")
	}

	if cfg.VenueRepo == nil {
		return nil, errors.New("venue repository cannot be nil")
	}

	if cfg.AdminRepo == nil {
		return nil, errors.New("admin repository cannot be nil")
	}

	if cfg.RosterService == nil {
		return nil, errors.New("roster service cannot be nil")
	}

	clk := cfg.Clock
	if clk == nil {
		clk = &clock.DefaultClock{}
	}

	uuidGen := cfg.UUIDGenerator
	if uuidGen == nil {
		uuidGen = uuid.New()
	}

	return &service{
		authURL:       cfg.AuthURL,
		sessionRepo:   cfg.SessionRepo,
		venueRepo:     cfg.VenueRepo,
		adminRepo:     cfg.AdminRepo,
		rosterService: cfg.RosterService,
		clock:         clk,
		uuidGenerator: uuidGen,
	}, nil
}

// Login returns the authentication link
func (s *service) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	if input == nil || input.ExternalID == 0 {
		return nil, errors.New("input and external ID cannot be empty")
	}

	return &LoginOutput{URL: s.authURL}, nil
}

// RequestAdmin records an elevation request; idempotent per identity
func (s *service) RequestAdmin(ctx context.Context, input *RequestAdminInput) (*RequestAdminOutput, error) {
	if input == nil || input.ExternalID == 0 {
		return nil, errors.New("input and external ID cannot be empty")
	}

	err := s.adminRepo.CreateAdminRequest(ctx, &adminRepo.CreateAdminRequestInput{
		Request: &models.AdminRequest{
			ExternalID:  input.ExternalID,
			Username:    input.Username,
			RequestedAt: s.clock.Now(),
		},
	})
	if err != nil {
		if errors.Is(err, adminRepo.ErrRequestExists) {
			return &RequestAdminOutput{AlreadyRequested: true}, nil
		}
		return nil, err
	}

	return &RequestAdminOutput{}, nil
}

// StartVenueCreation begins the venue-creation flow. Any flow already
// in progress in the chat is silently abandoned.
func (s *service) StartVenueCreation(ctx context.Context, input *StartVenueCreationInput) (*StartVenueCreationOutput, error) {
	if input == nil || input.ChatID == 0 {
		return nil, errors.New("input and chat ID cannot be empty")
	}

	authorized, err := s.isAdmin(ctx, input.ExternalID)
	if err != nil {
		return nil, err
	}
	if !authorized {
		return &StartVenueCreationOutput{Authorized: false}, nil
	}

	err = s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{
		Session: &models.ConversationSession{
			ChatID: input.ChatID,
			Step:   models.StepAwaitLocation,
		},
	})
	if err != nil {
		return nil, err
	}

	return &StartVenueCreationOutput{Authorized: true}, nil
}

// StartTeamSort begins the team-division flow
func (s *service) StartTeamSort(ctx context.Context, input *StartTeamSortInput) (*StartTeamSortOutput, error) {
	if input == nil || input.ChatID == 0 {
		return nil, errors.New("input and chat ID cannot be empty")
	}

	authorized, err := s.isAdmin(ctx, input.ExternalID)
	if err != nil {
		return nil, err
	}
	if !authorized {
		return &StartTeamSortOutput{Authorized: false}, nil
	}

	v, err := s.venueRepo.GetVenueByChat(ctx, &venueRepo.GetVenueByChatInput{
		ChatID: input.ChatID,
	})
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			return &StartTeamSortOutput{Authorized: true, VenueFound: false}, nil
		}
		return nil, err
	}

	err = s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{
		Session: &models.ConversationSession{
			ChatID:  input.ChatID,
			Step:    models.StepAwaitTeamParams,
			VenueID: v.ID,
		},
	})
	if err != nil {
		return nil, err
	}

	return &StartTeamSortOutput{Authorized: true, VenueFound: true}, nil
}

// StartRatingUpdate begins the rating-update flow
func (s *service) StartRatingUpdate(ctx context.Context, input *StartRatingUpdateInput) (*StartRatingUpdateOutput, error) {
	if input == nil || input.ChatID == 0 {
		return nil, errors.New("input and chat ID cannot be empty")
	}

	authorized, err := s.isAdmin(ctx, input.ExternalID)
	if err != nil {
		return nil, err
	}
	if !authorized {
		return &StartRatingUpdateOutput{Authorized: false}, nil
	}

	v, err := s.venueRepo.GetVenueByChat(ctx, &venueRepo.GetVenueByChatInput{
		ChatID: input.ChatID,
	})
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			return &StartRatingUpdateOutput{Authorized: true, VenueFound: false}, nil
		}
		return nil, err
	}

	err = s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{
		Session: &models.ConversationSession{
			ChatID:  input.ChatID,
			Step:    models.StepAwaitRatingUpdate,
			VenueID: v.ID,
		},
	})
	if err != nil {
		return nil, err
	}

	return &StartRatingUpdateOutput{Authorized: true, VenueFound: true}, nil
}

// BeginFriendEntry begins the guest-registration flow for a member,
// remembering where to re-render the venue summary afterwards
func (s *service) BeginFriendEntry(ctx context.Context, input *BeginFriendEntryInput) (*BeginFriendEntryOutput, error) {
	if input == nil || input.ChatID == 0 || input.VenueID == "" {
		return nil, errors.New("input, chat ID and venue ID cannot be empty")
	}

	err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{
		Session: &models.ConversationSession{
			ChatID:                   input.ChatID,
			Step:                     models.StepAwaitFriendData,
			VenueID:                  input.VenueID,
			PendingFriendOwnerID:     input.OwnerExternalID,
			PendingCallbackChatID:    input.CallbackChatID,
			PendingCallbackMessageID: input.CallbackMessageID,
		},
	})
	if err != nil {
		return nil, err
	}

	return &BeginFriendEntryOutput{}, nil
}

// HandleMessage interprets free text against the chat's current step.
// Each step accepts only its declared argument shape; anything else is
// rejected without touching the stored session.
func (s *service) HandleMessage(ctx context.Context, input *HandleMessageInput) (*HandleMessageOutput, error) {
	if input == nil || input.ChatID == 0 {
		return nil, errors.New("input and chat ID cannot be empty")
	}

	sess, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{
		ChatID: input.ChatID,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return &HandleMessageOutput{Result: ResultNoFlow}, nil
		}
		return s.failed(input.ChatID, "load session", err), nil
	}

	switch sess.Step {
	case models.StepAwaitLocation:
		return s.handleLocation(ctx, sess, input)
	case models.StepAwaitDate:
		return s.handleDate(ctx, sess, input)
	case models.StepAwaitTime:
		return s.handleTime(ctx, sess, input)
	case models.StepAwaitFriendData:
		return s.handleFriendData(ctx, sess, input)
	case models.StepAwaitTeamParams:
		return s.handleTeamParams(ctx, sess, input)
	case models.StepAwaitRatingUpdate:
		return s.handleRatingUpdate(ctx, sess, input)
	default:
		return &HandleMessageOutput{Result: ResultNoFlow}, nil
	}
}

func (s *service) handleLocation(ctx context.Context, sess *models.ConversationSession, input *HandleMessageInput) (*HandleMessageOutput, error) {
	location := strings.TrimSpace(input.Text)
	if location == "" {
		return &HandleMessageOutput{Result: ResultInvalidArgument}, nil
	}

	sess.Location = location
	sess.Step = models.StepAwaitDate

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: sess}); err != nil {
		return s.failed(input.ChatID, "save session", err), nil
	}

	return &HandleMessageOutput{Result: ResultLocationSaved}, nil
}

func (s *service) handleDate(ctx context.Context, sess *models.ConversationSession, input *HandleMessageInput) (*HandleMessageOutput, error) {
	date, ok := validator.ParseDate(input.Text, s.clock.Now())
	if !ok {
		// Session untouched; the step keeps awaiting a valid date
		return &HandleMessageOutput{Result: ResultInvalidArgument}, nil
	}

	sess.Date = date
	sess.Step = models.StepAwaitTime

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: sess}); err != nil {
		return s.failed(input.ChatID, "save session", err), nil
	}

	return &HandleMessageOutput{Result: ResultDateSaved}, nil
}

func (s *service) handleTime(ctx context.Context, sess *models.ConversationSession, input *HandleMessageInput) (*HandleMessageOutput, error) {
	timeText := strings.TrimSpace(input.Text)
	if timeText == "" {
		return &HandleMessageOutput{Result: ResultInvalidArgument}, nil
	}

	now := s.clock.Now()
	v := &models.Venue{
		ID:        s.uuidGenerator.NewUUID(),
		Location:  sess.Location,
		Date:      sess.Date,
		Time:      timeText,
		ChatID:    input.ChatID,
		ChatTitle: input.ChatTitle,
		OwnerID:   input.ExternalID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.venueRepo.SaveVenue(ctx, &venueRepo.SaveVenueInput{Venue: v}); err != nil {
		// No partial commit: the session still awaits the time
		return s.failed(input.ChatID, "save venue", err), nil
	}

	// The flow is done; only the venue reference survives
	sess.Step = models.StepNone
	sess.Location = ""
	sess.Date = time.Time{}
	sess.Time = ""
	sess.VenueID = v.ID

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: sess}); err != nil {
		return s.failed(input.ChatID, "save session", err), nil
	}

	return &HandleMessageOutput{
		Result: ResultVenueCreated,
		Venue:  v,
	}, nil
}

func (s *service) handleFriendData(ctx context.Context, sess *models.ConversationSession, input *HandleMessageInput) (*HandleMessageOutput, error) {
	name, rating, ok := validator.ParseFriendArgs(input.Text)
	if !ok {
		// Every failure in this step reads the same to the member:
		// the friend was not saved
		return &HandleMessageOutput{Result: ResultFriendError}, nil
	}

	output, err := s.rosterService.AddFriend(ctx, &roster.AddFriendInput{
		VenueID:         sess.VenueID,
		OwnerExternalID: sess.PendingFriendOwnerID,
		Name:            name,
		Rating:          rating,
	})
	if err != nil {
		log.Printf("failed to save friend for chat %d: %v", input.ChatID, err)
		return &HandleMessageOutput{Result: ResultFriendError}, nil
	}

	result := &HandleMessageOutput{
		Result:            ResultFriendSaved,
		Guest:             output.Player,
		RerenderChatID:    sess.PendingCallbackChatID,
		RerenderMessageID: sess.PendingCallbackMessageID,
		RerenderVenueID:   sess.VenueID,
	}

	sess.Step = models.StepNone
	sess.PendingFriendOwnerID = 0
	sess.PendingCallbackChatID = 0
	sess.PendingCallbackMessageID = 0

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: sess}); err != nil {
		return s.failed(input.ChatID, "save session", err), nil
	}

	return result, nil
}

func (s *service) handleTeamParams(ctx context.Context, sess *models.ConversationSession, input *HandleMessageInput) (*HandleMessageOutput, error) {
	teamCount, perTeam, ok := validator.ParseDivisionArgs(input.Text)
	if !ok {
		return &HandleMessageOutput{Result: ResultInvalidArgument}, nil
	}

	output, err := s.rosterService.SortTeams(ctx, &roster.SortTeamsInput{
		VenueID:        sess.VenueID,
		TeamCount:      teamCount,
		PlayersPerTeam: perTeam,
	})
	if err != nil {
		if errors.Is(err, roster.ErrUnsatisfiableDivision) {
			// An oversized request is just a wrong argument
			return &HandleMessageOutput{Result: ResultInvalidArgument}, nil
		}
		return s.failed(input.ChatID, "sort teams", err), nil
	}

	sess.Step = models.StepNone
	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: sess}); err != nil {
		return s.failed(input.ChatID, "save session", err), nil
	}

	return &HandleMessageOutput{
		Result:  ResultTeamsSorted,
		Teams:   output.Teams,
		Benched: output.Benched,
	}, nil
}

func (s *service) handleRatingUpdate(ctx context.Context, sess *models.ConversationSession, input *HandleMessageInput) (*HandleMessageOutput, error) {
	position, rating, ok := validator.ParseRatingArgs(input.Text)
	if !ok {
		return &HandleMessageOutput{Result: ResultInvalidArgument}, nil
	}

	output, err := s.rosterService.UpdateRating(ctx, &roster.UpdateRatingInput{
		VenueID:  sess.VenueID,
		Position: position,
		Rating:   rating,
	})
	if err != nil {
		if errors.Is(err, roster.ErrInvalidPosition) {
			return &HandleMessageOutput{Result: ResultInvalidArgument}, nil
		}
		return s.failed(input.ChatID, "update rating", err), nil
	}

	sess.Step = models.StepNone
	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: sess}); err != nil {
		return s.failed(input.ChatID, "save session", err), nil
	}

	return &HandleMessageOutput{
		Result: ResultRatingSaved,
		Player: output.Player,
	}, nil
}

// failed logs a store failure and tags it for the transport. The
// session is never mutated on this path, so the step stays retryable.
func (s *service) failed(chatID int64, action string, err error) *HandleMessageOutput {
	log.Printf("failed to %s for chat %d: %v", action, chatID, err)
	return &HandleMessageOutput{Result: ResultPersistenceError}
}

func (s *service) isAdmin(ctx context.Context, externalID int64) (bool, error) {
	if externalID == 0 {
		return false, nil
	}

	output, err := s.adminRepo.IsAdmin(ctx, &adminRepo.IsAdminInput{
		ExternalID: externalID,
	})
	if err != nil {
		return false, err
	}

	return output.IsAdmin, nil
}
