package roster

import (
	"context"
	"errors"
	"fmt"

	"github.com/nurd-os/team-sorter/internal/common/clock"
	"github.com/nurd-os/team-sorter/internal/common/uuid"
	"github.com/nurd-os/team-sorter/internal/models"
	membershipRepo "github.com/nurd-os/team-sorter/internal/repositories/membership"
	playerRepo "github.com/nurd-os/team-sorter/internal/repositories/player"
	venueRepo "github.com/nurd-os/team-sorter/internal/repositories/venue"
)

// service implements the Service interface
type service struct {
	capacity       int
	venueRepo      venueRepo.Repository
	playerRepo     playerRepo.Repository
	membershipRepo membershipRepo.Repository
	clock          clock.Clock
	uuidGenerator  uuid.UUID
}

// New creates a new roster service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.VenueRepo == nil {
		return nil, errors.New("venue repository cannot be nil")
	}

	if cfg.PlayerRepo == nil {
		return nil, errors.New("player repository cannot be nil")
	}

	if cfg.MembershipRepo == nil {
		return nil, errors.New("membership repository cannot be nil")
	}

	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = DefaultCapacity
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
		capacity:       capacity,
		venueRepo:      cfg.VenueRepo,
		playerRepo:     cfg.PlayerRepo,
		membershipRepo: cfg.MembershipRepo,
		clock:          clk,
		uuidGenerator:  uuidGen,
	}, nil
}

// AddPlayer signs a chat member up for a venue
func (s *service) AddPlayer(ctx context.Context, input *AddPlayerInput) (*AddPlayerOutput, error) {
	if input == nil || input.VenueID == "" {
		return nil, errors.New("input and venue ID cannot be empty")
	}

	if input.ExternalID == 0 {
		return nil, errors.New("external ID cannot be empty")
	}

	// The venue must exist
	if _, err := s.venueRepo.GetVenue(ctx, &venueRepo.GetVenueInput{
		VenueID: input.VenueID,
	}); err != nil {
		return nil, ErrVenueNotFound
	}

	// Find or create the player
	p, err := s.playerRepo.GetPlayerByExternalID(ctx, &playerRepo.GetPlayerByExternalIDInput{
		ExternalID: input.ExternalID,
	})
	if err != nil {
		if !errors.Is(err, playerRepo.ErrPlayerNotFound) {
			return nil, err
		}

		p = &models.Player{
			ID:         s.uuidGenerator.NewUUID(),
			FirstName:  input.FirstName,
			LastName:   input.LastName,
			Username:   input.Username,
			ExternalID: input.ExternalID,
			CreatedAt:  s.clock.Now(),
		}

		if err := s.playerRepo.SavePlayer(ctx, &playerRepo.SavePlayerInput{
			Player: p,
		}); err != nil {
			return nil, err
		}
	}

	position, err := s.join(ctx, input.VenueID, p.ID)
	if err != nil {
		return nil, err
	}

	return &AddPlayerOutput{
		Player:   p,
		Position: position,
		Admitted: position <= s.capacity,
	}, nil
}

// AddFriend signs up a guest on behalf of a chat member
func (s *service) AddFriend(ctx context.Context, input *AddFriendInput) (*AddFriendOutput, error) {
	if input == nil || input.VenueID == "" {
		return nil, errors.New("input and venue ID cannot be empty")
	}

	if input.Name == "" {
		return nil, errors.New("guest name cannot be empty")
	}

	// The venue must exist
	if _, err := s.venueRepo.GetVenue(ctx, &venueRepo.GetVenueInput{
		VenueID: input.VenueID,
	}); err != nil {
		return nil, ErrVenueNotFound
	}

	// The owner must be a known player
	owner, err := s.playerRepo.GetPlayerByExternalID(ctx, &playerRepo.GetPlayerByExternalIDInput{
		ExternalID: input.OwnerExternalID,
	})
	if err != nil {
		if errors.Is(err, playerRepo.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	rating := input.Rating
	guest := &models.Player{
		ID:            s.uuidGenerator.NewUUID(),
		FirstName:     input.Name,
		Rating:        &rating,
		FriendOwnerID: owner.ID,
		CreatedAt:     s.clock.Now(),
	}

	if err := s.playerRepo.SavePlayer(ctx, &playerRepo.SavePlayerInput{
		Player: guest,
	}); err != nil {
		return nil, err
	}

	position, err := s.join(ctx, input.VenueID, guest.ID)
	if err != nil {
		return nil, err
	}

	return &AddFriendOutput{
		Player:   guest,
		Position: position,
		Admitted: position <= s.capacity,
	}, nil
}

// join creates the membership and returns the new 1-based position
func (s *service) join(ctx context.Context, venueID, playerID string) (int, error) {
	_, err := s.membershipRepo.CreateMembership(ctx, &membershipRepo.CreateMembershipInput{
		Membership: &models.Membership{
			ID:        s.uuidGenerator.NewUUID(),
			VenueID:   venueID,
			PlayerID:  playerID,
			CreatedAt: s.clock.Now(),
		},
	})
	if err != nil {
		if errors.Is(err, membershipRepo.ErrAlreadyJoined) {
			return 0, ErrAlreadyJoined
		}
		return 0, err
	}

	entries, err := s.loadEntries(ctx, venueID)
	if err != nil {
		return 0, err
	}

	for _, entry := range entries {
		if entry.Player.ID == playerID {
			return entry.Position, nil
		}
	}

	return len(entries), nil
}

// RemovePlayer takes a chat member off a venue's roster
func (s *service) RemovePlayer(ctx context.Context, input *RemovePlayerInput) (*RemovePlayerOutput, error) {
	if input == nil || input.VenueID == "" {
		return nil, errors.New("input and venue ID cannot be empty")
	}

	p, err := s.playerRepo.GetPlayerByExternalID(ctx, &playerRepo.GetPlayerByExternalIDInput{
		ExternalID: input.ExternalID,
	})
	if err != nil {
		if errors.Is(err, playerRepo.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	return s.remove(ctx, input.VenueID, p)
}

// RemoveFriend takes the owner's most recently added guest off the roster
func (s *service) RemoveFriend(ctx context.Context, input *RemoveFriendInput) (*RemovePlayerOutput, error) {
	if input == nil || input.VenueID == "" {
		return nil, errors.New("input and venue ID cannot be empty")
	}

	owner, err := s.playerRepo.GetPlayerByExternalID(ctx, &playerRepo.GetPlayerByExternalIDInput{
		ExternalID: input.OwnerExternalID,
	})
	if err != nil {
		if errors.Is(err, playerRepo.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	entries, err := s.loadEntries(ctx, input.VenueID)
	if err != nil {
		return nil, err
	}

	// The owner's last guest in join order
	var guest *models.Player
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Player.FriendOwnerID == owner.ID {
			guest = entries[i].Player
			break
		}
	}

	if guest == nil {
		return nil, ErrFriendNotFound
	}

	return s.remove(ctx, input.VenueID, guest)
}

// remove deletes the membership and applies the capacity gate: if the
// departing player held an admitted position on an over-capacity
// roster, the player who slides into the last admitted position is
// reported as promoted.
func (s *service) remove(ctx context.Context, venueID string, p *models.Player) (*RemovePlayerOutput, error) {
	v, err := s.venueRepo.GetVenue(ctx, &venueRepo.GetVenueInput{
		VenueID: venueID,
	})
	if err != nil {
		return nil, ErrVenueNotFound
	}

	entries, err := s.loadEntries(ctx, venueID)
	if err != nil {
		return nil, err
	}

	position := 0
	for _, entry := range entries {
		if entry.Player.ID == p.ID {
			position = entry.Position
			break
		}
	}

	if position == 0 {
		return nil, ErrPlayerNotFound
	}

	if err := s.membershipRepo.DeleteMembership(ctx, &membershipRepo.DeleteMembershipInput{
		VenueID:  venueID,
		PlayerID: p.ID,
	}); err != nil {
		return nil, err
	}

	sizeBefore := len(entries)
	output := &RemovePlayerOutput{
		RemovedPlayer:  p,
		RemainingCount: sizeBefore - 1,
	}

	now := s.clock.Now()
	sameDay := now.Year() == v.Date.Year() && now.YearDay() == v.Date.YearDay()
	if sameDay && sizeBefore >= s.capacity {
		output.GameDayDeparture = true
	}

	// Promotion is a re-evaluation of the admission boundary: the
	// pre-removal holder of position capacity+1 becomes admitted iff
	// an admitted player left an over-capacity roster.
	if sizeBefore > s.capacity && position <= s.capacity {
		output.PromotedPlayer = entries[s.capacity].Player
	}

	return output, nil
}

// GetRoster returns a venue's players in join order with positions
func (s *service) GetRoster(ctx context.Context, input *GetRosterInput) (*GetRosterOutput, error) {
	if input == nil || input.VenueID == "" {
		return nil, errors.New("input and venue ID cannot be empty")
	}

	entries, err := s.loadEntries(ctx, input.VenueID)
	if err != nil {
		return nil, err
	}

	return &GetRosterOutput{Entries: entries}, nil
}

// SortTeams partitions the admitted roster into teams
func (s *service) SortTeams(ctx context.Context, input *SortTeamsInput) (*SortTeamsOutput, error) {
	if input == nil || input.VenueID == "" {
		return nil, errors.New("input and venue ID cannot be empty")
	}

	if input.TeamCount <= 0 || input.PlayersPerTeam <= 0 {
		return nil, ErrUnsatisfiableDivision
	}

	entries, err := s.loadEntries(ctx, input.VenueID)
	if err != nil {
		return nil, err
	}

	// Only admitted players are divided
	admitted := make([]*models.Player, 0, s.capacity)
	for _, entry := range entries {
		if !entry.Admitted {
			break
		}
		admitted = append(admitted, entry.Player)
	}

	needed := input.TeamCount * input.PlayersPerTeam
	if needed > len(admitted) {
		return nil, ErrUnsatisfiableDivision
	}

	teams := divideTeams(admitted, input.TeamCount, input.PlayersPerTeam)

	return &SortTeamsOutput{
		Teams:   teams,
		Benched: admitted[needed:],
	}, nil
}

// UpdateRating sets the rating of the player at a roster position.
// The position is resolved against the ordering as it is right now;
// a join or leave since the organizer listed the roster can shift it.
func (s *service) UpdateRating(ctx context.Context, input *UpdateRatingInput) (*UpdateRatingOutput, error) {
	if input == nil || input.VenueID == "" {
		return nil, errors.New("input and venue ID cannot be empty")
	}

	entries, err := s.loadEntries(ctx, input.VenueID)
	if err != nil {
		return nil, err
	}

	if input.Position < 1 || input.Position > len(entries) {
		return nil, ErrInvalidPosition
	}

	p := entries[input.Position-1].Player
	rating := input.Rating
	p.Rating = &rating

	if err := s.playerRepo.SavePlayer(ctx, &playerRepo.SavePlayerInput{
		Player: p,
	}); err != nil {
		return nil, err
	}

	return &UpdateRatingOutput{Player: p}, nil
}

// loadEntries resolves a venue's ordered memberships into roster rows
func (s *service) loadEntries(ctx context.Context, venueID string) ([]RosterEntry, error) {
	rosterOutput, err := s.membershipRepo.GetRoster(ctx, &membershipRepo.GetRosterInput{
		VenueID: venueID,
	})
	if err != nil {
		return nil, err
	}

	memberships := rosterOutput.Memberships
	if len(memberships) == 0 {
		return []RosterEntry{}, nil
	}

	playerIDs := make([]string, 0, len(memberships))
	for _, m := range memberships {
		playerIDs = append(playerIDs, m.PlayerID)
	}

	playersOutput, err := s.playerRepo.GetPlayers(ctx, &playerRepo.GetPlayersInput{
		PlayerIDs: playerIDs,
	})
	if err != nil {
		return nil, err
	}

	entries := make([]RosterEntry, 0, len(memberships))
	for _, m := range memberships {
		p, ok := playersOutput.Players[m.PlayerID]
		if !ok {
			return nil, fmt.Errorf("membership %s references unknown player %s", m.ID, m.PlayerID)
		}

		position := len(entries) + 1
		entries = append(entries, RosterEntry{
			Position: position,
			Player:   p,
			Admitted: position <= s.capacity,
		})
	}

	return entries, nil
}
