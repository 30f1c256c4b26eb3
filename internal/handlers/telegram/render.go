package telegram

import (
	"context"
	"fmt"
	"strings"

	tg "github.com/go-telegram/bot/models"
	"github.com/nurd-os/team-sorter/internal/models"
	venueRepo "github.com/nurd-os/team-sorter/internal/repositories/venue"
	"github.com/nurd-os/team-sorter/internal/services/roster"
)

const (
	actionAddPlayer    = "add_player"
	actionRemovePlayer = "remove_player"
	actionAddFriend    = "add_friend"
	actionRemoveFriend = "remove_friend"
)

// renderVenue builds the interactive summary for a venue: the header,
// the numbered roster split at the admission boundary, and the sign-up
// keyboard. Callback data carries the venue ID so the dispatch table
// never has to guess which game a press belongs to.
func (b *Bot) renderVenue(ctx context.Context, venueID string) (string, *tg.InlineKeyboardMarkup, error) {
	v, err := b.venueRepo.GetVenue(ctx, &venueRepo.GetVenueInput{VenueID: venueID})
	if err != nil {
		return "", nil, fmt.Errorf("failed to get venue: %w", err)
	}

	rosterOutput, err := b.rosterService.GetRoster(ctx, &roster.GetRosterInput{VenueID: venueID})
	if err != nil {
		return "", nil, fmt.Errorf("failed to get roster: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n%s at %s\n", v.Location, v.Date.Format("02.01"), v.Time)

	wroteWaitlistHeader := false
	for _, entry := range rosterOutput.Entries {
		if !entry.Admitted && !wroteWaitlistHeader {
			sb.WriteString("\nWaitlist:\n")
			wroteWaitlistHeader = true
		}
		fmt.Fprintf(&sb, "%d. %s\n", entry.Position, entry.Player.DisplayName())
	}

	if len(rosterOutput.Entries) == 0 {
		sb.WriteString("\nNobody signed up yet.\n")
	}

	kb := &tg.InlineKeyboardMarkup{
		InlineKeyboard: [][]tg.InlineKeyboardButton{
			{
				{Text: "I'm in", CallbackData: actionAddPlayer + ":" + venueID},
				{Text: "I'm out", CallbackData: actionRemovePlayer + ":" + venueID},
			},
			{
				{Text: "+ friend", CallbackData: actionAddFriend + ":" + venueID},
				{Text: "- friend", CallbackData: actionRemoveFriend + ":" + venueID},
			},
		},
	}

	return sb.String(), kb, nil
}

// renderTeams formats a finished division
func renderTeams(teams []*models.Team, benched []*models.Player) string {
	var sb strings.Builder
	for _, team := range teams {
		fmt.Fprintf(&sb, "Team %d:\n", team.Number)
		for _, p := range team.Players {
			fmt.Fprintf(&sb, "  %s\n", p.DisplayName())
		}
	}
	if len(benched) > 0 {
		sb.WriteString("On the bench:\n")
		for _, p := range benched {
			fmt.Fprintf(&sb, "  %s\n", p.DisplayName())
		}
	}
	return sb.String()
}
