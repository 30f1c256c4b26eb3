package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-telegram/bot"
	tg "github.com/go-telegram/bot/models"
	"github.com/nurd-os/team-sorter/internal/services/dialog"
	"github.com/nurd-os/team-sorter/internal/services/roster"
)

// callbackHandler processes one inline-button press for a venue
type callbackHandler func(ctx context.Context, b *bot.Bot, query *tg.CallbackQuery, venueID string)

// handleCallbackQuery routes a button press through the fixed action
// table. Callback data is "<action>:<venueID>"; anything else, and any
// action not in the table, is a wrong argument.
func (b *Bot) handleCallbackQuery(ctx context.Context, api *bot.Bot, update *tg.Update) {
	query := update.CallbackQuery
	if query == nil || query.Message.Message == nil {
		return
	}

	// Stop the client spinner regardless of what happens next
	_, err := api.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: query.ID,
	})
	if err != nil {
		log.Printf("failed to answer callback query: %v", err)
	}

	action, venueID, found := strings.Cut(query.Data, ":")
	if !found || venueID == "" {
		b.reply(ctx, api, query.Message.Message.Chat.ID, msgWrongArgument)
		return
	}

	handler, ok := b.callbacks[action]
	if !ok {
		b.reply(ctx, api, query.Message.Message.Chat.ID, msgWrongArgument)
		return
	}

	handler(ctx, api, query, venueID)
}

func (b *Bot) handleAddPlayer(ctx context.Context, api *bot.Bot, query *tg.CallbackQuery, venueID string) {
	chatID := query.Message.Message.Chat.ID

	_, err := b.rosterService.AddPlayer(ctx, &roster.AddPlayerInput{
		VenueID:    venueID,
		ExternalID: query.From.ID,
		FirstName:  query.From.FirstName,
		LastName:   query.From.LastName,
		Username:   query.From.Username,
	})
	if err != nil {
		if errors.Is(err, roster.ErrAlreadyJoined) {
			b.reply(ctx, api, chatID, msgAlreadyJoined)
			return
		}
		log.Printf("failed to add player to venue %s: %v", venueID, err)
		b.reply(ctx, api, chatID, msgSomethingWentWrong)
		return
	}

	b.rerenderVenue(ctx, api, chatID, query.Message.Message.ID, venueID)
}

func (b *Bot) handleRemovePlayer(ctx context.Context, api *bot.Bot, query *tg.CallbackQuery, venueID string) {
	chatID := query.Message.Message.Chat.ID

	output, err := b.rosterService.RemovePlayer(ctx, &roster.RemovePlayerInput{
		VenueID:    venueID,
		ExternalID: query.From.ID,
	})
	if err != nil {
		if errors.Is(err, roster.ErrPlayerNotFound) {
			b.reply(ctx, api, chatID, msgNotOnRoster)
			return
		}
		log.Printf("failed to remove player from venue %s: %v", venueID, err)
		b.reply(ctx, api, chatID, msgSomethingWentWrong)
		return
	}

	if output.GameDayDeparture {
		b.reply(ctx, api, chatID, fmt.Sprintf(fmtLeftTheList,
			output.RemovedPlayer.DisplayName(), output.RemainingCount))
	}

	b.notifyPromotion(ctx, api, output)
	b.rerenderVenue(ctx, api, chatID, query.Message.Message.ID, venueID)
}

func (b *Bot) handleAddFriend(ctx context.Context, api *bot.Bot, query *tg.CallbackQuery, venueID string) {
	chatID := query.Message.Message.Chat.ID

	_, err := b.dialogService.BeginFriendEntry(ctx, &dialog.BeginFriendEntryInput{
		ChatID:            chatID,
		OwnerExternalID:   query.From.ID,
		VenueID:           venueID,
		CallbackChatID:    chatID,
		CallbackMessageID: query.Message.Message.ID,
	})
	if err != nil {
		log.Printf("failed to begin friend entry for venue %s: %v", venueID, err)
		b.reply(ctx, api, chatID, msgSomethingWentWrong)
		return
	}

	b.reply(ctx, api, chatID, msgAskFriendData)
}

func (b *Bot) handleRemoveFriend(ctx context.Context, api *bot.Bot, query *tg.CallbackQuery, venueID string) {
	chatID := query.Message.Message.Chat.ID

	output, err := b.rosterService.RemoveFriend(ctx, &roster.RemoveFriendInput{
		VenueID:         venueID,
		OwnerExternalID: query.From.ID,
	})
	if err != nil {
		if errors.Is(err, roster.ErrFriendNotFound) {
			b.reply(ctx, api, chatID, msgNoFriendToDrop)
			return
		}
		log.Printf("failed to remove friend from venue %s: %v", venueID, err)
		b.reply(ctx, api, chatID, msgSomethingWentWrong)
		return
	}

	if output.GameDayDeparture {
		b.reply(ctx, api, chatID, fmt.Sprintf(fmtLeftTheList,
			output.RemovedPlayer.DisplayName(), output.RemainingCount))
	}

	b.notifyPromotion(ctx, api, output)
	b.rerenderVenue(ctx, api, chatID, query.Message.Message.ID, venueID)
}

// notifyPromotion tells a newly admitted player directly. Guests carry
// no chat identity, so only self-registered players get the notice.
func (b *Bot) notifyPromotion(ctx context.Context, api *bot.Bot, output *roster.RemovePlayerOutput) {
	if output.PromotedPlayer == nil || output.PromotedPlayer.ExternalID == 0 {
		return
	}

	b.reply(ctx, api, output.PromotedPlayer.ExternalID, msgPromoted)
}

// rerenderVenue refreshes the interactive summary in place
func (b *Bot) rerenderVenue(ctx context.Context, api *bot.Bot, chatID int64, messageID int, venueID string) {
	text, kb, err := b.renderVenue(ctx, venueID)
	if err != nil {
		log.Printf("failed to render venue %s: %v", venueID, err)
		return
	}

	_, err = api.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        text,
		ReplyMarkup: kb,
	})
	if err != nil {
		log.Printf("failed to rerender venue %s: %v", venueID, err)
	}
}
