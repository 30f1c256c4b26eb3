package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/go-telegram/bot"
	tg "github.com/go-telegram/bot/models"
	venueRepo "github.com/nurd-os/team-sorter/internal/repositories/venue"
	"github.com/nurd-os/team-sorter/internal/services/dialog"
	"github.com/nurd-os/team-sorter/internal/services/roster"
)

// Bot wires the Telegram transport to the dialog and roster services
type Bot struct {
	api           *bot.Bot
	dialogService dialog.Service
	rosterService roster.Service
	venueRepo     venueRepo.Repository
	callbacks     map[string]callbackHandler
}

// Config holds the configuration for the bot
type Config struct {
	// Telegram bot token
	Token string

	// Service dependencies
	DialogService dialog.Service
	RosterService roster.Service

	// VenueRepo backs summary rendering
	VenueRepo venueRepo.Repository
}

// New creates a new Telegram bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.DialogService == nil {
		return nil, errors.New("dialog service cannot be nil")
	}

	if cfg.RosterService == nil {
		return nil, errors.New("roster service cannot be nil")
	}

	if cfg.VenueRepo == nil {
		return nil, errors.New("venue repository cannot be nil")
	}

	b := &Bot{
		dialogService: cfg.DialogService,
		rosterService: cfg.RosterService,
		venueRepo:     cfg.VenueRepo,
	}

	// The full action surface of the inline keyboard. Anything not in
	// this table is rejected, never looked up dynamically.
	b.callbacks = map[string]callbackHandler{
		actionAddPlayer:    b.handleAddPlayer,
		actionRemovePlayer: b.handleRemovePlayer,
		actionAddFriend:    b.handleAddFriend,
		actionRemoveFriend: b.handleRemoveFriend,
	}

	api, err := bot.New(cfg.Token, bot.WithDefaultHandler(b.handleMessage))
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}
	b.api = api

	api.RegisterHandler(bot.HandlerTypeMessageText, "ping", bot.MatchTypeCommand, b.handlePing)
	api.RegisterHandler(bot.HandlerTypeMessageText, "login", bot.MatchTypeCommand, b.handleLogin)
	api.RegisterHandler(bot.HandlerTypeMessageText, "become_admin", bot.MatchTypeCommand, b.handleBecomeAdmin)
	api.RegisterHandler(bot.HandlerTypeMessageText, "start", bot.MatchTypeCommand, b.handleStart)
	api.RegisterHandler(bot.HandlerTypeMessageText, "sort_teams", bot.MatchTypeCommand, b.handleSortTeams)
	api.RegisterHandler(bot.HandlerTypeMessageText, "update_rating", bot.MatchTypeCommand, b.handleUpdateRating)
	api.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, b.handleCallbackQuery)

	return b, nil
}

// Start begins long polling and blocks until the context is canceled
func (b *Bot) Start(ctx context.Context) {
	log.Println("Bot is now running. Press CTRL-C to exit.")
	b.api.Start(ctx)
}

func (b *Bot) handlePing(ctx context.Context, api *bot.Bot, update *tg.Update) {
	b.reply(ctx, api, update.Message.Chat.ID, msgPong)
}

func (b *Bot) handleLogin(ctx context.Context, api *bot.Bot, update *tg.Update) {
	output, err := b.dialogService.Login(ctx, &dialog.LoginInput{
		ExternalID: update.Message.From.ID,
	})
	if err != nil {
		log.Printf("failed to handle login: %v", err)
		b.reply(ctx, api, update.Message.Chat.ID, msgSomethingWentWrong)
		return
	}

	b.reply(ctx, api, update.Message.Chat.ID, output.URL)
}

func (b *Bot) handleBecomeAdmin(ctx context.Context, api *bot.Bot, update *tg.Update) {
	output, err := b.dialogService.RequestAdmin(ctx, &dialog.RequestAdminInput{
		ExternalID: update.Message.From.ID,
		Username:   update.Message.From.Username,
	})
	if err != nil {
		log.Printf("failed to handle admin request: %v", err)
		b.reply(ctx, api, update.Message.Chat.ID, msgSomethingWentWrong)
		return
	}

	if output.AlreadyRequested {
		b.reply(ctx, api, update.Message.Chat.ID, msgAdminAlreadyRequested)
		return
	}

	b.reply(ctx, api, update.Message.Chat.ID, msgAdminRequested)
}

func (b *Bot) handleStart(ctx context.Context, api *bot.Bot, update *tg.Update) {
	output, err := b.dialogService.StartVenueCreation(ctx, &dialog.StartVenueCreationInput{
		ChatID:     update.Message.Chat.ID,
		ExternalID: update.Message.From.ID,
	})
	if err != nil {
		log.Printf("failed to start venue creation: %v", err)
		b.reply(ctx, api, update.Message.Chat.ID, msgSomethingWentWrong)
		return
	}

	if !output.Authorized {
		b.reply(ctx, api, update.Message.Chat.ID, msgNotAuthorized)
		return
	}

	b.reply(ctx, api, update.Message.Chat.ID, msgAskLocation)
}

func (b *Bot) handleSortTeams(ctx context.Context, api *bot.Bot, update *tg.Update) {
	output, err := b.dialogService.StartTeamSort(ctx, &dialog.StartTeamSortInput{
		ChatID:     update.Message.Chat.ID,
		ExternalID: update.Message.From.ID,
	})
	if err != nil {
		log.Printf("failed to start team sort: %v", err)
		b.reply(ctx, api, update.Message.Chat.ID, msgSomethingWentWrong)
		return
	}

	switch {
	case !output.Authorized:
		b.reply(ctx, api, update.Message.Chat.ID, msgNotAuthorized)
	case !output.VenueFound:
		b.reply(ctx, api, update.Message.Chat.ID, msgNoVenue)
	default:
		b.reply(ctx, api, update.Message.Chat.ID, msgAskTeamParams)
	}
}

func (b *Bot) handleUpdateRating(ctx context.Context, api *bot.Bot, update *tg.Update) {
	output, err := b.dialogService.StartRatingUpdate(ctx, &dialog.StartRatingUpdateInput{
		ChatID:     update.Message.Chat.ID,
		ExternalID: update.Message.From.ID,
	})
	if err != nil {
		log.Printf("failed to start rating update: %v", err)
		b.reply(ctx, api, update.Message.Chat.ID, msgSomethingWentWrong)
		return
	}

	switch {
	case !output.Authorized:
		b.reply(ctx, api, update.Message.Chat.ID, msgNotAuthorized)
	case !output.VenueFound:
		b.reply(ctx, api, update.Message.Chat.ID, msgNoVenue)
	default:
		b.reply(ctx, api, update.Message.Chat.ID, msgAskRatingArgs)
	}
}

// handleMessage routes free text into whatever flow the chat is in
func (b *Bot) handleMessage(ctx context.Context, api *bot.Bot, update *tg.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	chatID := update.Message.Chat.ID

	output, err := b.dialogService.HandleMessage(ctx, &dialog.HandleMessageInput{
		ChatID:     chatID,
		ChatTitle:  update.Message.Chat.Title,
		ExternalID: update.Message.From.ID,
		Text:       update.Message.Text,
	})
	if err != nil {
		log.Printf("failed to handle message in chat %d: %v", chatID, err)
		b.reply(ctx, api, chatID, msgSomethingWentWrong)
		return
	}

	switch output.Result {
	case dialog.ResultNoFlow:
		// Chatter outside any flow is none of our business

	case dialog.ResultLocationSaved:
		b.reply(ctx, api, chatID, msgAskDate)

	case dialog.ResultDateSaved:
		b.reply(ctx, api, chatID, msgAskTime)

	case dialog.ResultVenueCreated:
		b.sendVenueSummary(ctx, api, chatID, output.Venue.ID)

	case dialog.ResultFriendSaved:
		b.rerenderVenue(ctx, api, output.RerenderChatID, output.RerenderMessageID, output.RerenderVenueID)

	case dialog.ResultFriendError:
		b.reply(ctx, api, chatID, msgFriendError)

	case dialog.ResultTeamsSorted:
		b.reply(ctx, api, chatID, renderTeams(output.Teams, output.Benched))

	case dialog.ResultRatingSaved:
		b.reply(ctx, api, chatID, fmt.Sprintf("Saved: %s is now rated %.1f.",
			output.Player.DisplayName(), *output.Player.Rating))

	case dialog.ResultInvalidArgument:
		b.reply(ctx, api, chatID, msgWrongArgument)

	case dialog.ResultPersistenceError:
		b.reply(ctx, api, chatID, msgSomethingWentWrong)
	}
}

func (b *Bot) sendVenueSummary(ctx context.Context, api *bot.Bot, chatID int64, venueID string) {
	text, kb, err := b.renderVenue(ctx, venueID)
	if err != nil {
		log.Printf("failed to render venue %s: %v", venueID, err)
		return
	}

	_, err = api.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: kb,
	})
	if err != nil {
		log.Printf("failed to send venue summary to chat %d: %v", chatID, err)
	}
}

func (b *Bot) reply(ctx context.Context, api *bot.Bot, chatID int64, text string) {
	_, err := api.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		log.Printf("failed to send message to chat %d: %v", chatID, err)
	}
}
