package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"tracker/bot/features/session"
	"tracker/bot/features/tracker"
	"tracker/service"
)

// Config holds bot configuration
type Config struct {
	Token   string
	GuildID string
	// ChannelID receives game-end notices; empty disables them
	ChannelID string
}

// Bot manages the Discord bot and all feature modules
type Bot struct {
	// Core components
	config  Config
	session *discordgo.Session

	// Feature modules
	tracker  *tracker.Feature
	sessions *session.Feature
}

// New creates a new bot instance with all features
func New(config Config, trackerService service.TrackerService, statsService service.StatsService) (*Bot, error) {
	// Create Discord session
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds

	bot := &Bot{
		config:   config,
		session:  dg,
		tracker:  tracker.NewFeature(trackerService),
		sessions: session.NewFeature(trackerService, statsService),
	}

	// Register handlers
	dg.AddHandler(bot.handleCommands)
	dg.AddHandler(bot.handleInteractions)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	log.WithField("guildID", config.GuildID).Info("Discord bot connected")
	return bot, nil
}

// Close gracefully shuts down the bot
func (b *Bot) Close() error {
	return b.session.Close()
}

// handleCommands routes slash commands to appropriate handlers
func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case commandTracker:
		b.tracker.HandleCommand(s, i)
	case commandSession:
		b.sessions.HandleCommand(s, i)
	}
}

// handleInteractions routes component interactions to appropriate features
func (b *Bot) handleInteractions(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	customID := i.MessageComponentData().CustomID
	switch {
	case strings.HasPrefix(customID, tracker.CustomIDPrefix):
		b.tracker.HandleInteraction(s, i)
	}
}
