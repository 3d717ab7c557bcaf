package cmd

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"tracker/bot"
	"tracker/config"
	"tracker/events"
	"tracker/service"
)

// Run initializes and starts the Discord bot
func Run(ctx context.Context) error {
	log.Info("Starting tracker bot...")

	// Load configuration
	cfg := config.Get()
	if err := cfg.RequireDiscord(); err != nil {
		return err
	}

	// Initialize event bus
	eventBus := events.NewBus()

	st, err := openStore(ctx, cfg, eventBus)
	if err != nil {
		return err
	}
	defer st.close()

	// Initialize services
	trackerService, err := service.NewTrackerService(ctx, st.uowFactory, cfg.SessionDefaults)
	if err != nil {
		return fmt.Errorf("failed to initialize tracker service: %w", err)
	}
	statsService := service.NewStatsService(st.uowFactory)

	// Initialize Discord bot
	log.Info("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:     cfg.DiscordToken,
		GuildID:   cfg.DiscordGuildID,
		ChannelID: cfg.DiscordChannelID,
	}
	discordBot, err := bot.New(botConfig, trackerService, statsService)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	bot.RegisterBotSubscriptions(eventBus, discordBot)
	log.Info("Discord bot initialized successfully")

	// Wait for context cancellation
	log.Infof("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	log.Info("Shutting down bot...")
	if err := discordBot.Close(); err != nil {
		log.Errorf("Error closing Discord bot: %v", err)
	}

	// Give in-flight event handlers a moment to finish
	time.Sleep(time.Second)
	log.Info("Shutdown completed")

	return nil
}
