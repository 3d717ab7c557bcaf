package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"tracker/bot/features/tracker"
	"tracker/events"
)

// channelPoster is the part of the Discord session the subscriptions use
type channelPoster interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// RegisterBotSubscriptions registers all bot-level event subscriptions
func RegisterBotSubscriptions(bus *events.Bus, bot *Bot) {
	registerSubscriptions(bus, bot.session, bot.config.ChannelID)
}

func registerSubscriptions(bus *events.Bus, poster channelPoster, channelID string) {
	if channelID != "" {
		bus.Subscribe(events.EventTypeGameEnded, func(ctx context.Context, event events.Event) {
			handleGameEnded(event, poster, channelID)
		})
	}

	bus.Subscribe(events.EventTypeSessionReset, func(ctx context.Context, event events.Event) {
		resetEvent, ok := event.(events.SessionResetEvent)
		if !ok {
			return
		}
		log.WithFields(log.Fields{
			"previousSessionID": resetEvent.PreviousSessionID,
			"sessionID":         resetEvent.SessionID,
			"kind":              resetEvent.Kind,
		}).Info("Tracking session replaced")
	})

	log.Info("Bot event subscriptions registered successfully")
}

// handleGameEnded posts the end-of-game notice to the configured channel
func handleGameEnded(event events.Event, poster channelPoster, channelID string) {
	endEvent, ok := event.(events.GameEndedEvent)
	if !ok {
		log.Error("Received non-GameEndedEvent in game ended handler")
		return
	}

	log.WithFields(log.Fields{
		"sessionID": endEvent.SessionID,
		"gameNo":    endEvent.End.GameNo,
		"reason":    endEvent.End.Reason,
		"finalPnL":  endEvent.End.FinalPnL,
	}).Info("Posting game end notice")

	if _, err := poster.ChannelMessageSendEmbed(channelID, tracker.BuildGameEndEmbed(endEvent.End)); err != nil {
		log.WithFields(log.Fields{
			"channelID": channelID,
			"error":     err,
		}).Error("Failed to post game end notice")
	}
}
