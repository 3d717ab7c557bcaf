package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"tracker/bot/features/session"
)

const (
	commandTracker = "tracker"
	commandSession = "session"
)

// commands returns all slash command definitions
func commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        commandTracker,
			Description: "Open the progression tracker panel",
		},
		session.Command(),
	}
}

// registerCommands registers all slash commands with Discord. With a guild id
// set they are registered on that guild only, which takes effect immediately.
func (b *Bot) registerCommands() error {
	for _, cmd := range commands() {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	return nil
}
