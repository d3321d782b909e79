// internal/notify/discord/discord.go
package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/tamzrod/twitch-alert/internal/notify"
)

type Config struct {
	BotToken  string
	ChannelID string
}

// Channel posts messages to a fixed Discord channel. REST only: the
// session never opens a gateway connection.
type Channel struct {
	session   *discordgo.Session
	channelID string
}

func New(cfg Config) (*Channel, error) {
	if cfg.BotToken == "" {
		return nil, errors.New("discord: bot token required")
	}
	if cfg.ChannelID == "" {
		return nil, errors.New("discord: channel id required")
	}

	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("discord: session: %w", err)
	}

	return &Channel{session: session, channelID: cfg.ChannelID}, nil
}

func (c *Channel) Name() string { return "discord" }

func (c *Channel) Send(ctx context.Context, msg notify.Message) error {
	content := "**" + msg.Title + "**"
	if msg.Body != "" {
		content += "\n" + msg.Body
	}

	_, err := c.session.ChannelMessageSendComplex(c.channelID, &discordgo.MessageSend{
		Content:         content,
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("discord: send: %w", err)
	}
	return nil
}
