package telegram

import "time"

// Config of the chat front-end. An empty token disables the bot.
type Config struct {
	Token        string        `yaml:"token"`
	PollInterval time.Duration `yaml:"pollInterval"`

	// NotifyBefore lists how long before a meeting subscribers are reminded.
	NotifyBefore []time.Duration `yaml:"notifyBefore"`
}
