package config

import "errors"

// ErrMissingToken is returned when no bot token is configured.
var ErrMissingToken = errors.New("DISCORD_TOKEN not found in environment variables")
