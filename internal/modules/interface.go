package modules

import (
	"context"
	"sync"

	"github.com/Black-And-White-Club/impiccato-bot/app/discord"
)

// Module defines the lifecycle shared by application modules.
type Module interface {
	// Run blocks until ctx is cancelled and calls wg.Done on return.
	Run(ctx context.Context, wg *sync.WaitGroup)
	Close() error
}

// CommandModule is a module serving slash commands.
type CommandModule interface {
	Module
	Commands() []discord.Command
}
