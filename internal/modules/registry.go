package modules

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Black-And-White-Club/impiccato-bot/app/discord"
)

// ModuleRegistry stores and manages application modules.
type ModuleRegistry struct {
	names   []string
	modules map[string]Module
	wg      sync.WaitGroup
}

// NewModuleRegistry initializes and returns an empty ModuleRegistry.
func NewModuleRegistry() *ModuleRegistry {
	return &ModuleRegistry{modules: make(map[string]Module)}
}

// Add registers m under name.
func (r *ModuleRegistry) Add(name string, m Module) error {
	if _, exists := r.modules[name]; exists {
		return fmt.Errorf("module %q already registered", name)
	}
	r.names = append(r.names, name)
	r.modules[name] = m
	return nil
}

// Names returns the registered module names in registration order.
func (r *ModuleRegistry) Names() []string {
	return append([]string(nil), r.names...)
}

// Commands collects the slash commands of every CommandModule.
func (r *ModuleRegistry) Commands() []discord.Command {
	var commands []discord.Command
	for _, name := range r.names {
		if cm, ok := r.modules[name].(CommandModule); ok {
			commands = append(commands, cm.Commands()...)
		}
	}
	return commands
}

// RunAll starts every module on its own goroutine.
func (r *ModuleRegistry) RunAll(ctx context.Context) {
	for _, name := range r.names {
		r.wg.Add(1)
		go r.modules[name].Run(ctx, &r.wg)
	}
}

// Wait blocks until every module started by RunAll has returned.
func (r *ModuleRegistry) Wait() {
	r.wg.Wait()
}

// CloseAll closes modules in reverse registration order and joins the errors.
func (r *ModuleRegistry) CloseAll() error {
	var errs []error
	for i := len(r.names) - 1; i >= 0; i-- {
		name := r.names[i]
		if err := r.modules[name].Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close module %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}
