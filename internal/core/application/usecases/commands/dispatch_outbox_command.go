package commands

import (
	"errors"

	"parceltrack/internal/pkg/guard"
)

var ErrDispatchOutboxCommandIsNotConstructed = errors.New(
	"DispatchOutboxCommand must be created via NewDispatchOutboxCommand constructor",
)

// DispatchOutboxCommand triggers a drain pass over the outbox: pending
// messages are published to the broker and marked sent. This is a
// parameterless batch command invoked by the scheduler.
type DispatchOutboxCommand struct {
	guard guard.ConstructorGuard
}

// NewDispatchOutboxCommand creates a command to drain pending outbox messages.
func NewDispatchOutboxCommand() DispatchOutboxCommand {
	return DispatchOutboxCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *DispatchOutboxCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOutboxCommandIsNotConstructed)
}
