package commands

import (
	"errors"

	"parceltrack/internal/pkg/guard"
)

var ErrPurgeExpiredTrackingItemsCommandIsNotConstructed = errors.New(
	"PurgeExpiredTrackingItemsCommand must be created via NewPurgeExpiredTrackingItemsCommand constructor",
)

// PurgeExpiredTrackingItemsCommand triggers a sweep that removes parcels whose
// retention deadline has passed. This is a parameterless batch command invoked
// by the scheduler.
type PurgeExpiredTrackingItemsCommand struct {
	guard guard.ConstructorGuard
}

// NewPurgeExpiredTrackingItemsCommand creates a command to sweep expired parcels.
func NewPurgeExpiredTrackingItemsCommand() PurgeExpiredTrackingItemsCommand {
	return PurgeExpiredTrackingItemsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *PurgeExpiredTrackingItemsCommand) Validate() error {
	return c.guard.Validate(ErrPurgeExpiredTrackingItemsCommandIsNotConstructed)
}
