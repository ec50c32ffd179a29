package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrCreateTrackingItemCommandIsNotConstructed = errors.New(
		"CreateTrackingItemCommand must be created via NewCreateTrackingItemCommand constructor",
	)
	ErrTrackingNumberIsEmpty = errors.New("tracking number is required")
)

// CreateTrackingItemCommand represents a request to register a new parcel at
// US intake. Optional attributes (alternate reference, chain key, agent code)
// may be empty.
//
// Example:
//
//	itemID := kernel.NewUUID()
//	cmd, err := NewCreateTrackingItemCommand(itemID, "LX123456789US", "", "chain-7", "AG01")
//	if err != nil {
//	    return fmt.Errorf("invalid tracking data: %w", err)
//	}
//
//	handler := NewCreateTrackingItemCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to register parcel: %w", err)
//	}
type CreateTrackingItemCommand struct { //nolint:recvcheck //using for validation
	trackingItemID kernel.UUID
	trackingNumber string
	alternateRef   string
	chainKey       string
	agentCode      string

	guard guard.ConstructorGuard
}

// NewCreateTrackingItemCommand creates a command to register a new parcel.
// Validates that the item ID is valid and the tracking number is not empty.
func NewCreateTrackingItemCommand(
	trackingItemID kernel.UUID,
	trackingNumber, alternateRef, chainKey, agentCode string,
) (CreateTrackingItemCommand, error) {
	cmd := CreateTrackingItemCommand{
		alternateRef: alternateRef,
		chainKey:     chainKey,
		agentCode:    agentCode,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTrackingItemID(trackingItemID),
		cmd.setTrackingNumber(trackingNumber),
	); err != nil {
		return CreateTrackingItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateTrackingItemCommand) Validate() error {
	return c.guard.Validate(ErrCreateTrackingItemCommandIsNotConstructed)
}

// TrackingItemID returns the unique identifier for the new item.
func (c CreateTrackingItemCommand) TrackingItemID() kernel.UUID {
	return c.trackingItemID
}

// TrackingNumber returns the carrier tracking number.
func (c CreateTrackingItemCommand) TrackingNumber() string {
	return c.trackingNumber
}

// AlternateRef returns the optional secondary reference.
func (c CreateTrackingItemCommand) AlternateRef() string {
	return c.alternateRef
}

// ChainKey returns the optional grouping key for related items.
func (c CreateTrackingItemCommand) ChainKey() string {
	return c.chainKey
}

// AgentCode returns the optional intake agent code.
func (c CreateTrackingItemCommand) AgentCode() string {
	return c.agentCode
}

func (c *CreateTrackingItemCommand) setTrackingItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.trackingItemID = id
	return nil
}

func (c *CreateTrackingItemCommand) setTrackingNumber(number string) error {
	if number == "" {
		return ErrTrackingNumberIsEmpty
	}

	c.trackingNumber = number
	return nil
}
