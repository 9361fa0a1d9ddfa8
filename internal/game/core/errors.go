package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDirection  = errors.New("invalid direction")
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	ErrGameOver          = errors.New("game is over")
)

// WrapRoleError attaches the acting snake and operation to err.
// Returns nil if err is nil.
func WrapRoleError(role Role, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s %s: %w", role, operation, err)
}

// WrapTickError attaches the tick number and phase to err.
// Returns nil if err is nil.
func WrapTickError(tick int, phase string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("game tick %d [%s]: %w", tick, phase, err)
}
