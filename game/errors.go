package game

import (
	"errors"
	"fmt"
)

var (
	// ErrProtocol marks input from the external client that can not be trusted.
	// The other errors below wrap it.
	ErrProtocol = errors.New("protocol violation")

	ErrUnknownCoin   = fmt.Errorf("%w: unknown coin", ErrProtocol)
	ErrDieOutOfRange = fmt.Errorf("%w: die out of range", ErrProtocol)
	ErrIllegalMove   = fmt.Errorf("%w: illegal move", ErrProtocol)
	ErrMalformed     = fmt.Errorf("%w: malformed line", ErrProtocol)
)
