package types

import "errors"

// Failure kinds. Callers wrap these with fmt.Errorf("...: %w", Err...) and
// classify with errors.Is.
var (
	// ErrTimeout is a connect, send or receive deadline expiring.
	ErrTimeout = errors.New("transport timeout")
	// ErrUnreachable is a refused, reset or otherwise failed connection.
	ErrUnreachable = errors.New("transport unreachable")
	// ErrDecode is malformed bytes, a bounds violation or an unexpected header.
	ErrDecode = errors.New("protocol decode error")
	// ErrDesync means a remembered message was deleted outside of the bot.
	ErrDesync = errors.New("message desync")
	// ErrNotFound is a lookup on something that is not registered.
	ErrNotFound = errors.New("not found")
	// ErrConfiguration is an invalid endpoint or protocol kind.
	ErrConfiguration = errors.New("configuration error")
	// ErrAlreadyRegistered is an add for a server that is already monitored.
	ErrAlreadyRegistered = errors.New("already registered")
)
