package pbclock

import "github.com/benbjohnson/clock"

var currentClock = clock.New()

// Clock returns the process clock. Tests swap it out with Mock.
func Clock() clock.Clock {
	return currentClock
}

// Mock replaces the process clock with a mock clock and returns it.
func Mock() *clock.Mock {
	m := clock.NewMock()
	currentClock = m
	return m
}
