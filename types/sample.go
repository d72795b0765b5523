package types

import "time"

// A HistoricSample is a player count observed at a point in time.
type HistoricSample struct {
	At      time.Time `json:"at" bson:"at"`
	Players int       `json:"players" bson:"players"`
}

// NewHistoricSample clamps players into [0, max].
func NewHistoricSample(at time.Time, players, max int) HistoricSample {
	if max < 0 {
		max = 0
	}
	if players > max {
		players = max
	}
	if players < 0 {
		players = 0
	}
	return HistoricSample{At: at, Players: players}
}
