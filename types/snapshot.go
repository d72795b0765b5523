package types

import "time"

// A Player is one entry of a server's player list.
type Player struct {
	Name     string
	ID       string
	Score    int32
	Duration time.Duration
}

// A Snapshot is one decoded point-in-time result of a single poll.
type Snapshot struct {
	Name        string
	Description string
	Map         string
	Version     string
	Online      int
	Max         int
	Bots        int
	Mods        int
	Players     []Player
}

// PlayerNames returns the names of the sampled players in order.
func (s Snapshot) PlayerNames() []string {
	names := make([]string, 0, len(s.Players))
	for _, p := range s.Players {
		if p.Name == "" {
			continue
		}
		names = append(names, p.Name)
	}
	return names
}
