package types

import "time"

// A StatusReport is everything needed to render one status message.
type StatusReport struct {
	Kind             ProtocolKind
	Title            string
	Description      string
	Players          string
	PlayerNames      []string
	Map              string
	Version          string
	VersionChangedAt time.Time
	History          string
	ChartURL         string
	Online           bool
	Timestamp        time.Time
}
