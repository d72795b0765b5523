package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewHistoricSample(t *testing.T) {
	t.Parallel()

	at := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	tests := []struct {
		name    string
		players int
		max     int
		want    int
	}{
		{name: "in range", players: 5, max: 10, want: 5},
		{name: "overflow clamps to max", players: 15, max: 10, want: 10},
		{name: "negative clamps to zero", players: -3, max: 10, want: 0},
		{name: "negative max", players: 3, max: -1, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewHistoricSample(at, tt.players, tt.max)
			assert.Equal(t, HistoricSample{At: at, Players: tt.want}, got)
		})
	}
}
