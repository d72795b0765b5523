// Package history records per-server player counts and renders them as a
// text sparkline or a PNG chart.
package history

import (
	"sort"
	"time"

	"github.com/poundbot/gamewatch/types"

	"github.com/benbjohnson/clock"
	"github.com/sirupsen/logrus"
)

// Default windows.
const (
	DefaultWindow     = 12 * time.Hour
	DefaultTextWindow = 90 * time.Minute
)

// Prune returns the samples at or after cutoff in chronological order. The
// input is not modified.
func Prune(samples []types.HistoricSample, cutoff time.Time) []types.HistoricSample {
	kept := make([]types.HistoricSample, 0, len(samples))
	for _, s := range samples {
		if s.At.Before(cutoff) {
			continue
		}
		kept = append(kept, s)
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].At.Before(kept[j].At) })
	return kept
}

type samplesStore interface {
	Append(id string, sample types.HistoricSample, cutoff time.Time) error
	Read(id string, cutoff time.Time) ([]types.HistoricSample, error)
}

// A Sampler appends clamped samples and reads back the retention window.
type Sampler struct {
	store  samplesStore
	window time.Duration
	clock  clock.Clock
}

// NewSampler returns a Sampler keeping window worth of samples. A
// non-positive window selects DefaultWindow.
func NewSampler(store samplesStore, window time.Duration, clk clock.Clock) *Sampler {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Sampler{store: store, window: window, clock: clk}
}

// Window is the retention window.
func (s *Sampler) Window() time.Duration {
	return s.window
}

// Record stores the current player count for id, clamped into [0, max].
func (s *Sampler) Record(id string, online, max int) (types.HistoricSample, error) {
	now := s.clock.Now().UTC()
	sample := types.NewHistoricSample(now, online, max)

	if err := s.store.Append(id, sample, now.Add(-s.window)); err != nil {
		return types.HistoricSample{}, err
	}

	log.WithFields(logrus.Fields{"id": id, "players": sample.Players}).Trace("sample recorded")
	return sample, nil
}

// Samples returns the samples of id inside the last window, oldest first.
// window is capped at the retention window.
func (s *Sampler) Samples(id string, window time.Duration) ([]types.HistoricSample, error) {
	if window <= 0 || window > s.window {
		window = s.window
	}
	cutoff := s.clock.Now().UTC().Add(-window)

	samples, err := s.store.Read(id, cutoff)
	if err != nil {
		return nil, err
	}
	return Prune(samples, cutoff), nil
}
