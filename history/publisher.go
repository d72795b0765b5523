package history

import (
	"context"
	"os"
	"time"

	"github.com/poundbot/gamewatch/types"

	"github.com/benbjohnson/clock"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

// DefaultChartEvery is how long a published chart is reused.
const DefaultChartEvery = 10 * time.Minute

// An Uploader stores the image at filePath and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, filePath, id string) (string, error)
}

type chartSlot struct {
	slot time.Time
	url  string
}

// A ChartPublisher renders and uploads charts, at most once per slot of
// Every per sample id. Between uploads the last URL is reused.
type ChartPublisher struct {
	uploader Uploader
	every    time.Duration
	window   time.Duration
	clock    clock.Clock
	slots    *cache.Cache
}

// NewChartPublisher returns a ChartPublisher. Non-positive durations select
// the defaults.
func NewChartPublisher(u Uploader, every, window time.Duration, clk clock.Clock) *ChartPublisher {
	if every <= 0 {
		every = DefaultChartEvery
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &ChartPublisher{
		uploader: u,
		every:    every,
		window:   window,
		clock:    clk,
		slots:    cache.New(3*every, every),
	}
}

// URL returns the chart URL for id, rendering and uploading a new chart when
// the current slot has none yet. A failed upload keeps the previous URL.
func (p *ChartPublisher) URL(ctx context.Context, id string, samples []types.HistoricSample, max int) string {
	now := p.clock.Now().UTC()
	slot := now.Truncate(p.every)

	var prev chartSlot
	if v, ok := p.slots.Get(id); ok {
		prev = v.(chartSlot)
		if prev.slot.Equal(slot) {
			return prev.url
		}
	}

	url, err := p.publish(ctx, id, samples, now, max)
	if err != nil {
		log.WithFields(logrus.Fields{"id": id}).WithError(err).Warn("chart upload failed")
		url = prev.url
	}
	p.slots.Set(id, chartSlot{slot: slot, url: url}, cache.DefaultExpiration)
	return url
}

func (p *ChartPublisher) publish(ctx context.Context, id string, samples []types.HistoricSample, now time.Time, max int) (string, error) {
	f, err := os.CreateTemp("", "chart-"+id+"-*.png")
	if err != nil {
		return "", err
	}
	defer os.Remove(f.Name())

	if err := RenderChart(f, samples, now, max, p.window); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	return p.uploader.Upload(ctx, f.Name(), id)
}
