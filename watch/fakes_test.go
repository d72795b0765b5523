package watch

import (
	"context"
	"fmt"
	"sync"

	"github.com/poundbot/gamewatch/types"
)

// fakeProber answers from a table of snapshots or errors per endpoint.
type fakeProber struct {
	mu     sync.Mutex
	snaps  map[types.Endpoint]types.Snapshot
	errs   map[types.Endpoint]error
	panics map[types.Endpoint]bool
	calls  int

	// beforeAnswer runs before each answer, outside the lock.
	beforeAnswer func(ep types.Endpoint)
}

func newFakeProber() *fakeProber {
	return &fakeProber{
		snaps:  map[types.Endpoint]types.Snapshot{},
		errs:   map[types.Endpoint]error{},
		panics: map[types.Endpoint]bool{},
	}
}

func (p *fakeProber) Probe(ctx context.Context, kind types.ProtocolKind, ep types.Endpoint) (types.Snapshot, error) {
	if p.beforeAnswer != nil {
		p.beforeAnswer(ep)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.panics[ep] {
		panic("prober exploded")
	}
	if err, ok := p.errs[ep]; ok {
		return types.Snapshot{}, err
	}
	snap, ok := p.snaps[ep]
	if !ok {
		return types.Snapshot{}, fmt.Errorf("no route: %w", types.ErrUnreachable)
	}
	return snap, nil
}

type sentMessage struct {
	ref    types.MessageRef
	report types.StatusReport
}

type notice struct {
	guildID, channelID, text string
}

// fakeMessenger is an in-memory chat surface.
type fakeMessenger struct {
	mu       sync.Mutex
	next     int
	messages map[types.MessageRef]types.StatusReport
	edits    map[types.MessageRef]int
	deleted  []types.MessageRef
	notices  []notice
}

func newFakeMessenger() *fakeMessenger {
	return &fakeMessenger{
		messages: map[types.MessageRef]types.StatusReport{},
		edits:    map[types.MessageRef]int{},
	}
}

func (m *fakeMessenger) Publish(ctx context.Context, guildID, channelID string, r types.StatusReport) (types.MessageRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	ref := types.MessageRef{ChannelID: channelID, MessageID: fmt.Sprintf("M%d", m.next)}
	m.messages[ref] = r
	return ref, nil
}

func (m *fakeMessenger) Fetch(ctx context.Context, guildID string, ref types.MessageRef) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.messages[ref]; !ok {
		return types.ErrNotFound
	}
	return nil
}

func (m *fakeMessenger) Edit(ctx context.Context, ref types.MessageRef, r types.StatusReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.messages[ref]; !ok {
		return types.ErrNotFound
	}
	m.messages[ref] = r
	m.edits[ref]++
	return nil
}

func (m *fakeMessenger) Delete(ctx context.Context, ref types.MessageRef) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.messages[ref]; !ok {
		return types.ErrNotFound
	}
	delete(m.messages, ref)
	m.deleted = append(m.deleted, ref)
	return nil
}

// deleteExternally removes a message without recording it as deleted by
// the bot.
func (m *fakeMessenger) deleteExternally(ref types.MessageRef) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.messages, ref)
}

func (m *fakeMessenger) Notify(ctx context.Context, guildID, channelID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notices = append(m.notices, notice{guildID: guildID, channelID: channelID, text: text})
	return nil
}

type fakeRecorder struct{}

func (fakeRecorder) Record(id string, online, max int) (types.HistoricSample, error) {
	return types.HistoricSample{Players: online}, nil
}

type fakeBuilder struct{}

func (fakeBuilder) Build(ctx context.Context, server types.MonitoredServer, snap types.Snapshot) types.StatusReport {
	return types.StatusReport{Kind: server.Kind, Players: fmt.Sprintf("%d/%d", snap.Online, snap.Max), Online: true}
}
