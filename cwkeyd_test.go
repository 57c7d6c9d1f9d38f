package cwkeyd

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubKeyer records writes and never produces status bytes.
type stubKeyer struct {
	mu     sync.Mutex
	writes [][]byte
	closed bool
}

func (k *stubKeyer) Write(p []byte) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.writes = append(k.writes, append([]byte{}, p...))
	return nil
}

func (k *stubKeyer) ReadByte() (byte, bool, error) {
	return 0, false, nil
}

func (k *stubKeyer) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.closed = true
	return nil
}

func (k *stubKeyer) isClosed() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.closed
}

// stubNetwork is always idle.
type stubNetwork struct {
	mu     sync.Mutex
	closed bool
}

func (n *stubNetwork) Recv(timeout time.Duration) ([]byte, net.Addr, bool, error) {
	time.Sleep(timeout)
	return nil, nil, false, nil
}

func (n *stubNetwork) SendTo(p []byte, addr net.Addr, timeout time.Duration) error {
	return nil
}

func (n *stubNetwork) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	return nil
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinSpeed = 40
	cfg.MaxSpeed = 10

	_, err := New(cfg)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestDaemon_StartStop(t *testing.T) {
	keyer := &stubKeyer{}
	events := &eventRecorder{}
	d, err := New(DefaultConfig(),
		WithKeyerPort(keyer),
		WithNetwork(&stubNetwork{}),
		WithEventHandler(events),
	)
	require.NoError(t, err)
	assert.Equal(t, StateStopped, d.Status())

	require.NoError(t, d.Start(context.Background()))
	assert.Equal(t, StateRunning, d.Status())

	require.NoError(t, d.Stop())
	require.Eventually(t, func() bool {
		return d.Status() == StateStopped
	}, time.Second, 10*time.Millisecond)

	assert.True(t, keyer.isClosed())
	assert.NotEmpty(t, events.states())
}

func TestDaemon_DoubleStart(t *testing.T) {
	d, err := New(DefaultConfig(),
		WithKeyerPort(&stubKeyer{}),
		WithNetwork(&stubNetwork{}),
	)
	require.NoError(t, err)

	require.NoError(t, d.Start(context.Background()))
	defer d.Stop()

	assert.ErrorIs(t, d.Start(context.Background()), ErrAlreadyRunning)
}

func TestDaemon_StopWhenStopped(t *testing.T) {
	d, err := New(DefaultConfig(),
		WithKeyerPort(&stubKeyer{}),
		WithNetwork(&stubNetwork{}),
	)
	require.NoError(t, err)

	assert.ErrorIs(t, d.Stop(), ErrNotRunning)
}

type eventRecorder struct {
	mu     sync.Mutex
	events []StateChangeEvent
}

func (r *eventRecorder) OnStateChange(event StateChangeEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *eventRecorder) states() []StateChangeEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]StateChangeEvent{}, r.events...)
}
