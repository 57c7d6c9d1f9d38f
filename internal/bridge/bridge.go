package bridge

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kb1gnc/cwkeyd/internal/domain"
	"github.com/kb1gnc/cwkeyd/internal/ports"
)

// Bridge translates the client text/escape protocol into the keyer's
// byte protocol and back. Use New() to create an instance, Start() to
// run it.
type Bridge struct {
	cfg       Config
	keyer     ports.KeyerPort
	network   ports.Network
	logger    ports.Logger
	lifecycle *Lifecycle
	session   *Session

	// now is the loop's clock; replaced in tests.
	now func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
}

// New creates a bridge over already-open keyer and network ports.
// The configuration must have been defaulted and validated.
func New(cfg Config, keyer ports.KeyerPort, network ports.Network, logger ports.Logger, emitter EventEmitter) *Bridge {
	return &Bridge{
		cfg:       cfg,
		keyer:     keyer,
		network:   network,
		logger:    logger,
		lifecycle: NewLifecycle(logger, emitter),
		session:   NewSession(cfg),
		now:       time.Now,
	}
}

// Start initializes the keyer and launches the event loop goroutine.
// Returns an error if the bridge is already running or if the keyer
// initialization sequence fails; a half-initialized keyer is fatal.
func (b *Bridge) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.lifecycle.CanStart() {
		return domain.ErrAlreadyRunning
	}
	if err := b.lifecycle.TransitionTo(StateStarting, "start requested"); err != nil {
		return err
	}

	if err := b.initKeyer(); err != nil {
		_ = b.lifecycle.TransitionTo(StateCrashed, "keyer init failed")
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	b.cancel = cancel
	b.lifecycle.SetCancel(cancel)

	b.lifecycle.AddWorker()
	go b.run(ctx)

	return b.lifecycle.TransitionTo(StateRunning, "started")
}

// Stop requests a graceful shutdown and waits for the loop to finish.
func (b *Bridge) Stop() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.lifecycle.CanStop() {
		return domain.ErrNotRunning
	}
	if err := b.lifecycle.TransitionTo(StateStopping, "stop requested"); err != nil {
		return err
	}
	b.lifecycle.Cancel()
	return b.lifecycle.WaitWithTimeout(ShutdownTimeout)
}

// Status returns the current lifecycle state.
func (b *Bridge) Status() State {
	return b.lifecycle.State()
}

// run executes the loop and settles the lifecycle when it exits.
func (b *Bridge) run(ctx context.Context) {
	defer b.lifecycle.WorkerDone()

	err := b.runLoop(ctx)

	b.session.Queue.Clear()
	b.closeKeyer(err == nil)
	if cerr := b.network.Close(); cerr != nil {
		b.logger.Warn("network close failed", ports.Err(cerr))
	}

	if b.lifecycle.State() == StateRunning {
		reason := "loop finished"
		if err != nil {
			reason = "transport failure"
		}
		_ = b.lifecycle.TransitionTo(StateStopping, reason)
	}
	if err != nil {
		b.logger.Error("bridge crashed", ports.Err(err))
		_ = b.lifecycle.TransitionTo(StateCrashed, err.Error())
		return
	}
	_ = b.lifecycle.TransitionTo(StateStopped, "shutdown complete")
}

// initKeyer runs the startup command sequence: open the host interface,
// then push mode, weighting, pin configuration, PTT timing, pot range,
// and the initial speed.
func (b *Bridge) initKeyer() error {
	s := b.session

	mode := domain.ModeWatchdogDisable
	if b.cfg.Echo {
		mode |= domain.ModeSerialEcho
	}
	pin := domain.PinConfigDefault
	if b.cfg.Mute {
		pin = domain.PinConfigMuted
	}

	seq := [][]byte{
		{domain.OpAdmin, domain.AdminOpen},
		{domain.OpSetMode, mode},
		{domain.OpSetWeight, byte(s.Weight)},
		{domain.OpSetPinConfig, pin},
		{domain.OpSetPTT, byte(s.PTTDelay / 10), 0},
		{domain.OpSetPotRange, byte(s.MinSpeed), byte(s.MaxSpeed - s.MinSpeed), 0},
		{domain.OpSetSpeed, byte(s.Speed)},
	}
	for _, cmd := range seq {
		if err := b.keyer.Write(cmd); err != nil {
			return fmt.Errorf("keyer init: %w", err)
		}
	}

	b.logger.Info("keyer initialized",
		ports.Int("speed", s.Speed),
		ports.Int("min", s.MinSpeed),
		ports.Int("max", s.MaxSpeed),
		ports.Bool("echo", b.cfg.Echo),
		ports.Bool("mute", b.cfg.Mute),
	)
	return nil
}

// closeKeyer closes the host interface when the transport is still
// healthy, then releases the port.
func (b *Bridge) closeKeyer(clean bool) {
	if clean {
		if err := b.keyer.Write([]byte{domain.OpAdmin, domain.AdminClose}); err != nil {
			b.logger.Warn("keyer close command failed", ports.Err(err))
		}
	}
	if err := b.keyer.Close(); err != nil {
		b.logger.Warn("keyer port close failed", ports.Err(err))
	}
}
