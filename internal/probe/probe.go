// Package probe polls the recipe backend until it answers, so a cold-started
// host can be reported as waking up. Nothing else waits on it.
package probe

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// State of the warm-up indicator
type State int

const (
	StateProbing State = iota
	StateReady
	StateHidden
	StateGaveUp
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateHidden:
		return "hidden"
	case StateGaveUp:
		return "gave_up"
	default:
		return "probing"
	}
}

// Pinger is anything that can report backend liveness
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config bounds the retry loop
type Config struct {
	Interval    time.Duration
	HideAfter   time.Duration
	MaxAttempts int
	MaxWait     time.Duration
}

// DefaultConfig retries every 3s for at most 40 attempts or 2 minutes.
func DefaultConfig() Config {
	return Config{
		Interval:    3 * time.Second,
		HideAfter:   2 * time.Second,
		MaxAttempts: 40,
		MaxWait:     2 * time.Minute,
	}
}

// Update is reported on every state change and failed attempt
type Update struct {
	State   State
	Attempt int
	Err     error
}

// Probe runs the warm-up poll once.
type Probe struct {
	pinger Pinger
	cfg    Config
	logger *zap.Logger

	mu       sync.Mutex
	state    State
	attempts int
}

// New creates a probe. Zero config fields take their defaults.
func New(pinger Pinger, cfg Config, logger *zap.Logger) *Probe {
	def := DefaultConfig()
	if cfg.Interval <= 0 {
		cfg.Interval = def.Interval
	}
	if cfg.HideAfter <= 0 {
		cfg.HideAfter = def.HideAfter
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.MaxWait <= 0 {
		cfg.MaxWait = def.MaxWait
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Probe{pinger: pinger, cfg: cfg, logger: logger}
}

// State returns the current state
func (p *Probe) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Attempts returns how many pings have been made
func (p *Probe) Attempts() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.attempts
}

// Run polls until the backend answers, the attempt or time budget runs out,
// or ctx is cancelled. report, if non-nil, receives every update. Cancellation
// leaves the state where it was.
func (p *Probe) Run(ctx context.Context, report func(Update)) State {
	if report == nil {
		report = func(Update) {}
	}

	waitCtx, cancel := context.WithTimeout(ctx, p.cfg.MaxWait)
	defer cancel()

	limiter := rate.NewLimiter(rate.Every(p.cfg.Interval), 1)
	report(Update{State: StateProbing})

	for {
		if p.Attempts() >= p.cfg.MaxAttempts {
			return p.giveUp(report)
		}
		if err := limiter.Wait(waitCtx); err != nil {
			if ctx.Err() != nil {
				return p.State()
			}
			return p.giveUp(report)
		}

		attempt := p.nextAttempt()
		err := p.pinger.Ping(waitCtx)
		if err == nil {
			break
		}
		if ctx.Err() != nil {
			return p.State()
		}
		if errors.Is(err, context.DeadlineExceeded) && waitCtx.Err() != nil {
			return p.giveUp(report)
		}
		p.logger.Debug("backend not ready", zap.Int("attempt", attempt), zap.Error(err))
		report(Update{State: StateProbing, Attempt: attempt, Err: err})
	}

	p.set(StateReady)
	report(Update{State: StateReady, Attempt: p.Attempts()})
	p.logger.Info("backend ready", zap.Int("attempts", p.Attempts()))

	timer := time.NewTimer(p.cfg.HideAfter)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return StateReady
	case <-timer.C:
	}

	p.set(StateHidden)
	report(Update{State: StateHidden, Attempt: p.Attempts()})
	return StateHidden
}

func (p *Probe) giveUp(report func(Update)) State {
	p.set(StateGaveUp)
	p.logger.Warn("backend probe gave up", zap.Int("attempts", p.Attempts()))
	report(Update{State: StateGaveUp, Attempt: p.Attempts()})
	return StateGaveUp
}

func (p *Probe) nextAttempt() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.attempts++
	return p.attempts
}

func (p *Probe) set(s State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}

// Status returns the indicator text for a state. Hidden has no text.
func Status(s State) (title, subtitle string) {
	switch s {
	case StateProbing:
		return "Cloud waking up...", "Backend loading"
	case StateReady:
		return "Cloud ready!", ""
	case StateGaveUp:
		return "Backend unreachable", "Requests may still succeed"
	default:
		return "", ""
	}
}
