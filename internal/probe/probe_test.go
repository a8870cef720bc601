package probe

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	failures int32
	calls    atomic.Int32
}

func (f *fakePinger) Ping(ctx context.Context) error {
	n := f.calls.Add(1)
	if n <= f.failures {
		return errors.New("connection refused")
	}
	return nil
}

type recorder struct {
	mu      sync.Mutex
	updates []Update
}

func (r *recorder) report(u Update) {
	r.mu.Lock()
	r.updates = append(r.updates, u)
	r.mu.Unlock()
}

func (r *recorder) states() []State {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []State
	for _, u := range r.updates {
		if len(out) == 0 || out[len(out)-1] != u.State {
			out = append(out, u.State)
		}
	}
	return out
}

func fastConfig() Config {
	return Config{
		Interval:    5 * time.Millisecond,
		HideAfter:   5 * time.Millisecond,
		MaxAttempts: 10,
		MaxWait:     5 * time.Second,
	}
}

func TestProbeRetriesUntilReady(t *testing.T) {
	pinger := &fakePinger{failures: 2}
	rec := &recorder{}
	p := New(pinger, fastConfig(), nil)

	final := p.Run(context.Background(), rec.report)

	assert.Equal(t, StateHidden, final)
	assert.Equal(t, 3, p.Attempts())
	assert.Equal(t, []State{StateProbing, StateReady, StateHidden}, rec.states())
}

func TestProbeGivesUpAfterMaxAttempts(t *testing.T) {
	pinger := &fakePinger{failures: 1000}
	cfg := fastConfig()
	cfg.MaxAttempts = 3
	p := New(pinger, cfg, nil)

	assert.Equal(t, StateGaveUp, p.Run(context.Background(), nil))
	assert.Equal(t, int32(3), pinger.calls.Load())
	assert.Equal(t, StateGaveUp, p.State())
}

func TestProbeGivesUpAfterMaxWait(t *testing.T) {
	pinger := &fakePinger{failures: 1000}
	cfg := fastConfig()
	cfg.Interval = 50 * time.Millisecond
	cfg.MaxAttempts = 1000
	cfg.MaxWait = 120 * time.Millisecond
	p := New(pinger, cfg, nil)

	assert.Equal(t, StateGaveUp, p.Run(context.Background(), nil))
	assert.Less(t, pinger.calls.Load(), int32(10))
}

func TestProbeCancellation(t *testing.T) {
	pinger := &fakePinger{failures: 1000}
	cfg := fastConfig()
	cfg.Interval = time.Hour
	cfg.MaxWait = 2 * time.Hour
	p := New(pinger, cfg, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan State, 1)
	go func() { done <- p.Run(ctx, nil) }()

	require.Eventually(t, func() bool { return pinger.calls.Load() == 1 }, time.Second, time.Millisecond)
	cancel()

	select {
	case s := <-done:
		assert.Equal(t, StateProbing, s)
	case <-time.After(time.Second):
		t.Fatal("probe did not stop after cancel")
	}
}

func TestDefaults(t *testing.T) {
	p := New(&fakePinger{}, Config{}, nil)
	assert.Equal(t, DefaultConfig(), p.cfg)
	assert.Equal(t, 3*time.Second, p.cfg.Interval)
	assert.Equal(t, 40, p.cfg.MaxAttempts)
}

func TestStatus(t *testing.T) {
	title, sub := Status(StateProbing)
	assert.Equal(t, "Cloud waking up...", title)
	assert.Equal(t, "Backend loading", sub)

	title, _ = Status(StateReady)
	assert.Equal(t, "Cloud ready!", title)

	title, _ = Status(StateHidden)
	assert.Empty(t, title)
	assert.Equal(t, "gave_up", StateGaveUp.String())
}
