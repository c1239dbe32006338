package clouddetect

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProbe struct {
	id    ProviderID
	match bool
	delay time.Duration
}

func (p *fakeProbe) ID() ProviderID {
	return p.id
}

func (p *fakeProbe) Identify(ctx context.Context) bool {
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return false
		}
	}
	return p.match
}

func TestDetect_NoMatch(t *testing.T) {
	registry := NewRegistry(
		&fakeProbe{id: "one"},
		&fakeProbe{id: "two"},
		&fakeProbe{id: "three"},
	)
	detector := NewDetector(registry)

	start := time.Now()
	id := detector.Detect(context.Background())

	assert.Equal(t, Unknown, id)
	assert.Less(t, time.Since(start), time.Second, "should resolve as soon as all probes finish, not wait for the timeout")
}

func TestDetect_SingleMatchWins(t *testing.T) {
	registry := NewRegistry(offlineProbes(t)...)
	registry.Register(&fakeProbe{id: "testcloud", match: true})
	detector := NewDetector(registry)

	assert.Equal(t, ProviderID("testcloud"), detector.Detect(context.Background()))
}

func TestDetect_NearZeroTimeout(t *testing.T) {
	registry := NewRegistry(&fakeProbe{id: "slow", match: true, delay: 100 * time.Millisecond})
	detector := NewDetector(registry)

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()

	assert.Equal(t, Unknown, detector.Detect(ctx))
}

func TestDetect_CanceledContext(t *testing.T) {
	registry := NewRegistry(&fakeProbe{id: "slow", match: true, delay: 50 * time.Millisecond})
	detector := NewDetector(registry)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, Unknown, detector.Detect(ctx))
}

func TestDetect_AbandonsSlowProbes(t *testing.T) {
	registry := NewRegistry(&fakeProbe{id: "slow", match: true, delay: 5 * time.Second})
	detector := NewDetector(registry)
	detector.Timeout = 100 * time.Millisecond

	start := time.Now()
	assert.Equal(t, Unknown, detector.Detect(context.Background()))
	assert.Less(t, time.Since(start), time.Second)

	// the abandoned probe must not affect a later run
	start = time.Now()
	assert.Equal(t, Unknown, detector.Detect(context.Background()))
	assert.Less(t, time.Since(start), time.Second)
}

func TestDetect_ResultBeatsCompletion(t *testing.T) {
	registry := NewRegistry(
		&fakeProbe{id: "miss-1"},
		&fakeProbe{id: "miss-2"},
		&fakeProbe{id: "hit", match: true},
	)
	detector := NewDetector(registry)

	// all probes finish near-simultaneously, the positive result must win
	// against the all-finished signal every time
	for i := 0; i < 50; i++ {
		require.Equal(t, ProviderID("hit"), detector.Detect(context.Background()))
	}
}

func TestDetect_Repeatable(t *testing.T) {
	registry := NewRegistry(offlineProbes(t)...)
	registry.Register(&fakeProbe{id: "stable", match: true})
	detector := NewDetector(registry)

	first := detector.Detect(context.Background())
	require.Equal(t, ProviderID("stable"), first)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, detector.Detect(context.Background()))
	}
}

type flakyProbe struct {
	id    ProviderID
	after int32
	calls atomic.Int32
}

func (p *flakyProbe) ID() ProviderID {
	return p.id
}

func (p *flakyProbe) Identify(context.Context) bool {
	return p.calls.Add(1) > p.after
}

func TestWaitForDetection_EventualMatch(t *testing.T) {
	probe := &flakyProbe{id: "late", after: 2}
	detector := NewDetector(NewRegistry(probe))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	assert.Equal(t, ProviderID("late"), detector.WaitForDetection(ctx))
	assert.GreaterOrEqual(t, probe.calls.Load(), int32(3))
}

func TestWaitForDetection_ContextEnds(t *testing.T) {
	detector := NewDetector(NewRegistry(&fakeProbe{id: "never"}))

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	assert.Equal(t, Unknown, detector.WaitForDetection(ctx))
}
