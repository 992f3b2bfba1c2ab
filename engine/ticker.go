/*
ticker.go - The 1 Hz resolution loop

PURPOSE:
  Drives the engine: once per second, read all inputs fresh, resolve,
  and publish the frame into the SnapshotHolder (plus an optional
  subscriber callback for tray/menubar sync). The loop holds no state
  between ticks, so a missed or slow tick self-heals on the next one.

DESIGN:
  Background goroutine with Start/Stop lifecycle; stop channel plus
  WaitGroup for clean shutdown. A not-onboarded store is not an error;
  the holder is cleared and the loop keeps polling until onboarding
  completes.

USAGE:
  ticker := engine.NewTicker(eng, holder)
  ticker.OnTick = func(s engine.Snapshot, sc engine.ScreenState) { ... }
  ticker.Start()
  defer ticker.Stop()
*/
package engine

import (
	"context"
	"log"
	"sync"
	"time"
)

// Ticker recomputes the snapshot at a fixed interval.
type Ticker struct {
	Engine   *Engine
	Holder   *SnapshotHolder
	Interval time.Duration

	// OnTick, when set, is invoked after each successful resolution.
	OnTick func(Snapshot, ScreenState)

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewTicker creates a ticker with the nominal 1 Hz interval.
func NewTicker(eng *Engine, holder *SnapshotHolder) *Ticker {
	return &Ticker{
		Engine:   eng,
		Holder:   holder,
		Interval: time.Second,
		stop:     make(chan struct{}),
	}
}

// Start begins the loop. The first tick runs immediately.
func (t *Ticker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.ticker = time.NewTicker(t.Interval)
	t.wg.Add(1)
	go t.run()

	log.Printf("[Ticker] Started with interval: %v", t.Interval)
}

// Stop terminates the loop and waits for it to exit.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.ticker != nil {
		t.ticker.Stop()
		close(t.stop)
		t.wg.Wait()
		log.Println("[Ticker] Stopped")
	}
}

func (t *Ticker) run() {
	defer t.wg.Done()

	t.tick()
	for {
		select {
		case <-t.ticker.C:
			t.tick()
		case <-t.stop:
			return
		}
	}
}

// Tick runs one resolution cycle immediately (also used by tests and
// the externally-pushed-tick variant of the contract).
func (t *Ticker) Tick() { t.tick() }

func (t *Ticker) tick() {
	ctx := context.Background()

	snap, screen, err := t.Engine.Resolve(ctx)
	if err != nil {
		if IsNotOnboarded(err) {
			// Expected until onboarding completes; keep polling.
			t.Holder.Clear()
			return
		}
		log.Printf("[Ticker] Resolution failed: %v", err)
		return
	}

	t.Holder.Set(snap, screen)
	if t.OnTick != nil {
		t.OnTick(snap, screen)
	}
}
