// audio_pump.go - Periodic render pass feeding a sink

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/BreathEngine
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// RenderPump is the render goroutine: on every tick it asks the sink how
// many frames it wants and has the engine produce exactly that many.
type RenderPump struct {
	engine   *SynthEngine
	sink     RenderSink
	interval time.Duration

	stopCh  chan struct{}
	done    chan struct{}
	stopped sync.Once
	started atomic.Bool
	passes  atomic.Uint64
}

func NewRenderPump(engine *SynthEngine, sink RenderSink, interval time.Duration) *RenderPump {
	if interval <= 0 {
		interval = PUMP_INTERVAL_MS * time.Millisecond
	}
	return &RenderPump{
		engine:   engine,
		sink:     sink,
		interval: interval,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start fills the sink once and then keeps it topped up until Stop.
func (p *RenderPump) Start() {
	if !p.started.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer close(p.done)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		var reported uint64
		for {
			p.engine.Render(p.sink)
			p.passes.Add(1)

			if dropped := p.engine.Stats().EventsDropped; dropped != reported {
				fmt.Fprintf(os.Stderr, "render_pump: %d note events dropped (queue full)\n", dropped-reported)
				reported = dropped
			}

			select {
			case <-p.stopCh:
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop ends the render goroutine and waits for it. Safe to call twice.
func (p *RenderPump) Stop() {
	p.stopped.Do(func() {
		close(p.stopCh)
	})
	if p.started.Load() {
		<-p.done
	}
}

// Passes is the number of render calls made so far.
func (p *RenderPump) Passes() uint64 { return p.passes.Load() }
