package main

import (
	"sync"
	"testing"
	"time"
)

// TestSynthEngine_ConcurrentEventsAndRender stresses event producers against
// the render goroutine. The race detector is the oracle.
// Run with: go test -race -run TestSynthEngine_ConcurrentEventsAndRender -count=1
func TestSynthEngine_ConcurrentEventsAndRender(t *testing.T) {
	e := newTestSynthEngine(t, nil)

	var wg sync.WaitGroup
	stop := make(chan struct{})

	// Producers: note traffic from several goroutines
	for p := 0; p < 4; p++ {
		wg.Go(func() {
			iter := 0
			for {
				select {
				case <-stop:
					return
				default:
				}
				note := 48 + (p*7+iter)%36
				e.NoteOn(note, 40+iter%80)
				e.NoteOff(note)
				if iter%97 == 0 {
					e.AllNotesOff()
				}
				iter++
			}
		})
	}

	// Observer: meters and stats
	wg.Go(func() {
		for {
			select {
			case <-stop:
				return
			default:
			}
			_ = e.Snapshot()
			_ = e.Stats()
		}
	})

	// Render goroutine
	var bad float32
	wg.Go(func() {
		sink := NewBufferSink(0)
		for {
			select {
			case <-stop:
				return
			default:
			}
			sink.Left, sink.Right = sink.Left[:0], sink.Right[:0]
			sink.want = 256
			e.Render(sink)
			for _, s := range sink.Left {
				if s > MAX_SAMPLE || s < MIN_SAMPLE {
					bad = s
				}
			}
		}
	})

	time.Sleep(100 * time.Millisecond)
	close(stop)
	wg.Wait()

	if bad != 0 {
		t.Fatalf("rendered sample %v outside [-1,1]", bad)
	}
	st := e.Stats()
	if st.EventsApplied == 0 {
		t.Error("no events were applied")
	}
	t.Logf("applied %d, dropped %d, steals %d, frames %d",
		st.EventsApplied, st.EventsDropped, st.Steals, st.FramesRendered)
}
