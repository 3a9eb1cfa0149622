//go:build linux && alsa && !headless

// audio_backend_alsa.go - ALSA stereo output pulling periods from a FrameRing

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

/*
#cgo LDFLAGS: -lasound
#include <alsa/asoundlib.h>
#include <stdlib.h>

static snd_pcm_t* openPCM(const char* device, int* err) {
    snd_pcm_t* handle;
    *err = snd_pcm_open(&handle, device, SND_PCM_STREAM_PLAYBACK, 0);
    return handle;
}

static int setupPCM(snd_pcm_t* handle, unsigned int rate, unsigned int latencyUs) {
    return snd_pcm_set_params(handle, SND_PCM_FORMAT_FLOAT_LE, SND_PCM_ACCESS_RW_INTERLEAVED,
                              2, rate, 1, latencyUs);
}

static int writePCM(snd_pcm_t* handle, float* buffer, int frames) {
    return snd_pcm_writei(handle, buffer, frames);
}

static void closePCM(snd_pcm_t* handle) {
    if (handle != NULL) {
        snd_pcm_drop(handle);
        snd_pcm_close(handle);
    }
}
*/
import "C"
import (
	"fmt"
	"os"
	"sync"
	"unsafe"
)

const ALSA_PERIOD_FRAMES = 256

func init() {
	compiledFeatures = append(compiledFeatures, "audio:alsa")
	audioBackends[AUDIO_BACKEND_ALSA] = func(sampleRate int) (AudioOutput, error) {
		p, err := NewALSAPlayer(sampleRate)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}

// ALSAPlayer writes the ring to the default PCM device from its own
// goroutine. snd_pcm_writei blocks, so the device clock paces the loop.
type ALSAPlayer struct {
	handle  *C.snd_pcm_t
	ring    *FrameRing
	samples []float32 // Interleaved period buffer

	mutex   sync.Mutex
	started bool
	stopCh  chan struct{}
	done    chan struct{}
}

func NewALSAPlayer(sampleRate int) (*ALSAPlayer, error) {
	device := C.CString("default")
	defer C.free(unsafe.Pointer(device))

	var err C.int
	handle := C.openPCM(device, &err)
	if err < 0 {
		return nil, fmt.Errorf("open PCM device: %s", C.GoString(C.snd_strerror(err)))
	}

	if err = C.setupPCM(handle, C.uint(sampleRate), C.uint(RING_BUFFER_MS*1000)); err < 0 {
		C.closePCM(handle)
		return nil, fmt.Errorf("setup PCM: %s", C.GoString(C.snd_strerror(err)))
	}

	return &ALSAPlayer{
		handle:  handle,
		samples: make([]float32, ALSA_PERIOD_FRAMES*2),
	}, nil
}

func (ap *ALSAPlayer) SetupPlayer(ring *FrameRing) {
	ap.mutex.Lock()
	defer ap.mutex.Unlock()
	ap.ring = ring
}

func (ap *ALSAPlayer) IsStarted() bool {
	ap.mutex.Lock()
	defer ap.mutex.Unlock()
	return ap.started
}

func (ap *ALSAPlayer) Start() {
	ap.mutex.Lock()
	defer ap.mutex.Unlock()

	if ap.started || ap.ring == nil || ap.handle == nil {
		return
	}
	ap.started = true
	ap.stopCh = make(chan struct{})
	ap.done = make(chan struct{})
	go ap.loop(ap.ring, ap.stopCh, ap.done)
}

func (ap *ALSAPlayer) loop(ring *FrameRing, stopCh, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-stopCh:
			return
		default:
		}
		for i := 0; i < ALSA_PERIOD_FRAMES; i++ {
			ap.samples[2*i], ap.samples[2*i+1] = ring.ReadFrame()
		}
		if err := ap.write(); err != nil {
			fmt.Fprintf(os.Stderr, "audio_alsa: %v\n", err)
			return
		}
	}
}

func (ap *ALSAPlayer) write() error {
	buf := (*C.float)(unsafe.Pointer(&ap.samples[0]))
	frames := C.writePCM(ap.handle, buf, C.int(ALSA_PERIOD_FRAMES))
	if frames == -C.EPIPE {
		// Underrun: recover and retry once
		C.snd_pcm_prepare(ap.handle)
		frames = C.writePCM(ap.handle, buf, C.int(ALSA_PERIOD_FRAMES))
	}
	if frames < 0 {
		return fmt.Errorf("write failed: %s", C.GoString(C.snd_strerror(C.int(frames))))
	}
	return nil
}

func (ap *ALSAPlayer) Stop() {
	ap.mutex.Lock()
	defer ap.mutex.Unlock()

	if ap.started {
		close(ap.stopCh)
		<-ap.done
		ap.started = false
	}
}

func (ap *ALSAPlayer) Close() {
	ap.Stop()
	ap.mutex.Lock()
	defer ap.mutex.Unlock()

	if ap.handle != nil {
		C.closePCM(ap.handle)
		ap.handle = nil
	}
}
