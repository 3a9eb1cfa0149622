// control_http.go - HTTP control surface over the note event API

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
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	CONTROL_MAX_BODY         = 64 << 10
	CONTROL_SHUTDOWN_TIMEOUT = 2 * time.Second
)

// ControlTarget is the engine as seen by the control server.
type ControlTarget interface {
	NoteTarget
	Snapshot() []VoiceStatus
	Stats() EngineStats
}

// ControlServer exposes:
//
//	POST /notes/{note}/on?velocity=N
//	POST /notes/{note}/off
//	POST /panic
//	POST /events      (body: note event list, played in real time)
//	GET  /voices
//	GET  /stats
type ControlServer struct {
	target ControlTarget
	router *chi.Mux

	mu     sync.Mutex // Guards the fields below
	srv    *http.Server
	closed bool
	player *EventPlayer
}

func NewControlServer(target ControlTarget) *ControlServer {
	s := &ControlServer{
		target: target,
		router: chi.NewRouter(),
	}
	s.setupRoutes()
	return s
}

func (s *ControlServer) setupRoutes() {
	r := s.router
	r.Use(middleware.Recoverer)

	r.Route("/notes/{note}", func(r chi.Router) {
		r.Post("/on", s.handleNoteOn)
		r.Post("/off", s.handleNoteOff)
	})
	r.Post("/panic", s.handlePanic)
	r.Post("/events", s.handleEvents)
	r.Get("/voices", s.handleVoices)
	r.Get("/stats", s.handleStats)
}

func (s *ControlServer) Handler() http.Handler { return s.router }

// ListenAndServe blocks until Shutdown or a listener error. It returns nil
// at once if Shutdown already ran.
func (s *ControlServer) ListenAndServe(addr string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.srv = srv
	s.mu.Unlock()

	fmt.Printf("control: listening on %s\n", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("control server: %w", err)
	}
	return nil
}

func (s *ControlServer) Shutdown() {
	s.stopPlayer()
	s.mu.Lock()
	s.closed = true
	srv := s.srv
	s.mu.Unlock()
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), CONTROL_SHUTDOWN_TIMEOUT)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "control: shutdown: %v\n", err)
	}
}

func (s *ControlServer) handleNoteOn(w http.ResponseWriter, r *http.Request) {
	note, err := parseMidiValue(chi.URLParam(r, "note"), "note")
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	vel := DEFAULT_VELOCITY
	if v := r.URL.Query().Get("velocity"); v != "" {
		if vel, err = parseMidiValue(v, "velocity"); err != nil {
			writeError(w, err, http.StatusBadRequest)
			return
		}
	}
	s.target.NoteOn(note, vel)
	w.WriteHeader(http.StatusAccepted)
}

func (s *ControlServer) handleNoteOff(w http.ResponseWriter, r *http.Request) {
	note, err := parseMidiValue(chi.URLParam(r, "note"), "note")
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	s.target.NoteOff(note)
	w.WriteHeader(http.StatusAccepted)
}

func (s *ControlServer) handlePanic(w http.ResponseWriter, r *http.Request) {
	s.stopPlayer()
	s.target.AllNotesOff()
	w.WriteHeader(http.StatusAccepted)
}

func (s *ControlServer) handleEvents(w http.ResponseWriter, r *http.Request) {
	events, err := ParseNoteEvents(io.LimitReader(r.Body, CONTROL_MAX_BODY))
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	if s.player != nil {
		s.player.Stop()
	}
	s.player = PlayNoteEvents(s.target, events)
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"events":      len(events),
		"duration_ms": EventsDuration(events).Milliseconds(),
	})
}

func (s *ControlServer) stopPlayer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player != nil {
		s.player.Stop()
		s.player = nil
	}
}

func (s *ControlServer) handleVoices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.target.Snapshot())
}

func (s *ControlServer) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.target.Stats())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "control: encode response: %v\n", err)
	}
}

func writeError(w http.ResponseWriter, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":  err.Error(),
		"status": strconv.Itoa(status),
	})
}
