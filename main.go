// main.go - Main entry point for the Breath Engine synthesizer

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
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func boilerPlate() {
	fmt.Println("\n\033[38;2;255;20;147m ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████\033[0m\n\033[38;2;255;50;147m▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀\033[0m\n\033[38;2;255;80;147m▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███\033[0m\n\033[38;2;255;110;147m░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄\033[0m\n\033[38;2;255;140;147m░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒\033[0m\n\033[38;2;255;170;147m░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░\033[0m\n\033[38;2;255;200;147m ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░\033[0m\n\033[38;2;255;230;147m ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░\033[0m\n\033[38;2;255;255;147m ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░\033[0m")
	fmt.Println("\nBreath Engine: a polyphonic breath-driven flute synthesizer.")
	fmt.Println("(c) 2024 - 2026 Zayn Otley")
	fmt.Println("https://github.com/IntuitionAmiga/BreathEngine")
	fmt.Println("Buy me a coffee: https://ko-fi.com/intuition/tip")
	fmt.Println("License: GPLv3 or later")
}

type options struct {
	configPath string
	polyphony  int
	steal      string
	legato     string
	noteOff    string
	fastSine   bool
	audio      string

	eventsPath string
	wavPath    string
	scriptPath string
	watch      bool
	httpAddr   string
	keys       bool
	window     bool
	analyze    int
	features   bool
}

func parseFlags(args []string) (options, error) {
	var opts options

	flagSet := flag.NewFlagSet("breath_engine", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&opts.configPath, "config", "", "Lua config file")
	flagSet.IntVar(&opts.polyphony, "polyphony", 0, "Number of voices (overrides config)")
	flagSet.StringVar(&opts.steal, "steal", "", "Voice steal policy: first, oldest, quietest")
	flagSet.StringVar(&opts.legato, "legato", "", "Legato policy: retune, retrigger")
	flagSet.StringVar(&opts.noteOff, "note-off", "", "Note-off policy: first, held")
	flagSet.BoolVar(&opts.fastSine, "fast-sine", false, "Use the sine lookup table for the harmonic sum")
	flagSet.StringVar(&opts.audio, "audio", AUDIO_BACKEND_OTO, "Audio backend: oto, alsa (Linux, -tags alsa)")
	flagSet.StringVar(&opts.eventsPath, "events", "", "Note event file to play")
	flagSet.StringVar(&opts.wavPath, "wav", "", "Render -events offline to this WAV file")
	flagSet.StringVar(&opts.scriptPath, "script", "", "Lua performance script")
	flagSet.BoolVar(&opts.watch, "watch", false, "Restart -script whenever the file changes")
	flagSet.StringVar(&opts.httpAddr, "http", "", "Serve the HTTP control API on this address")
	flagSet.BoolVar(&opts.keys, "keys", false, "Play from the terminal keyboard")
	flagSet.BoolVar(&opts.window, "window", false, "Open the keyboard window")
	flagSet.IntVar(&opts.analyze, "analyze", -1, "Print the harmonic profile of a note and exit")
	flagSet.BoolVar(&opts.features, "features", false, "Print version and compiled features and exit")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: ./breath_engine [-config synth.lua] [-polyphony 8] [-steal first|oldest|quietest] [-legato retune|retrigger] [-note-off first|held]")
		fmt.Println("                       [-events song.txt [-wav out.wav]] [-script perf.lua [-watch]] [-http :8080] [-keys] [-window] [-analyze 69] [-features]")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		return opts, err
	}
	if flagSet.NArg() > 0 {
		return opts, fmt.Errorf("unexpected argument %q", flagSet.Arg(0))
	}
	if opts.wavPath != "" && opts.eventsPath == "" {
		return opts, errors.New("-wav requires -events")
	}
	if opts.watch && opts.scriptPath == "" {
		return opts, errors.New("-watch requires -script")
	}
	if opts.analyze > 127 {
		return opts, fmt.Errorf("-analyze note %d out of range 0-127", opts.analyze)
	}
	if !opts.features && opts.analyze < 0 && opts.wavPath == "" && opts.eventsPath == "" && opts.scriptPath == "" &&
		opts.httpAddr == "" && !opts.window {
		opts.keys = true
	}
	return opts, nil
}

// synthConfig layers the Lua config over the defaults and the flags over both.
func (opts options) synthConfig() (SynthConfig, error) {
	cfg := DefaultSynthConfig()
	if opts.configPath != "" {
		var err error
		if cfg, err = LoadSynthConfigLua(opts.configPath, cfg); err != nil {
			return cfg, err
		}
	}
	if opts.polyphony != 0 {
		cfg.Polyphony = opts.polyphony
	}
	if opts.steal != "" {
		policy, err := ParseStealPolicy(opts.steal)
		if err != nil {
			return cfg, err
		}
		cfg.StealPolicy = policy
	}
	if opts.legato != "" {
		policy, err := ParseLegatoPolicy(opts.legato)
		if err != nil {
			return cfg, err
		}
		cfg.LegatoPolicy = policy
	}
	if opts.noteOff != "" {
		policy, err := ParseNoteOffPolicy(opts.noteOff)
		if err != nil {
			return cfg, err
		}
		cfg.NoteOffPolicy = policy
	}
	if opts.fastSine {
		cfg.FastSine = true
	}
	return cfg, cfg.Validate()
}

func loadNoteEventsFile(path string) ([]NoteEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	events, err := ParseNoteEvents(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return events, nil
}

func run(opts options, out io.Writer) error {
	if opts.features {
		printFeatures(out)
		return nil
	}
	cfg, err := opts.synthConfig()
	if err != nil {
		return err
	}

	switch {
	case opts.analyze >= 0:
		return runAnalyze(cfg, opts.analyze, out)
	case opts.wavPath != "":
		return runWav(cfg, opts, out)
	default:
		return runLive(cfg, opts, out)
	}
}

func runAnalyze(cfg SynthConfig, note int, out io.Writer) error {
	profile, err := AnalyzeNote(cfg, note)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Harmonic profile of note %d (%.2f Hz)\n", note, NoteFrequency(note))
	fmt.Fprintln(out, " h  measured  weight")
	for i, p := range profile {
		fmt.Fprintf(out, "%2d  %.4f    %.4f\n", i+1, p, HARMONIC_WEIGHTS[i])
	}
	return nil
}

func runWav(cfg SynthConfig, opts options, out io.Writer) error {
	events, err := loadNoteEventsFile(opts.eventsPath)
	if err != nil {
		return err
	}
	engine, err := NewSynthEngine(cfg)
	if err != nil {
		return err
	}
	frames, err := RenderNoteEventsToWav(engine, events, opts.wavPath)
	if err != nil {
		return err
	}
	stats := engine.Stats()
	fmt.Fprintf(out, "Wrote %s: %d frames (%.2fs), %d events, %d steals\n",
		opts.wavPath, frames, float64(frames)/float64(cfg.SampleRate), stats.EventsApplied, stats.Steals)
	return nil
}

func runLive(cfg SynthConfig, opts options, out io.Writer) error {
	engine, err := NewSynthEngine(cfg)
	if err != nil {
		return err
	}

	// Initialize sound
	ring := NewFrameRing(RingFramesForMs(RING_BUFFER_MS, cfg.SampleRate))
	player, err := NewAudioOutput(opts.audio, cfg.SampleRate)
	if err != nil {
		return err
	}
	player.SetupPlayer(ring)
	pump := NewRenderPump(engine, ring, PUMP_INTERVAL_MS*time.Millisecond)
	pump.Start()
	player.Start()
	defer func() {
		engine.AllNotesOff()
		time.Sleep(time.Duration(RELEASE_TAIL_FRAMES) * time.Second / time.Duration(cfg.SampleRate))
		pump.Stop()
		player.Close()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var finite []<-chan struct{}
	interactive := false

	if opts.eventsPath != "" {
		events, err := loadNoteEventsFile(opts.eventsPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Playing %s: %d events, %.1fs\n", opts.eventsPath, len(events), EventsDuration(events).Seconds())
		ep := PlayNoteEvents(engine, events)
		defer ep.Stop()
		finite = append(finite, ep.Done())
	}

	if opts.scriptPath != "" {
		host := NewScriptHost(engine)
		if opts.watch {
			sw, err := WatchScript(host, opts.scriptPath)
			if err != nil {
				return err
			}
			defer sw.Close()
			interactive = true
		} else {
			host.Start(opts.scriptPath)
			defer host.Stop()
			finite = append(finite, host.Done())
		}
	}

	if opts.httpAddr != "" {
		srv := NewControlServer(engine)
		go func() {
			if err := srv.ListenAndServe(opts.httpAddr); err != nil {
				fmt.Fprintf(os.Stderr, "control: %v\n", err)
				stop()
			}
		}()
		defer srv.Shutdown()
		interactive = true
	}

	var quit <-chan struct{}
	if opts.keys {
		kb := NewTerminalKeyboard(engine, out)
		if err := kb.Start(); err != nil {
			return err
		}
		defer kb.Stop()
		quit = kb.Quit()
		interactive = true
	}

	// The window owns the main goroutine until it closes
	if opts.window {
		return NewKeyboardWindow(engine).Run()
	}

	if !interactive {
		for _, done := range finite {
			select {
			case <-done:
			case <-ctx.Done():
				return nil
			}
		}
		return nil
	}

	select {
	case <-ctx.Done():
	case <-quit:
	}
	return nil
}

func main() {
	boilerPlate()

	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(opts, os.Stdout); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
