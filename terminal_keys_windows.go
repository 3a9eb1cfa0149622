//go:build windows

package main

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/term"
)

func init() {
	compiledFeatures = append(compiledFeatures, "keys:raw-blocking")
}

// Start puts the console in raw mode and reads keys until Stop. The read
// blocks, so Stop returns once the next key arrives.
func (k *TerminalKeyboard) Start() error {
	k.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(k.fd)
	if err != nil {
		close(k.done)
		return fmt.Errorf("terminal_keys: set raw mode: %w", err)
	}

	k.printHelp()

	go func() {
		defer close(k.done)
		defer func() { _ = term.Restore(k.fd, oldState) }()
		buf := make([]byte, 16)

		for {
			select {
			case <-k.stopCh:
				return
			default:
			}

			n, err := os.Stdin.Read(buf)
			for i := 0; i < n; i++ {
				k.handleKey(buf[i])
			}
			if err != nil {
				return
			}
			if n == 0 {
				time.Sleep(5 * time.Millisecond)
			}
		}
	}()
	return nil
}

func (k *TerminalKeyboard) Stop() {
	k.stopped.Do(func() {
		close(k.stopCh)
	})
	<-k.done
	k.releaseAll()
}
