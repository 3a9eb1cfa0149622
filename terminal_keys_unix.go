//go:build !windows

package main

import (
	"fmt"
	"os"
	"syscall"
	"time"

	"golang.org/x/term"
)

func init() {
	compiledFeatures = append(compiledFeatures, "keys:raw-nonblocking")
}

// Start puts stdin in raw non-blocking mode and reads keys until Stop.
// Only used from main for interactive play, never in tests.
func (k *TerminalKeyboard) Start() error {
	k.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(k.fd)
	if err != nil {
		close(k.done)
		return fmt.Errorf("terminal_keys: set raw mode: %w", err)
	}

	if err := syscall.SetNonblock(k.fd, true); err != nil {
		_ = term.Restore(k.fd, oldState)
		close(k.done)
		return fmt.Errorf("terminal_keys: set nonblocking stdin: %w", err)
	}

	k.printHelp()

	go func() {
		defer close(k.done)
		defer func() {
			_ = syscall.SetNonblock(k.fd, false)
			_ = term.Restore(k.fd, oldState)
		}()
		buf := make([]byte, 16)

		for {
			select {
			case <-k.stopCh:
				return
			default:
			}

			n, err := syscall.Read(k.fd, buf)
			for i := 0; i < n; i++ {
				k.handleKey(buf[i])
			}
			if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK {
				time.Sleep(5 * time.Millisecond)
				continue
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "terminal_keys: read: %v\r\n", err)
				return
			}
			if n == 0 {
				time.Sleep(5 * time.Millisecond)
			}
		}
	}()
	return nil
}

// Stop ends the reader and restores the terminal.
func (k *TerminalKeyboard) Stop() {
	k.stopped.Do(func() {
		close(k.stopCh)
	})
	<-k.done
	k.releaseAll()
}
