//go:build headless

package main

import "errors"

func init() {
	compiledFeatures = append(compiledFeatures, "window:unavailable")
}

type KeyboardWindow struct{}

func NewKeyboardWindow(target ControlTarget) *KeyboardWindow {
	return &KeyboardWindow{}
}

func (kw *KeyboardWindow) Run() error {
	return errors.New("keyboard window is not available in headless builds")
}
