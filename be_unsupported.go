//go:build !(amd64 || arm64 || 386 || arm || riscv64 || loong64 || mipsle || mips64le || ppc64le || wasm)

package main

// OtoPlayer.Read hands float32 samples to the device as raw bytes in the
// FormatFloat32LE layout, which assumes little-endian byte order.
var _ = "Breath Engine requires a little-endian architecture" + 1
