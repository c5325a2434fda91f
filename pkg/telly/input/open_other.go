//go:build !linux

package input

import "github.com/BrandonKowalski/telly/pkg/telly"

// Open reports ErrUnsupported: evdev input only exists on Linux.
func Open(path string) (Source, error) {
	return nil, telly.NewInfrastructureError("open_input", telly.ErrUnsupported)
}
