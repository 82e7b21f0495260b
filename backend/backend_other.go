//go:build !windows && !linux && !darwin

package backend

import (
	"fmt"
	"runtime"
)

func newPlatformBackend() (Backend, error) {
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, runtime.GOOS)
}
