//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package preflight

import "errors"

func freeBytes(string) (uint64, error) {
	return 0, errors.New("not supported on this platform")
}
