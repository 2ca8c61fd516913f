//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package preflight

import "golang.org/x/sys/unix"

func freeBytes(path string) (uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, err
	}
	return uint64(stat.Bavail) * uint64(stat.Bsize), nil
}
