//go:build unix

package arena

import (
	"errors"

	"golang.org/x/sys/unix"
)

// reserve maps an anonymous page-aligned region of total bytes.
func reserve(total int) ([]byte, func() error, error) {
	data, err := unix.Mmap(
		-1,
		0,
		total,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON,
	)
	if err != nil {
		return nil, nil, err
	}
	release := func() error {
		err := unix.Munmap(data)
		if errors.Is(err, unix.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		return err
	}
	return data, release, nil
}
