package services

import (
	"errors"
	"fmt"
	"net"
)

// ErrNoPortAvailable is returned when every port in the probed range is
// already bound. This is fatal to server startup and must be surfaced
// to the caller rather than retried.
var ErrNoPortAvailable = errors.New("no port available")

// FindFreePort probes count sequential ports starting at start by
// binding a throwaway listener on host. The first successful bind is
// closed immediately and its port returned. Ports held by unrelated
// processes are skipped without error.
func FindFreePort(host string, start, count int) (int, error) {
	for port := start; port < start+count; port++ {
		ln, err := net.Listen("tcp", net.JoinHostPort(host, fmt.Sprintf("%d", port)))
		if err != nil {
			continue
		}
		if err := ln.Close(); err != nil {
			return 0, fmt.Errorf("failed to close probe listener on port %d: %w", port, err)
		}
		return port, nil
	}
	return 0, fmt.Errorf("ports %d-%d on %s: %w", start, start+count-1, host, ErrNoPortAvailable)
}
