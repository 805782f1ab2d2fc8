// Package singleinstance guarantees one resident process. Two residents
// would fight over the virtual input device, so the first instance claims a
// localhost TCP port and later instances detect the claim and exit.
package singleinstance

import (
	"fmt"
	"net"
	"os"
	"strconv"
)

const (
	residentHost = "127.0.0.1"
	defaultPort  = 49570
)

// getPort returns the configured claim port. Environment variable:
// SINGLEINSTANCE_PORT (integer). Falls back to the default when
// unset/invalid, and clamps to [1024, 65535].
func getPort() int {
	port := defaultPort
	if v := os.Getenv("SINGLEINSTANCE_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			port = n
		}
	}
	if port < 1024 || port > 65535 {
		port = defaultPort
	}
	return port
}

// PortForDebug exposes the effective claim port for logging.
func PortForDebug() int { return getPort() }

// Claim binds the instance port. The returned release function must be
// called on shutdown. A bind failure means another resident already runs.
func Claim() (release func(), err error) {
	addr := net.JoinHostPort(residentHost, strconv.Itoa(getPort()))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("another instance already owns %s: %w", addr, err)
	}
	return func() { _ = listener.Close() }, nil
}
