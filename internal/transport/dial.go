package transport

import (
	"context"
	"net"
	"time"

	"golang.org/x/net/proxy"
)

// retryBackoff is the wait before the first redial; it doubles each time.
var retryBackoff = 2 * time.Second

type dialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// dialTCP connects through the proxy named by ALL_PROXY, or directly when
// none is set.
var dialTCP dialFunc = proxy.Dial

// DialWithRetry opens a TCP connection to addr, redialing with exponential
// backoff up to retries times. Each attempt is bounded by timeout.
func DialWithRetry(ctx context.Context, addr string, timeout time.Duration, retries int) (net.Conn, error) {
	for i := 0; ; i++ {
		conn, err := dialOnce(ctx, addr, timeout)
		if err == nil {
			return conn, nil
		}
		if i >= retries || ctx.Err() != nil {
			return nil, err
		}

		// Exponential backoff: 2s, 4s, 8s...
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryBackoff * time.Duration(1<<i)):
		}
	}
}

func dialOnce(ctx context.Context, addr string, timeout time.Duration) (net.Conn, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return dialTCP(ctx, "tcp", addr)
}
