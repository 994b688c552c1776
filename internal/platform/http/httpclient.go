// Package http provides the outbound HTTP client shared by external API adapters.
package http

import (
	"net"
	"net/http"
	"time"
)

// DefaultTimeout bounds a whole request when the caller passes a non-positive timeout.
const DefaultTimeout = 30 * time.Second

// NewHTTPClient returns a client tuned for calls to third-party APIs.
//
// http.DefaultClient has no timeout, so adapters must always use a client from here.
// The dial and TLS handshake limits are shorter than the request timeout so that an
// unreachable endpoint fails fast and the caller can fall back.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: timeout,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
