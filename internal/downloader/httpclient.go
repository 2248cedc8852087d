package downloader

import (
	"net"
	"net/http"
	"time"
)

// HTTPClientConfig holds transport settings for archive downloads
type HTTPClientConfig struct {
	Timeout             time.Duration // Whole-request timeout, 0 means none
	DialTimeout         time.Duration
	KeepAlive           time.Duration
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
	TLSHandshakeTimeout time.Duration
	UserAgent           string
}

// DefaultHTTPClientConfig returns a default HTTP client configuration.
// Archive files are multi-gigabyte, so there is no whole-request timeout by
// default; callers wanting one wrap Fetch with an external deadline.
func DefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:             0,
		DialTimeout:         30 * time.Second,
		KeepAlive:           30 * time.Second,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		UserAgent:           "newspipe/1.0",
	}
}

// NewHTTPClient creates an HTTP client with the given configuration
func NewHTTPClient(config HTTPClientConfig) *http.Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   config.DialTimeout,
			KeepAlive: config.KeepAlive,
		}).DialContext,
		MaxIdleConns:        config.MaxIdleConns,
		MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
		IdleConnTimeout:     config.IdleConnTimeout,
		TLSHandshakeTimeout: config.TLSHandshakeTimeout,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   config.Timeout,
	}
}
