package httpx

import (
	"net"
	"net/http"
	"time"
)

// Shared client for all calls to the TaskWhiz API. No overall request
// timeout: a submission runs to completion and the server bounds latency;
// only the dial itself is capped.
var defaultClient = &http.Client{
	Transport: &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxConnsPerHost:     100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	},
}

func Client() *http.Client { return defaultClient }
