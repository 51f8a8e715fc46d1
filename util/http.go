package util

import (
	"net/http"
	"time"
)

var sharedClient = &http.Client{Timeout: 300 * time.Second}

// HTTPClient returns the shared HTTP client for outbound requests
func HTTPClient() *http.Client {
	return sharedClient
}
