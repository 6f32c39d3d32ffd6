package requests

import (
	"context"
	"net/http"
)

// Request creates a simple unauthenticated request and runs it with the given client.
// A nil client falls back to the default one.
func Request(ctx context.Context, client *http.Client, url string, method string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}

	if client == nil {
		client = http.DefaultClient
	}
	return client.Do(req)
}
