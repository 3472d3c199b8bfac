package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Timeout bounds a whole request including the body transfer.
var Timeout = 120 * time.Second

// maxBody caps downloads; reference tables are a few MB at most.
const maxBody = 64 << 20

// Get downloads the body of url, failing on any non-200 status.
func Get(ctx context.Context, url string) ([]byte, error) {
	client := http.Client{
		Timeout: Timeout,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/csv, text/plain, */*")

	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP status code %d", res.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBody))
	if err != nil {
		return nil, err
	}

	return body, nil
}
