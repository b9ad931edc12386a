package diagnostics

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ProbeResult describes one probe of the snapshot endpoint
type ProbeResult struct {
	URL        string
	StatusCode int
	BodyLength int
	Needle     string
	Found      bool
	// BodyPrefix is only filled when the needle is missing.
	BodyPrefix string
	Elapsed    time.Duration
}

// Prober issues a single GET and checks the body for a substring
type Prober struct {
	client       *http.Client
	prefixLength int
}

// NewProber creates a prober. A nil client uses a client with a 30 second timeout.
func NewProber(client *http.Client, prefixLength int) *Prober {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Prober{
		client:       client,
		prefixLength: prefixLength,
	}
}

// Probe fetches url, buffers the whole body and reports whether needle occurs in it.
// Only transport failures are errors; a non-200 status is reported in the result.
func (p *Prober) Probe(ctx context.Context, url string, needle string) (*ProbeResult, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	result := &ProbeResult{
		URL:        url,
		StatusCode: resp.StatusCode,
		BodyLength: len(body),
		Needle:     needle,
		Found:      strings.Contains(string(body), needle),
		Elapsed:    time.Since(start),
	}

	if !result.Found {
		result.BodyPrefix = prefix(body, p.prefixLength)
	}

	return result, nil
}

func prefix(body []byte, n int) string {
	if n <= 0 || len(body) <= n {
		return string(body)
	}
	return string(body[:n])
}
