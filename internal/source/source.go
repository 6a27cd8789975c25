// Package source fetches the submission table from the published CSV.
//
// The CSV client is wrapped by decorators: NewRetrying adds bounded
// context-aware retries for transient network failures, and NewCached bounds
// fetch frequency with a short TTL so bursts of ticks reuse the last table.
package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rmclanahan/nasea-leaderboard/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultFetchTimeout = 10 * time.Second
	errorBodyLimit      = 512
)

// Table is one fetched snapshot of the sheet: a header row plus data rows.
// Rows may be ragged; consumers index defensively.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Provider pulls the current submission table.
type Provider interface {
	Fetch(ctx context.Context) (Table, error)
}

// Option applies a configuration option to the CSVClient.
type Option func(*CSVClient)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *CSVClient) {
		if c != nil {
			s.httpClient = c
		}
	}
}

// WithTimeout sets the per-fetch timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *CSVClient) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// CSVClient fetches and parses a published CSV over HTTP.
type CSVClient struct {
	url        string
	httpClient *http.Client
	timeout    time.Duration
}

// NewCSVClient creates a client for the given published CSV URL.
func NewCSVClient(url string, opts ...Option) *CSVClient {
	c := &CSVClient{
		url:        url,
		httpClient: http.DefaultClient,
		timeout:    defaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch downloads and parses the CSV. Network errors, non-200 responses and
// malformed CSV all surface as ErrFetch; the caller treats any of them as a
// failed tick.
func (c *CSVClient) Fetch(ctx context.Context) (Table, error) {
	start := time.Now()
	metrics.RecordFetch()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		metrics.RecordFetchError()
		return Table{}, fmt.Errorf("%w: build request: %w", ErrFetch, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordFetchError()
		return Table{}, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		metrics.RecordFetchError()
		return Table{}, fmt.Errorf("%w: unexpected status %d: %s", ErrFetch, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	table, err := ParseCSV(resp.Body)
	if err != nil {
		metrics.RecordFetchError()
		return Table{}, err
	}

	metrics.RecordFetchDuration(float64(time.Since(start).Milliseconds()))
	metrics.UpdateRowsFetched(len(table.Rows))
	return table, nil
}

// ParseCSV reads a header row plus data rows from r. Records are allowed to
// have varying field counts; the normalizer handles short rows.
func ParseCSV(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("%w: malformed csv: %w", ErrFetch, err)
	}
	if len(records) == 0 {
		return Table{}, nil
	}
	return Table{Headers: records[0], Rows: records[1:]}, nil
}
