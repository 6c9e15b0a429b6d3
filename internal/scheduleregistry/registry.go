// Package scheduleregistry resolves named tax bracket schedules from a
// remote registry that serves them as CSV.
package scheduleregistry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"finance-engine/internal/model"
	"finance-engine/internal/tax"
)

var (
	ErrDisabled = errors.New("tax schedule registry is not configured")
	ErrNotFound = errors.New("tax schedule not found")
)

// Registry fetches schedules from baseURL + "/schedules/{id}.csv" and caches
// each parsed schedule by id. A Registry with an empty base URL is disabled.
type Registry struct {
	baseURL string
	client  *http.Client
	cache   sync.Map
}

func New(baseURL string, timeout time.Duration) *Registry {
	r := &Registry{baseURL: baseURL}
	if baseURL != "" {
		r.client = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	return r
}

func (r *Registry) Enabled() bool {
	return r != nil && r.baseURL != ""
}

// Schedule returns the validated brackets registered under id.
func (r *Registry) Schedule(ctx context.Context, id string) ([]model.TaxBracket, error) {
	if !r.Enabled() {
		return nil, ErrDisabled
	}
	if cached, ok := r.cache.Load(id); ok {
		return cached.([]model.TaxBracket), nil
	}

	brackets, err := r.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	r.cache.Store(id, brackets)
	return brackets, nil
}

func (r *Registry) fetch(ctx context.Context, id string) ([]model.TaxBracket, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/schedules/"+url.PathEscape(id)+".csv", nil)
	if err != nil {
		return nil, fmt.Errorf("build schedule request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch schedule %s: %w", id, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	default:
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("fetch schedule %s: unexpected status %d", id, resp.StatusCode)
	}

	brackets, err := tax.ParseCSV(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("schedule %s: %w", id, err)
	}
	return brackets, nil
}
