package jobs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/me/patrol/internal/engine"
)

const (
	// TypeHTTPCollect is the catalog type for jobs that trigger a
	// collector endpoint over HTTP.
	TypeHTTPCollect = "http_collect"

	defaultCollectTimeout = 60 * time.Second
)

// HTTPCollector builds bodies that POST to a collector endpoint each
// firing. The collector owns the actual data gathering; the body only
// reports whether the trigger round-trip succeeded.
type HTTPCollector struct {
	client *http.Client
	logger *slog.Logger
}

// NewHTTPCollector creates an HTTPCollector. Per-firing timeouts come
// from the catalog entry, so the shared client carries none.
func NewHTTPCollector(logger *slog.Logger) *HTTPCollector {
	return &HTTPCollector{
		client: &http.Client{},
		logger: logger.With("component", "http-collector"),
	}
}

// Type returns TypeHTTPCollect.
func (h *HTTPCollector) Type() string {
	return TypeHTTPCollect
}

// Build validates the entry's target and returns the firing body.
func (h *HTTPCollector) Build(spec Spec) (engine.Body, error) {
	if spec.Target == "" {
		return nil, fmt.Errorf("http_collect requires a target")
	}
	u, err := url.Parse(spec.Target)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("http_collect target %q is not an absolute URL", spec.Target)
	}

	timeout := defaultCollectTimeout
	if spec.TimeoutSeconds > 0 {
		timeout = time.Duration(spec.TimeoutSeconds) * time.Second
	}
	target := spec.Target
	jobID := spec.ID

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}

		h.logger.Debug("triggering collector", "job_id", jobID, "target", target)
		resp, err := h.client.Do(req)
		if err != nil {
			return fmt.Errorf("call collector: %w", err)
		}
		defer resp.Body.Close()
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return fmt.Errorf("collector %s returned %s", target, resp.Status)
		}
		return nil
	}, nil
}
