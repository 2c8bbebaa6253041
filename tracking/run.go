package tracking

import (
	"context"
	"io"
	"time"
)

// RunStatus is the terminal status reported when a run ends.
type RunStatus string

const (
	// StatusFinished marks a run whose logging completed.
	StatusFinished RunStatus = "FINISHED"
	// StatusFailed marks a run aborted by a logging failure.
	StatusFailed RunStatus = "FAILED"
)

// Run is an open tracking run. All logging calls are synchronous network
// calls against the run's client.
type Run struct {
	client       *Client
	id           string
	experimentID string
	name         string
}

// ID returns the server-assigned run identifier.
func (r *Run) ID() string {
	return r.id
}

// Name returns the run name given at creation.
func (r *Run) Name() string {
	return r.name
}

// LogMetric records one scalar metric under the given key.
func (r *Run) LogMetric(ctx context.Context, key string, value float64) error {
	req := map[string]interface{}{
		"run_id":    r.id,
		"key":       key,
		"value":     value,
		"timestamp": time.Now().UnixMilli(),
		"step":      0,
	}
	return r.client.call(ctx, "POST", "/runs/log-metric", req, nil)
}

// LogParam records one string-valued parameter under the given key.
func (r *Run) LogParam(ctx context.Context, key, value string) error {
	req := map[string]string{
		"run_id": r.id,
		"key":    key,
		"value":  value,
	}
	return r.client.call(ctx, "POST", "/runs/log-parameter", req, nil)
}

// LogArtifact uploads an artifact under the given name within the run's
// artifact root.
func (r *Run) LogArtifact(ctx context.Context, name string, body io.Reader) error {
	return r.client.uploadArtifact(ctx, r.experimentID, r.id, name, body)
}

// End finalizes the run with the given terminal status.
func (r *Run) End(ctx context.Context, status RunStatus) error {
	req := map[string]interface{}{
		"run_id":   r.id,
		"status":   string(status),
		"end_time": time.Now().UnixMilli(),
	}
	return r.client.call(ctx, "POST", "/runs/update", req, nil)
}
