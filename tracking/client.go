// Package tracking records training runs to an MLflow-compatible tracking
// server: scalar metrics, hyperparameters, and serialized model artifacts
// grouped under a named run.
//
// The tracking destination is an explicit Client handle; nothing in this
// package mutates process-wide state, so multiple clients against different
// servers can coexist in one process.
package tracking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mlstack/entrain/pkg/errors"
)

const apiPrefix = "/api/2.0/mlflow"

// Client is a handle to one tracking server. Calls are synchronous and are
// not retried: a failed call is the caller's problem to surface.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  zerolog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// WithLogger replaces the client's request logger.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the tracking server at trackingURI.
func NewClient(trackingURI string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(trackingURI, "/"),
		httpc:   &http.Client{},
		logger: zerolog.New(os.Stderr).With().
			Timestamp().
			Str("component", "tracking").
			Str("uri", trackingURI).
			Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a structured error response from the tracking server.
type APIError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tracking: server returned %d %s: %s", e.StatusCode, e.Code, e.Message)
}

const errCodeNotFound = "RESOURCE_DOES_NOT_EXIST"

// GetOrCreateExperiment resolves an experiment name to its ID, creating the
// experiment when the server does not know it.
func (c *Client) GetOrCreateExperiment(ctx context.Context, name string) (string, error) {
	var got struct {
		Experiment struct {
			ExperimentID string `json:"experiment_id"`
		} `json:"experiment"`
	}
	query := url.Values{"experiment_name": {name}}
	err := c.call(ctx, http.MethodGet, "/experiments/get-by-name?"+query.Encode(), nil, &got)
	if err == nil {
		return got.Experiment.ExperimentID, nil
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Code != errCodeNotFound {
		return "", err
	}

	var created struct {
		ExperimentID string `json:"experiment_id"`
	}
	req := map[string]string{"name": name}
	if err := c.call(ctx, http.MethodPost, "/experiments/create", req, &created); err != nil {
		return "", err
	}
	return created.ExperimentID, nil
}

// CreateRun opens a new named run in the given experiment.
func (c *Client) CreateRun(ctx context.Context, experimentID, runName string) (*Run, error) {
	req := map[string]interface{}{
		"experiment_id": experimentID,
		"run_name":      runName,
		"start_time":    time.Now().UnixMilli(),
	}
	var resp struct {
		Run struct {
			Info struct {
				RunID string `json:"run_id"`
			} `json:"info"`
		} `json:"run"`
	}
	if err := c.call(ctx, http.MethodPost, "/runs/create", req, &resp); err != nil {
		return nil, err
	}
	if resp.Run.Info.RunID == "" {
		return nil, errors.New("tracking: server returned no run_id")
	}

	c.logger.Debug().Str("run_id", resp.Run.Info.RunID).Str("run_name", runName).Msg("run created")

	return &Run{
		client:       c,
		id:           resp.Run.Info.RunID,
		experimentID: experimentID,
		name:         runName,
	}, nil
}

// call issues one JSON API request and decodes the response into out.
func (c *Client) call(ctx context.Context, method, endpoint string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "tracking: encode request")
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+endpoint, body)
	if err != nil {
		return errors.Wrap(err, "tracking: build request")
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug().Str("method", method).Str("endpoint", endpoint).Msg("tracking request")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return errors.Wrapf(err, "tracking: %s %s", method, endpoint)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "tracking: decode response of %s", endpoint)
	}
	return nil
}

// uploadArtifact PUTs raw artifact bytes through the server's proxied
// artifact endpoint.
func (c *Client) uploadArtifact(ctx context.Context, experimentID, runID, name string, r io.Reader) error {
	path := fmt.Sprintf("%s/api/2.0/mlflow-artifacts/artifacts/%s/%s/artifacts/%s",
		c.baseURL, experimentID, runID, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, path, r)
	if err != nil {
		return errors.Wrap(err, "tracking: build artifact request")
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	c.logger.Debug().Str("artifact", name).Str("run_id", runID).Msg("uploading artifact")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return errors.Wrapf(err, "tracking: upload artifact %s", name)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	apiErr := &APIError{StatusCode: resp.StatusCode}
	if err := json.Unmarshal(raw, apiErr); err != nil || (apiErr.Code == "" && apiErr.Message == "") {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return errors.WithStack(apiErr)
}
