package tracking

import (
	"bytes"
	"context"
	"log/slog"
	"sort"
	"strconv"

	coremodel "github.com/mlstack/entrain/core/model"
	"github.com/mlstack/entrain/metrics"
	"github.com/mlstack/entrain/pkg/errors"
	"github.com/mlstack/entrain/pkg/log"
)

// DefaultExperiment is the experiment runs are recorded under when no other
// name is configured.
const DefaultExperiment = "Default"

// Artifact is an extra named blob logged alongside the model.
type Artifact struct {
	Name string
	Body []byte
}

// Logger records the outcome of one training invocation as a named run. It
// owns no global state: the tracking destination is whatever client it was
// constructed with.
type Logger struct {
	client     *Client
	experiment string
}

// NewLogger creates a Logger backed by the given client, recording under
// the default experiment.
func NewLogger(client *Client) *Logger {
	return &Logger{
		client:     client,
		experiment: DefaultExperiment,
	}
}

// WithExperiment returns a Logger recording under the named experiment.
func (l *Logger) WithExperiment(name string) *Logger {
	return &Logger{client: l.client, experiment: name}
}

// LogRun records one training result as a run named after the model: the
// five metrics under their fixed keys, each hyperparameter under
// "Best <name>", the gob-serialized model under "<modelName>_model", and
// any extra artifacts.
//
// The run is finalized on every exit path: FINISHED when all logging calls
// succeed, FAILED as soon as one fails. There are no retries and no partial
// success — a run that errored mid-way is never left looking complete.
func (l *Logger) LogRun(ctx context.Context, modelName string, model interface{}, bestParams map[string]float64, report *metrics.RegressionReport, extra ...Artifact) error {
	experimentID, err := l.client.GetOrCreateExperiment(ctx, l.experiment)
	if err != nil {
		return err
	}

	run, err := l.client.CreateRun(ctx, experimentID, modelName)
	if err != nil {
		return err
	}

	if err := l.logContents(ctx, run, modelName, model, bestParams, report, extra); err != nil {
		// Best effort: the run is already broken, the original error is
		// what the caller needs.
		if endErr := run.End(ctx, StatusFailed); endErr != nil {
			slog.Error("failed to mark run as FAILED", log.ErrAttr(endErr),
				slog.String(log.RunIDKey, run.ID()))
		}
		return err
	}

	if err := run.End(ctx, StatusFinished); err != nil {
		return err
	}

	slog.Info("run logged",
		slog.String(log.RunIDKey, run.ID()),
		slog.String(log.ModelNameKey, modelName),
	)
	return nil
}

func (l *Logger) logContents(ctx context.Context, run *Run, modelName string, model interface{}, bestParams map[string]float64, report *metrics.RegressionReport, extra []Artifact) error {
	for _, m := range report.Named() {
		if err := run.LogMetric(ctx, m.Key, m.Value); err != nil {
			return err
		}
	}

	names := make([]string, 0, len(bestParams))
	for name := range bestParams {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		value := strconv.FormatFloat(bestParams[name], 'g', -1, 64)
		if err := run.LogParam(ctx, "Best "+name, value); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	if err := coremodel.SaveModelToWriter(model, &buf); err != nil {
		return errors.Wrap(err, "tracking: serialize model artifact")
	}
	if err := run.LogArtifact(ctx, modelName+"_model", &buf); err != nil {
		return err
	}

	for _, artifact := range extra {
		if err := run.LogArtifact(ctx, artifact.Name, bytes.NewReader(artifact.Body)); err != nil {
			return err
		}
	}
	return nil
}
