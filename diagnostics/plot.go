// Package diagnostics renders evaluation plots that are attached to
// tracking runs as image artifacts.
package diagnostics

import (
	"bytes"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/mlstack/entrain/pkg/errors"
)

// PredictedVsActual renders a scatter of predicted against actual target
// values with the identity line, returned as PNG bytes. Points on the line
// are perfect predictions.
func PredictedVsActual(yTrue, yPred *mat.VecDense) ([]byte, error) {
	n := yTrue.Len()
	if n == 0 {
		return nil, errors.NewValueError("PredictedVsActual", "empty vector")
	}
	if yPred.Len() != n {
		return nil, errors.NewDimensionError("PredictedVsActual", n, yPred.Len(), 0)
	}

	pts := make(plotter.XYs, n)
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := 0; i < n; i++ {
		actual := yTrue.AtVec(i)
		pred := yPred.AtVec(i)
		pts[i].X = actual
		pts[i].Y = pred
		lo = math.Min(lo, math.Min(actual, pred))
		hi = math.Max(hi, math.Max(actual, pred))
	}

	p := plot.New()
	p.Title.Text = "Predicted vs Actual"
	p.X.Label.Text = "actual"
	p.Y.Label.Text = "predicted"

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, errors.Wrap(err, "diagnostics: build scatter")
	}
	scatter.GlyphStyle.Radius = vg.Points(2)

	identity, err := plotter.NewLine(plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}})
	if err != nil {
		return nil, errors.Wrap(err, "diagnostics: build identity line")
	}

	p.Add(scatter, identity)

	writer, err := p.WriterTo(5*vg.Inch, 5*vg.Inch, "png")
	if err != nil {
		return nil, errors.Wrap(err, "diagnostics: render plot")
	}

	var buf bytes.Buffer
	if _, err := writer.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(err, "diagnostics: write png")
	}
	return buf.Bytes(), nil
}
