package linear

import (
	"bytes"
	"encoding/gob"

	"gonum.org/v1/gonum/mat"
)

// elasticNetState is the serialized form of a fitted ElasticNet.
type elasticNetState struct {
	Alpha     float64
	L1Ratio   float64
	MaxIter   int
	Tol       float64
	Coef      []float64
	Intercept float64
	NFeatures int
	NIter     int
	Fitted    bool
}

// GobEncode implements gob.GobEncoder so trained models can be persisted
// with core/model.SaveModelToWriter.
func (en *ElasticNet) GobEncode() ([]byte, error) {
	state := elasticNetState{
		Alpha:     en.alpha,
		L1Ratio:   en.l1Ratio,
		MaxIter:   en.maxIter,
		Tol:       en.tol,
		Intercept: en.Intercept_,
		NFeatures: en.NFeaturesIn_,
		NIter:     en.NIter_,
		Fitted:    en.IsFitted(),
	}
	if en.Coef_ != nil {
		state.Coef = en.GetWeights()
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&state); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (en *ElasticNet) GobDecode(data []byte) error {
	var state elasticNetState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&state); err != nil {
		return err
	}

	en.alpha = state.Alpha
	en.l1Ratio = state.L1Ratio
	en.maxIter = state.MaxIter
	en.tol = state.Tol
	en.Intercept_ = state.Intercept
	en.NFeaturesIn_ = state.NFeatures
	en.NIter_ = state.NIter
	if state.Coef != nil {
		en.Coef_ = mat.NewVecDense(len(state.Coef), state.Coef)
	}
	if state.Fitted {
		en.SetFitted()
	} else {
		en.Reset()
	}
	return nil
}
