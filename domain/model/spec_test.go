package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testData(n int) map[string][]float64 {
	cols := map[string][]float64{}
	for _, key := range []string{"x1", "x2", "y"} {
		cols[key] = make([]float64, n)
	}
	return cols
}

func TestLinearRegressionValidates(t *testing.T) {
	s := LinearRegression()
	require.NoError(t, s.Validate(testData(10)))
	assert.Equal(t, []string{"a", "b1", "b2"}, s.Params())
}

func TestValidateRejectsMissingCovariate(t *testing.T) {
	s := LinearRegression()
	data := testData(10)
	delete(data, "x2")
	err := s.Validate(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "x2")
}

func TestValidateRejectsLengthMismatch(t *testing.T) {
	s := LinearRegression()
	data := testData(10)
	data["x1"] = make([]float64, 9)
	require.Error(t, s.Validate(data))
}

func TestValidateRejectsMissingPrior(t *testing.T) {
	s := LinearRegression()
	s.Priors = s.Priors[1:] // drop the intercept prior
	require.Error(t, s.Validate(testData(5)))
}

func TestValidateRejectsUnknownMonitor(t *testing.T) {
	s := ProbitRegression()
	s.Monitors = append(s.Monitors, "sigma")
	require.Error(t, s.Validate(testData(5)))
}

func TestGaussianRequiresUniformScalePrior(t *testing.T) {
	s := LinearRegression()
	for i := range s.Priors {
		if s.Priors[i].Param == "sigma" {
			s.Priors[i].UniformScale = nil
			s.Priors[i].Normal = diffuseNormal()
		}
	}
	require.Error(t, s.Validate(testData(5)))
}

// The double-intercept model is non-identifiable by construction: shifting
// mass between a1 and a2 while preserving their sum must leave the mean
// function unchanged at every covariate point.
func TestDoubleInterceptMeanDependsOnlyOnSum(t *testing.T) {
	s := DoubleInterceptRegression()
	cov := map[string]float64{"x1": 0.7, "x2": -1.3}

	base := map[string]float64{"a1": 0.3, "a2": -0.2, "b1": 0.3, "b2": -0.3}
	for _, shift := range []float64{-5, -0.1, 0, 2.5, 100} {
		shifted := map[string]float64{
			"a1": base["a1"] + shift,
			"a2": base["a2"] - shift,
			"b1": base["b1"],
			"b2": base["b2"],
		}
		assert.InDelta(t, s.MeanAt(base, cov), s.MeanAt(shifted, cov), 1e-12,
			"shift %v changed the mean function", shift)
	}
}

func TestDoubleInterceptMatchesSingleInterceptMean(t *testing.T) {
	single := LinearRegression()
	double := DoubleInterceptRegression()

	cov := map[string]float64{"x1": 1.1, "x2": 0.4}
	singleCoef := map[string]float64{"a": 0.1, "b1": 0.3, "b2": -0.3}
	doubleCoef := map[string]float64{"a1": 0.6, "a2": -0.5, "b1": 0.3, "b2": -0.3}

	assert.InDelta(t, single.MeanAt(singleCoef, cov), double.MeanAt(doubleCoef, cov), 1e-12)
}

func TestProbitWithPredictedProbsMonitorsDerived(t *testing.T) {
	s := ProbitWithPredictedProbs(-0.6, 0.7, 0.05)
	require.NoError(t, s.Validate(testData(20)))
	assert.Len(t, s.Derived, 2)
	assert.Contains(t, s.Monitors, "p1")
	assert.Contains(t, s.Monitors, "p2")
}

func TestLinearExprEval(t *testing.T) {
	e := LinearExpr{Const: 1.5, Terms: []Term{{Coef: 2, Param: "a"}, {Coef: -1, Param: "b"}}}
	vals := map[string]float64{"a": 0.25, "b": 3}
	got := e.Eval(func(p string) float64 { return vals[p] })
	assert.InDelta(t, 1.5+0.5-3, got, 1e-12)
}
