package model

import (
	"fmt"
)

// Family identifies the response distribution of a regression spec.
type Family string

const (
	FamilyGaussian       Family = "gaussian"
	FamilyBinomialProbit Family = "binomial_probit"
)

// Link maps a linear predictor to the scale of a derived quantity.
type Link string

const (
	LinkIdentity Link = "identity"
	LinkPhi      Link = "phi" // standard normal CDF (probit link)
)

// Predictor binds a coefficient parameter to a covariate column.
// An empty Covariate means the constant column (an intercept term).
type Predictor struct {
	Param     string
	Covariate string
}

// IsIntercept reports whether the predictor is a constant term.
func (p Predictor) IsIntercept() bool {
	return p.Covariate == ""
}

// NormalPrior is a normal prior parameterized by mean and precision,
// matching the BUGS convention (low precision = diffuse).
type NormalPrior struct {
	Mean      float64
	Precision float64
}

// UniformScalePrior is a bounded uniform prior on a scale parameter
// (the residual standard deviation, never the variance or precision).
type UniformScalePrior struct {
	Lower float64
	Upper float64
}

// Prior attaches exactly one prior distribution to a named parameter.
type Prior struct {
	Param        string
	Normal       *NormalPrior
	UniformScale *UniformScalePrior
}

// Term is one coefficient-weighted parameter reference in a LinearExpr.
type Term struct {
	Coef  float64
	Param string
}

// LinearExpr is a constant plus a weighted sum of parameter values.
// It is the only expression form derived quantities need: fixed covariate
// profiles enter as the term coefficients.
type LinearExpr struct {
	Const float64
	Terms []Term
}

// Eval computes the expression under a parameter valuation.
func (e LinearExpr) Eval(value func(param string) float64) float64 {
	out := e.Const
	for _, t := range e.Terms {
		out += t.Coef * value(t.Param)
	}
	return out
}

// Derived is a scalar quantity computed from parameters on each draw.
type Derived struct {
	Name string
	Expr LinearExpr
	Link Link
}

// Spec is an engine-agnostic description of a regression model: which data
// it expects, how the mean function is built, the prior per parameter, and
// which quantities to monitor. Engines consume the structure directly; the
// BUGS text rendering is a boundary concern.
type Spec struct {
	Name       string
	Family     Family
	Response   string
	Predictors []Predictor
	Priors     []Prior
	Scale      string // residual scale parameter, Gaussian family only
	Derived    []Derived
	Monitors   []string
}

// Prior returns the prior declared for a parameter.
func (s *Spec) Prior(param string) (Prior, bool) {
	for _, p := range s.Priors {
		if p.Param == param {
			return p, true
		}
	}
	return Prior{}, false
}

// Params returns the coefficient parameter names in declaration order.
func (s *Spec) Params() []string {
	names := make([]string, len(s.Predictors))
	for i, p := range s.Predictors {
		names[i] = p.Param
	}
	return names
}

// MeanAt evaluates the mean function for one observation given coefficient
// values and covariate values. Intercept predictors contribute their
// coefficient directly.
func (s *Spec) MeanAt(coef map[string]float64, cov map[string]float64) float64 {
	mu := 0.0
	for _, p := range s.Predictors {
		if p.IsIntercept() {
			mu += coef[p.Param]
			continue
		}
		mu += coef[p.Param] * cov[p.Covariate]
	}
	return mu
}

// Validate checks the spec against a data mapping: all referenced columns
// present and equal-length, every coefficient carries a prior, derived
// expressions and monitors reference declared names.
func (s *Spec) Validate(data map[string][]float64) error {
	if s.Name == "" {
		return fmt.Errorf("spec has no name")
	}
	if s.Family != FamilyGaussian && s.Family != FamilyBinomialProbit {
		return fmt.Errorf("spec %q: unknown family %q", s.Name, s.Family)
	}
	if len(s.Predictors) == 0 {
		return fmt.Errorf("spec %q: no predictors", s.Name)
	}

	y, ok := data[s.Response]
	if !ok {
		return fmt.Errorf("spec %q: response column %q missing from data", s.Name, s.Response)
	}
	n := len(y)
	if n == 0 {
		return fmt.Errorf("spec %q: response column %q is empty", s.Name, s.Response)
	}

	declared := map[string]bool{}
	for _, p := range s.Predictors {
		if p.Param == "" {
			return fmt.Errorf("spec %q: predictor with empty parameter name", s.Name)
		}
		if declared[p.Param] {
			return fmt.Errorf("spec %q: parameter %q declared twice", s.Name, p.Param)
		}
		declared[p.Param] = true

		if _, ok := s.Prior(p.Param); !ok {
			return fmt.Errorf("spec %q: parameter %q has no prior", s.Name, p.Param)
		}
		if p.IsIntercept() {
			continue
		}
		col, ok := data[p.Covariate]
		if !ok {
			return fmt.Errorf("spec %q: covariate column %q missing from data", s.Name, p.Covariate)
		}
		if len(col) != n {
			return fmt.Errorf("spec %q: covariate %q has %d rows, response has %d", s.Name, p.Covariate, len(col), n)
		}
	}

	if s.Family == FamilyGaussian {
		if s.Scale == "" {
			return fmt.Errorf("spec %q: gaussian family requires a scale parameter", s.Name)
		}
		prior, ok := s.Prior(s.Scale)
		if !ok {
			return fmt.Errorf("spec %q: scale parameter %q has no prior", s.Name, s.Scale)
		}
		if prior.UniformScale == nil {
			return fmt.Errorf("spec %q: scale parameter %q requires a bounded uniform prior", s.Name, s.Scale)
		}
		declared[s.Scale] = true
	}

	for _, d := range s.Derived {
		if d.Name == "" {
			return fmt.Errorf("spec %q: derived quantity with empty name", s.Name)
		}
		if declared[d.Name] {
			return fmt.Errorf("spec %q: derived quantity %q shadows a parameter", s.Name, d.Name)
		}
		for _, t := range d.Expr.Terms {
			if !declared[t.Param] {
				return fmt.Errorf("spec %q: derived quantity %q references undeclared parameter %q", s.Name, d.Name, t.Param)
			}
		}
		declared[d.Name] = true
	}

	for _, m := range s.Monitors {
		if !declared[m] {
			return fmt.Errorf("spec %q: monitor %q is not a declared parameter or derived quantity", s.Name, m)
		}
	}

	return nil
}
