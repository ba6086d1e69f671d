package model

// Prior constants shared by the lesson models. The coefficient priors are
// deliberately diffuse: normal with mean zero and precision 1e-4
// (sd = 100). The residual scale gets a bounded uniform.
const (
	DiffusePrecision = 1e-4
	SigmaUpper       = 100.0
)

func diffuseNormal() *NormalPrior {
	return &NormalPrior{Mean: 0, Precision: DiffusePrecision}
}

// LinearRegression builds the single-intercept Gaussian regression:
//
//	y[i] ~ Normal(a + b1*x1[i] + b2*x2[i], sigma)
//
// with diffuse normal priors on a, b1, b2 and sigma ~ Uniform(0, 100).
func LinearRegression() *Spec {
	return &Spec{
		Name:     "linear",
		Family:   FamilyGaussian,
		Response: "y",
		Predictors: []Predictor{
			{Param: "a"},
			{Param: "b1", Covariate: "x1"},
			{Param: "b2", Covariate: "x2"},
		},
		Priors: []Prior{
			{Param: "a", Normal: diffuseNormal()},
			{Param: "b1", Normal: diffuseNormal()},
			{Param: "b2", Normal: diffuseNormal()},
			{Param: "sigma", UniformScale: &UniformScalePrior{Lower: 0, Upper: SigmaUpper}},
		},
		Scale:    "sigma",
		Monitors: []string{"a", "b1", "b2", "sigma"},
	}
}

// DoubleInterceptRegression builds the non-identifiable variant: the
// intercept is split into a1 + a2, both with diffuse priors. Any pair with
// the same sum yields an identical mean function, so the marginal chains of
// a1 and a2 wander while their sum stays put.
func DoubleInterceptRegression() *Spec {
	return &Spec{
		Name:     "double-intercept",
		Family:   FamilyGaussian,
		Response: "y",
		Predictors: []Predictor{
			{Param: "a1"},
			{Param: "a2"},
			{Param: "b1", Covariate: "x1"},
			{Param: "b2", Covariate: "x2"},
		},
		Priors: []Prior{
			{Param: "a1", Normal: diffuseNormal()},
			{Param: "a2", Normal: diffuseNormal()},
			{Param: "b1", Normal: diffuseNormal()},
			{Param: "b2", Normal: diffuseNormal()},
			{Param: "sigma", UniformScale: &UniformScalePrior{Lower: 0, Upper: SigmaUpper}},
		},
		Scale:    "sigma",
		Monitors: []string{"a1", "a2", "b1", "b2", "sigma"},
	}
}

// ProbitRegression builds the binary classification model: latent
// y* = a + b1*x1 + b2*x2 + e with standard normal e, observed y = 1[y* > 0],
// equivalently P(y=1) = phi(a + b1*x1 + b2*x2).
func ProbitRegression() *Spec {
	return &Spec{
		Name:     "probit",
		Family:   FamilyBinomialProbit,
		Response: "y",
		Predictors: []Predictor{
			{Param: "a"},
			{Param: "b1", Covariate: "x1"},
			{Param: "b2", Covariate: "x2"},
		},
		Priors: []Prior{
			{Param: "a", Normal: diffuseNormal()},
			{Param: "b1", Normal: diffuseNormal()},
			{Param: "b2", Normal: diffuseNormal()},
		},
		Monitors: []string{"a", "b1", "b2"},
	}
}

// ProbitWithPredictedProbs extends the probit model with two derived
// predicted probabilities at fixed covariate profiles: x1 held at a low and
// a high value (sample quartiles) with x2 at its sample median.
func ProbitWithPredictedProbs(x1Lo, x1Hi, x2Med float64) *Spec {
	s := ProbitRegression()
	s.Name = "probit-predicted"
	s.Derived = []Derived{
		{
			Name: "p1",
			Link: LinkPhi,
			Expr: LinearExpr{Terms: []Term{
				{Coef: 1, Param: "a"},
				{Coef: x1Lo, Param: "b1"},
				{Coef: x2Med, Param: "b2"},
			}},
		},
		{
			Name: "p2",
			Link: LinkPhi,
			Expr: LinearExpr{Terms: []Term{
				{Coef: 1, Param: "a"},
				{Coef: x1Hi, Param: "b1"},
				{Coef: x2Med, Param: "b2"},
			}},
		},
	}
	s.Monitors = []string{"a", "b1", "b2", "p1", "p2"}
	return s
}
