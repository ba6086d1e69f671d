package bugs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"bayeslab/domain/model"
)

func TestRenderLinearRegression(t *testing.T) {
	text := Render(model.LinearRegression())

	for _, line := range []string{
		"model {",
		"y[i] ~ dnorm(mu[i], tau)",
		"mu[i] <- a + b1*x1[i] + b2*x2[i]",
		"a ~ dnorm(0, 0.0001)",
		"b1 ~ dnorm(0, 0.0001)",
		"b2 ~ dnorm(0, 0.0001)",
		"sigma ~ dunif(0, 100)",
		"tau <- pow(sigma, -2)",
	} {
		assert.Contains(t, text, line)
	}
}

func TestRenderDoubleInterceptListsBothIntercepts(t *testing.T) {
	text := Render(model.DoubleInterceptRegression())
	assert.Contains(t, text, "mu[i] <- a1 + a2 + b1*x1[i] + b2*x2[i]")
	assert.Contains(t, text, "a1 ~ dnorm(0, 0.0001)")
	assert.Contains(t, text, "a2 ~ dnorm(0, 0.0001)")
}

func TestRenderProbit(t *testing.T) {
	text := Render(model.ProbitRegression())
	assert.Contains(t, text, "y[i] ~ dbern(p[i])")
	assert.Contains(t, text, "p[i] <- phi(a + b1*x1[i] + b2*x2[i])")
	assert.NotContains(t, text, "tau")
	assert.NotContains(t, text, "dunif")
}

func TestRenderDerivedQuantities(t *testing.T) {
	text := Render(model.ProbitWithPredictedProbs(-0.75, 0.75, 0.1))
	assert.Contains(t, text, "p1 <- phi(a + -0.75*b1 + 0.1*b2)")
	assert.Contains(t, text, "p2 <- phi(a + 0.75*b1 + 0.1*b2)")
}

func TestRenderIsDeterministic(t *testing.T) {
	a := Render(model.LinearRegression())
	b := Render(model.LinearRegression())
	assert.Equal(t, a, b)
	// Well-formed block: opens with model, closes with a brace line.
	assert.True(t, strings.HasPrefix(a, "model {\n"))
	assert.True(t, strings.HasSuffix(a, "}\n"))
}
