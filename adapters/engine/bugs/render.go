// Package bugs renders a declarative model spec as BUGS-dialect model
// text. The text is the display form of the model shown in reports; the
// in-tree engine consumes the spec structure directly, so this rendering
// stays a boundary concern and other engines can parse it if they wish.
package bugs

import (
	"fmt"
	"strconv"
	"strings"

	"bayeslab/domain/model"
)

// Render emits the model block for a spec. Output ordering follows the
// spec's declaration order and is deterministic.
func Render(spec *model.Spec) string {
	var b strings.Builder
	b.WriteString("model {\n")

	b.WriteString("  for (i in 1:N) {\n")
	switch spec.Family {
	case model.FamilyGaussian:
		fmt.Fprintf(&b, "    %s[i] ~ dnorm(mu[i], tau)\n", spec.Response)
		fmt.Fprintf(&b, "    mu[i] <- %s\n", linearPredictor(spec))
	case model.FamilyBinomialProbit:
		fmt.Fprintf(&b, "    %s[i] ~ dbern(p[i])\n", spec.Response)
		fmt.Fprintf(&b, "    p[i] <- phi(%s)\n", linearPredictor(spec))
	}
	b.WriteString("  }\n")

	for _, prior := range spec.Priors {
		switch {
		case prior.Normal != nil:
			fmt.Fprintf(&b, "  %s ~ dnorm(%s, %s)\n",
				prior.Param, num(prior.Normal.Mean), num(prior.Normal.Precision))
		case prior.UniformScale != nil:
			fmt.Fprintf(&b, "  %s ~ dunif(%s, %s)\n",
				prior.Param, num(prior.UniformScale.Lower), num(prior.UniformScale.Upper))
		}
	}
	if spec.Family == model.FamilyGaussian && spec.Scale != "" {
		fmt.Fprintf(&b, "  tau <- pow(%s, -2)\n", spec.Scale)
	}

	for _, d := range spec.Derived {
		rhs := linearExpr(d.Expr)
		if d.Link == model.LinkPhi {
			rhs = "phi(" + rhs + ")"
		}
		fmt.Fprintf(&b, "  %s <- %s\n", d.Name, rhs)
	}

	b.WriteString("}\n")
	return b.String()
}

// linearPredictor writes the observation-level mean expression.
func linearPredictor(spec *model.Spec) string {
	parts := make([]string, 0, len(spec.Predictors))
	for _, p := range spec.Predictors {
		if p.IsIntercept() {
			parts = append(parts, p.Param)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s*%s[i]", p.Param, p.Covariate))
	}
	return strings.Join(parts, " + ")
}

// linearExpr writes a derived quantity's expression with its fixed
// coefficients inlined.
func linearExpr(e model.LinearExpr) string {
	parts := make([]string, 0, len(e.Terms)+1)
	if e.Const != 0 {
		parts = append(parts, num(e.Const))
	}
	for _, t := range e.Terms {
		if t.Coef == 1 {
			parts = append(parts, t.Param)
			continue
		}
		parts = append(parts, num(t.Coef)+"*"+t.Param)
	}
	if len(parts) == 0 {
		return "0"
	}
	return strings.Join(parts, " + ")
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
