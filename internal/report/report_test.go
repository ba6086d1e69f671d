package report

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bayeslab/internal/summarize"
)

func sampleSections() []Section {
	return []Section{
		{
			Lesson:    "linear",
			Title:     "Bayesian linear regression",
			Narrative: "We fit `y = a + b1*x1 + b2*x2` with **diffuse** priors.",
			ModelText: "model {\n  y[i] ~ dnorm(mu[i], tau)\n}\n",
			Summaries: []summarize.Summary{
				{Name: "a", Mean: 0.1052, SD: 0.0513, Median: 0.105, Q2_5: 0.004, Q97_5: 0.206},
			},
			Plots: []Plot{{Caption: "trace of a", File: "linear_trace_a.png"}},
		},
	}
}

func TestRenderIncludesEverySectionPiece(t *testing.T) {
	b, err := NewBuilder()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, b.Render(&buf, "Bayesian modeling lab", sampleSections()))
	html := buf.String()

	assert.Contains(t, html, "<h1>Bayesian modeling lab</h1>")
	assert.Contains(t, html, "Bayesian linear regression")
	// Markdown narrative is rendered, not escaped.
	assert.Contains(t, html, "<strong>diffuse</strong>")
	assert.Contains(t, html, "<code>y = a + b1*x1 + b2*x2</code>")
	// Model text block and summary table.
	assert.Contains(t, html, "dnorm(mu[i], tau)")
	assert.Contains(t, html, "0.1052")
	assert.Contains(t, html, "linear_trace_a.png")
}

func TestWriteFileCreatesIndexInDir(t *testing.T) {
	b, err := NewBuilder()
	require.NoError(t, err)

	dir := t.TempDir()
	path, err := b.WriteFile(dir, "lab", sampleSections())
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "<h1>lab</h1>")
}
