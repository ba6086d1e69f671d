package draws

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPooledConcatenatesChainsInOrder(t *testing.T) {
	p := New("linear", []string{"a", "b1"}, 2, 3)
	require.False(t, p.RunID.String() == "")

	for _, v := range []float64{1, 2, 3} {
		p.Append("a", 0, v)
	}
	for _, v := range []float64{4, 5, 6} {
		p.Append("a", 1, v)
	}

	assert.Equal(t, []float64{1, 2, 3}, p.Chain("a", 0))
	assert.Equal(t, []float64{4, 5, 6}, p.Chain("a", 1))
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, p.Pooled("a"))
}

func TestUnknownNameAndChainBounds(t *testing.T) {
	p := New("probit", []string{"a"}, 1, 2)

	assert.False(t, p.Has("b9"))
	assert.Nil(t, p.Pooled("b9"))
	assert.Nil(t, p.Chain("a", -1))
	assert.Nil(t, p.Chain("a", 1))
	assert.True(t, p.Has("a"))
}
