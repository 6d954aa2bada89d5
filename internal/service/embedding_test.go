package service_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrilens/backend/internal/service"
)

func cosineDistance(a, b []float32) float64 {
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return 1 - dot
}

func TestIngredientEmbedding(t *testing.T) {
	apple := service.IngredientEmbedding("Apple").Slice()
	require.Len(t, apple, service.EmbeddingDimensions)
	assert.Equal(t, apple, service.IngredientEmbedding("  APPLE ").Slice())

	var norm float64
	for _, v := range apple {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-6)

	assert.Equal(t, make([]float32, service.EmbeddingDimensions), service.IngredientEmbedding(" ").Slice())
}

func TestIngredientEmbeddingRanksSpellingNeighbours(t *testing.T) {
	pears := service.IngredientEmbedding("Pears").Slice()
	pear := service.IngredientEmbedding("Pear").Slice()
	milk := service.IngredientEmbedding("Milk").Slice()

	assert.InDelta(t, 0, cosineDistance(pear, pear), 1e-6)
	assert.Less(t, cosineDistance(pears, pear), cosineDistance(pears, milk))
	assert.Greater(t, cosineDistance(pear, service.IngredientEmbedding("Pearl barley").Slice()), 0.1)
}
