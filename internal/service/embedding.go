package service

import (
	"hash/fnv"
	"math"
	"strings"

	pgvector "github.com/pgvector/pgvector-go"
)

// EmbeddingDimensions is the width of the embedding column.
const EmbeddingDimensions = 32

// IngredientEmbedding returns a deterministic embedding of an ingredient name:
// the character bigrams of the lowercased, space padded name hashed into
// EmbeddingDimensions buckets and scaled to unit length. Names sharing most of
// their spelling ("pear", "pears") end up close under cosine distance. An
// empty name yields the zero vector.
func IngredientEmbedding(name string) pgvector.Vector {
	vec := make([]float32, EmbeddingDimensions)
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return pgvector.NewVector(vec)
	}

	runes := []rune(" " + name + " ")
	for i := 0; i+1 < len(runes); i++ {
		h := fnv.New32a()
		_, _ = h.Write([]byte(string(runes[i : i+2])))
		vec[h.Sum32()%EmbeddingDimensions]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return pgvector.NewVector(vec)
}
