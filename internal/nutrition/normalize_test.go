package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeClassificationFullShape(t *testing.T) {
	raw := "```json\n" + `[
		{
			"ingredientName": "Grilled Chicken Breast",
			"portionSize(g)": 150,
			"nutritionFacts": {
				"calories": 248,
				"protein_g": "46.5 g",
				"carbohydrates_g": 0,
				"fat_g": 5.4,
				"Vitamin A": 14,
				"vitamin_B12": 0.5,
				"Folate": 6,
				"Calcium": 23,
				"Selenium": 41.4,
				"Mystery": 99
			}
		}
	]` + "\n```"

	items, err := NormalizeClassification([]byte(raw))
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "Grilled Chicken Breast", item.IngredientName)
	assert.Equal(t, 150.0, item.PortionSizeG)
	assert.Equal(t, 248.0, item.Calories)
	assert.Equal(t, 46.5, item.ProteinG)
	assert.Equal(t, 5.4, item.FatG)
	assert.Equal(t, 14.0, item.VitaminA)
	assert.Equal(t, 0.5, item.VitaminB12)
	assert.Equal(t, 6.0, item.Folate)
	assert.Equal(t, 23.0, item.Calcium)
	assert.Equal(t, 41.4, item.Selenium)
}

func TestNormalizeClassificationNarrowShape(t *testing.T) {
	raw := `{"ingredients": [
		{
			"ingredientName": "Brown Rice",
			"portionSize(g)": "200",
			"nutritionFacts": {
				"calories": 222,
				"protein_g": 5,
				"carbohydrates_g": 46,
				"fat_g": 1.8,
				"keyVitaminsAndMinerals": ["Magnesium", "Vitamin B3"]
			}
		},
		{"portionSize(g)": 10}
	]}`

	items, err := NormalizeClassification([]byte(raw))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Brown Rice", items[0].IngredientName)
	assert.Equal(t, 200.0, items[0].PortionSizeG)
	assert.Equal(t, 46.0, items[0].CarbohydratesG)
	assert.Equal(t, []string{"Magnesium", "Vitamin B3"}, items[0].KeyVitaminsAndMinerals)
	assert.Zero(t, items[0].Magnesium)
}

func TestNormalizeClassificationSingleObjectWithPreamble(t *testing.T) {
	raw := `Here is the result: {"name": "Apple", "calories": 95, "fiber": 4.4}`

	items, err := NormalizeClassification([]byte(raw))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Apple", items[0].IngredientName)
	assert.Equal(t, 95.0, items[0].Calories)
	assert.Equal(t, 4.4, items[0].FiberG)
}

func TestNormalizeClassificationPicksWrappedArrayByKey(t *testing.T) {
	raw := `{
		"alternatives": [{"name": "Pear", "calories": 57}],
		"Items": [{"name": "Apple", "calories": 95}],
		"zz": [{"name": "Plum", "calories": 30}]
	}`

	for i := 0; i < 20; i++ {
		items, err := NormalizeClassification([]byte(raw))
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Apple", items[0].IngredientName)
	}

	items, err := NormalizeClassification([]byte(`{"zz": [{"name": "Plum"}], "alternatives": [{"name": "Pear"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "Pear", items[0].IngredientName)
}

func TestNormalizeClassificationPrefersIngredientName(t *testing.T) {
	items, err := NormalizeClassification([]byte(`[{"food": "Dinner", "name": "Soup", "ingredientName": "Tomato soup"}]`))
	require.NoError(t, err)
	assert.Equal(t, "Tomato soup", items[0].IngredientName)
}

func TestNormalizeClassificationRejectsUnusablePayloads(t *testing.T) {
	for _, raw := range []string{"", "not json", "[]", `[{"calories": 10}]`} {
		_, err := NormalizeClassification([]byte(raw))
		assert.ErrorIs(t, err, ErrUnrecognizedShape, raw)
	}
}

func TestCanonicalKey(t *testing.T) {
	cases := map[string]string{
		"Vitamin A":      KeyVitaminA,
		"vitamin_A":      KeyVitaminA,
		"VITAMIN a":      KeyVitaminA,
		"portionSize(g)": KeyPortionSize,
		"Sodium":         KeySodium,
		"sodium_mg":      KeySodium,
		"Thiamine":       KeyVitaminB1,
	}
	for label, want := range cases {
		got, ok := CanonicalKey(label)
		assert.True(t, ok, label)
		assert.Equal(t, want, got, label)
	}

	_, ok := CanonicalKey("caffeine")
	assert.False(t, ok)
}
