package nutrition

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// ErrUnrecognizedShape is returned when a classification payload holds no
// usable items.
var ErrUnrecognizedShape = errors.New("unrecognized classification shape")

// ClassifiedItem is one ingredient detected in a food photo, mapped onto the
// canonical schema.
type ClassifiedItem struct {
	IngredientName string `json:"ingredientName"`
	Nutrients
	KeyVitaminsAndMinerals []string `json:"keyVitaminsAndMinerals,omitempty"`
}

// aliases maps squashed field labels onto canonical keys.
var aliases = map[string]string{
	"portionsizeg": KeyPortionSize, "portionsize": KeyPortionSize, "portiong": KeyPortionSize, "portion": KeyPortionSize,
	"calories": KeyCalories, "kcal": KeyCalories, "energy": KeyCalories, "energykcal": KeyCalories,
	"proteing": KeyProtein, "protein": KeyProtein,
	"carbohydratesg": KeyCarbohydrates, "carbohydrates": KeyCarbohydrates, "carbsg": KeyCarbohydrates, "carbs": KeyCarbohydrates,
	"fatg": KeyFat, "fat": KeyFat, "totalfat": KeyFat,
	"fiberg": KeyFiber, "fiber": KeyFiber, "fibreg": KeyFiber, "fibre": KeyFiber, "dietaryfiber": KeyFiber,
	"sugarg": KeySugar, "sugar": KeySugar, "sugars": KeySugar, "sugarsg": KeySugar,
	"sodiummg": KeySodium, "sodium": KeySodium,
	"vitamina": KeyVitaminA, "vitaminc": KeyVitaminC, "vitamind": KeyVitaminD,
	"vitamine": KeyVitaminE, "vitamink": KeyVitaminK,
	"vitaminb1": KeyVitaminB1, "thiamin": KeyVitaminB1, "thiamine": KeyVitaminB1,
	"vitaminb2": KeyVitaminB2, "riboflavin": KeyVitaminB2,
	"vitaminb3": KeyVitaminB3, "niacin": KeyVitaminB3,
	"vitaminb6": KeyVitaminB6, "vitaminb12": KeyVitaminB12,
	"folate": KeyFolate, "folicacid": KeyFolate, "vitaminb9": KeyFolate,
	"calcium": KeyCalcium, "iron": KeyIron, "magnesium": KeyMagnesium,
	"phosphorus": KeyPhosphorus, "potassium": KeyPotassium, "zinc": KeyZinc, "selenium": KeySelenium,
}

var nameKeys = []string{"ingredientname", "ingredient", "name", "food"}

// wrapperKeys are checked first when a reply wraps its items in an object.
var wrapperKeys = []string{"items", "ingredients", "foods", "results", "data"}

var leadingNumber = regexp.MustCompile(`^-?\d+(\.\d+)?`)

// squash lowercases a label and drops spaces, underscores, dashes and parentheses.
func squash(label string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(label) {
		switch r {
		case ' ', '_', '-', '(', ')', '.':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CanonicalKey resolves a free-form nutrient label such as "Vitamin A" or
// "portionSize(g)" to its canonical key.
func CanonicalKey(label string) (string, bool) {
	key, ok := aliases[squash(label)]
	return key, ok
}

// StripCodeFences removes markdown code fences around a model reply.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// NormalizeClassification decodes a vision model reply into canonical items.
// It accepts a bare array, an object wrapping an array, or a single item, in
// either the full shape (nutritionFacts with per-vitamin keys) or the narrow
// shape (macros plus keyVitaminsAndMinerals). Items without a name are dropped.
func NormalizeClassification(raw []byte) ([]ClassifiedItem, error) {
	text := StripCodeFences(string(raw))
	if i := strings.IndexAny(text, "[{"); i > 0 {
		text = text[i:]
	}

	objects, err := decodeItems([]byte(text))
	if err != nil {
		return nil, err
	}

	items := make([]ClassifiedItem, 0, len(objects))
	for _, obj := range objects {
		item, ok := normalizeItem(obj)
		if ok {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no named ingredients", ErrUnrecognizedShape)
	}
	return items, nil
}

func decodeItems(data []byte) ([]map[string]json.RawMessage, error) {
	var list []map[string]json.RawMessage
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnrecognizedShape, err)
	}
	for _, key := range wrappedKeys(obj) {
		if err := json.Unmarshal(obj[key], &list); err == nil && len(list) > 0 {
			return list, nil
		}
	}
	return []map[string]json.RawMessage{obj}, nil
}

// wrappedKeys orders the keys of obj: known wrapper keys first, the rest sorted.
func wrappedKeys(obj map[string]json.RawMessage) []string {
	keys := slices.Sorted(maps.Keys(obj))
	rank := func(k string) int {
		if i := slices.Index(wrapperKeys, squash(k)); i >= 0 {
			return i
		}
		return len(wrapperKeys)
	}
	slices.SortStableFunc(keys, func(a, b string) int { return rank(a) - rank(b) })
	return keys
}

func normalizeItem(obj map[string]json.RawMessage) (ClassifiedItem, bool) {
	var item ClassifiedItem
	for _, key := range nameKeys {
		for label, value := range obj {
			if squash(label) == key && item.IngredientName == "" {
				_ = json.Unmarshal(value, &item.IngredientName)
			}
		}
	}
	for _, label := range slices.Sorted(maps.Keys(obj)) {
		value := obj[label]
		s := squash(label)
		if slices.Contains(nameKeys, s) {
			continue
		}
		if s == "nutritionfacts" || s == "nutrition" || s == "nutrients" {
			var facts map[string]json.RawMessage
			if err := json.Unmarshal(value, &facts); err == nil {
				for k, v := range facts {
					applyField(&item, k, v)
				}
			}
			continue
		}
		applyField(&item, label, value)
	}
	item.IngredientName = strings.TrimSpace(item.IngredientName)
	return item, item.IngredientName != ""
}

func applyField(item *ClassifiedItem, label string, value json.RawMessage) {
	if squash(label) == "keyvitaminsandminerals" {
		var list []string
		if err := json.Unmarshal(value, &list); err == nil {
			item.KeyVitaminsAndMinerals = list
		}
		return
	}
	key, ok := CanonicalKey(label)
	if !ok {
		return
	}
	if v, ok := parseNumber(value); ok {
		*item.Field(key) = v
	}
}

// parseNumber accepts JSON numbers and strings with a leading number such as "12.5 g".
func parseNumber(value json.RawMessage) (float64, bool) {
	var f float64
	if err := json.Unmarshal(value, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return 0, false
	}
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	return f, err == nil
}
