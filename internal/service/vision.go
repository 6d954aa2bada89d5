package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nutrilens/backend/internal/nutrition"
)

var ErrUnsupportedImage error = &ValidationError{Field: "image", Message: "Only image files are allowed"}

const classificationPrompt = `Analyze this food image and return ONLY a JSON array with this structure:
[
  {
    "ingredientName": "string",
    "portionSize(g)": number,
    "nutritionFacts": {
      "calories": number,
      "protein_g": number,
      "carbohydrates_g": number,
      "fat_g": number,
      "fiber_g": number,
      "sugar_g": number,
      "sodium_mg": number,
      "Vitamin A": number,
      "Vitamin C": number,
      "Vitamin D": number,
      "Vitamin E": number,
      "Vitamin K": number,
      "Vitamin B1": number,
      "Vitamin B2": number,
      "Vitamin B3": number,
      "Vitamin B6": number,
      "Vitamin B12": number,
      "Folate": number,
      "Calcium": number,
      "Iron": number,
      "Magnesium": number,
      "Phosphorus": number,
      "Potassium": number,
      "Zinc": number,
      "Selenium": number
    }
  }
]
Return raw JSON only, no markdown or explanations.`

// VisionService identifies ingredients and nutrition facts in food photos.
type VisionService struct {
	model ImageModel
}

func NewVisionService(model ImageModel) *VisionService {
	return &VisionService{model: model}
}

// Classify sends the photo to the model and normalizes its reply.
func (v *VisionService) Classify(ctx context.Context, mimeType string, data []byte) ([]nutrition.ClassifiedItem, error) {
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, ErrUnsupportedImage
	}
	if v.model == nil {
		return nil, fmt.Errorf("%w: no vision model configured", ErrModelUnavailable)
	}

	text, err := v.model.DescribeImage(ctx, classificationPrompt, mimeType, data)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrModelTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	items, err := nutrition.NormalizeClassification([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	return items, nil
}
