package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nutrilens/backend/internal/analysis"
	"github.com/nutrilens/backend/internal/logger"
	"github.com/nutrilens/backend/internal/nutrition"
)

// Report is the outcome of one health analysis request.
type Report struct {
	Analysis        *analysis.NutritionAnalysis
	FallenBack      bool
	EntriesAnalyzed int
	DaysCovered     int
	GeneratedAt     time.Time
}

// AnalysisService turns a window of food entries into a nutrition report
// using a generative model. The model is called once per request with no retry.
type AnalysisService struct {
	model   TextModel
	timeout time.Duration
}

func NewAnalysisService(model TextModel, timeout time.Duration) *AnalysisService {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &AnalysisService{model: model, timeout: timeout}
}

// RequestHealthAnalysis summarizes entries over days, asks the model for a
// report and parses it. A reply that cannot be parsed yields the fallback
// report rather than an error.
func (s *AnalysisService) RequestHealthAnalysis(ctx context.Context, entries []nutrition.Entry, days int) (*Report, error) {
	log := logger.Named("analysis")

	summary, err := nutrition.SummarizeWindow(entries, days)
	if err != nil {
		return nil, err
	}
	log.Debug("window aggregated", zap.Int("entries", summary.TotalEntries), zap.Int("days", days))

	prompt := analysis.BuildPrompt(summary, days)
	if s.model == nil {
		return nil, fmt.Errorf("%w: no model configured", ErrModelUnavailable)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	log.Debug("awaiting model", zap.Int("prompt_bytes", len(prompt)))
	text, err := s.model.GenerateText(callCtx, prompt)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			log.Warn("model call timed out", zap.Duration("timeout", s.timeout))
			return nil, fmt.Errorf("%w after %s", ErrModelTimeout, s.timeout)
		}
		log.Error("model call failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	report := &Report{
		EntriesAnalyzed: len(entries),
		DaysCovered:     days,
		GeneratedAt:     time.Now(),
	}

	result := analysis.Parse(text)
	switch result.Outcome {
	case analysis.Parsed:
		report.Analysis = result.Analysis
	default:
		log.Warn("model reply malformed, using fallback", zap.String("reason", result.Reason))
		report.Analysis = analysis.Fallback()
		report.FallenBack = true
	}
	return report, nil
}
