package nutrition

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used in queries and stats keys.
const DateLayout = "2006-01-02"

// DailyTotals sums the macronutrients of one day's entries.
type DailyTotals struct {
	Calories       float64 `json:"calories"`
	ProteinG       float64 `json:"protein_g"`
	CarbohydratesG float64 `json:"carbohydrates_g"`
	FatG           float64 `json:"fat_g"`
	EntriesCount   int     `json:"entriesCount"`
}

// ComputeDailyTotals sums calories and macronutrients across entries.
// An empty list yields all zeros.
func ComputeDailyTotals(entries []Entry) DailyTotals {
	var t DailyTotals
	for _, e := range entries {
		t.Calories += e.Calories
		t.ProteinG += e.ProteinG
		t.CarbohydratesG += e.CarbohydratesG
		t.FatG += e.FatG
	}
	t.EntriesCount = len(entries)
	return t
}

// ParseDate parses a YYYY-MM-DD string as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return d, nil
}

// DayBounds returns the half-open interval [start, end) covering the calendar
// day of t in loc.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// MonthBounds returns the half-open interval [start, end) covering a month in loc.
func MonthBounds(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

// DateKey formats the calendar date of t in loc.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}
