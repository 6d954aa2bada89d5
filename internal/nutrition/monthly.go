package nutrition

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// DayTotals are the per-day sums reported in the monthly breakdown.
type DayTotals struct {
	Calories       float64 `json:"calories"`
	ProteinG       float64 `json:"protein_g"`
	CarbohydratesG float64 `json:"carbohydrates_g"`
	FatG           float64 `json:"fat_g"`
	FiberG         float64 `json:"fiber_g"`
	SugarG         float64 `json:"sugar_g"`
	SodiumMg       float64 `json:"sodium_mg"`
	EntriesCount   int     `json:"entriesCount"`
}

func (d *DayTotals) add(n Nutrients) {
	d.Calories += n.Calories
	d.ProteinG += n.ProteinG
	d.CarbohydratesG += n.CarbohydratesG
	d.FatG += n.FatG
	d.FiberG += n.FiberG
	d.SugarG += n.SugarG
	d.SodiumMg += n.SodiumMg
	d.EntriesCount++
}

func (d *DayTotals) merge(o DayTotals) {
	d.Calories += o.Calories
	d.ProteinG += o.ProteinG
	d.CarbohydratesG += o.CarbohydratesG
	d.FatG += o.FatG
	d.FiberG += o.FiberG
	d.SugarG += o.SugarG
	d.SodiumMg += o.SodiumMg
	d.EntriesCount += o.EntriesCount
}

// DayStats is one day of the monthly breakdown.
type DayStats struct {
	Date string `json:"date"`
	DayTotals
}

// MonthlyTotals sums every day of the month and counts the days with entries.
type MonthlyTotals struct {
	DayTotals
	ActiveDays int `json:"activeDays"`
}

// Averages are per-active-day means rounded to the nearest integer.
type Averages struct {
	CaloriesPerDay float64 `json:"caloriesPerDay"`
	ProteinPerDay  float64 `json:"proteinPerDay"`
	CarbsPerDay    float64 `json:"carbsPerDay"`
	FatPerDay      float64 `json:"fatPerDay"`
}

// MonthlyStats is the month view returned to clients.
type MonthlyStats struct {
	Year          int           `json:"year"`
	Month         int           `json:"month"`
	MonthName     string        `json:"monthName"`
	DailyStats    []DayStats    `json:"dailyStats"`
	MonthlyTotals MonthlyTotals `json:"monthlyTotals"`
	Averages      Averages      `json:"averages"`
}

// ComputeMonthlyStats groups entries by their calendar date in loc and
// summarizes the requested month. Entries outside the month are ignored.
func ComputeMonthlyStats(entries []Entry, year int, month time.Month, loc *time.Location) MonthlyStats {
	days := make(map[string]*DayTotals)
	for _, e := range entries {
		local := e.ConsumedAt.In(loc)
		if local.Year() != year || local.Month() != month {
			continue
		}
		key := local.Format(DateLayout)
		d, ok := days[key]
		if !ok {
			d = &DayTotals{}
			days[key] = d
		}
		d.add(e.Nutrients)
	}

	stats := MonthlyStats{
		Year:       year,
		Month:      int(month),
		MonthName:  fmt.Sprintf("%s %d", month, year),
		DailyStats: make([]DayStats, 0, len(days)),
	}
	for date, totals := range days {
		stats.DailyStats = append(stats.DailyStats, DayStats{Date: date, DayTotals: *totals})
		stats.MonthlyTotals.merge(*totals)
		if totals.EntriesCount > 0 {
			stats.MonthlyTotals.ActiveDays++
		}
	}
	sort.Slice(stats.DailyStats, func(i, j int) bool {
		return stats.DailyStats[i].Date < stats.DailyStats[j].Date
	})

	den := float64(stats.MonthlyTotals.ActiveDays)
	if den == 0 {
		den = 1
	}
	stats.Averages = Averages{
		CaloriesPerDay: math.Round(stats.MonthlyTotals.Calories / den),
		ProteinPerDay:  math.Round(stats.MonthlyTotals.ProteinG / den),
		CarbsPerDay:    math.Round(stats.MonthlyTotals.CarbohydratesG / den),
		FatPerDay:      math.Round(stats.MonthlyTotals.FatG / den),
	}
	return stats
}
