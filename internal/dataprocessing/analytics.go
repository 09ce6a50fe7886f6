package dataprocessing

import (
	"math"
	"strconv"
	"strings"

	"tradelens/pkg/contracts/domain"
)

// profitField is the Deals column the statistics are computed from.
const profitField = "Profit"

// CalculateStats summarizes the Deals section of a trade history.
func CalculateStats(history *domain.TradeHistory) domain.TradeStats {
	deals := history.Deals.Records

	stats := domain.TradeStats{
		TotalTrades: len(deals),
		EquityCurve: make([]float64, 0, len(deals)),
	}

	var total float64
	maxProfit, maxLoss := math.Inf(-1), math.Inf(1)
	for _, deal := range deals {
		value, _ := deal.Get(profitField)
		profit := ParseAmount(value)

		total += profit
		stats.EquityCurve = append(stats.EquityCurve, total)

		switch {
		case profit > 0:
			stats.Wins++
		case profit < 0:
			stats.Losses++
		}
		maxProfit = math.Max(maxProfit, profit)
		maxLoss = math.Min(maxLoss, profit)
	}

	if len(deals) > 0 {
		stats.MaxProfit = maxProfit
		stats.MaxLoss = maxLoss
	}

	winRate := 0.0
	if len(deals) > 0 {
		winRate = float64(stats.Wins) / float64(len(deals)) * 100
	}
	stats.WinRate = strconv.FormatFloat(winRate, 'f', 2, 64)
	stats.TotalProfit = strconv.FormatFloat(total, 'f', 2, 64)

	return stats
}

// ParseAmount parses a report amount such as "1 000.50". Spaces are removed
// first; anything unparseable counts as zero.
func ParseAmount(s string) float64 {
	s = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\u00a0' || r == '\t' {
			return -1
		}
		return r
	}, s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// BuildReport pairs a trade history with its statistics.
func BuildReport(history *domain.TradeHistory, shape domain.Shape) domain.TradeReport {
	report := domain.TradeReport{Stats: CalculateStats(history)}
	if shape == domain.ShapeRecords {
		report.TradeData = history.RecordsOnly()
	} else {
		report.TradeData = history
	}
	return report
}
