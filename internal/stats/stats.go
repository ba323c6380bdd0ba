// Package stats contains race statistics calculations and reporting.
package stats

import (
	"github.com/typerally/typerally/internal/model"
)

// Summary aggregates a set of finished races.
type Summary struct {
	Races       int
	Wins        int
	BestScore   int
	AvgScore    float64
	AvgWPM      float64
	BestWPM     int
	AvgAccuracy float64
}

// Summarize computes aggregate figures over race records.
func Summarize(races []model.RaceRecord) Summary {
	var sum Summary
	sum.Races = len(races)
	if sum.Races == 0 {
		return sum
	}
	var totalScore, totalWPM, totalAcc int
	for _, r := range races {
		if r.Won {
			sum.Wins++
		}
		if r.Score > sum.BestScore {
			sum.BestScore = r.Score
		}
		if r.WPM > sum.BestWPM {
			sum.BestWPM = r.WPM
		}
		totalScore += r.Score
		totalWPM += r.WPM
		totalAcc += r.Accuracy
	}
	count := float64(sum.Races)
	sum.AvgScore = float64(totalScore) / count
	sum.AvgWPM = float64(totalWPM) / count
	sum.AvgAccuracy = float64(totalAcc) / count
	return sum
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// WPMSeries extracts the WPM values of races, oldest first.
func WPMSeries(races []model.RaceRecord) []float64 {
	out := make([]float64, len(races))
	for i, r := range races {
		out[i] = float64(r.WPM)
	}
	return out
}

// AccuracySeries extracts the accuracy values of races, oldest first.
func AccuracySeries(races []model.RaceRecord) []float64 {
	out := make([]float64, len(races))
	for i, r := range races {
		out[i] = float64(r.Accuracy)
	}
	return out
}
