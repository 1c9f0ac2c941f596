package ledger

import (
	"math/rand/v2"
	"time"

	"MoneyWise/internal/model"
)

// Jitter parameters: weekends spend more and vary more.
const (
	weekendFactor = 1.3
	weekendStdDev = 0.1
	weekdayFactor = 1.0
	weekdayStdDev = 0.05
)

// WeeklyForecast spreads base over the seven calendar days after today, scaling each day
// by a normally distributed factor drawn from rng.
func WeeklyForecast(base float64, today time.Time, rng *rand.Rand) []model.ForecastDay {
	days := make([]model.ForecastDay, 0, 7)
	for i := 1; i <= 7; i++ {
		day := today.AddDate(0, 0, i)
		weekend := model.Weekday(day) >= 5

		variation := weekdayFactor + rng.NormFloat64()*weekdayStdDev
		if weekend {
			variation = weekendFactor + rng.NormFloat64()*weekendStdDev
		}

		days = append(days, model.ForecastDay{
			Date:            day.Format("2006-01-02"),
			Day:             day.Weekday().String(),
			PredictedAmount: base * variation,
			IsWeekend:       weekend,
		})
	}
	return days
}
