package generator

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/de-tools/csat-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

const (
	minScore = 0.0
	maxScore = 10.0
)

// Window shifts every score inside an inclusive day range of one month.
// A single-day shock has FirstDay == LastDay. A zero Year repeats the window
// every year the range covers.
type Window struct {
	Label    string
	Year     int
	Month    time.Month
	FirstDay int
	LastDay  int
	Delta    float64
}

func (w Window) Contains(date time.Time) bool {
	if w.Year != 0 && date.Year() != w.Year {
		return false
	}
	return date.Month() == w.Month && date.Day() >= w.FirstDay && date.Day() <= w.LastDay
}

type Settings struct {
	Start        time.Time
	End          time.Time // inclusive
	Seed         int64
	Mean         float64
	StdDev       float64
	WeekendDelta float64
	Windows      []Window
}

func DefaultWindows() []Window {
	return []Window{
		{Label: "June promotion", Year: 2025, Month: time.June, FirstDay: 15, LastDay: 20, Delta: 1.5},
		{Label: "August promotion", Year: 2025, Month: time.August, FirstDay: 1, LastDay: 7, Delta: 1.2},
		{Label: "September promotion", Year: 2025, Month: time.September, FirstDay: 20, LastDay: 26, Delta: 1.8},
		{Label: "System maintenance", Year: 2025, Month: time.July, FirstDay: 15, LastDay: 15, Delta: -2.5},
		{Label: "Store renovation", Year: 2025, Month: time.August, FirstDay: 20, LastDay: 20, Delta: -1.8},
	}
}

func DefaultSettings() Settings {
	return Settings{
		Start:        time.Date(2025, time.May, 30, 0, 0, 0, 0, time.UTC),
		End:          time.Date(2025, time.September, 30, 0, 0, 0, 0, time.UTC),
		Seed:         42,
		Mean:         8.5,
		StdDev:       1.2,
		WeekendDelta: -0.3,
		Windows:      DefaultWindows(),
	}
}

func (s Settings) Validate() error {
	if s.Start.IsZero() || s.End.IsZero() {
		return &domain.ConfigError{Field: "generator.range", Reason: "start and end dates are required"}
	}
	if s.End.Before(s.Start) {
		return &domain.ConfigError{
			Field:  "generator.range",
			Reason: fmt.Sprintf("end %s is before start %s", s.End.Format(time.DateOnly), s.Start.Format(time.DateOnly)),
		}
	}
	if s.StdDev <= 0 || math.IsNaN(s.StdDev) {
		return &domain.ConfigError{Field: "generator.std_dev", Reason: "must be positive"}
	}
	for _, w := range s.Windows {
		if w.FirstDay < 1 || w.LastDay > 31 || w.FirstDay > w.LastDay {
			return &domain.ConfigError{Field: "generator.windows", Reason: fmt.Sprintf("invalid day range for %q", w.Label)}
		}
	}
	return nil
}

// Dates lists every calendar day of the range at UTC midnight.
func (s Settings) Dates() []time.Time {
	start := truncateDay(s.Start)
	end := truncateDay(s.End)
	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// Adjustment is the additive shift applied to the draw for date.
func (s Settings) Adjustment(date time.Time) float64 {
	var delta float64
	if domain.IsWeekend(date) {
		delta += s.WeekendDelta
	}
	for _, w := range s.Windows {
		if w.Contains(date) {
			delta += w.Delta
		}
	}
	return delta
}

// Draws returns the raw normal draws, one per day, before any adjustment.
func Draws(s Settings) ([]float64, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	n := len(s.Dates())
	rng := rand.New(rand.NewSource(s.Seed))
	draws := make([]float64, n)
	for i := range draws {
		draws[i] = s.Mean + s.StdDev*rng.NormFloat64()
	}
	return draws, nil
}

// Generate builds the daily series. The same settings always yield the same
// records.
func Generate(s Settings) ([]domain.DailyRecord, error) {
	draws, err := Draws(s)
	if err != nil {
		return nil, err
	}
	dates := s.Dates()
	records := make([]domain.DailyRecord, len(dates))
	for i, date := range dates {
		score := draws[i] + s.Adjustment(date)
		records[i] = domain.NewDailyRecord(date, Round1(Clamp(score)))
	}
	return records, nil
}

func Clamp(score float64) float64 {
	return math.Max(minScore, math.Min(maxScore, score))
}

// Round1 rounds half away from zero to one decimal place.
func Round1(v float64) float64 {
	return decimal.NewFromFloat(v).Round(1).InexactFloat64()
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
