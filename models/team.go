package models

// Weekly working-hour classes for a position. The platform prices two shift
// equivalents: 48h/week (8h shifts) and 36h/week (6h shifts).
const (
	WeeklyHoursFull    = 48
	WeeklyHoursReduced = 36
)

// TeamPosition is one line of a team composition: a job position staffed with
// a headcount under one of the two weekly-hour classes.
type TeamPosition struct {
	PositionID  string `json:"position_id"`
	Headcount   int    `json:"headcount" validate:"min=1"`
	WeeklyHours int    `json:"weekly_hours" validate:"oneof=48 36"`
}

// TeamComposition is the ordered list of positions a contract is priced with.
type TeamComposition struct {
	Positions []TeamPosition `json:"positions"`
}

// TotalHeadcount returns the summed headcount across all positions.
func (t TeamComposition) TotalHeadcount() int {
	total := 0
	for _, p := range t.Positions {
		total += p.Headcount
	}
	return total
}

// PositionRate carries the monthly salary for a position under each
// weekly-hour class. Rates come from the external positions catalog.
type PositionRate struct {
	PositionID    string  `json:"position_id"`
	MonthlyRate48 float64 `json:"monthly_rate_48"`
	MonthlyRate36 float64 `json:"monthly_rate_36"`
}

// PositionRates is the position -> salary lookup consumed from the catalog.
type PositionRates map[string]PositionRate

// RateFor returns the monthly rate for the position under the given
// weekly-hour class. The second return reports whether the position and hour
// class are present in the catalog.
func (r PositionRates) RateFor(positionID string, weeklyHours int) (float64, bool) {
	rate, ok := r[positionID]
	if !ok {
		return 0, false
	}
	switch weeklyHours {
	case WeeklyHoursFull:
		return rate.MonthlyRate48, true
	case WeeklyHoursReduced:
		return rate.MonthlyRate36, true
	default:
		return 0, false
	}
}
