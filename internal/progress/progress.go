// Package progress computes the derived goal metrics shown by every view.
// All functions are pure; the current time is passed in.
package progress

import (
	"math"
	"time"

	"github.com/GregMSThompson/family-savings/internal/models"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

type Status string

const (
	StatusAchieved  Status = "achieved"
	StatusPaused    Status = "paused"
	StatusUnknown   Status = "unknown"
	StatusProjected Status = "projected"
)

// Projection is the expected completion of a goal. Month is set (YYYY-MM)
// only when Status is StatusProjected.
type Projection struct {
	Status Status
	Month  string
}

func (p Projection) String() string {
	if p.Status == StatusProjected {
		return p.Month
	}
	return string(p.Status)
}

// Percentage is the share of the target saved, rounded and kept within
// [0, 100]. A zero target yields 0.
func Percentage(g models.SavingsGoal) int {
	if g.TargetAmount <= 0 {
		return 0
	}
	pct := math.Round(math.Min(100, g.CurrentAmount/g.TargetAmount*100))
	if pct < 0 || math.IsNaN(pct) {
		return 0
	}
	return int(pct)
}

// Remaining is the amount still to save, never negative.
func Remaining(g models.SavingsGoal) float64 {
	return math.Max(0, g.TargetAmount-g.CurrentAmount)
}

// MonthsRemaining counts calendar months between now and targetDate, ignoring
// the day of month. Past or unparseable dates give 0.
func MonthsRemaining(targetDate string, now time.Time) int {
	target, err := time.Parse(dateLayout, targetDate)
	if err != nil {
		return 0
	}
	diff := (target.Year()-now.Year())*12 + int(target.Month()-now.Month())
	return max(0, diff)
}

// MonthlyTarget is the amount per month needed to reach the target by its
// date, or 0 when no months remain.
func MonthlyTarget(g models.SavingsGoal, now time.Time) float64 {
	months := MonthsRemaining(g.TargetDate, now)
	if months <= 0 {
		return 0
	}
	return Remaining(g) / float64(months)
}

// ProjectedCompletion projects the month the goal completes at the current
// monthly target. A goal with nothing left is achieved even when paused.
func ProjectedCompletion(g models.SavingsGoal, now time.Time) Projection {
	remaining := Remaining(g)
	if remaining <= 0 {
		return Projection{Status: StatusAchieved}
	}
	if g.IsPaused {
		return Projection{Status: StatusPaused}
	}
	monthly := MonthlyTarget(g, now)
	if monthly <= 0 {
		return Projection{Status: StatusUnknown}
	}
	// the epsilon keeps remaining/monthly == months from rounding up a month
	n := int(math.Ceil(remaining/monthly - 1e-9))
	at := time.Date(now.Year(), now.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	return Projection{Status: StatusProjected, Month: at.Format(monthLayout)}
}

type Milestone struct {
	Percent  int
	Emoji    string
	Label    string
	Achieved bool
}

var milestones = []Milestone{
	{Percent: 25, Emoji: "🌱", Label: "Sprout"},
	{Percent: 50, Emoji: "⭐", Label: "Star"},
	{Percent: 75, Emoji: "🚀", Label: "Rocket"},
	{Percent: 100, Emoji: "🏆", Label: "Champion"},
}

// Milestones returns the four badges with Achieved set against pct.
func Milestones(pct int) []Milestone {
	out := make([]Milestone, len(milestones))
	for i, m := range milestones {
		m.Achieved = pct >= m.Percent
		out[i] = m
	}
	return out
}

// Encouragement is the child-view message for the highest threshold reached.
func Encouragement(pct int) string {
	switch {
	case pct >= 75:
		return "🏆 You're almost there! Keep it up!"
	case pct >= 50:
		return "🚀 Halfway! You're on fire!"
	case pct >= 25:
		return "⭐ Great start! Keep saving!"
	default:
		return "🌱 Every little bit counts!"
	}
}

type Point struct {
	Date  string
	Total float64
}

// History rebuilds the running balance after each contribution, oldest first.
// contributions are newest first, as held by the store. The opening balance is
// whatever currentAmount is not explained by the listed contributions.
func History(contributions []models.Contribution, currentAmount float64) []Point {
	running := currentAmount
	for _, c := range contributions {
		running -= c.Amount
	}
	out := make([]Point, 0, len(contributions))
	for i := len(contributions) - 1; i >= 0; i-- {
		running += contributions[i].Amount
		out = append(out, Point{Date: contributions[i].Date, Total: running})
	}
	return out
}

type Summary struct {
	Percentage      int
	Remaining       float64
	MonthsRemaining int
	MonthlyTarget   float64
	Projection      Projection
	Milestones      []Milestone
}

func Summarize(g models.SavingsGoal, now time.Time) Summary {
	pct := Percentage(g)
	return Summary{
		Percentage:      pct,
		Remaining:       Remaining(g),
		MonthsRemaining: MonthsRemaining(g.TargetDate, now),
		MonthlyTarget:   MonthlyTarget(g, now),
		Projection:      ProjectedCompletion(g, now),
		Milestones:      Milestones(pct),
	}
}
