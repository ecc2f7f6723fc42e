package models

type GoalType string

const (
	GoalUniversity GoalType = "UNIVERSITY"
	GoalCar        GoalType = "CAR"
	GoalWedding    GoalType = "WEDDING"
	GoalBusiness   GoalType = "BUSINESS"
	GoalGeneral    GoalType = "GENERAL"
)

// GoalTypes lists every goal type in display order.
var GoalTypes = []GoalType{GoalUniversity, GoalCar, GoalWedding, GoalBusiness, GoalGeneral}

// GoalLabels are the display names used by the dashboard views.
var GoalLabels = map[GoalType]string{
	GoalUniversity: "University Fund",
	GoalCar:        "First Car",
	GoalWedding:    "Wedding Fund",
	GoalBusiness:   "Business Starter",
	GoalGeneral:    "Savings Journey",
}

// ParseGoalType maps a wire value to a GoalType. Unknown values fall back to
// GoalGeneral and ok is false; the fallback is lossy and the original value
// is not retained.
func ParseGoalType(s string) (t GoalType, ok bool) {
	for _, gt := range GoalTypes {
		if string(gt) == s {
			return gt, true
		}
	}
	return GoalGeneral, false
}

func (t GoalType) Label() string {
	if l, ok := GoalLabels[t]; ok {
		return l
	}
	return GoalLabels[GoalGeneral]
}
