package models

// Child is a fully transformed child record as held by the dashboard state.
type Child struct {
	ID          string
	Name        string
	DateOfBirth string
	PhotoURL    string
	// HasGoal is false when the backend has no goal record yet; Goal then
	// carries only the savings balance.
	HasGoal            bool
	Goal               SavingsGoal
	Contributions      []Contribution
	Investment         *Investment
	FutureInstructions *FutureInstructions
}

// SavingsGoal amounts are in the family's currency units. CurrentAmount is
// always the server's savings balance and is never set by the client.
type SavingsGoal struct {
	GoalType            GoalType
	TargetAmount        float64
	CurrentAmount       float64
	StartDate           string
	TargetDate          string
	MonthlyContribution float64
	IsPaused            bool
}

// Contribution is append-only. Collections are kept newest first.
type Contribution struct {
	ID     string
	Date   string
	Amount float64
	Type   string
}

type Investment struct {
	PortfolioType        PortfolioType
	AllocationPercentage float64
	CurrentValue         float64
}

// FutureInstructions is an informal note for a guardian. It is not a legal
// instrument and the views must say so.
type FutureInstructions struct {
	GuardianName    string
	GuardianContact string
	Instructions    string
}

// DirectiveDisclaimer is shown next to every FutureInstructions view.
const DirectiveDisclaimer = "These instructions are informal guidance for a guardian and are not a legally binding document."

// Clone returns a deep copy so snapshots never share slices or pointers.
func (c Child) Clone() Child {
	out := c
	if c.Contributions != nil {
		out.Contributions = append([]Contribution(nil), c.Contributions...)
	}
	if c.Investment != nil {
		inv := *c.Investment
		out.Investment = &inv
	}
	if c.FutureInstructions != nil {
		fi := *c.FutureInstructions
		out.FutureInstructions = &fi
	}
	return out
}
