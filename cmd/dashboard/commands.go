package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/GregMSThompson/family-savings/internal/dashboard"
	"github.com/GregMSThompson/family-savings/internal/models"
	"github.com/GregMSThompson/family-savings/internal/state"
)

type app interface {
	Reload(ctx context.Context) error
	Store() *state.Store
	CreateChild(ctx context.Context, in dashboard.NewChild) (models.Child, error)
	UpdateChild(ctx context.Context, childID string, upd dashboard.ChildUpdate) (models.Child, error)
	DeleteChild(ctx context.Context, childID string) error
	AddContribution(ctx context.Context, childID string, amount float64) (models.Child, error)
	SetGoal(ctx context.Context, childID string, in dashboard.GoalInput) (models.Child, error)
	TogglePausedGoal(ctx context.Context, childID string) (models.Child, error)
	SetInvestment(ctx context.Context, childID string, in dashboard.InvestmentInput) (models.Child, error)
	SetFutureInstructions(ctx context.Context, childID string, in dashboard.FutureInstructionsInput) (models.Child, error)
	RunMonthlySimulation(ctx context.Context) (int, error)
}

const usage = `usage: dashboard [command] [flags]

commands:
  show             print the dashboard (default)
  portfolios       print the portfolio profiles
  add-child        -name -dob -goal -target -target-date
  update-child     -id [-name] [-dob] [-photo]
  delete-child     -id
  contribute       -id -amount
  set-goal         -id -goal -target -target-date [-monthly] [-paused]
  toggle-pause     -id
  set-investment   -id -portfolio -allocation
  set-directive    -id -guardian -contact -instructions
  simulate         credit one simulated month
`

// run executes one command. Every command except portfolios loads the
// dashboard first, since edits are computed against the loaded children.
func run(ctx context.Context, a app, args []string, out io.Writer, now time.Time) error {
	cmd := "show"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "help", "-h", "--help":
		fmt.Fprint(out, usage)
		return nil
	case "portfolios":
		renderPortfolios(out)
		return nil
	}

	if err := a.Reload(ctx); err != nil {
		return err
	}

	var (
		child models.Child
		err   error
	)
	switch cmd {
	case "show":
		renderDashboard(out, a.Store().Snapshot(), now)
		return nil

	case "add-child":
		fs := newFlagSet(cmd)
		var in dashboard.NewChild
		var goal string
		fs.StringVar(&in.Name, "name", "", "child's name")
		fs.StringVar(&in.DateOfBirth, "dob", "", "date of birth, YYYY-MM-DD")
		fs.StringVar(&goal, "goal", string(models.GoalGeneral), "goal type")
		fs.Float64Var(&in.TargetAmount, "target", 0, "target amount")
		fs.StringVar(&in.TargetDate, "target-date", "", "target date, YYYY-MM-DD")
		if err := fs.Parse(args); err != nil {
			return err
		}
		in.GoalType = models.GoalType(strings.ToUpper(goal))
		child, err = a.CreateChild(ctx, in)

	case "update-child":
		fs := newFlagSet(cmd)
		id := fs.String("id", "", "child id")
		name := fs.String("name", "", "new name")
		dob := fs.String("dob", "", "new date of birth")
		photo := fs.String("photo", "", "new photo url")
		if err := fs.Parse(args); err != nil {
			return err
		}
		set := visited(fs)
		upd := dashboard.ChildUpdate{}
		if set["name"] {
			upd.Name = name
		}
		if set["dob"] {
			upd.DateOfBirth = dob
		}
		if set["photo"] {
			upd.PhotoURL = photo
		}
		child, err = a.UpdateChild(ctx, *id, upd)

	case "delete-child":
		fs := newFlagSet(cmd)
		id := fs.String("id", "", "child id")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if err := a.DeleteChild(ctx, *id); err != nil {
			return err
		}
		fmt.Fprintf(out, "deleted %s\n\n", *id)
		renderDashboard(out, a.Store().Snapshot(), now)
		return nil

	case "contribute":
		fs := newFlagSet(cmd)
		id := fs.String("id", "", "child id")
		amount := fs.Float64("amount", 0, "amount to contribute")
		if err := fs.Parse(args); err != nil {
			return err
		}
		child, err = a.AddContribution(ctx, *id, *amount)

	case "set-goal":
		fs := newFlagSet(cmd)
		id := fs.String("id", "", "child id")
		var in dashboard.GoalInput
		var goal string
		monthly := fs.Float64("monthly", 0, "monthly contribution; suggested when omitted")
		fs.StringVar(&goal, "goal", "", "goal type")
		fs.Float64Var(&in.TargetAmount, "target", 0, "target amount")
		fs.StringVar(&in.TargetDate, "target-date", "", "target date, YYYY-MM-DD")
		fs.BoolVar(&in.IsPaused, "paused", false, "pause automatic contributions")
		if err := fs.Parse(args); err != nil {
			return err
		}
		in.GoalType = models.GoalType(strings.ToUpper(goal))
		if visited(fs)["monthly"] {
			in.MonthlyContribution = monthly
		}
		child, err = a.SetGoal(ctx, *id, in)

	case "toggle-pause":
		fs := newFlagSet(cmd)
		id := fs.String("id", "", "child id")
		if err := fs.Parse(args); err != nil {
			return err
		}
		child, err = a.TogglePausedGoal(ctx, *id)

	case "set-investment":
		fs := newFlagSet(cmd)
		id := fs.String("id", "", "child id")
		var in dashboard.InvestmentInput
		var portfolio string
		fs.StringVar(&portfolio, "portfolio", "", "CONSERVATIVE, BALANCED or GROWTH")
		fs.IntVar(&in.AllocationPercent, "allocation", 0, "percent of each contribution to invest")
		if err := fs.Parse(args); err != nil {
			return err
		}
		in.PortfolioType = models.PortfolioType(strings.ToUpper(portfolio))
		child, err = a.SetInvestment(ctx, *id, in)

	case "set-directive":
		fs := newFlagSet(cmd)
		id := fs.String("id", "", "child id")
		var in dashboard.FutureInstructionsInput
		fs.StringVar(&in.GuardianName, "guardian", "", "guardian name")
		fs.StringVar(&in.GuardianContact, "contact", "", "guardian contact")
		fs.StringVar(&in.Instructions, "instructions", "", "instructions")
		if err := fs.Parse(args); err != nil {
			return err
		}
		child, err = a.SetFutureInstructions(ctx, *id, in)

	case "simulate":
		n, err := a.RunMonthlySimulation(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "simulated one month for %d goal(s)\n\n", n)
		renderDashboard(out, a.Store().Snapshot(), now)
		return nil

	default:
		fmt.Fprint(out, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}

	if err != nil {
		return err
	}
	renderChild(out, child, now)
	return nil
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// visited reports which flags were given on the command line.
func visited(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}
