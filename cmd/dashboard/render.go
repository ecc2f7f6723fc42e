package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/GregMSThompson/family-savings/internal/models"
	"github.com/GregMSThompson/family-savings/internal/progress"
	"github.com/GregMSThompson/family-savings/internal/state"
)

const barWidth = 20

func renderDashboard(w io.Writer, snap state.Snapshot, now time.Time) {
	if snap.User != nil && snap.User.IsChild() {
		renderMyGoal(w, snap, now)
		return
	}

	name := "there"
	if snap.User != nil && snap.User.Name != "" {
		name = snap.User.Name
	}
	fmt.Fprintf(w, "Hello, %s\n", name)
	fmt.Fprintf(w, "Total savings: %s across %d child(ren)\n", money(snap.TotalSavings()), len(snap.Children))
	if len(snap.Omitted) > 0 {
		fmt.Fprintf(w, "Could not load %d child(ren): %s\n", len(snap.Omitted), strings.Join(snap.Omitted, ", "))
	}
	if snap.LoadErr != nil {
		fmt.Fprintf(w, "Loading failed: %v (run again to retry)\n", snap.LoadErr)
	}
	if len(snap.Children) == 0 {
		fmt.Fprintln(w, "\nNo children yet. Add one with: dashboard add-child")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\nID\tNAME\tGOAL\tSAVED\tTARGET\tPROGRESS\tPROJECTED")
	for _, c := range snap.Children {
		s := progress.Summarize(c.Goal, now)
		goal := c.Goal.GoalType.Label()
		if !c.HasGoal {
			goal = "(no goal)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s %3d%%\t%s\n",
			c.ID, c.Name, goal, money(c.Goal.CurrentAmount), money(c.Goal.TargetAmount),
			bar(s.Percentage), s.Percentage, s.Projection)
	}
	tw.Flush()
}

func renderChild(w io.Writer, c models.Child, now time.Time) {
	fmt.Fprintf(w, "%s (%s), born %s\n", c.Name, c.ID, c.DateOfBirth)

	g := c.Goal
	s := progress.Summarize(g, now)
	if c.HasGoal {
		status := ""
		if g.IsPaused {
			status = " [paused]"
		}
		fmt.Fprintf(w, "Goal: %s%s\n", g.GoalType.Label(), status)
		fmt.Fprintf(w, "  Saved %s of %s  %s %d%%\n", money(g.CurrentAmount), money(g.TargetAmount), bar(s.Percentage), s.Percentage)
		fmt.Fprintf(w, "  Target date %s, %d month(s) left, %s still to save\n", g.TargetDate, s.MonthsRemaining, money(s.Remaining))
		fmt.Fprintf(w, "  Needed per month %s, contributing %s\n", money(s.MonthlyTarget), money(g.MonthlyContribution))
		fmt.Fprintf(w, "  Projected completion: %s\n", s.Projection)
		fmt.Fprintf(w, "  Milestones: %s\n", milestoneLine(s.Milestones))
	} else {
		fmt.Fprintf(w, "No goal yet. Savings balance %s\n", money(g.CurrentAmount))
	}

	if inv := c.Investment; inv != nil {
		label := string(inv.PortfolioType)
		if p, ok := models.PortfolioInfo(inv.PortfolioType); ok {
			label = fmt.Sprintf("%s (%.0f%% a year)", p.Label, p.AnnualRate*100)
		}
		fmt.Fprintf(w, "Investment: %s, %.0f%% of contributions, value %s\n", label, inv.AllocationPercentage, money(inv.CurrentValue))
	}
	if fi := c.FutureInstructions; fi != nil {
		fmt.Fprintf(w, "Future instructions for %s (%s):\n  %s\n  %s\n", fi.GuardianName, fi.GuardianContact, fi.Instructions, models.DirectiveDisclaimer)
	}

	if len(c.Contributions) > 0 {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "DATE\tAMOUNT\tTYPE")
		for _, ct := range c.Contributions {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", ct.Date, money(ct.Amount), ct.Type)
		}
		tw.Flush()
	}
}

func renderMyGoal(w io.Writer, snap state.Snapshot, now time.Time) {
	if snap.MyGoal == nil {
		fmt.Fprintln(w, "You don't have a savings goal yet. Ask a parent to set one up!")
		return
	}
	c := *snap.MyGoal
	s := progress.Summarize(c.Goal, now)

	fmt.Fprintf(w, "Hi %s! Your %s goal\n", c.Name, c.Goal.GoalType.Label())
	fmt.Fprintf(w, "%s %d%%  %s of %s\n", bar(s.Percentage), s.Percentage, money(c.Goal.CurrentAmount), money(c.Goal.TargetAmount))
	fmt.Fprintln(w, progress.Encouragement(s.Percentage))
	fmt.Fprintf(w, "Badges: %s\n", milestoneLine(s.Milestones))

	if points := progress.History(c.Contributions, c.Goal.CurrentAmount); len(points) > 0 {
		fmt.Fprintln(w, "Your savings over time:")
		for _, p := range points {
			fmt.Fprintf(w, "  %s  %s\n", p.Date, money(p.Total))
		}
	}
}

func renderPortfolios(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PORTFOLIO\tEXPECTED/YEAR\tALLOCATION")
	for _, p := range models.Portfolios {
		parts := make([]string, 0, len(p.Allocation))
		for _, a := range p.Allocation {
			parts = append(parts, fmt.Sprintf("%s %d%%", a.Label, a.Percentage))
		}
		fmt.Fprintf(tw, "%s\t%.0f%%\t%s\n", p.Label, p.AnnualRate*100, strings.Join(parts, ", "))
	}
	tw.Flush()
	fmt.Fprintln(w, "Portfolios are simulated for illustration only.")
}

func milestoneLine(ms []progress.Milestone) string {
	parts := make([]string, 0, len(ms))
	for _, m := range ms {
		mark := "  "
		if m.Achieved {
			mark = m.Emoji
		}
		parts = append(parts, fmt.Sprintf("%s %s %d%%", mark, m.Label, m.Percent))
	}
	return strings.Join(parts, " | ")
}

func bar(pct int) string {
	filled := pct * barWidth / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]"
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
