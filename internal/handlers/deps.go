package handlers

import (
	"log/slog"

	"github.com/GregMSThompson/family-savings/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	UserSvc         UserService
	ChildSvc        childService
	GoalSvc         goalService
	ContributionSvc contributionService
	InvestmentSvc   investmentService
	DirectiveSvc    directiveService
	SimulationSvc   simulationService
}
