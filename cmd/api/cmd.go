package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/GregMSThompson/family-savings/internal/bootstrap"
	"github.com/GregMSThompson/family-savings/internal/config"
	"github.com/GregMSThompson/family-savings/internal/crypto"
	"github.com/GregMSThompson/family-savings/internal/handlers"
	"github.com/GregMSThompson/family-savings/internal/middleware"
	"github.com/GregMSThompson/family-savings/internal/response"
	"github.com/GregMSThompson/family-savings/internal/router"
	"github.com/GregMSThompson/family-savings/internal/services"
	"github.com/GregMSThompson/family-savings/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg, err := config.Load(context.Background())
	exitOnError("config failed", err, slog.Default())
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// helpers
	cipher := crypto.New(bs.KMS, cfg.Server.KMSKeyName)

	// stores
	ustore := store.NewUserStore(bs.Firestore)
	cstore := store.NewChildStore(bs.Firestore)
	gstore := store.NewGoalStore(bs.Firestore)
	ostore := store.NewGoalOwnerStore(bs.Firestore)
	tstore := store.NewTransactionStore(bs.Firestore)
	pstore := store.NewPortfolioStore(bs.Firestore)
	dstore := store.NewDirectiveStore(bs.Firestore)

	// services
	userv := services.NewUserService(ustore)
	cserv := services.NewChildService(services.ChildServiceDeps{
		Children:     cstore,
		Goals:        gstore,
		Owners:       ostore,
		Transactions: tstore,
		Portfolios:   pstore,
		Directives:   dstore,
		Cipher:       cipher,
	})
	gserv := services.NewGoalService(cstore, gstore, ostore, tstore)
	coserv := services.NewContributionService(cstore, pstore, tstore)
	iserv := services.NewInvestmentService(cstore, pstore)
	dserv := services.NewDirectiveService(cstore, dstore, cipher)
	sserv := services.NewSimulationService(gstore, pstore, coserv, ustore)

	// scheduled simulation
	if cfg.Server.SimulationSchedule != "" {
		sched, err := sserv.Schedule(cfg.Server.SimulationSchedule, bs.Log)
		exitOnError("invalid simulation schedule", err, bs.Log)
		sched.Start()
		defer sched.Stop()
		bs.Log.Info("monthly simulation scheduled", "schedule", cfg.Server.SimulationSchedule)
	}

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.UserSvc = userv
	deps.ChildSvc = cserv
	deps.GoalSvc = gserv
	deps.ContributionSvc = coserv
	deps.InvestmentSvc = iserv
	deps.DirectiveSvc = dserv
	deps.SimulationSvc = sserv

	// router
	r := router.NewRouter(deps, middleware.NewMiddleware(bs.Firebase))
	bs.Log.Info("listening", "port", cfg.Server.Port)
	err = http.ListenAndServe(":"+cfg.Server.Port, r)
	exitOnError("server start failed", err, bs.Log)
}
