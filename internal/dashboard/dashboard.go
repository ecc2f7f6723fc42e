// Package dashboard is the application context between the views and the
// savings API. It loads the signed-in user's data into a state.Store and runs
// every mutation as a request followed by a refetch of the affected child.
package dashboard

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/GregMSThompson/family-savings/internal/dto"
	"github.com/GregMSThompson/family-savings/internal/errs"
	"github.com/GregMSThompson/family-savings/internal/metrics"
	"github.com/GregMSThompson/family-savings/internal/models"
	"github.com/GregMSThompson/family-savings/internal/session"
	"github.com/GregMSThompson/family-savings/internal/state"
	"github.com/GregMSThompson/family-savings/internal/transform"
	"github.com/GregMSThompson/family-savings/pkg/logger"
)

const defaultLoadConcurrency = 8

type backend interface {
	GetProfile(ctx context.Context, creds *session.Credentials) (dto.Profile, error)
	GetMyGoal(ctx context.Context, creds *session.Credentials) (dto.ChildDetail, error)
	ListChildren(ctx context.Context, creds *session.Credentials) ([]dto.ChildRecord, error)
	GetChild(ctx context.Context, creds *session.Credentials, childID string) (dto.ChildDetail, error)
	CreateChild(ctx context.Context, creds *session.Credentials, req dto.ChildRequest) (dto.ChildRecord, error)
	UpdateChild(ctx context.Context, creds *session.Credentials, childID string, req dto.ChildRequest) (dto.ChildRecord, error)
	DeleteChild(ctx context.Context, creds *session.Credentials, childID string) error
	SetGoal(ctx context.Context, creds *session.Credentials, childID string, req dto.GoalRequest) (dto.GoalRecord, error)
	Contribute(ctx context.Context, creds *session.Credentials, childID string, req dto.ContributeRequest) (dto.TransactionRecord, error)
	SetInvestment(ctx context.Context, creds *session.Credentials, childID string, req dto.InvestmentRequest) (dto.InvestmentRecord, error)
	SetDirective(ctx context.Context, creds *session.Credentials, childID string, req dto.DirectiveRequest) (dto.DirectiveRecord, error)
	RunMonthlySimulation(ctx context.Context, creds *session.Credentials) (dto.SimulationResult, error)
}

type credentialSource interface {
	Fresh(ctx context.Context) *session.Credentials
}

type Dashboard struct {
	api             backend
	session         credentialSource
	store           *state.Store
	loadConcurrency int
}

// New returns a Dashboard writing into store. loadConcurrency caps the
// parallel child detail requests of a load; 0 uses the default.
func New(api backend, sess credentialSource, store *state.Store, loadConcurrency int) *Dashboard {
	if loadConcurrency <= 0 {
		loadConcurrency = defaultLoadConcurrency
	}
	return &Dashboard{
		api:             api,
		session:         sess,
		store:           store,
		loadConcurrency: loadConcurrency,
	}
}

func (d *Dashboard) Store() *state.Store {
	return d.store
}

// Load runs the initial load for the signed-in user. Without a session it
// does nothing and returns nil.
//
// Parent and admin users get their children list followed by every child's
// detail, fetched concurrently. A child whose detail fails is left out; its
// id is recorded in the snapshot's Omitted list. Child users get their own
// goal only.
func (d *Dashboard) Load(ctx context.Context) error {
	log, ctx := logger.With(ctx, "op", "load")
	creds := d.session.Fresh(ctx)
	if creds == nil {
		log.Debug("no session, skipping load")
		return nil
	}
	return d.load(ctx, creds)
}

// Reload repeats the load on request. Unlike Load it reports a missing
// session as errs.ErrNoSession.
func (d *Dashboard) Reload(ctx context.Context) error {
	_, ctx = logger.With(ctx, "op", "reload")
	creds := d.session.Fresh(ctx)
	if creds == nil {
		return errs.ErrNoSession
	}
	return d.load(ctx, creds)
}

func (d *Dashboard) load(ctx context.Context, creds *session.Credentials) error {
	log := logger.FromContext(ctx)

	d.store.SetLoading(true)
	defer d.store.SetLoading(false)

	profile, err := d.api.GetProfile(ctx, creds)
	if err != nil {
		log.Error("failed to load profile", "error", err)
		d.store.SetLoadResult(nil, err)
		return fmt.Errorf("load profile: %w", err)
	}
	user := transform.User(profile)
	d.store.SetUser(user)
	log = log.With("user_id", user.ID, "role", user.Role)

	if user.IsChild() {
		if err := d.loadMyGoal(ctx, creds); err != nil {
			log.Error("failed to load own goal", "error", err)
			d.store.SetLoadResult(nil, err)
			return err
		}
		d.store.SetLoadResult(nil, nil)
		log.Info("dashboard loaded")
		return nil
	}

	list, err := d.api.ListChildren(ctx, creds)
	if err != nil {
		log.Error("failed to list children", "error", err)
		d.store.SetLoadResult(nil, err)
		return fmt.Errorf("list children: %w", err)
	}

	children, omitted := d.loadDetails(ctx, creds, list)
	d.store.SetChildren(children)
	d.store.SetLoadResult(omitted, nil)
	log.Info("dashboard loaded", "children", len(children), "omitted", len(omitted))
	return nil
}

func (d *Dashboard) loadMyGoal(ctx context.Context, creds *session.Credentials) error {
	detail, err := d.api.GetMyGoal(ctx, creds)
	if err != nil {
		return fmt.Errorf("load own goal: %w", err)
	}
	if detail.IsEmpty() {
		d.store.SetMyGoal(nil)
		return nil
	}
	c, err := transform.Child(ctx, detail)
	if err != nil {
		return fmt.Errorf("load own goal: %w", err)
	}
	d.store.SetMyGoal(&c)
	return nil
}

// loadDetails fetches every child's detail with at most loadConcurrency
// requests in flight. The result keeps the list order.
func (d *Dashboard) loadDetails(ctx context.Context, creds *session.Credentials, list []dto.ChildRecord) ([]models.Child, []string) {
	log := logger.FromContext(ctx)

	results := make([]*models.Child, len(list))
	var g errgroup.Group
	g.SetLimit(d.loadConcurrency)
	for i, rec := range list {
		g.Go(func() error {
			c, err := d.fetchChild(ctx, creds, rec.ID)
			if err != nil {
				log.Warn("child omitted from dashboard", "child_id", rec.ID, "error", err)
				metrics.ChildLoadFailuresTotal.Inc()
				return nil
			}
			results[i] = &c
			return nil
		})
	}
	_ = g.Wait()

	children := make([]models.Child, 0, len(list))
	var omitted []string
	for i, c := range results {
		if c == nil {
			omitted = append(omitted, list[i].ID)
			continue
		}
		children = append(children, *c)
	}
	return children, omitted
}

// fetchChild reads one child's detail and transforms it.
func (d *Dashboard) fetchChild(ctx context.Context, creds *session.Credentials, childID string) (models.Child, error) {
	detail, err := d.api.GetChild(ctx, creds, childID)
	if err != nil {
		return models.Child{}, err
	}
	c, err := transform.Child(ctx, detail)
	if err != nil {
		return models.Child{}, err
	}
	if c.ID != childID {
		return models.Child{}, errors.New("detail returned for a different child")
	}
	return c, nil
}
