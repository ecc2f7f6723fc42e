package services

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/GregMSThompson/family-savings/internal/errs"
	"github.com/GregMSThompson/family-savings/internal/models"
	"github.com/GregMSThompson/family-savings/pkg/logger"
)

var fixedNow = time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

// memDB backs every repository interface with maps.
type memDB struct {
	mu         sync.Mutex
	children   map[string]*models.ChildDoc
	goals      map[string]*models.GoalDoc
	owners     []*models.GoalOwnerDoc
	txs        map[string][]*models.TransactionDoc
	portfolios map[string]*models.PortfolioDoc
	directives map[string]*models.DirectiveDoc
	users      map[string]*models.UserDoc

	failRecord error
	grown      map[string]float64
}

func newMemDB() *memDB {
	return &memDB{
		children:   map[string]*models.ChildDoc{},
		goals:      map[string]*models.GoalDoc{},
		txs:        map[string][]*models.TransactionDoc{},
		portfolios: map[string]*models.PortfolioDoc{},
		directives: map[string]*models.DirectiveDoc{},
		users:      map[string]*models.UserDoc{},
		grown:      map[string]float64{},
	}
}

func (m *memDB) addChild(id, parentID string) {
	m.children[id] = &models.ChildDoc{ID: id, ParentID: parentID, Name: "child " + id, DateOfBirth: "2015-03-12", CreatedAt: fixedNow}
}

func (m *memDB) addTx(childID string, cents int64) {
	m.txs[childID] = append(m.txs[childID], &models.TransactionDoc{ID: childID + "-seed", ChildID: childID, AmountCents: cents, Type: models.TransactionManual, Date: fixedNow.AddDate(0, -1, 0)})
}

type memChildren struct{ *memDB }

func (m memChildren) Get(_ context.Context, id string) (*models.ChildDoc, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.children[id]
	if !ok {
		return nil, errs.NewNotFoundError("child not found")
	}
	cp := *c
	return &cp, nil
}

func (m memChildren) Create(_ context.Context, c *models.ChildDoc) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.children[c.ID]; ok {
		return errs.NewAlreadyExistsError("child already exists")
	}
	cp := *c
	m.children[c.ID] = &cp
	return nil
}

func (m memChildren) Update(_ context.Context, c *models.ChildDoc) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.children[c.ID] = &cp
	return nil
}

func (m memChildren) ListByParent(_ context.Context, parentID string) ([]*models.ChildDoc, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.ChildDoc
	for _, c := range m.children {
		if c.ParentID == parentID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m memChildren) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.children, id)
	delete(m.goals, id)
	delete(m.txs, id)
	delete(m.portfolios, id)
	delete(m.directives, id)
	return nil
}

type memGoals struct{ *memDB }

func (m memGoals) Get(_ context.Context, childID string) (*models.GoalDoc, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.goals[childID]
	if !ok {
		return nil, nil
	}
	cp := *g
	return &cp, nil
}

func (m memGoals) Set(_ context.Context, g *models.GoalDoc) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if g.CreatedAt.IsZero() {
		g.CreatedAt = fixedNow
	}
	cp := *g
	m.goals[g.ChildID] = &cp
	return nil
}

func (m memGoals) ListActive(_ context.Context, ownerID string) ([]*models.GoalDoc, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.GoalDoc
	for _, g := range m.goals {
		if g.Paused || g.MonthlyCents <= 0 || (ownerID != "" && g.OwnerID != ownerID) {
			continue
		}
		cp := *g
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChildID < out[j].ChildID })
	return out, nil
}

type memOwners struct{ *memDB }

func (m memOwners) Link(_ context.Context, ownerID, childID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.owners {
		if o.OwnerID == ownerID && o.ChildID == childID {
			return nil
		}
	}
	m.owners = append(m.owners, &models.GoalOwnerDoc{OwnerID: ownerID, ChildID: childID})
	return nil
}

func (m memOwners) FindByOwner(_ context.Context, ownerID string) (*models.GoalOwnerDoc, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.owners {
		if o.OwnerID == ownerID {
			return o, nil
		}
	}
	return nil, nil
}

type memLedger struct{ *memDB }

func (m memLedger) Record(_ context.Context, tx *models.TransactionDoc, investedCents int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failRecord != nil {
		return m.failRecord
	}
	if investedCents != 0 {
		p, ok := m.portfolios[tx.ChildID]
		if !ok {
			return errors.New("no portfolio to invest in")
		}
		p.ValueCents += investedCents
	}
	cp := *tx
	m.txs[tx.ChildID] = append([]*models.TransactionDoc{&cp}, m.txs[tx.ChildID]...)
	return nil
}

func (m memLedger) List(_ context.Context, childID string) ([]*models.TransactionDoc, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*models.TransactionDoc(nil), m.txs[childID]...), nil
}

type memPortfolios struct{ *memDB }

func (m memPortfolios) Get(_ context.Context, childID string) (*models.PortfolioDoc, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.portfolios[childID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m memPortfolios) Set(_ context.Context, p *models.PortfolioDoc) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.LastUpdated = fixedNow
	cp := *p
	m.portfolios[p.ChildID] = &cp
	return nil
}

func (m memPortfolios) Grow(_ context.Context, childID string, monthlyRate float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.portfolios[childID]
	if !ok {
		return nil
	}
	m.grown[childID] = monthlyRate
	p.ValueCents = int64(float64(p.ValueCents)*(1+monthlyRate) + 0.5)
	return nil
}

type memDirectives struct{ *memDB }

func (m memDirectives) Get(_ context.Context, childID string) (*models.DirectiveDoc, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.directives[childID]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (m memDirectives) Set(_ context.Context, d *models.DirectiveDoc) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d.LastUpdated = fixedNow
	cp := *d
	m.directives[d.ChildID] = &cp
	return nil
}

type memUsers struct{ *memDB }

func (m memUsers) ListUIDs(_ context.Context, role models.Role) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for uid, u := range m.users {
		if u.Role == string(role) {
			out = append(out, uid)
		}
	}
	sort.Strings(out)
	return out, nil
}

// rot13Cipher stands in for KMS so tests can see that values were transformed.
type rot13Cipher struct{ fail error }

func (c rot13Cipher) Encrypt(_ context.Context, s string) (string, error) {
	if c.fail != nil {
		return "", c.fail
	}
	return "enc:" + rot13(s), nil
}

func (c rot13Cipher) Decrypt(_ context.Context, s string) (string, error) {
	if c.fail != nil {
		return "", c.fail
	}
	return rot13(strings.TrimPrefix(s, "enc:")), nil
}

func rot13(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return 'a' + (r-'a'+13)%26
		case r >= 'A' && r <= 'Z':
			return 'A' + (r-'A'+13)%26
		}
		return r
	}, s)
}

type testServices struct {
	db           *memDB
	children     *childService
	goals        *goalService
	contribution *contributionService
	investments  *investmentService
	directives   *directiveService
	simulation   *simulationService
}

func newServices() *testServices {
	db := newMemDB()
	children := memChildren{db}
	cs := NewChildService(ChildServiceDeps{
		Children:     children,
		Goals:        memGoals{db},
		Owners:       memOwners{db},
		Transactions: memLedger{db},
		Portfolios:   memPortfolios{db},
		Directives:   memDirectives{db},
		Cipher:       rot13Cipher{},
	})
	cs.now = clock
	gs := NewGoalService(children, memGoals{db}, memOwners{db}, memLedger{db})
	gs.now = clock
	contrib := NewContributionService(children, memPortfolios{db}, memLedger{db})
	contrib.now = clock
	return &testServices{
		db:           db,
		children:     cs,
		goals:        gs,
		contribution: contrib,
		investments:  NewInvestmentService(children, memPortfolios{db}),
		directives:   NewDirectiveService(children, memDirectives{db}, rot13Cipher{}),
		simulation:   NewSimulationService(memGoals{db}, memPortfolios{db}, contrib, memUsers{db}),
	}
}

func newTestLogger() *slog.Logger {
	return logger.New("", logger.NewTestHandler)
}
