package dashboard

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/family-savings/internal/dto"
	"github.com/GregMSThompson/family-savings/internal/errs"
	"github.com/GregMSThompson/family-savings/internal/session"
)

type fakeSession struct {
	creds *session.Credentials
	calls atomic.Int32
}

func (f *fakeSession) Fresh(ctx context.Context) *session.Credentials {
	f.calls.Add(1)
	return f.creds
}

// fakeBackend keeps server state in memory and behaves like the savings API,
// including the portfolio share taken from contributions.
type fakeBackend struct {
	mu sync.Mutex

	profile dto.Profile
	myGoal  dto.ChildDetail
	order   []string
	details map[string]*dto.ChildDetail

	failDetail map[string]error
	fail       map[string]error

	calls     []string
	lastGoal  dto.GoalRequest
	lastChild dto.ChildRequest
	nextID    int

	delay    time.Duration
	inflight atomic.Int32
	peak     atomic.Int32
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		profile:    dto.Profile{ID: "u1", FullName: "Sarah", Email: "sarah@example.com", Role: "parent"},
		details:    map[string]*dto.ChildDetail{},
		failDetail: map[string]error{},
		fail:       map[string]error{},
	}
}

func (f *fakeBackend) addChild(id, name string, balance int64, goal *dto.GoalRecord) {
	f.order = append(f.order, id)
	f.details[id] = &dto.ChildDetail{
		Child:          &dto.ChildRecord{ID: id, Name: name, DateOfBirth: "2015-03-12"},
		Goal:           goal,
		Transactions:   []dto.TransactionRecord{},
		SavingsBalance: decimal.NewFromInt(balance),
	}
}

func (f *fakeBackend) record(op string) error {
	f.calls = append(f.calls, op)
	return f.fail[op]
}

func (f *fakeBackend) countCalls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == op {
			n++
		}
	}
	return n
}

func (f *fakeBackend) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func notFound(id string) error {
	return &errs.RequestError{Status: 404, Message: "child " + id + " not found"}
}

func (f *fakeBackend) GetProfile(ctx context.Context, creds *session.Credentials) (dto.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profile, f.record("get_profile")
}

func (f *fakeBackend) GetMyGoal(ctx context.Context, creds *session.Credentials) (dto.ChildDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.myGoal, f.record("get_my_goal")
}

func (f *fakeBackend) ListChildren(ctx context.Context, creds *session.Credentials) ([]dto.ChildRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("list_children"); err != nil {
		return nil, err
	}
	out := make([]dto.ChildRecord, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, *f.details[id].Child)
	}
	return out, nil
}

func (f *fakeBackend) GetChild(ctx context.Context, creds *session.Credentials, childID string) (dto.ChildDetail, error) {
	n := f.inflight.Add(1)
	defer f.inflight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("get_child"); err != nil {
		return dto.ChildDetail{}, err
	}
	if err := f.failDetail[childID]; err != nil {
		return dto.ChildDetail{}, err
	}
	d, ok := f.details[childID]
	if !ok {
		return dto.ChildDetail{}, notFound(childID)
	}
	cp := *d
	cp.Transactions = append([]dto.TransactionRecord(nil), d.Transactions...)
	return cp, nil
}

func (f *fakeBackend) CreateChild(ctx context.Context, creds *session.Credentials, req dto.ChildRequest) (dto.ChildRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("create_child"); err != nil {
		return dto.ChildRecord{}, err
	}
	f.nextID++
	id := fmt.Sprintf("new-%d", f.nextID)
	f.order = append(f.order, id)
	rec := dto.ChildRecord{ID: id, Name: req.Name, DateOfBirth: req.DateOfBirth}
	f.details[id] = &dto.ChildDetail{Child: &rec, Transactions: []dto.TransactionRecord{}}
	return rec, nil
}

func (f *fakeBackend) UpdateChild(ctx context.Context, creds *session.Credentials, childID string, req dto.ChildRequest) (dto.ChildRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("update_child"); err != nil {
		return dto.ChildRecord{}, err
	}
	f.lastChild = req
	d, ok := f.details[childID]
	if !ok {
		return dto.ChildRecord{}, notFound(childID)
	}
	rec := dto.ChildRecord{ID: childID, Name: req.Name, DateOfBirth: req.DateOfBirth, PhotoURL: req.PhotoURL}
	d.Child = &rec
	return rec, nil
}

func (f *fakeBackend) DeleteChild(ctx context.Context, creds *session.Credentials, childID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("delete_child"); err != nil {
		return err
	}
	delete(f.details, childID)
	for i, id := range f.order {
		if id == childID {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeBackend) SetGoal(ctx context.Context, creds *session.Credentials, childID string, req dto.GoalRequest) (dto.GoalRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("set_goal"); err != nil {
		return dto.GoalRecord{}, err
	}
	f.lastGoal = req
	d, ok := f.details[childID]
	if !ok {
		return dto.GoalRecord{}, notFound(childID)
	}
	g := dto.GoalRecord{
		GoalType:     req.GoalType,
		TargetAmount: req.TargetAmount,
		TargetDate:   req.TargetDate,
		Paused:       req.Paused,
	}
	if req.MonthlyContribution != nil {
		g.MonthlyContribution = *req.MonthlyContribution
	}
	d.Goal = &g
	return g, nil
}

func (f *fakeBackend) Contribute(ctx context.Context, creds *session.Credentials, childID string, req dto.ContributeRequest) (dto.TransactionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("contribute"); err != nil {
		return dto.TransactionRecord{}, err
	}
	d, ok := f.details[childID]
	if !ok {
		return dto.TransactionRecord{}, notFound(childID)
	}
	saved := req.Amount
	if d.Investment != nil {
		invested := req.Amount.Mul(d.Investment.AllocationPercentage).Div(decimal.NewFromInt(100)).Round(2)
		d.Investment.CurrentValue = d.Investment.CurrentValue.Add(invested)
		saved = req.Amount.Sub(invested)
	}
	f.nextID++
	tx := dto.TransactionRecord{ID: fmt.Sprintf("t-%d", f.nextID), Amount: saved, Type: "MANUAL", Date: "2026-10-15"}
	d.Transactions = append([]dto.TransactionRecord{tx}, d.Transactions...)
	d.SavingsBalance = d.SavingsBalance.Add(saved)
	return tx, nil
}

func (f *fakeBackend) SetInvestment(ctx context.Context, creds *session.Credentials, childID string, req dto.InvestmentRequest) (dto.InvestmentRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("set_investment"); err != nil {
		return dto.InvestmentRecord{}, err
	}
	d, ok := f.details[childID]
	if !ok {
		return dto.InvestmentRecord{}, notFound(childID)
	}
	inv := dto.InvestmentRecord{
		PortfolioType:        req.PortfolioType,
		AllocationPercentage: decimal.NewFromInt(int64(req.AllocationPercent)),
	}
	d.Investment = &inv
	return inv, nil
}

func (f *fakeBackend) SetDirective(ctx context.Context, creds *session.Credentials, childID string, req dto.DirectiveRequest) (dto.DirectiveRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("set_directive"); err != nil {
		return dto.DirectiveRecord{}, err
	}
	d, ok := f.details[childID]
	if !ok {
		return dto.DirectiveRecord{}, notFound(childID)
	}
	dir := dto.DirectiveRecord{GuardianName: req.GuardianName, GuardianContact: req.GuardianContact, Instructions: req.Instructions}
	d.FundDirective = &dir
	return dir, nil
}

func (f *fakeBackend) RunMonthlySimulation(ctx context.Context, creds *session.Credentials) (dto.SimulationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("run_simulation"); err != nil {
		return dto.SimulationResult{}, err
	}
	n := 0
	for _, d := range f.details {
		if d.Goal == nil || d.Goal.Paused || !d.Goal.MonthlyContribution.IsPositive() {
			continue
		}
		d.SavingsBalance = d.SavingsBalance.Add(d.Goal.MonthlyContribution)
		n++
	}
	return dto.SimulationResult{GoalsProcessed: n}, nil
}
