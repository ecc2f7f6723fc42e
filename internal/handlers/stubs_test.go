package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/GregMSThompson/family-savings/internal/dto"
	"github.com/GregMSThompson/family-savings/internal/middleware"
	"github.com/GregMSThompson/family-savings/pkg/helpers"
)

type stubResponseHandler struct {
	writeJSONCalled bool
	writeJSONStatus int
	writeJSONData   any

	handleErrorCalled bool
	handleError       error
}

func (s *stubResponseHandler) WriteJSON(w http.ResponseWriter, _ *http.Request, status int, data any) {
	s.writeJSONCalled = true
	s.writeJSONStatus = status
	s.writeJSONData = data
	w.WriteHeader(status)
}

func (s *stubResponseHandler) WriteError(w http.ResponseWriter, _ *http.Request, status int, _, _ string) {
	w.WriteHeader(status)
}

func (s *stubResponseHandler) HandleError(w http.ResponseWriter, _ *http.Request, err error) {
	s.handleErrorCalled = true
	s.handleError = err
	w.WriteHeader(http.StatusInternalServerError)
}

type stubUserService struct {
	called     bool
	uid, email string
	req        dto.ProfileRequest
	profile    dto.Profile
	err        error
}

func (s *stubUserService) GetOrCreate(_ context.Context, uid, email string) (dto.Profile, error) {
	s.called = true
	s.uid, s.email = uid, email
	return s.profile, s.err
}

func (s *stubUserService) UpdateProfile(_ context.Context, uid, email string, req dto.ProfileRequest) (dto.Profile, error) {
	s.called = true
	s.uid, s.email, s.req = uid, email, req
	return s.profile, s.err
}

// stubChildServices records the parent and child ids every call receives.
type stubChildServices struct {
	calls             []string
	parentID, childID string
	body              any
	detail            dto.ChildDetail
	err               error
}

func (s *stubChildServices) record(op, parentID, childID string, body any) {
	s.calls = append(s.calls, op)
	s.parentID, s.childID, s.body = parentID, childID, body
}

func (s *stubChildServices) List(_ context.Context, parentID string) ([]dto.ChildRecord, error) {
	s.record("list", parentID, "", nil)
	return []dto.ChildRecord{}, s.err
}

func (s *stubChildServices) Create(_ context.Context, parentID string, req dto.ChildRequest) (dto.ChildRecord, error) {
	s.record("create", parentID, "", req)
	return dto.ChildRecord{ID: "c-new", Name: req.Name}, s.err
}

func (s *stubChildServices) Update(_ context.Context, parentID, childID string, req dto.ChildRequest) (dto.ChildRecord, error) {
	s.record("update", parentID, childID, req)
	return dto.ChildRecord{ID: childID}, s.err
}

func (s *stubChildServices) Delete(_ context.Context, parentID, childID string) error {
	s.record("delete", parentID, childID, nil)
	return s.err
}

func (s *stubChildServices) Detail(_ context.Context, parentID, childID string) (dto.ChildDetail, error) {
	s.record("detail", parentID, childID, nil)
	return s.detail, s.err
}

func (s *stubChildServices) MyGoal(_ context.Context, ownerID string) (dto.ChildDetail, error) {
	s.record("my_goal", ownerID, "", nil)
	return s.detail, s.err
}

func (s *stubChildServices) Set(_ context.Context, parentID, childID string, req dto.GoalRequest) (dto.GoalRecord, error) {
	s.record("set_goal", parentID, childID, req)
	return dto.GoalRecord{GoalType: req.GoalType}, s.err
}

func (s *stubChildServices) Contribute(_ context.Context, parentID, childID string, req dto.ContributeRequest) (dto.TransactionRecord, error) {
	s.record("contribute", parentID, childID, req)
	return dto.TransactionRecord{ID: "t1", Amount: req.Amount}, s.err
}

type stubInvestmentService struct{ *stubChildServices }

func (s stubInvestmentService) Set(_ context.Context, parentID, childID string, req dto.InvestmentRequest) (dto.InvestmentRecord, error) {
	s.record("set_investment", parentID, childID, req)
	return dto.InvestmentRecord{PortfolioType: req.PortfolioType}, s.err
}

type stubDirectiveService struct{ *stubChildServices }

func (s stubDirectiveService) Get(_ context.Context, parentID, childID string) (dto.DirectiveRecord, error) {
	s.record("get_directive", parentID, childID, nil)
	return dto.DirectiveRecord{GuardianName: "Yusuf"}, s.err
}

func (s stubDirectiveService) Set(_ context.Context, parentID, childID string, req dto.DirectiveRequest) (dto.DirectiveRecord, error) {
	s.record("set_directive", parentID, childID, req)
	return dto.DirectiveRecord{GuardianName: req.GuardianName}, s.err
}

type stubSimulationService struct {
	ownerID string
	n       int
	err     error
}

func (s *stubSimulationService) RunMonthly(_ context.Context, ownerID string) (int, error) {
	s.ownerID = ownerID
	return s.n, s.err
}

// authedRequest builds a request as FirebaseAuth would pass it on.
func authedRequest(method, path, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	ctx := context.WithValue(helpers.TestCtx(), middleware.UIDKey, "uid-123")
	ctx = context.WithValue(ctx, middleware.EmailKey, "sarah@example.com")
	return req.WithContext(ctx)
}
