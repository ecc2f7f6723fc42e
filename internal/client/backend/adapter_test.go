package backendclient

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/family-savings/internal/dto"
	"github.com/GregMSThompson/family-savings/internal/errs"
	"github.com/GregMSThompson/family-savings/internal/session"
	"github.com/GregMSThompson/family-savings/pkg/helpers"
)

var creds = &session.Credentials{Token: "tok-1", Email: "sarah@example.com"}

type recorded struct {
	method string
	path   string
	auth   string
	email  string
	body   string
}

func newServer(t *testing.T, status int, respBody string, rec *recorded) *Adapter {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		*rec = recorded{
			method: r.Method,
			path:   r.URL.EscapedPath(),
			auth:   r.Header.Get("Authorization"),
			email:  r.Header.Get("X-User-Email"),
			body:   string(b),
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, respBody)
	}))
	t.Cleanup(srv.Close)
	return NewAdapter(srv.URL+"/", 5*time.Second)
}

func TestAdapterSendsCredentials(t *testing.T) {
	var rec recorded
	a := newServer(t, http.StatusOK, `{"id":"u1","fullName":"Sarah","email":"sarah@example.com","role":"parent"}`, &rec)

	p, err := a.GetProfile(helpers.TestCtx(), creds)
	if err != nil {
		t.Fatalf("GetProfile error: %v", err)
	}
	if p.ID != "u1" || p.Role != "parent" {
		t.Fatalf("unexpected profile: %+v", p)
	}
	if rec.method != http.MethodGet || rec.path != "/api/me" {
		t.Fatalf("unexpected request: %s %s", rec.method, rec.path)
	}
	if rec.auth != "Bearer tok-1" || rec.email != "sarah@example.com" {
		t.Fatalf("credentials not sent: auth=%q email=%q", rec.auth, rec.email)
	}
}

func TestAdapterRoutes(t *testing.T) {
	ctx := helpers.TestCtx()
	tests := []struct {
		name       string
		call       func(a *Adapter) error
		wantMethod string
		wantPath   string
		wantBody   map[string]any
		respBody   string
	}{
		{
			name:       "list children",
			call:       func(a *Adapter) error { _, err := a.ListChildren(ctx, creds); return err },
			wantMethod: http.MethodGet, wantPath: "/api/children",
			respBody: `[]`,
		},
		{
			name:       "my goal",
			call:       func(a *Adapter) error { _, err := a.GetMyGoal(ctx, creds); return err },
			wantMethod: http.MethodGet, wantPath: "/api/me/goal",
		},
		{
			name:       "child detail escapes id",
			call:       func(a *Adapter) error { _, err := a.GetChild(ctx, creds, "a/b"); return err },
			wantMethod: http.MethodGet, wantPath: "/api/children/a%2Fb",
		},
		{
			name: "create child",
			call: func(a *Adapter) error {
				_, err := a.CreateChild(ctx, creds, dto.ChildRequest{Name: "Aisha", DateOfBirth: "2015-03-12"})
				return err
			},
			wantMethod: http.MethodPost, wantPath: "/api/children",
			wantBody: map[string]any{"name": "Aisha", "dateOfBirth": "2015-03-12", "photoUrl": ""},
		},
		{
			name: "update child resends photo",
			call: func(a *Adapter) error {
				_, err := a.UpdateChild(ctx, creds, "c1", dto.ChildRequest{Name: "Aisha", DateOfBirth: "2015-03-12", PhotoURL: "p"})
				return err
			},
			wantMethod: http.MethodPut, wantPath: "/api/children/c1",
			wantBody: map[string]any{"name": "Aisha", "dateOfBirth": "2015-03-12", "photoUrl": "p"},
		},
		{
			name:       "delete child",
			call:       func(a *Adapter) error { return a.DeleteChild(ctx, creds, "c1") },
			wantMethod: http.MethodDelete, wantPath: "/api/children/c1",
		},
		{
			name: "set goal without monthly",
			call: func(a *Adapter) error {
				_, err := a.SetGoal(ctx, creds, "c1", dto.GoalRequest{
					GoalType: "CAR", TargetAmount: decimal.NewFromInt(30000), TargetDate: "2030-01-01", Paused: true,
				})
				return err
			},
			wantMethod: http.MethodPost, wantPath: "/api/children/c1/goal",
			wantBody: map[string]any{"goalType": "CAR", "targetAmount": "30000", "targetDate": "2030-01-01", "paused": true},
		},
		{
			name: "contribute",
			call: func(a *Adapter) error {
				_, err := a.Contribute(ctx, creds, "c1", dto.ContributeRequest{Amount: decimal.NewFromInt(100)})
				return err
			},
			wantMethod: http.MethodPost, wantPath: "/api/children/c1/contribute",
			wantBody: map[string]any{"amount": "100"},
		},
		{
			name: "set investment",
			call: func(a *Adapter) error {
				_, err := a.SetInvestment(ctx, creds, "c1", dto.InvestmentRequest{PortfolioType: "GROWTH", AllocationPercent: 30})
				return err
			},
			wantMethod: http.MethodPost, wantPath: "/api/children/c1/investment",
			wantBody: map[string]any{"portfolioType": "GROWTH", "allocationPercent": float64(30)},
		},
		{
			name: "set directive",
			call: func(a *Adapter) error {
				_, err := a.SetDirective(ctx, creds, "c1", dto.DirectiveRequest{GuardianName: "A", GuardianContact: "B", Instructions: "C"})
				return err
			},
			wantMethod: http.MethodPost, wantPath: "/api/children/c1/directive",
			wantBody: map[string]any{"guardianName": "A", "guardianContact": "B", "instructions": "C"},
		},
		{
			name:       "simulate",
			call:       func(a *Adapter) error { _, err := a.RunMonthlySimulation(ctx, creds); return err },
			wantMethod: http.MethodPost, wantPath: "/api/simulate/monthly",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := tt.respBody
			if resp == "" {
				resp = `{}`
			}
			var rec recorded
			a := newServer(t, http.StatusOK, resp, &rec)
			if err := tt.call(a); err != nil {
				t.Fatalf("call error: %v", err)
			}
			if rec.method != tt.wantMethod || rec.path != tt.wantPath {
				t.Fatalf("request = %s %s, want %s %s", rec.method, rec.path, tt.wantMethod, tt.wantPath)
			}
			if tt.wantBody == nil {
				if rec.body != "" {
					t.Fatalf("unexpected body: %s", rec.body)
				}
				return
			}
			var got map[string]any
			if err := json.Unmarshal([]byte(rec.body), &got); err != nil {
				t.Fatalf("decode body %q: %v", rec.body, err)
			}
			if len(got) != len(tt.wantBody) {
				t.Fatalf("body = %v, want %v", got, tt.wantBody)
			}
			for k, v := range tt.wantBody {
				if got[k] != v {
					t.Fatalf("body[%s] = %#v, want %#v", k, got[k], v)
				}
			}
		})
	}
}

func TestAdapterDecodesDetail(t *testing.T) {
	var rec recorded
	a := newServer(t, http.StatusOK, `{
		"child": {"id": "c1", "name": "Aisha", "dateOfBirth": "2015-03-12"},
		"goal": {"goalType": "UNIVERSITY", "targetAmount": "50000.00", "targetDate": "2033-09-01", "paused": false},
		"transactions": [{"id": "t1", "amount": "100.50", "type": "MANUAL", "date": "2026-01-01"}],
		"savingsBalance": 100.5
	}`, &rec)

	d, err := a.GetChild(helpers.TestCtx(), creds, "c1")
	if err != nil {
		t.Fatalf("GetChild error: %v", err)
	}
	if d.Child == nil || d.Child.ID != "c1" || d.Goal == nil {
		t.Fatalf("unexpected detail: %+v", d)
	}
	if !d.SavingsBalance.Equal(decimal.RequireFromString("100.5")) {
		t.Fatalf("savingsBalance = %s", d.SavingsBalance)
	}
	if d.Investment != nil || d.FundDirective != nil {
		t.Fatalf("absent entities should decode as nil")
	}
}

func TestAdapterErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"json error body", http.StatusBadRequest, `{"code":"invalid_input","message":"amount must be greater than 0"}`, "amount must be greater than 0"},
		{"plain text", http.StatusForbidden, "  forbidden \n", "forbidden"},
		{"empty body", http.StatusInternalServerError, "", "request failed with status 500"},
		{"html page", http.StatusBadGateway, "<html><body>bad gateway</body></html>", "request failed with status 502"},
		{"json without message", http.StatusNotFound, `{"code":"not_found"}`, "request failed with status 404"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec recorded
			a := newServer(t, tt.status, tt.body, &rec)
			_, err := a.GetChild(helpers.TestCtx(), creds, "c1")
			var reqErr *errs.RequestError
			if !errors.As(err, &reqErr) {
				t.Fatalf("expected RequestError, got %T %v", err, err)
			}
			if reqErr.Status != tt.status || err.Error() != tt.wantMsg {
				t.Fatalf("error = %d %q, want %d %q", reqErr.Status, err.Error(), tt.status, tt.wantMsg)
			}
			if errs.Status(err) != tt.status {
				t.Fatalf("errs.Status = %d", errs.Status(err))
			}
		})
	}
}

func TestAdapterNoCredentials(t *testing.T) {
	var rec recorded
	a := newServer(t, http.StatusOK, `{}`, &rec)
	if _, err := a.GetProfile(helpers.TestCtx(), nil); !errors.Is(err, errs.ErrNoSession) {
		t.Fatalf("err = %v, want ErrNoSession", err)
	}
	if rec.method != "" {
		t.Fatalf("request sent without credentials")
	}
}

func TestAdapterEmptySuccessBody(t *testing.T) {
	var rec recorded
	a := newServer(t, http.StatusNoContent, "", &rec)
	if err := a.DeleteChild(helpers.TestCtx(), creds, "c1"); err != nil {
		t.Fatalf("DeleteChild error: %v", err)
	}
	a = newServer(t, http.StatusOK, "", &rec)
	if _, err := a.SetGoal(helpers.TestCtx(), creds, "c1", dto.GoalRequest{}); err != nil {
		t.Fatalf("empty 200 body should not fail: %v", err)
	}
}
