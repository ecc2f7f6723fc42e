package backendclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/GregMSThompson/family-savings/internal/dto"
	"github.com/GregMSThompson/family-savings/internal/errs"
	"github.com/GregMSThompson/family-savings/internal/metrics"
	"github.com/GregMSThompson/family-savings/internal/session"
	"github.com/GregMSThompson/family-savings/pkg/logger"
)

const (
	routeMe          = "/api/me"
	routeMyGoal      = "/api/me/goal"
	routeChildren    = "/api/children"
	routeChild       = "/api/children/{id}"
	routeGoal        = "/api/children/{id}/goal"
	routeContribute  = "/api/children/{id}/contribute"
	routeInvestment  = "/api/children/{id}/investment"
	routeDirective   = "/api/children/{id}/directive"
	routeSimulate    = "/api/simulate/monthly"
	maxErrorBodySize = 4 << 10
)

// Adapter talks to the savings API. Every call takes the caller's current
// credentials; the adapter keeps none of its own.
type Adapter struct {
	baseURL string
	http    *http.Client
}

// NewAdapter returns an adapter for baseURL. timeout bounds each request,
// including reading the body.
func NewAdapter(baseURL string, timeout time.Duration) *Adapter {
	return NewAdapterWithClient(baseURL, &http.Client{Timeout: timeout})
}

func NewAdapterWithClient(baseURL string, client *http.Client) *Adapter {
	return &Adapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    client,
	}
}

func (a *Adapter) GetProfile(ctx context.Context, creds *session.Credentials) (dto.Profile, error) {
	var out dto.Profile
	err := a.do(ctx, creds, "get_profile", http.MethodGet, routeMe, "", nil, &out)
	return out, err
}

// GetMyGoal returns the caller's own goal detail. A caller with no linked goal
// gets an empty detail.
func (a *Adapter) GetMyGoal(ctx context.Context, creds *session.Credentials) (dto.ChildDetail, error) {
	var out dto.ChildDetail
	err := a.do(ctx, creds, "get_my_goal", http.MethodGet, routeMyGoal, "", nil, &out)
	return out, err
}

func (a *Adapter) ListChildren(ctx context.Context, creds *session.Credentials) ([]dto.ChildRecord, error) {
	var out []dto.ChildRecord
	err := a.do(ctx, creds, "list_children", http.MethodGet, routeChildren, "", nil, &out)
	return out, err
}

func (a *Adapter) GetChild(ctx context.Context, creds *session.Credentials, childID string) (dto.ChildDetail, error) {
	var out dto.ChildDetail
	err := a.do(ctx, creds, "get_child", http.MethodGet, routeChild, childID, nil, &out)
	return out, err
}

func (a *Adapter) CreateChild(ctx context.Context, creds *session.Credentials, req dto.ChildRequest) (dto.ChildRecord, error) {
	var out dto.ChildRecord
	err := a.do(ctx, creds, "create_child", http.MethodPost, routeChildren, "", req, &out)
	return out, err
}

func (a *Adapter) UpdateChild(ctx context.Context, creds *session.Credentials, childID string, req dto.ChildRequest) (dto.ChildRecord, error) {
	var out dto.ChildRecord
	err := a.do(ctx, creds, "update_child", http.MethodPut, routeChild, childID, req, &out)
	return out, err
}

func (a *Adapter) DeleteChild(ctx context.Context, creds *session.Credentials, childID string) error {
	return a.do(ctx, creds, "delete_child", http.MethodDelete, routeChild, childID, nil, nil)
}

func (a *Adapter) SetGoal(ctx context.Context, creds *session.Credentials, childID string, req dto.GoalRequest) (dto.GoalRecord, error) {
	var out dto.GoalRecord
	err := a.do(ctx, creds, "set_goal", http.MethodPost, routeGoal, childID, req, &out)
	return out, err
}

func (a *Adapter) Contribute(ctx context.Context, creds *session.Credentials, childID string, req dto.ContributeRequest) (dto.TransactionRecord, error) {
	var out dto.TransactionRecord
	err := a.do(ctx, creds, "contribute", http.MethodPost, routeContribute, childID, req, &out)
	return out, err
}

func (a *Adapter) SetInvestment(ctx context.Context, creds *session.Credentials, childID string, req dto.InvestmentRequest) (dto.InvestmentRecord, error) {
	var out dto.InvestmentRecord
	err := a.do(ctx, creds, "set_investment", http.MethodPost, routeInvestment, childID, req, &out)
	return out, err
}

func (a *Adapter) SetDirective(ctx context.Context, creds *session.Credentials, childID string, req dto.DirectiveRequest) (dto.DirectiveRecord, error) {
	var out dto.DirectiveRecord
	err := a.do(ctx, creds, "set_directive", http.MethodPost, routeDirective, childID, req, &out)
	return out, err
}

func (a *Adapter) RunMonthlySimulation(ctx context.Context, creds *session.Credentials) (dto.SimulationResult, error) {
	var out dto.SimulationResult
	err := a.do(ctx, creds, "run_simulation", http.MethodPost, routeSimulate, "", nil, &out)
	return out, err
}

// do sends one request. route is the path template used for metrics; childID
// replaces its {id} segment. A non-2xx response becomes *errs.RequestError.
func (a *Adapter) do(ctx context.Context, creds *session.Credentials, op, method, route, childID string, in, out any) error {
	if creds == nil {
		return errs.ErrNoSession
	}
	log := logger.FromContext(ctx)

	path := strings.Replace(route, "{id}", url.PathEscape(childID), 1)

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+creds.Token)
	req.Header.Set("X-User-Email", creds.Email)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := a.http.Do(req)
	if err != nil {
		metrics.BackendRequestDuration.WithLabelValues(method, route, "error").Observe(time.Since(start).Seconds())
		log.Error("backend request failed", "op", op, "method", method, "path", path, "error", err)
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()
	metrics.BackendRequestDuration.WithLabelValues(method, route, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reqErr := &errs.RequestError{
			Op:      op,
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: errorMessage(resp.Body),
		}
		log.Warn("backend returned error", "op", op, "path", path, "status", resp.StatusCode, "message", reqErr.Message)
		return reqErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// errorMessage extracts a readable message from an error body: the message of
// a {code,message} object, else the trimmed text, else "".
func errorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return ""
	}
	var body dto.ErrorBody
	if json.Unmarshal(raw, &body) == nil {
		return strings.TrimSpace(body.Message)
	}
	text := strings.TrimSpace(string(raw))
	if strings.HasPrefix(text, "<") {
		// an HTML error page says nothing useful
		return ""
	}
	return text
}
