package upstream

import (
	"context"
	"errors"
	"net/http"

	"sautiai-dashboard/internal/calls"
)

// DashboardSummary mirrors /dashboard/summary from the core API.
type DashboardSummary struct {
	TotalContacts   int     `json:"total_contacts"`
	OverdueContacts int     `json:"overdue_contacts"`
	TotalDebt       float64 `json:"total_debt"`
	CollectedDebt   float64 `json:"collected_debt"`
	CallsToday      int     `json:"calls_today"`
	ActiveCalls     int     `json:"active_calls"`
}

func (c *Client) GetDashboardSummary(ctx context.Context, workspaceID string) (DashboardSummary, error) {
	if workspaceID == "" {
		return DashboardSummary{}, errors.New("upstream: workspace_id required")
	}
	var out DashboardSummary
	if err := c.do(ctx, http.MethodGet, "/dashboard/summary", workspaceQuery(workspaceID), nil, &out); err != nil {
		return DashboardSummary{}, err
	}
	return out, nil
}

func (c *Client) ListActiveCalls(ctx context.Context, workspaceID string) ([]calls.Call, error) {
	if workspaceID == "" {
		return nil, errors.New("upstream: workspace_id required")
	}
	var env listEnvelope[calls.Call]
	if err := c.do(ctx, http.MethodGet, "/dashboard/active-calls", workspaceQuery(workspaceID), nil, &env); err != nil {
		return nil, err
	}
	return env.Items, nil
}
