package upstream

import (
	"context"
	"errors"
	"net/http"

	"sautiai-dashboard/internal/agents"
	"sautiai-dashboard/internal/voices"
)

func (c *Client) ListAgents(ctx context.Context, workspaceID string) ([]agents.Agent, error) {
	if workspaceID == "" {
		return nil, errors.New("upstream: workspace_id required")
	}
	var env listEnvelope[agents.Agent]
	if err := c.do(ctx, http.MethodGet, "/agents", workspaceQuery(workspaceID), nil, &env); err != nil {
		return nil, err
	}
	return env.Items, nil
}

// ListAgentsAvailableForCalls returns active agents whose voice resolves in
// the catalog; these are the only agents a voice campaign may select.
func (c *Client) ListAgentsAvailableForCalls(ctx context.Context, workspaceID string) ([]agents.Agent, error) {
	if workspaceID == "" {
		return nil, errors.New("upstream: workspace_id required")
	}
	var env listEnvelope[agents.Agent]
	if err := c.do(ctx, http.MethodGet, "/agents/available-for-calls", workspaceQuery(workspaceID), nil, &env); err != nil {
		return nil, err
	}
	return env.Items, nil
}

func (c *Client) GetAgent(ctx context.Context, workspaceID, agentID string) (agents.Agent, error) {
	if workspaceID == "" || agentID == "" {
		return agents.Agent{}, errors.New("upstream: workspace_id and agent id required")
	}
	var out agents.Agent
	if err := c.do(ctx, http.MethodGet, "/agents/"+agentID, workspaceQuery(workspaceID), nil, &out); err != nil {
		return agents.Agent{}, err
	}
	return out, nil
}

func (c *Client) CreateAgent(ctx context.Context, workspaceID string, in agents.Agent) (agents.Agent, error) {
	if workspaceID == "" {
		return agents.Agent{}, errors.New("upstream: workspace_id required")
	}
	in.WorkspaceID = workspaceID
	var out agents.Agent
	if err := c.do(ctx, http.MethodPost, "/agents", workspaceQuery(workspaceID), in, &out); err != nil {
		return agents.Agent{}, err
	}
	return out, nil
}

func (c *Client) UpdateAgent(ctx context.Context, workspaceID string, in agents.Agent) (agents.Agent, error) {
	if workspaceID == "" || in.ID == "" {
		return agents.Agent{}, errors.New("upstream: workspace_id and agent id required")
	}
	in.WorkspaceID = workspaceID
	var out agents.Agent
	if err := c.do(ctx, http.MethodPut, "/agents/"+in.ID, workspaceQuery(workspaceID), in, &out); err != nil {
		return agents.Agent{}, err
	}
	return out, nil
}

func (c *Client) DeleteAgent(ctx context.Context, workspaceID, agentID string) error {
	if workspaceID == "" || agentID == "" {
		return errors.New("upstream: workspace_id and agent id required")
	}
	return c.do(ctx, http.MethodDelete, "/agents/"+agentID, workspaceQuery(workspaceID), nil, nil)
}

// ListVoices fetches the read-only voice catalog. The catalog is global, not
// workspace-scoped.
func (c *Client) ListVoices(ctx context.Context) ([]voices.Voice, error) {
	var env listEnvelope[voices.Voice]
	if err := c.do(ctx, http.MethodGet, "/voices", nil, nil, &env); err != nil {
		return nil, err
	}
	return env.Items, nil
}
