package upstream

import (
	"context"
	"errors"
	"net/http"

	"sautiai-dashboard/internal/calls"
)

// StartCallRequest dials one contact with one agent. The core API creates the
// Call record and owns its status from then on.
type StartCallRequest struct {
	WorkspaceID string `json:"workspace_id"`
	ContactID   string `json:"contact_id"`
	AgentID     string `json:"agent_id"`
	CampaignID  string `json:"campaign_id,omitempty"`
}

func (c *Client) StartCall(ctx context.Context, req StartCallRequest) (calls.Call, error) {
	if req.WorkspaceID == "" || req.ContactID == "" || req.AgentID == "" {
		return calls.Call{}, errors.New("upstream: workspace_id, contact_id and agent_id required")
	}
	var out calls.Call
	if err := c.do(ctx, http.MethodPost, "/calls", workspaceQuery(req.WorkspaceID), req, &out); err != nil {
		return calls.Call{}, err
	}
	return out, nil
}

func (c *Client) ListCalls(ctx context.Context, workspaceID string) ([]calls.Call, error) {
	if workspaceID == "" {
		return nil, errors.New("upstream: workspace_id required")
	}
	var env listEnvelope[calls.Call]
	if err := c.do(ctx, http.MethodGet, "/calls", workspaceQuery(workspaceID), nil, &env); err != nil {
		return nil, err
	}
	return env.Items, nil
}

func (c *Client) GetCallStatus(ctx context.Context, workspaceID, callID string) (calls.Call, error) {
	if workspaceID == "" || callID == "" {
		return calls.Call{}, errors.New("upstream: workspace_id and call id required")
	}
	var out calls.Call
	if err := c.do(ctx, http.MethodGet, "/calls/"+callID+"/status", workspaceQuery(workspaceID), nil, &out); err != nil {
		return calls.Call{}, err
	}
	return out, nil
}

// transcriptResponse is the wire shape for both final and live transcripts.
type transcriptResponse struct {
	CallID string   `json:"call_id"`
	Lines  []string `json:"lines"`
	Status string   `json:"status,omitempty"`
}

// GetTranscript fetches the final transcript. ErrNotFound means the
// transcript is not ready yet.
func (c *Client) GetTranscript(ctx context.Context, workspaceID, callID string) ([]calls.TranscriptLine, error) {
	if workspaceID == "" || callID == "" {
		return nil, errors.New("upstream: workspace_id and call id required")
	}
	var resp transcriptResponse
	if err := c.do(ctx, http.MethodGet, "/calls/"+callID+"/transcript", workspaceQuery(workspaceID), nil, &resp); err != nil {
		return nil, err
	}
	return calls.ParseTranscript(resp.Lines), nil
}

// LiveTranscript is one poll of an in-progress call: its classified lines so
// far plus the current status.
type LiveTranscript struct {
	CallID string
	Status calls.CallStatus
	Lines  []calls.TranscriptLine
}

func (c *Client) GetLiveTranscript(ctx context.Context, workspaceID, callID string) (LiveTranscript, error) {
	if workspaceID == "" || callID == "" {
		return LiveTranscript{}, errors.New("upstream: workspace_id and call id required")
	}
	var resp transcriptResponse
	if err := c.do(ctx, http.MethodGet, "/calls/"+callID+"/live-transcript", workspaceQuery(workspaceID), nil, &resp); err != nil {
		return LiveTranscript{}, err
	}
	return LiveTranscript{
		CallID: callID,
		Status: calls.CallStatus(resp.Status),
		Lines:  calls.ParseTranscript(resp.Lines),
	}, nil
}

// SummarizeCall asks the core API to produce (or return a cached) call summary.
func (c *Client) SummarizeCall(ctx context.Context, workspaceID, callID string) (string, error) {
	if workspaceID == "" || callID == "" {
		return "", errors.New("upstream: workspace_id and call id required")
	}
	var resp struct {
		Summary string `json:"summary"`
	}
	if err := c.do(ctx, http.MethodPost, "/calls/"+callID+"/summarize", workspaceQuery(workspaceID), nil, &resp); err != nil {
		return "", err
	}
	return resp.Summary, nil
}
