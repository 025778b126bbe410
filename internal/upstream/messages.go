package upstream

import (
	"context"
	"errors"
	"net/http"
)

// SendMessageRequest dispatches one rendered message to one contact over a
// text channel (email, sms, whatsapp). Templates are resolved by the caller;
// this layer only moves bytes.
type SendMessageRequest struct {
	WorkspaceID string `json:"workspace_id"`
	ContactID   string `json:"contact_id"`
	Channel     string `json:"channel"`
	Subject     string `json:"subject,omitempty"`
	Body        string `json:"body"`
	CampaignID  string `json:"campaign_id,omitempty"`
}

// SendMessageResult reports the delivery-style outcome for one message.
type SendMessageResult struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
	Outcome   string `json:"outcome,omitempty"`
}

func (c *Client) SendMessage(ctx context.Context, req SendMessageRequest) (SendMessageResult, error) {
	if req.WorkspaceID == "" || req.ContactID == "" {
		return SendMessageResult{}, errors.New("upstream: workspace_id and contact_id required")
	}
	switch req.Channel {
	case "email", "sms", "whatsapp":
	default:
		return SendMessageResult{}, errors.New("upstream: unsupported message channel")
	}
	var out SendMessageResult
	if err := c.do(ctx, http.MethodPost, "/messages/"+req.Channel, workspaceQuery(req.WorkspaceID), req, &out); err != nil {
		return SendMessageResult{}, err
	}
	return out, nil
}
